package auth

import "context"

type contextKey string

const userClaimsKey contextKey = "user_claims"

// SetUserClaims stores the resolved claims on the request context.
func SetUserClaims(ctx context.Context, claims UserClaims) context.Context {
	return context.WithValue(ctx, userClaimsKey, claims)
}

// GetUserClaims returns the claims set by the auth middleware, or nil when
// the request is unauthenticated.
func GetUserClaims(ctx context.Context) UserClaims {
	claims, _ := ctx.Value(userClaimsKey).(UserClaims)
	return claims
}
