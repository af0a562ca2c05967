package middleware

import (
	"net/http"
	"strings"

	"github.com/CtIaMbaCK/betterus-server/internal/auth"
	"github.com/CtIaMbaCK/betterus-server/internal/common"
	"github.com/CtIaMbaCK/betterus-server/internal/constants"
)

// SessionCookieName carries the admin/home session id.
const SessionCookieName = "betterus_session"

// AuthMiddleware resolves request identity from either a bearer token (the
// self-service clients) or the session cookie (admin/home area) and places
// claims on the context. Requests with neither are rejected.
func AuthMiddleware(tokens *auth.TokenManager, sessions *common.SessionService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var claims auth.UserClaims

			authHeader := r.Header.Get("Authorization")

			switch {
			case strings.HasPrefix(authHeader, "Bearer "):
				tokenString := strings.TrimPrefix(authHeader, "Bearer ")
				parsed, err := tokens.Verify(tokenString)
				if err != nil {
					http.Error(w, "Unauthorized. Invalid token", http.StatusUnauthorized)
					return
				}
				claims = parsed

			// Browser websocket clients cannot set headers on the handshake,
			// so the chat gateway takes the token as a query parameter.
			case r.URL.Query().Get("token") != "":
				parsed, err := tokens.Verify(r.URL.Query().Get("token"))
				if err != nil {
					http.Error(w, "Unauthorized. Invalid token", http.StatusUnauthorized)
					return
				}
				claims = parsed

			default:
				cookie, err := r.Cookie(SessionCookieName)
				if err != nil {
					http.Error(w, "Unauthorized. Missing credentials", http.StatusUnauthorized)
					return
				}
				session, err := sessions.GetSession(r.Context(), cookie.Value)
				if err != nil {
					http.Error(w, "Unauthorized. Invalid session", http.StatusUnauthorized)
					return
				}
				claims = &auth.SessionClaims{
					UserUUID:  session.UserID,
					RoleValue: session.Role,
					SessionID: session.SessionID,
				}
			}

			ctx := auth.SetUserClaims(r.Context(), claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole gates a route group to the given roles.
func RequireRole(roles ...constants.UserRole) func(http.Handler) http.Handler {
	allowed := make(map[constants.UserRole]bool, len(roles))
	for _, role := range roles {
		allowed[role] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims := auth.GetUserClaims(r.Context())
			if claims == nil {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}
			if !allowed[claims.Role()] {
				http.Error(w, "Forbidden. Insufficient role", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// IsAdminMiddleware gates a route group to platform admins.
func IsAdminMiddleware() func(http.Handler) http.Handler {
	return RequireRole(constants.RoleAdmin)
}

// IsOrganizationMiddleware gates a route group to social organizations.
func IsOrganizationMiddleware() func(http.Handler) http.Handler {
	return RequireRole(constants.RoleOrganization)
}
