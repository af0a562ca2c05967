package auth

import "github.com/CtIaMbaCK/betterus-server/internal/constants"

// UserClaims is the request identity placed on the context by the auth
// middleware. Both token styles (bearer JWT and session cookie) resolve to
// this interface, so handlers never read storage directly.
type UserClaims interface {
	UserID() string
	Role() constants.UserRole
	Source() string
}

// JWTClaims identifies a bearer-token request.
type JWTClaims struct {
	UserUUID  string
	RoleValue constants.UserRole
}

func (c *JWTClaims) UserID() string           { return c.UserUUID }
func (c *JWTClaims) Role() constants.UserRole { return c.RoleValue }
func (c *JWTClaims) Source() string           { return "JWT" }

// SessionClaims identifies a cookie-session request (admin/home area).
type SessionClaims struct {
	UserUUID  string
	RoleValue constants.UserRole
	SessionID string
}

func (c *SessionClaims) UserID() string           { return c.UserUUID }
func (c *SessionClaims) Role() constants.UserRole { return c.RoleValue }
func (c *SessionClaims) Source() string           { return "SESSION" }
