package ds

import (
	"slices"

	"github.com/golang-jwt/jwt/v5"
)

// JWTClaims are carried by session tokens issued at login.
type JWTClaims struct {
	jwt.RegisteredClaims
	UserID int    `json:"user_id"`
	Role   string `json:"role"`
}

// HasRole reports whether the token role is one of roles. An empty list allows any role.
func (c *JWTClaims) HasRole(roles ...string) bool {
	return len(roles) == 0 || slices.Contains(roles, c.Role)
}
