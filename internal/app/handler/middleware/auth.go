package middleware

import (
	"context"
	"net/http"
	"strings"

	"container_loading/internal/app/utils"

	"github.com/gin-gonic/gin"
)

// SessionChecker confirms that a token is still the user's active session.
type SessionChecker interface {
	SessionActive(ctx context.Context, userID int, token string) bool
}

// AuthMiddleware checks the JWT from the "jwt" cookie or a Bearer header,
// stores user_id and role in the context and, if roles are given, requires one of them.
func AuthMiddleware(jwtKey string, sessions SessionChecker, allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr, err := c.Cookie("jwt")
		if err != nil || tokenStr == "" {
			authHeader := c.GetHeader("Authorization")
			if !strings.HasPrefix(authHeader, "Bearer ") {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
				return
			}
			tokenStr = strings.TrimPrefix(authHeader, "Bearer ")
		}

		claims, err := utils.ParseJWT([]byte(jwtKey), tokenStr)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}
		if sessions != nil && !sessions.SessionActive(c.Request.Context(), claims.UserID, tokenStr) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Session expired"})
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("role", claims.Role)

		if !claims.HasRole(allowedRoles...) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Access denied for role: " + claims.Role})
			return
		}
		c.Next()
	}
}

