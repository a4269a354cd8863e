package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"forum404/internal/pkg"
	"forum404/internal/repository/redis"
)

const ContextUserIDKey = "user_id"

// AuthMiddleware validates the Bearer access token and cross-checks it
// against the redis-pinned token, so only the most recent login is live.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization format"})
			c.Abort()
			return
		}

		tokenStr := parts[1]
		claims, err := pkg.ParseAccess(tokenStr)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			c.Abort()
			return
		}

		tokens := &redis.TokenRepository{}
		pinned, err := tokens.GetUserToken(claims.UserID)
		if err != nil || pinned != tokenStr {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "session superseded by another login"})
			c.Abort()
			return
		}

		if err := tokens.ExtendUserToken(claims.UserID); err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.Set(ContextUserIDKey, claims.UserID)
		c.Next()
	}
}

// UserIDFromCtx returns the authenticated user id, empty when unauthenticated.
func UserIDFromCtx(c *gin.Context) string {
	if v, ok := c.Get(ContextUserIDKey); ok {
		if id, ok2 := v.(string); ok2 {
			return id
		}
	}
	return ""
}
