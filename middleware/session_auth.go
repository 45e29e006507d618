package middleware

import (
	"net/http"
	"strings"

	"calbot/utils"

	"github.com/gin-gonic/gin"
)

// SessionIDKey is the gin context key carrying the authenticated session id.
const SessionIDKey = "sessionID"

// SessionAuthMiddleware validates the bearer session token issued when a
// chat session was started, and rejects requests whose token does not match
// the session id in the URL.
func SessionAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Insufficient authorization",
			})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Insufficient authorization",
			})
			return
		}

		sessionID, err := utils.ExtractSessionIDFromToken(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid or expired session token",
			})
			return
		}

		if param := c.Param("sessionID"); param != "" && param != sessionID {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": "Session token does not match session",
			})
			return
		}

		c.Set(SessionIDKey, sessionID)
		c.Next()
	}
}
