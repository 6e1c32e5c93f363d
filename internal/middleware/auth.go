package middleware

import (
	"net/http"
	"strings"

	"country-explorer/internal/auth"

	"github.com/gin-gonic/gin"
)

// SessionIDKey is the gin context key holding the authenticated session id.
const SessionIDKey = "session_id"

// JWTAuthMiddleware admits requests carrying a valid session token and stores
// the session id under SessionIDKey.
func JWTAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := sessionToken(c)
		if tokenString == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Authorization token is required",
			})
			c.Abort()
			return
		}

		claims, err := auth.ValidateToken(tokenString)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid or expired token",
			})
			c.Abort()
			return
		}

		c.Set(SessionIDKey, claims.SessionID)

		c.Next()
	}
}

// sessionToken reads a bearer token, or the token query parameter the page
// uses when it opens the lookup websocket.
func sessionToken(c *gin.Context) string {
	scheme, token, ok := strings.Cut(c.GetHeader("Authorization"), " ")
	if ok && scheme == "Bearer" && token != "" {
		return token
	}
	return c.Query("token")
}
