package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RequireUser rejects requests without the X-User-Id header before any
// handler logic runs. The value is an opaque external identity; roles are
// derived from it later, per salon.
func RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetHeader("X-User-Id")
		if userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing X-User-Id header"})
			return
		}
		c.Set("userId", userID)
		c.Next()
	}
}

// UserID returns the caller identity stored by RequireUser.
func UserID(c *gin.Context) string {
	return c.GetString("userId")
}
