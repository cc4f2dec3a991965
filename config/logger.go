package config

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
)

// RequestLogger logs one line per request with the caller identity, status
// and latency, mirroring what the front-end support flow expects to find in
// the server output.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		userID := c.GetHeader("X-User-Id")
		if userID == "" {
			userID = "unknown"
		}

		c.Next()

		latency := time.Since(start)
		log.Printf("[REQ] %s %s | User: %s | Status: %d | Time: %v",
			c.Request.Method,
			c.Request.URL.Path,
			userID,
			c.Writer.Status(),
			latency)

		if latency > 200*time.Millisecond {
			log.Printf("[SLOW] %s %s took %v",
				c.Request.Method, c.Request.URL.Path, latency)
		}
	}
}
