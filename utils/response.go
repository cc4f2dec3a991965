package utils

import "github.com/gin-gonic/gin"

// RespondWithError writes the uniform error envelope used across the API.
func RespondWithError(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, gin.H{"error": message})
}
