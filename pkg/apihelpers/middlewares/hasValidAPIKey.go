package middlewares

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

// HasValidAPIKey protects the management endpoints with a static key,
// meant for deployments behind a gateway that injects it.
func HasValidAPIKey(validKeys []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		keysInHeader, ok := c.Request.Header["Api-Key"]
		if !ok || len(keysInHeader) < 1 {
			slog.Error("A valid API key missing")
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "A valid API key missing"})
			return
		}

		for _, k := range keysInHeader {
			for _, vk := range validKeys {
				if k == vk {
					c.Next()
					return
				}
			}
		}

		slog.Error("A valid API key missing")
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "A valid API key missing"})
	}
}
