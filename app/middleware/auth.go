package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"dbhost/pkg/config"
	"dbhost/pkg/logger"
)

// AuthMiddleware simple token authentication middleware
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		expectedAPIKey := ""
		if config.GlobalConfig != nil {
			expectedAPIKey = config.GlobalConfig.Server.APIKey
		}

		// Skip authentication if API key is not configured
		if expectedAPIKey == "" {
			c.Next()
			return
		}

		token := strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
		if token == "" {
			// Browsers cannot set headers on WebSocket upgrades
			token = c.Query("token")
		}

		if token != expectedAPIKey {
			logger.WarnCtx(c.Request.Context(), "unauthorized request to %s, invalid API key", c.Request.URL.Path)
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			c.Abort()
			return
		}

		c.Next()
	}
}
