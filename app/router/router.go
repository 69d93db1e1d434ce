package router

import (
	"dbhost/app/handler"
	"dbhost/app/middleware"

	"github.com/gin-gonic/gin"
)

// Router Router
type Router struct {
	databaseHandler *handler.DatabaseHandler
}

// NewRouter creates a new Router
func NewRouter(databaseHandler *handler.DatabaseHandler) *Router {
	return &Router{
		databaseHandler: databaseHandler,
	}
}

// Setup sets up routes
func (r *Router) Setup(engine *gin.Engine) {
	engine.Use(middleware.Recovery())
	engine.Use(middleware.TraceID())
	engine.Use(middleware.Logger())

	api := engine.Group("/api/v1")
	api.Use(middleware.AuthMiddleware())
	{
		// Redis database settings
		redis := api.Group("/databases/redis/:uuid")
		{
			redis.GET("", r.databaseHandler.GetDatabase)                          // Mount settings
			redis.PUT("", r.databaseHandler.UpdateDatabase)                       // Submit general settings
			redis.POST("/public", r.databaseHandler.ToggleExposure)               // Toggle public access
			redis.POST("/advanced", r.databaseHandler.SaveAdvanced)               // Instant save advanced settings
			redis.POST("/refresh", r.databaseHandler.RefreshDatabase)             // Reload from datastore
			redis.GET("/proxy/preview", r.databaseHandler.PreviewProxyYAML)       // Preview proxy YAML
			redis.GET("/notifications/ws", r.databaseHandler.StreamNotifications) // Notifications (WebSocket)
		}
	}

	// Health check
	engine.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
}
