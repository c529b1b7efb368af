package transport

import (
	"github.com/mleonec/notibot/internal/transport/middleware"

	"github.com/gin-gonic/gin"
)

// InitRoutes wires the read-only admin API. Write operations go through
// Discord; the only mutation exposed here is the manual sync trigger.
func InitRoutes(eventHandler *EventHandler, userHandler *UserHandler, syncHandler *SyncHandler) *gin.Engine {

	router := gin.New()

	// Middleware
	router.Use(gin.Recovery())
	router.Use(middleware.Logger())
	router.Use(middleware.Timeout(30))

	// API routes
	api := router.Group("/api/v1")
	{
		events := api.Group("/events")
		{
			events.GET("", eventHandler.GetAllEvents)
			events.GET("/latest", eventHandler.GetLatestEvent)
			events.GET("/:id", eventHandler.GetEvent)
			events.GET("/:id/participants", eventHandler.GetParticipants)
		}

		users := api.Group("/users")
		{
			users.GET("", userHandler.GetAllUsers)
		}

		api.POST("/sync", syncHandler.TriggerSync)
	}

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	})

	return router
}
