package api

import (
	"github.com/gin-gonic/gin"

	"github.com/symposium-labs/symposium/api/handlers"
)

// SetupRoutes initializes all API endpoints
func SetupRoutes(router *gin.Engine) {
	api := router.Group("/api")
	{
		api.POST("/debates", handlers.StartDebate)
		api.GET("/debates", handlers.ListDebates)
		api.GET("/debates/:id", handlers.GetDebate)
		api.GET("/debates/:id/report", handlers.GetDebateReport)
		api.GET("/debates/:id/bias", handlers.GetDebateBias)
		api.GET("/router/usage", handlers.GetRouterUsage)
		api.GET("/health", handlers.Health)
	}
	router.GET("/ws", handlers.HandleWebSocket)
}
