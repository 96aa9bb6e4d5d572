package server

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/thereayou/sparks/internal/handlers"
)

func APIEndpoints(r *gin.Engine, sparkH *handlers.SparkHandler, messageH *handlers.MessageHandler, wsH *handlers.WebSocketHandler) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// WebSocket для живых подписок
	r.GET("/ws", wsH.HandleWebSocket)

	// API endpoints
	api := r.Group("/api/v1")
	{
		api.POST("/sparks", sparkH.CreateSpark)
		api.GET("/sparks", sparkH.ListNearby)
		api.GET("/sparks/:id", sparkH.GetSpark)

		api.GET("/sparks/:id/messages", messageH.GetMessages)
		api.POST("/sparks/:id/messages", messageH.PostMessage)
	}
}
