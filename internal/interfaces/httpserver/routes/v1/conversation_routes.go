package v1

import (
	"github.com/gin-gonic/gin"

	"github.com/Aishjainam-coder/Bot-GPT-TASK/internal/interfaces/httpserver/handlers"
)

func registerConversationRoutes(router gin.IRoutes, handler *handlers.ConversationHandler) {
	router.POST("/conversations", handler.Create)
	router.GET("/conversations", handler.List)
	router.GET("/conversations/:id", handler.Get)
	router.PUT("/conversations/:id", handler.AddMessage)
	router.DELETE("/conversations/:id", handler.Delete)
}
