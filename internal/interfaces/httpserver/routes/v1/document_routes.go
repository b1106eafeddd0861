package v1

import (
	"github.com/gin-gonic/gin"

	"github.com/Aishjainam-coder/Bot-GPT-TASK/internal/interfaces/httpserver/handlers"
)

func registerDocumentRoutes(router gin.IRoutes, handler *handlers.DocumentHandler) {
	router.POST("/documents", handler.Create)
	router.GET("/documents", handler.List)
	router.GET("/documents/:id", handler.Get)
}
