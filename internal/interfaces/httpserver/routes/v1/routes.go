package v1

import (
	"github.com/gin-gonic/gin"

	"github.com/Aishjainam-coder/Bot-GPT-TASK/internal/interfaces/httpserver/handlers"
)

// Routes encapsulates versioned route registration.
type Routes struct {
	handlers *handlers.Provider
}

// NewRoutes builds the v1 route registrar.
func NewRoutes(handlerProvider *handlers.Provider) *Routes {
	return &Routes{
		handlers: handlerProvider,
	}
}

// Register attaches all v1 routes under the /api/v1 prefix.
func (r *Routes) Register(router gin.IRouter) {
	group := router.Group("/api/v1")
	registerConversationRoutes(group, r.handlers.Conversation)
	registerDocumentRoutes(group, r.handlers.Document)
}
