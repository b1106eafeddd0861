package middlewares

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/Aishjainam-coder/Bot-GPT-TASK/internal/infrastructure/auth"
	"github.com/Aishjainam-coder/Bot-GPT-TASK/internal/interfaces/httpserver/responses"
)

const userIDKey = "user_id"

// UserResolver maps a caller name to a stored user id.
type UserResolver interface {
	Resolve(ctx context.Context, username string) (uint, error)
}

// Identity resolves the calling user. The authenticated subject wins; without
// one the configured default user is used.
func Identity(resolver UserResolver, defaultUsername string) gin.HandlerFunc {
	return func(c *gin.Context) {
		username := c.GetString(auth.SubjectKey)
		if username == "" {
			username = defaultUsername
		}

		userID, err := resolver.Resolve(c.Request.Context(), username)
		if err != nil {
			responses.HandleError(c, err, "failed to resolve user")
			return
		}

		c.Set(userIDKey, userID)
		c.Next()
	}
}

// UserID returns the id stored by Identity.
func UserID(c *gin.Context) (uint, bool) {
	val, ok := c.Get(userIDKey)
	if !ok {
		return 0, false
	}
	id, ok := val.(uint)
	return id, ok
}
