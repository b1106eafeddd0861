package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Aishjainam-coder/Bot-GPT-TASK/internal/interfaces/httpserver/middlewares"
	"github.com/Aishjainam-coder/Bot-GPT-TASK/internal/interfaces/httpserver/responses"
	"github.com/Aishjainam-coder/Bot-GPT-TASK/internal/utils/platformerrors"
)

// idParam parses a positive numeric path parameter, answering 400 otherwise.
func idParam(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		responses.HandleNewError(c, platformerrors.ErrorTypeValidation,
			"invalid "+name+": "+raw, "5f8c2e1a-3b4d-4c6e-9f7a-8b9c0d1e2f01")
		return 0, false
	}
	return uint(id), true
}

// callerID returns the user resolved by the identity middleware.
func callerID(c *gin.Context) (uint, bool) {
	id, ok := middlewares.UserID(c)
	if !ok {
		responses.HandleNewError(c, platformerrors.ErrorTypeUnauthorized,
			"caller identity is missing", "5f8c2e1a-3b4d-4c6e-9f7a-8b9c0d1e2f02")
		return 0, false
	}
	return id, true
}
