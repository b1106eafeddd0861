package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/Aishjainam-coder/Bot-GPT-TASK/internal/domain/conversation"
	"github.com/Aishjainam-coder/Bot-GPT-TASK/internal/interfaces/httpserver/requests"
	"github.com/Aishjainam-coder/Bot-GPT-TASK/internal/interfaces/httpserver/responses"
	"github.com/Aishjainam-coder/Bot-GPT-TASK/internal/utils/platformerrors"
)

// ConversationHandler exposes HTTP entrypoints for conversations.
type ConversationHandler struct {
	service conversation.Service
	log     zerolog.Logger
}

// NewConversationHandler constructs the handler.
func NewConversationHandler(service conversation.Service, log zerolog.Logger) *ConversationHandler {
	return &ConversationHandler{
		service: service,
		log:     log.With().Str("handler", "conversation").Logger(),
	}
}

// Create handles POST /api/v1/conversations
// @Summary Start a conversation
// @Description Creates a conversation with its first user message and the generated assistant reply
// @Tags Conversations
// @Accept json
// @Produce json
// @Param request body requests.CreateConversationRequest true "Conversation"
// @Success 201 {object} responses.ConversationDetailResponse
// @Failure 400 {object} responses.ErrorResponse
// @Failure 500 {object} responses.ErrorResponse
// @Router /api/v1/conversations [post]
func (h *ConversationHandler) Create(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	var req requests.CreateConversationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.HandleNewError(c, platformerrors.ErrorTypeValidation, err.Error(), "0b6f3a2c-1d4e-4f5a-8b7c-9d0e1f2a3b01")
		return
	}

	conv, err := h.service.Create(c.Request.Context(), userID, conversation.CreateInput{
		FirstMessage: req.FirstMessage,
		Mode:         conversation.Mode(req.Mode),
		DocumentIDs:  req.DocumentIDs,
	})
	if err != nil {
		responses.HandleError(c, err, "failed to create conversation")
		return
	}

	c.JSON(http.StatusCreated, responses.NewConversationDetailResponse(conv))
}

// List handles GET /api/v1/conversations
// @Summary List conversations
// @Description Lists the caller's conversations, most recently updated first
// @Tags Conversations
// @Produce json
// @Param page query int false "Page number" minimum(1)
// @Param page_size query int false "Page size" minimum(1) maximum(100)
// @Success 200 {object} responses.ConversationListResponse
// @Failure 400 {object} responses.ErrorResponse
// @Router /api/v1/conversations [get]
func (h *ConversationHandler) List(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	var q requests.ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		responses.HandleNewError(c, platformerrors.ErrorTypeValidation, err.Error(), "0b6f3a2c-1d4e-4f5a-8b7c-9d0e1f2a3b02")
		return
	}
	pagination := q.Pagination()

	conversations, total, err := h.service.List(c.Request.Context(), userID, pagination)
	if err != nil {
		responses.HandleError(c, err, "failed to list conversations")
		return
	}

	c.JSON(http.StatusOK, responses.NewConversationListResponse(conversations, total, pagination.Page, pagination.PageSize))
}

// Get handles GET /api/v1/conversations/:id
// @Summary Get a conversation
// @Description Returns the conversation with its messages and linked documents
// @Tags Conversations
// @Produce json
// @Param id path int true "Conversation ID"
// @Success 200 {object} responses.ConversationDetailResponse
// @Failure 404 {object} responses.ErrorResponse
// @Router /api/v1/conversations/{id} [get]
func (h *ConversationHandler) Get(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	conv, err := h.service.Get(c.Request.Context(), userID, id)
	if err != nil {
		responses.HandleError(c, err, "failed to get conversation")
		return
	}

	c.JSON(http.StatusOK, responses.NewConversationDetailResponse(conv))
}

// AddMessage handles PUT /api/v1/conversations/:id
// @Summary Continue a conversation
// @Description Appends a user message, generates the assistant reply and returns the stored user message
// @Tags Conversations
// @Accept json
// @Produce json
// @Param id path int true "Conversation ID"
// @Param request body requests.AddMessageRequest true "Message"
// @Success 200 {object} responses.MessageResponse
// @Failure 400 {object} responses.ErrorResponse
// @Failure 404 {object} responses.ErrorResponse
// @Router /api/v1/conversations/{id} [put]
func (h *ConversationHandler) AddMessage(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	var req requests.AddMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.HandleNewError(c, platformerrors.ErrorTypeValidation, err.Error(), "0b6f3a2c-1d4e-4f5a-8b7c-9d0e1f2a3b03")
		return
	}

	msg, err := h.service.AddMessage(c.Request.Context(), userID, id, req.Message)
	if err != nil {
		responses.HandleError(c, err, "failed to add message")
		return
	}

	c.JSON(http.StatusOK, responses.NewMessageResponse(msg))
}

// Delete handles DELETE /api/v1/conversations/:id
// @Summary Delete a conversation
// @Description Deletes the conversation with its messages and document links
// @Tags Conversations
// @Param id path int true "Conversation ID"
// @Success 204
// @Failure 404 {object} responses.ErrorResponse
// @Router /api/v1/conversations/{id} [delete]
func (h *ConversationHandler) Delete(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), userID, id); err != nil {
		responses.HandleError(c, err, "failed to delete conversation")
		return
	}

	c.Status(http.StatusNoContent)
}
