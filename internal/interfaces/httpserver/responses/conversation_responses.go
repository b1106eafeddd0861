package responses

import (
	"time"

	"github.com/Aishjainam-coder/Bot-GPT-TASK/internal/domain/conversation"
)

// MessageResponse is a stored message.
type MessageResponse struct {
	ID             uint      `json:"id"`
	ConversationID uint      `json:"conversation_id"`
	Role           string    `json:"role"`
	Content        string    `json:"content"`
	TokensUsed     int       `json:"tokens_used"`
	ModelUsed      *string   `json:"model_used"`
	CreatedAt      time.Time `json:"created_at"`
}

// ConversationResponse is the summary view of a conversation.
type ConversationResponse struct {
	ID           uint      `json:"id"`
	UserID       uint      `json:"user_id"`
	Title        string    `json:"title"`
	Mode         string    `json:"mode"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	MessageCount int       `json:"message_count"`
}

// ConversationDetailResponse adds messages and linked documents.
type ConversationDetailResponse struct {
	ConversationResponse
	Messages    []MessageResponse `json:"messages"`
	DocumentIDs []uint            `json:"document_ids"`
}

// ConversationListResponse is one page of conversations.
type ConversationListResponse struct {
	Conversations []ConversationResponse `json:"conversations"`
	Total         int64                  `json:"total"`
	Page          int                    `json:"page"`
	PageSize      int                    `json:"page_size"`
}

// HealthResponse reports liveness.
type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}

func NewMessageResponse(msg *conversation.Message) MessageResponse {
	return MessageResponse{
		ID:             msg.ID,
		ConversationID: msg.ConversationID,
		Role:           string(msg.Role),
		Content:        msg.Content,
		TokensUsed:     msg.TokensUsed,
		ModelUsed:      msg.ModelUsed,
		CreatedAt:      msg.CreatedAt,
	}
}

func NewConversationResponse(conv *conversation.Conversation) ConversationResponse {
	return ConversationResponse{
		ID:           conv.ID,
		UserID:       conv.UserID,
		Title:        conv.Title,
		Mode:         string(conv.Mode),
		CreatedAt:    conv.CreatedAt,
		UpdatedAt:    conv.UpdatedAt,
		MessageCount: conv.MessageCount,
	}
}

// NewConversationDetailResponse renders document_ids as null when nothing is linked.
func NewConversationDetailResponse(conv *conversation.Conversation) ConversationDetailResponse {
	messages := make([]MessageResponse, 0, len(conv.Messages))
	for _, msg := range conv.Messages {
		messages = append(messages, NewMessageResponse(msg))
	}

	var documentIDs []uint
	if len(conv.DocumentIDs) > 0 {
		documentIDs = conv.DocumentIDs
	}

	return ConversationDetailResponse{
		ConversationResponse: NewConversationResponse(conv),
		Messages:             messages,
		DocumentIDs:          documentIDs,
	}
}

func NewConversationListResponse(conversations []*conversation.Conversation, total int64, page, pageSize int) ConversationListResponse {
	items := make([]ConversationResponse, 0, len(conversations))
	for _, conv := range conversations {
		items = append(items, NewConversationResponse(conv))
	}
	return ConversationListResponse{
		Conversations: items,
		Total:         total,
		Page:          page,
		PageSize:      pageSize,
	}
}
