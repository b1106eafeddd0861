package handlers

import (
	"github.com/rs/zerolog"

	"github.com/Aishjainam-coder/Bot-GPT-TASK/internal/domain/conversation"
	"github.com/Aishjainam-coder/Bot-GPT-TASK/internal/domain/document"
)

// Provider wires all HTTP handlers for dependency injection.
type Provider struct {
	Conversation *ConversationHandler
	Document     *DocumentHandler
}

// NewProvider constructs the handler provider with domain services.
func NewProvider(conversationService conversation.Service, documentService document.Service, log zerolog.Logger) *Provider {
	return &Provider{
		Conversation: NewConversationHandler(conversationService, log),
		Document:     NewDocumentHandler(documentService, log),
	}
}
