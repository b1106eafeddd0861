package document

import (
	"context"

	"github.com/Aishjainam-coder/Bot-GPT-TASK/internal/domain/query"
)

// Repository exposes data access for documents.
type Repository interface {
	Create(ctx context.Context, doc *Document) error
	FindByID(ctx context.Context, id uint) (*Document, error)
	List(ctx context.Context, pagination query.Pagination) ([]*Document, int64, error)
	// FindByConversation returns the documents linked to a conversation, ordered by id.
	FindByConversation(ctx context.Context, conversationID uint) ([]*Document, error)
}
