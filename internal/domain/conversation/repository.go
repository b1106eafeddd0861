package conversation

import (
	"context"
	"time"

	"github.com/Aishjainam-coder/Bot-GPT-TASK/internal/domain/query"
)

// Repository exposes data access for conversations, their messages and their
// document links.
type Repository interface {
	// Transaction runs fn in a transaction carried by the context passed to fn.
	Transaction(ctx context.Context, fn func(ctx context.Context) error) error

	Create(ctx context.Context, conv *Conversation) error
	// FindByID returns a NOT_FOUND platform error when the conversation does not
	// exist or belongs to another user.
	FindByID(ctx context.Context, id uint, userID uint) (*Conversation, error)
	// List orders by most recently updated first and fills MessageCount.
	List(ctx context.Context, userID uint, pagination query.Pagination) ([]*Conversation, int64, error)
	Touch(ctx context.Context, id uint, at time.Time) error
	// Delete removes the conversation with its messages and document links.
	Delete(ctx context.Context, id uint) error

	// LinkDocuments links the existing documents among documentIDs and returns
	// the ids that were linked.
	LinkDocuments(ctx context.Context, conversationID uint, documentIDs []uint) ([]uint, error)
	DocumentIDs(ctx context.Context, conversationID uint) ([]uint, error)

	CreateMessage(ctx context.Context, msg *Message) error
	// ListMessages returns messages in creation order, ties broken by id.
	ListMessages(ctx context.Context, conversationID uint) ([]*Message, error)
}

// Locker serializes work on a single conversation.
type Locker interface {
	Lock(ctx context.Context, key string) (unlock func(), err error)
}

// ReplyGenerator produces and stores the assistant reply to a stored user message.
type ReplyGenerator interface {
	GenerateReply(ctx context.Context, conv *Conversation, userMessage *Message) (*Message, error)
}
