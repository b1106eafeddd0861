package inmemory

import (
	"context"
	"sort"
	"time"

	"github.com/Aishjainam-coder/Bot-GPT-TASK/internal/domain/conversation"
	"github.com/Aishjainam-coder/Bot-GPT-TASK/internal/domain/query"
	"github.com/Aishjainam-coder/Bot-GPT-TASK/internal/utils/platformerrors"
)

// ConversationRepository is the in-memory conversation.Repository.
type ConversationRepository struct {
	store *Store
}

var _ conversation.Repository = (*ConversationRepository)(nil)

func (r *ConversationRepository) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.store.transaction(ctx, fn)
}

func (r *ConversationRepository) Create(ctx context.Context, conv *conversation.Conversation) error {
	return r.store.write(ctx, func(data *state) error {
		now := r.store.now()
		conv.ID = r.store.newID(data)
		conv.CreatedAt = now
		conv.UpdatedAt = now
		data.conversations[conv.ID] = conversation.Conversation{
			ID:        conv.ID,
			UserID:    conv.UserID,
			Title:     conv.Title,
			Mode:      conv.Mode,
			CreatedAt: conv.CreatedAt,
			UpdatedAt: conv.UpdatedAt,
		}
		return nil
	})
}

func (r *ConversationRepository) FindByID(ctx context.Context, id uint, userID uint) (*conversation.Conversation, error) {
	var found *conversation.Conversation
	_ = r.store.read(func(data *state) error {
		if conv, ok := data.conversations[id]; ok && conv.UserID == userID {
			found = &conv
		}
		return nil
	})
	if found == nil {
		return nil, notFound(ctx, "conversation not found")
	}
	return found, nil
}

func (r *ConversationRepository) List(ctx context.Context, userID uint, pagination query.Pagination) ([]*conversation.Conversation, int64, error) {
	var (
		owned  []conversation.Conversation
		counts = map[uint]int{}
	)
	_ = r.store.read(func(data *state) error {
		for _, conv := range data.conversations {
			if conv.UserID == userID {
				owned = append(owned, conv)
			}
		}
		for _, msg := range data.messages {
			counts[msg.ConversationID]++
		}
		return nil
	})

	sort.Slice(owned, func(i, j int) bool {
		if !owned[i].UpdatedAt.Equal(owned[j].UpdatedAt) {
			return owned[i].UpdatedAt.After(owned[j].UpdatedAt)
		}
		return owned[i].ID > owned[j].ID
	})

	total := int64(len(owned))
	start := pagination.Offset()
	if start > len(owned) {
		start = len(owned)
	}
	end := start + pagination.Limit()
	if end > len(owned) {
		end = len(owned)
	}

	page := make([]*conversation.Conversation, 0, end-start)
	for i := start; i < end; i++ {
		conv := owned[i]
		conv.MessageCount = counts[conv.ID]
		page = append(page, &conv)
	}
	return page, total, nil
}

func (r *ConversationRepository) Touch(ctx context.Context, id uint, at time.Time) error {
	return r.store.write(ctx, func(data *state) error {
		conv, ok := data.conversations[id]
		if !ok {
			return nil
		}
		conv.UpdatedAt = at
		data.conversations[id] = conv
		return nil
	})
}

func (r *ConversationRepository) Delete(ctx context.Context, id uint) error {
	return r.store.write(ctx, func(data *state) error {
		if _, ok := data.conversations[id]; !ok {
			return notFound(ctx, "conversation not found")
		}
		delete(data.conversations, id)

		messages := data.messages[:0]
		for _, msg := range data.messages {
			if msg.ConversationID != id {
				messages = append(messages, msg)
			}
		}
		data.messages = messages

		links := data.links[:0]
		for _, l := range data.links {
			if l.conversationID != id {
				links = append(links, l)
			}
		}
		data.links = links
		return nil
	})
}

func (r *ConversationRepository) LinkDocuments(ctx context.Context, conversationID uint, documentIDs []uint) ([]uint, error) {
	var linked []uint
	err := r.store.write(ctx, func(data *state) error {
		seen := map[uint]bool{}
		for _, l := range data.links {
			if l.conversationID == conversationID {
				seen[l.documentID] = true
			}
		}
		for _, docID := range documentIDs {
			if _, ok := data.documents[docID]; !ok || seen[docID] {
				continue
			}
			seen[docID] = true
			data.links = append(data.links, link{
				id:             r.store.newID(data),
				conversationID: conversationID,
				documentID:     docID,
				createdAt:      r.store.now(),
			})
			linked = append(linked, docID)
		}
		return nil
	})
	return linked, err
}

func (r *ConversationRepository) DocumentIDs(ctx context.Context, conversationID uint) ([]uint, error) {
	var ids []uint
	_ = r.store.read(func(data *state) error {
		for _, l := range data.links {
			if l.conversationID == conversationID {
				ids = append(ids, l.documentID)
			}
		}
		return nil
	})
	return ids, nil
}

func (r *ConversationRepository) CreateMessage(ctx context.Context, msg *conversation.Message) error {
	return r.store.write(ctx, func(data *state) error {
		if _, ok := data.conversations[msg.ConversationID]; !ok {
			return notFound(ctx, "conversation not found")
		}
		msg.ID = r.store.newID(data)
		msg.CreatedAt = r.store.now()
		data.messages = append(data.messages, *msg)
		return nil
	})
}

func (r *ConversationRepository) ListMessages(ctx context.Context, conversationID uint) ([]*conversation.Message, error) {
	var messages []*conversation.Message
	_ = r.store.read(func(data *state) error {
		for _, msg := range data.messages {
			if msg.ConversationID == conversationID {
				m := msg
				messages = append(messages, &m)
			}
		}
		return nil
	})
	sort.SliceStable(messages, func(i, j int) bool {
		if !messages[i].CreatedAt.Equal(messages[j].CreatedAt) {
			return messages[i].CreatedAt.Before(messages[j].CreatedAt)
		}
		return messages[i].ID < messages[j].ID
	})
	return messages, nil
}

func notFound(ctx context.Context, message string) error {
	return platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeNotFound,
		message, nil, "c2a9d5e1-4f7b-4e36-8d0a-6b1e3f9c7a01")
}
