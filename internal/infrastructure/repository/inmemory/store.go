package inmemory

import (
	"context"
	"sync"
	"time"

	"github.com/Aishjainam-coder/Bot-GPT-TASK/internal/domain/conversation"
	"github.com/Aishjainam-coder/Bot-GPT-TASK/internal/domain/document"
	"github.com/Aishjainam-coder/Bot-GPT-TASK/internal/domain/user"
)

type txKey struct{}

type link struct {
	id             uint
	conversationID uint
	documentID     uint
	createdAt      time.Time
}

type state struct {
	nextID        uint
	users         map[uint]user.User
	conversations map[uint]conversation.Conversation
	messages      []conversation.Message
	documents     map[uint]document.Document
	links         []link
}

func (s *state) clone() *state {
	c := &state{
		nextID:        s.nextID,
		users:         make(map[uint]user.User, len(s.users)),
		conversations: make(map[uint]conversation.Conversation, len(s.conversations)),
		messages:      append([]conversation.Message(nil), s.messages...),
		documents:     make(map[uint]document.Document, len(s.documents)),
		links:         append([]link(nil), s.links...),
	}
	for k, v := range s.users {
		c.users[k] = v
	}
	for k, v := range s.conversations {
		c.conversations[k] = v
	}
	for k, v := range s.documents {
		c.documents[k] = v
	}
	return c
}

// Store is a thread-safe in-memory backend for demos and tests. It serves the
// conversation, document and user repositories from one shared state so that
// links and cascades behave like the relational schema.
//
// Writes are serialized. A transaction holds the write lock for its whole
// duration and restores a snapshot of the state when it fails.
type Store struct {
	writeMu sync.Mutex
	mu      sync.RWMutex
	data    *state
	now     func() time.Time
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		data: &state{
			users:         map[uint]user.User{},
			conversations: map[uint]conversation.Conversation{},
			documents:     map[uint]document.Document{},
		},
		now: func() time.Time { return time.Now().UTC() },
	}
}

func (s *Store) Conversations() *ConversationRepository {
	return &ConversationRepository{store: s}
}

func (s *Store) Documents() *DocumentRepository {
	return &DocumentRepository{store: s}
}

func (s *Store) Users() *UserRepository {
	return &UserRepository{store: s}
}

func (s *Store) transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if inTx(ctx) {
		return fn(ctx)
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.RLock()
	snapshot := s.data.clone()
	s.mu.RUnlock()

	if err := fn(context.WithValue(ctx, txKey{}, true)); err != nil {
		s.mu.Lock()
		s.data = snapshot
		s.mu.Unlock()
		return err
	}
	return nil
}

// write applies fn under the data lock, joining the caller's transaction or
// taking the write lock when there is none.
func (s *Store) write(ctx context.Context, fn func(data *state) error) error {
	if !inTx(ctx) {
		s.writeMu.Lock()
		defer s.writeMu.Unlock()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.data)
}

func (s *Store) read(fn func(data *state) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn(s.data)
}

func (s *Store) newID(data *state) uint {
	data.nextID++
	return data.nextID
}

func inTx(ctx context.Context) bool {
	v, _ := ctx.Value(txKey{}).(bool)
	return v
}
