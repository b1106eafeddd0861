package conversation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/Aishjainam-coder/Bot-GPT-TASK/internal/domain/query"
	"github.com/Aishjainam-coder/Bot-GPT-TASK/internal/utils/platformerrors"
)

// Service describes the business logic surface for conversations.
type Service interface {
	Create(ctx context.Context, userID uint, input CreateInput) (*Conversation, error)
	AddMessage(ctx context.Context, userID uint, conversationID uint, content string) (*Message, error)
	Get(ctx context.Context, userID uint, conversationID uint) (*Conversation, error)
	List(ctx context.Context, userID uint, pagination query.Pagination) ([]*Conversation, int64, error)
	Delete(ctx context.Context, userID uint, conversationID uint) error
}

type service struct {
	repo      Repository
	generator ReplyGenerator
	locker    Locker
	log       zerolog.Logger
	now       func() time.Time
}

// NewService wires the conversation service with its collaborators.
func NewService(repo Repository, generator ReplyGenerator, locker Locker, log zerolog.Logger) Service {
	return &service{
		repo:      repo,
		generator: generator,
		locker:    locker,
		log:       log.With().Str("component", "conversation-service").Logger(),
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// LockKey names the lock guarding writes to a conversation.
func LockKey(conversationID uint) string {
	return fmt.Sprintf("conversation:%d", conversationID)
}

func (s *service) Create(ctx context.Context, userID uint, input CreateInput) (*Conversation, error) {
	if err := ValidateCreateInput(ctx, &input); err != nil {
		return nil, err
	}

	var conv *Conversation
	err := s.repo.Transaction(ctx, func(ctx context.Context) error {
		conv = &Conversation{
			UserID: userID,
			Title:  TitleFrom(input.FirstMessage),
			Mode:   input.Mode,
		}
		if err := s.repo.Create(ctx, conv); err != nil {
			return err
		}

		if conv.Mode == ModeRAG {
			linked, err := s.repo.LinkDocuments(ctx, conv.ID, input.DocumentIDs)
			if err != nil {
				return err
			}
			if len(linked) < len(input.DocumentIDs) {
				s.log.Warn().
					Uint("conversation_id", conv.ID).
					Int("requested", len(input.DocumentIDs)).
					Int("linked", len(linked)).
					Msg("skipped unknown document ids")
			}
		}

		if _, err := s.appendExchange(ctx, conv, input.FirstMessage); err != nil {
			return err
		}
		return s.loadDetail(ctx, conv)
	})
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to create conversation")
	}

	s.log.Info().
		Uint("conversation_id", conv.ID).
		Uint("user_id", userID).
		Str("mode", string(conv.Mode)).
		Msg("conversation created")
	return conv, nil
}

func (s *service) AddMessage(ctx context.Context, userID uint, conversationID uint, content string) (*Message, error) {
	if err := ValidateMessage(ctx, content); err != nil {
		return nil, err
	}
	if _, err := s.repo.FindByID(ctx, conversationID, userID); err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to load conversation")
	}

	unlock, err := s.lockConversation(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	var userMessage *Message
	err = s.repo.Transaction(ctx, func(ctx context.Context) error {
		// Re-read under the lock so a concurrent delete is observed.
		conv, err := s.repo.FindByID(ctx, conversationID, userID)
		if err != nil {
			return err
		}
		userMessage, err = s.appendExchange(ctx, conv, content)
		if err != nil {
			return err
		}
		return s.repo.Touch(ctx, conv.ID, s.now())
	})
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to add message")
	}
	return userMessage, nil
}

// appendExchange stores the user message and then the generated reply.
func (s *service) appendExchange(ctx context.Context, conv *Conversation, content string) (*Message, error) {
	userMessage := &Message{
		ConversationID: conv.ID,
		Role:           RoleUser,
		Content:        content,
	}
	if err := s.repo.CreateMessage(ctx, userMessage); err != nil {
		return nil, err
	}
	if _, err := s.generator.GenerateReply(ctx, conv, userMessage); err != nil {
		return nil, err
	}
	return userMessage, nil
}

func (s *service) Get(ctx context.Context, userID uint, conversationID uint) (*Conversation, error) {
	conv, err := s.repo.FindByID(ctx, conversationID, userID)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to load conversation")
	}
	if err := s.loadDetail(ctx, conv); err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to load conversation detail")
	}
	return conv, nil
}

func (s *service) loadDetail(ctx context.Context, conv *Conversation) error {
	messages, err := s.repo.ListMessages(ctx, conv.ID)
	if err != nil {
		return err
	}
	documentIDs, err := s.repo.DocumentIDs(ctx, conv.ID)
	if err != nil {
		return err
	}
	conv.Messages = messages
	conv.MessageCount = len(messages)
	conv.DocumentIDs = documentIDs
	return nil
}

func (s *service) List(ctx context.Context, userID uint, pagination query.Pagination) ([]*Conversation, int64, error) {
	conversations, total, err := s.repo.List(ctx, userID, pagination)
	if err != nil {
		return nil, 0, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to list conversations")
	}
	return conversations, total, nil
}

func (s *service) Delete(ctx context.Context, userID uint, conversationID uint) error {
	if _, err := s.repo.FindByID(ctx, conversationID, userID); err != nil {
		return platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to load conversation")
	}

	unlock, err := s.lockConversation(ctx, conversationID)
	if err != nil {
		return err
	}
	defer unlock()

	if err := s.repo.Delete(ctx, conversationID); err != nil {
		return platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to delete conversation")
	}

	s.log.Info().Uint("conversation_id", conversationID).Msg("conversation deleted")
	return nil
}

// lockConversation reports any untyped acquisition failure as TIMEOUT: the
// conversation stayed busy for the whole wait budget.
func (s *service) lockConversation(ctx context.Context, conversationID uint) (func(), error) {
	unlock, err := s.locker.Lock(ctx, LockKey(conversationID))
	if err == nil {
		return unlock, nil
	}
	var platformErr *platformerrors.PlatformError
	if errors.As(err, &platformErr) {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to lock conversation")
	}
	return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeTimeout,
		"conversation is busy, try again", err, "3d9f1b6e-52a4-4c07-8e1d-6a2b7c9f0e13")
}
