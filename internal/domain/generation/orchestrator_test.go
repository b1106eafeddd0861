package generation

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aishjainam-coder/Bot-GPT-TASK/internal/domain/conversation"
	"github.com/Aishjainam-coder/Bot-GPT-TASK/internal/domain/llm"
	"github.com/Aishjainam-coder/Bot-GPT-TASK/internal/domain/retrieval"
	"github.com/Aishjainam-coder/Bot-GPT-TASK/internal/utils/platformerrors"
)

// MockMessageStore keeps messages in memory.
type MockMessageStore struct {
	mu              sync.Mutex
	messages        []*conversation.Message
	CreateMessageFn func(ctx context.Context, msg *conversation.Message) error
}

func (m *MockMessageStore) ListMessages(ctx context.Context, conversationID uint) ([]*conversation.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*conversation.Message
	for _, msg := range m.messages {
		if msg.ConversationID == conversationID {
			out = append(out, msg)
		}
	}
	return out, nil
}

func (m *MockMessageStore) CreateMessage(ctx context.Context, msg *conversation.Message) error {
	if m.CreateMessageFn != nil {
		if err := m.CreateMessageFn(ctx, msg); err != nil {
			return err
		}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	msg.ID = uint(len(m.messages) + 1)
	m.messages = append(m.messages, msg)
	return nil
}

func (m *MockMessageStore) add(t *testing.T, conversationID uint, role conversation.Role, content string) *conversation.Message {
	t.Helper()
	msg := &conversation.Message{ConversationID: conversationID, Role: role, Content: content}
	require.NoError(t, m.CreateMessage(context.Background(), msg))
	return msg
}

type MockRetriever struct {
	RetrieveFunc func(ctx context.Context, conversationID uint, mode conversation.Mode, query string) ([]string, error)
}

func (m *MockRetriever) Retrieve(ctx context.Context, conversationID uint, mode conversation.Mode, query string) ([]string, error) {
	if m.RetrieveFunc != nil {
		return m.RetrieveFunc(ctx, conversationID, mode, query)
	}
	return nil, nil
}

type MockClient struct {
	requests             []llm.CompletionRequest
	CreateCompletionFunc func(ctx context.Context, req llm.CompletionRequest) (*llm.Completion, error)
}

func (m *MockClient) CreateCompletion(ctx context.Context, req llm.CompletionRequest) (*llm.Completion, error) {
	m.requests = append(m.requests, req)
	if m.CreateCompletionFunc != nil {
		return m.CreateCompletionFunc(ctx, req)
	}
	return &llm.Completion{Content: "generated answer", TotalTokens: 42, Model: "served-model"}, nil
}

func defaultOptions() Options {
	return Options{
		Model:             "test-model",
		MaxResponseTokens: 100,
		MaxContextTokens:  1000,
		Temperature:       0.7,
		Timeout:           time.Second,
	}
}

func TestGenerateReplyOpenMode(t *testing.T) {
	store := &MockMessageStore{}
	conv := &conversation.Conversation{ID: 1, Mode: conversation.ModeOpen}
	store.add(t, 1, conversation.RoleUser, "Hello")
	store.add(t, 1, conversation.RoleAssistant, "Hi!")
	store.add(t, 2, conversation.RoleUser, "other conversation")
	userMessage := store.add(t, 1, conversation.RoleUser, "How are you?")

	client := &MockClient{}
	orchestrator := NewOrchestrator(store, &MockRetriever{}, client, defaultOptions(), zerolog.Nop())

	reply, err := orchestrator.GenerateReply(context.Background(), conv, userMessage)
	require.NoError(t, err)

	assert.Equal(t, conversation.RoleAssistant, reply.Role)
	assert.Equal(t, "generated answer", reply.Content)
	assert.Equal(t, 42, reply.TokensUsed)
	require.NotNil(t, reply.ModelUsed)
	assert.Equal(t, "served-model", *reply.ModelUsed)
	assert.NotZero(t, reply.ID)

	require.Len(t, client.requests, 1)
	req := client.requests[0]
	assert.Equal(t, "test-model", req.Model)
	assert.Equal(t, 100, req.MaxTokens)
	assert.InDelta(t, 0.7, req.Temperature, 1e-6)
	assert.Empty(t, req.SystemPrompt)
	assert.Equal(t, []llm.ChatMessage{
		{Role: llm.RoleUser, Content: "Hello"},
		{Role: llm.RoleAssistant, Content: "Hi!"},
		{Role: llm.RoleUser, Content: "How are you?"},
	}, req.Messages)
}

func TestGenerateReplyFallsBackToRequestedModel(t *testing.T) {
	store := &MockMessageStore{}
	userMessage := store.add(t, 1, conversation.RoleUser, "Hello")
	client := &MockClient{CreateCompletionFunc: func(context.Context, llm.CompletionRequest) (*llm.Completion, error) {
		return &llm.Completion{Content: "ok", TotalTokens: 3}, nil
	}}

	reply, err := NewOrchestrator(store, &MockRetriever{}, client, defaultOptions(), zerolog.Nop()).
		GenerateReply(context.Background(), &conversation.Conversation{ID: 1, Mode: conversation.ModeOpen}, userMessage)
	require.NoError(t, err)
	require.NotNil(t, reply.ModelUsed)
	assert.Equal(t, "test-model", *reply.ModelUsed)
}

func TestGenerateReplyModelFailureStoresFallback(t *testing.T) {
	store := &MockMessageStore{}
	userMessage := store.add(t, 1, conversation.RoleUser, "Hello")
	client := &MockClient{CreateCompletionFunc: func(ctx context.Context, _ llm.CompletionRequest) (*llm.Completion, error) {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerInfrastructure, platformerrors.ErrorTypeExternal,
			"LLM API error: upstream unavailable", errors.New("503"), "")
	}}

	reply, err := NewOrchestrator(store, &MockRetriever{}, client, defaultOptions(), zerolog.Nop()).
		GenerateReply(context.Background(), &conversation.Conversation{ID: 1, Mode: conversation.ModeOpen}, userMessage)
	require.NoError(t, err)

	assert.Equal(t, FallbackPrefix+"LLM API error: upstream unavailable", reply.Content)
	assert.Zero(t, reply.TokensUsed)
	assert.Nil(t, reply.ModelUsed)

	stored, _ := store.ListMessages(context.Background(), 1)
	require.Len(t, stored, 2)
	assert.Equal(t, reply.Content, stored[1].Content)
}

func TestGenerateReplyFailureLogRedactsPrompt(t *testing.T) {
	failing := &MockClient{CreateCompletionFunc: func(ctx context.Context, _ llm.CompletionRequest) (*llm.Completion, error) {
		return nil, errors.New("boom")
	}}

	tests := []struct {
		name   string
		redact func(string) string
		want   string
	}{
		{"nil redactor drops text", nil, "[REDACTED]"},
		{"custom redactor", strings.ToUpper, "SECRET PLAN"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			store := &MockMessageStore{}
			userMessage := store.add(t, 1, conversation.RoleUser, "secret plan")
			opts := defaultOptions()
			opts.Redact = tt.redact

			_, err := NewOrchestrator(store, &MockRetriever{}, failing, opts, zerolog.New(&buf)).
				GenerateReply(context.Background(), &conversation.Conversation{ID: 1, Mode: conversation.ModeOpen}, userMessage)
			require.NoError(t, err)

			assert.Contains(t, buf.String(), `"prompt":"`+tt.want+`"`)
			assert.NotContains(t, buf.String(), "secret plan")
		})
	}
}

func TestGenerateReplyTimeoutStoresFallback(t *testing.T) {
	store := &MockMessageStore{}
	userMessage := store.add(t, 1, conversation.RoleUser, "Hello")
	client := &MockClient{CreateCompletionFunc: func(ctx context.Context, _ llm.CompletionRequest) (*llm.Completion, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	}}
	opts := defaultOptions()
	opts.Timeout = 10 * time.Millisecond

	reply, err := NewOrchestrator(store, &MockRetriever{}, client, opts, zerolog.Nop()).
		GenerateReply(context.Background(), &conversation.Conversation{ID: 1, Mode: conversation.ModeOpen}, userMessage)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(reply.Content, FallbackPrefix))
	assert.Contains(t, reply.Content, "deadline exceeded")
	assert.Zero(t, reply.TokensUsed)
}

func TestGenerateReplyRAGInjectsContext(t *testing.T) {
	store := &MockMessageStore{}
	userMessage := store.add(t, 1, conversation.RoleUser, "how long do refunds take")
	var gotQuery string
	retriever := &MockRetriever{RetrieveFunc: func(_ context.Context, _ uint, mode conversation.Mode, query string) ([]string, error) {
		assert.Equal(t, conversation.ModeRAG, mode)
		gotQuery = query
		return []string{"Refunds take 30 days."}, nil
	}}
	client := &MockClient{}

	_, err := NewOrchestrator(store, retriever, client, defaultOptions(), zerolog.Nop()).
		GenerateReply(context.Background(), &conversation.Conversation{ID: 1, Mode: conversation.ModeRAG}, userMessage)
	require.NoError(t, err)

	assert.Equal(t, "how long do refunds take", gotQuery)
	require.Len(t, client.requests, 1)
	req := client.requests[0]
	assert.Equal(t, RAGInstruction+retrieval.BuildContext([]string{"Refunds take 30 days."}), req.SystemPrompt)
	assert.Equal(t, []llm.ChatMessage{{Role: llm.RoleUser, Content: "how long do refunds take"}}, req.Messages)
}

func TestGenerateReplyRAGWithoutMatchesSkipsSystemPrompt(t *testing.T) {
	store := &MockMessageStore{}
	userMessage := store.add(t, 1, conversation.RoleUser, "unrelated question")
	client := &MockClient{}

	_, err := NewOrchestrator(store, &MockRetriever{}, client, defaultOptions(), zerolog.Nop()).
		GenerateReply(context.Background(), &conversation.Conversation{ID: 1, Mode: conversation.ModeRAG}, userMessage)
	require.NoError(t, err)
	require.Len(t, client.requests, 1)
	assert.Empty(t, client.requests[0].SystemPrompt)
}

func TestGenerateReplyRetrievalErrorIsReturned(t *testing.T) {
	store := &MockMessageStore{}
	userMessage := store.add(t, 1, conversation.RoleUser, "question")
	retriever := &MockRetriever{RetrieveFunc: func(context.Context, uint, conversation.Mode, string) ([]string, error) {
		return nil, errors.New("db down")
	}}
	client := &MockClient{}

	_, err := NewOrchestrator(store, retriever, client, defaultOptions(), zerolog.Nop()).
		GenerateReply(context.Background(), &conversation.Conversation{ID: 1, Mode: conversation.ModeRAG}, userMessage)
	require.Error(t, err)
	assert.Empty(t, client.requests)

	stored, _ := store.ListMessages(context.Background(), 1)
	assert.Len(t, stored, 1)
}

func TestGenerateReplyTruncatesHistory(t *testing.T) {
	store := &MockMessageStore{}
	store.add(t, 1, conversation.RoleUser, strings.Repeat("a", 40))
	store.add(t, 1, conversation.RoleAssistant, strings.Repeat("b", 20))
	userMessage := store.add(t, 1, conversation.RoleUser, strings.Repeat("c", 20))
	client := &MockClient{}

	opts := defaultOptions()
	opts.MaxContextTokens = 20
	opts.MaxResponseTokens = 10

	_, err := NewOrchestrator(store, &MockRetriever{}, client, opts, zerolog.Nop()).
		GenerateReply(context.Background(), &conversation.Conversation{ID: 1, Mode: conversation.ModeOpen}, userMessage)
	require.NoError(t, err)

	require.Len(t, client.requests, 1)
	assert.Equal(t, []llm.ChatMessage{
		{Role: llm.RoleAssistant, Content: strings.Repeat("b", 20)},
		{Role: llm.RoleUser, Content: strings.Repeat("c", 20)},
	}, client.requests[0].Messages)
}

func TestGenerateReplyKeepsSystemPromptWhenTruncating(t *testing.T) {
	store := &MockMessageStore{}
	store.add(t, 1, conversation.RoleUser, strings.Repeat("a", 40))
	userMessage := store.add(t, 1, conversation.RoleUser, strings.Repeat("c", 20))
	retriever := &MockRetriever{RetrieveFunc: func(context.Context, uint, conversation.Mode, string) ([]string, error) {
		return []string{strings.Repeat("x", 400)}, nil
	}}
	client := &MockClient{}

	opts := defaultOptions()
	opts.MaxContextTokens = 20
	opts.MaxResponseTokens = 10

	_, err := NewOrchestrator(store, retriever, client, opts, zerolog.Nop()).
		GenerateReply(context.Background(), &conversation.Conversation{ID: 1, Mode: conversation.ModeRAG}, userMessage)
	require.NoError(t, err)

	require.Len(t, client.requests, 1)
	req := client.requests[0]
	assert.True(t, strings.HasPrefix(req.SystemPrompt, RAGInstruction))
	assert.Empty(t, req.Messages)
}

func TestGenerateReplyStoreFailure(t *testing.T) {
	store := &MockMessageStore{}
	userMessage := store.add(t, 1, conversation.RoleUser, "Hello")
	store.CreateMessageFn = func(context.Context, *conversation.Message) error {
		return errors.New("insert failed")
	}

	_, err := NewOrchestrator(store, &MockRetriever{}, &MockClient{}, defaultOptions(), zerolog.Nop()).
		GenerateReply(context.Background(), &conversation.Conversation{ID: 1, Mode: conversation.ModeOpen}, userMessage)
	assert.Error(t, err)
}
