package retrieval

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aishjainam-coder/Bot-GPT-TASK/internal/domain/conversation"
	"github.com/Aishjainam-coder/Bot-GPT-TASK/internal/domain/document"
)

type MockDocumentSource struct {
	FindByConversationFunc func(ctx context.Context, conversationID uint) ([]*document.Document, error)
}

func (m *MockDocumentSource) FindByConversation(ctx context.Context, conversationID uint) ([]*document.Document, error) {
	if m.FindByConversationFunc != nil {
		return m.FindByConversationFunc(ctx, conversationID)
	}
	return nil, nil
}

func docsSource(docs ...*document.Document) *MockDocumentSource {
	return &MockDocumentSource{FindByConversationFunc: func(context.Context, uint) ([]*document.Document, error) {
		return docs, nil
	}}
}

func strPtr(s string) *string { return &s }

func TestRetrieveSkipsOpenMode(t *testing.T) {
	called := false
	source := &MockDocumentSource{FindByConversationFunc: func(context.Context, uint) ([]*document.Document, error) {
		called = true
		return nil, nil
	}}

	chunks, err := NewRetriever(source, 3, zerolog.Nop()).Retrieve(context.Background(), 1, conversation.ModeOpen, "anything")
	require.NoError(t, err)
	assert.Empty(t, chunks)
	assert.False(t, called)
}

func TestRetrieveWithoutDocuments(t *testing.T) {
	chunks, err := NewRetriever(docsSource(), 3, zerolog.Nop()).Retrieve(context.Background(), 1, conversation.ModeRAG, "refunds")
	require.NoError(t, err)
	assert.Empty(t, chunks)
}

func TestRetrieveRanksChunksAcrossDocuments(t *testing.T) {
	source := docsSource(
		&document.Document{ID: 1, Chunks: []document.Chunk{
			{Text: "refunds are processed weekly"},
			{Text: "office hours are nine to five"},
		}},
		&document.Document{ID: 2, Chunks: []document.Chunk{
			{Text: "refunds are issued within 30 days"},
		}},
	)

	chunks, err := NewRetriever(source, 2, zerolog.Nop()).Retrieve(context.Background(), 1, conversation.ModeRAG, "when are refunds issued")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"refunds are issued within 30 days",
		"refunds are processed weekly",
	}, chunks)
}

func TestRetrieveSentenceFallback(t *testing.T) {
	source := docsSource(&document.Document{
		ID:      1,
		Content: strPtr("Shipping is free. Refunds take 30 days. Support answers email. Refunds need a receipt."),
	})

	chunks, err := NewRetriever(source, 3, zerolog.Nop()).Retrieve(context.Background(), 1, conversation.ModeRAG, "refunds")
	require.NoError(t, err)
	// Only the first three sentences are considered, so the receipt sentence is never seen.
	assert.Equal(t, []string{"Refunds take 30 days"}, chunks)
}

func TestRetrieveSentenceFallbackNeedsDocumentOverlap(t *testing.T) {
	// "fund" is a substring of "Refunds" but shares no whole word with the document.
	source := docsSource(&document.Document{ID: 1, Content: strPtr("Refunds take 30 days.")})

	chunks, err := NewRetriever(source, 3, zerolog.Nop()).Retrieve(context.Background(), 1, conversation.ModeRAG, "fund")
	require.NoError(t, err)
	assert.Empty(t, chunks)
}

func TestRetrievePropagatesSourceErrors(t *testing.T) {
	source := &MockDocumentSource{FindByConversationFunc: func(context.Context, uint) ([]*document.Document, error) {
		return nil, errors.New("db down")
	}}

	_, err := NewRetriever(source, 3, zerolog.Nop()).Retrieve(context.Background(), 1, conversation.ModeRAG, "refunds")
	assert.Error(t, err)
}
