package inmemory

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aishjainam-coder/Bot-GPT-TASK/internal/domain/conversation"
	"github.com/Aishjainam-coder/Bot-GPT-TASK/internal/domain/document"
	"github.com/Aishjainam-coder/Bot-GPT-TASK/internal/domain/query"
	"github.com/Aishjainam-coder/Bot-GPT-TASK/internal/utils/platformerrors"
)

func TestTransactionRollsBackOnError(t *testing.T) {
	store := NewStore()
	repo := store.Conversations()
	ctx := context.Background()

	boom := errors.New("boom")
	err := repo.Transaction(ctx, func(ctx context.Context) error {
		conv := &conversation.Conversation{UserID: 1, Mode: conversation.ModeOpen}
		require.NoError(t, repo.Create(ctx, conv))
		require.NoError(t, repo.CreateMessage(ctx, &conversation.Message{ConversationID: conv.ID, Role: conversation.RoleUser, Content: "hi"}))
		return boom
	})

	assert.ErrorIs(t, err, boom)
	list, total, err := repo.List(ctx, 1, query.NewPagination(1, 10))
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, list)
}

func TestDeleteCascadesMessagesAndLinks(t *testing.T) {
	store := NewStore()
	repo := store.Conversations()
	docs := store.Documents()
	ctx := context.Background()

	doc := &document.Document{Filename: "a.txt"}
	require.NoError(t, docs.Create(ctx, doc))
	conv := &conversation.Conversation{UserID: 1, Mode: conversation.ModeRAG}
	require.NoError(t, repo.Create(ctx, conv))
	linked, err := repo.LinkDocuments(ctx, conv.ID, []uint{doc.ID, 999, doc.ID})
	require.NoError(t, err)
	assert.Equal(t, []uint{doc.ID}, linked)
	require.NoError(t, repo.CreateMessage(ctx, &conversation.Message{ConversationID: conv.ID, Role: conversation.RoleUser, Content: "hi"}))

	require.NoError(t, repo.Delete(ctx, conv.ID))

	_, err = repo.FindByID(ctx, conv.ID, 1)
	assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeNotFound))
	messages, err := repo.ListMessages(ctx, conv.ID)
	require.NoError(t, err)
	assert.Empty(t, messages)
	ids, err := repo.DocumentIDs(ctx, conv.ID)
	require.NoError(t, err)
	assert.Empty(t, ids)

	_, err = docs.FindByID(ctx, doc.ID)
	assert.NoError(t, err, "documents outlive their conversations")

	err = repo.Delete(ctx, conv.ID)
	assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeNotFound))
}

func TestFindByIDScopesToOwner(t *testing.T) {
	store := NewStore()
	repo := store.Conversations()
	ctx := context.Background()

	conv := &conversation.Conversation{UserID: 1, Mode: conversation.ModeOpen}
	require.NoError(t, repo.Create(ctx, conv))

	_, err := repo.FindByID(ctx, conv.ID, 2)
	assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeNotFound))
}

func TestUsersAreCreatedOnce(t *testing.T) {
	users := NewStore().Users()
	ctx := context.Background()

	first, err := users.GetOrCreate(ctx, "default")
	require.NoError(t, err)
	second, err := users.GetOrCreate(ctx, "default")
	require.NoError(t, err)
	other, err := users.GetOrCreate(ctx, "alice")
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.NotEqual(t, first.ID, other.ID)
}
