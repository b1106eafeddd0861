package conversationrepo

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/Aishjainam-coder/Bot-GPT-TASK/internal/domain/conversation"
	"github.com/Aishjainam-coder/Bot-GPT-TASK/internal/domain/query"
	"github.com/Aishjainam-coder/Bot-GPT-TASK/internal/infrastructure/database/dbschema"
	"github.com/Aishjainam-coder/Bot-GPT-TASK/internal/infrastructure/database/transaction"
	"github.com/Aishjainam-coder/Bot-GPT-TASK/internal/utils/platformerrors"
)

type ConversationGormRepository struct {
	db *transaction.Database
}

var _ conversation.Repository = (*ConversationGormRepository)(nil)

func NewConversationGormRepository(db *transaction.Database) *ConversationGormRepository {
	return &ConversationGormRepository{db}
}

func (repo *ConversationGormRepository) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return repo.db.Transaction(ctx, fn)
}

func (repo *ConversationGormRepository) Create(ctx context.Context, conv *conversation.Conversation) error {
	model := dbschema.NewSchemaConversation(conv)
	if err := repo.db.GetTx(ctx).Create(model).Error; err != nil {
		return platformerrors.AsError(ctx, platformerrors.LayerRepository, err, "failed to create conversation")
	}
	conv.ID = model.ID
	conv.CreatedAt = model.CreatedAt
	conv.UpdatedAt = model.UpdatedAt
	return nil
}

func (repo *ConversationGormRepository) FindByID(ctx context.Context, id uint, userID uint) (*conversation.Conversation, error) {
	var row dbschema.Conversation
	err := repo.db.GetTx(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeNotFound,
			"conversation not found", err, "e4b0a7d2-8c13-4a5e-9f6b-0d2c1e7a3b01")
	}
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerRepository, err, "failed to find conversation by ID")
	}
	return row.EtoD(), nil
}

type messageCount struct {
	ConversationID uint
	Count          int
}

func (repo *ConversationGormRepository) List(ctx context.Context, userID uint, pagination query.Pagination) ([]*conversation.Conversation, int64, error) {
	tx := repo.db.GetTx(ctx)

	var total int64
	if err := tx.Model(&dbschema.Conversation{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		return nil, 0, platformerrors.AsError(ctx, platformerrors.LayerRepository, err, "failed to count conversations")
	}

	var rows []dbschema.Conversation
	err := tx.Where("user_id = ?", userID).
		Order("updated_at DESC").
		Order("id DESC").
		Offset(pagination.Offset()).
		Limit(pagination.Limit()).
		Find(&rows).Error
	if err != nil {
		return nil, 0, platformerrors.AsError(ctx, platformerrors.LayerRepository, err, "failed to list conversations")
	}
	if len(rows) == 0 {
		return []*conversation.Conversation{}, total, nil
	}

	ids := make([]uint, len(rows))
	for i := range rows {
		ids[i] = rows[i].ID
	}
	var counts []messageCount
	err = tx.Model(&dbschema.Message{}).
		Select("conversation_id, COUNT(*) AS count").
		Where("conversation_id IN ?", ids).
		Group("conversation_id").
		Scan(&counts).Error
	if err != nil {
		return nil, 0, platformerrors.AsError(ctx, platformerrors.LayerRepository, err, "failed to count messages")
	}
	byConversation := make(map[uint]int, len(counts))
	for _, c := range counts {
		byConversation[c.ConversationID] = c.Count
	}

	result := make([]*conversation.Conversation, len(rows))
	for i := range rows {
		result[i] = rows[i].EtoD()
		result[i].MessageCount = byConversation[rows[i].ID]
	}
	return result, total, nil
}

func (repo *ConversationGormRepository) Touch(ctx context.Context, id uint, at time.Time) error {
	err := repo.db.GetTx(ctx).
		Model(&dbschema.Conversation{}).
		Where("id = ?", id).
		UpdateColumn("updated_at", at).Error
	if err != nil {
		return platformerrors.AsError(ctx, platformerrors.LayerRepository, err, "failed to touch conversation")
	}
	return nil
}

func (repo *ConversationGormRepository) Delete(ctx context.Context, id uint) error {
	return repo.db.Transaction(ctx, func(ctx context.Context) error {
		tx := repo.db.GetTx(ctx)
		if err := tx.Where("conversation_id = ?", id).Delete(&dbschema.Message{}).Error; err != nil {
			return platformerrors.AsError(ctx, platformerrors.LayerRepository, err, "failed to delete messages")
		}
		if err := tx.Where("conversation_id = ?", id).Delete(&dbschema.ConversationDocument{}).Error; err != nil {
			return platformerrors.AsError(ctx, platformerrors.LayerRepository, err, "failed to delete document links")
		}
		result := tx.Where("id = ?", id).Delete(&dbschema.Conversation{})
		if result.Error != nil {
			return platformerrors.AsError(ctx, platformerrors.LayerRepository, result.Error, "failed to delete conversation")
		}
		if result.RowsAffected == 0 {
			return platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeNotFound,
				"conversation not found", nil, "e4b0a7d2-8c13-4a5e-9f6b-0d2c1e7a3b02")
		}
		return nil
	})
}

func (repo *ConversationGormRepository) LinkDocuments(ctx context.Context, conversationID uint, documentIDs []uint) ([]uint, error) {
	if len(documentIDs) == 0 {
		return nil, nil
	}
	tx := repo.db.GetTx(ctx)

	var existing []uint
	if err := tx.Model(&dbschema.Document{}).Where("id IN ?", documentIDs).Pluck("id", &existing).Error; err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerRepository, err, "failed to look up documents")
	}
	known := make(map[uint]bool, len(existing))
	for _, id := range existing {
		known[id] = true
	}

	var (
		links  []dbschema.ConversationDocument
		linked []uint
	)
	for _, id := range documentIDs {
		if !known[id] {
			continue
		}
		known[id] = false
		links = append(links, dbschema.ConversationDocument{ConversationID: conversationID, DocumentID: id})
		linked = append(linked, id)
	}
	if len(links) == 0 {
		return nil, nil
	}
	if err := tx.Create(&links).Error; err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerRepository, err, "failed to link documents")
	}
	return linked, nil
}

func (repo *ConversationGormRepository) DocumentIDs(ctx context.Context, conversationID uint) ([]uint, error) {
	var ids []uint
	err := repo.db.GetTx(ctx).
		Model(&dbschema.ConversationDocument{}).
		Where("conversation_id = ?", conversationID).
		Order("id ASC").
		Pluck("document_id", &ids).Error
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerRepository, err, "failed to list linked documents")
	}
	return ids, nil
}

func (repo *ConversationGormRepository) CreateMessage(ctx context.Context, msg *conversation.Message) error {
	model := dbschema.NewSchemaMessage(msg)
	if err := repo.db.GetTx(ctx).Create(model).Error; err != nil {
		return platformerrors.AsError(ctx, platformerrors.LayerRepository, err, "failed to create message")
	}
	msg.ID = model.ID
	msg.CreatedAt = model.CreatedAt
	return nil
}

func (repo *ConversationGormRepository) ListMessages(ctx context.Context, conversationID uint) ([]*conversation.Message, error) {
	var rows []dbschema.Message
	err := repo.db.GetTx(ctx).
		Where("conversation_id = ?", conversationID).
		Order("created_at ASC").
		Order("id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerRepository, err, "failed to list messages")
	}
	result := make([]*conversation.Message, len(rows))
	for i := range rows {
		result[i] = rows[i].EtoD()
	}
	return result, nil
}
