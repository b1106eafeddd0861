package documentrepo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/Aishjainam-coder/Bot-GPT-TASK/internal/domain/document"
	"github.com/Aishjainam-coder/Bot-GPT-TASK/internal/domain/query"
	"github.com/Aishjainam-coder/Bot-GPT-TASK/internal/infrastructure/database/dbschema"
	"github.com/Aishjainam-coder/Bot-GPT-TASK/internal/infrastructure/database/transaction"
	"github.com/Aishjainam-coder/Bot-GPT-TASK/internal/utils/platformerrors"
)

type DocumentGormRepository struct {
	db *transaction.Database
}

var _ document.Repository = (*DocumentGormRepository)(nil)

func NewDocumentGormRepository(db *transaction.Database) *DocumentGormRepository {
	return &DocumentGormRepository{db}
}

func (repo *DocumentGormRepository) Create(ctx context.Context, doc *document.Document) error {
	model, err := dbschema.NewSchemaDocument(doc)
	if err != nil {
		return platformerrors.AsError(ctx, platformerrors.LayerRepository, err, "failed to encode document")
	}
	if err := repo.db.GetTx(ctx).Create(model).Error; err != nil {
		return platformerrors.AsError(ctx, platformerrors.LayerRepository, err, "failed to create document")
	}
	doc.ID = model.ID
	doc.CreatedAt = model.CreatedAt
	return nil
}

func (repo *DocumentGormRepository) FindByID(ctx context.Context, id uint) (*document.Document, error) {
	var row dbschema.Document
	err := repo.db.GetTx(ctx).Where("id = ?", id).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeNotFound,
			"document not found", err, "1f6d3c9e-27a4-4b8f-a0c5-8e9b2d4f6a01")
	}
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerRepository, err, "failed to find document by ID")
	}
	return toDomain(ctx, &row)
}

func (repo *DocumentGormRepository) List(ctx context.Context, pagination query.Pagination) ([]*document.Document, int64, error) {
	tx := repo.db.GetTx(ctx)

	var total int64
	if err := tx.Model(&dbschema.Document{}).Count(&total).Error; err != nil {
		return nil, 0, platformerrors.AsError(ctx, platformerrors.LayerRepository, err, "failed to count documents")
	}

	var rows []dbschema.Document
	err := tx.Order("id DESC").
		Offset(pagination.Offset()).
		Limit(pagination.Limit()).
		Find(&rows).Error
	if err != nil {
		return nil, 0, platformerrors.AsError(ctx, platformerrors.LayerRepository, err, "failed to list documents")
	}

	docs, err := toDomainList(ctx, rows)
	if err != nil {
		return nil, 0, err
	}
	return docs, total, nil
}

func (repo *DocumentGormRepository) FindByConversation(ctx context.Context, conversationID uint) ([]*document.Document, error) {
	var rows []dbschema.Document
	err := repo.db.GetTx(ctx).
		Joins("JOIN conversation_documents ON conversation_documents.document_id = documents.id").
		Where("conversation_documents.conversation_id = ?", conversationID).
		Order("documents.id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerRepository, err, "failed to load linked documents")
	}
	return toDomainList(ctx, rows)
}

func toDomain(ctx context.Context, row *dbschema.Document) (*document.Document, error) {
	doc, err := row.EtoD()
	if err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError,
			"stored document is malformed", err, "1f6d3c9e-27a4-4b8f-a0c5-8e9b2d4f6a02")
	}
	return doc, nil
}

func toDomainList(ctx context.Context, rows []dbschema.Document) ([]*document.Document, error) {
	docs := make([]*document.Document, 0, len(rows))
	for i := range rows {
		doc, err := toDomain(ctx, &rows[i])
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, nil
}
