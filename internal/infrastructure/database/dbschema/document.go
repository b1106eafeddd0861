package dbschema

import (
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/datatypes"

	"github.com/Aishjainam-coder/Bot-GPT-TASK/internal/domain/document"
)

// Document represents the database schema for documents. Chunks are stored as
// a JSON array of {"text": ...} objects.
type Document struct {
	ID        uint              `gorm:"primaryKey"`
	Filename  string            `gorm:"type:varchar(255);not null"`
	FilePath  *string           `gorm:"type:varchar(500)"`
	Content   *string           `gorm:"type:text"`
	Chunks    datatypes.JSON    `gorm:"type:jsonb"`
	Metadata  datatypes.JSONMap `gorm:"type:jsonb"`
	CreatedAt time.Time         `gorm:"autoCreateTime"`
}

func (Document) TableName() string {
	return "documents"
}

func NewSchemaDocument(d *document.Document) (*Document, error) {
	if d == nil {
		return nil, nil
	}

	var chunks datatypes.JSON
	if len(d.Chunks) > 0 {
		raw, err := json.Marshal(d.Chunks)
		if err != nil {
			return nil, fmt.Errorf("encode chunks: %w", err)
		}
		chunks = datatypes.JSON(raw)
	}

	var metadata datatypes.JSONMap
	if len(d.Metadata) > 0 {
		metadata = datatypes.JSONMap(d.Metadata)
	}

	return &Document{
		ID:        d.ID,
		Filename:  d.Filename,
		FilePath:  d.FilePath,
		Content:   d.Content,
		Chunks:    chunks,
		Metadata:  metadata,
		CreatedAt: d.CreatedAt,
	}, nil
}

func (d *Document) EtoD() (*document.Document, error) {
	if d == nil {
		return nil, nil
	}

	var chunks []document.Chunk
	if len(d.Chunks) > 0 && string(d.Chunks) != "null" {
		if err := json.Unmarshal(d.Chunks, &chunks); err != nil {
			return nil, fmt.Errorf("decode chunks of document %d: %w", d.ID, err)
		}
	}

	return &document.Document{
		ID:        d.ID,
		Filename:  d.Filename,
		FilePath:  d.FilePath,
		Content:   d.Content,
		Chunks:    chunks,
		Metadata:  map[string]any(d.Metadata),
		CreatedAt: d.CreatedAt,
	}, nil
}
