package responses

import (
	"time"

	"github.com/Aishjainam-coder/Bot-GPT-TASK/internal/domain/document"
)

// DocumentResponse is a stored document without its raw content.
type DocumentResponse struct {
	ID         uint           `json:"id"`
	Filename   string         `json:"filename"`
	FilePath   *string        `json:"file_path,omitempty"`
	ChunkCount int            `json:"chunk_count"`
	Metadata   map[string]any `json:"metadata"`
	CreatedAt  time.Time      `json:"created_at"`
}

// DocumentListResponse is one page of documents.
type DocumentListResponse struct {
	Documents []DocumentResponse `json:"documents"`
	Total     int64              `json:"total"`
	Page      int                `json:"page"`
	PageSize  int                `json:"page_size"`
}

func NewDocumentResponse(doc *document.Document) DocumentResponse {
	return DocumentResponse{
		ID:         doc.ID,
		Filename:   doc.Filename,
		FilePath:   doc.FilePath,
		ChunkCount: len(doc.Chunks),
		Metadata:   doc.Metadata,
		CreatedAt:  doc.CreatedAt,
	}
}

func NewDocumentListResponse(docs []*document.Document, total int64, page, pageSize int) DocumentListResponse {
	items := make([]DocumentResponse, 0, len(docs))
	for _, doc := range docs {
		items = append(items, NewDocumentResponse(doc))
	}
	return DocumentListResponse{
		Documents: items,
		Total:     total,
		Page:      page,
		PageSize:  pageSize,
	}
}
