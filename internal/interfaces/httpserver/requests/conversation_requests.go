package requests

import "github.com/Aishjainam-coder/Bot-GPT-TASK/internal/domain/query"

// CreateConversationRequest starts a conversation with its first message.
type CreateConversationRequest struct {
	FirstMessage string `json:"first_message" binding:"required,min=1,max=10000"`
	Mode         string `json:"mode" binding:"omitempty,oneof=open rag"`
	DocumentIDs  []uint `json:"document_ids"`
}

// AddMessageRequest appends a user message to a conversation.
type AddMessageRequest struct {
	Message string `json:"message" binding:"required,min=1,max=10000"`
}

// ListQuery carries page selection. Nil fields fall back to defaults.
type ListQuery struct {
	Page     *int `form:"page" binding:"omitempty,min=1"`
	PageSize *int `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// Pagination resolves the query into a page selection.
func (q ListQuery) Pagination() query.Pagination {
	page, size := 1, query.DefaultPageSize
	if q.Page != nil {
		page = *q.Page
	}
	if q.PageSize != nil {
		size = *q.PageSize
	}
	return query.NewPagination(page, size)
}
