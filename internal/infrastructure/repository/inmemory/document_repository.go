package inmemory

import (
	"context"
	"sort"

	"github.com/Aishjainam-coder/Bot-GPT-TASK/internal/domain/document"
	"github.com/Aishjainam-coder/Bot-GPT-TASK/internal/domain/query"
)

// DocumentRepository is the in-memory document.Repository.
type DocumentRepository struct {
	store *Store
}

var _ document.Repository = (*DocumentRepository)(nil)

func (r *DocumentRepository) Create(ctx context.Context, doc *document.Document) error {
	return r.store.write(ctx, func(data *state) error {
		doc.ID = r.store.newID(data)
		doc.CreatedAt = r.store.now()
		data.documents[doc.ID] = *doc
		return nil
	})
}

func (r *DocumentRepository) FindByID(ctx context.Context, id uint) (*document.Document, error) {
	var found *document.Document
	_ = r.store.read(func(data *state) error {
		if doc, ok := data.documents[id]; ok {
			found = &doc
		}
		return nil
	})
	if found == nil {
		return nil, notFound(ctx, "document not found")
	}
	return found, nil
}

func (r *DocumentRepository) List(ctx context.Context, pagination query.Pagination) ([]*document.Document, int64, error) {
	var all []document.Document
	_ = r.store.read(func(data *state) error {
		for _, doc := range data.documents {
			all = append(all, doc)
		}
		return nil
	})
	sort.Slice(all, func(i, j int) bool { return all[i].ID > all[j].ID })

	total := int64(len(all))
	start := pagination.Offset()
	if start > len(all) {
		start = len(all)
	}
	end := start + pagination.Limit()
	if end > len(all) {
		end = len(all)
	}

	page := make([]*document.Document, 0, end-start)
	for i := start; i < end; i++ {
		doc := all[i]
		page = append(page, &doc)
	}
	return page, total, nil
}

func (r *DocumentRepository) FindByConversation(ctx context.Context, conversationID uint) ([]*document.Document, error) {
	var docs []*document.Document
	_ = r.store.read(func(data *state) error {
		for _, l := range data.links {
			if l.conversationID != conversationID {
				continue
			}
			if doc, ok := data.documents[l.documentID]; ok {
				docs = append(docs, &doc)
			}
		}
		return nil
	})
	sort.Slice(docs, func(i, j int) bool { return docs[i].ID < docs[j].ID })
	return docs, nil
}
