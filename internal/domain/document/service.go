package document

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/Aishjainam-coder/Bot-GPT-TASK/internal/domain/query"
	"github.com/Aishjainam-coder/Bot-GPT-TASK/internal/utils/platformerrors"
)

// Service describes the business logic surface for document ingestion.
type Service interface {
	Ingest(ctx context.Context, input IngestInput) (*Document, error)
	Get(ctx context.Context, id uint) (*Document, error)
	List(ctx context.Context, pagination query.Pagination) ([]*Document, int64, error)
}

type service struct {
	repo      Repository
	chunkSize int
	log       zerolog.Logger
}

// NewService wires the document service with its repository.
func NewService(repo Repository, chunkSize int, log zerolog.Logger) Service {
	return &service{
		repo:      repo,
		chunkSize: chunkSize,
		log:       log.With().Str("component", "document-service").Logger(),
	}
}

func (s *service) Ingest(ctx context.Context, input IngestInput) (*Document, error) {
	filename := strings.TrimSpace(input.Filename)
	if filename == "" {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation,
			"filename is required", nil, "3c0e5b8a-6a55-4f0c-9a44-6f1de2b1c001")
	}
	if strings.TrimSpace(input.Content) == "" {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation,
			"content is required", nil, "3c0e5b8a-6a55-4f0c-9a44-6f1de2b1c002")
	}

	metadata := input.Metadata
	if len(metadata) == 0 {
		metadata = map[string]any{"source": DefaultSource}
	}

	content := input.Content
	doc := &Document{
		Filename: filename,
		FilePath: input.FilePath,
		Content:  &content,
		Chunks:   ChunkText(content, s.chunkSize),
		Metadata: metadata,
	}

	if err := s.repo.Create(ctx, doc); err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to store document")
	}

	s.log.Info().
		Uint("document_id", doc.ID).
		Str("filename", doc.Filename).
		Int("chunks", len(doc.Chunks)).
		Msg("document ingested")
	return doc, nil
}

func (s *service) Get(ctx context.Context, id uint) (*Document, error) {
	doc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to load document")
	}
	return doc, nil
}

func (s *service) List(ctx context.Context, pagination query.Pagination) ([]*Document, int64, error) {
	docs, total, err := s.repo.List(ctx, pagination)
	if err != nil {
		return nil, 0, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to list documents")
	}
	return docs, total, nil
}
