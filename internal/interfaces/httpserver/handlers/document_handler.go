package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/Aishjainam-coder/Bot-GPT-TASK/internal/domain/document"
	"github.com/Aishjainam-coder/Bot-GPT-TASK/internal/interfaces/httpserver/requests"
	"github.com/Aishjainam-coder/Bot-GPT-TASK/internal/interfaces/httpserver/responses"
	"github.com/Aishjainam-coder/Bot-GPT-TASK/internal/utils/platformerrors"
)

// DocumentHandler exposes HTTP entrypoints for document ingestion.
type DocumentHandler struct {
	service document.Service
	log     zerolog.Logger
}

// NewDocumentHandler constructs the handler.
func NewDocumentHandler(service document.Service, log zerolog.Logger) *DocumentHandler {
	return &DocumentHandler{
		service: service,
		log:     log.With().Str("handler", "document").Logger(),
	}
}

// Create handles POST /api/v1/documents
// @Summary Ingest a document
// @Description Stores a text document split into retrieval chunks
// @Tags Documents
// @Accept json
// @Produce json
// @Param request body requests.CreateDocumentRequest true "Document"
// @Success 201 {object} responses.DocumentResponse
// @Failure 400 {object} responses.ErrorResponse
// @Router /api/v1/documents [post]
func (h *DocumentHandler) Create(c *gin.Context) {
	var req requests.CreateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.HandleNewError(c, platformerrors.ErrorTypeValidation, err.Error(), "7d2a9c4e-5b1f-4e3a-a8c6-2f0b1d9e3c01")
		return
	}

	doc, err := h.service.Ingest(c.Request.Context(), document.IngestInput{
		Filename: req.Filename,
		FilePath: req.FilePath,
		Content:  req.Content,
		Metadata: req.Metadata,
	})
	if err != nil {
		responses.HandleError(c, err, "failed to ingest document")
		return
	}

	c.JSON(http.StatusCreated, responses.NewDocumentResponse(doc))
}

// List handles GET /api/v1/documents
// @Summary List documents
// @Tags Documents
// @Produce json
// @Param page query int false "Page number" minimum(1)
// @Param page_size query int false "Page size" minimum(1) maximum(100)
// @Success 200 {object} responses.DocumentListResponse
// @Failure 400 {object} responses.ErrorResponse
// @Router /api/v1/documents [get]
func (h *DocumentHandler) List(c *gin.Context) {
	var q requests.ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		responses.HandleNewError(c, platformerrors.ErrorTypeValidation, err.Error(), "7d2a9c4e-5b1f-4e3a-a8c6-2f0b1d9e3c02")
		return
	}
	pagination := q.Pagination()

	docs, total, err := h.service.List(c.Request.Context(), pagination)
	if err != nil {
		responses.HandleError(c, err, "failed to list documents")
		return
	}

	c.JSON(http.StatusOK, responses.NewDocumentListResponse(docs, total, pagination.Page, pagination.PageSize))
}

// Get handles GET /api/v1/documents/:id
// @Summary Get a document
// @Tags Documents
// @Produce json
// @Param id path int true "Document ID"
// @Success 200 {object} responses.DocumentResponse
// @Failure 404 {object} responses.ErrorResponse
// @Router /api/v1/documents/{id} [get]
func (h *DocumentHandler) Get(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	doc, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		responses.HandleError(c, err, "failed to get document")
		return
	}

	c.JSON(http.StatusOK, responses.NewDocumentResponse(doc))
}
