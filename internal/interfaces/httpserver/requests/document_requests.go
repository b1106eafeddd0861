package requests

// CreateDocumentRequest ingests a text document.
type CreateDocumentRequest struct {
	Filename string         `json:"filename" binding:"required,min=1,max=255"`
	FilePath *string        `json:"file_path"`
	Content  string         `json:"content" binding:"required,min=1"`
	Metadata map[string]any `json:"metadata"`
}
