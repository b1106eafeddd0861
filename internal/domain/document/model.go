package document

import "time"

// DefaultSource is the metadata source recorded for manually ingested documents.
const DefaultSource = "manual_upload"

// Chunk is a pre-split span of a document, the unit of retrieval.
type Chunk struct {
	Text string `json:"text"`
}

// Document is a piece of reference text that conversations can be grounded on.
type Document struct {
	ID        uint
	Filename  string
	FilePath  *string
	Content   *string
	Chunks    []Chunk
	Metadata  map[string]any
	CreatedAt time.Time
}

// IngestInput describes a new document.
type IngestInput struct {
	Filename string
	FilePath *string
	Content  string
	Metadata map[string]any
}
