package dbschema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aishjainam-coder/Bot-GPT-TASK/internal/domain/document"
)

func TestDocumentChunksStoredAsTextObjects(t *testing.T) {
	content := "Alpha. Beta."
	row, err := NewSchemaDocument(&document.Document{
		Filename: "notes.txt",
		Content:  &content,
		Chunks:   []document.Chunk{{Text: "Alpha."}, {Text: "Beta."}},
		Metadata: map[string]any{"source": document.DefaultSource},
	})
	require.NoError(t, err)
	assert.JSONEq(t, `[{"text":"Alpha."},{"text":"Beta."}]`, string(row.Chunks))

	back, err := row.EtoD()
	require.NoError(t, err)
	assert.Equal(t, []document.Chunk{{Text: "Alpha."}, {Text: "Beta."}}, back.Chunks)
	assert.Equal(t, document.DefaultSource, back.Metadata["source"])
}

func TestDocumentWithoutChunks(t *testing.T) {
	row, err := NewSchemaDocument(&document.Document{Filename: "empty.txt"})
	require.NoError(t, err)
	assert.Nil(t, row.Chunks)
	assert.Nil(t, row.Metadata)

	back, err := row.EtoD()
	require.NoError(t, err)
	assert.Empty(t, back.Chunks)
}
