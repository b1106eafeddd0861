package document

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChunkTextPacksSentences(t *testing.T) {
	content := "Go is fun. Channels are typed. Interfaces are implicit."

	chunks := ChunkText(content, 40)

	assert.Equal(t, []Chunk{
		{Text: "Go is fun. Channels are typed."},
		{Text: "Interfaces are implicit."},
	}, chunks)
}

func TestChunkTextSingleChunkWhenSmall(t *testing.T) {
	chunks := ChunkText("One. Two. Three.", DefaultChunkSize)

	assert.Equal(t, []Chunk{{Text: "One. Two. Three."}}, chunks)
}

func TestChunkTextSkipsEmptySentences(t *testing.T) {
	assert.Empty(t, ChunkText("", 10))
	assert.Empty(t, ChunkText(" . ..  .", 10))
}

func TestChunkTextOversizedSentence(t *testing.T) {
	long := strings.Repeat("a", 30)

	chunks := ChunkText("short. "+long+". tail", 20)

	assert.Equal(t, []Chunk{
		{Text: "short."},
		{Text: long + "."},
		{Text: "tail."},
	}, chunks)
}

func TestChunkTextDefaultsSize(t *testing.T) {
	chunks := ChunkText("alpha. beta", 0)

	assert.Equal(t, []Chunk{{Text: "alpha. beta."}}, chunks)
}

func TestChunkTextCountsCharacters(t *testing.T) {
	sentence := strings.Repeat("文", 40)
	content := strings.Repeat(sentence+". ", 3)

	chunks := ChunkText(content, 100)

	assert.Equal(t, []Chunk{
		{Text: sentence + ". " + sentence + "."},
		{Text: sentence + "."},
	}, chunks)
}
