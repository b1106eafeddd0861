package document

import (
	"strings"
	"unicode/utf8"
)

// DefaultChunkSize is the character budget used when splitting documents.
const DefaultChunkSize = 500

// ChunkText splits content on sentence boundaries ('.') and packs whole
// sentences into chunks. Lengths are counted in characters. A sentence is appended to the current chunk while the
// chunk length plus the sentence length stays under size; otherwise the current
// chunk is flushed and the sentence starts a new one. A sentence longer than
// size becomes a chunk of its own.
func ChunkText(content string, size int) []Chunk {
	if size <= 0 {
		size = DefaultChunkSize
	}

	var (
		chunks     []Chunk
		current    strings.Builder
		currentLen int
	)
	flush := func() {
		if current.Len() == 0 {
			return
		}
		chunks = append(chunks, Chunk{Text: strings.TrimSpace(current.String())})
		current.Reset()
		currentLen = 0
	}

	for _, sentence := range strings.Split(content, ".") {
		sentence = strings.TrimSpace(sentence)
		if sentence == "" {
			continue
		}
		sentenceLen := utf8.RuneCountInString(sentence)
		if currentLen+sentenceLen >= size {
			flush()
		}
		current.WriteString(sentence)
		current.WriteString(". ")
		currentLen += sentenceLen + 2
	}
	flush()

	return chunks
}
