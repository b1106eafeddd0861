package retrieval

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/Aishjainam-coder/Bot-GPT-TASK/internal/domain/conversation"
	"github.com/Aishjainam-coder/Bot-GPT-TASK/internal/domain/document"
)

// DefaultTopK is the number of chunks retrieved per query.
const DefaultTopK = 3

// DocumentSource loads the documents linked to a conversation.
type DocumentSource interface {
	FindByConversation(ctx context.Context, conversationID uint) ([]*document.Document, error)
}

// Retriever selects document chunks relevant to a query by keyword overlap.
type Retriever struct {
	docs DocumentSource
	topK int
	log  zerolog.Logger
}

// NewRetriever wires a keyword retriever over the given document source.
func NewRetriever(docs DocumentSource, topK int, log zerolog.Logger) *Retriever {
	if topK <= 0 {
		topK = DefaultTopK
	}
	return &Retriever{
		docs: docs,
		topK: topK,
		log:  log.With().Str("component", "retriever").Logger(),
	}
}

// Retrieve returns up to topK chunk texts for the query. Conversations that are
// not in rag mode, or have no linked documents, yield no chunks.
func (r *Retriever) Retrieve(ctx context.Context, conversationID uint, mode conversation.Mode, query string) ([]string, error) {
	if mode != conversation.ModeRAG {
		return nil, nil
	}

	docs, err := r.docs.FindByConversation(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, nil
	}

	queryWords := WordSet(query)
	var candidates []Candidate
	for _, doc := range docs {
		candidates = append(candidates, r.documentCandidates(doc, queryWords)...)
	}

	chunks := Rank(candidates, r.topK)
	r.log.Debug().
		Uint("conversation_id", conversationID).
		Int("documents", len(docs)).
		Int("candidates", len(candidates)).
		Int("selected", len(chunks)).
		Msg("retrieved chunks")
	return chunks, nil
}

// documentCandidates scores a document's stored chunks. Documents without
// chunks fall back to their first topK sentences, each scored with the
// document-wide overlap and kept only if it mentions a query word.
func (r *Retriever) documentCandidates(doc *document.Document, queryWords map[string]struct{}) []Candidate {
	if len(doc.Chunks) > 0 {
		texts := make([]string, len(doc.Chunks))
		for i, chunk := range doc.Chunks {
			texts[i] = chunk.Text
		}
		return ScoreChunks(queryWords, texts)
	}

	if doc.Content == nil || *doc.Content == "" {
		return nil
	}

	score := Overlap(queryWords, WordSet(*doc.Content))
	if score == 0 {
		return nil
	}

	sentences := strings.Split(*doc.Content, ".")
	if len(sentences) > r.topK {
		sentences = sentences[:r.topK]
	}

	var candidates []Candidate
	for _, sentence := range sentences {
		if mentionsAny(strings.ToLower(sentence), queryWords) {
			candidates = append(candidates, Candidate{Text: strings.TrimSpace(sentence), Score: score})
		}
	}
	return candidates
}

func mentionsAny(text string, words map[string]struct{}) bool {
	for word := range words {
		if strings.Contains(text, word) {
			return true
		}
	}
	return false
}
