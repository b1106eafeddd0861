package retrieval

import (
	"sort"
	"strings"
)

// Candidate is a chunk of text considered for retrieval.
type Candidate struct {
	Text  string
	Score int
}

// WordSet lowercases text, splits it on whitespace and deduplicates the words.
func WordSet(text string) map[string]struct{} {
	fields := strings.Fields(strings.ToLower(text))
	set := make(map[string]struct{}, len(fields))
	for _, field := range fields {
		set[field] = struct{}{}
	}
	return set
}

// Overlap counts the words shared by both sets.
func Overlap(a, b map[string]struct{}) int {
	if len(b) < len(a) {
		a, b = b, a
	}
	n := 0
	for word := range a {
		if _, ok := b[word]; ok {
			n++
		}
	}
	return n
}

// ScoreChunks scores each chunk by word overlap with the query words. Chunks
// sharing no word with the query are dropped.
func ScoreChunks(queryWords map[string]struct{}, chunks []string) []Candidate {
	candidates := make([]Candidate, 0, len(chunks))
	for _, chunk := range chunks {
		score := Overlap(queryWords, WordSet(chunk))
		if score == 0 {
			continue
		}
		candidates = append(candidates, Candidate{Text: chunk, Score: score})
	}
	return candidates
}

// Rank orders candidates by descending score, stable on ties, and returns at
// most topK texts. Candidates with a zero score are dropped.
func Rank(candidates []Candidate, topK int) []string {
	kept := make([]Candidate, 0, len(candidates))
	for _, c := range candidates {
		if c.Score > 0 {
			kept = append(kept, c)
		}
	}
	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].Score > kept[j].Score
	})

	if topK < 0 {
		topK = 0
	}
	if len(kept) > topK {
		kept = kept[:topK]
	}

	texts := make([]string, len(kept))
	for i, c := range kept {
		texts[i] = c.Text
	}
	return texts
}
