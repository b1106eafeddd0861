package retrieval

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScoreChunksThenRank(t *testing.T) {
	chunks := []string{
		"the cat sat on the mat",
		"dogs bark at night",
		"a cat and a dog play",
		"the cat chased the dog on the mat",
	}

	tests := []struct {
		name  string
		query string
		topK  int
		want  []string
	}{
		{
			name:  "orders by overlap descending",
			query: "cat dog mat",
			topK:  3,
			want: []string{
				"the cat chased the dog on the mat",
				"the cat sat on the mat",
				"a cat and a dog play",
			},
		},
		{
			name:  "ties keep input order",
			query: "cat",
			topK:  5,
			want: []string{
				"the cat sat on the mat",
				"a cat and a dog play",
				"the cat chased the dog on the mat",
			},
		},
		{
			name:  "caps at topK",
			query: "cat",
			topK:  1,
			want:  []string{"the cat sat on the mat"},
		},
		{
			name:  "no shared words yields nothing",
			query: "quantum physics",
			topK:  3,
			want:  []string{},
		},
		{
			name:  "matching is case insensitive",
			query: "DOGS Bark",
			topK:  3,
			want:  []string{"dogs bark at night"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Rank(ScoreChunks(WordSet(tt.query), chunks), tt.topK))
		})
	}
}

func TestRankDropsZeroScores(t *testing.T) {
	got := Rank([]Candidate{
		{Text: "a", Score: 0},
		{Text: "b", Score: 2},
		{Text: "c", Score: 2},
		{Text: "d", Score: 3},
	}, 10)
	assert.Equal(t, []string{"d", "b", "c"}, got)
}

func TestOverlapCountsDistinctWords(t *testing.T) {
	assert.Equal(t, 2, Overlap(WordSet("the the cat"), WordSet("The cat naps")))
	assert.Equal(t, 0, Overlap(WordSet(""), WordSet("anything")))
}
