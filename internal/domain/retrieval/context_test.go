package retrieval

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildContext(t *testing.T) {
	assert.Equal(t, "", BuildContext(nil))
	assert.Equal(t, "", BuildContext([]string{}))

	got := BuildContext([]string{"first chunk", "second chunk"})
	assert.Equal(t, "Relevant context from documents:\n\n[1] first chunk\n\n[2] second chunk\n\n", got)
}
