package retrieval

import (
	"fmt"
	"strings"
)

// ContextPreamble opens every assembled context block.
const ContextPreamble = "Relevant context from documents:\n\n"

// BuildContext renders chunks as a numbered context block. It returns "" when
// there is nothing to render so callers can skip prompt injection.
func BuildContext(chunks []string) string {
	if len(chunks) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString(ContextPreamble)
	for i, chunk := range chunks {
		fmt.Fprintf(&b, "[%d] %s\n\n", i+1, chunk)
	}
	return b.String()
}
