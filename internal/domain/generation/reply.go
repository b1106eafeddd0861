package generation

import (
	"errors"
	"fmt"

	"github.com/Aishjainam-coder/Bot-GPT-TASK/internal/domain/llm"
	"github.com/Aishjainam-coder/Bot-GPT-TASK/internal/utils/platformerrors"
)

// ReplyKind distinguishes a model answer from a synthesized fallback.
type ReplyKind string

const (
	ReplyGenerated ReplyKind = "generated"
	ReplyFallback  ReplyKind = "fallback"
)

// FallbackPrefix starts the content of every fallback reply.
const FallbackPrefix = "I apologize, but I encountered an error: "

// Reply is the outcome of a model call. Generated replies carry the model
// output; fallback replies carry the failure and an apology as content.
type Reply struct {
	Kind       ReplyKind
	Content    string
	TokensUsed int
	Model      *string
	Failure    error
}

func generatedReply(completion *llm.Completion, requestedModel string) Reply {
	model := completion.Model
	if model == "" {
		model = requestedModel
	}
	return Reply{
		Kind:       ReplyGenerated,
		Content:    completion.Content,
		TokensUsed: completion.TotalTokens,
		Model:      &model,
	}
}

func fallbackReply(err error) Reply {
	return Reply{
		Kind:    ReplyFallback,
		Content: FallbackPrefix + describe(err),
		Failure: err,
	}
}

// describe returns the human readable part of err, without platform error tags.
func describe(err error) string {
	var platformErr *platformerrors.PlatformError
	if errors.As(err, &platformErr) && platformErr.Message != "" {
		return platformErr.Message
	}
	return fmt.Sprint(err)
}
