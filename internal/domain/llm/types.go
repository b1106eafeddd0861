package llm

import "context"

// Role names the author of a chat entry.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// ChatMessage is a single role/content pair sent to the model.
type ChatMessage struct {
	Role    Role
	Content string
}

// CompletionRequest is the provider-agnostic chat completion input.
// SystemPrompt, when set, is sent ahead of Messages.
type CompletionRequest struct {
	Model        string
	SystemPrompt string
	Messages     []ChatMessage
	MaxTokens    int
	Temperature  float32
}

// Completion is a successful model answer.
type Completion struct {
	Content     string
	TotalTokens int
	Model       string
}

// Client defines the contract for an OpenAI-compatible chat completion endpoint.
type Client interface {
	CreateCompletion(ctx context.Context, req CompletionRequest) (*Completion, error)
}
