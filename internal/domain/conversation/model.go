package conversation

import "time"

const (
	// MaxMessageLength bounds user message length in characters.
	MaxMessageLength = 10000
	// TitleLength is how many characters of the first message become the title.
	TitleLength = 50
)

// Mode selects plain chat or document-grounded chat.
type Mode string

const (
	ModeOpen Mode = "open"
	ModeRAG  Mode = "rag"
)

// Role names the author of a stored message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Conversation is a chat thread owned by a single user. Its mode never changes
// after creation.
type Conversation struct {
	ID        uint
	UserID    uint
	Title     string
	Mode      Mode
	CreatedAt time.Time
	UpdatedAt time.Time

	// MessageCount is filled by list queries.
	MessageCount int
	// Messages and DocumentIDs are filled by detail queries.
	Messages    []*Message
	DocumentIDs []uint
}

// Message is an immutable entry in a conversation. ModelUsed is nil for user
// messages and for fallback replies.
type Message struct {
	ID             uint
	ConversationID uint
	Role           Role
	Content        string
	TokensUsed     int
	ModelUsed      *string
	CreatedAt      time.Time
}

// CreateInput describes a new conversation and its first message.
type CreateInput struct {
	FirstMessage string
	Mode         Mode
	DocumentIDs  []uint
}
