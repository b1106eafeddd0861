package dbschema

import (
	"time"

	"github.com/Aishjainam-coder/Bot-GPT-TASK/internal/domain/conversation"
)

// Conversation represents the database schema for conversations
type Conversation struct {
	ID        uint      `gorm:"primaryKey"`
	UserID    uint      `gorm:"index:idx_conversations_user_updated;not null"`
	Title     string    `gorm:"type:varchar(255)"`
	Mode      string    `gorm:"type:varchar(10);not null;default:'open'"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime;index:idx_conversations_user_updated"`
}

func (Conversation) TableName() string {
	return "conversations"
}

// Message represents the database schema for conversation messages
type Message struct {
	ID             uint      `gorm:"primaryKey"`
	ConversationID uint      `gorm:"index:idx_messages_conversation_order;not null"`
	Role           string    `gorm:"type:varchar(20);not null"`
	Content        string    `gorm:"type:text;not null"`
	TokensUsed     int       `gorm:"not null;default:0"`
	ModelUsed      *string   `gorm:"type:varchar(100)"`
	CreatedAt      time.Time `gorm:"autoCreateTime;index:idx_messages_conversation_order"`
}

func (Message) TableName() string {
	return "messages"
}

// ConversationDocument links a conversation to a document.
type ConversationDocument struct {
	ID             uint      `gorm:"primaryKey"`
	ConversationID uint      `gorm:"uniqueIndex:uq_conversation_document;not null"`
	DocumentID     uint      `gorm:"uniqueIndex:uq_conversation_document;index;not null"`
	CreatedAt      time.Time `gorm:"autoCreateTime"`
}

func (ConversationDocument) TableName() string {
	return "conversation_documents"
}

func NewSchemaConversation(c *conversation.Conversation) *Conversation {
	if c == nil {
		return nil
	}
	return &Conversation{
		ID:        c.ID,
		UserID:    c.UserID,
		Title:     c.Title,
		Mode:      string(c.Mode),
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func (c *Conversation) EtoD() *conversation.Conversation {
	if c == nil {
		return nil
	}
	return &conversation.Conversation{
		ID:        c.ID,
		UserID:    c.UserID,
		Title:     c.Title,
		Mode:      conversation.Mode(c.Mode),
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func NewSchemaMessage(m *conversation.Message) *Message {
	if m == nil {
		return nil
	}
	return &Message{
		ID:             m.ID,
		ConversationID: m.ConversationID,
		Role:           string(m.Role),
		Content:        m.Content,
		TokensUsed:     m.TokensUsed,
		ModelUsed:      m.ModelUsed,
		CreatedAt:      m.CreatedAt,
	}
}

func (m *Message) EtoD() *conversation.Message {
	if m == nil {
		return nil
	}
	return &conversation.Message{
		ID:             m.ID,
		ConversationID: m.ConversationID,
		Role:           conversation.Role(m.Role),
		Content:        m.Content,
		TokensUsed:     m.TokensUsed,
		ModelUsed:      m.ModelUsed,
		CreatedAt:      m.CreatedAt,
	}
}
