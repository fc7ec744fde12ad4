package chat

import (
	"time"

	"github.com/google/uuid"
)

// DefaultTitle is the placeholder title assigned to a conversation before
// auto-derivation or an explicit rename.
const DefaultTitle = "New Chat"

// titleLimit is the maximum number of runes used when deriving a title
// from the first user message.
const titleLimit = 50

// Conversation holds a chat conversation with its history and metadata.
type Conversation struct {
	ID        string    `json:"id"` // UUID v4
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Messages  []Message `json:"messages"`

	// TitleLocked is set once the user renames the conversation; a locked
	// title is never overwritten by auto-derivation.
	TitleLocked bool `json:"title_locked,omitempty"`

	// Pending marks a conversation whose send has not yet resolved.
	// Transient state, never persisted.
	Pending bool `json:"-"`
}

// NewConversation creates a conversation with a generated ID and the
// default title.
func NewConversation(now time.Time) *Conversation {
	return &Conversation{
		ID:        uuid.New().String(),
		Title:     DefaultTitle,
		CreatedAt: now,
		UpdatedAt: now,
		Messages:  []Message{},
	}
}

// AddMessage appends a message and bumps UpdatedAt. The title is derived
// from the first user message while it still carries the default title.
func (c *Conversation) AddMessage(role Role, content string, now time.Time) {
	c.Messages = append(c.Messages, Message{
		Role:      role,
		Content:   content,
		Timestamp: now,
	})
	c.UpdatedAt = now

	if role == RoleUser && !c.TitleLocked && c.Title == DefaultTitle {
		c.Title = deriveTitle(content)
	}
}

// Rename sets a user-assigned title and locks it against auto-derivation.
func (c *Conversation) Rename(title string, now time.Time) {
	c.Title = title
	c.TitleLocked = true
	c.UpdatedAt = now
}

// Reset empties the message history and restores the default title without
// changing the conversation's identity.
func (c *Conversation) Reset(now time.Time) {
	c.Messages = []Message{}
	c.Title = DefaultTitle
	c.TitleLocked = false
	c.UpdatedAt = now
}

// DropLastAssistant removes the trailing message if it is an assistant
// message. Reports whether a message was removed.
func (c *Conversation) DropLastAssistant() bool {
	n := len(c.Messages)
	if n == 0 || c.Messages[n-1].Role != RoleAssistant {
		return false
	}
	c.Messages = c.Messages[:n-1]
	return true
}

// LastUserMessage returns the most recent user message, or nil.
func (c *Conversation) LastUserMessage() *Message {
	for i := len(c.Messages) - 1; i >= 0; i-- {
		if c.Messages[i].Role == RoleUser {
			return &c.Messages[i]
		}
	}
	return nil
}

// MessageCount returns the number of messages in the conversation.
func (c *Conversation) MessageCount() int {
	return len(c.Messages)
}

// deriveTitle truncates the first user message to the title limit,
// appending an ellipsis marker when truncated.
func deriveTitle(content string) string {
	runes := []rune(content)
	if len(runes) <= titleLimit {
		return content
	}
	return string(runes[:titleLimit]) + "..."
}
