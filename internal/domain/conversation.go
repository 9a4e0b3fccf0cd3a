package domain

import (
	"time"

	"github.com/google/uuid"
)

// ChatMessage is one immutable turn of the concierge conversation.
// Fallback marks an assistant turn that carries a canned apology instead
// of a model answer.
type ChatMessage struct {
	ID        MessageID
	Role      Role
	Text      string
	Fallback  bool
	CreatedAt Timestamp
}

// NewChatMessage stamps a message with a time-ordered id.
func NewChatMessage(role Role, text string, now time.Time) ChatMessage {
	return ChatMessage{
		ID:        MessageID(uuid.Must(uuid.NewV7()).String()),
		Role:      role,
		Text:      text,
		CreatedAt: now,
	}
}

// Conversation is append-only. Busy is set while a concierge request is outstanding.
type Conversation struct {
	Messages []ChatMessage
	Busy     bool
}

func (c *Conversation) Append(m ChatMessage) {
	c.Messages = append(c.Messages, m)
}

// Begin marks the conversation busy and appends the user turn.
func (c *Conversation) Begin(userMsg ChatMessage) error {
	if c.Busy {
		return ErrConversationBusy
	}
	c.Busy = true
	c.Append(userMsg)
	return nil
}

// Finish appends the assistant turn and clears the busy flag.
func (c *Conversation) Finish(reply ChatMessage) {
	c.Append(reply)
	c.Busy = false
}

func (c Conversation) Clone() Conversation {
	return Conversation{
		Messages: append([]ChatMessage(nil), c.Messages...),
		Busy:     c.Busy,
	}
}
