// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/veriqai/veriq-tui/internal/util"
)

// TitleMaxRunes is the maximum length of an auto-generated chat title before
// an ellipsis is appended.
const TitleMaxRunes = 30

// DefaultTitle is the title of a chat that has not received a user message.
const DefaultTitle = "New Chat"

// =============================================================================
// CHAT TYPE
// =============================================================================

// Chat is a titled, ordered conversation. The message sequence is append-only
// during normal operation and IDs are unique across the stored history list.
type Chat struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Messages  []Message `json:"messages"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewChat creates an empty chat with a fresh unique ID.
func NewChat() *Chat {
	return &Chat{
		ID:        uuid.NewString(),
		Title:     DefaultTitle,
		Messages:  make([]Message, 0),
		UpdatedAt: time.Now(),
	}
}

// =============================================================================
// MESSAGE MANAGEMENT
// =============================================================================

// Append adds a message to the chat and bumps the update timestamp. The
// title is derived exactly once: when the first user message lands in a chat
// that had no messages, it becomes the title (truncated). Later messages
// never alter it.
func (c *Chat) Append(msg Message) {
	wasEmpty := len(c.Messages) == 0
	c.Messages = append(c.Messages, msg)
	c.UpdatedAt = time.Now()

	if wasEmpty && msg.Role == RoleUser {
		c.Title = GenerateTitle(msg.Content)
	}
}

// Clone returns a deep copy with an independent message slice. Accessors
// that hand chats across a lock boundary return clones so a reply landing
// mid-read never mutates what the caller holds.
func (c *Chat) Clone() *Chat {
	if c == nil {
		return nil
	}
	out := *c
	out.Messages = make([]Message, len(c.Messages))
	copy(out.Messages, c.Messages)
	return &out
}

// LastMessage returns the most recent message, or a zero Message when empty.
func (c *Chat) LastMessage() (Message, bool) {
	if len(c.Messages) == 0 {
		return Message{}, false
	}
	return c.Messages[len(c.Messages)-1], true
}

// MessageCount returns the number of messages.
func (c *Chat) MessageCount() int {
	return len(c.Messages)
}

// IsEmpty returns true if the chat has no messages.
func (c *Chat) IsEmpty() bool {
	return len(c.Messages) == 0
}

// GenerateTitle derives a chat title from the first user message.
func GenerateTitle(content string) string {
	if content == "" {
		return DefaultTitle
	}
	return util.TruncateRunes(content, TitleMaxRunes)
}
