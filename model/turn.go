package model

import "time"

// Turn represents a single entry in the conversation transcript
type Turn struct {
	ID        string
	Role      string
	Content   string // Raw content from the provider
	Rendered  string // Cached rendered markdown
	Timestamp time.Time
}

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)
