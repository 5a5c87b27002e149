package model

import (
	"time"

	"github.com/google/uuid"
)

// Session holds the conversation transcript for one run of the app.
// Turns alternate strictly user/assistant: every question gets exactly
// one answer turn, even when the provider call fails (the error text
// becomes the answer).
type Session struct {
	ID        string
	CreatedAt time.Time

	turns        []Turn
	pendingVoice string
}

func NewSession() *Session {
	return &Session{
		ID:        uuid.NewString(),
		CreatedAt: time.Now(),
	}
}

// AppendTurn adds a turn to the transcript and returns its index.
func (s *Session) AppendTurn(role, content string) int {
	s.turns = append(s.turns, Turn{
		ID:        uuid.NewString(),
		Role:      role,
		Content:   content,
		Timestamp: time.Now(),
	})
	return len(s.turns) - 1
}

// Turns returns the transcript. Callers must not mutate the slice.
func (s *Session) Turns() []Turn {
	return s.turns
}

func (s *Session) Len() int {
	return len(s.turns)
}

// LastTurn returns the most recent turn, or nil for an empty transcript.
func (s *Session) LastTurn() *Turn {
	if len(s.turns) == 0 {
		return nil
	}
	return &s.turns[len(s.turns)-1]
}

// Turn returns the turn at index i, or nil when out of range.
func (s *Session) Turn(i int) *Turn {
	if i < 0 || i >= len(s.turns) {
		return nil
	}
	return &s.turns[i]
}

// SetRendered caches the rendered markdown for the turn at index i.
// Out-of-range indexes are ignored (a render can complete after the
// transcript changed).
func (s *Session) SetRendered(i int, rendered string) {
	if i < 0 || i >= len(s.turns) {
		return
	}
	s.turns[i].Rendered = rendered
}

// SetPendingVoice stores a dictated transcript waiting to be consumed
// into the question input. A new transcript replaces any previous one.
func (s *Session) SetPendingVoice(text string) {
	s.pendingVoice = text
}

// ConsumePendingVoice returns the pending dictation and clears it.
func (s *Session) ConsumePendingVoice() string {
	text := s.pendingVoice
	s.pendingVoice = ""
	return text
}

// HasPendingVoice reports whether a dictated transcript is waiting.
func (s *Session) HasPendingVoice() bool {
	return s.pendingVoice != ""
}
