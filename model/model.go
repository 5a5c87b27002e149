package model

import (
	"strings"

	"iris/config"
)

// Model holds the core application data and business logic state
type Model struct {
	// Core dependencies
	Config    *config.Config
	Provider  Provider
	Providers map[string]Provider

	// Application data
	Session    *Session
	Attachment *ImageAttachment

	// Runtime state (not UI)
	Awaiting      bool // A question is in flight; input is locked
	RevealEnabled bool
	BridgeRunning bool
	Quitting      bool

	// Application metadata
	Version string
}

// NewModel creates a new Model with the given configuration
func NewModel(cfg *config.Config, providers map[string]Provider, version string) *Model {
	active, ok := providers[cfg.DefaultProvider]
	if !ok {
		// Fall back to any initialized provider so the app still starts
		for id, p := range providers {
			if config.DebugLog != nil {
				config.DebugLog.Printf("[Model] Default provider %q unavailable, falling back to %q", cfg.DefaultProvider, id)
			}
			active = p
			break
		}
	}

	return &Model{
		Config:        cfg,
		Provider:      active,
		Providers:     providers,
		Session:       NewSession(),
		RevealEnabled: cfg.RevealAnimation,
		Version:       version,
	}
}

// SwitchProvider makes the named provider active. Returns false when the
// provider was not initialized.
func (m *Model) SwitchProvider(id string) bool {
	p, ok := m.Providers[id]
	if !ok {
		return false
	}
	m.Provider = p
	return true
}

// CanSend reports whether a question can be sent right now. Sending
// requires an attachment, a non-empty question, and no answer in flight.
func (m *Model) CanSend(question string) bool {
	if m.Awaiting {
		return false
	}
	if m.Attachment == nil {
		return false
	}
	if m.Provider == nil {
		return false
	}
	return strings.TrimSpace(question) != ""
}
