package model

import (
	"context"

	"iris/ollama"
)

// Provider abstracts multimodal LLM backends (Gemini, OpenAI, Anthropic,
// Ollama).
//
// This interface is defined in the model package (not provider package) to
// avoid import cycles: provider implementations can import model, and model
// can use the Provider interface without importing the provider package.
type Provider interface {
	// Analyze sends an image and a question and returns the answer text.
	// img may be nil for follow-up questions without a new image, but the
	// app requires an attachment before the first send.
	Analyze(ctx context.Context, img *ImageAttachment, question string) (string, error)

	// ListModels returns available vision-capable models for this provider.
	ListModels(ctx context.Context) ([]ollama.ModelInfo, error)

	// GetModel returns the currently selected model name.
	GetModel() string

	// GetDisplayName returns the model name formatted for UI display.
	GetDisplayName() string

	// SetModel changes the active model.
	SetModel(model string)

	// Ping checks if the provider is reachable.
	Ping(ctx context.Context) error
}
