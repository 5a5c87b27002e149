// Package provider implements multimodal LLM backends.
//
// IRIS supports multiple vision-capable providers (Gemini, OpenAI,
// Anthropic, Ollama) through the model.Provider interface. This keeps the
// UI and business logic provider-agnostic, so adding a new backend only
// means implementing the interface.
//
// # Architecture
//
//   - model.Provider defines the contract (interface)
//   - provider.GeminiProvider implements it for the Gemini API (default)
//   - provider.OpenAIProvider for OpenAI
//   - provider.AnthropicProvider for Anthropic
//   - provider.OllamaProvider for local Ollama vision models
//   - provider.NewProvider() factory creates providers from config
//
// # Usage
//
//	cfg := provider.Config{
//	    Type:   provider.ProviderTypeGemini,
//	    APIKey: "...",
//	    Model:  "gemini-1.5-pro",
//	}
//	p, err := provider.NewProvider(cfg)
//	if err != nil {
//	    // handle error
//	}
//	answer, err := p.Analyze(ctx, attachment, "What is in this image?")
package provider

// Note: The Provider interface is defined in the model package
// (model/provider.go) to avoid import cycles. This package implements
// model.Provider.

// ProviderType identifies the provider implementation.
type ProviderType string

const (
	ProviderTypeGemini    ProviderType = "gemini"
	ProviderTypeOpenAI    ProviderType = "openai"
	ProviderTypeAnthropic ProviderType = "anthropic"
	ProviderTypeOllama    ProviderType = "ollama"
)

// Config holds provider-specific configuration.
type Config struct {
	Type    ProviderType
	BaseURL string
	Model   string
	APIKey  string // Unused for Ollama
}
