package provider

import (
	"context"
	"fmt"

	"github.com/ollama/ollama/api"

	"iris/model"
	"iris/ollama"
)

// OllamaProvider wraps the ollama.Client to implement the Provider interface.
// Local vision models (llava, moondream, llama3.2-vision) take image bytes
// directly in the message.
type OllamaProvider struct {
	client *ollama.Client
}

// NewOllamaProvider creates a new Ollama provider instance.
//
// Parameters:
//   - baseURL: The Ollama server URL (e.g., "http://localhost:11434").
//     If empty, defaults to "http://localhost:11434".
//   - model: The model name to use (e.g., "llava:latest").
//     If empty, defaults to "llava:latest".
//
// Returns an error if the baseURL is invalid or the Ollama client cannot
// be created.
func NewOllamaProvider(baseURL, modelName string) (*OllamaProvider, error) {
	client, err := ollama.NewClient(baseURL, modelName)
	if err != nil {
		return nil, fmt.Errorf("failed to create Ollama client: %w", err)
	}

	return &OllamaProvider{
		client: client,
	}, nil
}

// Analyze implements Provider.Analyze by sending the image bytes in the
// message's Images field.
func (p *OllamaProvider) Analyze(ctx context.Context, img *model.ImageAttachment, question string) (string, error) {
	msg := api.Message{
		Role:    "user",
		Content: question,
	}
	if img != nil {
		msg.Images = []api.ImageData{api.ImageData(img.Data)}
	}

	return p.client.Chat(ctx, []api.Message{msg})
}

// ListModels implements Provider.ListModels, filtered to vision-capable
// models since the app always sends an image.
func (p *OllamaProvider) ListModels(ctx context.Context) ([]ollama.ModelInfo, error) {
	all, err := p.client.ListModels(ctx)
	if err != nil {
		return nil, err
	}

	vision := make([]ollama.ModelInfo, 0, len(all))
	for _, m := range all {
		if ollama.SupportsVision(m.Name) {
			vision = append(vision, m)
		}
	}
	return vision, nil
}

// GetModel implements Provider.GetModel (direct passthrough).
func (p *OllamaProvider) GetModel() string {
	return p.client.GetModel()
}

// GetDisplayName implements Provider.GetDisplayName.
//
// For Ollama, the display name is the same as the model name.
func (p *OllamaProvider) GetDisplayName() string {
	return p.client.GetModel()
}

// SetModel implements Provider.SetModel (direct passthrough).
func (p *OllamaProvider) SetModel(modelName string) {
	p.client.SetModel(modelName)
}

// Ping implements Provider.Ping (direct passthrough).
func (p *OllamaProvider) Ping(ctx context.Context) error {
	return p.client.Ping(ctx)
}
