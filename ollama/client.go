package ollama

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ollama/ollama/api"
)

type Client struct {
	client  *api.Client
	model   string
	baseURL string
}

func NewClient(baseURL, model string) (*Client, error) {
	if baseURL == "" {
		baseURL = "http://localhost:11434"
	}
	if model == "" {
		model = "llava:latest"
	}

	parsedURL, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid Ollama URL: %w", err)
	}

	client := api.NewClient(parsedURL, http.DefaultClient)

	return &Client{
		client:  client,
		model:   model,
		baseURL: baseURL,
	}, nil
}

// Chat sends a conversation and collects the full response. Messages may
// carry image bytes via the Images field for vision models.
func (c *Client) Chat(ctx context.Context, messages []api.Message) (string, error) {
	req := &api.ChatRequest{
		Model:    c.model,
		Messages: messages,
		Stream:   func(b bool) *bool { return &b }(false),
	}

	var sb strings.Builder
	respFunc := func(resp api.ChatResponse) error {
		sb.WriteString(resp.Message.Content)
		return nil
	}

	if err := c.client.Chat(ctx, req, respFunc); err != nil {
		return "", err
	}
	return sb.String(), nil
}

type ModelInfo struct {
	Name         string // Display name
	Size         int64
	Provider     string // Provider ID: "ollama", "gemini", "openai", "anthropic"
	InternalName string // Full API name
}

func (c *Client) ListModels(ctx context.Context) ([]ModelInfo, error) {
	resp, err := c.client.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list models: %w", err)
	}

	models := make([]ModelInfo, len(resp.Models))
	for i, model := range resp.Models {
		models[i] = ModelInfo{
			Name:         model.Name,
			Size:         model.Size,
			Provider:     "ollama",
			InternalName: model.Name, // Ollama uses same name for display and API
		}
	}

	return models, nil
}

func (c *Client) SetModel(model string) {
	c.model = model
}

func (c *Client) GetModel() string {
	return c.model
}

func (c *Client) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := c.client.List(ctx)
	return err
}

// visionModels tracks which local model families accept image input.
// This is a curated list based on Ollama documentation and community testing
var visionModels = map[string]bool{
	"llava":       true, // llava:latest, llava:13b
	"llava-llama": true,
	"llava-phi":   true,
	"bakllava":    true,
	"moondream":   true,
	"llama3.2-vi": true, // llama3.2-vision
	"minicpm-v":   true,
	"qwen2.5vl":   true,
	"gemma3":      true,
	"mistral-sma": true, // mistral-small3.1 and later
}

// SupportsVision checks if a model name looks like a vision-capable model
func SupportsVision(modelName string) bool {
	modelName = strings.ToLower(modelName)
	for prefix, ok := range visionModels {
		if strings.HasPrefix(modelName, prefix) {
			return ok
		}
	}
	return false
}
