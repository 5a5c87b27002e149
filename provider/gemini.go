package provider

import (
	"context"
	"fmt"
	"strings"

	"github.com/googleapis/gax-go/v2/apierror"
	"google.golang.org/genai"

	"iris/model"
	"iris/ollama"
)

// GeminiProvider implements the Provider interface using Google's Gemini API.
// It is the default provider: gemini-1.5-pro handles image and text input in
// a single request.
type GeminiProvider struct {
	client *genai.Client
	model  string
	apiKey string
}

// Generation parameters tuned for factual image description rather than
// creative writing.
const (
	geminiTemperature     float32 = 0.4
	geminiTopP            float32 = 1
	geminiTopK            float32 = 32
	geminiMaxOutputTokens int32   = 4096
)

// NewGeminiProvider creates a new Gemini provider instance.
//
// Parameters:
//   - apiKey: Google AI API key (required)
//   - model: Initial model to use (default: "gemini-1.5-pro")
//
// Returns an error if the API key is missing or the client cannot be created.
func NewGeminiProvider(apiKey, modelName string) (*GeminiProvider, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("Gemini API key is required")
	}
	if modelName == "" {
		modelName = "gemini-1.5-pro"
	}

	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiProvider{
		client: client,
		model:  modelName,
		apiKey: apiKey,
	}, nil
}

// Analyze implements Provider.Analyze.
func (p *GeminiProvider) Analyze(ctx context.Context, img *model.ImageAttachment, question string) (string, error) {
	parts := []*genai.Part{}
	if img != nil {
		parts = append(parts, genai.NewPartFromBytes(img.Data, img.MIMEType))
	}
	parts = append(parts, genai.NewPartFromText(question))

	contents := []*genai.Content{
		{Role: "user", Parts: parts},
	}

	cfg := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(geminiTemperature),
		TopP:            genai.Ptr(geminiTopP),
		TopK:            genai.Ptr(geminiTopK),
		MaxOutputTokens: geminiMaxOutputTokens,
		SafetySettings:  geminiSafetySettings(),
	}

	resp, err := p.client.Models.GenerateContent(ctx, p.model, contents, cfg)
	if err != nil {
		// The gax wrapper buries the useful message one level down
		if e, ok := err.(*apierror.APIError); ok {
			err = e.Unwrap()
		}
		return "", err
	}
	if len(resp.Candidates) == 0 {
		return "", fmt.Errorf("no candidates in response")
	}

	cand := resp.Candidates[0]
	switch cand.FinishReason {
	case genai.FinishReasonStop, genai.FinishReasonUnspecified, "":
	case genai.FinishReasonMaxTokens:
		// Truncated, but still worth showing what came back
	case genai.FinishReasonSafety:
		return "", fmt.Errorf("response blocked by safety filters")
	default:
		return "", fmt.Errorf("unexpected finish reason: %s", cand.FinishReason)
	}

	if cand.Content == nil {
		return "", fmt.Errorf("empty response content")
	}

	var sb strings.Builder
	for _, part := range cand.Content.Parts {
		if part.Text != "" {
			sb.WriteString(part.Text)
		}
	}
	return sb.String(), nil
}

// geminiSafetySettings blocks medium-and-above harmful content across all
// four harm categories.
func geminiSafetySettings() []*genai.SafetySetting {
	categories := []genai.HarmCategory{
		genai.HarmCategoryHarassment,
		genai.HarmCategoryHateSpeech,
		genai.HarmCategorySexuallyExplicit,
		genai.HarmCategoryDangerousContent,
	}

	settings := make([]*genai.SafetySetting, len(categories))
	for i, cat := range categories {
		settings[i] = &genai.SafetySetting{
			Category:  cat,
			Threshold: genai.HarmBlockThresholdBlockMediumAndAbove,
		}
	}
	return settings
}

// geminiVisionModels is a curated list of vision-capable Gemini models.
// The Gemini API has a models endpoint but it does not distinguish vision
// support, so we keep a known-good list.
var geminiVisionModels = []string{
	"gemini-1.5-pro",
	"gemini-1.5-flash",
	"gemini-2.0-flash",
	"gemini-2.5-pro",
	"gemini-2.5-flash",
}

// ListModels implements Provider.ListModels.
func (p *GeminiProvider) ListModels(ctx context.Context) ([]ollama.ModelInfo, error) {
	models := make([]ollama.ModelInfo, len(geminiVisionModels))
	for i, name := range geminiVisionModels {
		models[i] = ollama.ModelInfo{
			Name:         name,
			Provider:     "gemini",
			InternalName: name,
		}
	}
	return models, nil
}

// GetModel implements Provider.GetModel.
func (p *GeminiProvider) GetModel() string {
	return p.model
}

// GetDisplayName implements Provider.GetDisplayName.
func (p *GeminiProvider) GetDisplayName() string {
	return p.model
}

// SetModel implements Provider.SetModel.
func (p *GeminiProvider) SetModel(modelName string) {
	p.model = modelName
}

// Ping implements Provider.Ping with a minimal text-only request.
func (p *GeminiProvider) Ping(ctx context.Context) error {
	contents := []*genai.Content{
		{Role: "user", Parts: []*genai.Part{genai.NewPartFromText("ping")}},
	}
	cfg := &genai.GenerateContentConfig{
		MaxOutputTokens: 1,
	}
	_, err := p.client.Models.GenerateContent(ctx, p.model, contents, cfg)
	if err != nil {
		if e, ok := err.(*apierror.APIError); ok {
			err = e.Unwrap()
		}
		return err
	}
	return nil
}
