package testutil

import (
	"context"

	"iris/model"
	"iris/ollama"
)

// MockProvider implements the model.Provider interface for testing
type MockProvider struct {
	// Configurable responses
	AnalyzeFunc    func(ctx context.Context, img *model.ImageAttachment, question string) (string, error)
	ListModelsFunc func(ctx context.Context) ([]ollama.ModelInfo, error)
	PingFunc       func(ctx context.Context) error

	// State
	currentModel string

	// Recorded calls
	AnalyzeCalls []AnalyzeCall
}

// AnalyzeCall records the arguments of one Analyze invocation
type AnalyzeCall struct {
	Attachment *model.ImageAttachment
	Question   string
}

// NewMockProvider creates a mock provider with default implementations
func NewMockProvider(modelName string) *MockProvider {
	mock := &MockProvider{
		currentModel: modelName,
	}
	mock.AnalyzeFunc = mock.defaultAnalyze
	mock.ListModelsFunc = mock.defaultListModels
	mock.PingFunc = mock.defaultPing
	return mock
}

func (m *MockProvider) defaultAnalyze(ctx context.Context, img *model.ImageAttachment, question string) (string, error) {
	return "Mock answer", nil
}

func (m *MockProvider) defaultListModels(ctx context.Context) ([]ollama.ModelInfo, error) {
	return []ollama.ModelInfo{
		{Name: "mock-model-1", Size: 1000},
		{Name: "mock-model-2", Size: 2000},
	}, nil
}

func (m *MockProvider) defaultPing(ctx context.Context) error {
	return nil
}

func (m *MockProvider) Analyze(ctx context.Context, img *model.ImageAttachment, question string) (string, error) {
	m.AnalyzeCalls = append(m.AnalyzeCalls, AnalyzeCall{Attachment: img, Question: question})
	return m.AnalyzeFunc(ctx, img, question)
}

func (m *MockProvider) ListModels(ctx context.Context) ([]ollama.ModelInfo, error) {
	return m.ListModelsFunc(ctx)
}

func (m *MockProvider) GetModel() string {
	return m.currentModel
}

func (m *MockProvider) GetDisplayName() string {
	return m.currentModel
}

func (m *MockProvider) SetModel(model string) {
	m.currentModel = model
}

func (m *MockProvider) Ping(ctx context.Context) error {
	return m.PingFunc(ctx)
}
