package model

import (
	"context"
	"errors"
	"testing"

	"iris/config"
	"iris/ollama"
)

type stubProvider struct {
	model   string
	answer  string
	err     error
	lastImg *ImageAttachment
	lastQ   string
}

func (s *stubProvider) Analyze(ctx context.Context, img *ImageAttachment, question string) (string, error) {
	s.lastImg = img
	s.lastQ = question
	return s.answer, s.err
}

func (s *stubProvider) ListModels(ctx context.Context) ([]ollama.ModelInfo, error) {
	return []ollama.ModelInfo{{Name: s.model}}, nil
}

func (s *stubProvider) GetModel() string        { return s.model }
func (s *stubProvider) GetDisplayName() string  { return s.model }
func (s *stubProvider) SetModel(model string)   { s.model = model }
func (s *stubProvider) Ping(ctx context.Context) error { return nil }

func newTestModel(p Provider) *Model {
	cfg := &config.Config{
		DefaultProvider: "gemini",
		DefaultModel:    "gemini-1.5-pro",
		RevealAnimation: true,
	}
	return NewModel(cfg, map[string]Provider{"gemini": p}, "test")
}

func TestCanSend(t *testing.T) {
	m := newTestModel(&stubProvider{model: "gemini-1.5-pro"})

	// No attachment yet
	if m.CanSend("what is this?") {
		t.Error("should not send without an attachment")
	}

	m.Attachment = &ImageAttachment{Name: "photo.jpg"}

	tests := []struct {
		name     string
		question string
		awaiting bool
		want     bool
	}{
		{"ready", "what is this?", false, true},
		{"empty question", "", false, false},
		{"whitespace question", "   \n", false, false},
		{"answer in flight", "what is this?", true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m.Awaiting = tt.awaiting
			if got := m.CanSend(tt.question); got != tt.want {
				t.Errorf("CanSend(%q) = %v, want %v", tt.question, got, tt.want)
			}
		})
	}
}

func TestAskQuestion(t *testing.T) {
	stub := &stubProvider{model: "gemini-1.5-pro", answer: "a lighthouse"}
	m := newTestModel(stub)
	m.Attachment = &ImageAttachment{Name: "photo.jpg", Data: []byte{1}}

	msg := m.AskQuestion("what is this?")()

	answer, ok := msg.(AnswerMsg)
	if !ok {
		t.Fatalf("expected AnswerMsg, got %T", msg)
	}
	if answer.Answer != "a lighthouse" {
		t.Errorf("unexpected answer: %q", answer.Answer)
	}
	if stub.lastQ != "what is this?" {
		t.Errorf("question not forwarded: %q", stub.lastQ)
	}
	if stub.lastImg == nil || stub.lastImg.Name != "photo.jpg" {
		t.Error("attachment not forwarded")
	}
}

func TestAskQuestionError(t *testing.T) {
	stub := &stubProvider{model: "gemini-1.5-pro", err: errors.New("quota exceeded")}
	m := newTestModel(stub)
	m.Attachment = &ImageAttachment{Name: "photo.jpg"}

	msg := m.AskQuestion("what is this?")()

	errMsg, ok := msg.(AnswerErrorMsg)
	if !ok {
		t.Fatalf("expected AnswerErrorMsg, got %T", msg)
	}
	if errMsg.Err == nil {
		t.Fatal("expected error")
	}

	got := AnalysisErrorText(errMsg.Err)
	if got != "Error analyzing image: quota exceeded" {
		t.Errorf("unexpected error text: %q", got)
	}
}

func TestSwitchProvider(t *testing.T) {
	a := &stubProvider{model: "gemini-1.5-pro"}
	b := &stubProvider{model: "llava:latest"}

	cfg := &config.Config{DefaultProvider: "gemini"}
	m := NewModel(cfg, map[string]Provider{"gemini": a, "ollama": b}, "test")

	if m.Provider != Provider(a) {
		t.Fatal("expected default provider active")
	}
	if !m.SwitchProvider("ollama") {
		t.Fatal("switch to ollama failed")
	}
	if m.Provider.GetModel() != "llava:latest" {
		t.Errorf("unexpected active model: %s", m.Provider.GetModel())
	}
	if m.SwitchProvider("nonexistent") {
		t.Error("switch to unknown provider should fail")
	}
	// Failed switch leaves the active provider untouched
	if m.Provider.GetModel() != "llava:latest" {
		t.Error("active provider changed on failed switch")
	}
}

func TestFetchModelList(t *testing.T) {
	stub := &stubProvider{model: "gemini-1.5-pro"}
	m := newTestModel(stub)

	msg := m.FetchModelList(true)()
	list, ok := msg.(ModelsListMsg)
	if !ok {
		t.Fatalf("expected ModelsListMsg, got %T", msg)
	}
	if list.Err != nil {
		t.Fatalf("unexpected error: %v", list.Err)
	}
	if len(list.Models) != 1 || list.Models[0].Name != "gemini-1.5-pro" {
		t.Errorf("unexpected models: %+v", list.Models)
	}
	if !list.ShowSelector {
		t.Error("expected ShowSelector to be propagated")
	}
}
