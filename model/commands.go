package model

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"iris/config"
)

// AskQuestion sends the attached image and question to the active provider.
// The provider call runs off the update loop; the result comes back as an
// AnswerMsg or AnswerErrorMsg.
func (m *Model) AskQuestion(question string) tea.Cmd {
	client := m.Provider
	attachment := m.Attachment

	return func() tea.Msg {
		if config.DebugLog != nil {
			config.DebugLog.Printf("askQuestion goroutine started (model=%s)", client.GetModel())
		}

		ctx, cancel := context.WithTimeout(context.Background(), 120*time.Second)
		defer cancel()

		startTime := time.Now()
		answer, err := client.Analyze(ctx, attachment, question)
		elapsed := time.Since(startTime)

		if err != nil {
			if config.DebugLog != nil {
				config.DebugLog.Printf("Provider error after %v: %v", elapsed, err)
			}
			return AnswerErrorMsg{Err: err}
		}

		if config.DebugLog != nil {
			config.DebugLog.Printf("Answer received after %v - %d chars", elapsed, len(answer))
		}

		return AnswerMsg{Answer: answer}
	}
}

// AnalysisErrorText formats a provider failure as transcript content.
func AnalysisErrorText(err error) string {
	return fmt.Sprintf("Error analyzing image: %v", err)
}

// LoadImage loads and normalizes an image file off the update loop.
func LoadImage(path string) tea.Cmd {
	return func() tea.Msg {
		att, err := LoadAttachment(path)
		if err != nil {
			return AttachmentErrorMsg{Err: err}
		}
		return AttachmentLoadedMsg{Attachment: att}
	}
}

// PingProvider checks that the active provider is reachable with the
// configured credentials. Runs once at startup; a failure is reported to
// the user but never stops the app.
func (m *Model) PingProvider() tea.Cmd {
	client := m.Provider
	if client == nil {
		return nil
	}
	name := client.GetDisplayName()

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		return ProviderPingMsg{Provider: name, Err: client.Ping(ctx)}
	}
}

// FetchModelList retrieves the list of available models for the active provider
// showSelector: whether to auto-show model selector after fetch (user-initiated vs background)
func (m *Model) FetchModelList(showSelector bool) tea.Cmd {
	client := m.Provider
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		models, err := client.ListModels(ctx)
		return ModelsListMsg{
			Models:       models,
			Err:          err,
			ShowSelector: showSelector,
		}
	}
}
