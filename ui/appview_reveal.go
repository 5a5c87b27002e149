package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"iris/config"
	appmodel "iris/model"
)

const (
	// revealInterval paces the typewriter effect. One rune per tick, so
	// every prefix of the answer is displayed exactly once.
	revealInterval = 10 * time.Millisecond
	revealStep     = 1

	revealCursor = "▌"
)

// handleAnswer appends the answer turn and starts the typewriter reveal.
// Error text arrives here too, so the transcript stays strictly paired.
func (a AppView) handleAnswer(answer string) (tea.Model, tea.Cmd) {
	a.dataModel.Awaiting = false

	idx := a.dataModel.Session.AppendTurn(appmodel.RoleAssistant, answer)

	if !a.dataModel.RevealEnabled {
		a.dataModel.Session.SetRendered(idx, answer)
		a.updateViewportContent(true)
		return a, a.renderMarkdownAsync(idx, answer)
	}

	if config.DebugLog != nil {
		config.DebugLog.Printf("Starting reveal for turn %d - %d chars", idx, len(answer))
	}

	a.revealTurn = idx
	a.revealRunes = []rune(answer)
	a.revealPos = 0
	a.updateViewportContent(true)

	return a, tea.Tick(revealInterval, func(time.Time) tea.Msg {
		return revealTickMsg{}
	})
}

func (a AppView) handleRevealTick() (tea.Model, tea.Cmd) {
	if a.revealTurn < 0 {
		return a, nil
	}

	a.revealPos += revealStep
	if a.revealPos < len(a.revealRunes) {
		a.updateViewportContent(true)
		return a, tea.Tick(revealInterval, func(time.Time) tea.Msg {
			return revealTickMsg{}
		})
	}

	// Reveal complete - show plain text and render markdown off the loop
	idx := a.revealTurn
	full := string(a.revealRunes)

	a.revealTurn = -1
	a.revealRunes = nil
	a.revealPos = 0

	if config.DebugLog != nil {
		config.DebugLog.Printf("Reveal complete for turn %d", idx)
	}

	a.dataModel.Session.SetRendered(idx, full)
	a.updateViewportContent(true)
	return a, a.renderMarkdownAsync(idx, full)
}

// revealing reports whether turn i is mid-reveal, and if so how much of
// it to show.
func (a *AppView) revealing(i int) (string, bool) {
	if i != a.revealTurn {
		return "", false
	}
	pos := a.revealPos
	if pos > len(a.revealRunes) {
		pos = len(a.revealRunes)
	}
	return string(a.revealRunes[:pos]) + revealCursor, true
}
