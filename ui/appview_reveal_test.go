package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"iris/config"
	"iris/provider/testutil"
)

func TestRevealProgressesToCompletion(t *testing.T) {
	av := newTestAppView(t)
	av.dataModel.Attachment = testutil.TestAttachment()
	av = sendQuestion(t, av, "what is it")

	answer := "A small wooden boat on a lake."
	updated, cmd := av.Update(answerMsg{Answer: answer})
	av = updated.(AppView)

	if av.revealTurn != 1 {
		t.Fatalf("revealTurn = %d, want 1", av.revealTurn)
	}
	if cmd == nil {
		t.Fatal("expected a tick command to start the reveal")
	}

	// Partial text shows with the caret while revealing
	updated, _ = av.Update(revealTickMsg{})
	av = updated.(AppView)
	partial, ok := av.revealing(1)
	if !ok {
		t.Fatal("turn 1 should be mid-reveal")
	}
	if !strings.HasSuffix(partial, revealCursor) {
		t.Errorf("partial %q should end with the caret", partial)
	}
	if strings.TrimSuffix(partial, revealCursor) == answer {
		t.Error("reveal should not be complete after one tick")
	}

	// Drive ticks until the reveal finishes
	for i := 0; i < len(answer)+1 && av.revealTurn >= 0; i++ {
		updated, _ = av.Update(revealTickMsg{})
		av = updated.(AppView)
	}

	if av.revealTurn != -1 {
		t.Fatal("reveal never completed")
	}
	if got := av.dataModel.Session.Turn(1).Rendered; got != answer {
		t.Errorf("rendered after reveal = %q, want full answer", got)
	}
}

func TestRevealDisabledShowsAnswerImmediately(t *testing.T) {
	av := newTestAppView(t)
	av.dataModel.RevealEnabled = false
	av.dataModel.Attachment = testutil.TestAttachment()
	av = sendQuestion(t, av, "what is it")

	updated, _ := av.Update(answerMsg{Answer: "A cat."})
	av = updated.(AppView)

	if av.revealTurn != -1 {
		t.Error("no reveal should run when the animation is off")
	}
	if got := av.dataModel.Session.Turn(1).Rendered; got != "A cat." {
		t.Errorf("rendered = %q, want full answer immediately", got)
	}
}

func TestRevealToggleKey(t *testing.T) {
	av := newTestAppView(t)
	if !av.dataModel.RevealEnabled {
		t.Fatal("reveal should start enabled")
	}

	updated, _ := av.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("t"), Alt: true})
	av = updated.(AppView)

	if av.dataModel.RevealEnabled {
		t.Error("Alt+T should toggle the reveal animation off")
	}

	// The toggle is written back to config.toml so it survives a restart
	loaded, err := config.LoadUserConfig(av.dataModel.Config.DataDir())
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded.RevealAnimation {
		t.Error("reveal toggle not persisted")
	}
}

func TestRevealToggleOffFinishesInFlightReveal(t *testing.T) {
	av := newTestAppView(t)
	av.dataModel.Attachment = testutil.TestAttachment()
	av = sendQuestion(t, av, "what is it")

	answer := "A lighthouse at dusk."
	updated, _ := av.Update(answerMsg{Answer: answer})
	av = updated.(AppView)
	if av.revealTurn != 1 {
		t.Fatal("expected a reveal in flight")
	}

	updated, _ = av.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("t"), Alt: true})
	av = updated.(AppView)

	if av.revealTurn != -1 {
		t.Error("toggling off should finish the reveal")
	}
	if got := av.dataModel.Session.Turn(1).Rendered; got != answer {
		t.Errorf("rendered = %q, want full answer", got)
	}
}

func TestRevealTickWithoutRevealIsNoop(t *testing.T) {
	av := newTestAppView(t)

	updated, cmd := av.Update(revealTickMsg{})
	av = updated.(AppView)

	if av.revealTurn != -1 {
		t.Error("stray tick must not start a reveal")
	}
	if cmd != nil {
		t.Error("stray tick must not schedule another tick")
	}
}
