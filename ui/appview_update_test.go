package ui

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"iris/config"
	appmodel "iris/model"
	"iris/provider/testutil"
)

func newTestAppView(t *testing.T) AppView {
	t.Helper()

	cfg := &config.Config{
		DataDirectory:   t.TempDir(),
		DefaultProvider: "mock",
		BridgeAddr:      "127.0.0.1:0",
		RevealAnimation: true,
	}
	providers := map[string]appmodel.Provider{
		"mock": testutil.NewMockProvider("mock-model-1"),
	}
	dataModel := appmodel.NewModel(cfg, providers, "test")

	av := NewAppView(dataModel)
	updated, _ := av.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return updated.(AppView)
}

func sendQuestion(t *testing.T, av AppView, question string) AppView {
	t.Helper()
	av.textarea.SetValue(question)
	updated, _ := av.Update(tea.KeyMsg{Type: tea.KeyEnter})
	return updated.(AppView)
}

func TestSendAppendsUserTurnAndLocksInput(t *testing.T) {
	av := newTestAppView(t)
	av.dataModel.Attachment = testutil.TestAttachment()

	av = sendQuestion(t, av, "what is in this picture?")

	if got := av.dataModel.Session.Len(); got != 1 {
		t.Fatalf("expected 1 turn after send, got %d", got)
	}
	turn := av.dataModel.Session.Turn(0)
	if turn.Role != appmodel.RoleUser {
		t.Errorf("first turn role = %q, want %q", turn.Role, appmodel.RoleUser)
	}
	if turn.Content != "what is in this picture?" {
		t.Errorf("unexpected turn content: %q", turn.Content)
	}
	if !av.dataModel.Awaiting {
		t.Error("expected Awaiting after send")
	}
	if av.textarea.Value() != "" {
		t.Error("textarea should be cleared after send")
	}
}

func TestSendWithoutAttachmentIsInert(t *testing.T) {
	av := newTestAppView(t)

	av = sendQuestion(t, av, "no image here")

	if av.dataModel.Session.Len() != 0 {
		t.Error("no turn should be appended without an attachment")
	}
	if av.dataModel.Awaiting {
		t.Error("Awaiting should stay false")
	}
	if got := av.textarea.Value(); got != "no image here" {
		t.Errorf("question should stay in the input, got %q", got)
	}
}

func TestSendIgnoredWhileAwaiting(t *testing.T) {
	av := newTestAppView(t)
	av.dataModel.Attachment = testutil.TestAttachment()
	av = sendQuestion(t, av, "first")

	av = sendQuestion(t, av, "second")

	if got := av.dataModel.Session.Len(); got != 1 {
		t.Fatalf("expected 1 turn, got %d", got)
	}
}

func TestAnswerAppendsAssistantTurn(t *testing.T) {
	av := newTestAppView(t)
	av.dataModel.RevealEnabled = false
	av.dataModel.Attachment = testutil.TestAttachment()
	av = sendQuestion(t, av, "describe it")

	updated, _ := av.Update(answerMsg{Answer: "A red bicycle."})
	av = updated.(AppView)

	if av.dataModel.Awaiting {
		t.Error("Awaiting should clear when the answer arrives")
	}
	if got := av.dataModel.Session.Len(); got != 2 {
		t.Fatalf("expected 2 turns, got %d", got)
	}
	turn := av.dataModel.Session.Turn(1)
	if turn.Role != appmodel.RoleAssistant {
		t.Errorf("second turn role = %q, want %q", turn.Role, appmodel.RoleAssistant)
	}
	if turn.Content != "A red bicycle." {
		t.Errorf("unexpected answer content: %q", turn.Content)
	}
}

func TestAnswerErrorBecomesAssistantTurn(t *testing.T) {
	av := newTestAppView(t)
	av.dataModel.RevealEnabled = false
	av.dataModel.Attachment = testutil.TestAttachment()
	av = sendQuestion(t, av, "describe it")

	updated, _ := av.Update(answerErrorMsg{Err: errors.New("connection refused")})
	av = updated.(AppView)

	if got := av.dataModel.Session.Len(); got != 2 {
		t.Fatalf("expected 2 turns, got %d", got)
	}
	turn := av.dataModel.Session.Turn(1)
	if turn.Role != appmodel.RoleAssistant {
		t.Errorf("error turn role = %q, want %q", turn.Role, appmodel.RoleAssistant)
	}
	if turn.Content != "Error analyzing image: connection refused" {
		t.Errorf("unexpected error content: %q", turn.Content)
	}
}

func TestTurnsStayPairedAcrossExchanges(t *testing.T) {
	av := newTestAppView(t)
	av.dataModel.RevealEnabled = false
	av.dataModel.Attachment = testutil.TestAttachment()

	exchanges := []struct {
		question string
		reply    tea.Msg
	}{
		{"first question", answerMsg{Answer: "first answer"}},
		{"second question", answerErrorMsg{Err: errors.New("boom")}},
		{"third question", answerMsg{Answer: "third answer"}},
	}

	for _, ex := range exchanges {
		av = sendQuestion(t, av, ex.question)
		updated, _ := av.Update(ex.reply)
		av = updated.(AppView)
	}

	turns := av.dataModel.Session.Turns()
	if len(turns) != 6 {
		t.Fatalf("expected 6 turns, got %d", len(turns))
	}
	for i, turn := range turns {
		want := appmodel.RoleUser
		if i%2 == 1 {
			want = appmodel.RoleAssistant
		}
		if turn.Role != want {
			t.Errorf("turn %d role = %q, want %q", i, turn.Role, want)
		}
	}
}

func TestTranscriptReplacesTypedQuestion(t *testing.T) {
	av := newTestAppView(t)
	av.textarea.SetValue("half typed que")

	updated, _ := av.Update(transcriptMsg{Text: "what color is the car"})
	av = updated.(AppView)

	if got := av.textarea.Value(); got != "what color is the car" {
		t.Errorf("textarea = %q, want dictated text", got)
	}
	if av.dataModel.Session.HasPendingVoice() {
		t.Error("pending voice should be consumed immediately")
	}
}

// runCaptureFlow writes a capture file, delivers the capture message, and
// feeds the resulting load command's message back through Update.
func runCaptureFlow(t *testing.T, av AppView, data []byte) AppView {
	t.Helper()

	path := filepath.Join(t.TempDir(), "capture-test.jpg")
	if err := os.WriteFile(path, data, 0600); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	updated, cmd := av.Update(captureMsg{Path: path})
	av = updated.(AppView)
	if cmd == nil {
		t.Fatal("capture should trigger an attachment load")
	}

	updated, _ = av.Update(cmd())
	return updated.(AppView)
}

func TestCaptureAttachesImage(t *testing.T) {
	av := newTestAppView(t)

	av = runCaptureFlow(t, av, testutil.TestAttachment().Data)

	if av.dataModel.Attachment == nil {
		t.Fatal("capture should attach an image")
	}
	if av.dataModel.Attachment.MIMEType != "image/jpeg" {
		t.Errorf("capture MIME = %q, want image/jpeg", av.dataModel.Attachment.MIMEType)
	}
}

func TestCaptureWithGarbageShowsModal(t *testing.T) {
	av := newTestAppView(t)

	av = runCaptureFlow(t, av, []byte("not an image"))

	if av.dataModel.Attachment != nil {
		t.Error("garbage bytes must not become an attachment")
	}
	if !av.showInfoModal {
		t.Error("expected an error modal")
	}
}

func TestMarkdownRenderedCachesTurn(t *testing.T) {
	av := newTestAppView(t)
	av.dataModel.Session.AppendTurn(appmodel.RoleUser, "*hello*")

	updated, _ := av.Update(markdownRenderedMsg{TurnIndex: 0, Rendered: "styled hello"})
	av = updated.(AppView)

	if got := av.dataModel.Session.Turn(0).Rendered; got != "styled hello" {
		t.Errorf("rendered cache = %q", got)
	}
}

func TestProviderPingFailureShowsModal(t *testing.T) {
	av := newTestAppView(t)

	updated, _ := av.Update(providerPingMsg{Provider: "mock-model-1", Err: errors.New("401 unauthorized")})
	av = updated.(AppView)

	if !av.showInfoModal {
		t.Fatal("expected provider unreachable modal")
	}
	if !strings.Contains(av.infoModalMsg, "401 unauthorized") {
		t.Errorf("modal should carry the error, got %q", av.infoModalMsg)
	}
}

func TestProviderPingSuccessIsQuiet(t *testing.T) {
	av := newTestAppView(t)

	updated, _ := av.Update(providerPingMsg{Provider: "mock-model-1"})
	av = updated.(AppView)

	if av.showInfoModal {
		t.Error("successful ping must not show a modal")
	}
}

func TestPingProviderCommand(t *testing.T) {
	av := newTestAppView(t)
	mock := av.dataModel.Provider.(*testutil.MockProvider)
	mock.PingFunc = func(ctx context.Context) error {
		return errors.New("connection refused")
	}

	cmd := av.dataModel.PingProvider()
	if cmd == nil {
		t.Fatal("expected a ping command")
	}

	msg, ok := cmd().(providerPingMsg)
	if !ok {
		t.Fatal("expected a providerPingMsg")
	}
	if msg.Err == nil || msg.Err.Error() != "connection refused" {
		t.Errorf("unexpected ping error: %v", msg.Err)
	}
	if msg.Provider != "mock-model-1" {
		t.Errorf("unexpected provider name: %q", msg.Provider)
	}
}

func TestBridgeMessagesToggleIndicator(t *testing.T) {
	av := newTestAppView(t)

	updated, _ := av.Update(bridgeStartedMsg{Addr: "127.0.0.1:8418"})
	av = updated.(AppView)
	if !av.dataModel.BridgeRunning {
		t.Error("BridgeRunning should be set by bridgeStartedMsg")
	}

	updated, _ = av.Update(bridgeErrorMsg{Err: errors.New("address in use")})
	av = updated.(AppView)
	if av.dataModel.BridgeRunning {
		t.Error("BridgeRunning should clear on bridge error")
	}
}

func TestViewShowsAttachmentName(t *testing.T) {
	av := newTestAppView(t)

	if view := av.View(); !strings.Contains(view, "no image") {
		t.Error("title should say no image before attaching")
	}

	att := testutil.TestAttachment()
	att.Name = "garden.jpg"
	av.dataModel.Attachment = att

	if view := av.View(); !strings.Contains(view, "garden.jpg") {
		t.Error("title should show the attachment name")
	}
}
