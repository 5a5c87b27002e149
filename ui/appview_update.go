package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"iris/config"
	appmodel "iris/model"
)

func (a AppView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var (
		cmd  tea.Cmd
		cmds []tea.Cmd
	)

	// Update spinner FIRST to handle TickMsg before anything else
	if a.dataModel.Awaiting {
		a.loadingSpinner, cmd = a.loadingSpinner.Update(msg)
		cmds = append(cmds, cmd)
		// Update viewport to show animated spinner
		a.updateViewportContent(true)
	}

	// Forward non-key messages to the file picker while it is open
	if a.imagePicker.Active {
		switch msg.(type) {
		case tea.KeyMsg:
			// Handled in handleImagePickerUpdate
		default:
			a.imagePicker.Picker, cmd = a.imagePicker.Picker.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height

		// Reserve space for title (1 line), separator (1 line), textarea (3 lines), and status bar (1 line)
		viewportHeight := a.height - 6
		a.viewport.Width = a.width
		a.viewport.Height = viewportHeight
		a.textarea.SetWidth(a.width)

		a.ready = true
		a.updateViewportContent(true)
		return a, nil

	case tea.KeyMsg:
		// PRIORITY 0: Always-global shortcuts
		switch msg.String() {
		case "alt+q", "ctrl+c":
			a.dataModel.Quitting = true
			return a, tea.Quit

		case "alt+h":
			a.showHelp = !a.showHelp
			return a, nil
		}

		// PRIORITY 1: Modal toggle shortcuts (close current modal, open new one)
		switch msg.String() {
		case "alt+m":
			wasOpen := a.showModelSelector
			a.closeAllModals()
			if wasOpen {
				return a, nil
			}
			if len(a.modelList) > 0 {
				a.openModelSelector()
				return a, nil
			}
			// First open: fetch the list and show the selector when it arrives
			return a, a.dataModel.FetchModelList(true)

		case "alt+i":
			wasOpen := a.imagePicker.Active
			a.closeAllModals()
			if wasOpen || a.dataModel.Awaiting {
				return a, nil
			}
			a.imagePicker.Activate()
			return a, a.imagePicker.Picker.Init()

		case "alt+a":
			wasOpen := a.showAbout
			a.closeAllModals()
			a.showAbout = !wasOpen
			return a, nil

		case "alt+v":
			a.closeAllModals()
			a.showInfoModal = true
			if a.dataModel.BridgeRunning {
				a.infoModalTitle = "🎙  Voice & Camera"
				a.infoModalMsg = fmt.Sprintf("Open %s in your browser.\n\nUse the page to dictate questions and capture\nphotos with your camera. Transcripts and captures\nland back here automatically.", a.bridgeURL())
			} else {
				a.infoModalTitle = "🎙  Voice & Camera Unavailable"
				a.infoModalMsg = "The browser bridge is not running.\n\nEnable it under [bridge] in config.toml and restart."
			}
			return a, nil

		case "alt+t":
			a.dataModel.RevealEnabled = !a.dataModel.RevealEnabled
			a.dataModel.Config.RevealAnimation = a.dataModel.RevealEnabled
			if err := a.dataModel.Config.SaveUserSettings(); err != nil && config.DebugLog != nil {
				config.DebugLog.Printf("Failed to persist reveal setting: %v", err)
			}
			if a.dataModel.RevealEnabled {
				return a, a.flash("Reveal animation on")
			}
			// Turning the animation off finishes any reveal in flight
			if a.revealTurn >= 0 {
				idx := a.revealTurn
				full := string(a.revealRunes)
				a.revealTurn = -1
				a.revealRunes = nil
				a.revealPos = 0
				a.dataModel.Session.SetRendered(idx, full)
				a.updateViewportContent(true)
				return a, tea.Batch(a.renderMarkdownAsync(idx, full), a.flash("Reveal animation off"))
			}
			return a, a.flash("Reveal animation off")
		}

		// PRIORITY 2: Modal-specific key handling
		// Info modal (highest priority - close on any key)
		if a.showInfoModal {
			a.showInfoModal = false
			a.infoModalTitle = ""
			a.infoModalMsg = ""
			return a, nil
		}

		if a.showHelp {
			if msg.String() == "esc" {
				a.showHelp = false
			}
			return a, nil
		}

		if a.showModelSelector {
			return a.handleModelSelectorUpdate(msg)
		}

		if a.imagePicker.Active {
			return a.handleImagePickerUpdate(msg)
		}

		if a.showAbout {
			if msg.String() == "esc" {
				a.showAbout = false
			}
			return a, nil
		}

		// PRIORITY 3: Tab inserts spaces in the question input
		if msg.String() == "tab" && !a.dataModel.Awaiting {
			a.textarea.InsertString("   ")
			return a, nil
		}

		// Handle Enter for sending - DON'T let textarea process it
		// But allow Alt+Enter to pass through for newlines
		if msg.Type == tea.KeyEnter && !msg.Alt {
			return a.handleSend()
		}

		switch msg.String() {
		case "alt+y":
			// Copy last answer
			turns := a.dataModel.Session.Turns()
			for i := len(turns) - 1; i >= 0; i-- {
				if turns[i].Role == appmodel.RoleAssistant {
					clipboard.WriteAll(turns[i].Content)
					return a, a.flash("Answer copied")
				}
			}
			return a, nil

		case "alt+c":
			// Copy whole conversation
			var allText strings.Builder
			for _, turn := range a.dataModel.Session.Turns() {
				role := turn.Role
				switch role {
				case appmodel.RoleUser:
					role = "You"
				case appmodel.RoleAssistant:
					role = "Assistant"
				}
				allText.WriteString(fmt.Sprintf("[%s] %s:\n%s\n\n",
					turn.Timestamp.Format("15:04"),
					role,
					turn.Content))
			}
			clipboard.WriteAll(allText.String())
			return a, a.flash("Conversation copied")

		case "alt+j", "alt+down":
			a.viewport.HalfPageDown()
			return a, nil

		case "alt+k", "alt+up":
			a.viewport.HalfPageUp()
			return a, nil

		case "alt+J", "pgdown":
			a.viewport.PageDown()
			return a, nil

		case "alt+K", "pgup":
			a.viewport.PageUp()
			return a, nil

		case "alt+g":
			a.viewport.GotoTop()
			return a, nil

		case "alt+G":
			a.viewport.GotoBottom()
			return a, nil
		}

	case answerMsg:
		return a.handleAnswer(msg.Answer)

	case answerErrorMsg:
		if config.DebugLog != nil {
			config.DebugLog.Printf("answerErrorMsg received: %v", msg.Err)
		}
		// Failures become answer turns so every question keeps its pair
		return a.handleAnswer(appmodel.AnalysisErrorText(msg.Err))

	case revealTickMsg:
		return a.handleRevealTick()

	case markdownRenderedMsg:
		a.dataModel.Session.SetRendered(msg.TurnIndex, msg.Rendered)
		a.updateViewportContent(true)
		return a, nil

	case modelsListMsg:
		if msg.Err != nil {
			if config.DebugLog != nil {
				config.DebugLog.Printf("Error fetching models: %v", msg.Err)
			}
			if msg.ShowSelector {
				a.showInfoModal = true
				a.infoModalTitle = "⚠️  Model List Unavailable"
				a.infoModalMsg = wordWrap(msg.Err.Error(), 56)
			}
			return a, nil
		}

		a.modelList = msg.Models
		if config.DebugLog != nil {
			config.DebugLog.Printf("Fetched %d models", len(msg.Models))
		}
		if msg.ShowSelector {
			a.openModelSelector()
		}
		return a, nil

	case providerPingMsg:
		if msg.Err != nil {
			if config.DebugLog != nil {
				config.DebugLog.Printf("Provider %s ping failed: %v", msg.Provider, msg.Err)
			}
			a.closeAllModals()
			a.showInfoModal = true
			a.infoModalTitle = "⚠️  Provider Unreachable"
			a.infoModalMsg = wordWrap(fmt.Sprintf("%s did not respond: %v", msg.Provider, msg.Err), 56) +
				"\n\nCheck your network and API key. You can still\nswitch providers with Alt+M."
			return a, nil
		}
		if config.DebugLog != nil {
			config.DebugLog.Printf("Provider %s ping successful", msg.Provider)
		}
		return a, nil

	case transcriptMsg:
		// Latest dictation wins; whatever was typed is replaced
		a.dataModel.Session.SetPendingVoice(msg.Text)
		a.textarea.SetValue(a.dataModel.Session.ConsumePendingVoice())
		a.textarea.CursorEnd()
		return a, a.flash("Dictation received")

	case captureMsg:
		// The bridge already wrote the frame to disk; load it like a
		// picked file
		return a, appmodel.LoadImage(msg.Path)

	case attachmentLoadedMsg:
		a.dataModel.Attachment = msg.Attachment
		return a, a.flash(fmt.Sprintf("Attached %s", msg.Attachment.Name))

	case attachmentErrorMsg:
		a.showInfoModal = true
		a.infoModalTitle = "⚠️  Could Not Load Image"
		a.infoModalMsg = wordWrap(msg.Err.Error(), 56)
		return a, nil

	case bridgeStartedMsg:
		a.dataModel.BridgeRunning = true
		if config.DebugLog != nil {
			config.DebugLog.Printf("Bridge listening on %s", msg.Addr)
		}
		return a, nil

	case bridgeErrorMsg:
		a.dataModel.BridgeRunning = false
		if config.DebugLog != nil {
			config.DebugLog.Printf("Bridge error: %v", msg.Err)
		}
		return a, nil

	case flashTickMsg:
		a.statusFlash = ""
		return a, nil
	}

	// Let the textarea and viewport process everything else
	if !a.dataModel.Awaiting {
		a.textarea, cmd = a.textarea.Update(msg)
		cmds = append(cmds, cmd)
	}
	a.viewport, cmd = a.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return a, tea.Batch(cmds...)
}

// handleSend fires the question at the active provider. A send with a
// missing precondition (no question, no image, answer in flight) is
// simply inert.
func (a AppView) handleSend() (tea.Model, tea.Cmd) {
	question := a.textarea.Value()

	if !a.dataModel.CanSend(question) {
		return a, nil
	}

	a.textarea.Reset()

	if config.DebugLog != nil {
		config.DebugLog.Printf("Enter pressed - sending question: %s", question)
	}

	userIdx := a.dataModel.Session.AppendTurn(appmodel.RoleUser, question)

	// Initialize and start spinner
	a.loadingSpinner = spinner.New()
	a.loadingSpinner.Spinner = spinner.Dot
	a.loadingSpinner.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))

	a.dataModel.Awaiting = true
	a.updateViewportContent(true)

	return a, tea.Batch(
		a.renderMarkdownAsync(userIdx, question),
		a.dataModel.AskQuestion(question),
		a.loadingSpinner.Tick,
	)
}

// flash shows a short-lived note in the status bar.
func (a *AppView) flash(note string) tea.Cmd {
	a.statusFlash = note
	return tea.Tick(2*time.Second, func(time.Time) tea.Msg {
		return flashTickMsg{}
	})
}

func (a *AppView) openModelSelector() {
	a.showModelSelector = true
	a.selectedModelIdx = 0
	if a.dataModel.Provider == nil {
		return
	}
	currentModel := a.dataModel.Provider.GetModel()
	for i, m := range a.modelList {
		if m.InternalName == currentModel {
			a.selectedModelIdx = i
			break
		}
	}
}
