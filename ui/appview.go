package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"iris/config"
	appmodel "iris/model"
	"iris/ollama"
)

type AppView struct {
	// Reference to core data model
	dataModel *appmodel.Model

	// UI Components
	viewport viewport.Model
	textarea textarea.Model

	// Window state
	width  int
	height int
	ready  bool

	// Loading spinner (bubbles/spinner)
	loadingSpinner spinner.Model

	// Typewriter reveal state. revealTurn is -1 when no reveal is running.
	revealTurn  int
	revealRunes []rune
	revealPos   int

	showHelp  bool
	showAbout bool

	// Model selector
	showModelSelector bool
	modelList         []ollama.ModelInfo
	selectedModelIdx  int
	modelFilterMode   bool
	modelFilterInput  textinput.Model
	filteredModelList []ollama.ModelInfo

	// Image file picker
	imagePicker FilePickerState

	// Info modal state (for simple notifications/errors)
	showInfoModal  bool
	infoModalTitle string
	infoModalMsg   string

	// Transient status bar note (copy/attach feedback)
	statusFlash string
}

func NewAppView(dataModel *appmodel.Model) AppView {
	ta := textarea.New()
	ta.Placeholder = "Ask a question about the image, or press Alt+V to dictate..."
	ta.Focus()
	ta.CharLimit = 0
	ta.ShowLineNumbers = false
	ta.SetHeight(3)
	ta.SetWidth(80)

	// Custom KeyMap: Alt+Enter for newline, Enter alone sends (handled separately)
	ta.KeyMap.InsertNewline = key.NewBinding(key.WithKeys("alt+enter"))

	// Dynamic prompt: "> " for first line, "| " for subsequent lines
	ta.SetPromptFunc(2, func(lineIdx int) string {
		if lineIdx == 0 {
			return "> "
		}
		return "| "
	})

	vp := viewport.New(0, 0)

	modelFilterInput := textinput.New()
	modelFilterInput.Prompt = "Filter: "
	modelFilterInput.CharLimit = 64

	imagePicker := NewFilePickerState(FilePickerConfig{
		Title:        "Attach Image",
		AllowedTypes: []string{".jpg", ".jpeg", ".png", ".gif", ".bmp", ".tif", ".tiff", ".webp"},
		ShowHidden:   false,
	})

	return AppView{
		dataModel:         dataModel,
		textarea:          ta,
		viewport:          vp,
		revealTurn:        -1,
		modelFilterInput:  modelFilterInput,
		filteredModelList: []ollama.ModelInfo{},
		imagePicker:       imagePicker,
	}
}

func (a AppView) Init() tea.Cmd {
	// Background model fetch and provider reachability check on startup
	return tea.Batch(
		textarea.Blink,
		a.dataModel.FetchModelList(false),
		a.dataModel.PingProvider(),
	)
}

func (a AppView) View() string {
	if !a.ready {
		return "Loading IRIS..."
	}

	// Modal rendering order (top to bottom layers):
	// 1. Info modal
	// 2. Help (can peek while in other modals)
	// 3. Model selector
	// 4. Image picker
	// 5. About

	if a.showInfoModal {
		return RenderAcknowledgeModal(a.infoModalTitle, a.infoModalMsg, ModalTypeInfo, a.width, a.height)
	}

	if a.showHelp {
		return renderHelpModal(a.width, a.height)
	}

	if a.showModelSelector {
		currentModel := ""
		if a.dataModel.Provider != nil {
			currentModel = a.dataModel.Provider.GetModel()
		}
		return renderModelSelector(a.modelList, a.selectedModelIdx, currentModel, a.modelFilterMode, a.modelFilterInput, a.filteredModelList, a.width, a.height)
	}

	if a.imagePicker.Active {
		return RenderFilePickerModal(a.imagePicker, a.width, a.height)
	}

	if a.showAbout {
		return renderAboutModal(a.width, a.height, a.dataModel.Version)
	}

	// Title bar - "IRIS - Provider - Image | 🎙 bridge"
	irisText := AssistantStyle.Render("IRIS")
	providerName := "no provider"
	if a.dataModel.Provider != nil {
		providerName = a.dataModel.Provider.GetDisplayName()
	}
	providerText := TitleStyle.Render(fmt.Sprintf(" - %s", providerName))

	imageName := "no image"
	if a.dataModel.Attachment != nil {
		imageName = a.dataModel.Attachment.Name
	}
	imageText := UserStyle.Render(fmt.Sprintf(" - %s", imageName))

	bridgeText := ""
	if a.dataModel.BridgeRunning {
		bridgeText = DimStyle.Render(fmt.Sprintf(" | 🎙 %s", a.dataModel.Config.BridgeAddr))
	}

	title := irisText + providerText + imageText + bridgeText

	// Separator with bottom margin for header (empty line forces spacing)
	separator := ""

	viewportView := a.viewport.View()
	inputView := a.textarea.View()

	// Status bar with bold user green descriptions
	descStyle := lipgloss.NewStyle().Foreground(successColor).Bold(true)
	statusBar := fmt.Sprintf("Alt+Q %s  Alt+I %s  Alt+M %s  Alt+V %s  Alt+Enter %s  Enter %s  Alt+Y %s  Alt+H %s",
		descStyle.Render("Quit"),
		descStyle.Render("Image"),
		descStyle.Render("Models"),
		descStyle.Render("Voice"),
		descStyle.Render("New Line"),
		descStyle.Render("Send"),
		descStyle.Render("Copy"),
		descStyle.Render("Help"),
	)
	if a.statusFlash != "" {
		statusBar = descStyle.Render(a.statusFlash)
	}
	statusBar = StatusStyle.Render(statusBar)

	return lipgloss.JoinVertical(
		lipgloss.Left,
		title,
		separator,
		viewportView,
		inputView,
		statusBar,
	)
}

func (a AppView) getModelList() []ollama.ModelInfo {
	if a.modelFilterMode && len(a.filteredModelList) > 0 {
		return a.filteredModelList
	}
	return a.modelList
}

func (a *AppView) closeAllModals() {
	a.showInfoModal = false
	a.showHelp = false
	a.showModelSelector = false
	a.showAbout = false
	a.imagePicker.Reset()

	a.modelFilterMode = false
	if a.modelFilterInput.Focused() {
		a.modelFilterInput.Blur()
	}
}

// bridgeURL is what the user opens in a browser for camera and dictation.
func (a AppView) bridgeURL() string {
	addr := a.dataModel.Config.BridgeAddr
	if addr == "" {
		addr = config.DefaultBridgeAddr
	}
	return "http://" + addr
}
