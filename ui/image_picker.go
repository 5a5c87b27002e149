package ui

import (
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/filepicker"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	irisconfig "iris/config"
	appmodel "iris/model"
)

type FilePickerConfig struct {
	Title          string
	AllowedTypes   []string
	StartDirectory string
	ShowHidden     bool
}

type FilePickerState struct {
	Active bool
	Picker filepicker.Model
	Config FilePickerConfig
}

func NewFilePickerState(config FilePickerConfig) FilePickerState {
	fp := filepicker.New()
	fp.AllowedTypes = config.AllowedTypes
	fp.Height = 10
	fp.DirAllowed = true
	fp.FileAllowed = true
	fp.ShowPermissions = false
	fp.ShowSize = false
	fp.ShowHidden = config.ShowHidden

	startDir := config.StartDirectory
	if startDir == "" {
		startDir = irisconfig.GetHomeDir()
	}
	fp.CurrentDirectory = startDir

	fp.Styles.Directory = lipgloss.NewStyle().
		Foreground(accentColor).
		Bold(true)
	fp.Styles.File = lipgloss.NewStyle().
		Foreground(lipgloss.Color("15"))
	fp.Styles.Selected = lipgloss.NewStyle().
		Foreground(successColor).
		Bold(true)
	fp.Styles.Cursor = lipgloss.NewStyle().
		Foreground(successColor)

	return FilePickerState{
		Active: false,
		Picker: fp,
		Config: config,
	}
}

func (fps *FilePickerState) Activate() {
	fps.Active = true
	fps.Picker.Path = ""
}

func (fps *FilePickerState) Reset() {
	fps.Active = false
}

func (a AppView) handleImagePickerUpdate(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "esc" {
		a.imagePicker.Reset()
		return a, nil
	}

	var cmd tea.Cmd
	a.imagePicker.Picker, cmd = a.imagePicker.Picker.Update(msg)

	// Check if Path was set and it's a FILE (not directory)
	if a.imagePicker.Picker.Path != "" {
		if info, err := os.Stat(a.imagePicker.Picker.Path); err == nil && !info.IsDir() {
			path := a.imagePicker.Picker.Path
			a.imagePicker.Reset()

			if irisconfig.DebugLog != nil {
				irisconfig.DebugLog.Printf("Image selected: %s", path)
			}

			if !appmodel.IsSupportedImage(path) {
				a.showInfoModal = true
				a.infoModalTitle = "⚠️  Unsupported File"
				a.infoModalMsg = "That file does not look like an image.\n\nSupported: jpg, png, gif, bmp, tiff, webp"
				return a, nil
			}

			// Decode off the update loop
			return a, appmodel.LoadImage(path)
		}
		// If it's a directory, clear Path so we don't trigger again
		a.imagePicker.Picker.Path = ""
	}

	return a, cmd
}

func RenderFilePickerModal(state FilePickerState, width, height int) string {
	if width < 20 || height < 10 {
		return "Terminal too small"
	}

	modalWidth := width - 10
	if modalWidth < 10 {
		modalWidth = 10
	}
	if modalWidth > 80 {
		modalWidth = 80
	}

	var messageLines []string
	messageLines = append(messageLines, strings.Repeat(" ", modalWidth))

	pickerView := state.Picker.View()
	pickerLines := strings.Split(pickerView, "\n")

	contentStyle := lipgloss.NewStyle().
		Width(modalWidth).
		Align(lipgloss.Left)

	for _, line := range pickerLines {
		trimmedLine := strings.TrimRight(line, " ")
		messageLines = append(messageLines, contentStyle.Render("  "+trimmedLine))
	}

	messageLines = append(messageLines, strings.Repeat(" ", modalWidth))

	footer := FormatFooter("j/k", "Navigate", "h/l", "Back/Forward", "Enter", "Attach", "Esc", "Cancel")

	return RenderThreeSectionModal(
		state.Config.Title,
		messageLines,
		footer,
		ModalTypeInfo,
		modalWidth,
		width,
		height,
	)
}
