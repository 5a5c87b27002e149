package ui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	"iris/config"
	"iris/ollama"
)

func (a AppView) handleModelSelectorUpdate(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.modelFilterMode {
		switch msg.String() {
		case "esc":
			a.modelFilterMode = false
			a.modelFilterInput.Blur()
			a.modelFilterInput.SetValue("")
			a.filteredModelList = []ollama.ModelInfo{}
			a.selectedModelIdx = 0
			return a, nil

		case "enter":
			return a.selectModel()

		case "alt+j", "alt+down", "down":
			list := a.getModelList()
			if a.selectedModelIdx < len(list)-1 {
				a.selectedModelIdx++
			}
			return a, nil

		case "alt+k", "alt+up", "up":
			if a.selectedModelIdx > 0 {
				a.selectedModelIdx--
			}
			return a, nil
		}

		var cmd tea.Cmd
		a.modelFilterInput, cmd = a.modelFilterInput.Update(msg)

		filterValue := a.modelFilterInput.Value()
		if filterValue == "" {
			a.filteredModelList = a.modelList
		} else {
			targets := make([]string, len(a.modelList))
			for i, m := range a.modelList {
				targets[i] = m.Name
			}

			matches := fuzzy.Find(filterValue, targets)
			a.filteredModelList = make([]ollama.ModelInfo, len(matches))
			for i, match := range matches {
				a.filteredModelList[i] = a.modelList[match.Index]
			}
		}

		list := a.getModelList()
		if a.selectedModelIdx >= len(list) && len(list) > 0 {
			a.selectedModelIdx = len(list) - 1
		}

		return a, cmd
	}

	switch msg.String() {
	case "/":
		a.modelFilterMode = true
		a.modelFilterInput.Focus()
		a.modelFilterInput.SetValue("")
		a.filteredModelList = a.modelList
		return a, textinput.Blink

	case "esc":
		a.showModelSelector = false
		return a, nil

	case "j", "down":
		list := a.getModelList()
		if a.selectedModelIdx < len(list)-1 {
			a.selectedModelIdx++
		}
		return a, nil

	case "k", "up":
		if a.selectedModelIdx > 0 {
			a.selectedModelIdx--
		}
		return a, nil

	case "tab":
		// Cycle to the next initialized provider and refetch its models
		return a.cycleProvider()

	case "enter":
		return a.selectModel()
	}

	return a, nil
}

func (a AppView) selectModel() (tea.Model, tea.Cmd) {
	list := a.getModelList()
	if a.selectedModelIdx < 0 || a.selectedModelIdx >= len(list) {
		return a, nil
	}
	info := list[a.selectedModelIdx]

	if a.dataModel.Provider == nil {
		return a, nil
	}
	a.dataModel.Provider.SetModel(info.InternalName)

	if config.DebugLog != nil {
		config.DebugLog.Printf("Model switched to %s", info.InternalName)
	}

	a.showModelSelector = false
	a.modelFilterMode = false
	a.modelFilterInput.Blur()
	a.modelFilterInput.SetValue("")
	a.filteredModelList = []ollama.ModelInfo{}

	return a, a.flash(fmt.Sprintf("Model: %s", info.Name))
}

func (a AppView) cycleProvider() (tea.Model, tea.Cmd) {
	if len(a.dataModel.Providers) < 2 {
		return a, nil
	}

	ids := make([]string, 0, len(a.dataModel.Providers))
	for id := range a.dataModel.Providers {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	current := -1
	for i, id := range ids {
		if a.dataModel.Providers[id] == a.dataModel.Provider {
			current = i
			break
		}
	}
	next := ids[(current+1)%len(ids)]

	if !a.dataModel.SwitchProvider(next) {
		return a, nil
	}

	if config.DebugLog != nil {
		config.DebugLog.Printf("Provider switched to %s", next)
	}

	a.modelList = nil
	a.filteredModelList = []ollama.ModelInfo{}
	a.selectedModelIdx = 0
	return a, a.dataModel.FetchModelList(true)
}

func renderModelSelector(models []ollama.ModelInfo, selectedIdx int, currentModel string, filterMode bool, filterInput textinput.Model, filteredModels []ollama.ModelInfo, width, height int) string {
	modalWidth := width - 10
	if modalWidth > 80 {
		modalWidth = 80
	}
	modalHeight := height - 6

	titleSection := lipgloss.NewStyle().
		Bold(true).
		Align(lipgloss.Center).
		Width(modalWidth).
		Render("Select Model")

	// Header: show filter input or count
	var header string
	if filterMode {
		header = filterInput.View()
	} else {
		displayList := models
		if len(filteredModels) > 0 {
			displayList = filteredModels
		}
		if len(models) == len(displayList) {
			header = fmt.Sprintf("%d models", len(models))
		} else {
			header = fmt.Sprintf("%d of %d models", len(displayList), len(models))
		}
	}

	headerSection := lipgloss.NewStyle().
		Foreground(dimColor).
		Align(lipgloss.Center).
		Width(modalWidth).
		BorderTop(true).
		BorderBottom(true).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(dimColor).
		Render(header)

	displayList := models
	if filterMode && len(filteredModels) > 0 {
		displayList = filteredModels
	}

	var modelLines []string
	maxLines := modalHeight - 8 // Reserve space for title, borders, header, footer

	if len(displayList) == 0 {
		emptyMsg := "No models available"
		if filterMode {
			emptyMsg = "No matches found"
		}
		modelLines = append(modelLines, lipgloss.NewStyle().
			Foreground(dimColor).
			Italic(true).
			Align(lipgloss.Center).
			Width(modalWidth).
			Render(emptyMsg))
	} else {
		startIdx := 0
		endIdx := len(displayList)

		// Scroll if needed
		if len(displayList) > maxLines {
			if selectedIdx < maxLines/2 {
				endIdx = maxLines
			} else if selectedIdx >= len(displayList)-maxLines/2 {
				startIdx = len(displayList) - maxLines
			} else {
				startIdx = selectedIdx - maxLines/2
				endIdx = startIdx + maxLines
			}
		}

		for i := startIdx; i < endIdx && i < len(displayList); i++ {
			m := displayList[i]

			indicator := "  "
			if i == selectedIdx {
				indicator = "▶ "
			}

			size := formatSize(m.Size)

			currentMarker := ""
			if m.InternalName == currentModel {
				currentMarker = " (current)"
			}

			name := m.Name
			maxNameWidth := modalWidth - 20 // Reserve space for size
			if len(name) > maxNameWidth {
				name = name[:maxNameWidth-3] + "..."
			}

			spacing := modalWidth - len(indicator) - len(name) - len(currentMarker) - len(size) - 4
			if spacing < 1 {
				spacing = 1
			}

			line := fmt.Sprintf("%s%s%s%s%s",
				indicator,
				name,
				currentMarker,
				strings.Repeat(" ", spacing),
				size,
			)

			lineStyle := lipgloss.NewStyle()
			if i == selectedIdx {
				lineStyle = lineStyle.Foreground(successColor).Bold(true)
			} else if m.InternalName == currentModel {
				lineStyle = lineStyle.Foreground(accentColor).Bold(true)
			}

			modelLines = append(modelLines, lipgloss.NewStyle().
				Width(modalWidth).
				Render(lineStyle.Render(line)))
		}
	}

	emptyLine := strings.Repeat(" ", modalWidth)
	modelLines = append([]string{emptyLine}, modelLines...)
	modelLines = append(modelLines, emptyLine)

	var footerText string
	if filterMode {
		footerText = FormatFooter("Type", "to filter", "Alt+J/K", "Navigate", "Enter", "Select", "Esc", "Cancel")
	} else {
		footerText = FormatFooter("/", "Filter", "j/k", "Navigate", "Tab", "Provider", "Enter", "Select", "Esc", "Exit")
	}
	footerSection := lipgloss.NewStyle().
		Align(lipgloss.Center).
		Width(modalWidth).
		BorderTop(true).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(dimColor).
		Render(footerText)

	var sections []string
	sections = append(sections, titleSection)
	sections = append(sections, headerSection)
	sections = append(sections, modelLines...)
	sections = append(sections, footerSection)

	content := strings.Join(sections, "\n")

	modalStyle := lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center)

	return modalStyle.Render(content)
}

// formatSize converts bytes to human-readable form. Cloud models have no
// size and render blank.
func formatSize(bytes int64) string {
	if bytes == 0 {
		return ""
	}

	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}
