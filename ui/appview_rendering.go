package ui

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	markdown "github.com/MichaelMure/go-term-markdown"
	tea "github.com/charmbracelet/bubbletea"
	gomarkdown "github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/parser"

	"iris/config"
	appmodel "iris/model"
)

// Pre-compiled regex patterns for better performance
var (
	inlineCodeRegex = regexp.MustCompile(`(?s)\x1b\[44;3m(.*?)\x1b\[0m`)
	mdLinkRegex     = regexp.MustCompile(`\[([^\]]+)\]\((https?://[^\)]+)\)`)
	urlRegex        = regexp.MustCompile(`(https?://[^\s]+)`)
)

func (a *AppView) updateViewportContent(gotoBottom bool) {
	if a.dataModel.Session.Len() == 0 && !a.dataModel.Awaiting {
		a.viewport.SetContent("No questions yet. Attach an image (Alt+I) and ask away!")
		return
	}

	var content strings.Builder

	for i, turn := range a.dataModel.Session.Turns() {
		timestamp := DimStyle.Render(turn.Timestamp.Format("[15:04]"))

		if turn.Role == appmodel.RoleUser {
			role := UserStyle.Render("You")
			content.WriteString(formatUserTurn(timestamp, role, a.renderedFor(i, turn)))
			continue
		}

		role := AssistantStyle.Render("Assistant")
		content.WriteString(fmt.Sprintf("%s %s\n%s\n\n", timestamp, role, a.renderedFor(i, turn)))
	}

	// Spinner line while an answer is in flight
	if a.dataModel.Awaiting {
		timestamp := DimStyle.Render(time.Now().Format("[15:04]"))
		role := AssistantStyle.Render("Assistant")
		content.WriteString(fmt.Sprintf("%s %s\n%s Analyzing image...\n\n", timestamp, role, a.loadingSpinner.View()))
	}

	a.viewport.SetContent(content.String())
	if gotoBottom {
		a.viewport.GotoBottom()
	}
}

// renderedFor picks what to display for a turn: the partial text while a
// reveal is running, the cached markdown once rendered, plain content
// otherwise.
func (a *AppView) renderedFor(i int, turn Turn) string {
	if partial, ok := a.revealing(i); ok {
		return partial
	}
	if turn.Rendered != "" {
		return turn.Rendered
	}
	return turn.Content
}

func formatUserTurn(timestamp, role, content string) string {
	greenBold := "\x1b[32;1m"
	reset := "\x1b[0m"
	bar := greenBold + "┃" + reset

	lines := strings.Split(content, "\n")

	var result strings.Builder
	result.WriteString(fmt.Sprintf("%s %s %s\n", bar, timestamp, role))

	for _, line := range lines {
		result.WriteString(fmt.Sprintf("%s %s\n", bar, line))
	}

	result.WriteString("\n")

	return result.String()
}

func (a AppView) renderMarkdownAsync(turnIndex int, content string) tea.Cmd {
	width := a.width
	return func() tea.Msg {
		if config.DebugLog != nil {
			config.DebugLog.Printf("Starting async markdown render for turn %d - length: %d chars", turnIndex, len(content))
		}
		startTime := time.Now()

		// Strip markdown link syntax [text](url) so all links appear as
		// plain URLs the terminal can make clickable
		content = preprocessLinks(content)

		// Disable autolink so URLs stay plain text
		defaultExt := markdown.Extensions()
		customExt := defaultExt &^ parser.Autolink
		p := parser.NewWithExtensions(customExt)
		r := markdown.NewRenderer(width-4, 0)
		doc := p.Parse([]byte(content))
		rendered := gomarkdown.Render(doc, r)

		processed := postProcessMarkdown(string(rendered))

		if config.DebugLog != nil {
			config.DebugLog.Printf("Markdown rendered in %v", time.Since(startTime))
		}

		return markdownRenderedMsg{
			TurnIndex: turnIndex,
			Rendered:  processed,
		}
	}
}

func postProcessMarkdown(rendered string) string {
	// Inline code: blue background reads badly on transparent terminals
	rendered = fixInlineCode(rendered)

	// Color plain URLs red (autolink disabled keeps URLs plain)
	rendered = fixPlainURLs(rendered)

	return rendered
}

func preprocessLinks(content string) string {
	return mdLinkRegex.ReplaceAllString(content, "$2")
}

func fixInlineCode(s string) string {
	// Replace: \x1b[44;3m...text...\x1b[0m (Blue BG + Italic)
	// With:    \x1b[31m...text...\x1b[0m (Red text)
	return inlineCodeRegex.ReplaceAllString(s, "\x1b[31m$1\x1b[0m")
}

func fixPlainURLs(s string) string {
	redColor := "\x1b[31m"
	reset := "\x1b[0m"

	lines := strings.Split(s, "\n")

	for i, line := range lines {
		// Skip code blocks (they carry a ┃ prefix from rendering)
		if !strings.Contains(line, "┃") {
			lines[i] = urlRegex.ReplaceAllString(line, redColor+"$1"+reset)
		}
	}

	return strings.Join(lines, "\n")
}
