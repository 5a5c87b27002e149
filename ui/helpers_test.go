package ui

import (
	"strings"
	"testing"
)

func TestWordWrap(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		width int
		want  string
	}{
		{
			name:  "short line untouched",
			text:  "hello world",
			width: 20,
			want:  "hello world",
		},
		{
			name:  "wraps at width",
			text:  "one two three four",
			width: 9,
			want:  "one two\nthree\nfour",
		},
		{
			name:  "preserves existing newlines",
			text:  "first\nsecond",
			width: 20,
			want:  "first\nsecond",
		},
		{
			name:  "zero width returns input",
			text:  "anything at all",
			width: 0,
			want:  "anything at all",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := wordWrap(tt.text, tt.width); got != tt.want {
				t.Errorf("wordWrap(%q, %d) = %q, want %q", tt.text, tt.width, got, tt.want)
			}
		})
	}
}

func TestFormatSize(t *testing.T) {
	tests := []struct {
		bytes int64
		want  string
	}{
		{0, ""},
		{512, "512 B"},
		{1024, "1.0 KB"},
		{4800000000, "4.5 GB"},
	}

	for _, tt := range tests {
		if got := formatSize(tt.bytes); got != tt.want {
			t.Errorf("formatSize(%d) = %q, want %q", tt.bytes, got, tt.want)
		}
	}
}

func TestFormatUserTurn(t *testing.T) {
	out := formatUserTurn("[10:30]", "You", "line one\nline two")

	if !strings.Contains(out, "line one") || !strings.Contains(out, "line two") {
		t.Error("both content lines should appear")
	}
	if strings.Count(out, "┃") != 3 {
		t.Errorf("expected a bar on the header and each content line, got %d", strings.Count(out, "┃"))
	}
}

func TestFixInlineCode(t *testing.T) {
	in := "before \x1b[44;3mcode\x1b[0m after"
	out := fixInlineCode(in)

	if strings.Contains(out, "\x1b[44;3m") {
		t.Error("blue background sequence should be replaced")
	}
	if !strings.Contains(out, "\x1b[31mcode\x1b[0m") {
		t.Errorf("inline code should turn red, got %q", out)
	}
}

func TestPreprocessLinks(t *testing.T) {
	in := "see [the docs](https://example.com/docs) for more"
	out := preprocessLinks(in)

	if out != "see https://example.com/docs for more" {
		t.Errorf("preprocessLinks = %q", out)
	}
}
