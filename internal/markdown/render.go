// Package markdown renders, converts and compares generated postings.
package markdown

import (
	"strings"

	"charm.land/glamour/v2"
	"charm.land/lipgloss/v2"
)

// MaxWidth caps the render width for readability.
const MaxWidth = 120

// Render renders markdown for the terminal.
// Falls back to plain text wrapping if rendering fails.
func Render(content string, width int) string {
	if width > MaxWidth {
		width = MaxWidth
	}
	if width <= 0 {
		width = 80
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return wrap(content, width)
	}

	rendered, err := r.Render(content)
	if err != nil {
		return wrap(content, width)
	}

	// Remove trailing newline that glamour adds
	return strings.TrimSuffix(rendered, "\n")
}

func wrap(content string, width int) string {
	return lipgloss.NewStyle().Width(width).Render(content)
}
