package widgets

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/mark3labs/vacancy/internal/tui/theme"
)

// ProgressBar renders a gradient bar width cells wide, filled to percent.
func ProgressBar(width int, percent float64) string {
	if width <= 0 {
		return ""
	}
	if percent < 0 {
		percent = 0
	}
	if percent > 1 {
		percent = 1
	}

	t := theme.Current()
	filled := int(percent*float64(width) + 0.5)

	var b strings.Builder
	for i := 0; i < filled; i++ {
		pos := 0.0
		if width > 1 {
			pos = float64(i) / float64(width-1)
		}
		color := theme.InterpolateColor(t.Primary, t.Secondary, pos)
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render("█"))
	}
	b.WriteString(t.S().ProgressEmpty.Render(strings.Repeat("░", width-filled)))
	return b.String()
}
