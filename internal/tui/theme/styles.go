package theme

import "charm.land/lipgloss/v2"

// Styles contains all pre-built lipgloss styles for the TUI.
type Styles struct {
	HeaderTitle     lipgloss.Style
	Modal           lipgloss.Style
	Label           lipgloss.Style
	Muted           lipgloss.Style
	Error           lipgloss.Style
	Success         lipgloss.Style
	Warning         lipgloss.Style
	InputBox        lipgloss.Style
	InputBoxFocused lipgloss.Style

	HintKey       lipgloss.Style
	HintDesc      lipgloss.Style
	HintSeparator lipgloss.Style

	ButtonNormal   lipgloss.Style
	ButtonDisabled lipgloss.Style
	ButtonFocused  lipgloss.Style

	ProgressEmpty lipgloss.Style
}
