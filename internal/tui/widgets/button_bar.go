package widgets

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/mark3labs/vacancy/internal/tui/theme"
)

// ButtonState represents the visual state of a button.
type ButtonState int

const (
	ButtonNormal   ButtonState = iota // Normal state (enabled)
	ButtonDisabled                    // Disabled state (grayed out)
	ButtonFocused                     // Focused/highlighted state
)

// Button represents a single button in the button bar.
type Button struct {
	ID    string
	Label string
	State ButtonState
}

// ButtonBar manages a set of buttons with keyboard focus.
type ButtonBar struct {
	buttons []Button
	focused int // -1 when nothing is focused
	width   int
}

// NewButtonBar creates a new button bar with the given buttons.
func NewButtonBar(buttons []Button) *ButtonBar {
	return &ButtonBar{
		buttons: buttons,
		focused: -1,
		width:   60,
	}
}

// SetWidth updates the width for the button bar.
func (b *ButtonBar) SetWidth(width int) {
	b.width = width
}

// SetButtons replaces the buttons, keeping focus on the same index when it is
// still enabled.
func (b *ButtonBar) SetButtons(buttons []Button) {
	b.buttons = buttons
	if b.focused >= len(buttons) || (b.focused >= 0 && buttons[b.focused].State == ButtonDisabled) {
		b.focused = -1
		b.FocusFirst()
	}
}

// Focused reports whether any button has focus.
func (b *ButtonBar) Focused() bool {
	return b.focused >= 0
}

// FocusedButton returns the ID of the focused button, or "".
func (b *ButtonBar) FocusedButton() string {
	if b.focused < 0 || b.focused >= len(b.buttons) {
		return ""
	}
	return b.buttons[b.focused].ID
}

// FocusFirst focuses the first enabled button.
func (b *ButtonBar) FocusFirst() bool {
	return b.focusFrom(0, 1)
}

// FocusLast focuses the last enabled button.
func (b *ButtonBar) FocusLast() bool {
	return b.focusFrom(len(b.buttons)-1, -1)
}

// FocusNext moves focus right. It returns false when focus falls off the end.
func (b *ButtonBar) FocusNext() bool {
	if !b.focusFrom(b.focused+1, 1) {
		b.Blur()
		return false
	}
	return true
}

// FocusPrev moves focus left. It returns false when focus falls off the start.
func (b *ButtonBar) FocusPrev() bool {
	if b.focused <= 0 || !b.focusFrom(b.focused-1, -1) {
		b.Blur()
		return false
	}
	return true
}

// Blur removes focus from all buttons.
func (b *ButtonBar) Blur() {
	b.focused = -1
}

func (b *ButtonBar) focusFrom(start, step int) bool {
	for i := start; i >= 0 && i < len(b.buttons); i += step {
		if b.buttons[i].State != ButtonDisabled {
			b.focused = i
			return true
		}
	}
	return false
}

// Render renders the button bar with proper spacing and styling.
func (b *ButtonBar) Render() string {
	if len(b.buttons) == 0 {
		return ""
	}

	s := theme.Current().S()

	var renderedButtons []string
	for i, btn := range b.buttons {
		state := btn.State
		if i == b.focused && state != ButtonDisabled {
			state = ButtonFocused
		}
		var rendered string
		switch state {
		case ButtonDisabled:
			rendered = s.ButtonDisabled.Render(btn.Label)
		case ButtonFocused:
			rendered = s.ButtonFocused.Render(btn.Label)
		default: // ButtonNormal
			rendered = s.ButtonNormal.Render(btn.Label)
		}
		renderedButtons = append(renderedButtons, rendered)
	}

	result := strings.Join(renderedButtons, "")

	// Center the button bar
	return lipgloss.Place(b.width, 1, lipgloss.Center, lipgloss.Center, result)
}
