package vacancy

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/mark3labs/vacancy/internal/wizard"
)

// SanitizePaste cleans up pasted content by:
// - Stripping ANSI escape sequences
// - Removing null bytes and non-printable control chars (except \n, \t, \r)
// - Normalizing CRLF (\r\n) to LF (\n)
// - Trimming trailing whitespace
func SanitizePaste(content string) string {
	content = ansi.Strip(content)

	var result strings.Builder
	for _, r := range content {
		switch {
		case r == 0: // null byte
			continue
		case r >= 1 && r <= 8: // control chars (SOH through BS)
			continue
		case r == 11 || r == 12: // VT, FF
			continue
		case r >= 14 && r <= 31: // control chars (SO through US)
			continue
		case r == 127: // DEL
			continue
		default:
			result.WriteRune(r)
		}
	}
	content = strings.ReplaceAll(result.String(), "\r\n", "\n")

	return strings.TrimRight(content, " \t\n\r")
}

// handlePaste routes sanitized paste input to whichever textarea is active.
func (m *Model) handlePaste(msg tea.PasteMsg) tea.Cmd {
	content := SanitizePaste(msg.Content)

	if m.result != nil {
		if m.result.Phase() == wizard.PhaseEditing {
			return m.result.Update(tea.PasteMsg{Content: content})
		}
		return nil
	}
	if !m.question.InputFocused() {
		return nil
	}

	currentLen := len([]rune(m.question.Value()))
	pasteLen := len([]rune(content))
	remaining := maxAnswerLength - currentLen
	if remaining <= 0 {
		m.notice = fmt.Sprintf("Обрезано символов: %d", pasteLen)
		return nil
	}
	if pasteLen > remaining {
		content = string([]rune(content)[:remaining])
		m.notice = fmt.Sprintf("Обрезано символов: %d", pasteLen-remaining)
	}

	cmd := m.question.UpdateInput(tea.PasteMsg{Content: content})
	s := m.store.State()
	if v := m.question.Value(); v != s.CurrentAnswer() {
		m.store.Dispatch(wizard.SetAnswer{Index: s.Current, Value: v})
	}
	return cmd
}
