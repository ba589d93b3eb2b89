package vacancy

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/require"

	"github.com/mark3labs/vacancy/internal/tui/testfixtures"
	"github.com/mark3labs/vacancy/internal/wizard"
)

func TestSanitizePaste(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"plain", "Go, Kubernetes", "Go, Kubernetes"},
		{"ansi", "\x1b[31mRed\x1b[0m text", "Red text"},
		{"crlf", "line1\r\nline2\r\n", "line1\nline2"},
		{"control chars", "a\x00b\x07c\x7fd", "abcd"},
		{"keeps tabs inside", "a\tb", "a\tb"},
		{"trailing whitespace", "text  \n\n\t", "text"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, SanitizePaste(tt.input))
		})
	}
}

func TestPaste_IntoAnswer(t *testing.T) {
	m := newTestModel(t, testfixtures.NewMockGenerator(), nil)

	m.Update(tea.PasteMsg{Content: "\x1b[1mFintech\x1b[0m\r\nstartup\r\n"})

	require.Equal(t, "Fintech\nstartup", m.store.State().Answers[0])
	require.Empty(t, m.notice)
}

func TestPaste_TruncatedAtLimit(t *testing.T) {
	m := newTestModel(t, testfixtures.NewMockGenerator(), nil)
	long := strings.Repeat("я", maxAnswerLength+10)

	m.Update(tea.PasteMsg{Content: long})

	require.Len(t, []rune(m.store.State().Answers[0]), maxAnswerLength)
	require.Contains(t, m.notice, "10")
}

func TestPaste_IgnoredWhileViewing(t *testing.T) {
	m, _ := viewingModel(t)

	_, cmd := m.Update(tea.PasteMsg{Content: "ignored"})

	require.Nil(t, cmd)
	require.Equal(t, testfixtures.SamplePosting, m.store.State().EditorText)
	require.Equal(t, wizard.PhaseViewing, m.result.Phase())
}

func TestPaste_IntoEditor(t *testing.T) {
	m, _ := viewingModel(t)
	press(m, "e")
	require.Equal(t, wizard.PhaseEditing, m.result.Phase())

	m.Update(tea.PasteMsg{Content: "\n- Write tests\r\n"})

	require.Equal(t, testfixtures.SamplePosting+"\n- Write tests", m.result.EditorValue())
}
