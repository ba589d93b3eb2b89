package vacancy

import (
	"context"
	"os"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/atotto/clipboard"
	"github.com/charmbracelet/x/editor"

	"github.com/mark3labs/vacancy/internal/export"
	"github.com/mark3labs/vacancy/internal/logger"
)

// writeClipboard is replaced in tests.
var writeClipboard = clipboard.WriteAll

// generateCmd asks gen for a posting built from a copy of answers.
func generateCmd(ctx context.Context, gen Generator, answers []string, seq int) tea.Cmd {
	answers = append([]string(nil), answers...)
	return func() tea.Msg {
		return GenerationDoneMsg{Seq: seq, Result: gen.Generate(ctx, answers)}
	}
}

// copyResetCmd schedules the copied flag to clear after d.
func copyResetCmd(d time.Duration, seq int) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return CopyResetMsg{Seq: seq}
	})
}

// exportCmd writes content to dir in the given format.
func exportCmd(dir, title, content string, f export.Format) tea.Cmd {
	return func() tea.Msg {
		path, err := export.Write(dir, title, content, f)
		if err != nil {
			logger.Error("Export failed: %v", err)
		}
		return ExportDoneMsg{Path: path, Err: err}
	}
}

// waitForSpeech returns a command that waits for the next speech event.
func waitForSpeech(ch <-chan tea.Msg) tea.Cmd {
	return func() tea.Msg {
		return <-ch
	}
}

// editorAvailable reports whether $EDITOR is set.
func editorAvailable() bool {
	return os.Getenv("EDITOR") != ""
}

// openEditor launches the user's $EDITOR with content and returns the edited
// text in an EditorDoneMsg.
func openEditor(content string) tea.Cmd {
	tmpfile, err := os.CreateTemp("", "vacancy_*.md")
	if err != nil {
		return func() tea.Msg { return EditorDoneMsg{Err: err} }
	}
	path := tmpfile.Name()

	if _, err := tmpfile.WriteString(content); err != nil {
		_ = tmpfile.Close()
		_ = os.Remove(path)
		return func() tea.Msg { return EditorDoneMsg{Err: err} }
	}
	_ = tmpfile.Close()

	cmd, err := editor.Command("vacancy", path)
	if err != nil {
		_ = os.Remove(path)
		return func() tea.Msg { return EditorDoneMsg{Err: err} }
	}

	return tea.ExecProcess(cmd, func(err error) tea.Msg {
		defer func() { _ = os.Remove(path) }()
		if err != nil {
			return EditorDoneMsg{Err: err}
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return EditorDoneMsg{Err: err}
		}
		return EditorDoneMsg{Content: string(data)}
	})
}
