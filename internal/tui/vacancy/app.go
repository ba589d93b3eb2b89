// Package vacancy is the full-screen questionnaire and result editor.
package vacancy

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	uv "github.com/charmbracelet/ultraviolet"

	"github.com/mark3labs/vacancy/internal/config"
	"github.com/mark3labs/vacancy/internal/export"
	"github.com/mark3labs/vacancy/internal/generation"
	"github.com/mark3labs/vacancy/internal/logger"
	"github.com/mark3labs/vacancy/internal/markdown"
	"github.com/mark3labs/vacancy/internal/speech"
	"github.com/mark3labs/vacancy/internal/tui/theme"
	"github.com/mark3labs/vacancy/internal/wizard"
)

// Modal layout constants
const (
	modalWidth        = 76                                                       // Total modal width including border
	modalPadding      = 2                                                        // Horizontal padding on each side
	modalBorderWidth  = 1                                                        // Border width on each side
	modalContentWidth = modalWidth - (modalPadding * 2) - (modalBorderWidth * 2) // 70
)

// Generator produces a posting from a complete answer set.
// *client.Client and *generation.Service both satisfy it.
type Generator interface {
	Generate(ctx context.Context, answers []string) generation.Result
}

// Model is the BubbleTea model for the vacancy wizard.
type Model struct {
	ctx   context.Context
	cfg   *config.Config
	store *wizard.Store
	gen   Generator

	speech   *speech.Adapter
	speechCh chan tea.Msg

	question *QuestionStep
	result   *ResultStep // nil until the answers are revealed

	notice  string // transient message under the current step
	copySeq int
	genSeq  int // id of the latest generation call
	width   int
	height  int
}

// New creates the wizard model. adapter may wrap a nil recognizer, in which
// case voice input reports that it is unsupported.
func New(ctx context.Context, cfg *config.Config, gen Generator, adapter *speech.Adapter) *Model {
	m := &Model{
		ctx:      ctx,
		cfg:      cfg,
		store:    wizard.NewStore(),
		gen:      gen,
		speech:   adapter,
		speechCh: make(chan tea.Msg, 8),
		question: NewQuestionStep(),
	}
	adapter.OnEnd(func(err error) {
		m.speechCh <- SpeechEndedMsg{Err: err}
	})
	m.store.Subscribe(m.syncButtons)
	m.refreshButtons()
	return m
}

// Run starts a standalone BubbleTea program for the wizard and blocks until
// the user quits.
func Run(ctx context.Context, cfg *config.Config, gen Generator, adapter *speech.Adapter) error {
	m := New(ctx, cfg, gen, adapter)
	defer func() { _ = adapter.Close() }()

	p := tea.NewProgram(m, tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("wizard failed: %w", err)
	}
	return nil
}

// State returns the current wizard state.
func (m *Model) State() wizard.State {
	return m.store.State()
}

// Init initializes the wizard model.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.question.Init(), waitForSpeech(m.speechCh))
}

// Update handles messages for the wizard.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateSizes()
		return m, nil

	case tea.KeyPressMsg:
		if msg.String() == "ctrl+c" {
			m.speech.Stop()
			return m, tea.Quit
		}
		if m.result != nil {
			return m, m.updateResultKeys(msg)
		}
		return m, m.updateQuestionKeys(msg)

	case tea.PasteMsg:
		return m, m.handlePaste(msg)

	case GenerationDoneMsg:
		return m, m.finishGeneration(msg)

	case TranscriptMsg:
		m.appendTranscript(msg.Index, msg.Text)
		return m, waitForSpeech(m.speechCh)

	case SpeechEndedMsg:
		if msg.Err != nil {
			m.notice = "Ошибка распознавания речи: " + msg.Err.Error()
		}
		m.refreshButtons()
		return m, waitForSpeech(m.speechCh)

	case CopyResetMsg:
		if msg.Seq == m.copySeq {
			m.store.Dispatch(wizard.SetCopied{Value: false})
		}
		return m, nil

	case EditorDoneMsg:
		if msg.Err != nil {
			m.notice = "Редактор завершился с ошибкой: " + msg.Err.Error()
			return m, nil
		}
		if m.result != nil && m.result.Phase() == wizard.PhaseEditing {
			m.result.SetEditorValue(strings.TrimSuffix(msg.Content, "\n"))
		}
		return m, nil

	case ExportDoneMsg:
		if msg.Err != nil {
			m.notice = "Не удалось сохранить: " + msg.Err.Error()
		} else {
			m.notice = "Сохранено: " + msg.Path
		}
		return m, nil
	}

	if m.result != nil {
		return m, m.result.Update(msg)
	}
	return m, m.question.UpdateInput(msg)
}

// updateQuestionKeys handles keys while the question list is visible.
func (m *Model) updateQuestionKeys(msg tea.KeyPressMsg) tea.Cmd {
	bar := m.question.Buttons()

	if !m.question.InputFocused() {
		switch msg.String() {
		case "tab", "right":
			if !bar.FocusNext() {
				m.question.FocusInput()
			}
		case "shift+tab", "left":
			if !bar.FocusPrev() {
				m.question.FocusInput()
			}
		case "enter", " ", "space":
			return m.activateButton(bar.FocusedButton())
		case "esc":
			m.question.FocusInput()
		}
		return nil
	}

	switch msg.String() {
	case "tab":
		m.question.FocusButtons(false)
		return nil
	case "shift+tab":
		m.question.FocusButtons(true)
		return nil
	case "ctrl+d":
		return m.advance()
	case "esc":
		return m.retreat()
	case "ctrl+r":
		return m.toggleSpeech()
	}

	cmd := m.question.UpdateInput(msg)
	s := m.store.State()
	if v := m.question.Value(); v != s.CurrentAnswer() {
		m.store.Dispatch(wizard.SetAnswer{Index: s.Current, Value: v})
	}
	return cmd
}

// activateButton runs the action for a question-step button.
func (m *Model) activateButton(id string) tea.Cmd {
	switch id {
	case buttonBack:
		return m.retreat()
	case buttonVoice:
		return m.toggleSpeech()
	case buttonNext:
		return m.advance()
	}
	return nil
}

// advance moves to the next question, or reveals the result and starts
// generation on the last one.
func (m *Model) advance() tea.Cmd {
	before := m.store.State()
	s := m.store.Dispatch(wizard.Advance{})

	if s.ResultVisible {
		m.stopSpeech()
		m.notice = ""
		m.result = NewResultStep()
		m.updateSizes()
		return tea.Batch(m.result.StartLoading(), m.startGeneration(s.Answers))
	}
	if s.Current != before.Current {
		m.stopSpeech()
		m.notice = ""
		m.question.Load(s.CurrentAnswer())
	}
	return nil
}

// retreat moves to the previous question.
func (m *Model) retreat() tea.Cmd {
	before := m.store.State()
	s := m.store.Dispatch(wizard.Retreat{})
	if s.Current != before.Current {
		m.stopSpeech()
		m.notice = ""
		m.question.Load(s.CurrentAnswer())
	}
	return nil
}

// toggleSpeech starts dictation into the current answer, or stops it.
func (m *Model) toggleSpeech() tea.Cmd {
	if m.speech.IsRecording() {
		m.speech.Stop()
		m.refreshButtons()
		return nil
	}

	index := m.store.State().Current
	err := m.speech.Start(func(text string) {
		m.speechCh <- TranscriptMsg{Index: index, Text: text}
	})
	if errors.Is(err, speech.ErrUnsupported) {
		m.notice = speech.MsgUnsupported
		return nil
	}
	if err != nil {
		m.notice = err.Error()
		return nil
	}
	m.notice = ""
	m.refreshButtons()
	return nil
}

// appendTranscript adds dictated text to the answer at index.
func (m *Model) appendTranscript(index int, text string) {
	s := m.store.State()
	if m.result != nil || index < 0 || index >= len(s.Answers) {
		return
	}
	value := strings.TrimSpace(s.Answers[index] + " " + strings.TrimSpace(text))
	s = m.store.Dispatch(wizard.SetAnswer{Index: index, Value: value})
	if index == s.Current {
		m.question.SetValue(value)
	}
}

// startGeneration issues a new generation call, superseding any earlier one.
func (m *Model) startGeneration(answers []string) tea.Cmd {
	m.genSeq++
	return generateCmd(m.ctx, m.gen, answers, m.genSeq)
}

// finishGeneration applies a generation result to the result step.
func (m *Model) finishGeneration(msg GenerationDoneMsg) tea.Cmd {
	if msg.Seq != m.genSeq {
		logger.Debug("Dropping stale generation result %d (latest %d)", msg.Seq, m.genSeq)
		return nil
	}
	if m.result == nil || m.result.Phase() != wizard.PhaseLoading {
		return nil
	}

	res := msg.Result

	if res.Failed() {
		if err := m.result.Fail(res.Error); err != nil {
			logger.Warn("Ignoring generation failure: %v", err)
		}
		return nil
	}

	m.store.Dispatch(wizard.SetEditorText{Value: res.Text})
	if err := m.result.Succeed(res.Text); err != nil {
		logger.Warn("Ignoring generation result: %v", err)
	}
	return nil
}

// updateResultKeys handles keys once the result view is visible.
func (m *Model) updateResultKeys(msg tea.KeyPressMsg) tea.Cmd {
	if msg.String() == "ctrl+n" {
		return m.reset()
	}

	switch m.result.Phase() {
	case wizard.PhaseLoading:
		// Duplicate submissions are ignored until the call finishes.
		return nil

	case wizard.PhaseError:
		if msg.String() == "r" {
			cmd, err := m.result.Retry()
			if err != nil {
				logger.Warn("Retry refused: %v", err)
				return nil
			}
			return tea.Batch(cmd, m.startGeneration(m.store.State().Answers))
		}
		return nil

	case wizard.PhaseViewing:
		switch msg.String() {
		case "e":
			return m.beginEdit()
		case "c":
			return m.copy()
		case "s":
			return m.export(export.Markdown)
		case "S", "shift+s":
			return m.export(export.HTML)
		}
		return m.result.Update(msg)

	case wizard.PhaseEditing:
		switch msg.String() {
		case "ctrl+s":
			return m.saveEdit()
		case "esc":
			return m.cancelEdit()
		case "ctrl+e":
			if editorAvailable() {
				return openEditor(m.result.EditorValue())
			}
			return nil
		}
		return m.result.Update(msg)
	}
	return nil
}

func (m *Model) beginEdit() tea.Cmd {
	s := m.store.State()
	if err := m.result.BeginEdit(s.EditorText); err != nil {
		logger.Warn("Edit refused: %v", err)
		return nil
	}
	m.notice = ""
	m.store.Dispatch(wizard.SetEditMode{Value: true})
	return nil
}

// saveEdit commits the editor's working copy.
func (m *Model) saveEdit() tea.Cmd {
	before := m.store.State().EditorText
	after := m.result.EditorValue()

	if err := m.result.EndEdit(after); err != nil {
		logger.Warn("Save refused: %v", err)
		return nil
	}
	m.store.Dispatch(wizard.SetEditorText{Value: after})
	m.store.Dispatch(wizard.SetEditMode{Value: false})

	added, removed := markdown.DiffStats(before, after)
	if added+removed > 0 {
		m.notice = fmt.Sprintf("Изменения сохранены: +%d −%d строк", added, removed)
		logger.Debug("Posting edited\n%s", markdown.Diff(before, after))
	} else {
		m.notice = ""
	}
	return nil
}

// cancelEdit discards the editor's working copy.
func (m *Model) cancelEdit() tea.Cmd {
	s := m.store.State()
	if err := m.result.EndEdit(s.EditorText); err != nil {
		logger.Warn("Cancel refused: %v", err)
		return nil
	}
	m.store.Dispatch(wizard.SetEditMode{Value: false})
	m.notice = ""
	return nil
}

// copy puts the posting on the clipboard and schedules the copied flag to
// clear. Each copy restarts the delay.
func (m *Model) copy() tea.Cmd {
	text := m.store.State().EditorText
	if err := writeClipboard(text); err != nil {
		logger.Error("Clipboard write failed: %v", err)
		m.notice = "Не удалось скопировать: " + err.Error()
		return nil
	}
	m.notice = ""
	m.copySeq++
	m.store.Dispatch(wizard.SetCopied{Value: true})
	return copyResetCmd(m.cfg.CopyReset, m.copySeq)
}

func (m *Model) export(f export.Format) tea.Cmd {
	s := m.store.State()
	return exportCmd(m.cfg.ExportDir, s.Answers[0], s.EditorText, f)
}

// reset discards everything and returns to the first question.
func (m *Model) reset() tea.Cmd {
	m.stopSpeech()
	m.store.Dispatch(wizard.Reset{})
	m.result = nil
	m.notice = ""
	m.copySeq++
	m.genSeq++
	m.question.Load("")
	m.updateSizes()
	return nil
}

func (m *Model) refreshButtons() {
	m.syncButtons(m.store.State())
}

// syncButtons rebuilds the question buttons for s. It runs after every
// dispatch.
func (m *Model) syncButtons(s wizard.State) {
	m.question.refreshButtons(s, m.speech.IsRecording(), m.speech.Supported())
}

// stopSpeech ends any recording session and updates the voice button.
func (m *Model) stopSpeech() {
	if m.speech.IsRecording() {
		m.speech.Stop()
		m.refreshButtons()
	}
}

// contentSize returns the internal content dimensions for the modal.
func (m *Model) contentSize() (width, height int) {
	width = modalContentWidth

	height = m.height - 4 // Terminal margin
	if height < 20 {
		height = 20
	}
	if height > 44 {
		height = 44
	}
	// Subtract modal chrome: padding (1*2) + border (2) + title (2)
	height -= 6
	return width, height
}

func (m *Model) updateSizes() {
	w, h := m.contentSize()
	m.question.SetSize(w, h)
	if m.result != nil {
		m.result.SetSize(w, h)
	}
}

// View renders the wizard.
func (m *Model) View() tea.View {
	var view tea.View
	view.AltScreen = true

	if m.width == 0 || m.height == 0 {
		// Not ready to render
		view.Content = lipgloss.NewLayer("")
		return view
	}

	centered := lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		m.render(),
	)

	// Draw to canvas using ultraviolet
	canvas := uv.NewScreenBuffer(m.width, m.height)
	uv.NewStyledString(centered).Draw(canvas, uv.Rectangle{
		Min: uv.Position{X: 0, Y: 0},
		Max: uv.Position{X: m.width, Y: m.height},
	})

	view.Content = lipgloss.NewLayer(canvas.Render())
	return view
}

// render returns the modal for the current step.
func (m *Model) render() string {
	t := theme.Current()
	s := m.store.State()

	title := "Новая вакансия"
	var body string
	border := t.BorderDefault
	if m.result != nil {
		title = "Вакансия"
		if m.result.Phase() == wizard.PhaseError {
			border = t.Error
		}
		body = m.result.View(s, m.notice)
	} else {
		body = m.question.View(s, m.speech.IsRecording(), m.notice)
	}

	content := lipgloss.JoinVertical(
		lipgloss.Left,
		t.S().HeaderTitle.MarginBottom(1).Render(title),
		body,
	)

	return t.S().Modal.
		Width(modalWidth).
		BorderForeground(lipgloss.Color(border)).
		Render(content)
}
