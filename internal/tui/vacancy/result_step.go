package vacancy

import (
	"fmt"

	"charm.land/bubbles/v2/spinner"
	"charm.land/bubbles/v2/textarea"
	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/mark3labs/vacancy/internal/markdown"
	"github.com/mark3labs/vacancy/internal/tui/theme"
	"github.com/mark3labs/vacancy/internal/tui/widgets"
	"github.com/mark3labs/vacancy/internal/wizard"
)

// ResultStep shows the generated posting. What it renders depends on the
// result phase: a spinner while loading, the error with a retry hint, the
// rendered markdown, or the in-place editor.
type ResultStep struct {
	phase    wizard.Phase
	spinner  spinner.Model
	viewport viewport.Model
	editor   textarea.Model
	errText  string
	rendered string // editor text the viewport was last rendered from
	width    int
	height   int
}

// NewResultStep creates a result step in the loading phase.
func NewResultStep() *ResultStep {
	t := theme.Current()

	vp := viewport.New(
		viewport.WithWidth(modalContentWidth),
		viewport.WithHeight(10),
	)
	vp.MouseWheelEnabled = true
	vp.MouseWheelDelta = 3

	ed := textarea.New()
	ed.ShowLineNumbers = false
	ed.CharLimit = 0
	ed.SetWidth(modalContentWidth - 4)
	ed.SetHeight(10)

	return &ResultStep{
		phase: wizard.PhaseLoading,
		spinner: spinner.New(
			spinner.WithSpinner(spinner.Dot),
			spinner.WithStyle(lipgloss.NewStyle().Foreground(lipgloss.Color(t.Primary))),
		),
		viewport: vp,
		editor:   ed,
		width:    modalContentWidth,
		height:   20,
	}
}

// Phase returns the current result phase.
func (r *ResultStep) Phase() wizard.Phase {
	return r.phase
}

// transition moves from phase from to phase to, refusing moves the phase
// machine forbids.
func (r *ResultStep) transition(from, to wizard.Phase) error {
	if r.phase != from {
		return fmt.Errorf("%w: %s -> %s from %s", wizard.ErrInvalidTransition, from, to, r.phase)
	}
	next, err := r.phase.Transition(to)
	if err != nil {
		return err
	}
	r.phase = next
	return nil
}

// StartLoading enters the loading phase and returns the spinner tick.
func (r *ResultStep) StartLoading() tea.Cmd {
	r.errText = ""
	return r.spinner.Tick
}

// Fail enters the error phase with msg.
func (r *ResultStep) Fail(msg string) error {
	if err := r.transition(wizard.PhaseLoading, wizard.PhaseError); err != nil {
		return err
	}
	r.errText = msg
	return nil
}

// Succeed enters the viewing phase with text rendered.
func (r *ResultStep) Succeed(text string) error {
	if err := r.transition(wizard.PhaseLoading, wizard.PhaseViewing); err != nil {
		return err
	}
	r.setContent(text)
	r.viewport.GotoTop()
	return nil
}

// Retry leaves the error phase for a new loading phase.
func (r *ResultStep) Retry() (tea.Cmd, error) {
	if err := r.transition(wizard.PhaseError, wizard.PhaseLoading); err != nil {
		return nil, err
	}
	return r.StartLoading(), nil
}

// BeginEdit pushes text into the editor and enters the editing phase. From
// here on the editor holds the working copy.
func (r *ResultStep) BeginEdit(text string) error {
	if err := r.transition(wizard.PhaseViewing, wizard.PhaseEditing); err != nil {
		return err
	}
	r.editor.SetValue(text)
	r.editor.Focus()
	return nil
}

// EndEdit returns to the viewing phase showing text.
func (r *ResultStep) EndEdit(text string) error {
	if err := r.transition(wizard.PhaseEditing, wizard.PhaseViewing); err != nil {
		return err
	}
	r.editor.Blur()
	r.setContent(text)
	return nil
}

// EditorValue returns the editor's working copy.
func (r *ResultStep) EditorValue() string {
	return r.editor.Value()
}

// SetEditorValue replaces the editor's working copy.
func (r *ResultStep) SetEditorValue(text string) {
	r.editor.SetValue(text)
}

func (r *ResultStep) setContent(text string) {
	r.rendered = text
	r.viewport.SetContent(markdown.Render(text, r.width))
}

// SetSize updates the dimensions for the result step.
func (r *ResultStep) SetSize(width, height int) {
	r.width = width
	r.height = height

	// Reserve space for status and hint lines
	vpHeight := height - 3
	if vpHeight < 5 {
		vpHeight = 5
	}
	r.viewport.SetWidth(width)
	r.viewport.SetHeight(vpHeight)
	r.editor.SetWidth(width - 4)
	r.editor.SetHeight(vpHeight - 2)

	if r.rendered != "" {
		r.viewport.SetContent(markdown.Render(r.rendered, width))
	}
}

// Update forwards msg to the widget active in the current phase.
func (r *ResultStep) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch r.phase {
	case wizard.PhaseLoading:
		if _, ok := msg.(spinner.TickMsg); ok {
			r.spinner, cmd = r.spinner.Update(msg)
		}
	case wizard.PhaseViewing:
		r.viewport, cmd = r.viewport.Update(msg)
	case wizard.PhaseEditing:
		r.editor, cmd = r.editor.Update(msg)
	}
	return cmd
}

// View renders the result step.
func (r *ResultStep) View(s wizard.State, notice string) string {
	st := theme.Current().S()

	var parts []string
	switch r.phase {
	case wizard.PhaseLoading:
		parts = append(parts,
			r.spinner.View()+" "+st.Muted.Render("Генерируем вакансию..."),
		)

	case wizard.PhaseError:
		parts = append(parts,
			st.Error.Render("⚠ Не удалось сформировать вакансию"),
			"",
			lipgloss.NewStyle().Width(r.width).Render(r.errText),
			"",
			widgets.HintBar("r", "повторить", "ctrl+n", "заново", "ctrl+c", "выход"),
		)

	case wizard.PhaseViewing:
		parts = append(parts, r.viewport.View())
		if s.Copied {
			parts = append(parts, st.Success.Render("✓ Скопировано"))
		}
		if notice != "" {
			parts = append(parts, st.Warning.Width(r.width).Render(notice))
		}
		parts = append(parts, widgets.HintBar(
			"↑↓", "прокрутка",
			"e", "редактировать",
			"c", "копировать",
			"s/S", "сохранить md/html",
			"ctrl+n", "заново",
		))

	case wizard.PhaseEditing:
		parts = append(parts, st.InputBoxFocused.Width(r.width).Render(r.editor.View()))
		if added, removed := markdown.DiffStats(s.EditorText, r.editor.Value()); added+removed > 0 {
			parts = append(parts, st.Muted.Render(fmt.Sprintf("+%d −%d строк", added, removed)))
		}
		if notice != "" {
			parts = append(parts, st.Warning.Width(r.width).Render(notice))
		}
		pairs := []string{"ctrl+s", "сохранить", "esc", "отмена"}
		if editorAvailable() {
			pairs = append(pairs, "ctrl+e", "$EDITOR")
		}
		parts = append(parts, widgets.HintBar(pairs...))
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}
