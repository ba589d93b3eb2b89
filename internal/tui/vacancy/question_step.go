package vacancy

import (
	"fmt"

	"charm.land/bubbles/v2/textarea"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/mark3labs/vacancy/internal/tui/theme"
	"github.com/mark3labs/vacancy/internal/tui/widgets"
	"github.com/mark3labs/vacancy/internal/wizard"
)

// Button IDs on the question step.
const (
	buttonBack  = "back"
	buttonVoice = "voice"
	buttonNext  = "next"
)

const maxAnswerLength = 5000

// QuestionStep renders one question with its answer textarea.
type QuestionStep struct {
	textarea  textarea.Model
	buttonBar *widgets.ButtonBar
	width     int
	height    int
}

// NewQuestionStep creates a question step with a focused, empty textarea.
func NewQuestionStep() *QuestionStep {
	ta := textarea.New()
	ta.Placeholder = wizard.AnswerPlaceholder
	ta.ShowLineNumbers = false
	ta.CharLimit = maxAnswerLength
	ta.SetHeight(6)
	ta.SetWidth(60)
	ta.Focus()

	return &QuestionStep{
		textarea:  ta,
		buttonBar: widgets.NewButtonBar(nil),
		width:     modalContentWidth,
	}
}

// Init starts the cursor blink.
func (q *QuestionStep) Init() tea.Cmd {
	return textarea.Blink
}

// Load replaces the textarea content with the answer for a new question.
func (q *QuestionStep) Load(answer string) {
	q.textarea.SetValue(answer)
	q.FocusInput()
}

// SetValue updates the textarea without moving focus.
func (q *QuestionStep) SetValue(answer string) {
	q.textarea.SetValue(answer)
}

// Value returns the raw textarea content.
func (q *QuestionStep) Value() string {
	return q.textarea.Value()
}

// SetSize updates the dimensions for the question step.
func (q *QuestionStep) SetSize(width, height int) {
	q.width = width
	q.height = height
	q.textarea.SetWidth(width - 4) // border + padding

	taHeight := height - 12 // title, progress, label, hint, buttons
	if taHeight < 4 {
		taHeight = 4
	}
	if taHeight > 12 {
		taHeight = 12
	}
	q.textarea.SetHeight(taHeight)
	q.buttonBar.SetWidth(width)
}

// InputFocused reports whether keystrokes go to the textarea.
func (q *QuestionStep) InputFocused() bool {
	return !q.buttonBar.Focused()
}

// FocusInput returns focus to the textarea.
func (q *QuestionStep) FocusInput() {
	q.buttonBar.Blur()
	q.textarea.Focus()
}

// FocusButtons moves focus to the first (or last) enabled button.
func (q *QuestionStep) FocusButtons(last bool) {
	q.textarea.Blur()
	ok := false
	if last {
		ok = q.buttonBar.FocusLast()
	} else {
		ok = q.buttonBar.FocusFirst()
	}
	if !ok {
		q.FocusInput()
	}
}

// Buttons returns the button bar.
func (q *QuestionStep) Buttons() *widgets.ButtonBar {
	return q.buttonBar
}

// UpdateInput forwards msg to the textarea.
func (q *QuestionStep) UpdateInput(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	q.textarea, cmd = q.textarea.Update(msg)
	return cmd
}

// refreshButtons rebuilds the button set for s.
func (q *QuestionStep) refreshButtons(s wizard.State, recording, speechSupported bool) {
	back := widgets.Button{ID: buttonBack, Label: "← Назад"}
	if s.Current == 0 {
		back.State = widgets.ButtonDisabled
	}

	voice := widgets.Button{ID: buttonVoice, Label: "Голос"}
	if recording {
		voice.Label = "■ Стоп"
	}
	if !speechSupported {
		voice.State = widgets.ButtonDisabled
	}

	next := widgets.Button{ID: buttonNext, Label: "Далее →"}
	if s.IsLast() {
		next.Label = "Сформировать вакансию"
	}

	q.buttonBar.SetButtons([]widgets.Button{back, voice, next})
}

// View renders the question step for s.
func (q *QuestionStep) View(s wizard.State, recording bool, notice string) string {
	t := theme.Current()
	st := t.S()

	question := wizard.Questions[s.Current]

	counter := st.Muted.Render(fmt.Sprintf("%d / %d", s.Current+1, len(s.Answers)))
	progress := widgets.ProgressBar(q.width, s.Progress())

	label := st.Label.Render(question.Label)
	hint := st.Muted.Italic(true).Width(q.width).Render(question.Hint)

	box := st.InputBox
	if q.InputFocused() {
		box = st.InputBoxFocused
	}
	input := box.Width(q.width).Render(q.textarea.View())

	parts := []string{counter, progress, "", label, hint, input}

	if recording {
		parts = append(parts, lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Error)).
			Render("● Запись: текст добавится в конец ответа, ctrl+r чтобы остановить"))
	}
	if s.ValidationError != "" {
		parts = append(parts, st.Error.Render("✗ "+s.ValidationError))
	}
	if notice != "" {
		parts = append(parts, st.Warning.Width(q.width).Render(notice))
	}

	parts = append(parts,
		"",
		q.buttonBar.Render(),
		"",
		widgets.HintBar(
			"tab", "кнопки",
			"ctrl+d", "далее",
			"esc", "назад",
			"ctrl+r", "дописать голосом",
		),
	)

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}
