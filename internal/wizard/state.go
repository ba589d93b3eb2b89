package wizard

import (
	"errors"
	"fmt"
	"strings"
)

// ErrIncomplete is returned by Validate when at least one answer is blank.
var ErrIncomplete = errors.New("answers incomplete")

// State is a snapshot of the questionnaire.
type State struct {
	Answers         []string
	Current         int
	ResultVisible   bool
	EditorText      string
	Copied          bool
	EditMode        bool
	ValidationError string
}

// Action is one of the closed set of state transitions below.
type Action interface {
	isAction()
}

// SetAnswer replaces the answer at Index.
type SetAnswer struct {
	Index int
	Value string
}

// Advance moves to the next question, or validates and reveals the result
// when already on the last one.
type Advance struct{}

// Retreat moves to the previous question.
type Retreat struct{}

// RevealResult validates the answers and shows the result view.
type RevealResult struct{}

// SetEditorText replaces the result text.
type SetEditorText struct {
	Value string
}

// SetCopied toggles the transient "copied" flag.
type SetCopied struct {
	Value bool
}

// SetEditMode toggles result editing.
type SetEditMode struct {
	Value bool
}

// SetError sets or clears the validation message.
type SetError struct {
	Message string
}

// Reset discards everything and starts over.
type Reset struct{}

func (SetAnswer) isAction()     {}
func (Advance) isAction()       {}
func (Retreat) isAction()       {}
func (RevealResult) isAction()  {}
func (SetEditorText) isAction() {}
func (SetCopied) isAction()     {}
func (SetEditMode) isAction()   {}
func (SetError) isAction()      {}
func (Reset) isAction()         {}

// NewState returns a fresh state with Count empty answers.
func NewState() State {
	return State{
		Answers: make([]string, Count),
	}
}

// IsLast reports whether the current question is the final one.
func (s State) IsLast() bool {
	return s.Current == len(s.Answers)-1
}

// CurrentAnswer returns the answer for the current question.
func (s State) CurrentAnswer() string {
	if s.Current < 0 || s.Current >= len(s.Answers) {
		return ""
	}
	return s.Answers[s.Current]
}

// Progress returns completion of the questionnaire in [0, 1].
func (s State) Progress() float64 {
	if len(s.Answers) <= 1 {
		return 1
	}
	return float64(s.Current) / float64(len(s.Answers)-1)
}

// Reduce applies action to s and returns the next state. s is never mutated.
func Reduce(s State, action Action) State {
	switch a := action.(type) {
	case SetAnswer:
		if s.ResultVisible || a.Index < 0 || a.Index >= len(s.Answers) {
			return s
		}
		answers := make([]string, len(s.Answers))
		copy(answers, s.Answers)
		answers[a.Index] = a.Value
		s.Answers = answers
		s.ValidationError = ""

	case Advance:
		if s.ResultVisible {
			return s
		}
		if !s.IsLast() {
			s.Current++
			return s
		}
		return reveal(s)

	case Retreat:
		if s.ResultVisible || s.Current == 0 {
			return s
		}
		s.Current--

	case RevealResult:
		if s.ResultVisible {
			return s
		}
		return reveal(s)

	case SetEditorText:
		s.EditorText = a.Value

	case SetCopied:
		s.Copied = a.Value

	case SetEditMode:
		s.EditMode = a.Value && s.ResultVisible

	case SetError:
		s.ValidationError = a.Message

	case Reset:
		return NewState()
	}

	return s
}

// reveal shows the result view when every answer is filled in.
func reveal(s State) State {
	if err := Validate(s.Answers); err != nil {
		s.ValidationError = ValidationMessage(err)
		return s
	}
	s.ValidationError = ""
	s.ResultVisible = true
	s.EditMode = false
	return s
}

// Validate checks that there is exactly one non-blank answer per question.
// The returned error wraps ErrIncomplete and names the first blank section.
func Validate(answers []string) error {
	if len(answers) != Count {
		return fmt.Errorf("%w: expected %d answers, got %d", ErrIncomplete, Count, len(answers))
	}
	for i, a := range answers {
		if strings.TrimSpace(a) == "" {
			return &MissingAnswerError{Index: i}
		}
	}
	return nil
}

// MissingAnswerError identifies the first blank answer.
type MissingAnswerError struct {
	Index int
}

func (e *MissingAnswerError) Error() string {
	return fmt.Sprintf("answer %d is empty", e.Index+1)
}

func (e *MissingAnswerError) Unwrap() error {
	return ErrIncomplete
}

// ValidationMessage converts a Validate error into the user-facing text.
func ValidationMessage(err error) string {
	var missing *MissingAnswerError
	if errors.As(err, &missing) && missing.Index < len(Questions) {
		return "Заполните все поля: " + Questions[missing.Index].Label
	}
	return "Заполните все поля"
}
