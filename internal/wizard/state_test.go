package wizard

import (
	"errors"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func filledState() State {
	s := NewState()
	for i := range s.Answers {
		s = Reduce(s, SetAnswer{Index: i, Value: "answer"})
	}
	return s
}

func TestNewState(t *testing.T) {
	s := NewState()

	require.Len(t, s.Answers, 5)
	require.Equal(t, 0, s.Current)
	require.False(t, s.ResultVisible)
	require.False(t, s.EditMode)
	require.Empty(t, s.ValidationError)
}

func TestQuestions_FixedCount(t *testing.T) {
	require.Len(t, Questions, Count)
	require.Len(t, NewState().Answers, Count)
	for i, q := range Questions {
		require.NotEmpty(t, q.Label, "question %d", i)
	}
}

func TestReduce_DoesNotMutateInput(t *testing.T) {
	s := NewState()
	next := Reduce(s, SetAnswer{Index: 0, Value: "Fintech"})

	require.Equal(t, "", s.Answers[0], "input state must not change")
	require.Equal(t, "Fintech", next.Answers[0])
}

func TestReduce_SetAnswer(t *testing.T) {
	t.Run("out of range is a no-op", func(t *testing.T) {
		s := NewState()
		require.Equal(t, s, Reduce(s, SetAnswer{Index: -1, Value: "x"}))
		require.Equal(t, s, Reduce(s, SetAnswer{Index: 5, Value: "x"}))
	})

	t.Run("clears stale validation error", func(t *testing.T) {
		s := Reduce(NewState(), SetError{Message: "Заполните все поля"})
		s = Reduce(s, SetAnswer{Index: 2, Value: "Remote"})
		require.Empty(t, s.ValidationError)
	})

	t.Run("ignored while result is visible", func(t *testing.T) {
		s := Reduce(filledState(), RevealResult{})
		require.True(t, s.ResultVisible)

		next := Reduce(s, SetAnswer{Index: 0, Value: "changed"})
		require.Equal(t, "answer", next.Answers[0])
	})
}

func TestReduce_Navigation(t *testing.T) {
	s := NewState()

	s = Reduce(s, Retreat{})
	require.Equal(t, 0, s.Current, "retreat at 0 is a no-op")

	for i := 1; i < Count; i++ {
		s = Reduce(s, Advance{})
		require.Equal(t, i, s.Current)
	}
	require.True(t, s.IsLast())

	s = Reduce(s, Retreat{})
	require.Equal(t, Count-2, s.Current)
}

func TestReduce_AdvanceFromLast(t *testing.T) {
	t.Run("all answers filled reveals result", func(t *testing.T) {
		s := filledState()
		s.Current = Count - 1

		next := Reduce(s, Advance{})

		require.True(t, next.ResultVisible)
		require.Empty(t, next.ValidationError)
		require.Equal(t, Count-1, next.Current)
	})

	t.Run("blank answer sets validation error", func(t *testing.T) {
		s := filledState()
		s = Reduce(s, SetAnswer{Index: 3, Value: "   "})
		s.Current = Count - 1

		next := Reduce(s, Advance{})

		require.False(t, next.ResultVisible)
		require.NotEmpty(t, next.ValidationError)
		require.Contains(t, next.ValidationError, "Требования")
	})
}

func TestReduce_EditModeRequiresResult(t *testing.T) {
	s := Reduce(NewState(), SetEditMode{Value: true})
	require.False(t, s.EditMode)

	s = Reduce(filledState(), RevealResult{})
	s = Reduce(s, SetEditMode{Value: true})
	require.True(t, s.EditMode)

	s = Reduce(s, Reset{})
	require.False(t, s.EditMode)
	require.False(t, s.ResultVisible)
}

func TestReduce_CopiedAndEditorText(t *testing.T) {
	s := Reduce(filledState(), RevealResult{})
	s = Reduce(s, SetEditorText{Value: "### Role"})
	s = Reduce(s, SetCopied{Value: true})

	assert.Equal(t, "### Role", s.EditorText)
	assert.True(t, s.Copied)

	s = Reduce(s, SetCopied{Value: false})
	assert.False(t, s.Copied)
}

func TestReduce_Reset(t *testing.T) {
	s := Reduce(filledState(), RevealResult{})
	s = Reduce(s, SetEditorText{Value: "text"})

	require.Equal(t, NewState(), Reduce(s, Reset{}))
}

// TestReduce_ResultNeverVisibleWithBlankAnswers drives random action
// sequences and checks that the result view only ever appears on a state
// whose answers are all filled in.
func TestReduce_ResultNeverVisibleWithBlankAnswers(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	values := []string{"", " ", "Go", "Remote", "\t\n"}

	for run := 0; run < 200; run++ {
		s := NewState()
		for step := 0; step < 40; step++ {
			var action Action
			switch rng.Intn(8) {
			case 0, 1, 2:
				action = SetAnswer{Index: rng.Intn(Count+2) - 1, Value: values[rng.Intn(len(values))]}
			case 3:
				action = Advance{}
			case 4:
				action = Retreat{}
			case 5:
				action = RevealResult{}
			case 6:
				action = SetEditMode{Value: rng.Intn(2) == 0}
			case 7:
				if rng.Intn(10) == 0 {
					action = Reset{}
				} else {
					action = SetEditorText{Value: "x"}
				}
			}

			before := s
			s = Reduce(s, action)

			if s.ResultVisible && !before.ResultVisible {
				require.NoError(t, Validate(before.Answers), "result revealed with incomplete answers")
			}
			require.GreaterOrEqual(t, s.Current, 0)
			require.Less(t, s.Current, Count)
			if s.EditMode {
				require.True(t, s.ResultVisible, "edit mode without result view")
			}
		}
	}
}

func TestValidate(t *testing.T) {
	require.NoError(t, Validate([]string{"a", "b", "c", "d", "e"}))

	err := Validate([]string{"a", "", "c", "d", "e"})
	require.ErrorIs(t, err, ErrIncomplete)
	var missing *MissingAnswerError
	require.True(t, errors.As(err, &missing))
	require.Equal(t, 1, missing.Index)

	err = Validate([]string{"a", "b"})
	require.ErrorIs(t, err, ErrIncomplete)
}

func TestValidationMessage(t *testing.T) {
	msg := ValidationMessage(Validate([]string{"", "b", "c", "d", "e"}))
	require.True(t, strings.HasPrefix(msg, "Заполните все поля"))
	require.Contains(t, msg, Questions[0].Label)

	require.Equal(t, "Заполните все поля", ValidationMessage(Validate(nil)))
}

func TestState_Progress(t *testing.T) {
	s := NewState()
	require.Equal(t, 0.0, s.Progress())

	s.Current = Count - 1
	require.Equal(t, 1.0, s.Progress())

	s.Current = 2
	require.InDelta(t, 0.5, s.Progress(), 0.001)
}
