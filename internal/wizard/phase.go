package wizard

import (
	"errors"
	"fmt"
)

// ErrInvalidTransition is returned for a result-view transition that is not allowed.
var ErrInvalidTransition = errors.New("invalid phase transition")

// Phase is the state of the result view.
type Phase int

const (
	PhaseLoading Phase = iota
	PhaseError
	PhaseViewing
	PhaseEditing
)

func (p Phase) String() string {
	switch p {
	case PhaseLoading:
		return "loading"
	case PhaseError:
		return "error"
	case PhaseViewing:
		return "viewing"
	case PhaseEditing:
		return "editing"
	default:
		return "unknown"
	}
}

var transitions = map[Phase][]Phase{
	PhaseLoading: {PhaseViewing, PhaseError},
	PhaseError:   {PhaseLoading},
	PhaseViewing: {PhaseEditing},
	PhaseEditing: {PhaseViewing},
}

// CanTransition reports whether p may move to to.
func (p Phase) CanTransition(to Phase) bool {
	for _, allowed := range transitions[p] {
		if allowed == to {
			return true
		}
	}
	return false
}

// Transition returns to if the move is allowed, otherwise p and an error
// wrapping ErrInvalidTransition.
func (p Phase) Transition(to Phase) (Phase, error) {
	if !p.CanTransition(to) {
		return p, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, p, to)
	}
	return to, nil
}
