package wizard

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPhase_Transition(t *testing.T) {
	all := []Phase{PhaseLoading, PhaseError, PhaseViewing, PhaseEditing}
	allowed := map[[2]Phase]bool{
		{PhaseLoading, PhaseViewing}: true,
		{PhaseLoading, PhaseError}:   true,
		{PhaseError, PhaseLoading}:   true,
		{PhaseViewing, PhaseEditing}: true,
		{PhaseEditing, PhaseViewing}: true,
	}

	for _, from := range all {
		for _, to := range all {
			t.Run(from.String()+"->"+to.String(), func(t *testing.T) {
				got, err := from.Transition(to)
				if allowed[[2]Phase{from, to}] {
					require.NoError(t, err)
					require.Equal(t, to, got)
					return
				}
				require.ErrorIs(t, err, ErrInvalidTransition)
				require.Equal(t, from, got, "phase must be unchanged on rejected transition")
			})
		}
	}
}

func TestPhase_String(t *testing.T) {
	require.Equal(t, "unknown", Phase(99).String())
}
