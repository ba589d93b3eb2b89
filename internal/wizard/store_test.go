package wizard

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStore_DispatchNotifiesOncePerAction(t *testing.T) {
	store := NewStore()

	var seen []State
	unsubscribe := store.Subscribe(func(s State) {
		seen = append(seen, s)
	})

	store.Dispatch(SetAnswer{Index: 0, Value: "Fintech startup"})
	store.Dispatch(Advance{})

	require.Len(t, seen, 2)
	require.Equal(t, "Fintech startup", seen[0].Answers[0])
	require.Equal(t, 1, seen[1].Current)
	require.Equal(t, seen[1], store.State())

	unsubscribe()
	store.Dispatch(Retreat{})
	require.Len(t, seen, 2, "unsubscribed listener must not be called")
	require.Equal(t, 0, store.State().Current)
}

func TestStore_DispatchReturnsNewState(t *testing.T) {
	store := NewStore()
	for i := 0; i < Count; i++ {
		store.Dispatch(SetAnswer{Index: i, Value: "ok"})
	}

	got := store.Dispatch(RevealResult{})
	require.True(t, got.ResultVisible)
	require.True(t, store.State().ResultVisible)
}
