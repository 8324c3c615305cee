package brackets_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/naeemnh/tournamint-api/brackets"
)

func TestNewRejectsUnsupportedKinds(t *testing.T) {
	for _, kind := range []brackets.Kind{brackets.KindSwiss, brackets.KindGroupStage, "Ladder", ""} {
		_, err := brackets.New(kind)
		require.ErrorIs(t, err, brackets.ErrUnsupportedKind)
	}
}

func TestApplySeedOrder(t *testing.T) {
	entrants := makeEntrants(4)

	t.Run("reorders by id", func(t *testing.T) {
		out := brackets.ApplySeedOrder(entrants, []int{3, 1, 4, 2})
		require.Equal(t, []int{3, 1, 4, 2}, entrantIDs(out))
	})

	t.Run("absent ids keep original order at the tail", func(t *testing.T) {
		out := brackets.ApplySeedOrder(entrants, []int{4})
		require.Equal(t, []int{4, 1, 2, 3}, entrantIDs(out))
	})

	t.Run("unknown ids are ignored", func(t *testing.T) {
		out := brackets.ApplySeedOrder(entrants, []int{99, 2, 98, 3})
		require.Equal(t, []int{2, 3, 1, 4}, entrantIDs(out))
	})

	t.Run("duplicate ids count once", func(t *testing.T) {
		out := brackets.ApplySeedOrder(entrants, []int{2, 2, 2, 1})
		require.Equal(t, []int{2, 1, 3, 4}, entrantIDs(out))
	})

	t.Run("empty order copies input", func(t *testing.T) {
		out := brackets.ApplySeedOrder(entrants, nil)
		require.Equal(t, []int{1, 2, 3, 4}, entrantIDs(out))
		out[0].ID = 99
		require.Equal(t, 1, entrants[0].ID, "input must not be mutated")
	})
}

func entrantIDs(entrants []brackets.Entrant) []int {
	ids := make([]int, len(entrants))
	for i, e := range entrants {
		ids[i] = e.ID
	}
	return ids
}
