package brackets_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/naeemnh/tournamint-api/brackets"
)

func TestDoubleEliminationStructure(t *testing.T) {
	// For n entrants at a power of two: n-1 winners matches, n-2 losers
	// matches, one grand final and one conditional reset.
	cases := []struct {
		n       int
		winners int
		losers  int
		rounds  int
	}{
		{4, 3, 2, 4},
		{8, 7, 6, 5},
		{16, 15, 14, 6},
	}
	for _, tc := range cases {
		t.Run(fmt.Sprintf("n=%d", tc.n), func(t *testing.T) {
			graph, rounds := generate(t, brackets.KindDoubleElimination, tc.n, brackets.DefaultSettings())
			de := graph.DoubleElimination
			require.NotNil(t, de)
			require.Len(t, de.Winners, tc.winners)
			require.Len(t, de.Losers, tc.losers)
			require.NotNil(t, de.GrandFinal)
			require.NotNil(t, de.GrandFinalReset)
			require.Equal(t, tc.rounds, rounds)
		})
	}
}

func TestDoubleEliminationEveryLoserDrops(t *testing.T) {
	// Every winners-bracket node must route its loser somewhere: into the
	// losers bracket, or into the grand final for the winners final of a
	// two-entrant bracket.
	for _, n := range []int{2, 4, 8, 16} {
		t.Run(fmt.Sprintf("n=%d", n), func(t *testing.T) {
			graph, _ := generate(t, brackets.KindDoubleElimination, n, brackets.DefaultSettings())
			de := graph.DoubleElimination

			for _, node := range de.Winners {
				require.NotNil(t, node.LoserNextID, "winners node %s drops no loser", node.ID)
				target := graph.Find(*node.LoserNextID)
				require.NotNil(t, target, "loser link %s from %s must resolve", *node.LoserNextID, node.ID)
				if target.ID != brackets.GrandFinalNodeID {
					require.True(t, graph.IsLosersNode(target.ID))
				}
			}
		})
	}
}

func TestDoubleEliminationGrandFinalFeeds(t *testing.T) {
	graph, _ := generate(t, brackets.KindDoubleElimination, 8, brackets.DefaultSettings())
	de := graph.DoubleElimination

	// The winners final feeds slot 1 of the grand final, the losers final
	// slot 2. The reset has no automatic feeders at all.
	winnersFinal := graph.Find("R3P1")
	require.NotNil(t, winnersFinal)
	require.NotNil(t, winnersFinal.NextID)
	require.Equal(t, brackets.GrandFinalNodeID, *winnersFinal.NextID)
	require.Equal(t, 1, winnersFinal.NextSlot)

	losersFinal := de.Losers[len(de.Losers)-1]
	require.NotNil(t, losersFinal.NextID)
	require.Equal(t, brackets.GrandFinalNodeID, *losersFinal.NextID)
	require.Equal(t, 2, losersFinal.NextSlot)

	reset := de.GrandFinalReset
	require.Equal(t, brackets.GrandFinalResetNodeID, reset.ID)
	require.Nil(t, reset.P1ID)
	require.Nil(t, reset.P2ID)
	for _, node := range graph.Nodes() {
		if node.NextID != nil {
			require.NotEqual(t, reset.ID, *node.NextID)
		}
		if node.LoserNextID != nil {
			require.NotEqual(t, reset.ID, *node.LoserNextID)
		}
	}
}

func TestDoubleEliminationTwoEntrants(t *testing.T) {
	graph, rounds := generate(t, brackets.KindDoubleElimination, 2, brackets.DefaultSettings())
	de := graph.DoubleElimination
	require.Equal(t, 3, rounds)
	require.Len(t, de.Winners, 1)
	require.Empty(t, de.Losers)

	// The only match's loser goes straight to the grand final.
	only := de.Winners[0]
	require.NotNil(t, only.LoserNextID)
	require.Equal(t, brackets.GrandFinalNodeID, *only.LoserNextID)
	require.Equal(t, 2, only.LoserNextSlot)
}

func TestDoubleEliminationWithByes(t *testing.T) {
	// Six entrants: byes collapse in the winners tree and the matching
	// losers slots. Every entrant still appears exactly once and every
	// winners loser still has a destination.
	graph, _ := generate(t, brackets.KindDoubleElimination, 6, brackets.DefaultSettings())
	de := graph.DoubleElimination

	placed := make(map[int]int)
	for _, node := range graph.Nodes() {
		if node.P1ID != nil {
			placed[*node.P1ID]++
		}
		if node.P2ID != nil {
			placed[*node.P2ID]++
		}
	}
	require.Len(t, placed, 6)
	for id, count := range placed {
		require.Equal(t, 1, count, "entrant %d pre-filled more than once", id)
	}

	for _, node := range de.Winners {
		require.NotNil(t, node.LoserNextID, "winners node %s drops no loser", node.ID)
		require.NotNil(t, graph.Find(*node.LoserNextID))
	}
}
