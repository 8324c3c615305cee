package brackets_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/naeemnh/tournamint-api/brackets"
)

func makeEntrants(n int) []brackets.Entrant {
	entrants := make([]brackets.Entrant, n)
	for i := range entrants {
		entrants[i] = brackets.Entrant{ID: i + 1, Name: fmt.Sprintf("Player %d", i+1)}
	}
	return entrants
}

func generate(t *testing.T, kind brackets.Kind, n int, settings brackets.Settings) (*brackets.Graph, int) {
	t.Helper()
	gen, err := brackets.New(kind)
	require.NoError(t, err)
	graph, rounds, err := gen.Generate(context.Background(), brackets.GenerateParams{
		Entrants: makeEntrants(n),
		Settings: settings,
	})
	require.NoError(t, err)
	return graph, rounds
}

func TestSingleEliminationRoundCounts(t *testing.T) {
	cases := []struct {
		n      int
		rounds int
	}{
		{2, 1}, {3, 2}, {4, 2}, {5, 3}, {6, 3}, {7, 3}, {8, 3},
		{9, 4}, {16, 4}, {17, 5}, {32, 5}, {100, 7}, {1024, 10},
	}
	for _, tc := range cases {
		t.Run(fmt.Sprintf("n=%d", tc.n), func(t *testing.T) {
			_, rounds := generate(t, brackets.KindSingleElimination, tc.n, brackets.DefaultSettings())
			require.Equal(t, tc.rounds, rounds)
		})
	}
}

func TestSingleEliminationRejectsTooFewEntrants(t *testing.T) {
	gen, err := brackets.New(brackets.KindSingleElimination)
	require.NoError(t, err)

	for _, n := range []int{0, 1} {
		_, _, err := gen.Generate(context.Background(), brackets.GenerateParams{
			Entrants: makeEntrants(n),
		})
		require.ErrorIs(t, err, brackets.ErrInsufficientParticipants)
	}
}

func TestSingleEliminationPowerOfTwoStructure(t *testing.T) {
	graph, rounds := generate(t, brackets.KindSingleElimination, 8, brackets.DefaultSettings())
	nodes := graph.Nodes()
	require.Len(t, nodes, 7)
	require.Equal(t, 3, rounds)

	// Without byes every forward link lands at round+1, position ceil(p/2).
	byID := make(map[string]*brackets.Node)
	for _, n := range nodes {
		byID[n.ID] = n
	}
	for _, n := range nodes {
		if n.NextID == nil {
			require.Equal(t, rounds, n.Round, "only the final has no successor")
			continue
		}
		next, ok := byID[*n.NextID]
		require.True(t, ok, "link %s from %s must resolve", *n.NextID, n.ID)
		require.Equal(t, n.Round+1, next.Round)
		require.Equal(t, (n.Position+1)/2, next.Position)
		expectedSlot := 2 - n.Position%2
		require.Equal(t, expectedSlot, n.NextSlot)
	}

	// Round 1 holds all eight entrants, in seed order.
	first := byID["R1P1"]
	require.NotNil(t, first.P1ID)
	require.NotNil(t, first.P2ID)
	require.Equal(t, 1, *first.P1ID)
	require.Equal(t, 2, *first.P2ID)
}

func TestSingleEliminationByesCollapse(t *testing.T) {
	// Six entrants: three round-1 matches, the third winner skips straight
	// to the final. No node may have both slots permanently empty.
	graph, rounds := generate(t, brackets.KindSingleElimination, 6, brackets.DefaultSettings())
	require.Equal(t, 3, rounds)

	nodes := graph.Nodes()
	require.Len(t, nodes, 5)

	r3 := graph.Find("R3P1")
	require.NotNil(t, r3)
	require.Nil(t, graph.Find("R2P2"), "bye pair must not produce a node")

	r1p3 := graph.Find("R1P3")
	require.NotNil(t, r1p3)
	require.NotNil(t, r1p3.NextID)
	require.Equal(t, "R3P1", *r1p3.NextID)
	require.Equal(t, 2, r1p3.NextSlot)
}

func TestSingleEliminationByeLandsPreFilled(t *testing.T) {
	// Five entrants: the fifth gets a double bye and appears directly in
	// the final's second slot.
	graph, rounds := generate(t, brackets.KindSingleElimination, 5, brackets.DefaultSettings())
	require.Equal(t, 3, rounds)
	require.Len(t, graph.Nodes(), 4)

	final := graph.FinalNode()
	require.NotNil(t, final)
	require.Equal(t, "R3P1", final.ID)
	require.NotNil(t, final.P2ID)
	require.Equal(t, 5, *final.P2ID)
}

func TestSingleEliminationEveryEntrantPlaced(t *testing.T) {
	for _, n := range []int{2, 3, 5, 6, 7, 11, 16, 33} {
		t.Run(fmt.Sprintf("n=%d", n), func(t *testing.T) {
			graph, _ := generate(t, brackets.KindSingleElimination, n, brackets.DefaultSettings())

			placed := make(map[int]int)
			for _, node := range graph.Nodes() {
				require.True(t, node.HasParticipant() || node.Round > 1,
					"round-1 node %s must have at least one participant", node.ID)
				if node.P1ID != nil {
					placed[*node.P1ID]++
				}
				if node.P2ID != nil {
					placed[*node.P2ID]++
				}
			}
			require.Len(t, placed, n, "every entrant appears exactly once")
			for id, count := range placed {
				require.Equal(t, 1, count, "entrant %d pre-filled more than once", id)
			}
		})
	}
}

func TestSingleEliminationDeterministic(t *testing.T) {
	a, _ := generate(t, brackets.KindSingleElimination, 13, brackets.DefaultSettings())
	b, _ := generate(t, brackets.KindSingleElimination, 13, brackets.DefaultSettings())

	nodesA, nodesB := a.Nodes(), b.Nodes()
	require.Equal(t, len(nodesA), len(nodesB))
	for i := range nodesA {
		require.Equal(t, *nodesA[i], *nodesB[i])
	}
}
