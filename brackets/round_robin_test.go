package brackets_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/naeemnh/tournamint-api/brackets"
)

func TestRoundRobinPairCount(t *testing.T) {
	cases := []struct {
		n      int
		nodes  int
		rounds int
	}{
		{2, 1, 1}, {3, 3, 3}, {4, 6, 3}, {5, 10, 5}, {8, 28, 7}, {10, 45, 9},
	}
	for _, tc := range cases {
		t.Run(fmt.Sprintf("n=%d", tc.n), func(t *testing.T) {
			graph, rounds := generate(t, brackets.KindRoundRobin, tc.n, brackets.DefaultSettings())
			require.Len(t, graph.Nodes(), tc.nodes)
			require.Equal(t, tc.rounds, rounds)
		})
	}
}

func TestRoundRobinEveryPairOnce(t *testing.T) {
	graph, _ := generate(t, brackets.KindRoundRobin, 5, brackets.DefaultSettings())

	seen := make(map[[2]int]bool)
	for _, node := range graph.Nodes() {
		require.NotNil(t, node.P1ID)
		require.NotNil(t, node.P2ID)
		require.NotEqual(t, *node.P1ID, *node.P2ID, "no participant plays itself")
		require.Nil(t, node.NextID, "round robin has no advancement links")

		pair := [2]int{*node.P1ID, *node.P2ID}
		if pair[0] > pair[1] {
			pair[0], pair[1] = pair[1], pair[0]
		}
		require.False(t, seen[pair], "pair %v scheduled twice", pair)
		seen[pair] = true
	}
	require.Len(t, seen, 10)
}

func TestRoundRobinDoubleLeg(t *testing.T) {
	graph, _ := generate(t, brackets.KindRoundRobin, 4, brackets.Settings{
		PointsWin: 3, PointsDraw: 1, PointsLoss: 0, DoubleRoundRobin: true,
	})
	nodes := graph.Nodes()
	require.Len(t, nodes, 12)

	// The second leg mirrors the first pair with swapped slots.
	first, mirror := nodes[0], nodes[6]
	require.Equal(t, *first.P1ID, *mirror.P2ID)
	require.Equal(t, *first.P2ID, *mirror.P1ID)
}
