package brackets

import (
	"context"
	"fmt"
)

type RoundRobinGenerator struct{}

func NewRoundRobinGenerator() Generator {
	return &RoundRobinGenerator{}
}

func (g *RoundRobinGenerator) Name() string {
	return string(KindRoundRobin)
}

// Generate produces one node per unordered pair of entrants, all nominally
// in round 1: a round robin has no elimination rounds. The reported round
// count is the classic schedule length (n-1 for even n, n for odd), a
// scheduling hint only. With DoubleRoundRobin set, every pair gets a second
// leg with the slots swapped.
func (g *RoundRobinGenerator) Generate(_ context.Context, params GenerateParams) (*Graph, int, error) {
	entrants := params.Entrants
	n := len(entrants)
	if n < 2 {
		return nil, 0, ErrInsufficientParticipants
	}

	pairs := n * (n - 1) / 2
	legs := 1
	if params.Settings.DoubleRoundRobin {
		legs = 2
	}

	nodes := make([]*Node, 0, pairs*legs)
	pos := 0
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			pos++
			node := &Node{
				ID:       fmt.Sprintf("RR%d", pos),
				Round:    1,
				Position: pos,
			}
			node.SetSlot(1, entrants[i].ID, entrants[i].Name)
			node.SetSlot(2, entrants[j].ID, entrants[j].Name)
			nodes = append(nodes, node)
		}
	}

	if legs == 2 {
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				pos++
				node := &Node{
					ID:       fmt.Sprintf("RR%d", pos),
					Round:    1,
					Position: pos,
				}
				node.SetSlot(1, entrants[j].ID, entrants[j].Name)
				node.SetSlot(2, entrants[i].ID, entrants[i].Name)
				nodes = append(nodes, node)
			}
		}
	}

	totalRounds := n - 1
	if n%2 != 0 {
		totalRounds = n
	}

	graph := &Graph{Kind: KindRoundRobin, RoundRobin: nodes}
	return graph, totalRounds, nil
}
