package brackets

import (
	"context"
	"fmt"
	"math"
)

// feed describes what flows into one slot of a future node: a known entrant,
// the winner of an earlier node, the loser of an earlier node (double
// elimination drops), or nothing at all (a bye).
type feed struct {
	entrant *Entrant
	source  *Node
	loser   bool
}

func (f feed) empty() bool { return f.entrant == nil && f.source == nil }

// attach wires the feed into slot 1 or 2 of node n, either by filling the
// participant directly or by back-linking the source node.
func (f feed) attach(n *Node, slot int) {
	switch {
	case f.entrant != nil:
		n.SetSlot(slot, f.entrant.ID, f.entrant.Name)
	case f.source != nil && f.loser:
		id := n.ID
		f.source.LoserNextID = &id
		f.source.LoserNextSlot = slot
	case f.source != nil:
		id := n.ID
		f.source.NextID = &id
		f.source.NextSlot = slot
	}
}

// pairRound pairs consecutive feeds into nodes of the given round. A pair
// with a single live feed is a bye: no node is created and the feed passes
// through to the next round, so the participant lands pre-filled one round
// up. The returned slice keeps positional alignment, which preserves the
// round/position forward-link invariant.
func pairRound(feeds []feed, round int, prefix string, nodes *[]*Node) []feed {
	next := make([]feed, len(feeds)/2)
	for p := 1; p <= len(feeds)/2; p++ {
		a, b := feeds[2*p-2], feeds[2*p-1]
		switch {
		case a.empty() && b.empty():
			// nothing reaches this slot
		case b.empty():
			next[p-1] = a
		case a.empty():
			next[p-1] = b
		default:
			n := &Node{
				ID:       fmt.Sprintf("%s%dP%d", prefix, round, p),
				Round:    round,
				Position: p,
			}
			a.attach(n, 1)
			b.attach(n, 2)
			*nodes = append(*nodes, n)
			next[p-1] = feed{source: n}
		}
	}
	return next
}

type SingleEliminationGenerator struct{}

func NewSingleEliminationGenerator() Generator {
	return &SingleEliminationGenerator{}
}

func (g *SingleEliminationGenerator) Name() string {
	return string(KindSingleElimination)
}

// Generate builds the elimination tree round by round. The entrant list is
// padded with byes to the next power of two, so counts that are not a power
// of two auto-advance the unpaired participants instead of dropping them.
func (g *SingleEliminationGenerator) Generate(_ context.Context, params GenerateParams) (*Graph, int, error) {
	entrants := params.Entrants
	n := len(entrants)
	if n < 2 {
		return nil, 0, ErrInsufficientParticipants
	}

	totalRounds := int(math.Ceil(math.Log2(float64(n))))
	size := 1 << uint(totalRounds)

	feeds := make([]feed, size)
	for i := range entrants {
		e := entrants[i]
		feeds[i] = feed{entrant: &e}
	}

	nodes := make([]*Node, 0, size-1)
	for r := 1; r <= totalRounds; r++ {
		feeds = pairRound(feeds, r, "R", &nodes)
	}

	graph := &Graph{Kind: KindSingleElimination, SingleElimination: nodes}
	return graph, totalRounds, nil
}
