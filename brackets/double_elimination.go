package brackets

import (
	"context"
	"fmt"
	"math"
)

type DoubleEliminationGenerator struct{}

func NewDoubleEliminationGenerator() Generator {
	return &DoubleEliminationGenerator{}
}

func (g *DoubleEliminationGenerator) Name() string {
	return string(KindDoubleElimination)
}

// Generate builds a winners bracket (the single elimination tree), a losers
// bracket fed by every loser drop from the winners side, and a grand final
// joining both champions with a conditional bracket-reset match.
//
// For N winners rounds the losers bracket has 2*(N-1) rounds: odd rounds
// pair losers-bracket survivors, even rounds inject the losers of the
// corresponding winners round. Injections of even winners rounds are
// reversed in order to delay rematches. Winners byes collapse the matching
// losers slots the same way byes collapse in the winners tree.
//
// The reported round count is N+2: the winners depth plus the grand final
// and its potential reset.
func (g *DoubleEliminationGenerator) Generate(_ context.Context, params GenerateParams) (*Graph, int, error) {
	entrants := params.Entrants
	n := len(entrants)
	if n < 2 {
		return nil, 0, ErrInsufficientParticipants
	}

	totalWinners := int(math.Ceil(math.Log2(float64(n))))
	size := 1 << uint(totalWinners)

	feeds := make([]feed, size)
	for i := range entrants {
		e := entrants[i]
		feeds[i] = feed{entrant: &e}
	}

	winners := make([]*Node, 0, size-1)
	wbLosers := make([][]feed, totalWinners+1)
	for r := 1; r <= totalWinners; r++ {
		before := len(winners)
		feeds = pairRound(feeds, r, "R", &winners)

		// Positionally aligned loser drops; collapsed byes leave gaps.
		losers := make([]feed, len(feeds))
		for _, node := range winners[before:] {
			losers[node.Position-1] = feed{source: node, loser: true}
		}
		wbLosers[r] = losers
	}
	wbChampion := feeds[0]

	var losersNodes []*Node
	var lb []feed
	if totalWinners >= 2 {
		lr := 1
		lb = pairRound(wbLosers[1], lr, "LR", &losersNodes)
		for wr := 2; wr <= totalWinners; wr++ {
			drop := wbLosers[wr]
			if wr%2 == 0 {
				reverseFeeds(drop)
			}
			lr++
			lb = injectRound(lb, drop, lr, &losersNodes)
			if wr < totalWinners {
				lr++
				lb = pairRound(lb, lr, "LR", &losersNodes)
			}
		}
	}

	grandFinal := &Node{ID: GrandFinalNodeID, Round: totalWinners + 1, Position: 1}
	wbChampion.attach(grandFinal, 1)
	if totalWinners >= 2 {
		lb[0].attach(grandFinal, 2)
	} else {
		// Two entrants: the loser of the only winners match goes straight
		// to the grand final.
		feed{source: winners[0], loser: true}.attach(grandFinal, 2)
	}

	// The reset is part of the graph but has no automatic feeders: it only
	// becomes playable when the losers champion takes the first grand final.
	reset := &Node{ID: GrandFinalResetNodeID, Round: totalWinners + 2, Position: 1}

	graph := &Graph{
		Kind: KindDoubleElimination,
		DoubleElimination: &DoubleEliminationGraph{
			Winners:         winners,
			Losers:          losersNodes,
			GrandFinal:      grandFinal,
			GrandFinalReset: reset,
		},
	}
	return graph, totalWinners + 2, nil
}

// injectRound pairs losers-bracket survivors (slot 1) with the loser drops
// of a winners round (slot 2), position for position. Single live feeds pass
// through like byes.
func injectRound(survivors, drops []feed, round int, nodes *[]*Node) []feed {
	next := make([]feed, len(survivors))
	for p := 1; p <= len(survivors); p++ {
		a := survivors[p-1]
		var b feed
		if p-1 < len(drops) {
			b = drops[p-1]
		}
		switch {
		case a.empty() && b.empty():
		case b.empty():
			next[p-1] = a
		case a.empty():
			next[p-1] = b
		default:
			node := &Node{
				ID:       fmt.Sprintf("LR%dP%d", round, p),
				Round:    round,
				Position: p,
			}
			a.attach(node, 1)
			b.attach(node, 2)
			*nodes = append(*nodes, node)
			next[p-1] = feed{source: node}
		}
	}
	return next
}

func reverseFeeds(feeds []feed) {
	for i, j := 0, len(feeds)-1; i < j; i, j = i+1, j-1 {
		feeds[i], feeds[j] = feeds[j], feeds[i]
	}
}
