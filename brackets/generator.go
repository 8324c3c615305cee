package brackets

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrInsufficientParticipants is returned when fewer than two
	// participants are supplied to a generator.
	ErrInsufficientParticipants = errors.New("at least 2 participants are required to generate a bracket")

	// ErrUnsupportedKind is returned for declared but not generable kinds
	// (Swiss, GroupStage) and unknown values.
	ErrUnsupportedKind = errors.New("unsupported bracket kind")
)

type GenerateParams struct {
	// Entrants in final seeded order; position i plays position i+1 for
	// even i in round 1.
	Entrants []Entrant
	Settings Settings
}

type Generator interface {
	// Generate builds the bracket graph and reports the total round count.
	// Identical inputs always yield an identical graph.
	Generate(ctx context.Context, params GenerateParams) (*Graph, int, error)

	Name() string
}

// New returns the generator for the given kind.
func New(kind Kind) (Generator, error) {
	switch kind {
	case KindSingleElimination:
		return NewSingleEliminationGenerator(), nil
	case KindDoubleElimination:
		return NewDoubleEliminationGenerator(), nil
	case KindRoundRobin:
		return NewRoundRobinGenerator(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedKind, kind)
	}
}

// ApplySeedOrder reorders entrants to the given sequence of participant ids.
// Entrants absent from seedOrder are appended afterward in original order;
// ids that match no entrant are ignored.
func ApplySeedOrder(entrants []Entrant, seedOrder []int) []Entrant {
	if len(seedOrder) == 0 {
		out := make([]Entrant, len(entrants))
		copy(out, entrants)
		return out
	}

	byID := make(map[int]Entrant, len(entrants))
	for _, e := range entrants {
		byID[e.ID] = e
	}

	out := make([]Entrant, 0, len(entrants))
	seeded := make(map[int]bool, len(seedOrder))
	for _, id := range seedOrder {
		if e, ok := byID[id]; ok && !seeded[id] {
			out = append(out, e)
			seeded[id] = true
		}
	}
	for _, e := range entrants {
		if !seeded[e.ID] {
			out = append(out, e)
		}
	}
	return out
}
