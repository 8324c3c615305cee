package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/naeemnh/tournamint-api/brackets"
	"github.com/naeemnh/tournamint-api/models"
)

func lostMatch(nodeID string, loserID, winnerID int) *models.Match {
	return &models.Match{
		P1ParticipantID: intPtr(loserID),
		P2ParticipantID: intPtr(winnerID),
		Status:          models.MatchCompleted,
		WinnerID:        intPtr(winnerID),
		BracketNodeID:   strPtr(nodeID),
	}
}

func singleElimBracket(t *testing.T, n int) *models.Bracket {
	t.Helper()
	gen, err := brackets.New(brackets.KindSingleElimination)
	require.NoError(t, err)

	entrants := make([]brackets.Entrant, n)
	for i := range entrants {
		entrants[i] = brackets.Entrant{ID: i + 1, Name: "P"}
	}
	graph, rounds, err := gen.Generate(context.Background(), brackets.GenerateParams{Entrants: entrants})
	require.NoError(t, err)

	return &models.Bracket{Kind: brackets.KindSingleElimination, Graph: graph, TotalRounds: rounds}
}

func TestEliminationForSingleElimination(t *testing.T) {
	bracket := singleElimBracket(t, 4)
	matches := []*models.Match{lostMatch("R1P1", 1, 2)}

	eliminated, round := eliminationFor(bracket, matches, 1)
	require.True(t, eliminated)
	require.NotNil(t, round)
	require.Equal(t, 1, *round)

	// The winner is still alive.
	eliminated, round = eliminationFor(bracket, matches, 2)
	require.False(t, eliminated)
	require.Nil(t, round)
}

func TestEliminationForRoundRobinNeverEliminates(t *testing.T) {
	bracket := &models.Bracket{
		Kind: brackets.KindRoundRobin,
		Graph: &brackets.Graph{
			Kind:       brackets.KindRoundRobin,
			RoundRobin: []*brackets.Node{{ID: "RR1", Round: 1, Position: 1}},
		},
	}
	matches := []*models.Match{lostMatch("RR1", 1, 2)}

	eliminated, round := eliminationFor(bracket, matches, 1)
	require.False(t, eliminated)
	require.Nil(t, round)
}

func TestEliminationForDoubleElimination(t *testing.T) {
	gen, err := brackets.New(brackets.KindDoubleElimination)
	require.NoError(t, err)
	entrants := []brackets.Entrant{
		{ID: 1, Name: "A"}, {ID: 2, Name: "B"}, {ID: 3, Name: "C"}, {ID: 4, Name: "D"},
	}
	graph, _, err := gen.Generate(context.Background(), brackets.GenerateParams{Entrants: entrants})
	require.NoError(t, err)
	bracket := &models.Bracket{Kind: brackets.KindDoubleElimination, Graph: graph}

	// A winners-bracket loss alone does not eliminate.
	wbLoss := []*models.Match{lostMatch("R1P1", 1, 2)}
	eliminated, _ := eliminationFor(bracket, wbLoss, 1)
	require.False(t, eliminated)

	// A losers-bracket loss does.
	lbLoss := append(wbLoss, lostMatch("LR1P1", 1, 3))
	eliminated, round := eliminationFor(bracket, lbLoss, 1)
	require.True(t, eliminated)
	require.Equal(t, 1, *round)
}

func TestEliminationForGrandFinal(t *testing.T) {
	gen, err := brackets.New(brackets.KindDoubleElimination)
	require.NoError(t, err)
	entrants := []brackets.Entrant{{ID: 1, Name: "A"}, {ID: 2, Name: "B"}}
	graph, _, err := gen.Generate(context.Background(), brackets.GenerateParams{Entrants: entrants})
	require.NoError(t, err)
	bracket := &models.Bracket{Kind: brackets.KindDoubleElimination, Graph: graph}

	gf := graph.DoubleElimination.GrandFinal
	gf.SetSlot(1, 1, "A") // winners-side champion
	gf.SetSlot(2, 2, "B") // losers-side finalist

	// The losers-side finalist is out on a grand final loss.
	matches := []*models.Match{lostMatch(brackets.GrandFinalNodeID, 2, 1)}
	eliminated, round := eliminationFor(bracket, matches, 2)
	require.True(t, eliminated)
	require.Equal(t, gf.Round, *round)

	// The winners-side champion losing the first grand final is not
	// eliminated yet: the bracket resets.
	matches = []*models.Match{lostMatch(brackets.GrandFinalNodeID, 1, 2)}
	eliminated, _ = eliminationFor(bracket, matches, 1)
	require.False(t, eliminated)

	// Losing the reset eliminates whoever loses it.
	reset := graph.DoubleElimination.GrandFinalReset
	reset.SetSlot(1, 2, "B")
	reset.SetSlot(2, 1, "A")
	matches = append(matches, lostMatch(brackets.GrandFinalResetNodeID, 1, 2))
	eliminated, round = eliminationFor(bracket, matches, 1)
	require.True(t, eliminated)
	require.Equal(t, reset.Round, *round)
}

func TestAffectedParticipants(t *testing.T) {
	svc := &standingsService{}
	participants := []*models.Participant{{ID: 1}, {ID: 2}, {ID: 3}}
	matches := []*models.Match{
		{ID: 100, P1ParticipantID: intPtr(1), P2ParticipantID: intPtr(2)},
		{ID: 101, P1ParticipantID: intPtr(2), P2ParticipantID: intPtr(3)},
	}

	t.Run("full recompute touches everyone", func(t *testing.T) {
		affected := svc.affectedParticipants(UpdateStandingsInput{RecalculateAll: true}, participants, matches)
		require.Len(t, affected, 3)
	})

	t.Run("no match ids means everyone", func(t *testing.T) {
		affected := svc.affectedParticipants(UpdateStandingsInput{}, participants, matches)
		require.Len(t, affected, 3)
	})

	t.Run("incremental touches only the changed match's participants", func(t *testing.T) {
		affected := svc.affectedParticipants(UpdateStandingsInput{MatchIDs: []int{100}}, participants, matches)
		require.Equal(t, map[int]bool{1: true, 2: true}, affected)
	})
}
