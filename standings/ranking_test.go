package standings_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/naeemnh/tournamint-api/models"
	"github.com/naeemnh/tournamint-api/standings"
)

func rankedNames(entries []models.TournamentStanding) []string {
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.ParticipantName
	}
	return names
}

func TestRankTieBreakChain(t *testing.T) {
	entries := []models.TournamentStanding{
		{ParticipantName: "Dana", Points: 6, MatchesWon: 2, GoalDifference: 1},
		{ParticipantName: "Alice", Points: 9, MatchesWon: 3},
		{ParticipantName: "Bob", Points: 6, MatchesWon: 2, GoalDifference: 4},
		{ParticipantName: "Carol", Points: 6, MatchesWon: 1, GoalDifference: 10},
	}

	standings.Rank(entries)

	// Points first; among the 6-point group matches won, then goal
	// difference.
	require.Equal(t, []string{"Alice", "Bob", "Dana", "Carol"}, rankedNames(entries))
	for i, e := range entries {
		require.NotNil(t, e.Position)
		require.Equal(t, i+1, *e.Position)
	}
}

func TestRankGameAndSetDifference(t *testing.T) {
	entries := []models.TournamentStanding{
		{ParticipantName: "A", Points: 3, MatchesWon: 1, SetsWon: 2, SetsLost: 1, GamesWon: 30, GamesLost: 30},
		{ParticipantName: "B", Points: 3, MatchesWon: 1, SetsWon: 3, SetsLost: 0, GamesWon: 33, GamesLost: 20},
		{ParticipantName: "C", Points: 3, MatchesWon: 1, SetsWon: 3, SetsLost: 0, GamesWon: 33, GamesLost: 25},
	}

	standings.Rank(entries)
	require.Equal(t, []string{"B", "C", "A"}, rankedNames(entries))
}

func TestRankFallsBackToName(t *testing.T) {
	entries := []models.TournamentStanding{
		{ParticipantName: "Zoe"},
		{ParticipantName: "Amy"},
		{ParticipantName: "Mia"},
	}

	standings.Rank(entries)
	require.Equal(t, []string{"Amy", "Mia", "Zoe"}, rankedNames(entries))
}

func TestRankIsIdempotent(t *testing.T) {
	entries := []models.TournamentStanding{
		{ParticipantName: "Dana", Points: 4},
		{ParticipantName: "Alice", Points: 4},
		{ParticipantName: "Bob", Points: 7},
	}

	standings.Rank(entries)
	first := rankedNames(entries)

	standings.Rank(entries)
	standings.Rank(entries)
	require.Equal(t, first, rankedNames(entries))
	for i, e := range entries {
		require.Equal(t, i+1, *e.Position)
	}
}
