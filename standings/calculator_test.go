package standings_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/naeemnh/tournamint-api/models"
	"github.com/naeemnh/tournamint-api/standings"
)

func intPtr(v int) *int { return &v }

func completedMatch(p1, p2 int, p1Score, p2Score int, winnerID *int) *models.Match {
	return &models.Match{
		P1ParticipantID: intPtr(p1),
		P2ParticipantID: intPtr(p2),
		P1Score:         intPtr(p1Score),
		P2Score:         intPtr(p2Score),
		Status:          models.MatchCompleted,
		WinnerID:        winnerID,
	}
}

func TestComputeWinDrawLoss(t *testing.T) {
	matches := []*models.Match{
		completedMatch(1, 2, 3, 1, intPtr(1)), // win
		completedMatch(3, 1, 2, 2, nil),       // draw
		completedMatch(1, 4, 0, 2, intPtr(4)), // loss
	}

	s := standings.Compute(1, matches, standings.DefaultPointsConfig())
	require.Equal(t, 3, s.MatchesPlayed)
	require.Equal(t, 1, s.MatchesWon)
	require.Equal(t, 1, s.MatchesDrawn)
	require.Equal(t, 1, s.MatchesLost)
	require.Equal(t, 4, s.Points) // 3 + 1 + 0
	require.Equal(t, 5, s.PointsScored)
	require.Equal(t, 5, s.PointsConceded)
	require.Equal(t, 0, s.GoalDifference)
}

func TestComputeCustomPointsFormula(t *testing.T) {
	matches := []*models.Match{
		completedMatch(1, 2, 1, 0, intPtr(1)),
		completedMatch(1, 3, 1, 1, nil),
	}

	s := standings.Compute(1, matches, standings.PointsConfig{Win: 2, Draw: 1, Loss: 0})
	require.Equal(t, 3, s.Points)
}

func TestComputeIgnoresOtherAndUnfinishedMatches(t *testing.T) {
	scheduled := completedMatch(1, 2, 0, 0, nil)
	scheduled.Status = models.MatchScheduled
	canceled := completedMatch(1, 3, 2, 0, intPtr(1))
	canceled.Status = models.MatchCanceled

	matches := []*models.Match{
		scheduled,
		canceled,
		completedMatch(2, 3, 5, 0, intPtr(2)), // does not involve participant 1
	}

	s := standings.Compute(1, matches, standings.DefaultPointsConfig())
	require.Zero(t, s.MatchesPlayed)
	require.Zero(t, s.Points)
	require.Zero(t, s.PointsScored)
}

func TestComputeSetScoresDriveAllStatistics(t *testing.T) {
	m := &models.Match{
		P1ParticipantID: intPtr(1),
		P2ParticipantID: intPtr(2),
		Sets: []models.SetScore{
			{P1: 11, P2: 7},
			{P1: 9, P2: 11},
			{P1: 11, P2: 5},
		},
		Status:   models.MatchCompleted,
		WinnerID: intPtr(1),
	}

	winner := standings.Compute(1, []*models.Match{m}, standings.DefaultPointsConfig())
	require.Equal(t, 2, winner.SetsWon)
	require.Equal(t, 1, winner.SetsLost)
	require.Equal(t, 31, winner.GamesWon)
	require.Equal(t, 23, winner.GamesLost)
	require.Equal(t, 31, winner.PointsScored)
	require.Equal(t, 23, winner.PointsConceded)
	require.Equal(t, 8, winner.GoalDifference)

	// The same match seen from the other side mirrors everything.
	loser := standings.Compute(2, []*models.Match{m}, standings.DefaultPointsConfig())
	require.Equal(t, 1, loser.SetsWon)
	require.Equal(t, 2, loser.SetsLost)
	require.Equal(t, -8, loser.GoalDifference)
}

func TestComputeIsIdempotent(t *testing.T) {
	matches := []*models.Match{
		completedMatch(1, 2, 3, 1, intPtr(1)),
		completedMatch(1, 3, 1, 1, nil),
	}

	first := standings.Compute(1, matches, standings.DefaultPointsConfig())
	second := standings.Compute(1, matches, standings.DefaultPointsConfig())
	require.Equal(t, first, second)
}
