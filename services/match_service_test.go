package services

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/naeemnh/tournamint-api/brackets"
	"github.com/naeemnh/tournamint-api/models"
)

func intPtr(v int) *int       { return &v }
func strPtr(s string) *string { return &s }

func pendingMatch(p1, p2 int) *models.Match {
	return &models.Match{
		ID:              1,
		TournamentID:    1,
		P1ParticipantID: intPtr(p1),
		P2ParticipantID: intPtr(p2),
		Status:          models.MatchScheduled,
	}
}

func TestValidateResultWinnerMustParticipate(t *testing.T) {
	match := pendingMatch(10, 20)

	err := validateResult(match, nil, SubmitResultInput{WinnerID: intPtr(30)})
	require.ErrorIs(t, err, ErrInvalidMatchResult)

	err = validateResult(match, nil, SubmitResultInput{WinnerID: intPtr(10)})
	require.NoError(t, err)
}

func TestValidateResultRequiresWinnerOrDraw(t *testing.T) {
	match := pendingMatch(10, 20)

	err := validateResult(match, nil, SubmitResultInput{})
	require.ErrorIs(t, err, ErrInvalidMatchResult)
}

func TestValidateResultDrawRules(t *testing.T) {
	match := pendingMatch(10, 20)

	elimination := &models.Bracket{Kind: brackets.KindSingleElimination}
	err := validateResult(match, elimination, SubmitResultInput{Draw: true})
	require.ErrorIs(t, err, ErrDrawNotAllowed)

	doubleElim := &models.Bracket{Kind: brackets.KindDoubleElimination}
	err = validateResult(match, doubleElim, SubmitResultInput{Draw: true})
	require.ErrorIs(t, err, ErrDrawNotAllowed)

	roundRobin := &models.Bracket{Kind: brackets.KindRoundRobin}
	err = validateResult(match, roundRobin, SubmitResultInput{Draw: true})
	require.NoError(t, err)

	// Outside any bracket a draw is legal too.
	err = validateResult(match, nil, SubmitResultInput{Draw: true})
	require.NoError(t, err)

	// A draw with a declared winner contradicts itself.
	err = validateResult(match, roundRobin, SubmitResultInput{Draw: true, WinnerID: intPtr(10)})
	require.ErrorIs(t, err, ErrInvalidMatchResult)
}

func TestValidateResultRejectsNegativeSetScores(t *testing.T) {
	match := pendingMatch(10, 20)

	err := validateResult(match, nil, SubmitResultInput{
		WinnerID: intPtr(10),
		Sets:     []models.SetScore{{P1: 11, P2: -3}},
	})
	require.ErrorIs(t, err, ErrInvalidMatchResult)
}

func TestOtherParticipant(t *testing.T) {
	node := &brackets.Node{P1ID: intPtr(10), P2ID: intPtr(20)}

	require.Equal(t, 20, *otherParticipant(node, 10))
	require.Equal(t, 10, *otherParticipant(node, 20))

	half := &brackets.Node{P1ID: intPtr(10)}
	require.Nil(t, otherParticipant(half, 10))
}

func TestParticipantName(t *testing.T) {
	node := &brackets.Node{
		P1ID: intPtr(10), P1Name: strPtr("Alice"),
		P2ID: intPtr(20), P2Name: strPtr("Bob"),
	}

	require.Equal(t, "Alice", participantName(node, 10))
	require.Equal(t, "Bob", participantName(node, 20))
	require.Equal(t, "", participantName(node, 30))
}
