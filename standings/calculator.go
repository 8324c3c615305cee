// Package standings aggregates per-participant statistics from match
// results and total-orders them into a ranking table. Everything here is
// pure computation; persistence and scope locking live in the services.
package standings

import "github.com/naeemnh/tournamint-api/models"

// PointsConfig is the points formula applied per completed match.
type PointsConfig struct {
	Win  int
	Draw int
	Loss int
}

// DefaultPointsConfig is the standard 3/1/0 formula.
func DefaultPointsConfig() PointsConfig {
	return PointsConfig{Win: 3, Draw: 1, Loss: 0}
}

// Compute derives one participant's statistics from the matches that involve
// it. Only completed matches count. When a match carries per-set scores,
// points, games and sets all accumulate from them; otherwise the overall
// score feeds points and set/game statistics stay untouched. The result is
// fully recomputable at any time from the match history.
func Compute(participantID int, matches []*models.Match, cfg PointsConfig) models.TournamentStanding {
	s := models.TournamentStanding{ParticipantID: participantID}

	for _, m := range matches {
		if m.Status != models.MatchCompleted || !m.Involves(participantID) {
			continue
		}
		isP1 := m.P1ParticipantID != nil && *m.P1ParticipantID == participantID

		s.MatchesPlayed++
		switch {
		case m.WinnerID == nil:
			s.MatchesDrawn++
			s.Points += cfg.Draw
		case *m.WinnerID == participantID:
			s.MatchesWon++
			s.Points += cfg.Win
		default:
			s.MatchesLost++
			s.Points += cfg.Loss
		}

		if len(m.Sets) > 0 {
			for _, set := range m.Sets {
				own, opp := set.P1, set.P2
				if !isP1 {
					own, opp = opp, own
				}
				s.PointsScored += own
				s.PointsConceded += opp
				s.GamesWon += own
				s.GamesLost += opp
				if own > opp {
					s.SetsWon++
				} else if opp > own {
					s.SetsLost++
				}
			}
		} else if m.P1Score != nil && m.P2Score != nil {
			own, opp := *m.P1Score, *m.P2Score
			if !isP1 {
				own, opp = opp, own
			}
			s.PointsScored += own
			s.PointsConceded += opp
		}
	}

	s.GoalDifference = s.PointsScored - s.PointsConceded
	return s
}
