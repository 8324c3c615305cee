package standings

import (
	"sort"

	"github.com/naeemnh/tournamint-api/models"
)

// Rank total-orders the entries by the tie-break chain and assigns positions
// 1..n in place. The chain, applied until a comparison differs:
//
//  1. points, descending
//  2. matches won, descending
//  3. goal difference (points scored - conceded), descending
//  4. game difference, descending
//  5. set difference, descending
//  6. participant name, ascending
//
// The final name comparison guarantees a total order, which makes ranking
// idempotent: ranking an already-ranked list reproduces the same order.
func Rank(entries []models.TournamentStanding) {
	sort.SliceStable(entries, func(i, j int) bool {
		return less(&entries[i], &entries[j])
	})
	for i := range entries {
		pos := i + 1
		entries[i].Position = &pos
	}
}

func less(a, b *models.TournamentStanding) bool {
	if a.Points != b.Points {
		return a.Points > b.Points
	}
	if a.MatchesWon != b.MatchesWon {
		return a.MatchesWon > b.MatchesWon
	}
	if a.GoalDifference != b.GoalDifference {
		return a.GoalDifference > b.GoalDifference
	}
	if ad, bd := a.GamesWon-a.GamesLost, b.GamesWon-b.GamesLost; ad != bd {
		return ad > bd
	}
	if ad, bd := a.SetsWon-a.SetsLost, b.SetsWon-b.SetsLost; ad != bd {
		return ad > bd
	}
	return a.ParticipantName < b.ParticipantName
}
