package models

import "time"

type MatchStatus string

const (
	MatchScheduled  MatchStatus = "scheduled"
	MatchInProgress MatchStatus = "in_progress"
	MatchCompleted  MatchStatus = "completed"
	MatchCanceled   MatchStatus = "canceled"
)

// SetScore is one sub-result (set/period) of a match.
type SetScore struct {
	P1 int `json:"p1"`
	P2 int `json:"p2"`
}

// Match is a schedulable match record. Matches created from a bracket carry
// the originating node id so a completed match can be mapped back to its
// bracket node.
type Match struct {
	ID              int         `json:"id" db:"id"`
	TournamentID    int         `json:"tournament_id" db:"tournament_id"`
	CategoryID      *int        `json:"category_id,omitempty" db:"category_id"`
	P1ParticipantID *int        `json:"p1_participant_id,omitempty" db:"p1_participant_id"`
	P2ParticipantID *int        `json:"p2_participant_id,omitempty" db:"p2_participant_id"`
	P1Score         *int        `json:"p1_score,omitempty" db:"p1_score"`
	P2Score         *int        `json:"p2_score,omitempty" db:"p2_score"`
	Sets            []SetScore  `json:"sets,omitempty" db:"sets"`
	MatchTime       time.Time   `json:"match_time" db:"match_time"`
	Status          MatchStatus `json:"status" db:"status"`
	WinnerID        *int        `json:"winner_id,omitempty" db:"winner_participant_id"`
	Round           *int        `json:"round,omitempty" db:"round"`
	BracketNodeID   *string     `json:"bracket_node_id,omitempty" db:"bracket_node_id"`
	CreatedAt       time.Time   `json:"created_at" db:"created_at"`
}

// IsDraw reports whether the match finished without a winner.
func (m *Match) IsDraw() bool {
	return m.Status == MatchCompleted && m.WinnerID == nil
}

// Involves reports whether the given participant plays in this match.
func (m *Match) Involves(participantID int) bool {
	if m.P1ParticipantID != nil && *m.P1ParticipantID == participantID {
		return true
	}
	if m.P2ParticipantID != nil && *m.P2ParticipantID == participantID {
		return true
	}
	return false
}
