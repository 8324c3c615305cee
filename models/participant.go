package models

import "time"

type ParticipantStatus string

const (
	ParticipantPending   ParticipantStatus = "pending"
	ParticipantConfirmed ParticipantStatus = "confirmed"
	ParticipantRejected  ParticipantStatus = "rejected"
)

type ParticipantType string

const (
	ParticipantSolo ParticipantType = "solo"
	ParticipantTeam ParticipantType = "team"
)

// Participant is a registration row, the unit the bracket and standings
// engines operate on. Seed, when present, controls initial pairings.
type Participant struct {
	ID           int               `json:"id" db:"id"`
	TournamentID int               `json:"tournament_id" db:"tournament_id"`
	CategoryID   *int              `json:"category_id,omitempty" db:"category_id"`
	UserID       *int              `json:"user_id,omitempty" db:"user_id"`
	DisplayName  string            `json:"display_name" db:"display_name"`
	Type         ParticipantType   `json:"type" db:"type"`
	Seed         *int              `json:"seed,omitempty" db:"seed"`
	Status       ParticipantStatus `json:"status" db:"status"`
	CreatedAt    time.Time         `json:"created_at" db:"created_at"`

	User *User `json:"user,omitempty" db:"-"`
}
