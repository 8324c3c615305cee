package models

import (
	"time"

	"github.com/naeemnh/tournamint-api/brackets"
)

// BracketStatus is the bracket lifecycle state machine:
// not_generated -> generated -> in_progress -> completed.
type BracketStatus string

const (
	BracketNotGenerated BracketStatus = "not_generated"
	BracketGenerated    BracketStatus = "generated"
	BracketInProgress   BracketStatus = "in_progress"
	BracketCompleted    BracketStatus = "completed"
)

// Bracket owns the generated graph for one (tournament, category) scope.
// At most one bracket exists per scope; a NULL category is its own slot.
type Bracket struct {
	ID           int               `json:"id" db:"id"`
	TournamentID int               `json:"tournament_id" db:"tournament_id"`
	CategoryID   *int              `json:"category_id,omitempty" db:"category_id"`
	Kind         brackets.Kind     `json:"kind" db:"kind"`
	Status       BracketStatus     `json:"status" db:"status"`
	TotalRounds  int               `json:"total_rounds" db:"total_rounds"`
	CurrentRound int               `json:"current_round" db:"current_round"`
	Graph        *brackets.Graph   `json:"graph" db:"graph"`
	Settings     brackets.Settings `json:"settings" db:"settings"`
	CreatedAt    time.Time         `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at" db:"updated_at"`
}

// BracketResponse is the payload returned by bracket endpoints.
type BracketResponse struct {
	Bracket      *Bracket      `json:"bracket"`
	Matches      []Match       `json:"matches"`
	Participants []Participant `json:"participants"`
}
