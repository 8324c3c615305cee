package models

import "time"

// TournamentStatus mirrors the tournament_status ENUM in the database.
type TournamentStatus string

const (
	StatusSoon         TournamentStatus = "soon"
	StatusRegistration TournamentStatus = "registration"
	StatusActive       TournamentStatus = "active"
	StatusCompleted    TournamentStatus = "completed"
	StatusCanceled     TournamentStatus = "canceled"
)

type Tournament struct {
	ID              int              `json:"id" db:"id"`
	Name            string           `json:"name" db:"name"`
	Description     *string          `json:"description,omitempty" db:"description"`
	OrganizerID     int              `json:"organizer_id" db:"organizer_id"`
	RegDate         time.Time        `json:"reg_date" db:"reg_date"`
	StartDate       time.Time        `json:"start_date" db:"start_date"`
	EndDate         time.Time        `json:"end_date" db:"end_date"`
	Location        *string          `json:"location,omitempty" db:"location"`
	Status          TournamentStatus `json:"status" db:"status"`
	MaxParticipants int              `json:"max_participants" db:"max_participants"`
	CreatedAt       time.Time        `json:"created_at" db:"created_at"`
	LogoKey         *string          `json:"-" db:"logo_key"`
	LogoURL         *string          `json:"logo_url,omitempty" db:"-"`

	// Optional linked entities, populated by services, never scanned directly.
	Organizer    *User         `json:"organizer,omitempty" db:"-"`
	Categories   []Category    `json:"categories,omitempty" db:"-"`
	Participants []Participant `json:"participants,omitempty" db:"-"`
}

// Category is a named division inside a tournament (for example "Men's A").
// A bracket/standings scope is (tournament_id, category_id) where a NULL
// category is its own slot.
type Category struct {
	ID           int       `json:"id" db:"id"`
	TournamentID int       `json:"tournament_id" db:"tournament_id"`
	Name         string    `json:"name" db:"name"`
	Description  *string   `json:"description,omitempty" db:"description"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}
