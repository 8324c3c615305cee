package models

import "time"

// TournamentStanding is one standings row in a (tournament, category) scope.
// Everything here is recomputable from the match history; positions are
// always reassigned for the whole scope at once.
type TournamentStanding struct {
	ID               int             `json:"id" db:"id"`
	TournamentID     int             `json:"tournament_id" db:"tournament_id"`
	CategoryID       *int            `json:"category_id,omitempty" db:"category_id"`
	ParticipantID    int             `json:"participant_id" db:"participant_id"`
	ParticipantName  string          `json:"participant_name" db:"participant_name"`
	ParticipantType  ParticipantType `json:"participant_type" db:"participant_type"`
	Position         *int            `json:"position,omitempty" db:"position"`
	Points           int             `json:"points" db:"points"`
	MatchesPlayed    int             `json:"matches_played" db:"matches_played"`
	MatchesWon       int             `json:"matches_won" db:"matches_won"`
	MatchesLost      int             `json:"matches_lost" db:"matches_lost"`
	MatchesDrawn     int             `json:"matches_drawn" db:"matches_drawn"`
	SetsWon          int             `json:"sets_won" db:"sets_won"`
	SetsLost         int             `json:"sets_lost" db:"sets_lost"`
	GamesWon         int             `json:"games_won" db:"games_won"`
	GamesLost        int             `json:"games_lost" db:"games_lost"`
	PointsScored     int             `json:"points_scored" db:"points_scored"`
	PointsConceded   int             `json:"points_conceded" db:"points_conceded"`
	GoalDifference   int             `json:"goal_difference" db:"goal_difference"`
	IsEliminated     bool            `json:"is_eliminated" db:"is_eliminated"`
	EliminationRound *int            `json:"elimination_round,omitempty" db:"elimination_round"`
	UpdatedAt        time.Time       `json:"updated_at" db:"updated_at"`
}

// StandingsResponse is the payload returned by standings endpoints.
type StandingsResponse struct {
	Entries     []TournamentStanding `json:"entries"`
	LastUpdated time.Time            `json:"last_updated"`
}
