package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/naeemnh/tournamint-api/models"
)

var ErrStandingNotFound = errors.New("standing not found")

// StandingRepository persists computed standings rows. ReplaceScope swaps a
// whole scope atomically inside the caller's transaction, so a failed
// recompute leaves the previous snapshot intact and positions never
// interleave between two recomputes.
type StandingRepository interface {
	ListByScope(ctx context.Context, exec SQLExecutor, tournamentID int, categoryID *int, orderByPosition bool) ([]*models.TournamentStanding, error)
	ReplaceScope(ctx context.Context, exec SQLExecutor, tournamentID int, categoryID *int, entries []models.TournamentStanding) error
}

type postgresStandingRepository struct {
	db *sql.DB
}

func NewPostgresStandingRepository(db *sql.DB) StandingRepository {
	return &postgresStandingRepository{db: db}
}

func (r *postgresStandingRepository) executor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

const standingColumns = `id, tournament_id, category_id, participant_id, participant_name,
	participant_type, position, points, matches_played, matches_won, matches_lost, matches_drawn,
	sets_won, sets_lost, games_won, games_lost, points_scored, points_conceded, goal_difference,
	is_eliminated, elimination_round, updated_at`

func scanStanding(rowScanner interface{ Scan(...interface{}) error }) (*models.TournamentStanding, error) {
	s := &models.TournamentStanding{}
	err := rowScanner.Scan(
		&s.ID, &s.TournamentID, &s.CategoryID, &s.ParticipantID, &s.ParticipantName,
		&s.ParticipantType, &s.Position, &s.Points, &s.MatchesPlayed, &s.MatchesWon,
		&s.MatchesLost, &s.MatchesDrawn, &s.SetsWon, &s.SetsLost, &s.GamesWon, &s.GamesLost,
		&s.PointsScored, &s.PointsConceded, &s.GoalDifference, &s.IsEliminated,
		&s.EliminationRound, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrStandingNotFound
		}
		return nil, fmt.Errorf("failed to scan standing: %w", err)
	}
	return s, nil
}

func (r *postgresStandingRepository) ListByScope(ctx context.Context, exec SQLExecutor, tournamentID int, categoryID *int, orderByPosition bool) ([]*models.TournamentStanding, error) {
	query := `SELECT ` + standingColumns + ` FROM tournament_standings
		WHERE tournament_id = $1 AND category_id IS NOT DISTINCT FROM $2`
	if orderByPosition {
		query += " ORDER BY position NULLS LAST, participant_id"
	} else {
		query += " ORDER BY participant_id"
	}

	rows, err := r.executor(exec).QueryContext(ctx, query, tournamentID, categoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to list standings: %w", err)
	}
	defer rows.Close()

	standings := make([]*models.TournamentStanding, 0)
	for rows.Next() {
		s, errScan := scanStanding(rows)
		if errScan != nil {
			return nil, errScan
		}
		standings = append(standings, s)
	}
	return standings, rows.Err()
}

func (r *postgresStandingRepository) ReplaceScope(ctx context.Context, exec SQLExecutor, tournamentID int, categoryID *int, entries []models.TournamentStanding) error {
	executor := r.executor(exec)

	_, err := executor.ExecContext(ctx,
		`DELETE FROM tournament_standings WHERE tournament_id = $1 AND category_id IS NOT DISTINCT FROM $2`,
		tournamentID, categoryID,
	)
	if err != nil {
		return fmt.Errorf("failed to clear standings scope: %w", err)
	}

	query := `
		INSERT INTO tournament_standings
			(tournament_id, category_id, participant_id, participant_name, participant_type,
			 position, points, matches_played, matches_won, matches_lost, matches_drawn,
			 sets_won, sets_lost, games_won, games_lost, points_scored, points_conceded,
			 goal_difference, is_eliminated, elimination_round, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21)`

	now := time.Now()
	for i := range entries {
		e := &entries[i]
		if e.UpdatedAt.IsZero() {
			e.UpdatedAt = now
		}
		_, err := executor.ExecContext(ctx, query,
			tournamentID, categoryID, e.ParticipantID, e.ParticipantName, e.ParticipantType,
			e.Position, e.Points, e.MatchesPlayed, e.MatchesWon, e.MatchesLost, e.MatchesDrawn,
			e.SetsWon, e.SetsLost, e.GamesWon, e.GamesLost, e.PointsScored, e.PointsConceded,
			e.GoalDifference, e.IsEliminated, e.EliminationRound, e.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert standing for participant %d: %w", e.ParticipantID, err)
		}
	}
	return nil
}
