package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/naeemnh/tournamint-api/models"
)

var (
	ErrMatchNotFound           = errors.New("match not found")
	ErrMatchParticipantInvalid = errors.New("match participant conflict or invalid")
)

type MatchRepository interface {
	Create(ctx context.Context, exec SQLExecutor, match *models.Match) error
	GetByID(ctx context.Context, exec SQLExecutor, id int) (*models.Match, error)
	ListByScope(ctx context.Context, exec SQLExecutor, tournamentID int, categoryID *int, round *int, status *models.MatchStatus) ([]*models.Match, error)
	GetByNode(ctx context.Context, exec SQLExecutor, tournamentID int, categoryID *int, nodeID string) (*models.Match, error)
	UpdateResult(ctx context.Context, exec SQLExecutor, match *models.Match) error
	UpdateParticipants(ctx context.Context, exec SQLExecutor, matchID int, p1ParticipantID, p2ParticipantID *int) error
}

type postgresMatchRepository struct {
	db *sql.DB
}

func NewPostgresMatchRepository(db *sql.DB) MatchRepository {
	return &postgresMatchRepository{db: db}
}

func (r *postgresMatchRepository) executor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

const matchColumns = `id, tournament_id, category_id, p1_participant_id, p2_participant_id,
	p1_score, p2_score, sets, match_time, status, winner_participant_id, round, bracket_node_id, created_at`

func marshalSets(sets []models.SetScore) (interface{}, error) {
	if len(sets) == 0 {
		return nil, nil
	}
	data, err := json.Marshal(sets)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal set scores: %w", err)
	}
	return data, nil
}

func (r *postgresMatchRepository) Create(ctx context.Context, exec SQLExecutor, m *models.Match) error {
	setsJSON, err := marshalSets(m.Sets)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO matches
			(tournament_id, category_id, p1_participant_id, p2_participant_id, p1_score, p2_score,
			 sets, match_time, status, winner_participant_id, round, bracket_node_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id, created_at`

	err = r.executor(exec).QueryRowContext(ctx, query,
		m.TournamentID, m.CategoryID, m.P1ParticipantID, m.P2ParticipantID,
		m.P1Score, m.P2Score, setsJSON, m.MatchTime, m.Status, m.WinnerID, m.Round, m.BracketNodeID,
	).Scan(&m.ID, &m.CreatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return ErrMatchParticipantInvalid
		}
		return fmt.Errorf("failed to create match: %w", err)
	}
	return nil
}

func scanMatch(rowScanner interface{ Scan(...interface{}) error }) (*models.Match, error) {
	m := &models.Match{}
	var setsJSON []byte
	err := rowScanner.Scan(
		&m.ID, &m.TournamentID, &m.CategoryID, &m.P1ParticipantID, &m.P2ParticipantID,
		&m.P1Score, &m.P2Score, &setsJSON, &m.MatchTime, &m.Status, &m.WinnerID,
		&m.Round, &m.BracketNodeID, &m.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to scan match: %w", err)
	}
	if len(setsJSON) > 0 {
		if err := json.Unmarshal(setsJSON, &m.Sets); err != nil {
			return nil, fmt.Errorf("failed to unmarshal set scores for match %d: %w", m.ID, err)
		}
	}
	return m, nil
}

func (r *postgresMatchRepository) GetByID(ctx context.Context, exec SQLExecutor, id int) (*models.Match, error) {
	query := `SELECT ` + matchColumns + ` FROM matches WHERE id = $1`
	return scanMatch(r.executor(exec).QueryRowContext(ctx, query, id))
}

func (r *postgresMatchRepository) ListByScope(ctx context.Context, exec SQLExecutor, tournamentID int, categoryID *int, round *int, status *models.MatchStatus) ([]*models.Match, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT ` + matchColumns + ` FROM matches
		WHERE tournament_id = $1 AND category_id IS NOT DISTINCT FROM $2`)

	args := []interface{}{tournamentID, categoryID}
	if round != nil {
		args = append(args, *round)
		queryBuilder.WriteString(" AND round = $" + strconv.Itoa(len(args)))
	}
	if status != nil {
		args = append(args, *status)
		queryBuilder.WriteString(" AND status = $" + strconv.Itoa(len(args)))
	}
	queryBuilder.WriteString(" ORDER BY round NULLS LAST, id")

	return r.queryMatches(ctx, exec, queryBuilder.String(), args...)
}

// GetByNode finds the materialized match of a bracket node within a scope.
func (r *postgresMatchRepository) GetByNode(ctx context.Context, exec SQLExecutor, tournamentID int, categoryID *int, nodeID string) (*models.Match, error) {
	query := `SELECT ` + matchColumns + ` FROM matches
		WHERE tournament_id = $1 AND category_id IS NOT DISTINCT FROM $2 AND bracket_node_id = $3`
	return scanMatch(r.executor(exec).QueryRowContext(ctx, query, tournamentID, categoryID, nodeID))
}

func (r *postgresMatchRepository) queryMatches(ctx context.Context, exec SQLExecutor, query string, args ...interface{}) ([]*models.Match, error) {
	rows, err := r.executor(exec).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query matches: %w", err)
	}
	defer rows.Close()

	matches := make([]*models.Match, 0)
	for rows.Next() {
		m, errScan := scanMatch(rows)
		if errScan != nil {
			return nil, errScan
		}
		matches = append(matches, m)
	}
	return matches, rows.Err()
}

func (r *postgresMatchRepository) UpdateResult(ctx context.Context, exec SQLExecutor, m *models.Match) error {
	setsJSON, err := marshalSets(m.Sets)
	if err != nil {
		return err
	}

	query := `
		UPDATE matches SET
			p1_score = $1, p2_score = $2, sets = $3, status = $4, winner_participant_id = $5
		WHERE id = $6`

	result, err := r.executor(exec).ExecContext(ctx, query,
		m.P1Score, m.P2Score, setsJSON, m.Status, m.WinnerID, m.ID,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return ErrMatchParticipantInvalid
		}
		return fmt.Errorf("failed to update match %d result: %w", m.ID, err)
	}
	return checkAffectedRows(result, ErrMatchNotFound)
}

func (r *postgresMatchRepository) UpdateParticipants(ctx context.Context, exec SQLExecutor, matchID int, p1ParticipantID, p2ParticipantID *int) error {
	query := `
		UPDATE matches SET p1_participant_id = $1, p2_participant_id = $2
		WHERE id = $3`

	result, err := r.executor(exec).ExecContext(ctx, query, p1ParticipantID, p2ParticipantID, matchID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return ErrMatchParticipantInvalid
		}
		return fmt.Errorf("failed to update match %d participants: %w", matchID, err)
	}
	return checkAffectedRows(result, ErrMatchNotFound)
}
