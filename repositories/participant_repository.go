package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/naeemnh/tournamint-api/models"
)

var (
	ErrParticipantNotFound = errors.New("participant not found")
	ErrParticipantConflict = errors.New("participant already registered in this scope")
)

// ParticipantRepository resolves the registered participants of a
// (tournament, category) scope; a NULL category is its own slot.
type ParticipantRepository interface {
	Create(ctx context.Context, exec SQLExecutor, participant *models.Participant) error
	GetByID(ctx context.Context, exec SQLExecutor, id int) (*models.Participant, error)
	ListByScope(ctx context.Context, exec SQLExecutor, tournamentID int, categoryID *int, status *models.ParticipantStatus) ([]*models.Participant, error)
	UpdateStatus(ctx context.Context, exec SQLExecutor, id int, status models.ParticipantStatus) error
}

type postgresParticipantRepository struct {
	db *sql.DB
}

func NewPostgresParticipantRepository(db *sql.DB) ParticipantRepository {
	return &postgresParticipantRepository{db: db}
}

func (r *postgresParticipantRepository) executor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresParticipantRepository) Create(ctx context.Context, exec SQLExecutor, p *models.Participant) error {
	query := `
		INSERT INTO participants (tournament_id, category_id, user_id, display_name, type, seed, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at`

	err := r.executor(exec).QueryRowContext(ctx, query,
		p.TournamentID, p.CategoryID, p.UserID, p.DisplayName, p.Type, p.Seed, p.Status,
	).Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		if isUniqueViolation(err, "") {
			return ErrParticipantConflict
		}
		if isForeignKeyViolation(err) {
			return ErrTournamentNotFound
		}
		return fmt.Errorf("failed to create participant: %w", err)
	}
	return nil
}

func scanParticipant(rowScanner interface{ Scan(...interface{}) error }) (*models.Participant, error) {
	p := &models.Participant{}
	err := rowScanner.Scan(
		&p.ID, &p.TournamentID, &p.CategoryID, &p.UserID,
		&p.DisplayName, &p.Type, &p.Seed, &p.Status, &p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrParticipantNotFound
		}
		return nil, fmt.Errorf("failed to scan participant: %w", err)
	}
	return p, nil
}

func (r *postgresParticipantRepository) GetByID(ctx context.Context, exec SQLExecutor, id int) (*models.Participant, error) {
	query := `
		SELECT id, tournament_id, category_id, user_id, display_name, type, seed, status, created_at
		FROM participants
		WHERE id = $1`
	return scanParticipant(r.executor(exec).QueryRowContext(ctx, query, id))
}

// ListByScope returns the participants of a scope ordered by seed (seeded
// first, ascending), then registration order. This ordering is what the
// bracket generator consumes when no explicit seed order is supplied.
func (r *postgresParticipantRepository) ListByScope(ctx context.Context, exec SQLExecutor, tournamentID int, categoryID *int, status *models.ParticipantStatus) ([]*models.Participant, error) {
	query := `
		SELECT id, tournament_id, category_id, user_id, display_name, type, seed, status, created_at
		FROM participants
		WHERE tournament_id = $1
		  AND category_id IS NOT DISTINCT FROM $2
		  AND ($3::text IS NULL OR status = $3)
		ORDER BY seed NULLS LAST, id`

	var statusArg interface{}
	if status != nil {
		statusArg = string(*status)
	}

	rows, err := r.executor(exec).QueryContext(ctx, query, tournamentID, categoryID, statusArg)
	if err != nil {
		return nil, fmt.Errorf("failed to list participants: %w", err)
	}
	defer rows.Close()

	participants := make([]*models.Participant, 0)
	for rows.Next() {
		p, errScan := scanParticipant(rows)
		if errScan != nil {
			return nil, errScan
		}
		participants = append(participants, p)
	}
	return participants, rows.Err()
}

func (r *postgresParticipantRepository) UpdateStatus(ctx context.Context, exec SQLExecutor, id int, status models.ParticipantStatus) error {
	result, err := r.executor(exec).ExecContext(ctx,
		`UPDATE participants SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return fmt.Errorf("failed to update participant %d status: %w", id, err)
	}
	return checkAffectedRows(result, ErrParticipantNotFound)
}
