package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/naeemnh/tournamint-api/models"
)

var (
	ErrTournamentNotFound     = errors.New("tournament not found")
	ErrTournamentNameConflict = errors.New("tournament name already exists")
)

type TournamentRepository interface {
	Create(ctx context.Context, exec SQLExecutor, tournament *models.Tournament) error
	GetByID(ctx context.Context, exec SQLExecutor, id int) (*models.Tournament, error)
	List(ctx context.Context, exec SQLExecutor, status *models.TournamentStatus) ([]*models.Tournament, error)
	Update(ctx context.Context, exec SQLExecutor, tournament *models.Tournament) error
	UpdateLogoKey(ctx context.Context, exec SQLExecutor, id int, logoKey *string) error
	Delete(ctx context.Context, exec SQLExecutor, id int) error
}

type postgresTournamentRepository struct {
	db *sql.DB
}

func NewPostgresTournamentRepository(db *sql.DB) TournamentRepository {
	return &postgresTournamentRepository{db: db}
}

func (r *postgresTournamentRepository) executor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

const tournamentColumns = `id, name, description, organizer_id, reg_date, start_date, end_date,
	location, status, max_participants, created_at, logo_key`

func (r *postgresTournamentRepository) Create(ctx context.Context, exec SQLExecutor, t *models.Tournament) error {
	query := `
		INSERT INTO tournaments
			(name, description, organizer_id, reg_date, start_date, end_date, location, status, max_participants)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at`

	err := r.executor(exec).QueryRowContext(ctx, query,
		t.Name, t.Description, t.OrganizerID, t.RegDate, t.StartDate, t.EndDate,
		t.Location, t.Status, t.MaxParticipants,
	).Scan(&t.ID, &t.CreatedAt)
	if err != nil {
		if isUniqueViolation(err, "") {
			return ErrTournamentNameConflict
		}
		return fmt.Errorf("failed to create tournament: %w", err)
	}
	return nil
}

func scanTournament(rowScanner interface{ Scan(...interface{}) error }) (*models.Tournament, error) {
	t := &models.Tournament{}
	err := rowScanner.Scan(
		&t.ID, &t.Name, &t.Description, &t.OrganizerID, &t.RegDate, &t.StartDate,
		&t.EndDate, &t.Location, &t.Status, &t.MaxParticipants, &t.CreatedAt, &t.LogoKey,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTournamentNotFound
		}
		return nil, fmt.Errorf("failed to scan tournament: %w", err)
	}
	return t, nil
}

func (r *postgresTournamentRepository) GetByID(ctx context.Context, exec SQLExecutor, id int) (*models.Tournament, error) {
	query := `SELECT ` + tournamentColumns + ` FROM tournaments WHERE id = $1`
	return scanTournament(r.executor(exec).QueryRowContext(ctx, query, id))
}

func (r *postgresTournamentRepository) List(ctx context.Context, exec SQLExecutor, status *models.TournamentStatus) ([]*models.Tournament, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT ` + tournamentColumns + ` FROM tournaments`)

	args := []interface{}{}
	if status != nil {
		queryBuilder.WriteString(" WHERE status = $" + strconv.Itoa(len(args)+1))
		args = append(args, *status)
	}
	queryBuilder.WriteString(" ORDER BY start_date DESC, id DESC")

	rows, err := r.executor(exec).QueryContext(ctx, queryBuilder.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list tournaments: %w", err)
	}
	defer rows.Close()

	tournaments := make([]*models.Tournament, 0)
	for rows.Next() {
		t, errScan := scanTournament(rows)
		if errScan != nil {
			return nil, errScan
		}
		tournaments = append(tournaments, t)
	}
	return tournaments, rows.Err()
}

func (r *postgresTournamentRepository) Update(ctx context.Context, exec SQLExecutor, t *models.Tournament) error {
	query := `
		UPDATE tournaments SET
			name = $1, description = $2, reg_date = $3, start_date = $4, end_date = $5,
			location = $6, status = $7, max_participants = $8
		WHERE id = $9`

	result, err := r.executor(exec).ExecContext(ctx, query,
		t.Name, t.Description, t.RegDate, t.StartDate, t.EndDate,
		t.Location, t.Status, t.MaxParticipants, t.ID,
	)
	if err != nil {
		if isUniqueViolation(err, "") {
			return ErrTournamentNameConflict
		}
		return fmt.Errorf("failed to update tournament %d: %w", t.ID, err)
	}
	return checkAffectedRows(result, ErrTournamentNotFound)
}

func (r *postgresTournamentRepository) UpdateLogoKey(ctx context.Context, exec SQLExecutor, id int, logoKey *string) error {
	result, err := r.executor(exec).ExecContext(ctx,
		`UPDATE tournaments SET logo_key = $1 WHERE id = $2`, logoKey, id)
	if err != nil {
		return fmt.Errorf("failed to update tournament %d logo: %w", id, err)
	}
	return checkAffectedRows(result, ErrTournamentNotFound)
}

func (r *postgresTournamentRepository) Delete(ctx context.Context, exec SQLExecutor, id int) error {
	result, err := r.executor(exec).ExecContext(ctx, `DELETE FROM tournaments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete tournament %d: %w", id, err)
	}
	return checkAffectedRows(result, ErrTournamentNotFound)
}
