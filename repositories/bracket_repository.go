package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/naeemnh/tournamint-api/brackets"
	"github.com/naeemnh/tournamint-api/models"
)

var (
	ErrBracketNotFound      = errors.New("bracket not found")
	ErrBracketScopeConflict = errors.New("bracket already exists for this tournament/category")
)

// BracketRepository persists the generated graph and the bracket lifecycle
// state. A unique index on (tournament_id, category_id) backs the
// one-bracket-per-scope invariant; a NULL category is its own slot.
type BracketRepository interface {
	Create(ctx context.Context, exec SQLExecutor, bracket *models.Bracket) error
	GetByScope(ctx context.Context, exec SQLExecutor, tournamentID int, categoryID *int) (*models.Bracket, error)
	UpdateState(ctx context.Context, exec SQLExecutor, id int, status models.BracketStatus, currentRound int, graph *brackets.Graph) error
	DeleteByScope(ctx context.Context, exec SQLExecutor, tournamentID int, categoryID *int) error
}

type postgresBracketRepository struct {
	db *sql.DB
}

func NewPostgresBracketRepository(db *sql.DB) BracketRepository {
	return &postgresBracketRepository{db: db}
}

func (r *postgresBracketRepository) executor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresBracketRepository) Create(ctx context.Context, exec SQLExecutor, b *models.Bracket) error {
	graphJSON, err := json.Marshal(b.Graph)
	if err != nil {
		return fmt.Errorf("failed to marshal bracket graph: %w", err)
	}
	settingsJSON, err := json.Marshal(b.Settings)
	if err != nil {
		return fmt.Errorf("failed to marshal bracket settings: %w", err)
	}

	query := `
		INSERT INTO brackets
			(tournament_id, category_id, kind, status, total_rounds, current_round, graph, settings)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at`

	err = r.executor(exec).QueryRowContext(ctx, query,
		b.TournamentID, b.CategoryID, b.Kind, b.Status, b.TotalRounds, b.CurrentRound,
		graphJSON, settingsJSON,
	).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err, "") {
			return ErrBracketScopeConflict
		}
		if isForeignKeyViolation(err) {
			return ErrTournamentNotFound
		}
		return fmt.Errorf("failed to create bracket: %w", err)
	}
	return nil
}

func (r *postgresBracketRepository) GetByScope(ctx context.Context, exec SQLExecutor, tournamentID int, categoryID *int) (*models.Bracket, error) {
	query := `
		SELECT id, tournament_id, category_id, kind, status, total_rounds, current_round,
		       graph, settings, created_at, updated_at
		FROM brackets
		WHERE tournament_id = $1 AND category_id IS NOT DISTINCT FROM $2`

	b := &models.Bracket{}
	var graphJSON, settingsJSON []byte
	err := r.executor(exec).QueryRowContext(ctx, query, tournamentID, categoryID).Scan(
		&b.ID, &b.TournamentID, &b.CategoryID, &b.Kind, &b.Status, &b.TotalRounds,
		&b.CurrentRound, &graphJSON, &settingsJSON, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBracketNotFound
		}
		return nil, fmt.Errorf("failed to scan bracket: %w", err)
	}

	if len(graphJSON) > 0 {
		b.Graph = &brackets.Graph{}
		if err := json.Unmarshal(graphJSON, b.Graph); err != nil {
			return nil, fmt.Errorf("failed to unmarshal bracket %d graph: %w", b.ID, err)
		}
	}
	if len(settingsJSON) > 0 {
		if err := json.Unmarshal(settingsJSON, &b.Settings); err != nil {
			return nil, fmt.Errorf("failed to unmarshal bracket %d settings: %w", b.ID, err)
		}
	}
	return b, nil
}

func (r *postgresBracketRepository) UpdateState(ctx context.Context, exec SQLExecutor, id int, status models.BracketStatus, currentRound int, graph *brackets.Graph) error {
	graphJSON, err := json.Marshal(graph)
	if err != nil {
		return fmt.Errorf("failed to marshal bracket graph: %w", err)
	}

	query := `
		UPDATE brackets SET status = $1, current_round = $2, graph = $3, updated_at = NOW()
		WHERE id = $4`

	result, err := r.executor(exec).ExecContext(ctx, query, status, currentRound, graphJSON, id)
	if err != nil {
		return fmt.Errorf("failed to update bracket %d: %w", id, err)
	}
	return checkAffectedRows(result, ErrBracketNotFound)
}

func (r *postgresBracketRepository) DeleteByScope(ctx context.Context, exec SQLExecutor, tournamentID int, categoryID *int) error {
	query := `DELETE FROM brackets WHERE tournament_id = $1 AND category_id IS NOT DISTINCT FROM $2`
	_, err := r.executor(exec).ExecContext(ctx, query, tournamentID, categoryID)
	if err != nil {
		return fmt.Errorf("failed to delete bracket for tournament %d: %w", tournamentID, err)
	}
	return nil
}
