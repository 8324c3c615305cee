package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/naeemnh/tournamint-api/models"
)

var (
	ErrCategoryNotFound     = errors.New("category not found")
	ErrCategoryNameConflict = errors.New("category name already exists in this tournament")
)

type CategoryRepository interface {
	Create(ctx context.Context, exec SQLExecutor, category *models.Category) error
	GetByID(ctx context.Context, exec SQLExecutor, id int) (*models.Category, error)
	ListByTournament(ctx context.Context, exec SQLExecutor, tournamentID int) ([]*models.Category, error)
}

type postgresCategoryRepository struct {
	db *sql.DB
}

func NewPostgresCategoryRepository(db *sql.DB) CategoryRepository {
	return &postgresCategoryRepository{db: db}
}

func (r *postgresCategoryRepository) executor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresCategoryRepository) Create(ctx context.Context, exec SQLExecutor, c *models.Category) error {
	query := `
		INSERT INTO categories (tournament_id, name, description)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`

	err := r.executor(exec).QueryRowContext(ctx, query, c.TournamentID, c.Name, c.Description).
		Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		if isUniqueViolation(err, "") {
			return ErrCategoryNameConflict
		}
		if isForeignKeyViolation(err) {
			return ErrTournamentNotFound
		}
		return fmt.Errorf("failed to create category: %w", err)
	}
	return nil
}

func (r *postgresCategoryRepository) GetByID(ctx context.Context, exec SQLExecutor, id int) (*models.Category, error) {
	query := `
		SELECT id, tournament_id, name, description, created_at
		FROM categories
		WHERE id = $1`

	c := &models.Category{}
	err := r.executor(exec).QueryRowContext(ctx, query, id).
		Scan(&c.ID, &c.TournamentID, &c.Name, &c.Description, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to scan category %d: %w", id, err)
	}
	return c, nil
}

func (r *postgresCategoryRepository) ListByTournament(ctx context.Context, exec SQLExecutor, tournamentID int) ([]*models.Category, error) {
	query := `
		SELECT id, tournament_id, name, description, created_at
		FROM categories
		WHERE tournament_id = $1
		ORDER BY id`

	rows, err := r.executor(exec).QueryContext(ctx, query, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories for tournament %d: %w", tournamentID, err)
	}
	defer rows.Close()

	categories := make([]*models.Category, 0)
	for rows.Next() {
		c := &models.Category{}
		if err := rows.Scan(&c.ID, &c.TournamentID, &c.Name, &c.Description, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}
