package services

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
)

// scopeKey identifies a (tournament, category) scope; category 0 stands for
// the NULL category slot (real category ids start at 1).
type scopeKey struct {
	tournamentID int
	categoryID   int
}

func newScopeKey(tournamentID int, categoryID *int) scopeKey {
	key := scopeKey{tournamentID: tournamentID}
	if categoryID != nil {
		key.categoryID = *categoryID
	}
	return key
}

// ScopeLocker serializes work per scope: at most one in-flight bracket
// generation or standings recompute per (tournament, category), while
// different scopes run fully in parallel.
type ScopeLocker struct {
	mu    sync.Mutex
	locks map[scopeKey]*sync.Mutex
}

func NewScopeLocker() *ScopeLocker {
	return &ScopeLocker{locks: make(map[scopeKey]*sync.Mutex)}
}

// Lock acquires the scope's mutex and returns the unlock function.
func (l *ScopeLocker) Lock(tournamentID int, categoryID *int) func() {
	key := newScopeKey(tournamentID, categoryID)

	l.mu.Lock()
	m, ok := l.locks[key]
	if !ok {
		m = &sync.Mutex{}
		l.locks[key] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}

// withTx runs fn inside a transaction with guaranteed release on all exit
// paths. fn's error rolls back; otherwise the transaction commits.
func withTx(ctx context.Context, db *sql.DB, fn func(tx *sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("%w (rollback failed: %v)", err, rbErr)
		}
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
