package repositories

import (
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/require"
)

func TestIsUniqueViolation(t *testing.T) {
	uniqueErr := &pq.Error{Code: "23505", Constraint: "brackets_scope_unique"}

	require.True(t, isUniqueViolation(uniqueErr, ""))
	require.True(t, isUniqueViolation(uniqueErr, "brackets_scope_unique"))
	require.False(t, isUniqueViolation(uniqueErr, "other_constraint"))

	wrapped := fmt.Errorf("insert failed: %w", uniqueErr)
	require.True(t, isUniqueViolation(wrapped, "brackets_scope_unique"))

	require.False(t, isUniqueViolation(errors.New("plain error"), ""))
	require.False(t, isUniqueViolation(&pq.Error{Code: "23503"}, ""))
}

func TestIsForeignKeyViolation(t *testing.T) {
	require.True(t, isForeignKeyViolation(&pq.Error{Code: "23503"}))
	require.True(t, isForeignKeyViolation(fmt.Errorf("wrapped: %w", &pq.Error{Code: "23503"})))
	require.False(t, isForeignKeyViolation(&pq.Error{Code: "23505"}))
	require.False(t, isForeignKeyViolation(errors.New("plain error")))
}
