package postgres

import (
	"database/sql"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/stridehq/stride-api/internal/store"
)

func TestMapError(t *testing.T) {
	t.Run("nil stays nil", func(t *testing.T) {
		assert.NoError(t, mapError(nil))
	})

	t.Run("no rows maps to not found", func(t *testing.T) {
		err := mapError(sql.ErrNoRows)
		assert.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("unique violation maps to duplicate", func(t *testing.T) {
		pgErr := &pgconn.PgError{Code: uniqueViolationCode, ConstraintName: "stories_correlation_id_key"}
		err := mapError(pgErr)
		assert.ErrorIs(t, err, store.ErrDuplicate)
	})

	t.Run("foreign key violation maps to invalid entity", func(t *testing.T) {
		pgErr := &pgconn.PgError{Code: foreignKeyViolationCode, ConstraintName: "tasks_user_id_fkey"}
		err := mapError(pgErr)
		assert.ErrorIs(t, err, store.ErrInvalidEntity)
		assert.Contains(t, err.Error(), "tasks_user_id_fkey")
	})

	t.Run("check violation maps to invalid entity", func(t *testing.T) {
		pgErr := &pgconn.PgError{Code: checkViolationCode, ConstraintName: "goals_progress_check"}
		assert.ErrorIs(t, mapError(pgErr), store.ErrInvalidEntity)
	})

	t.Run("unrelated error passes through", func(t *testing.T) {
		cause := errors.New("connection reset")
		assert.Equal(t, cause, mapError(cause))
	})
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, IsUniqueViolation(&pgconn.PgError{Code: uniqueViolationCode}))
	assert.False(t, IsUniqueViolation(&pgconn.PgError{Code: foreignKeyViolationCode}))
	assert.False(t, IsUniqueViolation(errors.New("not a pg error")))
	assert.False(t, IsUniqueViolation(nil))
}

func TestNullableUUID(t *testing.T) {
	assert.False(t, nullableUUID(uuid.Nil).Valid)

	id := uuid.New()
	got := nullableUUID(id)
	assert.True(t, got.Valid)
	assert.Equal(t, id, got.UUID)
}
