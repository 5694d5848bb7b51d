package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/stridehq/stride-api/internal/domain"
)

// MemoryStore defines the interface for semantic-memory index persistence.
type MemoryStore interface {
	// Upsert writes the memory entry for a task, replacing any previous
	// entry for the same task. Indexing is idempotent per task.
	Upsert(ctx context.Context, memory *domain.Memory) error

	// GetByTaskID retrieves the memory entry for a task.
	// Returns ErrNotFound if the task has not been indexed.
	GetByTaskID(ctx context.Context, taskID uuid.UUID) (*domain.Memory, error)

	// WithTx returns a new MemoryStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) MemoryStore
}
