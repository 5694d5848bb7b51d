package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/stridehq/stride-api/internal/domain"
	"github.com/stridehq/stride-api/internal/store"
)

// MemoryStore implements the store.MemoryStore interface
// using a PostgreSQL database as the storage backend.
//
// Entries are keyed by task_id and written with ON CONFLICT DO UPDATE,
// so re-indexing a task replaces its previous entry. The embedding vector
// is stored as JSONB.
type MemoryStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewMemoryStore creates a new PostgreSQL implementation of the MemoryStore
// interface. If logger is nil, the default logger is used.
func NewMemoryStore(db store.DBTX, logger *slog.Logger) *MemoryStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &MemoryStore{
		db:     db,
		logger: logger.With(slog.String("component", "memory_store")),
	}
}

// Ensure MemoryStore implements store.MemoryStore interface
var _ store.MemoryStore = (*MemoryStore)(nil)

// Upsert implements store.MemoryStore.Upsert
func (s *MemoryStore) Upsert(ctx context.Context, memory *domain.Memory) error {
	if err := memory.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	embedding, err := json.Marshal(memory.Embedding)
	if err != nil {
		return fmt.Errorf("failed to encode embedding: %w", err)
	}

	query := `
		INSERT INTO memories (task_id, user_id, text, embedding, indexed_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (task_id) DO UPDATE
		SET user_id = EXCLUDED.user_id,
		    text = EXCLUDED.text,
		    embedding = EXCLUDED.embedding,
		    indexed_at = EXCLUDED.indexed_at
	`

	_, err = s.db.ExecContext(ctx, query,
		memory.TaskID,
		memory.UserID,
		memory.Text,
		embedding,
		memory.IndexedAt,
	)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to upsert memory",
			"task_id", memory.TaskID,
			"error", err)
		return mapError(err)
	}

	return nil
}

// GetByTaskID implements store.MemoryStore.GetByTaskID
func (s *MemoryStore) GetByTaskID(ctx context.Context, taskID uuid.UUID) (*domain.Memory, error) {
	query := `
		SELECT task_id, user_id, text, embedding, indexed_at
		FROM memories
		WHERE task_id = $1
	`

	var memory domain.Memory
	var embedding []byte

	err := s.db.QueryRowContext(ctx, query, taskID).Scan(
		&memory.TaskID,
		&memory.UserID,
		&memory.Text,
		&embedding,
		&memory.IndexedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, store.ErrNotFound
		}
		s.logger.ErrorContext(ctx, "failed to query memory",
			"task_id", taskID,
			"error", err)
		return nil, mapError(err)
	}

	if err := json.Unmarshal(embedding, &memory.Embedding); err != nil {
		return nil, fmt.Errorf("failed to decode embedding for task %s: %w", taskID, err)
	}

	return &memory, nil
}

// WithTx implements store.MemoryStore.WithTx
func (s *MemoryStore) WithTx(tx *sql.Tx) store.MemoryStore {
	return &MemoryStore{
		db:     tx,
		logger: s.logger,
	}
}
