package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Memory-specific validation errors
var (
	// ErrMemoryTaskIDEmpty is returned when a memory's task ID is empty or nil.
	ErrMemoryTaskIDEmpty = errors.New("memory task ID cannot be empty")

	// ErrMemoryUserIDEmpty is returned when a memory's user ID is empty or nil.
	ErrMemoryUserIDEmpty = errors.New("memory user ID cannot be empty")

	// ErrMemoryEmbeddingEmpty is returned when a memory carries no embedding vector.
	ErrMemoryEmbeddingEmpty = errors.New("memory embedding cannot be empty")
)

// Memory is the semantic-memory index entry for a completed task: the
// task's text together with its embedding vector. Memories are keyed by
// task ID, so re-indexing the same task overwrites the previous entry
// rather than accumulating duplicates.
type Memory struct {
	TaskID    uuid.UUID `json:"task_id"`
	UserID    uuid.UUID `json:"user_id"`
	Text      string    `json:"text"`
	Embedding []float32 `json:"embedding"`
	IndexedAt time.Time `json:"indexed_at"`
}

// NewMemory creates a new Memory entry for the given task.
// Returns an error if validation fails.
func NewMemory(taskID, userID uuid.UUID, text string, embedding []float32) (*Memory, error) {
	memory := &Memory{
		TaskID:    taskID,
		UserID:    userID,
		Text:      text,
		Embedding: embedding,
		IndexedAt: time.Now().UTC(),
	}

	if err := memory.Validate(); err != nil {
		return nil, err
	}

	return memory, nil
}

// Validate checks if the Memory has valid data.
// Returns an error if any field fails validation.
func (m *Memory) Validate() error {
	if m.TaskID == uuid.Nil {
		return ErrMemoryTaskIDEmpty
	}

	if m.UserID == uuid.Nil {
		return ErrMemoryUserIDEmpty
	}

	if len(m.Embedding) == 0 {
		return ErrMemoryEmbeddingEmpty
	}

	return nil
}
