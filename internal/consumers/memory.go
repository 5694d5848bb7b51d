package consumers

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/stridehq/stride-api/internal/domain"
	"github.com/stridehq/stride-api/internal/events"
	"github.com/stridehq/stride-api/internal/generation"
	"github.com/stridehq/stride-api/internal/store"
)

// MemoryIndexer computes an embedding for a completed task's text and
// upserts it into the semantic-memory index. The upsert is keyed by task
// id, so re-indexing the same task replaces the previous entry and the
// consumer is safe to replay.
type MemoryIndexer struct {
	tasks    store.TaskStore
	memories store.MemoryStore
	embedder generation.Embedder
	logger   *slog.Logger
}

// NewMemoryIndexer creates the memory consumer.
func NewMemoryIndexer(
	tasks store.TaskStore,
	memories store.MemoryStore,
	embedder generation.Embedder,
	logger *slog.Logger,
) *MemoryIndexer {
	if logger == nil {
		logger = slog.Default()
	}
	return &MemoryIndexer{
		tasks:    tasks,
		memories: memories,
		embedder: embedder,
		logger:   logger.With("component", "memory_indexer"),
	}
}

// Handle implements events.Consumer.
func (m *MemoryIndexer) Handle(ctx context.Context, event events.Event) error {
	taskID, ok := event.EntityID()
	if !ok {
		return fmt.Errorf("event %s has no usable entity id", event.CorrelationID)
	}
	userID, ok := event.UserID()
	if !ok {
		return fmt.Errorf("event %s has no usable user id", event.CorrelationID)
	}

	task, err := m.tasks.GetByID(ctx, taskID)
	if err != nil {
		return fmt.Errorf("failed to load task %s: %w", taskID, err)
	}

	text := task.Title
	if strings.TrimSpace(task.Notes) != "" {
		text += "\n" + task.Notes
	}

	vector, err := m.embedder.Embed(ctx, text)
	if err != nil {
		return fmt.Errorf("failed to embed task %s: %w", taskID, err)
	}

	memory, err := domain.NewMemory(taskID, userID, text, vector)
	if err != nil {
		return fmt.Errorf("memory entry is invalid: %w", err)
	}

	if err := m.memories.Upsert(ctx, memory); err != nil {
		return fmt.Errorf("failed to upsert memory for task %s: %w", taskID, err)
	}

	m.logger.InfoContext(ctx, "task indexed into semantic memory",
		"task_id", taskID,
		"vector_dims", len(vector),
		"correlation_id", event.CorrelationID)
	return nil
}

var _ events.Consumer = (*MemoryIndexer)(nil)
