package consumers

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stridehq/stride-api/internal/domain"
	"github.com/stridehq/stride-api/internal/generation"
)

func memoryFixtures(t *testing.T, notes string) (*fakeTaskStore, *fakeMemoryStore, *domain.Task) {
	t.Helper()

	task, err := domain.NewTask(uuid.New(), uuid.Nil, "Review the design doc", notes)
	require.NoError(t, err)
	require.NoError(t, task.MarkCompleted())

	tasks := &fakeTaskStore{
		getByID: func(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
			return task, nil
		},
	}

	return tasks, newFakeMemoryStore(), task
}

func TestMemoryIndexer(t *testing.T) {
	t.Run("embeds title and notes and upserts", func(t *testing.T) {
		tasks, memories, task := memoryFixtures(t, "left comments on section 3")
		embedder := &fakeEmbedder{vector: []float32{0.1, 0.2, 0.3}}

		indexer := NewMemoryIndexer(tasks, memories, embedder, discardLogger())
		require.NoError(t, indexer.Handle(context.Background(), newTaskCompletedEvent(task)))

		memory, err := memories.GetByTaskID(context.Background(), task.ID)
		require.NoError(t, err)
		assert.Equal(t, task.UserID, memory.UserID)
		assert.Contains(t, memory.Text, task.Title)
		assert.Contains(t, memory.Text, task.Notes)
		assert.Equal(t, embedder.vector, memory.Embedding)
	})

	t.Run("omits empty notes from the indexed text", func(t *testing.T) {
		tasks, memories, task := memoryFixtures(t, "   ")
		embedder := &fakeEmbedder{vector: []float32{1}}

		indexer := NewMemoryIndexer(tasks, memories, embedder, discardLogger())
		require.NoError(t, indexer.Handle(context.Background(), newTaskCompletedEvent(task)))

		memory, err := memories.GetByTaskID(context.Background(), task.ID)
		require.NoError(t, err)
		assert.Equal(t, task.Title, memory.Text)
	})

	t.Run("replaying re-upserts the same entry", func(t *testing.T) {
		tasks, memories, task := memoryFixtures(t, "")
		embedder := &fakeEmbedder{vector: []float32{0.5}}

		indexer := NewMemoryIndexer(tasks, memories, embedder, discardLogger())
		event := newTaskCompletedEvent(task)

		require.NoError(t, indexer.Handle(context.Background(), event))
		require.NoError(t, indexer.Handle(context.Background(), event))

		assert.Equal(t, 2, memories.upserts)
		assert.Len(t, memories.memories, 1)
	})

	t.Run("embedding failure propagates", func(t *testing.T) {
		tasks, memories, task := memoryFixtures(t, "")
		embedder := &fakeEmbedder{err: generation.ErrTransientFailure}

		indexer := NewMemoryIndexer(tasks, memories, embedder, discardLogger())
		err := indexer.Handle(context.Background(), newTaskCompletedEvent(task))

		assert.ErrorIs(t, err, generation.ErrTransientFailure)
		assert.Empty(t, memories.memories)
	})
}
