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

func storyFixtures(t *testing.T) (*fakeTaskStore, *fakeUserStore, *fakeStoryStore, *domain.Task, *domain.User) {
	t.Helper()

	user, err := domain.NewUser("ada@example.com", "Ada")
	require.NoError(t, err)

	task, err := domain.NewTask(user.ID, uuid.Nil, "Finish the chapter", "late evening")
	require.NoError(t, err)
	require.NoError(t, task.MarkCompleted())

	tasks := &fakeTaskStore{
		getByID: func(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
			return task, nil
		},
	}
	users := &fakeUserStore{user: user}
	stories := &fakeStoryStore{}

	return tasks, users, stories, task, user
}

func TestStoryComposer(t *testing.T) {
	t.Run("composes and persists a story", func(t *testing.T) {
		tasks, users, stories, task, user := storyFixtures(t)
		generator := &fakeTextGenerator{text: "You did it, Ada. One chapter closer."}

		composer := NewStoryComposer(tasks, users, stories, generator, discardLogger())
		event := newTaskCompletedEvent(task)
		require.NoError(t, composer.Handle(context.Background(), event))

		require.Equal(t, 1, stories.count())
		story := stories.stories[0]
		assert.Equal(t, task.ID, story.TaskID)
		assert.Equal(t, user.ID, story.UserID)
		assert.Equal(t, event.CorrelationID, story.CorrelationID)
		assert.Equal(t, generator.text, story.Text)

		// The prompt mentions the task and the user by name.
		assert.Contains(t, generator.lastPrompt, task.Title)
		assert.Contains(t, generator.lastPrompt, user.DisplayName)
	})

	t.Run("replaying the same event writes exactly one story", func(t *testing.T) {
		tasks, users, stories, task, _ := storyFixtures(t)
		generator := &fakeTextGenerator{text: "Well done."}

		composer := NewStoryComposer(tasks, users, stories, generator, discardLogger())
		event := newTaskCompletedEvent(task)

		require.NoError(t, composer.Handle(context.Background(), event))
		require.NoError(t, composer.Handle(context.Background(), event))

		assert.Equal(t, 1, stories.count())
	})

	t.Run("generation failure propagates", func(t *testing.T) {
		tasks, users, stories, task, _ := storyFixtures(t)
		generator := &fakeTextGenerator{err: generation.ErrTransientFailure}

		composer := NewStoryComposer(tasks, users, stories, generator, discardLogger())
		err := composer.Handle(context.Background(), newTaskCompletedEvent(task))

		assert.ErrorIs(t, err, generation.ErrTransientFailure)
		assert.Equal(t, 0, stories.count())
	})
}
