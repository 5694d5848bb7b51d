package domain_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stridehq/stride-api/internal/domain"
)

func TestNewTask(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	goalID := uuid.New()

	t.Run("valid task", func(t *testing.T) {
		task, err := domain.NewTask(userID, goalID, "Run 5k", "morning run")
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, task.ID)
		assert.Equal(t, userID, task.UserID)
		assert.Equal(t, goalID, task.GoalID)
		assert.Equal(t, domain.TaskStatusPending, task.Status)
		assert.Nil(t, task.CompletedAt)
	})

	t.Run("free-standing task without goal", func(t *testing.T) {
		task, err := domain.NewTask(userID, uuid.Nil, "Water plants", "")
		require.NoError(t, err)
		assert.Equal(t, uuid.Nil, task.GoalID)
	})

	t.Run("missing user ID", func(t *testing.T) {
		_, err := domain.NewTask(uuid.Nil, goalID, "Run 5k", "")
		assert.ErrorIs(t, err, domain.ErrTaskUserIDEmpty)
	})

	t.Run("blank title", func(t *testing.T) {
		_, err := domain.NewTask(userID, goalID, "   ", "")
		assert.ErrorIs(t, err, domain.ErrTaskTitleEmpty)
	})
}

func TestTaskMarkCompleted(t *testing.T) {
	t.Parallel()

	task, err := domain.NewTask(uuid.New(), uuid.Nil, "Read a chapter", "")
	require.NoError(t, err)

	require.NoError(t, task.MarkCompleted())
	assert.Equal(t, domain.TaskStatusCompleted, task.Status)
	require.NotNil(t, task.CompletedAt)

	// Completing twice is rejected so the producer publishes exactly once
	// per transition.
	err = task.MarkCompleted()
	assert.ErrorIs(t, err, domain.ErrTaskAlreadyCompleted)
}

func TestTaskValidateStatus(t *testing.T) {
	t.Parallel()

	task, err := domain.NewTask(uuid.New(), uuid.Nil, "Tidy desk", "")
	require.NoError(t, err)

	task.Status = domain.TaskStatus("archived")
	assert.ErrorIs(t, task.Validate(), domain.ErrTaskStatusInvalid)
}
