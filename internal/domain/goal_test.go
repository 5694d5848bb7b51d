package domain_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stridehq/stride-api/internal/domain"
)

func TestNewGoal(t *testing.T) {
	t.Parallel()

	t.Run("valid goal", func(t *testing.T) {
		goal, err := domain.NewGoal(uuid.New(), "Learn Go", "one exercise a day")
		require.NoError(t, err)
		assert.Equal(t, 0, goal.Progress)
	})

	t.Run("blank name", func(t *testing.T) {
		_, err := domain.NewGoal(uuid.New(), "  ", "")
		assert.ErrorIs(t, err, domain.ErrGoalNameEmpty)
	})
}

func TestGoalSetProgress(t *testing.T) {
	t.Parallel()

	goal, err := domain.NewGoal(uuid.New(), "Learn Go", "")
	require.NoError(t, err)

	require.NoError(t, goal.SetProgress(40))
	assert.Equal(t, 40, goal.Progress)

	// Replaying the same value leaves the goal in the same state.
	require.NoError(t, goal.SetProgress(40))
	assert.Equal(t, 40, goal.Progress)

	assert.ErrorIs(t, goal.SetProgress(101), domain.ErrGoalProgressRange)
	assert.ErrorIs(t, goal.SetProgress(-1), domain.ErrGoalProgressRange)
}

func TestProgressPercent(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		completed int
		total     int
		want      int
	}{
		{"no tasks", 0, 0, 0},
		{"none completed", 0, 4, 0},
		{"partial rounds down", 1, 3, 33},
		{"all completed", 4, 4, 100},
		{"completed exceeds total", 5, 4, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.ProgressPercent(tt.completed, tt.total))
		})
	}
}
