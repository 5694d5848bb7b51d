package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Goal-specific validation errors
var (
	// ErrGoalIDEmpty is returned when a goal ID is empty or nil.
	ErrGoalIDEmpty = errors.New("goal ID cannot be empty")

	// ErrGoalUserIDEmpty is returned when a goal's user ID is empty or nil.
	ErrGoalUserIDEmpty = errors.New("goal user ID cannot be empty")

	// ErrGoalNameEmpty is returned when a goal's name is empty.
	ErrGoalNameEmpty = errors.New("goal name cannot be empty")

	// ErrGoalProgressRange is returned when a progress value is outside 0-100.
	ErrGoalProgressRange = errors.New("goal progress must be between 0 and 100")
)

// Goal represents a longer-running objective made up of tasks.
// Progress is a derived percentage of completed tasks and is recomputed
// by the progress consumer whenever one of the goal's tasks completes.
type Goal struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"user_id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Progress    int       `json:"progress"` // percentage, 0-100
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewGoal creates a new Goal with zero progress owned by the given user.
// Returns an error if validation fails.
func NewGoal(userID uuid.UUID, name, description string) (*Goal, error) {
	now := time.Now().UTC()
	goal := &Goal{
		ID:          uuid.New(),
		UserID:      userID,
		Name:        strings.TrimSpace(name),
		Description: description,
		Progress:    0,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := goal.Validate(); err != nil {
		return nil, err
	}

	return goal, nil
}

// Validate checks if the Goal has valid data.
// Returns an error if any field fails validation.
func (g *Goal) Validate() error {
	if g.ID == uuid.Nil {
		return ErrGoalIDEmpty
	}

	if g.UserID == uuid.Nil {
		return ErrGoalUserIDEmpty
	}

	if strings.TrimSpace(g.Name) == "" {
		return ErrGoalNameEmpty
	}

	if g.Progress < 0 || g.Progress > 100 {
		return ErrGoalProgressRange
	}

	return nil
}

// SetProgress updates the goal's derived progress percentage.
// Setting the same value twice is a no-op beyond the timestamp, which
// keeps progress recalculation safe to replay.
func (g *Goal) SetProgress(percent int) error {
	if percent < 0 || percent > 100 {
		return ErrGoalProgressRange
	}

	g.Progress = percent
	g.UpdatedAt = time.Now().UTC()
	return nil
}

// ProgressPercent computes the completion percentage for completed out of
// total tasks, rounding down. A goal with no tasks has zero progress.
func ProgressPercent(completed, total int) int {
	if total <= 0 {
		return 0
	}
	if completed >= total {
		return 100
	}
	return completed * 100 / total
}
