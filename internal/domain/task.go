package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Task-specific validation errors
var (
	// ErrTaskIDEmpty is returned when a task ID is empty or nil.
	ErrTaskIDEmpty = errors.New("task ID cannot be empty")

	// ErrTaskUserIDEmpty is returned when a task's user ID is empty or nil.
	ErrTaskUserIDEmpty = errors.New("task user ID cannot be empty")

	// ErrTaskTitleEmpty is returned when a task's title is empty.
	ErrTaskTitleEmpty = errors.New("task title cannot be empty")

	// ErrTaskStatusInvalid is returned when a task's status is not a known value.
	ErrTaskStatusInvalid = errors.New("task status is invalid")

	// ErrTaskAlreadyCompleted is returned when completing a task that is
	// already in the completed state.
	ErrTaskAlreadyCompleted = errors.New("task is already completed")
)

// TaskStatus represents the lifecycle state of a task.
type TaskStatus string

// Valid task statuses.
const (
	TaskStatusPending   TaskStatus = "pending"
	TaskStatusCompleted TaskStatus = "completed"
)

// Task represents a single unit of work a user intends to finish.
// A task may optionally contribute to a goal; goal progress is derived
// from the completion state of its tasks.
type Task struct {
	ID          uuid.UUID  `json:"id"`
	UserID      uuid.UUID  `json:"user_id"`
	GoalID      uuid.UUID  `json:"goal_id,omitempty"` // uuid.Nil for free-standing tasks
	Title       string     `json:"title"`
	Notes       string     `json:"notes,omitempty"`
	Status      TaskStatus `json:"status"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// NewTask creates a new pending Task owned by the given user.
// goalID may be uuid.Nil for tasks that do not belong to a goal.
// Returns an error if validation fails.
func NewTask(userID, goalID uuid.UUID, title, notes string) (*Task, error) {
	now := time.Now().UTC()
	task := &Task{
		ID:        uuid.New(),
		UserID:    userID,
		GoalID:    goalID,
		Title:     strings.TrimSpace(title),
		Notes:     notes,
		Status:    TaskStatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}

	return task, nil
}

// Validate checks if the Task has valid data.
// Returns an error if any field fails validation.
func (t *Task) Validate() error {
	if t.ID == uuid.Nil {
		return ErrTaskIDEmpty
	}

	if t.UserID == uuid.Nil {
		return ErrTaskUserIDEmpty
	}

	if strings.TrimSpace(t.Title) == "" {
		return ErrTaskTitleEmpty
	}

	switch t.Status {
	case TaskStatusPending, TaskStatusCompleted:
		return nil
	default:
		return ErrTaskStatusInvalid
	}
}

// MarkCompleted transitions the task to the completed state and records
// the completion time. Returns ErrTaskAlreadyCompleted if the task has
// already been completed.
func (t *Task) MarkCompleted() error {
	if t.Status == TaskStatusCompleted {
		return ErrTaskAlreadyCompleted
	}

	now := time.Now().UTC()
	t.Status = TaskStatusCompleted
	t.CompletedAt = &now
	t.UpdatedAt = now
	return nil
}
