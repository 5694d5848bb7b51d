package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Story-specific validation errors
var (
	// ErrStoryIDEmpty is returned when a story ID is empty or nil.
	ErrStoryIDEmpty = errors.New("story ID cannot be empty")

	// ErrStoryUserIDEmpty is returned when a story's user ID is empty or nil.
	ErrStoryUserIDEmpty = errors.New("story user ID cannot be empty")

	// ErrStoryTaskIDEmpty is returned when a story's task ID is empty or nil.
	ErrStoryTaskIDEmpty = errors.New("story task ID cannot be empty")

	// ErrStoryTextEmpty is returned when a story's text is empty.
	ErrStoryTextEmpty = errors.New("story text cannot be empty")

	// ErrStoryCorrelationEmpty is returned when a story carries no correlation id.
	ErrStoryCorrelationEmpty = errors.New("story correlation ID cannot be empty")
)

// Story is a short generated narrative celebrating a completed task.
// CorrelationID links the story back to the dispatch that produced it and
// is unique per story, so replaying the same event cannot create a second
// story for the same completion.
type Story struct {
	ID            uuid.UUID `json:"id"`
	UserID        uuid.UUID `json:"user_id"`
	TaskID        uuid.UUID `json:"task_id"`
	CorrelationID string    `json:"correlation_id"`
	Text          string    `json:"text"`
	CreatedAt     time.Time `json:"created_at"`
}

// NewStory creates a new Story for the given user and task.
// Returns an error if validation fails.
func NewStory(userID, taskID uuid.UUID, correlationID, text string) (*Story, error) {
	story := &Story{
		ID:            uuid.New(),
		UserID:        userID,
		TaskID:        taskID,
		CorrelationID: correlationID,
		Text:          strings.TrimSpace(text),
		CreatedAt:     time.Now().UTC(),
	}

	if err := story.Validate(); err != nil {
		return nil, err
	}

	return story, nil
}

// Validate checks if the Story has valid data.
// Returns an error if any field fails validation.
func (s *Story) Validate() error {
	if s.ID == uuid.Nil {
		return ErrStoryIDEmpty
	}

	if s.UserID == uuid.Nil {
		return ErrStoryUserIDEmpty
	}

	if s.TaskID == uuid.Nil {
		return ErrStoryTaskIDEmpty
	}

	if s.CorrelationID == "" {
		return ErrStoryCorrelationEmpty
	}

	if s.Text == "" {
		return ErrStoryTextEmpty
	}

	return nil
}
