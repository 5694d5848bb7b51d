package api

import (
	"time"

	"github.com/google/uuid"

	"github.com/stridehq/stride-api/internal/domain"
)

// CreateTaskRequest represents the request body for creating a new task
type CreateTaskRequest struct {
	Title  string `json:"title" validate:"required,min=1"`
	Notes  string `json:"notes"`
	GoalID string `json:"goal_id" validate:"omitempty,uuid"`
}

// CreateGoalRequest represents the request body for creating a new goal
type CreateGoalRequest struct {
	Name        string `json:"name" validate:"required,min=1"`
	Description string `json:"description"`
}

// TaskResponse represents the response data for a task
type TaskResponse struct {
	ID          string     `json:"id"`
	UserID      string     `json:"user_id"`
	GoalID      string     `json:"goal_id,omitempty"`
	Title       string     `json:"title"`
	Notes       string     `json:"notes,omitempty"`
	Status      string     `json:"status"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// GoalResponse represents the response data for a goal
type GoalResponse struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Progress    int       `json:"progress"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// StoryResponse represents the response data for a generated story
type StoryResponse struct {
	ID        string    `json:"id"`
	TaskID    string    `json:"task_id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// taskToResponse converts a domain.Task to a TaskResponse
func taskToResponse(task *domain.Task) TaskResponse {
	resp := TaskResponse{
		ID:          task.ID.String(),
		UserID:      task.UserID.String(),
		Title:       task.Title,
		Notes:       task.Notes,
		Status:      string(task.Status),
		CompletedAt: task.CompletedAt,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}
	if task.GoalID != uuid.Nil {
		resp.GoalID = task.GoalID.String()
	}
	return resp
}

// goalToResponse converts a domain.Goal to a GoalResponse
func goalToResponse(goal *domain.Goal) GoalResponse {
	return GoalResponse{
		ID:          goal.ID.String(),
		UserID:      goal.UserID.String(),
		Name:        goal.Name,
		Description: goal.Description,
		Progress:    goal.Progress,
		CreatedAt:   goal.CreatedAt,
		UpdatedAt:   goal.UpdatedAt,
	}
}

// storyToResponse converts a domain.Story to a StoryResponse
func storyToResponse(story *domain.Story) StoryResponse {
	return StoryResponse{
		ID:        story.ID.String(),
		TaskID:    story.TaskID.String(),
		Text:      story.Text,
		CreatedAt: story.CreatedAt,
	}
}
