package consumers

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"text/template"

	"github.com/stridehq/stride-api/internal/domain"
	"github.com/stridehq/stride-api/internal/events"
	"github.com/stridehq/stride-api/internal/generation"
	"github.com/stridehq/stride-api/internal/store"
)

// storyPrompt is the template for the narrative generation prompt.
const storyPrompt = `Write a short, warm, two-sentence story celebrating that {{.DisplayName}} just completed the task "{{.TaskTitle}}".{{if .TaskNotes}} Context: {{.TaskNotes}}.{{end}} Address {{.DisplayName}} directly. No emoji.`

// StoryComposer drafts a short narrative for a completed task using the
// text generator and persists it. Stories are unique per correlation id,
// so a replayed event finds its story already written and succeeds
// without composing a second one.
type StoryComposer struct {
	tasks     store.TaskStore
	users     store.UserStore
	stories   store.StoryStore
	generator generation.TextGenerator
	prompt    *template.Template
	logger    *slog.Logger
}

// NewStoryComposer creates the story consumer.
func NewStoryComposer(
	tasks store.TaskStore,
	users store.UserStore,
	stories store.StoryStore,
	generator generation.TextGenerator,
	logger *slog.Logger,
) *StoryComposer {
	if logger == nil {
		logger = slog.Default()
	}
	return &StoryComposer{
		tasks:     tasks,
		users:     users,
		stories:   stories,
		generator: generator,
		prompt:    template.Must(template.New("story").Parse(storyPrompt)),
		logger:    logger.With("component", "story_composer"),
	}
}

// Handle implements events.Consumer.
func (s *StoryComposer) Handle(ctx context.Context, event events.Event) error {
	taskID, ok := event.EntityID()
	if !ok {
		return fmt.Errorf("event %s has no usable entity id", event.CorrelationID)
	}
	userID, ok := event.UserID()
	if !ok {
		return fmt.Errorf("event %s has no usable user id", event.CorrelationID)
	}

	task, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		return fmt.Errorf("failed to load task %s: %w", taskID, err)
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to load user %s: %w", userID, err)
	}

	var promptBuf bytes.Buffer
	err = s.prompt.Execute(&promptBuf, struct {
		DisplayName string
		TaskTitle   string
		TaskNotes   string
	}{
		DisplayName: user.DisplayName,
		TaskTitle:   task.Title,
		TaskNotes:   task.Notes,
	})
	if err != nil {
		return fmt.Errorf("failed to build story prompt: %w", err)
	}

	text, err := s.generator.GenerateText(ctx, promptBuf.String())
	if err != nil {
		return fmt.Errorf("failed to generate story text: %w", err)
	}

	story, err := domain.NewStory(userID, taskID, event.CorrelationID, text)
	if err != nil {
		return fmt.Errorf("generated story is invalid: %w", err)
	}

	if err := s.stories.Create(ctx, story); err != nil {
		if errors.Is(err, store.ErrStoryExists) {
			s.logger.DebugContext(ctx, "story already written for this dispatch",
				"task_id", taskID,
				"correlation_id", event.CorrelationID)
			return nil
		}
		return fmt.Errorf("failed to save story: %w", err)
	}

	s.logger.InfoContext(ctx, "story composed",
		"story_id", story.ID,
		"task_id", taskID,
		"correlation_id", event.CorrelationID)
	return nil
}

var _ events.Consumer = (*StoryComposer)(nil)
