package consumers

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/stridehq/stride-api/internal/domain"
	"github.com/stridehq/stride-api/internal/events"
	"github.com/stridehq/stride-api/internal/notify"
	"github.com/stridehq/stride-api/internal/store"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTaskCompletedEvent(task *domain.Task) events.Event {
	return events.NewEvent(events.KindTaskCompleted, task.ID, task.UserID, nil)
}

// fakeTaskStore implements store.TaskStore with pluggable behavior.
type fakeTaskStore struct {
	getByID     func(ctx context.Context, id uuid.UUID) (*domain.Task, error)
	countByGoal func(ctx context.Context, goalID uuid.UUID) (store.GoalTaskCounts, error)
}

func (f *fakeTaskStore) Create(ctx context.Context, task *domain.Task) error { return nil }

func (f *fakeTaskStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	return f.getByID(ctx, id)
}

func (f *fakeTaskStore) UpdateStatus(ctx context.Context, task *domain.Task) error { return nil }

func (f *fakeTaskStore) CountByGoal(ctx context.Context, goalID uuid.UUID) (store.GoalTaskCounts, error) {
	return f.countByGoal(ctx, goalID)
}

func (f *fakeTaskStore) WithTx(tx *sql.Tx) store.TaskStore { return f }

// fakeGoalStore records progress updates.
type fakeGoalStore struct {
	mu       sync.Mutex
	progress map[uuid.UUID]int
	err      error
}

func newFakeGoalStore() *fakeGoalStore {
	return &fakeGoalStore{progress: make(map[uuid.UUID]int)}
}

func (f *fakeGoalStore) Create(ctx context.Context, goal *domain.Goal) error { return nil }

func (f *fakeGoalStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Goal, error) {
	return nil, store.ErrGoalNotFound
}

func (f *fakeGoalStore) UpdateProgress(ctx context.Context, id uuid.UUID, percent int) error {
	if f.err != nil {
		return f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.progress[id] = percent
	return nil
}

func (f *fakeGoalStore) WithTx(tx *sql.Tx) store.GoalStore { return f }

func (f *fakeGoalStore) progressFor(id uuid.UUID) (int, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.progress[id]
	return p, ok
}

// fakeUserStore serves a single user.
type fakeUserStore struct {
	user *domain.User
	err  error
}

func (f *fakeUserStore) Create(ctx context.Context, user *domain.User) error { return nil }

func (f *fakeUserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.user, nil
}

func (f *fakeUserStore) WithTx(tx *sql.Tx) store.UserStore { return f }

// fakeStoryStore records created stories.
type fakeStoryStore struct {
	mu      sync.Mutex
	stories []*domain.Story
	err     error
}

func (f *fakeStoryStore) Create(ctx context.Context, story *domain.Story) error {
	if f.err != nil {
		return f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.stories {
		if existing.CorrelationID == story.CorrelationID {
			return store.ErrStoryExists
		}
	}
	f.stories = append(f.stories, story)
	return nil
}

func (f *fakeStoryStore) ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*domain.Story, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.stories, nil
}

func (f *fakeStoryStore) WithTx(tx *sql.Tx) store.StoryStore { return f }

func (f *fakeStoryStore) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.stories)
}

// fakeMemoryStore records upserted memories keyed by task id.
type fakeMemoryStore struct {
	mu       sync.Mutex
	memories map[uuid.UUID]*domain.Memory
	upserts  int
	err      error
}

func newFakeMemoryStore() *fakeMemoryStore {
	return &fakeMemoryStore{memories: make(map[uuid.UUID]*domain.Memory)}
}

func (f *fakeMemoryStore) Upsert(ctx context.Context, memory *domain.Memory) error {
	if f.err != nil {
		return f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.memories[memory.TaskID] = memory
	f.upserts++
	return nil
}

func (f *fakeMemoryStore) GetByTaskID(ctx context.Context, taskID uuid.UUID) (*domain.Memory, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	memory, ok := f.memories[taskID]
	if !ok {
		return nil, store.ErrNotFound
	}
	return memory, nil
}

func (f *fakeMemoryStore) WithTx(tx *sql.Tx) store.MemoryStore { return f }

// fakeTextGenerator returns canned text.
type fakeTextGenerator struct {
	text       string
	err        error
	lastPrompt string
}

func (f *fakeTextGenerator) GenerateText(ctx context.Context, prompt string) (string, error) {
	f.lastPrompt = prompt
	if f.err != nil {
		return "", f.err
	}
	return f.text, nil
}

// fakeEmbedder returns a canned vector.
type fakeEmbedder struct {
	vector []float32
	err    error
	calls  int
}

func (f *fakeEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.vector, nil
}

// fakeTransport records sent messages.
type fakeTransport struct {
	mu   sync.Mutex
	sent []string
	err  error
}

func (f *fakeTransport) Name() string { return "fake" }

func (f *fakeTransport) Send(ctx context.Context, to string, msg notify.Message) error {
	if f.err != nil {
		return f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, to+": "+msg.Subject)
	return nil
}
