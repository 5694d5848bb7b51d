package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/stridehq/stride-api/internal/config"
	"github.com/stridehq/stride-api/internal/consumers"
	"github.com/stridehq/stride-api/internal/events"
	"github.com/stridehq/stride-api/internal/notify"
	"github.com/stridehq/stride-api/internal/platform/gemini"
	"github.com/stridehq/stride-api/internal/platform/metrics"
	"github.com/stridehq/stride-api/internal/platform/postgres"
	"github.com/stridehq/stride-api/internal/service"
	"github.com/stridehq/stride-api/internal/service/auth"
)

// application holds the assembled dependency graph for the server.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	bus      *events.Bus
	registry *prometheus.Registry

	taskService  *service.TaskService
	goalService  *service.GoalService
	storyService *service.StoryService

	jwtService     auth.JWTService
	apiKeyVerifier auth.APIKeyVerifier
}

// newApplication wires configuration, storage, the event bus, the four
// completion consumers, and the services together.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*application, error) {
	db, err := setupDatabase(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	if cfg.Database.AutoMigrate {
		if err := postgres.MigrateUp(ctx, db, logger); err != nil {
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
	}

	// Stores
	taskStore := postgres.NewTaskStore(db, logger)
	goalStore := postgres.NewGoalStore(db, logger)
	userStore := postgres.NewUserStore(db, logger)
	storyStore := postgres.NewStoryStore(db, logger)
	memoryStore := postgres.NewMemoryStore(db, logger)

	// Collaborators
	geminiClient, err := gemini.NewClient(ctx, logger, cfg.LLM)
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	var transport notify.Transport
	if cfg.Notification.Enabled {
		transport = notify.NewSMTPTransport(cfg.Notification)
	} else {
		transport = notify.NewNoopTransport(logger)
	}

	// Metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	recorder := metrics.NewDispatchRecorder(registry)

	// Event bus with the four completion consumers
	disabled := make([]events.Kind, 0, len(cfg.Dispatch.DisabledKinds))
	for _, kind := range cfg.Dispatch.DisabledKinds {
		disabled = append(disabled, events.Kind(kind))
	}

	bus := events.NewBus(logger,
		events.WithConsumerTimeout(cfg.Dispatch.ConsumerTimeout),
		events.WithDisabledKinds(disabled...),
		events.WithMetrics(recorder))

	retryDelay := time.Duration(cfg.LLM.RetryDelaySeconds) * time.Second
	subscriptions := []struct {
		name     string
		consumer events.Consumer
	}{
		{consumers.NameProgress, consumers.NewProgressRecalculator(taskStore, goalStore, logger)},
		{consumers.NameStory, events.WithRetry(
			consumers.NewStoryComposer(taskStore, userStore, storyStore, geminiClient, logger),
			cfg.LLM.MaxRetries, retryDelay)},
		{consumers.NameNotification, consumers.NewNotificationDispatcher(taskStore, userStore, transport, logger)},
		{consumers.NameMemory, events.WithRetry(
			consumers.NewMemoryIndexer(taskStore, memoryStore, geminiClient, logger),
			cfg.LLM.MaxRetries, retryDelay)},
	}
	for _, sub := range subscriptions {
		if err := bus.Subscribe(events.KindTaskCompleted, sub.name, sub.consumer); err != nil {
			return nil, fmt.Errorf("failed to subscribe %s consumer: %w", sub.name, err)
		}
	}

	// Services
	taskService, err := service.NewTaskService(
		service.NewTaskRepositoryAdapter(taskStore, db), bus, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create task service: %w", err)
	}

	goalService, err := service.NewGoalService(
		service.NewGoalRepositoryAdapter(goalStore, db), logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create goal service: %w", err)
	}

	storyService, err := service.NewStoryService(storyStore, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create story service: %w", err)
	}

	jwtService, err := auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to create jwt service: %w", err)
	}

	return &application{
		config:         cfg,
		logger:         logger,
		db:             db,
		bus:            bus,
		registry:       registry,
		taskService:    taskService,
		goalService:    goalService,
		storyService:   storyService,
		jwtService:     jwtService,
		apiKeyVerifier: auth.NewBcryptAPIKeyVerifier(cfg.Auth.APIKeyHash),
	}, nil
}

// Run starts the HTTP server and blocks until shutdown.
func (app *application) Run(ctx context.Context) error {
	return app.startHTTPServer(ctx, app.setupRouter())
}

// cleanup releases resources held by the application.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("failed to close database connection", "error", err)
		}
	}
}
