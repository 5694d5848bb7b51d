// Package main implements the entry point for the Stride API server, a
// goal/task tracker whose task completions fan out to progress, story,
// notification, and memory consumers.
package main

import (
	"context"
	"log"

	"github.com/stridehq/stride-api/internal/config"
	"github.com/stridehq/stride-api/internal/platform/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	appLogger, err := logger.Setup(cfg.Server)
	if err != nil {
		log.Fatalf("failed to set up logger: %v", err)
	}

	ctx := context.Background()

	app, err := newApplication(ctx, cfg, appLogger)
	if err != nil {
		appLogger.Error("failed to initialize application", "error", err)
		log.Fatalf("failed to initialize application: %v", err)
	}
	defer app.cleanup()

	if err := app.Run(ctx); err != nil {
		appLogger.Error("server exited with error", "error", err)
		log.Fatalf("server exited with error: %v", err)
	}
}
