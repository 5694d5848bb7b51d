package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/stridehq/stride-api/internal/api"
	"github.com/stridehq/stride-api/internal/api/middleware"
)

// setupRouter builds the HTTP routing table.
func (app *application) setupRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.TraceMiddleware)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	apiKeyMiddleware := middleware.NewAPIKeyMiddleware(app.apiKeyVerifier)
	r.Group(func(r chi.Router) {
		r.Use(apiKeyMiddleware.Require)
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(
			app.registry, promhttp.HandlerOpts{}))
	})

	taskHandler := api.NewTaskHandler(app.taskService)
	goalHandler := api.NewGoalHandler(app.goalService)
	storyHandler := api.NewStoryHandler(app.storyService)
	authMiddleware := middleware.NewAuthMiddleware(app.jwtService)

	r.Route("/api", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			r.Post("/tasks", taskHandler.CreateTask)
			r.Get("/tasks/{id}", taskHandler.GetTask)
			r.Post("/tasks/{id}/complete", taskHandler.CompleteTask)

			r.Post("/goals", goalHandler.CreateGoal)
			r.Get("/goals/{id}", goalHandler.GetGoal)

			r.Get("/stories", storyHandler.ListStories)
		})
	})

	return r
}
