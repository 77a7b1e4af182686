package ui

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"statclinic/app"
	"statclinic/domain/core"
	"statclinic/ports"
)

// App is the HTTP application serving assessments, run records and reports.
type App struct {
	router   *chi.Mux
	pipeline *app.PipelineService
	catalog  ports.SeriesCatalogPort
	log      zerolog.Logger
}

// NewApp creates the HTTP application around a wired pipeline.
func NewApp(pipeline *app.PipelineService, catalog ports.SeriesCatalogPort, log zerolog.Logger) *App {
	a := &App{
		router:   chi.NewRouter(),
		pipeline: pipeline,
		catalog:  catalog,
		log:      log.With().Str("component", "http").Logger(),
	}

	a.setupMiddleware()
	a.setupRoutes()

	return a
}

// setupMiddleware configures HTTP middleware
func (a *App) setupMiddleware() {
	a.router.Use(middleware.Logger)
	a.router.Use(middleware.Recoverer)
	a.router.Use(middleware.Compress(5))
}

// setupRoutes configures the application routes
func (a *App) setupRoutes() {
	a.router.Get("/health", a.handleHealth)

	// API endpoints
	a.router.Post("/api/assess", a.handleAssess)
	a.router.Get("/api/runs", a.handleListRuns)
	a.router.Get("/api/runs/{id}", a.handleGetRun)
	a.router.Get("/api/runs/{id}/report", a.handleRunReport)
	a.router.Get("/api/series/{key}/runs", a.handleSeriesRuns)
	a.router.Get("/api/profile", a.handleProfile)
}

// Handler exposes the configured router.
func (a *App) Handler() http.Handler {
	return a.router
}

// Start starts the HTTP server
func (a *App) Start(addr string) error {
	a.log.Info().Str("addr", addr).Msg("starting http server")
	return http.ListenAndServe(addr, a.router)
}

func (a *App) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		a.log.Error().Err(err).Msg("failed to encode response")
	}
}

// writeError maps domain errors onto HTTP status codes.
func (a *App) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case core.IsNotFoundError(err):
		status = http.StatusNotFound
	case core.IsConfigurationError(err):
		status = http.StatusBadRequest
	case core.IsComputationError(err):
		status = http.StatusUnprocessableEntity
	}
	a.writeJSON(w, status, map[string]string{"error": err.Error()})
}
