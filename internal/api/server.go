// It defines the API server, sets up the routes (endpoints)
// using chi, and links them to the handler functions.

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/libertyfm/libertyfm/internal/core"
	"github.com/libertyfm/libertyfm/internal/jobs"
	"github.com/libertyfm/libertyfm/internal/store"
	"github.com/libertyfm/libertyfm/internal/websocket"
)

// Server holds the dependencies for our API.
type Server struct {
	app      *core.App
	store    *store.Store
	registry *jobs.Registry
	hub      *websocket.Hub
}

// NewServer creates a new Server instance.
func NewServer(app *core.App, registry *jobs.Registry, hub *websocket.Hub) *Server {
	return &Server{
		app:      app,
		store:    store.New(app.DB),
		registry: registry,
		hub:      hub,
	}
}

// Store returns the store instance.
func (s *Server) Store() *store.Store {
	return s.store
}

// Router sets up and returns the main router for the application.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)    // Logs requests to the console
	r.Use(middleware.Recoverer) // Recovers from panics
	r.Use(middleware.Timeout(60 * time.Second))

	r.Get("/api/version", s.handleGetVersion)
	r.Get("/api/config", s.handleGetConfig)

	// Import Routes
	r.Post("/api/import", s.handleImport)
	r.Post("/api/import/upload", s.handleImportUpload)

	// Job Routes
	r.Post("/api/jobs", s.handleStartJob)
	r.Get("/api/jobs", s.handleListJobs)
	r.Get("/api/jobs/{jobID}", s.handleGetJob)

	// Run History Routes
	r.Get("/api/runs", s.handleListRuns)
	r.Get("/api/runs/{runID}", s.handleGetRun)

	// WebSocket progress stream
	r.Get("/ws", func(w http.ResponseWriter, r *http.Request) {
		websocket.ServeWs(s.hub, w, r)
	})

	return r
}
