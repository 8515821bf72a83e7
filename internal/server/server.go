package server

import (
	"context"
	"io/fs"
	"log/slog"
	"net/http"

	"github.com/claude/wodboard/internal/models"
	"github.com/claude/wodboard/internal/search"
	"github.com/claude/wodboard/internal/storage"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// Store is the persistence the handlers need. *storage.DB satisfies it.
type Store interface {
	ListWorkouts(ctx context.Context) ([]models.Workout, error)
	GetWorkout(ctx context.Context, id uuid.UUID) (*models.Workout, error)
	QueryScores(ctx context.Context, userID int, workoutID *uuid.UUID) ([]models.Score, error)
	InsertScores(ctx context.Context, scores []models.Score) (int64, error)
	DeleteScore(ctx context.Context, userID int, id uuid.UUID) error
	InsertImportLog(ctx context.Context, log storage.ImportLog) (int64, error)
	UpdateImportLog(ctx context.Context, id int64, log storage.ImportLog) error
	QueryImportLogs(ctx context.Context, userID, limit int) ([]storage.ImportLog, error)
	GetDataStats(ctx context.Context, userID int) (*storage.DataStats, error)
	GetOrCreateUser(ctx context.Context, login, displayName string) (int, error)
}

var _ Store = (*storage.DB)(nil)

// Server holds dependencies for HTTP handlers.
type Server struct {
	store  Store
	search search.Options
	log    *slog.Logger
	apiKey string
	whois  WhoIser
	router chi.Router
}

// New creates a new Server with all routes configured.
func New(store Store, opts search.Options, apiKey string, log *slog.Logger) *Server {
	s := &Server{
		store:  store,
		search: opts,
		log:    log,
		apiKey: apiKey,
		router: chi.NewRouter(),
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// SetTailscale switches request identity from the local dev user to the
// tailnet user behind each connection.
func (s *Server) SetTailscale(w WhoIser) {
	s.whois = w
}

func (s *Server) routes() {
	s.router.Use(RequestLogging(s.log))
	s.router.Use(CORS(s.router))
	s.router.Use(s.identity)

	// Mutating endpoints (API key required)
	s.router.Group(func(r chi.Router) {
		r.Use(APIKeyAuth(s.apiKey))
		r.Post("/api/v1/import/csv", s.handleImportCSV)
		r.Delete("/api/v1/scores/{id}", s.handleDeleteScore)
	})

	// Dashboard API endpoints (no auth, tsnet handles access)
	s.router.Get("/api/v1/me", s.handleMe)
	s.router.Get("/api/v1/workouts", s.handleListWorkouts)
	s.router.Get("/api/v1/workouts/{id}", s.handleGetWorkout)
	s.router.Get("/api/v1/catalog", s.handleCatalog)
	s.router.Get("/api/v1/scores", s.handleQueryScores)
	s.router.Get("/api/v1/movements/frequency", s.handleMovementFrequency)
	s.router.Get("/api/v1/performance/trend", s.handlePerformanceTrend)
	s.router.Get("/api/v1/highlight", s.handleHighlight)
	s.router.Post("/api/v1/import/csv/preview", s.handlePreviewCSV)
	s.router.Get("/api/v1/import/logs", s.handleImportLogs)
	s.router.Get("/api/v1/stats", s.handleStats)
}

// SetFrontend mounts the SPA filesystem.
// Unmatched routes serve index.html for client-side routing.
func (s *Server) SetFrontend(webFS fs.FS) {
	fileServer := http.FileServerFS(webFS)

	s.router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		// Try to serve the exact file first
		f, err := webFS.Open(r.URL.Path[1:]) // strip leading /
		if err == nil {
			f.Close()
			fileServer.ServeHTTP(w, r)
			return
		}
		// Fallback to index.html for SPA routing
		r.URL.Path = "/"
		fileServer.ServeHTTP(w, r)
	})
}
