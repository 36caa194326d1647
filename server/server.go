package server

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"schoolfinder/schools"
)

// SchoolFinder is the search capability the HTTP layer depends on.
type SchoolFinder interface {
	FindNearby(ctx context.Context, address string) ([]schools.SchoolRecord, error)
}

// Server wires the finder and the static frontend into an HTTP router.
type Server struct {
	finder      SchoolFinder
	logger      *slog.Logger
	frontendDir string
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the structured logger. Default: slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) { s.logger = logger }
}

// WithFrontendDir sets the directory served at the root path. An empty
// value disables the static file server.
func WithFrontendDir(dir string) Option {
	return func(s *Server) { s.frontendDir = dir }
}

// New creates a Server around the given finder.
func New(finder SchoolFinder, opts ...Option) *Server {
	s := &Server{
		finder: finder,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Router assembles the chi router: request IDs, logging, panic recovery,
// CORS, the API endpoints, and the frontend file server.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors)

	r.Post("/api/schools", s.handleSearch)
	r.Post("/api/schools/export", s.handleExport)

	if s.frontendDir != "" {
		fs := http.FileServer(http.Dir(s.frontendDir))
		r.Handle("/*", http.StripPrefix("/", fs))
	}

	return r
}
