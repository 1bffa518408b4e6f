// Package server implements the Pageflow preview service: a small
// HTTP API for storing paper documents, running the layout pipeline,
// and fetching rendered page previews.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/mvollbrecht/pageflow/pkg/pipeline"
	"github.com/mvollbrecht/pageflow/pkg/store"
)

// Server wires the HTTP router to the pipeline runner and the
// document store.
type Server struct {
	router chi.Router
	runner *pipeline.Runner
	store  store.Store
	logger *log.Logger
	http   *http.Server
}

// New creates a server listening on addr. The runner and store must
// be non-nil; the logger defaults to log.Default.
func New(addr string, runner *pipeline.Runner, st store.Store, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{
		runner: runner,
		store:  st,
		logger: logger,
	}

	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(s.requestID)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Route("/documents", func(r chi.Router) {
			r.Post("/", s.handleCreateDocument)
			r.Get("/", s.handleListDocuments)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.handleGetDocument)
				r.Put("/", s.handleUpdateDocument)
				r.Delete("/", s.handleDeleteDocument)
				r.Get("/preview/{page}", s.handlePreview)
			})
		})
		r.Post("/layout", s.handleLayout)
		r.Post("/preview/{page}", s.handlePreviewInline)
	})
	s.router = r

	s.http = &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	return s
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start serves until the context is cancelled, then shuts down
// gracefully.
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("preview service listening", "addr", s.http.Addr)
		if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	s.logger.Info("shutting down preview service")
	return s.http.Shutdown(shutdownCtx)
}
