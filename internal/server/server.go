// Package server implements the kallax HTTP API.
//
// Routes:
//
//	GET  /healthz
//	GET  /api/collection/{username}             normalized BGG collection
//	POST /api/pack                              run the pipeline
//	GET  /api/results/{owner}/latest            last stored result
//	GET  /api/results/{owner}/latest/{format}   last stored result rendered
//
// Errors are JSON objects {"error": {"code": ..., "message": ...}} with the
// HTTP status derived from the error code.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/singleflight"

	"github.com/matzehuels/kallax/pkg/pipeline"
	"github.com/matzehuels/kallax/pkg/storage"
)

// DefaultMaxBodyBytes caps request bodies. A large collection with full
// metadata is a few megabytes.
const DefaultMaxBodyBytes = 16 << 20

// Options tunes a [Server].
type Options struct {
	// MaxItems caps the items one pack request may carry. Zero means no cap.
	MaxItems int

	// RequestTimeout bounds each pipeline run. Zero means no timeout.
	RequestTimeout time.Duration
}

// Server serves the API. Create it with [New].
type Server struct {
	runner *pipeline.Runner
	store  storage.Store
	logger *log.Logger
	opts   Options

	// packs collapses identical concurrent pack requests into one run.
	packs singleflight.Group
	now   func() time.Time
}

// New creates a server. A nil store keeps results in memory.
func New(runner *pipeline.Runner, store storage.Store, logger *log.Logger, opts Options) *Server {
	if store == nil {
		store = storage.NewMemoryStore()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Server{
		runner: runner,
		store:  store,
		logger: logger.WithPrefix("http"),
		opts:   opts,
		now:    time.Now,
	}
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.healthCheck)

	r.Route("/api", func(r chi.Router) {
		r.Get("/collection/{username}", s.getCollection)
		r.Post("/pack", s.postPack)
		r.Get("/results/{owner}/latest", s.getLatest)
		r.Get("/results/{owner}/latest/{format}", s.getLatestArtifact)
	})

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		respondError(w, http.StatusNotFound, "NOT_FOUND", "no such route")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		respondError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "method not allowed")
	})
	return r
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully within shutdownTimeout.
func (s *Server) ListenAndServe(ctx context.Context, addr string, readTimeout, writeTimeout, shutdownTimeout time.Duration) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.Handler(),
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return s.store.Close(shutdownCtx)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"id", middleware.GetReqID(r.Context()))
	})
}
