// Package server exposes the texbox pipeline over HTTP.
//
// # Routes
//
//	GET  /healthz   liveness and build information
//	GET  /render    render a formula from query parameters
//	POST /render    render a formula from a JSON pipeline.Options body
//	GET  /parse     dump the atom tree of a formula
//	POST /parse     same, from a JSON body
//
// A render request naming a single format is answered with the artifact
// itself and the matching Content-Type. Several formats are answered with
// a JSON object holding each artifact.
//
// Identical concurrent renders share one pipeline run. Errors are JSON
// objects carrying the texbox error code, mapped to an HTTP status.
package server

import (
	"context"
	stderrors "errors"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/singleflight"

	"github.com/matzehuels/texbox/internal/config"
	"github.com/matzehuels/texbox/pkg/pipeline"
)

// shutdownTimeout bounds graceful shutdown.
const shutdownTimeout = 10 * time.Second

// Server serves the pipeline over HTTP.
type Server struct {
	Runner *pipeline.Runner
	Config *config.Config
	Logger *log.Logger

	renders singleflight.Group
}

// New creates a server over runner. A nil cfg uses config.Default and a
// nil logger uses log.Default.
func New(runner *pipeline.Runner, cfg *config.Config, logger *log.Logger) *Server {
	if cfg == nil {
		cfg = config.Default()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Server{Runner: runner, Config: cfg, Logger: logger}
}

// Handler returns the routed handler with all middleware installed.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(s.requestID)
	r.Use(s.accessLog)
	r.Use(middleware.Recoverer)
	if t := s.Config.Server.Timeout; t > 0 {
		r.Use(middleware.Timeout(t))
	}

	r.Get("/healthz", s.handleHealth)
	r.Group(func(r chi.Router) {
		r.Use(s.limitBody)
		r.Get("/render", s.handleRender)
		r.Post("/render", s.handleRender)
		r.Get("/parse", s.handleParse)
		r.Post("/parse", s.handleParse)
	})
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		s.writeError(w, r, errNotFound(r.URL.Path))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		s.writeJSON(w, http.StatusMethodNotAllowed, errorResponse{
			Error: "method not allowed",
			Code:  "METHOD_NOT_ALLOWED",
		})
	})
	return r
}

// ListenAndServe serves on the configured address until ctx is done, then
// shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.Config.Server.Addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is done.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errc := make(chan error, 1)
	go func() {
		s.Logger.Info("listening", "addr", ln.Addr().String())
		errc <- srv.Serve(ln)
	}()

	select {
	case err := <-errc:
		if stderrors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.Logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; err != nil && !stderrors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
