package server

import (
	"context"
	"errors"
	"net/http"

	"task_tracker/internal/config"
)

const maxHeaderBytes = 1 << 20 // 1 MB

// Server wraps an *http.Server to provide start/shutdown lifecycle.
type Server struct {
	httpServer *http.Server
}

// New builds the server up front so Shutdown is safe to call from another goroutine at any time.
func New(cfg config.ServerConfig, handler http.Handler) *Server {
	return &Server{httpServer: newHTTPServer(cfg, handler)}
}

// newHTTPServer builds a configured *http.Server from the server section of the config.
func newHTTPServer(cfg config.ServerConfig, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              cfg.Addr(),
		Handler:           handler,
		MaxHeaderBytes:    maxHeaderBytes,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
	}
}

// Run starts the HTTP server and blocks until it stops.
// A graceful Shutdown, even one issued before Run, is not reported as an error.
func (s *Server) Run() error {
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully stops the server, allowing in-flight requests to complete.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
