// Package web serves the interactive browser UI: parameter inputs, torque cards,
// coordinates table and the arm figure, with one view session per browser.
package web

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/udisondev/armsim/internal/config"
	"github.com/udisondev/armsim/internal/view"
)

const shutdownTimeout = 5 * time.Second

//go:embed templates/*.html
var templates embed.FS

// ServerOption is a functional option for Server configuration.
type ServerOption func(*Server)

// WithSessionManager sets a custom SessionManager (useful for testing with shared SessionManager).
func WithSessionManager(sm *view.SessionManager) ServerOption {
	return func(s *Server) {
		s.sessions = sm
	}
}

// WithPalette overrides the drawing colors.
func WithPalette(p view.Palette) ServerOption {
	return func(s *Server) {
		s.palette = p
	}
}

// Server is the HTTP front end of the simulator.
type Server struct {
	cfg      config.Armsim
	sessions *view.SessionManager
	palette  view.Palette
	page     *template.Template
	handler  http.Handler

	listener net.Listener
	mu       sync.Mutex
}

// NewServer creates a Server. Sessions start from cfg.Arm.
func NewServer(cfg config.Armsim, opts ...ServerOption) (*Server, error) {
	s := &Server{
		cfg:      cfg,
		sessions: view.NewSessionManager(cfg),
		palette:  view.DefaultPalette(),
	}

	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}

	page, err := template.ParseFS(templates, "templates/index.html")
	if err != nil {
		return nil, fmt.Errorf("parsing page template: %w", err)
	}
	s.page = page
	s.handler = s.routes()

	return s, nil
}

// Handler returns the HTTP handler, for use without a listener (httptest).
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Sessions returns the session manager.
func (s *Server) Sessions() *view.SessionManager {
	return s.sessions
}

// Addr returns the listening address, or nil before Serve.
func (s *Server) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// Close closes the listener, which stops Serve.
func (s *Server) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener != nil {
		return s.listener.Close()
	}
	return nil
}

// Run listens on cfg.Server and serves until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	addr := s.cfg.Server.Addr()
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", addr, err)
	}

	return s.Serve(ctx, ln)
}

// Serve serves HTTP on ln until ctx is cancelled or ln is closed.
// Alongside the HTTP server it runs the idle-session expiry loop.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	s.mu.Lock()
	s.listener = ln
	s.mu.Unlock()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	srv := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer cancel()
		slog.Info("web server started", "address", ln.Addr())
		err := srv.Serve(ln)
		if errors.Is(err, http.ErrServerClosed) || errors.Is(err, net.ErrClosed) {
			return nil
		}
		return fmt.Errorf("serving http: %w", err)
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancelShutdown()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutting down http: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		s.expireLoop(gctx)
		return nil
	})

	err := g.Wait()
	slog.Info("web server stopped", "address", ln.Addr())
	return err
}

// expireLoop removes sessions idle for longer than the configured TTL.
func (s *Server) expireLoop(ctx context.Context) {
	ticker := time.NewTicker(s.cfg.Server.CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.sessions.CleanExpired(s.cfg.Server.SessionTTL); n > 0 {
				slog.Debug("expired sessions removed", "count", n, "active", s.sessions.Count())
			}
		}
	}
}
