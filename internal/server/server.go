// Package server exposes a schedule session and the scan pipeline over HTTP.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"

	"github.com/jy-crnz/SchedulerDesigner/internal/scan"
	"github.com/jy-crnz/SchedulerDesigner/internal/session"
)

// Scanner extracts classes from an uploaded image.
type Scanner interface {
	Scan(ctx context.Context, data []byte) (scan.Response, error)
}

// Config holds server configuration.
type Config struct {
	Addr           string
	AllowedOrigins []string
	MaxUploadBytes int64
	// Themes lists the accepted theme names. Empty accepts any.
	Themes []string
}

// Server serves the schedule API.
type Server struct {
	cfg      Config
	sess     *session.Session
	scanner  Scanner
	log      *slog.Logger
	validate *validator.Validate
	router   chi.Router
}

// New builds a server for sess. scanner may be nil, in which case the scan
// endpoint answers 503.
func New(cfg Config, sess *session.Session, scanner Scanner, log *slog.Logger) *Server {
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 10 << 20
	}
	if log == nil {
		log = slog.Default()
	}
	s := &Server{
		cfg:      cfg,
		sess:     sess,
		scanner:  scanner,
		log:      log,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(requestID)
	r.Use(s.logRequests)
	r.Use(s.cors)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Post(scan.ScanPath, s.handleScan)

	r.Route("/api", func(r chi.Router) {
		r.Get("/grid", s.handleGetGrid)
		r.Put("/cells/{key}", s.handlePlace)
		r.Delete("/cells/{key}", s.handleDelete)
		r.Post("/cells/{key}/star", s.handleStar)
		r.Post("/move", s.handleMove)
		r.Post("/copy", s.handleCopy)
		r.Put("/layout", s.handleLayout)
		r.Post("/clear", s.handleClear)
		r.Put("/header", s.handleHeader)
		r.Post("/reconcile", s.handleReconcile)
		r.Get("/ws", s.handleWS)
	})
	return r
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("server listening", "addr", s.cfg.Addr, "profile", s.sess.Profile())
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	s.log.Info("server stopped")
	return nil
}
