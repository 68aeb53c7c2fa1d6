// Package ui provides the HTTP server for the shared pin list.
package ui

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/sessions"
	"golang.org/x/sync/errgroup"

	"github.com/leapstack-labs/pins/internal/actor"
	"github.com/leapstack-labs/pins/internal/metadata"
	"github.com/leapstack-labs/pins/internal/permission"
	"github.com/leapstack-labs/pins/internal/ui/router"
	"github.com/leapstack-labs/pins/pkg/core"
)

// Server is the pins HTTP server.
type Server struct {
	store        core.PinStore
	evaluator    permission.Evaluator
	lookup       metadata.Lookup
	sessionStore *sessions.CookieStore
	verifier     *actor.Verifier
	port         int
	basePath     string
	logger       *slog.Logger
}

// Config holds configuration for the server.
type Config struct {
	Store         core.PinStore
	Evaluator     permission.Evaluator
	Lookup        metadata.Lookup
	Port          int
	BasePath      string
	SessionSecret string
	// JWTSecret enables bearer-token actors when set.
	JWTSecret string
	Logger    *slog.Logger
}

// NewServer creates a new server instance.
func NewServer(cfg Config) (*Server, error) {
	if cfg.Store == nil {
		return nil, fmt.Errorf("store is required")
	}
	if cfg.Evaluator == nil {
		return nil, fmt.Errorf("permission evaluator is required")
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.DiscardHandler)
	}

	sessionStore := sessions.NewCookieStore([]byte(cfg.SessionSecret))
	sessionStore.MaxAge(86400 * 30) // 30 days
	sessionStore.Options.Path = "/"
	sessionStore.Options.HttpOnly = true
	sessionStore.Options.SameSite = http.SameSiteLaxMode

	var verifier *actor.Verifier
	if cfg.JWTSecret != "" {
		v, err := actor.NewVerifier([]byte(cfg.JWTSecret))
		if err != nil {
			return nil, fmt.Errorf("invalid jwt secret: %w", err)
		}
		verifier = v
	}

	return &Server{
		store:        cfg.Store,
		evaluator:    cfg.Evaluator,
		lookup:       cfg.Lookup,
		sessionStore: sessionStore,
		verifier:     verifier,
		port:         cfg.Port,
		basePath:     cfg.BasePath,
		logger:       cfg.Logger,
	}, nil
}

// Handler builds the full HTTP handler.
func (s *Server) Handler() (http.Handler, error) {
	r := chi.NewMux()
	r.Use(
		middleware.RequestID,
		middleware.RequestLogger(newAccessLogFormatter(s.logger)),
		middleware.Recoverer,
		middleware.Compress(5),
	)

	deps := router.Deps{
		Store:     s.store,
		Evaluator: s.evaluator,
		Lookup:    s.lookup,
		Resolver:  actor.NewResolver(s.sessionStore, s.verifier, s.logger),
		BasePath:  s.basePath,
		Logger:    s.logger,
	}
	if err := router.SetupRoutes(r, deps); err != nil {
		return nil, fmt.Errorf("failed to setup routes: %w", err)
	}

	if s.basePath != "" {
		r.Get("/", func(w http.ResponseWriter, req *http.Request) {
			http.Redirect(w, req, s.basePath+"/", http.StatusFound)
		})
	}
	return r, nil
}

// Serve starts the server and blocks until the context is cancelled.
func (s *Server) Serve(ctx context.Context) error {
	addr := fmt.Sprintf(":%d", s.port)
	s.logger.Info("starting pins server", "addr", fmt.Sprintf("http://localhost:%d%s/", s.port, s.basePath))

	handler, err := s.Handler()
	if err != nil {
		return err
	}

	eg, egctx := errgroup.WithContext(ctx)

	srv := &http.Server{
		Addr:    addr,
		Handler: handler,
		BaseContext: func(_ net.Listener) context.Context {
			return egctx
		},
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Start HTTP server
	eg.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	// Graceful shutdown
	eg.Go(func() error {
		<-egctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Debug("shutting down pins server...")
		return srv.Shutdown(shutdownCtx)
	})

	return eg.Wait()
}
