// Package server wires the HTTP router, middleware and all route
// definitions, and owns startup/shutdown.
//
// This is the composition root: the store, limiter, verifier client,
// services and handlers are all constructed here and passed down
// explicitly. Nothing in the request path reaches for a global.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/legalforensics/leadcapture/internal/config"
	"github.com/legalforensics/leadcapture/internal/handler"
	"github.com/legalforensics/leadcapture/internal/limiter"
	"github.com/legalforensics/leadcapture/internal/middleware"
	boltRepo "github.com/legalforensics/leadcapture/internal/repository/bolt"
	"github.com/legalforensics/leadcapture/internal/service"
	"github.com/legalforensics/leadcapture/internal/verifier"
)

// cleanupInterval is how often the limiter's stale entries are swept. One
// sweep per window keeps the map bounded without measurable cost.
const cleanupInterval = time.Minute

// Server owns the router and the resources it must release on shutdown.
type Server struct {
	router  *chi.Mux
	config  config.Config
	logger  *slog.Logger
	db      *boltRepo.DB
	limiter *limiter.Limiter
}

// New assembles the dependency chain:
//
//	bolt.DB → UserRepository
//	verifier.Client + repository → UserService
//	UserService → UserHandler → routes
//
// The handler never touches the store, the service never touches HTTP.
func New(cfg config.Config, logger *slog.Logger) (*Server, error) {
	db, err := boltRepo.New(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Server{
		router:  chi.NewRouter(),
		config:  cfg,
		logger:  logger,
		db:      db,
		limiter: limiter.New(cfg.RateLimitRequests, cfg.RateLimitWindow),
	}

	s.setupRoutes()
	return s, nil
}

func (s *Server) setupRoutes() {
	// Global middleware, in order: request ID and real IP first so the
	// logger and limiter see them, panic recovery before anything that
	// could blow up, CORS on absolutely everything (the 404 included).
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(middleware.Logger(s.logger))
	s.router.Use(middleware.CORS)

	hunter := verifier.New(s.config.HunterBaseURL, s.config.HunterAPIKey, s.logger)
	users := service.NewUserService(s.db, hunter, s.logger)
	userHandler := handler.NewUserHandler(users, s.logger)
	analyzeHandler := handler.NewAnalyzeHandler(s.logger)

	requireAdmin := middleware.RequireAdmin(s.config.AdminSecret)

	s.router.Route("/api", func(r chi.Router) {
		// Endpoints that spend Hunter.io quota or write the store are
		// rate limited; reads are not.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RateLimit(s.limiter, s.logger))
			r.Post("/verify-email", userHandler.HandleVerifyEmail)
			r.Post("/register", userHandler.HandleRegister)
		})

		r.Get("/users", userHandler.HandleList)
		r.Post("/analyze", analyzeHandler.HandleAnalyze)

		r.Group(func(r chi.Router) {
			r.Use(requireAdmin)
			r.Get("/download-csv", userHandler.HandleDownloadCSV)
			r.Delete("/users/{id}", userHandler.HandleDelete)
		})
	})

	s.router.NotFound(handler.HandleNotFound)
	s.router.MethodNotAllowed(handler.HandleNotFound)
}

// Start runs the HTTP server until SIGINT/SIGTERM, then shuts down
// gracefully: stop accepting connections, drain in-flight requests (30s),
// stop the limiter sweep, close the store.
func (s *Server) Start() error {
	defer s.db.Close()

	// Limiter cleanup runs for the server's lifetime.
	cleanupCtx, stopCleanup := context.WithCancel(context.Background())
	defer stopCleanup()
	go s.limiter.Run(cleanupCtx, cleanupInterval, s.logger)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.config.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("server starting",
			slog.Int("port", s.config.Port),
			slog.String("database", s.config.DBPath),
			slog.Int("rateLimitRequests", s.config.RateLimitRequests),
			slog.Duration("rateLimitWindow", s.config.RateLimitWindow),
		)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}

	case sig := <-quit:
		s.logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		s.logger.Info("server stopped gracefully")
	}

	return nil
}
