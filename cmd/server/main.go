package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BerylCAtieno/stratyx-planner/internal/a2a"
	"github.com/BerylCAtieno/stratyx-planner/internal/api"
	"github.com/BerylCAtieno/stratyx-planner/internal/config"
	"github.com/BerylCAtieno/stratyx-planner/internal/logging"
	"github.com/BerylCAtieno/stratyx-planner/internal/planner"
	"github.com/BerylCAtieno/stratyx-planner/internal/store"
	"github.com/BerylCAtieno/stratyx-planner/internal/store/local"
	"github.com/BerylCAtieno/stratyx-planner/internal/store/sqlite"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("stratyx planner: %v", err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogDev)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	backend, closeBackend, err := openBackend(cfg)
	if err != nil {
		logger.Errorw("failed to open project store", "backend", cfg.StoreBackend, "error", err)
		return err
	}
	defer closeBackend()

	// Initialize Gemini client
	geminiClient, err := planner.NewGeminiClient(cfg.GeminiAPIKey, cfg.GeminiModel, logger)
	if err != nil {
		logger.Errorw("failed to create Gemini client", "error", err)
		return err
	}
	defer geminiClient.Close()

	if !cfg.LogDev {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery(), logging.RequestLogger(logger))

	a2aHandler := a2a.NewA2AHandler(geminiClient, logger)
	router.GET("/.well-known/agent.json", a2aHandler.ServeAgentCard)
	router.POST("/a2a/planner", a2aHandler.HandlePlanner)

	api.NewHandler(backend, geminiClient, logger).Register(router)

	router.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		// plan generation can take most of a minute
		WriteTimeout: 3 * time.Minute,
		IdleTimeout:  2 * time.Minute,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Infow("STRATYX planner starting", "port", cfg.Port, "store", cfg.StoreBackend, "model", cfg.GeminiModel)
	logger.Infof("Agent card available at: http://localhost:%s/.well-known/agent.json", cfg.Port)
	logger.Infof("A2A endpoint available at: http://localhost:%s/a2a/planner", cfg.Port)
	return serve(ctx, srv, logger)
}

// serve runs srv until ctx is done or the listener fails. A failed listener is
// returned so the caller's deferred cleanup still runs.
func serve(ctx context.Context, srv *http.Server, logger *zap.SugaredLogger) error {
	errc := make(chan error, 1)
	go func() {
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		logger.Errorw("server failed", "error", err)
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorw("graceful shutdown failed", "error", err)
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serve: %w", err)
	}
	return nil
}

// openBackend builds the configured store and a func that releases it.
func openBackend(cfg config.Config) (store.Store, func(), error) {
	switch cfg.StoreBackend {
	case config.BackendSQLite:
		if err := os.MkdirAll(filepath.Dir(cfg.DatabasePath), 0o755); err != nil {
			return nil, nil, fmt.Errorf("create database dir: %w", err)
		}
		db, err := sqlite.Open(cfg.DatabasePath)
		if err != nil {
			return nil, nil, err
		}
		return db, func() { _ = db.Close() }, nil
	case config.BackendLocal:
		s, err := local.New(cfg.DataDir)
		if err != nil {
			return nil, nil, err
		}
		return s, func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}
}
