package app

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/Nikhil-S15/Employee-monitoring-system/internal/config"
	"github.com/Nikhil-S15/Employee-monitoring-system/internal/logger"
	"github.com/Nikhil-S15/Employee-monitoring-system/internal/repository/sqlite"
	"github.com/Nikhil-S15/Employee-monitoring-system/internal/routes"
	"github.com/Nikhil-S15/Employee-monitoring-system/internal/services"
	"github.com/Nikhil-S15/Employee-monitoring-system/internal/services/detection"
	"github.com/Nikhil-S15/Employee-monitoring-system/internal/services/storage"
	"github.com/Nikhil-S15/Employee-monitoring-system/internal/services/websocket"
)

type App struct {
	config  *config.Config
	logger  *logger.Logger
	db      *sqlite.DB
	repo    *sqlite.DetectionRepository
	hub     *websocket.HubService
	buffer  *storage.BufferService
	monitor *services.Monitor
}

func NewApp() (*App, error) {
	cfg := config.Load()
	log := logger.NewLogger(cfg)

	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}
	db, err := sqlite.New(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	repo := sqlite.NewDetectionRepository(db)

	hub := websocket.NewHubService(log)
	buffer := storage.NewBufferService(repo, cfg.BufferLimit, log)

	caps := detection.Probe(cfg, log)

	var locator detection.FaceLocator
	if caps.FaceLocator {
		haar, err := detection.NewHaarLocator(cfg.HaarCascadePath, log)
		if err != nil {
			log.Warning("Face locator unavailable: %v", err)
		} else {
			locator = haar
		}
	}
	cascade := detection.NewCascade(caps, cfg, log)

	sinks := []services.Sink{websocket.NewEventSink(hub), buffer}
	monitor := services.NewMonitor(cfg, caps, locator, cascade, sinks, log)

	return &App{
		config:  cfg,
		logger:  log,
		db:      db,
		repo:    repo,
		hub:     hub,
		buffer:  buffer,
		monitor: monitor,
	}, nil
}

// Run starts the background services and the HTTP server, then blocks
// until a termination signal arrives and shutdown completes.
func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go a.hub.Run(ctx)
	go a.buffer.Run(ctx, a.config.FlushInterval)

	router := routes.SetupRoutes(a.monitor, a.hub, a.repo, a.config, a.logger)
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", a.config.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("Employee monitoring server listening on :%d (mode=%s)",
			a.config.Port, a.monitor.Capabilities().Mode())
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	a.logger.Info("Shutting down...")
	a.monitor.StopAll()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("HTTP server shutdown error: %v", err)
	}

	if err := a.buffer.Flush(); err != nil {
		a.logger.Error("Failed to flush detection buffer: %v", err)
	}
	if err := a.db.Close(); err != nil {
		a.logger.Error("Failed to close database: %v", err)
	}

	a.logger.Info("Shutdown complete")
	return nil
}
