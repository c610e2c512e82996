package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/RitAreaSciencePark/ExO/internal/app"
	"github.com/RitAreaSciencePark/ExO/internal/platform/config"
	"github.com/RitAreaSciencePark/ExO/internal/platform/logging"
	"github.com/RitAreaSciencePark/ExO/internal/server"
	"github.com/RitAreaSciencePark/ExO/internal/storage"
	"github.com/jonboulle/clockwork"
)

func runGracefulShutdown(srv *server.Server) <-chan struct{} {
	done := make(chan struct{})
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		slog.Info("Shutdown signal received, cleaning up...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("Server shutdown error", "error", err)
		}

		close(done)
	}()

	return done
}

func setupConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		// Use log before slog is initialized
		log.Fatalf("Failed to load config: %v", err)
	}
	return cfg
}

func main() {
	clock := clockwork.NewRealClock()

	cfg := setupConfig()

	// Initialize structured logging
	logging.InitLogger(cfg.LogLevel, cfg.LogFormat)
	slog.Info("Application starting", "env", cfg.AppEnv, "port", cfg.Port)

	assets, err := storage.NewFilesystemAssetStore(cfg.ImagesDir)
	if err != nil {
		slog.Error("Failed to open image pool", "error", err)
		os.Exit(1)
	}

	choiceLog, err := storage.NewCSVChoiceLog(cfg.DataDir, clock)
	if err != nil {
		slog.Error("Failed to open choice log", "error", err)
		os.Exit(1)
	}

	appSvc := app.NewService(assets, choiceLog)

	srv, err := server.NewServer(cfg, appSvc, clock)
	if err != nil {
		slog.Error("Failed to create server", "error", err)
		os.Exit(1)
	}

	done := runGracefulShutdown(srv)

	if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Server error", "error", err)
		os.Exit(1)
	}

	<-done
	slog.Info("Shutdown complete")
}
