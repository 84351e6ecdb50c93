package main

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/legalforensics/leadcapture/internal/config"
	"github.com/legalforensics/leadcapture/internal/server"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if cfg.HunterAPIKey == "" {
		logger.Warn("HUNTER_API_KEY is not set, verification endpoints will return configuration errors")
	}
	if cfg.AdminSecret == "" {
		logger.Warn("ADMIN_SECRET is not set, admin endpoints are unprotected")
	}

	if dir := filepath.Dir(cfg.DBPath); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			logger.Error("failed to create data directory",
				slog.String("dir", dir),
				slog.String("error", err.Error()),
			)
			os.Exit(1)
		}
	}

	srv, err := server.New(cfg, logger)
	if err != nil {
		logger.Error("failed to initialize server", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err := srv.Start(); err != nil {
		logger.Error("server failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
