package main

import (
	"fmt"
	"log/slog"

	"github.com/phrazzld/forget/internal/config"
)

// loadAppConfig loads the application configuration from environment
// variables or config file.
func loadAppConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	slog.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"workers", cfg.Dispatcher.Workers,
		"queue_size", cfg.Dispatcher.QueueSize)

	if cfg.Database.URL != "" {
		slog.Debug("Database configuration", "url_present", true, "record_faults", cfg.Database.RecordFaults)
	}

	return cfg, nil
}
