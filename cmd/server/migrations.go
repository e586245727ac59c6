package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/phrazzld/forget/internal/config"
	"github.com/phrazzld/forget/internal/platform/postgres"
)

// handleMigrations runs a goose command against the configured database.
func handleMigrations(cfg *config.Config, migrateCmd string, logger *slog.Logger) error {
	switch migrateCmd {
	case postgres.MigrateUp, postgres.MigrateDown, postgres.MigrateStatus, postgres.MigrateVersion:
	default:
		return fmt.Errorf("unknown migration command %q (want up, down, status or version)", migrateCmd)
	}

	logger.Info("Executing migrations", "command", migrateCmd)

	db, err := openDatabase(context.Background(), cfg.Database.URL, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("Error closing database connection", "error", err)
		}
	}()

	return postgres.Migrate(db, migrateCmd, logger)
}
