// cmd/migrate/main.go
package main

import (
	"context"
	"os"
	"time"

	"cashless-wallet/internal/config"
	"cashless-wallet/internal/util"
	"cashless-wallet/pkg/db"
)

// Applies the idempotent schema to the configured database. Safe to run
// repeatedly; existing tables and indexes are left alone.
func main() {
	util.InitLogger()
	logger := util.GetLogger()

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	database, err := db.NewPostgresDB(cfg.DB)
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer database.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if _, err := database.ExecContext(ctx, db.Schema); err != nil {
		logger.Error("Migration failed", "error", err)
		os.Exit(1)
	}

	logger.Info("Schema applied successfully.", "database", cfg.DB.DBName)
}
