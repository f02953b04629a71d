package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/cmlabs-hris/factory-attendance-go/internal/config"
	"github.com/cmlabs-hris/factory-attendance-go/internal/pkg/database"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Error loading config", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()
	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL())
	if err != nil {
		slog.Error("Error connecting to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	applied, err := database.Migrate(ctx, db, database.Migrations)
	if err != nil {
		slog.Error("Migration failed", "error", err, "applied", applied)
		os.Exit(1)
	}
	slog.Info("Database is up to date", "applied", applied)
}
