// Command migrate applies or rolls back the pipeline_runs audit-log schema.
package main

import (
	"flag"
	"log"

	migrate "github.com/rubenv/sql-migrate"
	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-insights/internal/infrastructure/database"
	"github.com/johnquangdev/meeting-insights/pkg/config"
)

func main() {
	down := flag.Bool("down", false, "roll back instead of applying")
	flag.Parse()

	cfg, err := config.LoadUnvalidated()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	db, err := database.NewPostgresDB(cfg, logger)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer func() { _ = database.CloseDB(db) }()

	dir := migrate.Up
	if *down {
		dir = migrate.Down
	}
	n, err := database.Migrate(db, dir)
	if err != nil {
		logger.Fatal("migration failed", zap.Error(err))
	}
	logger.Info("migrations applied", zap.Int("count", n), zap.Bool("down", *down))
}
