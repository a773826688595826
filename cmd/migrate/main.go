package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"os"

	_ "github.com/lib/pq"
	"github.com/pageza/mise/backend/config"
	"github.com/pageza/mise/backend/internal/database"
	"github.com/pageza/mise/backend/internal/logging"
	"go.uber.org/zap"
)

func main() {
	rollback := flag.Bool("rollback", false, "Rollback the last migration")
	dir := flag.String("dir", "migrations", "Directory holding the SQL migration files")
	flag.Parse()

	logger := logging.New(logging.Config{Level: "info", Format: "console"})
	defer func() { _ = logger.Sync() }()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		cfg, err := config.LoadConfig()
		if err != nil {
			logger.Fatal("failed to load config", zap.Error(err))
		}
		if cfg.Database.Driver != "postgres" {
			logger.Fatal("SQL migrations require postgres; sqlite databases are migrated on startup",
				zap.String("driver", cfg.Database.Driver))
		}
		dsn = cfg.Database.DSN()
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	ctx := context.Background()
	migrator := database.NewMigrator(db, *dir, logger)

	if *rollback {
		name, err := migrator.RollbackLast(ctx)
		if errors.Is(err, database.ErrNoMigrations) {
			logger.Info("no migrations to roll back")
			return
		}
		if err != nil {
			logger.Fatal("rollback failed", zap.Error(err))
		}
		logger.Info("rollback complete", zap.String("migration", name))
		return
	}

	applied, err := migrator.Up(ctx)
	if err != nil {
		logger.Fatal("migration failed", zap.Error(err), zap.Strings("applied", applied))
	}
	logger.Info("migrations complete", zap.Int("applied", len(applied)))
}
