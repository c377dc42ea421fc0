// Command migrate applies goose migrations to the configured PostgreSQL
// database.
//
// Usage:
//
//	migrate [up|down|status|version]
//
// The migrations directory defaults to ./migrations and can be overridden
// with --dir. Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"database/sql"
	"flag"
	"log"
	"log/slog"
	"os"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver for database/sql
	"github.com/pressly/goose/v3"

	"github.com/OlosLive/holidayGo/internal/app"
	"github.com/OlosLive/holidayGo/internal/config"
)

func main() {
	dirFlag := flag.String("dir", "migrations", "path to the migrations directory")
	flag.Parse()

	command := flag.Arg(0)
	if command == "" {
		command = "up"
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	logger := app.NewLogger(cfg.Log)

	if cfg.Database.DSN == "" {
		logger.Error("DATABASE_DSN is required for migrations")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	db, err := sql.Open("pgx", cfg.Database.DSN)
	if err != nil {
		logger.Error("open database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		logger.Error("ping database", slog.String("error", err.Error()))
		os.Exit(1)
	}

	provider, err := goose.NewProvider(goose.DialectPostgres, db, os.DirFS(*dirFlag))
	if err != nil {
		logger.Error("create goose provider", slog.String("error", err.Error()))
		os.Exit(1)
	}

	switch command {
	case "up":
		results, err := provider.Up(ctx)
		if err != nil {
			logger.Error("goose up", slog.String("error", err.Error()))
			os.Exit(1)
		}
		for _, r := range results {
			logger.Info("applied migration", slog.String("source", r.Source.Path))
		}

	case "down":
		result, err := provider.Down(ctx)
		if err != nil {
			logger.Error("goose down", slog.String("error", err.Error()))
			os.Exit(1)
		}
		logger.Info("rolled back migration", slog.String("source", result.Source.Path))

	case "status":
		statuses, err := provider.Status(ctx)
		if err != nil {
			logger.Error("goose status", slog.String("error", err.Error()))
			os.Exit(1)
		}
		for _, s := range statuses {
			state := "pending"
			if !s.AppliedAt.IsZero() {
				state = s.AppliedAt.Format(time.RFC3339)
			}
			logger.Info("migration status",
				slog.String("source", s.Source.Path),
				slog.String("applied", state),
			)
		}

	case "version":
		version, err := provider.GetDBVersion(ctx)
		if err != nil {
			logger.Error("goose version", slog.String("error", err.Error()))
			os.Exit(1)
		}
		logger.Info("database version", slog.Int64("version", version))

	default:
		logger.Error("unknown command", slog.String("command", command))
		os.Exit(1)
	}
}
