// Command seed inserts the demonstration dataset into the configured backend.
// Rows that already exist are skipped, so re-running is safe. The local
// backend seeds itself on first read; this command exists mainly to populate
// a PostgreSQL database for demos.
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/OlosLive/holidayGo/internal/app"
	"github.com/OlosLive/holidayGo/internal/config"
	"github.com/OlosLive/holidayGo/internal/domain"
	"github.com/OlosLive/holidayGo/internal/store"
	"github.com/OlosLive/holidayGo/internal/store/demo"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	logger := app.NewLogger(cfg.Log)

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("seed failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	profileStore, err := store.Profiles(ctx, cfg, logger)
	if err != nil {
		return err
	}
	vacationStore, err := store.Vacations(ctx, cfg, logger)
	if err != nil {
		return err
	}

	now := time.Now()

	var created, skipped int
	for _, p := range demo.Profiles(now) {
		if _, err := profileStore.Create(ctx, p); err != nil {
			if errors.Is(err, domain.ErrAlreadyExists) {
				skipped++
				continue
			}
			return err
		}
		created++
	}
	logger.Info("profiles seeded", slog.Int("created", created), slog.Int("skipped", skipped))

	vacations := demo.Vacations(now)
	inserted, err := vacationStore.CreateMany(ctx, vacations)
	if err != nil {
		return err
	}
	logger.Info("vacations seeded",
		slog.Int("created", len(inserted)),
		slog.Int("skipped", len(vacations)-len(inserted)),
	)
	return nil
}
