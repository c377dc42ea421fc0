package store

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/OlosLive/holidayGo/internal/config"
	"github.com/OlosLive/holidayGo/internal/store/local"
	"github.com/OlosLive/holidayGo/internal/store/postgres"
	pgprofile "github.com/OlosLive/holidayGo/internal/store/postgres/profile"
	pgvacation "github.com/OlosLive/holidayGo/internal/store/postgres/vacation"
)

// Process-wide singletons. The backend flag is read from cfg on the first
// access and never re-evaluated; both stores always come from the same
// backend and share the underlying connections.
var reg struct {
	mu        sync.Mutex
	profiles  ProfileStore
	vacations VacationStore
}

// Profiles returns the process-wide profile store, constructing both stores
// on first use according to cfg.Store.Backend.
func Profiles(ctx context.Context, cfg *config.Config, log *slog.Logger) (ProfileStore, error) {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	if reg.profiles == nil {
		if err := build(ctx, cfg, log); err != nil {
			return nil, err
		}
	}
	return reg.profiles, nil
}

// Vacations returns the process-wide vacation store, constructing both stores
// on first use according to cfg.Store.Backend.
func Vacations(ctx context.Context, cfg *config.Config, log *slog.Logger) (VacationStore, error) {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	if reg.vacations == nil {
		if err := build(ctx, cfg, log); err != nil {
			return nil, err
		}
	}
	return reg.vacations, nil
}

// Reset clears both singleton slots. Intended for test isolation only:
// views constructed before a Reset keep their old store references until
// they are rebuilt through the factory.
func Reset() {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	reg.profiles = nil
	reg.vacations = nil
}

// build constructs both stores under reg.mu.
func build(ctx context.Context, cfg *config.Config, log *slog.Logger) error {
	switch cfg.Store.Backend {
	case config.BackendPostgres:
		readPool, err := postgres.NewPool(ctx, cfg.Database, cfg.Database.DSN)
		if err != nil {
			return fmt.Errorf("store: connect read pool: %w", err)
		}

		writePool := readPool
		if cfg.Database.WriteDSN != "" && cfg.Database.WriteDSN != cfg.Database.DSN {
			writePool, err = postgres.NewPool(ctx, cfg.Database, cfg.Database.WriteDSN)
			if err != nil {
				return fmt.Errorf("store: connect write pool: %w", err)
			}
		}

		reg.profiles = pgprofile.New(readPool, writePool)
		reg.vacations = pgvacation.New(readPool, writePool)
		log.Info("store backend ready", slog.String("backend", config.BackendPostgres),
			slog.Bool("write_pool_split", writePool != readPool))

	case config.BackendLocal:
		db, err := local.Open(cfg.Store.LocalPath)
		if err != nil {
			return fmt.Errorf("store: open local db: %w", err)
		}
		reg.profiles = local.NewProfileStore(db)
		reg.vacations = local.NewVacationStore(db)
		log.Info("store backend ready", slog.String("backend", config.BackendLocal),
			slog.String("path", cfg.Store.LocalPath))

	default:
		return fmt.Errorf("store: unknown backend %q", cfg.Store.Backend)
	}

	return nil
}

// Compile-time backend conformance.
var (
	_ ProfileStore       = (*pgprofile.Repo)(nil)
	_ VacationStore      = (*pgvacation.Repo)(nil)
	_ ProfileSubscriber  = (*pgprofile.Repo)(nil)
	_ VacationSubscriber = (*pgvacation.Repo)(nil)
	_ ProfileStore       = (*local.ProfileStore)(nil)
	_ VacationStore      = (*local.VacationStore)(nil)
	_ ProfileSubscriber  = (*local.ProfileStore)(nil)
	_ VacationSubscriber = (*local.VacationStore)(nil)
)
