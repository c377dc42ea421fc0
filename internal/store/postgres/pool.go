// Package postgres holds the shared plumbing of the PostgreSQL record stores:
// pool construction, error mapping and the LISTEN/NOTIFY change feed.
package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/OlosLive/holidayGo/internal/config"
)

// NewPool creates a PostgreSQL connection pool for the given DSN, applying
// the shared pool settings from DatabaseConfig. It pings the database for
// fail-fast validation and returns the ready pool.
//
// The same settings serve both the read pool (viewer-scoped DSN) and the
// write pool (elevated DSN), which is why the DSN is a separate argument.
func NewPool(ctx context.Context, cfg config.DatabaseConfig, dsn string) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse database DSN: %w", err)
	}

	poolCfg.MaxConns = cfg.MaxConns
	poolCfg.MinConns = cfg.MinConns
	poolCfg.MaxConnLifetime = cfg.MaxConnLifetime
	poolCfg.MaxConnIdleTime = cfg.MaxConnIdleTime

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return pool, nil
}
