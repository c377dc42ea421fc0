// Package local implements the record stores on top of a single SQLite file
// used as durable key-value storage. Each record kind lives under one
// well-known key as a full JSON array; every mutation re-reads the array,
// mutates it in memory and writes it back whole. There is no push mechanism:
// subscriptions are documented no-ops.
package local

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math/rand/v2"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

const (
	keyProfiles  = "holidaygo/profiles"
	keyVacations = "holidaygo/vacations"
)

const schema = `
CREATE TABLE IF NOT EXISTS kv (
    key   TEXT PRIMARY KEY,
    value TEXT NOT NULL
);
`

// DB is the shared SQLite handle behind both local stores.
// mu serializes every read-modify-write cycle; with it held, the
// check-then-insert uniqueness checks cannot race.
type DB struct {
	sql *sql.DB
	mu  sync.Mutex

	// Injection points for tests.
	now   func() time.Time
	newID func() string
}

// Open opens (or creates) the SQLite file at path, applies the schema and
// configures WAL mode for better concurrent read performance.
func Open(path string) (*DB, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("create local store directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("open local store %q: %w", path, err)
	}

	// Single writer to avoid SQLITE_BUSY under WAL.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply local store schema: %w", err)
	}

	return &DB{
		sql:   db,
		now:   func() time.Time { return time.Now().UTC() },
		newID: GenerateID,
	}, nil
}

// Close releases the underlying database handle.
func (d *DB) Close() error {
	return d.sql.Close()
}

// get returns the raw JSON stored under key, or ok=false when the key has
// never been written.
func (d *DB) get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := d.sql.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("read %s: %w", key, err)
	}
	return value, true, nil
}

// put writes the full JSON value under key, replacing any previous value.
func (d *DB) put(ctx context.Context, key, value string) error {
	_, err := d.sql.ExecContext(ctx,
		`INSERT INTO kv (key, value) VALUES (?, ?)
		 ON CONFLICT (key) DO UPDATE SET value = excluded.value`, key, value)
	if err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

const idAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// GenerateID produces a locally unique record id: a fixed prefix, the current
// timestamp in milliseconds and a short random suffix. Good enough to avoid
// collisions within one installation; not globally unique.
func GenerateID() string {
	suffix := make([]byte, 7)
	for i := range suffix {
		suffix[i] = idAlphabet[rand.IntN(len(idAlphabet))]
	}
	return fmt.Sprintf("local-%d-%s", time.Now().UnixMilli(), suffix)
}
