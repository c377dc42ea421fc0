package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/OlosLive/holidayGo/internal/domain"
)

// Notification channels written by the notify_row_change trigger
// (see migrations). One channel per table.
const (
	ProfilesChannel  = "profiles_changes"
	VacationsChannel = "vacations_changes"
)

// envelope is the JSON payload produced by the notify_row_change trigger:
// the operation tag and the affected row (NEW, or OLD for deletes).
type envelope struct {
	Op  domain.EventType `json:"op"`
	Row json.RawMessage  `json:"row"`
}

// Listen opens a change feed on the given notification channel. It pins a
// dedicated connection from the pool, issues LISTEN, and invokes handle for
// every decoded payload from a background goroutine until the returned
// unsubscribe function is called.
//
// The unsubscribe function tears the feed down exactly once and is safe to
// call repeatedly or after the consumer is already gone. Malformed payloads
// are logged and skipped; they never stop the feed.
func Listen(pool *pgxpool.Pool, channel string, handle func(op domain.EventType, row json.RawMessage)) (func(), error) {
	ctx, cancel := context.WithCancel(context.Background())

	conn, err := pool.Acquire(ctx)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("acquire listen connection: %w", err)
	}

	if _, err := conn.Exec(ctx, "LISTEN "+pgx.Identifier{channel}.Sanitize()); err != nil {
		conn.Release()
		cancel()
		return nil, fmt.Errorf("listen on %s: %w", channel, err)
	}

	go func() {
		defer conn.Release()
		for {
			n, err := conn.Conn().WaitForNotification(ctx)
			if err != nil {
				// Canceled by unsubscribe, or the connection died.
				// Either way the feed is over.
				if ctx.Err() == nil {
					slog.Warn("change feed terminated",
						slog.String("channel", channel), slog.String("error", err.Error()))
				}
				return
			}

			var env envelope
			if err := json.Unmarshal([]byte(n.Payload), &env); err != nil {
				slog.Warn("malformed change notification",
					slog.String("channel", channel), slog.String("error", err.Error()))
				continue
			}
			handle(env.Op, env.Row)
		}
	}()

	var once sync.Once
	return func() {
		once.Do(cancel)
	}, nil
}
