// Package view owns the in-memory mirrors that keep dashboard state in sync
// with a record store. Each mirror is independently owned: two mounted views
// over the same store can diverge until both refresh or both receive the same
// push events.
package view

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"

	"github.com/OlosLive/holidayGo/internal/domain"
	"github.com/OlosLive/holidayGo/internal/store"
	"github.com/OlosLive/holidayGo/pkg/ctxutil"
)

// Profiles mirrors the profile collection of a store. The mirror is always
// sorted by name ascending. Mutations from the direct-call path and from the
// push feed both go through apply, which upserts by id with last-write-wins
// on UpdatedAt so duplicate or out-of-order delivery self-heals.
type Profiles struct {
	store store.ProfileStore
	log   *slog.Logger

	mu      sync.Mutex
	records []domain.Profile
	loading bool
	err     error
	version uint64

	unsubscribe func()
}

// NewProfiles creates a profile view in its initial loading state.
func NewProfiles(log *slog.Logger, st store.ProfileStore) *Profiles {
	return &Profiles{
		store:   st,
		log:     log.With("view", "profiles"),
		loading: true,
	}
}

// Load performs the initial full fetch and leaves the loading state.
// On failure the mirror stays as it was (empty at mount) and the error is
// recorded.
func (p *Profiles) Load(ctx context.Context) error {
	err := p.refresh(ctx)
	p.mu.Lock()
	p.loading = false
	p.mu.Unlock()
	return err
}

// Refresh replaces the mirror with a fresh full read. On failure the
// last-known-good mirror is preserved and the error is recorded.
func (p *Profiles) Refresh(ctx context.Context) error {
	return p.refresh(ctx)
}

func (p *Profiles) refresh(ctx context.Context) error {
	records, err := p.store.FetchAll(ctx)

	p.mu.Lock()
	defer p.mu.Unlock()
	if err != nil {
		p.err = err
		p.log.WarnContext(ctx, "profile refresh failed", slog.String("error", err.Error()))
		return fmt.Errorf("fetch profiles: %w", err)
	}
	p.records = records
	p.err = nil
	p.version++
	return nil
}

// Snapshot returns a copy of the mirror.
func (p *Profiles) Snapshot() []domain.Profile {
	p.mu.Lock()
	defer p.mu.Unlock()
	return slices.Clone(p.records)
}

// Loading reports whether the initial fetch has not yet completed.
func (p *Profiles) Loading() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.loading
}

// Err returns the error recorded by the last failed operation, if any.
func (p *Profiles) Err() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.err
}

// Version returns the mirror's mutation stamp.
func (p *Profiles) Version() uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.version
}

// Get bypasses the mirror and issues a fresh single-record read. It returns
// nil on any failure, without distinguishing "not found" from a transport
// error.
func (p *Profiles) Get(ctx context.Context, id string) *domain.Profile {
	record, err := p.store.GetByID(ctx, id)
	if err != nil {
		p.log.WarnContext(ctx, "profile lookup failed",
			slog.String("profile_id", id),
			slog.String("error", err.Error()),
		)
		return nil
	}
	return record
}

// Create persists a new profile and inserts it into the mirror, re-sorting
// by name. It requires a caller identity in the context.
func (p *Profiles) Create(ctx context.Context, input domain.Profile) (*domain.Profile, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}

	created, err := p.store.Create(ctx, input)
	if err != nil {
		p.setErr(err)
		return nil, fmt.Errorf("create profile: %w", err)
	}

	p.mu.Lock()
	p.upsertLocked(*created)
	p.err = nil
	p.mu.Unlock()

	p.log.InfoContext(ctx, "profile created",
		slog.String("user_id", userID.String()),
		slog.String("profile_id", created.ID),
		slog.String("name", created.Name),
	)
	return created, nil
}

// Update persists a partial patch and merges it into the matching mirror
// entry. The mirror is not re-sorted: a name change leaves it out of order
// until the next refresh or the matching push event.
func (p *Profiles) Update(ctx context.Context, id string, patch domain.ProfileUpdate) error {
	if err := p.store.Update(ctx, id, patch); err != nil {
		p.setErr(err)
		return fmt.Errorf("update profile: %w", err)
	}

	p.mu.Lock()
	for i := range p.records {
		if p.records[i].ID == id {
			patch.ApplyTo(&p.records[i], p.records[i].UpdatedAt)
			p.version++
			break
		}
	}
	p.err = nil
	p.mu.Unlock()

	p.log.InfoContext(ctx, "profile updated", slog.String("profile_id", id))
	return nil
}

// Delete removes the profile from the store and the mirror.
func (p *Profiles) Delete(ctx context.Context, id string) error {
	if err := p.store.Delete(ctx, id); err != nil {
		p.setErr(err)
		return fmt.Errorf("delete profile: %w", err)
	}

	p.mu.Lock()
	p.removeLocked(id)
	p.err = nil
	p.mu.Unlock()

	p.log.InfoContext(ctx, "profile deleted", slog.String("profile_id", id))
	return nil
}

// Watch opens the store's push feed, when the store supports one. Stores
// without the capability deliver no live updates; that is not an error.
func (p *Profiles) Watch() error {
	sub, ok := p.store.(store.ProfileSubscriber)
	if !ok {
		return nil
	}

	unsubscribe, err := sub.SubscribeProfiles(p.apply)
	if err != nil {
		return fmt.Errorf("subscribe profiles: %w", err)
	}

	p.mu.Lock()
	p.unsubscribe = unsubscribe
	p.mu.Unlock()
	return nil
}

// Stop tears the push feed down. Safe to call repeatedly or when Watch was
// never started.
func (p *Profiles) Stop() {
	p.mu.Lock()
	unsubscribe := p.unsubscribe
	p.unsubscribe = nil
	p.mu.Unlock()

	if unsubscribe != nil {
		unsubscribe()
	}
}

// apply reconciles one push event into the mirror.
func (p *Profiles) apply(ev domain.ProfileEvent) {
	p.mu.Lock()
	defer p.mu.Unlock()

	switch ev.Type {
	case domain.EventInsert, domain.EventUpdate:
		p.upsertLocked(ev.Profile)
	case domain.EventDelete:
		p.removeLocked(ev.Profile.ID)
	}
}

// upsertLocked inserts or replaces by id, keeping the name ordering. A row
// older than the one already mirrored is ignored, so a stale push never
// overwrites a newer record.
func (p *Profiles) upsertLocked(record domain.Profile) {
	for i := range p.records {
		if p.records[i].ID == record.ID {
			if record.UpdatedAt.Before(p.records[i].UpdatedAt) {
				return
			}
			p.records[i] = record
			p.sortLocked()
			p.version++
			return
		}
	}
	p.records = append(p.records, record)
	p.sortLocked()
	p.version++
}

func (p *Profiles) removeLocked(id string) {
	before := len(p.records)
	p.records = slices.DeleteFunc(p.records, func(r domain.Profile) bool {
		return r.ID == id
	})
	if len(p.records) != before {
		p.version++
	}
}

func (p *Profiles) sortLocked() {
	slices.SortFunc(p.records, func(a, b domain.Profile) int {
		return strings.Compare(a.Name, b.Name)
	})
}

func (p *Profiles) setErr(err error) {
	p.mu.Lock()
	p.err = err
	p.mu.Unlock()
}
