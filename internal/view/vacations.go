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
)

// Vacations mirrors the full vacation-day collection of a store, sorted by
// date ascending. The dominant pattern is fetch-everything-once and answer
// period queries from the mirror; Fetch exists for the rare store-side
// filtered read.
type Vacations struct {
	store store.VacationStore
	log   *slog.Logger

	mu      sync.Mutex
	records []domain.Vacation
	loading bool
	err     error
	version uint64

	unsubscribe func()

	// days memoizes the last DaysFor answer against the mirror version.
	days daysCache
}

type daysCache struct {
	version uint64
	userID  string
	year    int
	month   int
	result  []int
}

// NewVacations creates a vacation view in its initial loading state.
func NewVacations(log *slog.Logger, st store.VacationStore) *Vacations {
	return &Vacations{
		store:   st,
		log:     log.With("view", "vacations"),
		loading: true,
	}
}

// Load performs the initial full fetch and leaves the loading state.
func (v *Vacations) Load(ctx context.Context) error {
	err := v.refresh(ctx)
	v.mu.Lock()
	v.loading = false
	v.mu.Unlock()
	return err
}

// Refresh replaces the mirror with a fresh full read. On failure the
// last-known-good mirror is preserved and the error is recorded.
func (v *Vacations) Refresh(ctx context.Context) error {
	return v.refresh(ctx)
}

func (v *Vacations) refresh(ctx context.Context) error {
	records, err := v.store.FetchAll(ctx)

	v.mu.Lock()
	defer v.mu.Unlock()
	if err != nil {
		v.err = err
		v.log.WarnContext(ctx, "vacation refresh failed", slog.String("error", err.Error()))
		return fmt.Errorf("fetch vacations: %w", err)
	}
	v.records = records
	v.err = nil
	v.version++
	return nil
}

// Snapshot returns a copy of the mirror.
func (v *Vacations) Snapshot() []domain.Vacation {
	v.mu.Lock()
	defer v.mu.Unlock()
	return slices.Clone(v.records)
}

// Loading reports whether the initial fetch has not yet completed.
func (v *Vacations) Loading() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.loading
}

// Err returns the error recorded by the last failed operation, if any.
func (v *Vacations) Err() error {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.err
}

// Version returns the mirror's mutation stamp.
func (v *Vacations) Version() uint64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.version
}

// DaysFor returns the day-of-month values planned by the user in the given
// period, in mirror order (date ascending). The answer is memoized against
// the mirror version and the query tuple. Month is 1-indexed.
func (v *Vacations) DaysFor(userID string, year, month int) []int {
	v.mu.Lock()
	defer v.mu.Unlock()

	c := &v.days
	if c.version == v.version && c.userID == userID && c.year == year && c.month == month && c.result != nil {
		return slices.Clone(c.result)
	}

	days := make([]int, 0, 8)
	for i := range v.records {
		r := &v.records[i]
		if r.UserID == userID && r.Year == year && r.Month == month {
			days = append(days, r.Day)
		}
	}

	*c = daysCache{version: v.version, userID: userID, year: year, month: month, result: days}
	return slices.Clone(days)
}

// Fetch issues a store-side filtered read. The mirror is not touched.
func (v *Vacations) Fetch(ctx context.Context, filter domain.VacationFilter) ([]domain.Vacation, error) {
	records, err := v.store.Fetch(ctx, filter)
	if err != nil {
		v.setErr(err)
		return nil, fmt.Errorf("fetch vacations: %w", err)
	}
	return records, nil
}

// Toggle flips the presence of one planned day: present in the mirror means
// delete, absent means create. Two concurrent toggles for the same tuple can
// both observe "absent"; the store's identity-tuple uniqueness turns the
// second create into a duplicate error rather than a second record.
func (v *Vacations) Toggle(ctx context.Context, userID string, year, month, day int) error {
	key := domain.VacationKey{UserID: userID, Year: year, Month: month, Day: day}

	v.mu.Lock()
	var existingID string
	for i := range v.records {
		if v.records[i].Key() == key {
			existingID = v.records[i].ID
			break
		}
	}
	v.mu.Unlock()

	if existingID != "" {
		if err := v.store.Delete(ctx, existingID); err != nil {
			v.setErr(err)
			return fmt.Errorf("toggle vacation day off: %w", err)
		}
		v.mu.Lock()
		v.removeLocked(existingID)
		v.err = nil
		v.mu.Unlock()

		v.log.InfoContext(ctx, "vacation day removed",
			slog.String("user_id", userID),
			slog.String("date", domain.VacationDate(year, month, day)),
		)
		return nil
	}

	created, err := v.store.Create(ctx, domain.NewVacation(userID, year, month, day))
	if err != nil {
		v.setErr(err)
		return fmt.Errorf("toggle vacation day on: %w", err)
	}

	v.mu.Lock()
	v.upsertLocked(*created)
	v.err = nil
	v.mu.Unlock()

	v.log.InfoContext(ctx, "vacation day planned",
		slog.String("user_id", userID),
		slog.String("date", created.Date),
	)
	return nil
}

// AddDays batch-creates planned days for the period. Requested duplicates
// collapse to one record and days already planned are skipped silently; the
// number of records actually created is returned.
func (v *Vacations) AddDays(ctx context.Context, userID string, year, month int, days []int) (int, error) {
	batch := make([]domain.Vacation, 0, len(days))
	seen := make(map[int]bool, len(days))
	for _, day := range days {
		if seen[day] {
			continue
		}
		seen[day] = true
		batch = append(batch, domain.NewVacation(userID, year, month, day))
	}
	if len(batch) == 0 {
		return 0, nil
	}

	created, err := v.store.CreateMany(ctx, batch)
	if err != nil {
		v.setErr(err)
		return 0, fmt.Errorf("add vacation days: %w", err)
	}

	v.mu.Lock()
	for i := range created {
		v.upsertLocked(created[i])
	}
	v.err = nil
	v.mu.Unlock()

	v.log.InfoContext(ctx, "vacation days added",
		slog.String("user_id", userID),
		slog.Int("requested", len(days)),
		slog.Int("created", len(created)),
		slog.Int("skipped", len(batch)-len(created)),
	)
	return len(created), nil
}

// RemoveDays resolves the given days to mirrored record ids and batch-deletes
// only those. Days with no matching record are ignored.
func (v *Vacations) RemoveDays(ctx context.Context, userID string, year, month int, days []int) error {
	wanted := make(map[int]bool, len(days))
	for _, day := range days {
		wanted[day] = true
	}

	v.mu.Lock()
	var ids []string
	for i := range v.records {
		r := &v.records[i]
		if r.UserID == userID && r.Year == year && r.Month == month && wanted[r.Day] {
			ids = append(ids, r.ID)
		}
	}
	v.mu.Unlock()

	if len(ids) == 0 {
		return nil
	}

	if err := v.store.DeleteMany(ctx, ids); err != nil {
		v.setErr(err)
		return fmt.Errorf("remove vacation days: %w", err)
	}

	v.mu.Lock()
	for _, id := range ids {
		v.removeLocked(id)
	}
	v.err = nil
	v.mu.Unlock()

	v.log.InfoContext(ctx, "vacation days removed",
		slog.String("user_id", userID),
		slog.Int("removed", len(ids)),
	)
	return nil
}

// Watch opens the store's push feed, when the store supports one.
func (v *Vacations) Watch() error {
	sub, ok := v.store.(store.VacationSubscriber)
	if !ok {
		return nil
	}

	unsubscribe, err := sub.SubscribeVacations(v.apply)
	if err != nil {
		return fmt.Errorf("subscribe vacations: %w", err)
	}

	v.mu.Lock()
	v.unsubscribe = unsubscribe
	v.mu.Unlock()
	return nil
}

// Stop tears the push feed down. Safe to call repeatedly or when Watch was
// never started.
func (v *Vacations) Stop() {
	v.mu.Lock()
	unsubscribe := v.unsubscribe
	v.unsubscribe = nil
	v.mu.Unlock()

	if unsubscribe != nil {
		unsubscribe()
	}
}

func (v *Vacations) apply(ev domain.VacationEvent) {
	v.mu.Lock()
	defer v.mu.Unlock()

	switch ev.Type {
	case domain.EventInsert, domain.EventUpdate:
		v.upsertLocked(ev.Vacation)
	case domain.EventDelete:
		v.removeLocked(ev.Vacation.ID)
	}
}

func (v *Vacations) upsertLocked(record domain.Vacation) {
	for i := range v.records {
		if v.records[i].ID == record.ID {
			if record.UpdatedAt.Before(v.records[i].UpdatedAt) {
				return
			}
			v.records[i] = record
			v.sortLocked()
			v.version++
			return
		}
	}
	v.records = append(v.records, record)
	v.sortLocked()
	v.version++
}

func (v *Vacations) removeLocked(id string) {
	before := len(v.records)
	v.records = slices.DeleteFunc(v.records, func(r domain.Vacation) bool {
		return r.ID == id
	})
	if len(v.records) != before {
		v.version++
	}
}

func (v *Vacations) sortLocked() {
	slices.SortFunc(v.records, func(a, b domain.Vacation) int {
		return strings.Compare(a.Date, b.Date)
	})
}

func (v *Vacations) setErr(err error) {
	v.mu.Lock()
	v.err = err
	v.mu.Unlock()
}
