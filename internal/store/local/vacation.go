package local

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"github.com/OlosLive/holidayGo/internal/domain"
	"github.com/OlosLive/holidayGo/internal/store/demo"
)

// VacationStore persists vacation-day records as one JSON array under
// keyVacations.
type VacationStore struct {
	db *DB
}

// NewVacationStore creates a vacation store on the shared local DB.
func NewVacationStore(db *DB) *VacationStore {
	return &VacationStore{db: db}
}

func (s *VacationStore) load(ctx context.Context) ([]vacationRecord, error) {
	raw, ok, err := s.db.get(ctx, keyVacations)
	if err != nil {
		return nil, err
	}
	if !ok {
		seed := demo.Vacations(s.db.now())
		records := make([]vacationRecord, 0, len(seed))
		for _, v := range seed {
			records = append(records, toVacationRecord(v))
		}
		if err := s.save(ctx, records); err != nil {
			return nil, fmt.Errorf("seed vacations: %w", err)
		}
		return records, nil
	}

	var records []vacationRecord
	if err := json.Unmarshal([]byte(raw), &records); err != nil {
		return nil, fmt.Errorf("decode vacations: %w", err)
	}
	return records, nil
}

func (s *VacationStore) save(ctx context.Context, records []vacationRecord) error {
	raw, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("encode vacations: %w", err)
	}
	return s.db.put(ctx, keyVacations, string(raw))
}

func sortByDate(vs []domain.Vacation) {
	// ISO dates sort correctly as strings.
	slices.SortFunc(vs, func(a, b domain.Vacation) int {
		return strings.Compare(a.Date, b.Date)
	})
}

// FetchAll returns every vacation record ordered by date ascending.
func (s *VacationStore) FetchAll(ctx context.Context) ([]domain.Vacation, error) {
	return s.Fetch(ctx, domain.VacationFilter{})
}

// Fetch returns the records matching the filter, ordered by date ascending.
func (s *VacationStore) Fetch(ctx context.Context, f domain.VacationFilter) ([]domain.Vacation, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	records, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]domain.Vacation, 0, len(records))
	for _, r := range records {
		v := r.toDomain()
		if f.Matches(&v) {
			out = append(out, v)
		}
	}
	sortByDate(out)
	return out, nil
}

// Create inserts one vacation day. A record with the same identity tuple
// fails with domain.ErrAlreadyExists; an empty id gets a generated one.
func (s *VacationStore) Create(ctx context.Context, v domain.Vacation) (*domain.Vacation, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	records, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	key := v.Key()
	for _, r := range records {
		existing := r.toDomain()
		if existing.Key() == key {
			return nil, fmt.Errorf("vacation day %s for %s: %w", v.Date, v.UserID, domain.ErrAlreadyExists)
		}
	}

	created := s.fill(v)
	records = append(records, toVacationRecord(created))
	if err := s.save(ctx, records); err != nil {
		return nil, err
	}
	return &created, nil
}

// CreateMany inserts every input whose identity tuple is free, silently
// skipping duplicates (including duplicates within the batch). Only the rows
// actually created are returned.
func (s *VacationStore) CreateMany(ctx context.Context, vs []domain.Vacation) ([]domain.Vacation, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	records, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	taken := make(map[domain.VacationKey]bool, len(records))
	for _, r := range records {
		v := r.toDomain()
		taken[v.Key()] = true
	}

	var created []domain.Vacation
	for _, v := range vs {
		if taken[v.Key()] {
			continue
		}
		filled := s.fill(v)
		taken[filled.Key()] = true
		records = append(records, toVacationRecord(filled))
		created = append(created, filled)
	}

	if len(created) > 0 {
		if err := s.save(ctx, records); err != nil {
			return nil, err
		}
	}
	return created, nil
}

// Delete removes the record with the given id.
func (s *VacationStore) Delete(ctx context.Context, id string) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	records, err := s.load(ctx)
	if err != nil {
		return err
	}

	kept := slices.DeleteFunc(records, func(r vacationRecord) bool { return r.ID == id })
	if len(kept) == len(records) {
		return fmt.Errorf("vacation %s: %w", id, domain.ErrNotFound)
	}
	return s.save(ctx, kept)
}

// DeleteMany removes every record whose id is listed; unknown ids are ignored.
func (s *VacationStore) DeleteMany(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	records, err := s.load(ctx)
	if err != nil {
		return err
	}

	drop := make(map[string]bool, len(ids))
	for _, id := range ids {
		drop[id] = true
	}
	kept := slices.DeleteFunc(records, func(r vacationRecord) bool { return drop[r.ID] })
	return s.save(ctx, kept)
}

// SubscribeVacations is a documented no-op, as for profiles.
func (s *VacationStore) SubscribeVacations(func(domain.VacationEvent)) (func(), error) {
	return func() {}, nil
}

// fill assigns the id, default status and timestamps of a new record.
func (s *VacationStore) fill(v domain.Vacation) domain.Vacation {
	now := s.db.now()
	if v.ID == "" {
		v.ID = s.db.newID()
	}
	if v.Status == "" {
		v.Status = domain.VacationStatusPlanned
	}
	v.CreatedAt = now
	v.UpdatedAt = now
	return v
}
