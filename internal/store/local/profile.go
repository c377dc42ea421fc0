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

// ProfileStore persists profiles as one JSON array under keyProfiles.
type ProfileStore struct {
	db *DB
}

// NewProfileStore creates a profile store on the shared local DB.
func NewProfileStore(db *DB) *ProfileStore {
	return &ProfileStore{db: db}
}

// load reads the full profile array, seeding the demonstration dataset on
// the very first read. Callers must hold db.mu.
func (s *ProfileStore) load(ctx context.Context) ([]profileRecord, error) {
	raw, ok, err := s.db.get(ctx, keyProfiles)
	if err != nil {
		return nil, err
	}
	if !ok {
		seed := demo.Profiles(s.db.now())
		records := make([]profileRecord, 0, len(seed))
		for _, p := range seed {
			records = append(records, toProfileRecord(p))
		}
		if err := s.save(ctx, records); err != nil {
			return nil, fmt.Errorf("seed profiles: %w", err)
		}
		return records, nil
	}

	var records []profileRecord
	if err := json.Unmarshal([]byte(raw), &records); err != nil {
		return nil, fmt.Errorf("decode profiles: %w", err)
	}
	return records, nil
}

// save writes the full profile array back. Callers must hold db.mu.
func (s *ProfileStore) save(ctx context.Context, records []profileRecord) error {
	raw, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("encode profiles: %w", err)
	}
	return s.db.put(ctx, keyProfiles, string(raw))
}

// FetchAll returns every profile ordered by name ascending.
func (s *ProfileStore) FetchAll(ctx context.Context) ([]domain.Profile, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	records, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]domain.Profile, 0, len(records))
	for _, r := range records {
		out = append(out, r.toDomain())
	}
	slices.SortFunc(out, func(a, b domain.Profile) int {
		return strings.Compare(a.Name, b.Name)
	})
	return out, nil
}

// GetByID returns the profile with the given id, or (nil, nil) if absent.
func (s *ProfileStore) GetByID(ctx context.Context, id string) (*domain.Profile, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	records, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	for _, r := range records {
		if r.ID == id {
			p := r.toDomain()
			return &p, nil
		}
	}
	return nil, nil
}

// Create appends a new profile. The id must be caller-supplied (it mirrors
// the identity provider's user id). Duplicate ids and duplicate emails fail
// with domain.ErrAlreadyExists.
func (s *ProfileStore) Create(ctx context.Context, p domain.Profile) (*domain.Profile, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	records, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	for _, r := range records {
		if r.ID == p.ID {
			return nil, fmt.Errorf("profile %s: %w", p.ID, domain.ErrAlreadyExists)
		}
		if strings.EqualFold(r.Email, p.Email) {
			return nil, fmt.Errorf("profile email %s: %w", p.Email, domain.ErrAlreadyExists)
		}
	}

	now := s.db.now()
	p.CreatedAt = now
	p.UpdatedAt = now
	if p.Status == "" {
		p.Status = domain.StatusActive
	}

	records = append(records, toProfileRecord(p))
	if err := s.save(ctx, records); err != nil {
		return nil, err
	}
	return &p, nil
}

// Update merges the patch into the stored profile and refreshes updated_at.
func (s *ProfileStore) Update(ctx context.Context, id string, patch domain.ProfileUpdate) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	records, err := s.load(ctx)
	if err != nil {
		return err
	}

	for i, r := range records {
		if r.ID != id {
			continue
		}
		p := r.toDomain()
		patch.ApplyTo(&p, s.db.now())
		records[i] = toProfileRecord(p)
		return s.save(ctx, records)
	}
	return fmt.Errorf("profile %s: %w", id, domain.ErrNotFound)
}

// Delete removes the profile with the given id.
func (s *ProfileStore) Delete(ctx context.Context, id string) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	records, err := s.load(ctx)
	if err != nil {
		return err
	}

	kept := slices.DeleteFunc(records, func(r profileRecord) bool { return r.ID == id })
	if len(kept) == len(records) {
		return fmt.Errorf("profile %s: %w", id, domain.ErrNotFound)
	}
	return s.save(ctx, kept)
}

// SubscribeProfiles is a documented no-op: the local backend has no push
// mechanism, so the callback is never invoked. The returned unsubscribe
// function does nothing.
func (s *ProfileStore) SubscribeProfiles(func(domain.ProfileEvent)) (func(), error) {
	return func() {}, nil
}
