// Package store defines the record-store contracts shared by the PostgreSQL
// and local backends, plus the process-wide factory that selects between them.
package store

import (
	"context"

	"github.com/OlosLive/holidayGo/internal/domain"
)

// ProfileStore is the contract every profile backend implements.
//
// FetchAll returns profiles ordered by name ascending; callers never need to
// re-sort a full fetch. GetByID returns (nil, nil) for an absent id; absence
// is not an error. Create fails with domain.ErrAlreadyExists on a duplicate
// id or email. Update and Delete fail with domain.ErrNotFound for unknown ids.
type ProfileStore interface {
	FetchAll(ctx context.Context) ([]domain.Profile, error)
	GetByID(ctx context.Context, id string) (*domain.Profile, error)
	Create(ctx context.Context, p domain.Profile) (*domain.Profile, error)
	Update(ctx context.Context, id string, patch domain.ProfileUpdate) error
	Delete(ctx context.Context, id string) error
}

// VacationStore is the contract every vacation backend implements.
//
// FetchAll and Fetch return records ordered by vacation date ascending.
// Create fails with domain.ErrAlreadyExists when a record with the same
// (user, year, month, day) tuple exists. CreateMany inserts every input whose
// identity tuple is free and silently skips the rest, returning only the rows
// actually created.
type VacationStore interface {
	FetchAll(ctx context.Context) ([]domain.Vacation, error)
	Fetch(ctx context.Context, f domain.VacationFilter) ([]domain.Vacation, error)
	Create(ctx context.Context, v domain.Vacation) (*domain.Vacation, error)
	CreateMany(ctx context.Context, vs []domain.Vacation) ([]domain.Vacation, error)
	Delete(ctx context.Context, id string) error
	DeleteMany(ctx context.Context, ids []string) error
}

// ProfileSubscriber is the optional real-time capability of a profile store.
// Callers type-assert for it; a store without it simply delivers no push
// updates, which is not an error. The returned unsubscribe function tears the
// feed down exactly once and is safe to call repeatedly.
type ProfileSubscriber interface {
	SubscribeProfiles(callback func(domain.ProfileEvent)) (func(), error)
}

// VacationSubscriber is the optional real-time capability of a vacation store.
type VacationSubscriber interface {
	SubscribeVacations(callback func(domain.VacationEvent)) (func(), error)
}
