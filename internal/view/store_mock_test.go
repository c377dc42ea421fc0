package view

import (
	"context"
	"sync"

	"github.com/OlosLive/holidayGo/internal/domain"
	"github.com/OlosLive/holidayGo/internal/store"
)

var (
	_ store.ProfileStore       = &profileStoreMock{}
	_ store.ProfileSubscriber  = &profileStoreMock{}
	_ store.VacationStore      = &vacationStoreMock{}
	_ store.VacationSubscriber = &vacationStoreMock{}
)

type profileStoreMock struct {
	FetchAllFunc          func(ctx context.Context) ([]domain.Profile, error)
	GetByIDFunc           func(ctx context.Context, id string) (*domain.Profile, error)
	CreateFunc            func(ctx context.Context, p domain.Profile) (*domain.Profile, error)
	UpdateFunc            func(ctx context.Context, id string, patch domain.ProfileUpdate) error
	DeleteFunc            func(ctx context.Context, id string) error
	SubscribeProfilesFunc func(callback func(domain.ProfileEvent)) (func(), error)

	mu               sync.Mutex
	fetchAllCalls    int
	unsubscribeCalls int
}

func (m *profileStoreMock) FetchAll(ctx context.Context) ([]domain.Profile, error) {
	m.mu.Lock()
	m.fetchAllCalls++
	m.mu.Unlock()
	if m.FetchAllFunc == nil {
		panic("profileStoreMock.FetchAllFunc is nil but FetchAll was called")
	}
	return m.FetchAllFunc(ctx)
}

func (m *profileStoreMock) GetByID(ctx context.Context, id string) (*domain.Profile, error) {
	if m.GetByIDFunc == nil {
		panic("profileStoreMock.GetByIDFunc is nil but GetByID was called")
	}
	return m.GetByIDFunc(ctx, id)
}

func (m *profileStoreMock) Create(ctx context.Context, p domain.Profile) (*domain.Profile, error) {
	if m.CreateFunc == nil {
		panic("profileStoreMock.CreateFunc is nil but Create was called")
	}
	return m.CreateFunc(ctx, p)
}

func (m *profileStoreMock) Update(ctx context.Context, id string, patch domain.ProfileUpdate) error {
	if m.UpdateFunc == nil {
		panic("profileStoreMock.UpdateFunc is nil but Update was called")
	}
	return m.UpdateFunc(ctx, id, patch)
}

func (m *profileStoreMock) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc == nil {
		panic("profileStoreMock.DeleteFunc is nil but Delete was called")
	}
	return m.DeleteFunc(ctx, id)
}

func (m *profileStoreMock) SubscribeProfiles(callback func(domain.ProfileEvent)) (func(), error) {
	if m.SubscribeProfilesFunc != nil {
		return m.SubscribeProfilesFunc(callback)
	}
	return func() {
		m.mu.Lock()
		m.unsubscribeCalls++
		m.mu.Unlock()
	}, nil
}

func (m *profileStoreMock) FetchAllCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.fetchAllCalls
}

func (m *profileStoreMock) UnsubscribeCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.unsubscribeCalls
}

type vacationStoreMock struct {
	FetchAllFunc           func(ctx context.Context) ([]domain.Vacation, error)
	FetchFunc              func(ctx context.Context, f domain.VacationFilter) ([]domain.Vacation, error)
	CreateFunc             func(ctx context.Context, v domain.Vacation) (*domain.Vacation, error)
	CreateManyFunc         func(ctx context.Context, vs []domain.Vacation) ([]domain.Vacation, error)
	DeleteFunc             func(ctx context.Context, id string) error
	DeleteManyFunc         func(ctx context.Context, ids []string) error
	SubscribeVacationsFunc func(callback func(domain.VacationEvent)) (func(), error)
}

func (m *vacationStoreMock) FetchAll(ctx context.Context) ([]domain.Vacation, error) {
	if m.FetchAllFunc == nil {
		panic("vacationStoreMock.FetchAllFunc is nil but FetchAll was called")
	}
	return m.FetchAllFunc(ctx)
}

func (m *vacationStoreMock) Fetch(ctx context.Context, f domain.VacationFilter) ([]domain.Vacation, error) {
	if m.FetchFunc == nil {
		panic("vacationStoreMock.FetchFunc is nil but Fetch was called")
	}
	return m.FetchFunc(ctx, f)
}

func (m *vacationStoreMock) Create(ctx context.Context, v domain.Vacation) (*domain.Vacation, error) {
	if m.CreateFunc == nil {
		panic("vacationStoreMock.CreateFunc is nil but Create was called")
	}
	return m.CreateFunc(ctx, v)
}

func (m *vacationStoreMock) CreateMany(ctx context.Context, vs []domain.Vacation) ([]domain.Vacation, error) {
	if m.CreateManyFunc == nil {
		panic("vacationStoreMock.CreateManyFunc is nil but CreateMany was called")
	}
	return m.CreateManyFunc(ctx, vs)
}

func (m *vacationStoreMock) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc == nil {
		panic("vacationStoreMock.DeleteFunc is nil but Delete was called")
	}
	return m.DeleteFunc(ctx, id)
}

func (m *vacationStoreMock) DeleteMany(ctx context.Context, ids []string) error {
	if m.DeleteManyFunc == nil {
		panic("vacationStoreMock.DeleteManyFunc is nil but DeleteMany was called")
	}
	return m.DeleteManyFunc(ctx, ids)
}

func (m *vacationStoreMock) SubscribeVacations(callback func(domain.VacationEvent)) (func(), error) {
	if m.SubscribeVacationsFunc != nil {
		return m.SubscribeVacationsFunc(callback)
	}
	return func() {}, nil
}
