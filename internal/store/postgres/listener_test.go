package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/OlosLive/holidayGo/internal/domain"
	"github.com/OlosLive/holidayGo/internal/store/postgres/profile"
	"github.com/OlosLive/holidayGo/internal/store/postgres/testhelper"
	"github.com/OlosLive/holidayGo/internal/store/postgres/vacation"
)

func waitForEvent[T any](t *testing.T, ch <-chan T) T {
	t.Helper()
	select {
	case ev := <-ch:
		return ev
	case <-time.After(10 * time.Second):
		t.Fatal("timed out waiting for change event")
		panic("unreachable")
	}
}

func TestListener_ProfileInsertEvent(t *testing.T) {
	t.Parallel()
	pool := testhelper.SetupTestDB(t)
	repo := profile.New(pool, pool)

	events := make(chan domain.ProfileEvent, 16)
	unsubscribe, err := repo.SubscribeProfiles(func(ev domain.ProfileEvent) {
		events <- ev
	})
	if err != nil {
		t.Fatalf("SubscribeProfiles: %v", err)
	}
	defer unsubscribe()

	seeded := testhelper.SeedProfile(t, pool, nil)

	for {
		ev := waitForEvent(t, events)
		// Other parallel tests write to the same table; skip their rows.
		if ev.Profile.ID != seeded.ID {
			continue
		}
		if ev.Type != domain.EventInsert {
			t.Errorf("Type: got %s, want %s", ev.Type, domain.EventInsert)
		}
		if ev.Profile.Name != seeded.Name || ev.Profile.Email != seeded.Email {
			t.Errorf("payload mismatch: got %+v", ev.Profile)
		}
		return
	}
}

func TestListener_ProfileUpdateAndDeleteEvents(t *testing.T) {
	t.Parallel()
	pool := testhelper.SetupTestDB(t)
	repo := profile.New(pool, pool)
	ctx := context.Background()

	seeded := testhelper.SeedProfile(t, pool, nil)

	events := make(chan domain.ProfileEvent, 16)
	unsubscribe, err := repo.SubscribeProfiles(func(ev domain.ProfileEvent) {
		if ev.Profile.ID == seeded.ID {
			events <- ev
		}
	})
	if err != nil {
		t.Fatalf("SubscribeProfiles: %v", err)
	}
	defer unsubscribe()

	status := domain.StatusVacationing
	if err := repo.Update(ctx, seeded.ID, domain.ProfileUpdate{Status: &status}); err != nil {
		t.Fatalf("Update: %v", err)
	}

	ev := waitForEvent(t, events)
	if ev.Type != domain.EventUpdate {
		t.Errorf("Type: got %s, want %s", ev.Type, domain.EventUpdate)
	}
	if ev.Profile.Status != domain.StatusVacationing {
		t.Errorf("Status in payload: got %s", ev.Profile.Status)
	}

	if err := repo.Delete(ctx, seeded.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	ev = waitForEvent(t, events)
	if ev.Type != domain.EventDelete {
		t.Errorf("Type: got %s, want %s", ev.Type, domain.EventDelete)
	}
	if ev.Profile.ID != seeded.ID {
		t.Errorf("deleted row id: got %s, want %s", ev.Profile.ID, seeded.ID)
	}
}

func TestListener_VacationEvents(t *testing.T) {
	t.Parallel()
	pool := testhelper.SetupTestDB(t)
	repo := vacation.New(pool, pool)
	ctx := context.Background()

	owner := testhelper.SeedProfile(t, pool, nil)

	events := make(chan domain.VacationEvent, 16)
	unsubscribe, err := repo.SubscribeVacations(func(ev domain.VacationEvent) {
		if ev.Vacation.UserID == owner.ID {
			events <- ev
		}
	})
	if err != nil {
		t.Fatalf("SubscribeVacations: %v", err)
	}
	defer unsubscribe()

	created, err := repo.Create(ctx, domain.NewVacation(owner.ID, 2026, 8, 21))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	ev := waitForEvent(t, events)
	if ev.Type != domain.EventInsert {
		t.Errorf("Type: got %s, want %s", ev.Type, domain.EventInsert)
	}
	if ev.Vacation.ID != created.ID || ev.Vacation.Date != "2026-08-21" {
		t.Errorf("payload mismatch: got %+v", ev.Vacation)
	}

	if err := repo.Delete(ctx, created.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	ev = waitForEvent(t, events)
	if ev.Type != domain.EventDelete {
		t.Errorf("Type: got %s, want %s", ev.Type, domain.EventDelete)
	}
}

func TestListener_UnsubscribeIsIdempotent(t *testing.T) {
	t.Parallel()
	pool := testhelper.SetupTestDB(t)
	repo := profile.New(pool, pool)

	unsubscribe, err := repo.SubscribeProfiles(func(domain.ProfileEvent) {})
	if err != nil {
		t.Fatalf("SubscribeProfiles: %v", err)
	}

	unsubscribe()
	unsubscribe() // second call must be a no-op
}
