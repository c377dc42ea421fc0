package vacation_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/OlosLive/holidayGo/internal/domain"
	"github.com/OlosLive/holidayGo/internal/store/postgres/testhelper"
	"github.com/OlosLive/holidayGo/internal/store/postgres/vacation"
)

// newRepo sets up a test DB and returns a ready Repo + pool.
// The shared pool serves as both the read and write side in tests.
func newRepo(t *testing.T) (*vacation.Repo, *pgxpool.Pool) {
	t.Helper()
	pool := testhelper.SetupTestDB(t)
	return vacation.New(pool, pool), pool
}

// ---------------------------------------------------------------------------
// Create tests
// ---------------------------------------------------------------------------

func TestRepo_Create_HappyPath(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()
	owner := testhelper.SeedProfile(t, pool, nil)

	input := domain.NewVacation(owner.ID, 2026, 8, 5)
	got, err := repo.Create(ctx, input)
	if err != nil {
		t.Fatalf("Create: unexpected error: %v", err)
	}

	if got.ID == "" {
		t.Error("ID should be filled when empty on input")
	}
	if got.UserID != owner.ID {
		t.Errorf("UserID mismatch: got %s, want %s", got.UserID, owner.ID)
	}
	if got.Date != "2026-08-05" {
		t.Errorf("Date mismatch: got %q, want %q", got.Date, "2026-08-05")
	}
	if got.Year != 2026 || got.Month != 8 || got.Day != 5 {
		t.Errorf("tuple mismatch: got %d-%d-%d", got.Year, got.Month, got.Day)
	}
	if got.Status != domain.VacationStatusPlanned {
		t.Errorf("Status: got %q, want %q", got.Status, domain.VacationStatusPlanned)
	}
	if got.CreatedAt.IsZero() || got.UpdatedAt.IsZero() {
		t.Error("timestamps should be set by the database")
	}
}

func TestRepo_Create_KeepsProvidedID(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()
	owner := testhelper.SeedProfile(t, pool, nil)

	input := domain.NewVacation(owner.ID, 2026, 9, 1)
	input.ID = uuid.NewString()

	got, err := repo.Create(ctx, input)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if got.ID != input.ID {
		t.Errorf("ID mismatch: got %s, want %s", got.ID, input.ID)
	}
}

func TestRepo_Create_DuplicateTuple(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()
	owner := testhelper.SeedProfile(t, pool, nil)

	if _, err := repo.Create(ctx, domain.NewVacation(owner.ID, 2026, 8, 12)); err != nil {
		t.Fatalf("Create first: %v", err)
	}

	_, err := repo.Create(ctx, domain.NewVacation(owner.ID, 2026, 8, 12))
	if !errors.Is(err, domain.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got: %v", err)
	}
}

func TestRepo_Create_UnknownUser(t *testing.T) {
	t.Parallel()
	repo, _ := newRepo(t)
	ctx := context.Background()

	_, err := repo.Create(ctx, domain.NewVacation(uuid.NewString(), 2026, 8, 1))
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for FK violation, got: %v", err)
	}
}

// ---------------------------------------------------------------------------
// CreateMany tests
// ---------------------------------------------------------------------------

func TestRepo_CreateMany_HappyPath(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()
	owner := testhelper.SeedProfile(t, pool, nil)

	batch := []domain.Vacation{
		domain.NewVacation(owner.ID, 2026, 10, 1),
		domain.NewVacation(owner.ID, 2026, 10, 2),
		domain.NewVacation(owner.ID, 2026, 10, 3),
	}

	got, err := repo.CreateMany(ctx, batch)
	if err != nil {
		t.Fatalf("CreateMany: unexpected error: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 created rows, got %d", len(got))
	}
	for _, v := range got {
		if v.ID == "" {
			t.Error("batch rows must receive ids")
		}
	}
}

func TestRepo_CreateMany_SkipsExisting(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()
	owner := testhelper.SeedProfile(t, pool, nil)

	existing := testhelper.SeedVacation(t, pool, owner.ID, 2026, 11, 5)

	batch := []domain.Vacation{
		domain.NewVacation(owner.ID, 2026, 11, 5), // collides with existing
		domain.NewVacation(owner.ID, 2026, 11, 6),
	}

	got, err := repo.CreateMany(ctx, batch)
	if err != nil {
		t.Fatalf("CreateMany: unexpected error: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 created row (conflict skipped), got %d", len(got))
	}
	if got[0].Day != 6 {
		t.Errorf("wrong row created: day %d", got[0].Day)
	}

	// The pre-existing row is untouched.
	var count int
	if err := pool.QueryRow(ctx, `SELECT count(*) FROM vacations WHERE id = $1`, existing.ID).Scan(&count); err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Errorf("existing row disappeared")
	}
}

func TestRepo_CreateMany_EmptyBatch(t *testing.T) {
	t.Parallel()
	repo, _ := newRepo(t)

	got, err := repo.CreateMany(context.Background(), nil)
	if err != nil {
		t.Fatalf("CreateMany(nil): %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected no rows, got %d", len(got))
	}
}

// ---------------------------------------------------------------------------
// Fetch tests
// ---------------------------------------------------------------------------

func TestRepo_Fetch_ByUserSortedByDate(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()
	owner := testhelper.SeedProfile(t, pool, nil)

	// Seed out of calendar order.
	testhelper.SeedVacation(t, pool, owner.ID, 2026, 12, 20)
	testhelper.SeedVacation(t, pool, owner.ID, 2026, 1, 3)
	testhelper.SeedVacation(t, pool, owner.ID, 2026, 6, 15)

	got, err := repo.Fetch(ctx, domain.VacationFilter{UserID: owner.ID})
	if err != nil {
		t.Fatalf("Fetch: unexpected error: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(got))
	}
	for i := 1; i < len(got); i++ {
		if strings.Compare(got[i-1].Date, got[i].Date) > 0 {
			t.Errorf("not sorted by date: %q before %q", got[i-1].Date, got[i].Date)
		}
	}
}

func TestRepo_Fetch_MonthAndYearFilter(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()
	owner := testhelper.SeedProfile(t, pool, nil)

	testhelper.SeedVacation(t, pool, owner.ID, 2026, 8, 10)
	testhelper.SeedVacation(t, pool, owner.ID, 2026, 8, 11)
	testhelper.SeedVacation(t, pool, owner.ID, 2026, 9, 10)
	testhelper.SeedVacation(t, pool, owner.ID, 2025, 8, 10)

	got, err := repo.Fetch(ctx, domain.VacationFilter{UserID: owner.ID, Year: 2026, Month: 8})
	if err != nil {
		t.Fatalf("Fetch: unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 rows for 2026-08, got %d", len(got))
	}
	for _, v := range got {
		if v.Year != 2026 || v.Month != 8 {
			t.Errorf("filter leak: got %d-%d", v.Year, v.Month)
		}
	}
}

func TestRepo_Fetch_NoMatches(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()
	owner := testhelper.SeedProfile(t, pool, nil)

	got, err := repo.Fetch(ctx, domain.VacationFilter{UserID: owner.ID, Year: 1999})
	if err != nil {
		t.Fatalf("Fetch: unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected no rows, got %d", len(got))
	}
}

// ---------------------------------------------------------------------------
// Delete tests
// ---------------------------------------------------------------------------

func TestRepo_Delete_HappyPath(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()
	owner := testhelper.SeedProfile(t, pool, nil)

	seeded := testhelper.SeedVacation(t, pool, owner.ID, 2026, 7, 7)

	if err := repo.Delete(ctx, seeded.ID); err != nil {
		t.Fatalf("Delete: unexpected error: %v", err)
	}

	got, err := repo.Fetch(ctx, domain.VacationFilter{UserID: owner.ID})
	if err != nil {
		t.Fatalf("Fetch after delete: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("row survived delete")
	}
}

func TestRepo_Delete_NotFound(t *testing.T) {
	t.Parallel()
	repo, _ := newRepo(t)

	err := repo.Delete(context.Background(), uuid.NewString())
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got: %v", err)
	}
}

func TestRepo_DeleteMany_IgnoresMissing(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()
	owner := testhelper.SeedProfile(t, pool, nil)

	v1 := testhelper.SeedVacation(t, pool, owner.ID, 2026, 5, 1)
	v2 := testhelper.SeedVacation(t, pool, owner.ID, 2026, 5, 2)

	err := repo.DeleteMany(ctx, []string{v1.ID, uuid.NewString(), v2.ID})
	if err != nil {
		t.Fatalf("DeleteMany: unexpected error: %v", err)
	}

	got, err := repo.Fetch(ctx, domain.VacationFilter{UserID: owner.ID})
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected all rows removed, %d remain", len(got))
	}
}

func TestRepo_DeleteMany_EmptySlice(t *testing.T) {
	t.Parallel()
	repo, _ := newRepo(t)

	if err := repo.DeleteMany(context.Background(), nil); err != nil {
		t.Fatalf("DeleteMany(nil): %v", err)
	}
}
