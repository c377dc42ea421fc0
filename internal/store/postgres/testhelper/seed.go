package testhelper

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/OlosLive/holidayGo/internal/domain"
)

// TruncateAll clears both tables so each test starts from an empty database.
// Vacations cascade from profiles, but truncating both keeps intent obvious.
func TruncateAll(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()
	_, err := pool.Exec(context.Background(), `TRUNCATE profiles CASCADE`)
	if err != nil {
		t.Fatalf("testhelper: truncate: %v", err)
	}
}

// SeedProfile inserts a profile with sensible defaults, overridable via mutate.
func SeedProfile(t *testing.T, pool *pgxpool.Pool, mutate func(*domain.Profile)) domain.Profile {
	t.Helper()

	id := uuid.NewString()
	p := domain.Profile{
		ID:              id,
		Name:            "Test User " + id[:8],
		Email:           id[:8] + "@example.com",
		Status:          domain.StatusActive,
		VacationBalance: 20,
	}
	if mutate != nil {
		mutate(&p)
	}

	err := pool.QueryRow(context.Background(), `
		INSERT INTO profiles (id, name, email, role, department, hire_date, status, avatar_url, vacation_balance, vacation_used)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING created_at, updated_at`,
		p.ID, p.Name, p.Email, p.Role, p.Department, p.HireDate,
		string(p.Status), p.AvatarURL, p.VacationBalance, p.VacationUsed,
	).Scan(&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		t.Fatalf("testhelper: seed profile: %v", err)
	}
	return p
}

// SeedVacation inserts a planned vacation day for the given profile and tuple.
func SeedVacation(t *testing.T, pool *pgxpool.Pool, userID string, year, month, day int) domain.Vacation {
	t.Helper()

	v := domain.NewVacation(userID, year, month, day)
	v.ID = uuid.NewString()

	err := pool.QueryRow(context.Background(), `
		INSERT INTO vacations (id, user_id, vacation_date, year, month, day, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at`,
		v.ID, v.UserID, v.Date, v.Year, v.Month, v.Day, v.Status,
	).Scan(&v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		t.Fatalf("testhelper: seed vacation: %v", err)
	}
	return v
}
