// Package profile implements the profile record store using PostgreSQL.
package profile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/OlosLive/holidayGo/internal/domain"
	"github.com/OlosLive/holidayGo/internal/store/postgres"
)

// Repo provides profile persistence backed by PostgreSQL. Reads go through
// the viewer-scoped read pool; writes through the elevated write pool, so
// collaborator management works even for restricted viewer accounts.
type Repo struct {
	read  *pgxpool.Pool
	write *pgxpool.Pool
}

// New creates a new profile repository.
func New(read, write *pgxpool.Pool) *Repo {
	return &Repo{read: read, write: write}
}

// ---------------------------------------------------------------------------
// SQL constants
// ---------------------------------------------------------------------------

const profileColumns = `id, name, email, role, department, hire_date::text, status, avatar_url, vacation_balance, vacation_used, created_at, updated_at`

const fetchAllSQL = `
SELECT ` + profileColumns + `
FROM profiles
ORDER BY name ASC`

const getByIDSQL = `
SELECT ` + profileColumns + `
FROM profiles
WHERE id = $1`

const createSQL = `
INSERT INTO profiles (id, name, email, role, department, hire_date, status, avatar_url, vacation_balance, vacation_used)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
RETURNING ` + profileColumns

const deleteSQL = `
DELETE FROM profiles
WHERE id = $1`

// ---------------------------------------------------------------------------
// Operations
// ---------------------------------------------------------------------------

// FetchAll returns every profile ordered by name ascending.
func (r *Repo) FetchAll(ctx context.Context) ([]domain.Profile, error) {
	rows, err := r.read.Query(ctx, fetchAllSQL)
	if err != nil {
		return nil, postgres.MapError(err, "profiles", "all")
	}
	defer rows.Close()

	var out []domain.Profile
	for rows.Next() {
		row, err := scanProfile(rows)
		if err != nil {
			return nil, postgres.MapError(err, "profiles", "all")
		}
		out = append(out, row.toDomain())
	}
	if err := rows.Err(); err != nil {
		return nil, postgres.MapError(err, "profiles", "all")
	}
	return out, nil
}

// GetByID returns the profile with the given id, or (nil, nil) if absent.
func (r *Repo) GetByID(ctx context.Context, id string) (*domain.Profile, error) {
	row, err := scanProfile(r.read.QueryRow(ctx, getByIDSQL, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, postgres.MapError(err, "profile", id)
	}

	p := row.toDomain()
	return &p, nil
}

// Create inserts a new profile and returns the persisted record.
// Duplicate ids and emails surface as domain.ErrAlreadyExists via the
// table's unique constraints.
func (r *Repo) Create(ctx context.Context, p domain.Profile) (*domain.Profile, error) {
	status := p.Status
	if status == "" {
		status = domain.StatusActive
	}

	row, err := scanProfile(r.write.QueryRow(ctx, createSQL,
		p.ID, p.Name, p.Email, p.Role, p.Department, p.HireDate,
		string(status), p.AvatarURL, p.VacationBalance, p.VacationUsed,
	))
	if err != nil {
		return nil, postgres.MapError(err, "profile", p.ID)
	}

	created := row.toDomain()
	return &created, nil
}

// Update merges the non-nil patch fields into the stored profile and
// refreshes updated_at. An unknown id yields domain.ErrNotFound.
func (r *Repo) Update(ctx context.Context, id string, patch domain.ProfileUpdate) error {
	if patch.IsZero() {
		return nil
	}

	q := squirrel.Update("profiles").
		PlaceholderFormat(squirrel.Dollar).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id})

	if patch.Name != nil {
		q = q.Set("name", *patch.Name)
	}
	if patch.Email != nil {
		q = q.Set("email", *patch.Email)
	}
	if patch.Role != nil {
		q = q.Set("role", *patch.Role)
	}
	if patch.Department != nil {
		q = q.Set("department", *patch.Department)
	}
	if patch.HireDate != nil {
		q = q.Set("hire_date", *patch.HireDate)
	}
	if patch.Status != nil {
		q = q.Set("status", string(*patch.Status))
	}
	if patch.AvatarURL != nil {
		q = q.Set("avatar_url", *patch.AvatarURL)
	}
	if patch.VacationBalance != nil {
		q = q.Set("vacation_balance", *patch.VacationBalance)
	}
	if patch.VacationUsed != nil {
		q = q.Set("vacation_used", *patch.VacationUsed)
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build update query: %w", err)
	}

	tag, err := r.write.Exec(ctx, sql, args...)
	if err != nil {
		return postgres.MapError(err, "profile", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("profile %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// Delete removes the profile with the given id.
func (r *Repo) Delete(ctx context.Context, id string) error {
	tag, err := r.write.Exec(ctx, deleteSQL, id)
	if err != nil {
		return postgres.MapError(err, "profile", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("profile %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// SubscribeProfiles opens the row-level change feed on the profiles table.
func (r *Repo) SubscribeProfiles(callback func(domain.ProfileEvent)) (func(), error) {
	return postgres.Listen(r.read, postgres.ProfilesChannel, func(op domain.EventType, raw json.RawMessage) {
		var row profileRow
		if err := json.Unmarshal(raw, &row); err != nil {
			return
		}
		callback(domain.ProfileEvent{Type: op, Profile: row.toDomain()})
	})
}

// ---------------------------------------------------------------------------
// Row mapping
// ---------------------------------------------------------------------------

// profileRow mirrors the profiles table. The json tags match row_to_json
// output in change-feed payloads.
type profileRow struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Email           string    `json:"email"`
	Role            *string   `json:"role"`
	Department      *string   `json:"department"`
	HireDate        *string   `json:"hire_date"`
	Status          string    `json:"status"`
	AvatarURL       *string   `json:"avatar_url"`
	VacationBalance int       `json:"vacation_balance"`
	VacationUsed    int       `json:"vacation_used"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func scanProfile(row pgx.Row) (profileRow, error) {
	var r profileRow
	err := row.Scan(&r.ID, &r.Name, &r.Email, &r.Role, &r.Department, &r.HireDate,
		&r.Status, &r.AvatarURL, &r.VacationBalance, &r.VacationUsed,
		&r.CreatedAt, &r.UpdatedAt)
	return r, err
}

func (r profileRow) toDomain() domain.Profile {
	return domain.Profile{
		ID:              r.ID,
		Name:            r.Name,
		Email:           r.Email,
		Role:            r.Role,
		Department:      r.Department,
		HireDate:        r.HireDate,
		Status:          domain.ProfileStatus(r.Status),
		AvatarURL:       r.AvatarURL,
		VacationBalance: r.VacationBalance,
		VacationUsed:    r.VacationUsed,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
}
