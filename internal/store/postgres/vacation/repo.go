// Package vacation implements the vacation day store using PostgreSQL.
package vacation

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/OlosLive/holidayGo/internal/domain"
	"github.com/OlosLive/holidayGo/internal/store/postgres"
)

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

var vacationColumns = []string{
	"id", "user_id", "vacation_date::text AS vacation_date",
	"year", "month", "day", "status", "created_at", "updated_at",
}

// Repo provides vacation day persistence backed by PostgreSQL.
type Repo struct {
	read  *pgxpool.Pool
	write *pgxpool.Pool
}

// New creates a new vacation repository.
func New(read, write *pgxpool.Pool) *Repo {
	return &Repo{read: read, write: write}
}

// FetchAll returns every vacation day ordered by date ascending.
func (r *Repo) FetchAll(ctx context.Context) ([]domain.Vacation, error) {
	return r.Fetch(ctx, domain.VacationFilter{})
}

// Fetch returns vacation days matching the filter, ordered by date
// ascending. Zero filter fields match everything.
func (r *Repo) Fetch(ctx context.Context, filter domain.VacationFilter) ([]domain.Vacation, error) {
	q := psql.Select(vacationColumns...).
		From("vacations").
		OrderBy("vacation_date ASC")

	if filter.UserID != "" {
		q = q.Where(squirrel.Eq{"user_id": filter.UserID})
	}
	if filter.Year != 0 {
		q = q.Where(squirrel.Eq{"year": filter.Year})
	}
	if filter.Month != 0 {
		q = q.Where(squirrel.Eq{"month": filter.Month})
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build fetch query: %w", err)
	}

	var rows []vacationRow
	if err := pgxscan.Select(ctx, r.read, &rows, sql, args...); err != nil {
		return nil, postgres.MapError(err, "vacations", filter.UserID)
	}

	out := make([]domain.Vacation, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

// Create inserts a single vacation day. A duplicate (user, year, month, day)
// tuple surfaces as domain.ErrAlreadyExists via the table's unique
// constraint. An empty id is filled with a fresh uuid.
func (r *Repo) Create(ctx context.Context, v domain.Vacation) (*domain.Vacation, error) {
	sql, args, err := insertQuery([]domain.Vacation{v}, "").ToSql()
	if err != nil {
		return nil, fmt.Errorf("build insert query: %w", err)
	}

	var row vacationRow
	if err := pgxscan.Get(ctx, r.write, &row, sql, args...); err != nil {
		return nil, postgres.MapError(err, "vacation", v.ID)
	}

	created := row.toDomain()
	return &created, nil
}

// CreateMany inserts a batch of vacation days in one statement. Days whose
// (user, year, month, day) tuple already exists are skipped silently, as are
// duplicate tuples within the batch itself. Only the rows actually inserted
// are returned.
func (r *Repo) CreateMany(ctx context.Context, batch []domain.Vacation) ([]domain.Vacation, error) {
	if len(batch) == 0 {
		return nil, nil
	}

	suffix := "ON CONFLICT (user_id, year, month, day) DO NOTHING RETURNING " +
		"id, user_id, vacation_date::text AS vacation_date, year, month, day, status, created_at, updated_at"

	sql, args, err := insertQuery(batch, suffix).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build batch insert query: %w", err)
	}

	var rows []vacationRow
	if err := pgxscan.Select(ctx, r.write, &rows, sql, args...); err != nil {
		return nil, postgres.MapError(err, "vacations", batch[0].UserID)
	}

	out := make([]domain.Vacation, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

// Delete removes the vacation day with the given id.
func (r *Repo) Delete(ctx context.Context, id string) error {
	tag, err := r.write.Exec(ctx, `DELETE FROM vacations WHERE id = $1`, id)
	if err != nil {
		return postgres.MapError(err, "vacation", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("vacation %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// DeleteMany removes the vacation days with the given ids. Ids that do not
// exist are ignored.
func (r *Repo) DeleteMany(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := r.write.Exec(ctx, `DELETE FROM vacations WHERE id = ANY($1)`, ids)
	if err != nil {
		return postgres.MapError(err, "vacations", ids[0])
	}
	return nil
}

// SubscribeVacations opens the row-level change feed on the vacations table.
func (r *Repo) SubscribeVacations(callback func(domain.VacationEvent)) (func(), error) {
	return postgres.Listen(r.read, postgres.VacationsChannel, func(op domain.EventType, raw json.RawMessage) {
		var row vacationRow
		if err := json.Unmarshal(raw, &row); err != nil {
			return
		}
		callback(domain.VacationEvent{Type: op, Vacation: row.toDomain()})
	})
}

func insertQuery(batch []domain.Vacation, suffix string) squirrel.InsertBuilder {
	q := psql.Insert("vacations").
		Columns("id", "user_id", "vacation_date", "year", "month", "day", "status")

	for _, v := range batch {
		id := v.ID
		if id == "" {
			id = uuid.NewString()
		}
		status := v.Status
		if status == "" {
			status = domain.VacationStatusPlanned
		}
		q = q.Values(id, v.UserID, v.Date, v.Year, v.Month, v.Day, status)
	}

	if suffix == "" {
		suffix = "RETURNING id, user_id, vacation_date::text AS vacation_date, year, month, day, status, created_at, updated_at"
	}
	return q.Suffix(suffix)
}

// vacationRow mirrors the vacations table. The db tags drive pgxscan
// mapping; the json tags match row_to_json output in change-feed payloads.
type vacationRow struct {
	ID           string    `db:"id" json:"id"`
	UserID       string    `db:"user_id" json:"user_id"`
	VacationDate string    `db:"vacation_date" json:"vacation_date"`
	Year         int       `db:"year" json:"year"`
	Month        int       `db:"month" json:"month"`
	Day          int       `db:"day" json:"day"`
	Status       string    `db:"status" json:"status"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

func (r vacationRow) toDomain() domain.Vacation {
	return domain.Vacation{
		ID:        r.ID,
		UserID:    r.UserID,
		Date:      r.VacationDate,
		Year:      r.Year,
		Month:     r.Month,
		Day:       r.Day,
		Status:    r.Status,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}
