package domain

import (
	"fmt"
	"time"
)

// VacationStatusPlanned is the only status the scheduling flow assigns today.
// The column exists so approval workflows can be added without a migration.
const VacationStatusPlanned = "planned"

// Vacation represents one calendar day an employee is scheduled to be away.
// Year/Month/Day are denormalized from Date; Month is 1-indexed.
type Vacation struct {
	ID        string
	UserID    string
	Date      string // canonical ISO calendar date, e.g. "2026-08-29"
	Year      int
	Month     int
	Day       int
	Status    string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// VacationKey is the identity tuple: at most one record may exist per key.
type VacationKey struct {
	UserID string
	Year   int
	Month  int
	Day    int
}

// Key returns the record's identity tuple.
func (v *Vacation) Key() VacationKey {
	return VacationKey{UserID: v.UserID, Year: v.Year, Month: v.Month, Day: v.Day}
}

// VacationDate composes the canonical zero-padded date string.
func VacationDate(year, month, day int) string {
	return fmt.Sprintf("%04d-%02d-%02d", year, month, day)
}

// NewVacation builds an unsaved planned vacation day for the given tuple.
// The store assigns the ID and timestamps.
func NewVacation(userID string, year, month, day int) Vacation {
	return Vacation{
		UserID: userID,
		Date:   VacationDate(year, month, day),
		Year:   year,
		Month:  month,
		Day:    day,
		Status: VacationStatusPlanned,
	}
}

// VacationFilter narrows a store-side vacation query.
// Zero values mean "no constraint on this field".
type VacationFilter struct {
	UserID string
	Year   int
	Month  int
}

// Matches reports whether v satisfies every set constraint.
func (f VacationFilter) Matches(v *Vacation) bool {
	if f.UserID != "" && v.UserID != f.UserID {
		return false
	}
	if f.Year != 0 && v.Year != f.Year {
		return false
	}
	if f.Month != 0 && v.Month != f.Month {
		return false
	}
	return true
}
