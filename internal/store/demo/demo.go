// Package demo holds the fixed demonstration dataset the local backend seeds
// on first use and cmd/seed can load into any backend.
package demo

import (
	"fmt"
	"time"

	"github.com/OlosLive/holidayGo/internal/domain"
)

func strptr(s string) *string { return &s }

type seedProfile struct {
	id, name, email, role, department, hireDate string
	status                                      domain.ProfileStatus
	balance, used                               int
}

// Annual entitlement is 30 days; balance = accumulated entitlement - used.
// The last two members carry critical accumulated balances (>= 45 days at
// risk of expiring) so threshold reporting has something to show.
var seedProfiles = []seedProfile{
	{"demo-user-1", "Ana Silva", "ana.silva@example.com", "Senior Developer", "Engineering", "2021-03-15", domain.StatusActive, 25, 5},
	{"demo-user-2", "Carlos Oliveira", "carlos.oliveira@example.com", "Product Manager", "Product", "2020-06-01", domain.StatusActive, 20, 10},
	{"demo-user-3", "Beatriz Santos", "beatriz.santos@example.com", "UX Designer", "Design", "2022-01-10", domain.StatusActive, 30, 0},
	{"demo-user-4", "Daniel Costa", "daniel.costa@example.com", "Developer", "Engineering", "2023-02-20", domain.StatusActive, 15, 15},
	{"demo-user-5", "Elena Rodrigues", "elena.rodrigues@example.com", "Data Analyst", "Analytics", "2021-09-05", domain.StatusActive, 10, 20},
	{"demo-user-6", "Fernando Lima", "fernando.lima@example.com", "Tech Lead", "Engineering", "2019-11-12", domain.StatusInactive, 0, 30},
	{"demo-user-7", "Gustavo Mendes", "gustavo.mendes@example.com", "Software Architect", "Engineering", "2018-03-01", domain.StatusActive, 52, 8},
	{"demo-user-8", "Helena Barbosa", "helena.barbosa@example.com", "Project Manager", "PMO", "2017-08-15", domain.StatusActive, 48, 12},
}

// Profiles returns the eight demonstration profiles.
func Profiles(now time.Time) []domain.Profile {
	out := make([]domain.Profile, 0, len(seedProfiles))
	for _, s := range seedProfiles {
		hired, _ := time.Parse("2006-01-02", s.hireDate)
		out = append(out, domain.Profile{
			ID:              s.id,
			Name:            s.name,
			Email:           s.email,
			Role:            strptr(s.role),
			Department:      strptr(s.department),
			HireDate:        strptr(s.hireDate),
			Status:          s.status,
			VacationBalance: s.balance,
			VacationUsed:    s.used,
			CreatedAt:       hired,
			UpdatedAt:       now,
		})
	}
	return out
}

// Vacations generates demonstration vacation days spanning the current and
// next month relative to now: Ana 10-14 this month, Carlos 20-25 this month
// plus 1-4 next month, Daniel 5-19 next month.
func Vacations(now time.Time) []domain.Vacation {
	year, month := now.Year(), int(now.Month())
	nextMonth := month + 1
	nextYear := year
	if nextMonth > 12 {
		nextMonth = 1
		nextYear++
	}

	var out []domain.Vacation
	add := func(userID string, y, m, from, to int) {
		for day := from; day <= to; day++ {
			v := domain.NewVacation(userID, y, m, day)
			v.ID = fmt.Sprintf("demo-vacation-%d", len(out)+1)
			v.CreatedAt = now
			v.UpdatedAt = now
			out = append(out, v)
		}
	}

	add("demo-user-1", year, month, 10, 14)
	add("demo-user-2", year, month, 20, 25)
	add("demo-user-2", nextYear, nextMonth, 1, 4)
	add("demo-user-4", nextYear, nextMonth, 5, 19)

	return out
}
