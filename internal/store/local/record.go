package local

import (
	"time"

	"github.com/OlosLive/holidayGo/internal/domain"
)

// Wire representations persisted in the kv table. Column naming mirrors the
// remote schema so a dataset dumped from one backend reads back in the other.

type profileRecord struct {
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

func toProfileRecord(p domain.Profile) profileRecord {
	return profileRecord{
		ID:              p.ID,
		Name:            p.Name,
		Email:           p.Email,
		Role:            p.Role,
		Department:      p.Department,
		HireDate:        p.HireDate,
		Status:          string(p.Status),
		AvatarURL:       p.AvatarURL,
		VacationBalance: p.VacationBalance,
		VacationUsed:    p.VacationUsed,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}

func (r profileRecord) toDomain() domain.Profile {
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

type vacationRecord struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Date      string    `json:"vacation_date"`
	Year      int       `json:"year"`
	Month     int       `json:"month"`
	Day       int       `json:"day"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toVacationRecord(v domain.Vacation) vacationRecord {
	return vacationRecord{
		ID:        v.ID,
		UserID:    v.UserID,
		Date:      v.Date,
		Year:      v.Year,
		Month:     v.Month,
		Day:       v.Day,
		Status:    v.Status,
		CreatedAt: v.CreatedAt,
		UpdatedAt: v.UpdatedAt,
	}
}

func (r vacationRecord) toDomain() domain.Vacation {
	return domain.Vacation{
		ID:        r.ID,
		UserID:    r.UserID,
		Date:      r.Date,
		Year:      r.Year,
		Month:     r.Month,
		Day:       r.Day,
		Status:    r.Status,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}
