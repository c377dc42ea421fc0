package domain

import (
	"strings"
	"time"
)

// ProfileStatus is the lifecycle tag of an employee profile.
type ProfileStatus string

const (
	StatusActive      ProfileStatus = "active"
	StatusInactive    ProfileStatus = "inactive"
	StatusVacationing ProfileStatus = "vacationing"
	StatusPending     ProfileStatus = "pending"
)

// Valid reports whether s is one of the known profile statuses.
func (s ProfileStatus) Valid() bool {
	switch s {
	case StatusActive, StatusInactive, StatusVacationing, StatusPending:
		return true
	}
	return false
}

// Profile represents one employee in the vacation dashboard.
// The ID is externally assigned (it mirrors the identity provider's user id),
// never generated by a store.
type Profile struct {
	ID              string
	Name            string
	Email           string
	Role            *string
	Department      *string
	HireDate        *string // ISO calendar date, e.g. "2021-03-15"
	Status          ProfileStatus
	AvatarURL       *string
	VacationBalance int // entitlement days remaining
	VacationUsed    int // days consumed; NOT recomputed when days are toggled
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Validate checks the fields a caller must supply on creation.
func (p *Profile) Validate() error {
	var errs []FieldError
	if strings.TrimSpace(p.ID) == "" {
		errs = append(errs, FieldError{Field: "id", Message: "is required"})
	}
	if strings.TrimSpace(p.Name) == "" {
		errs = append(errs, FieldError{Field: "name", Message: "is required"})
	}
	email := strings.TrimSpace(p.Email)
	if email == "" {
		errs = append(errs, FieldError{Field: "email", Message: "is required"})
	} else if !strings.Contains(email, "@") {
		errs = append(errs, FieldError{Field: "email", Message: "is not a valid address"})
	}
	if p.Status != "" && !p.Status.Valid() {
		errs = append(errs, FieldError{Field: "status", Message: "unknown status"})
	}
	if len(errs) > 0 {
		return &ValidationError{Errors: errs}
	}
	return nil
}

// ProfileUpdate is a partial patch. A nil field leaves the stored value
// unchanged; there is no way to null out a nullable column through it.
type ProfileUpdate struct {
	Name            *string
	Email           *string
	Role            *string
	Department      *string
	HireDate        *string
	Status          *ProfileStatus
	AvatarURL       *string
	VacationBalance *int
	VacationUsed    *int
}

// IsZero reports whether the patch carries no fields at all.
func (u ProfileUpdate) IsZero() bool {
	return u.Name == nil && u.Email == nil && u.Role == nil &&
		u.Department == nil && u.HireDate == nil && u.Status == nil &&
		u.AvatarURL == nil && u.VacationBalance == nil && u.VacationUsed == nil
}

// ApplyTo merges the patch into p and refreshes UpdatedAt.
func (u ProfileUpdate) ApplyTo(p *Profile, now time.Time) {
	if u.Name != nil {
		p.Name = *u.Name
	}
	if u.Email != nil {
		p.Email = *u.Email
	}
	if u.Role != nil {
		p.Role = u.Role
	}
	if u.Department != nil {
		p.Department = u.Department
	}
	if u.HireDate != nil {
		p.HireDate = u.HireDate
	}
	if u.Status != nil {
		p.Status = *u.Status
	}
	if u.AvatarURL != nil {
		p.AvatarURL = u.AvatarURL
	}
	if u.VacationBalance != nil {
		p.VacationBalance = *u.VacationBalance
	}
	if u.VacationUsed != nil {
		p.VacationUsed = *u.VacationUsed
	}
	p.UpdatedAt = now
}
