package model

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"
)

const maxPatientNameLen = 255

// PatientsListOptions controls paging and filtering for listing patients.
// Sort supports "created_at" and "name"; Dir supports "asc"/"desc"
// (case-insensitive, normalized internally). Q matches name via ILIKE.
type PatientsListOptions struct {
	Limit    int
	Offset   int
	Q        *string // substring match on name (ILIKE)
	ClinicID string  // always scoped, never optional
	Sort     string
	Dir      string
}

// Patient is a person receiving care at a clinic.
type Patient struct {
	ID          string     `json:"id"                      db:"id"`
	ClinicID    string     `json:"clinic_id"               db:"clinic_id"`
	UserID      *string    `json:"user_id,omitempty"       db:"user_id"`
	Name        string     `json:"name"                    db:"name"`
	Email       *string    `json:"email,omitempty"         db:"email"`
	Phone       *string    `json:"phone,omitempty"         db:"phone"`
	Address     *string    `json:"address,omitempty"       db:"address"`
	DateOfBirth *time.Time `json:"date_of_birth,omitempty" db:"date_of_birth"`
	CreatedAt   time.Time  `json:"created_at"              db:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"              db:"updated_at"`
}

// CreatePatientRequest represents parameters to create a Patient.
type CreatePatientRequest struct {
	Name        string     `json:"name"`
	Email       *string    `json:"email,omitempty"`
	Phone       *string    `json:"phone,omitempty"`
	Address     *string    `json:"address,omitempty"`
	DateOfBirth *time.Time `json:"date_of_birth,omitempty"`
}

// UpdatePatientRequest represents parameters to update a Patient.
type UpdatePatientRequest struct {
	Name        *string    `json:"name,omitempty"`
	Email       *string    `json:"email,omitempty"`
	Phone       *string    `json:"phone,omitempty"`
	Address     *string    `json:"address,omitempty"`
	DateOfBirth *time.Time `json:"date_of_birth,omitempty"`
}

// Validate validates CreatePatientRequest.
func (r *CreatePatientRequest) Validate() error {
	name := strings.TrimSpace(r.Name)
	if name == "" {
		return errors.New("name is required and cannot be empty")
	}
	if utf8.RuneCountInString(name) > maxPatientNameLen {
		return errors.New("name cannot exceed 255 characters")
	}
	if r.Email != nil && !strings.Contains(*r.Email, "@") {
		return errors.New("email is not valid")
	}
	return nil
}

// HasUpdates reports whether any field is set in UpdatePatientRequest.
func (r *UpdatePatientRequest) HasUpdates() bool {
	return r.Name != nil || r.Email != nil || r.Phone != nil || r.Address != nil || r.DateOfBirth != nil
}

// Validate validates UpdatePatientRequest, ensuring at least one field is set.
func (r *UpdatePatientRequest) Validate() error {
	if !r.HasUpdates() {
		return errors.New("at least one field must be updated")
	}
	if r.Name != nil {
		n := strings.TrimSpace(*r.Name)
		if n == "" {
			return errors.New("name cannot be empty")
		}
		if utf8.RuneCountInString(n) > maxPatientNameLen {
			return errors.New("name cannot exceed 255 characters")
		}
	}
	if r.Email != nil && !strings.Contains(*r.Email, "@") {
		return errors.New("email is not valid")
	}
	return nil
}
