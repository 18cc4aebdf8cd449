package model

import (
	"errors"
	"strings"
	"time"
)

// AppointmentStatus tracks where an appointment is in its lifecycle.
type AppointmentStatus string

const (
	AppointmentScheduled AppointmentStatus = "scheduled"
	AppointmentCompleted AppointmentStatus = "completed"
	AppointmentCancelled AppointmentStatus = "cancelled"
)

// Valid reports whether the appointment status is supported.
func (s AppointmentStatus) Valid() bool {
	switch s {
	case AppointmentScheduled, AppointmentCompleted, AppointmentCancelled:
		return true
	default:
		return false
	}
}

// ParseAppointmentStatus normalizes a status string and reports whether it is supported.
func ParseAppointmentStatus(value string) (AppointmentStatus, bool) {
	s := AppointmentStatus(strings.ToLower(strings.TrimSpace(value)))
	if s.Valid() {
		return s, true
	}
	return "", false
}

// AppointmentsListOptions controls paging and filtering for listing appointments.
type AppointmentsListOptions struct {
	Limit     int
	Offset    int
	ClinicID  string
	PatientID *string
	DoctorID  *string
	Status    *AppointmentStatus
	From      *time.Time // scheduled_at >= From
	To        *time.Time // scheduled_at < To
}

// Appointment is a scheduled visit between a patient and a doctor.
type Appointment struct {
	ID          string            `json:"id"              db:"id"`
	ClinicID    string            `json:"clinic_id"       db:"clinic_id"`
	PatientID   string            `json:"patient_id"      db:"patient_id"`
	DoctorID    string            `json:"doctor_id"       db:"doctor_id"`
	ScheduledAt time.Time         `json:"scheduled_at"    db:"scheduled_at"`
	Status      AppointmentStatus `json:"status"          db:"status"`
	Notes       *string           `json:"notes,omitempty" db:"notes"`
	CreatedAt   time.Time         `json:"created_at"      db:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"      db:"updated_at"`
}

// CreateAppointmentRequest represents parameters to create an Appointment.
type CreateAppointmentRequest struct {
	PatientID   string    `json:"patient_id"`
	DoctorID    string    `json:"doctor_id"`
	ScheduledAt time.Time `json:"scheduled_at"`
	Notes       *string   `json:"notes,omitempty"`
}

// UpdateAppointmentRequest represents parameters to update an Appointment.
type UpdateAppointmentRequest struct {
	ScheduledAt *time.Time         `json:"scheduled_at,omitempty"`
	Status      *AppointmentStatus `json:"status,omitempty"`
	Notes       *string            `json:"notes,omitempty"`
}

// Validate validates CreateAppointmentRequest.
func (r *CreateAppointmentRequest) Validate() error {
	if strings.TrimSpace(r.PatientID) == "" {
		return errors.New("patient_id is required")
	}
	if strings.TrimSpace(r.DoctorID) == "" {
		return errors.New("doctor_id is required")
	}
	if r.ScheduledAt.IsZero() {
		return errors.New("scheduled_at is required")
	}
	return nil
}

// HasUpdates reports whether any field is set in UpdateAppointmentRequest.
func (r *UpdateAppointmentRequest) HasUpdates() bool {
	return r.ScheduledAt != nil || r.Status != nil || r.Notes != nil
}

// Validate validates UpdateAppointmentRequest.
func (r *UpdateAppointmentRequest) Validate() error {
	if !r.HasUpdates() {
		return errors.New("at least one field must be updated")
	}
	if r.ScheduledAt != nil && r.ScheduledAt.IsZero() {
		return errors.New("scheduled_at cannot be zero")
	}
	if r.Status != nil {
		s, ok := ParseAppointmentStatus(string(*r.Status))
		if !ok {
			return errors.New("invalid status")
		}
		*r.Status = s
	}
	return nil
}
