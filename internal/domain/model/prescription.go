package model

import (
	"errors"
	"strings"
	"time"
)

// PrescriptionStatus tracks dispensing state at the pharmacy counter.
type PrescriptionStatus string

const (
	PrescriptionPending   PrescriptionStatus = "pending"
	PrescriptionDispensed PrescriptionStatus = "dispensed"
	PrescriptionCancelled PrescriptionStatus = "cancelled"
)

// Valid reports whether the prescription status is supported.
func (s PrescriptionStatus) Valid() bool {
	switch s {
	case PrescriptionPending, PrescriptionDispensed, PrescriptionCancelled:
		return true
	default:
		return false
	}
}

// PrescriptionsListOptions controls paging and filtering for listing prescriptions.
type PrescriptionsListOptions struct {
	Limit     int
	Offset    int
	ClinicID  string
	PatientID *string
	DoctorID  *string
	Status    *PrescriptionStatus
}

// Prescription is a medication order written by a doctor for a patient.
type Prescription struct {
	ID           string             `json:"id"                     db:"id"`
	ClinicID     string             `json:"clinic_id"              db:"clinic_id"`
	PatientID    string             `json:"patient_id"             db:"patient_id"`
	DoctorID     string             `json:"doctor_id"              db:"doctor_id"`
	Medication   string             `json:"medication"             db:"medication"`
	Dosage       string             `json:"dosage"                 db:"dosage"`
	Instructions *string            `json:"instructions,omitempty" db:"instructions"`
	Status       PrescriptionStatus `json:"status"                 db:"status"`
	DispensedAt  *time.Time         `json:"dispensed_at,omitempty" db:"dispensed_at"`
	CreatedAt    time.Time          `json:"created_at"             db:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at"             db:"updated_at"`
}

// CreatePrescriptionRequest represents parameters to create a Prescription.
type CreatePrescriptionRequest struct {
	PatientID    string  `json:"patient_id"`
	Medication   string  `json:"medication"`
	Dosage       string  `json:"dosage"`
	Instructions *string `json:"instructions,omitempty"`
}

// Validate validates CreatePrescriptionRequest.
func (r *CreatePrescriptionRequest) Validate() error {
	if strings.TrimSpace(r.PatientID) == "" {
		return errors.New("patient_id is required")
	}
	if strings.TrimSpace(r.Medication) == "" {
		return errors.New("medication is required")
	}
	if strings.TrimSpace(r.Dosage) == "" {
		return errors.New("dosage is required")
	}
	return nil
}
