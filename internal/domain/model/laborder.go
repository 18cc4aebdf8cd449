package model

import (
	"encoding/json"
	"errors"
	"strings"
	"time"
)

// LabOrderStatus tracks a lab order from request to reported result.
type LabOrderStatus string

const (
	LabOrderOrdered    LabOrderStatus = "ordered"
	LabOrderInProgress LabOrderStatus = "in_progress"
	LabOrderCompleted  LabOrderStatus = "completed"
)

// Valid reports whether the lab order status is supported.
func (s LabOrderStatus) Valid() bool {
	switch s {
	case LabOrderOrdered, LabOrderInProgress, LabOrderCompleted:
		return true
	default:
		return false
	}
}

// LabOrdersListOptions controls paging and filtering for listing lab orders.
type LabOrdersListOptions struct {
	Limit     int
	Offset    int
	ClinicID  string
	PatientID *string
	Status    *LabOrderStatus
}

// LabOrder is a lab test requested by a doctor. Result holds the raw result
// document as reported by the technician; Flags are rule-derived markers
// (abnormal values and the like) computed when the result is recorded.
type LabOrder struct {
	ID          string          `json:"id"                     db:"id"`
	ClinicID    string          `json:"clinic_id"              db:"clinic_id"`
	PatientID   string          `json:"patient_id"             db:"patient_id"`
	DoctorID    string          `json:"doctor_id"              db:"doctor_id"`
	TestName    string          `json:"test_name"              db:"test_name"`
	Status      LabOrderStatus  `json:"status"                 db:"status"`
	Result      json.RawMessage `json:"result,omitempty"       db:"result"`
	Flags       []string        `json:"flags,omitempty"        db:"flags"`
	CompletedAt *time.Time      `json:"completed_at,omitempty" db:"completed_at"`
	CreatedAt   time.Time       `json:"created_at"             db:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"             db:"updated_at"`
}

// CreateLabOrderRequest represents parameters to create a LabOrder.
type CreateLabOrderRequest struct {
	PatientID string `json:"patient_id"`
	TestName  string `json:"test_name"`
}

// RecordLabResultRequest carries the technician-reported result document.
type RecordLabResultRequest struct {
	Result json.RawMessage `json:"result"`
}

// Validate validates CreateLabOrderRequest.
func (r *CreateLabOrderRequest) Validate() error {
	if strings.TrimSpace(r.PatientID) == "" {
		return errors.New("patient_id is required")
	}
	if strings.TrimSpace(r.TestName) == "" {
		return errors.New("test_name is required")
	}
	return nil
}

// Validate validates RecordLabResultRequest.
func (r *RecordLabResultRequest) Validate() error {
	if len(r.Result) == 0 {
		return errors.New("result is required")
	}
	if !json.Valid(r.Result) {
		return errors.New("result must be valid JSON")
	}
	return nil
}
