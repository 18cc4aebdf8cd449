package core

import (
	"context"
	"encoding/json"
	"time"

	"github.com/caredesk/clinic-portal/internal/domain/model"
)

// This file contains repository interface definitions (ports in hexagonal architecture).
// These interfaces define the contracts between the service layer and data layer.
// Service implementations should depend on these interfaces, not concrete implementations.

// PatientRepository defines the interface for patient data operations.
type PatientRepository interface {
	Create(ctx context.Context, clinicID string, req *model.CreatePatientRequest) (*model.Patient, error)
	GetByID(ctx context.Context, clinicID, id string) (*model.Patient, error)
	List(ctx context.Context, opts *model.PatientsListOptions) ([]*model.Patient, error)
	Count(ctx context.Context, opts *model.PatientsListOptions) (int, error)
	Update(ctx context.Context, clinicID, id string, req *model.UpdatePatientRequest) (*model.Patient, error)
	Delete(ctx context.Context, clinicID, id string) (bool, error)
}

// AppointmentRepository defines the interface for appointment data operations.
type AppointmentRepository interface {
	Create(ctx context.Context, clinicID string, req *model.CreateAppointmentRequest) (*model.Appointment, error)
	GetByID(ctx context.Context, clinicID, id string) (*model.Appointment, error)
	List(ctx context.Context, opts *model.AppointmentsListOptions) ([]*model.Appointment, error)
	Update(ctx context.Context, clinicID, id string, req *model.UpdateAppointmentRequest) (*model.Appointment, error)
	Delete(ctx context.Context, clinicID, id string) (bool, error)

	// FindUpcoming returns scheduled appointments starting inside the window,
	// across all clinics, for reminder delivery.
	FindUpcoming(ctx context.Context, from, to time.Time) ([]*model.Appointment, error)
}

// RecordLabResultParams groups parameters for LabOrderRepository.RecordResult.
type RecordLabResultParams struct {
	ClinicID    string
	ID          string
	Result      json.RawMessage
	Flags       []string
	CompletedAt time.Time
}

// LabOrderRepository defines the interface for lab order data operations.
type LabOrderRepository interface {
	Create(ctx context.Context, clinicID, doctorID string, req *model.CreateLabOrderRequest) (*model.LabOrder, error)
	GetByID(ctx context.Context, clinicID, id string) (*model.LabOrder, error)
	List(ctx context.Context, opts *model.LabOrdersListOptions) ([]*model.LabOrder, error)
	SetStatus(ctx context.Context, clinicID, id string, status model.LabOrderStatus) (*model.LabOrder, error)
	RecordResult(ctx context.Context, params RecordLabResultParams) (*model.LabOrder, error)
}

// PrescriptionRepository defines the interface for prescription data operations.
type PrescriptionRepository interface {
	Create(ctx context.Context, clinicID, doctorID string, req *model.CreatePrescriptionRequest) (*model.Prescription, error)
	GetByID(ctx context.Context, clinicID, id string) (*model.Prescription, error)
	List(ctx context.Context, opts *model.PrescriptionsListOptions) ([]*model.Prescription, error)
	SetStatus(ctx context.Context, clinicID, id string, status model.PrescriptionStatus) (*model.Prescription, error)
}

// ClinicRepository defines the interface for clinic (tenant) data operations.
type ClinicRepository interface {
	Create(ctx context.Context, name string) (*model.Clinic, error)
	GetByID(ctx context.Context, id string) (*model.Clinic, error)
	List(ctx context.Context, limit, offset int) ([]*model.Clinic, error)
}
