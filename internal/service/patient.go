package service

import (
	"context"

	"github.com/caredesk/clinic-portal/internal/core"
	"github.com/caredesk/clinic-portal/internal/domain/model"
)

// PatientServiceOptions groups dependencies for PatientService.
type PatientServiceOptions struct {
	Repo core.PatientRepository
}

// PatientService orchestrates patient CRUD, always scoped to a clinic.
type PatientService struct {
	repo core.PatientRepository
}

// NewPatientService constructs a new PatientService.
func NewPatientService(opts PatientServiceOptions) *PatientService {
	return &PatientService{repo: opts.Repo}
}

// Create validates and creates a patient record.
func (s *PatientService) Create(ctx context.Context, clinicID string, req *model.CreatePatientRequest) (*model.Patient, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, clinicID, req)
}

// GetByID retrieves a patient scoped to a clinic.
func (s *PatientService) GetByID(ctx context.Context, clinicID, id string) (*model.Patient, error) {
	return s.repo.GetByID(ctx, clinicID, id)
}

// PatientPage is a page of patients with the total matching count.
type PatientPage struct {
	Patients []*model.Patient `json:"patients"`
	Total    int              `json:"total"`
}

// List returns a page of patients plus the total count for the same filter.
func (s *PatientService) List(ctx context.Context, opts *model.PatientsListOptions) (*PatientPage, error) {
	normalized := normalizePatientListOptions(opts)

	patients, err := s.repo.List(ctx, &normalized)
	if err != nil {
		return nil, err
	}
	total, err := s.repo.Count(ctx, &normalized)
	if err != nil {
		return nil, err
	}
	return &PatientPage{Patients: patients, Total: total}, nil
}

// Update validates and applies a partial update.
func (s *PatientService) Update(ctx context.Context, clinicID, id string, req *model.UpdatePatientRequest) (*model.Patient, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, clinicID, id, req)
}

// Delete removes a patient record.
func (s *PatientService) Delete(ctx context.Context, clinicID, id string) (bool, error) {
	return s.repo.Delete(ctx, clinicID, id)
}

func normalizePatientListOptions(opts *model.PatientsListOptions) model.PatientsListOptions {
	normalized := model.PatientsListOptions{}
	if opts != nil {
		normalized = *opts
	}
	if normalized.Limit <= 0 {
		normalized.Limit = 50
	}
	if normalized.Offset < 0 {
		normalized.Offset = 0
	}
	if normalized.Sort == "" {
		normalized.Sort = "created_at"
	}
	if normalized.Dir == "" {
		normalized.Dir = "desc"
	}
	return normalized
}
