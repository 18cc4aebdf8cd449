package service

import (
	"context"
	"fmt"

	"github.com/caredesk/clinic-portal/internal/core"
	"github.com/caredesk/clinic-portal/internal/domain/model"
)

// PrescriptionServiceOptions groups dependencies for PrescriptionService.
type PrescriptionServiceOptions struct {
	Repo core.PrescriptionRepository
}

// PrescriptionService orchestrates the prescription lifecycle: written by a
// doctor, dispensed or cancelled at the pharmacy counter.
type PrescriptionService struct {
	repo core.PrescriptionRepository
}

// NewPrescriptionService constructs a new PrescriptionService.
func NewPrescriptionService(opts PrescriptionServiceOptions) *PrescriptionService {
	return &PrescriptionService{repo: opts.Repo}
}

// Create validates and writes a prescription on behalf of a doctor.
func (s *PrescriptionService) Create(ctx context.Context, clinicID, doctorID string, req *model.CreatePrescriptionRequest) (*model.Prescription, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, clinicID, doctorID, req)
}

// GetByID retrieves a prescription scoped to a clinic.
func (s *PrescriptionService) GetByID(ctx context.Context, clinicID, id string) (*model.Prescription, error) {
	return s.repo.GetByID(ctx, clinicID, id)
}

// List returns prescriptions matching the options.
func (s *PrescriptionService) List(ctx context.Context, opts *model.PrescriptionsListOptions) ([]*model.Prescription, error) {
	normalized := normalizePrescriptionListOptions(opts)
	return s.repo.List(ctx, &normalized)
}

// Dispense marks a pending prescription dispensed.
func (s *PrescriptionService) Dispense(ctx context.Context, clinicID, id string) (*model.Prescription, error) {
	return s.transition(ctx, clinicID, id, model.PrescriptionDispensed)
}

// Cancel marks a pending prescription cancelled.
func (s *PrescriptionService) Cancel(ctx context.Context, clinicID, id string) (*model.Prescription, error) {
	return s.transition(ctx, clinicID, id, model.PrescriptionCancelled)
}

// transition enforces that only pending prescriptions change state.
func (s *PrescriptionService) transition(ctx context.Context, clinicID, id string, to model.PrescriptionStatus) (*model.Prescription, error) {
	current, err := s.repo.GetByID(ctx, clinicID, id)
	if err != nil {
		return nil, err
	}
	if current.Status != model.PrescriptionPending {
		return nil, fmt.Errorf("prescription is %s, only pending prescriptions can become %s", current.Status, to)
	}
	return s.repo.SetStatus(ctx, clinicID, id, to)
}

func normalizePrescriptionListOptions(opts *model.PrescriptionsListOptions) model.PrescriptionsListOptions {
	normalized := model.PrescriptionsListOptions{}
	if opts != nil {
		normalized = *opts
	}
	if normalized.Limit <= 0 {
		normalized.Limit = 50
	}
	if normalized.Offset < 0 {
		normalized.Offset = 0
	}
	return normalized
}
