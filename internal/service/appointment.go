package service

import (
	"context"
	"fmt"

	"github.com/caredesk/clinic-portal/internal/core"
	"github.com/caredesk/clinic-portal/internal/domain/model"
)

// AppointmentServiceOptions groups dependencies for AppointmentService.
type AppointmentServiceOptions struct {
	Repo core.AppointmentRepository
}

// AppointmentService orchestrates appointment scheduling.
type AppointmentService struct {
	repo core.AppointmentRepository
}

// NewAppointmentService constructs a new AppointmentService.
func NewAppointmentService(opts AppointmentServiceOptions) *AppointmentService {
	return &AppointmentService{repo: opts.Repo}
}

// Create validates and schedules an appointment.
func (s *AppointmentService) Create(ctx context.Context, clinicID string, req *model.CreateAppointmentRequest) (*model.Appointment, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, clinicID, req)
}

// GetByID retrieves an appointment scoped to a clinic.
func (s *AppointmentService) GetByID(ctx context.Context, clinicID, id string) (*model.Appointment, error) {
	return s.repo.GetByID(ctx, clinicID, id)
}

// List returns appointments matching the options.
func (s *AppointmentService) List(ctx context.Context, opts *model.AppointmentsListOptions) ([]*model.Appointment, error) {
	normalized := normalizeAppointmentListOptions(opts)
	return s.repo.List(ctx, &normalized)
}

// Update validates and applies a partial update. Completed and cancelled
// appointments are terminal and cannot change.
func (s *AppointmentService) Update(ctx context.Context, clinicID, id string, req *model.UpdateAppointmentRequest) (*model.Appointment, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	current, err := s.repo.GetByID(ctx, clinicID, id)
	if err != nil {
		return nil, err
	}
	if current.Status != model.AppointmentScheduled {
		return nil, fmt.Errorf("appointment is %s and can no longer change", current.Status)
	}

	return s.repo.Update(ctx, clinicID, id, req)
}

// Cancel marks a scheduled appointment cancelled.
func (s *AppointmentService) Cancel(ctx context.Context, clinicID, id string) (*model.Appointment, error) {
	status := model.AppointmentCancelled
	return s.Update(ctx, clinicID, id, &model.UpdateAppointmentRequest{Status: &status})
}

// Complete marks a scheduled appointment completed.
func (s *AppointmentService) Complete(ctx context.Context, clinicID, id string) (*model.Appointment, error) {
	status := model.AppointmentCompleted
	return s.Update(ctx, clinicID, id, &model.UpdateAppointmentRequest{Status: &status})
}

// Delete removes an appointment.
func (s *AppointmentService) Delete(ctx context.Context, clinicID, id string) (bool, error) {
	return s.repo.Delete(ctx, clinicID, id)
}

func normalizeAppointmentListOptions(opts *model.AppointmentsListOptions) model.AppointmentsListOptions {
	normalized := model.AppointmentsListOptions{}
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
