package service

import (
	"context"
	"fmt"
	"time"

	"github.com/caredesk/clinic-portal/internal/core"
	"github.com/caredesk/clinic-portal/internal/domain/model"
)

// LabOrderServiceOptions groups dependencies for LabOrderService.
type LabOrderServiceOptions struct {
	Repo core.LabOrderRepository
	// Rules derives flags when a result is recorded. Optional; when nil no
	// flags are computed.
	Rules *LabRuleService
}

// LabOrderService orchestrates the lab order lifecycle: ordered by a doctor,
// picked up by a technician, completed with a result document.
type LabOrderService struct {
	repo  core.LabOrderRepository
	rules *LabRuleService
}

// NewLabOrderService constructs a new LabOrderService.
func NewLabOrderService(opts LabOrderServiceOptions) *LabOrderService {
	return &LabOrderService{repo: opts.Repo, rules: opts.Rules}
}

// Create validates and creates a lab order on behalf of a doctor.
func (s *LabOrderService) Create(ctx context.Context, clinicID, doctorID string, req *model.CreateLabOrderRequest) (*model.LabOrder, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, clinicID, doctorID, req)
}

// GetByID retrieves a lab order scoped to a clinic.
func (s *LabOrderService) GetByID(ctx context.Context, clinicID, id string) (*model.LabOrder, error) {
	return s.repo.GetByID(ctx, clinicID, id)
}

// List returns lab orders matching the options.
func (s *LabOrderService) List(ctx context.Context, opts *model.LabOrdersListOptions) ([]*model.LabOrder, error) {
	normalized := normalizeLabOrderListOptions(opts)
	return s.repo.List(ctx, &normalized)
}

// Start moves an ordered lab order to in_progress.
func (s *LabOrderService) Start(ctx context.Context, clinicID, id string) (*model.LabOrder, error) {
	order, err := s.repo.GetByID(ctx, clinicID, id)
	if err != nil {
		return nil, err
	}
	if order.Status != model.LabOrderOrdered {
		return nil, fmt.Errorf("lab order is %s, only ordered orders can be started", order.Status)
	}
	return s.repo.SetStatus(ctx, clinicID, id, model.LabOrderInProgress)
}

// RecordResult completes a lab order with the technician-reported result,
// deriving flags from the configured ruleset.
func (s *LabOrderService) RecordResult(ctx context.Context, clinicID, id string, req *model.RecordLabResultRequest) (*model.LabOrder, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	order, err := s.repo.GetByID(ctx, clinicID, id)
	if err != nil {
		return nil, err
	}
	if order.Status == model.LabOrderCompleted {
		return nil, fmt.Errorf("lab order already completed")
	}

	var flags []string
	if s.rules != nil {
		flags, err = s.rules.Flags(req.Result)
		if err != nil {
			return nil, fmt.Errorf("evaluate result flags: %w", err)
		}
	}

	return s.repo.RecordResult(ctx, core.RecordLabResultParams{
		ClinicID:    clinicID,
		ID:          id,
		Result:      req.Result,
		Flags:       flags,
		CompletedAt: time.Now().UTC(),
	})
}

func normalizeLabOrderListOptions(opts *model.LabOrdersListOptions) model.LabOrdersListOptions {
	normalized := model.LabOrdersListOptions{}
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
