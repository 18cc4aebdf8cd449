package service

import (
	"context"
	"time"

	"github.com/caredesk/clinic-portal/internal/core"
	"github.com/caredesk/clinic-portal/internal/domain/model"
	"golang.org/x/sync/errgroup"
)

// dashboardSectionLimit bounds each dashboard section.
const dashboardSectionLimit = 10

// DashboardServiceOptions groups dependencies for DashboardService.
type DashboardServiceOptions struct {
	Patients      core.PatientRepository
	Appointments  core.AppointmentRepository
	Prescriptions core.PrescriptionRepository
	LabOrders     core.LabOrderRepository
}

// DashboardService assembles the per-clinic dashboard summary by fanning out
// over the repositories concurrently.
type DashboardService struct {
	patients      core.PatientRepository
	appointments  core.AppointmentRepository
	prescriptions core.PrescriptionRepository
	labOrders     core.LabOrderRepository
}

// NewDashboardService constructs a new DashboardService.
func NewDashboardService(opts DashboardServiceOptions) *DashboardService {
	return &DashboardService{
		patients:      opts.Patients,
		appointments:  opts.Appointments,
		prescriptions: opts.Prescriptions,
		labOrders:     opts.LabOrders,
	}
}

// DashboardSummary is the clinic-wide snapshot rendered on role dashboards.
type DashboardSummary struct {
	PatientCount         int                   `json:"patient_count"`
	TodaysAppointments   []*model.Appointment  `json:"todays_appointments"`
	PendingPrescriptions []*model.Prescription `json:"pending_prescriptions"`
	OpenLabOrders        []*model.LabOrder     `json:"open_lab_orders"`
}

// Summary gathers the dashboard sections for a clinic. Sections load
// concurrently; the first failure aborts the rest.
func (s *DashboardService) Summary(ctx context.Context, clinicID string) (*DashboardSummary, error) {
	summary := &DashboardSummary{}

	now := time.Now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	dayEnd := dayStart.Add(24 * time.Hour)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		count, err := s.patients.Count(gctx, &model.PatientsListOptions{ClinicID: clinicID, Limit: 1})
		if err != nil {
			return err
		}
		summary.PatientCount = count
		return nil
	})

	g.Go(func() error {
		status := model.AppointmentScheduled
		appts, err := s.appointments.List(gctx, &model.AppointmentsListOptions{
			ClinicID: clinicID,
			Status:   &status,
			From:     &dayStart,
			To:       &dayEnd,
			Limit:    dashboardSectionLimit,
		})
		if err != nil {
			return err
		}
		summary.TodaysAppointments = appts
		return nil
	})

	g.Go(func() error {
		status := model.PrescriptionPending
		scripts, err := s.prescriptions.List(gctx, &model.PrescriptionsListOptions{
			ClinicID: clinicID,
			Status:   &status,
			Limit:    dashboardSectionLimit,
		})
		if err != nil {
			return err
		}
		summary.PendingPrescriptions = scripts
		return nil
	})

	g.Go(func() error {
		status := model.LabOrderOrdered
		ordered, err := s.labOrders.List(gctx, &model.LabOrdersListOptions{
			ClinicID: clinicID,
			Status:   &status,
			Limit:    dashboardSectionLimit,
		})
		if err != nil {
			return err
		}
		inProgress := model.LabOrderInProgress
		active, err := s.labOrders.List(gctx, &model.LabOrdersListOptions{
			ClinicID: clinicID,
			Status:   &inProgress,
			Limit:    dashboardSectionLimit,
		})
		if err != nil {
			return err
		}
		summary.OpenLabOrders = append(ordered, active...)
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return summary, nil
}
