// Package devseed populates a development database with a demo clinic and a
// handful of patients, appointments, prescriptions and lab orders so the
// portal has something to show right after startup. It is only invoked in
// dev mode and is safe to run repeatedly.
package devseed

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/caredesk/clinic-portal/internal/data"
	"github.com/caredesk/clinic-portal/internal/domain/model"
	"github.com/caredesk/clinic-portal/internal/service"
)

const demoClinicName = "Demo Family Clinic"

// Matches the in-memory directory's doctor account so seeded records line
// up with what a dev sees after logging in.
const seedDoctorID = "mock-doctor"

// Services bundles the dependencies needed for development seeding.
type Services struct {
	DB            *sql.DB
	clinics       *data.ClinicRepo
	patients      *service.PatientService
	appointments  *service.AppointmentService
	prescriptions *service.PrescriptionService
	labOrders     *service.LabOrderService
}

// NewServices constructs all required services for seeding using the provided DB.
func NewServices(db *sql.DB) Services {
	rules, _ := service.NewLabRuleService(service.LabRuleServiceOptions{})
	return Services{
		DB:      db,
		clinics: data.NewClinicRepo(db),
		patients: service.NewPatientService(service.PatientServiceOptions{
			Repo: data.NewPatientRepo(db),
		}),
		appointments: service.NewAppointmentService(service.AppointmentServiceOptions{
			Repo: data.NewAppointmentRepo(db),
		}),
		prescriptions: service.NewPrescriptionService(service.PrescriptionServiceOptions{
			Repo: data.NewPrescriptionRepo(db),
		}),
		labOrders: service.NewLabOrderService(service.LabOrderServiceOptions{
			Repo:  data.NewLabOrderRepo(db),
			Rules: rules,
		}),
	}
}

// Run executes the full development seeding workflow against the provided DB.
// It returns the ID of the demo clinic so the caller can scope dev sessions
// to it.
func Run(ctx context.Context, svcs Services, logger *slog.Logger) (string, error) {
	clinic, err := ensureClinic(ctx, svcs.clinics, logger)
	if err != nil {
		return "", err
	}

	patients, failures := seedPatients(ctx, svcs.patients, clinic.ID, logger)
	if len(patients) > 0 {
		failures += seedAppointments(ctx, svcs.appointments, clinic.ID, patients, logger)
		failures += seedPrescriptions(ctx, svcs.prescriptions, clinic.ID, patients, logger)
		failures += seedLabOrders(ctx, svcs.labOrders, clinic.ID, patients, logger)
	}

	if failures > 0 {
		return clinic.ID, fmt.Errorf("%d seed errors; check logs", failures)
	}
	return clinic.ID, nil
}

// ensureClinic reuses the first existing clinic or creates the demo one.
func ensureClinic(ctx context.Context, repo *data.ClinicRepo, logger *slog.Logger) (*model.Clinic, error) {
	existing, err := repo.List(ctx, 1, 0)
	if err != nil {
		return nil, fmt.Errorf("list clinics: %w", err)
	}
	if len(existing) > 0 {
		if logger != nil {
			logger.InfoContext(ctx, "reusing existing clinic for dev seed",
				"clinic_id", existing[0].ID, "name", existing[0].Name)
		}
		return existing[0], nil
	}

	clinic, err := repo.Create(ctx, demoClinicName)
	if err != nil {
		return nil, fmt.Errorf("create demo clinic: %w", err)
	}
	if logger != nil {
		logger.InfoContext(ctx, "created demo clinic", "clinic_id", clinic.ID, "name", clinic.Name)
	}
	return clinic, nil
}

func seedPatients(
	ctx context.Context,
	svc *service.PatientService,
	clinicID string,
	logger *slog.Logger,
) ([]*model.Patient, int) {
	page, err := svc.List(ctx, &model.PatientsListOptions{ClinicID: clinicID, Limit: 50})
	if err != nil {
		if logger != nil {
			logger.ErrorContext(ctx, "failed to list patients for seeding", "error", err)
		}
		return nil, 1
	}
	byName := make(map[string]*model.Patient, len(page.Patients))
	for _, p := range page.Patients {
		byName[p.Name] = p
	}

	failures := 0
	out := make([]*model.Patient, 0, len(seedPatientRequests))
	for _, req := range seedPatientRequests {
		if existing, ok := byName[req.Name]; ok {
			out = append(out, existing)
			continue
		}
		created, err := svc.Create(ctx, clinicID, &req)
		if err != nil {
			if errors.Is(err, data.ErrDuplicateRecord) {
				continue
			}
			if logger != nil {
				logger.ErrorContext(ctx, "failed to create patient", "name", req.Name, "error", err)
			}
			failures++
			continue
		}
		if logger != nil {
			logger.InfoContext(ctx, "created patient", "name", created.Name, "id", created.ID)
		}
		out = append(out, created)
	}
	return out, failures
}

var seedPatientRequests = []model.CreatePatientRequest{
	{Name: "Maria Santos", Email: ptr("maria.santos@example.com"), Phone: ptr("+1-555-0101")},
	{Name: "James Okafor", Email: ptr("james.okafor@example.com"), Phone: ptr("+1-555-0102")},
	{Name: "Lena Fischer", Email: ptr("lena.fischer@example.com")},
	{Name: "Tommy Nguyen", Phone: ptr("+1-555-0104")},
}

func seedAppointments(
	ctx context.Context,
	svc *service.AppointmentService,
	clinicID string,
	patients []*model.Patient,
	logger *slog.Logger,
) int {
	existing, err := svc.List(ctx, &model.AppointmentsListOptions{ClinicID: clinicID, Limit: 1})
	if err != nil {
		if logger != nil {
			logger.ErrorContext(ctx, "failed to list appointments for seeding", "error", err)
		}
		return 1
	}
	if len(existing) > 0 {
		return 0
	}

	failures := 0
	base := time.Now().Add(2 * time.Hour).Truncate(time.Hour)
	for i, patient := range patients {
		req := model.CreateAppointmentRequest{
			PatientID:   patient.ID,
			DoctorID:    seedDoctorID,
			ScheduledAt: base.Add(time.Duration(i) * 24 * time.Hour),
			Notes:       ptr("routine checkup"),
		}
		if _, err := svc.Create(ctx, clinicID, &req); err != nil {
			if logger != nil {
				logger.ErrorContext(ctx, "failed to create appointment", "patient_id", patient.ID, "error", err)
			}
			failures++
		}
	}
	return failures
}

func seedPrescriptions(
	ctx context.Context,
	svc *service.PrescriptionService,
	clinicID string,
	patients []*model.Patient,
	logger *slog.Logger,
) int {
	existing, err := svc.List(ctx, &model.PrescriptionsListOptions{ClinicID: clinicID, Limit: 1})
	if err != nil {
		if logger != nil {
			logger.ErrorContext(ctx, "failed to list prescriptions for seeding", "error", err)
		}
		return 1
	}
	if len(existing) > 0 {
		return 0
	}

	meds := []model.CreatePrescriptionRequest{
		{Medication: "Amoxicillin", Dosage: "500mg", Instructions: ptr("three times daily with food")},
		{Medication: "Lisinopril", Dosage: "10mg", Instructions: ptr("once daily in the morning")},
	}
	failures := 0
	for i, req := range meds {
		req.PatientID = patients[i%len(patients)].ID
		if _, err := svc.Create(ctx, clinicID, seedDoctorID, &req); err != nil {
			if logger != nil {
				logger.ErrorContext(ctx, "failed to create prescription", "medication", req.Medication, "error", err)
			}
			failures++
		}
	}
	return failures
}

func seedLabOrders(
	ctx context.Context,
	svc *service.LabOrderService,
	clinicID string,
	patients []*model.Patient,
	logger *slog.Logger,
) int {
	existing, err := svc.List(ctx, &model.LabOrdersListOptions{ClinicID: clinicID, Limit: 1})
	if err != nil {
		if logger != nil {
			logger.ErrorContext(ctx, "failed to list lab orders for seeding", "error", err)
		}
		return 1
	}
	if len(existing) > 0 {
		return 0
	}

	tests := []string{"Complete Blood Count", "Basic Metabolic Panel"}
	failures := 0
	for i, name := range tests {
		req := model.CreateLabOrderRequest{
			PatientID: patients[i%len(patients)].ID,
			TestName:  name,
		}
		if _, err := svc.Create(ctx, clinicID, seedDoctorID, &req); err != nil {
			if logger != nil {
				logger.ErrorContext(ctx, "failed to create lab order", "test_name", name, "error", err)
			}
			failures++
		}
	}
	return failures
}

func ptr(s string) *string { return &s }
