package bootstrap

import (
	"database/sql"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/caredesk/clinic-portal/config"
	"github.com/caredesk/clinic-portal/internal/adapters/reminders"
	"github.com/caredesk/clinic-portal/internal/data"
	"github.com/caredesk/clinic-portal/internal/service"
)

// ServiceContainer holds all application services.
type ServiceContainer struct {
	Auth          *service.AuthService
	Patients      *service.PatientService
	Appointments  *service.AppointmentService
	Prescriptions *service.PrescriptionService
	LabOrders     *service.LabOrderService
	Dashboard     *service.DashboardService
	Clinics       *data.ClinicRepo
	Reminders     *reminders.Runner
}

// ServiceDeps groups dependencies for service initialization.
type ServiceDeps struct {
	Config      *config.AppConfig
	DB          *sql.DB
	RedisClient redis.UniversalClient
	Logger      *slog.Logger
}

// serviceRepositories groups data adapters backing service ports.
type serviceRepositories struct {
	PatientRepo      *data.PatientRepo
	AppointmentRepo  *data.AppointmentRepo
	PrescriptionRepo *data.PrescriptionRepo
	LabOrderRepo     *data.LabOrderRepo
	ClinicRepo       *data.ClinicRepo
}

// buildRepositories builds repositories backing service ports; no business rules here.
func buildRepositories(db *sql.DB) *serviceRepositories {
	return &serviceRepositories{
		PatientRepo:      data.NewPatientRepo(db),
		AppointmentRepo:  data.NewAppointmentRepo(db),
		PrescriptionRepo: data.NewPrescriptionRepo(db),
		LabOrderRepo:     data.NewLabOrderRepo(db),
		ClinicRepo:       data.NewClinicRepo(db),
	}
}

// NewServices wires repositories into the application services.
func NewServices(deps *ServiceDeps) ServiceContainer {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	cfg := deps.Config
	if cfg == nil {
		cfg = &config.AppConfig{}
	}

	repos := buildRepositories(deps.DB)

	labRules, err := service.NewLabRuleService(service.LabRuleServiceOptions{Logger: logger})
	if err != nil {
		// Default rules are compile-time constants; a failure here is a bug.
		logger.Error("failed to build lab rules, flags disabled", "error", err)
		labRules = nil
	}

	container := ServiceContainer{
		Auth: BuildAuthService(AuthConfig{
			Auth:        cfg.Auth,
			RedisConfig: cfg.Redis,
			RedisClient: deps.RedisClient,
			Logger:      logger,
		}),
		Patients: service.NewPatientService(service.PatientServiceOptions{
			Repo: repos.PatientRepo,
		}),
		Appointments: service.NewAppointmentService(service.AppointmentServiceOptions{
			Repo: repos.AppointmentRepo,
		}),
		Prescriptions: service.NewPrescriptionService(service.PrescriptionServiceOptions{
			Repo: repos.PrescriptionRepo,
		}),
		LabOrders: service.NewLabOrderService(service.LabOrderServiceOptions{
			Repo:  repos.LabOrderRepo,
			Rules: labRules,
		}),
		Dashboard: service.NewDashboardService(service.DashboardServiceOptions{
			Patients:      repos.PatientRepo,
			Appointments:  repos.AppointmentRepo,
			Prescriptions: repos.PrescriptionRepo,
			LabOrders:     repos.LabOrderRepo,
		}),
		Clinics: repos.ClinicRepo,
	}

	if cfg.Reminders.Enabled {
		container.Reminders = reminders.NewRunner(reminders.RunnerOptions{
			Appointments: repos.AppointmentRepo,
			Notifier:     &reminders.LogNotifier{Logger: logger},
			Logger:       logger,
			Interval:     cfg.Reminders.Interval,
			Lookahead:    cfg.Reminders.Lookahead,
			Concurrency:  cfg.Reminders.Concurrency,
		})
	}

	return container
}
