package httpx

import (
	"log/slog"
	"net/http"

	domainauth "github.com/caredesk/clinic-portal/internal/domain/auth"
	"github.com/caredesk/clinic-portal/internal/service"
)

// RouterServices holds all the services needed by the HTTP router.
type RouterServices struct {
	Auth          *service.AuthService
	Patients      *service.PatientService
	Appointments  *service.AppointmentService
	Prescriptions *service.PrescriptionService
	LabOrders     *service.LabOrderService
	Dashboard     *service.DashboardService
	CookieDomain  string
	Logger        *slog.Logger
}

// NewRouter creates and configures a new HTTP router with browser middleware.
func NewRouter(services RouterServices) http.Handler {
	mux := http.NewServeMux()

	var authSvc AuthServiceInterface
	if services.Auth != nil {
		authSvc = services.Auth
	}
	guard := roleGuard{auth: authSvc}

	patientHandlers := &PatientHandlers{Svc: services.Patients}
	appointmentHandlers := &AppointmentHandlers{Svc: services.Appointments}
	prescriptionHandlers := &PrescriptionHandlers{Svc: services.Prescriptions}
	labOrderHandlers := &LabOrderHandlers{Svc: services.LabOrders}
	dashboardHandlers := &DashboardHandlers{Svc: services.Dashboard}
	pageHandlers := &PageHandlers{Logger: services.Logger}

	registerPatientRoutes(mux, patientHandlers, guard)
	registerAppointmentRoutes(mux, appointmentHandlers, guard)
	registerPrescriptionRoutes(mux, prescriptionHandlers, guard)
	registerLabOrderRoutes(mux, labOrderHandlers, guard)
	registerDashboardRoutes(mux, dashboardHandlers, guard)
	registerPageRoutes(mux, pageHandlers, guard)

	mux.Handle("GET /healthz", http.HandlerFunc(healthHandler))
	mux.Handle("HEAD /healthz", http.HandlerFunc(healthHandler))

	if authSvc != nil {
		authHandlers := &AuthHandlers{
			Svc:          authSvc,
			CookieDomain: services.CookieDomain,
			Logger:       services.Logger,
		}
		registerAuthRoutes(mux, authHandlers)
	}

	return BrowserDetection()(mux)
}

// roleGuard builds nil-safe role middleware. When auth is nil (tests that
// exercise handlers directly) routes are registered without guards.
type roleGuard struct {
	auth AuthServiceInterface
}

func (g roleGuard) roles(allowed ...domainauth.Role) func(http.Handler) http.Handler {
	if g.auth == nil {
		return func(h http.Handler) http.Handler { return h }
	}
	return RequireRoles(g.auth, allowed...)
}

func (g roleGuard) authenticated() func(http.Handler) http.Handler {
	if g.auth == nil {
		return func(h http.Handler) http.Handler { return h }
	}
	return RequireAuth(g.auth)
}

func (g roleGuard) optional() func(http.Handler) http.Handler {
	if g.auth == nil {
		return func(h http.Handler) http.Handler { return h }
	}
	return OptionalAuth(g.auth)
}

func registerPatientRoutes(mux *http.ServeMux, h *PatientHandlers, guard roleGuard) {
	registerCRUD(mux, crudRoutes{
		Base:       "/api/patients",
		Create:     h.Create,
		List:       h.List,
		GetByID:    h.GetByID,
		Update:     h.Update,
		Delete:     h.Delete,
		Middleware: guard.roles(domainauth.RoleAdmin, domainauth.RoleDoctor),
		DeleteMW:   guard.roles(domainauth.RoleAdmin),
	})
}

func registerAppointmentRoutes(mux *http.ServeMux, h *AppointmentHandlers, guard roleGuard) {
	staff := guard.roles(domainauth.RoleAdmin, domainauth.RoleDoctor)
	registerCRUD(mux, crudRoutes{
		Base:       "/api/appointments",
		Create:     h.Create,
		List:       h.List,
		GetByID:    h.GetByID,
		Update:     h.Update,
		Delete:     h.Delete,
		Middleware: staff,
		DeleteMW:   guard.roles(domainauth.RoleAdmin),
	})
	mux.Handle("POST /api/appointments/{id}/cancel", staff(http.HandlerFunc(h.Cancel)))
	mux.Handle("POST /api/appointments/{id}/complete", staff(http.HandlerFunc(h.Complete)))
}

func registerPrescriptionRoutes(mux *http.ServeMux, h *PrescriptionHandlers, guard roleGuard) {
	doctorOnly := guard.roles(domainauth.RoleDoctor)
	readers := guard.roles(domainauth.RoleAdmin, domainauth.RoleDoctor, domainauth.RolePharmacist)
	pharmacy := guard.roles(domainauth.RoleAdmin, domainauth.RolePharmacist)

	mux.Handle("POST /api/prescriptions", doctorOnly(http.HandlerFunc(h.Create)))
	mux.Handle("GET /api/prescriptions", readers(http.HandlerFunc(h.List)))
	mux.Handle("GET /api/prescriptions/{id}", readers(http.HandlerFunc(h.GetByID)))
	mux.Handle("POST /api/prescriptions/{id}/dispense", pharmacy(http.HandlerFunc(h.Dispense)))
	mux.Handle("POST /api/prescriptions/{id}/cancel", pharmacy(http.HandlerFunc(h.Cancel)))
}

func registerLabOrderRoutes(mux *http.ServeMux, h *LabOrderHandlers, guard roleGuard) {
	doctorOnly := guard.roles(domainauth.RoleDoctor)
	readers := guard.roles(domainauth.RoleAdmin, domainauth.RoleDoctor, domainauth.RoleLab)
	lab := guard.roles(domainauth.RoleAdmin, domainauth.RoleLab)

	mux.Handle("POST /api/lab-orders", doctorOnly(http.HandlerFunc(h.Create)))
	mux.Handle("GET /api/lab-orders", readers(http.HandlerFunc(h.List)))
	mux.Handle("GET /api/lab-orders/{id}", readers(http.HandlerFunc(h.GetByID)))
	mux.Handle("POST /api/lab-orders/{id}/start", lab(http.HandlerFunc(h.Start)))
	mux.Handle("POST /api/lab-orders/{id}/result", lab(http.HandlerFunc(h.RecordResult)))
}

func registerDashboardRoutes(mux *http.ServeMux, h *DashboardHandlers, guard roleGuard) {
	wrap := guard.authenticated()
	mux.Handle("GET /api/dashboard/summary", wrap(http.HandlerFunc(h.Summary)))
}

// registerPageRoutes wires the server-rendered pages. The login page uses
// OptionalAuth so an existing session skips the form; each dashboard shell is
// gated on its own role.
func registerPageRoutes(mux *http.ServeMux, h *PageHandlers, guard roleGuard) {
	mux.Handle("GET /login", guard.optional()(http.HandlerFunc(h.LoginPage)))

	dashboards := []struct {
		role  domainauth.Role
		title string
	}{
		{domainauth.RoleAdmin, "Admin Dashboard"},
		{domainauth.RoleDoctor, "Doctor Dashboard"},
		{domainauth.RoleLab, "Lab Dashboard"},
		{domainauth.RolePharmacist, "Pharmacy Dashboard"},
		{domainauth.RolePatient, "Patient Dashboard"},
	}
	for _, d := range dashboards {
		mux.Handle("GET "+DashboardPath(d.role), guard.roles(d.role)(h.Dashboard(d.role, d.title)))
	}
}

// registerCRUD registers standard CRUD routes for a resource base path, applying mw if non-nil.
type crudRoutes struct {
	Base       string
	Create     http.HandlerFunc
	List       http.HandlerFunc
	GetByID    http.HandlerFunc
	Update     http.HandlerFunc
	Delete     http.HandlerFunc
	Middleware func(http.Handler) http.Handler
	// DeleteMW, when set, replaces Middleware for the DELETE route.
	DeleteMW func(http.Handler) http.Handler
}

func registerCRUD(mux *http.ServeMux, cfg crudRoutes) {
	if cfg.Base == "" {
		panic("registerCRUD: Base must not be empty") //nolint:forbidigo // Fail fast during server setup.
	}
	if cfg.Create == nil ||
		cfg.List == nil ||
		cfg.GetByID == nil ||
		cfg.Update == nil ||
		cfg.Delete == nil {
		panic("registerCRUD: nil handler for base " + cfg.Base) //nolint:forbidigo // Fail fast during server setup.
	}

	wrap := func(h http.HandlerFunc) http.Handler {
		if cfg.Middleware != nil {
			return cfg.Middleware(h)
		}
		return h
	}
	deleteWrap := wrap
	if cfg.DeleteMW != nil {
		deleteWrap = func(h http.HandlerFunc) http.Handler { return cfg.DeleteMW(h) }
	}
	mux.Handle("POST "+cfg.Base, wrap(cfg.Create))
	mux.Handle("GET "+cfg.Base, wrap(cfg.List))
	mux.Handle("GET "+cfg.Base+"/{id}", wrap(cfg.GetByID))
	mux.Handle("PUT "+cfg.Base+"/{id}", wrap(cfg.Update))
	mux.Handle("DELETE "+cfg.Base+"/{id}", deleteWrap(cfg.Delete))
}

func registerAuthRoutes(mux *http.ServeMux, h *AuthHandlers) {
	mux.HandleFunc("POST /api/auth/login", h.Login)
	mux.HandleFunc("GET /api/auth/profile", h.Profile)
	mux.HandleFunc("POST /api/auth/logout", h.Logout)
	mux.HandleFunc("GET /api/auth/logout", h.Logout)
	mux.HandleFunc("GET /auth/status", h.Status)
	mux.HandleFunc("GET /auth/sso/login", h.SSOLogin)
	mux.HandleFunc("GET /auth/sso/callback", h.SSOCallback)
}
