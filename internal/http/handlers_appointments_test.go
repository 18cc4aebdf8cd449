package httpx

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	domainauth "github.com/caredesk/clinic-portal/internal/domain/auth"
	"github.com/caredesk/clinic-portal/internal/domain/model"
	"github.com/caredesk/clinic-portal/internal/mocks"
	"github.com/caredesk/clinic-portal/internal/service"
)

func newAppointmentHandlers(t *testing.T) (*AppointmentHandlers, *mocks.MockAppointmentRepository) {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)
	repo := mocks.NewMockAppointmentRepository(ctrl)
	svc := service.NewAppointmentService(service.AppointmentServiceOptions{Repo: repo})
	return &AppointmentHandlers{Svc: svc}, repo
}

func TestAppointmentHandlersCreate(t *testing.T) {
	h, repo := newAppointmentHandlers(t)

	repo.EXPECT().
		Create(gomock.Any(), "clinic-1", gomock.Any()).
		DoAndReturn(func(_ any, clinicID string, req *model.CreateAppointmentRequest) (*model.Appointment, error) {
			return &model.Appointment{
				ID:          "appt-1",
				ClinicID:    clinicID,
				PatientID:   req.PatientID,
				DoctorID:    req.DoctorID,
				ScheduledAt: req.ScheduledAt,
				Status:      model.AppointmentScheduled,
			}, nil
		})

	body := strings.NewReader(`{"patient_id":"patient-1","doctor_id":"doc-1","scheduled_at":"2026-09-01T10:00:00Z"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/appointments", body)
	req.Header.Set("Content-Type", "application/json")
	req = withSession(req, domainauth.RoleDoctor, "clinic-1")
	w := httptest.NewRecorder()

	h.Create(w, req)

	require.Equal(t, http.StatusCreated, w.Code)

	var appt model.Appointment
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &appt))
	assert.Equal(t, "appt-1", appt.ID)
	assert.Equal(t, model.AppointmentScheduled, appt.Status)
}

func TestAppointmentHandlersCreateValidation(t *testing.T) {
	h, _ := newAppointmentHandlers(t)

	body := strings.NewReader(`{"doctor_id":"doc-1","scheduled_at":"2026-09-01T10:00:00Z"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/appointments", body)
	req.Header.Set("Content-Type", "application/json")
	req = withSession(req, domainauth.RoleDoctor, "clinic-1")
	w := httptest.NewRecorder()

	h.Create(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "patient_id is required")
}

func TestAppointmentHandlersListFilters(t *testing.T) {
	h, repo := newAppointmentHandlers(t)

	repo.EXPECT().
		List(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ any, opts *model.AppointmentsListOptions) ([]*model.Appointment, error) {
			assert.Equal(t, "clinic-1", opts.ClinicID)
			require.NotNil(t, opts.PatientID)
			assert.Equal(t, "patient-1", *opts.PatientID)
			require.NotNil(t, opts.Status)
			assert.Equal(t, model.AppointmentScheduled, *opts.Status)
			assert.Equal(t, 10, opts.Limit)
			return []*model.Appointment{{ID: "appt-1", ClinicID: opts.ClinicID}}, nil
		})

	target := "/api/appointments?patient_id=patient-1&status=scheduled&limit=10"
	req := httptest.NewRequest(http.MethodGet, target, nil)
	req = withSession(req, domainauth.RoleAdmin, "clinic-1")
	w := httptest.NewRecorder()

	h.List(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Appointments []*model.Appointment `json:"appointments"`
		Limit        int                  `json:"limit"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Appointments, 1)
	assert.Equal(t, 10, resp.Limit)
}

func TestAppointmentHandlersListInvalidStatus(t *testing.T) {
	h, _ := newAppointmentHandlers(t)

	req := httptest.NewRequest(http.MethodGet, "/api/appointments?status=nonsense", nil)
	req = withSession(req, domainauth.RoleAdmin, "clinic-1")
	w := httptest.NewRecorder()

	h.List(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid_status")
}

func TestAppointmentHandlersCancel(t *testing.T) {
	h, repo := newAppointmentHandlers(t)

	scheduled := &model.Appointment{
		ID:          "appt-1",
		ClinicID:    "clinic-1",
		Status:      model.AppointmentScheduled,
		ScheduledAt: time.Now().Add(time.Hour),
	}
	repo.EXPECT().GetByID(gomock.Any(), "clinic-1", "appt-1").Return(scheduled, nil)
	repo.EXPECT().
		Update(gomock.Any(), "clinic-1", "appt-1", gomock.Any()).
		DoAndReturn(func(_ any, _, _ string, req *model.UpdateAppointmentRequest) (*model.Appointment, error) {
			require.NotNil(t, req.Status)
			assert.Equal(t, model.AppointmentCancelled, *req.Status)
			out := *scheduled
			out.Status = *req.Status
			return &out, nil
		})

	req := httptest.NewRequest(http.MethodPost, "/api/appointments/appt-1/cancel", nil)
	req.SetPathValue("id", "appt-1")
	req = withSession(req, domainauth.RoleAdmin, "clinic-1")
	w := httptest.NewRecorder()

	h.Cancel(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var appt model.Appointment
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &appt))
	assert.Equal(t, model.AppointmentCancelled, appt.Status)
}

func TestAppointmentHandlersCompleteTerminalState(t *testing.T) {
	h, repo := newAppointmentHandlers(t)

	cancelled := &model.Appointment{ID: "appt-1", ClinicID: "clinic-1", Status: model.AppointmentCancelled}
	repo.EXPECT().GetByID(gomock.Any(), "clinic-1", "appt-1").Return(cancelled, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/appointments/appt-1/complete", nil)
	req.SetPathValue("id", "appt-1")
	req = withSession(req, domainauth.RoleDoctor, "clinic-1")
	w := httptest.NewRecorder()

	h.Complete(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "can no longer change")
}

func TestAppointmentHandlersDeleteMissing(t *testing.T) {
	h, repo := newAppointmentHandlers(t)

	repo.EXPECT().Delete(gomock.Any(), "clinic-1", "appt-404").Return(false, nil)

	req := httptest.NewRequest(http.MethodDelete, "/api/appointments/appt-404", nil)
	req.SetPathValue("id", "appt-404")
	req = withSession(req, domainauth.RoleAdmin, "clinic-1")
	w := httptest.NewRecorder()

	h.Delete(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "appointment_not_found")
}
