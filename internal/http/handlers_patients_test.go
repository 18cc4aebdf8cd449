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

	"github.com/caredesk/clinic-portal/internal/data"
	domainauth "github.com/caredesk/clinic-portal/internal/domain/auth"
	"github.com/caredesk/clinic-portal/internal/domain/model"
	"github.com/caredesk/clinic-portal/internal/mocks"
	"github.com/caredesk/clinic-portal/internal/service"
)

// withSession attaches an authenticated session to the request context, the
// way the auth middleware does for routed requests.
func withSession(r *http.Request, role domainauth.Role, clinicID string) *http.Request {
	session := &domainauth.Session{
		ID:        "sess-1",
		UserID:    "user-1",
		Name:      "Test User",
		Email:     "user@example.com",
		Role:      role,
		RoleName:  string(role),
		ClinicID:  clinicID,
		ExpiresAt: time.Now().Add(time.Hour),
	}
	return r.WithContext(SetSessionInContext(r.Context(), session))
}

func newPatientHandlers(t *testing.T) (*PatientHandlers, *mocks.MockPatientRepository) {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)
	repo := mocks.NewMockPatientRepository(ctrl)
	svc := service.NewPatientService(service.PatientServiceOptions{Repo: repo})
	return &PatientHandlers{Svc: svc}, repo
}

func TestPatientHandlersCreate(t *testing.T) {
	h, repo := newPatientHandlers(t)

	repo.EXPECT().
		Create(gomock.Any(), "clinic-1", gomock.Any()).
		DoAndReturn(func(_ any, clinicID string, req *model.CreatePatientRequest) (*model.Patient, error) {
			return &model.Patient{ID: "patient-1", ClinicID: clinicID, Name: req.Name}, nil
		})

	body := strings.NewReader(`{"name":"Ada Park"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/patients", body)
	req.Header.Set("Content-Type", "application/json")
	req = withSession(req, domainauth.RoleDoctor, "clinic-1")
	w := httptest.NewRecorder()

	h.Create(w, req)

	require.Equal(t, http.StatusCreated, w.Code)

	var patient model.Patient
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &patient))
	assert.Equal(t, "patient-1", patient.ID)
	assert.Equal(t, "Ada Park", patient.Name)
}

func TestPatientHandlersCreateValidation(t *testing.T) {
	h, _ := newPatientHandlers(t)

	body := strings.NewReader(`{"name":""}`)
	req := httptest.NewRequest(http.MethodPost, "/api/patients", body)
	req.Header.Set("Content-Type", "application/json")
	req = withSession(req, domainauth.RoleDoctor, "clinic-1")
	w := httptest.NewRecorder()

	h.Create(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "validation_failed")
}

func TestPatientHandlersCreateNoClinicScope(t *testing.T) {
	h, _ := newPatientHandlers(t)

	body := strings.NewReader(`{"name":"Ada Park"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/patients", body)
	req.Header.Set("Content-Type", "application/json")
	req = withSession(req, domainauth.RoleDoctor, "")
	w := httptest.NewRecorder()

	h.Create(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "no_clinic_scope")
}

func TestPatientHandlersList(t *testing.T) {
	h, repo := newPatientHandlers(t)

	repo.EXPECT().
		List(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ any, opts *model.PatientsListOptions) ([]*model.Patient, error) {
			assert.Equal(t, "clinic-1", opts.ClinicID)
			assert.Equal(t, 10, opts.Limit)
			assert.Equal(t, 5, opts.Offset)
			require.NotNil(t, opts.Q)
			assert.Equal(t, "park", *opts.Q)
			return []*model.Patient{{ID: "patient-1", Name: "Ada Park"}}, nil
		})
	repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(1, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/patients?limit=10&offset=5&q=park", nil)
	req = withSession(req, domainauth.RoleAdmin, "clinic-1")
	w := httptest.NewRecorder()

	h.List(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Patients []*model.Patient `json:"patients"`
		Total    int              `json:"total"`
		Limit    int              `json:"limit"`
		Offset   int              `json:"offset"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Patients, 1)
	assert.Equal(t, 1, resp.Total)
	assert.Equal(t, 10, resp.Limit)
	assert.Equal(t, 5, resp.Offset)
}

func TestPatientHandlersGetByIDNotFound(t *testing.T) {
	h, repo := newPatientHandlers(t)

	repo.EXPECT().
		GetByID(gomock.Any(), "clinic-1", "missing").
		Return(nil, data.ErrPatientNotFound)

	req := httptest.NewRequest(http.MethodGet, "/api/patients/missing", nil)
	req.SetPathValue("id", "missing")
	req = withSession(req, domainauth.RoleDoctor, "clinic-1")
	w := httptest.NewRecorder()

	h.GetByID(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPatientHandlersUpdate(t *testing.T) {
	h, repo := newPatientHandlers(t)

	repo.EXPECT().
		Update(gomock.Any(), "clinic-1", "patient-1", gomock.Any()).
		DoAndReturn(func(_ any, _, id string, req *model.UpdatePatientRequest) (*model.Patient, error) {
			require.NotNil(t, req.Name)
			return &model.Patient{ID: id, Name: *req.Name}, nil
		})

	body := strings.NewReader(`{"name":"Ada Byron"}`)
	req := httptest.NewRequest(http.MethodPut, "/api/patients/patient-1", body)
	req.Header.Set("Content-Type", "application/json")
	req.SetPathValue("id", "patient-1")
	req = withSession(req, domainauth.RoleDoctor, "clinic-1")
	w := httptest.NewRecorder()

	h.Update(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var patient model.Patient
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &patient))
	assert.Equal(t, "Ada Byron", patient.Name)
}

func TestPatientHandlersDelete(t *testing.T) {
	h, repo := newPatientHandlers(t)

	repo.EXPECT().Delete(gomock.Any(), "clinic-1", "patient-1").Return(true, nil)

	req := httptest.NewRequest(http.MethodDelete, "/api/patients/patient-1", nil)
	req.SetPathValue("id", "patient-1")
	req = withSession(req, domainauth.RoleAdmin, "clinic-1")
	w := httptest.NewRecorder()

	h.Delete(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"deleted": true}`, w.Body.String())
}

func TestPatientHandlersDeleteMissing(t *testing.T) {
	h, repo := newPatientHandlers(t)

	repo.EXPECT().Delete(gomock.Any(), "clinic-1", "missing").Return(false, nil)

	req := httptest.NewRequest(http.MethodDelete, "/api/patients/missing", nil)
	req.SetPathValue("id", "missing")
	req = withSession(req, domainauth.RoleAdmin, "clinic-1")
	w := httptest.NewRecorder()

	h.Delete(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "patient_not_found")
}
