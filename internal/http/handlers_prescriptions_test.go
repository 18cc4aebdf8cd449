package httpx

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	domainauth "github.com/caredesk/clinic-portal/internal/domain/auth"
	"github.com/caredesk/clinic-portal/internal/domain/model"
	"github.com/caredesk/clinic-portal/internal/mocks"
	"github.com/caredesk/clinic-portal/internal/service"
)

func newPrescriptionHandlers(t *testing.T) (*PrescriptionHandlers, *mocks.MockPrescriptionRepository) {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)
	repo := mocks.NewMockPrescriptionRepository(ctrl)
	svc := service.NewPrescriptionService(service.PrescriptionServiceOptions{Repo: repo})
	return &PrescriptionHandlers{Svc: svc}, repo
}

func TestPrescriptionHandlersCreateUsesSessionDoctor(t *testing.T) {
	h, repo := newPrescriptionHandlers(t)

	repo.EXPECT().
		Create(gomock.Any(), "clinic-1", "user-1", gomock.Any()).
		DoAndReturn(func(_ any, clinicID, doctorID string, req *model.CreatePrescriptionRequest) (*model.Prescription, error) {
			return &model.Prescription{
				ID:         "rx-1",
				ClinicID:   clinicID,
				DoctorID:   doctorID,
				Medication: req.Medication,
				Status:     model.PrescriptionPending,
			}, nil
		})

	body := strings.NewReader(`{"patient_id":"patient-1","medication":"Amoxicillin","dosage":"500mg"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/prescriptions", body)
	req.Header.Set("Content-Type", "application/json")
	req = withSession(req, domainauth.RoleDoctor, "clinic-1")
	w := httptest.NewRecorder()

	h.Create(w, req)

	require.Equal(t, http.StatusCreated, w.Code)

	var rx model.Prescription
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rx))
	assert.Equal(t, "user-1", rx.DoctorID)
	assert.Equal(t, model.PrescriptionPending, rx.Status)
}

func TestPrescriptionHandlersCreateValidation(t *testing.T) {
	h, _ := newPrescriptionHandlers(t)

	body := strings.NewReader(`{"patient_id":"patient-1","medication":"Amoxicillin"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/prescriptions", body)
	req.Header.Set("Content-Type", "application/json")
	req = withSession(req, domainauth.RoleDoctor, "clinic-1")
	w := httptest.NewRecorder()

	h.Create(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "dosage is required")
}

func TestPrescriptionHandlersDispense(t *testing.T) {
	h, repo := newPrescriptionHandlers(t)

	repo.EXPECT().
		GetByID(gomock.Any(), "clinic-1", "rx-1").
		Return(&model.Prescription{ID: "rx-1", Status: model.PrescriptionPending}, nil)
	repo.EXPECT().
		SetStatus(gomock.Any(), "clinic-1", "rx-1", model.PrescriptionDispensed).
		Return(&model.Prescription{ID: "rx-1", Status: model.PrescriptionDispensed}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/prescriptions/rx-1/dispense", nil)
	req.SetPathValue("id", "rx-1")
	req = withSession(req, domainauth.RolePharmacist, "clinic-1")
	w := httptest.NewRecorder()

	h.Dispense(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var rx model.Prescription
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rx))
	assert.Equal(t, model.PrescriptionDispensed, rx.Status)
}

func TestPrescriptionHandlersDispenseAlreadyDispensed(t *testing.T) {
	h, repo := newPrescriptionHandlers(t)

	repo.EXPECT().
		GetByID(gomock.Any(), "clinic-1", "rx-1").
		Return(&model.Prescription{ID: "rx-1", Status: model.PrescriptionDispensed}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/prescriptions/rx-1/dispense", nil)
	req.SetPathValue("id", "rx-1")
	req = withSession(req, domainauth.RolePharmacist, "clinic-1")
	w := httptest.NewRecorder()

	h.Dispense(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "only pending prescriptions")
}

func TestPrescriptionHandlersListFiltersByStatus(t *testing.T) {
	h, repo := newPrescriptionHandlers(t)

	repo.EXPECT().
		List(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ any, opts *model.PrescriptionsListOptions) ([]*model.Prescription, error) {
			assert.Equal(t, "clinic-1", opts.ClinicID)
			require.NotNil(t, opts.Status)
			assert.Equal(t, model.PrescriptionPending, *opts.Status)
			return []*model.Prescription{{ID: "rx-1", Status: model.PrescriptionPending}}, nil
		})

	req := httptest.NewRequest(http.MethodGet, "/api/prescriptions?status=pending", nil)
	req = withSession(req, domainauth.RolePharmacist, "clinic-1")
	w := httptest.NewRecorder()

	h.List(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"prescriptions"`)
}
