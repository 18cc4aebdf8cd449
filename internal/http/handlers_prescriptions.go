package httpx

import (
	"errors"
	"net/http"
	"strings"

	"github.com/caredesk/clinic-portal/internal/domain/model"
	"github.com/caredesk/clinic-portal/internal/service"
)

// PrescriptionHandlers provides HTTP handlers for prescription-related
// operations. Creation attributes the prescription to the authenticated
// doctor.
type PrescriptionHandlers struct {
	Svc *service.PrescriptionService
}

const maxPrescriptionListLimit = 100

// Create handles HTTP requests to write a prescription. The prescribing
// doctor is taken from the session, not the request body.
func (h *PrescriptionHandlers) Create(w http.ResponseWriter, r *http.Request) {
	session, ok := GetUserSessionFromContext(r.Context())
	if !ok || session.ClinicID == "" {
		writeMissingClinic(w)
		return
	}

	var req model.CreatePrescriptionRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	rx, err := h.Svc.Create(r.Context(), session.ClinicID, session.UserID, &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusCreated, rx)
}

// List handles HTTP requests to list prescriptions with filters.
func (h *PrescriptionHandlers) List(w http.ResponseWriter, r *http.Request) {
	clinicID, ok := requestClinicID(r)
	if !ok {
		writeMissingClinic(w)
		return
	}

	limit, offset := ParseLimitOffset(r, 50, maxPrescriptionListLimit)
	opts := &model.PrescriptionsListOptions{
		ClinicID: clinicID,
		Limit:    limit,
		Offset:   offset,
	}
	if patientID := r.URL.Query().Get("patient_id"); patientID != "" {
		opts.PatientID = &patientID
	}
	if doctorID := r.URL.Query().Get("doctor_id"); doctorID != "" {
		opts.DoctorID = &doctorID
	}
	if statusParam := r.URL.Query().Get("status"); statusParam != "" {
		status := model.PrescriptionStatus(strings.ToLower(strings.TrimSpace(statusParam)))
		if !status.Valid() {
			WriteError(
				w,
				ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_status", Err: errors.New("invalid status")},
			)
			return
		}
		opts.Status = &status
	}

	rxs, err := h.Svc.List(r.Context(), opts)
	if err != nil {
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "list_failed", Err: err})
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"prescriptions": rxs,
		"limit":         limit,
		"offset":        offset,
	})
}

// GetByID handles HTTP requests to get a prescription by ID.
func (h *PrescriptionHandlers) GetByID(w http.ResponseWriter, r *http.Request) {
	clinicID, ok := requestClinicID(r)
	if !ok {
		writeMissingClinic(w)
		return
	}

	id := r.PathValue("id")
	if id == "" {
		WriteError(
			w,
			ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_path", Err: errors.New("prescription id is required")},
		)
		return
	}

	rx, err := h.Svc.GetByID(r.Context(), clinicID, id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, rx)
}

// Dispense handles HTTP requests to mark a pending prescription dispensed.
func (h *PrescriptionHandlers) Dispense(w http.ResponseWriter, r *http.Request) {
	clinicID, ok := requestClinicID(r)
	if !ok {
		writeMissingClinic(w)
		return
	}

	id := r.PathValue("id")
	if id == "" {
		WriteError(
			w,
			ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_path", Err: errors.New("prescription id is required")},
		)
		return
	}

	rx, err := h.Svc.Dispense(r.Context(), clinicID, id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, rx)
}

// Cancel handles HTTP requests to cancel a pending prescription.
func (h *PrescriptionHandlers) Cancel(w http.ResponseWriter, r *http.Request) {
	clinicID, ok := requestClinicID(r)
	if !ok {
		writeMissingClinic(w)
		return
	}

	id := r.PathValue("id")
	if id == "" {
		WriteError(
			w,
			ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_path", Err: errors.New("prescription id is required")},
		)
		return
	}

	rx, err := h.Svc.Cancel(r.Context(), clinicID, id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, rx)
}
