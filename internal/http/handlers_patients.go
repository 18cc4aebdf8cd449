// Package httpx provides HTTP handlers and utilities for the clinic portal API.
package httpx

import (
	"errors"
	"net/http"

	"github.com/caredesk/clinic-portal/internal/domain/model"
	"github.com/caredesk/clinic-portal/internal/service"
)

// PatientHandlers provides HTTP handlers for patient-related operations.
type PatientHandlers struct {
	Svc *service.PatientService
}

const (
	maxPatientListLimit = 100 // Maximum number of patients that can be requested in one call
)

// requestClinicID resolves the clinic scope for the current request from the
// authenticated session. Handlers behind auth middleware always have one.
func requestClinicID(r *http.Request) (string, bool) {
	session := GetSessionFromContext(r.Context())
	if session == nil || session.ClinicID == "" {
		return "", false
	}
	return session.ClinicID, true
}

// writeMissingClinic rejects a request whose session carries no clinic scope.
func writeMissingClinic(w http.ResponseWriter) {
	WriteError(w, ErrorParams{
		Code:    http.StatusForbidden,
		ErrCode: "no_clinic_scope",
		Err:     errors.New("session has no clinic assignment"),
	})
}

// Create handles HTTP requests to register a new patient.
func (h *PatientHandlers) Create(w http.ResponseWriter, r *http.Request) {
	clinicID, ok := requestClinicID(r)
	if !ok {
		writeMissingClinic(w)
		return
	}

	var req model.CreatePatientRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	patient, err := h.Svc.Create(r.Context(), clinicID, &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusCreated, patient)
}

// List handles HTTP requests to list patients with pagination and search.
func (h *PatientHandlers) List(w http.ResponseWriter, r *http.Request) {
	clinicID, ok := requestClinicID(r)
	if !ok {
		writeMissingClinic(w)
		return
	}

	limit, offset := ParseLimitOffset(r, 50, maxPatientListLimit)
	opts := &model.PatientsListOptions{
		ClinicID: clinicID,
		Limit:    limit,
		Offset:   offset,
		Sort:     r.URL.Query().Get("sort"),
		Dir:      r.URL.Query().Get("dir"),
	}
	if q := r.URL.Query().Get("q"); q != "" {
		opts.Q = &q
	}

	page, err := h.Svc.List(r.Context(), opts)
	if err != nil {
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "list_failed", Err: err})
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"patients": page.Patients,
		"total":    page.Total,
		"limit":    limit,
		"offset":   offset,
	})
}

// GetByID handles HTTP requests to get a patient by ID.
func (h *PatientHandlers) GetByID(w http.ResponseWriter, r *http.Request) {
	clinicID, ok := requestClinicID(r)
	if !ok {
		writeMissingClinic(w)
		return
	}

	id := r.PathValue("id")
	if id == "" {
		WriteError(
			w,
			ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_path", Err: errors.New("patient id is required")},
		)
		return
	}

	patient, err := h.Svc.GetByID(r.Context(), clinicID, id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, patient)
}

// Update handles HTTP requests to update a patient.
func (h *PatientHandlers) Update(w http.ResponseWriter, r *http.Request) {
	clinicID, ok := requestClinicID(r)
	if !ok {
		writeMissingClinic(w)
		return
	}

	id := r.PathValue("id")
	if id == "" {
		WriteError(
			w,
			ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_path", Err: errors.New("patient id is required")},
		)
		return
	}

	var req model.UpdatePatientRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	patient, err := h.Svc.Update(r.Context(), clinicID, id, &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, patient)
}

// Delete handles HTTP requests to delete a patient.
func (h *PatientHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	clinicID, ok := requestClinicID(r)
	if !ok {
		writeMissingClinic(w)
		return
	}

	id := r.PathValue("id")
	if id == "" {
		WriteError(
			w,
			ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_path", Err: errors.New("patient id is required")},
		)
		return
	}

	deleted, err := h.Svc.Delete(r.Context(), clinicID, id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	if !deleted {
		WriteError(
			w,
			ErrorParams{Code: http.StatusNotFound, ErrCode: "patient_not_found", Err: errors.New("patient not found")},
		)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}
