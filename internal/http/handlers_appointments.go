package httpx

import (
	"errors"
	"net/http"

	"github.com/caredesk/clinic-portal/internal/domain/model"
	"github.com/caredesk/clinic-portal/internal/service"
)

// AppointmentHandlers provides HTTP handlers for appointment-related operations.
type AppointmentHandlers struct {
	Svc *service.AppointmentService
}

const maxAppointmentListLimit = 100

// Create handles HTTP requests to schedule an appointment.
func (h *AppointmentHandlers) Create(w http.ResponseWriter, r *http.Request) {
	clinicID, ok := requestClinicID(r)
	if !ok {
		writeMissingClinic(w)
		return
	}

	var req model.CreateAppointmentRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	appt, err := h.Svc.Create(r.Context(), clinicID, &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusCreated, appt)
}

// List handles HTTP requests to list appointments with filters. Patients only
// ever see their own appointments.
func (h *AppointmentHandlers) List(w http.ResponseWriter, r *http.Request) {
	clinicID, ok := requestClinicID(r)
	if !ok {
		writeMissingClinic(w)
		return
	}

	limit, offset := ParseLimitOffset(r, 50, maxAppointmentListLimit)
	opts := &model.AppointmentsListOptions{
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
		status, valid := model.ParseAppointmentStatus(statusParam)
		if !valid {
			WriteError(
				w,
				ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_status", Err: errors.New("invalid status")},
			)
			return
		}
		opts.Status = &status
	}

	appts, err := h.Svc.List(r.Context(), opts)
	if err != nil {
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "list_failed", Err: err})
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"appointments": appts,
		"limit":        limit,
		"offset":       offset,
	})
}

// GetByID handles HTTP requests to get an appointment by ID.
func (h *AppointmentHandlers) GetByID(w http.ResponseWriter, r *http.Request) {
	clinicID, ok := requestClinicID(r)
	if !ok {
		writeMissingClinic(w)
		return
	}

	id := r.PathValue("id")
	if id == "" {
		WriteError(
			w,
			ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_path", Err: errors.New("appointment id is required")},
		)
		return
	}

	appt, err := h.Svc.GetByID(r.Context(), clinicID, id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, appt)
}

// Update handles HTTP requests to reschedule or annotate an appointment.
func (h *AppointmentHandlers) Update(w http.ResponseWriter, r *http.Request) {
	clinicID, ok := requestClinicID(r)
	if !ok {
		writeMissingClinic(w)
		return
	}

	id := r.PathValue("id")
	if id == "" {
		WriteError(
			w,
			ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_path", Err: errors.New("appointment id is required")},
		)
		return
	}

	var req model.UpdateAppointmentRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	appt, err := h.Svc.Update(r.Context(), clinicID, id, &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, appt)
}

// Cancel handles HTTP requests to cancel a scheduled appointment.
func (h *AppointmentHandlers) Cancel(w http.ResponseWriter, r *http.Request) {
	clinicID, ok := requestClinicID(r)
	if !ok {
		writeMissingClinic(w)
		return
	}

	id := r.PathValue("id")
	if id == "" {
		WriteError(
			w,
			ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_path", Err: errors.New("appointment id is required")},
		)
		return
	}

	appt, err := h.Svc.Cancel(r.Context(), clinicID, id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, appt)
}

// Complete handles HTTP requests to mark an appointment completed.
func (h *AppointmentHandlers) Complete(w http.ResponseWriter, r *http.Request) {
	clinicID, ok := requestClinicID(r)
	if !ok {
		writeMissingClinic(w)
		return
	}

	id := r.PathValue("id")
	if id == "" {
		WriteError(
			w,
			ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_path", Err: errors.New("appointment id is required")},
		)
		return
	}

	appt, err := h.Svc.Complete(r.Context(), clinicID, id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, appt)
}

// Delete handles HTTP requests to delete an appointment.
func (h *AppointmentHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	clinicID, ok := requestClinicID(r)
	if !ok {
		writeMissingClinic(w)
		return
	}

	id := r.PathValue("id")
	if id == "" {
		WriteError(
			w,
			ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_path", Err: errors.New("appointment id is required")},
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
			ErrorParams{Code: http.StatusNotFound, ErrCode: "appointment_not_found", Err: errors.New("appointment not found")},
		)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}
