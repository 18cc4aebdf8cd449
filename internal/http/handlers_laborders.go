package httpx

import (
	"errors"
	"net/http"
	"strings"

	"github.com/caredesk/clinic-portal/internal/domain/model"
	"github.com/caredesk/clinic-portal/internal/service"
)

// LabOrderHandlers provides HTTP handlers for lab order operations. Creation
// attributes the order to the authenticated doctor; result recording runs the
// flagging rules before persisting.
type LabOrderHandlers struct {
	Svc *service.LabOrderService
}

const maxLabOrderListLimit = 100

// Create handles HTTP requests to order a lab test. The ordering doctor is
// taken from the session, not the request body.
func (h *LabOrderHandlers) Create(w http.ResponseWriter, r *http.Request) {
	session, ok := GetUserSessionFromContext(r.Context())
	if !ok || session.ClinicID == "" {
		writeMissingClinic(w)
		return
	}

	var req model.CreateLabOrderRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	order, err := h.Svc.Create(r.Context(), session.ClinicID, session.UserID, &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusCreated, order)
}

// List handles HTTP requests to list lab orders with filters.
func (h *LabOrderHandlers) List(w http.ResponseWriter, r *http.Request) {
	clinicID, ok := requestClinicID(r)
	if !ok {
		writeMissingClinic(w)
		return
	}

	limit, offset := ParseLimitOffset(r, 50, maxLabOrderListLimit)
	opts := &model.LabOrdersListOptions{
		ClinicID: clinicID,
		Limit:    limit,
		Offset:   offset,
	}
	if patientID := r.URL.Query().Get("patient_id"); patientID != "" {
		opts.PatientID = &patientID
	}
	if statusParam := r.URL.Query().Get("status"); statusParam != "" {
		status := model.LabOrderStatus(strings.ToLower(strings.TrimSpace(statusParam)))
		if !status.Valid() {
			WriteError(
				w,
				ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_status", Err: errors.New("invalid status")},
			)
			return
		}
		opts.Status = &status
	}

	orders, err := h.Svc.List(r.Context(), opts)
	if err != nil {
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "list_failed", Err: err})
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"lab_orders": orders,
		"limit":      limit,
		"offset":     offset,
	})
}

// GetByID handles HTTP requests to get a lab order by ID.
func (h *LabOrderHandlers) GetByID(w http.ResponseWriter, r *http.Request) {
	clinicID, ok := requestClinicID(r)
	if !ok {
		writeMissingClinic(w)
		return
	}

	id := r.PathValue("id")
	if id == "" {
		WriteError(
			w,
			ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_path", Err: errors.New("lab order id is required")},
		)
		return
	}

	order, err := h.Svc.GetByID(r.Context(), clinicID, id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, order)
}

// Start handles HTTP requests to move an ordered lab test into processing.
func (h *LabOrderHandlers) Start(w http.ResponseWriter, r *http.Request) {
	clinicID, ok := requestClinicID(r)
	if !ok {
		writeMissingClinic(w)
		return
	}

	id := r.PathValue("id")
	if id == "" {
		WriteError(
			w,
			ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_path", Err: errors.New("lab order id is required")},
		)
		return
	}

	order, err := h.Svc.Start(r.Context(), clinicID, id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, order)
}

// RecordResult handles HTTP requests to attach a result document to a lab
// order and complete it.
func (h *LabOrderHandlers) RecordResult(w http.ResponseWriter, r *http.Request) {
	clinicID, ok := requestClinicID(r)
	if !ok {
		writeMissingClinic(w)
		return
	}

	id := r.PathValue("id")
	if id == "" {
		WriteError(
			w,
			ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_path", Err: errors.New("lab order id is required")},
		)
		return
	}

	var req model.RecordLabResultRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	order, err := h.Svc.RecordResult(r.Context(), clinicID, id, &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, order)
}
