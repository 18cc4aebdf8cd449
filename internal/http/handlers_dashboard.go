package httpx

import (
	"net/http"

	"github.com/caredesk/clinic-portal/internal/service"
)

// DashboardHandlers serves the aggregated dashboard counters for the
// authenticated user's clinic.
type DashboardHandlers struct {
	Svc *service.DashboardService
}

// Summary handles HTTP requests for the clinic dashboard summary.
func (h *DashboardHandlers) Summary(w http.ResponseWriter, r *http.Request) {
	clinicID, ok := requestClinicID(r)
	if !ok {
		writeMissingClinic(w)
		return
	}

	summary, err := h.Svc.Summary(r.Context(), clinicID)
	if err != nil {
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "summary_failed", Err: err})
		return
	}

	WriteJSON(w, http.StatusOK, summary)
}
