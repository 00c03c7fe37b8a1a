/*
handlers.go - HTTP handlers for the attendance ledger

PURPOSE:
  Thin calling layer over ledger.Service. Handlers decode input, invoke
  exactly one service operation, and map the error taxonomy onto HTTP
  status codes. No attendance rule lives here.

STATUS MAPPING:
  400  invalid input, ambiguous date
  404  unknown identity, no open session, no partition, empty report
  409  already checked in / already checked out
  503  storage unavailable (caller may retry)

SEE ALSO:
  - ledger/errors.go: the taxonomy being mapped
  - server.go: routes
*/
package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/warp/attendance-ledger/ledger"
)

// Handler holds the ledger service consumed by all routes.
type Handler struct {
	svc *ledger.Service
}

func NewHandler(svc *ledger.Service) *Handler {
	return &Handler{svc: svc}
}

// =============================================================================
// ROUTES
// =============================================================================

// CheckIn handles POST /api/checkin.
func (h *Handler) CheckIn(w http.ResponseWriter, r *http.Request) {
	var req CheckRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	report, err := h.svc.CheckIn(r.Context(), req.ID)
	if err != nil {
		writeLedgerError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toCheckInResponse(report))
}

// CheckOut handles POST /api/checkout.
func (h *Handler) CheckOut(w http.ResponseWriter, r *http.Request) {
	var req CheckRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	report, err := h.svc.CheckOut(r.Context(), req.ID)
	if err != nil {
		writeLedgerError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toCheckOutResponse(report))
}

// Summary handles GET /api/summary?date=<free-form text>.
func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
	report, err := h.svc.Summarize(r.Context(), r.URL.Query().Get("date"))
	if err != nil {
		writeLedgerError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toSummaryResponse(report))
}

// Health handles GET /api/health.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// =============================================================================
// HELPERS
// =============================================================================

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{Error: msg})
}

func writeLedgerError(w http.ResponseWriter, err error) {
	writeError(w, statusFor(err), err.Error())
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, ledger.ErrInvalidArgument),
		errors.Is(err, ledger.ErrAmbiguousDate):
		return http.StatusBadRequest
	case errors.Is(err, ledger.ErrAlreadyCheckedIn),
		errors.Is(err, ledger.ErrAlreadyCheckedOut):
		return http.StatusConflict
	case ledger.IsNotFound(err):
		return http.StatusNotFound
	case ledger.IsRetryable(err):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
