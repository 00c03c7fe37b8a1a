/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  JSON structures for the API surface. These decouple the ledger's domain
  types from the wire contract.

NAMING CONVENTION:
  - *Request: request body types from clients
  - *Response: response types returned to clients

SEE ALSO:
  - handlers.go: uses these types
*/
package api

import (
	"github.com/warp/attendance-ledger/ledger"
)

// =============================================================================
// REQUEST/RESPONSE TYPES
// =============================================================================

// CheckRequest identifies a child for check-in or check-out.
type CheckRequest struct {
	ID string `json:"id"`
}

// CheckInResponse confirms an opened session.
type CheckInResponse struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	OpenedAt    string `json:"opened_at"`
	Message     string `json:"message"`
}

// CheckOutResponse confirms a closed session.
type CheckOutResponse struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	ClosedAt    string `json:"closed_at"`
	Message     string `json:"message"`
}

// SummaryEntryResponse is one identity's status on the summary day.
type SummaryEntryResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	In       string `json:"in"`
	Out      string `json:"out,omitempty"`
	Complete bool   `json:"complete"`
	Hours    string `json:"hours"`
}

// SummaryResponse is the per-day report.
type SummaryResponse struct {
	Date       string                 `json:"date"`
	Entries    []SummaryEntryResponse `json:"entries"`
	TotalHours string                 `json:"total_hours"`
	Message    string                 `json:"message"`
}

// ErrorResponse carries a user-facing error message.
type ErrorResponse struct {
	Error string `json:"error"`
}

// =============================================================================
// CONVERSIONS
// =============================================================================

func toCheckInResponse(r ledger.SessionReport) CheckInResponse {
	return CheckInResponse{
		ID:          string(r.Identity.ID),
		DisplayName: r.Identity.DisplayName,
		OpenedAt:    r.OpenedAt,
		Message:     ledger.FormatCheckIn(r),
	}
}

func toCheckOutResponse(r ledger.SessionReport) CheckOutResponse {
	return CheckOutResponse{
		ID:          string(r.Identity.ID),
		DisplayName: r.Identity.DisplayName,
		ClosedAt:    r.ClosedAt,
		Message:     ledger.FormatCheckOut(r),
	}
}

func toSummaryResponse(r ledger.SummaryReport) SummaryResponse {
	resp := SummaryResponse{
		Date:       r.Date.String(),
		TotalHours: r.TotalHours.StringFixed(2),
		Message:    ledger.FormatSummary(r),
	}
	for _, e := range r.Entries {
		resp.Entries = append(resp.Entries, SummaryEntryResponse{
			ID:       string(e.Identity.ID),
			Name:     e.Identity.DisplayName,
			In:       e.OpenedAt,
			Out:      e.ClosedAt,
			Complete: e.Status == ledger.StatusComplete,
			Hours:    e.Hours.StringFixed(2),
		})
	}
	return resp
}
