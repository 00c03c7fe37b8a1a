/*
report.go - Plain-text rendering of ledger reports

PURPOSE:
  Turns reports into the user-facing lines the calling layer sends as-is.
  All wording lives here so the chat/CLI/HTTP layers stay pure glue.
*/
package ledger

import (
	"fmt"
	"strings"
)

// FormatCheckIn renders the check-in confirmation line.
func FormatCheckIn(r SessionReport) string {
	return fmt.Sprintf("%s clocked IN at %s", r.Identity.DisplayName, timeOfDay(r.OpenedAt))
}

// FormatCheckOut renders the check-out confirmation line.
func FormatCheckOut(r SessionReport) string {
	return fmt.Sprintf("%s clocked OUT at %s", r.Identity.DisplayName, timeOfDay(r.ClosedAt))
}

// FormatSummary renders the per-day report block: a dated header, one
// status line per entry in arrival order, and the day's total hours.
func FormatSummary(r SummaryReport) string {
	lines := []string{
		fmt.Sprintf("📅 Attendance Summary for %s", r.Date.Format("Monday, 2 January 2006")),
	}

	for _, e := range r.Entries {
		switch e.Status {
		case StatusComplete:
			lines = append(lines, fmt.Sprintf("✅ %s — %s\n IN: %s | OUT: %s (%s h)",
				e.Identity.ID, e.Identity.DisplayName,
				timeOfDay(e.OpenedAt), timeOfDay(e.ClosedAt), e.Hours.StringFixed(2)))
		default:
			lines = append(lines, fmt.Sprintf("⚠️ %s — %s\n IN: %s | OUT: ❌ Not clocked out yet",
				e.Identity.ID, e.Identity.DisplayName, timeOfDay(e.OpenedAt)))
		}
	}

	lines = append(lines, fmt.Sprintf("Total attended: %s h", r.TotalHours.StringFixed(2)))
	return strings.Join(lines, "\n\n")
}
