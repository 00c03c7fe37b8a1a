/*
summary.go - Per-day attendance report

PURPOSE:
  Builds the structured status report for one calendar day: every session
  opened that day, complete (closed) or still open, in row insertion order
  (chronological arrival), with attended hours for complete sessions.

CLASSIFICATION:
  A row belongs to the day when its opened-at timestamp extracts to the
  target date. Rows with unreadable timestamps match no day and are
  skipped, same as in the matcher.

HOURS:
  Attended time is the time-of-day difference between the open and close
  stamps, as decimal hours rounded to 2 places. Sessions whose stamps
  cannot be paired (or that appear to close before they open) contribute
  zero rather than poisoning the total.

SEE ALSO:
  - report.go: plain-text rendering of the report
*/
package ledger

import (
	"context"
	"regexp"
	"strconv"

	"github.com/shopspring/decimal"
)

// =============================================================================
// REPORT TYPES
// =============================================================================

// SummaryStatus classifies one entry.
type SummaryStatus string

const (
	StatusComplete SummaryStatus = "complete"
	StatusOpen     SummaryStatus = "open"
)

// SummaryEntry is one identity's session on the report's day.
type SummaryEntry struct {
	Identity Identity
	OpenedAt string
	ClosedAt string
	Status   SummaryStatus
	Hours    decimal.Decimal
}

// SummaryReport is the per-day status report. Entries keep row insertion
// order.
type SummaryReport struct {
	Date       CalendarDate
	Entries    []SummaryEntry
	TotalHours decimal.Decimal
}

// =============================================================================
// SUMMARY BUILDER
// =============================================================================

// SummaryBuilder loads a day's partition and classifies its rows.
type SummaryBuilder struct {
	storage    Storage
	partitions *PartitionResolver
	dates      *DateInterpreter
}

func NewSummaryBuilder(storage Storage, partitions *PartitionResolver, dates *DateInterpreter) *SummaryBuilder {
	return &SummaryBuilder{storage: storage, partitions: partitions, dates: dates}
}

// Summarize builds the report for a date. Fails with NoPartitionError when
// the month's partition was never created and EmptyReportError when no row
// matches the date.
func (b *SummaryBuilder) Summarize(ctx context.Context, date CalendarDate) (SummaryReport, error) {
	partition, err := b.partitions.ResolveForRead(ctx, date)
	if err != nil {
		return SummaryReport{}, err
	}

	rows, err := b.storage.ReadAllRows(ctx, partition)
	if err != nil {
		return SummaryReport{}, &StorageUnavailableError{Op: "read partition rows", Err: err}
	}

	report := SummaryReport{Date: date, TotalHours: decimal.Zero}
	for _, row := range rows {
		session := row.Session()
		opened, ok := b.dates.ExtractDateFromTimestamp(session.OpenedAt)
		if !ok || !opened.Equal(date) {
			continue
		}

		entry := SummaryEntry{
			Identity: Identity{ID: session.IdentityID, DisplayName: session.DisplayName},
			OpenedAt: session.OpenedAt,
			ClosedAt: session.ClosedAt,
			Status:   StatusOpen,
			Hours:    decimal.Zero,
		}
		if !session.IsOpen() {
			entry.Status = StatusComplete
			entry.Hours = sessionHours(session.OpenedAt, session.ClosedAt)
			report.TotalHours = report.TotalHours.Add(entry.Hours)
		}
		report.Entries = append(report.Entries, entry)
	}

	if len(report.Entries) == 0 {
		return SummaryReport{}, &EmptyReportError{Date: date}
	}
	return report, nil
}

// =============================================================================
// HOURS ARITHMETIC
// =============================================================================

var timeOfDayPattern = regexp.MustCompile(`\b(\d{1,2}):(\d{2})(?::(\d{2}))?\b`)

// secondsOfDay extracts the first HH:MM[:SS] in text as seconds since
// midnight.
func secondsOfDay(text string) (int, bool) {
	m := timeOfDayPattern.FindStringSubmatch(normalizeWhitespace(text))
	if m == nil {
		return 0, false
	}
	h, _ := strconv.Atoi(m[1])
	min, _ := strconv.Atoi(m[2])
	sec := 0
	if m[3] != "" {
		sec, _ = strconv.Atoi(m[3])
	}
	if h > 23 || min > 59 || sec > 59 {
		return 0, false
	}
	return h*3600 + min*60 + sec, true
}

// timeOfDay returns the HH:MM[:SS] portion of a stamp, or the stamp itself
// when none is present.
func timeOfDay(text string) string {
	if m := timeOfDayPattern.FindString(normalizeWhitespace(text)); m != "" {
		return m
	}
	return text
}

func sessionHours(openedAt, closedAt string) decimal.Decimal {
	in, okIn := secondsOfDay(openedAt)
	out, okOut := secondsOfDay(closedAt)
	if !okIn || !okOut || out < in {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(out - in)).
		Div(decimal.NewFromInt(3600)).
		Round(2)
}
