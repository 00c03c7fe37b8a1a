/*
service.go - Public surface of the attendance ledger

PURPOSE:
  The facade the calling layer (chat command dispatcher, HTTP handler,
  CLI) consumes. Three operations are the entire contract:

    CheckIn(rawID)       -> SessionReport | error
    CheckOut(rawID)      -> SessionReport | error
    Summarize(dateText)  -> SummaryReport | error

  The service owns component wiring only; every rule lives in the
  component that enforces it. The storage handle is constructed by the
  process entry point and passed in - no package-level connection state.

SEE ALSO:
  - cmd/server/main.go, cmd/attendance/main.go: entry points that own the
    storage lifecycle
*/
package ledger

import (
	"context"
	"strings"
	"time"
)

// Service wires the ledger components over one storage and roster handle.
type Service struct {
	dates     *DateInterpreter
	writer    *LedgerWriter
	summaries *SummaryBuilder
}

// NewService builds a service on the host clock.
func NewService(storage Storage, roster Roster) *Service {
	return NewServiceAt(storage, roster, time.Now)
}

// NewServiceAt builds a service on an explicit clock. Tests use this to pin
// "now".
func NewServiceAt(storage Storage, roster Roster, now func() time.Time) *Service {
	dates := &DateInterpreter{Now: now}
	partitions := NewPartitionResolver(storage)
	lookup := NewRosterLookup(roster)
	matcher := NewAttendanceMatcher(storage, dates)

	writer := NewLedgerWriter(storage, lookup, partitions, matcher)
	writer.Now = now

	return &Service{
		dates:     dates,
		writer:    writer,
		summaries: NewSummaryBuilder(storage, partitions, dates),
	}
}

// CheckIn opens today's session for the identified child.
func (s *Service) CheckIn(ctx context.Context, rawID string) (SessionReport, error) {
	if strings.TrimSpace(rawID) == "" {
		return SessionReport{}, &ValidationError{Field: "id", Message: "identity id is required, e.g. 1023"}
	}
	return s.writer.CheckIn(ctx, rawID)
}

// CheckOut closes today's session for the identified child.
func (s *Service) CheckOut(ctx context.Context, rawID string) (SessionReport, error) {
	if strings.TrimSpace(rawID) == "" {
		return SessionReport{}, &ValidationError{Field: "id", Message: "identity id is required, e.g. 1023"}
	}
	return s.writer.CheckOut(ctx, rawID)
}

// Summarize interprets a free-form date expression and builds that day's
// report.
func (s *Service) Summarize(ctx context.Context, dateText string) (SummaryReport, error) {
	date, err := s.dates.Interpret(dateText)
	if err != nil {
		return SummaryReport{}, err
	}
	return s.summaries.Summarize(ctx, date)
}
