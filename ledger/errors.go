/*
errors.go - Centralized error types for the attendance ledger

PURPOSE:
  All ledger error types in one place. Two tiers:
  1. Sentinel errors for errors.Is() classification
  2. Structured errors carrying context, each unwrapping to its sentinel

  Every error here is recoverable at the request boundary: each maps to a
  distinct user-facing message, none should terminate the process.

USAGE:
  report, err := svc.CheckIn(ctx, "1023")
  if errors.Is(err, ledger.ErrAlreadyCheckedIn) {
      var dup *ledger.AlreadyCheckedInError
      errors.As(err, &dup) // dup.OpenedAt says when
  }

RETRY POLICY:
  ErrStorageUnavailable is the only kind a caller may retry. The ledger
  itself never retries; it fails fast and lets the caller decide.

SEE ALSO:
  - api/handlers.go: maps these to HTTP status codes
*/
package ledger

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrUnknownIdentity is returned when no roster entry matches a raw id.
	ErrUnknownIdentity = errors.New("unknown identity")

	// ErrAlreadyCheckedIn is returned when an identity already has a session
	// for the target day. Non-fatal, user-facing.
	ErrAlreadyCheckedIn = errors.New("already checked in")

	// ErrAlreadyCheckedOut is returned when the matched session's close
	// field is already set. The recorded close never changes.
	ErrAlreadyCheckedOut = errors.New("already checked out")

	// ErrNoOpenSession is returned by check-out when no session exists for
	// the identity on the target day.
	ErrNoOpenSession = errors.New("no open session")

	// ErrAmbiguousDate is returned when no interpretation strategy can make
	// a calendar date out of the input.
	ErrAmbiguousDate = errors.New("ambiguous date")

	// ErrPartitionNotFound is returned when a partition does not exist and
	// the operation does not create one.
	ErrPartitionNotFound = errors.New("partition not found")

	// ErrEmptyReport is returned when a summary matches zero rows. Surfaced
	// to callers as "no records", not as a failure.
	ErrEmptyReport = errors.New("no attendance records")

	// ErrInvalidArgument is returned for malformed caller input before any
	// storage access happens.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrStorageUnavailable wraps transport failures from the storage
	// collaborator.
	ErrStorageUnavailable = errors.New("storage unavailable")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// UnknownIdentityError reports a roster miss.
type UnknownIdentityError struct {
	RawID string
}

func (e *UnknownIdentityError) Error() string {
	return fmt.Sprintf("id %q not found in roster", e.RawID)
}

func (e *UnknownIdentityError) Unwrap() error { return ErrUnknownIdentity }

// AlreadyCheckedInError reports a duplicate check-in attempt.
type AlreadyCheckedInError struct {
	Identity Identity
	OpenedAt string
}

func (e *AlreadyCheckedInError) Error() string {
	return fmt.Sprintf("%s already clocked in today (at %s)", e.Identity.DisplayName, e.OpenedAt)
}

func (e *AlreadyCheckedInError) Unwrap() error { return ErrAlreadyCheckedIn }

// AlreadyCheckedOutError reports a re-close attempt.
type AlreadyCheckedOutError struct {
	Identity Identity
	ClosedAt string
}

func (e *AlreadyCheckedOutError) Error() string {
	return fmt.Sprintf("%s already clocked out at %s", e.Identity.DisplayName, e.ClosedAt)
}

func (e *AlreadyCheckedOutError) Unwrap() error { return ErrAlreadyCheckedOut }

// NoOpenSessionError reports a check-out with nothing to close.
type NoOpenSessionError struct {
	Identity Identity
	Date     CalendarDate
}

func (e *NoOpenSessionError) Error() string {
	return fmt.Sprintf("no clock-in record on %s for %s", e.Date, e.Identity.DisplayName)
}

func (e *NoOpenSessionError) Unwrap() error { return ErrNoOpenSession }

// AmbiguousDateError reports input no date strategy understood.
type AmbiguousDateError struct {
	Input string
}

func (e *AmbiguousDateError) Error() string {
	return fmt.Sprintf("could not understand date %q", e.Input)
}

func (e *AmbiguousDateError) Unwrap() error { return ErrAmbiguousDate }

// NoPartitionError reports a read of a month whose partition was never
// created.
type NoPartitionError struct {
	Date CalendarDate
	Name string
}

func (e *NoPartitionError) Error() string {
	return fmt.Sprintf("no partition %q for %s", e.Name, e.Date)
}

func (e *NoPartitionError) Unwrap() error { return ErrPartitionNotFound }

// EmptyReportError reports a summary with zero matching rows.
type EmptyReportError struct {
	Date CalendarDate
}

func (e *EmptyReportError) Error() string {
	return fmt.Sprintf("no attendance records found for %s", e.Date.Format("2 January 2006"))
}

func (e *EmptyReportError) Unwrap() error { return ErrEmptyReport }

// ValidationError reports malformed caller input.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error { return ErrInvalidArgument }

// StorageUnavailableError wraps a failed storage call with the operation
// that failed.
type StorageUnavailableError struct {
	Op  string
	Err error
}

func (e *StorageUnavailableError) Error() string {
	return fmt.Sprintf("storage unavailable during %s: %v", e.Op, e.Err)
}

func (e *StorageUnavailableError) Unwrap() error { return ErrStorageUnavailable }

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsClientError returns true if the error is due to caller input or state
// the caller can see, as opposed to infrastructure failure.
func IsClientError(err error) bool {
	return errors.Is(err, ErrUnknownIdentity) ||
		errors.Is(err, ErrAlreadyCheckedIn) ||
		errors.Is(err, ErrAlreadyCheckedOut) ||
		errors.Is(err, ErrNoOpenSession) ||
		errors.Is(err, ErrAmbiguousDate) ||
		errors.Is(err, ErrPartitionNotFound) ||
		errors.Is(err, ErrEmptyReport) ||
		errors.Is(err, ErrInvalidArgument)
}

// IsNotFound returns true if the error indicates something missing rather
// than something conflicting.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrUnknownIdentity) ||
		errors.Is(err, ErrNoOpenSession) ||
		errors.Is(err, ErrPartitionNotFound) ||
		errors.Is(err, ErrEmptyReport)
}

// IsRetryable returns true if the error might succeed on retry.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrStorageUnavailable)
}
