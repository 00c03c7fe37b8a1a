/*
writer.go - Check-in and check-out with per-day session invariants

PURPOSE:
  The only component that writes session data. Enforces, per identity and
  calendar day:
    - at most one session (no duplicate check-ins)
    - at most one close, immutable once set

TIMESTAMP CONVENTION:
  OpenedAt carries a full self-describing stamp (weekday, day, month,
  year, time) so the calendar date is recoverable from the row alone.
  ClosedAt carries time-of-day only; it is always read in its row's
  context.

TARGETED UPDATES:
  Check-out updates exactly the cell of the row the matcher found. The
  partition is shared by all identities in arrival order; writing to any
  computed position other than the matched one could clobber another
  identity's session.

RACE WINDOW:
  Scan-then-append and scan-then-update are not atomic, matching what the
  storage offers. A racing pair of calls on the same identity/day leaves
  last-write-wins on the close field. Accepted.

SEE ALSO:
  - matcher.go: row discovery
  - partition.go: write partition resolution
*/
package ledger

import (
	"context"
	"strings"
	"time"
)

// Timestamp layouts for session fields.
const (
	OpenedAtLayout = "Monday, 2 January 2006, 15:04:05"
	ClosedAtLayout = "15:04:05"
)

// LedgerWriter performs check-in and check-out.
type LedgerWriter struct {
	storage    Storage
	roster     *RosterLookup
	partitions *PartitionResolver
	matcher    *AttendanceMatcher

	// Now is overridable for tests.
	Now func() time.Time
}

func NewLedgerWriter(storage Storage, roster *RosterLookup, partitions *PartitionResolver, matcher *AttendanceMatcher) *LedgerWriter {
	return &LedgerWriter{
		storage:    storage,
		roster:     roster,
		partitions: partitions,
		matcher:    matcher,
		Now:        time.Now,
	}
}

func (w *LedgerWriter) now() time.Time {
	if w.Now != nil {
		return w.Now()
	}
	return time.Now()
}

// CheckIn opens a session for rawID today. Fails with AlreadyCheckedInError
// when a session for today already exists.
func (w *LedgerWriter) CheckIn(ctx context.Context, rawID string) (SessionReport, error) {
	now := w.now()

	identity, err := w.roster.Resolve(ctx, rawID)
	if err != nil {
		return SessionReport{}, err
	}

	partition, err := w.partitions.ResolveForWrite(ctx, now)
	if err != nil {
		return SessionReport{}, err
	}

	existing, err := w.matcher.FindSession(ctx, identity, DateOf(now), partition)
	if err != nil {
		return SessionReport{}, err
	}
	if existing != nil {
		return SessionReport{}, &AlreadyCheckedInError{Identity: identity, OpenedAt: existing.Session.OpenedAt}
	}

	session := Session{
		IdentityID:  identity.ID,
		DisplayName: identity.DisplayName,
		OpenedAt:    now.Format(OpenedAtLayout),
	}
	if err := w.storage.AppendRow(ctx, partition, NewRow(session)); err != nil {
		return SessionReport{}, &StorageUnavailableError{Op: "append session row", Err: err}
	}

	return SessionReport{Identity: identity, OpenedAt: session.OpenedAt}, nil
}

// CheckOut closes today's open session for rawID. Fails with
// NoOpenSessionError when no session exists for today and with
// AlreadyCheckedOutError when the close field is already set.
func (w *LedgerWriter) CheckOut(ctx context.Context, rawID string) (SessionReport, error) {
	now := w.now()

	identity, err := w.roster.Resolve(ctx, rawID)
	if err != nil {
		return SessionReport{}, err
	}

	partition, err := w.partitions.ResolveForWrite(ctx, now)
	if err != nil {
		return SessionReport{}, err
	}

	ref, err := w.matcher.FindSession(ctx, identity, DateOf(now), partition)
	if err != nil {
		return SessionReport{}, err
	}
	if ref == nil {
		return SessionReport{}, &NoOpenSessionError{Identity: identity, Date: DateOf(now)}
	}

	// Re-read the close cell rather than trusting the scanned copy; this
	// narrows (not closes) the race with a concurrent check-out.
	closed, err := w.storage.ReadCell(ctx, partition, ref.Index, ColClosedAt)
	if err != nil {
		return SessionReport{}, &StorageUnavailableError{Op: "read close cell", Err: err}
	}
	if strings.TrimSpace(closed) != "" {
		return SessionReport{}, &AlreadyCheckedOutError{Identity: identity, ClosedAt: closed}
	}

	stamp := now.Format(ClosedAtLayout)
	if err := w.storage.UpdateCell(ctx, partition, ref.Index, ColClosedAt, stamp); err != nil {
		return SessionReport{}, &StorageUnavailableError{Op: "update close cell", Err: err}
	}

	return SessionReport{Identity: identity, OpenedAt: ref.Session.OpenedAt, ClosedAt: stamp}, nil
}
