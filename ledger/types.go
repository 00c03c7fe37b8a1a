/*
types.go - Core value types for the attendance ledger

PURPOSE:
  Defines the small value types the whole ledger is built from: identities
  from the roster, sessions stored in partitions, and the reports returned
  to callers. The ledger owns none of the underlying data; these types are
  the policy-level view of it.

ROW LAYOUT:
  A partition row is a flat []string with a fixed column order:
    0: identity id    1: display name    2: opened-at    3: closed-at
  The Col* constants are the only place this layout is written down.
  UpdateCell/ReadCell callers must use them, never literal indexes.

CANONICAL IDS:
  Roster ids follow the "kido<number>" convention but arrive in whatever
  shape the caller typed ("1023", "KIDO1023", " kido1023 "). CanonicalID
  folds all of them to one comparable form. Both sides of every identity
  comparison in the ledger go through it.

SEE ALSO:
  - storage.go: Storage interface that moves Row values around
  - roster.go: RosterLookup, the main consumer of CanonicalID
*/
package ledger

import "strings"

// =============================================================================
// IDENTITY
// =============================================================================

// IdentityID is a canonical roster identifier ("kido1023").
type IdentityID string

// CanonicalPrefix is the required prefix of every roster id.
const CanonicalPrefix = "kido"

// CanonicalID normalizes a user-supplied identifier: trims, case-folds, and
// prepends the canonical prefix when absent.
func CanonicalID(raw string) IdentityID {
	id := strings.ToLower(strings.TrimSpace(raw))
	if id != "" && !strings.HasPrefix(id, CanonicalPrefix) {
		id = CanonicalPrefix + id
	}
	return IdentityID(id)
}

// Identity is one roster entry. The roster is maintained externally; the
// ledger only reads it.
type Identity struct {
	ID          IdentityID
	DisplayName string
}

// =============================================================================
// SESSION - One attendance record (open + optional close) for one day
// =============================================================================

// Session is the typed view of one partition row. OpenedAt is free-text but
// self-describing (day name, day, month, year, time); ClosedAt is empty
// until a check-out occurs and immutable afterwards.
type Session struct {
	IdentityID  IdentityID
	DisplayName string
	OpenedAt    string
	ClosedAt    string
}

// IsOpen reports whether the session has no close recorded yet.
func (s Session) IsOpen() bool {
	return strings.TrimSpace(s.ClosedAt) == ""
}

// =============================================================================
// ROW CODEC
// =============================================================================

// Row is one raw partition row. Rows are append-mostly: the only in-place
// mutation the ledger ever performs is setting ColClosedAt once.
type Row []string

// Column positions within a Row.
const (
	ColIdentityID = iota
	ColDisplayName
	ColOpenedAt
	ColClosedAt

	// RowWidth is the number of columns a well-formed row carries.
	RowWidth
)

func (r Row) cell(col int) string {
	if col < 0 || col >= len(r) {
		return ""
	}
	return r[col]
}

// Session decodes a row. Short or ragged rows decode to zero-valued fields
// rather than failing; historical partitions are not trusted to be clean.
func (r Row) Session() Session {
	return Session{
		IdentityID:  IdentityID(r.cell(ColIdentityID)),
		DisplayName: r.cell(ColDisplayName),
		OpenedAt:    r.cell(ColOpenedAt),
		ClosedAt:    r.cell(ColClosedAt),
	}
}

// NewRow encodes a session as a row.
func NewRow(s Session) Row {
	row := make(Row, RowWidth)
	row[ColIdentityID] = string(s.IdentityID)
	row[ColDisplayName] = s.DisplayName
	row[ColOpenedAt] = s.OpenedAt
	row[ColClosedAt] = s.ClosedAt
	return row
}

// RowRef is a matched row: its position within the partition plus its
// decoded content. The position is what makes targeted cell updates safe in
// a shared, unsorted partition.
type RowRef struct {
	Index   int
	Session Session
}

// =============================================================================
// REPORTS
// =============================================================================

// SessionReport is returned by check-in and check-out.
type SessionReport struct {
	Identity Identity
	OpenedAt string
	ClosedAt string
}
