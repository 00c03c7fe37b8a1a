/*
matcher.go - Session matching within a shared, unsorted partition

PURPOSE:
  Finds the one row holding an identity's session for a given day. Rows
  arrive in chronological order across ALL identities, not grouped, so the
  scan always covers the entire partition - stopping early would miss
  later rows for the same identity.

TOLERANCE:
  Stored opened-at text varies across historical partitions. A row whose
  timestamp yields no date is skipped silently; it matches no day. That is
  deliberate resilience to heterogeneous data, not an error path.

SEE ALSO:
  - dates.go: ExtractDateFromTimestamp
  - writer.go: relies on the returned row position for targeted updates
*/
package ledger

import "context"

// AttendanceMatcher scans partitions for an identity's session on a day.
type AttendanceMatcher struct {
	storage Storage
	dates   *DateInterpreter
}

func NewAttendanceMatcher(storage Storage, dates *DateInterpreter) *AttendanceMatcher {
	return &AttendanceMatcher{storage: storage, dates: dates}
}

// FindSession returns the row holding identity's session for date, or nil
// when none exists. A nil result is normal control flow, not a failure.
func (m *AttendanceMatcher) FindSession(ctx context.Context, identity Identity, date CalendarDate, partition PartitionHandle) (*RowRef, error) {
	rows, err := m.storage.ReadAllRows(ctx, partition)
	if err != nil {
		return nil, &StorageUnavailableError{Op: "read partition rows", Err: err}
	}

	want := CanonicalID(string(identity.ID))
	for i, row := range rows {
		session := row.Session()
		if CanonicalID(string(session.IdentityID)) != want {
			continue
		}
		opened, ok := m.dates.ExtractDateFromTimestamp(session.OpenedAt)
		if !ok || !opened.Equal(date) {
			continue
		}
		return &RowRef{Index: i, Session: session}, nil
	}
	return nil, nil
}
