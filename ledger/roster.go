/*
roster.go - Free-form identifier to roster identity resolution

PURPOSE:
  Resolves whatever the caller typed ("1023", "KIDO1023") to the canonical
  roster entry. The roster is read in full on every lookup: it changes
  between requests, it is small, and lookups are rare, so staleness is
  traded away for simplicity. No caching.

SEE ALSO:
  - types.go: CanonicalID normalization rules
*/
package ledger

import "context"

// RosterLookup resolves raw identifiers against the roster collaborator.
type RosterLookup struct {
	roster Roster
}

func NewRosterLookup(roster Roster) *RosterLookup {
	return &RosterLookup{roster: roster}
}

// Resolve returns the roster entry matching rawID after prefix and case
// normalization of both sides. Returns UnknownIdentityError on a miss.
func (l *RosterLookup) Resolve(ctx context.Context, rawID string) (Identity, error) {
	want := CanonicalID(rawID)

	identities, err := l.roster.ReadAllIdentities(ctx)
	if err != nil {
		return Identity{}, &StorageUnavailableError{Op: "read roster", Err: err}
	}

	for _, id := range identities {
		if CanonicalID(string(id.ID)) == want {
			return Identity{ID: want, DisplayName: id.DisplayName}, nil
		}
	}
	return Identity{}, &UnknownIdentityError{RawID: rawID}
}
