package ledger_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/warp/attendance-ledger/ledger"
	"github.com/warp/attendance-ledger/ledger/store"
	"github.com/warp/attendance-ledger/store/sqlite"
)

// =============================================================================
// SHARED FIXTURES
// =============================================================================

// testNow pins "now" to Monday, 27 October 2025, 09:00:00 local time.
var testNow = time.Date(2025, time.October, 27, 9, 0, 0, 0, time.Local)

func fixedClock() time.Time { return testNow }

func clockAt(hour, min, sec int) func() time.Time {
	return func() time.Time {
		return time.Date(2025, time.October, 27, hour, min, sec, 0, time.Local)
	}
}

// newMemoryFixture returns a memory backend seeded with the template
// partition and a small roster.
func newMemoryFixture(t *testing.T) *store.Memory {
	t.Helper()
	m := store.NewMemory()
	m.CreatePartition(ledger.TemplatePartition)
	m.AddIdentity(ledger.Identity{ID: "kido1023", DisplayName: "Ana"})
	m.AddIdentity(ledger.Identity{ID: "kido1007", DisplayName: "Ben"})
	return m
}

type fixture struct {
	storage ledger.Storage
	roster  ledger.Roster
}

// backends runs invariant tests against every Storage implementation; the
// ledger must behave identically on all of them.
func backends(t *testing.T) map[string]func(t *testing.T) fixture {
	t.Helper()
	return map[string]func(t *testing.T) fixture{
		"memory": func(t *testing.T) fixture {
			m := newMemoryFixture(t)
			return fixture{storage: m, roster: m}
		},
		"sqlite": func(t *testing.T) fixture {
			st, err := sqlite.New(":memory:")
			require.NoError(t, err)
			t.Cleanup(func() { st.Close() })

			ctx := context.Background()
			_, err = st.CreatePartition(ctx, ledger.TemplatePartition)
			require.NoError(t, err)
			require.NoError(t, st.AddIdentity(ctx, ledger.Identity{ID: "kido1023", DisplayName: "Ana"}))
			require.NoError(t, st.AddIdentity(ctx, ledger.Identity{ID: "kido1007", DisplayName: "Ben"}))
			return fixture{storage: st, roster: st}
		},
	}
}
