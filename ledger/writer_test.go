package ledger_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/attendance-ledger/ledger"
)

// octoberPartition fetches the handle the write path must have created.
func octoberPartition(t *testing.T, storage ledger.Storage) ledger.PartitionHandle {
	t.Helper()
	handle, err := storage.GetPartition(context.Background(), "October 2025 Attendance")
	require.NoError(t, err)
	return handle
}

func TestCheckIn_CreatesSessionRow(t *testing.T) {
	for name, newFixture := range backends(t) {
		t.Run(name, func(t *testing.T) {
			// GIVEN: an empty month, roster containing {kido1023, Ana}
			// WHEN: checking in with the bare id "1023"
			// THEN: one row {kido1023, Ana, <today stamp>, ""} exists

			fx := newFixture(t)
			svc := ledger.NewServiceAt(fx.storage, fx.roster, fixedClock)
			ctx := context.Background()

			report, err := svc.CheckIn(ctx, "1023")
			require.NoError(t, err)
			assert.Equal(t, "Ana", report.Identity.DisplayName)
			assert.Equal(t, "Monday, 27 October 2025, 09:00:00", report.OpenedAt)
			assert.Equal(t, "Ana clocked IN at 09:00:00", ledger.FormatCheckIn(report))

			rows, err := fx.storage.ReadAllRows(ctx, octoberPartition(t, fx.storage))
			require.NoError(t, err)
			require.Len(t, rows, 1)
			session := rows[0].Session()
			assert.Equal(t, ledger.IdentityID("kido1023"), session.IdentityID)
			assert.Equal(t, "Ana", session.DisplayName)
			assert.Equal(t, "Monday, 27 October 2025, 09:00:00", session.OpenedAt)
			assert.True(t, session.IsOpen())
		})
	}
}

func TestCheckIn_DuplicateSameDayRejected(t *testing.T) {
	for name, newFixture := range backends(t) {
		t.Run(name, func(t *testing.T) {
			fx := newFixture(t)
			ctx := context.Background()

			morning := ledger.NewServiceAt(fx.storage, fx.roster, fixedClock)
			_, err := morning.CheckIn(ctx, "1023")
			require.NoError(t, err)

			// Later the same day, with a different raw spelling of the id.
			afternoon := ledger.NewServiceAt(fx.storage, fx.roster, clockAt(13, 0, 0))
			_, err = afternoon.CheckIn(ctx, "KIDO1023")
			assert.ErrorIs(t, err, ledger.ErrAlreadyCheckedIn)

			var dup *ledger.AlreadyCheckedInError
			require.True(t, errors.As(err, &dup))
			assert.Equal(t, "Monday, 27 October 2025, 09:00:00", dup.OpenedAt)

			rows, err := fx.storage.ReadAllRows(ctx, octoberPartition(t, fx.storage))
			require.NoError(t, err)
			assert.Len(t, rows, 1, "no second row may be written")
		})
	}
}

func TestCheckOut_BeforeCheckIn(t *testing.T) {
	for name, newFixture := range backends(t) {
		t.Run(name, func(t *testing.T) {
			fx := newFixture(t)
			svc := ledger.NewServiceAt(fx.storage, fx.roster, fixedClock)

			_, err := svc.CheckOut(context.Background(), "1023")
			assert.ErrorIs(t, err, ledger.ErrNoOpenSession)
		})
	}
}

func TestCheckOut_ClosesOpenSession(t *testing.T) {
	for name, newFixture := range backends(t) {
		t.Run(name, func(t *testing.T) {
			fx := newFixture(t)
			ctx := context.Background()

			morning := ledger.NewServiceAt(fx.storage, fx.roster, fixedClock)
			_, err := morning.CheckIn(ctx, "1023")
			require.NoError(t, err)

			evening := ledger.NewServiceAt(fx.storage, fx.roster, clockAt(15, 30, 0))
			report, err := evening.CheckOut(ctx, "1023")
			require.NoError(t, err)
			assert.Equal(t, "15:30:00", report.ClosedAt)
			assert.Equal(t, "Ana clocked OUT at 15:30:00", ledger.FormatCheckOut(report))

			rows, err := fx.storage.ReadAllRows(ctx, octoberPartition(t, fx.storage))
			require.NoError(t, err)
			require.Len(t, rows, 1)
			session := rows[0].Session()
			assert.Equal(t, "Monday, 27 October 2025, 09:00:00", session.OpenedAt, "open stamp untouched")
			assert.Equal(t, "15:30:00", session.ClosedAt)
		})
	}
}

func TestCheckOut_SecondCheckOutRejected(t *testing.T) {
	for name, newFixture := range backends(t) {
		t.Run(name, func(t *testing.T) {
			// Once set, the close field never changes.

			fx := newFixture(t)
			ctx := context.Background()

			morning := ledger.NewServiceAt(fx.storage, fx.roster, fixedClock)
			_, err := morning.CheckIn(ctx, "1023")
			require.NoError(t, err)

			evening := ledger.NewServiceAt(fx.storage, fx.roster, clockAt(15, 30, 0))
			_, err = evening.CheckOut(ctx, "1023")
			require.NoError(t, err)

			later := ledger.NewServiceAt(fx.storage, fx.roster, clockAt(17, 45, 0))
			_, err = later.CheckOut(ctx, "1023")
			assert.ErrorIs(t, err, ledger.ErrAlreadyCheckedOut)

			var already *ledger.AlreadyCheckedOutError
			require.True(t, errors.As(err, &already))
			assert.Equal(t, "15:30:00", already.ClosedAt)

			cell, err := fx.storage.ReadCell(ctx, octoberPartition(t, fx.storage), 0, ledger.ColClosedAt)
			require.NoError(t, err)
			assert.Equal(t, "15:30:00", cell, "close value must be unchanged")
		})
	}
}

func TestCheckOut_TargetsMatchedRowOnly(t *testing.T) {
	for name, newFixture := range backends(t) {
		t.Run(name, func(t *testing.T) {
			// Two identities share the partition in arrival order; closing
			// Ana must not touch Ben's row.

			fx := newFixture(t)
			ctx := context.Background()

			morning := ledger.NewServiceAt(fx.storage, fx.roster, fixedClock)
			_, err := morning.CheckIn(ctx, "1007") // Ben first
			require.NoError(t, err)
			_, err = morning.CheckIn(ctx, "1023") // Ana second
			require.NoError(t, err)

			evening := ledger.NewServiceAt(fx.storage, fx.roster, clockAt(15, 30, 0))
			_, err = evening.CheckOut(ctx, "1023")
			require.NoError(t, err)

			rows, err := fx.storage.ReadAllRows(ctx, octoberPartition(t, fx.storage))
			require.NoError(t, err)
			require.Len(t, rows, 2)
			assert.True(t, rows[0].Session().IsOpen(), "Ben stays open")
			assert.Equal(t, "15:30:00", rows[1].Session().ClosedAt)
		})
	}
}

func TestCheckIn_UnknownIdentity(t *testing.T) {
	for name, newFixture := range backends(t) {
		t.Run(name, func(t *testing.T) {
			fx := newFixture(t)
			svc := ledger.NewServiceAt(fx.storage, fx.roster, fixedClock)
			ctx := context.Background()

			_, err := svc.CheckIn(ctx, "9999")
			assert.ErrorIs(t, err, ledger.ErrUnknownIdentity)

			// No partition work happens for an unknown id.
			_, err = fx.storage.GetPartition(ctx, "October 2025 Attendance")
			assert.ErrorIs(t, err, ledger.ErrPartitionNotFound)
		})
	}
}

func TestCheckIn_EmptyID(t *testing.T) {
	fx := backends(t)["memory"](t)
	svc := ledger.NewServiceAt(fx.storage, fx.roster, fixedClock)

	_, err := svc.CheckIn(context.Background(), "  ")
	assert.ErrorIs(t, err, ledger.ErrInvalidArgument)

	_, err = svc.CheckOut(context.Background(), "")
	assert.ErrorIs(t, err, ledger.ErrInvalidArgument)
}

func TestCheckIn_NewMonthStartsFresh(t *testing.T) {
	for name, newFixture := range backends(t) {
		t.Run(name, func(t *testing.T) {
			// GIVEN: Ana checked in (and never out) in October
			// WHEN: she checks in on 3 November
			// THEN: November's partition is created from October and starts
			//       empty; October keeps its stale open session

			fx := newFixture(t)
			ctx := context.Background()

			october := ledger.NewServiceAt(fx.storage, fx.roster, fixedClock)
			_, err := october.CheckIn(ctx, "1023")
			require.NoError(t, err)

			novemberNow := func() time.Time {
				return time.Date(2025, time.November, 3, 8, 30, 0, 0, time.Local)
			}
			november := ledger.NewServiceAt(fx.storage, fx.roster, novemberNow)
			report, err := november.CheckIn(ctx, "1023")
			require.NoError(t, err)
			assert.Equal(t, "Monday, 3 November 2025, 08:30:00", report.OpenedAt)

			novemberHandle, err := fx.storage.GetPartition(ctx, "November 2025 Attendance")
			require.NoError(t, err)
			rows, err := fx.storage.ReadAllRows(ctx, novemberHandle)
			require.NoError(t, err)
			assert.Len(t, rows, 1, "only November's own row")

			rows, err = fx.storage.ReadAllRows(ctx, octoberPartition(t, fx.storage))
			require.NoError(t, err)
			require.Len(t, rows, 1)
			assert.True(t, rows[0].Session().IsOpen(), "stale October session is abandoned, not closed")
		})
	}
}
