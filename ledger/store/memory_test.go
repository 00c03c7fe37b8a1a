package store_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/attendance-ledger/ledger"
	"github.com/warp/attendance-ledger/ledger/store"
)

func TestMemory_PartitionLifecycle(t *testing.T) {
	ctx := context.Background()
	m := store.NewMemory()

	_, err := m.GetPartition(ctx, "October 2025 Attendance")
	assert.ErrorIs(t, err, ledger.ErrPartitionNotFound)

	p := m.CreatePartition("October 2025 Attendance")
	got, err := m.GetPartition(ctx, "October 2025 Attendance")
	require.NoError(t, err)
	assert.Equal(t, p, got)

	names, err := m.ListPartitions(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"October 2025 Attendance"}, names)
}

func TestMemory_DuplicateAndClear(t *testing.T) {
	ctx := context.Background()
	m := store.NewMemory()
	src := m.CreatePartition("Template")
	require.NoError(t, m.AppendRow(ctx, src, ledger.Row{"kido1023", "Ana", "stamp", ""}))

	dup, err := m.DuplicatePartition(ctx, "Template", "October 2025 Attendance")
	require.NoError(t, err)

	rows, err := m.ReadAllRows(ctx, dup)
	require.NoError(t, err)
	assert.Len(t, rows, 1, "duplicate carries source rows")

	require.NoError(t, m.Clear(ctx, dup))
	rows, err = m.ReadAllRows(ctx, dup)
	require.NoError(t, err)
	assert.Empty(t, rows)

	// The source is unaffected by clearing the copy.
	rows, err = m.ReadAllRows(ctx, src)
	require.NoError(t, err)
	assert.Len(t, rows, 1)

	_, err = m.DuplicatePartition(ctx, "Template", "October 2025 Attendance")
	assert.Error(t, err, "duplicate under an existing name is rejected")

	_, err = m.DuplicatePartition(ctx, "Nope", "X")
	assert.ErrorIs(t, err, ledger.ErrPartitionNotFound)
}

func TestMemory_CellAccess(t *testing.T) {
	ctx := context.Background()
	m := store.NewMemory()
	p := m.CreatePartition("October 2025 Attendance")
	require.NoError(t, m.AppendRow(ctx, p, ledger.Row{"kido1023", "Ana", "stamp", ""}))

	require.NoError(t, m.UpdateCell(ctx, p, 0, ledger.ColClosedAt, "15:30:00"))

	cell, err := m.ReadCell(ctx, p, 0, ledger.ColClosedAt)
	require.NoError(t, err)
	assert.Equal(t, "15:30:00", cell)

	// Other cells of the row are untouched.
	cell, err = m.ReadCell(ctx, p, 0, ledger.ColDisplayName)
	require.NoError(t, err)
	assert.Equal(t, "Ana", cell)

	assert.Error(t, m.UpdateCell(ctx, p, 5, ledger.ColClosedAt, "x"), "row out of range")
	_, err = m.ReadCell(ctx, p, 5, ledger.ColClosedAt)
	assert.Error(t, err)
}

func TestMemory_ReadAllRowsReturnsCopies(t *testing.T) {
	// Mutating a returned row must not leak into the store.

	ctx := context.Background()
	m := store.NewMemory()
	p := m.CreatePartition("October 2025 Attendance")
	require.NoError(t, m.AppendRow(ctx, p, ledger.Row{"kido1023", "Ana", "stamp", ""}))

	rows, err := m.ReadAllRows(ctx, p)
	require.NoError(t, err)
	rows[0][ledger.ColDisplayName] = "Mallory"

	rows, err = m.ReadAllRows(ctx, p)
	require.NoError(t, err)
	assert.Equal(t, "Ana", rows[0].Session().DisplayName)
}

func TestMemory_Roster(t *testing.T) {
	ctx := context.Background()
	m := store.NewMemory()
	m.AddIdentity(ledger.Identity{ID: "kido1023", DisplayName: "Ana"})
	m.AddIdentity(ledger.Identity{ID: "kido1007", DisplayName: "Ben"})

	identities, err := m.ReadAllIdentities(ctx)
	require.NoError(t, err)
	require.Len(t, identities, 2)
	assert.Equal(t, "Ana", identities[0].DisplayName, "stored order preserved")
}
