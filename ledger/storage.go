/*
storage.go - Storage and roster collaborator interfaces

PURPOSE:
  The ledger never talks to a concrete backend. It consumes an abstract
  tabular store (named partitions of ordered rows) and a read-only roster.
  Implementations decide what a partition physically is - a worksheet, a
  pair of SQL tables, a map in memory.

NO TRANSACTIONS:
  The store serializes individual calls but offers no cross-call
  transaction. Every invariant the ledger enforces is a scan-then-write
  with a known, accepted race window. Components must not pretend
  otherwise.

ERROR CONTRACT:
  GetPartition returns an error wrapping ErrPartitionNotFound when the
  named partition does not exist. Any other failure from any method is a
  transport failure; components wrap it in StorageUnavailableError.

IMPLEMENTATIONS:
  - ledger/store/memory.go: in-memory, for tests and dev
  - store/sqlite/sqlite.go: production SQLite

SEE ALSO:
  - partition.go: the only component that creates partitions
*/
package ledger

import "context"

// PartitionHandle identifies one month-scoped partition. Handles are cheap
// name carriers; implementations resolve them per call.
type PartitionHandle struct {
	Name string
}

func (h PartitionHandle) IsZero() bool { return h.Name == "" }

// Storage is the abstract tabular store the ledger writes sessions into.
type Storage interface {
	// ListPartitions returns the names of all existing partitions.
	ListPartitions(ctx context.Context) ([]string, error)

	// GetPartition returns a handle for an existing partition, or an error
	// wrapping ErrPartitionNotFound.
	GetPartition(ctx context.Context, name string) (PartitionHandle, error)

	// DuplicatePartition copies an existing partition (layout and rows)
	// under a new name and returns the copy's handle.
	DuplicatePartition(ctx context.Context, sourceName, newName string) (PartitionHandle, error)

	// Clear removes all rows from a partition, keeping its layout.
	Clear(ctx context.Context, p PartitionHandle) error

	// ReadAllRows returns every row in insertion order.
	ReadAllRows(ctx context.Context, p PartitionHandle) ([]Row, error)

	// AppendRow adds a row after the last existing row.
	AppendRow(ctx context.Context, p PartitionHandle, row Row) error

	// UpdateCell overwrites a single cell of an existing row.
	UpdateCell(ctx context.Context, p PartitionHandle, rowIndex, colIndex int, value string) error

	// ReadCell returns a single cell of an existing row.
	ReadCell(ctx context.Context, p PartitionHandle, rowIndex, colIndex int) (string, error)
}

// Roster is the read-only identity collaborator.
type Roster interface {
	// ReadAllIdentities returns every roster entry in stored order.
	ReadAllIdentities(ctx context.Context) ([]Identity, error)
}
