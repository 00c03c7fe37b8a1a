/*
Package sqlite provides the SQLite-backed implementation of the storage
interfaces.

PURPOSE:
  Implements ledger.Storage (partitions of ordered rows) and ledger.Roster
  on SQLite. A "partition" is a named record in the partitions table; its
  rows live in partition_rows keyed by (partition, row_index) so insertion
  order survives round trips.

KEY TABLES:
  partitions:     one record per month partition (and the template)
  partition_rows: session rows, row_index preserves insertion order
  roster:         identity records, maintained outside the ledger

CELL ADDRESSING:
  The Storage interface addresses cells by (row_index, column_index).
  columnName maps the ledger's column constants onto SQL columns; an index
  outside the known layout is an error, not a silent write.

WAL MODE:
  Opened with WAL for better read concurrency and crash recovery. A
  sync.RWMutex serializes writers at the Go level on top of that.

USAGE:
  st, err := sqlite.New("./attendance.db")
  if err != nil { ... }
  defer st.Close()
  svc := ledger.NewService(st, st)

SEE ALSO:
  - ledger/storage.go: interface contracts
  - ledger/store/memory.go: in-memory implementation for testing
*/
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/warp/attendance-ledger/ledger"
)

// Store implements ledger.Storage and ledger.Roster using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New creates a SQLite store at the given path. Use ":memory:" for an
// in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// One connection keeps ":memory:" databases coherent across the pool.
	db.SetMaxOpenConns(1)

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS partitions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL UNIQUE,
		created_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS partition_rows (
		partition_id INTEGER NOT NULL REFERENCES partitions(id),
		row_index INTEGER NOT NULL,
		identity_id TEXT NOT NULL,
		display_name TEXT NOT NULL,
		opened_at TEXT NOT NULL,
		closed_at TEXT NOT NULL DEFAULT '',
		PRIMARY KEY (partition_id, row_index)
	);

	CREATE INDEX IF NOT EXISTS idx_partition_rows_identity
		ON partition_rows(partition_id, identity_id);

	CREATE TABLE IF NOT EXISTS roster (
		identity_id TEXT PRIMARY KEY,
		display_name TEXT NOT NULL
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

// columnName maps a ledger column index onto its SQL column.
func columnName(col int) (string, error) {
	switch col {
	case ledger.ColIdentityID:
		return "identity_id", nil
	case ledger.ColDisplayName:
		return "display_name", nil
	case ledger.ColOpenedAt:
		return "opened_at", nil
	case ledger.ColClosedAt:
		return "closed_at", nil
	default:
		return "", fmt.Errorf("column %d out of range", col)
	}
}

func (s *Store) partitionID(ctx context.Context, name string) (int64, error) {
	var id int64
	err := s.db.QueryRowContext(ctx, `SELECT id FROM partitions WHERE name = ?`, name).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("partition %q: %w", name, ledger.ErrPartitionNotFound)
	}
	if err != nil {
		return 0, err
	}
	return id, nil
}

// =============================================================================
// SEEDING HELPERS (not part of the Storage interface)
// =============================================================================

// CreatePartition registers an empty partition if it does not exist yet.
// Entry points use it to guarantee the template partition is present.
func (s *Store) CreatePartition(ctx context.Context, name string) (ledger.PartitionHandle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO partitions (name, created_at) VALUES (?, ?)`,
		name, time.Now().Format(time.RFC3339))
	if err != nil {
		return ledger.PartitionHandle{}, err
	}
	return ledger.PartitionHandle{Name: name}, nil
}

// AddIdentity upserts a roster entry.
func (s *Store) AddIdentity(ctx context.Context, id ledger.Identity) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO roster (identity_id, display_name) VALUES (?, ?)
		 ON CONFLICT(identity_id) DO UPDATE SET display_name = excluded.display_name`,
		string(id.ID), id.DisplayName)
	return err
}

// =============================================================================
// STORAGE
// =============================================================================

func (s *Store) ListPartitions(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `SELECT name FROM partitions ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

func (s *Store) GetPartition(ctx context.Context, name string) (ledger.PartitionHandle, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, err := s.partitionID(ctx, name); err != nil {
		return ledger.PartitionHandle{}, err
	}
	return ledger.PartitionHandle{Name: name}, nil
}

func (s *Store) DuplicatePartition(ctx context.Context, sourceName, newName string) (ledger.PartitionHandle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	srcID, err := s.partitionID(ctx, sourceName)
	if err != nil {
		return ledger.PartitionHandle{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return ledger.PartitionHandle{}, err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO partitions (name, created_at) VALUES (?, ?)`,
		newName, time.Now().Format(time.RFC3339))
	if err != nil {
		return ledger.PartitionHandle{}, fmt.Errorf("create partition %q: %w", newName, err)
	}
	newID, err := res.LastInsertId()
	if err != nil {
		return ledger.PartitionHandle{}, err
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO partition_rows (partition_id, row_index, identity_id, display_name, opened_at, closed_at)
		 SELECT ?, row_index, identity_id, display_name, opened_at, closed_at
		 FROM partition_rows WHERE partition_id = ?`,
		newID, srcID)
	if err != nil {
		return ledger.PartitionHandle{}, err
	}

	if err := tx.Commit(); err != nil {
		return ledger.PartitionHandle{}, err
	}
	return ledger.PartitionHandle{Name: newName}, nil
}

func (s *Store) Clear(ctx context.Context, p ledger.PartitionHandle) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, err := s.partitionID(ctx, p.Name)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `DELETE FROM partition_rows WHERE partition_id = ?`, id)
	return err
}

func (s *Store) ReadAllRows(ctx context.Context, p ledger.PartitionHandle) ([]ledger.Row, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, err := s.partitionID(ctx, p.Name)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT identity_id, display_name, opened_at, closed_at
		 FROM partition_rows WHERE partition_id = ? ORDER BY row_index`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ledger.Row
	for rows.Next() {
		var identityID, displayName, openedAt, closedAt string
		if err := rows.Scan(&identityID, &displayName, &openedAt, &closedAt); err != nil {
			return nil, err
		}
		out = append(out, ledger.Row{identityID, displayName, openedAt, closedAt})
	}
	return out, rows.Err()
}

func (s *Store) AppendRow(ctx context.Context, p ledger.PartitionHandle, row ledger.Row) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, err := s.partitionID(ctx, p.Name)
	if err != nil {
		return err
	}

	session := row.Session()
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO partition_rows (partition_id, row_index, identity_id, display_name, opened_at, closed_at)
		 VALUES (?, (SELECT COALESCE(MAX(row_index) + 1, 0) FROM partition_rows WHERE partition_id = ?), ?, ?, ?, ?)`,
		id, id, string(session.IdentityID), session.DisplayName, session.OpenedAt, session.ClosedAt)
	return err
}

func (s *Store) UpdateCell(ctx context.Context, p ledger.PartitionHandle, rowIndex, colIndex int, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, err := s.partitionID(ctx, p.Name)
	if err != nil {
		return err
	}
	col, err := columnName(colIndex)
	if err != nil {
		return err
	}

	res, err := s.db.ExecContext(ctx,
		fmt.Sprintf(`UPDATE partition_rows SET %s = ? WHERE partition_id = ? AND row_index = ?`, col),
		value, id, rowIndex)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("partition %q: row %d out of range", p.Name, rowIndex)
	}
	return nil
}

func (s *Store) ReadCell(ctx context.Context, p ledger.PartitionHandle, rowIndex, colIndex int) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, err := s.partitionID(ctx, p.Name)
	if err != nil {
		return "", err
	}
	col, err := columnName(colIndex)
	if err != nil {
		return "", err
	}

	var value string
	err = s.db.QueryRowContext(ctx,
		fmt.Sprintf(`SELECT %s FROM partition_rows WHERE partition_id = ? AND row_index = ?`, col),
		id, rowIndex).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("partition %q: row %d out of range", p.Name, rowIndex)
	}
	if err != nil {
		return "", err
	}
	return value, nil
}

// =============================================================================
// ROSTER
// =============================================================================

func (s *Store) ReadAllIdentities(ctx context.Context) ([]ledger.Identity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `SELECT identity_id, display_name FROM roster ORDER BY rowid`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var identities []ledger.Identity
	for rows.Next() {
		var id, name string
		if err := rows.Scan(&id, &name); err != nil {
			return nil, err
		}
		identities = append(identities, ledger.Identity{ID: ledger.IdentityID(id), DisplayName: name})
	}
	return identities, rows.Err()
}
