// Package store provides Storage and Roster implementations.
package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/warp/attendance-ledger/ledger"
)

// =============================================================================
// MEMORY STORE - In-memory implementation (for testing/dev)
// =============================================================================

// Memory implements ledger.Storage and ledger.Roster in memory.
type Memory struct {
	mu         sync.RWMutex
	partitions map[string][]ledger.Row
	order      []string // partition creation order
	identities []ledger.Identity
}

func NewMemory() *Memory {
	return &Memory{partitions: make(map[string][]ledger.Row)}
}

// =============================================================================
// SEEDING HELPERS (not part of the Storage interface)
// =============================================================================

// CreatePartition registers an empty partition. Used to seed the template
// partition and test fixtures.
func (m *Memory) CreatePartition(name string) ledger.PartitionHandle {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.partitions[name]; !ok {
		m.partitions[name] = nil
		m.order = append(m.order, name)
	}
	return ledger.PartitionHandle{Name: name}
}

// AddIdentity appends a roster entry.
func (m *Memory) AddIdentity(id ledger.Identity) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.identities = append(m.identities, id)
}

// =============================================================================
// STORAGE
// =============================================================================

func (m *Memory) ListPartitions(_ context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	names := make([]string, len(m.order))
	copy(names, m.order)
	return names, nil
}

func (m *Memory) GetPartition(_ context.Context, name string) (ledger.PartitionHandle, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if _, ok := m.partitions[name]; !ok {
		return ledger.PartitionHandle{}, fmt.Errorf("partition %q: %w", name, ledger.ErrPartitionNotFound)
	}
	return ledger.PartitionHandle{Name: name}, nil
}

func (m *Memory) DuplicatePartition(_ context.Context, sourceName, newName string) (ledger.PartitionHandle, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	src, ok := m.partitions[sourceName]
	if !ok {
		return ledger.PartitionHandle{}, fmt.Errorf("partition %q: %w", sourceName, ledger.ErrPartitionNotFound)
	}
	if _, exists := m.partitions[newName]; exists {
		return ledger.PartitionHandle{}, fmt.Errorf("partition %q already exists", newName)
	}

	rows := make([]ledger.Row, len(src))
	for i, row := range src {
		rows[i] = append(ledger.Row(nil), row...)
	}
	m.partitions[newName] = rows
	m.order = append(m.order, newName)
	return ledger.PartitionHandle{Name: newName}, nil
}

func (m *Memory) Clear(_ context.Context, p ledger.PartitionHandle) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.partitions[p.Name]; !ok {
		return fmt.Errorf("partition %q: %w", p.Name, ledger.ErrPartitionNotFound)
	}
	m.partitions[p.Name] = nil
	return nil
}

func (m *Memory) ReadAllRows(_ context.Context, p ledger.PartitionHandle) ([]ledger.Row, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	src, ok := m.partitions[p.Name]
	if !ok {
		return nil, fmt.Errorf("partition %q: %w", p.Name, ledger.ErrPartitionNotFound)
	}
	rows := make([]ledger.Row, len(src))
	for i, row := range src {
		rows[i] = append(ledger.Row(nil), row...)
	}
	return rows, nil
}

func (m *Memory) AppendRow(_ context.Context, p ledger.PartitionHandle, row ledger.Row) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.partitions[p.Name]; !ok {
		return fmt.Errorf("partition %q: %w", p.Name, ledger.ErrPartitionNotFound)
	}
	m.partitions[p.Name] = append(m.partitions[p.Name], append(ledger.Row(nil), row...))
	return nil
}

func (m *Memory) UpdateCell(_ context.Context, p ledger.PartitionHandle, rowIndex, colIndex int, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	rows, ok := m.partitions[p.Name]
	if !ok {
		return fmt.Errorf("partition %q: %w", p.Name, ledger.ErrPartitionNotFound)
	}
	if rowIndex < 0 || rowIndex >= len(rows) {
		return fmt.Errorf("partition %q: row %d out of range", p.Name, rowIndex)
	}
	if colIndex < 0 {
		return fmt.Errorf("partition %q: column %d out of range", p.Name, colIndex)
	}
	row := rows[rowIndex]
	for len(row) <= colIndex {
		row = append(row, "")
	}
	row[colIndex] = value
	rows[rowIndex] = row
	return nil
}

func (m *Memory) ReadCell(_ context.Context, p ledger.PartitionHandle, rowIndex, colIndex int) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rows, ok := m.partitions[p.Name]
	if !ok {
		return "", fmt.Errorf("partition %q: %w", p.Name, ledger.ErrPartitionNotFound)
	}
	if rowIndex < 0 || rowIndex >= len(rows) {
		return "", fmt.Errorf("partition %q: row %d out of range", p.Name, rowIndex)
	}
	row := rows[rowIndex]
	if colIndex < 0 || colIndex >= len(row) {
		return "", nil
	}
	return row[colIndex], nil
}

// =============================================================================
// ROSTER
// =============================================================================

func (m *Memory) ReadAllIdentities(_ context.Context) ([]ledger.Identity, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	identities := make([]ledger.Identity, len(m.identities))
	copy(identities, m.identities)
	return identities, nil
}
