/*
partition.go - Month partition resolution and lazy creation

PURPOSE:
  Maps calendar dates onto named month partitions. The write path creates
  the current month's partition on first touch by duplicating the most
  recent usable blueprint; the read path never creates anything.

TEMPLATE CHAIN:
  New month partition = copy of previous month's partition (so the column
  layout carries forward without manual setup), falling back to the fixed
  "Template" partition when the previous month never existed. The copy is
  cleared of rows before use.

IDEMPOTENCY:
  Resolving the write partition twice in the same month returns the same
  partition. If a crash happens between duplicate and clear, the next
  resolve finds the partition already present; at worst it carries the
  template's rows, which match no current-day date and are ignored by
  every consumer.

SEE ALSO:
  - writer.go: resolves the write partition on both check-in and check-out
  - summary.go: resolves the read partition
*/
package ledger

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// TemplatePartition is the fixed blueprint used when no prior month exists.
const TemplatePartition = "Template"

// PartitionName derives the deterministic partition name for a date's month.
func PartitionName(d CalendarDate) string {
	return fmt.Sprintf("%s %d Attendance", d.Month, d.Year)
}

func previousMonth(d CalendarDate) CalendarDate {
	return DateOf(time.Date(d.Year, d.Month, 1, 0, 0, 0, 0, time.Local).AddDate(0, 0, -1))
}

// PartitionResolver locates or creates the partition for a date.
type PartitionResolver struct {
	storage Storage
}

func NewPartitionResolver(storage Storage) *PartitionResolver {
	return &PartitionResolver{storage: storage}
}

// ResolveForWrite returns the partition for now's month, creating it from a
// template when absent.
func (r *PartitionResolver) ResolveForWrite(ctx context.Context, now time.Time) (PartitionHandle, error) {
	target := DateOf(now)
	name := PartitionName(target)

	existing, err := r.storage.ListPartitions(ctx)
	if err != nil {
		return PartitionHandle{}, &StorageUnavailableError{Op: "list partitions", Err: err}
	}
	names := make(map[string]bool, len(existing))
	for _, n := range existing {
		names[n] = true
	}

	if names[name] {
		handle, err := r.storage.GetPartition(ctx, name)
		if err != nil {
			return PartitionHandle{}, &StorageUnavailableError{Op: "get partition", Err: err}
		}
		return handle, nil
	}

	template := PartitionName(previousMonth(target))
	if !names[template] {
		template = TemplatePartition
	}
	if !names[template] {
		return PartitionHandle{}, fmt.Errorf("no template to create partition %q from: %w", name, ErrPartitionNotFound)
	}

	handle, err := r.storage.DuplicatePartition(ctx, template, name)
	if err != nil {
		return PartitionHandle{}, &StorageUnavailableError{Op: "duplicate partition", Err: err}
	}
	if err := r.storage.Clear(ctx, handle); err != nil {
		return PartitionHandle{}, &StorageUnavailableError{Op: "clear partition", Err: err}
	}
	return handle, nil
}

// ResolveForRead returns the partition holding a date's month, or
// NoPartitionError if it was never created. No auto-creation on read.
func (r *PartitionResolver) ResolveForRead(ctx context.Context, date CalendarDate) (PartitionHandle, error) {
	name := PartitionName(date)
	handle, err := r.storage.GetPartition(ctx, name)
	if err != nil {
		if errors.Is(err, ErrPartitionNotFound) {
			return PartitionHandle{}, &NoPartitionError{Date: date, Name: name}
		}
		return PartitionHandle{}, &StorageUnavailableError{Op: "get partition", Err: err}
	}
	return handle, nil
}
