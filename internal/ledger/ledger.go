// Package ledger accumulates the artifacts produced during one export run.
//
// The ledger is the single source of truth for export accounting: per-kind
// success counts are always derived from the records it holds, never kept as
// an independent counter. It is owned by one run and written by one goroutine.
package ledger

import (
	"time"

	"github.com/leefowlercu/assetbridge/internal/asset"
)

// Artifact is a dependent output of a record, such as a material's texture.
type Artifact struct {
	Label string
	Path  string
}

// Record describes one artifact confirmed written to disk.
type Record struct {
	Kind       asset.Kind
	SourceName string
	OutputPath string
	Dependents []Artifact
	Checksum   string
	Timestamp  time.Time
}

// Recorder is the append-only write side of the ledger handed to strategies.
type Recorder interface {
	Record(rec Record)

	// IncrementFailed counts an artifact of kind that could not be written.
	IncrementFailed(kind asset.Kind)
}

// Snapshot is a point-in-time read of the ledger.
type Snapshot struct {
	Records     []Record
	Counts      map[asset.Kind]int
	Failed      map[asset.Kind]int
	Unsupported int
}

// Total returns the number of records.
func (s Snapshot) Total() int {
	return len(s.Records)
}

// TotalFailed returns the number of failed exports across all kinds.
func (s Snapshot) TotalFailed() int {
	n := 0
	for _, c := range s.Failed {
		n += c
	}
	return n
}

// Ledger is an append-only record log plus unsupported and failure counters.
type Ledger struct {
	records     []Record
	failed      map[asset.Kind]int
	unsupported int
}

// New returns an empty ledger.
func New() *Ledger {
	return &Ledger{failed: make(map[asset.Kind]int)}
}

// Record appends rec. Records are copied so later changes by the caller do not leak in.
func (l *Ledger) Record(rec Record) {
	if len(rec.Dependents) > 0 {
		rec.Dependents = append([]Artifact(nil), rec.Dependents...)
	}
	l.records = append(l.records, rec)
}

// IncrementUnsupported counts one asset whose kind has no strategy.
func (l *Ledger) IncrementUnsupported() {
	l.unsupported++
}

// IncrementFailed counts one failed export of a known kind.
func (l *Ledger) IncrementFailed(kind asset.Kind) {
	l.failed[kind]++
}

// Len returns the number of records.
func (l *Ledger) Len() int {
	return len(l.records)
}

// Snapshot returns a copy of the records and the per-kind counts derived from them.
func (l *Ledger) Snapshot() Snapshot {
	records := make([]Record, len(l.records))
	copy(records, l.records)

	counts := make(map[asset.Kind]int, len(asset.Kinds))
	for _, k := range asset.Kinds {
		counts[k] = 0
	}
	for _, r := range records {
		counts[r.Kind]++
	}

	failed := make(map[asset.Kind]int, len(l.failed))
	for k, v := range l.failed {
		failed[k] = v
	}

	return Snapshot{
		Records:     records,
		Counts:      counts,
		Failed:      failed,
		Unsupported: l.unsupported,
	}
}
