package models

import "time"

// Series is the append-only, oldest-to-newest sequence of snapshots
// accumulated over one run. It is owned exclusively by the collection
// controller; snapshots are never mutated after append.
type Series struct {
	snapshots []*Snapshot
}

// NewSeries creates an empty Series.
func NewSeries() *Series {
	return &Series{}
}

// Append adds snap as the newest element.
func (s *Series) Append(snap *Snapshot) {
	s.snapshots = append(s.snapshots, snap)
}

// Count returns the number of appended snapshots.
func (s *Series) Count() int {
	return len(s.snapshots)
}

// Oldest returns the first snapshot, or nil when the series is empty.
func (s *Series) Oldest() *Snapshot {
	if len(s.snapshots) == 0 {
		return nil
	}
	return s.snapshots[0]
}

// Newest returns the last snapshot, or nil when the series is empty.
func (s *Series) Newest() *Snapshot {
	if len(s.snapshots) == 0 {
		return nil
	}
	return s.snapshots[len(s.snapshots)-1]
}

// Duration returns the wall-clock span between the oldest and newest
// snapshot, or zero for fewer than two samples.
func (s *Series) Duration() time.Duration {
	if len(s.snapshots) < 2 {
		return 0
	}
	return s.Newest().Timestamp.Sub(s.Oldest().Timestamp)
}

// Each calls fn for every snapshot in sampling order.
func (s *Series) Each(fn func(*Snapshot)) {
	for _, snap := range s.snapshots {
		fn(snap)
	}
}
