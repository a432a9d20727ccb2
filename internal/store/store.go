// Package store implements the name-keyed counter table shared by the
// sampling loop and the trend tracker. Each named counter keeps its current
// and immediately preceding value so callers can read the per-cycle delta.
package store

import "time"

// Record holds the state tracked for one named counter.
type Record struct {
	Name      string
	Current   float64
	Previous  float64
	FirstSeen time.Time
}

// Store is a map-backed counter table. Lookups and updates are O(1); records
// are created on first observation and never removed during a run.
//
// The Store is owned by the collection controller and is not safe for
// concurrent use.
type Store struct {
	records map[string]*Record
}

// New creates an empty Store.
func New() *Store {
	return &Store{
		records: make(map[string]*Record),
	}
}

// UpdateOrInsert records a new observation for name and returns the delta
// against the previous observation. The first observation of a name inserts
// a record with previous == current and returns 0.
func (s *Store) UpdateOrInsert(name string, value float64) float64 {
	rec, ok := s.records[name]
	if !ok {
		s.records[name] = &Record{
			Name:      name,
			Current:   value,
			Previous:  value,
			FirstSeen: time.Now(),
		}
		return 0
	}

	rec.Previous = rec.Current
	rec.Current = value
	return rec.Current - rec.Previous
}

// Get returns the current value for name, or 0 if the name has never been
// observed. It never fails.
func (s *Store) Get(name string) float64 {
	if rec, ok := s.records[name]; ok {
		return rec.Current
	}
	return 0
}

// Diff returns current - previous for name, or 0 for unknown names and
// names observed only once.
func (s *Store) Diff(name string) float64 {
	if rec, ok := s.records[name]; ok {
		return rec.Current - rec.Previous
	}
	return 0
}

// Len returns the number of tracked names.
func (s *Store) Len() int {
	return len(s.records)
}

// Names returns all tracked names in unspecified order.
func (s *Store) Names() []string {
	names := make([]string, 0, len(s.records))
	for name := range s.records {
		names = append(names, name)
	}
	return names
}
