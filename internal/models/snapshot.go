// Package models defines the sampled data structures shared across the
// sampler: the per-cycle Snapshot and the append-only Series it accumulates
// into.
package models

import (
	"time"

	"github.com/slabsight/slabsight/internal/stats"
)

// Tracked counter names used as keys into the metric store and trend tracker.
const (
	MetricKmalloc1k          = "kmalloc_1k_active"
	MetricKmalloc4k          = "kmalloc_4k_active"
	MetricSlabReclaimable    = "nr_slab_reclaimable"
	MetricSlabUnreclaimable  = "nr_slab_unreclaimable"
	MetricSlabsScanned       = "slabs_scanned"
	MetricPgallocDMA         = "pgalloc_dma"
	MetricPgstealKswapd      = "pgsteal_kswapd"
	MetricOrder2Free         = "order2_free_pages"
	MetricOrder3Free         = "order3_free_pages"
	MetricMetaspaceUsedKB    = "metaspace_used_kb"
	MetricMetaspaceCommitted = "metaspace_committed_kb"
)

// BuddyOrders is the number of buddy allocator orders captured per zone.
const BuddyOrders = 11

// pageSizeKB is the page size assumed when converting page allocation deltas
// to a KB/s rate.
const pageSizeKB = 4

// Snapshot is one sampled data point: the raw counters read from the kernel
// pseudo-files and the JVM metaspace query, plus rate and shape metrics
// derived against the preceding snapshot.
//
// A Snapshot is write-once: after ComputeDerived it is appended to a Series
// and never mutated again.
type Snapshot struct {
	Timestamp time.Time `json:"timestamp"`

	// /proc/slabinfo
	Kmalloc1kActive uint64 `json:"kmalloc_1k_active"`
	Kmalloc4kActive uint64 `json:"kmalloc_4k_active"`

	// /proc/vmstat
	SlabReclaimable   uint64 `json:"nr_slab_reclaimable"`
	SlabUnreclaimable uint64 `json:"nr_slab_unreclaimable"`
	SlabsScanned      uint64 `json:"slabs_scanned"`
	PgallocDMA        uint64 `json:"pgalloc_dma"`
	PgstealKswapd     uint64 `json:"pgsteal_kswapd"`

	// /proc/buddyinfo; all orders are retained, orders 2 and 3 feed the
	// fragmentation index.
	FreePages [BuddyOrders]uint64 `json:"free_pages"`

	// jcmd VM.metaspace
	MetaspaceUsedKB      uint64 `json:"metaspace_used_kb"`
	MetaspaceCommittedKB uint64 `json:"metaspace_committed_kb"`

	// Derived against the previous snapshot; zero on the first sample and
	// whenever the inter-sample duration is not strictly positive.
	ScanRatePerSec     float64 `json:"slabs_scanned_per_sec"`
	AllocRateKBPerSec  float64 `json:"allocation_rate_kb_per_sec"`
	FragmentationIndex float64 `json:"fragmentation_index"`
}

// NewSnapshot creates an empty snapshot stamped with ts.
func NewSnapshot(ts time.Time) *Snapshot {
	return &Snapshot{Timestamp: ts}
}

// Order2Free returns the free page count at buddy order 2.
func (s *Snapshot) Order2Free() uint64 { return s.FreePages[2] }

// Order3Free returns the free page count at buddy order 3.
func (s *Snapshot) Order3Free() uint64 { return s.FreePages[3] }

// KernelActive returns the combined active object count across the tracked
// kmalloc size classes.
func (s *Snapshot) KernelActive() uint64 {
	return s.Kmalloc1kActive + s.Kmalloc4kActive
}

// ComputeDerived fills the rate and fragmentation fields relative to prev.
// On the first sample (prev == nil) all derived fields keep their zero
// defaults. Rates additionally require a strictly positive inter-sample
// duration; a zero or negative dt leaves them at zero rather than dividing.
func (s *Snapshot) ComputeDerived(prev *Snapshot) {
	if prev == nil {
		return
	}

	dt := s.Timestamp.Sub(prev.Timestamp).Seconds()
	if dt > 0 {
		deltaScanned := float64(s.SlabsScanned) - float64(prev.SlabsScanned)
		s.ScanRatePerSec = deltaScanned / dt

		deltaAlloc := float64(s.PgallocDMA) - float64(prev.PgallocDMA)
		s.AllocRateKBPerSec = deltaAlloc * pageSizeKB / dt
	}

	s.FragmentationIndex = stats.FragmentationIndex(s.Order2Free(), s.Order3Free())
}

// Counters returns the tracked counters of this snapshot keyed by metric
// name, for feeding the metric store and trend tracker.
func (s *Snapshot) Counters() map[string]float64 {
	return map[string]float64{
		MetricKmalloc1k:          float64(s.Kmalloc1kActive),
		MetricKmalloc4k:          float64(s.Kmalloc4kActive),
		MetricSlabReclaimable:    float64(s.SlabReclaimable),
		MetricSlabUnreclaimable:  float64(s.SlabUnreclaimable),
		MetricSlabsScanned:       float64(s.SlabsScanned),
		MetricPgallocDMA:         float64(s.PgallocDMA),
		MetricPgstealKswapd:      float64(s.PgstealKswapd),
		MetricOrder2Free:         float64(s.Order2Free()),
		MetricOrder3Free:         float64(s.Order3Free()),
		MetricMetaspaceUsedKB:    float64(s.MetaspaceUsedKB),
		MetricMetaspaceCommitted: float64(s.MetaspaceCommittedKB),
	}
}
