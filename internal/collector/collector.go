// Package collector defines the Source interface and the readers for the
// four sampled inputs: /proc/slabinfo, /proc/vmstat, /proc/buddyinfo, and
// the JVM metaspace query via jcmd.
package collector

import (
	"context"

	"github.com/slabsight/slabsight/internal/models"
)

// Source is the interface every sampled input implements. Each source
// populates its own disjoint set of snapshot fields; a source that fails
// leaves its fields at their zero defaults for that cycle.
type Source interface {
	// Name returns the unique identifier for this source.
	Name() string

	// Collect reads the source and fills its fields on snap.
	Collect(ctx context.Context, snap *models.Snapshot) error

	// Available checks whether the source can be read on this system.
	// Unavailable sources are not registered.
	Available() bool
}
