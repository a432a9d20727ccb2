// Virtual memory statistics source — reads the scan, allocation, reclaim,
// and slab object counters from /proc/vmstat.
package collector

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/slabsight/slabsight/internal/models"
)

// VmstatSource reads /proc/vmstat key/value pairs.
type VmstatSource struct {
	path string
}

// NewVmstatSource creates a vmstat source rooted at procRoot.
func NewVmstatSource(procRoot string) *VmstatSource {
	return &VmstatSource{path: filepath.Join(procRoot, "vmstat")}
}

// Name returns the source identifier.
func (v *VmstatSource) Name() string { return "vmstat" }

// Available reports whether the vmstat pseudo-file exists.
func (v *VmstatSource) Available() bool {
	_, err := os.Stat(v.path)
	return err == nil
}

// Collect scans the key/value rows and fills the tracked counters on snap.
// Malformed rows are skipped.
func (v *VmstatSource) Collect(ctx context.Context, snap *models.Snapshot) error {
	f, err := os.Open(v.path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", v.path, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) != 2 {
			continue
		}
		value, err := strconv.ParseUint(fields[1], 10, 64)
		if err != nil {
			continue
		}

		switch fields[0] {
		case "slabs_scanned":
			snap.SlabsScanned = value
		case "pgalloc_dma":
			snap.PgallocDMA = value
		case "pgsteal_kswapd":
			snap.PgstealKswapd = value
		case "nr_slab_reclaimable":
			snap.SlabReclaimable = value
		case "nr_slab_unreclaimable":
			snap.SlabUnreclaimable = value
		}
	}
	return scanner.Err()
}
