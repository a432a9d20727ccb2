// Buddy allocator source — reads per-order free page counts from
// /proc/buddyinfo.
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

// BuddyinfoSource reads /proc/buddyinfo free-list rows.
type BuddyinfoSource struct {
	path string
}

// NewBuddyinfoSource creates a buddyinfo source rooted at procRoot.
func NewBuddyinfoSource(procRoot string) *BuddyinfoSource {
	return &BuddyinfoSource{path: filepath.Join(procRoot, "buddyinfo")}
}

// Name returns the source identifier.
func (b *BuddyinfoSource) Name() string { return "buddyinfo" }

// Available reports whether the buddyinfo pseudo-file exists.
func (b *BuddyinfoSource) Available() bool {
	_, err := os.Stat(b.path)
	return err == nil
}

// Collect parses each zone row ("Node N, zone NAME o0 .. o10") and fills the
// free page vector on snap. Rows from later zones overwrite earlier ones, so
// the snapshot carries the last zone listed (Normal, on typical systems).
// Rows without a zone marker or with fewer than four orders are skipped.
func (b *BuddyinfoSource) Collect(ctx context.Context, snap *models.Snapshot) error {
	f, err := os.Open(b.path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", b.path, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		text := scanner.Text()
		if !strings.Contains(text, "zone") {
			continue
		}

		fields := strings.Fields(text)
		// "Node" "0," "zone" "Normal" then the per-order counts.
		zoneIdx := -1
		for i, fld := range fields {
			if fld == "zone" {
				zoneIdx = i
				break
			}
		}
		if zoneIdx < 0 || len(fields) < zoneIdx+2 {
			continue
		}

		counts := fields[zoneIdx+2:]
		if len(counts) < 4 {
			continue
		}

		var orders [models.BuddyOrders]uint64
		valid := true
		for i, c := range counts {
			if i >= models.BuddyOrders {
				break
			}
			v, err := strconv.ParseUint(c, 10, 64)
			if err != nil {
				valid = false
				break
			}
			orders[i] = v
		}
		if valid {
			snap.FreePages = orders
		}
	}
	return scanner.Err()
}
