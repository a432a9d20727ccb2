// Slab allocator source — reads active object counts for the tracked
// kmalloc size classes from /proc/slabinfo.
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

// Kernel versions differ in how they name the kmalloc caches, so each size
// class matches a set of candidate names.
var (
	kmalloc1kNames = map[string]bool{
		"kmalloc-1024":    true,
		"kmalloc-1k":      true,
		"kmalloc-0001024": true,
	}
	kmalloc4kNames = map[string]bool{
		"kmalloc-4096":    true,
		"kmalloc-4k":      true,
		"kmalloc-0004096": true,
	}
)

// SlabinfoSource reads /proc/slabinfo.
type SlabinfoSource struct {
	path string
}

// NewSlabinfoSource creates a slabinfo source rooted at procRoot
// (normally "/proc").
func NewSlabinfoSource(procRoot string) *SlabinfoSource {
	return &SlabinfoSource{path: filepath.Join(procRoot, "slabinfo")}
}

// Name returns the source identifier.
func (s *SlabinfoSource) Name() string { return "slabinfo" }

// Available reports whether the slabinfo pseudo-file can be opened.
// Reading /proc/slabinfo requires root on most kernels.
func (s *SlabinfoSource) Available() bool {
	f, err := os.Open(s.path)
	if err != nil {
		return false
	}
	f.Close()
	return true
}

// Collect scans the slabinfo table for the tracked kmalloc caches and fills
// the active object counts on snap. Rows that do not parse into at least
// name plus three numeric columns are skipped.
func (s *SlabinfoSource) Collect(ctx context.Context, snap *models.Snapshot) error {
	f, err := os.Open(s.path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", s.path, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	line := 0
	for scanner.Scan() {
		line++
		// The first two lines are the version banner and column header.
		if line <= 2 {
			continue
		}

		text := scanner.Text()
		fields := strings.Fields(text)
		if len(fields) < 4 || strings.HasPrefix(fields[0], "#") {
			continue
		}

		name := fields[0]
		if !kmalloc1kNames[name] && !kmalloc4kNames[name] {
			continue
		}

		active, err := strconv.ParseUint(fields[1], 10, 64)
		if err != nil {
			continue
		}

		if kmalloc1kNames[name] {
			snap.Kmalloc1kActive = active
		} else {
			snap.Kmalloc4kActive = active
		}
	}
	return scanner.Err()
}
