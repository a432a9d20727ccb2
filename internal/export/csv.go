// Package export writes the accumulated snapshot series to a CSV file at
// shutdown. The column schema and numeric precision are fixed.
package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/slabsight/slabsight/internal/models"
)

// Header is the fixed CSV column schema, one row per snapshot.
var Header = []string{
	"timestamp",
	"metaspace_kb",
	"slabs_scanned_per_sec",
	"kmalloc_1k",
	"kmalloc_4k",
	"fragmentation_index",
}

// WriteCSV writes the series to path, oldest snapshot first. Rates carry
// four decimals, the fragmentation index six.
func WriteCSV(path string, series *models.Series) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating CSV file %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(Header); err != nil {
		return fmt.Errorf("writing CSV header: %w", err)
	}

	var rowErr error
	series.Each(func(snap *models.Snapshot) {
		if rowErr != nil {
			return
		}
		rowErr = w.Write([]string{
			strconv.FormatInt(snap.Timestamp.Unix(), 10),
			strconv.FormatUint(snap.MetaspaceUsedKB, 10),
			strconv.FormatFloat(snap.ScanRatePerSec, 'f', 4, 64),
			strconv.FormatUint(snap.Kmalloc1kActive, 10),
			strconv.FormatUint(snap.Kmalloc4kActive, 10),
			strconv.FormatFloat(snap.FragmentationIndex, 'f', 6, 64),
		})
	})
	if rowErr != nil {
		return fmt.Errorf("writing CSV row: %w", rowErr)
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flushing CSV: %w", err)
	}
	return f.Close()
}
