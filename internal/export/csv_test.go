package export

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slabsight/slabsight/internal/models"
)

func TestWriteCSVRoundTrip(t *testing.T) {
	series := models.NewSeries()
	base := time.Unix(1700000000, 0)
	for i := 0; i < 4; i++ {
		snap := models.NewSnapshot(base.Add(time.Duration(i*5) * time.Second))
		snap.MetaspaceUsedKB = uint64(1000 + i*100)
		snap.Kmalloc1kActive = uint64(4000 + i)
		snap.Kmalloc4kActive = uint64(800 + i)
		snap.ScanRatePerSec = float64(i) * 2.5
		snap.FragmentationIndex = 0.125 * float64(i)
		series.Append(snap)
	}

	path := filepath.Join(t.TempDir(), "out.csv")
	require.NoError(t, WriteCSV(path, series))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)

	require.Len(t, rows, 5) // header + 4 data rows
	assert.Equal(t, Header, rows[0])

	for i, row := range rows[1:] {
		ts, err := strconv.ParseInt(row[0], 10, 64)
		require.NoError(t, err)
		assert.Equal(t, base.Add(time.Duration(i*5)*time.Second).Unix(), ts)

		metaspace, err := strconv.ParseUint(row[1], 10, 64)
		require.NoError(t, err)
		assert.Equal(t, uint64(1000+i*100), metaspace)

		rate, err := strconv.ParseFloat(row[2], 64)
		require.NoError(t, err)
		assert.InDelta(t, float64(i)*2.5, rate, 1e-4)

		frag, err := strconv.ParseFloat(row[5], 64)
		require.NoError(t, err)
		assert.InDelta(t, 0.125*float64(i), frag, 1e-6)
	}
}

func TestWriteCSVFixedPrecision(t *testing.T) {
	series := models.NewSeries()
	snap := models.NewSnapshot(time.Unix(100, 0))
	snap.ScanRatePerSec = 10.0
	snap.FragmentationIndex = 1.0
	series.Append(snap)

	path := filepath.Join(t.TempDir(), "out.csv")
	require.NoError(t, WriteCSV(path, series))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	assert.Contains(t, string(data), "10.0000")
	assert.Contains(t, string(data), "1.000000")
}

func TestWriteCSVEmptySeriesHeaderOnly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	require.NoError(t, WriteCSV(path, models.NewSeries()))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, Header, rows[0])
}

func TestWriteCSVBadPath(t *testing.T) {
	err := WriteCSV(filepath.Join(t.TempDir(), "missing", "out.csv"), models.NewSeries())
	assert.Error(t, err)
}
