package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/slabsight/slabsight/internal/analysis"
	"github.com/slabsight/slabsight/internal/models"
	"github.com/slabsight/slabsight/internal/trend"
)

func seriesOf(n int) *models.Series {
	series := models.NewSeries()
	base := time.Unix(1000, 0)
	for i := 0; i < n; i++ {
		snap := models.NewSnapshot(base.Add(time.Duration(i*5) * time.Second))
		snap.SlabReclaimable = 100
		snap.SlabUnreclaimable = 50
		series.Append(snap)
	}
	return series
}

func TestRenderNotEnoughSamples(t *testing.T) {
	series := seriesOf(1)
	out := Sprint(series, analysis.Analyze(series), nil)

	assert.Contains(t, out, "Total samples: 1")
	assert.Contains(t, out, "Not enough samples for analysis.")
	assert.NotContains(t, out, "Correlation Analysis")
}

func TestRenderFullReport(t *testing.T) {
	series := seriesOf(3)
	result := analysis.Result{
		Correlation:    0.91,
		CoefficientVar: 0.1,
		MeanPressure:   42.5,
		Samples:        3,
	}
	ranking := []trend.Ranked{
		{Name: models.MetricMetaspaceUsedKB, Growth: 512},
		{Name: models.MetricKmalloc1k, Growth: 48},
	}

	out := Sprint(series, result, ranking)

	assert.Contains(t, out, "Total samples: 3")
	assert.Contains(t, out, "Duration: 10 seconds")
	assert.Contains(t, out, "JVM-Kernel Correlation: 0.9100 (STRONG - runtime churn reaches the kernel)")
	assert.Contains(t, out, "Coefficient of Variation: 0.1000 (STABLE pattern)")
	assert.Contains(t, out, "Average slabs scanned/sec: 42.50")
	assert.Contains(t, out, "reclaimable=100 unreclaimable=50")
	assert.Contains(t, out, " 1. metaspace_used_kb        +512.0")
	assert.Contains(t, out, " 2. kmalloc_1k_active        +48.0")
}

func TestRenderEmptySeries(t *testing.T) {
	series := models.NewSeries()
	out := Sprint(series, analysis.Analyze(series), nil)

	assert.Contains(t, out, "Total samples: 0")
	assert.NotContains(t, out, "Duration:")
	assert.Contains(t, out, "Not enough samples")
}
