// Package analysis derives the cross-layer leak assessment from a completed
// snapshot series: the Pearson correlation between JVM metaspace usage and
// kernel slab activity, plus the mean and variability of the slab scan rate.
package analysis

import (
	"github.com/slabsight/slabsight/internal/models"
	"github.com/slabsight/slabsight/internal/stats"
)

// MinSamples is the smallest series length a correlation can be computed
// from.
const MinSamples = 2

// Classification thresholds. These are presentation labels only; no other
// computation depends on them.
const (
	strongCorrelation   = 0.7
	moderateCorrelation = 0.4
	erraticVariation    = 0.5
	moderateVariation   = 0.2
)

// Result is the stateless outcome of one correlation pass over a series.
// It is recomputed fresh for every report.
type Result struct {
	// Correlation is the Pearson coefficient between metaspace used size and
	// combined kmalloc active objects, in [-1, 1].
	Correlation float64

	// CoefficientVar is the coefficient of variation of the slab scan rate.
	CoefficientVar float64

	// MeanPressure is the mean slab scan rate across the series.
	MeanPressure float64

	// Samples is the series length the result was computed from.
	Samples int
}

// Sufficient reports whether enough samples were available for the
// correlation to be meaningful.
func (r Result) Sufficient() bool {
	return r.Samples >= MinSamples
}

// CorrelationLabel classifies the correlation strength.
func (r Result) CorrelationLabel() string {
	switch {
	case r.Correlation > strongCorrelation:
		return "strong"
	case r.Correlation > moderateCorrelation:
		return "moderate"
	default:
		return "weak"
	}
}

// VariabilityLabel classifies the scan-rate variability.
func (r Result) VariabilityLabel() string {
	switch {
	case r.CoefficientVar > erraticVariation:
		return "erratic"
	case r.CoefficientVar > moderateVariation:
		return "moderate variability"
	default:
		return "stable"
	}
}

// Analyze extracts the three aligned sequences from series (metaspace used,
// combined kernel active objects, scan rate) and computes the correlation
// result. Fewer than MinSamples snapshots yield a zero Result with the
// sample count filled in.
func Analyze(series *models.Series) Result {
	n := series.Count()
	result := Result{Samples: n}
	if n < MinSamples {
		return result
	}

	metaspace := make([]float64, 0, n)
	kernel := make([]float64, 0, n)
	scanRates := make([]float64, 0, n)

	series.Each(func(snap *models.Snapshot) {
		metaspace = append(metaspace, float64(snap.MetaspaceUsedKB))
		kernel = append(kernel, float64(snap.KernelActive()))
		scanRates = append(scanRates, snap.ScanRatePerSec)
	})

	result.Correlation = stats.Pearson(metaspace, kernel)
	result.MeanPressure = stats.Mean(scanRates)
	result.CoefficientVar = stats.CoefficientOfVariation(scanRates)
	return result
}
