// Package report renders the end-of-run textual analysis: correlation
// assessment, scan-rate variability, kernel pressure, slab object summary,
// and the fastest-growing metric ranking.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/slabsight/slabsight/internal/analysis"
	"github.com/slabsight/slabsight/internal/models"
	"github.com/slabsight/slabsight/internal/trend"
)

// correlationNote maps a correlation label to the report interpretation.
var correlationNote = map[string]string{
	"strong":   "STRONG - runtime churn reaches the kernel",
	"moderate": "MODERATE",
	"weak":     "WEAK",
}

// variabilityNote maps a variability label to the report interpretation.
var variabilityNote = map[string]string{
	"erratic":              "ERRATIC - allocation pattern is unstable",
	"moderate variability": "MODERATE variability",
	"stable":               "STABLE pattern",
}

// Render writes the analysis report for a completed run. With fewer than
// two samples the statistical sections are replaced by a short notice; the
// caller still exports the series afterwards.
func Render(w io.Writer, series *models.Series, result analysis.Result, ranking []trend.Ranked) {
	fmt.Fprintf(w, "\n=== SLABSIGHT ANALYSIS REPORT ===\n\n")
	fmt.Fprintf(w, "Total samples: %d\n", series.Count())
	if series.Count() > 0 {
		fmt.Fprintf(w, "Duration: %d seconds\n", int64(series.Duration().Seconds()))
	}
	fmt.Fprintln(w)

	if !result.Sufficient() {
		fmt.Fprintln(w, "Not enough samples for analysis.")
		fmt.Fprintln(w, "=================================")
		return
	}

	fmt.Fprintln(w, "--- Correlation Analysis ---")
	fmt.Fprintf(w, "JVM-Kernel Correlation: %.4f (%s)\n",
		result.Correlation, correlationNote[result.CorrelationLabel()])
	fmt.Fprintln(w)

	fmt.Fprintln(w, "--- Memory Pattern ---")
	fmt.Fprintf(w, "Coefficient of Variation: %.4f (%s)\n",
		result.CoefficientVar, variabilityNote[result.VariabilityLabel()])
	fmt.Fprintln(w)

	fmt.Fprintln(w, "--- Kernel Pressure ---")
	fmt.Fprintf(w, "Average slabs scanned/sec: %.2f\n", result.MeanPressure)

	if newest := series.Newest(); newest != nil {
		fmt.Fprintf(w, "Slab objects: reclaimable=%d unreclaimable=%d\n",
			newest.SlabReclaimable, newest.SlabUnreclaimable)
	}
	fmt.Fprintln(w)

	renderRanking(w, ranking)
	fmt.Fprintln(w, "=================================")
}

// renderRanking writes the top-N fastest-growing metric table.
func renderRanking(w io.Writer, ranking []trend.Ranked) {
	if len(ranking) == 0 {
		return
	}

	fmt.Fprintln(w, "--- Fastest Growing Metrics ---")
	for i, r := range ranking {
		fmt.Fprintf(w, "%2d. %-24s %+.1f\n", i+1, r.Name, r.Growth)
	}
	fmt.Fprintln(w)
}

// Sprint renders the report to a string, for logging and tests.
func Sprint(series *models.Series, result analysis.Result, ranking []trend.Ranked) string {
	var sb strings.Builder
	Render(&sb, series, result, ranking)
	return sb.String()
}
