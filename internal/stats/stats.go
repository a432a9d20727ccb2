// Package stats provides the descriptive statistics used by the correlation
// and trend layers: mean, population standard deviation, Pearson correlation,
// coefficient of variation, and the buddy-order fragmentation index.
//
// All functions are pure and total: empty or degenerate input yields a
// defined zero result, never a division by zero.
package stats

import "math"

// Mean returns the arithmetic mean of xs, or 0.0 for an empty slice.
func Mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0.0
	}
	sum := 0.0
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

// StdDev returns the population standard deviation of xs (variance divided
// by n, not n-1), or 0.0 for an empty slice.
func StdDev(xs []float64) float64 {
	if len(xs) == 0 {
		return 0.0
	}
	m := Mean(xs)
	variance := 0.0
	for _, x := range xs {
		d := x - m
		variance += d * d
	}
	return math.Sqrt(variance / float64(len(xs)))
}

// Pearson returns the Pearson correlation coefficient between two
// equal-length sequences. It returns 0.0 when fewer than two points are
// available, when the lengths differ, or when either sequence has zero
// variance. The result is not clamped; floating error may leave it
// marginally outside [-1, 1].
func Pearson(xs, ys []float64) float64 {
	n := len(xs)
	if n < 2 || n != len(ys) {
		return 0.0
	}

	meanX := Mean(xs)
	meanY := Mean(ys)

	var numerator, sumSqX, sumSqY float64
	for i := 0; i < n; i++ {
		dx := xs[i] - meanX
		dy := ys[i] - meanY
		numerator += dx * dy
		sumSqX += dx * dx
		sumSqY += dy * dy
	}

	denominator := math.Sqrt(sumSqX * sumSqY)
	if denominator == 0.0 {
		return 0.0
	}
	return numerator / denominator
}

// CoefficientOfVariation returns StdDev(xs) / Mean(xs), a dimensionless
// spread measure, or 0.0 when the mean is zero.
func CoefficientOfVariation(xs []float64) float64 {
	m := Mean(xs)
	if m == 0.0 {
		return 0.0
	}
	return StdDev(xs) / m
}

// Fragmentation index weights: tracked buddy orders 2 and 3 carry weights
// order+1, so the maximum attainable weight is 4.
const (
	order2Weight = 3.0
	order3Weight = 4.0
	maxWeight    = 4.0
)

// FragmentationIndex derives a heuristic fragmentation score from the free
// page counts at buddy orders 2 and 3. A value of 0 means all tracked free
// pages sit at the highest tracked order (well coalesced); 1.0 means
// maximally fragmented, including the edge case where both counts are zero.
func FragmentationIndex(order2Free, order3Free uint64) float64 {
	totalFree := float64(order2Free + order3Free)
	if totalFree == 0 {
		return 1.0
	}
	weighted := float64(order2Free)*order2Weight + float64(order3Free)*order3Weight
	return 1.0 - weighted/(totalFree*maxWeight)
}
