package stats

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

const epsilon = 1e-9

func TestMean(t *testing.T) {
	tests := []struct {
		name     string
		input    []float64
		expected float64
	}{
		{"empty", nil, 0.0},
		{"single", []float64{4.5}, 4.5},
		{"uniform", []float64{2, 2, 2, 2}, 2.0},
		{"mixed", []float64{1, 2, 3, 4}, 2.5},
		{"negative", []float64{-3, 3}, 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, Mean(tt.input), epsilon)
		})
	}
}

func TestStdDev(t *testing.T) {
	tests := []struct {
		name     string
		input    []float64
		expected float64
	}{
		{"empty", nil, 0.0},
		{"constant", []float64{5, 5, 5}, 0.0},
		// Population variance of {2,4,4,4,5,5,7,9} is 4.
		{"known", []float64{2, 4, 4, 4, 5, 5, 7, 9}, 2.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, StdDev(tt.input), epsilon)
		})
	}
}

func TestPearsonSelfCorrelation(t *testing.T) {
	x := []float64{1, 3, 2, 8, 5}
	assert.InDelta(t, 1.0, Pearson(x, x), epsilon)
}

func TestPearsonSymmetry(t *testing.T) {
	x := []float64{1, 2, 3, 4, 5}
	y := []float64{10, 8, 14, 3, 7}
	assert.InDelta(t, Pearson(x, y), Pearson(y, x), epsilon)
}

func TestPearsonPerfectInverse(t *testing.T) {
	x := []float64{1, 2, 3, 4}
	y := []float64{8, 6, 4, 2}
	assert.InDelta(t, -1.0, Pearson(x, y), epsilon)
}

func TestPearsonDegenerateInputs(t *testing.T) {
	tests := []struct {
		name string
		x, y []float64
	}{
		{"empty", nil, nil},
		{"single point", []float64{1}, []float64{2}},
		{"length mismatch", []float64{1, 2, 3}, []float64{1, 2}},
		{"zero variance x", []float64{4, 4, 4}, []float64{1, 2, 3}},
		{"zero variance y", []float64{1, 2, 3}, []float64{4, 4, 4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, 0.0, Pearson(tt.x, tt.y))
		})
	}
}

func TestPearsonBounded(t *testing.T) {
	// Pseudo-random but deterministic sequences; the coefficient must stay
	// within [-1, 1] up to floating error.
	x := make([]float64, 64)
	y := make([]float64, 64)
	for i := range x {
		x[i] = math.Sin(float64(i)*1.7) * 1e6
		y[i] = math.Cos(float64(i)*0.9) * 1e-3
	}
	r := Pearson(x, y)
	assert.GreaterOrEqual(t, r, -1.0-epsilon)
	assert.LessOrEqual(t, r, 1.0+epsilon)
}

func TestCoefficientOfVariation(t *testing.T) {
	assert.Equal(t, 0.0, CoefficientOfVariation(nil))
	assert.Equal(t, 0.0, CoefficientOfVariation([]float64{-2, 2}))
	assert.Equal(t, 0.0, CoefficientOfVariation([]float64{3, 3, 3}))

	// Mean 2, population stddev 1 -> CV 0.5.
	assert.InDelta(t, 0.5, CoefficientOfVariation([]float64{1, 3, 1, 3}), epsilon)
}

func TestFragmentationIndex(t *testing.T) {
	tests := []struct {
		name     string
		o2, o3   uint64
		expected float64
	}{
		{"both zero is fully fragmented", 0, 0, 1.0},
		{"all at order 3", 0, 100, 0.0},
		{"all at order 2", 100, 0, 0.25},
		{"even split", 50, 50, 0.125},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, FragmentationIndex(tt.o2, tt.o3), epsilon)
		})
	}
}
