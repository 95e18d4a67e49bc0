package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMean(t *testing.T) {
	assert.Equal(t, 0.0, Mean(nil))
	assert.Equal(t, 0.0, Mean([]float64{}))
	assert.Equal(t, 2.0, Mean([]float64{1, 2, 3}))
	assert.InDelta(t, 0.404, Mean([]float64{0.242, 0.503, 0.163, 0.708}), 1e-9)
}

func TestPopulationStdDev(t *testing.T) {
	// Fewer than 2 values has no usable spread.
	assert.Equal(t, 0.0, PopulationStdDev(nil))
	assert.Equal(t, 0.0, PopulationStdDev([]float64{5}))

	// Population formula divides by N, not N-1:
	// values {2, 4}: mean 3, sq devs {1, 1}, sqrt(2/2) = 1.
	assert.InDelta(t, 1.0, PopulationStdDev([]float64{2, 4}), 1e-9)

	// Roadway rates: mean 0.404, sq devs sum 0.186542,
	// sqrt(0.186542/4) = 0.215953...
	assert.InDelta(t, 0.21595, PopulationStdDev([]float64{0.242, 0.503, 0.163, 0.708}), 1e-4)
}

func TestFromRates_Degenerate(t *testing.T) {
	// Empty and all-non-positive inputs yield zero statistics.
	rs := FromRates(nil)
	assert.Equal(t, RateStatistics{}, rs)

	rs = FromRates([]float64{0, -1})
	assert.Equal(t, RateStatistics{}, rs)

	// A single positive rate: stdDev 0, lower == upper == mean.
	rs = FromRates([]float64{0.5})
	assert.Equal(t, 1, rs.SampleCount)
	assert.Equal(t, 0.0, rs.StdDev)
	assert.Equal(t, rs.Mean, rs.Lower)
	assert.Equal(t, rs.Mean, rs.Upper)
}

func TestFromRates_FiltersNonPositive(t *testing.T) {
	rs := FromRates([]float64{0.5, 0, -0.2, 0.7})
	assert.Equal(t, 2, rs.SampleCount)
	assert.InDelta(t, 0.6, rs.Mean, 1e-9)
}

func TestFromRates_BoundsOrdering(t *testing.T) {
	rs := FromRates([]float64{0.242, 0.503, 0.163, 0.708})
	assert.Equal(t, 4, rs.SampleCount)
	assert.LessOrEqual(t, rs.Lower, rs.Mean)
	assert.LessOrEqual(t, rs.Mean, rs.Upper)
	assert.GreaterOrEqual(t, rs.Lower, 0.0)
}

func TestFromRates_LowerClampedAtZero(t *testing.T) {
	// High spread pushes mean - sigma below zero; lower clamps.
	rs := FromRates([]float64{0.01, 2.0})
	assert.Equal(t, 0.0, rs.Lower)
}

func TestBounded(t *testing.T) {
	// Roadway example: quantity 50,000 LF over rates
	// {0.242, 0.503, 0.163, 0.708}: mean 0.404, sigma 0.21595.
	rs := FromRates([]float64{0.242, 0.503, 0.163, 0.708})
	est, lower, upper := Bounded(50000, rs)

	// round(50000 * 0.404) = 20200
	assert.Equal(t, 20200, est)
	// round(50000 * (0.404 - 0.21595)) = 9402
	assert.Equal(t, 9402, lower)
	// round(50000 * (0.404 + 0.21595)) = 30998
	assert.Equal(t, 30998, upper)
	assert.LessOrEqual(t, lower, est)
	assert.LessOrEqual(t, est, upper)
}

func TestRound(t *testing.T) {
	assert.Equal(t, 2, Round(1.5))
	assert.Equal(t, 1, Round(1.4))
	assert.Equal(t, 0, Round(0))
	assert.Equal(t, -2, Round(-1.5))
}
