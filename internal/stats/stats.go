// Package stats provides the pure numeric functions behind rate
// confidence bounds: arithmetic mean, population standard deviation,
// and quantity-scaled bounded estimates. No I/O, no shared state.
package stats

import "math"

// RateStatistics describes the spread of a set of positive rates.
// Lower and Upper are one population standard deviation around the
// mean, with Lower clamped at zero. Below 2 samples there is no usable
// spread: StdDev is 0 and Lower == Upper == Mean.
type RateStatistics struct {
	Mean        float64 `json:"mean"`
	StdDev      float64 `json:"std_dev"`
	Lower       float64 `json:"lower"`
	Upper       float64 `json:"upper"`
	SampleCount int     `json:"sample_count"`
}

// Mean returns the arithmetic mean, or 0 for empty input.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// PopulationStdDev returns the population standard deviation (divide by
// N, not N-1), or 0 for fewer than 2 values.
func PopulationStdDev(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	m := Mean(values)
	var sumSq float64
	for _, v := range values {
		d := v - m
		sumSq += d * d
	}
	return math.Sqrt(sumSq / float64(len(values)))
}

// FromRates computes RateStatistics over a rate set, ignoring
// non-positive entries. If no positive rates remain, every field is
// zero.
func FromRates(rates []float64) RateStatistics {
	positive := make([]float64, 0, len(rates))
	for _, r := range rates {
		if r > 0 {
			positive = append(positive, r)
		}
	}
	if len(positive) == 0 {
		return RateStatistics{}
	}

	m := Mean(positive)
	sd := PopulationStdDev(positive)
	lower := m - sd
	if lower < 0 {
		lower = 0
	}
	return RateStatistics{
		Mean:        m,
		StdDev:      sd,
		Lower:       lower,
		Upper:       m + sd,
		SampleCount: len(positive),
	}
}

// Bounded scales the statistics by a quantity and rounds to whole
// man-hours. No clamping beyond what FromRates already applied.
func Bounded(quantity float64, rs RateStatistics) (estimate, lower, upper int) {
	estimate = Round(quantity * rs.Mean)
	lower = Round(quantity * rs.Lower)
	upper = Round(quantity * rs.Upper)
	return estimate, lower, upper
}

// Round rounds to the nearest whole man-hour.
func Round(v float64) int {
	return int(math.Round(v))
}
