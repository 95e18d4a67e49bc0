package estimate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSizeScore(t *testing.T) {
	cases := []struct {
		costK float64
		want  int
	}{
		{50_000, 1},     // $50M
		{99_999, 1},     // just under the first boundary
		{100_000, 2},    // boundary lands in the next tier
		{150_000, 2},    // $150M
		{250_000, 3},    // $250M
		{500_000, 6},    // $500M
		{800_000, 10},   // $800M
		{1_000_000, 12}, // $1B
		{2_500_000, 12}, // beyond the table
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, sizeScore(tc.costK), "costK=%v", tc.costK)
	}
}

func TestFloorKey(t *testing.T) {
	keys := []int{1, 2, 4, 8, 16, 24}
	assert.Equal(t, 1, floorKey(keys, 1))
	assert.Equal(t, 2, floorKey(keys, 3))
	assert.Equal(t, 8, floorKey(keys, 12)) // 12 floors to 8, never 16
	assert.Equal(t, 16, floorKey(keys, 16))
	assert.Equal(t, 24, floorKey(keys, 48))
	// Below the axis: smallest key.
	assert.Equal(t, 1, floorKey(keys, 0))
}

func TestDurationIndex(t *testing.T) {
	assert.Equal(t, 0, durationIndex(6))
	assert.Equal(t, 0, durationIndex(5))  // below the axis snaps up
	assert.Equal(t, 1, durationIndex(7))  // off-axis snaps to 8
	assert.Equal(t, 7, durationIndex(20)) // exact
	assert.Equal(t, 9, durationIndex(24))
	assert.Equal(t, 9, durationIndex(36)) // beyond the axis caps at 24
}

func TestEstimateMatrix(t *testing.T) {
	e := newTestEngine(t)

	// $250M, Med, 20 months: size tier $200M-$400M scores 3, Med
	// amplifies 3 to 12, 12 floors to sparse key 8, duration 20 is
	// column 7 of the key-8 row: 1080 MH.
	res, err := e.EstimateMatrix(MatrixInput{
		ProjectCostK:   250_000,
		DurationMonths: 20,
		Complexity:     "Med",
	})
	require.NoError(t, err)
	require.Equal(t, StatusOK, res.Status)
	est := res.Estimate
	require.NotNil(t, est)
	assert.Equal(t, 1080, est.ManHours)
	assert.Equal(t, 1080, est.LowerBound)
	assert.Equal(t, 1080, est.UpperBound)
	assert.InDelta(t, 1080.0/250_000, est.Rate, 1e-9)
}

func TestEstimateMatrix_Deterministic(t *testing.T) {
	e := newTestEngine(t)
	in := MatrixInput{ProjectCostK: 250_000, DurationMonths: 20, Complexity: "Med"}

	first, err := e.EstimateMatrix(in)
	require.NoError(t, err)
	second, err := e.EstimateMatrix(in)
	require.NoError(t, err)
	assert.Equal(t, first.Estimate.ManHours, second.Estimate.ManHours)
}

func TestEstimateMatrix_Extremes(t *testing.T) {
	e := newTestEngine(t)

	// Smallest everything: size 1, Very Low keeps it at 1, duration 6
	// is column 0: 160 MH.
	res, err := e.EstimateMatrix(MatrixInput{ProjectCostK: 10_000, DurationMonths: 6, Complexity: "Very Low"})
	require.NoError(t, err)
	assert.Equal(t, 160, res.Estimate.ManHours)

	// Largest everything: size 12, Very High scores 48, floored to key
	// 24, duration 24 is the last column: 2520 MH.
	res, err = e.EstimateMatrix(MatrixInput{ProjectCostK: 2_000_000, DurationMonths: 24, Complexity: "Very High"})
	require.NoError(t, err)
	assert.Equal(t, 2520, res.Estimate.ManHours)
}

func TestEstimateMatrix_UnknownGroup(t *testing.T) {
	e := newTestEngine(t)
	_, err := e.EstimateMatrix(MatrixInput{ProjectCostK: 250_000, DurationMonths: 12, Complexity: "Extreme"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Extreme")
}

func TestEstimateMatrix_ZeroCost(t *testing.T) {
	e := newTestEngine(t)
	res, err := e.EstimateMatrix(MatrixInput{ProjectCostK: 0, DurationMonths: 12, Complexity: "Med"})
	require.NoError(t, err)
	require.Equal(t, StatusOK, res.Status)
	assert.Equal(t, 0, res.Estimate.ManHours)
}

func TestComplexityGroups(t *testing.T) {
	groups := ComplexityGroups()
	assert.Equal(t, []string{"Very Low", "Low", "Med", "High", "Very High"}, groups)
	for _, g := range groups {
		_, ok := complexityTable[g]
		assert.True(t, ok, g)
	}
}
