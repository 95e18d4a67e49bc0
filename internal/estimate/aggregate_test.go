package estimate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meridian-eng/wbs-estimator/internal/benchmark"
)

func TestAggregate_FullProject(t *testing.T) {
	e := newTestEngine(t)

	out := e.Aggregate(AggregateInput{
		Quantities: map[string]float64{
			benchmark.DisciplineRoadway:  50000,
			benchmark.DisciplineDrainage: 140,
			benchmark.DisciplineTraffic:  42000,
		},
		ProjectCostK:   250_000,
		DurationMonths: 20,
		Complexity:     "Med",
	})

	// Three benchmark disciplines, Digital Delivery, Misc Structures
	// (driven by the base three), ESDC and TSCD.
	require.Len(t, out.Disciplines, 7)
	for id, res := range out.Disciplines {
		assert.Equal(t, StatusOK, res.Status, id)
		require.NotNil(t, res.Estimate, id)
	}

	// Misc Structures consumed the same-pass base man-hours.
	base := out.Disciplines[benchmark.DisciplineRoadway].Estimate.ManHours +
		out.Disciplines[benchmark.DisciplineDrainage].Estimate.ManHours +
		out.Disciplines[benchmark.DisciplineTraffic].Estimate.ManHours
	misc := out.Disciplines[benchmark.DisciplineMiscStructures].Estimate
	assert.Equal(t, float64(base), misc.Quantity)

	// Digital Delivery hits the matrix, not a benchmark rate.
	dd := out.Disciplines[benchmark.DisciplineDigitalDelivery].Estimate
	assert.Equal(t, 1080, dd.ManHours)

	// Totals are exactly the sum over ok results.
	var mh, lower, upper int
	for _, res := range out.Disciplines {
		mh += res.Estimate.ManHours
		lower += res.Estimate.LowerBound
		upper += res.Estimate.UpperBound
	}
	assert.Equal(t, mh, out.TotalManHours)
	assert.Equal(t, lower, out.TotalLower)
	assert.Equal(t, upper, out.TotalUpper)
	assert.LessOrEqual(t, out.TotalLower, out.TotalManHours)
	assert.LessOrEqual(t, out.TotalManHours, out.TotalUpper)
}

func TestAggregate_EmptyInput(t *testing.T) {
	e := newTestEngine(t)
	out := e.Aggregate(AggregateInput{})
	assert.Empty(t, out.Disciplines)
	assert.Equal(t, 0, out.TotalManHours)
	assert.Equal(t, 0, out.TotalLower)
	assert.Equal(t, 0, out.TotalUpper)
}

func TestAggregate_ActiveSetRestricts(t *testing.T) {
	e := newTestEngine(t)

	// Cost is present, but the explicit active set names only roadway:
	// the cost-driven disciplines stay out.
	out := e.Aggregate(AggregateInput{
		Quantities: map[string]float64{
			benchmark.DisciplineRoadway:  50000,
			benchmark.DisciplineDrainage: 140,
		},
		ProjectCostK: 250_000,
		Active:       map[string]bool{benchmark.DisciplineRoadway: true},
	})

	require.Len(t, out.Disciplines, 1)
	_, ok := out.Disciplines[benchmark.DisciplineRoadway]
	assert.True(t, ok)
}

func TestAggregate_MatrixDefaults(t *testing.T) {
	e := newTestEngine(t)

	// Cost only: duration defaults to 12 months, group to "Med". $250M
	// scores 12, floored to key 8; duration 12 is column 3: 760 MH.
	out := e.Aggregate(AggregateInput{ProjectCostK: 250_000})

	dd, ok := out.Disciplines[benchmark.DisciplineDigitalDelivery]
	require.True(t, ok)
	require.Equal(t, StatusOK, dd.Status)
	assert.Equal(t, 760, dd.Estimate.ManHours)
}

func TestAggregate_BadComplexityGroupIsSentinelNotPanic(t *testing.T) {
	e := newTestEngine(t)

	out := e.Aggregate(AggregateInput{
		Quantities:   map[string]float64{benchmark.DisciplineRoadway: 50000},
		ProjectCostK: 250_000,
		Complexity:   "Bananas",
	})

	dd, ok := out.Disciplines[benchmark.DisciplineDigitalDelivery]
	require.True(t, ok)
	assert.Equal(t, StatusNeedsInput, dd.Status)
	assert.Nil(t, dd.Estimate)

	// Non-ok results never contribute to totals.
	roadway := out.Disciplines[benchmark.DisciplineRoadway].Estimate
	esdcAndTscd := out.Disciplines[benchmark.DisciplineESDC].Estimate.ManHours +
		out.Disciplines[benchmark.DisciplineTSCD].Estimate.ManHours
	misc := out.Disciplines[benchmark.DisciplineMiscStructures].Estimate.ManHours
	assert.Equal(t, roadway.ManHours+esdcAndTscd+misc, out.TotalManHours)
}

func TestAggregate_MiscStructuresSkippedWithoutBase(t *testing.T) {
	e := newTestEngine(t)

	// Only a non-base discipline has a quantity: no misc structures.
	out := e.Aggregate(AggregateInput{
		Quantities: map[string]float64{benchmark.DisciplineLighting: 12000},
	})

	_, ok := out.Disciplines[benchmark.DisciplineMiscStructures]
	assert.False(t, ok)
	_, ok = out.Disciplines[benchmark.DisciplineLighting]
	assert.True(t, ok)
}

func TestAggregate_Reentrant(t *testing.T) {
	e := newTestEngine(t)
	in := AggregateInput{
		Quantities:   map[string]float64{benchmark.DisciplineRoadway: 50000},
		ProjectCostK: 250_000,
	}

	first := e.Aggregate(in)
	second := e.Aggregate(in)
	assert.Equal(t, first.TotalManHours, second.TotalManHours)
	assert.Equal(t, first.TotalLower, second.TotalLower)
	assert.Equal(t, first.TotalUpper, second.TotalUpper)
}
