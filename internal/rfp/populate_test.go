package rfp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meridian-eng/wbs-estimator/internal/benchmark"
)

func TestQuantities_RoadwayFansOut(t *testing.T) {
	out := Quantities(Extraction{RoadwayLengthLF: 50000})

	// One corridor length feeds five length-driven disciplines.
	require.Len(t, out, 5)
	for _, id := range []string{
		benchmark.DisciplineRoadway,
		benchmark.DisciplineMOT,
		benchmark.DisciplineTraffic,
		benchmark.DisciplineLighting,
		benchmark.DisciplineUtilities,
	} {
		assert.Equal(t, 50000.0, out[id], id)
	}
}

func TestQuantities_BridgeSplit(t *testing.T) {
	out := Quantities(Extraction{BridgeDeckSF: 100000})

	require.Len(t, out, 3)
	assert.InDelta(t, 70000, out[benchmark.DisciplineBridgePCGirder], 1e-9)
	assert.InDelta(t, 20000, out[benchmark.DisciplineBridgeSteel], 1e-9)
	assert.InDelta(t, 10000, out[benchmark.DisciplineBridgeRehab], 1e-9)

	// The split conserves the extracted total.
	var sum float64
	for _, q := range out {
		sum += q
	}
	assert.InDelta(t, 100000, sum, 1e-9)
}

func TestQuantities_ZeroFieldsOmitted(t *testing.T) {
	out := Quantities(Extraction{DrainageAreaAC: 140, SurveyAreaAC: 140})

	require.Len(t, out, 2)
	assert.Equal(t, 140.0, out[benchmark.DisciplineDrainage])
	assert.Equal(t, 140.0, out[benchmark.DisciplineSurvey])
}

func TestQuantities_Empty(t *testing.T) {
	assert.Empty(t, Quantities(Extraction{}))
}

func TestAggregateInput(t *testing.T) {
	in := AggregateInput(Extraction{
		RoadwayLengthLF: 50000,
		RetainingWallSF: 21500,
		NoiseWallSF:     64000,
		ProjectCostK:    250000,
		DurationMonths:  20,
		ComplexityGroup: "Med",
	})

	assert.Equal(t, 250000.0, in.ProjectCostK)
	assert.Equal(t, 20, in.DurationMonths)
	assert.Equal(t, "Med", in.Complexity)
	assert.Equal(t, 21500.0, in.Quantities[benchmark.DisciplineRetainingWalls])
	assert.Equal(t, 64000.0, in.Quantities[benchmark.DisciplineNoiseWalls])
	assert.Equal(t, 50000.0, in.Quantities[benchmark.DisciplineRoadway])
}
