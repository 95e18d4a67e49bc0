// Package rfp maps quantities extracted from an RFP document onto
// engine discipline quantities. The mapping is a fixed policy layer;
// the extraction itself (PDF text, LLM analysis) happens upstream and
// only its numeric output arrives here.
package rfp

import (
	"go.uber.org/zap"

	"github.com/meridian-eng/wbs-estimator/internal/benchmark"
	"github.com/meridian-eng/wbs-estimator/internal/estimate"
)

// Bridge deck area is split across the three bridge disciplines by an
// assumed sub-allocation when the RFP does not break it down.
const (
	bridgePCGirderShare = 0.70
	bridgeSteelShare    = 0.20
	bridgeRehabShare    = 0.10
)

// Extraction holds the quantities an upstream RFP analysis produced.
// Zero fields mean the RFP did not mention that quantity.
type Extraction struct {
	RoadwayLengthLF float64 `json:"roadway_length_lf"`
	BridgeDeckSF    float64 `json:"bridge_deck_sf"`
	DrainageAreaAC  float64 `json:"drainage_area_ac"`
	SurveyAreaAC    float64 `json:"survey_area_ac"`
	RetainingWallSF float64 `json:"retaining_wall_sf"`
	NoiseWallSF     float64 `json:"noise_wall_sf"`
	ProjectCostK    float64 `json:"project_cost_k"`
	DurationMonths  int     `json:"duration_months"`
	ComplexityGroup string  `json:"complexity_group"`
}

// Quantities expands an extraction into per-discipline quantities.
// Roadway length feeds every corridor-length discipline (Roadway, MOT,
// Traffic, Lighting, Utilities); bridge deck area splits 70/20/10
// across PC Girder / Steel / Rehab.
func Quantities(x Extraction) map[string]float64 {
	out := make(map[string]float64)

	if x.RoadwayLengthLF > 0 {
		out[benchmark.DisciplineRoadway] = x.RoadwayLengthLF
		out[benchmark.DisciplineMOT] = x.RoadwayLengthLF
		out[benchmark.DisciplineTraffic] = x.RoadwayLengthLF
		out[benchmark.DisciplineLighting] = x.RoadwayLengthLF
		out[benchmark.DisciplineUtilities] = x.RoadwayLengthLF
	}
	if x.BridgeDeckSF > 0 {
		out[benchmark.DisciplineBridgePCGirder] = x.BridgeDeckSF * bridgePCGirderShare
		out[benchmark.DisciplineBridgeSteel] = x.BridgeDeckSF * bridgeSteelShare
		out[benchmark.DisciplineBridgeRehab] = x.BridgeDeckSF * bridgeRehabShare
	}
	if x.DrainageAreaAC > 0 {
		out[benchmark.DisciplineDrainage] = x.DrainageAreaAC
	}
	if x.SurveyAreaAC > 0 {
		out[benchmark.DisciplineSurvey] = x.SurveyAreaAC
	}
	if x.RetainingWallSF > 0 {
		out[benchmark.DisciplineRetainingWalls] = x.RetainingWallSF
	}
	if x.NoiseWallSF > 0 {
		out[benchmark.DisciplineNoiseWalls] = x.NoiseWallSF
	}

	zap.L().Info("rfp quantities mapped",
		zap.Int("disciplines", len(out)),
		zap.Float64("project_cost_k", x.ProjectCostK),
	)
	return out
}

// AggregateInput builds a full engine input from an extraction.
func AggregateInput(x Extraction) estimate.AggregateInput {
	return estimate.AggregateInput{
		Quantities:     Quantities(x),
		ProjectCostK:   x.ProjectCostK,
		DurationMonths: x.DurationMonths,
		Complexity:     x.ComplexityGroup,
	}
}
