package estimate

import (
	"go.uber.org/zap"

	"github.com/meridian-eng/wbs-estimator/internal/benchmark"
	"github.com/meridian-eng/wbs-estimator/internal/rates"
)

// AggregateInput describes one full-project estimation pass.
type AggregateInput struct {
	// Quantities maps benchmark discipline ids to their quantity in
	// the discipline's unit of measure.
	Quantities map[string]float64 `json:"quantities" yaml:"quantities"`

	// Active restricts the pass to selected disciplines. Nil means
	// "everything with an input": benchmark disciplines with a
	// positive quantity, cost-driven disciplines when a project cost
	// is present, Misc Structures when any of its base disciplines
	// produced man-hours.
	Active map[string]bool `json:"active,omitempty" yaml:"active,omitempty"`

	// ProjectCostK is the construction cost in $1000s; it drives
	// Digital Delivery, ESDC and TSCD.
	ProjectCostK float64 `json:"project_cost_k,omitempty" yaml:"project_cost_k,omitempty"`

	// DurationMonths and Complexity feed the Digital Delivery matrix.
	// Zero duration defaults to 12 months; an empty group defaults to
	// "Med".
	DurationMonths int    `json:"duration_months,omitempty" yaml:"duration_months,omitempty"`
	Complexity     string `json:"complexity_group,omitempty" yaml:"complexity_group,omitempty"`

	Filter rates.Filter `json:"filter,omitempty" yaml:"filter,omitempty"`
}

// AggregateEstimate is the full-project result. Totals sum man-hours
// and bounds across every resolved discipline; a discipline without
// statistical bounds contributes its point estimate to both ends.
type AggregateEstimate struct {
	Disciplines   map[string]Result `json:"disciplines"`
	TotalManHours int               `json:"total_man_hours"`
	TotalLower    int               `json:"total_lower"`
	TotalUpper    int               `json:"total_upper"`
}

// Aggregate runs one dependency-ordered estimation pass:
//
//  1. benchmark disciplines (independent)
//  2. Digital Delivery matrix (cost-driven, independent of 1)
//  3. Misc Structures (reads Roadway/Drainage/Traffic from this pass)
//  4. ESDC and TSCD (cost-driven, conventionally last)
//
// Every requested discipline is recomputed from scratch; nothing from
// a prior pass leaks in, so dependent results are never stale.
func (e *Engine) Aggregate(in AggregateInput) AggregateEstimate {
	out := AggregateEstimate{Disciplines: make(map[string]Result)}

	// Pass 1: benchmark disciplines.
	for _, cfg := range benchmark.Disciplines() {
		if cfg.Calculation != benchmark.CalcBenchmark {
			continue
		}
		qty := in.Quantities[cfg.ID]
		if !e.isActive(in, cfg.ID, qty > 0) {
			continue
		}
		out.Disciplines[cfg.ID] = e.Estimate(cfg.ID, qty, in.Filter)
	}

	// Pass 2: Digital Delivery.
	if e.isActive(in, benchmark.DisciplineDigitalDelivery, in.ProjectCostK > 0) {
		mi := MatrixInput{
			ProjectCostK:   in.ProjectCostK,
			DurationMonths: in.DurationMonths,
			Complexity:     in.Complexity,
		}
		if mi.DurationMonths <= 0 {
			mi.DurationMonths = 12
		}
		if mi.Complexity == "" {
			mi.Complexity = "Med"
		}
		res, err := e.EstimateMatrix(mi)
		if err != nil {
			zap.L().Warn("digital delivery estimate failed", zap.Error(err))
			out.Disciplines[benchmark.DisciplineDigitalDelivery] = needsInputResult(err.Error())
		} else {
			out.Disciplines[benchmark.DisciplineDigitalDelivery] = res
		}
	}

	// Pass 3: Misc Structures over the base disciplines resolved in
	// this same pass.
	base := e.baseManHours(out.Disciplines)
	if e.isActive(in, benchmark.DisciplineMiscStructures, base > 0) {
		out.Disciplines[benchmark.DisciplineMiscStructures] =
			e.Estimate(benchmark.DisciplineMiscStructures, base, in.Filter)
	}

	// Pass 4: cost-percentage disciplines.
	for _, id := range []string{benchmark.DisciplineESDC, benchmark.DisciplineTSCD} {
		if !e.isActive(in, id, in.ProjectCostK > 0) {
			continue
		}
		out.Disciplines[id] = e.Estimate(id, in.ProjectCostK, in.Filter)
	}

	for _, res := range out.Disciplines {
		if res.Status != StatusOK || res.Estimate == nil {
			continue
		}
		out.TotalManHours += res.Estimate.ManHours
		out.TotalLower += res.Estimate.LowerBound
		out.TotalUpper += res.Estimate.UpperBound
	}

	zap.L().Info("aggregate estimate complete",
		zap.Int("disciplines", len(out.Disciplines)),
		zap.Int("total_man_hours", out.TotalManHours),
		zap.Int("total_lower", out.TotalLower),
		zap.Int("total_upper", out.TotalUpper),
	)
	return out
}

// isActive applies the active-set policy: an explicit Active map wins;
// otherwise the discipline participates when it has an input.
func (e *Engine) isActive(in AggregateInput, id string, hasInput bool) bool {
	if in.Active != nil {
		return in.Active[id]
	}
	return hasInput
}

// baseManHours sums the Misc Structures base: Roadway + Drainage +
// Traffic man-hours from the current pass. Unresolved or non-ok
// disciplines contribute nothing.
func (e *Engine) baseManHours(results map[string]Result) float64 {
	var sum float64
	for _, id := range []string{
		benchmark.DisciplineRoadway,
		benchmark.DisciplineDrainage,
		benchmark.DisciplineTraffic,
	} {
		if res, ok := results[id]; ok && res.Status == StatusOK && res.Estimate != nil {
			sum += float64(res.Estimate.ManHours)
		}
	}
	return sum
}
