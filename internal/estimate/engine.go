package estimate

import (
	"go.uber.org/zap"

	"github.com/meridian-eng/wbs-estimator/internal/benchmark"
	"github.com/meridian-eng/wbs-estimator/internal/rates"
	"github.com/meridian-eng/wbs-estimator/internal/stats"
)

// DefaultAvgHourlyRate is the blended dollars-per-hour assumption used
// to convert ESDC/TSCD cost percentages into man-hours. Configurable
// via estimator.avg_hourly_rate; the default matches the historical
// calibration and is not silently changed.
const DefaultAvgHourlyRate = 150.0

// Engine computes per-discipline estimates against a benchmark
// repository. All methods are synchronous and reentrant; the only
// asynchronous operation in the system is the repository load.
type Engine struct {
	repo       *benchmark.Repository
	hourlyRate float64
}

// NewEngine creates an engine. A non-positive hourly rate falls back to
// DefaultAvgHourlyRate.
func NewEngine(repo *benchmark.Repository, avgHourlyRate float64) *Engine {
	if avgHourlyRate <= 0 {
		avgHourlyRate = DefaultAvgHourlyRate
	}
	return &Engine{repo: repo, hourlyRate: avgHourlyRate}
}

// Estimate computes one discipline's estimate. The meaning of quantity
// follows the discipline configuration: the unit quantity for
// benchmark disciplines, construction cost in $1000s for ESDC/TSCD,
// and the summed base man-hours for Misc Structures. Matrix
// disciplines need EstimateMatrix and report StatusNeedsInput here.
func (e *Engine) Estimate(disciplineID string, quantity float64, f rates.Filter) Result {
	cfg, ok := benchmark.Config(disciplineID)
	if !ok {
		return unknownResult(disciplineID)
	}

	switch cfg.Calculation {
	case benchmark.CalcMatrix:
		return needsInputResult("digital delivery requires cost, duration and complexity inputs")
	case benchmark.CalcPercentage:
		if cfg.ID == benchmark.DisciplineMiscStructures {
			// Misc Structures behaves like a benchmark discipline over
			// a man-hour base quantity, bounds included.
			return e.benchmarkEstimate(cfg, quantity, f)
		}
		return e.costPercentage(cfg, quantity, f)
	default:
		return e.benchmarkEstimate(cfg, quantity, f)
	}
}

// benchmarkEstimate is the rate-times-quantity strategy. With at least
// two applicable projects it takes the statistical path and attaches
// mean +/- population sigma bounds; below that it falls back to the
// weighted rate (then custom, then default) with the bounds collapsed
// onto the point estimate.
func (e *Engine) benchmarkEstimate(cfg benchmark.DisciplineConfig, quantity float64, f rates.Filter) Result {
	b := e.repo.GetSync(cfg.ID)
	if b == nil {
		if !e.repo.Loaded() {
			return loadingResult()
		}
		// Loaded, but no data anywhere: a legitimate zero the user may
		// override with a custom rate.
		est := &DisciplineEstimate{DisciplineID: cfg.ID, Quantity: quantity}
		return okResult(est)
	}

	subset := rates.SelectApplicable(b.Projects, f)
	if len(subset) >= 2 {
		rs := stats.FromRates(rates.Values(subset))
		if rs.SampleCount >= 2 {
			mh, lower, upper := stats.Bounded(quantity, rs)
			return okResult(&DisciplineEstimate{
				DisciplineID:       cfg.ID,
				Quantity:           quantity,
				Rate:               rs.Mean,
				ManHours:           mh,
				LowerBound:         lower,
				UpperBound:         upper,
				SourceProjectCount: len(subset),
				Stats:              &rs,
			})
		}
	}

	// Insufficient evidence for bounds: point estimate only.
	rate, used := rates.Effective(b, f, rates.MethodWeighted)
	mh := stats.Round(quantity * rate)
	return okResult(&DisciplineEstimate{
		DisciplineID:       cfg.ID,
		Quantity:           quantity,
		Rate:               rate,
		ManHours:           mh,
		LowerBound:         mh,
		UpperBound:         mh,
		SourceProjectCount: len(used),
	})
}

// costPercentage converts a construction cost through a fee-percentage
// rate and the blended hourly rate: cost-equivalent dollars divided by
// dollars-per-hour. Used by ESDC and TSCD.
func (e *Engine) costPercentage(cfg benchmark.DisciplineConfig, projectCostK float64, f rates.Filter) Result {
	b := e.repo.GetSync(cfg.ID)
	if b == nil {
		if !e.repo.Loaded() {
			return loadingResult()
		}
		return okResult(&DisciplineEstimate{DisciplineID: cfg.ID, Quantity: projectCostK})
	}

	rate, used := rates.Effective(b, f, rates.MethodAverage)
	costEquivalentK := projectCostK * rate
	mh := stats.Round(costEquivalentK * 1000 / e.hourlyRate)

	zap.L().Debug("cost percentage estimate",
		zap.String("discipline", cfg.ID),
		zap.Float64("cost_k", projectCostK),
		zap.Float64("rate", rate),
		zap.Int("man_hours", mh),
	)

	return okResult(&DisciplineEstimate{
		DisciplineID:       cfg.ID,
		Quantity:           projectCostK,
		Rate:               rate,
		ManHours:           mh,
		LowerBound:         mh,
		UpperBound:         mh,
		SourceProjectCount: len(used),
	})
}
