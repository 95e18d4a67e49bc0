// Package estimate computes man-hour estimates per discipline and
// aggregates them into a project total. Three strategies exist,
// selected by the discipline configuration: benchmark (quantity x
// historical rate with statistical bounds), matrix (Digital Delivery
// industry table) and percentage (cost- or base-MH-driven).
package estimate

import "github.com/meridian-eng/wbs-estimator/internal/stats"

// Status tags an estimation result. Boundary conditions are result
// states, not errors: callers render each case instead of recovering
// from a panic or unwrapping an exception.
type Status string

const (
	// StatusOK means the estimate was computed. ManHours may still be
	// a legitimate zero (zero quantity or a discipline with no data).
	StatusOK Status = "ok"

	// StatusLoading means benchmark data for the discipline has not
	// finished loading. Distinct from a zero estimate; callers must
	// not conflate the two.
	StatusLoading Status = "loading"

	// StatusUnknownDiscipline means the id has no configuration.
	StatusUnknownDiscipline Status = "unknown_discipline"

	// StatusNeedsInput means the discipline requires inputs the call
	// did not supply (Digital Delivery needs cost, duration and a
	// complexity group, not a bare quantity).
	StatusNeedsInput Status = "needs_input"
)

// DisciplineEstimate is the engine output for one discipline.
// Invariants: ManHours == round(Quantity x Rate); LowerBound <=
// ManHours <= UpperBound. When no statistical bounds exist the bounds
// collapse onto the point estimate.
type DisciplineEstimate struct {
	DisciplineID       string                `json:"discipline_id"`
	Quantity           float64               `json:"quantity"`
	Rate               float64               `json:"rate"`
	ManHours           int                   `json:"man_hours"`
	LowerBound         int                   `json:"lower_bound"`
	UpperBound         int                   `json:"upper_bound"`
	SourceProjectCount int                   `json:"source_project_count"`
	Stats              *stats.RateStatistics `json:"rate_statistics,omitempty"`
}

// Result is the tagged engine output. Estimate is set only for
// StatusOK; Error carries a human-readable reason for the rest.
type Result struct {
	Status   Status              `json:"status"`
	Error    string              `json:"error,omitempty"`
	Estimate *DisciplineEstimate `json:"estimate,omitempty"`
}

func okResult(est *DisciplineEstimate) Result {
	return Result{Status: StatusOK, Estimate: est}
}

func loadingResult() Result {
	return Result{Status: StatusLoading, Error: "benchmark data not loaded yet"}
}

func unknownResult(disciplineID string) Result {
	return Result{Status: StatusUnknownDiscipline, Error: "unknown discipline " + disciplineID}
}

func needsInputResult(reason string) Result {
	return Result{Status: StatusNeedsInput, Error: reason}
}
