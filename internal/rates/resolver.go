// Package rates turns "discipline plus filter criteria" into a single
// effective rate and the historical-project subset that produced it.
package rates

import (
	"sort"
	"strings"

	"github.com/meridian-eng/wbs-estimator/internal/benchmark"
	"github.com/meridian-eng/wbs-estimator/internal/stats"
)

// Method selects how a project set collapses into one rate.
type Method string

const (
	// MethodAverage is the unweighted arithmetic mean of project rates.
	MethodAverage Method = "average"
	// MethodWeighted is sum(man-hours) / sum(quantity): large projects
	// pull the rate harder than small ones. The default.
	MethodWeighted Method = "weighted"
	// MethodMedian sorts by rate and takes the middle value (averaging
	// the central pair for even counts).
	MethodMedian Method = "median"
	// MethodStatistical is the mean as computed by the stats package,
	// i.e. over positive rates only.
	MethodStatistical Method = "statistical"
)

// Filter narrows project selection by tag. Empty fields constrain
// nothing on that axis.
type Filter struct {
	ProjectType string `json:"project_type,omitempty" yaml:"project_type,omitempty"`
	Complexity  string `json:"complexity,omitempty" yaml:"complexity,omitempty"`
}

// SelectApplicable returns the projects eligible for rate computation.
// An explicit Applicable flag wins outright in either direction; only
// unset records fall back to tag matching against the filter.
func SelectApplicable(projects []*benchmark.HistoricalProject, f Filter) []*benchmark.HistoricalProject {
	var out []*benchmark.HistoricalProject
	for _, p := range projects {
		if p.Applicable != nil {
			if *p.Applicable {
				out = append(out, p)
			}
			continue
		}
		if matchesTag(p.ProjectType, f.ProjectType) && matchesTag(p.Complexity, f.Complexity) {
			out = append(out, p)
		}
	}
	return out
}

func matchesTag(tag, filter string) bool {
	if filter == "" {
		return true
	}
	return strings.EqualFold(strings.TrimSpace(tag), strings.TrimSpace(filter))
}

// Weighted collapses a project set into one rate using the given
// method. Empty input returns 0 for every method.
func Weighted(projects []*benchmark.HistoricalProject, m Method) float64 {
	if len(projects) == 0 {
		return 0
	}

	switch m {
	case MethodAverage:
		var sum float64
		for _, p := range projects {
			sum += p.Rate
		}
		return sum / float64(len(projects))

	case MethodMedian:
		vals := make([]float64, len(projects))
		for i, p := range projects {
			vals[i] = p.Rate
		}
		sort.Float64s(vals)
		mid := len(vals) / 2
		if len(vals)%2 == 0 {
			return (vals[mid-1] + vals[mid]) / 2
		}
		return vals[mid]

	case MethodStatistical:
		vals := make([]float64, len(projects))
		for i, p := range projects {
			vals[i] = p.Rate
		}
		return stats.Mean(vals)

	default: // MethodWeighted
		var mh, qty float64
		for _, p := range projects {
			mh += p.ManHours
			qty += p.Quantity
		}
		if qty <= 0 {
			return 0
		}
		return mh / qty
	}
}

// Effective resolves the rate for a bundle with the ordered fallback
// chain: applicable subset, then the user CustomRate, then the
// load-time DefaultRate. It returns the subset actually used so callers
// can report source counts; the subset is empty on the fallback paths.
func Effective(b *benchmark.Bundle, f Filter, m Method) (float64, []*benchmark.HistoricalProject) {
	if b == nil {
		return 0, nil
	}
	subset := SelectApplicable(b.Projects, f)
	if len(subset) > 0 {
		return Weighted(subset, m), subset
	}
	if b.CustomRate != nil {
		return *b.CustomRate, nil
	}
	return b.DefaultRate, nil
}

// Values extracts the rate of each project, preserving order.
func Values(projects []*benchmark.HistoricalProject) []float64 {
	vals := make([]float64, len(projects))
	for i, p := range projects {
		vals[i] = p.Rate
	}
	return vals
}
