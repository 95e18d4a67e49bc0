package rates

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meridian-eng/wbs-estimator/internal/benchmark"
)

func boolPtr(b bool) *bool { return &b }

func project(name string, rate float64, opts ...func(*benchmark.HistoricalProject)) *benchmark.HistoricalProject {
	p := &benchmark.HistoricalProject{
		Name:     name,
		Quantity: 1000,
		ManHours: rate * 1000,
		Rate:     rate,
	}
	for _, o := range opts {
		o(p)
	}
	return p
}

func withTags(projectType, complexity string) func(*benchmark.HistoricalProject) {
	return func(p *benchmark.HistoricalProject) {
		p.ProjectType = projectType
		p.Complexity = complexity
	}
}

func withApplicable(b bool) func(*benchmark.HistoricalProject) {
	return func(p *benchmark.HistoricalProject) { p.Applicable = boolPtr(b) }
}

func TestSelectApplicable_ExplicitFlagWins(t *testing.T) {
	projects := []*benchmark.HistoricalProject{
		// Tag mismatch, but explicitly included.
		project("a", 0.5, withTags("urban", "high"), withApplicable(true)),
		// Tag match, but explicitly excluded.
		project("b", 0.6, withTags("rural", "low"), withApplicable(false)),
		// No flag: falls through to tag matching.
		project("c", 0.7, withTags("rural", "low")),
	}

	got := SelectApplicable(projects, Filter{ProjectType: "rural", Complexity: "low"})
	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].Name)
	assert.Equal(t, "c", got[1].Name)
}

func TestSelectApplicable_EmptyFilterMatchesAll(t *testing.T) {
	projects := []*benchmark.HistoricalProject{
		project("a", 0.5, withTags("urban", "high")),
		project("b", 0.6),
	}
	got := SelectApplicable(projects, Filter{})
	assert.Len(t, got, 2)
}

func TestSelectApplicable_TagMatchIsCaseInsensitive(t *testing.T) {
	projects := []*benchmark.HistoricalProject{
		project("a", 0.5, withTags("Rural", " LOW ")),
	}
	got := SelectApplicable(projects, Filter{ProjectType: "rural", Complexity: "low"})
	assert.Len(t, got, 1)
}

func TestWeighted_EmptyInput(t *testing.T) {
	for _, m := range []Method{MethodAverage, MethodWeighted, MethodMedian, MethodStatistical} {
		assert.Equal(t, 0.0, Weighted(nil, m), string(m))
	}
}

func TestWeighted_Average(t *testing.T) {
	projects := []*benchmark.HistoricalProject{
		project("a", 0.2),
		project("b", 0.4),
	}
	assert.InDelta(t, 0.3, Weighted(projects, MethodAverage), 1e-9)
}

func TestWeighted_Weighted(t *testing.T) {
	// Large project at 0.2 dominates the small one at 0.8:
	// (9000*0.2 + 1000*0.8) / 10000 = 2600/10000 = 0.26.
	projects := []*benchmark.HistoricalProject{
		{Name: "big", Quantity: 9000, ManHours: 1800, Rate: 0.2},
		{Name: "small", Quantity: 1000, ManHours: 800, Rate: 0.8},
	}
	assert.InDelta(t, 0.26, Weighted(projects, MethodWeighted), 1e-9)
}

func TestWeighted_WeightedZeroQuantity(t *testing.T) {
	projects := []*benchmark.HistoricalProject{
		{Name: "a", Quantity: 0, ManHours: 100, Rate: 0.5},
	}
	assert.Equal(t, 0.0, Weighted(projects, MethodWeighted))
}

func TestWeighted_Median(t *testing.T) {
	odd := []*benchmark.HistoricalProject{
		project("a", 0.9),
		project("b", 0.1),
		project("c", 0.5),
	}
	assert.InDelta(t, 0.5, Weighted(odd, MethodMedian), 1e-9)

	// Even count averages the central pair: (0.3 + 0.5) / 2 = 0.4.
	even := []*benchmark.HistoricalProject{
		project("a", 0.9),
		project("b", 0.1),
		project("c", 0.5),
		project("d", 0.3),
	}
	assert.InDelta(t, 0.4, Weighted(even, MethodMedian), 1e-9)
}

func TestWeighted_Statistical(t *testing.T) {
	projects := []*benchmark.HistoricalProject{
		project("a", 0.2),
		project("b", 0.4),
		project("c", 0.6),
	}
	assert.InDelta(t, 0.4, Weighted(projects, MethodStatistical), 1e-9)
}

func TestEffective_FallbackChain(t *testing.T) {
	custom := 0.33

	t.Run("nil bundle", func(t *testing.T) {
		rate, subset := Effective(nil, Filter{}, MethodWeighted)
		assert.Equal(t, 0.0, rate)
		assert.Empty(t, subset)
	})

	t.Run("applicable subset wins", func(t *testing.T) {
		b := &benchmark.Bundle{
			Projects:    []*benchmark.HistoricalProject{project("a", 0.5)},
			DefaultRate: 0.9,
			CustomRate:  &custom,
		}
		rate, subset := Effective(b, Filter{}, MethodWeighted)
		assert.InDelta(t, 0.5, rate, 1e-9)
		assert.Len(t, subset, 1)
	})

	t.Run("custom rate over default", func(t *testing.T) {
		b := &benchmark.Bundle{
			Projects:    []*benchmark.HistoricalProject{project("a", 0.5, withApplicable(false))},
			DefaultRate: 0.9,
			CustomRate:  &custom,
		}
		rate, subset := Effective(b, Filter{}, MethodWeighted)
		assert.Equal(t, custom, rate)
		assert.Empty(t, subset)
	})

	t.Run("default rate last", func(t *testing.T) {
		b := &benchmark.Bundle{DefaultRate: 0.9}
		rate, subset := Effective(b, Filter{}, MethodWeighted)
		assert.Equal(t, 0.9, rate)
		assert.Empty(t, subset)
	})
}

func TestValues(t *testing.T) {
	projects := []*benchmark.HistoricalProject{
		project("a", 0.7),
		project("b", 0.2),
	}
	assert.Equal(t, []float64{0.7, 0.2}, Values(projects))
}
