// Package benchmark owns the historical-project evidence used for
// man-hour estimation: discipline configuration, benchmark datasets,
// and the load-once repository that serves them.
package benchmark

// HistoricalProject is one row of benchmark evidence for a discipline.
// Rate is persisted alongside the raw quantity/man-hour fields so that
// downstream math never re-derives it inconsistently.
type HistoricalProject struct {
	ID          string  `json:"id" yaml:"id"`
	Name        string  `json:"name" yaml:"name"`
	Quantity    float64 `json:"quantity" yaml:"quantity"`
	ManHours    float64 `json:"man_hours" yaml:"man_hours"`
	Rate        float64 `json:"rate" yaml:"rate"`
	Unit        string  `json:"unit" yaml:"unit"`
	ProjectType string  `json:"project_type" yaml:"project_type"`
	Complexity  string  `json:"complexity" yaml:"complexity"`

	// Applicable is a tri-state override: nil means "decide by tag
	// filters", non-nil wins outright either way.
	Applicable *bool `json:"applicable,omitempty" yaml:"applicable,omitempty"`

	// Descriptive only; Notes additionally drives the one-time bridge
	// partition at load.
	Location string `json:"location,omitempty" yaml:"location,omitempty"`
	Notes    string `json:"notes,omitempty" yaml:"notes,omitempty"`
}

// Bundle is the per-discipline benchmark data served by the repository.
type Bundle struct {
	DisciplineID string               `json:"discipline_id"`
	Projects     []*HistoricalProject `json:"projects"`

	// DefaultRate is computed at load time from the full unfiltered
	// project set and serves as the last fallback when no applicable
	// subset and no custom rate exist.
	DefaultRate float64 `json:"default_rate"`

	// CustomRate is a user-entered override that takes precedence over
	// DefaultRate in the fallback chain.
	CustomRate *float64 `json:"custom_rate,omitempty"`

	// SourceName records which data source supplied the bundle.
	SourceName string `json:"source_name,omitempty"`
}

// Dataset is the wire shape of one benchmark data source entry. Name is
// either a discipline id or the shared "bridges" dataset, which the
// repository partitions across the three bridge disciplines.
type Dataset struct {
	Name     string               `json:"name" yaml:"name"`
	Projects []*HistoricalProject `json:"projects" yaml:"projects"`
}

// normalizeProjects drops records that cannot participate in any rate
// computation (quantity <= 0) and fills in a missing Rate from the raw
// fields. Records with a persisted positive Rate keep it untouched.
func normalizeProjects(projects []*HistoricalProject) []*HistoricalProject {
	out := make([]*HistoricalProject, 0, len(projects))
	for _, p := range projects {
		if p == nil || p.Quantity <= 0 {
			continue
		}
		if p.Rate <= 0 && p.ManHours > 0 {
			p.Rate = p.ManHours / p.Quantity
		}
		if p.Rate < 0 {
			continue
		}
		out = append(out, p)
	}
	return out
}
