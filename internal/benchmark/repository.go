package benchmark

import (
	"context"
	"strings"
	"sync"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

// Repository owns the process-wide benchmark cache. Load runs at most
// once per repository; concurrent callers share the in-flight load via
// singleflight. GetSync never blocks and never fails: before the load
// completes (or for disciplines a source omitted) it serves the bundled
// fallback tables.
type Repository struct {
	mu       sync.RWMutex
	bundles  map[string]*Bundle
	loaded   bool
	warnings []string

	sources []Source
	sf      singleflight.Group
}

// NewRepository creates a repository backed by the given sources. With
// no sources, Load is a no-op beyond marking the repository loaded and
// GetSync serves the bundled fallback tables.
func NewRepository(sources ...Source) *Repository {
	return &Repository{sources: sources}
}

// Load performs the one-time bulk load from all sources. Independent
// sources fetch in parallel; a failed source contributes a warning and
// its disciplines fall back to the bundled tables. Repeated calls after
// a completed load are no-ops; concurrent calls await the same load.
func (r *Repository) Load(ctx context.Context) error {
	_, err, _ := r.sf.Do("load", func() (any, error) {
		r.mu.RLock()
		done := r.loaded
		r.mu.RUnlock()
		if done {
			return nil, nil
		}
		return nil, r.loadOnce(ctx)
	})
	return err
}

func (r *Repository) loadOnce(ctx context.Context) error {
	log := zap.L().With(zap.String("component", "benchmark.repository"))

	var mu sync.Mutex
	var datasets []Dataset
	var warnings []string

	g, gctx := errgroup.WithContext(ctx)
	for _, src := range r.sources {
		src := src
		g.Go(func() error {
			ds, warns, err := src.Fetch(gctx)
			mu.Lock()
			defer mu.Unlock()
			warnings = append(warnings, warns...)
			if err != nil {
				// Per-source degradation: record and move on.
				log.Warn("benchmark source failed",
					zap.String("source", src.Name()),
					zap.Error(err),
				)
				warnings = append(warnings, "source "+src.Name()+": "+err.Error())
				return nil
			}
			for i := range ds {
				datasets = append(datasets, ds[i])
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return eris.Wrap(err, "benchmark: load")
	}

	bundles := buildBundles(datasets)

	r.mu.Lock()
	r.bundles = bundles
	r.warnings = warnings
	r.loaded = true
	r.mu.Unlock()

	log.Info("benchmark load complete",
		zap.Int("sources", len(r.sources)),
		zap.Int("disciplines", len(bundles)),
		zap.Int("warnings", len(warnings)),
	)
	return nil
}

// Loaded reports whether the one-time load has completed.
func (r *Repository) Loaded() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.loaded
}

// Warnings returns per-source load warnings collected by Load.
func (r *Repository) Warnings() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, len(r.warnings))
	copy(out, r.warnings)
	return out
}

// GetSync returns the bundle for a discipline, falling back to the
// bundled tables when the dynamic load has not completed or omitted the
// discipline. A nil return means no data exists anywhere for the id,
// which is a valid state callers are expected to handle.
func (r *Repository) GetSync(disciplineID string) *Bundle {
	r.mu.RLock()
	b, ok := r.bundles[disciplineID]
	r.mu.RUnlock()
	if ok {
		return b
	}
	return fallbackBundle(disciplineID)
}

// SetApplicable sets or clears (applicable == nil) the explicit
// applicability override on one historical project. The change is
// visible to the next resolver call; resolved subsets are never cached
// across toggles.
func (r *Repository) SetApplicable(disciplineID, projectID string, applicable *bool) error {
	b := r.GetSync(disciplineID)
	if b == nil {
		return eris.Errorf("benchmark: unknown discipline %q", disciplineID)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// Fallback bundles live outside r.bundles; adopt the bundle so the
	// toggle survives for the session.
	if r.bundles == nil {
		r.bundles = make(map[string]*Bundle)
	}
	if _, ok := r.bundles[disciplineID]; !ok {
		r.bundles[disciplineID] = b
	}

	for _, p := range b.Projects {
		if p.ID == projectID {
			p.Applicable = applicable
			return nil
		}
	}
	return eris.Errorf("benchmark: project %q not found in discipline %q", projectID, disciplineID)
}

// SetCustomRate sets or clears the user rate override for a discipline.
func (r *Repository) SetCustomRate(disciplineID string, rate *float64) error {
	b := r.GetSync(disciplineID)
	if b == nil {
		return eris.Errorf("benchmark: unknown discipline %q", disciplineID)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.bundles == nil {
		r.bundles = make(map[string]*Bundle)
	}
	if _, ok := r.bundles[disciplineID]; !ok {
		r.bundles[disciplineID] = b
	}
	b.CustomRate = rate
	return nil
}

// buildBundles normalizes raw datasets into per-discipline bundles,
// partitioning the shared bridges dataset and computing default rates.
func buildBundles(datasets []Dataset) map[string]*Bundle {
	out := make(map[string]*Bundle)
	for _, ds := range datasets {
		projects := normalizeProjects(ds.Projects)
		if ds.Name == bridgesDataset {
			for id, subset := range partitionBridges(projects) {
				out[id] = newBundle(id, subset)
			}
			continue
		}
		out[ds.Name] = newBundle(ds.Name, projects)
	}
	return out
}

func newBundle(disciplineID string, projects []*HistoricalProject) *Bundle {
	return &Bundle{
		DisciplineID: disciplineID,
		Projects:     projects,
		DefaultRate:  defaultRate(disciplineID, projects),
	}
}

// defaultRate computes the load-time rate over the full unfiltered set.
// Percentage disciplines store cost fractions with no man-hours, so a
// quantity-weighted rate is meaningless there; they average the stored
// rates instead.
func defaultRate(disciplineID string, projects []*HistoricalProject) float64 {
	if len(projects) == 0 {
		return 0
	}
	if cfg, ok := Config(disciplineID); ok && cfg.Calculation == CalcPercentage {
		var sum float64
		for _, p := range projects {
			sum += p.Rate
		}
		return sum / float64(len(projects))
	}
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

// partitionBridges splits the shared bridges dataset into disjoint
// per-discipline subsets by a case-insensitive substring match on the
// notes field. Priority is fixed: "steel" wins over "rehab"; anything
// else defaults to PC Girder. Evaluated once at load.
func partitionBridges(projects []*HistoricalProject) map[string][]*HistoricalProject {
	out := map[string][]*HistoricalProject{
		DisciplineBridgePCGirder: nil,
		DisciplineBridgeSteel:    nil,
		DisciplineBridgeRehab:    nil,
	}
	for _, p := range projects {
		notes := strings.ToLower(p.Notes)
		switch {
		case strings.Contains(notes, "steel"):
			out[DisciplineBridgeSteel] = append(out[DisciplineBridgeSteel], p)
		case strings.Contains(notes, "rehab"):
			out[DisciplineBridgeRehab] = append(out[DisciplineBridgeRehab], p)
		default:
			out[DisciplineBridgePCGirder] = append(out[DisciplineBridgePCGirder], p)
		}
	}
	return out
}
