package benchmark

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"gopkg.in/yaml.v3"
)

// Source is one self-contained benchmark data source. Fetch returns the
// datasets it could read plus warnings for entries it had to skip; a
// non-nil error means the whole source is unavailable and the
// repository degrades to the bundled tables for its disciplines.
type Source interface {
	Name() string
	Fetch(ctx context.Context) ([]Dataset, []string, error)
}

// DirSource reads benchmark dataset files (*.json, *.yaml, *.yml) from
// a directory. Each file holds one Dataset. A malformed file is a
// warning, not a source failure; the remaining files still load.
type DirSource struct {
	Dir string
}

// NewDirSource creates a directory source.
func NewDirSource(dir string) *DirSource {
	return &DirSource{Dir: dir}
}

// Name implements Source.
func (s *DirSource) Name() string { return "dir:" + s.Dir }

// Fetch implements Source.
func (s *DirSource) Fetch(ctx context.Context) ([]Dataset, []string, error) {
	entries, err := os.ReadDir(s.Dir)
	if err != nil {
		return nil, nil, eris.Wrapf(err, "benchmark: read dir %s", s.Dir)
	}

	var datasets []Dataset
	var warnings []string
	for _, e := range entries {
		if ctx.Err() != nil {
			return datasets, warnings, ctx.Err()
		}
		if e.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(e.Name()))
		if ext != ".json" && ext != ".yaml" && ext != ".yml" {
			continue
		}

		path := filepath.Join(s.Dir, e.Name())
		ds, err := readDatasetFile(path, ext)
		if err != nil {
			zap.L().Warn("benchmark dataset file skipped",
				zap.String("file", path),
				zap.Error(err),
			)
			warnings = append(warnings, "file "+e.Name()+": "+err.Error())
			continue
		}
		datasets = append(datasets, ds)
	}
	return datasets, warnings, nil
}

func readDatasetFile(path, ext string) (Dataset, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Dataset{}, eris.Wrap(err, "read file")
	}

	var ds Dataset
	if ext == ".json" {
		err = json.Unmarshal(raw, &ds)
	} else {
		err = yaml.Unmarshal(raw, &ds)
	}
	if err != nil {
		return Dataset{}, eris.Wrap(err, "parse dataset")
	}
	if ds.Name == "" {
		return Dataset{}, eris.New("dataset missing name")
	}
	return ds, nil
}

// HTTPSource fetches a JSON array of Datasets from a remote URL, rate
// limited and bounded by a request timeout. A timeout counts as a fetch
// failure and degrades the same way.
type HTTPSource struct {
	URL     string
	client  *http.Client
	limiter *rate.Limiter
}

// NewHTTPSource creates an HTTP source. A zero timeout defaults to 15s.
func NewHTTPSource(url string, timeout time.Duration, limiter *rate.Limiter) *HTTPSource {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	if limiter == nil {
		limiter = rate.NewLimiter(2, 2)
	}
	return &HTTPSource{
		URL:     url,
		client:  &http.Client{Timeout: timeout},
		limiter: limiter,
	}
}

// Name implements Source.
func (s *HTTPSource) Name() string { return s.URL }

// Fetch implements Source.
func (s *HTTPSource) Fetch(ctx context.Context) ([]Dataset, []string, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, nil, eris.Wrap(err, "benchmark: rate limiter wait")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, nil, eris.Wrap(err, "benchmark: create request")
	}
	req.Header.Set("User-Agent", "wbs-estimator/1.0")
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, nil, eris.Wrapf(err, "benchmark: fetch %s", s.URL)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		return nil, nil, eris.Errorf("benchmark: unexpected status %d from %s", resp.StatusCode, s.URL)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, eris.Wrapf(err, "benchmark: read body from %s", s.URL)
	}

	var datasets []Dataset
	if err := json.Unmarshal(raw, &datasets); err != nil {
		return nil, nil, eris.Wrapf(err, "benchmark: parse datasets from %s", s.URL)
	}
	return datasets, nil, nil
}

// StaticSource serves fixed datasets; used in tests and for embedding
// project-specific overrides.
type StaticSource struct {
	SourceName string
	Datasets   []Dataset
	Err        error
}

// Name implements Source.
func (s *StaticSource) Name() string { return s.SourceName }

// Fetch implements Source.
func (s *StaticSource) Fetch(ctx context.Context) ([]Dataset, []string, error) {
	if s.Err != nil {
		return nil, nil, s.Err
	}
	return s.Datasets, nil, nil
}
