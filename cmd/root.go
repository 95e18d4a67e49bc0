package main

import (
	"os"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/meridian-eng/wbs-estimator/internal/benchmark"
	"github.com/meridian-eng/wbs-estimator/internal/config"
	"github.com/meridian-eng/wbs-estimator/internal/estimate"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "wbs-estimator",
	Short: "Benchmark-driven man-hour estimation for infrastructure design fees",
	Long:  "Computes per-discipline man-hour estimates with statistical confidence bounds from historical benchmark projects, and aggregates them into a WBS design-fee budget.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return eris.Wrap(err, "load config")
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return eris.Wrap(err, "init logger")
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

// buildRepository assembles the benchmark sources from config: the
// dataset directory plus any remote URLs.
func buildRepository() *benchmark.Repository {
	var sources []benchmark.Source
	if cfg.Sources.Dir != "" {
		if _, err := os.Stat(cfg.Sources.Dir); err == nil {
			sources = append(sources, benchmark.NewDirSource(cfg.Sources.Dir))
		}
	}
	timeout := time.Duration(cfg.Sources.TimeoutSecs) * time.Second
	for _, url := range cfg.Sources.URLs {
		limiter := rate.NewLimiter(rate.Limit(cfg.Sources.RatePerSec), 1)
		sources = append(sources, benchmark.NewHTTPSource(url, timeout, limiter))
	}
	return benchmark.NewRepository(sources...)
}

func buildEngine(repo *benchmark.Repository) *estimate.Engine {
	return estimate.NewEngine(repo, cfg.Estimator.AvgHourlyRate)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
