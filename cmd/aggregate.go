package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/meridian-eng/wbs-estimator/internal/estimate"
	"github.com/meridian-eng/wbs-estimator/internal/report"
	"github.com/meridian-eng/wbs-estimator/internal/store"
)

var (
	aggregateInputPath string
	aggregateXLSXPath  string
	aggregateSaveName  string
	aggregateJSON      bool
)

var aggregateCmd = &cobra.Command{
	Use:   "aggregate",
	Short: "Compute a full-project aggregate estimate from an input file",
	Long:  "Reads an aggregate input (quantities, active set, project cost, matrix inputs) from a JSON or YAML file, runs the dependency-ordered estimation pass, and prints the result. Optionally exports XLSX and saves a snapshot.",
	RunE: func(cmd *cobra.Command, args []string) error {
		in, err := readAggregateInput(aggregateInputPath)
		if err != nil {
			return err
		}

		repo := buildRepository()
		if err := repo.Load(cmd.Context()); err != nil {
			return err
		}
		engine := buildEngine(repo)

		agg := engine.Aggregate(in)

		if aggregateJSON {
			if err := json.NewEncoder(os.Stdout).Encode(agg); err != nil {
				return eris.Wrap(err, "aggregate: encode result")
			}
		} else {
			report.RenderTable(os.Stdout, agg)
		}

		if aggregateXLSXPath != "" {
			name := aggregateSaveName
			if name == "" {
				name = "WBS Estimate"
			}
			if err := report.WriteXLSX(aggregateXLSXPath, name, agg); err != nil {
				return err
			}
			zap.L().Info("xlsx written", zap.String("path", aggregateXLSXPath))
		}

		if aggregateSaveName != "" {
			st, err := store.Open(cfg.Snapshot.Path)
			if err != nil {
				return err
			}
			defer st.Close() //nolint:errcheck
			if err := st.Migrate(cmd.Context()); err != nil {
				return err
			}
			id, err := st.Save(cmd.Context(), aggregateSaveName, agg)
			if err != nil {
				return err
			}
			zap.L().Info("snapshot saved", zap.String("id", id), zap.String("project", aggregateSaveName))
		}

		return nil
	},
}

// readAggregateInput parses a JSON or YAML aggregate input file.
func readAggregateInput(path string) (estimate.AggregateInput, error) {
	var in estimate.AggregateInput
	if path == "" {
		return in, eris.New("aggregate: --input is required")
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return in, eris.Wrapf(err, "aggregate: read %s", path)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(raw, &in)
	default:
		err = json.Unmarshal(raw, &in)
	}
	if err != nil {
		return in, eris.Wrapf(err, "aggregate: parse %s", path)
	}
	return in, nil
}

func init() {
	aggregateCmd.Flags().StringVarP(&aggregateInputPath, "input", "i", "", "aggregate input file (JSON or YAML)")
	aggregateCmd.Flags().StringVar(&aggregateXLSXPath, "xlsx", "", "write the estimate to an XLSX workbook")
	aggregateCmd.Flags().StringVar(&aggregateSaveName, "save", "", "save a snapshot under this project name")
	aggregateCmd.Flags().BoolVar(&aggregateJSON, "json", false, "emit JSON instead of a table")
	rootCmd.AddCommand(aggregateCmd)
}
