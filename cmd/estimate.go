package main

import (
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/meridian-eng/wbs-estimator/internal/estimate"
	"github.com/meridian-eng/wbs-estimator/internal/rates"
)

var (
	estimateQuantity    float64
	estimateProjectType string
	estimateComplexity  string
	estimateCostK       float64
	estimateDuration    int
	estimateGroup       string
	estimateJSON        bool
)

var estimateCmd = &cobra.Command{
	Use:   "estimate <discipline-id>",
	Short: "Estimate man-hours for a single discipline",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		repo := buildRepository()
		if err := repo.Load(cmd.Context()); err != nil {
			return err
		}
		engine := buildEngine(repo)

		var res estimate.Result
		if estimateCostK > 0 && estimateGroup != "" {
			var err error
			res, err = engine.EstimateMatrix(estimate.MatrixInput{
				ProjectCostK:   estimateCostK,
				DurationMonths: estimateDuration,
				Complexity:     estimateGroup,
			})
			if err != nil {
				return err
			}
		} else {
			f := rates.Filter{ProjectType: estimateProjectType, Complexity: estimateComplexity}
			res = engine.Estimate(args[0], estimateQuantity, f)
		}

		if estimateJSON {
			return json.NewEncoder(os.Stdout).Encode(res)
		}

		switch res.Status {
		case estimate.StatusOK:
			p := message.NewPrinter(language.AmericanEnglish)
			est := res.Estimate
			p.Printf("%s: %d MH (rate %.4f, bounds %d-%d, %d source projects)\n",
				est.DisciplineID, est.ManHours, est.Rate, est.LowerBound, est.UpperBound, est.SourceProjectCount)
			return nil
		default:
			return eris.Errorf("estimate: %s", res.Error)
		}
	},
}

func init() {
	estimateCmd.Flags().Float64VarP(&estimateQuantity, "quantity", "q", 0, "quantity in the discipline's unit of measure")
	estimateCmd.Flags().StringVar(&estimateProjectType, "project-type", "", "filter source projects by type tag")
	estimateCmd.Flags().StringVar(&estimateComplexity, "complexity", "", "filter source projects by complexity tag")
	estimateCmd.Flags().Float64Var(&estimateCostK, "cost-k", 0, "construction cost in $1000s (matrix/percentage disciplines)")
	estimateCmd.Flags().IntVar(&estimateDuration, "duration", 12, "design duration in months (matrix disciplines)")
	estimateCmd.Flags().StringVar(&estimateGroup, "group", "", "complexity group name (matrix disciplines)")
	estimateCmd.Flags().BoolVar(&estimateJSON, "json", false, "emit JSON instead of text")
	rootCmd.AddCommand(estimateCmd)
}
