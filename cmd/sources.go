package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/meridian-eng/wbs-estimator/internal/benchmark"
)

var sourcesCmd = &cobra.Command{
	Use:   "sources",
	Short: "Load benchmark sources and report per-discipline coverage",
	RunE: func(cmd *cobra.Command, args []string) error {
		repo := buildRepository()
		if err := repo.Load(cmd.Context()); err != nil {
			return err
		}

		fmt.Printf("%-20s %-28s %8s %12s %10s\n", "ID", "Discipline", "Projects", "DefaultRate", "Source")
		for _, cfg := range benchmark.Disciplines() {
			b := repo.GetSync(cfg.ID)
			if b == nil {
				fmt.Printf("%-20s %-28s %8s\n", cfg.ID, cfg.DisplayName, "-")
				continue
			}
			src := b.SourceName
			if src == "" {
				src = "loaded"
			}
			fmt.Printf("%-20s %-28s %8d %12.4f %10s\n", cfg.ID, cfg.DisplayName, len(b.Projects), b.DefaultRate, src)
		}

		if warns := repo.Warnings(); len(warns) > 0 {
			fmt.Fprintln(os.Stderr, "\nwarnings:")
			for _, w := range warns {
				fmt.Fprintln(os.Stderr, "  "+w)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(sourcesCmd)
}
