package main

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/meridian-eng/wbs-estimator/internal/report"
	"github.com/meridian-eng/wbs-estimator/internal/store"
)

var exportOutPath string

var exportCmd = &cobra.Command{
	Use:   "export <snapshot-id>",
	Short: "Export a saved snapshot to an XLSX workbook",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := store.Open(cfg.Snapshot.Path)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck
		if err := st.Migrate(cmd.Context()); err != nil {
			return err
		}

		snap, err := st.Get(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if snap == nil {
			return eris.Errorf("snapshot %s not found", args[0])
		}

		out := exportOutPath
		if out == "" {
			out = snap.ProjectName + ".xlsx"
		}
		if err := report.WriteXLSX(out, snap.ProjectName, snap.Estimate); err != nil {
			return err
		}
		zap.L().Info("snapshot exported",
			zap.String("id", snap.ID),
			zap.String("path", out),
		)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutPath, "out", "o", "", "output path (default <project-name>.xlsx)")
	rootCmd.AddCommand(exportCmd)
}
