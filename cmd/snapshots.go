package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/meridian-eng/wbs-estimator/internal/store"
)

var snapshotsCmd = &cobra.Command{
	Use:   "snapshots",
	Short: "List saved estimate snapshots",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := store.Open(cfg.Snapshot.Path)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck
		if err := st.Migrate(cmd.Context()); err != nil {
			return err
		}

		metas, err := st.List(cmd.Context())
		if err != nil {
			return err
		}
		for _, m := range metas {
			fmt.Printf("%s  %-30s %8d MH  %s\n",
				m.ID, m.ProjectName, m.TotalManHours, m.CreatedAt.Format("2006-01-02 15:04"))
		}
		return nil
	},
}

var snapshotShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print one saved snapshot as JSON",
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
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(snap)
	},
}

func init() {
	snapshotsCmd.AddCommand(snapshotShowCmd)
	rootCmd.AddCommand(snapshotsCmd)
}
