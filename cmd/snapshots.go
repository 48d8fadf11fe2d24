package main

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/gulfstar-ops/vesselkpi/internal/store"
)

var snapshotsLimit int

var snapshotsCmd = &cobra.Command{
	Use:   "snapshots",
	Short: "List saved KPI snapshots",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		st, err := store.Open(ctx, cfg.Store)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck
		if err := st.Migrate(ctx); err != nil {
			return err
		}

		snaps, err := st.ListSnapshots(ctx, snapshotsLimit)
		if err != nil {
			return err
		}
		if len(snaps) == 0 {
			fmt.Println("No snapshots saved.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tCREATED\tPERIOD\tLOCATION\tCARGO TONS\tSCORE")
		for _, s := range snaps {
			score := "-"
			if s.Integrity != nil {
				score = fmt.Sprintf("%.0f", s.Integrity.Score)
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%.1f\t%s\n",
				s.ID, s.CreatedAt.Format("2006-01-02 15:04"),
				s.Period, s.Location, s.Kpis.CargoTons.Value, score)
		}
		return w.Flush()
	},
}

var snapshotsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print one saved snapshot as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := store.Open(ctx, cfg.Store)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		snap, err := st.GetSnapshot(ctx, args[0])
		if err != nil {
			return err
		}

		out, err := json.MarshalIndent(snap, "", "  ")
		if err != nil {
			return eris.Wrap(err, "marshal snapshot")
		}
		fmt.Println(string(out))
		return nil
	},
}

func init() {
	snapshotsCmd.Flags().IntVar(&snapshotsLimit, "limit", 20, "maximum snapshots to list")
	snapshotsCmd.AddCommand(snapshotsShowCmd)
	rootCmd.AddCommand(snapshotsCmd)
}
