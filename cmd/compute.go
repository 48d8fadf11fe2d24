package main

import (
	"encoding/json"
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gulfstar-ops/vesselkpi/internal/integrity"
	"github.com/gulfstar-ops/vesselkpi/internal/kpi"
	"github.com/gulfstar-ops/vesselkpi/internal/model"
	"github.com/gulfstar-ops/vesselkpi/internal/store"
)

var (
	computeMonth    string
	computeYear     int
	computeYTD      bool
	computeLocation string
	computeJSON     bool
	computeSave     bool
)

var computeCmd = &cobra.Command{
	Use:   "compute",
	Short: "Compute the KPI set for a period and location",
	Long: `Loads the spreadsheet exports from the data directory and computes the
published KPI set for the selected period and operating location.

Examples:
  # All-time, all locations
  vesselkpi compute

  # One month at one facility
  vesselkpi compute --month March --year 2024 --location "Thunder Horse PDQ"

  # Year-to-date (lagged reference year), persisted as a snapshot
  vesselkpi compute --ytd --save`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		reg, err := loadRegistry()
		if err != nil {
			return err
		}

		batch, _, err := loadBatch()
		if err != nil {
			return err
		}

		window, err := buildWindow(computeMonth, computeYear, computeYTD)
		if err != nil {
			return err
		}

		agg := kpi.New(reg)
		set, err := agg.Compute(ctx, batch, kpi.Selection{Window: window, Location: computeLocation})
		if err != nil {
			return eris.Wrap(err, "compute kpis")
		}

		if computeSave {
			st, err := store.Open(ctx, cfg.Store)
			if err != nil {
				return err
			}
			defer st.Close() //nolint:errcheck
			if err := st.Migrate(ctx); err != nil {
				return err
			}

			report := integrity.NewValidator(reg).Validate(batch)
			snap := &model.Snapshot{
				Period:    set.Period,
				Location:  set.Location,
				Kpis:      *set,
				Integrity: report,
			}
			if err := st.SaveSnapshot(ctx, snap); err != nil {
				return err
			}
			zap.L().Info("snapshot saved", zap.String("id", snap.ID))
		}

		if computeJSON {
			out, err := json.MarshalIndent(set, "", "  ")
			if err != nil {
				return eris.Wrap(err, "marshal kpis")
			}
			fmt.Println(string(out))
			return nil
		}

		fmt.Print(kpi.Render(set))
		return nil
	},
}

func init() {
	computeCmd.Flags().StringVar(&computeMonth, "month", "", "calendar month name (requires --year)")
	computeCmd.Flags().IntVar(&computeYear, "year", 0, "calendar year")
	computeCmd.Flags().BoolVar(&computeYTD, "ytd", false, "year-to-date with the configured reporting lag")
	computeCmd.Flags().StringVar(&computeLocation, "location", "", "facility display name (default all locations)")
	computeCmd.Flags().BoolVar(&computeJSON, "json", false, "emit JSON instead of text")
	computeCmd.Flags().BoolVar(&computeSave, "save", false, "persist the result as a snapshot")
	rootCmd.AddCommand(computeCmd)
}
