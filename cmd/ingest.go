package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Load the spreadsheet exports and report what was read",
	Long: `Dry-run load of the configured data directory. Prints per-file row
counts, the covered date range, and any parse warnings without computing
anything. Useful after dropping a new monthly export into place.`,
	RunE: func(_ *cobra.Command, _ []string) error {
		batch, stats, err := loadBatch()
		if err != nil {
			return err
		}

		fmt.Printf("Voyage events:    %d\n", stats.Events)
		fmt.Printf("Manifests:        %d\n", stats.Manifests)
		fmt.Printf("Cost allocations: %d\n", stats.Allocations)
		fmt.Printf("Fluid actions:    %d\n", stats.Fluids)
		fmt.Printf("Voyages:          %d\n", stats.Voyages)
		fmt.Printf("Skipped rows:     %d\n", stats.Skipped)

		if min, max := batch.DateRange(); !min.IsZero() {
			fmt.Printf("Date range:       %s to %s\n",
				min.Format("2006-01-02"), max.Format("2006-01-02"))
		}

		for _, w := range stats.Warnings {
			zap.L().Warn("ingest warning", zap.String("detail", w))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(ingestCmd)
}
