package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gulfstar-ops/vesselkpi/internal/config"
	"github.com/gulfstar-ops/vesselkpi/internal/registry"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "vesselkpi",
	Short: "Offshore vessel logistics KPI engine",
	Long:  "Ingests spreadsheet exports of voyage events, manifests, cost allocations and bulk-fluid transfers, and computes drilling-operations KPIs segmented by period and operating location.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

// loadRegistry returns the configured facility registry, falling back to the
// built-in reference set.
func loadRegistry() (*registry.Registry, error) {
	if cfg.Registry.Path == "" {
		return registry.Default(), nil
	}
	return registry.LoadFromFile(cfg.Registry.Path)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
