package main

import (
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/gulfstar-ops/vesselkpi/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the KPI engine over a read-only HTTP API",
	Long: `Loads the batch once and serves it over HTTP for the ops dashboard:

  GET /health
  GET /api/kpis?month=March&year=2024&location=Thunder+Horse+PDQ
  GET /api/integrity
  GET /api/facilities

Restart after dropping new export files to pick them up.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		reg, err := loadRegistry()
		if err != nil {
			return err
		}
		batch, _, err := loadBatch()
		if err != nil {
			return err
		}

		srv := server.New(reg, batch, server.Options{
			Port:           cfg.Server.Port,
			RequestTimeout: time.Duration(cfg.Server.RequestTimeoutSecs) * time.Second,
			LagMonths:      cfg.Report.LagMonths,
		})

		if err := srv.ListenAndServe(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
