package main

import (
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gulfstar-ops/vesselkpi/internal/integrity"
	"github.com/gulfstar-ops/vesselkpi/internal/kpi"
	"github.com/gulfstar-ops/vesselkpi/internal/model"
	"github.com/gulfstar-ops/vesselkpi/internal/store"
	"github.com/gulfstar-ops/vesselkpi/pkg/notion"
)

var (
	publishMonth    string
	publishYear     int
	publishYTD      bool
	publishLocation string
	publishSnapshot string
)

var publishCmd = &cobra.Command{
	Use:   "publish",
	Short: "Publish a KPI digest to the Notion database",
	Long: `Publishes one row to the Notion digest database. Either recomputes for
the given period flags or republishes a saved snapshot by ID.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		if cfg.Notion.Token == "" {
			return eris.New("publish: notion.token is not configured")
		}

		var snap *model.Snapshot
		if publishSnapshot != "" {
			st, err := store.Open(ctx, cfg.Store)
			if err != nil {
				return err
			}
			defer st.Close() //nolint:errcheck
			snap, err = st.GetSnapshot(ctx, publishSnapshot)
			if err != nil {
				return err
			}
		} else {
			reg, err := loadRegistry()
			if err != nil {
				return err
			}
			batch, _, err := loadBatch()
			if err != nil {
				return err
			}
			window, err := buildWindow(publishMonth, publishYear, publishYTD)
			if err != nil {
				return err
			}
			set, err := kpi.New(reg).Compute(ctx, batch, kpi.Selection{Window: window, Location: publishLocation})
			if err != nil {
				return eris.Wrap(err, "compute kpis")
			}
			snap = &model.Snapshot{
				Period:    set.Period,
				Location:  set.Location,
				Kpis:      *set,
				Integrity: integrity.NewValidator(reg).Validate(batch),
			}
		}

		client := notion.NewClient(cfg.Notion.Token)
		pageID, err := notion.PublishDigest(ctx, client, cfg.Notion.DigestDB, snap)
		if err != nil {
			return err
		}

		zap.L().Info("digest published",
			zap.String("page_id", pageID),
			zap.String("period", snap.Period),
			zap.String("location", snap.Location),
		)
		fmt.Printf("Published digest page %s\n", pageID)
		return nil
	},
}

func init() {
	publishCmd.Flags().StringVar(&publishMonth, "month", "", "calendar month name (requires --year)")
	publishCmd.Flags().IntVar(&publishYear, "year", 0, "calendar year")
	publishCmd.Flags().BoolVar(&publishYTD, "ytd", false, "year-to-date with the configured reporting lag")
	publishCmd.Flags().StringVar(&publishLocation, "location", "", "facility display name (default all locations)")
	publishCmd.Flags().StringVar(&publishSnapshot, "snapshot", "", "republish a saved snapshot by ID")
	rootCmd.AddCommand(publishCmd)
}
