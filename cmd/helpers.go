package main

import (
	"strings"
	"time"

	"github.com/rotisserie/eris"

	"github.com/gulfstar-ops/vesselkpi/internal/ingest"
	"github.com/gulfstar-ops/vesselkpi/internal/model"
	"github.com/gulfstar-ops/vesselkpi/internal/period"
)

// loadBatch reads the configured data directory into a typed batch.
func loadBatch() (*model.Batch, *ingest.Stats, error) {
	files := ingest.Files{
		Events:      cfg.Data.Events,
		Manifests:   cfg.Data.Manifests,
		Allocations: cfg.Data.Allocations,
		Fluids:      cfg.Data.Fluids,
		Voyages:     cfg.Data.Voyages,
	}
	return ingest.LoadBatch(cfg.Data.Dir, files)
}

// buildWindow turns the period flags into a window. --month requires --year;
// --ytd uses the configured reporting lag; no flags means all-time.
func buildWindow(monthName string, year int, ytd bool) (period.Window, error) {
	switch {
	case ytd:
		return period.CurrentYTD(time.Now(), cfg.Report.LagMonths), nil
	case monthName != "":
		if year == 0 {
			return period.Window{}, eris.New("--month requires --year")
		}
		m, err := parseMonthName(monthName)
		if err != nil {
			return period.Window{}, err
		}
		return period.MonthWindow(m, year), nil
	case year != 0:
		return period.YTDWindow(year), nil
	default:
		return period.AllTimeWindow(), nil
	}
}

func parseMonthName(name string) (time.Month, error) {
	for _, layout := range []string{"January", "Jan", "1"} {
		if t, err := time.Parse(layout, strings.TrimSpace(name)); err == nil {
			return t.Month(), nil
		}
	}
	return 0, eris.Errorf("unrecognized month %q", name)
}
