package kpi

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/gulfstar-ops/vesselkpi/internal/model"
)

// Render formats a KPI set as a plain-text report for terminal output.
func Render(set *model.KpiSet) string {
	p := message.NewPrinter(language.English)
	var b strings.Builder

	fmt.Fprintf(&b, "Period:   %s\n", set.Period)
	fmt.Fprintf(&b, "Location: %s\n\n", set.Location)

	row := func(name string, k model.Kpi, format string) {
		val := p.Sprintf(format, k.Value)
		if k.NotApplicable {
			fmt.Fprintf(&b, "  %-22s %14s\n", name, "n/a")
			return
		}
		trend := "       --"
		if k.HasComparison {
			arrow := "+"
			if k.TrendPercent < 0 {
				arrow = ""
			}
			trend = fmt.Sprintf("%s%.1f%%", arrow, k.TrendPercent)
		}
		fmt.Fprintf(&b, "  %-22s %14s  %9s\n", name, val, trend)
	}

	row("Cargo tons", set.CargoTons, "%.1f")
	row("Lifts per hour", set.LiftsPerHour, "%.2f")
	row("Productive hours", set.ProductiveHours, "%.1f")
	row("Non-productive hours", set.NonProductiveHours, "%.1f")
	row("Productive %", set.ProductivePercent, "%.1f")
	row("Fluid volume (bbl)", set.FluidVolumeBbls, "%.0f")
	row("Cost per ton", set.CostPerTon, "%.2f")
	row("Cost per hour", set.CostPerHour, "%.2f")
	row("Voyages", set.VoyageCount, "%.0f")

	if len(set.FluidByType) > 0 {
		fmt.Fprintf(&b, "\n  Fluid volume by type:\n")
		types := make([]string, 0, len(set.FluidByType))
		for t := range set.FluidByType {
			types = append(types, t)
		}
		sort.Strings(types)
		for _, t := range types {
			fmt.Fprintf(&b, "    %-20s %12s bbl\n", t, p.Sprintf("%.0f", set.FluidByType[t]))
		}
	}

	return b.String()
}
