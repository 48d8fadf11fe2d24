// Package kpi turns a raw record batch and a (period, location) selection
// into the published KPI set. Compute is pure: identical inputs always
// produce identical outputs, with no retained state between calls.
package kpi

import (
	"context"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/gulfstar-ops/vesselkpi/internal/classify"
	"github.com/gulfstar-ops/vesselkpi/internal/fluid"
	"github.com/gulfstar-ops/vesselkpi/internal/location"
	"github.com/gulfstar-ops/vesselkpi/internal/model"
	"github.com/gulfstar-ops/vesselkpi/internal/period"
	"github.com/gulfstar-ops/vesselkpi/internal/registry"
)

// Selection is the only external control surface into the engine.
type Selection struct {
	Window   period.Window
	Location string // facility display name; empty means all locations
}

// Aggregator orchestrates filtering, classification, apportionment,
// deduplication and aggregation over an immutable batch.
type Aggregator struct {
	reg        *registry.Registry
	resolver   *location.Resolver
	classifier *classify.Classifier
}

// New creates an Aggregator over the given registry.
func New(reg *registry.Registry) *Aggregator {
	return &Aggregator{
		reg:        reg,
		resolver:   location.NewResolver(reg),
		classifier: classify.NewClassifier(reg),
	}
}

// Compute produces the KPI set for the selection, including trend against
// the previous comparable period. It never fails on data quality: malformed
// records are excluded and surfaced through the integrity report instead.
func (a *Aggregator) Compute(ctx context.Context, batch *model.Batch, sel Selection) (*model.KpiSet, error) {
	cur, err := a.computeValues(ctx, batch, sel)
	if err != nil {
		return nil, err
	}

	basis, err := a.trendBasis(ctx, batch, sel, cur)
	if err != nil {
		return nil, err
	}

	set := assemble(cur, basis)
	set.Period = sel.Window.String()
	set.Location = sel.Location
	if set.Location == "" {
		set.Location = "All Locations"
	}

	zap.L().Debug("kpi: compute complete",
		zap.String("period", set.Period),
		zap.String("location", set.Location),
		zap.Int("records", cur.RecordCount),
		zap.Bool("has_comparison", basis.Has),
	)

	return set, nil
}

// trendBasis is the pair of value sets a trend is computed over. Headline
// values always come from the selection itself; the trend may compare a
// different pair, as under an all-time selection.
type trendBasis struct {
	Current  values
	Previous values
	Has      bool
}

// trendBasis computes the comparison pair: current selection vs. the prior
// month for a month window, vs. the prior year for YTD, and second half vs.
// first half of the available date range for all-time. An empty previous
// window yields Has=false; no baseline is ever fabricated.
func (a *Aggregator) trendBasis(ctx context.Context, batch *model.Batch, sel Selection, cur values) (trendBasis, error) {
	if prevWin, ok := sel.Window.Previous(); ok {
		prev, err := a.computeValues(ctx, batch, Selection{Window: prevWin, Location: sel.Location})
		if err != nil {
			return trendBasis{}, err
		}
		return trendBasis{Current: cur, Previous: prev, Has: prev.RecordCount > 0}, nil
	}

	if sel.Window.Kind != period.AllTime {
		return trendBasis{Current: cur}, nil
	}

	min, max := batch.DateRange()
	first, second, ok := period.Halves(min, max)
	if !ok {
		return trendBasis{Current: cur}, nil
	}

	firstVals, err := a.computeValues(ctx, batch, Selection{Window: first, Location: sel.Location})
	if err != nil {
		return trendBasis{}, err
	}
	secondVals, err := a.computeValues(ctx, batch, Selection{Window: second, Location: sel.Location})
	if err != nil {
		return trendBasis{}, err
	}
	return trendBasis{
		Current:  secondVals,
		Previous: firstVals,
		Has:      firstVals.RecordCount > 0,
	}, nil
}

// filtered holds the period- and location-filtered view of a batch. All
// slices are fresh copies of record values; the source batch is never
// touched.
type filtered struct {
	Events       []model.VoyageEvent
	Manifests    []model.VesselManifest
	Allocations  []model.CostAllocationLine
	FluidActions []model.BulkFluidAction
	Voyages      []model.VoyageRecord
}

// filterBatch applies the period window and, when a location is selected,
// the resolver-based location match for each record type. Records whose
// location cannot be resolved are excluded from scoped views, never failed.
func (a *Aggregator) filterBatch(batch *model.Batch, sel Selection) filtered {
	var target model.Facility
	scoped := sel.Location != ""
	if scoped {
		f, ok := a.reg.ByName(sel.Location)
		if !ok {
			f, ok = a.resolver.Resolve(sel.Location)
		}
		if !ok {
			// Unknown requested location: nothing can match it.
			return filtered{}
		}
		target = f
	}

	matches := func(raw string) bool {
		if !scoped {
			return true
		}
		f, ok := a.resolver.Resolve(raw)
		return ok && f.DisplayName == target.DisplayName
	}

	var out filtered
	for _, e := range batch.Events {
		if sel.Window.Contains(e.EventTime) && matches(e.EffectiveLocation()) {
			out.Events = append(out.Events, e)
		}
	}
	for _, m := range batch.Manifests {
		if sel.Window.Contains(m.ManifestTime) && matches(m.To) {
			out.Manifests = append(out.Manifests, m)
		}
	}
	for _, l := range batch.Allocations {
		if sel.Window.Contains(l.When()) && matches(l.EffectiveLocation()) {
			out.Allocations = append(out.Allocations, l)
		}
	}
	for _, f := range batch.FluidActions {
		if sel.Window.Contains(f.StartTime) && matches(f.DestinationPort) {
			out.FluidActions = append(out.FluidActions, f)
		}
	}
	for _, v := range batch.Voyages {
		if !sel.Window.Contains(v.StartDate) {
			continue
		}
		if scoped {
			if !a.voyageVisits(v, target) {
				continue
			}
		} else if !strings.EqualFold(v.Purpose, model.PurposeDrilling) && !strings.EqualFold(v.Purpose, model.PurposeMixed) {
			continue
		}
		out.Voyages = append(out.Voyages, v)
	}
	return out
}

// voyageVisits reports whether any stop on the voyage resolves to the target
// facility.
func (a *Aggregator) voyageVisits(v model.VoyageRecord, target model.Facility) bool {
	stops := append([]string{v.MainDestination}, v.Locations...)
	for _, s := range stops {
		if f, ok := a.resolver.Resolve(s); ok && f.DisplayName == target.DisplayName {
			return true
		}
	}
	return false
}

// computeValues runs the full engine pass for one selection. The four KPI
// groups depend only on the filtered batch, not on each other, so they run
// concurrently and join before returning.
func (a *Aggregator) computeValues(ctx context.Context, batch *model.Batch, sel Selection) (values, error) {
	fb := a.filterBatch(batch, sel)

	var cargo cargoValues
	var hours hoursValues
	var cost costValues
	var fluids fluidValues

	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		cargo = computeCargo(fb.Manifests)
		return nil
	})
	g.Go(func() error {
		hours = a.computeHours(fb.Events)
		return nil
	})
	g.Go(func() error {
		cost = a.computeCost(fb.Allocations)
		return nil
	})
	g.Go(func() error {
		fluids = computeFluids(fb.FluidActions)
		return nil
	})
	if err := g.Wait(); err != nil {
		return values{}, err
	}

	return values{
		CargoTons:          cargo.Tons,
		Lifts:              cargo.Lifts,
		CargoOpsHours:      hours.CargoOps,
		ProductiveHours:    hours.Productive,
		NonProductiveHours: hours.NonProductive,
		TotalHours:         hours.Total,
		TotalCost:          cost.Total,
		FluidBbls:          fluids.Total,
		FluidByType:        fluids.ByType,
		MovementCount:      fluids.Movements,
		VoyageCount:        len(fb.Voyages),
		RecordCount: len(fb.Events) + len(fb.Manifests) + len(fb.Allocations) +
			len(fb.FluidActions) + len(fb.Voyages),
	}, nil
}

type cargoValues struct {
	Tons  float64
	Lifts float64
}

func computeCargo(manifests []model.VesselManifest) cargoValues {
	var v cargoValues
	for _, m := range manifests {
		v.Tons += m.DeckTons + m.RTTons
		v.Lifts += float64(m.Lifts)
	}
	return v
}

type hoursValues struct {
	CargoOps      float64
	Productive    float64
	NonProductive float64
	Total         float64
}

// computeHours classifies each event and apportions its hours. Production
// and unclassified events contribute nothing to the drilling hour KPIs.
func (a *Aggregator) computeHours(events []model.VoyageEvent) hoursValues {
	var v hoursValues
	for _, e := range events {
		dec := a.classifier.Event(e)
		if dec.Class != classify.Drilling {
			continue
		}
		h := classify.Apportion(dec, e.CostDedicatedTo, e.Hours)
		if h <= 0 {
			continue
		}
		v.Total += h
		if strings.EqualFold(strings.TrimSpace(e.ParentEvent), "Cargo Ops") {
			v.CargoOps += h
		}
		if e.Classification == model.EventProductive {
			v.Productive += h
		} else {
			v.NonProductive += h
		}
	}
	return v
}

type costValues struct {
	Total float64
	Days  float64
}

func (a *Aggregator) computeCost(lines []model.CostAllocationLine) costValues {
	var v costValues
	for _, l := range lines {
		if a.classifier.Allocation(l).Class != classify.Drilling {
			continue
		}
		v.Total += l.Cost()
		v.Days += l.AllocatedDays
	}
	return v
}

type fluidValues struct {
	Total     float64
	ByType    map[string]float64
	Movements int
}

func computeFluids(actions []model.BulkFluidAction) fluidValues {
	movements := fluid.Consolidate(actions)
	return fluidValues{
		Total:     fluid.TotalVolume(movements),
		ByType:    fluid.VolumeByType(movements),
		Movements: len(movements),
	}
}
