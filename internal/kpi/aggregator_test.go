package kpi

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gulfstar-ops/vesselkpi/internal/model"
	"github.com/gulfstar-ops/vesselkpi/internal/period"
	"github.com/gulfstar-ops/vesselkpi/internal/registry"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 12, 0, 0, 0, time.UTC)
}

// testBatch covers March and April 2024 at two facilities.
func testBatch() *model.Batch {
	return &model.Batch{
		Events: []model.VoyageEvent{
			{
				Vessel: "HOS Achiever", EventTime: day(2024, time.March, 5),
				Location: "Ocean Blackhornet", ParentEvent: "Cargo Ops",
				Classification: model.EventProductive, Hours: 6, AllocationCode: "10121",
			},
			{
				Vessel: "HOS Achiever", EventTime: day(2024, time.March, 5),
				Location: "Ocean Blackhornet", ParentEvent: "Waiting on Installation",
				Classification: model.EventNonProductive, Hours: 2, AllocationCode: "10121",
			},
			{
				Vessel: "HOS Commander", EventTime: day(2024, time.March, 12),
				Location: "Thunder Horse PDQ", ParentEvent: "Cargo Ops",
				Classification: model.EventProductive, Hours: 4, AllocationCode: "20101",
			},
			{
				Vessel: "HOS Commander", EventTime: day(2024, time.April, 2),
				Location: "Ocean Blackhornet", ParentEvent: "Cargo Ops",
				Classification: model.EventProductive, Hours: 5, AllocationCode: "10121",
			},
		},
		Manifests: []model.VesselManifest{
			{
				Vessel: "HOS Achiever", ManifestTime: day(2024, time.March, 5),
				To: "Ocean Blackhornet", DeckTons: 100, RTTons: 20, Lifts: 12,
			},
			{
				Vessel: "HOS Commander", ManifestTime: day(2024, time.April, 2),
				To: "Ocean Blackhornet", DeckTons: 60, RTTons: 0, Lifts: 8,
			},
		},
		Allocations: []model.CostAllocationLine{
			{
				AllocationCode: "10121", RigLocation: "Ocean Blackhornet",
				AllocatedDays: 10, TotalCost: f64(120000),
				Month: time.March, Year: 2024,
			},
		},
		FluidActions: []model.BulkFluidAction{
			{
				Vessel: "HOS Achiever", StartTime: day(2024, time.March, 5),
				Action: model.ActionLoad, DestinationPort: "Ocean Blackhornet",
				DestinationPortType: "rig", VolumeBbls: 500, FluidType: "SOBM", IsDrillingFluid: true,
			},
			{
				Vessel: "HOS Achiever", StartTime: day(2024, time.March, 5),
				Action: model.ActionOffload, DestinationPort: "Ocean Blackhornet",
				DestinationPortType: "rig", VolumeBbls: 500, FluidType: "SOBM", IsDrillingFluid: true,
			},
		},
		Voyages: []model.VoyageRecord{
			{
				Vessel: "HOS Achiever", StartDate: day(2024, time.March, 5),
				MainDestination: "Ocean Blackhornet", Purpose: model.PurposeDrilling,
			},
			{
				Vessel: "HOS Commander", StartDate: day(2024, time.April, 2),
				MainDestination: "Ocean Blackhornet", Purpose: model.PurposeMixed,
			},
			{
				Vessel: "Grant Candies", StartDate: day(2024, time.March, 20),
				MainDestination: "Atlantis PQ", Purpose: model.PurposeProduction,
			},
		},
	}
}

func f64(v float64) *float64 { return &v }

func TestComputeMonthWindow(t *testing.T) {
	t.Parallel()

	agg := New(registry.Default())
	set, err := agg.Compute(context.Background(), testBatch(), Selection{
		Window: period.MonthWindow(time.March, 2024),
	})
	require.NoError(t, err)

	// Both March manifests plus nothing from April: 100 + 20 deck/RT tons.
	assert.InDelta(t, 120.0, set.CargoTons.Value, 1e-9)

	// 12 lifts over 6 cargo-ops drilling hours. The Thunder Horse event
	// carries a production code and contributes no hours.
	assert.InDelta(t, 2.0, set.LiftsPerHour.Value, 1e-9)

	assert.InDelta(t, 6.0, set.ProductiveHours.Value, 1e-9)
	assert.InDelta(t, 2.0, set.NonProductiveHours.Value, 1e-9)
	assert.InDelta(t, 75.0, set.ProductivePercent.Value, 1e-9)

	// Load and offload legs of the same transfer count once.
	assert.InDelta(t, 500.0, set.FluidVolumeBbls.Value, 1e-9)
	assert.False(t, set.FluidVolumeBbls.NotApplicable)

	// Production-purpose voyages are excluded from the unscoped count.
	assert.InDelta(t, 1.0, set.VoyageCount.Value, 1e-9)

	assert.InDelta(t, 1000.0, set.CostPerTon.Value, 1e-9)
	assert.Equal(t, "March 2024", set.Period)
	assert.Equal(t, "All Locations", set.Location)
}

func TestComputeLocationScope(t *testing.T) {
	t.Parallel()

	agg := New(registry.Default())
	ctx := context.Background()

	t.Run("scoped to one facility", func(t *testing.T) {
		t.Parallel()
		set, err := agg.Compute(ctx, testBatch(), Selection{
			Window:   period.MonthWindow(time.March, 2024),
			Location: "Ocean Blackhornet",
		})
		require.NoError(t, err)
		assert.InDelta(t, 120.0, set.CargoTons.Value, 1e-9)
		assert.InDelta(t, 6.0, set.ProductiveHours.Value, 1e-9)
		assert.Equal(t, "Ocean Blackhornet", set.Location)
	})

	t.Run("unknown location yields zeros not an error", func(t *testing.T) {
		t.Parallel()
		set, err := agg.Compute(ctx, testBatch(), Selection{
			Window:   period.AllTimeWindow(),
			Location: "Nonexistent Rig",
		})
		require.NoError(t, err)
		assert.Zero(t, set.CargoTons.Value)
		assert.Zero(t, set.VoyageCount.Value)
	})

	t.Run("location-scoped values never exceed the all-locations total", func(t *testing.T) {
		t.Parallel()
		win := period.MonthWindow(time.March, 2024)
		all, err := agg.Compute(ctx, testBatch(), Selection{Window: win})
		require.NoError(t, err)

		var sum float64
		for _, loc := range []string{"Ocean Blackhornet", "Thunder Horse PDQ", "Atlantis PQ"} {
			set, err := agg.Compute(ctx, testBatch(), Selection{Window: win, Location: loc})
			require.NoError(t, err)
			sum += set.CargoTons.Value
		}
		assert.LessOrEqual(t, sum, all.CargoTons.Value+1e-9)
	})
}

func TestComputeEmptyWindow(t *testing.T) {
	t.Parallel()

	agg := New(registry.Default())
	set, err := agg.Compute(context.Background(), testBatch(), Selection{
		Window: period.MonthWindow(time.September, 2024),
	})
	require.NoError(t, err)

	assert.Zero(t, set.CargoTons.Value)
	assert.Zero(t, set.ProductiveHours.Value)
	assert.Zero(t, set.LiftsPerHour.Value, "zero denominator must not produce NaN")
	assert.True(t, set.FluidVolumeBbls.NotApplicable)
}

func TestComputeDeterminism(t *testing.T) {
	t.Parallel()

	agg := New(registry.Default())
	ctx := context.Background()
	sel := Selection{Window: period.AllTimeWindow()}

	a, err := agg.Compute(ctx, testBatch(), sel)
	require.NoError(t, err)
	b, err := agg.Compute(ctx, testBatch(), sel)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestComputeTrend(t *testing.T) {
	t.Parallel()

	agg := New(registry.Default())
	ctx := context.Background()

	t.Run("month compares against the prior month", func(t *testing.T) {
		t.Parallel()
		set, err := agg.Compute(ctx, testBatch(), Selection{
			Window: period.MonthWindow(time.April, 2024),
		})
		require.NoError(t, err)
		require.True(t, set.CargoTons.HasComparison)
		// April 60 tons vs March 120 tons: down 50%.
		assert.InDelta(t, -50.0, set.CargoTons.TrendPercent, 1e-9)
		assert.False(t, set.CargoTons.Favorable)
	})

	t.Run("empty previous window means no comparison", func(t *testing.T) {
		t.Parallel()
		set, err := agg.Compute(ctx, testBatch(), Selection{
			Window: period.MonthWindow(time.March, 2024),
		})
		require.NoError(t, err)
		assert.False(t, set.CargoTons.HasComparison, "February is empty; no baseline is fabricated")
		assert.Zero(t, set.CargoTons.TrendPercent)
	})

	t.Run("all-time compares range halves while keeping full-range values", func(t *testing.T) {
		t.Parallel()
		set, err := agg.Compute(ctx, testBatch(), Selection{
			Window: period.AllTimeWindow(),
		})
		require.NoError(t, err)
		// Headline value stays the full-range total.
		assert.InDelta(t, 180.0, set.CargoTons.Value, 1e-9)
		assert.True(t, set.CargoTons.HasComparison)
		// Second half (April, 60t) vs first half (March, 120t).
		assert.InDelta(t, -50.0, set.CargoTons.TrendPercent, 1e-9)
	})

	t.Run("downward cost trend is favorable", func(t *testing.T) {
		t.Parallel()
		set, err := agg.Compute(ctx, testBatch(), Selection{
			Window: period.MonthWindow(time.April, 2024),
		})
		require.NoError(t, err)
		require.True(t, set.CostPerTon.HasComparison)
		// No April allocation lines: cost drops to zero, which is favorable.
		assert.True(t, set.CostPerTon.Favorable)
	})
}
