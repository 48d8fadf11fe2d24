package ingest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gulfstar-ops/vesselkpi/internal/model"
)

func TestEventRowRecord(t *testing.T) {
	t.Parallel()

	t.Run("full row", func(t *testing.T) {
		t.Parallel()
		row := eventRow{
			Vessel:          "HOS Achiever",
			EventDate:       "2024-03-05 08:00:00",
			Location:        "Ocean Blackhornet",
			ParentEvent:     "Cargo Ops",
			Classification:  "Productive",
			FinalHours:      "6.5",
			CostDedicatedTo: "OBH drilling support 40%",
			LCNumber:        "10121",
			Department:      "Drilling",
			PortType:        "RIG",
		}
		e, ok := row.record()
		require.True(t, ok)
		assert.Equal(t, "HOS Achiever", e.Vessel)
		assert.Equal(t, model.EventProductive, e.Classification)
		assert.InDelta(t, 6.5, e.Hours, 1e-9)
		assert.Equal(t, "10121", e.AllocationCode)
		assert.Equal(t, "rig", e.PortType)
		assert.Equal(t, 2024, e.EventTime.Year())
	})

	t.Run("blank row is skipped", func(t *testing.T) {
		t.Parallel()
		_, ok := eventRow{}.record()
		assert.False(t, ok)
	})

	t.Run("bad hours degrade to zero, not a skip", func(t *testing.T) {
		t.Parallel()
		e, ok := eventRow{Vessel: "HOS Achiever", FinalHours: "n/a"}.record()
		require.True(t, ok)
		assert.Zero(t, e.Hours)
	})
}

func TestAllocationRowRecord(t *testing.T) {
	t.Parallel()

	t.Run("ledger month only", func(t *testing.T) {
		t.Parallel()
		row := allocationRow{
			LCNumber:    "10121",
			RigLocation: "Ocean Blackhornet",
			AllocDays:   "12.5",
			TotalCost:   "$145,000.00",
			MonthYear:   "Mar-24",
		}
		l, ok := row.record()
		require.True(t, ok)
		assert.Equal(t, time.March, l.Month)
		assert.Equal(t, 2024, l.Year)
		require.NotNil(t, l.TotalCost)
		assert.InDelta(t, 145000.0, *l.TotalCost, 1e-9)
		assert.Nil(t, l.BudgetedCost)
		assert.Nil(t, l.Date)
		assert.Equal(t, time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC), l.When())
	})

	t.Run("explicit date backfills the ledger month", func(t *testing.T) {
		t.Parallel()
		row := allocationRow{LCNumber: "10121", Date: "2024-04-15"}
		l, ok := row.record()
		require.True(t, ok)
		require.NotNil(t, l.Date)
		assert.Equal(t, time.April, l.Month)
		assert.Equal(t, 2024, l.Year)
	})

	t.Run("missing LC number is skipped", func(t *testing.T) {
		t.Parallel()
		_, ok := allocationRow{RigLocation: "Ocean Blackhornet"}.record()
		assert.False(t, ok)
	})
}

func TestFluidRowRecord(t *testing.T) {
	t.Parallel()

	t.Run("drilling fluid flags", func(t *testing.T) {
		t.Parallel()
		row := fluidRow{
			Vessel:          "HOS Achiever",
			StartDate:       "2024-03-05",
			Action:          "Offload",
			DestinationPort: "Ocean Blackhornet",
			PortType:        "Rig",
			QtyBbls:         "500",
			BulkType:        "SOBM",
		}
		f, ok := row.record()
		require.True(t, ok)
		assert.Equal(t, "offload", f.Action)
		assert.Equal(t, "rig", f.DestinationPortType)
		assert.True(t, f.IsDrillingFluid)
		assert.False(t, f.IsCompletionFluid)
	})

	t.Run("completion fluid wins over drilling keywords", func(t *testing.T) {
		t.Parallel()
		drilling, completion := fluidFlags("Completion Brine", "drill-in fluid")
		assert.False(t, drilling)
		assert.True(t, completion)
	})

	t.Run("neutral bulk types carry no flags", func(t *testing.T) {
		t.Parallel()
		drilling, completion := fluidFlags("Diesel", "fuel transfer")
		assert.False(t, drilling)
		assert.False(t, completion)
	})
}

func TestVoyageRowRecord(t *testing.T) {
	t.Parallel()

	row := voyageRow{
		Vessel:          "HOS Achiever",
		StartDate:       "2024-03-05",
		OriginPort:      "Port Fourchon",
		MainDestination: "Ocean Blackhornet",
		Locations:       "Port Fourchon -> Ocean Blackhornet -> Thunder Horse PDQ",
		Purpose:         "Mixed",
	}
	v, ok := row.record()
	require.True(t, ok)
	assert.Equal(t, []string{"Port Fourchon", "Ocean Blackhornet", "Thunder Horse PDQ"}, v.Locations)
	assert.True(t, v.IncludesDrilling)
	assert.True(t, v.IncludesProduction)
}
