package fluid

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gulfstar-ops/vesselkpi/internal/model"
)

func at(hour, min int) time.Time {
	return time.Date(2024, time.March, 15, hour, min, 0, 0, time.UTC)
}

func TestConsolidate(t *testing.T) {
	t.Parallel()

	t.Run("paired load and offload count once", func(t *testing.T) {
		t.Parallel()
		actions := []model.BulkFluidAction{
			{
				Vessel: "HOS Achiever", StartTime: at(8, 0), Action: model.ActionLoad,
				OriginPort: "Port Fourchon", DestinationPort: "Ocean Blackhornet",
				DestinationPortType: "rig", VolumeBbls: 500, FluidType: "SOBM", IsDrillingFluid: true,
			},
			{
				Vessel: "HOS Achiever", StartTime: at(8, 40), Action: model.ActionOffload,
				OriginPort: "Port Fourchon", DestinationPort: "Ocean Blackhornet",
				DestinationPortType: "rig", VolumeBbls: 500, FluidType: "SOBM", IsDrillingFluid: true,
			},
		}

		movements := Consolidate(actions)
		require.Len(t, movements, 1)
		assert.InDelta(t, 500.0, movements[0].VolumeBbls, 1e-9)
		assert.InDelta(t, 500.0, TotalVolume(movements), 1e-9)
		assert.True(t, movements[0].HasDrillingFluid)
	})

	t.Run("non drilling or completion fluid is ignored", func(t *testing.T) {
		t.Parallel()
		actions := []model.BulkFluidAction{
			{
				Vessel: "HOS Commander", StartTime: at(9, 0), Action: model.ActionOffload,
				DestinationPort: "Mad Dog", DestinationPortType: "rig",
				VolumeBbls: 300, FluidType: "Fuel",
			},
		}
		assert.Empty(t, Consolidate(actions))
	})

	t.Run("offloads to base do not count", func(t *testing.T) {
		t.Parallel()
		actions := []model.BulkFluidAction{
			{
				Vessel: "HOS Commander", StartTime: at(9, 0), Action: model.ActionOffload,
				DestinationPort: "Port Fourchon", DestinationPortType: "base",
				VolumeBbls: 300, FluidType: "WBM", IsDrillingFluid: true,
			},
		}
		assert.Empty(t, Consolidate(actions))
	})

	t.Run("distinct hours make distinct movements", func(t *testing.T) {
		t.Parallel()
		actions := []model.BulkFluidAction{
			{
				Vessel: "Harvey Supporter", StartTime: at(10, 15), Action: model.ActionOffload,
				DestinationPort: "Stena IceMAX", DestinationPortType: "rig",
				VolumeBbls: 200, FluidType: "Brine", IsCompletionFluid: true,
			},
			{
				Vessel: "Harvey Supporter", StartTime: at(14, 0), Action: model.ActionOffload,
				DestinationPort: "Stena IceMAX", DestinationPortType: "rig",
				VolumeBbls: 150, FluidType: "Brine", IsCompletionFluid: true,
			},
		}
		movements := Consolidate(actions)
		require.Len(t, movements, 2)
		assert.InDelta(t, 350.0, TotalVolume(movements), 1e-9)
	})

	t.Run("grouping ignores case and whitespace", func(t *testing.T) {
		t.Parallel()
		actions := []model.BulkFluidAction{
			{
				Vessel: "Jackson Blue", StartTime: at(11, 5), Action: "Offload",
				DestinationPort: "Na Kika", DestinationPortType: "RIG",
				VolumeBbls: 100, FluidType: "sobm", IsDrillingFluid: true,
			},
			{
				Vessel: "Jackson Blue", StartTime: at(11, 50), Action: "offload",
				DestinationPort: " na kika ", DestinationPortType: "rig",
				VolumeBbls: 50, FluidType: "SOBM", IsDrillingFluid: true,
			},
		}
		movements := Consolidate(actions)
		require.Len(t, movements, 1)
		assert.InDelta(t, 150.0, movements[0].VolumeBbls, 1e-9)
	})

	t.Run("output order is deterministic regardless of input order", func(t *testing.T) {
		t.Parallel()
		a := model.BulkFluidAction{
			Vessel: "Lightning", StartTime: at(8, 0), Action: model.ActionOffload,
			DestinationPort: "Argos", DestinationPortType: "rig",
			VolumeBbls: 10, FluidType: "WBM", IsDrillingFluid: true,
		}
		b := model.BulkFluidAction{
			Vessel: "Lightning", StartTime: at(12, 0), Action: model.ActionOffload,
			DestinationPort: "Argos", DestinationPortType: "rig",
			VolumeBbls: 20, FluidType: "WBM", IsDrillingFluid: true,
		}

		forward := Consolidate([]model.BulkFluidAction{a, b})
		reverse := Consolidate([]model.BulkFluidAction{b, a})
		assert.Equal(t, forward, reverse)
	})
}

func TestVolumeByType(t *testing.T) {
	t.Parallel()

	movements := []model.FluidMovement{
		{VolumeBbls: 100, FluidTypes: []string{"SOBM"}},
		{VolumeBbls: 50, FluidTypes: []string{"SOBM", "Brine"}},
	}
	byType := VolumeByType(movements)
	assert.InDelta(t, 150.0, byType["SOBM"], 1e-9)
	assert.InDelta(t, 50.0, byType["Brine"], 1e-9)
}
