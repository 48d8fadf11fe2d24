// Package fluid consolidates paired load/offload bulk-fluid action records
// into single-counted movements.
package fluid

import (
	"sort"
	"strings"
	"time"

	"github.com/gulfstar-ops/vesselkpi/internal/model"
)

// Consolidate turns raw bulk-fluid actions into deduplicated movements.
//
// The raw feed carries the same physical transfer twice: a load leg at the
// origin and an offload leg at the destination. Summing both legs doubles the
// true volume, so only offload-direction, rig-destined legs contribute
// volume. This mirrors the external ledger's convention: deliveries to a rig
// count, the load-at-base leg does not.
//
// Only actions flagged as drilling fluid or completion fluid are considered.
// Actions are grouped by (vessel, hour, fluid type, destination) and one
// movement is emitted per group.
func Consolidate(actions []model.BulkFluidAction) []model.FluidMovement {
	type key struct {
		vessel      string
		at          time.Time
		fluidType   string
		destination string
	}

	groups := make(map[key]*model.FluidMovement)
	var order []key

	for _, a := range actions {
		if !a.IsDrillingFluid && !a.IsCompletionFluid {
			continue
		}
		if !strings.EqualFold(strings.TrimSpace(a.DestinationPortType), "rig") {
			continue
		}

		k := key{
			vessel:      strings.TrimSpace(a.Vessel),
			at:          a.StartTime.Truncate(time.Hour),
			fluidType:   strings.ToLower(strings.TrimSpace(a.FluidType)),
			destination: strings.ToLower(strings.TrimSpace(a.DestinationPort)),
		}

		mv, ok := groups[k]
		if !ok {
			mv = &model.FluidMovement{
				Vessel:      k.vessel,
				At:          k.at,
				Destination: strings.TrimSpace(a.DestinationPort),
			}
			groups[k] = mv
			order = append(order, k)
		}

		// Only the offload leg carries countable volume.
		if strings.EqualFold(strings.TrimSpace(a.Action), model.ActionOffload) && a.VolumeBbls > 0 {
			mv.VolumeBbls += a.VolumeBbls
		}

		if ft := strings.TrimSpace(a.FluidType); ft != "" && !containsFold(mv.FluidTypes, ft) {
			mv.FluidTypes = append(mv.FluidTypes, ft)
		}
		if a.IsDrillingFluid {
			mv.HasDrillingFluid = true
		}
		if a.IsCompletionFluid {
			mv.HasCompletionFluid = true
		}
	}

	out := make([]model.FluidMovement, 0, len(order))
	for _, k := range order {
		out = append(out, *groups[k])
	}

	// Deterministic output regardless of input order.
	sort.Slice(out, func(i, j int) bool {
		if !out[i].At.Equal(out[j].At) {
			return out[i].At.Before(out[j].At)
		}
		if out[i].Vessel != out[j].Vessel {
			return out[i].Vessel < out[j].Vessel
		}
		return out[i].Destination < out[j].Destination
	})

	return out
}

// TotalVolume sums consolidated movement volume in barrels.
func TotalVolume(movements []model.FluidMovement) float64 {
	var total float64
	for _, m := range movements {
		total += m.VolumeBbls
	}
	return total
}

// VolumeByType breaks movement volume down by bulk-fluid type label. A
// movement carrying several labels is attributed to each in full; the
// breakdown is a reporting aid, not an additive partition.
func VolumeByType(movements []model.FluidMovement) map[string]float64 {
	out := make(map[string]float64)
	for _, m := range movements {
		for _, ft := range m.FluidTypes {
			out[ft] += m.VolumeBbls
		}
	}
	return out
}

func containsFold(list []string, s string) bool {
	for _, v := range list {
		if strings.EqualFold(v, s) {
			return true
		}
	}
	return false
}
