package kpi

import "github.com/gulfstar-ops/vesselkpi/internal/model"

// values is the intermediate aggregate a KPI set is assembled from. One is
// computed per window the engine evaluates (current, previous, range halves).
type values struct {
	CargoTons          float64
	Lifts              float64
	CargoOpsHours      float64
	ProductiveHours    float64
	NonProductiveHours float64
	TotalHours         float64
	TotalCost          float64
	FluidBbls          float64
	FluidByType        map[string]float64
	MovementCount      int
	VoyageCount        int
	RecordCount        int
}

func (v values) liftsPerHour() float64 {
	return safeDiv(v.Lifts, v.CargoOpsHours)
}

func (v values) productivePercent() float64 {
	return safeDiv(v.ProductiveHours, v.TotalHours) * 100
}

func (v values) costPerTon() float64 {
	return safeDiv(v.TotalCost, v.CargoTons)
}

func (v values) costPerHour() float64 {
	return safeDiv(v.TotalCost, v.TotalHours)
}

// assemble builds the published KPI set from the headline values and the
// trend basis. Every ratio is guarded: a zero denominator yields zero, never
// NaN or infinity.
func assemble(cur values, basis trendBasis) *model.KpiSet {
	set := &model.KpiSet{
		CargoTons:          makeKpi(cur.CargoTons, basis.Current.CargoTons, basis.Previous.CargoTons, basis.Has, true),
		LiftsPerHour:       makeKpi(cur.liftsPerHour(), basis.Current.liftsPerHour(), basis.Previous.liftsPerHour(), basis.Has, true),
		ProductiveHours:    makeKpi(cur.ProductiveHours, basis.Current.ProductiveHours, basis.Previous.ProductiveHours, basis.Has, true),
		NonProductiveHours: makeKpi(cur.NonProductiveHours, basis.Current.NonProductiveHours, basis.Previous.NonProductiveHours, basis.Has, false),
		ProductivePercent:  makeKpi(cur.productivePercent(), basis.Current.productivePercent(), basis.Previous.productivePercent(), basis.Has, true),
		FluidVolumeBbls:    makeKpi(cur.FluidBbls, basis.Current.FluidBbls, basis.Previous.FluidBbls, basis.Has, true),
		CostPerTon:         makeKpi(cur.costPerTon(), basis.Current.costPerTon(), basis.Previous.costPerTon(), basis.Has, false),
		CostPerHour:        makeKpi(cur.costPerHour(), basis.Current.costPerHour(), basis.Previous.costPerHour(), basis.Has, false),
		VoyageCount:        makeKpi(float64(cur.VoyageCount), float64(basis.Current.VoyageCount), float64(basis.Previous.VoyageCount), basis.Has, true),
		FluidByType:        cur.FluidByType,
	}

	// Fluid-volume KPIs carry an explicit not-applicable marker when no
	// consolidated movement exists, instead of a misleading zero.
	if cur.MovementCount == 0 {
		set.FluidVolumeBbls.NotApplicable = true
	}

	return set
}

// makeKpi derives one published metric. upIsGood states which trend
// direction is favorable for this KPI.
func makeKpi(value, trendCur, trendPrev float64, has bool, upIsGood bool) model.Kpi {
	k := model.Kpi{Value: value}
	if !has {
		return k
	}
	k.HasComparison = true
	k.TrendPercent = trendPct(trendCur, trendPrev)
	if upIsGood {
		k.Favorable = k.TrendPercent >= 0
	} else {
		k.Favorable = k.TrendPercent <= 0
	}
	return k
}

// trendPct is (current - previous) / previous * 100, defined as 0 when the
// previous value is 0.
func trendPct(cur, prev float64) float64 {
	if prev == 0 {
		return 0
	}
	return (cur - prev) / prev * 100
}

// safeDiv divides, yielding 0 on a zero denominator.
func safeDiv(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	return num / den
}
