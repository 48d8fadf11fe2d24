package model

import "time"

// Kpi is one published metric with its trend against the previous
// comparable period.
type Kpi struct {
	Value         float64 `json:"value"`
	TrendPercent  float64 `json:"trend_percent"`
	HasComparison bool    `json:"has_comparison"` // false when the previous window held no records
	Favorable     bool    `json:"favorable"`      // whether the trend direction is a good sign
	NotApplicable bool    `json:"not_applicable"` // set when the metric has no meaningful value for the selection
}

// KpiSet is the full published KPI surface for one (period, location)
// selection. All values derive deterministically from the filtered batch.
type KpiSet struct {
	CargoTons          Kpi `json:"cargo_tons"`
	LiftsPerHour       Kpi `json:"lifts_per_hour"`
	ProductiveHours    Kpi `json:"productive_hours"`
	NonProductiveHours Kpi `json:"non_productive_hours"`
	ProductivePercent  Kpi `json:"productive_percent"`
	FluidVolumeBbls    Kpi `json:"fluid_volume_bbls"`
	CostPerTon         Kpi `json:"cost_per_ton"`
	CostPerHour        Kpi `json:"cost_per_hour"`
	VoyageCount        Kpi `json:"voyage_count"`

	// FluidByType breaks consolidated movement volume down by bulk-fluid type.
	FluidByType map[string]float64 `json:"fluid_by_type,omitempty"`

	Period   string `json:"period"`
	Location string `json:"location"`
}

// Snapshot is a persisted KPI computation, kept for later review.
type Snapshot struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	Period    string    `json:"period"`
	Location  string    `json:"location"`
	Kpis      KpiSet    `json:"kpis"`
	Integrity *Report   `json:"integrity,omitempty"`
}
