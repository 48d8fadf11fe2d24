// Package model defines the typed record collections produced by ingestion
// and consumed read-only by the KPI engine. Records are created once per
// upload batch and never mutated afterwards.
package model

import "time"

// EventClassification labels a voyage event as productive or non-productive time.
type EventClassification string

const (
	EventProductive    EventClassification = "Productive"
	EventNonProductive EventClassification = "Non-Productive"
)

// VoyageEvent is one timestamped activity performed by a vessel.
type VoyageEvent struct {
	Vessel          string              `json:"vessel"`
	EventTime       time.Time           `json:"event_time"`
	Location        string              `json:"location"`                  // raw location string from the export
	MappedLocation  string              `json:"mapped_location,omitempty"` // pre-resolved location, when the source provides one
	ParentEvent     string              `json:"parent_event"`              // "Cargo Ops", "Waiting on Installation", "Maneuvering", "Transit"
	Classification  EventClassification `json:"classification"`
	Hours           float64             `json:"hours"`
	AllocationCode  string              `json:"allocation_code,omitempty"`
	CostDedicatedTo string              `json:"cost_dedicated_to,omitempty"` // free text, may carry a trailing "NN%" annotation
	Department      string              `json:"department,omitempty"`
	PortType        string              `json:"port_type,omitempty"` // "rig" or other
}

// EffectiveLocation returns the mapped location when the source resolved one,
// otherwise the raw location string.
func (e VoyageEvent) EffectiveLocation() string {
	if e.MappedLocation != "" {
		return e.MappedLocation
	}
	return e.Location
}

// VesselManifest is one cargo movement record.
type VesselManifest struct {
	Vessel         string    `json:"vessel"`
	ManifestTime   time.Time `json:"manifest_time"`
	From           string    `json:"from"`
	To             string    `json:"to"`
	DeckTons       float64   `json:"deck_tons"`
	RTTons         float64   `json:"rt_tons"` // backhaul (return trip) tonnage
	Lifts          int       `json:"lifts"`
	WetBulkBbls    float64   `json:"wet_bulk_bbls"`
	WetBulkGals    float64   `json:"wet_bulk_gals"`
	AllocationCode string    `json:"allocation_code,omitempty"`
	Department     string    `json:"department,omitempty"`
}

// CostAllocationLine is one line from the cost-allocation ledger. The
// allocation code is the join key shared with events and manifests.
type CostAllocationLine struct {
	AllocationCode string     `json:"allocation_code"`
	RigLocation    string     `json:"rig_location,omitempty"`
	LocationRef    string     `json:"location_ref,omitempty"`
	Department     string     `json:"department,omitempty"`
	ProjectType    string     `json:"project_type,omitempty"`
	AllocatedDays  float64    `json:"allocated_days"`
	TotalCost      *float64   `json:"total_cost,omitempty"`
	BudgetedCost   *float64   `json:"budgeted_cost,omitempty"`
	DailyRate      *float64   `json:"daily_rate,omitempty"`
	Month          time.Month `json:"month"`
	Year           int        `json:"year"`
	Date           *time.Time `json:"date,omitempty"` // explicit date, when the ledger carries one
}

// EffectiveLocation returns the rig location when present, otherwise the
// generic location reference.
func (c CostAllocationLine) EffectiveLocation() string {
	if c.RigLocation != "" {
		return c.RigLocation
	}
	return c.LocationRef
}

// When returns the best available timestamp for the line: the explicit date
// if present, otherwise midnight on the first of its ledger month.
func (c CostAllocationLine) When() time.Time {
	if c.Date != nil {
		return *c.Date
	}
	if c.Year == 0 {
		return time.Time{}
	}
	return time.Date(c.Year, c.Month, 1, 0, 0, 0, 0, time.UTC)
}

// Cost returns the best available cost figure: actual total cost when the
// ledger has one, otherwise the budgeted figure, otherwise zero.
func (c CostAllocationLine) Cost() float64 {
	if c.TotalCost != nil {
		return *c.TotalCost
	}
	if c.BudgetedCost != nil {
		return *c.BudgetedCost
	}
	return 0
}

// FluidAction direction values.
const (
	ActionLoad    = "load"
	ActionOffload = "offload"
)

// BulkFluidAction is one load or offload movement of a bulk fluid. The same
// physical transfer appears twice in the raw feed: a load leg at origin and
// an offload leg at destination.
type BulkFluidAction struct {
	Vessel              string    `json:"vessel"`
	StartTime           time.Time `json:"start_time"`
	Action              string    `json:"action"` // "load" or "offload"
	OriginPort          string    `json:"origin_port"`
	DestinationPort     string    `json:"destination_port"`
	DestinationPortType string    `json:"destination_port_type"` // "rig" or "base"
	VolumeBbls          float64   `json:"volume_bbls"`
	FluidType           string    `json:"fluid_type"`
	IsDrillingFluid     bool      `json:"is_drilling_fluid"`
	IsCompletionFluid   bool      `json:"is_completion_fluid"`
}

// VoyagePurpose values declared on a voyage record.
const (
	PurposeDrilling   = "Drilling"
	PurposeProduction = "Production"
	PurposeMixed      = "Mixed"
	PurposeOther      = "Other"
)

// VoyageRecord is one full voyage from the voyage list export.
type VoyageRecord struct {
	Vessel             string    `json:"vessel"`
	StartDate          time.Time `json:"start_date"`
	OriginPort         string    `json:"origin_port"`
	MainDestination    string    `json:"main_destination"`
	Locations          []string  `json:"locations"` // full location list visited, in order
	Purpose            string    `json:"purpose"`
	IncludesDrilling   bool      `json:"includes_drilling"`
	IncludesProduction bool      `json:"includes_production"`
}

// Batch is one complete upload of record collections. A batch is replaced
// wholesale on the next upload; there is no partial update path.
type Batch struct {
	Events       []VoyageEvent        `json:"events"`
	Manifests    []VesselManifest     `json:"manifests"`
	Allocations  []CostAllocationLine `json:"allocations"`
	FluidActions []BulkFluidAction    `json:"fluid_actions"`
	Voyages      []VoyageRecord       `json:"voyages"`
}

// FluidMovement is a deduplicated, single-counted bulk-fluid transfer
// consolidated from paired load/offload action records.
type FluidMovement struct {
	Vessel             string    `json:"vessel"`
	At                 time.Time `json:"at"` // rounded to the hour for grouping
	Destination        string    `json:"destination"`
	FluidTypes         []string  `json:"fluid_types"`
	VolumeBbls         float64   `json:"volume_bbls"`
	HasDrillingFluid   bool      `json:"has_drilling_fluid"`
	HasCompletionFluid bool      `json:"has_completion_fluid"`
}
