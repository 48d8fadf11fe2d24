package ingest

import (
	"strings"

	"github.com/gulfstar-ops/vesselkpi/internal/model"
)

// Row types mirror the export headers. All cells arrive as strings; the
// converters below do the typed parsing so a bad cell degrades one record,
// not the file.

type eventRow struct {
	Vessel          string `csv:"Vessel"`
	EventDate       string `csv:"Event Date"`
	Location        string `csv:"Location"`
	MappedLocation  string `csv:"Mapped Location"`
	ParentEvent     string `csv:"Parent Event"`
	Classification  string `csv:"Classification"`
	FinalHours      string `csv:"Final Hours"`
	CostDedicatedTo string `csv:"Cost Dedicated to"`
	LCNumber        string `csv:"LC Number"`
	Department      string `csv:"Department"`
	PortType        string `csv:"Port Type"`
}

func (r eventRow) record() (model.VoyageEvent, bool) {
	if strings.TrimSpace(r.Vessel) == "" && strings.TrimSpace(r.Location) == "" {
		return model.VoyageEvent{}, false
	}
	hours, _ := parseFloat(r.FinalHours)
	return model.VoyageEvent{
		Vessel:          strings.TrimSpace(r.Vessel),
		EventTime:       parseTime(r.EventDate),
		Location:        strings.TrimSpace(r.Location),
		MappedLocation:  strings.TrimSpace(r.MappedLocation),
		ParentEvent:     strings.TrimSpace(r.ParentEvent),
		Classification:  model.EventClassification(strings.TrimSpace(r.Classification)),
		Hours:           hours,
		AllocationCode:  strings.TrimSpace(r.LCNumber),
		CostDedicatedTo: strings.TrimSpace(r.CostDedicatedTo),
		Department:      strings.TrimSpace(r.Department),
		PortType:        strings.ToLower(strings.TrimSpace(r.PortType)),
	}, true
}

type manifestRow struct {
	Vessel       string `csv:"Vessel"`
	ManifestDate string `csv:"Manifest Date"`
	From         string `csv:"From"`
	To           string `csv:"To"`
	DeckTons     string `csv:"Deck Tons"`
	RTTons       string `csv:"RT Tons"`
	Lifts        string `csv:"Lifts"`
	WetBulkBbls  string `csv:"Wet Bulk (bbls)"`
	WetBulkGals  string `csv:"Wet Bulk (gals)"`
	CostCode     string `csv:"Cost Code"`
	Department   string `csv:"Department"`
}

func (r manifestRow) record() (model.VesselManifest, bool) {
	if strings.TrimSpace(r.Vessel) == "" && strings.TrimSpace(r.To) == "" {
		return model.VesselManifest{}, false
	}
	deck, _ := parseFloat(r.DeckTons)
	rt, _ := parseFloat(r.RTTons)
	lifts, _ := parseInt(r.Lifts)
	bbls, _ := parseFloat(r.WetBulkBbls)
	gals, _ := parseFloat(r.WetBulkGals)
	return model.VesselManifest{
		Vessel:         strings.TrimSpace(r.Vessel),
		ManifestTime:   parseTime(r.ManifestDate),
		From:           strings.TrimSpace(r.From),
		To:             strings.TrimSpace(r.To),
		DeckTons:       deck,
		RTTons:         rt,
		Lifts:          lifts,
		WetBulkBbls:    bbls,
		WetBulkGals:    gals,
		AllocationCode: strings.TrimSpace(r.CostCode),
		Department:     strings.TrimSpace(r.Department),
	}, true
}

type allocationRow struct {
	LCNumber    string `csv:"LC Number"`
	RigLocation string `csv:"Rig Location"`
	LocationRef string `csv:"Location Reference"`
	Department  string `csv:"Department"`
	ProjectType string `csv:"Project Type"`
	AllocDays   string `csv:"Alloc (days)"`
	TotalCost   string `csv:"Total Cost"`
	Budgeted    string `csv:"Budgeted Vessel Cost"`
	DailyRate   string `csv:"Vessel Daily Rate"`
	MonthYear   string `csv:"Month-Year"`
	Date        string `csv:"Date"`
}

func (r allocationRow) record() (model.CostAllocationLine, bool) {
	if strings.TrimSpace(r.LCNumber) == "" {
		return model.CostAllocationLine{}, false
	}
	days, _ := parseFloat(r.AllocDays)
	line := model.CostAllocationLine{
		AllocationCode: strings.TrimSpace(r.LCNumber),
		RigLocation:    strings.TrimSpace(r.RigLocation),
		LocationRef:    strings.TrimSpace(r.LocationRef),
		Department:     strings.TrimSpace(r.Department),
		ProjectType:    strings.TrimSpace(r.ProjectType),
		AllocatedDays:  days,
		TotalCost:      optFloat(r.TotalCost),
		BudgetedCost:   optFloat(r.Budgeted),
		DailyRate:      optFloat(r.DailyRate),
	}
	if m, y, ok := parseMonthYear(r.MonthYear); ok {
		line.Month, line.Year = m, y
	}
	if t := parseTime(r.Date); !t.IsZero() {
		line.Date = &t
		if line.Year == 0 {
			line.Month, line.Year = t.Month(), t.Year()
		}
	}
	return line, true
}

type fluidRow struct {
	Vessel          string `csv:"Vessel Name"`
	StartDate       string `csv:"Start Date"`
	Action          string `csv:"Action"`
	AtPort          string `csv:"At Port"`
	DestinationPort string `csv:"Destination Port"`
	PortType        string `csv:"Port Type"`
	QtyBbls         string `csv:"Qty (bbls)"`
	BulkType        string `csv:"Bulk Type"`
	Description     string `csv:"Bulk Description"`
}

func (r fluidRow) record() (model.BulkFluidAction, bool) {
	if strings.TrimSpace(r.Vessel) == "" && strings.TrimSpace(r.BulkType) == "" {
		return model.BulkFluidAction{}, false
	}
	qty, _ := parseFloat(r.QtyBbls)
	drilling, completion := fluidFlags(r.BulkType, r.Description)
	return model.BulkFluidAction{
		Vessel:              strings.TrimSpace(r.Vessel),
		StartTime:           parseTime(r.StartDate),
		Action:              strings.ToLower(strings.TrimSpace(r.Action)),
		OriginPort:          strings.TrimSpace(r.AtPort),
		DestinationPort:     strings.TrimSpace(r.DestinationPort),
		DestinationPortType: strings.ToLower(strings.TrimSpace(r.PortType)),
		VolumeBbls:          qty,
		FluidType:           strings.TrimSpace(r.BulkType),
		IsDrillingFluid:     drilling,
		IsCompletionFluid:   completion,
	}, true
}

// fluidFlags derives the drilling/completion-fluid flags from the bulk type
// and its free-text description.
func fluidFlags(bulkType, description string) (drilling, completion bool) {
	s := strings.ToLower(bulkType + " " + description)
	switch {
	case strings.Contains(s, "completion"), strings.Contains(s, "brine"), strings.Contains(s, "calcium chloride"):
		completion = true
	case strings.Contains(s, "drill"), strings.Contains(s, "mud"), strings.Contains(s, "sobm"), strings.Contains(s, "wbm"), strings.Contains(s, "premix"), strings.Contains(s, "base oil"):
		drilling = true
	}
	return drilling, completion
}

type voyageRow struct {
	Vessel          string `csv:"Vessel"`
	StartDate       string `csv:"Start Date"`
	OriginPort      string `csv:"Origin Port"`
	MainDestination string `csv:"Main Destination"`
	Locations       string `csv:"Locations"`
	Purpose         string `csv:"Voyage Purpose"`
}

func (r voyageRow) record() (model.VoyageRecord, bool) {
	if strings.TrimSpace(r.Vessel) == "" {
		return model.VoyageRecord{}, false
	}
	var stops []string
	for _, s := range strings.Split(r.Locations, "->") {
		if s = strings.TrimSpace(s); s != "" {
			stops = append(stops, s)
		}
	}
	purpose := strings.TrimSpace(r.Purpose)
	return model.VoyageRecord{
		Vessel:             strings.TrimSpace(r.Vessel),
		StartDate:          parseTime(r.StartDate),
		OriginPort:         strings.TrimSpace(r.OriginPort),
		MainDestination:    strings.TrimSpace(r.MainDestination),
		Locations:          stops,
		Purpose:            purpose,
		IncludesDrilling:   strings.EqualFold(purpose, model.PurposeDrilling) || strings.EqualFold(purpose, model.PurposeMixed),
		IncludesProduction: strings.EqualFold(purpose, model.PurposeProduction) || strings.EqualFold(purpose, model.PurposeMixed),
	}, true
}
