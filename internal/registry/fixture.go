package registry

import "github.com/gulfstar-ops/vesselkpi/internal/model"

// Default returns the built-in facility and vessel reference set. It mirrors
// the authoritative operating-location list for the Gulf of Mexico program
// and is used whenever no registry fixture path is configured.
func Default() *Registry {
	return New(defaultFacilities, defaultVessels)
}

var defaultFacilities = []model.Facility{
	{
		DisplayName:     "Thunder Horse PDQ",
		LocationName:    "Thunder Horse PDQ",
		Aliases:         []string{"Thunder Horse", "THPDQ", "Thunderhorse"},
		Type:            model.FacilityMixed,
		DrillingCodes:   "10101,10102",
		ProductionCodes: "20101,20102",
		Longitude:       -88.4954,
		Latitude:        28.1902,
	},
	{
		DisplayName:   "Mad Dog (Drilling)",
		LocationName:  "Mad Dog (Drilling)",
		Aliases:       []string{"Mad Dog Drilling", "Mad Dog SPAR Drilling"},
		Type:          model.FacilityDrilling,
		DrillingCodes: "10111,10112",
		// Qualifier-bearing name: "Mad Dog" alone is the production platform.
		// The raw string must itself signal drilling before this entry matches.
		RequiredToken: "drill",
		Longitude:     -90.2706,
		Latitude:      27.1894,
	},
	{
		DisplayName:     "Mad Dog",
		LocationName:    "Mad Dog",
		Aliases:         []string{"Mad Dog SPAR", "MadDog"},
		Type:            model.FacilityProduction,
		ProductionCodes: "20111,20112",
		Longitude:       -90.2706,
		Latitude:        27.1894,
	},
	{
		DisplayName:     "Atlantis PQ",
		LocationName:    "Atlantis PQ",
		Aliases:         []string{"Atlantis"},
		Type:            model.FacilityProduction,
		ProductionCodes: "20121,20122",
		Longitude:       -90.0265,
		Latitude:        27.1954,
	},
	{
		DisplayName:     "Na Kika",
		LocationName:    "Na Kika",
		Aliases:         []string{"NaKika", "Na-Kika", "NAKIKA FPS"},
		Type:            model.FacilityProduction,
		ProductionCodes: "20131",
		// Spelling varies by source system ("Na Kika", "NaKika", "NA KIKA");
		// match on alphanumeric token containment instead of exact strings.
		TokenMatch: true,
		Longitude:  -88.2886,
		Latitude:   28.5214,
	},
	{
		DisplayName:     "Argos",
		LocationName:    "Argos",
		Aliases:         []string{"Argos FPU", "Mad Dog 2"},
		Type:            model.FacilityProduction,
		ProductionCodes: "20141",
		Longitude:       -90.4303,
		Latitude:        27.1511,
	},
	{
		DisplayName:   "Ocean Blackhornet",
		LocationName:  "Ocean Blackhornet",
		Aliases:       []string{"Blackhornet", "OBH"},
		Type:          model.FacilityDrilling,
		DrillingCodes: "10121,10122",
		Longitude:     -89.1121,
		Latitude:      27.8412,
	},
	{
		DisplayName:   "Ocean BlackLion",
		LocationName:  "Ocean BlackLion",
		Aliases:       []string{"BlackLion", "OBL"},
		Type:          model.FacilityDrilling,
		DrillingCodes: "10131,10132",
		Longitude:     -88.9457,
		Latitude:      27.9316,
	},
	{
		DisplayName:   "Deepwater Invictus",
		LocationName:  "Deepwater Invictus",
		Aliases:       []string{"Invictus", "DW Invictus"},
		Type:          model.FacilityDrilling,
		DrillingCodes: "10141",
		Longitude:     -90.1188,
		Latitude:      27.3145,
	},
	{
		DisplayName:   "Deepwater Atlas",
		LocationName:  "Deepwater Atlas",
		Aliases:       []string{"DW Atlas"},
		Type:          model.FacilityDrilling,
		DrillingCodes: "10151",
		Longitude:     -90.4512,
		Latitude:      27.0833,
	},
	{
		DisplayName:   "Island Venture",
		LocationName:  "Island Venture",
		Aliases:       []string{"ISL Venture"},
		Type:          model.FacilityDrilling,
		DrillingCodes: "10161",
		Longitude:     -88.7731,
		Latitude:      28.0457,
	},
	{
		DisplayName:   "Stena IceMAX",
		LocationName:  "Stena IceMAX",
		Aliases:       []string{"IceMAX", "Stena Ice Max"},
		Type:          model.FacilityDrilling,
		DrillingCodes: "10171",
		TokenMatch:    true,
		Longitude:     -89.6642,
		Latitude:      27.6218,
	},
}

var defaultVessels = []model.Vessel{
	{Name: "HOS Achiever", Type: "MPSV", Company: "Hornbeck Offshore"},
	{Name: "HOS Commander", Type: "OSV", Company: "Hornbeck Offshore"},
	{Name: "HOS Warhorse", Type: "OSV", Company: "Hornbeck Offshore"},
	{Name: "Harvey Supporter", Type: "OSV", Company: "Harvey Gulf"},
	{Name: "Harvey Freedom", Type: "OSV", Company: "Harvey Gulf"},
	{Name: "Harvey Champion", Type: "OSV", Company: "Harvey Gulf"},
	{Name: "Jackson Blue", Type: "FSV", Company: "Jackson Offshore"},
	{Name: "Lightning", Type: "FSV", Company: "Jackson Offshore"},
	{Name: "C-Constructor", Type: "MPSV", Company: "Edison Chouest"},
	{Name: "Grant Candies", Type: "OSV", Company: "Otto Candies"},
}
