package model

import "strings"

// FacilityType describes what kind of operations a facility hosts.
type FacilityType string

const (
	FacilityDrilling   FacilityType = "Drilling"
	FacilityProduction FacilityType = "Production"
	FacilityMixed      FacilityType = "Mixed"
)

// Facility is a canonical offshore operating location from the facility
// registry. The registry is loaded once at process start and never mutated.
type Facility struct {
	DisplayName     string       `yaml:"display_name" json:"display_name"`
	LocationName    string       `yaml:"location_name" json:"location_name"`
	Aliases         []string     `yaml:"aliases,omitempty" json:"aliases,omitempty"`
	Type            FacilityType `yaml:"type" json:"type"`
	DrillingCodes   string       `yaml:"drilling_codes,omitempty" json:"drilling_codes,omitempty"`     // comma-delimited allocation codes
	ProductionCodes string       `yaml:"production_codes,omitempty" json:"production_codes,omitempty"` // comma-delimited allocation codes
	RequiredToken   string       `yaml:"required_token,omitempty" json:"required_token,omitempty"`     // raw string must contain this token to match a qualifier-bearing name
	TokenMatch      bool         `yaml:"token_match,omitempty" json:"token_match,omitempty"`           // match by token containment instead of full-string equality
	Longitude       float64      `yaml:"longitude,omitempty" json:"longitude,omitempty"`
	Latitude        float64      `yaml:"latitude,omitempty" json:"latitude,omitempty"`
}

// DrillingCodeSet returns the facility's drilling allocation codes as a slice.
func (f Facility) DrillingCodeSet() []string {
	return splitCodes(f.DrillingCodes)
}

// ProductionCodeSet returns the facility's production allocation codes as a slice.
func (f Facility) ProductionCodeSet() []string {
	return splitCodes(f.ProductionCodes)
}

func splitCodes(csv string) []string {
	if csv == "" {
		return nil
	}
	parts := strings.Split(csv, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Vessel is one entry from the vessel classification lookup.
type Vessel struct {
	Name    string `yaml:"name" json:"name"`
	Type    string `yaml:"type" json:"type"` // OSV, FSV, MPSV
	Company string `yaml:"company" json:"company"`
}
