// Package registry holds the read-only facility and vessel reference data.
// The registry is loaded once at process start; concurrent readers require
// no locking because nothing mutates it afterwards.
package registry

import (
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/gulfstar-ops/vesselkpi/internal/model"
)

// CodeKind says which side of the ledger an allocation code belongs to.
type CodeKind int

const (
	CodeUnknown CodeKind = iota
	CodeDrilling
	CodeProduction
)

// Registry indexes facilities and vessels for constant-time lookups.
type Registry struct {
	facilities []model.Facility
	vessels    []model.Vessel

	byName   map[string]int // lowercased display/location name -> facility index
	byCode   map[string]int // allocation code -> facility index
	codeKind map[string]CodeKind
	vessel   map[string]model.Vessel // lowercased vessel name
}

// registryFile is the on-disk YAML shape.
type registryFile struct {
	Facilities []model.Facility `yaml:"facilities"`
	Vessels    []model.Vessel   `yaml:"vessels"`
}

// New builds an indexed Registry from facility and vessel lists.
func New(facilities []model.Facility, vessels []model.Vessel) *Registry {
	r := &Registry{
		facilities: facilities,
		vessels:    vessels,
		byName:     make(map[string]int),
		byCode:     make(map[string]int),
		codeKind:   make(map[string]CodeKind),
		vessel:     make(map[string]model.Vessel),
	}
	for i, f := range facilities {
		r.byName[strings.ToLower(f.DisplayName)] = i
		r.byName[strings.ToLower(f.LocationName)] = i
		for _, c := range f.DrillingCodeSet() {
			r.byCode[c] = i
			r.codeKind[c] = CodeDrilling
		}
		for _, c := range f.ProductionCodeSet() {
			r.byCode[c] = i
			// A code listed on both sides is treated as production: the
			// production ledger is authoritative for exclusion.
			r.codeKind[c] = CodeProduction
		}
	}
	for _, v := range vessels {
		r.vessel[strings.ToLower(v.Name)] = v
	}
	return r
}

// LoadFromFile reads a YAML registry fixture from disk.
func LoadFromFile(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrap(err, "registry: read fixture")
	}
	var file registryFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, eris.Wrap(err, "registry: unmarshal fixture")
	}
	if len(file.Facilities) == 0 {
		return nil, eris.Errorf("registry: fixture %s lists no facilities", path)
	}
	return New(file.Facilities, file.Vessels), nil
}

// Facilities returns all registered facilities.
func (r *Registry) Facilities() []model.Facility {
	return r.facilities
}

// Vessels returns all registered vessels.
func (r *Registry) Vessels() []model.Vessel {
	return r.vessels
}

// ByName returns the facility whose display or canonical location name
// equals name, case-insensitively.
func (r *Registry) ByName(name string) (model.Facility, bool) {
	i, ok := r.byName[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return model.Facility{}, false
	}
	return r.facilities[i], true
}

// ByAllocationCode returns the facility owning the given allocation code.
func (r *Registry) ByAllocationCode(code string) (model.Facility, bool) {
	i, ok := r.byCode[strings.TrimSpace(code)]
	if !ok {
		return model.Facility{}, false
	}
	return r.facilities[i], true
}

// KindOfCode reports whether an allocation code belongs to the drilling or
// production set of any facility.
func (r *Registry) KindOfCode(code string) CodeKind {
	return r.codeKind[strings.TrimSpace(code)]
}

// KnowsCode reports whether the allocation code appears in the registry at all.
func (r *Registry) KnowsCode(code string) bool {
	_, ok := r.byCode[strings.TrimSpace(code)]
	return ok
}

// VesselByName returns the classification entry for a vessel name.
func (r *Registry) VesselByName(name string) (model.Vessel, bool) {
	v, ok := r.vessel[strings.ToLower(strings.TrimSpace(name))]
	return v, ok
}
