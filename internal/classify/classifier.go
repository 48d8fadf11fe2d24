// Package classify decides whether a record belongs to drilling or
// production operations, and how much of its hours drilling can claim.
package classify

import (
	"strings"

	"github.com/gulfstar-ops/vesselkpi/internal/model"
	"github.com/gulfstar-ops/vesselkpi/internal/registry"
)

// Class is the outcome of record classification.
type Class int

const (
	Unclassified Class = iota
	Drilling
	Production
)

// String returns the class label.
func (c Class) String() string {
	switch c {
	case Drilling:
		return "Drilling"
	case Production:
		return "Production"
	default:
		return "Unclassified"
	}
}

// Source records which precedence rule produced the decision. Allocation-code
// decisions are decisive; the rest are fallbacks.
type Source int

const (
	SourceNone Source = iota
	SourceAllocationCode
	SourceDepartment
	SourceProjectType
	SourceLocationHeuristic
)

// Decision is a classification outcome together with the rule that made it.
type Decision struct {
	Class  Class
	Source Source
}

// Classifier applies the ordered classification precedence over the shared
// facility registry. Each rule short-circuits on a decisive answer; a
// production-code match excludes the record from drilling regardless of any
// later signal.
type Classifier struct {
	reg *registry.Registry
}

// NewClassifier creates a Classifier over the given registry.
func NewClassifier(reg *registry.Registry) *Classifier {
	return &Classifier{reg: reg}
}

// Event classifies a voyage event.
func (c *Classifier) Event(e model.VoyageEvent) Decision {
	return c.classify(e.AllocationCode, e.Department, "", "")
}

// Manifest classifies a vessel manifest.
func (c *Classifier) Manifest(m model.VesselManifest) Decision {
	return c.classify(m.AllocationCode, m.Department, "", "")
}

// Allocation classifies a cost-allocation line. Allocation lines are the
// only record type that falls through to the location-name heuristic.
func (c *Classifier) Allocation(l model.CostAllocationLine) Decision {
	return c.classify(l.AllocationCode, l.Department, l.ProjectType, l.EffectiveLocation())
}

func (c *Classifier) classify(code, department, projectType, heuristicLocation string) Decision {
	// 1. Allocation-code lookup. Production wins outright.
	if code != "" {
		switch c.reg.KindOfCode(code) {
		case registry.CodeProduction:
			return Decision{Class: Production, Source: SourceAllocationCode}
		case registry.CodeDrilling:
			return Decision{Class: Drilling, Source: SourceAllocationCode}
		}
	}

	// 2. Department tag.
	if strings.EqualFold(strings.TrimSpace(department), "Drilling") {
		return Decision{Class: Drilling, Source: SourceDepartment}
	}

	// 3. Project-type tag.
	switch strings.ToLower(strings.TrimSpace(projectType)) {
	case "drilling", "completions":
		return Decision{Class: Drilling, Source: SourceProjectType}
	}

	// 4. Location-name heuristic, cost-allocation lines only. A
	// production-indicating token excludes the location from drilling even
	// when a drilling token is also present.
	if heuristicLocation != "" {
		lower := strings.ToLower(heuristicLocation)
		if containsAny(lower, productionTokens...) {
			return Decision{Class: Production, Source: SourceLocationHeuristic}
		}
		if containsAny(lower, drillingTokens...) {
			return Decision{Class: Drilling, Source: SourceLocationHeuristic}
		}
	}

	return Decision{Class: Unclassified, Source: SourceNone}
}

// drillingTokens indicate drilling-rig identity in a free-text location.
var drillingTokens = []string{"drill", "rig", "blackhornet", "blacklion", "invictus", "icemax"}

// productionTokens indicate a production facility and veto the drilling heuristic.
var productionTokens = []string{"prod", "pdq", "fps", "fpu", "platform"}

// containsAny checks if s contains any of the given substrings.
func containsAny(s string, substrs ...string) bool {
	for _, sub := range substrs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
