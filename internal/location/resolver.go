// Package location normalizes free-text location strings from the source
// exports to canonical facility identities.
package location

import (
	"strings"

	"github.com/gulfstar-ops/vesselkpi/internal/model"
	"github.com/gulfstar-ops/vesselkpi/internal/registry"
)

// Resolver maps raw location strings to registry facilities. An unresolved
// location is not an error: callers exclude the record from location-scoped
// views and the integrity pass reports it.
type Resolver struct {
	reg *registry.Registry
}

// NewResolver creates a Resolver over the given registry.
func NewResolver(reg *registry.Registry) *Resolver {
	return &Resolver{reg: reg}
}

// Resolve matches a raw location string against the registry. Matching order:
// exact name match, alias substring match in either direction, then the
// declarative per-facility override rules (qualifier strip with required
// token, and token containment).
func (r *Resolver) Resolve(raw string) (model.Facility, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return model.Facility{}, false
	}

	if f, ok := r.reg.ByName(raw); ok {
		if accepted(f, raw) {
			return f, true
		}
	}

	lower := strings.ToLower(raw)
	for _, f := range r.reg.Facilities() {
		if matchAliases(f, lower) && accepted(f, raw) {
			return f, true
		}
	}

	for _, f := range r.reg.Facilities() {
		if matchOverride(f, raw) {
			return f, true
		}
	}

	return model.Facility{}, false
}

// matchAliases checks substring containment in either direction against the
// facility's aliases. Very short aliases only match exactly, so that an
// abbreviation like "OBH" cannot fire inside an unrelated word.
func matchAliases(f model.Facility, lower string) bool {
	for _, alias := range f.Aliases {
		a := strings.ToLower(strings.TrimSpace(alias))
		if a == "" {
			continue
		}
		if len(a) < 4 {
			if a == lower {
				return true
			}
			continue
		}
		if strings.Contains(lower, a) || strings.Contains(a, lower) {
			return true
		}
	}
	return false
}

// matchOverride applies the facility's declarative special-case rules.
func matchOverride(f model.Facility, raw string) bool {
	lower := strings.ToLower(raw)

	// Qualifier-bearing names ("Mad Dog (Drilling)") match on the stripped
	// name, but only when the raw string itself carries the required token.
	if f.RequiredToken != "" {
		stripped := strings.ToLower(stripQualifier(f.DisplayName))
		if stripped != "" && strings.Contains(lower, stripped) {
			return strings.Contains(lower, strings.ToLower(f.RequiredToken))
		}
		return false
	}

	// Token-containment names ("Na Kika" vs "NaKika") compare alphanumeric
	// runs so spelling and spacing differences across source systems match.
	if f.TokenMatch {
		return strings.Contains(tokens(raw), tokens(f.DisplayName))
	}

	return false
}

// accepted gates an otherwise-positive match through the facility's
// required-token rule, so "Mad Dog" alone never resolves to the drilling entry.
func accepted(f model.Facility, raw string) bool {
	if f.RequiredToken == "" {
		return true
	}
	return strings.Contains(strings.ToLower(raw), strings.ToLower(f.RequiredToken))
}

// stripQualifier removes a trailing parenthetical from a facility name.
func stripQualifier(name string) string {
	if i := strings.Index(name, "("); i > 0 {
		return strings.TrimSpace(name[:i])
	}
	return name
}

// tokens lowercases and strips everything but letters and digits.
func tokens(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if r >= 'a' && r <= 'z' || r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
