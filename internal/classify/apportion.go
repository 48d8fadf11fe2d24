package classify

import (
	"regexp"
	"strconv"
	"strings"
)

// trailingPercent matches a "NN%" or "NN.N%" token at the end of a
// cost-dedication description, e.g. "Thunder Horse PDQ drilling support 40%".
var trailingPercent = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*%\s*$`)

// ParseTrailingPercent extracts a percentage annotation from the end of a
// free-text allocation description. Values outside (0, 100] are rejected.
func ParseTrailingPercent(s string) (float64, bool) {
	m := trailingPercent.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return 0, false
	}
	pct, err := strconv.ParseFloat(m[1], 64)
	if err != nil || pct <= 0 || pct > 100 {
		return 0, false
	}
	return pct, true
}

// Apportion computes the drilling-attributable share of a record's hours.
//
// A decisive drilling classification via allocation code takes the record's
// percentage annotation when one is present, otherwise full attribution. A
// fallback classification applies the annotation when present and otherwise
// attributes the full base. Non-drilling records contribute nothing. The
// result never exceeds baseHours and is never negative.
func Apportion(d Decision, costDedication string, baseHours float64) float64 {
	if d.Class != Drilling || baseHours <= 0 {
		return 0
	}

	pct, ok := ParseTrailingPercent(costDedication)
	if !ok {
		return baseHours
	}

	h := baseHours * pct / 100
	if h > baseHours {
		h = baseHours
	}
	if h < 0 {
		h = 0
	}
	return h
}
