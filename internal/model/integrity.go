package model

import "time"

// Severity grades a data-quality finding.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Issue is one data-quality finding over the raw batch.
type Issue struct {
	Category string   `json:"category"`
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
	Count    int      `json:"count"` // number of records affected
}

// Report is the output of a data-integrity pass. The score is a 0-100
// composite meant to signal "inspect before trusting these KPIs"; it never
// blocks aggregation.
type Report struct {
	Issues      []Issue   `json:"issues"`
	Score       float64   `json:"score"`
	GeneratedAt time.Time `json:"generated_at"`
}

// HasErrors reports whether any finding carries error severity.
func (r *Report) HasErrors() bool {
	for _, i := range r.Issues {
		if i.Severity == SeverityError {
			return true
		}
	}
	return false
}
