// Package integrity runs an independent data-quality pass over a raw batch.
// Findings never block aggregation; the score only signals "inspect before
// trusting these KPIs".
package integrity

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/gulfstar-ops/vesselkpi/internal/location"
	"github.com/gulfstar-ops/vesselkpi/internal/model"
	"github.com/gulfstar-ops/vesselkpi/internal/registry"
)

// Issue categories.
const (
	CategoryDateAnomaly      = "date_anomaly"
	CategoryMonthCollapse    = "month_collapse"
	CategoryUnknownCode      = "unknown_allocation_code"
	CategoryUnresolvedLoc    = "unresolved_location"
	CategoryMissingTimestamp = "missing_timestamp"
	CategoryNegativeMeasure  = "negative_measure"
)

// singleMonthThreshold is the minimum event count before a dataset collapsing
// onto one calendar month is flagged as a likely upstream parsing bug.
const singleMonthThreshold = 50

// Validator checks a batch against the facility registry.
type Validator struct {
	reg      *registry.Registry
	resolver *location.Resolver
	now      func() time.Time
}

// NewValidator creates a Validator over the given registry.
func NewValidator(reg *registry.Registry) *Validator {
	return &Validator{
		reg:      reg,
		resolver: location.NewResolver(reg),
		now:      time.Now,
	}
}

// Validate runs every check and produces the integrity report.
func (v *Validator) Validate(batch *model.Batch) *model.Report {
	var issues []model.Issue

	for _, check := range []func(*model.Batch) []model.Issue{
		v.checkDateAnomalies,
		v.checkMonthCollapse,
		v.checkUnknownCodes,
		v.checkUnresolvedLocations,
		v.checkMissingTimestamps,
		v.checkNegativeMeasures,
	} {
		issues = append(issues, check(batch)...)
	}

	report := &model.Report{
		Issues:      issues,
		Score:       score(issues, batch.Size()),
		GeneratedAt: v.now().UTC(),
	}

	zap.L().Info("integrity: validation complete",
		zap.Int("records", batch.Size()),
		zap.Int("issues", len(issues)),
		zap.Float64("score", report.Score),
	)

	return report
}

// checkDateAnomalies flags timestamps outside the plausible window, the
// classic symptom of a two-digit year misparsed upstream ("25" read as 1925
// or 0025).
func (v *Validator) checkDateAnomalies(batch *model.Batch) []model.Issue {
	maxYear := v.now().Year() + 1
	bad := 0
	each(batch, func(t time.Time) {
		if !t.IsZero() && (t.Year() < 2000 || t.Year() > maxYear) {
			bad++
		}
	})
	if bad == 0 {
		return nil
	}
	return []model.Issue{{
		Category: CategoryDateAnomaly,
		Severity: model.SeverityError,
		Message:  fmt.Sprintf("%d records carry timestamps outside 2000-%d; check upstream date parsing (two-digit years)", bad, maxYear),
		Count:    bad,
	}}
}

// checkMonthCollapse flags a dataset whose events all fall in one calendar
// month. With real operational data this indicates the export's date column
// was parsed into a constant, not that operations really stopped.
func (v *Validator) checkMonthCollapse(batch *model.Batch) []model.Issue {
	if len(batch.Events) < singleMonthThreshold {
		return nil
	}
	months := make(map[string]struct{})
	for _, e := range batch.Events {
		if e.EventTime.IsZero() {
			continue
		}
		months[e.EventTime.Format("2006-01")] = struct{}{}
	}
	if len(months) != 1 {
		return nil
	}
	var only string
	for m := range months {
		only = m
	}
	return []model.Issue{{
		Category: CategoryMonthCollapse,
		Severity: model.SeverityError,
		Message:  fmt.Sprintf("all %d voyage events fall in %s; likely a date-parsing bug in the upstream export", len(batch.Events), only),
		Count:    len(batch.Events),
	}}
}

// checkUnknownCodes flags allocation codes present on records but absent
// from the facility registry.
func (v *Validator) checkUnknownCodes(batch *model.Batch) []model.Issue {
	unknown := make(map[string]int)
	note := func(code string) {
		if code != "" && !v.reg.KnowsCode(code) {
			unknown[code]++
		}
	}
	for _, e := range batch.Events {
		note(e.AllocationCode)
	}
	for _, m := range batch.Manifests {
		note(m.AllocationCode)
	}
	for _, l := range batch.Allocations {
		note(l.AllocationCode)
	}
	if len(unknown) == 0 {
		return nil
	}
	total := 0
	for _, n := range unknown {
		total += n
	}
	return []model.Issue{{
		Category: CategoryUnknownCode,
		Severity: model.SeverityWarning,
		Message:  fmt.Sprintf("%d distinct allocation codes on %d records are not in the facility registry", len(unknown), total),
		Count:    total,
	}}
}

// checkUnresolvedLocations flags raw location strings no resolver rule matches.
func (v *Validator) checkUnresolvedLocations(batch *model.Batch) []model.Issue {
	unresolved := make(map[string]int)
	note := func(raw string) {
		if raw == "" {
			return
		}
		if _, ok := v.resolver.Resolve(raw); !ok {
			unresolved[raw]++
		}
	}
	for _, e := range batch.Events {
		note(e.EffectiveLocation())
	}
	for _, m := range batch.Manifests {
		note(m.To)
	}
	for _, l := range batch.Allocations {
		note(l.EffectiveLocation())
	}
	if len(unresolved) == 0 {
		return nil
	}
	total := 0
	for _, n := range unresolved {
		total += n
	}
	return []model.Issue{{
		Category: CategoryUnresolvedLoc,
		Severity: model.SeverityWarning,
		Message:  fmt.Sprintf("%d distinct location strings on %d records resolve to no facility; they are excluded from location-scoped views", len(unresolved), total),
		Count:    total,
	}}
}

// checkMissingTimestamps counts records with no usable timestamp; these are
// excluded from every period window.
func (v *Validator) checkMissingTimestamps(batch *model.Batch) []model.Issue {
	missing := 0
	each(batch, func(t time.Time) {
		if t.IsZero() {
			missing++
		}
	})
	if missing == 0 {
		return nil
	}
	return []model.Issue{{
		Category: CategoryMissingTimestamp,
		Severity: model.SeverityWarning,
		Message:  fmt.Sprintf("%d records have no usable timestamp and match no period window", missing),
		Count:    missing,
	}}
}

// checkNegativeMeasures flags negative hours, tonnage or volume figures.
func (v *Validator) checkNegativeMeasures(batch *model.Batch) []model.Issue {
	bad := 0
	for _, e := range batch.Events {
		if e.Hours < 0 {
			bad++
		}
	}
	for _, m := range batch.Manifests {
		if m.DeckTons < 0 || m.RTTons < 0 || m.Lifts < 0 {
			bad++
		}
	}
	for _, f := range batch.FluidActions {
		if f.VolumeBbls < 0 {
			bad++
		}
	}
	if bad == 0 {
		return nil
	}
	return []model.Issue{{
		Category: CategoryNegativeMeasure,
		Severity: model.SeverityWarning,
		Message:  fmt.Sprintf("%d records carry negative measures", bad),
		Count:    bad,
	}}
}

// each visits the primary timestamp of every record in the batch.
func each(batch *model.Batch, fn func(time.Time)) {
	for _, e := range batch.Events {
		fn(e.EventTime)
	}
	for _, m := range batch.Manifests {
		fn(m.ManifestTime)
	}
	for _, l := range batch.Allocations {
		fn(l.When())
	}
	for _, f := range batch.FluidActions {
		fn(f.StartTime)
	}
	for _, v := range batch.Voyages {
		fn(v.StartDate)
	}
}

// score computes the 0-100 composite. Errors weigh more than warnings, and
// the affected-record share of the batch scales the penalty.
func score(issues []model.Issue, batchSize int) float64 {
	if batchSize == 0 {
		return 100
	}
	s := 100.0
	for _, i := range issues {
		share := float64(i.Count) / float64(batchSize)
		switch i.Severity {
		case model.SeverityError:
			s -= 25*share + 10
		case model.SeverityWarning:
			s -= 15*share + 3
		default:
			s -= 5 * share
		}
	}
	if s < 0 {
		s = 0
	}
	return s
}
