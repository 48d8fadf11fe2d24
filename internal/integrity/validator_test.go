package integrity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/gulfstar-ops/vesselkpi/internal/model"
	"github.com/gulfstar-ops/vesselkpi/internal/registry"
)

func newTestValidator() *Validator {
	v := NewValidator(registry.Default())
	v.now = func() time.Time {
		return time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)
	}
	return v
}

func findIssue(t *testing.T, report *model.Report, category string) model.Issue {
	t.Helper()
	for _, i := range report.Issues {
		if i.Category == category {
			return i
		}
	}
	t.Fatalf("no issue with category %s", category)
	return model.Issue{}
}

func hasCategory(report *model.Report, category string) bool {
	for _, i := range report.Issues {
		if i.Category == category {
			return true
		}
	}
	return false
}

func cleanEvent(d time.Time) model.VoyageEvent {
	return model.VoyageEvent{
		Vessel:         "HOS Achiever",
		EventTime:      d,
		Location:       "Thunder Horse PDQ",
		AllocationCode: "10101",
		Hours:          4,
	}
}

func TestValidateCleanBatch(t *testing.T) {
	t.Parallel()

	batch := &model.Batch{
		Events: []model.VoyageEvent{
			cleanEvent(time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC)),
			cleanEvent(time.Date(2024, time.April, 7, 0, 0, 0, 0, time.UTC)),
		},
	}

	report := newTestValidator().Validate(batch)
	assert.Empty(t, report.Issues)
	assert.InDelta(t, 100.0, report.Score, 1e-9)
	assert.False(t, report.HasErrors())
	assert.False(t, report.GeneratedAt.IsZero())
}

func TestCheckDateAnomalies(t *testing.T) {
	t.Parallel()

	batch := &model.Batch{
		Events: []model.VoyageEvent{
			cleanEvent(time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC)),
			// "25" parsed as year 0025.
			cleanEvent(time.Date(25, time.March, 5, 0, 0, 0, 0, time.UTC)),
			cleanEvent(time.Date(2123, time.March, 5, 0, 0, 0, 0, time.UTC)),
		},
	}

	report := newTestValidator().Validate(batch)
	issue := findIssue(t, report, CategoryDateAnomaly)
	assert.Equal(t, model.SeverityError, issue.Severity)
	assert.Equal(t, 2, issue.Count)
	assert.True(t, report.HasErrors())
}

func TestCheckMonthCollapse(t *testing.T) {
	t.Parallel()

	t.Run("large single-month dataset is flagged", func(t *testing.T) {
		t.Parallel()
		batch := &model.Batch{}
		for i := 0; i < 60; i++ {
			batch.Events = append(batch.Events,
				cleanEvent(time.Date(2024, time.March, 1+i%28, 0, 0, 0, 0, time.UTC)))
		}

		report := newTestValidator().Validate(batch)
		issue := findIssue(t, report, CategoryMonthCollapse)
		assert.Equal(t, model.SeverityError, issue.Severity)
		assert.Equal(t, 60, issue.Count)
	})

	t.Run("small dataset is not flagged", func(t *testing.T) {
		t.Parallel()
		batch := &model.Batch{}
		for i := 0; i < 10; i++ {
			batch.Events = append(batch.Events,
				cleanEvent(time.Date(2024, time.March, 1+i, 0, 0, 0, 0, time.UTC)))
		}
		report := newTestValidator().Validate(batch)
		assert.False(t, hasCategory(report, CategoryMonthCollapse))
	})

	t.Run("two months is fine at any size", func(t *testing.T) {
		t.Parallel()
		batch := &model.Batch{}
		for i := 0; i < 60; i++ {
			m := time.March
			if i%2 == 0 {
				m = time.April
			}
			batch.Events = append(batch.Events,
				cleanEvent(time.Date(2024, m, 1+i%28, 0, 0, 0, 0, time.UTC)))
		}
		report := newTestValidator().Validate(batch)
		assert.False(t, hasCategory(report, CategoryMonthCollapse))
	})
}

func TestCheckUnknownCodes(t *testing.T) {
	t.Parallel()

	e := cleanEvent(time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC))
	e.AllocationCode = "77777"

	report := newTestValidator().Validate(&model.Batch{Events: []model.VoyageEvent{e}})
	issue := findIssue(t, report, CategoryUnknownCode)
	assert.Equal(t, model.SeverityWarning, issue.Severity)
	assert.Equal(t, 1, issue.Count)
}

func TestCheckUnresolvedLocations(t *testing.T) {
	t.Parallel()

	e := cleanEvent(time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC))
	e.Location = "Mystery Barge 7"

	report := newTestValidator().Validate(&model.Batch{Events: []model.VoyageEvent{e}})
	issue := findIssue(t, report, CategoryUnresolvedLoc)
	assert.Equal(t, model.SeverityWarning, issue.Severity)
}

func TestCheckMissingTimestamps(t *testing.T) {
	t.Parallel()

	report := newTestValidator().Validate(&model.Batch{
		Events: []model.VoyageEvent{cleanEvent(time.Time{})},
	})
	issue := findIssue(t, report, CategoryMissingTimestamp)
	assert.Equal(t, 1, issue.Count)
}

func TestCheckNegativeMeasures(t *testing.T) {
	t.Parallel()

	e := cleanEvent(time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC))
	e.Hours = -2

	report := newTestValidator().Validate(&model.Batch{
		Events: []model.VoyageEvent{e},
		Manifests: []model.VesselManifest{{
			Vessel: "HOS Achiever", To: "Thunder Horse PDQ",
			ManifestTime: time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC),
			DeckTons:     -10,
		}},
	})
	issue := findIssue(t, report, CategoryNegativeMeasure)
	assert.Equal(t, 2, issue.Count)
}

func TestScore(t *testing.T) {
	t.Parallel()

	t.Run("empty batch scores clean", func(t *testing.T) {
		t.Parallel()
		assert.InDelta(t, 100.0, score(nil, 0), 1e-9)
	})

	t.Run("errors cost more than warnings", func(t *testing.T) {
		t.Parallel()
		errScore := score([]model.Issue{{Severity: model.SeverityError, Count: 10}}, 100)
		warnScore := score([]model.Issue{{Severity: model.SeverityWarning, Count: 10}}, 100)
		assert.Less(t, errScore, warnScore)
	})

	t.Run("score never goes negative", func(t *testing.T) {
		t.Parallel()
		issues := make([]model.Issue, 20)
		for i := range issues {
			issues[i] = model.Issue{Severity: model.SeverityError, Count: 100}
		}
		assert.GreaterOrEqual(t, score(issues, 100), 0.0)
	})
}
