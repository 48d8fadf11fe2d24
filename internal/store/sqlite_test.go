package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gulfstar-ops/vesselkpi/internal/model"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLite(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	require.NoError(t, s.Migrate(context.Background()))
	return s
}

func sampleSnapshot(period string) *model.Snapshot {
	return &model.Snapshot{
		Period:   period,
		Location: "All Locations",
		Kpis: model.KpiSet{
			CargoTons:   model.Kpi{Value: 120, TrendPercent: -5, HasComparison: true},
			VoyageCount: model.Kpi{Value: 3},
			FluidByType: map[string]float64{"SOBM": 500},
			Period:      period,
			Location:    "All Locations",
		},
		Integrity: &model.Report{
			Score:       92.5,
			GeneratedAt: time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC),
			Issues: []model.Issue{
				{Category: "unknown_allocation_code", Severity: model.SeverityWarning, Message: "x", Count: 3},
			},
		},
	}
}

func TestSQLiteSaveAndGet(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	ctx := context.Background()

	snap := sampleSnapshot("March 2024")
	require.NoError(t, s.SaveSnapshot(ctx, snap))
	assert.NotEmpty(t, snap.ID, "save assigns an ID")
	assert.False(t, snap.CreatedAt.IsZero(), "save assigns a timestamp")

	got, err := s.GetSnapshot(ctx, snap.ID)
	require.NoError(t, err)
	assert.Equal(t, snap.Period, got.Period)
	assert.InDelta(t, 120.0, got.Kpis.CargoTons.Value, 1e-9)
	assert.True(t, got.Kpis.CargoTons.HasComparison)
	assert.InDelta(t, 500.0, got.Kpis.FluidByType["SOBM"], 1e-9)
	require.NotNil(t, got.Integrity)
	assert.InDelta(t, 92.5, got.Integrity.Score, 1e-9)
	require.Len(t, got.Integrity.Issues, 1)
}

func TestSQLiteSnapshotWithoutIntegrity(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	ctx := context.Background()

	snap := sampleSnapshot("April 2024")
	snap.Integrity = nil
	require.NoError(t, s.SaveSnapshot(ctx, snap))

	got, err := s.GetSnapshot(ctx, snap.ID)
	require.NoError(t, err)
	assert.Nil(t, got.Integrity)
}

func TestSQLiteGetMissing(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	_, err := s.GetSnapshot(context.Background(), "no-such-id")
	assert.Error(t, err)
}

func TestSQLiteListSnapshots(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	ctx := context.Background()

	base := time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC)
	for i, period := range []string{"January 2024", "February 2024", "March 2024"} {
		snap := sampleSnapshot(period)
		snap.CreatedAt = base.Add(time.Duration(i) * time.Hour)
		require.NoError(t, s.SaveSnapshot(ctx, snap))
	}

	t.Run("newest first", func(t *testing.T) {
		snaps, err := s.ListSnapshots(ctx, 10)
		require.NoError(t, err)
		require.Len(t, snaps, 3)
		assert.Equal(t, "March 2024", snaps[0].Period)
		assert.Equal(t, "January 2024", snaps[2].Period)
	})

	t.Run("limit applies", func(t *testing.T) {
		snaps, err := s.ListSnapshots(ctx, 2)
		require.NoError(t, err)
		assert.Len(t, snaps, 2)
	})

	t.Run("non-positive limit uses the default", func(t *testing.T) {
		snaps, err := s.ListSnapshots(ctx, 0)
		require.NoError(t, err)
		assert.Len(t, snaps, 3)
	})
}

func TestOpenSelectsDriver(t *testing.T) {
	t.Parallel()

	s, err := Open(context.Background(), Config{
		Driver:      "sqlite",
		DatabaseURL: filepath.Join(t.TempDir(), "open.db"),
	})
	require.NoError(t, err)
	defer s.Close() //nolint:errcheck
	assert.IsType(t, &SQLiteStore{}, s)
}
