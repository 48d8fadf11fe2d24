// Package store persists computed KPI snapshots so a reporting run can be
// reviewed after the source batch is replaced.
package store

import (
	"context"

	"github.com/gulfstar-ops/vesselkpi/internal/model"
)

// Store is the snapshot persistence interface.
type Store interface {
	SaveSnapshot(ctx context.Context, snap *model.Snapshot) error
	GetSnapshot(ctx context.Context, id string) (*model.Snapshot, error)
	ListSnapshots(ctx context.Context, limit int) ([]model.Snapshot, error)

	Migrate(ctx context.Context) error
	Close() error
}

// Config selects and configures the backend.
type Config struct {
	Driver      string `yaml:"driver" mapstructure:"driver"` // "sqlite" or "postgres"
	DatabaseURL string `yaml:"database_url" mapstructure:"database_url"`
}

// Open creates the configured backend.
func Open(ctx context.Context, cfg Config) (Store, error) {
	if cfg.Driver == "postgres" {
		return NewPostgres(ctx, cfg.DatabaseURL)
	}
	dsn := cfg.DatabaseURL
	if dsn == "" {
		dsn = "vesselkpi.db"
	}
	return NewSQLite(dsn)
}
