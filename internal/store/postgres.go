package store

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/gulfstar-ops/vesselkpi/internal/model"
)

// Pool abstracts pgxpool.Pool for testing with pgxmock.
type Pool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresStore implements Store using a pgx connection pool.
type PostgresStore struct {
	pool    Pool
	closeFn func()
}

// NewPostgres creates a PostgresStore with a connection pool.
func NewPostgres(ctx context.Context, connString string) (*PostgresStore, error) {
	cfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}
	cfg.MaxConns = 5
	cfg.MaxConnLifetime = 30 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: connect")
	}
	return &PostgresStore{pool: pool, closeFn: pool.Close}, nil
}

// NewPostgresFromPool wraps an existing pool; tests inject pgxmock here.
func NewPostgresFromPool(pool Pool) *PostgresStore {
	return &PostgresStore{pool: pool, closeFn: func() {}}
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS kpi_snapshots (
	id         TEXT PRIMARY KEY,
	period     TEXT NOT NULL,
	location   TEXT NOT NULL,
	kpis       JSONB NOT NULL,
	integrity  JSONB,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_snapshots_created ON kpi_snapshots(created_at DESC);
`

// Migrate creates the snapshot schema.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, postgresMigration); err != nil {
		return eris.Wrap(err, "postgres: migrate")
	}
	return nil
}

// SaveSnapshot inserts a snapshot, assigning an ID and timestamp when unset.
func (s *PostgresStore) SaveSnapshot(ctx context.Context, snap *model.Snapshot) error {
	if snap.ID == "" {
		snap.ID = uuid.NewString()
	}
	if snap.CreatedAt.IsZero() {
		snap.CreatedAt = time.Now().UTC()
	}

	kpis, err := json.Marshal(snap.Kpis)
	if err != nil {
		return eris.Wrap(err, "postgres: marshal kpis")
	}
	var integrity []byte
	if snap.Integrity != nil {
		if integrity, err = json.Marshal(snap.Integrity); err != nil {
			return eris.Wrap(err, "postgres: marshal integrity")
		}
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO kpi_snapshots (id, period, location, kpis, integrity, created_at) VALUES ($1, $2, $3, $4, $5, $6)`,
		snap.ID, snap.Period, snap.Location, string(kpis), nullable(integrity), snap.CreatedAt,
	)
	if err != nil {
		return eris.Wrap(err, "postgres: insert snapshot")
	}
	return nil
}

// GetSnapshot fetches one snapshot by ID.
func (s *PostgresStore) GetSnapshot(ctx context.Context, id string) (*model.Snapshot, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT id, period, location, kpis::text, integrity::text, created_at FROM kpi_snapshots WHERE id = $1`, id)
	return scanSnapshot(row.Scan)
}

// ListSnapshots returns the most recent snapshots, newest first.
func (s *PostgresStore) ListSnapshots(ctx context.Context, limit int) ([]model.Snapshot, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.pool.Query(ctx,
		`SELECT id, period, location, kpis::text, integrity::text, created_at FROM kpi_snapshots ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list snapshots")
	}
	defer rows.Close()

	var out []model.Snapshot
	for rows.Next() {
		snap, err := scanSnapshot(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, *snap)
	}
	if err := rows.Err(); err != nil {
		return nil, eris.Wrap(err, "postgres: iterate snapshots")
	}
	return out, nil
}

// Close releases the pool.
func (s *PostgresStore) Close() error {
	s.closeFn()
	return nil
}
