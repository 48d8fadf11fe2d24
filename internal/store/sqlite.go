package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/gulfstar-ops/vesselkpi/internal/model"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS kpi_snapshots (
	id         TEXT PRIMARY KEY,
	period     TEXT NOT NULL,
	location   TEXT NOT NULL,
	kpis       TEXT NOT NULL,
	integrity  TEXT,
	created_at DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_snapshots_created ON kpi_snapshots(created_at DESC);
`

// Migrate creates the snapshot schema.
func (s *SQLiteStore) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, sqliteMigration); err != nil {
		return eris.Wrap(err, "sqlite: migrate")
	}
	return nil
}

// SaveSnapshot inserts a snapshot, assigning an ID and timestamp when unset.
func (s *SQLiteStore) SaveSnapshot(ctx context.Context, snap *model.Snapshot) error {
	if snap.ID == "" {
		snap.ID = uuid.NewString()
	}
	if snap.CreatedAt.IsZero() {
		snap.CreatedAt = time.Now().UTC()
	}

	kpis, err := json.Marshal(snap.Kpis)
	if err != nil {
		return eris.Wrap(err, "sqlite: marshal kpis")
	}
	var integrity []byte
	if snap.Integrity != nil {
		if integrity, err = json.Marshal(snap.Integrity); err != nil {
			return eris.Wrap(err, "sqlite: marshal integrity")
		}
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO kpi_snapshots (id, period, location, kpis, integrity, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		snap.ID, snap.Period, snap.Location, string(kpis), nullable(integrity), snap.CreatedAt,
	)
	if err != nil {
		return eris.Wrap(err, "sqlite: insert snapshot")
	}
	return nil
}

// GetSnapshot fetches one snapshot by ID.
func (s *SQLiteStore) GetSnapshot(ctx context.Context, id string) (*model.Snapshot, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, period, location, kpis, integrity, created_at FROM kpi_snapshots WHERE id = ?`, id)
	return scanSnapshot(row.Scan)
}

// ListSnapshots returns the most recent snapshots, newest first.
func (s *SQLiteStore) ListSnapshots(ctx context.Context, limit int) ([]model.Snapshot, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, period, location, kpis, integrity, created_at FROM kpi_snapshots ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list snapshots")
	}
	defer rows.Close() //nolint:errcheck

	var out []model.Snapshot
	for rows.Next() {
		snap, err := scanSnapshot(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, *snap)
	}
	if err := rows.Err(); err != nil {
		return nil, eris.Wrap(err, "sqlite: iterate snapshots")
	}
	return out, nil
}

// Close releases the database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// scanSnapshot decodes one snapshot row from either backend.
func scanSnapshot(scan func(...any) error) (*model.Snapshot, error) {
	var snap model.Snapshot
	var kpis string
	var integrity sql.NullString
	if err := scan(&snap.ID, &snap.Period, &snap.Location, &kpis, &integrity, &snap.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, eris.Wrap(err, "store: snapshot not found")
		}
		return nil, eris.Wrap(err, "store: scan snapshot")
	}
	if err := json.Unmarshal([]byte(kpis), &snap.Kpis); err != nil {
		return nil, eris.Wrap(err, "store: unmarshal kpis")
	}
	if integrity.Valid && integrity.String != "" {
		snap.Integrity = &model.Report{}
		if err := json.Unmarshal([]byte(integrity.String), snap.Integrity); err != nil {
			return nil, eris.Wrap(err, "store: unmarshal integrity")
		}
	}
	return &snap, nil
}

// nullable maps empty JSON to NULL so the integrity column stays optional.
func nullable(b []byte) any {
	if len(b) == 0 {
		return nil
	}
	return string(b)
}
