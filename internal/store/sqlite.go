// Package store persists completed aggregate estimates as snapshots in
// a local SQLite database.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/meridian-eng/wbs-estimator/internal/estimate"
)

// Snapshot is one saved aggregate estimate.
type Snapshot struct {
	ID          string                     `json:"id"`
	ProjectName string                     `json:"project_name"`
	CreatedAt   time.Time                  `json:"created_at"`
	Estimate    estimate.AggregateEstimate `json:"estimate"`
}

// SnapshotMeta is the listing view of a snapshot without its payload.
type SnapshotMeta struct {
	ID            string    `json:"id"`
	ProjectName   string    `json:"project_name"`
	CreatedAt     time.Time `json:"created_at"`
	TotalManHours int       `json:"total_man_hours"`
}

// Store wraps the snapshot database.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the snapshot database at the given path and
// configures WAL mode.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, eris.Wrap(err, "store: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "store: exec %s", pragma)
		}
	}
	return &Store{db: db}, nil
}

const migration = `
CREATE TABLE IF NOT EXISTS snapshots (
	id              TEXT PRIMARY KEY,
	project_name    TEXT NOT NULL,
	total_man_hours INTEGER NOT NULL,
	payload         TEXT NOT NULL,
	created_at      DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_snapshots_project ON snapshots(project_name);
CREATE INDEX IF NOT EXISTS idx_snapshots_created ON snapshots(created_at);
`

// Migrate creates the snapshot schema.
func (s *Store) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, migration)
	return eris.Wrap(err, "store: migrate")
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save persists an aggregate estimate and returns the snapshot id.
func (s *Store) Save(ctx context.Context, projectName string, agg estimate.AggregateEstimate) (string, error) {
	payload, err := json.Marshal(agg)
	if err != nil {
		return "", eris.Wrap(err, "store: marshal estimate")
	}

	id := uuid.NewString()
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO snapshots (id, project_name, total_man_hours, payload) VALUES (?, ?, ?, ?)`,
		id, projectName, agg.TotalManHours, string(payload),
	)
	if err != nil {
		return "", eris.Wrap(err, "store: insert snapshot")
	}
	return id, nil
}

// List returns snapshot metadata, newest first.
func (s *Store) List(ctx context.Context) ([]SnapshotMeta, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, project_name, total_man_hours, created_at FROM snapshots ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, eris.Wrap(err, "store: list snapshots")
	}
	defer rows.Close() //nolint:errcheck

	var out []SnapshotMeta
	for rows.Next() {
		var m SnapshotMeta
		if err := rows.Scan(&m.ID, &m.ProjectName, &m.TotalManHours, &m.CreatedAt); err != nil {
			return nil, eris.Wrap(err, "store: scan snapshot")
		}
		out = append(out, m)
	}
	return out, eris.Wrap(rows.Err(), "store: iterate snapshots")
}

// Get fetches one snapshot by id. Returns nil when it does not exist.
func (s *Store) Get(ctx context.Context, id string) (*Snapshot, error) {
	var snap Snapshot
	var payload string
	err := s.db.QueryRowContext(ctx,
		`SELECT id, project_name, payload, created_at FROM snapshots WHERE id = ?`, id,
	).Scan(&snap.ID, &snap.ProjectName, &payload, &snap.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, eris.Wrap(err, "store: get snapshot")
	}

	if err := json.Unmarshal([]byte(payload), &snap.Estimate); err != nil {
		return nil, eris.Wrap(err, "store: unmarshal estimate")
	}
	return &snap, nil
}
