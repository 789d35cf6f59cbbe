// Package repository persists extraction runs and their shipments in a
// local SQLite database, for auditing repeated runs over the same
// invoices.
package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/shipstream/invoice-extractor/constants"
	"github.com/shipstream/invoice-extractor/internal/entity"
)

const schema = `
CREATE TABLE IF NOT EXISTS extraction_runs (
	id             TEXT PRIMARY KEY,
	source_path    TEXT NOT NULL,
	pages          INTEGER NOT NULL,
	shipment_count INTEGER NOT NULL,
	status         TEXT NOT NULL,
	warnings       TEXT,
	started_at     TIMESTAMP NOT NULL,
	finished_at    TIMESTAMP
);

CREATE TABLE IF NOT EXISTS shipments (
	id          TEXT PRIMARY KEY,
	run_id      TEXT NOT NULL REFERENCES extraction_runs(id),
	position    INTEGER NOT NULL,
	identifier  TEXT NOT NULL,
	record_json TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_shipments_run ON shipments(run_id, position);
CREATE INDEX IF NOT EXISTS idx_shipments_identifier ON shipments(identifier);
`

// Store wraps the SQLite handle.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the database at path and applies the schema.
// Use ":memory:" for a throwaway store.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error { return s.db.Close() }

// SaveRun records one extraction run and its shipments atomically.
func (s *Store) SaveRun(ctx context.Context, run entity.ExtractionRun, shipments []entity.Shipment) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	var finished any
	if run.FinishedAt != nil {
		finished = run.FinishedAt.UTC()
	}
	_, err = tx.ExecContext(ctx,
		`INSERT INTO extraction_runs (id, source_path, pages, shipment_count, status, warnings, started_at, finished_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID.String(), run.SourcePath, run.Pages, run.ShipmentCount, run.Status,
		strings.Join(run.Warnings, "\n"), run.StartedAt.UTC(), finished,
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	for i, sh := range shipments {
		blob, err := json.Marshal(sh)
		if err != nil {
			return fmt.Errorf("marshal shipment %s: %w", sh.Identifier, err)
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO shipments (id, run_id, position, identifier, record_json)
			 VALUES (?, ?, ?, ?, ?)`,
			uuid.New().String(), run.ID.String(), i, sh.Identifier, string(blob),
		)
		if err != nil {
			return fmt.Errorf("insert shipment %s: %w", sh.Identifier, err)
		}
	}
	return tx.Commit()
}

// ListRuns returns recent runs, newest first.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]entity.ExtractionRun, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, source_path, pages, shipment_count, status, warnings, started_at, finished_at
		 FROM extraction_runs ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var out []entity.ExtractionRun
	for rows.Next() {
		var (
			run      entity.ExtractionRun
			id       string
			warnings sql.NullString
			finished sql.NullTime
		)
		if err := rows.Scan(&id, &run.SourcePath, &run.Pages, &run.ShipmentCount,
			&run.Status, &warnings, &run.StartedAt, &finished); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		run.ID, err = uuid.Parse(id)
		if err != nil {
			return nil, fmt.Errorf("run id %q: %w", id, err)
		}
		if warnings.Valid && warnings.String != "" {
			run.Warnings = strings.Split(warnings.String, "\n")
		}
		if finished.Valid {
			t := finished.Time
			run.FinishedAt = &t
		}
		out = append(out, run)
	}
	return out, rows.Err()
}

// ShipmentsByIdentifier returns every stored record for a tracking number,
// newest run first.
func (s *Store) ShipmentsByIdentifier(ctx context.Context, identifier string) ([]entity.Shipment, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT sh.record_json
		 FROM shipments sh JOIN extraction_runs r ON r.id = sh.run_id
		 WHERE sh.identifier = ?
		 ORDER BY r.started_at DESC, sh.position`, identifier)
	if err != nil {
		return nil, fmt.Errorf("query shipments: %w", err)
	}
	defer rows.Close()

	var out []entity.Shipment
	for rows.Next() {
		var blob string
		if err := rows.Scan(&blob); err != nil {
			return nil, fmt.Errorf("scan shipment: %w", err)
		}
		var sh entity.Shipment
		if err := json.Unmarshal([]byte(blob), &sh); err != nil {
			return nil, fmt.Errorf("decode shipment: %w", err)
		}
		out = append(out, sh)
	}
	return out, rows.Err()
}

// RunFor builds the run row for a finished pipeline result.
func RunFor(id uuid.UUID, source string, pages, shipments int, warnings []string, started time.Time) entity.ExtractionRun {
	status := constants.RunStatusOK
	if shipments == 0 {
		status = constants.RunStatusEmpty
	}
	now := time.Now().UTC()
	return entity.ExtractionRun{
		ID:            id,
		SourcePath:    source,
		Pages:         pages,
		ShipmentCount: shipments,
		Status:        string(status),
		Warnings:      warnings,
		StartedAt:     started,
		FinishedAt:    &now,
	}
}
