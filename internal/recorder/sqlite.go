package recorder

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"sync"

	_ "modernc.org/sqlite"
)

// SQLiteRecorder persists scan history to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode for better concurrent read performance (dashboards read while the scanner writes).
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite recorder opened: %s", dbPath)
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS scan_runs (
			id          TEXT PRIMARY KEY,
			timestamp   INTEGER NOT NULL,
			mode        TEXT,
			duration_ms INTEGER,
			requested   INTEGER,
			fetched     INTEGER,
			scored      INTEGER,
			failed      INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_ts ON scan_runs(timestamp)`,

		`CREATE TABLE IF NOT EXISTS scan_results (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id     TEXT NOT NULL,
			ticker     TEXT NOT NULL,
			sector     TEXT,
			mode       TEXT,
			raw_score  REAL,
			norm_score REAL,
			grade      TEXT,
			structure  TEXT,
			tags       TEXT,
			components TEXT,
			metrics    TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_results_run ON scan_results(run_id)`,
		`CREATE INDEX IF NOT EXISTS idx_results_ticker ON scan_results(ticker)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

// RecordScan writes the run header plus one row per result.
func (r *SQLiteRecorder) RecordScan(run *ScanRun) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`INSERT INTO scan_runs
		(id, timestamp, mode, duration_ms, requested, fetched, scored, failed)
		VALUES (?,?,?,?,?,?,?,?)`,
		run.ID, run.StartedAt.Unix(), string(run.Mode), run.DurationMs,
		run.Requested, run.Fetched, run.Scored, run.Failed,
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	for _, res := range run.Results {
		components, err := json.Marshal(res.Components)
		if err != nil {
			return fmt.Errorf("marshal components for %s: %w", res.Ticker, err)
		}
		metrics, err := json.Marshal(res.Metrics)
		if err != nil {
			return fmt.Errorf("marshal metrics for %s: %w", res.Ticker, err)
		}
		_, err = tx.Exec(`INSERT INTO scan_results
			(run_id, ticker, sector, mode, raw_score, norm_score, grade, structure, tags, components, metrics)
			VALUES (?,?,?,?,?,?,?,?,?,?,?)`,
			run.ID, res.Ticker, res.Sector, string(res.Mode),
			res.RawScore, res.NormScore, string(res.Grade), res.Structure,
			strings.Join(res.Tags, ","), string(components), string(metrics),
		)
		if err != nil {
			return fmt.Errorf("insert result %s: %w", res.Ticker, err)
		}
	}

	return tx.Commit()
}

func (r *SQLiteRecorder) Close() error {
	log.Println("[INFO] closing sqlite recorder")
	return r.db.Close()
}
