package recorder

import (
	"database/sql"
	"fmt"
	"log"
	"strings"
	"sync"

	_ "modernc.org/sqlite"
)

// SQLiteRecorder persists run summaries to a SQLite database.
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

	// WAL mode so external readers don't block the app's writes.
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
		`CREATE TABLE IF NOT EXISTS runs (
			id           TEXT PRIMARY KEY,
			started_at   INTEGER NOT NULL,
			source       TEXT,
			range_start  TEXT,
			range_end    TEXT,
			tickers      TEXT,
			investment   REAL,
			log_scale    INTEGER,
			warnings     INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_started ON runs(started_at)`,

		`CREATE TABLE IF NOT EXISTS run_results (
			id           INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id       TEXT NOT NULL REFERENCES runs(id),
			ticker       TEXT NOT NULL,
			strategy     TEXT NOT NULL,
			final_return REAL,
			points       INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_results_run ON run_results(run_id)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

// RecordRun stores the run row and its per-(ticker, strategy) results in one
// transaction.
func (r *SQLiteRecorder) RecordRun(rec *RunRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	logScale := 0
	if rec.LogScale {
		logScale = 1
	}
	if _, err := tx.Exec(`INSERT INTO runs
		(id, started_at, source, range_start, range_end, tickers, investment, log_scale, warnings)
		VALUES (?,?,?,?,?,?,?,?,?)`,
		rec.ID, rec.StartedAt.Unix(), rec.Source,
		rec.Start.Format("2006-01-02"), rec.End.Format("2006-01-02"),
		strings.Join(rec.Tickers, ","), rec.InitialInvestment, logScale, rec.Warnings,
	); err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	for _, res := range rec.Results {
		if _, err := tx.Exec(`INSERT INTO run_results
			(run_id, ticker, strategy, final_return, points)
			VALUES (?,?,?,?,?)`,
			rec.ID, res.Ticker, res.Strategy.String(), res.FinalReturn, res.Points,
		); err != nil {
			return fmt.Errorf("insert result: %w", err)
		}
	}

	return tx.Commit()
}

func (r *SQLiteRecorder) Close() error {
	log.Println("[INFO] closing sqlite recorder")
	return r.db.Close()
}
