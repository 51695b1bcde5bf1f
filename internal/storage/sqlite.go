// Package storage provides SQLite-based persistence for maze run history.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
// Only run metadata is stored, never the maze layout.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/tui-maze/internal/runner"
)

// ErrNotFound is returned when a run does not exist.
var ErrNotFound = errors.New("storage: run not found")

// Store manages the SQLite database connection for run history.
type Store struct {
	db *sql.DB
}

// Run is a summary of one maze generation run.
type Run struct {
	ID        string // UUID, assigned by SaveRun when empty
	Seed      int64
	Rows      int
	Cols      int
	Steps     int
	Passages  int
	Completed bool          // False when the run was reset or abandoned before exhaustion
	Duration  time.Duration // From the first growth to exhaustion or abandonment
	Source    string        // "tui", "cli" or "ssh"
	CreatedAt time.Time
}

// Stats contains aggregated run statistics.
type Stats struct {
	Runs          int
	Completed     int
	TotalCells    int64
	AvgDuration   time.Duration
	LargestRows   int
	LargestCols   int
	LastGenerated time.Time
}

const timeLayout = "2006-01-02 15:04:05"

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			seed INTEGER NOT NULL,
			grid_rows INTEGER NOT NULL,
			grid_cols INTEGER NOT NULL,
			steps INTEGER NOT NULL DEFAULT 0,
			passages INTEGER NOT NULL DEFAULT 0,
			completed INTEGER NOT NULL DEFAULT 0,
			duration_ms INTEGER NOT NULL DEFAULT 0,
			source TEXT NOT NULL DEFAULT '',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs(created_at DESC);
		CREATE INDEX IF NOT EXISTS idx_runs_seed ON runs(seed);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveRun records a run and returns its ID.
func (s *Store) SaveRun(run Run) (string, error) {
	if run.ID == "" {
		run.ID = uuid.NewString()
	} else if _, err := uuid.Parse(run.ID); err != nil {
		return "", fmt.Errorf("storage: invalid run id %q: %w", run.ID, err)
	}

	_, err := s.db.Exec(
		`INSERT INTO runs (id, seed, grid_rows, grid_cols, steps, passages, completed, duration_ms, source)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.Seed, run.Rows, run.Cols, run.Steps, run.Passages,
		run.Completed, run.Duration.Milliseconds(), run.Source,
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot save run: %w", err)
	}
	return run.ID, nil
}

// RecordRun implements runner.Recorder.
// The run counts as completed only if the snapshot is exhausted.
func (s *Store) RecordRun(snap runner.Snapshot, source string) (string, error) {
	end := snap.FinishedAt
	if end.IsZero() {
		end = time.Now()
	}
	return s.SaveRun(Run{
		Seed:      snap.Seed,
		Rows:      snap.Rows,
		Cols:      snap.Cols,
		Steps:     snap.Steps,
		Passages:  snap.Passages,
		Completed: snap.Done(),
		Duration:  snap.Elapsed(end),
		Source:    source,
	})
}

// Ensure Store implements Recorder
var _ runner.Recorder = (*Store)(nil)

// RecentRuns retrieves the most recent runs, newest first.
func (s *Store) RecentRuns(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, seed, grid_rows, grid_cols, steps, passages, completed, duration_ms, source, created_at
		 FROM runs
		 ORDER BY created_at DESC, rowid DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return runs, nil
}

// RunByID retrieves a run by its ID. Returns ErrNotFound if it does not exist.
func (s *Store) RunByID(id string) (Run, error) {
	row := s.db.QueryRow(
		`SELECT id, seed, grid_rows, grid_cols, steps, passages, completed, duration_ms, source, created_at
		 FROM runs
		 WHERE id = ?`,
		id,
	)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, ErrNotFound
	}
	return run, err
}

// RunsBySeed retrieves every run generated from seed, newest first.
func (s *Store) RunsBySeed(seed int64) ([]Run, error) {
	rows, err := s.db.Query(
		`SELECT id, seed, grid_rows, grid_cols, steps, passages, completed, duration_ms, source, created_at
		 FROM runs
		 WHERE seed = ?
		 ORDER BY created_at DESC, rowid DESC`,
		seed,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return runs, nil
}

// ClearRuns deletes all recorded runs.
func (s *Store) ClearRuns() error {
	if _, err := s.db.Exec("DELETE FROM runs"); err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}

// Stats retrieves aggregated statistics over all runs.
func (s *Store) Stats() (*Stats, error) {
	stats := &Stats{}

	var avgMs float64
	err := s.db.QueryRow(
		`SELECT COUNT(*),
		        COALESCE(SUM(completed), 0),
		        COALESCE(SUM(grid_rows * grid_cols), 0),
		        COALESCE(AVG(CASE WHEN completed = 1 THEN duration_ms END), 0)
		 FROM runs`,
	).Scan(&stats.Runs, &stats.Completed, &stats.TotalCells, &avgMs)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get run stats: %w", err)
	}
	stats.AvgDuration = time.Duration(avgMs * float64(time.Millisecond))

	if stats.Runs == 0 {
		return stats, nil
	}

	// Largest maze by cell count
	err = s.db.QueryRow(
		`SELECT grid_rows, grid_cols FROM runs ORDER BY grid_rows * grid_cols DESC, created_at DESC LIMIT 1`,
	).Scan(&stats.LargestRows, &stats.LargestCols)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get largest run: %w", err)
	}

	var last any
	err = s.db.QueryRow(`SELECT MAX(created_at) FROM runs`).Scan(&last)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get last run: %w", err)
	}
	stats.LastGenerated = parseTime(last)

	return stats, nil
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanRun(sc scanner) (Run, error) {
	var run Run
	var durationMs int64
	var createdAt any
	err := sc.Scan(
		&run.ID,
		&run.Seed,
		&run.Rows,
		&run.Cols,
		&run.Steps,
		&run.Passages,
		&run.Completed,
		&durationMs,
		&run.Source,
		&createdAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, err
	}
	if err != nil {
		return Run{}, fmt.Errorf("storage: cannot scan row: %w", err)
	}

	run.Duration = time.Duration(durationMs) * time.Millisecond
	run.CreatedAt = parseTime(createdAt)
	return run, nil
}

// parseTime handles both time.Time and string datetimes from the driver.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse(timeLayout, t); err == nil {
			return parsed
		}
		if parsed, err := time.Parse(time.RFC3339, t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
