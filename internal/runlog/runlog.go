// Package runlog keeps a durable history of finished timer runs in
// SQLite. The task store only remembers the last and total elapsed
// time per task; the run log keeps every individual Start→Stop
// interval so work can be reviewed after the fact, even for tasks
// that were deleted or expired since.
package runlog

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Run is one recorded Start→Stop interval.
type Run struct {
	ID        int64
	TaskID    string
	Title     string
	StartedAt time.Time
	EndedAt   time.Time
	Duration  time.Duration
}

// TaskTotal aggregates recorded time for one task.
type TaskTotal struct {
	TaskID string
	Title  string
	Runs   int
	Total  time.Duration
}

// Store is the SQLite-backed run history.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the run log database at path.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create run log directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open run log: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) migrate() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS timer_runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			task_id TEXT NOT NULL,
			title TEXT NOT NULL,
			started_at DATETIME NOT NULL,
			ended_at DATETIME NOT NULL,
			duration_seconds INTEGER NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_timer_runs_task ON timer_runs(task_id);
	`)
	if err != nil {
		return fmt.Errorf("failed to migrate run log: %w", err)
	}
	return nil
}

// RecordRun stores one finished timer run. Implements store.RunRecorder.
func (s *Store) RecordRun(taskID, title string, startedAt, endedAt time.Time) error {
	_, err := s.db.Exec(`
		INSERT INTO timer_runs (task_id, title, started_at, ended_at, duration_seconds)
		VALUES (?, ?, ?, ?, ?)
	`, taskID, title, startedAt, endedAt, int64(endedAt.Sub(startedAt)/time.Second))
	return err
}

// RecentRuns returns the newest runs first, up to limit.
func (s *Store) RecentRuns(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(`
		SELECT id, task_id, title, started_at, ended_at, duration_seconds
		FROM timer_runs
		ORDER BY started_at DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var seconds int64
		if err := rows.Scan(&r.ID, &r.TaskID, &r.Title, &r.StartedAt, &r.EndedAt, &seconds); err != nil {
			return nil, err
		}
		r.Duration = time.Duration(seconds) * time.Second
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// TotalsByTask aggregates recorded time per task, most worked-on first.
func (s *Store) TotalsByTask() ([]TaskTotal, error) {
	rows, err := s.db.Query(`
		SELECT task_id, MAX(title), COUNT(*), COALESCE(SUM(duration_seconds), 0)
		FROM timer_runs
		GROUP BY task_id
		ORDER BY SUM(duration_seconds) DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var totals []TaskTotal
	for rows.Next() {
		var t TaskTotal
		var seconds int64
		if err := rows.Scan(&t.TaskID, &t.Title, &t.Runs, &seconds); err != nil {
			return nil, err
		}
		t.Total = time.Duration(seconds) * time.Second
		totals = append(totals, t)
	}
	return totals, rows.Err()
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
