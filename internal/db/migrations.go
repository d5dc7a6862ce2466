package db

import "fmt"

// migrate runs database migrations.
func (s *SQLite) migrate() error {
	query := `
		CREATE TABLE IF NOT EXISTS runs (
			id         TEXT PRIMARY KEY,
			label      TEXT NOT NULL DEFAULT '',
			seed       INTEGER NOT NULL DEFAULT 0,
			created_at TEXT NOT NULL
		);

		CREATE TABLE IF NOT EXISTS entries (
			run_id     TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
			position   INTEGER NOT NULL,
			week       INTEGER NOT NULL CHECK(week BETWEEN 0 AND 3),
			day        INTEGER NOT NULL CHECK(day BETWEEN 0 AND 3),
			start_slot INTEGER NOT NULL CHECK(start_slot BETWEEN 0 AND 13),
			duration   INTEGER NOT NULL CHECK(duration BETWEEN 1 AND 3),
			name       TEXT NOT NULL,
			type       TEXT NOT NULL,
			frequency  TEXT NOT NULL CHECK(frequency IN ('weekly', 'fortnightly', 'third_week', 'monthly')),
			PRIMARY KEY (run_id, position)
		);

		CREATE TABLE IF NOT EXISTS reservations (
			run_id     TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
			position   INTEGER NOT NULL,
			day        INTEGER NOT NULL CHECK(day BETWEEN 0 AND 3),
			start_slot INTEGER NOT NULL CHECK(start_slot BETWEEN 0 AND 13),
			duration   INTEGER NOT NULL CHECK(duration BETWEEN 1 AND 3),
			PRIMARY KEY (run_id, position)
		);

		CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at);
	`

	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("creating archive tables: %w", err)
	}

	return nil
}
