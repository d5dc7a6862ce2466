// Package db archives finished schedules in SQLite.
//
// The archive is write-once history: runs are saved after a plan completes
// and can be listed or printed later, but are never loaded back into a
// scheduler.
package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/javiermolinar/meetgrid/internal/calendar"
	"github.com/javiermolinar/meetgrid/internal/meeting"
)

// timeLayout is fixed-width so created_at sorts correctly as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

// ErrRunNotFound is returned when no run has the requested ID.
var ErrRunNotFound = errors.New("run not found")

// Run is one archived planning session.
type Run struct {
	ID           string
	Label        string
	Seed         uint64
	CreatedAt    time.Time
	Entries      []meeting.Entry
	Reservations []meeting.Reservation

	// Set by ListRuns, which does not load rows.
	EntryCount       int
	ReservationCount int
}

// SQLite stores runs in a SQLite database.
type SQLite struct {
	db *sql.DB
}

// New opens the archive at path and runs migrations.
func New(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	// Pragmas are per connection.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(`PRAGMA foreign_keys = ON`); err != nil {
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	s := &SQLite{db: db}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close releases database resources.
func (s *SQLite) Close() error {
	return s.db.Close()
}

// SaveRun writes a run and all its rows in one transaction.
// An empty ID is filled with a new UUID and a zero CreatedAt with the
// current time.
func (s *SQLite) SaveRun(ctx context.Context, run *Run) error {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (id, label, seed, created_at) VALUES (?, ?, ?, ?)`,
		run.ID,
		run.Label,
		int64(run.Seed), // stored as the same 64 bits
		run.CreatedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("inserting run: %w", err)
	}

	entryStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO entries (run_id, position, week, day, start_slot, duration, name, type, frequency)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing statement: %w", err)
	}
	defer func() { _ = entryStmt.Close() }()

	for i, e := range run.Entries {
		_, err := entryStmt.ExecContext(ctx,
			run.ID, i, int(e.Week), int(e.Day), int(e.Start), e.Duration, e.Name, e.Type, string(e.Frequency),
		)
		if err != nil {
			return fmt.Errorf("inserting entry %q: %w", e.Name, err)
		}
	}

	resStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO reservations (run_id, position, day, start_slot, duration)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing statement: %w", err)
	}
	defer func() { _ = resStmt.Close() }()

	for i, r := range run.Reservations {
		if _, err := resStmt.ExecContext(ctx, run.ID, i, int(r.Day), int(r.Start), r.Duration); err != nil {
			return fmt.Errorf("inserting reservation: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	run.EntryCount = len(run.Entries)
	run.ReservationCount = len(run.Reservations)
	return nil
}

// ListRuns returns up to limit runs, newest first, without their rows.
// A non-positive limit returns every run.
func (s *SQLite) ListRuns(ctx context.Context, limit int) ([]*Run, error) {
	if limit <= 0 {
		limit = -1 // SQLite: no limit
	}

	query := `
		SELECT r.id, r.label, r.seed, r.created_at,
		       (SELECT COUNT(*) FROM entries e WHERE e.run_id = r.id),
		       (SELECT COUNT(*) FROM reservations v WHERE v.run_id = r.id)
		FROM runs r
		ORDER BY r.created_at DESC, r.id
		LIMIT ?
	`

	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var runs []*Run
	for rows.Next() {
		var (
			r         Run
			seed      int64
			createdAt string
		)
		if err := rows.Scan(&r.ID, &r.Label, &seed, &createdAt, &r.EntryCount, &r.ReservationCount); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		r.Seed = uint64(seed)
		r.CreatedAt, err = time.Parse(timeLayout, createdAt)
		if err != nil {
			return nil, fmt.Errorf("parsing created at: %w", err)
		}
		runs = append(runs, &r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating runs: %w", err)
	}

	return runs, nil
}

// GetRun loads a run with its entries and reservations in saved order.
// Returns ErrRunNotFound if no run has the ID.
func (s *SQLite) GetRun(ctx context.Context, id string) (*Run, error) {
	var (
		r         Run
		seed      int64
		createdAt string
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT id, label, seed, created_at FROM runs WHERE id = ?`, id,
	).Scan(&r.ID, &r.Label, &seed, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("querying run: %w", err)
	}
	r.Seed = uint64(seed)
	r.CreatedAt, err = time.Parse(timeLayout, createdAt)
	if err != nil {
		return nil, fmt.Errorf("parsing created at: %w", err)
	}

	if r.Entries, err = s.runEntries(ctx, id); err != nil {
		return nil, err
	}
	if r.Reservations, err = s.runReservations(ctx, id); err != nil {
		return nil, err
	}
	r.EntryCount = len(r.Entries)
	r.ReservationCount = len(r.Reservations)

	return &r, nil
}

func (s *SQLite) runEntries(ctx context.Context, id string) ([]meeting.Entry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT week, day, start_slot, duration, name, type, frequency
		FROM entries
		WHERE run_id = ?
		ORDER BY position
	`, id)
	if err != nil {
		return nil, fmt.Errorf("querying entries: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var entries []meeting.Entry
	for rows.Next() {
		var (
			e               meeting.Entry
			week, day, slot int
			freq            string
		)
		if err := rows.Scan(&week, &day, &slot, &e.Duration, &e.Name, &e.Type, &freq); err != nil {
			return nil, fmt.Errorf("scanning entry: %w", err)
		}
		e.Week = calendar.Week(week)
		e.Day = calendar.Day(day)
		e.Start = calendar.Slot(slot)
		e.Frequency = meeting.Frequency(freq)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating entries: %w", err)
	}
	return entries, nil
}

func (s *SQLite) runReservations(ctx context.Context, id string) ([]meeting.Reservation, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT day, start_slot, duration
		FROM reservations
		WHERE run_id = ?
		ORDER BY position
	`, id)
	if err != nil {
		return nil, fmt.Errorf("querying reservations: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var reservations []meeting.Reservation
	for rows.Next() {
		var (
			r         meeting.Reservation
			day, slot int
		)
		if err := rows.Scan(&day, &slot, &r.Duration); err != nil {
			return nil, fmt.Errorf("scanning reservation: %w", err)
		}
		r.Day = calendar.Day(day)
		r.Start = calendar.Slot(slot)
		reservations = append(reservations, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating reservations: %w", err)
	}
	return reservations, nil
}

// DeleteRun removes a run and its rows.
func (s *SQLite) DeleteRun(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM runs WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting run: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}

	return nil
}
