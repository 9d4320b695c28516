// Package storage persists hackathon listings to a local sqlite database.
//
// The table is keyed by listing link: re-running the pipeline upserts fresh
// data over stale rows, and rows whose registration-end date has passed are
// deleted on every run.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/rsrinivasan/hackradar/internal/event"
)

const schema = `
CREATE TABLE IF NOT EXISTS hackathons (
	link         TEXT PRIMARY KEY,
	title        TEXT NOT NULL,
	organizer    TEXT NOT NULL DEFAULT '',
	mode         TEXT NOT NULL DEFAULT 'Online',
	reg_end_date TEXT NOT NULL,
	location     TEXT NOT NULL DEFAULT '',
	image_url    TEXT NOT NULL DEFAULT '',
	source       TEXT NOT NULL,
	updated_at   TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_hackathons_reg_end_date ON hackathons (reg_end_date);
`

// Store wraps the sqlite database holding collected listings.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the database at path. "~/" prefixes expand
// to the home directory; ":memory:" gives an ephemeral database for tests.
func Open(path string) (*Store, error) {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		path = filepath.Join(home, path[2:])
	}

	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("creating data directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("applying schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Upsert writes events in batches, inserting new links and refreshing
// existing ones. Returns the number of rows written.
func (s *Store) Upsert(ctx context.Context, events []*event.Event, batchSize int) (int, error) {
	if batchSize <= 0 {
		batchSize = 200
	}

	written := 0
	for start := 0; start < len(events); start += batchSize {
		end := start + batchSize
		if end > len(events) {
			end = len(events)
		}
		n, err := s.upsertBatch(ctx, events[start:end])
		written += n
		if err != nil {
			return written, err
		}
	}
	return written, nil
}

func (s *Store) upsertBatch(ctx context.Context, batch []*event.Event) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO hackathons (link, title, organizer, mode, reg_end_date, location, image_url, source, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(link) DO UPDATE SET
			title = excluded.title,
			organizer = excluded.organizer,
			mode = excluded.mode,
			reg_end_date = excluded.reg_end_date,
			location = excluded.location,
			image_url = excluded.image_url,
			source = excluded.source,
			updated_at = excluded.updated_at`)
	if err != nil {
		return 0, fmt.Errorf("preparing upsert: %w", err)
	}
	defer stmt.Close()

	now := time.Now().UTC().Format(time.RFC3339)
	written := 0
	for _, e := range batch {
		if _, err := stmt.ExecContext(ctx, e.Link, e.Title, e.Organizer, e.Mode(),
			e.Date, e.Location, e.ImageURL, e.Source, now); err != nil {
			return written, fmt.Errorf("upserting %s: %w", e.Link, err)
		}
		written++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing upsert: %w", err)
	}
	return written, nil
}

// DeleteExpired removes rows whose registration-end date is strictly before
// today. Returns the number of rows deleted.
func (s *Store) DeleteExpired(ctx context.Context, today time.Time) (int, error) {
	cutoff := today.UTC().Format("2006-01-02")
	res, err := s.db.ExecContext(ctx, `DELETE FROM hackathons WHERE reg_end_date < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("deleting expired rows: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("counting deleted rows: %w", err)
	}
	return int(n), nil
}

// List returns all stored listings ordered by registration-end date.
func (s *Store) List(ctx context.Context) ([]*event.Event, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT link, title, organizer, mode, reg_end_date, location, image_url, source
		FROM hackathons
		ORDER BY reg_end_date, title`)
	if err != nil {
		return nil, fmt.Errorf("querying listings: %w", err)
	}
	defer rows.Close()

	var events []*event.Event
	for rows.Next() {
		var e event.Event
		var mode string
		if err := rows.Scan(&e.Link, &e.Title, &e.Organizer, &mode, &e.Date,
			&e.Location, &e.ImageURL, &e.Source); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		e.Offline = mode == "Offline"
		events = append(events, &e)
	}
	return events, rows.Err()
}

// Count returns the number of stored listings.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM hackathons`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting rows: %w", err)
	}
	return n, nil
}
