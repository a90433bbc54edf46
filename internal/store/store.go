// Package store handles SQLite persistence.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/verte-zerg/moodpeek/internal/calendar"
	"github.com/verte-zerg/moodpeek/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

var (
	// ErrNotFound is returned when no entry matches an ID.
	ErrNotFound = errors.New("entry not found")
	// ErrAmbiguousID is returned when an ID prefix matches several entries.
	ErrAmbiguousID = errors.New("id prefix matches more than one entry")
)

// Store wraps SQLite access for journal entries.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS entries (
			id TEXT PRIMARY KEY,
			date TEXT NOT NULL,
			mood TEXT NOT NULL,
			tags TEXT NOT NULL DEFAULT '[]',
			city TEXT NOT NULL DEFAULT '',
			note TEXT NOT NULL DEFAULT '',
			created_at TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_entries_date ON entries(date);`,
		`CREATE INDEX IF NOT EXISTS idx_entries_mood ON entries(mood);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// InsertEntry stores an entry and returns it with its ID and creation time
// filled in. The date text is stored as given.
func (s *Store) InsertEntry(ctx context.Context, e model.Entry) (model.Entry, error) {
	if !model.ValidMood(e.Mood) {
		return model.Entry{}, fmt.Errorf("unknown mood %q", e.Mood)
	}
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}
	if e.Tags == nil {
		e.Tags = []string{}
	}
	tags, err := json.Marshal(e.Tags)
	if err != nil {
		return model.Entry{}, err
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO entries (id, date, mood, tags, city, note, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.ID,
		e.Date,
		e.Mood,
		string(tags),
		e.City,
		e.Note,
		e.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return model.Entry{}, err
	}
	return e, nil
}

// InsertEntries stores entries in one transaction.
func (s *Store) InsertEntries(ctx context.Context, entries []model.Entry) (n int, err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				// Best-effort rollback.
				_ = rerr
			}
		}
	}()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO entries (id, date, mood, tags, city, note, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, err
	}
	defer func() {
		if cerr := stmt.Close(); cerr != nil {
			// Best-effort statement close.
			_ = cerr
		}
	}()

	now := time.Now()
	for i, e := range entries {
		if !model.ValidMood(e.Mood) {
			return 0, fmt.Errorf("entry %d: unknown mood %q", i+1, e.Mood)
		}
		if e.ID == "" {
			e.ID = uuid.New().String()
		}
		if e.CreatedAt.IsZero() {
			e.CreatedAt = now
		}
		if e.Tags == nil {
			e.Tags = []string{}
		}
		tags, err := json.Marshal(e.Tags)
		if err != nil {
			return 0, err
		}
		if _, err := stmt.ExecContext(ctx, e.ID, e.Date, e.Mood, string(tags), e.City, e.Note,
			e.CreatedAt.Format(time.RFC3339Nano)); err != nil {
			return 0, fmt.Errorf("entry %d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return len(entries), nil
}

// GetEntry returns the entry whose ID is id or starts with it.
func (s *Store) GetEntry(ctx context.Context, id string) (model.Entry, error) {
	full, err := s.resolveID(ctx, id)
	if err != nil {
		return model.Entry{}, err
	}
	row := s.db.QueryRowContext(ctx,
		`SELECT id, date, mood, tags, city, note, created_at FROM entries WHERE id = ?`, full)
	e, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Entry{}, ErrNotFound
	}
	return e, err
}

// DeleteEntry removes the entry whose ID is id or starts with it and
// returns the full ID.
func (s *Store) DeleteEntry(ctx context.Context, id string) (string, error) {
	full, err := s.resolveID(ctx, id)
	if err != nil {
		return "", err
	}
	res, err := s.db.ExecContext(ctx, `DELETE FROM entries WHERE id = ?`, full)
	if err != nil {
		return "", err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return "", err
	}
	if n == 0 {
		return "", ErrNotFound
	}
	return full, nil
}

// resolveID expands a unique ID prefix. An exact match always wins.
func (s *Store) resolveID(ctx context.Context, prefix string) (string, error) {
	if prefix == "" {
		return "", ErrNotFound
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id FROM entries WHERE substr(id, 1, length(?)) = ? ORDER BY id LIMIT 2`, prefix, prefix)
	if err != nil {
		return "", err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return "", err
		}
		if id == prefix {
			return id, nil
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return "", err
	}
	switch len(ids) {
	case 0:
		return "", ErrNotFound
	case 1:
		return ids[0], nil
	default:
		return "", ErrAmbiguousID
	}
}

// CountEntries returns the number of stored entries.
func (s *Store) CountEntries(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM entries`).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// ListEntries returns entries matching filter, oldest first by the instant
// each date names. Entries with malformed dates come last.
//
// Mood, tag and city are matched in SQL. The day range is applied after parsing
// each date, so malformed dates are only returned by unbounded listings.
func (s *Store) ListEntries(ctx context.Context, filter model.ListFilter) ([]model.Entry, error) {
	clauses := []string{"1=1"}
	args := []any{}
	if filter.Mood != "" {
		clauses = append(clauses, "mood = ?")
		args = append(args, filter.Mood)
	}
	if filter.Tag != "" {
		clauses = append(clauses, "EXISTS (SELECT 1 FROM json_each(entries.tags) WHERE json_each.value = ?)")
		args = append(args, filter.Tag)
	}
	if filter.City != "" {
		clauses = append(clauses, "city = ? COLLATE NOCASE")
		args = append(args, filter.City)
	}
	query := fmt.Sprintf(`SELECT id, date, mood, tags, city, note, created_at
		FROM entries
		WHERE %s
		ORDER BY date ASC, created_at ASC`, strings.Join(clauses, " AND "))
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	ranged := filter.Since != nil || filter.Until != nil
	var entries []model.Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		if ranged && !inRange(e.Date, filter.Since, filter.Until) {
			continue
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	model.SortByTime(entries)
	if filter.Last > 0 && len(entries) > filter.Last {
		entries = entries[len(entries)-filter.Last:]
	}
	return entries, nil
}

func inRange(raw string, since, until *calendar.Date) bool {
	day, ok := calendar.Normalize(raw)
	if !ok {
		return false
	}
	if since != nil && day.Before(*since) {
		return false
	}
	if until != nil && !day.Before(*until) {
		return false
	}
	return true
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(row scanner) (model.Entry, error) {
	var e model.Entry
	var tags, createdAt string
	if err := row.Scan(&e.ID, &e.Date, &e.Mood, &tags, &e.City, &e.Note, &createdAt); err != nil {
		return model.Entry{}, err
	}
	if err := json.Unmarshal([]byte(tags), &e.Tags); err != nil {
		return model.Entry{}, fmt.Errorf("entry %s: bad tags: %w", e.ID, err)
	}
	parsed, err := time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return model.Entry{}, err
	}
	e.CreatedAt = parsed
	return e, nil
}
