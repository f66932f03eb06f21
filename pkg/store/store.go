// Package store keeps a catalog of serialized programs in SQLite.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // SQLite

	"ir/interpreter-go/pkg/ast"
	"ir/interpreter-go/pkg/serializer"
)

var ErrNotFound = errors.New("store: program not found")

const schema = `CREATE TABLE IF NOT EXISTS programs (
	name       TEXT PRIMARY KEY,
	body       BLOB NOT NULL,
	statements INTEGER NOT NULL,
	saved_at   TEXT NOT NULL
)`

// Entry describes a stored program without its body.
type Entry struct {
	Name       string
	Statements int
	SavedAt    time.Time
}

type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens (creating if needed) the catalog at path. Use ":memory:" for a
// throwaway catalog.
func Open(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("store: open %s: %w", path, err)
	}
	// One connection keeps ":memory:" catalogs coherent.
	db.SetMaxOpenConns(1)
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: open %s: %w", path, err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: create schema: %w", err)
	}
	return &Store{db: db, now: time.Now}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Save stores program under name, replacing any previous version.
func (s *Store) Save(ctx context.Context, name string, program []ast.Statement) error {
	if name == "" {
		return fmt.Errorf("store: program name is required")
	}
	body, err := serializer.Serialize(program)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO programs (name, body, statements, saved_at) VALUES (?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET body = excluded.body, statements = excluded.statements, saved_at = excluded.saved_at`,
		name, body, len(program), s.now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("store: save %s: %w", name, err)
	}
	return nil
}

// Load returns the program stored under name.
func (s *Store) Load(ctx context.Context, name string) ([]ast.Statement, error) {
	var body []byte
	err := s.db.QueryRowContext(ctx, `SELECT body FROM programs WHERE name = ?`, name).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("store: load %s: %w", name, err)
	}
	return serializer.Deserialize(body)
}

// List returns every entry ordered by name.
func (s *Store) List(ctx context.Context) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT name, statements, saved_at FROM programs ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("store: list: %w", err)
	}
	defer rows.Close()
	var entries []Entry
	for rows.Next() {
		var (
			entry   Entry
			savedAt string
		)
		if err := rows.Scan(&entry.Name, &entry.Statements, &savedAt); err != nil {
			return nil, fmt.Errorf("store: list: %w", err)
		}
		entry.SavedAt, err = time.Parse(time.RFC3339Nano, savedAt)
		if err != nil {
			return nil, fmt.Errorf("store: list: bad timestamp for %s: %w", entry.Name, err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("store: list: %w", err)
	}
	return entries, nil
}

// Delete removes name. Deleting a missing program returns ErrNotFound.
func (s *Store) Delete(ctx context.Context, name string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM programs WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("store: delete %s: %w", name, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("store: delete %s: %w", name, err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return nil
}
