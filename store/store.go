// Package store persists project snapshots in a SQLite database.
//
// Only domain data is stored. Tree view state (widgets, disclosure state)
// is rebuilt from the project on every run.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/phanxgames/arbor/project"

	_ "modernc.org/sqlite"
)

const schemaVersion = 1

// Store is an open project database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the database at path and migrates its schema.
func Open(ctx context.Context, path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("open store %q: %w", path, err)
		}
	}
	// modernc.org/sqlite registers as "sqlite".
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open store %q: %w", path, err)
	}
	// one connection keeps pragmas applied to every statement
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA foreign_keys=ON;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("open store %q: %w", path, err)
		}
	}
	if err := migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate store %q: %w", path, err)
	}
	return &Store{db: db}, nil
}

func migrate(ctx context.Context, db *sql.DB) error {
	var version int
	if err := db.QueryRowContext(ctx, "PRAGMA user_version;").Scan(&version); err != nil {
		return err
	}
	if version > schemaVersion {
		return fmt.Errorf("schema version %d is newer than supported %d", version, schemaVersion)
	}
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS items (
			uuid TEXT PRIMARY KEY,
			parent TEXT,
			position INTEGER NOT NULL,
			name TEXT NOT NULL,
			kind TEXT NOT NULL,
			source TEXT NOT NULL DEFAULT ''
		);`,
		`CREATE INDEX IF NOT EXISTS idx_items_position ON items(position);`,
		fmt.Sprintf("PRAGMA user_version=%d;", schemaVersion),
	}
	for _, st := range stmts {
		if _, err := db.ExecContext(ctx, st); err != nil {
			return err
		}
	}
	return nil
}

// Save replaces the stored snapshot with records in one transaction.
func (s *Store) Save(ctx context.Context, records []project.Record) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("save: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, "DELETE FROM items;"); err != nil {
		return fmt.Errorf("save: %w", err)
	}
	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO items(uuid, parent, position, name, kind, source) VALUES (?, ?, ?, ?, ?, ?);`)
	if err != nil {
		return fmt.Errorf("save: %w", err)
	}
	defer stmt.Close()

	for i, r := range records {
		var parent sql.NullString
		if r.Parent != uuid.Nil {
			parent = sql.NullString{String: r.Parent.String(), Valid: true}
		}
		if _, err = stmt.ExecContext(ctx, r.UUID.String(), parent, i, r.Name, r.Kind.String(), r.Source); err != nil {
			return fmt.Errorf("save %s: %w", r.UUID, err)
		}
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("save: %w", err)
	}
	return nil
}

// Load returns the stored snapshot in the order it was saved.
func (s *Store) Load(ctx context.Context) ([]project.Record, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT uuid, parent, name, kind, source FROM items ORDER BY position;`)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	defer rows.Close()

	var records []project.Record
	for rows.Next() {
		var (
			id, name, kind, source string
			parent                 sql.NullString
		)
		if err := rows.Scan(&id, &parent, &name, &kind, &source); err != nil {
			return nil, fmt.Errorf("load: %w", err)
		}
		r := project.Record{Name: name, Source: source}
		if r.UUID, err = uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("load item %q: %w", id, err)
		}
		if parent.Valid {
			if r.Parent, err = uuid.Parse(parent.String); err != nil {
				return nil, fmt.Errorf("load item %q parent: %w", id, err)
			}
		}
		if r.Kind, err = project.ParseKind(kind); err != nil {
			return nil, fmt.Errorf("load item %q: %w", id, err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	return records, nil
}

// Close closes the database.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	if err != nil && !errors.Is(err, sql.ErrConnDone) {
		return err
	}
	return nil
}
