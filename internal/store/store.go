// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store keeps the ledger of migrated posts in a SQLite database
// inside the Hugo site.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/site-search/pkg/types"
)

const (
	ledgerDir = ".migrator"
	dbFile    = "migrations.db"
)

// Store is the migration ledger.
type Store struct {
	db *sql.DB
}

// Path returns the ledger location for a Hugo site.
func Path(hugoRoot string) string {
	return filepath.Join(hugoRoot, ledgerDir, dbFile)
}

// Open opens or creates the ledger of the Hugo site at hugoRoot.
func Open(hugoRoot string) (*Store, error) {
	path := Path(hugoRoot)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating ledger directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS migrations (
		url TEXT PRIMARY KEY,
		slug TEXT NOT NULL,
		title TEXT NOT NULL,
		post_path TEXT NOT NULL,
		migrated_at TEXT NOT NULL
	)`)
	return err
}

// Has reports whether url has been migrated.
func (s *Store) Has(ctx context.Context, url string) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx, `SELECT 1 FROM migrations WHERE url = ?`, url).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("querying ledger: %w", err)
	}
	return true, nil
}

// Record stores m, replacing an earlier record of the same URL.
func (s *Store) Record(ctx context.Context, m types.Migration) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO migrations (url, slug, title, post_path, migrated_at)
		VALUES (?, ?, ?, ?, ?)`,
		m.URL, m.Slug, m.Title, m.PostPath, m.MigratedAt.UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("recording %s: %w", m.URL, err)
	}
	return nil
}

// List returns all records ordered by URL.
func (s *Store) List(ctx context.Context) ([]types.Migration, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT url, slug, title, post_path, migrated_at FROM migrations ORDER BY url`)
	if err != nil {
		return nil, fmt.Errorf("listing ledger: %w", err)
	}
	defer rows.Close()

	var out []types.Migration
	for rows.Next() {
		var m types.Migration
		var at string
		if err := rows.Scan(&m.URL, &m.Slug, &m.Title, &m.PostPath, &at); err != nil {
			return nil, fmt.Errorf("scanning ledger row: %w", err)
		}
		if m.MigratedAt, err = time.Parse(time.RFC3339, at); err != nil {
			return nil, fmt.Errorf("parsing migrated_at of %s: %w", m.URL, err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}
