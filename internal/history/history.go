// Package history records recently viewed diffs in a local SQLite
// database. Recording is best-effort: a broken or missing database
// never blocks viewing a diff.
package history

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/google/uuid"
	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"

	"github.com/zjrosen/patchview/internal/log"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Entry is a single recorded diff view.
type Entry struct {
	ID        string
	Path      string
	Files     int
	Additions int
	Deletions int
	ViewedAt  time.Time
}

// Store provides access to the view history database.
type Store struct {
	db         *sql.DB
	maxEntries int
}

// Open opens (creating if needed) the history database at path and
// applies pending migrations. maxEntries caps retained records; zero
// means unlimited.
func Open(path string, maxEntries int) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, fmt.Errorf("creating history directory: %w", err)
	}

	log.Debug(log.CatHistory, "Opening history database", "path", path)
	db, err := sql.Open("sqlite3", "file:"+path)
	if err != nil {
		log.ErrorErr(log.CatHistory, "Failed to open history database", err, "path", path)
		return nil, fmt.Errorf("opening history database: %w", err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		log.ErrorErr(log.CatHistory, "Failed to ping history database", err, "path", path)
		return nil, fmt.Errorf("pinging history database: %w", err)
	}

	if err := runMigrations(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Store{db: db, maxEntries: maxEntries}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func runMigrations(db *sql.DB) error {
	source, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("loading migrations: %w", err)
	}

	driver, err := sqlite.WithInstance(db, &sqlite.Config{})
	if err != nil {
		return fmt.Errorf("preparing migration driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, "sqlite", driver)
	if err != nil {
		return fmt.Errorf("creating migrator: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("applying migrations: %w", err)
	}

	log.Debug(log.CatHistory, "History schema up to date")
	return nil
}

// Add records a viewed diff and prunes entries beyond the cap.
func (s *Store) Add(path string, files, additions, deletions int) error {
	id := uuid.NewString()
	_, err := s.db.Exec(
		`INSERT INTO entries (id, path, files, additions, deletions, viewed_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		id, path, files, additions, deletions, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("recording history entry: %w", err)
	}

	log.Debug(log.CatHistory, "Recorded view", "id", id, "path", path, "files", files)

	if s.maxEntries > 0 {
		if err := s.prune(); err != nil {
			return err
		}
	}
	return nil
}

// prune deletes the oldest entries beyond the configured cap.
func (s *Store) prune() error {
	_, err := s.db.Exec(
		`DELETE FROM entries WHERE id NOT IN (
			SELECT id FROM entries ORDER BY viewed_at DESC LIMIT ?
		)`,
		s.maxEntries,
	)
	if err != nil {
		return fmt.Errorf("pruning history: %w", err)
	}
	return nil
}

// Recent returns up to limit entries, most recent first.
func (s *Store) Recent(limit int) ([]Entry, error) {
	rows, err := s.db.Query(
		`SELECT id, path, files, additions, deletions, viewed_at
		 FROM entries ORDER BY viewed_at DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("querying history: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.Path, &e.Files, &e.Additions, &e.Deletions, &e.ViewedAt); err != nil {
			return nil, fmt.Errorf("scanning history entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading history: %w", err)
	}
	return entries, nil
}

// Clear removes all history entries.
func (s *Store) Clear() error {
	_, err := s.db.Exec(`DELETE FROM entries`)
	if err != nil {
		return fmt.Errorf("clearing history: %w", err)
	}
	log.Info(log.CatHistory, "History cleared")
	return nil
}

// Count returns the number of stored entries.
func (s *Store) Count() (int, error) {
	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM entries`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting history entries: %w", err)
	}
	return n, nil
}
