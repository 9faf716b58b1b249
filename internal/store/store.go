// Package store persists assessment results, placements and seeded lesson
// catalogs in SQLite. It sits outside the scoring core: nothing in the core
// packages imports it.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
	"github.com/google/uuid"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

// Clock returns the current time. Tests inject a fixed clock.
type Clock func() time.Time

// Store holds the database handle and provides access to repositories.
type Store struct {
	db    *sql.DB
	drv   *entsql.Driver
	now   Clock
	newID func() string
}

// Option configures a Store.
type Option func(*Store)

// WithClock sets the clock used for record timestamps.
func WithClock(c Clock) Option {
	return func(s *Store) { s.now = c }
}

// WithIDs sets the record ID generator.
func WithIDs(f func() string) Option {
	return func(s *Store) { s.newID = f }
}

// Open creates a new Store connected to the SQLite database at dsn.
// It applies recommended pragmas and creates the schema.
func Open(dsn string, opts ...Option) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// Pragmas are per connection and SQLite allows one writer.
	db.SetMaxOpenConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}

	s := &Store{
		db:    db,
		drv:   entsql.OpenDB(dialect.SQLite, db),
		now:   func() time.Time { return time.Now().UTC() },
		newID: func() string { return uuid.NewString() },
	}
	for _, o := range opts {
		o(s)
	}

	if err := s.migrate(context.Background()); err != nil {
		s.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	slog.Debug("store opened", "dsn", dsn)
	return s, nil
}

// DB returns the underlying *sql.DB for raw queries.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.drv.Close()
}

// Assessments returns an AssessmentRepo backed by this store.
func (s *Store) Assessments() AssessmentRepo {
	return &assessmentRepo{s: s}
}

// Placements returns a PlacementRepo backed by this store.
func (s *Store) Placements() PlacementRepo {
	return &placementRepo{s: s}
}

// Catalogs returns a CatalogRepo backed by this store.
func (s *Store) Catalogs() CatalogRepo {
	return &catalogRepo{s: s}
}

// builder returns a SQL builder for the SQLite dialect.
func builder() *entsql.DialectBuilder {
	return entsql.Dialect(dialect.SQLite)
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS assessments (
		id TEXT PRIMARY KEY,
		learner_id TEXT NOT NULL,
		created_at TEXT NOT NULL,
		overall_band TEXT NOT NULL,
		confidence TEXT NOT NULL,
		profile TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS assessments_learner_created ON assessments (learner_id, created_at)`,
	`CREATE TABLE IF NOT EXISTS placements (
		id TEXT PRIMARY KEY,
		learner_id TEXT NOT NULL,
		assessment_id TEXT REFERENCES assessments (id) ON DELETE SET NULL,
		created_at TEXT NOT NULL,
		level TEXT NOT NULL,
		learner_group TEXT NOT NULL,
		confidence TEXT NOT NULL,
		method TEXT NOT NULL,
		result TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS placements_learner_created ON placements (learner_id, created_at)`,
	`CREATE TABLE IF NOT EXISTS catalog_versions (
		version TEXT PRIMARY KEY,
		seeded_at TEXT NOT NULL,
		lesson_count INTEGER NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS catalog_lessons (
		version TEXT NOT NULL REFERENCES catalog_versions (version) ON DELETE CASCADE,
		slug TEXT NOT NULL,
		level TEXT NOT NULL,
		position INTEGER NOT NULL,
		lesson TEXT NOT NULL,
		PRIMARY KEY (version, slug)
	)`,
}

func (s *Store) migrate(ctx context.Context) error {
	for _, stmt := range schema {
		if err := s.drv.Exec(ctx, stmt, []any{}, nil); err != nil {
			return err
		}
	}
	return nil
}

// applyPragmas configures SQLite for optimal single-user performance.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}

// DefaultDBPath resolves the database file path in priority order:
// 1. NBPLACE_DB environment variable
// 2. $XDG_DATA_HOME/nbplace/nbplace.db
// 3. ~/.local/share/nbplace/nbplace.db
func DefaultDBPath() (string, error) {
	if p := os.Getenv("NBPLACE_DB"); p != "" {
		return p, EnsureDir(p)
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	p := filepath.Join(dataHome, "nbplace", "nbplace.db")
	return p, EnsureDir(p)
}

// EnsureDir creates the parent directory of path if it doesn't exist.
func EnsureDir(path string) error {
	dir := filepath.Dir(path)
	return os.MkdirAll(dir, 0o755)
}
