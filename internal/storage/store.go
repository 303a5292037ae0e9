// Package storage implements the device record store: JSON-serialized values
// keyed by string, plus id-list indexes that emulate secondary lookups over
// the flat key space.
//
// Contract: reads fail soft — an unreadable or undecodable record is reported
// absent and logged, never surfaced as an error. Writes propagate failures to
// the caller. There is no atomicity across keys; an index entry and the
// record it points at are separate writes, and readers tolerate entries that
// resolve to nothing.
package storage

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Store is a key-value record store backed by a local SQLite database.
type Store struct {
	db  *sql.DB
	log *slog.Logger
}

// Open opens (or creates) the record store at dir/gymlog.db and applies any
// pending schema migrations.
func Open(dir string, log *slog.Logger) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating storage dir %s: %w", dir, err)
	}

	dbPath := filepath.Join(dir, "gymlog.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening record store: %w", err)
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrating record store: %w", err)
	}

	return &Store{db: db, log: log}, nil
}

func runMigrations(db *sql.DB) error {
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("loading migrations: %w", err)
	}
	drv, err := sqlite.WithInstance(db, &sqlite.Config{})
	if err != nil {
		return fmt.Errorf("creating migration driver: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", src, "sqlite", drv)
	if err != nil {
		return fmt.Errorf("creating migrator: %w", err)
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("running migrations: %w", err)
	}
	return nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Get reads the record at key into dest. It returns false when the key is
// absent, and also when the read or decode fails — an unreadable record is
// operationally equivalent to a missing one. Failures are logged.
func (s *Store) Get(ctx context.Context, key string, dest any) bool {
	var raw string
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM records WHERE key = ?`, key).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return false
	}
	if err != nil {
		s.log.Error("record read failed", "key", key, "error", err)
		return false
	}
	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		s.log.Error("record decode failed", "key", key, "error", err)
		return false
	}
	return true
}

// Set serializes value as JSON and upserts it at key. Failures are returned
// to the caller to propagate.
func (s *Store) Set(ctx context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encoding record %s: %w", key, err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO records (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
		key, string(raw))
	if err != nil {
		return fmt.Errorf("writing record %s: %w", key, err)
	}
	return nil
}

// Remove deletes the record at key. Absence is not an error.
func (s *Store) Remove(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM records WHERE key = ?`, key); err != nil {
		return fmt.Errorf("removing record %s: %w", key, err)
	}
	return nil
}

// Index reads an id-list index. Absent or unreadable indexes read as empty.
func (s *Store) Index(ctx context.Context, key string) []string {
	var ids []string
	if !s.Get(ctx, key, &ids) {
		return nil
	}
	return ids
}

// SetIndex writes an id-list index. A nil slice is stored as an empty list.
func (s *Store) SetIndex(ctx context.Context, key string, ids []string) error {
	if ids == nil {
		ids = []string{}
	}
	return s.Set(ctx, key, ids)
}
