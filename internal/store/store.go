// Package store provides the SQLite-backed credential store, transaction ledger
// and budget table.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/theirongolddev/tally/internal/log"

	_ "modernc.org/sqlite" // register sqlite driver
)

var (
	// ErrDuplicateUsername is returned when registering a taken username.
	ErrDuplicateUsername = errors.New("username already exists")
	// ErrNotFound is returned when a lookup matches no row.
	ErrNotFound = errors.New("not found")
)

// Store is a handle on the tally database.
type Store struct {
	db   *sql.DB
	path string
	log  *log.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for storage events.
func WithLogger(l *log.Logger) Option {
	return func(s *Store) {
		s.log = l.WithComponent(log.ComponentStorage)
	}
}

// Open opens or creates the database at dbPath and applies pending migrations.
func Open(dbPath string, opts ...Option) (*Store, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating db dir: %w", err)
	}

	s := &Store{path: dbPath, log: log.Discard()}
	for _, opt := range opts {
		opt(s)
	}

	dsn := dbPath + "?_pragma=foreign_keys(on)&_pragma=journal_mode(wal)&_pragma=busy_timeout(5000)"

	err := runMigrations(dsn)
	s.log.Op(context.Background(), log.OpMigrate, err, log.FieldPath, dbPath)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening db: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("pinging db: %w", err)
	}

	s.db = db
	return s, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}
