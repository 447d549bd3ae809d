// Package sqlite implements storage.Store on SQLite through
// database/sql with the pure-Go modernc driver. Each client key owns
// one row in the wizard_state table holding the JSON-encoded state.
//
// Usage:
//
//	db, err := sql.Open("sqlite", "file:wizard.db")
//	if err != nil { ... }
//	if err := sqlitestore.Migrate(ctx, db); err != nil { ... }
//	s := sqlitestore.New(db, sessionKey)
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	_ "modernc.org/sqlite" // register the "sqlite" driver

	"github.com/xraph/formwizard/storage"
)

// Schema is the DDL required by this backend.
const Schema = `
CREATE TABLE IF NOT EXISTS wizard_state (
    key        TEXT PRIMARY KEY,
    state      TEXT NOT NULL,
    updated_at TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%fZ','now'))
);`

// Compile-time interface check.
var _ storage.Store = (*Store)(nil)

// Option configures the Store.
type Option func(*Store)

// WithLogger sets a custom logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// Store implements storage.Store on a sql.DB for a single client key.
// The caller owns the database handle lifecycle.
type Store struct {
	storage.Blob

	db     *sql.DB
	key    string
	logger *slog.Logger
}

// New creates a Store for the given client key.
func New(db *sql.DB, key string, opts ...Option) *Store {
	s := &Store{
		db:     db,
		key:    key,
		logger: slog.Default(),
	}
	for _, o := range opts {
		o(s)
	}
	s.Blob = storage.Blob{
		Load:  s.load,
		Save:  s.save,
		Clear: s.clear,
	}
	return s
}

// Migrate creates the wizard_state table if needed.
func Migrate(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, Schema); err != nil {
		return fmt.Errorf("sqlite: migrate wizard_state: %w", err)
	}
	return nil
}

func (s *Store) load(ctx context.Context) (*storage.State, error) {
	var raw string
	err := s.db.QueryRowContext(ctx,
		`SELECT state FROM wizard_state WHERE key = ?`, s.key,
	).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return storage.NewState(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("sqlite: load wizard state %q: %w", s.key, err)
	}

	state := &storage.State{}
	if err := json.Unmarshal([]byte(raw), state); err != nil {
		return nil, fmt.Errorf("sqlite: decode wizard state %q: %w", s.key, err)
	}
	state.Normalize()
	return state, nil
}

func (s *Store) save(ctx context.Context, state *storage.State) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("sqlite: encode wizard state %q: %w", s.key, err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO wizard_state (key, state, updated_at)
		VALUES (?, ?, strftime('%Y-%m-%dT%H:%M:%fZ','now'))
		ON CONFLICT (key) DO UPDATE SET
		    state = excluded.state,
		    updated_at = excluded.updated_at`,
		s.key, string(raw))
	if err != nil {
		return fmt.Errorf("sqlite: save wizard state %q: %w", s.key, err)
	}
	return nil
}

func (s *Store) clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx,
		`DELETE FROM wizard_state WHERE key = ?`, s.key); err != nil {
		return fmt.Errorf("sqlite: reset wizard state %q: %w", s.key, err)
	}
	return nil
}
