// Package postgres implements storage.Store on PostgreSQL via pgx.
// Each client key owns one row in the wizard_state table holding the
// JSON-encoded state.
package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/xraph/formwizard/storage"
)

// Schema is the DDL required by this backend. Callers run it once at
// deploy time (or via Migrate).
const Schema = `
CREATE TABLE IF NOT EXISTS wizard_state (
    key        TEXT PRIMARY KEY,
    state      JSONB NOT NULL,
    updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);`

// Compile-time interface check.
var _ storage.Store = (*Store)(nil)

// Option configures the Store.
type Option func(*Store)

// WithLogger sets a custom logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// Store implements storage.Store on a pgx pool for a single client
// key. The caller owns the pool lifecycle.
type Store struct {
	storage.Blob

	pool   *pgxpool.Pool
	key    string
	logger *slog.Logger
}

// New creates a Store for the given client key.
func New(pool *pgxpool.Pool, key string, opts ...Option) *Store {
	s := &Store{
		pool:   pool,
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
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, Schema); err != nil {
		return fmt.Errorf("postgres: migrate wizard_state: %w", err)
	}
	return nil
}

// Ping checks database connectivity.
func (s *Store) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

func (s *Store) load(ctx context.Context) (*storage.State, error) {
	var raw []byte
	err := s.pool.QueryRow(ctx,
		`SELECT state FROM wizard_state WHERE key = $1`, s.key,
	).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return storage.NewState(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("postgres: load wizard state %q: %w", s.key, err)
	}

	state := &storage.State{}
	if err := json.Unmarshal(raw, state); err != nil {
		return nil, fmt.Errorf("postgres: decode wizard state %q: %w", s.key, err)
	}
	state.Normalize()
	return state, nil
}

func (s *Store) save(ctx context.Context, state *storage.State) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("postgres: encode wizard state %q: %w", s.key, err)
	}
	_, err = s.pool.Exec(ctx, `
		INSERT INTO wizard_state (key, state, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE SET state = $2, updated_at = now()`,
		s.key, raw)
	if err != nil {
		return fmt.Errorf("postgres: save wizard state %q: %w", s.key, err)
	}
	return nil
}

func (s *Store) clear(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx,
		`DELETE FROM wizard_state WHERE key = $1`, s.key); err != nil {
		return fmt.Errorf("postgres: reset wizard state %q: %w", s.key, err)
	}
	return nil
}
