// Package redis implements storage.Store backed by Redis. The whole
// wizard state for a client is stored as a JSON value under
// "wizard:state:{key}", with an optional TTL so abandoned traversals
// expire on their own.
//
// Usage:
//
//	client := redis.NewClient(&redis.Options{Addr: "localhost:6379"})
//	s := redisstore.New(client, sessionKey)
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/xraph/formwizard/storage"
)

// keyPrefix namespaces all wizard keys to avoid collisions.
const keyPrefix = "wizard:state:"

// Compile-time interface check.
var _ storage.Store = (*Store)(nil)

// Option configures the Store.
type Option func(*Store)

// WithLogger sets a custom logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// WithTTL sets an expiry applied on every write. Zero (the default)
// keeps state until Reset.
func WithTTL(d time.Duration) Option {
	return func(s *Store) { s.ttl = d }
}

// Store implements storage.Store backed by Redis for a single client
// key. The caller owns the Redis client lifecycle.
type Store struct {
	storage.Blob

	client redis.Cmdable
	key    string
	ttl    time.Duration
	logger *slog.Logger
}

// New creates a Store for the given client key (typically the host
// session identifier).
func New(client redis.Cmdable, key string, opts ...Option) *Store {
	s := &Store{
		client: client,
		key:    keyPrefix + key,
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

// Client returns the underlying Redis client.
func (s *Store) Client() redis.Cmdable { return s.client }

// Ping verifies the Redis connection is alive.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *Store) load(ctx context.Context) (*storage.State, error) {
	raw, err := s.client.Get(ctx, s.key).Result()
	if errors.Is(err, redis.Nil) {
		return storage.NewState(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis: load wizard state %q: %w", s.key, err)
	}

	state := &storage.State{}
	if err := json.Unmarshal([]byte(raw), state); err != nil {
		return nil, fmt.Errorf("redis: decode wizard state %q: %w", s.key, err)
	}
	state.Normalize()
	return state, nil
}

func (s *Store) save(ctx context.Context, state *storage.State) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("redis: encode wizard state %q: %w", s.key, err)
	}
	if err := s.client.Set(ctx, s.key, raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis: save wizard state %q: %w", s.key, err)
	}
	return nil
}

func (s *Store) clear(ctx context.Context) error {
	if err := s.client.Del(ctx, s.key).Err(); err != nil {
		return fmt.Errorf("redis: reset wizard state %q: %w", s.key, err)
	}
	return nil
}
