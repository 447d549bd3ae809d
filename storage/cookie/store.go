// Package cookie implements storage.Store as a signed client-side
// payload. The whole wizard state is serialized into an HS256-signed
// token suitable for a browser cookie; nothing is kept server-side.
//
// The web adapter feeds the request cookie in with SetToken before
// handling and writes Token() back out afterwards. A forged or
// corrupted token surfaces ErrTampered from every operation.
package cookie

import (
	"context"
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"github.com/xraph/formwizard/storage"
)

// ErrTampered is returned when the inbound token fails signature or
// structure checks.
var ErrTampered = errors.New("cookie: wizard cookie is missing a valid signature")

// Compile-time interface check.
var _ storage.Store = (*Store)(nil)

// Store holds the decoded state between SetToken and Token. It is
// request-scoped: create one per request from the inbound cookie.
type Store struct {
	storage.Blob

	secret []byte

	state   *storage.State // decoded lazily from the inbound token
	token   string
	dirty   bool
	cleared bool
}

// New creates a Store signing with secret. Use SetToken to seed it
// from an inbound cookie value; an empty token starts a fresh state.
func New(secret []byte) *Store {
	s := &Store{secret: secret}
	s.Blob = storage.Blob{
		Load:  s.load,
		Save:  s.save,
		Clear: s.clear,
	}
	return s
}

// SetToken seeds the store from the inbound cookie value.
func (s *Store) SetToken(token string) {
	s.token = token
	s.state = nil
	s.dirty = false
	s.cleared = false
}

// Token returns the signed outbound cookie value and whether it
// changed during the request. After Reset the token is empty and
// changed is true, signalling cookie deletion.
func (s *Store) Token() (token string, changed bool) {
	return s.token, s.dirty
}

// Cleared reports whether the last mutation was a Reset, meaning the
// outbound cookie should be deleted rather than rewritten.
func (s *Store) Cleared() bool { return s.cleared }

type stateClaims struct {
	State *storage.State `json:"state"`
	jwt.RegisteredClaims
}

func (s *Store) load(_ context.Context) (*storage.State, error) {
	if s.state != nil {
		return s.state, nil
	}
	if s.token == "" {
		s.state = storage.NewState()
		return s.state, nil
	}

	claims := &stateClaims{}
	_, err := jwt.ParseWithClaims(s.token, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return s.secret, nil
	})
	if err != nil || claims.State == nil {
		return nil, fmt.Errorf("%w: %v", ErrTampered, err)
	}

	claims.State.Normalize()
	s.state = claims.State
	return s.state, nil
}

func (s *Store) save(_ context.Context, state *storage.State) error {
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &stateClaims{State: state}).
		SignedString(s.secret)
	if err != nil {
		return fmt.Errorf("cookie: sign wizard state: %w", err)
	}
	s.state = state
	s.token = token
	s.dirty = true
	s.cleared = false
	return nil
}

func (s *Store) clear(_ context.Context) error {
	s.state = storage.NewState()
	s.token = ""
	s.dirty = true
	s.cleared = true
	return nil
}
