// Package memory implements storage.Store in process memory. It is the
// server-session style backend: state survives across requests for the
// lifetime of the process. Intended for unit testing, development, and
// single-instance deployments.
package memory

import (
	"context"
	"sync"

	"github.com/xraph/formwizard/form"
	"github.com/xraph/formwizard/storage"
)

// Compile-time interface check.
var _ storage.Store = (*Store)(nil)

// Store is a fully in-memory implementation of storage.Store for one
// client. Safe for concurrent access; concurrent mutations follow the
// contract's last-write-wins policy.
type Store struct {
	mu    sync.RWMutex
	state *storage.State
}

// New returns a new empty Store.
func New() *Store {
	return &Store{state: storage.NewState()}
}

// CurrentStep implements storage.Store.
func (m *Store) CurrentStep(_ context.Context) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state.CurrentStep, nil
}

// SetCurrentStep implements storage.Store.
func (m *Store) SetCurrentStep(_ context.Context, step string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state.CurrentStep = step
	return nil
}

// StepData implements storage.Store.
func (m *Store) StepData(_ context.Context, step string) (form.Values, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state.StepData[step].Clone(), nil
}

// SetStepData implements storage.Store.
func (m *Store) SetStepData(_ context.Context, step string, data form.Values) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state.StepData[step] = data.Clone()
	return nil
}

// StepFiles implements storage.Store.
func (m *Store) StepFiles(_ context.Context, step string) (form.Files, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state.StepFiles[step].Clone(), nil
}

// SetStepFiles implements storage.Store.
func (m *Store) SetStepFiles(_ context.Context, step string, files form.Files) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state.StepFiles[step] = files.Clone()
	return nil
}

// ExtraData implements storage.Store.
func (m *Store) ExtraData(_ context.Context) (map[string]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make(map[string]string, len(m.state.Extra))
	for k, v := range m.state.Extra {
		out[k] = v
	}
	return out, nil
}

// SetExtraData implements storage.Store.
func (m *Store) SetExtraData(_ context.Context, data map[string]string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state.Extra = make(map[string]string, len(data))
	for k, v := range data {
		m.state.Extra[k] = v
	}
	return nil
}

// Reset implements storage.Store.
func (m *Store) Reset(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = storage.NewState()
	return nil
}

// Pool hands out one Store per client key. Web adapters use it to map
// a session identifier to that client's wizard state.
type Pool struct {
	mu     sync.Mutex
	stores map[string]*Store
}

// NewPool returns an empty Pool.
func NewPool() *Pool {
	return &Pool{stores: make(map[string]*Store)}
}

// Store returns the Store for key, creating it on first use.
func (p *Pool) Store(key string) *Store {
	p.mu.Lock()
	defer p.mu.Unlock()
	s, ok := p.stores[key]
	if !ok {
		s = New()
		p.stores[key] = s
	}
	return s
}
