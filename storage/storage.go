// Package storage defines the persistence contract for wizard state.
// Each backend stores, per client, the current step, the submitted
// values and file references for every step, and a free-form extra-data
// map. Backends: memory, cookie, redis, postgres, sqlite.
package storage

import (
	"context"

	"github.com/xraph/formwizard/form"
)

// Store is the wizard-state persistence contract. A Store instance is
// scoped to a single client (session key, cookie jar, row key); the
// controller is its sole mutator. Implementations need no transactional
// guarantees: concurrent requests from the same client race with
// last-write-wins semantics.
type Store interface {
	// CurrentStep returns the tracked current step, "" when the
	// wizard has not started.
	CurrentStep(ctx context.Context) (string, error)

	// SetCurrentStep records the current step.
	SetCurrentStep(ctx context.Context, step string) error

	// StepData returns the submitted values stored for a step, nil
	// when the step has never been stored.
	StepData(ctx context.Context, step string) (form.Values, error)

	// SetStepData stores the submitted values for a step, replacing
	// any previous data.
	SetStepData(ctx context.Context, step string, data form.Values) error

	// StepFiles returns the stored file references for a step, nil
	// when none.
	StepFiles(ctx context.Context, step string) (form.Files, error)

	// SetStepFiles stores the file references for a step.
	SetStepFiles(ctx context.Context, step string, files form.Files) error

	// ExtraData returns the free-form per-traversal map. Never nil.
	ExtraData(ctx context.Context) (map[string]string, error)

	// SetExtraData replaces the free-form map.
	SetExtraData(ctx context.Context, data map[string]string) error

	// Reset clears the current step, all step data and files, and
	// the extra data.
	Reset(ctx context.Context) error
}

// State is the serialized shape shared by backends that persist the
// whole record as one blob (cookie, redis, sql).
type State struct {
	CurrentStep string                 `json:"current_step,omitempty"`
	StepData    map[string]form.Values `json:"step_data,omitempty"`
	StepFiles   map[string]form.Files  `json:"step_files,omitempty"`
	Extra       map[string]string      `json:"extra,omitempty"`
}

// NewState returns an empty state record.
func NewState() *State {
	return &State{
		StepData:  make(map[string]form.Values),
		StepFiles: make(map[string]form.Files),
		Extra:     make(map[string]string),
	}
}

// Normalize backfills nil maps after JSON decoding.
func (s *State) Normalize() {
	if s.StepData == nil {
		s.StepData = make(map[string]form.Values)
	}
	if s.StepFiles == nil {
		s.StepFiles = make(map[string]form.Files)
	}
	if s.Extra == nil {
		s.Extra = make(map[string]string)
	}
}
