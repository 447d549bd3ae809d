package storage

import (
	"context"

	"github.com/xraph/formwizard/form"
)

// Blob adapts a load/save pair over a whole State record into the
// Store interface. Backends that persist wizard state as one encoded
// value (cookie, redis, sql rows) embed it and supply Load/Save.
//
// Every mutation is read-modify-write on the full record; concurrent
// requests for the same client therefore race with last-write-wins,
// matching the Store contract.
type Blob struct {
	// Load returns the current record, or a fresh empty record when
	// none is persisted.
	Load func(ctx context.Context) (*State, error)

	// Save persists the record.
	Save func(ctx context.Context, s *State) error

	// Clear removes the persisted record entirely.
	Clear func(ctx context.Context) error
}

var _ Store = (*Blob)(nil)

// CurrentStep implements Store.
func (b *Blob) CurrentStep(ctx context.Context) (string, error) {
	s, err := b.Load(ctx)
	if err != nil {
		return "", err
	}
	return s.CurrentStep, nil
}

// SetCurrentStep implements Store.
func (b *Blob) SetCurrentStep(ctx context.Context, step string) error {
	return b.update(ctx, func(s *State) {
		s.CurrentStep = step
	})
}

// StepData implements Store.
func (b *Blob) StepData(ctx context.Context, step string) (form.Values, error) {
	s, err := b.Load(ctx)
	if err != nil {
		return nil, err
	}
	return s.StepData[step].Clone(), nil
}

// SetStepData implements Store.
func (b *Blob) SetStepData(ctx context.Context, step string, data form.Values) error {
	return b.update(ctx, func(s *State) {
		s.StepData[step] = data.Clone()
	})
}

// StepFiles implements Store.
func (b *Blob) StepFiles(ctx context.Context, step string) (form.Files, error) {
	s, err := b.Load(ctx)
	if err != nil {
		return nil, err
	}
	return s.StepFiles[step].Clone(), nil
}

// SetStepFiles implements Store.
func (b *Blob) SetStepFiles(ctx context.Context, step string, files form.Files) error {
	return b.update(ctx, func(s *State) {
		s.StepFiles[step] = files.Clone()
	})
}

// ExtraData implements Store.
func (b *Blob) ExtraData(ctx context.Context) (map[string]string, error) {
	s, err := b.Load(ctx)
	if err != nil {
		return nil, err
	}
	out := make(map[string]string, len(s.Extra))
	for k, v := range s.Extra {
		out[k] = v
	}
	return out, nil
}

// SetExtraData implements Store.
func (b *Blob) SetExtraData(ctx context.Context, data map[string]string) error {
	return b.update(ctx, func(s *State) {
		s.Extra = make(map[string]string, len(data))
		for k, v := range data {
			s.Extra[k] = v
		}
	})
}

// Reset implements Store.
func (b *Blob) Reset(ctx context.Context) error {
	return b.Clear(ctx)
}

func (b *Blob) update(ctx context.Context, mutate func(*State)) error {
	s, err := b.Load(ctx)
	if err != nil {
		return err
	}
	s.Normalize()
	mutate(s)
	return b.Save(ctx, s)
}
