package formwizard

import (
	"context"

	"github.com/xraph/formwizard/form"
	"github.com/xraph/formwizard/storage"
)

// State is the read-only view of wizard state handed to condition
// predicates. Predicates typically inspect a previous step's stored
// data to decide whether a later step is active.
type State struct {
	store storage.Store
}

// CurrentStep returns the tracked current step, "" when not started.
func (s *State) CurrentStep(ctx context.Context) (string, error) {
	return s.store.CurrentStep(ctx)
}

// StepData returns the stored submitted values for a step, nil when
// the step has never been stored.
func (s *State) StepData(ctx context.Context, step string) (form.Values, error) {
	return s.store.StepData(ctx, step)
}

// ExtraData returns the free-form per-traversal map.
func (s *State) ExtraData(ctx context.Context) (map[string]string, error) {
	return s.store.ExtraData(ctx)
}

// Condition decides whether a step is active for the current request.
// Conditions are re-evaluated on every request because they may depend
// on data submitted at earlier steps. Inactive steps are skipped
// entirely in first/next/previous/last computations.
type Condition func(ctx context.Context, s *State) (bool, error)

// Bool returns a condition with a fixed outcome.
func Bool(v bool) Condition {
	return func(context.Context, *State) (bool, error) { return v, nil }
}

// resolveActive filters the collection order through the configured
// conditions. Steps without a condition are always active.
func (c *Controller) resolveActive(ctx context.Context, st storage.Store) ([]string, error) {
	state := &State{store: st}
	active := make([]string, 0, len(c.steps.order))
	for _, name := range c.steps.names() {
		cond, ok := c.conditions[name]
		if !ok {
			active = append(active, name)
			continue
		}
		keep, err := cond(ctx, state)
		if err != nil {
			return nil, err
		}
		if keep {
			active = append(active, name)
		}
	}
	return active, nil
}
