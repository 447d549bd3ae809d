package formwizard

import (
	"context"
	"fmt"
)

// StepInfo describes the wizard's position for template use, computed
// over the active step list of the current request.
type StepInfo struct {
	Current string
	First   string
	Last    string
	// Next and Prev are "" at the edges.
	Next string
	Prev string
	// Index is the zero-based position of Current among active steps.
	Index int
	Count int
	// URLName is set by the named-URL variant.
	URLName string
}

// RenderContext is the context mapping handed to the Renderer for one
// step.
type RenderContext struct {
	// Forms holds the step's form instances in declaration order,
	// grouped forms carrying their tag.
	Forms []BoundForm

	// Step is the wizard position info.
	Step StepInfo

	// Management is the signed marker to embed as a hidden field
	// named ManagementField.
	Management string

	// Extra is the free-form extra data stored with the traversal.
	Extra map[string]string
}

// render assembles the RenderContext for a step and invokes the
// renderer.
func (r *run) render(ctx context.Context, step string, forms []BoundForm) (Response, error) {
	marker, err := r.c.mgmt.sign(step)
	if err != nil {
		return nil, err
	}
	extra, err := r.st.ExtraData(ctx)
	if err != nil {
		return nil, fmt.Errorf("formwizard: load extra data: %w", err)
	}

	rc := &RenderContext{
		Forms: forms,
		Step: StepInfo{
			Current: step,
			First:   r.first(),
			Last:    r.last(),
			Next:    r.next(step),
			Prev:    r.prev(step),
			Index:   r.index(step),
			Count:   len(r.active),
			URLName: r.c.cfg.URLName,
		},
		Management: marker,
		Extra:      extra,
	}
	return r.c.renderer.Render(ctx, rc)
}
