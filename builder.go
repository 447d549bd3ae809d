package formwizard

import (
	"fmt"

	"github.com/xraph/formwizard/form"
)

// BoundForm pairs a constructed form instance with its sub-form tag.
// The tag is a side value scoped to the wizard pass; it is never
// attached to the form object itself. Single-form steps carry an
// empty tag.
type BoundForm struct {
	Form form.Form
	Tag  string
}

// buildForms materializes the form instances for a step. data and
// files may be nil, producing unbound forms for initial display.
//
// Prefixing rule: "<wizard prefix>-<step>" for single forms and
// formsets, "<wizard prefix>-<step>-<tag>" for grouped forms, so no
// two forms on the same page can collide.
func (c *Controller) buildForms(step string, data form.Values, files form.Files) ([]BoundForm, error) {
	spec, ok := c.steps.spec(step)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownStep, step)
	}

	switch spec.Kind {
	case KindGroup:
		bound := make([]BoundForm, 0, len(spec.Group))
		for _, tc := range spec.Group {
			bound = append(bound, BoundForm{
				Tag: tc.Tag,
				Form: tc.Class.Bind(form.BindArgs{
					Data:     data,
					Files:    files,
					Prefix:   c.stepPrefix(step) + "-" + tc.Tag,
					Initial:  c.groupInitial[step][tc.Tag],
					Instance: c.groupInstances[step][tc.Tag],
				}),
			})
		}
		return bound, nil

	default:
		// Single forms and formsets bind identically; a formset
		// resolves its member count and prefixes internally.
		return []BoundForm{{
			Form: spec.Single.Bind(form.BindArgs{
				Data:     data,
				Files:    files,
				Prefix:   c.stepPrefix(step),
				Initial:  c.initial[step],
				Instance: c.instances[step],
			}),
		}}, nil
	}
}

// stepPrefix returns the field-name prefix for a step.
func (c *Controller) stepPrefix(step string) string {
	if c.cfg.Prefix == "" {
		return step
	}
	return c.cfg.Prefix + "-" + step
}

// allValid reports whether every constructed form validates.
func allValid(forms []BoundForm) bool {
	ok := true
	for _, bf := range forms {
		if !bf.Form.IsValid() {
			ok = false
		}
	}
	return ok
}
