package formwizard

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/xraph/formwizard/storage"
)

// NamedURLController binds every step to a distinct external address
// and changes step by redirecting, so browser history and bookmarks
// track wizard progress. It shares the base controller's state machine
// and overrides only the transition actions and GET routing.
type NamedURLController struct {
	*Controller
}

// NewNamedURL creates the address-bound wizard variant. In addition to
// the base validation it requires a URL name (WithURLName) and a
// redirector, and rejects a declared step that collides with the
// reserved done address.
func NewNamedURL(decls []StepDecl, opts ...Option) (*NamedURLController, error) {
	c, err := newController(decls, opts)
	if err != nil {
		return nil, err
	}
	if c.cfg.URLName == "" {
		return nil, ErrNoURLName
	}
	if c.redirector == nil {
		return nil, ErrNoRedirector
	}
	if _, exists := c.steps.spec(c.cfg.DoneStepName); exists {
		return nil, fmt.Errorf("%w: %q", ErrReservedStepName, c.cfg.DoneStepName)
	}
	if c.stepURL == nil {
		urlName := c.cfg.URLName
		c.stepURL = func(step string) string { return "/" + urlName + "/" + step }
	}
	c.strategy = &redirectStrategy{c: c}
	return &NamedURLController{Controller: c}, nil
}

// HandleGet routes by the step address carried in the request path:
//
//   - no step: redirect to the current step's address (handling an
//     explicit reset first, preserving the query string)
//   - the done address: finalize from stored data
//   - the current step: render it
//   - another known active step: switch to it and render
//   - anything else: self-heal by resetting to the first step
func (n *NamedURLController) HandleGet(ctx context.Context, req *Request, st storage.Store) (Response, error) {
	if st == nil {
		return nil, ErrNoStorage
	}
	r, err := n.newRun(ctx, req, st)
	if err != nil {
		return nil, err
	}

	if req.Step == "" {
		if req.Query.Has("reset") {
			if _, err := n.startTraversal(ctx, st); err != nil {
				return nil, err
			}
			// Conditions may read state, so re-resolve after reset.
			if r, err = n.newRun(ctx, req, st); err != nil {
				return nil, err
			}
			if err := st.SetCurrentStep(ctx, r.first()); err != nil {
				return nil, fmt.Errorf("formwizard: set current step: %w", err)
			}
			r.log().Info("wizard reset", slog.String("step", r.first()))
		}
		cur, err := r.current(ctx)
		if err != nil {
			return nil, err
		}
		target := n.stepURL(cur)
		if len(req.Query) > 0 {
			target += "?" + req.Query.Encode()
		}
		return n.redirector.Redirect(ctx, target)
	}

	if req.Step == n.cfg.DoneStepName {
		// Finalize runs from whatever is in storage; visiting the
		// last page first is not required.
		return n.finalize(ctx, r)
	}

	cur, err := r.current(ctx)
	if err != nil {
		return nil, err
	}
	switch {
	case req.Step == cur:
		return n.renderStep(ctx, r, cur)
	case r.isActive(req.Step):
		if err := st.SetCurrentStep(ctx, req.Step); err != nil {
			return nil, fmt.Errorf("formwizard: set current step: %w", err)
		}
		return n.renderStep(ctx, r, req.Step)
	default:
		// Stale or bookmarked address: reset to first and redirect.
		r.log().Debug("unknown step address, resetting to first",
			slog.String("step", req.Step))
		if err := st.SetCurrentStep(ctx, r.first()); err != nil {
			return nil, fmt.Errorf("formwizard: set current step: %w", err)
		}
		return n.redirector.Redirect(ctx, n.stepURL(r.first()))
	}
}

// renderStep renders a step bound with its stored data, if any.
func (n *NamedURLController) renderStep(ctx context.Context, r *run, step string) (Response, error) {
	data, err := r.st.StepData(ctx, step)
	if err != nil {
		return nil, fmt.Errorf("formwizard: load step data: %w", err)
	}
	files, err := r.st.StepFiles(ctx, step)
	if err != nil {
		return nil, fmt.Errorf("formwizard: load step files: %w", err)
	}
	forms, err := n.buildForms(step, data, files)
	if err != nil {
		return nil, err
	}
	return r.render(ctx, step, forms)
}
