package formwizard

import (
	"context"
	"fmt"
	"log/slog"
)

// transitionStrategy is the step-transition capability: how the wizard
// moves between steps and enters finalize. The base controller renders
// in place; the named-URL variant redirects so the address bar tracks
// progress.
type transitionStrategy interface {
	advance(ctx context.Context, r *run, next string) (Response, error)
	goTo(ctx context.Context, r *run, step string) (Response, error)
	revalidationFailure(ctx context.Context, r *run, failed string, forms []BoundForm) (Response, error)
	finalizeEntry(ctx context.Context, r *run) (Response, error)
}

// renderStrategy re-renders in place on every transition.
type renderStrategy struct {
	c *Controller
}

var _ transitionStrategy = (*renderStrategy)(nil)

// advance moves to the next step and renders it, rebinding any data
// stored there from a previous pass so a partially completed path
// resumes prefilled.
func (s *renderStrategy) advance(ctx context.Context, r *run, next string) (Response, error) {
	if err := r.st.SetCurrentStep(ctx, next); err != nil {
		return nil, fmt.Errorf("formwizard: set current step: %w", err)
	}
	return s.renderStored(ctx, r, next)
}

// goTo is the unconditional back/jump: switch the current step and
// show its stored data without validating the step being left.
func (s *renderStrategy) goTo(ctx context.Context, r *run, step string) (Response, error) {
	if err := r.st.SetCurrentStep(ctx, step); err != nil {
		return nil, fmt.Errorf("formwizard: set current step: %w", err)
	}
	return s.renderStored(ctx, r, step)
}

// revalidationFailure re-renders the failing step with its errors.
func (s *renderStrategy) revalidationFailure(ctx context.Context, r *run, failed string, forms []BoundForm) (Response, error) {
	if err := r.st.SetCurrentStep(ctx, failed); err != nil {
		return nil, fmt.Errorf("formwizard: set current step: %w", err)
	}
	return r.render(ctx, failed, forms)
}

// finalizeEntry runs finalize directly.
func (s *renderStrategy) finalizeEntry(ctx context.Context, r *run) (Response, error) {
	return s.c.finalize(ctx, r)
}

// renderStored renders a step bound with whatever data is persisted
// for it (unbound when none).
func (s *renderStrategy) renderStored(ctx context.Context, r *run, step string) (Response, error) {
	data, err := r.st.StepData(ctx, step)
	if err != nil {
		return nil, fmt.Errorf("formwizard: load step data: %w", err)
	}
	files, err := r.st.StepFiles(ctx, step)
	if err != nil {
		return nil, fmt.Errorf("formwizard: load step files: %w", err)
	}
	forms, err := s.c.buildForms(step, data, files)
	if err != nil {
		return nil, err
	}
	return r.render(ctx, step, forms)
}

// redirectStrategy changes step through redirects to each step's
// external address.
type redirectStrategy struct {
	c *Controller
}

var _ transitionStrategy = (*redirectStrategy)(nil)

func (s *redirectStrategy) advance(ctx context.Context, r *run, next string) (Response, error) {
	if err := r.st.SetCurrentStep(ctx, next); err != nil {
		return nil, fmt.Errorf("formwizard: set current step: %w", err)
	}
	return s.c.redirector.Redirect(ctx, s.c.stepURL(next))
}

func (s *redirectStrategy) goTo(ctx context.Context, r *run, step string) (Response, error) {
	if err := r.st.SetCurrentStep(ctx, step); err != nil {
		return nil, fmt.Errorf("formwizard: set current step: %w", err)
	}
	return s.c.redirector.Redirect(ctx, s.c.stepURL(step))
}

func (s *redirectStrategy) revalidationFailure(ctx context.Context, r *run, failed string, _ []BoundForm) (Response, error) {
	if err := r.st.SetCurrentStep(ctx, failed); err != nil {
		return nil, fmt.Errorf("formwizard: set current step: %w", err)
	}
	r.log().Debug("redirecting to failed step", slog.String("step", failed))
	return s.c.redirector.Redirect(ctx, s.c.stepURL(failed))
}

// finalizeEntry redirects to the done address unless the request is
// already there, so finalize always runs under the done URL.
func (s *redirectStrategy) finalizeEntry(ctx context.Context, r *run) (Response, error) {
	if r.req.Step != s.c.cfg.DoneStepName {
		return s.c.redirector.Redirect(ctx, s.c.stepURL(s.c.cfg.DoneStepName))
	}
	return s.c.finalize(ctx, r)
}
