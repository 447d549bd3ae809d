package formwizard

import (
	"context"
	"crypto/rand"
	"fmt"
	"log/slog"

	"github.com/xraph/formwizard/form"
	"github.com/xraph/formwizard/id"
	"github.com/xraph/formwizard/storage"
)

// Renderer turns a step's render context into a response. Supplied by
// the host (see web.TemplateRenderer for the net/http binding).
type Renderer interface {
	Render(ctx context.Context, rc *RenderContext) (Response, error)
}

// Redirector produces a redirect response to a target address. Only
// the named-URL variant requires one.
type Redirector interface {
	Redirect(ctx context.Context, url string) (Response, error)
}

// StepResult is one step's contribution to the final wizard result.
// Single-form and formset steps set Form; grouped steps set Group,
// keyed by sub-form tag.
type StepResult struct {
	Step  string
	Form  form.Form
	Group map[string]form.Form
}

// DoneFunc is the terminal callback invoked once every step has been
// revalidated from stored data. It receives the results ordered by
// step position and keyed by step name. Wizard state is reset only
// after the callback returns nil, so a failing callback can be
// retried.
type DoneFunc func(ctx context.Context, results []StepResult, byStep map[string]StepResult) (Response, error)

// Controller is the base wizard: the step state machine with in-place
// re-rendering. It is safe for concurrent use; all per-request state
// lives in the storage.Store bound to each call.
type Controller struct {
	cfg    Config
	logger *slog.Logger
	secret []byte

	steps          *stepCollection
	conditions     map[string]Condition
	initial        map[string]map[string]any
	groupInitial   map[string]map[string]map[string]any
	instances      map[string]any
	groupInstances map[string]map[string]any

	fileStorage form.FileStorage
	renderer    Renderer
	redirector  Redirector
	done        DoneFunc
	mgmt        managementSigner
	strategy    transitionStrategy

	// stepURL maps a step name to its external address (named-URL
	// variant only).
	stepURL func(step string) string
}

// New creates the base wizard controller from the declared step list.
// All structural validation happens here: an empty list, duplicate
// names or tags, or a file field without file storage fail
// immediately, before any request is served.
func New(decls []StepDecl, opts ...Option) (*Controller, error) {
	c, err := newController(decls, opts)
	if err != nil {
		return nil, err
	}
	c.strategy = &renderStrategy{c: c}
	return c, nil
}

// newController applies options and runs the shared registration-time
// validation. The caller installs the transition strategy.
func newController(decls []StepDecl, opts []Option) (*Controller, error) {
	c := &Controller{
		cfg:            DefaultConfig(),
		logger:         slog.Default(),
		conditions:     make(map[string]Condition),
		initial:        make(map[string]map[string]any),
		groupInitial:   make(map[string]map[string]map[string]any),
		instances:      make(map[string]any),
		groupInstances: make(map[string]map[string]any),
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}

	steps, err := buildSteps(decls, c.fileStorage != nil)
	if err != nil {
		return nil, err
	}
	c.steps = steps

	if c.renderer == nil {
		return nil, ErrNoRenderer
	}
	if c.done == nil {
		return nil, ErrNoDoneFunc
	}
	if len(c.secret) == 0 {
		c.secret = make([]byte, 32)
		if _, err := rand.Read(c.secret); err != nil {
			return nil, fmt.Errorf("formwizard: generate signing secret: %w", err)
		}
	}
	c.mgmt = managementSigner{secret: c.secret}
	return c, nil
}

// Steps returns the declared step names in order, unfiltered by
// conditions.
func (c *Controller) Steps() []string { return c.steps.names() }

// Logger returns the controller's logger.
func (c *Controller) Logger() *slog.Logger { return c.logger }

// run carries the per-request resolution: the active step list for
// this request and the traversal ID for log correlation.
type run struct {
	c      *Controller
	req    *Request
	st     storage.Store
	active []string
	runID  string
}

// newRun resolves conditions against current state and loads the
// traversal ID.
func (c *Controller) newRun(ctx context.Context, req *Request, st storage.Store) (*run, error) {
	active, err := c.resolveActive(ctx, st)
	if err != nil {
		return nil, fmt.Errorf("formwizard: evaluate step conditions: %w", err)
	}
	if len(active) == 0 {
		return nil, ErrNoActiveSteps
	}

	extra, err := st.ExtraData(ctx)
	if err != nil {
		return nil, fmt.Errorf("formwizard: load extra data: %w", err)
	}
	return &run{
		c:      c,
		req:    req,
		st:     st,
		active: active,
		runID:  extra[extraTraversalKey],
	}, nil
}

func (r *run) first() string { return r.active[0] }
func (r *run) last() string  { return r.active[len(r.active)-1] }

// index returns the position of step in the active list, -1 if
// inactive.
func (r *run) index(step string) int {
	for i, name := range r.active {
		if name == step {
			return i
		}
	}
	return -1
}

func (r *run) isActive(step string) bool { return r.index(step) >= 0 }

// next returns the active step after cur, "" when cur is last or
// inactive.
func (r *run) next(cur string) string {
	i := r.index(cur)
	if i < 0 || i+1 >= len(r.active) {
		return ""
	}
	return r.active[i+1]
}

// prev returns the active step before cur, "" when cur is first or
// inactive.
func (r *run) prev(cur string) string {
	i := r.index(cur)
	if i <= 0 {
		return ""
	}
	return r.active[i-1]
}

// current returns the tracked current step, falling back to the first
// active step before the wizard has started.
func (r *run) current(ctx context.Context) (string, error) {
	cur, err := r.st.CurrentStep(ctx)
	if err != nil {
		return "", fmt.Errorf("formwizard: load current step: %w", err)
	}
	if cur == "" {
		return r.first(), nil
	}
	return cur, nil
}

// log returns the controller logger with the traversal ID attached.
func (r *run) log() *slog.Logger {
	if r.runID == "" {
		return r.c.logger
	}
	return r.c.logger.With(slog.String("run_id", r.runID))
}

// startTraversal resets storage and stamps a fresh traversal ID.
func (c *Controller) startTraversal(ctx context.Context, st storage.Store) (string, error) {
	if err := st.Reset(ctx); err != nil {
		return "", fmt.Errorf("formwizard: reset wizard state: %w", err)
	}
	tid := id.NewTraversal()
	if err := st.SetExtraData(ctx, map[string]string{extraTraversalKey: tid.String()}); err != nil {
		return "", fmt.Errorf("formwizard: store traversal id: %w", err)
	}
	return tid.String(), nil
}

// HandleGet starts (or restarts) the wizard: state is reset and the
// first active step is rendered with unbound forms.
func (c *Controller) HandleGet(ctx context.Context, req *Request, st storage.Store) (Response, error) {
	if st == nil {
		return nil, ErrNoStorage
	}
	if _, err := c.startTraversal(ctx, st); err != nil {
		return nil, err
	}

	r, err := c.newRun(ctx, req, st)
	if err != nil {
		return nil, err
	}
	first := r.first()
	if err := st.SetCurrentStep(ctx, first); err != nil {
		return nil, fmt.Errorf("formwizard: set current step: %w", err)
	}

	forms, err := c.buildForms(first, nil, nil)
	if err != nil {
		return nil, err
	}
	r.log().Info("wizard started", slog.String("step", first))
	return r.render(ctx, first, forms)
}

// HandlePost advances the state machine: an explicit goto jumps
// without validating, otherwise the current step's forms are validated
// and the wizard advances, finalizes, or re-renders with errors.
func (c *Controller) HandlePost(ctx context.Context, req *Request, st storage.Store) (Response, error) {
	if st == nil {
		return nil, ErrNoStorage
	}
	r, err := c.newRun(ctx, req, st)
	if err != nil {
		return nil, err
	}

	// An explicit jump bypasses validation of the step being left.
	if goto_ := req.Form.Get(GoToStepField); goto_ != "" && r.isActive(goto_) {
		r.log().Debug("goto step", slog.String("step", goto_))
		return c.strategy.goTo(ctx, r, goto_)
	}

	current, err := r.current(ctx)
	if err != nil {
		return nil, err
	}

	declared, err := c.mgmt.verify(req.Form.Get(ManagementField))
	if err != nil {
		return nil, err
	}

	stored, err := st.CurrentStep(ctx)
	if err != nil {
		return nil, fmt.Errorf("formwizard: load current step: %w", err)
	}
	if declared != current && stored != "" {
		// Browser back-button resubmission: the client is posting a
		// step we already moved past. Trust the declared step.
		if !r.isActive(declared) {
			return nil, fmt.Errorf("%w: %q", ErrUnknownStep, declared)
		}
		current = declared
		if err := st.SetCurrentStep(ctx, current); err != nil {
			return nil, fmt.Errorf("formwizard: set current step: %w", err)
		}
		r.log().Debug("current step rewound to client-declared step",
			slog.String("step", current))
	}

	forms, err := c.buildForms(current, req.Form, req.Files)
	if err != nil {
		return nil, err
	}
	if !allValid(forms) {
		r.log().Debug("step validation failed", slog.String("step", current))
		return r.render(ctx, current, forms)
	}

	// Persist the values that validated; previously stored state for
	// the step is replaced, never merged.
	if err := st.SetStepData(ctx, current, stripWireFields(req.Form)); err != nil {
		return nil, fmt.Errorf("formwizard: store step data: %w", err)
	}
	if err := st.SetStepFiles(ctx, current, req.Files); err != nil {
		return nil, fmt.Errorf("formwizard: store step files: %w", err)
	}
	r.log().Info("step completed", slog.String("step", current))

	if current == r.last() {
		return c.strategy.finalizeEntry(ctx, r)
	}
	return c.strategy.advance(ctx, r, r.next(current))
}

// finalize re-validates every active step from stored data in
// collection order. The first failure routes to the revalidation
// failure path with state intact. When everything holds, the done
// callback runs and state is reset afterwards.
func (c *Controller) finalize(ctx context.Context, r *run) (Response, error) {
	results := make([]StepResult, 0, len(r.active))
	byStep := make(map[string]StepResult, len(r.active))

	for _, step := range r.active {
		data, err := r.st.StepData(ctx, step)
		if err != nil {
			return nil, fmt.Errorf("formwizard: load step data: %w", err)
		}
		files, err := r.st.StepFiles(ctx, step)
		if err != nil {
			return nil, fmt.Errorf("formwizard: load step files: %w", err)
		}

		forms, err := c.buildForms(step, data, files)
		if err != nil {
			return nil, err
		}
		if !allValid(forms) {
			r.log().Warn("revalidation failed", slog.String("step", step))
			return c.strategy.revalidationFailure(ctx, r, step, forms)
		}

		res := StepResult{Step: step}
		spec, _ := c.steps.spec(step)
		if spec.Kind == KindGroup {
			res.Group = make(map[string]form.Form, len(forms))
			for _, bf := range forms {
				res.Group[bf.Tag] = bf.Form
			}
		} else {
			res.Form = forms[0].Form
		}
		results = append(results, res)
		byStep[step] = res
	}

	resp, err := c.done(ctx, results, byStep)
	if err != nil {
		// State is left intact so finalize can be retried.
		return nil, fmt.Errorf("formwizard: done callback: %w", err)
	}
	if err := r.st.Reset(ctx); err != nil {
		return nil, fmt.Errorf("formwizard: reset after done: %w", err)
	}
	r.log().Info("wizard completed", slog.Int("steps", len(results)))
	return resp, nil
}

// stripWireFields removes the wizard's own wire fields before the
// submitted values are persisted.
func stripWireFields(v form.Values) form.Values {
	out := v.Clone()
	delete(out, GoToStepField)
	delete(out, ManagementField)
	return out
}
