package formwizard

import (
	"log/slog"

	"github.com/xraph/formwizard/form"
)

// Option configures a Controller.
type Option func(*Controller) error

// WithLogger sets the structured logger for the controller.
func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) error {
		c.logger = l
		return nil
	}
}

// WithPrefix overrides the wizard-wide field-name prefix (default
// "wizard").
func WithPrefix(prefix string) Option {
	return func(c *Controller) error {
		c.cfg.Prefix = prefix
		return nil
	}
}

// WithSecret sets the key used to sign the management marker and
// verify it on submission. Without it a random per-process key is
// generated, which is fine for a single instance but breaks markers
// across restarts or replicas.
func WithSecret(secret []byte) Option {
	return func(c *Controller) error {
		c.secret = secret
		return nil
	}
}

// WithFileStorage sets the file persistence capability. Required when
// any declared form carries a file field; construction fails without
// it.
func WithFileStorage(fs form.FileStorage) Option {
	return func(c *Controller) error {
		c.fileStorage = fs
		return nil
	}
}

// WithRenderer sets the render capability producing step responses.
func WithRenderer(r Renderer) Option {
	return func(c *Controller) error {
		c.renderer = r
		return nil
	}
}

// WithRedirector sets the redirect capability used by the named-URL
// variant.
func WithRedirector(r Redirector) Option {
	return func(c *Controller) error {
		c.redirector = r
		return nil
	}
}

// WithDone sets the terminal callback invoked after every step
// revalidates at finalize time.
func WithDone(fn DoneFunc) Option {
	return func(c *Controller) error {
		c.done = fn
		return nil
	}
}

// WithCondition attaches an activity predicate to a step.
func WithCondition(step string, cond Condition) Option {
	return func(c *Controller) error {
		c.conditions[step] = cond
		return nil
	}
}

// WithInitial provides display defaults for a single-form (or formset)
// step, keyed by bare field name.
func WithInitial(step string, values map[string]any) Option {
	return func(c *Controller) error {
		c.initial[step] = values
		return nil
	}
}

// WithGroupInitial provides display defaults for one tagged form of a
// grouped step.
func WithGroupInitial(step, tag string, values map[string]any) Option {
	return func(c *Controller) error {
		if c.groupInitial[step] == nil {
			c.groupInitial[step] = make(map[string]map[string]any)
		}
		c.groupInitial[step][tag] = values
		return nil
	}
}

// WithInstance binds a persistent object to a single-form step (for a
// formset step pass a []any, one entry per member).
func WithInstance(step string, instance any) Option {
	return func(c *Controller) error {
		c.instances[step] = instance
		return nil
	}
}

// WithGroupInstance binds a persistent object to one tagged form of a
// grouped step.
func WithGroupInstance(step, tag string, instance any) Option {
	return func(c *Controller) error {
		if c.groupInstances[step] == nil {
			c.groupInstances[step] = make(map[string]any)
		}
		c.groupInstances[step][tag] = instance
		return nil
	}
}

// WithURLName sets the naming identifier the named-URL variant derives
// step addresses from. Required by NewNamedURL.
func WithURLName(name string) Option {
	return func(c *Controller) error {
		c.cfg.URLName = name
		return nil
	}
}

// WithDoneStepName overrides the reserved "done" address of the
// named-URL variant.
func WithDoneStepName(name string) Option {
	return func(c *Controller) error {
		c.cfg.DoneStepName = name
		return nil
	}
}

// WithStepURL overrides the naming function mapping a step name to its
// external address. The default is "/<url name>/<step>".
func WithStepURL(fn func(step string) string) Option {
	return func(c *Controller) error {
		c.stepURL = fn
		return nil
	}
}
