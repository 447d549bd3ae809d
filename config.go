package formwizard

// Config holds scalar configuration for a wizard controller.
type Config struct {
	// Prefix namespaces every wizard field name so several wizards
	// can share a page without collisions.
	Prefix string

	// URLName is the naming identifier for the named-URL variant.
	// Step addresses are derived from it; unused by the base
	// controller.
	URLName string

	// DoneStepName is the reserved pseudo-step address that triggers
	// finalize in the named-URL variant. It must not collide with a
	// declared step name.
	DoneStepName string
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Prefix:       "wizard",
		DoneStepName: "done",
	}
}
