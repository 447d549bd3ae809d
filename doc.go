// Package formwizard provides a multi-step form workflow controller
// for Go web applications. A wizard splits one logical submission
// across several steps, each holding one or more forms, and persists
// per-step data in a pluggable storage backend until the final step
// validates and a terminal callback assembles the result.
//
// # Quick Start
//
//	wz, err := formwizard.New(
//	    []formwizard.StepDecl{
//	        formwizard.NamedStep("account", accountForm),
//	        formwizard.GroupStep("profile",
//	            formwizard.Tagged("person", personForm),
//	            formwizard.Tagged("address", addressForm),
//	        ),
//	    },
//	    formwizard.WithRenderer(renderer),
//	    formwizard.WithDone(done),
//	)
//
// # Architecture
//
// The controller is a step state machine. Each request resolves the
// active step list (condition predicates are re-evaluated every time),
// materializes bound forms for the current step, and either advances,
// re-renders with errors, or finalizes. Finalize re-validates every
// step from stored data before invoking the done callback and
// resetting state.
//
// Storage follows a composable backend pattern: the storage package
// defines the contract and the memory, cookie, redis, postgres, and
// sqlite subpackages implement it. A store instance is scoped to one
// client and one request.
//
// NamedURLController binds each step to its own address and drives
// transitions through redirects instead of in-place re-rendering, so
// browser history tracks wizard progress.
package formwizard
