// Package middleware provides composable middleware for wizard request
// handling. Middleware wraps handler calls synchronously and can modify
// execution (recover from panics, log, add tracing, enforce timeouts).
package middleware

import (
	"context"

	wizard "github.com/xraph/formwizard"
)

// Handler is the terminal function that executes a wizard request.
// Both Controller.HandleGet and Controller.HandlePost curry into one.
type Handler func(ctx context.Context) (wizard.Response, error)

// Middleware wraps a Handler with cross-cutting logic. It receives the
// current context, the request being handled, and the next handler to
// call. Middleware MUST call next to continue the chain (unless
// short-circuiting on error).
type Middleware func(ctx context.Context, req *wizard.Request, next Handler) (wizard.Response, error)

// Chain composes multiple middleware into a single Middleware.
// Middleware are applied right-to-left: the first middleware in the
// list is the outermost wrapper.
//
// Example: Chain(logging, recovery, tracing) executes as:
//
//	logging → recovery → tracing → handler
func Chain(mws ...Middleware) Middleware {
	return func(ctx context.Context, req *wizard.Request, next Handler) (wizard.Response, error) {
		h := next
		for i := len(mws) - 1; i >= 0; i-- {
			mw := mws[i]
			prev := h
			h = func(ctx context.Context) (wizard.Response, error) {
				return mw(ctx, req, prev)
			}
		}
		return h(ctx)
	}
}
