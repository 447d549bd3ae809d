package middleware

import (
	"context"
	"time"

	wizard "github.com/xraph/formwizard"
)

// Timeout returns middleware that enforces a per-request deadline.
// When the deadline is exceeded the context is cancelled and storage
// operations should return context.DeadlineExceeded.
func Timeout(d time.Duration) Middleware {
	return func(ctx context.Context, _ *wizard.Request, next Handler) (wizard.Response, error) {
		if d > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, d)
			defer cancel()
		}
		return next(ctx)
	}
}
