package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"

	wizard "github.com/xraph/formwizard"
)

// Recover returns middleware that recovers from panics in the handler
// chain. Panics are converted to errors and logged with a stack trace.
func Recover(logger *slog.Logger) Middleware {
	return func(ctx context.Context, req *wizard.Request, next Handler) (resp wizard.Response, retErr error) {
		defer func() {
			if r := recover(); r != nil {
				stack := string(debug.Stack())
				logger.Error("wizard handler panicked",
					slog.String("method", req.Method),
					slog.String("step", req.Step),
					slog.Any("panic", r),
					slog.String("stack", stack),
				)
				resp = nil
				retErr = fmt.Errorf("panic handling wizard request: %v", r)
			}
		}()
		return next(ctx)
	}
}
