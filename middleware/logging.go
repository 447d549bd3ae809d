package middleware

import (
	"context"
	"log/slog"
	"time"

	wizard "github.com/xraph/formwizard"
)

// Logging returns middleware that logs request start and completion.
func Logging(logger *slog.Logger) Middleware {
	return func(ctx context.Context, req *wizard.Request, next Handler) (wizard.Response, error) {
		logger.Info("wizard request started",
			slog.String("method", req.Method),
			slog.String("step", req.Step),
		)

		start := time.Now()
		resp, err := next(ctx)
		elapsed := time.Since(start)

		if err != nil {
			logger.Error("wizard request failed",
				slog.String("method", req.Method),
				slog.String("step", req.Step),
				slog.Duration("elapsed", elapsed),
				slog.String("error", err.Error()),
			)
		} else {
			logger.Info("wizard request completed",
				slog.String("method", req.Method),
				slog.String("step", req.Step),
				slog.Duration("elapsed", elapsed),
			)
		}

		return resp, err
	}
}
