package health

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/lakospeter91/appleremote/core/logger"
)

// ErrNotReady wraps every failed readiness check.
var ErrNotReady = errors.New("service not ready")

// Check reports whether a dependency is usable.
// remote.(*Remote).Healthcheck and redis.Healthcheck(client) both fit.
type Check func(context.Context) error

// Ready runs every check in order and returns all failures joined with ErrNotReady.
//
// Example:
//
//	err := health.Ready(ctx, log,
//		r.Healthcheck,
//		redis.Healthcheck(client),
//	)
func Ready(ctx context.Context, log *slog.Logger, checks ...Check) error {
	var errs []error
	for _, check := range checks {
		if check == nil {
			continue
		}
		if err := check(ctx); err != nil {
			if log != nil {
				log.ErrorContext(ctx, "Readiness check failed", logger.Error(err))
			}
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return errors.Join(append([]error{ErrNotReady}, errs...)...)
	}
	return nil
}

// Handler serves a health probe.
//
// Without checks it is a liveness probe and always answers "ALIVE".
// With checks it is a readiness probe: "READY" when all pass, 503 otherwise.
//
// Example:
//
//	mux := http.NewServeMux()
//	mux.Handle("/health/live", health.Handler(log))
//	mux.Handle("/health/ready", health.Handler(log, r.Healthcheck, redis.Healthcheck(client)))
func Handler(log *slog.Logger, checks ...Check) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")

		if len(checks) == 0 {
			_, _ = w.Write([]byte("ALIVE"))
			return
		}

		if err := Ready(req.Context(), log, checks...); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte("NOT READY"))
			return
		}
		_, _ = w.Write([]byte("READY"))
	})
}
