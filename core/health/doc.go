// Package health aggregates dependency checks into readiness results and HTTP probes.
//
// A process embedding a remote usually has two things worth probing: the remote itself
// (is the helper running and its output readable) and whatever the events are forwarded
// to. Both expose a func(context.Context) error:
//
//	checks := []health.Check{
//		r.Healthcheck,
//		redis.Healthcheck(client),
//	}
//
//	if err := health.Ready(ctx, log, checks...); err != nil {
//		// errors.Is(err, health.ErrNotReady)
//	}
//
//	http.Handle("/health/live", health.Handler(log))
//	http.Handle("/health/ready", health.Handler(log, checks...))
package health
