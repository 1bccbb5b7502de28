package remote

import (
	"log/slog"
	"time"
)

// Option configures a Remote.
type Option func(*options)

type options struct {
	logger       *slog.Logger
	killTimeout  time.Duration
	maxLineBytes int
	provisioner  func(path string) error
	handlers     []Handler
}

// WithLogger configures structured logging for the remote.
// The remote adds its component name and ID to every record.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithKillTimeout sets how long Stop waits for the helper to exit after SIGTERM
// before sending SIGKILL. Non-positive values are ignored.
func WithKillTimeout(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.killTimeout = d
		}
	}
}

// WithMaxLineBytes caps the length of a single helper output line. Non-positive values are ignored.
func WithMaxLineBytes(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.maxLineBytes = n
		}
	}
}

// WithProvisioner replaces the check run before the helper is launched.
// The default is provision.Verify. Use provision.Ensurer to install the helper on demand.
//
// Example:
//
//	r, err := remote.New(path,
//	    remote.WithProvisioner(provision.Ensurer(provision.FromFS(bundle, "bin/iremotepipe"))),
//	)
func WithProvisioner(fn func(path string) error) Option {
	return func(o *options) {
		if fn != nil {
			o.provisioner = fn
		}
	}
}

// WithHandler registers handlers at construction time, in order.
//
// Example:
//
//	r, err := remote.New(path,
//	    remote.WithHandler(player, remote.Decorate(audit, remote.Logging(log))),
//	)
func WithHandler(handlers ...Handler) Option {
	return func(o *options) {
		o.handlers = append(o.handlers, handlers...)
	}
}
