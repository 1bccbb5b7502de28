package remote

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/lakospeter91/appleremote/core/logger"
)

// Decorator wraps a Handler to add additional functionality.
// Multiple decorators can be composed using the Decorate helper.
type Decorator func(Handler) Handler

// decoratorHandler wraps a Handler with additional functionality.
type decoratorHandler struct {
	next Handler
	fn   func(ctx context.Context, e Event) error
}

func (h *decoratorHandler) Handle(ctx context.Context, e Event) error {
	return h.fn(ctx, e)
}

// Unwrap returns the handler this decorator wraps.
func (h *decoratorHandler) Unwrap() Handler {
	return h.next
}

// Unwrap peels every decorator off h and returns the innermost handler.
// Handlers that are not decorated are returned unchanged.
func Unwrap(h Handler) Handler {
	for {
		u, ok := h.(interface{ Unwrap() Handler })
		if !ok {
			return h
		}
		next := u.Unwrap()
		if next == nil {
			return h
		}
		h = next
	}
}

// WithFilter wraps a handler so it only sees events accepted by keep.
//
// Example:
//
//	handler := remote.WithFilter(volume, func(e remote.Event) bool {
//	    return e.Phase != remote.PhaseHoldStopped
//	})
func WithFilter(handler Handler, keep func(Event) bool) Handler {
	return &decoratorHandler{
		next: handler,
		fn: func(ctx context.Context, e Event) error {
			if keep != nil && !keep(e) {
				return nil
			}
			return handler.Handle(ctx, e)
		},
	}
}

// WithTimeout wraps a handler to enforce a maximum execution time.
// Cancels the handler's context if it exceeds the timeout. The read loop moves on
// to the next line while the abandoned call finishes in the background.
//
// Example:
//
//	handler := remote.WithTimeout(
//	    remote.NewHandlerFunc(notifyPlayer),
//	    200*time.Millisecond,
//	)
func WithTimeout(handler Handler, timeout time.Duration) Handler {
	return &decoratorHandler{
		next: handler,
		fn: func(ctx context.Context, e Event) error {
			ctx, cancel := context.WithTimeout(ctx, timeout)
			defer cancel()

			errCh := make(chan error, 1)
			go func() {
				defer func() {
					if r := recover(); r != nil {
						errCh <- fmt.Errorf("handler panicked: %v", r)
					}
				}()
				errCh <- handler.Handle(ctx, e)
			}()

			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
				return fmt.Errorf("handler timeout after %s: %w", timeout, ctx.Err())
			}
		},
	}
}

// WithLogging wraps a handler to log every event it receives and how long it took.
func WithLogging(handler Handler, log *slog.Logger) Handler {
	if log == nil {
		log = logger.Discard()
	}
	return &decoratorHandler{
		next: handler,
		fn: func(ctx context.Context, e Event) error {
			start := time.Now()
			err := handler.Handle(ctx, e)
			if err != nil {
				log.WarnContext(ctx, "remote event handled with error",
					logger.Event(e.String()),
					logger.Elapsed(start),
					logger.Error(err))
				return err
			}
			log.DebugContext(ctx, "remote event handled",
				logger.Event(e.String()),
				logger.Elapsed(start))
			return nil
		},
	}
}

// Filter returns a Decorator that drops events rejected by keep.
func Filter(keep func(Event) bool) Decorator {
	return func(h Handler) Handler {
		return WithFilter(h, keep)
	}
}

// OnlyButtons returns a Decorator that passes events for the listed buttons only.
//
// Example:
//
//	handler := remote.Decorate(
//	    remote.NewHandlerFunc(adjustVolume),
//	    remote.OnlyButtons(remote.ButtonVolumeUp, remote.ButtonVolumeDown),
//	)
func OnlyButtons(buttons ...Button) Decorator {
	allowed := slices.Clone(buttons)
	return Filter(func(e Event) bool {
		return slices.Contains(allowed, e.Button)
	})
}

// Timeout returns a Decorator that wraps a handler with timeout logic.
func Timeout(timeout time.Duration) Decorator {
	return func(h Handler) Handler {
		return WithTimeout(h, timeout)
	}
}

// Logging returns a Decorator that wraps a handler with WithLogging.
func Logging(log *slog.Logger) Decorator {
	return func(h Handler) Handler {
		return WithLogging(h, log)
	}
}

// Decorate applies multiple decorators to a handler in sequence.
// Decorators are applied left-to-right (first decorator wraps innermost).
//
// Example:
//
//	handler := remote.Decorate(
//	    remote.NewHandlerFunc(skipTrack),
//	    remote.OnlyButtons(remote.ButtonNext, remote.ButtonPrevious),
//	    remote.Timeout(time.Second),
//	    remote.Logging(log),
//	)
//	r.AddListener(handler)
func Decorate(handler Handler, decorators ...Decorator) Handler {
	for _, decorator := range decorators {
		handler = decorator(handler)
	}
	return handler
}
