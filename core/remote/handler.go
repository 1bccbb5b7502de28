package remote

import (
	"context"
	"sync"
)

// HandlerFunc is a function that receives remote events.
type HandlerFunc func(context.Context, Event) error

// Handler receives every event a Remote decodes.
// Handlers are compared by identity when added or removed, so register pointers
// (NewHandlerFunc and NewMux both return one) rather than plain func values.
type Handler interface {
	Handle(ctx context.Context, e Event) error
}

// NewHandlerFunc wraps a function into a Handler with a stable identity.
// Keep the returned value to remove the handler later.
//
// Example:
//
//	h := remote.NewHandlerFunc(func(ctx context.Context, e remote.Event) error {
//	    log.Println(e)
//	    return nil
//	})
//	r.AddListener(h)
//	defer r.RemoveListener(h)
func NewHandlerFunc(fn HandlerFunc) Handler {
	return &handlerFuncWrapper{fn: fn}
}

type handlerFuncWrapper struct {
	fn HandlerFunc
}

func (h *handlerFuncWrapper) Handle(ctx context.Context, e Event) error {
	if h.fn == nil {
		return nil
	}
	return h.fn(ctx, e)
}

// Mux is a Handler that routes events to functions by button and phase.
// Pairs without a registered function are ignored.
//
// Example:
//
//	mux := remote.NewMux()
//	mux.On(remote.ButtonPlayPause, remote.PhasePressed, togglePlayback)
//	mux.OnButton(remote.ButtonVolumeUp, adjustVolume)
//	r.AddListener(mux)
type Mux struct {
	mu     sync.RWMutex
	routes map[Signal][]HandlerFunc
}

// NewMux creates an empty dispatch table.
func NewMux() *Mux {
	return &Mux{routes: make(map[Signal][]HandlerFunc)}
}

// On registers fn for a single button and phase. Multiple functions for the same
// pair run in registration order.
func (m *Mux) On(b Button, p Phase, fn HandlerFunc) *Mux {
	if fn == nil {
		return m
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	key := Signal{Button: b, Phase: p}
	m.routes[key] = append(m.routes[key], fn)
	return m
}

// OnButton registers fn for every phase the button supports.
func (m *Mux) OnButton(b Button, fn HandlerFunc) *Mux {
	for _, p := range Phases() {
		if b.Supports(p) {
			m.On(b, p, fn)
		}
	}
	return m
}

// OnPhase registers fn for the given phase on every button that supports it.
func (m *Mux) OnPhase(p Phase, fn HandlerFunc) *Mux {
	for _, b := range Buttons() {
		if b.Supports(p) {
			m.On(b, p, fn)
		}
	}
	return m
}

// Handle implements Handler. It stops at the first failing function.
func (m *Mux) Handle(ctx context.Context, e Event) error {
	m.mu.RLock()
	fns := m.routes[e.Signal()]
	m.mu.RUnlock()

	for _, fn := range fns {
		if err := fn(ctx, e); err != nil {
			return err
		}
	}
	return nil
}
