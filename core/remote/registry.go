package remote

import (
	"reflect"
	"sync"
	"sync/atomic"
)

// registry is a copy-on-write set of handlers kept in insertion order.
//
// Writers serialize on mu and publish a fresh slice; readers load the current slice
// without locking. A published slice is never modified, so a delivery pass keeps
// iterating over the handlers that were registered when it began.
type registry struct {
	mu       sync.Mutex
	handlers atomic.Pointer[[]Handler]

	empty     chan struct{}
	emptyOnce sync.Once
}

func newRegistry() *registry {
	r := &registry{empty: make(chan struct{})}
	r.handlers.Store(&[]Handler{})
	return r
}

// add appends h unless it is already registered. Reports whether h was added.
// Handlers whose dynamic type is not comparable are rejected: they could never be removed.
func (r *registry) add(h Handler) bool {
	if h == nil || !reflect.TypeOf(h).Comparable() {
		return false
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	cur := *r.handlers.Load()
	for _, existing := range cur {
		if sameHandler(existing, h) {
			return false
		}
	}

	next := make([]Handler, len(cur), len(cur)+1)
	copy(next, cur)
	next = append(next, h)
	r.handlers.Store(&next)
	return true
}

// remove drops h if present. Reports whether h was removed.
// The first removal that leaves the registry empty closes the emptied channel.
func (r *registry) remove(h Handler) bool {
	if h == nil {
		return false
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	cur := *r.handlers.Load()
	idx := -1
	for i, existing := range cur {
		if sameHandler(existing, h) {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false
	}

	next := make([]Handler, 0, len(cur)-1)
	next = append(next, cur[:idx]...)
	next = append(next, cur[idx+1:]...)
	r.handlers.Store(&next)

	if len(next) == 0 {
		r.emptyOnce.Do(func() { close(r.empty) })
	}
	return true
}

// snapshot returns the handlers registered at this instant. Callers must not modify it.
func (r *registry) snapshot() []Handler {
	return *r.handlers.Load()
}

func (r *registry) len() int {
	return len(*r.handlers.Load())
}

// emptied is closed once a removal leaves the registry with no handlers.
func (r *registry) emptied() <-chan struct{} {
	return r.empty
}

// sameHandler compares handlers by identity. A comparable type can still hold an
// uncomparable value in an interface field; such values are equal to nothing.
func sameHandler(a, b Handler) (same bool) {
	defer func() {
		if recover() != nil {
			same = false
		}
	}()
	return a == b
}
