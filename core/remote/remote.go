package remote

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os/exec"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/lakospeter91/appleremote/core/logger"
	"github.com/lakospeter91/appleremote/core/provision"
)

// Remote runs the iremotepipe helper and delivers decoded button events to handlers.
//
// A Remote is single-use: once stopped it cannot be started again.
// All methods are safe for concurrent use, including from inside a handler.
type Remote struct {
	id           string
	path         string
	killTimeout  time.Duration
	maxLineBytes int
	provisioner  func(string) error
	logger       *slog.Logger

	listeners *registry

	mu       sync.Mutex // serializes lifecycle transitions
	state    atomic.Int32
	cancel   context.CancelFunc
	done     chan struct{}
	doneOnce sync.Once

	pid              atomic.Int64
	startedAt        atomic.Int64
	lastEventAt      atomic.Int64
	linesRead        atomic.Int64
	linesSkipped     atomic.Int64
	eventsDispatched atomic.Int64
	handlerFailures  atomic.Int64

	errMu   sync.RWMutex
	lastErr error
}

// Stats provides observability metrics for monitoring and debugging.
type Stats struct {
	ID               string
	State            State
	PID              int
	Listeners        int
	LinesRead        int64
	LinesSkipped     int64
	EventsDispatched int64
	HandlerFailures  int64
	StartedAt        time.Time
	LastEventAt      time.Time
	LastError        error
}

// New creates a Remote for the helper executable at helperPath.
// The helper is not launched until Start is called.
//
// Example:
//
//	r, err := remote.New("/usr/local/libexec/iremotepipe",
//	    remote.WithLogger(log),
//	    remote.WithHandler(mux),
//	)
//	if err != nil {
//	    return err
//	}
//	if err := r.Start(ctx); err != nil {
//	    return err
//	}
//	defer r.Stop()
func New(helperPath string, opts ...Option) (*Remote, error) {
	if helperPath == "" {
		return nil, ErrHelperPathEmpty
	}

	o := &options{
		logger:       logger.Discard(),
		killTimeout:  DefaultKillTimeout,
		maxLineBytes: DefaultMaxLineBytes,
		provisioner:  provision.Verify,
	}
	for _, opt := range opts {
		opt(o)
	}

	id := uuid.New().String()
	r := &Remote{
		id:           id,
		path:         helperPath,
		killTimeout:  o.killTimeout,
		maxLineBytes: o.maxLineBytes,
		provisioner:  o.provisioner,
		logger:       o.logger.With(logger.Component("appleremote"), logger.RemoteID(id)),
		listeners:    newRegistry(),
		done:         make(chan struct{}),
	}
	for _, h := range o.handlers {
		r.listeners.add(h)
	}
	return r, nil
}

// ID returns the identifier stamped into every event's Origin.
func (r *Remote) ID() string {
	return r.id
}

// HelperPath returns the executable the remote launches.
func (r *Remote) HelperPath() string {
	return r.path
}

// State returns the current lifecycle state.
func (r *Remote) State() State {
	return State(r.state.Load())
}

// Done is closed once the remote reaches StateStopped.
func (r *Remote) Done() <-chan struct{} {
	return r.done
}

// LastError returns the failure that stopped the remote, if any.
// A helper that simply exits is not a failure.
func (r *Remote) LastError() error {
	r.errMu.RLock()
	defer r.errMu.RUnlock()
	return r.lastErr
}

// AddListener registers h. Adding a handler that is already registered is a no-op.
// Reports whether h was added.
func (r *Remote) AddListener(h Handler) bool {
	return r.listeners.add(h)
}

// RemoveListener unregisters h. Removing the last handler stops the remote.
// Reports whether h was registered.
func (r *Remote) RemoveListener(h Handler) bool {
	if !r.listeners.remove(h) {
		return false
	}
	select {
	case <-r.listeners.emptied():
		r.logger.Debug("last listener removed")
		r.Stop()
	default:
	}
	return true
}

// Start verifies the helper, launches it and begins delivering events.
//
// Start returns once the helper is running; events are read on a background goroutine
// until Stop is called, the last listener is removed, or the helper exits. ctx only
// bounds the startup itself and is passed, without its cancellation, to handlers. Use
// Run to tie the remote's lifetime to a context.
//
// Calling Start on a starting or running remote is a no-op. A stopped remote returns
// ErrStopped, as does a Start interrupted by Stop while the helper was being provisioned.
// Startup failures wrap ErrProvisioning or ErrLaunch and leave the remote stopped.
func (r *Remote) Start(ctx context.Context) error {
	r.mu.Lock()
	switch r.State() {
	case StateStarting, StateRunning:
		r.mu.Unlock()
		return nil
	case StateStopping, StateStopped:
		r.mu.Unlock()
		return ErrStopped
	}
	if err := ctx.Err(); err != nil {
		r.mu.Unlock()
		return err
	}
	r.state.Store(int32(StateStarting))
	r.mu.Unlock()

	// Unlocked: provisioners such as provision.Waiter may block, and Stop must not.
	provErr := r.provisioner(r.path)

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.State() != StateStarting {
		r.state.Store(int32(StateStopped))
		r.closeDone()
		r.logger.InfoContext(ctx, "remote stopped during startup")
		return ErrStopped
	}
	if provErr != nil {
		return r.failStart(ctx, fmt.Errorf("%w: %s: %w", ErrProvisioning, r.path, provErr))
	}

	runCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))

	cmd := exec.CommandContext(runCtx, r.path)
	cmd.Cancel = func() error {
		return cmd.Process.Signal(syscall.SIGTERM)
	}
	// Grace period between SIGTERM and SIGKILL once runCtx is cancelled.
	// Stdout is read from a pipe we own, so this never cuts the event stream short.
	cmd.WaitDelay = r.killTimeout

	stderr := newStderrLog(r.logger)
	cmd.Stderr = stderr

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		cancel()
		return r.failStart(ctx, fmt.Errorf("%w: %s: %w", ErrLaunch, r.path, err))
	}

	if err := cmd.Start(); err != nil {
		cancel()
		return r.failStart(ctx, fmt.Errorf("%w: %s: %w", ErrLaunch, r.path, err))
	}

	r.cancel = cancel
	r.pid.Store(int64(cmd.Process.Pid))
	r.startedAt.Store(time.Now().UnixNano())
	r.state.Store(int32(StateRunning))

	r.logger.InfoContext(ctx, "helper started",
		logger.PID(cmd.Process.Pid),
		logger.Path(r.path),
		logger.Count("listeners", int64(r.listeners.len())))

	go r.run(context.WithoutCancel(ctx), runCtx, cmd, stdout, stderr)
	return nil
}

func (r *Remote) failStart(ctx context.Context, err error) error {
	r.setLastError(err)
	r.state.Store(int32(StateStopped))
	r.closeDone()
	r.logger.ErrorContext(ctx, "remote failed to start", logger.Error(err))
	return err
}

// Stop asks the remote to shut down and returns without waiting.
// Unread helper output is dropped. The helper receives SIGTERM and, if it is still alive
// after the kill timeout, SIGKILL. Stopping while Start is provisioning the helper
// prevents the launch. Wait on Done to observe completion. Stop is idempotent.
func (r *Remote) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()

	switch r.State() {
	case StateCreated:
		r.state.Store(int32(StateStopped))
		r.closeDone()
		r.logger.Debug("remote stopped before start")
	case StateStarting, StateRunning:
		r.state.Store(int32(StateStopping))
		r.logger.Info("remote stopping")
		if r.cancel != nil {
			r.cancel()
		}
	}
}

// Run provides errgroup compatibility for coordinated lifecycle management.
// The returned function starts the remote, blocks until ctx is cancelled or the remote
// stops on its own, and returns the startup error or LastError.
//
// Example:
//
//	g, ctx := errgroup.WithContext(ctx)
//	g.Go(r.Run(ctx))
//	return g.Wait()
func (r *Remote) Run(ctx context.Context) func() error {
	return func() error {
		if err := r.Start(ctx); err != nil {
			return err
		}

		select {
		case <-ctx.Done():
			r.Stop()
			<-r.done
			return nil
		case <-r.done:
			return r.LastError()
		}
	}
}

// Stats returns current counters for observability and monitoring.
func (r *Remote) Stats() Stats {
	return Stats{
		ID:               r.id,
		State:            r.State(),
		PID:              int(r.pid.Load()),
		Listeners:        r.listeners.len(),
		LinesRead:        r.linesRead.Load(),
		LinesSkipped:     r.linesSkipped.Load(),
		EventsDispatched: r.eventsDispatched.Load(),
		HandlerFailures:  r.handlerFailures.Load(),
		StartedAt:        unixNano(r.startedAt.Load()),
		LastEventAt:      unixNano(r.lastEventAt.Load()),
		LastError:        r.LastError(),
	}
}

// Healthcheck validates that the remote is reading helper output.
// Returns nil if healthy, or an error joined with ErrHealthcheckFailed.
func (r *Remote) Healthcheck(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return errors.Join(ErrHealthcheckFailed, err)
	}
	if state := r.State(); state != StateRunning {
		if err := r.LastError(); err != nil {
			return errors.Join(ErrHealthcheckFailed, ErrNotRunning, err)
		}
		return errors.Join(ErrHealthcheckFailed, fmt.Errorf("%w: %s", ErrNotRunning, state))
	}
	return nil
}

// run reads helper output until end of stream or Stop, then reaps the process.
// The process is only waited for after reading ends, so lines written just before
// the helper exits are still delivered no matter how slow the handlers are.
func (r *Remote) run(ctx, runCtx context.Context, cmd *exec.Cmd, stdout io.ReadCloser, stderr *stderrLog) {
	var g errgroup.Group

	g.Go(func() error {
		defer r.Stop()
		return r.readLoop(ctx, stdout)
	})

	g.Go(func() error {
		// Stop drops unread output: closing the pipe unblocks a pending read.
		<-runCtx.Done()
		_ = stdout.Close()
		return nil
	})

	streamErr := g.Wait()
	waitErr := cmd.Wait()
	stderr.flush()
	r.finish(ctx, streamErr, waitErr)
}

func (r *Remote) readLoop(ctx context.Context, src io.Reader) error {
	sc := bufio.NewScanner(src)
	sc.Buffer(make([]byte, 0, min(r.maxLineBytes, 512)), r.maxLineBytes)

	for sc.Scan() {
		if r.State() != StateRunning {
			return nil
		}

		line := sc.Text()
		r.linesRead.Add(1)

		sig, err := ParseLine(line)
		if err != nil {
			r.linesSkipped.Add(1)
			r.logger.DebugContext(ctx, "skipping helper line", logger.Line(line), logger.Error(err))
			continue
		}

		r.dispatch(ctx, NewEvent(r.id, sig, line))
	}

	if err := sc.Err(); err != nil && r.State() == StateRunning {
		return fmt.Errorf("%w: %w", ErrStream, err)
	}
	return nil
}

// dispatch delivers e to the handlers registered when delivery begins, in insertion order.
func (r *Remote) dispatch(ctx context.Context, e Event) {
	r.lastEventAt.Store(e.ReceivedAt.UnixNano())

	for _, h := range r.listeners.snapshot() {
		r.deliver(ctx, h, e)
	}
	r.eventsDispatched.Add(1)
}

func (r *Remote) deliver(ctx context.Context, h Handler, e Event) {
	start := time.Now()

	defer func() {
		if rec := recover(); rec != nil {
			r.handlerFailures.Add(1)
			r.logger.ErrorContext(ctx, "event handler panicked",
				logger.Event(e.String()),
				logger.Panic(rec))
		}
	}()

	if err := h.Handle(ctx, e); err != nil {
		r.handlerFailures.Add(1)
		r.logger.ErrorContext(ctx, "event handler failed",
			logger.Event(e.String()),
			logger.Elapsed(start),
			logger.Error(err))
	}
}

func (r *Remote) finish(ctx context.Context, streamErr, waitErr error) {
	if streamErr != nil {
		r.setLastError(streamErr)
		r.logger.ErrorContext(ctx, "helper output stream failed", logger.Error(streamErr))
	}
	if waitErr != nil {
		r.logger.DebugContext(ctx, "helper exited", logger.Error(waitErr))
	}

	r.mu.Lock()
	if r.cancel != nil {
		r.cancel()
	}
	r.state.Store(int32(StateStopped))
	r.mu.Unlock()
	r.closeDone()

	r.logger.InfoContext(ctx, "remote stopped",
		logger.Count("lines_read", r.linesRead.Load()),
		logger.Count("lines_skipped", r.linesSkipped.Load()),
		logger.Count("events", r.eventsDispatched.Load()),
		logger.Elapsed(unixNano(r.startedAt.Load())))
}

func (r *Remote) setLastError(err error) {
	r.errMu.Lock()
	r.lastErr = err
	r.errMu.Unlock()
}

func (r *Remote) closeDone() {
	r.doneOnce.Do(func() { close(r.done) })
}

func unixNano(n int64) time.Time {
	if n == 0 {
		return time.Time{}
	}
	return time.Unix(0, n)
}
