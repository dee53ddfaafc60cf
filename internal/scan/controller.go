package scan

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/chaz8081/blescan/internal/ble"
)

// Status lines published by the controller.
const (
	StatusScanning          = "Scanning..."
	StatusStopped           = "Scan stopped."
	StatusComplete          = "Scan complete."
	StatusCompleteNoDevices = "Scan complete. No devices found."
	StatusReady             = "Ready to scan."
	StatusNoPermission      = "Cannot scan: Permissions not granted."
)

var (
	// ErrScanStopped is the cancellation cause for a user stop request.
	ErrScanStopped = errors.New("scan: stopped by user")
	// ErrClosed is the cancellation cause when the controller's owner goes away.
	ErrClosed = errors.New("scan: controller closed")
)

// Phase is the controller's lifecycle state.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseStarting
	PhaseActive
	PhaseStopping
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseStarting:
		return "starting"
	case PhaseActive:
		return "active"
	case PhaseStopping:
		return "stopping"
	default:
		return "unknown"
	}
}

// Options configures session timing.
type Options struct {
	Duration     time.Duration // total scan length, counted in ticks
	TickInterval time.Duration // how often the device list is republished
}

// DefaultOptions returns the standard four one-second ticks.
func DefaultOptions() Options {
	return Options{
		Duration:     4 * time.Second,
		TickInterval: time.Second,
	}
}

type endReason int

const (
	endTimeout endReason = iota
	endCancelled
	endFailed
)

// radioEvent is either a discovery or the session's terminal failure.
type radioEvent struct {
	event ble.DiscoveryEvent
	err   error
}

type session struct {
	id      string
	ctx     context.Context
	cancel  context.CancelCauseFunc
	events  chan radioEvent
	done    chan struct{}
	elapsed time.Duration
	failed  bool
}

func newSession(parent context.Context) *session {
	ctx, cancel := context.WithCancelCause(parent)
	return &session{
		id:     uuid.NewString(),
		ctx:    ctx,
		cancel: cancel,
		events: make(chan radioEvent, 64),
		done:   make(chan struct{}),
	}
}

// deliver hands a radio callback to the session goroutine, giving up once
// the session is over so driver goroutines never block on a dead session.
func (s *session) deliver(ev radioEvent) {
	select {
	case s.events <- ev:
	case <-s.ctx.Done():
	}
}

func (s *session) onEvent(ev ble.DiscoveryEvent) { s.deliver(radioEvent{event: ev}) }
func (s *session) onFailure(err error)            { s.deliver(radioEvent{err: err}) }

// Controller owns the scan lifecycle. It is the only writer of the device
// registry and, together with the intent methods below, of the store.
type Controller struct {
	radio    ble.Radio
	checker  Checker
	store    *Store
	registry *Registry
	opts     Options

	ctx    context.Context
	cancel context.CancelCauseFunc

	mu      sync.Mutex
	phase   Phase
	session *session
}

// NewController creates an idle controller. Close must be called when the
// owner goes away.
func NewController(checker Checker, store *Store, opts Options) *Controller {
	if opts.TickInterval <= 0 {
		opts.TickInterval = time.Second
	}
	if opts.Duration <= 0 {
		opts.Duration = 4 * opts.TickInterval
	}
	ctx, cancel := context.WithCancelCause(context.Background())
	return &Controller{
		radio:    checker.Radio,
		checker:  checker,
		store:    store,
		registry: NewRegistry(),
		opts:     opts,
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Store returns the observable state store.
func (c *Controller) Store() *Store { return c.store }

// Registry returns the device registry. Callers must treat it as read-only.
func (c *Controller) Registry() *Registry { return c.registry }

// Phase returns the current lifecycle phase.
func (c *Controller) Phase() Phase {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phase
}

// Start begins a scan session. It does nothing while a session exists, and
// publishes an error status without starting when a precondition fails.
func (c *Controller) Start() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.phase != PhaseIdle {
		slog.Debug("[SCAN] start ignored, session in progress", "phase", c.phase)
		return
	}
	if c.ctx.Err() != nil {
		return
	}
	if b := c.checker.Check(); b != Ready {
		slog.Warn("[SCAN] precondition failed", "reason", b)
		c.store.Update(func(st UiState) UiState {
			st.Status = b.Message()
			st.StatusKind = StatusError
			return st
		})
		return
	}

	c.phase = PhaseStarting
	s := newSession(c.ctx)
	c.registry.Clear()
	c.store.Update(func(st UiState) UiState {
		st.Scanning = true
		st.Devices = []ble.DiscoveryEvent{}
		st.Status = StatusScanning
		st.StatusKind = StatusInfo
		return st
	})
	c.radio.StartScan(s.onEvent, s.onFailure)
	slog.Info("[SCAN] session started", "session", s.id, "duration", c.opts.Duration)

	c.session = s
	c.phase = PhaseActive
	go c.run(s)
}

// Stop cancels the active session. The session ends at its next suspension
// point. Calling Stop with no session, or twice, does nothing more.
func (c *Controller) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.session == nil || c.phase == PhaseStopping {
		return
	}
	slog.Debug("[SCAN] stop requested", "session", c.session.id)
	c.session.cancel(ErrScanStopped)
}

// Toggle is the scan button: it refuses without permissions, otherwise
// stops a running session or starts a new one.
func (c *Controller) Toggle() {
	if !c.store.Get().HasPermissions {
		c.store.Update(func(st UiState) UiState {
			st.Status = StatusNoPermission
			st.StatusKind = StatusError
			return st
		})
		return
	}
	if c.Phase() != PhaseIdle {
		c.Stop()
		return
	}
	c.Start()
}

// SetFilterConnectable changes the connectable filter. It applies to events
// and snapshots from now on; devices already admitted stay in the registry.
func (c *Controller) SetFilterConnectable(on bool) {
	c.store.Update(func(st UiState) UiState {
		st.FilterConnectable = on
		return st
	})
}

// PermissionResult records the outcome of the permission request.
func (c *Controller) PermissionResult(granted bool) {
	c.store.Update(func(st UiState) UiState {
		st.HasPermissions = granted
		if st.Scanning {
			return st
		}
		if granted {
			st.Status = StatusReady
			st.StatusKind = StatusInfo
		} else {
			st.Status = PermissionDenied.Message()
			st.StatusKind = StatusError
		}
		return st
	})
}

// Wait blocks until the current session, if any, has finished cleanup.
func (c *Controller) Wait() {
	c.mu.Lock()
	s := c.session
	c.mu.Unlock()
	if s != nil {
		<-s.done
	}
}

// Close cancels any active session, waits for its cleanup, and refuses
// further starts.
func (c *Controller) Close() {
	c.cancel(ErrClosed)
	c.Wait()
}

// run is the session task. Cleanup is deferred so it runs exactly once on
// every exit path.
func (c *Controller) run(s *session) {
	reason := endTimeout
	defer func() { c.cleanup(s, reason) }()

	ticker := time.NewTicker(c.opts.TickInterval)
	defer ticker.Stop()

loop:
	for s.elapsed < c.opts.Duration {
		select {
		case <-s.ctx.Done():
			reason = endCancelled
			break loop
		case ev := <-s.events:
			if ev.err != nil {
				c.fail(s, ev.err)
				reason = endFailed
				return
			}
			c.discover(ev.event)
		case <-ticker.C:
			s.elapsed += c.opts.TickInterval
			c.publishDevices()
		}
	}
	if c.drain(s) {
		reason = endFailed
	}
}

// drain processes events still queued when the loop ends, so a failure
// delivered before cleanup still decides the final status.
func (c *Controller) drain(s *session) (failed bool) {
	for {
		select {
		case ev := <-s.events:
			if ev.err != nil {
				if !failed {
					c.fail(s, ev.err)
				}
				failed = true
				continue
			}
			c.discover(ev.event)
		default:
			return failed
		}
	}
}

// discover applies the connectable filter and records the event.
func (c *Controller) discover(ev ble.DiscoveryEvent) {
	if c.store.Get().FilterConnectable && !ev.Connectable.Admits() {
		slog.Debug("[SCAN] ignoring non-connectable device", "address", ev.Address)
		return
	}
	c.registry.Upsert(ev)
}

func (c *Controller) publishDevices() {
	filter := c.store.Get().FilterConnectable
	devices := c.registry.Snapshot(filter)
	c.store.Update(func(st UiState) UiState {
		st.Devices = devices
		return st
	})
}

// fail publishes the failure and cancels the session with it as the cause.
func (c *Controller) fail(s *session, err error) {
	msg := ble.FailureMessage(err)
	slog.Error("[SCAN] scan failed", "session", s.id, "error", err)
	s.failed = true
	c.store.Update(func(st UiState) UiState {
		st.Status = msg
		st.StatusKind = StatusError
		st.Scanning = false
		return st
	})
	s.cancel(err)
}

func (c *Controller) cleanup(s *session, reason endReason) {
	c.mu.Lock()
	c.phase = PhaseStopping
	c.mu.Unlock()

	s.cancel(nil)
	if err := c.radio.StopScan(); err != nil {
		slog.Warn("[SCAN] stop radio", "session", s.id, "error", err)
	}

	final := c.store.Update(func(st UiState) UiState {
		switch {
		case st.StatusKind == StatusError:
		case reason == endCancelled:
			st.Status = StatusStopped
		case c.registry.Len() == 0:
			st.Status = StatusCompleteNoDevices
		default:
			st.Status = StatusComplete
		}
		st.Scanning = false
		st.Devices = c.registry.Snapshot(st.FilterConnectable)
		return st
	})
	slog.Info("[SCAN] session finished", "session", s.id, "status", final.Status,
		"devices", len(final.Devices), "elapsed", s.elapsed, "cause", context.Cause(s.ctx), "failed", s.failed)

	c.mu.Lock()
	c.phase = PhaseIdle
	c.session = nil
	c.mu.Unlock()
	close(s.done)
}
