package itimer

import (
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/NikolasK-source/go-itimer/pkg/persist"
	"github.com/NikolasK-source/go-itimer/pkg/timeval"
	"github.com/NikolasK-source/go-itimer/pkg/trace"
)

// exitSoftware is the exit code used when an unstoppable live timer is
// detected during Close (EX_SOFTWARE).
const exitSoftware = 70

// osExit terminates the process. Overridable for tests.
var osExit = os.Exit

// Timer controls one OS interval-timer slot with a dynamic speed factor.
//
// interval and value are kept in logical units (speed factor 1.0).
// While the timer is running, the OS slot holds the live factor-scaled
// state and the stored value is stale until Stop re-derives it.
type Timer struct {
	mu sync.Mutex

	kind Kind

	// Logical interval/value (speed factor 1.0)
	interval timeval.Val
	value    timeval.Val

	// Speed adjustment factor:
	//   (0;1) slower, (1;inf) faster, 1 normal speed
	speedFactor float64

	running bool
	closed  bool

	facility Facility
	logger   *slog.Logger
	tracer   trace.Tracer

	// Session ID for trace correlation
	sessionID string
}

// Config holds timer configuration.
type Config struct {
	// Kind selects the OS timer slot.
	Kind Kind

	// Interval is the logical timer interval.
	Interval timeval.Val

	// Value is the logical time until the first expiration.
	// Zero value means "use Interval".
	Value timeval.Val

	// Facility overrides the OS timer facility. Defaults to the
	// platform facility (SysFacility on Linux).
	Facility Facility

	// Logger receives operational log output. Defaults to slog.Default().
	Logger *slog.Logger

	// Tracer receives lifecycle trace events. Defaults to none.
	Tracer trace.Tracer
}

// New creates a stopped timer with the given interval, first expiration
// after one full interval and speed factor 1.0.
// Only one live timer per kind may exist in a process.
func New(kind Kind, interval timeval.Val) (*Timer, error) {
	return NewWithConfig(Config{Kind: kind, Interval: interval})
}

// NewWithValue creates a stopped timer with separate interval and first
// expiration value.
func NewWithValue(kind Kind, interval, value timeval.Val) (*Timer, error) {
	return NewWithConfig(Config{Kind: kind, Interval: interval, Value: value})
}

// NewWithConfig creates a stopped timer from a Config.
func NewWithConfig(cfg Config) (*Timer, error) {
	if !cfg.Kind.valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidKind, cfg.Kind)
	}

	facility := cfg.Facility
	if facility == nil {
		var err error
		facility, err = defaultFacility()
		if err != nil {
			return nil, err
		}
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	tracer := cfg.Tracer
	if tracer == nil {
		tracer = trace.NoopTracer{}
	}

	value := cfg.Value
	if value.IsZero() {
		value = cfg.Interval
	}

	// Prevent multiple instances per kind
	if err := registry.acquire(cfg.Kind); err != nil {
		return nil, err
	}

	t := &Timer{
		kind:        cfg.Kind,
		interval:    cfg.Interval,
		value:       value,
		speedFactor: 1.0,
		facility:    facility,
		logger:      logger,
		tracer:      tracer,
		sessionID:   uuid.NewString(),
	}

	t.trace(trace.Event{Category: trace.CategoryCreated, SpeedFactor: 1.0})

	return t, nil
}

// Kind returns the timer kind.
func (t *Timer) Kind() Kind {
	return t.kind
}

// SessionID returns the trace session ID assigned at construction.
func (t *Timer) SessionID() string {
	return t.sessionID
}

// IsRunning reports whether the timer is running.
func (t *Timer) IsRunning() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.running
}

// SpeedFactor returns the current speed factor.
func (t *Timer) SpeedFactor() float64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.speedFactor
}

// Interval returns the logical timer interval.
func (t *Timer) Interval() timeval.Val {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.interval
}

// Start arms the OS slot with the factor-scaled interval and value.
// It fails with ErrAlreadyRunning on a running timer, and rejects
// scaled values the facility could not represent (negative seconds, or
// an interval that collapses to zero) before any OS call is made.
func (t *Timer) Start() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return ErrClosed
	}
	if t.running {
		return ErrAlreadyRunning
	}

	// Create scaled timer values
	scaled := timeval.Spec{Interval: t.interval, Value: t.value}.Div(t.speedFactor)

	if scaled.Interval.Sec < 0 {
		return ErrNegativeInterval
	}
	if scaled.Value.Sec < 0 {
		return ErrNegativeValue
	}
	if scaled.Interval.IsZero() {
		return ErrSpeedFactorTooSmall
	}

	if err := t.facility.Arm(t.kind, scaled); err != nil {
		t.traceError(err)
		return fmt.Errorf("failed to arm %s timer: %w", t.kind, err)
	}

	t.running = true
	t.trace(trace.Event{
		Category:    trace.CategoryStarted,
		Armed:       trace.NewSpecData(scaled),
		SpeedFactor: t.speedFactor,
	})

	return nil
}

// Stop disarms the OS slot and stores the remaining time, normalized
// back to speed factor 1.0, as the logical value.
// It fails with ErrNotRunning on a stopped timer.
func (t *Timer) Stop() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return ErrClosed
	}
	if !t.running {
		return ErrNotRunning
	}

	if err := t.stopLocked(); err != nil {
		t.traceError(err)
		return err
	}

	t.trace(trace.Event{
		Category:    trace.CategoryStopped,
		SpeedFactor: t.speedFactor,
		Remaining:   trace.NewValData(t.value),
	})

	return nil
}

// stopLocked disarms the slot and normalizes the remaining value.
// The caller must hold t.mu.
func (t *Timer) stopLocked() error {
	prev, err := t.facility.Disarm(t.kind)
	if err != nil {
		return fmt.Errorf("failed to disarm %s timer: %w", t.kind, err)
	}

	// Normalize value
	t.value = prev.Value.Mul(t.speedFactor)
	t.running = false
	return nil
}

// SetSpeedFactor sets the speed factor. It is applied directly, even if
// the timer is running:
//
//	(0;1)   slower
//	(1;inf) faster
//	1       normal speed
//
// Factors that are not positive finite numbers are rejected with
// ErrInvalidSpeedFactor and leave the timer unchanged.
func (t *Timer) SetSpeedFactor(factor float64) error {
	if factor <= 0.0 || math.IsNaN(factor) || math.IsInf(factor, 0) {
		return fmt.Errorf("%w: %v", ErrInvalidSpeedFactor, factor)
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return ErrClosed
	}

	if t.running {
		return t.adjustSpeed(factor)
	}

	t.speedFactor = factor
	return nil
}

// SetSpeedToNormal resets the speed factor to 1.0, like calling
// SetSpeedFactor(1.0).
func (t *Timer) SetSpeedToNormal() error {
	return t.SetSpeedFactor(1.0)
}

// adjustSpeed rescales a running timer: disarm (capturing the precise
// remaining value), scale the remainder by oldFactor/newFactor, re-derive
// the interval at the new factor, re-arm. The caller must hold t.mu.
func (t *Timer) adjustSpeed(newFactor float64) error {
	prev, err := t.facility.Disarm(t.kind)
	if err != nil {
		t.traceError(err)
		return fmt.Errorf("failed to disarm %s timer: %w", t.kind, err)
	}

	next := timeval.Spec{
		Interval: t.interval.Div(newFactor),
		Value:    prev.Value.Mul(t.speedFactor / newFactor),
	}

	if err := t.facility.Arm(t.kind, next); err != nil {
		// The slot is disarmed; keep the object consistent with it
		// instead of pretending the timer is still running.
		t.value = prev.Value.Mul(t.speedFactor)
		t.running = false
		t.traceError(err)
		return fmt.Errorf("failed to re-arm %s timer: %w", t.kind, err)
	}

	t.speedFactor = newFactor
	t.trace(trace.Event{
		Category:    trace.CategoryRescaled,
		Armed:       trace.NewSpecData(next),
		SpeedFactor: newFactor,
	})

	return nil
}

// SetInterval sets the logical interval and sets the logical value to
// the same time. Only allowed while the timer is stopped.
func (t *Timer) SetInterval(interval timeval.Val) error {
	return t.SetIntervalValue(interval, interval)
}

// SetIntervalValue sets the logical interval and value.
// Only allowed while the timer is stopped; fails with ErrRunning
// otherwise, leaving both unchanged.
func (t *Timer) SetIntervalValue(interval, value timeval.Val) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return ErrClosed
	}
	if t.running {
		return fmt.Errorf("cannot set interval/value: %w", ErrRunning)
	}

	t.interval = interval
	t.value = value
	return nil
}

// Value returns the stored logical value if the timer is stopped, or the
// live (factor-scaled) remaining value from the OS slot if running.
// Fails with ErrClosed on a closed timer.
func (t *Timer) Value() (timeval.Val, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return timeval.Val{}, ErrClosed
	}
	if !t.running {
		return t.value, nil
	}

	live, err := t.facility.Query(t.kind)
	if err != nil {
		return timeval.Val{}, fmt.Errorf("failed to query %s timer: %w", t.kind, err)
	}
	return live.Value, nil
}

// pendingLocked returns the state to persist: the logical interval and,
// while running, the live remaining value normalized back to speed
// factor 1.0. The caller must hold t.mu.
func (t *Timer) pendingLocked() (timeval.Spec, error) {
	spec := timeval.Spec{Interval: t.interval, Value: t.value}

	if t.running {
		live, err := t.facility.Query(t.kind)
		if err != nil {
			return timeval.Spec{}, fmt.Errorf("failed to query %s timer: %w", t.kind, err)
		}
		spec.Value = live.Value.Mul(t.speedFactor)
	}

	return spec, nil
}

// Save writes the pending state to w as one raw binary record
// (see the persist package for the format). The timer may be running;
// the written value is always normalized to speed factor 1.0.
// Fails with ErrClosed on a closed timer.
func (t *Timer) Save(w io.Writer) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return ErrClosed
	}

	spec, err := t.pendingLocked()
	if err != nil {
		t.traceError(err)
		return err
	}

	if err := persist.WriteRecord(w, spec); err != nil {
		t.traceError(err)
		return err
	}

	t.trace(trace.Event{
		Category: trace.CategoryPersisted,
		Armed:    trace.NewSpecData(spec),
	})

	return nil
}

// Load reads one raw binary record from r into the logical
// interval/value. Fails with ErrRunning while the timer is running.
func (t *Timer) Load(r io.Reader) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return ErrClosed
	}
	if t.running {
		return ErrRunning
	}

	spec, err := persist.ReadRecord(r)
	if err != nil {
		t.traceError(err)
		return err
	}

	t.interval = spec.Interval
	t.value = spec.Value

	t.trace(trace.Event{
		Category: trace.CategoryRestored,
		Armed:    trace.NewSpecData(spec),
	})

	return nil
}

// Snapshot captures the pending state as a versioned snapshot.
// The timer may be running; the snapshot value is always normalized to
// speed factor 1.0. Fails with ErrClosed on a closed timer.
func (t *Timer) Snapshot() (*persist.Snapshot, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return nil, ErrClosed
	}

	spec, err := t.pendingLocked()
	if err != nil {
		t.traceError(err)
		return nil, err
	}

	return persist.NewSnapshot(spec), nil
}

// Restore loads the logical interval/value from a snapshot.
// Fails with ErrRunning while the timer is running.
func (t *Timer) Restore(snapshot *persist.Snapshot) error {
	if snapshot == nil {
		return fmt.Errorf("nil snapshot")
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return ErrClosed
	}
	if t.running {
		return ErrRunning
	}

	spec := snapshot.Spec()
	t.interval = spec.Interval
	t.value = spec.Value

	t.trace(trace.Event{
		Category: trace.CategoryRestored,
		Armed:    trace.NewSpecData(spec),
	})

	return nil
}

// Close releases the timer's kind slot, stopping the timer first if it
// is running. The timer must not be used afterwards; Close is idempotent.
//
// If the implicit stop fails, the process is terminated with exit code
// 70: there is no owner left to retry, and a live OS timer that has
// outlived its owning object corrupts all subsequent timer use. This is
// deliberate, not an omission.
func (t *Timer) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return nil
	}

	if t.running {
		if err := t.stopLocked(); err != nil {
			t.logger.Error("failed to stop timer during close, terminating",
				slog.String("kind", t.kind.String()),
				slog.String("error", err.Error()),
			)
			t.traceError(err)
			osExit(exitSoftware)
			// Reached only when osExit is stubbed
			return err
		}
	}

	t.closed = true
	registry.release(t.kind)
	t.trace(trace.Event{Category: trace.CategoryClosed})

	return nil
}

// trace fills in the common event fields and hands the event to the
// configured tracer. The caller must hold t.mu (or be the constructor).
func (t *Timer) trace(event trace.Event) {
	event.Timestamp = time.Now()
	event.SessionID = t.sessionID
	event.Kind = t.kind.String()
	t.tracer.Trace(event)
}

// traceError emits an error event.
func (t *Timer) traceError(err error) {
	t.trace(trace.Event{Category: trace.CategoryError, Error: err.Error()})
}
