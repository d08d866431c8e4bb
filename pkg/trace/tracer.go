package trace

// Tracer is the interface applications implement to receive timer trace events.
// Pass nil or NoopTracer to disable tracing.
type Tracer interface {
	// Trace records a lifecycle event. Implementations must be thread-safe.
	// The event should be processed quickly or queued; blocking slows down
	// the timer operation that produced it.
	Trace(event Event)
}

// NoopTracer discards all events. Use when tracing is disabled.
// NoopTracer is safe for concurrent use and usable as a zero value.
type NoopTracer struct{}

// Trace discards the event.
func (NoopTracer) Trace(Event) {}

// Compile-time interface satisfaction check.
var _ Tracer = NoopTracer{}

// MultiTracer sends events to multiple tracers.
// Useful when you want both console output (via SlogTracer)
// and file output (via FileTracer) simultaneously.
type MultiTracer struct {
	tracers []Tracer
}

// NewMultiTracer creates a MultiTracer that sends events to all provided tracers.
func NewMultiTracer(tracers ...Tracer) *MultiTracer {
	return &MultiTracer{tracers: tracers}
}

// Trace sends the event to all configured tracers.
func (m *MultiTracer) Trace(event Event) {
	for _, t := range m.tracers {
		t.Trace(event)
	}
}

// Compile-time interface satisfaction check.
var _ Tracer = (*MultiTracer)(nil)
