package trace

import (
	"time"

	"github.com/NikolasK-source/go-itimer/pkg/timeval"
)

// Event records one timer lifecycle transition.
// CBOR encoding uses integer keys for compactness.
type Event struct {
	// Timestamp when the event occurred (nanosecond precision).
	Timestamp time.Time `cbor:"1,keyasint"`

	// SessionID uniquely identifies the timer instance (UUID).
	SessionID string `cbor:"2,keyasint"`

	// Kind is the timer kind name (WALL_CLOCK, USER_CPU, TOTAL_CPU).
	Kind string `cbor:"3,keyasint"`

	// Category classifies the event.
	Category Category `cbor:"4,keyasint"`

	// Armed is the factor-scaled spec handed to the OS facility, set for
	// events that (re)armed the timer.
	Armed *SpecData `cbor:"5,keyasint,omitempty"`

	// SpeedFactor is the speed factor after the event.
	SpeedFactor float64 `cbor:"6,keyasint,omitempty"`

	// Remaining is the normalized remaining value, set for stop events.
	Remaining *ValData `cbor:"7,keyasint,omitempty"`

	// Error is the error text for error events.
	Error string `cbor:"8,keyasint,omitempty"`
}

// Category classifies a trace event.
type Category uint8

const (
	// CategoryCreated indicates timer construction.
	CategoryCreated Category = iota
	// CategoryStarted indicates the timer was armed.
	CategoryStarted
	// CategoryStopped indicates the timer was disarmed.
	CategoryStopped
	// CategoryRescaled indicates a live speed change.
	CategoryRescaled
	// CategoryPersisted indicates the pending state was written out.
	CategoryPersisted
	// CategoryRestored indicates the pending state was read back.
	CategoryRestored
	// CategoryClosed indicates timer destruction.
	CategoryClosed
	// CategoryError indicates a failed operation.
	CategoryError
)

// String returns the category name.
func (c Category) String() string {
	switch c {
	case CategoryCreated:
		return "CREATED"
	case CategoryStarted:
		return "STARTED"
	case CategoryStopped:
		return "STOPPED"
	case CategoryRescaled:
		return "RESCALED"
	case CategoryPersisted:
		return "PERSISTED"
	case CategoryRestored:
		return "RESTORED"
	case CategoryClosed:
		return "CLOSED"
	case CategoryError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ValData is the CBOR representation of a timeval.Val.
type ValData struct {
	Sec  int64 `cbor:"1,keyasint"`
	Usec int64 `cbor:"2,keyasint"`
}

// SpecData is the CBOR representation of a timeval.Spec.
type SpecData struct {
	Interval ValData `cbor:"1,keyasint"`
	Value    ValData `cbor:"2,keyasint"`
}

// NewValData converts a timeval.Val for embedding in an Event.
func NewValData(v timeval.Val) *ValData {
	return &ValData{Sec: v.Sec, Usec: v.Usec}
}

// NewSpecData converts a timeval.Spec for embedding in an Event.
func NewSpecData(s timeval.Spec) *SpecData {
	return &SpecData{
		Interval: ValData{Sec: s.Interval.Sec, Usec: s.Interval.Usec},
		Value:    ValData{Sec: s.Value.Sec, Usec: s.Value.Usec},
	}
}

// Val converts back to a timeval.Val.
func (v ValData) Val() timeval.Val {
	return timeval.Val{Sec: v.Sec, Usec: v.Usec}
}

// Spec converts back to a timeval.Spec.
func (s SpecData) Spec() timeval.Spec {
	return timeval.Spec{Interval: s.Interval.Val(), Value: s.Value.Val()}
}
