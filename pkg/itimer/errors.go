package itimer

import "errors"

// Timer errors.
var (
	// ErrAlreadyRunning is returned by Start on a running timer.
	ErrAlreadyRunning = errors.New("timer already started")

	// ErrNotRunning is returned by Stop on a stopped timer.
	ErrNotRunning = errors.New("timer already stopped")

	// ErrRunning is returned by operations that require a stopped timer.
	ErrRunning = errors.New("timer is running")

	// ErrClosed is returned by operations on a closed timer.
	ErrClosed = errors.New("timer is closed")

	// ErrInstanceExists is returned when another live timer of the same
	// kind already owns the OS slot.
	ErrInstanceExists = errors.New("instance exists")

	// ErrInvalidKind is returned for a kind outside the three timer kinds.
	ErrInvalidKind = errors.New("invalid timer kind")

	// ErrInvalidSpeedFactor is returned for a speed factor that is not a
	// positive finite number.
	ErrInvalidSpeedFactor = errors.New("invalid speed factor")

	// ErrSpeedFactorTooSmall is returned by Start when the factor-scaled
	// interval collapses to zero, which would disable repeating.
	ErrSpeedFactorTooSmall = errors.New("invalid timer values due to a too small speed factor")

	// ErrNegativeInterval is returned by Start when the factor-scaled
	// interval has a negative seconds component.
	ErrNegativeInterval = errors.New("timer interval is negative")

	// ErrNegativeValue is returned by Start when the factor-scaled value
	// has a negative seconds component.
	ErrNegativeValue = errors.New("timer value is negative")

	// ErrUnsupportedPlatform is returned when no OS timer facility is
	// available and none was provided.
	ErrUnsupportedPlatform = errors.New("interval timers not supported on this platform")
)
