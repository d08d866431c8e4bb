package timeval

import (
	"fmt"
	"math"
	"time"
)

// UsecPerSec is the number of microseconds per second.
const UsecPerSec = 1_000_000

// Val is a seconds + microseconds pair, the fixed-point time
// representation of the OS timer facility.
type Val struct {
	Sec  int64
	Usec int64
}

// FromSeconds converts floating-point seconds to a Val.
// The integer-seconds component is truncated toward zero and the
// microsecond component is derived from the fractional part.
func FromSeconds(s float64) Val {
	return Val{
		Sec:  int64(math.Trunc(s)),
		Usec: int64(math.Mod(s, 1.0) * UsecPerSec),
	}
}

// FromDuration converts a time.Duration to a Val, truncating to
// microsecond granularity.
func FromDuration(d time.Duration) Val {
	us := d.Microseconds()
	return Val{Sec: us / UsecPerSec, Usec: us % UsecPerSec}
}

// Seconds returns the value as floating-point seconds.
func (v Val) Seconds() float64 {
	return float64(v.Sec) + float64(v.Usec)/UsecPerSec
}

// Duration returns the value as a time.Duration.
func (v Val) Duration() time.Duration {
	return time.Duration(v.Sec)*time.Second + time.Duration(v.Usec)*time.Microsecond
}

// IsZero reports whether both components are zero.
func (v Val) IsZero() bool {
	return v.Sec == 0 && v.Usec == 0
}

// Mul returns the value scaled by f.
func (v Val) Mul(f float64) Val {
	return FromSeconds(v.Seconds() * f)
}

// Div returns the value divided by f.
func (v Val) Div(f float64) Val {
	return FromSeconds(v.Seconds() / f)
}

// String returns the value in seconds with microsecond precision.
func (v Val) String() string {
	return fmt.Sprintf("%.6fs", v.Seconds())
}

// Spec is an interval/value pair as understood by the OS timer facility.
// Interval is the period reloaded after each expiration; Value is the
// time remaining until the next expiration.
type Spec struct {
	Interval Val
	Value    Val
}

// Mul returns the spec with both components scaled by f.
func (s Spec) Mul(f float64) Spec {
	return Spec{Interval: s.Interval.Mul(f), Value: s.Value.Mul(f)}
}

// Div returns the spec with both components divided by f.
func (s Spec) Div(f float64) Spec {
	return Spec{Interval: s.Interval.Div(f), Value: s.Value.Div(f)}
}
