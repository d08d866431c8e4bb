// Package timeval implements the fixed-point time representation used by
// POSIX interval timers: a seconds + microseconds pair.
//
// # Representation
//
// Val mirrors the C timeval structure (tv_sec/tv_usec). Spec mirrors
// itimerval: the interval reloaded after each expiration and the value
// remaining until the next expiration.
//
// # Scaling
//
// Mul and Div implement scalar speed scaling by converting to
// floating-point seconds, applying the scalar, and converting back with
// truncation at microsecond granularity. A round trip through seconds is
// exact to within one microsecond for any Val with a normalized
// microsecond component.
//
// # Validation
//
// This package performs no validation. Negative inputs and degenerate
// scale factors pass through unchanged; bounding the scale factor is the
// caller's job (see the itimer package).
package timeval
