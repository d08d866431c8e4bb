//go:build linux

package itimer

import (
	"fmt"
	"time"

	"golang.org/x/sys/unix"

	"github.com/NikolasK-source/go-itimer/pkg/timeval"
)

// SysFacility drives the process's POSIX interval timers via the
// setitimer/getitimer syscalls.
type SysFacility struct{}

// NewSysFacility returns the OS timer facility.
func NewSysFacility() (*SysFacility, error) {
	return &SysFacility{}, nil
}

// defaultFacility is the facility used when none is configured.
func defaultFacility() (Facility, error) {
	return NewSysFacility()
}

// itimerWhich maps a Kind to its setitimer selector.
func itimerWhich(kind Kind) (unix.ItimerWhich, error) {
	switch kind {
	case WallClock:
		return unix.ITIMER_REAL, nil
	case UserCPU:
		return unix.ITIMER_VIRTUAL, nil
	case TotalCPU:
		return unix.ITIMER_PROF, nil
	default:
		return 0, fmt.Errorf("%w: %d", ErrInvalidKind, kind)
	}
}

func toItimerval(s timeval.Spec) unix.Itimerval {
	return unix.Itimerval{
		Interval: unix.NsecToTimeval(s.Interval.Duration().Nanoseconds()),
		Value:    unix.NsecToTimeval(s.Value.Duration().Nanoseconds()),
	}
}

func fromItimerval(it unix.Itimerval) timeval.Spec {
	return timeval.Spec{
		Interval: timeval.FromDuration(time.Duration(unix.TimevalToNsec(it.Interval))),
		Value:    timeval.FromDuration(time.Duration(unix.TimevalToNsec(it.Value))),
	}
}

// Arm installs the spec on the kind's timer slot.
func (*SysFacility) Arm(kind Kind, spec timeval.Spec) error {
	which, err := itimerWhich(kind)
	if err != nil {
		return err
	}

	if _, err := unix.Setitimer(which, toItimerval(spec)); err != nil {
		return fmt.Errorf("call of setitimer failed: %w", err)
	}
	return nil
}

// Disarm stops the kind's timer slot and returns the previous state.
func (*SysFacility) Disarm(kind Kind) (timeval.Spec, error) {
	which, err := itimerWhich(kind)
	if err != nil {
		return timeval.Spec{}, err
	}

	prev, err := unix.Setitimer(which, unix.Itimerval{})
	if err != nil {
		return timeval.Spec{}, fmt.Errorf("call of setitimer failed: %w", err)
	}
	return fromItimerval(prev), nil
}

// Query reads the kind's timer slot without disarming.
func (*SysFacility) Query(kind Kind) (timeval.Spec, error) {
	which, err := itimerWhich(kind)
	if err != nil {
		return timeval.Spec{}, err
	}

	it, err := unix.Getitimer(which)
	if err != nil {
		return timeval.Spec{}, fmt.Errorf("call of getitimer failed: %w", err)
	}
	return fromItimerval(it), nil
}

// Compile-time interface satisfaction check.
var _ Facility = (*SysFacility)(nil)
