package itimer

import (
	"sync"
	"time"

	"github.com/NikolasK-source/go-itimer/pkg/timeval"
)

// FakeFacility is a deterministic in-memory Facility for tests and
// examples. Time does not pass on its own; call Advance to simulate the
// countdown of a kind's clock and count the expirations that occur.
//
// Armed slots follow the POSIX rules: arming with a zero value disarms
// the slot, a zero interval makes it one-shot, and disarming a slot that
// is not armed returns zeros.
type FakeFacility struct {
	mu    sync.Mutex
	slots [numKinds]fakeSlot

	// Error injection for the next matching call. Set from test code
	// before exercising the timer.
	ArmErr    error
	DisarmErr error
	QueryErr  error
}

type fakeSlot struct {
	armed       bool
	spec        timeval.Spec
	expirations int
}

// NewFakeFacility creates a FakeFacility with all slots disarmed.
func NewFakeFacility() *FakeFacility {
	return &FakeFacility{}
}

// Arm installs the spec on the kind's slot.
func (f *FakeFacility) Arm(kind Kind, spec timeval.Spec) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.ArmErr != nil {
		return f.ArmErr
	}

	// A zero value disarms the slot, as setitimer does.
	f.slots[kind] = fakeSlot{
		armed:       !spec.Value.IsZero(),
		spec:        spec,
		expirations: f.slots[kind].expirations,
	}
	return nil
}

// Disarm stops the slot and returns what was armed, with the value at
// its current remaining time. A slot that is not armed returns zeros.
func (f *FakeFacility) Disarm(kind Kind) (timeval.Spec, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.DisarmErr != nil {
		return timeval.Spec{}, f.DisarmErr
	}

	slot := &f.slots[kind]
	if !slot.armed {
		return timeval.Spec{}, nil
	}

	prev := slot.spec
	slot.armed = false
	slot.spec = timeval.Spec{}
	return prev, nil
}

// Query returns what is armed without disarming. A slot that is not
// armed returns zeros.
func (f *FakeFacility) Query(kind Kind) (timeval.Spec, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.QueryErr != nil {
		return timeval.Spec{}, f.QueryErr
	}

	slot := f.slots[kind]
	if !slot.armed {
		return timeval.Spec{}, nil
	}
	return slot.spec, nil
}

// Advance simulates d passing on the kind's clock. Each time the
// remaining value is consumed an expiration is counted and, for a
// repeating slot, the interval is reloaded. A one-shot slot (zero
// interval) ends up disarmed after its expiration.
func (f *FakeFacility) Advance(kind Kind, d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()

	slot := &f.slots[kind]
	if !slot.armed {
		return
	}

	remaining := slot.spec.Value.Duration().Microseconds()
	interval := slot.spec.Interval.Duration().Microseconds()
	elapsed := d.Microseconds()

	for slot.armed && elapsed >= remaining {
		elapsed -= remaining
		slot.expirations++
		if interval == 0 {
			slot.armed = false
			remaining = 0
			break
		}
		remaining = interval
	}
	if slot.armed {
		remaining -= elapsed
	}

	slot.spec.Value = timeval.Val{
		Sec:  remaining / timeval.UsecPerSec,
		Usec: remaining % timeval.UsecPerSec,
	}
}

// Expirations returns how many times the kind's slot has expired.
func (f *FakeFacility) Expirations(kind Kind) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.slots[kind].expirations
}

// Armed returns the currently armed spec for the kind, and whether the
// slot is armed at all.
func (f *FakeFacility) Armed(kind Kind) (timeval.Spec, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	slot := f.slots[kind]
	return slot.spec, slot.armed
}

// Compile-time interface satisfaction check.
var _ Facility = (*FakeFacility)(nil)
