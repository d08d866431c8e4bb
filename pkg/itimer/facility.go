package itimer

import "github.com/NikolasK-source/go-itimer/pkg/timeval"

// Facility is the OS interval-timer contract: one timer slot per kind,
// armed with a fixed interval/value pair. The real implementation is
// SysFacility; FakeFacility provides a deterministic in-memory one.
//
// Expiration delivery (signals) is outside this contract.
type Facility interface {
	// Arm schedules the first expiration at now + spec.Value, repeating
	// every spec.Interval thereafter. Arming with a zero value disarms
	// the slot, as setitimer does; Timer.Start rejects only a collapsed
	// interval, so a zero value passes through to the facility.
	Arm(kind Kind, spec timeval.Spec) error

	// Disarm atomically stops the slot and returns the interval and the
	// time that was remaining before disarming.
	Disarm(kind Kind) (timeval.Spec, error)

	// Query reads the current interval and remaining time without
	// disarming.
	Query(kind Kind) (timeval.Spec, error)
}
