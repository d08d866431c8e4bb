package itimer

import "sync"

// kindRegistry tracks which timer kinds are owned by a live Timer.
// The OS exposes exactly one slot per kind per process, so ownership is
// process-wide state and must be guarded against concurrent
// construction/destruction.
type kindRegistry struct {
	mu    sync.Mutex
	owned [numKinds]bool
}

// registry is the process-wide kind registry.
var registry kindRegistry

// acquire claims the slot for kind via check-and-set.
func (r *kindRegistry) acquire(kind Kind) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.owned[kind] {
		return ErrInstanceExists
	}
	r.owned[kind] = true
	return nil
}

// release returns the slot for kind.
func (r *kindRegistry) release(kind Kind) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.owned[kind] = false
}
