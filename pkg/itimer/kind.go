package itimer

// Kind identifies which of the three per-process countdown clocks a
// timer tracks.
type Kind uint8

const (
	// WallClock counts down in real time (ITIMER_REAL, fires SIGALRM).
	WallClock Kind = iota

	// UserCPU counts down against user-mode CPU time consumed by the
	// process (ITIMER_VIRTUAL, fires SIGVTALRM).
	UserCPU

	// TotalCPU counts down against total (user and system) CPU time
	// consumed by the process (ITIMER_PROF, fires SIGPROF).
	TotalCPU

	// numKinds is the number of timer kinds.
	numKinds = 3
)

// String returns a human-readable kind name.
func (k Kind) String() string {
	switch k {
	case WallClock:
		return "WALL_CLOCK"
	case UserCPU:
		return "USER_CPU"
	case TotalCPU:
		return "TOTAL_CPU"
	default:
		return "UNKNOWN"
	}
}

// valid reports whether k is one of the three timer kinds.
func (k Kind) valid() bool {
	return k < numKinds
}
