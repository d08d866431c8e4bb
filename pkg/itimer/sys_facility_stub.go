//go:build !linux

package itimer

// defaultFacility is the facility used when none is configured.
// Non-Linux platforms have no setitimer wrapper in x/sys; callers must
// provide a Facility (e.g. FakeFacility) through Config.
func defaultFacility() (Facility, error) {
	return nil, ErrUnsupportedPlatform
}
