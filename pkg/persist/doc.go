// Package persist provides persistence of pending timer state across
// process restarts.
//
// Two formats are supported:
//
// # Raw Record
//
// WriteRecord and ReadRecord implement a minimal on-disk contract: one
// fixed-size binary record holding the facility's native interval/value
// pair (two sec/usec int64 pairs, interval first) in the platform's
// native byte order. There is no kind, no speed factor, no version tag
// and no self-description; reader and writer must agree on the layout
// out of band. Records are only portable between processes on the same
// platform.
//
// # Versioned Snapshot
//
// Snapshot and Store provide a self-describing JSON alternative with a
// format version and save timestamp. Like the raw record, a snapshot
// deliberately carries neither the timer kind nor the speed factor:
// pending state is always stored normalized to speed factor 1.0 and can
// be restored into a timer of any kind.
package persist
