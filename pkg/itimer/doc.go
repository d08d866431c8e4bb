// Package itimer implements a speed-adjustable abstraction over the
// process's POSIX interval timers (setitimer/getitimer).
//
// A Timer owns one of the three per-process timer slots (wall-clock,
// user-CPU, total-CPU) and adds two capabilities the OS facility does
// not have: a speed factor that scales the timer's apparent rate while
// it is running, and persistence of the pending timing state across
// process restarts.
//
// # Logical vs. Live State
//
// A Timer always reasons in logical units: the interval and value as if
// the speed factor were 1.0. Whenever the OS slot is (re)armed, the
// facility receives interval/speedFactor and value/speedFactor. On stop,
// the remaining live value is multiplied back by the speed factor before
// it is stored. The logical state is what gets persisted.
//
// # Speed Changes While Running
//
// Changing the speed factor of a running timer disarms the slot (which
// atomically returns the precise remaining value), rescales that
// remainder by oldFactor/newFactor, re-derives the interval at the new
// factor, and re-arms. No expiration can be attributed to the old
// configuration after the disarm step, so the sequence is atomic from
// the owner's point of view.
//
// # Singleton Per Kind
//
// The OS exposes exactly one timer slot per kind per process; two Timer
// objects driving the same slot would silently clobber each other. The
// package therefore enforces one live Timer per kind via an internal
// registry: New fails with ErrInstanceExists while another instance of
// the same kind is alive, and Close releases the slot.
//
// # Signal Delivery
//
// Expiration delivery (SIGALRM/SIGVTALRM/SIGPROF) is entirely the
// client's concern; register handlers with os/signal. This package never
// touches signal handling.
//
// # Concurrency
//
// A Timer is safe for concurrent use; all operations are synchronous,
// bounded-latency syscalls or pure computation. The underlying OS slot
// is still a single resource - interleaving Start/Stop from many
// goroutines is safe but rarely meaningful.
package itimer
