// Package trace provides structured lifecycle event capture for interval
// timers.
//
// This package defines the Tracer interface and the Event type recording
// timer lifecycle transitions (start, stop, rescale, persistence). It is
// separate from operational logging (slog) - trace capture produces a
// complete machine-readable record of what was armed on the OS facility
// and when, which is what you need when debugging speed-scaling behavior
// after the fact.
//
// # Basic Usage
//
// Applications configure tracing by providing a Tracer implementation:
//
//	// For development: log events to console via slog
//	cfg.Tracer = trace.NewSlogTracer(slog.Default())
//
//	// For production: write to binary file
//	cfg.Tracer, _ = trace.NewFileTracer("/var/log/itimer/timer.tlog")
//
//	// Both: use MultiTracer
//	cfg.Tracer = trace.NewMultiTracer(
//	    trace.NewSlogTracer(slog.Default()),
//	    fileTracer,
//	)
//
// # Event Stream
//
// Every timer carries a session ID (UUID) assigned at construction, so
// events from multiple timers interleaved in one file can be separated.
// Events that change what the OS facility has armed (start, rescale)
// carry the exact factor-scaled spec that was handed to the facility.
//
// # File Format
//
// Trace files are a plain concatenation of CBOR-encoded events with
// integer keys. Reader streams them back, optionally filtered.
package trace
