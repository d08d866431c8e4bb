package trace

import (
	"context"
	"log/slog"
)

// SlogTracer writes trace events to an slog.Logger.
// Useful for development when you want to see timer events in console.
type SlogTracer struct {
	logger *slog.Logger
}

// NewSlogTracer creates a SlogTracer that writes to the given slog.Logger.
func NewSlogTracer(logger *slog.Logger) *SlogTracer {
	return &SlogTracer{logger: logger}
}

// Trace writes the event to the slog logger at Debug level.
func (t *SlogTracer) Trace(event Event) {
	attrs := []slog.Attr{
		slog.String("session_id", event.SessionID),
		slog.String("kind", event.Kind),
		slog.String("category", event.Category.String()),
	}

	if event.Armed != nil {
		attrs = append(attrs,
			slog.String("armed_interval", event.Armed.Interval.Val().String()),
			slog.String("armed_value", event.Armed.Value.Val().String()),
		)
	}
	if event.SpeedFactor != 0 {
		attrs = append(attrs, slog.Float64("speed_factor", event.SpeedFactor))
	}
	if event.Remaining != nil {
		attrs = append(attrs, slog.String("remaining", event.Remaining.Val().String()))
	}
	if event.Error != "" {
		attrs = append(attrs, slog.String("error", event.Error))
	}

	t.logger.LogAttrs(context.Background(), slog.LevelDebug, "timer event", attrs...)
}

// Compile-time interface satisfaction check.
var _ Tracer = (*SlogTracer)(nil)
