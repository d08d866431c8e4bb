// Package commands implements the itimer-trace CLI commands.
package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/NikolasK-source/go-itimer/pkg/trace"
)

// ViewFilter specifies criteria for filtering events in the view command.
type ViewFilter struct {
	SessionID string
	Kind      string
	Category  *trace.Category
}

// formatEvent writes a human-readable representation of the event to w.
func formatEvent(w io.Writer, event trace.Event) {
	// Header line: timestamp [sess:id] KIND CATEGORY
	ts := event.Timestamp.UTC().Format("2006-01-02T15:04:05.000000Z")
	sess := shortenSessionID(event.SessionID)

	fmt.Fprintf(w, "%s [sess:%s] %-10s %s\n", ts, sess, event.Kind, event.Category)

	if event.Armed != nil {
		spec := event.Armed.Spec()
		fmt.Fprintf(w, "  Interval: %s  Value: %s\n", spec.Interval, spec.Value)
	}
	if event.SpeedFactor != 0 {
		fmt.Fprintf(w, "  Speed: %g\n", event.SpeedFactor)
	}
	if event.Remaining != nil {
		fmt.Fprintf(w, "  Remaining: %s\n", event.Remaining.Val())
	}
	if event.Error != "" {
		fmt.Fprintf(w, "  Error: %s\n", event.Error)
	}

	fmt.Fprintln(w) // Blank line between events
}

// shortenSessionID returns the first 8 characters of the session ID.
func shortenSessionID(id string) string {
	if len(id) >= 8 {
		return id[:8]
	}
	return id
}

// ParseKindFlag parses a timer kind string from command-line flag
// (case-insensitive), returning the kind name used in trace events.
func ParseKindFlag(s string) (string, error) {
	switch strings.ToLower(s) {
	case "wall", "wall_clock", "wall-clock":
		return "WALL_CLOCK", nil
	case "user-cpu", "user_cpu", "virtual":
		return "USER_CPU", nil
	case "total-cpu", "total_cpu", "prof":
		return "TOTAL_CPU", nil
	default:
		return "", fmt.Errorf("invalid kind: %s (must be wall, user-cpu, or total-cpu)", s)
	}
}

// ParseCategoryFlag parses a category string from command-line flag (case-insensitive).
func ParseCategoryFlag(s string) (trace.Category, error) {
	return parseCategory(s)
}

// parseCategory parses a category string (case-insensitive).
func parseCategory(s string) (trace.Category, error) {
	switch strings.ToLower(s) {
	case "created":
		return trace.CategoryCreated, nil
	case "started":
		return trace.CategoryStarted, nil
	case "stopped":
		return trace.CategoryStopped, nil
	case "rescaled":
		return trace.CategoryRescaled, nil
	case "persisted":
		return trace.CategoryPersisted, nil
	case "restored":
		return trace.CategoryRestored, nil
	case "closed":
		return trace.CategoryClosed, nil
	case "error":
		return trace.CategoryError, nil
	default:
		return 0, fmt.Errorf("invalid category: %s (must be created, started, stopped, rescaled, persisted, restored, closed, or error)", s)
	}
}

// RunView executes the view command.
func RunView(path string, filter ViewFilter, output io.Writer) error {
	reader, err := trace.NewFilteredReader(path, trace.Filter{
		SessionID: filter.SessionID,
		Kind:      filter.Kind,
		Category:  filter.Category,
	})
	if err != nil {
		return fmt.Errorf("failed to open trace file: %w", err)
	}
	defer reader.Close()

	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}

		formatEvent(output, event)
	}

	return nil
}
