package commands

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/NikolasK-source/go-itimer/pkg/trace"
)

// exportEvent is the JSON shape of an exported trace event.
type exportEvent struct {
	Timestamp   string   `json:"timestamp"`
	SessionID   string   `json:"session_id"`
	Kind        string   `json:"kind"`
	Category    string   `json:"category"`
	Interval    *float64 `json:"interval_s,omitempty"`
	Value       *float64 `json:"value_s,omitempty"`
	SpeedFactor float64  `json:"speed_factor,omitempty"`
	Remaining   *float64 `json:"remaining_s,omitempty"`
	Error       string   `json:"error,omitempty"`
}

func toExportEvent(event trace.Event) exportEvent {
	out := exportEvent{
		Timestamp:   event.Timestamp.UTC().Format("2006-01-02T15:04:05.000000Z"),
		SessionID:   event.SessionID,
		Kind:        event.Kind,
		Category:    event.Category.String(),
		SpeedFactor: event.SpeedFactor,
		Error:       event.Error,
	}
	if event.Armed != nil {
		spec := event.Armed.Spec()
		iv, v := spec.Interval.Seconds(), spec.Value.Seconds()
		out.Interval, out.Value = &iv, &v
	}
	if event.Remaining != nil {
		r := event.Remaining.Val().Seconds()
		out.Remaining = &r
	}
	return out
}

// RunExport exports the trace file to the specified format.
func RunExport(path, format, output string) error {
	reader, err := trace.NewReader(path)
	if err != nil {
		return fmt.Errorf("failed to open trace file: %w", err)
	}
	defer reader.Close()

	// Determine output writer
	var w io.Writer = os.Stdout
	if output != "" {
		f, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		w = f
	}

	switch format {
	case "jsonl":
		return exportJSONL(reader, w)
	case "csv":
		return exportCSV(reader, w)
	default:
		return fmt.Errorf("unknown format: %s (supported: jsonl, csv)", format)
	}
}

func exportJSONL(reader *trace.Reader, w io.Writer) error {
	encoder := json.NewEncoder(w)
	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}
		if err := encoder.Encode(toExportEvent(event)); err != nil {
			return fmt.Errorf("failed to encode event: %w", err)
		}
	}
	return nil
}

func exportCSV(reader *trace.Reader, w io.Writer) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	// Write header
	header := []string{"timestamp", "session_id", "kind", "category", "interval_s", "value_s", "speed_factor", "remaining_s", "error"}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}

		interval, value := "", ""
		if event.Armed != nil {
			spec := event.Armed.Spec()
			interval = fmt.Sprintf("%.6f", spec.Interval.Seconds())
			value = fmt.Sprintf("%.6f", spec.Value.Seconds())
		}
		remaining := ""
		if event.Remaining != nil {
			remaining = fmt.Sprintf("%.6f", event.Remaining.Val().Seconds())
		}
		speed := ""
		if event.SpeedFactor != 0 {
			speed = fmt.Sprintf("%g", event.SpeedFactor)
		}

		row := []string{
			event.Timestamp.UTC().Format("2006-01-02T15:04:05.000000Z"),
			event.SessionID,
			event.Kind,
			event.Category.String(),
			interval,
			value,
			speed,
			remaining,
			event.Error,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}
	return nil
}
