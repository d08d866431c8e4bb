package commands

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/NikolasK-source/go-itimer/pkg/timeval"
	"github.com/NikolasK-source/go-itimer/pkg/trace"
)

func TestFormatStartedEvent(t *testing.T) {
	ts := time.Date(2026, 8, 30, 10, 15, 32, 123456000, time.UTC)
	event := trace.Event{
		Timestamp: ts,
		SessionID: "abc12345-6789-0123-4567-890abcdef012",
		Kind:      "WALL_CLOCK",
		Category:  trace.CategoryStarted,
		Armed: trace.NewSpecData(timeval.Spec{
			Interval: timeval.FromSeconds(1.0),
			Value:    timeval.FromSeconds(0.5),
		}),
		SpeedFactor: 2.0,
	}

	var buf bytes.Buffer
	formatEvent(&buf, event)
	output := buf.String()

	// Check timestamp format
	if !strings.Contains(output, "2026-08-30T10:15:32.123456Z") {
		t.Errorf("expected microsecond timestamp, got: %s", output)
	}

	// Check session ID (shortened)
	if !strings.Contains(output, "[sess:abc12345]") {
		t.Errorf("expected shortened session ID, got: %s", output)
	}

	// Check kind and category
	if !strings.Contains(output, "WALL_CLOCK") {
		t.Errorf("expected WALL_CLOCK kind, got: %s", output)
	}
	if !strings.Contains(output, "STARTED") {
		t.Errorf("expected STARTED category, got: %s", output)
	}

	// Check armed spec
	if !strings.Contains(output, "Interval: 1.000000s") {
		t.Errorf("expected armed interval, got: %s", output)
	}
	if !strings.Contains(output, "Value: 0.500000s") {
		t.Errorf("expected armed value, got: %s", output)
	}
	if !strings.Contains(output, "Speed: 2") {
		t.Errorf("expected speed factor, got: %s", output)
	}
}

func TestFormatStoppedEvent(t *testing.T) {
	ts := time.Date(2026, 8, 30, 10, 15, 33, 0, time.UTC)
	event := trace.Event{
		Timestamp:   ts,
		SessionID:   "abc12345-6789-0123-4567-890abcdef012",
		Kind:        "USER_CPU",
		Category:    trace.CategoryStopped,
		SpeedFactor: 1.0,
		Remaining:   trace.NewValData(timeval.FromSeconds(1.5)),
	}

	var buf bytes.Buffer
	formatEvent(&buf, event)
	output := buf.String()

	if !strings.Contains(output, "STOPPED") {
		t.Errorf("expected STOPPED category, got: %s", output)
	}
	if !strings.Contains(output, "Remaining: 1.500000s") {
		t.Errorf("expected remaining value, got: %s", output)
	}
}

func TestFormatErrorEvent(t *testing.T) {
	event := trace.Event{
		Timestamp: time.Date(2026, 8, 30, 10, 15, 34, 0, time.UTC),
		SessionID: "short",
		Kind:      "TOTAL_CPU",
		Category:  trace.CategoryError,
		Error:     "failed to disarm TOTAL_CPU timer: boom",
	}

	var buf bytes.Buffer
	formatEvent(&buf, event)
	output := buf.String()

	// Short IDs are not truncated
	if !strings.Contains(output, "[sess:short]") {
		t.Errorf("expected full short session ID, got: %s", output)
	}
	if !strings.Contains(output, "Error: failed to disarm") {
		t.Errorf("expected error text, got: %s", output)
	}
}

func TestRunViewFiltersByCategory(t *testing.T) {
	ts := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)
	events := []trace.Event{
		{Timestamp: ts, SessionID: "s1", Kind: "WALL_CLOCK", Category: trace.CategoryCreated},
		{Timestamp: ts, SessionID: "s1", Kind: "WALL_CLOCK", Category: trace.CategoryStarted},
		{Timestamp: ts, SessionID: "s1", Kind: "WALL_CLOCK", Category: trace.CategoryRescaled, SpeedFactor: 2.0},
		{Timestamp: ts, SessionID: "s1", Kind: "WALL_CLOCK", Category: trace.CategoryStopped},
	}

	path := createTestTraceFile(t, events)

	cat := trace.CategoryRescaled
	var buf bytes.Buffer
	if err := RunView(path, ViewFilter{Category: &cat}, &buf); err != nil {
		t.Fatalf("RunView failed: %v", err)
	}

	output := buf.String()
	if !strings.Contains(output, "RESCALED") {
		t.Errorf("expected RESCALED event in output, got: %s", output)
	}
	if strings.Contains(output, "STARTED") {
		t.Errorf("expected STARTED to be filtered out, got: %s", output)
	}
}

func TestParseKindFlag(t *testing.T) {
	tests := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{"wall", "WALL_CLOCK", false},
		{"WALL", "WALL_CLOCK", false},
		{"user-cpu", "USER_CPU", false},
		{"virtual", "USER_CPU", false},
		{"total-cpu", "TOTAL_CPU", false},
		{"prof", "TOTAL_CPU", false},
		{"bogus", "", true},
	}

	for _, tt := range tests {
		got, err := ParseKindFlag(tt.input)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseKindFlag(%q): expected error", tt.input)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseKindFlag(%q): unexpected error: %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseKindFlag(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestParseCategoryFlag(t *testing.T) {
	for name, want := range map[string]trace.Category{
		"created":   trace.CategoryCreated,
		"started":   trace.CategoryStarted,
		"stopped":   trace.CategoryStopped,
		"rescaled":  trace.CategoryRescaled,
		"persisted": trace.CategoryPersisted,
		"restored":  trace.CategoryRestored,
		"closed":    trace.CategoryClosed,
		"error":     trace.CategoryError,
	} {
		got, err := ParseCategoryFlag(name)
		if err != nil {
			t.Errorf("ParseCategoryFlag(%q): unexpected error: %v", name, err)
			continue
		}
		if got != want {
			t.Errorf("ParseCategoryFlag(%q) = %v, want %v", name, got, want)
		}
	}

	if _, err := ParseCategoryFlag("bogus"); err == nil {
		t.Error("ParseCategoryFlag(bogus): expected error")
	}
}
