package commands

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/NikolasK-source/go-itimer/pkg/trace"
)

func TestStatsCountsByKind(t *testing.T) {
	ts := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)
	events := []trace.Event{
		{Timestamp: ts, SessionID: "s1", Kind: "WALL_CLOCK", Category: trace.CategoryCreated},
		{Timestamp: ts, SessionID: "s1", Kind: "WALL_CLOCK", Category: trace.CategoryStarted},
		{Timestamp: ts, SessionID: "s2", Kind: "USER_CPU", Category: trace.CategoryCreated},
	}

	path := createTestTraceFile(t, events)

	var buf bytes.Buffer
	if err := RunStats(path, &buf); err != nil {
		t.Fatalf("RunStats failed: %v", err)
	}

	output := buf.String()
	if !strings.Contains(output, "WALL_CLOCK:") {
		t.Error("expected WALL_CLOCK kind in output")
	}
	if !strings.Contains(output, "USER_CPU:") {
		t.Error("expected USER_CPU kind in output")
	}
	if !strings.Contains(output, "Total Events: 3") {
		t.Errorf("expected 3 total events, got:\n%s", output)
	}
}

func TestStatsCountsSessions(t *testing.T) {
	ts := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)
	events := []trace.Event{
		{Timestamp: ts, SessionID: "aaaa-bbbb-cccc", Kind: "WALL_CLOCK", Category: trace.CategoryCreated},
		{Timestamp: ts.Add(time.Second), SessionID: "aaaa-bbbb-cccc", Kind: "WALL_CLOCK", Category: trace.CategoryRescaled, SpeedFactor: 2.5},
		{Timestamp: ts, SessionID: "dddd-eeee-ffff", Kind: "USER_CPU", Category: trace.CategoryCreated},
	}

	path := createTestTraceFile(t, events)

	var buf bytes.Buffer
	if err := RunStats(path, &buf); err != nil {
		t.Fatalf("RunStats failed: %v", err)
	}

	output := buf.String()
	if !strings.Contains(output, "Sessions: 2") {
		t.Errorf("expected 2 sessions, got:\n%s", output)
	}
	if !strings.Contains(output, "[aaaa-bbb]") {
		t.Errorf("expected shortened session ID, got:\n%s", output)
	}
	if !strings.Contains(output, "Rescales: 1 (last speed: 2.5)") {
		t.Errorf("expected rescale count, got:\n%s", output)
	}
}

func TestStatsCountsErrors(t *testing.T) {
	ts := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)
	events := []trace.Event{
		{Timestamp: ts, SessionID: "s1", Kind: "WALL_CLOCK", Category: trace.CategoryStarted},
		{Timestamp: ts, SessionID: "s1", Kind: "WALL_CLOCK", Category: trace.CategoryError, Error: "boom"},
		{Timestamp: ts, SessionID: "s1", Kind: "WALL_CLOCK", Category: trace.CategoryError, Error: "boom again"},
	}

	path := createTestTraceFile(t, events)

	var buf bytes.Buffer
	if err := RunStats(path, &buf); err != nil {
		t.Fatalf("RunStats failed: %v", err)
	}

	output := buf.String()
	if !strings.Contains(output, "Errors: 2") {
		t.Errorf("expected 2 errors, got:\n%s", output)
	}
}

func TestStatsEmptyFile(t *testing.T) {
	path := createTestTraceFile(t, nil)

	var buf bytes.Buffer
	if err := RunStats(path, &buf); err != nil {
		t.Fatalf("RunStats failed: %v", err)
	}

	output := buf.String()
	if !strings.Contains(output, "Total Events: 0") {
		t.Errorf("expected 0 events, got:\n%s", output)
	}
	if !strings.Contains(output, "Sessions: 0") {
		t.Errorf("expected 0 sessions, got:\n%s", output)
	}
}

func TestStatsTimeRange(t *testing.T) {
	base := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)
	events := []trace.Event{
		{Timestamp: base, SessionID: "s1", Kind: "WALL_CLOCK", Category: trace.CategoryCreated},
		{Timestamp: base.Add(90 * time.Second), SessionID: "s1", Kind: "WALL_CLOCK", Category: trace.CategoryClosed},
	}

	path := createTestTraceFile(t, events)

	var buf bytes.Buffer
	if err := RunStats(path, &buf); err != nil {
		t.Fatalf("RunStats failed: %v", err)
	}

	output := buf.String()
	if !strings.Contains(output, "Duration:   1m30s") {
		t.Errorf("expected 1m30s duration, got:\n%s", output)
	}
}
