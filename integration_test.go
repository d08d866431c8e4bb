package itimer_test

import (
	"bytes"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NikolasK-source/go-itimer/pkg/itimer"
	"github.com/NikolasK-source/go-itimer/pkg/persist"
	"github.com/NikolasK-source/go-itimer/pkg/timeval"
	"github.com/NikolasK-source/go-itimer/pkg/trace"
)

// TestE2E_SpeedAdjustedLifecycle drives a full timer lifecycle against
// the fake facility: arm, run at double speed, rescale back, stop,
// persist, restore into a fresh instance, and verify the trace file
// recorded every step.
func TestE2E_SpeedAdjustedLifecycle(t *testing.T) {
	dir := t.TempDir()
	tracePath := filepath.Join(dir, "timer.tlog")

	tracer, err := trace.NewFileTracer(tracePath)
	require.NoError(t, err)

	fake := itimer.NewFakeFacility()
	timer, err := itimer.NewWithConfig(itimer.Config{
		Kind:     itimer.WallClock,
		Interval: timeval.FromSeconds(2.0),
		Facility: fake,
		Tracer:   tracer,
	})
	require.NoError(t, err)

	// Double speed halves what the facility sees
	require.NoError(t, timer.SetSpeedFactor(2.0))
	require.NoError(t, timer.Start())

	armed, ok := fake.Armed(itimer.WallClock)
	require.True(t, ok)
	assert.InDelta(t, 1.0, armed.Interval.Seconds(), 1e-6)
	assert.InDelta(t, 1.0, armed.Value.Seconds(), 1e-6)

	// Three facility seconds at factor 2 are six logical seconds
	fake.Advance(itimer.WallClock, 3*time.Second)
	assert.Equal(t, 3, fake.Expirations(itimer.WallClock))

	// Rescaling back to normal doubles the remaining slack
	require.NoError(t, timer.SetSpeedToNormal())
	armed, ok = fake.Armed(itimer.WallClock)
	require.True(t, ok)
	assert.InDelta(t, 2.0, armed.Interval.Seconds(), 1e-6)
	assert.InDelta(t, 2.0, armed.Value.Seconds(), 1e-6)

	fake.Advance(itimer.WallClock, 500*time.Millisecond)
	require.NoError(t, timer.Stop())

	value, err := timer.Value()
	require.NoError(t, err)
	assert.InDelta(t, 1.5, value.Seconds(), 1e-5)

	// Raw record survives a restart into a new instance
	var buf bytes.Buffer
	require.NoError(t, timer.Save(&buf))
	assert.Equal(t, persist.RecordSize, buf.Len())

	snap, err := timer.Snapshot()
	require.NoError(t, err)
	store := persist.NewStore(filepath.Join(dir, "timer.json"))
	require.NoError(t, store.Save(snap))

	require.NoError(t, timer.Close())
	require.NoError(t, tracer.Close())

	restored, err := itimer.NewWithConfig(itimer.Config{
		Kind:     itimer.WallClock,
		Interval: timeval.FromSeconds(1.0),
		Facility: itimer.NewFakeFacility(),
	})
	require.NoError(t, err)
	defer restored.Close()

	require.NoError(t, restored.Load(&buf))
	assert.InDelta(t, 2.0, restored.Interval().Seconds(), 1e-6)
	value, err = restored.Value()
	require.NoError(t, err)
	assert.InDelta(t, 1.5, value.Seconds(), 1e-5)

	loaded, err := store.Load()
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.InDelta(t, 1.5, loaded.Value.Val().Seconds(), 1e-5)

	// The trace file saw the whole lifecycle
	events, err := trace.ReadFile(tracePath)
	require.NoError(t, err)

	var categories []trace.Category
	for _, ev := range events {
		categories = append(categories, ev.Category)
	}
	assert.Equal(t, []trace.Category{
		trace.CategoryCreated,
		trace.CategoryStarted,
		trace.CategoryRescaled,
		trace.CategoryStopped,
		trace.CategoryPersisted,
		trace.CategoryClosed,
	}, categories)

	for _, ev := range events {
		assert.Equal(t, timer.SessionID(), ev.SessionID)
		assert.Equal(t, "WALL_CLOCK", ev.Kind)
	}
}

// TestE2E_KindExclusivity verifies that each kind is a process-wide
// singleton and frees its slot on Close.
func TestE2E_KindExclusivity(t *testing.T) {
	first, err := itimer.NewWithConfig(itimer.Config{
		Kind:     itimer.UserCPU,
		Interval: timeval.FromSeconds(1.0),
		Facility: itimer.NewFakeFacility(),
	})
	require.NoError(t, err)

	_, err = itimer.NewWithConfig(itimer.Config{
		Kind:     itimer.UserCPU,
		Interval: timeval.FromSeconds(1.0),
		Facility: itimer.NewFakeFacility(),
	})
	assert.ErrorIs(t, err, itimer.ErrInstanceExists)

	// A different kind is unaffected
	other, err := itimer.NewWithConfig(itimer.Config{
		Kind:     itimer.TotalCPU,
		Interval: timeval.FromSeconds(1.0),
		Facility: itimer.NewFakeFacility(),
	})
	require.NoError(t, err)
	require.NoError(t, other.Close())

	require.NoError(t, first.Close())

	second, err := itimer.NewWithConfig(itimer.Config{
		Kind:     itimer.UserCPU,
		Interval: timeval.FromSeconds(1.0),
		Facility: itimer.NewFakeFacility(),
	})
	require.NoError(t, err)
	require.NoError(t, second.Close())
}
