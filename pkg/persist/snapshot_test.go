package persist

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/NikolasK-source/go-itimer/pkg/timeval"
)

func TestStore(t *testing.T) {
	spec := timeval.Spec{
		Interval: timeval.Val{Sec: 3, Usec: 0},
		Value:    timeval.Val{Sec: 1, Usec: 500000},
	}

	t.Run("SaveAndLoad", func(t *testing.T) {
		dir := t.TempDir()
		store := NewStore(filepath.Join(dir, "timer.json"))

		if err := store.Save(NewSnapshot(spec)); err != nil {
			t.Fatalf("Save() error = %v", err)
		}

		got, err := store.Load()
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if got == nil {
			t.Fatal("Load() returned nil snapshot")
		}

		if got.Version != SnapshotVersion {
			t.Errorf("Version = %d, want %d", got.Version, SnapshotVersion)
		}
		if got.SavedAt.IsZero() {
			t.Error("SavedAt is zero")
		}
		if got.Spec() != spec {
			t.Errorf("Spec() = %+v, want %+v", got.Spec(), spec)
		}
	})

	t.Run("LoadNonExistent", func(t *testing.T) {
		dir := t.TempDir()
		store := NewStore(filepath.Join(dir, "nonexistent.json"))

		got, err := store.Load()
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if got != nil {
			t.Errorf("Load() = %+v, want nil for missing file", got)
		}
	})

	t.Run("SaveCreatesParentDir", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "nested", "deep", "timer.json")
		store := NewStore(path)

		if err := store.Save(NewSnapshot(spec)); err != nil {
			t.Fatalf("Save() error = %v", err)
		}

		if _, err := os.Stat(path); err != nil {
			t.Errorf("snapshot file not created: %v", err)
		}
	})

	t.Run("Clear", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "timer.json")
		store := NewStore(path)

		if err := store.Save(NewSnapshot(spec)); err != nil {
			t.Fatalf("Save() error = %v", err)
		}
		if err := store.Clear(); err != nil {
			t.Fatalf("Clear() error = %v", err)
		}
		if _, err := os.Stat(path); !os.IsNotExist(err) {
			t.Error("snapshot file still exists after Clear()")
		}

		// Clearing again is not an error
		if err := store.Clear(); err != nil {
			t.Fatalf("second Clear() error = %v", err)
		}
	})
}
