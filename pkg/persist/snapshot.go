package persist

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/NikolasK-source/go-itimer/pkg/timeval"
)

// SnapshotVersion is the current version of the snapshot file format.
const SnapshotVersion = 1

// Snapshot captures the pending state of a stopped timer for persistence.
// Interval and value are stored normalized to speed factor 1.0; the
// snapshot carries neither the timer kind nor the speed factor.
type Snapshot struct {
	// Version is the snapshot file format version.
	Version int `json:"version"`

	// SavedAt is when the snapshot was taken.
	SavedAt time.Time `json:"saved_at"`

	// Interval is the logical timer interval.
	Interval TimeValue `json:"interval"`

	// Value is the logical time remaining until the next expiration.
	Value TimeValue `json:"value"`
}

// TimeValue mirrors timeval.Val for JSON serialization.
type TimeValue struct {
	Sec  int64 `json:"sec"`
	Usec int64 `json:"usec"`
}

// NewTimeValue converts a timeval.Val for embedding in a Snapshot.
func NewTimeValue(v timeval.Val) TimeValue {
	return TimeValue{Sec: v.Sec, Usec: v.Usec}
}

// Val converts back to a timeval.Val.
func (v TimeValue) Val() timeval.Val {
	return timeval.Val{Sec: v.Sec, Usec: v.Usec}
}

// Spec returns the snapshot's interval/value pair.
func (s *Snapshot) Spec() timeval.Spec {
	return timeval.Spec{Interval: s.Interval.Val(), Value: s.Value.Val()}
}

// NewSnapshot creates a snapshot of the given pending state.
func NewSnapshot(spec timeval.Spec) *Snapshot {
	return &Snapshot{
		Version:  SnapshotVersion,
		SavedAt:  time.Now(),
		Interval: NewTimeValue(spec.Interval),
		Value:    NewTimeValue(spec.Value),
	}
}

// Store manages persistence of timer snapshots to a JSON file.
type Store struct {
	mu   sync.Mutex
	path string
}

// NewStore creates a new snapshot store bound to the given path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Save persists the snapshot to disk.
func (s *Store) Save(snapshot *Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Ensure parent directory exists
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	snapshot.Version = SnapshotVersion
	if snapshot.SavedAt.IsZero() {
		snapshot.SavedAt = time.Now()
	}

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(s.path, data, 0644)
}

// Load reads the snapshot from disk.
// Returns nil, nil if the file doesn't exist (no saved state).
func (s *Store) Load() (*Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	snapshot := &Snapshot{}
	if err := json.Unmarshal(data, snapshot); err != nil {
		return nil, err
	}

	return snapshot, nil
}

// Clear removes the snapshot file.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
