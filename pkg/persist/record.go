package persist

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/NikolasK-source/go-itimer/pkg/timeval"
)

// RecordSize is the size of a raw record in bytes: four int64 fields.
const RecordSize = 32

// record is the wire layout of a raw record. It matches struct itimerval
// on LP64 platforms: it_interval before it_value, tv_sec before tv_usec.
type record struct {
	IntervalSec  int64
	IntervalUsec int64
	ValueSec     int64
	ValueUsec    int64
}

// WriteRecord writes one raw record to w in native byte order.
func WriteRecord(w io.Writer, s timeval.Spec) error {
	rec := record{
		IntervalSec:  s.Interval.Sec,
		IntervalUsec: s.Interval.Usec,
		ValueSec:     s.Value.Sec,
		ValueUsec:    s.Value.Usec,
	}
	if err := binary.Write(w, binary.NativeEndian, rec); err != nil {
		return fmt.Errorf("failed to write timer record: %w", err)
	}
	return nil
}

// ReadRecord reads one raw record from r.
// A short or empty stream fails without returning partial data.
func ReadRecord(r io.Reader) (timeval.Spec, error) {
	var rec record
	if err := binary.Read(r, binary.NativeEndian, &rec); err != nil {
		return timeval.Spec{}, fmt.Errorf("failed to read timer record: %w", err)
	}
	return timeval.Spec{
		Interval: timeval.Val{Sec: rec.IntervalSec, Usec: rec.IntervalUsec},
		Value:    timeval.Val{Sec: rec.ValueSec, Usec: rec.ValueUsec},
	}, nil
}
