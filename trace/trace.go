// Package trace records scheduling decisions as a structured event log.
//
// The recorder writes one JSON object per line, optionally compressed with
// zstd. It exists for offline debugging of merge behavior and policy
// composition; production runs leave it disabled.
package trace

import (
	"encoding/json"
	"io"
	"os"
	"time"

	"github.com/klauspost/compress/zstd"
)

// Event kinds emitted by the scheduling core.
const (
	KindSelect = "select"
	KindMerge  = "merge"
	KindBump   = "bump"
	KindBudget = "budget"
)

// Event is a single scheduling decision.
type Event struct {
	Time    time.Time `json:"time"`
	Kind    string    `json:"kind"`
	StateID uint64    `json:"state_id,omitempty"`
	// OtherID is the second participant of a merge or bump.
	OtherID uint64 `json:"other_id,omitempty"`
	// MergePoint is the static instruction id of the merge call.
	MergePoint uint32 `json:"merge_point,omitempty"`
	// Detail carries free-form context, e.g. the widened budget value.
	Detail string `json:"detail,omitempty"`
}

// Recorder appends events to an underlying writer. Write errors are sticky:
// the first one is retained and reported by Close, and later events are
// dropped silently so the scheduling hot path never has to handle IO
// failures.
//
// Recorder is not safe for concurrent use.
type Recorder struct {
	w    io.Writer
	enc  *json.Encoder
	zw   *zstd.Encoder
	c    io.Closer
	err  error
	noww func() time.Time
}

// Option configures a Recorder.
type Option func(*Recorder)

// WithCompression wraps the output in a zstd stream.
func WithCompression() Option {
	return func(r *Recorder) {
		zw, err := zstd.NewWriter(r.w)
		if err != nil {
			r.err = err
			return
		}
		r.zw = zw
		r.w = zw
	}
}

// WithClock overrides the timestamp source. Used by tests.
func WithClock(now func() time.Time) Option {
	return func(r *Recorder) {
		r.noww = now
	}
}

// NewRecorder creates a Recorder writing to w.
func NewRecorder(w io.Writer, opts ...Option) *Recorder {
	r := &Recorder{w: w, noww: time.Now}
	for _, opt := range opts {
		opt(r)
	}
	r.enc = json.NewEncoder(r.w)
	return r
}

// Create creates a Recorder writing to a new file at path.
func Create(path string, opts ...Option) (*Recorder, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	r := NewRecorder(f, opts...)
	r.c = f
	return r, nil
}

// Record appends one event, stamping it if its time is zero.
func (r *Recorder) Record(ev Event) {
	if r.err != nil {
		return
	}
	if ev.Time.IsZero() {
		ev.Time = r.noww()
	}
	if err := r.enc.Encode(ev); err != nil {
		r.err = err
	}
}

// Err returns the first write error, if any.
func (r *Recorder) Err() error {
	return r.err
}

// Close flushes the compressor (if any) and closes the underlying file
// when the Recorder owns it. It returns the first error observed.
func (r *Recorder) Close() error {
	if r.zw != nil {
		if err := r.zw.Close(); err != nil && r.err == nil {
			r.err = err
		}
	}
	if r.c != nil {
		if err := r.c.Close(); err != nil && r.err == nil {
			r.err = err
		}
	}
	return r.err
}

// ReadAll decodes every event from an encoded stream, transparently
// handling zstd compression.
func ReadAll(rd io.Reader, compressed bool) ([]Event, error) {
	if compressed {
		zr, err := zstd.NewReader(rd)
		if err != nil {
			return nil, err
		}
		defer zr.Close()
		rd = zr
	}

	var events []Event
	dec := json.NewDecoder(rd)
	for {
		var ev Event
		if err := dec.Decode(&ev); err != nil {
			if err == io.EOF {
				return events, nil
			}
			return nil, err
		}
		events = append(events, ev)
	}
}
