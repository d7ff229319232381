// Package trace reads and writes recorded hand positions as JSON lines:
//
//	{"t":0.011,"x":0.01,"y":1.2,"z":0.3}
//
// t is seconds since the start of the recording; x, y and z are metres in
// workspace coordinates.
package trace

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"time"

	jsoniter "github.com/json-iterator/go"

	"github.com/xkilldash9x/reachctl/internal/geometry"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var (
	// ErrOutOfOrder is returned when a sample's time is before its predecessor's.
	ErrOutOfOrder = errors.New("trace: samples out of order")
	// ErrMalformed is returned for a line that is not a valid sample.
	ErrMalformed = errors.New("trace: malformed sample")
)

// Sample is one recorded hand position.
type Sample struct {
	T float64 `json:"t"`
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// At is the sample time as a duration. Reader rejects times that do not
// fit in a time.Duration.
func (s Sample) At() time.Duration {
	return time.Duration(math.Round(s.T * float64(time.Second)))
}

// Position is the sampled hand position.
func (s Sample) Position() geometry.Vector3D {
	return geometry.Vector3D{X: s.X, Y: s.Y, Z: s.Z}
}

// NewSample builds a sample at the given time and position.
func NewSample(at time.Duration, p geometry.Vector3D) Sample {
	return Sample{T: at.Seconds(), X: p.X, Y: p.Y, Z: p.Z}
}

// Reader decodes samples one line at a time. Blank lines are skipped.
type Reader struct {
	scanner *bufio.Scanner
	line    int
	last    float64
	started bool
}

// NewReader returns a Reader over r.
func NewReader(r io.Reader) *Reader {
	return &Reader{scanner: bufio.NewScanner(r)}
}

// Next returns the next sample, or io.EOF when the input is exhausted.
func (r *Reader) Next() (Sample, error) {
	for r.scanner.Scan() {
		r.line++
		raw := bytes.TrimSpace(r.scanner.Bytes())
		if len(raw) == 0 {
			continue
		}
		var s Sample
		if err := json.Unmarshal(raw, &s); err != nil {
			return Sample{}, fmt.Errorf("%w: line %d: %v", ErrMalformed, r.line, err)
		}
		if math.IsNaN(s.T) || s.T < 0 || s.T*float64(time.Second) >= math.MaxInt64 {
			return Sample{}, fmt.Errorf("%w: line %d: invalid time %v", ErrMalformed, r.line, s.T)
		}
		if r.started && s.T < r.last {
			return Sample{}, fmt.Errorf("%w: line %d: t=%v after t=%v", ErrOutOfOrder, r.line, s.T, r.last)
		}
		r.started = true
		r.last = s.T
		return s, nil
	}
	if err := r.scanner.Err(); err != nil {
		return Sample{}, fmt.Errorf("trace: read failed at line %d: %w", r.line, err)
	}
	return Sample{}, io.EOF
}

// ReadAll decodes every remaining sample.
func (r *Reader) ReadAll() ([]Sample, error) {
	var out []Sample
	for {
		s, err := r.Next()
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return out, err
		}
		out = append(out, s)
	}
}

// Writer encodes samples one per line.
type Writer struct {
	w     *bufio.Writer
	count int
}

// NewWriter returns a Writer over w. Call Flush when done.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: bufio.NewWriter(w)}
}

// Write appends one sample.
func (w *Writer) Write(s Sample) error {
	b, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("trace: encode sample: %w", err)
	}
	if _, err := w.w.Write(append(b, '\n')); err != nil {
		return fmt.Errorf("trace: write sample: %w", err)
	}
	w.count++
	return nil
}

// Count is the number of samples written.
func (w *Writer) Count() int { return w.count }

// Flush writes any buffered data.
func (w *Writer) Flush() error {
	return w.w.Flush()
}
