// Package pause detects when the cursor has stopped moving.
//
// The Detector is fed positions at a fixed period. It keeps a trailing
// window of the distances between consecutive samples and reports the
// cursor as paused once the window's mean displacement is below a threshold.
package pause

import (
	"time"

	"github.com/xkilldash9x/reachctl/internal/geometry"
	"gonum.org/v1/gonum/stat"
)

const (
	// DefaultPeriod is the sampling period the thresholds are tuned for.
	DefaultPeriod = 50 * time.Millisecond
	// DefaultWindow is the number of samples kept between evaluations.
	DefaultWindow = 8
	// DefaultThreshold is the mean displacement per sample below which
	// the cursor counts as stationary.
	DefaultThreshold = 0.001
	// Sentinel is the mean reported before the window has filled.
	Sentinel = 1000.0
)

// Config tunes a Detector.
type Config struct {
	Window    int
	Threshold float64
	Sentinel  float64
}

// DefaultConfig returns the standard detector tuning.
func DefaultConfig() Config {
	return Config{Window: DefaultWindow, Threshold: DefaultThreshold, Sentinel: Sentinel}
}

// Detector is a windowed stillness detector. It is not safe for concurrent use.
type Detector struct {
	cfg     Config
	samples []float64
	last    geometry.Vector3D
	mean    float64
	paused  bool
}

// NewDetector returns a Detector with an empty window. A non-positive
// window falls back to DefaultWindow.
func NewDetector(cfg Config) *Detector {
	if cfg.Window <= 0 {
		cfg.Window = DefaultWindow
	}
	d := &Detector{cfg: cfg}
	d.Reset()
	return d
}

// Reset empties the window and restores the sentinel mean. The last known
// position is kept at the origin, as on construction.
func (d *Detector) Reset() {
	d.samples = make([]float64, 0, d.cfg.Window+1)
	d.last = geometry.Zero
	d.mean = d.cfg.Sentinel
	d.paused = false
}

// Sample records the displacement from the previous sample to current and
// returns the updated paused flag.
//
// The mean is only recomputed when the window overflows: the overflowing
// sample is included, then the oldest sample is evicted. Until the window
// first overflows the sentinel keeps paused false.
func (d *Detector) Sample(current geometry.Vector3D) bool {
	d.samples = append(d.samples, current.Dist(d.last))

	if len(d.samples) > d.cfg.Window {
		d.mean = stat.Mean(d.samples, nil)
		copy(d.samples, d.samples[1:])
		d.samples = d.samples[:len(d.samples)-1]
	}

	d.last = current
	d.paused = d.mean < d.cfg.Threshold
	return d.paused
}

// Paused reports the result of the most recent sample.
func (d *Detector) Paused() bool { return d.paused }

// Mean returns the last computed mean, or the sentinel.
func (d *Detector) Mean() float64 { return d.mean }

// Len returns the number of samples in the window.
func (d *Detector) Len() int { return len(d.samples) }

// Window returns the window cap.
func (d *Detector) Window() int { return d.cfg.Window }
