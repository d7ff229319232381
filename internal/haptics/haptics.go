// Package haptics drives short vibration pulses on the tracked controller.
package haptics

import (
	"time"

	"github.com/xkilldash9x/reachctl/internal/schedule"
	"go.uber.org/zap"
)

// Pulse defaults.
const (
	DefaultFrequency = 1.0
	DefaultAmplitude = 0.6
	DefaultDuration  = 200 * time.Millisecond
)

// Actuator is the controller vibration driver.
type Actuator interface {
	SetVibration(frequency, amplitude float64)
}

// PulseConfig shapes a pulse.
type PulseConfig struct {
	Frequency float64
	Amplitude float64
	Duration  time.Duration
}

// DefaultPulseConfig returns the standard short pulse.
func DefaultPulseConfig() PulseConfig {
	return PulseConfig{Frequency: DefaultFrequency, Amplitude: DefaultAmplitude, Duration: DefaultDuration}
}

// Pulser starts a vibration and schedules its stop.
//
// Each Pulse schedules its own stop. A later pulse does not cancel an
// earlier pending stop, so two pulses closer together than Duration end
// when the first stop fires.
type Pulser struct {
	actuator Actuator
	sched    *schedule.Scheduler
	cfg      PulseConfig
}

// NewPulser binds an actuator to the fixed-period scheduler.
func NewPulser(actuator Actuator, sched *schedule.Scheduler, cfg PulseConfig) *Pulser {
	return &Pulser{actuator: actuator, sched: sched, cfg: cfg}
}

// Pulse vibrates the controller for the configured duration.
func (p *Pulser) Pulse() {
	p.actuator.SetVibration(p.cfg.Frequency, p.cfg.Amplitude)
	p.sched.After(p.cfg.Duration, func(time.Duration) {
		p.actuator.SetVibration(0, 0)
	})
}

// LogActuator stands in for a hardware driver and logs each change.
type LogActuator struct {
	logger *zap.Logger
}

// NewLogActuator returns an actuator that only logs.
func NewLogActuator(logger *zap.Logger) *LogActuator {
	return &LogActuator{logger: logger.Named("haptics")}
}

func (a *LogActuator) SetVibration(frequency, amplitude float64) {
	a.logger.Debug("Set vibration", zap.Float64("frequency", frequency), zap.Float64("amplitude", amplitude))
}
