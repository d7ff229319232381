// File: internal/config/participant_config.go
// ParticipantConfig holds the tunable parameters of the simulated participant
// used by `reachctl simulate`. They control the movement model (Fitts's law
// timing, reaction and hold delays) and the noise added to the hand position.
package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// ParticipantConfig is the simulated participant's persona.
type ParticipantConfig struct {
	// Seed for the participant's random source. Zero seeds from the clock.
	Seed int64 `mapstructure:"seed" yaml:"seed"`
	// Fitts's law parameters in milliseconds: MT = a + b*log2(1 + D/W).
	FittsA float64 `mapstructure:"fitts_a" yaml:"fitts_a"`
	FittsB float64 `mapstructure:"fitts_b" yaml:"fitts_b"`
	// Reaction delay after the attempt starts.
	Settle time.Duration `mapstructure:"settle" yaml:"settle"`
	// Time spent looking at the feedback before returning home.
	Hold time.Duration `mapstructure:"hold" yaml:"hold"`
	// Standard deviation of the per-frame tremor, in metres.
	Tremor float64 `mapstructure:"tremor" yaml:"tremor"`
	// Amplitude of the slow Perlin drift, in metres.
	DriftAmplitude float64 `mapstructure:"drift_amplitude" yaml:"drift_amplitude"`
}

func setParticipantDefaults(v *viper.Viper) {
	v.SetDefault("participant.seed", 0)
	v.SetDefault("participant.fitts_a", 100.0)
	v.SetDefault("participant.fitts_b", 100.0)
	v.SetDefault("participant.settle", "150ms")
	v.SetDefault("participant.hold", "300ms")
	v.SetDefault("participant.tremor", 0.0001)
	v.SetDefault("participant.drift_amplitude", 0.0005)
}

// Validate checks the participant settings.
func (p *ParticipantConfig) Validate() error {
	if p.FittsA < 0 || p.FittsB < 0 {
		return fmt.Errorf("%w: participant.fitts_a and participant.fitts_b must not be negative", ErrInvalid)
	}
	if p.Settle < 0 || p.Hold < 0 {
		return fmt.Errorf("%w: participant.settle and participant.hold must not be negative", ErrInvalid)
	}
	if p.Tremor < 0 || p.DriftAmplitude < 0 {
		return fmt.Errorf("%w: participant noise must not be negative", ErrInvalid)
	}
	return nil
}
