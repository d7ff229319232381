// File: internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/xkilldash9x/reachctl/internal/cursor"
	"github.com/xkilldash9x/reachctl/internal/geometry"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid configuration")

// EnvPrefix prefixes environment overrides, e.g. REACHCTL_PAUSE_WINDOW.
const EnvPrefix = "REACHCTL"

// BindEnvironment enables environment overrides for every known key.
func BindEnvironment(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// Config holds the entire application configuration.
type Config struct {
	Logger      LoggerConfig         `mapstructure:"logger" yaml:"logger"`
	Pause       PauseConfig          `mapstructure:"pause" yaml:"pause"`
	Haptics     HapticsConfig        `mapstructure:"haptics" yaml:"haptics"`
	Feedback    FeedbackConfig       `mapstructure:"feedback" yaml:"feedback"`
	Workspace   WorkspaceConfig      `mapstructure:"workspace" yaml:"workspace"`
	Runner      RunnerConfig         `mapstructure:"runner" yaml:"runner"`
	Participant ParticipantConfig    `mapstructure:"participant" yaml:"participant"`
	Trials      []cursor.TrialConfig `mapstructure:"trials" yaml:"trials"`
}

// LoggerConfig holds all the configuration for the logger.
type LoggerConfig struct {
	Level       string      `mapstructure:"level" yaml:"level"`
	Format      string      `mapstructure:"format" yaml:"format"`
	AddSource   bool        `mapstructure:"add_source" yaml:"add_source"`
	ServiceName string      `mapstructure:"service_name" yaml:"service_name"`
	LogFile     string      `mapstructure:"log_file" yaml:"log_file"`
	MaxSize     int         `mapstructure:"max_size" yaml:"max_size"`
	MaxBackups  int         `mapstructure:"max_backups" yaml:"max_backups"`
	MaxAge      int         `mapstructure:"max_age" yaml:"max_age"`
	Compress    bool        `mapstructure:"compress" yaml:"compress"`
	Colors      ColorConfig `mapstructure:"colors" yaml:"colors"`
}

// ColorConfig defines the color codes for different log levels.
type ColorConfig struct {
	Debug  string `mapstructure:"debug" yaml:"debug"`
	Info   string `mapstructure:"info" yaml:"info"`
	Warn   string `mapstructure:"warn" yaml:"warn"`
	Error  string `mapstructure:"error" yaml:"error"`
	DPanic string `mapstructure:"dpanic" yaml:"dpanic"`
	Panic  string `mapstructure:"panic" yaml:"panic"`
	Fatal  string `mapstructure:"fatal" yaml:"fatal"`
}

// PauseConfig tunes the stillness detector and its sampling period.
type PauseConfig struct {
	Period    time.Duration `mapstructure:"period" yaml:"period"`
	Window    int           `mapstructure:"window" yaml:"window"`
	Threshold float64       `mapstructure:"threshold" yaml:"threshold"`
	Sentinel  float64       `mapstructure:"sentinel" yaml:"sentinel"`
}

// HapticsConfig is the vibration pulse sent on Home and Target entry.
type HapticsConfig struct {
	Frequency float64       `mapstructure:"frequency" yaml:"frequency"`
	Amplitude float64       `mapstructure:"amplitude" yaml:"amplitude"`
	Duration  time.Duration `mapstructure:"duration" yaml:"duration"`
}

// FeedbackConfig configures the end-of-reach target feedback.
type FeedbackConfig struct {
	QuickReach time.Duration `mapstructure:"quick_reach" yaml:"quick_reach"`
}

// Vec3 is a point in workspace coordinates, in metres.
type Vec3 struct {
	X float64 `mapstructure:"x" yaml:"x"`
	Y float64 `mapstructure:"y" yaml:"y"`
	Z float64 `mapstructure:"z" yaml:"z"`
}

// Vector converts to a geometry vector.
func (v Vec3) Vector() geometry.Vector3D {
	return geometry.Vector3D{X: v.X, Y: v.Y, Z: v.Z}
}

// WorkspaceConfig places the colliders. All lengths are in metres.
type WorkspaceConfig struct {
	Center         Vec3    `mapstructure:"center" yaml:"center"`
	HomeRadius     float64 `mapstructure:"home_radius" yaml:"home_radius"`
	HomeAreaRadius float64 `mapstructure:"home_area_radius" yaml:"home_area_radius"`
	TargetRadius   float64 `mapstructure:"target_radius" yaml:"target_radius"`
	TargetDistance float64 `mapstructure:"target_distance" yaml:"target_distance"`
	CursorRadius   float64 `mapstructure:"cursor_radius" yaml:"cursor_radius"`
}

// RunnerConfig configures the host frame loop.
type RunnerConfig struct {
	FrameRate   float64       `mapstructure:"frame_rate" yaml:"frame_rate"`
	Realtime    bool          `mapstructure:"realtime" yaml:"realtime"`
	MaxDuration time.Duration `mapstructure:"max_duration" yaml:"max_duration"`
}

// NewDefaultConfig creates a new configuration struct populated with default values.
func NewDefaultConfig() *Config {
	v := viper.New()
	SetDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		// This should not happen with defaults, but good to be safe.
		panic(fmt.Sprintf("failed to unmarshal default config: %v", err))
	}
	return &cfg
}

// SetDefaults initializes default values for various configuration parameters.
func SetDefaults(v *viper.Viper) {
	// -- Logger --
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.add_source", false)
	v.SetDefault("logger.service_name", "reachctl")
	v.SetDefault("logger.log_file", "")
	v.SetDefault("logger.max_size", 100)
	v.SetDefault("logger.max_backups", 5)
	v.SetDefault("logger.max_age", 30)
	v.SetDefault("logger.compress", true)

	// -- Pause detection --
	v.SetDefault("pause.period", "50ms")
	v.SetDefault("pause.window", 8)
	v.SetDefault("pause.threshold", 0.001)
	v.SetDefault("pause.sentinel", 1000.0)

	// -- Haptics --
	v.SetDefault("haptics.frequency", 1.0)
	v.SetDefault("haptics.amplitude", 0.6)
	v.SetDefault("haptics.duration", "200ms")

	// -- Feedback --
	v.SetDefault("feedback.quick_reach", "1s")

	// -- Workspace --
	v.SetDefault("workspace.center.x", 0.0)
	v.SetDefault("workspace.center.y", 1.0)
	v.SetDefault("workspace.center.z", 0.3)
	v.SetDefault("workspace.home_radius", 0.02)
	v.SetDefault("workspace.home_area_radius", 0.06)
	v.SetDefault("workspace.target_radius", 0.025)
	v.SetDefault("workspace.target_distance", 0.15)
	v.SetDefault("workspace.cursor_radius", 0.0075)

	// -- Runner --
	v.SetDefault("runner.frame_rate", 90.0)
	v.SetDefault("runner.realtime", false)
	v.SetDefault("runner.max_duration", "2m")

	setParticipantDefaults(v)

	// -- Trials --
	v.SetDefault("trials", []map[string]interface{}{
		{"type": "aligned", "cursor_rotation": 0.0, "target_angle": 0.0},
		{"type": "aligned", "cursor_rotation": 0.0, "target_angle": 45.0},
		{"type": "aligned", "cursor_rotation": 30.0, "target_angle": -45.0},
		{"type": "clamped", "cursor_rotation": 30.0, "target_angle": 30.0},
		{"type": "nocursor", "cursor_rotation": 0.0, "target_angle": 0.0},
	})
}

// NewConfigFromViper creates a new configuration instance from a viper object.
func NewConfigFromViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// Validate checks the configuration for required fields and sane values.
func (c *Config) Validate() error {
	if err := c.Pause.Validate(); err != nil {
		return err
	}
	if c.Haptics.Duration < 0 {
		return fmt.Errorf("%w: haptics.duration must not be negative", ErrInvalid)
	}
	if c.Feedback.QuickReach <= 0 {
		return fmt.Errorf("%w: feedback.quick_reach must be a positive duration", ErrInvalid)
	}
	if err := c.Workspace.Validate(); err != nil {
		return err
	}
	if err := c.Runner.Validate(); err != nil {
		return err
	}
	if err := c.Participant.Validate(); err != nil {
		return err
	}
	if len(c.Trials) == 0 {
		return fmt.Errorf("%w: at least one trial is required", ErrInvalid)
	}
	return nil
}

// Validate checks the pause detector settings.
func (p *PauseConfig) Validate() error {
	if p.Period <= 0 {
		return fmt.Errorf("%w: pause.period must be a positive duration", ErrInvalid)
	}
	if p.Window <= 0 {
		return fmt.Errorf("%w: pause.window must be a positive integer", ErrInvalid)
	}
	if p.Threshold < 0 {
		return fmt.Errorf("%w: pause.threshold must not be negative", ErrInvalid)
	}
	return nil
}

// Validate checks that the zones nest.
func (w *WorkspaceConfig) Validate() error {
	if w.HomeRadius <= 0 || w.HomeAreaRadius <= 0 || w.TargetRadius <= 0 {
		return fmt.Errorf("%w: workspace radii must be positive", ErrInvalid)
	}
	if w.HomeRadius > w.HomeAreaRadius {
		return fmt.Errorf("%w: workspace.home_radius must not exceed workspace.home_area_radius", ErrInvalid)
	}
	if w.TargetDistance <= w.HomeAreaRadius+w.CursorRadius {
		return fmt.Errorf("%w: workspace.target_distance must place the target outside the home area", ErrInvalid)
	}
	return nil
}

// Validate checks the frame loop settings.
func (r *RunnerConfig) Validate() error {
	if r.FrameRate <= 0 {
		return fmt.Errorf("%w: runner.frame_rate must be positive", ErrInvalid)
	}
	if r.MaxDuration <= 0 {
		return fmt.Errorf("%w: runner.max_duration must be a positive duration", ErrInvalid)
	}
	return nil
}

// FrameInterval is the time between frames.
func (r RunnerConfig) FrameInterval() time.Duration {
	return time.Duration(float64(time.Second) / r.FrameRate)
}
