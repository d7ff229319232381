package cursor

// TrialConfig is the per-trial input read once at setup.
type TrialConfig struct {
	Type           string  `mapstructure:"type" yaml:"type"`
	CursorRotation float64 `mapstructure:"cursor_rotation" yaml:"cursor_rotation"`
	// TargetAngle places the target around home, in degrees of yaw.
	// It is consumed by the workspace layout only.
	TargetAngle float64 `mapstructure:"target_angle" yaml:"target_angle"`
}

// Selection is the outcome of trial setup for the cursor.
type Selection struct {
	Strategy   Strategy
	YawDegrees float64
	Visible    bool
}

// Kind reports the selected strategy kind.
func (s Selection) Kind() Kind { return s.Strategy.Kind() }

// Default is the selection in effect before any trial is set up.
func Default() Selection {
	return Selection{Strategy: Aligned{}, Visible: true}
}

// Select applies the trial selection rules. Only the exact type "clamped"
// selects the Clamped strategy; anything else, including unknown or empty
// types, falls back to Aligned. The yaw is applied whatever the strategy.
func Select(cfg TrialConfig) Selection {
	sel := Selection{
		Strategy:   Aligned{},
		YawDegrees: cfg.CursorRotation,
		Visible:    cfg.Type != TypeNoCursor,
	}
	if cfg.Type == TypeClamped {
		sel.Strategy = Clamped{}
	}
	return sel
}
