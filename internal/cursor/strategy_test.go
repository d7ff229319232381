package cursor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/xkilldash9x/reachctl/internal/geometry"
)

func TestSelect(t *testing.T) {
	tests := []struct {
		name        string
		cfg         TrialConfig
		wantKind    Kind
		wantYaw     float64
		wantVisible bool
	}{
		{"clamped", TrialConfig{Type: "clamped", CursorRotation: 30}, KindClamped, 30, true},
		{"aligned", TrialConfig{Type: "aligned", CursorRotation: 30}, KindAligned, 30, true},
		{"nocursor", TrialConfig{Type: "nocursor", CursorRotation: -45}, KindAligned, -45, false},
		{"unknown", TrialConfig{Type: "xyz"}, KindAligned, 0, true},
		{"empty", TrialConfig{}, KindAligned, 0, true},
		{"case sensitive", TrialConfig{Type: "Clamped", CursorRotation: 10}, KindAligned, 10, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			sel := Select(tc.cfg)
			assert.Equal(t, tc.wantKind, sel.Kind())
			assert.Equal(t, tc.wantYaw, sel.YawDegrees)
			assert.Equal(t, tc.wantVisible, sel.Visible)
		})
	}
}

func TestDefault(t *testing.T) {
	sel := Default()
	assert.Equal(t, KindAligned, sel.Kind())
	assert.Zero(t, sel.YawDegrees)
	assert.True(t, sel.Visible)
}

func TestAlignedMap(t *testing.T) {
	center := geometry.Vector3D{X: 1, Y: 1, Z: 1}
	got := Aligned{}.Map(geometry.Vector3D{X: 1.2, Y: 0.9, Z: 1.3}, center)
	assert.InDelta(t, 0.2, got.X, 1e-9)
	assert.InDelta(t, -0.1, got.Y, 1e-9)
	assert.InDelta(t, 0.3, got.Z, 1e-9)
}

func TestClampedMap(t *testing.T) {
	center := geometry.Vector3D{}

	t.Run("sideways motion lands on forward axis", func(t *testing.T) {
		got := Clamped{}.Map(geometry.Vector3D{X: 0.3, Y: 0.05, Z: 0.4}, center)
		assert.InDelta(t, 0.0, got.X, 1e-9)
		assert.InDelta(t, 0.05, got.Y, 1e-9)
		assert.InDelta(t, 0.5, got.Z, 1e-9)
	})

	t.Run("distance from home is preserved", func(t *testing.T) {
		raw := geometry.Vector3D{X: -0.12, Z: -0.05}
		got := Clamped{}.Map(raw, center)
		assert.InDelta(t, raw.Horizontal().Mag(), got.Mag(), 1e-9)
	})
}

func TestAimInvertsMapping(t *testing.T) {
	center := geometry.Vector3D{X: 0.1, Y: 1, Z: -0.2}
	goal := center.Add(geometry.Forward(30).Mul(0.2))

	for _, cfg := range []TrialConfig{
		{Type: "aligned", CursorRotation: 30},
		{Type: "aligned", CursorRotation: -45},
		{Type: "nocursor", CursorRotation: 10},
		{Type: "clamped", CursorRotation: 30},
	} {
		sel := Select(cfg)
		hand := Aim(sel, goal, center)
		local := sel.Strategy.Map(hand, center)
		cursor := geometry.Frame{Origin: center, YawDegrees: sel.YawDegrees}.ToWorld(local)
		assert.InDelta(t, goal.X, cursor.X, 1e-9, cfg.Type)
		assert.InDelta(t, goal.Y, cursor.Y, 1e-9, cfg.Type)
		assert.InDelta(t, goal.Z, cursor.Z, 1e-9, cfg.Type)
	}
}

func TestAimClampedOffAxisKeepsDistance(t *testing.T) {
	sel := Select(TrialConfig{Type: "clamped", CursorRotation: 0})
	goal := geometry.Vector3D{X: 0.3, Z: 0.4}
	hand := Aim(sel, goal, geometry.Zero)
	assert.InDelta(t, 0.5, hand.Mag(), 1e-9)
}
