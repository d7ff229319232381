// internal/handsim/participant.go
package handsim

import (
	"math/rand"
	"time"

	"github.com/aquilax/go-perlin"
	"go.uber.org/zap"

	"github.com/xkilldash9x/reachctl/internal/geometry"
)

// Phase is where the participant is in the reach cycle.
type Phase int

const (
	PhaseHome Phase = iota
	PhaseReacting
	PhaseOut
	PhaseAtTarget
	PhaseViewing
	PhaseBack
)

func (p Phase) String() string {
	switch p {
	case PhaseHome:
		return "home"
	case PhaseReacting:
		return "reacting"
	case PhaseOut:
		return "out"
	case PhaseAtTarget:
		return "at_target"
	case PhaseViewing:
		return "viewing"
	case PhaseBack:
		return "back"
	}
	return "unknown"
}

// Config is the participant's persona.
type Config struct {
	// Seed for movement variability and noise. Zero seeds from the clock.
	Seed int64
	// Fitts's law intercept and slope, in milliseconds.
	FittsA float64
	FittsB float64
	// Settle is the reaction delay after the attempt starts.
	Settle time.Duration
	// Hold is how long the participant looks at the feedback before
	// returning home.
	Hold time.Duration
	// Tremor is the standard deviation of per-frame Gaussian jitter, in metres.
	Tremor float64
	// DriftAmplitude scales the low-frequency Perlin drift, in metres.
	DriftAmplitude float64
	// TargetWidth is the effective target width for Fitts's law, in metres.
	TargetWidth float64
}

// AimFunc converts a cursor goal into the hand position that reaches it.
type AimFunc func(goal geometry.Vector3D) geometry.Vector3D

const (
	driftFrequency = 0.8
	maxCurvature   = 0.08
)

// Participant is a simulated hand. It sits at home until an attempt starts,
// reaches for the current goal, holds still until the attempt ends, then
// returns home. It implements trial.Orchestrator so it can listen to the
// same notifications as the session.
type Participant struct {
	cfg    Config
	logger *zap.Logger
	rng    *rand.Rand
	noise  [3]*perlin.Perlin

	home geometry.Vector3D
	goal geometry.Vector3D
	aim  AimFunc

	phase     Phase
	pos       geometry.Vector3D
	move      *movement
	departAt  time.Duration
	now       time.Duration
	startSeen bool
	endSeen   bool
}

// New places a participant's hand at home.
func New(cfg Config, home geometry.Vector3D, logger *zap.Logger) *Participant {
	if logger == nil {
		logger = zap.NewNop()
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	// Standard Perlin parameters
	alpha, beta, n := 2.0, 2.0, int32(3)

	p := &Participant{
		cfg:    cfg,
		logger: logger.Named("handsim"),
		rng:    rand.New(rand.NewSource(seed)),
		home:   home,
		goal:   home,
		aim:    func(g geometry.Vector3D) geometry.Vector3D { return g },
		pos:    home,
	}
	for i := range p.noise {
		p.noise[i] = perlin.NewPerlin(alpha, beta, n, seed+int64(i))
	}
	return p
}

// SetGoal sets where the next reach goes. aim may be nil for a direct
// hand-to-cursor correspondence.
func (p *Participant) SetGoal(goal geometry.Vector3D, aim AimFunc) {
	p.goal = goal
	if aim != nil {
		p.aim = aim
	} else {
		p.aim = func(g geometry.Vector3D) geometry.Vector3D { return g }
	}
}

// AttemptStarted tells the participant to reach.
func (p *Participant) AttemptStarted() { p.startSeen = true }

// AttemptEnded tells the participant the reach is over.
func (p *Participant) AttemptEnded() { p.endSeen = true }

// Phase is the current phase.
func (p *Participant) Phase() Phase { return p.phase }

// Position advances the participant to now and returns the hand position,
// including drift and tremor.
func (p *Participant) Position(now time.Duration) geometry.Vector3D {
	p.now = now
	p.step(now)
	if p.move != nil {
		p.pos = p.move.at(now)
		if p.move.done(now) {
			p.move = nil
		}
	}
	return p.pos.Add(p.drift(now)).Add(p.tremor())
}

func (p *Participant) step(now time.Duration) {
	switch p.phase {
	case PhaseHome:
		if p.startSeen {
			p.startSeen = false
			p.endSeen = false
			p.departAt = now + p.cfg.Settle
			p.setPhase(PhaseReacting)
		}
	case PhaseReacting:
		if now >= p.departAt {
			p.startMove(p.aim(p.goal), now)
			p.setPhase(PhaseOut)
		}
	case PhaseOut:
		if p.move == nil {
			p.setPhase(PhaseAtTarget)
		}
	case PhaseAtTarget:
		if p.endSeen {
			p.endSeen = false
			p.departAt = now + p.cfg.Hold
			p.setPhase(PhaseViewing)
		}
	case PhaseViewing:
		if now >= p.departAt {
			p.startMove(p.home, now)
			p.setPhase(PhaseBack)
		}
	case PhaseBack:
		if p.move == nil {
			p.setPhase(PhaseHome)
		}
	}
}

func (p *Participant) startMove(to geometry.Vector3D, now time.Duration) {
	dist := p.pos.Dist(to)
	d := fittsDuration(p.cfg.FittsA, p.cfg.FittsB, dist, p.cfg.TargetWidth, p.rng)
	curvature := (p.rng.Float64()*2 - 1) * maxCurvature
	p.move = planMovement(p.pos, to, now, d, curvature)
	p.logger.Debug("Movement planned",
		zap.Float64("distance", dist),
		zap.Duration("duration", d))
}

func (p *Participant) setPhase(next Phase) {
	p.logger.Debug("Phase changed",
		zap.Stringer("from", p.phase),
		zap.Stringer("to", next),
		zap.Duration("at", p.now))
	p.phase = next
}

func (p *Participant) drift(now time.Duration) geometry.Vector3D {
	if p.cfg.DriftAmplitude == 0 {
		return geometry.Zero
	}
	t := now.Seconds() * driftFrequency
	a := p.cfg.DriftAmplitude
	return geometry.Vector3D{
		X: p.noise[0].Noise1D(t) * a,
		Y: p.noise[1].Noise1D(t) * a,
		Z: p.noise[2].Noise1D(t) * a,
	}
}

func (p *Participant) tremor() geometry.Vector3D {
	if p.cfg.Tremor == 0 {
		return geometry.Zero
	}
	s := p.cfg.Tremor
	return geometry.Vector3D{
		X: p.rng.NormFloat64() * s,
		Y: p.rng.NormFloat64() * s,
		Z: p.rng.NormFloat64() * s,
	}
}
