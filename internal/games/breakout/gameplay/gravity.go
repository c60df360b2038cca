package gameplay

import (
	"github.com/vovakirdan/brickfall/internal/games/breakout/levels"
	"github.com/vovakirdan/brickfall/internal/games/breakout/physics"
	"github.com/vovakirdan/brickfall/internal/games/breakout/tiles"
)

// Random gravity bounds for the GravityRandom brick.
const (
	RandomGravityMinX = -2.0
	RandomGravityMaxX = 15.0
	RandomGravityMinZ = -5.0
	RandomGravityMaxZ = 5.0
)

// FloatRoller draws uniform floats in [lo, hi).
type FloatRoller interface {
	FloatRange(lo, hi float64) float64
}

// GravityTarget returns the gravity a gravity brick sets. ok is false for
// codes outside the gravity group.
func GravityTarget(code tiles.Code, roll FloatRoller) (physics.Vec3, bool) {
	switch code {
	case tiles.GravityZero:
		return physics.Zero, true
	case tiles.GravityLow:
		return physics.V(2, 0, 0), true
	case tiles.GravityMedium:
		return physics.V(10, 0, 0), true
	case tiles.GravityHigh:
		return physics.V(20, 0, 0), true
	case tiles.GravityRandom:
		x := roll.FloatRange(RandomGravityMinX, RandomGravityMaxX)
		z := roll.FloatRange(RandomGravityMinZ, RandomGravityMaxZ)
		return physics.V(x, 0, z), true
	default:
		return physics.Zero, false
	}
}

// GravityPropagator owns the gravity configuration and mirrors it into the
// physics engine.
type GravityPropagator struct {
	s *Session
}

// NewGravityPropagator creates a propagator bound to a session.
func NewGravityPropagator(s *Session) *GravityPropagator {
	return &GravityPropagator{s: s}
}

// Valid reports whether v may become the current gravity.
func (g *GravityPropagator) Valid(v physics.Vec3) bool {
	return v.Finite() && v.WithinAxis(g.s.Settings.GravityLimit)
}

// LoadLevel sets both current and default gravity from a level.
func (g *GravityPropagator) LoadLevel(def levels.Definition) {
	v := def.DefaultGravity()
	if !g.Valid(v) {
		g.s.Logger.Warn("level gravity rejected, using zero", "level", def.Number, "vector", v)
		v = physics.Zero
	}
	g.s.Gravity = GravityConfiguration{Current: v, LevelDefault: v}
}

// Override sets the current gravity without touching the level default.
func (g *GravityPropagator) Override(v physics.Vec3) bool {
	if !g.Valid(v) {
		g.s.Logger.Warn("gravity override rejected", "vector", v)
		return false
	}
	g.s.Gravity.Current = v
	return true
}

// Apply consumes this tick's destruction and ball-lost signals. The last
// valid gravity brick of the tick wins; a lost ball then restores the level
// default.
func (g *GravityPropagator) Apply() {
	var next physics.Vec3
	have := false
	for _, d := range g.s.Bus.Destroyed.Items() {
		target, ok := GravityTarget(d.Code, g.s.RNG)
		if !ok {
			continue
		}
		if !g.Valid(target) {
			g.s.Logger.Warn("gravity rejected", "code", int(d.Code), "vector", target)
			continue
		}
		next, have = target, true
	}
	if have {
		g.s.Gravity.Current = next
	}
	if g.s.Bus.BallLost.Len() > 0 {
		g.ResetToDefault()
	}
}

// ResetToDefault restores the level default.
func (g *GravityPropagator) ResetToDefault() {
	g.s.Gravity.Current = g.s.Gravity.LevelDefault
}

// Mirror writes the current gravity into the engine config when it differs.
// Without an engine config the write is skipped and retried next tick.
func (g *GravityPropagator) Mirror() {
	cfg := g.s.World.Config()
	if cfg == nil {
		g.s.Logger.Warn("physics config missing, gravity write skipped", "tick", g.s.Ticks)
		return
	}
	if cfg.Gravity != g.s.Gravity.Current {
		cfg.Gravity = g.s.Gravity.Current
	}
}
