package breakout

import (
	"math"

	"github.com/vovakirdan/brickfall/internal/games/breakout/physics"
)

// BodyState is the flattened state of one body in a snapshot.
type BodyState struct {
	Kind   int
	Tag    int
	X, Z   float64
	VX, VZ float64
	Scale  float64
}

// Snapshot contains the observable game state for determinism checks.
// Uses primitive types only for stable serialization.
type Snapshot struct {
	Tick     uint64
	Score    uint64
	LastTier uint64
	Lives    int
	Level    int
	GameOver bool
	Finished bool
	Cheat    bool
	Paused   bool

	GravityX, GravityZ float64
	PaddleWidth        float64

	RespawnQueue   int
	RespawnPhase   int
	AdvancePhase   int
	PendingHazards int
	HazardSpawns   int

	// Bodies in world insertion order, walls and goal excluded.
	Bodies []BodyState

	RNGState uint64
}

// Snapshot returns the current game state as a Snapshot.
func (g *Game) Snapshot() Snapshot {
	s := g.session
	snap := Snapshot{
		Tick:           s.Ticks,
		Score:          s.Score.Current,
		LastTier:       s.Score.LastTier,
		Lives:          s.Lives.Remaining,
		Level:          s.Level.Number,
		GameOver:       s.GameOver,
		Finished:       s.Finished,
		Cheat:          s.Cheat,
		Paused:         g.paused,
		GravityX:       s.Gravity.Current.X,
		GravityZ:       s.Gravity.Current.Z,
		PaddleWidth:    s.PaddleWidth,
		RespawnQueue:   len(s.Respawn.Queue),
		AdvancePhase:   int(s.Advance.Phase),
		PendingHazards: len(s.Hazards.Pending),
		HazardSpawns:   s.Hazards.Spawned,
		RNGState:       s.RNG.State(),
	}
	if s.Respawn.Pending != nil {
		snap.RespawnPhase = int(s.Respawn.Pending.Phase)
	}

	for _, kind := range []physics.Kind{physics.KindBrick, physics.KindPaddle, physics.KindBall, physics.KindHazard} {
		for _, b := range g.world.Each(kind) {
			snap.Bodies = append(snap.Bodies, BodyState{
				Kind:  int(b.Kind),
				Tag:   b.Tag,
				X:     b.Pos.X,
				Z:     b.Pos.Z,
				VX:    b.Vel.X,
				VZ:    b.Vel.Z,
				Scale: b.EffectiveScale(),
			})
		}
	}
	return snap
}

// Hash returns a simple hash of the snapshot for determinism testing.
func (snap *Snapshot) Hash() uint64 {
	h := snap.Tick
	h = h*31 + snap.Score
	h = h*31 + snap.LastTier
	h = h*31 + uint64(snap.Lives) //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Level) //#nosec G115 -- hash computation
	h = h*31 + boolBit(snap.GameOver)
	h = h*31 + boolBit(snap.Finished)
	h = h*31 + boolBit(snap.Cheat)
	h = h*31 + boolBit(snap.Paused)
	h = h*31 + math.Float64bits(snap.GravityX)
	h = h*31 + math.Float64bits(snap.GravityZ)
	h = h*31 + math.Float64bits(snap.PaddleWidth)
	h = h*31 + uint64(snap.RespawnQueue)   //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.RespawnPhase)   //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.AdvancePhase)   //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.PendingHazards) //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.HazardSpawns)   //#nosec G115 -- hash computation

	for _, b := range snap.Bodies {
		h = h*31 + uint64(b.Kind) //#nosec G115 -- hash computation
		h = h*31 + uint64(b.Tag)  //#nosec G115 -- hash computation
		h = h*31 + math.Float64bits(b.X)
		h = h*31 + math.Float64bits(b.Z)
		h = h*31 + math.Float64bits(b.VX)
		h = h*31 + math.Float64bits(b.VZ)
		h = h*31 + math.Float64bits(b.Scale)
	}

	h = h*31 + snap.RNGState

	return h
}

func boolBit(b bool) uint64 {
	if b {
		return 1
	}
	return 0
}
