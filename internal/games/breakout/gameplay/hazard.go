package gameplay

import (
	"math"

	"github.com/vovakirdan/brickfall/internal/games/breakout/physics"
)

// Launch angle bounds in degrees, applied to half the configured variance.
const (
	minHazardAngle = 5.0
	maxHazardAngle = 20.0
	minHazardSpeed = 0.1
)

// HazardSpawnQueue delays hazard spawns and keeps spawned hazards moving
// mostly down-field.
type HazardSpawnQueue struct {
	s *Session
}

// NewHazardSpawnQueue creates a queue bound to a session.
func NewHazardSpawnQueue(s *Session) *HazardSpawnQueue {
	return &HazardSpawnQueue{s: s}
}

// Intake queues this tick's hazard requests.
func (q *HazardSpawnQueue) Intake() {
	for _, r := range q.s.Bus.HazardRequest.Items() {
		q.s.Hazards.Pending = append(q.s.Hazards.Pending, PendingHazardSpawn{
			Remaining:     r.Delay,
			Pos:           r.Pos,
			AngleVariance: r.AngleVariance,
			MinSpeed:      r.MinSpeed,
		})
	}
}

// Advance counts down every pending request and spawns the expired ones in
// request order.
func (q *HazardSpawnQueue) Advance(dt float64) {
	pending := q.s.Hazards.Pending
	kept := pending[:0]
	for _, p := range pending {
		p.Remaining -= dt
		if p.Remaining > 0 {
			kept = append(kept, p)
			continue
		}
		q.spawn(p)
	}
	q.s.Hazards.Pending = kept
}

// LaunchVelocity returns the initial hazard velocity for the n-th spawn. The
// lateral side alternates between spawns.
func LaunchVelocity(n int, angleVariance, minSpeed float64) physics.Vec3 {
	half := math.Min(math.Max(angleVariance/2, minHazardAngle), maxHazardAngle)
	if n%2 == 1 {
		half = -half
	}
	rad := half * math.Pi / 180
	speed := math.Max(minSpeed, minHazardSpeed)
	return physics.V(speed*math.Cos(rad), 0, speed*math.Sin(rad))
}

func (q *HazardSpawnQueue) spawn(p PendingHazardSpawn) {
	vel := LaunchVelocity(q.s.Hazards.Spawned, p.AngleVariance, p.MinSpeed)
	q.s.Hazards.Spawned++
	pos := p.Pos
	pos.Y = 0
	q.s.World.Spawn(physics.Body{
		Kind:   physics.KindHazard,
		Shape:  physics.ShapeCircle,
		Pos:    pos,
		Vel:    vel,
		Radius: HazardRadius,
	})
}

// Correct keeps |vx| at or above the axial threshold and caps |vz| at half
// of |vx|.
func (q *HazardSpawnQueue) Correct() {
	minAxial := q.s.Settings.Hazard.MinAxialSpeed
	for _, h := range q.s.World.Each(physics.KindHazard) {
		h.Vel = correctHazard(h.Vel, minAxial)
	}
}

func correctHazard(v physics.Vec3, minAxial float64) physics.Vec3 {
	v.Y = 0
	if math.Abs(v.X) < minAxial {
		v.X = math.Copysign(minAxial, v.X)
	}
	if limit := math.Abs(v.X) / 2; math.Abs(v.Z) > limit {
		v.Z = math.Copysign(limit, v.Z)
	}
	return v
}

// HandleContacts resolves hazard contacts: the goal removes the hazard
// silently, walls and bricks make a bounce cue, the paddle costs a life.
func (q *HazardSpawnQueue) HandleContacts(contacts []physics.Contact) {
	w := q.s.World
	for _, c := range contacts {
		if !c.Involves(physics.KindHazard) {
			continue
		}
		if hz, _, ok := c.Match(physics.KindHazard, physics.KindGoal); ok {
			w.Despawn(hz)
			continue
		}
		if hz, _, ok := c.Match(physics.KindHazard, physics.KindPaddle); ok {
			q.s.Bus.HazardPenalty.Emit(HazardPenalty{Hazard: hz})
			continue
		}
		_, wall, okWall := c.Match(physics.KindHazard, physics.KindWall)
		_, brick, okBrick := c.Match(physics.KindHazard, physics.KindBrick)
		if !okWall && !okBrick {
			continue
		}
		other := wall
		if okBrick {
			other = brick
		}
		if b, ok := w.Get(other); ok {
			q.s.Bus.Bounce.Emit(Bounce{Pos: b.Pos})
		}
	}
}

// Clear drops every pending request and resets the alternation.
func (q *HazardSpawnQueue) Clear() {
	q.s.Hazards = HazardQueueState{}
}

// PenaltyObserver takes a life for each hazard penalty.
type PenaltyObserver struct {
	s *Session
}

// NewPenaltyObserver creates an observer bound to a session.
func NewPenaltyObserver(s *Session) *PenaltyObserver {
	return &PenaltyObserver{s: s}
}

// Observe consumes this tick's penalty signals.
func (o *PenaltyObserver) Observe() {
	for range o.s.Bus.HazardPenalty.Items() {
		if o.s.GameOver {
			return
		}
		o.s.Lives.set(o.s.Lives.Remaining - 1)
		o.s.Logger.Debug("hazard penalty", "lives", o.s.Lives.Remaining)
	}
}

// LivesWatcher clears every ball and hazard once per observed drop in lives.
type LivesWatcher struct {
	s    *Session
	prev int
}

// NewLivesWatcher creates a watcher that remembers the current life count.
func NewLivesWatcher(s *Session) *LivesWatcher {
	return &LivesWatcher{s: s, prev: s.Lives.Remaining}
}

// Sync forgets any unobserved change; used after resets.
func (lw *LivesWatcher) Sync() {
	lw.prev = lw.s.Lives.Remaining
}

// Observe compares the life count with the remembered value.
func (lw *LivesWatcher) Observe() {
	cur := lw.s.Lives.Remaining
	if cur < lw.prev {
		balls := lw.s.World.DespawnKind(physics.KindBall)
		hazards := lw.s.World.DespawnKind(physics.KindHazard)
		lw.s.Bus.BallsCleared.Emit(BallsCleared{Balls: balls, Hazards: hazards})
	}
	lw.prev = cur
}
