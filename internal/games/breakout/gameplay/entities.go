package gameplay

import (
	"math"

	"github.com/vovakirdan/brickfall/internal/games/breakout/levels"
	"github.com/vovakirdan/brickfall/internal/games/breakout/physics"
	"github.com/vovakirdan/brickfall/internal/games/breakout/tiles"
)

// Play field geometry. X runs from the top wall (0) to the goal (FieldLength),
// Z runs across the field.
const (
	FieldLength = float64(levels.Size)
	FieldWidth  = float64(levels.Size)

	BallRadius   = 0.3
	HazardRadius = 0.35
	PaddleHalfX  = 0.25
	PaddleHalfZ  = 1.5
	BrickHalf    = 0.5

	launchAngle = math.Pi / 6
)

func (s *Session) spawnBoundaries() {
	w := s.World
	w.Spawn(physics.Body{Kind: physics.KindWall, Shape: physics.ShapeBox, Static: true,
		Pos: physics.V(FieldLength/2, 0, -0.5), HalfX: FieldLength/2 + 1, HalfZ: 0.5})
	w.Spawn(physics.Body{Kind: physics.KindWall, Shape: physics.ShapeBox, Static: true,
		Pos: physics.V(FieldLength/2, 0, FieldWidth+0.5), HalfX: FieldLength/2 + 1, HalfZ: 0.5})
	w.Spawn(physics.Body{Kind: physics.KindWall, Shape: physics.ShapeBox, Static: true,
		Pos: physics.V(-0.5, 0, FieldWidth/2), HalfX: 0.5, HalfZ: FieldWidth/2 + 1})
	w.Spawn(physics.Body{Kind: physics.KindGoal, Shape: physics.ShapeBox, Static: true, Sensor: true,
		Pos: physics.V(FieldLength+0.5, 0, FieldWidth/2), HalfX: 0.5, HalfZ: FieldWidth/2 + 1})
}

func (s *Session) spawnBricks(def levels.Definition) {
	for _, c := range def.Bricks() {
		s.World.Spawn(physics.Body{
			Kind:   physics.KindBrick,
			Shape:  physics.ShapeBox,
			Static: true,
			Pos:    levels.CellCenter(c.Row, c.Col),
			HalfX:  BrickHalf,
			HalfZ:  BrickHalf,
			Tag:    int(c.Code),
			Row:    c.Row,
			Col:    c.Col,
		})
	}
}

func (s *Session) spawnPaddle(pos physics.Vec3, scale float64, locked bool) physics.EntityID {
	return s.World.Spawn(physics.Body{
		Kind:   physics.KindPaddle,
		Shape:  physics.ShapeBox,
		Static: true,
		Pos:    pos,
		HalfX:  PaddleHalfX,
		HalfZ:  PaddleHalfZ * s.PaddleWidth,
		Scale:  scale,
		Locked: locked,
	})
}

func (s *Session) spawnBall(pos physics.Vec3, frozen bool) physics.EntityID {
	return s.World.Spawn(physics.Body{
		Kind:       physics.KindBall,
		Shape:      physics.ShapeCircle,
		Pos:        pos,
		Radius:     BallRadius,
		Frozen:     frozen,
		UseGravity: true,
		MaxSpeed:   s.Settings.BallMaxSpeed,
	})
}

// launchBall unfreezes a ball and sends it up-field at a fixed angle whose
// side is drawn from the session RNG.
func (s *Session) launchBall(id physics.EntityID) {
	b, ok := s.World.Get(id)
	if !ok {
		return
	}
	side := 1.0
	if s.RNG.Intn(2) == 0 {
		side = -1
	}
	b.Frozen = false
	b.Vel = physics.V(-s.Settings.BallSpeed*math.Cos(launchAngle), 0, side*s.Settings.BallSpeed*math.Sin(launchAngle))
}

// spawnPlayable places a ready paddle and a launched ball at the spawn points.
func (s *Session) spawnPlayable() {
	s.spawnPaddle(s.Spawns.Paddle, 1, false)
	s.launchBall(s.spawnBall(s.Spawns.Ball, false))
}

func (s *Session) clearLevelEntities() {
	for _, k := range []physics.Kind{physics.KindBall, physics.KindPaddle, physics.KindBrick, physics.KindHazard} {
		s.World.DespawnKind(k)
	}
}

// CompletionRemaining counts live bricks that must be destroyed to clear the
// level. Bricks already marked for removal do not count.
func (s *Session) CompletionRemaining() int {
	n := 0
	for _, b := range s.World.Each(physics.KindBrick) {
		if s.World.Marked(b.ID) {
			continue
		}
		if tiles.Classify(tiles.Code(b.Tag)).CountsTowardCompletion() {
			n++
		}
	}
	return n
}

// SteerPaddles moves every unlocked paddle across the field. dir is -1, 0 or 1.
func (s *Session) SteerPaddles(dir, dt float64) {
	if dir == 0 {
		return
	}
	for _, p := range s.World.Each(physics.KindPaddle) {
		if p.Locked {
			continue
		}
		_, hz := p.Extents()
		z := p.Pos.Z + dir*s.Settings.PaddleSpeed*dt
		p.Pos.Z = math.Min(math.Max(z, hz), FieldWidth-hz)
	}
}

// growthScale eases the paddle from the initial scale to full size.
func growthScale(initial, frac float64) float64 {
	frac = clamp01(frac)
	eased := 1 - math.Pow(1-frac, 3)
	return initial + (1-initial)*eased
}

func clamp01(v float64) float64 {
	return math.Min(math.Max(v, 0), 1)
}
