package gameplay

import (
	"github.com/vovakirdan/brickfall/internal/games/breakout/physics"
	"github.com/vovakirdan/brickfall/internal/games/breakout/tiles"
)

// CollisionDispatcher turns ball-brick, paddle-brick and ball-goal contacts
// into entity mutations and outcome signals.
type CollisionDispatcher struct {
	s         *Session
	processed map[physics.EntityID]struct{}
}

// NewCollisionDispatcher creates a dispatcher bound to a session.
func NewCollisionDispatcher(s *Session) *CollisionDispatcher {
	return &CollisionDispatcher{s: s, processed: make(map[physics.EntityID]struct{})}
}

// Dispatch handles one tick of contact-started notifications. A brick gets at
// most one outcome per call even when several balls touch it.
func (d *CollisionDispatcher) Dispatch(contacts []physics.Contact) {
	clear(d.processed)

	for _, c := range contacts {
		if ball, brick, ok := c.Match(physics.KindBall, physics.KindBrick); ok {
			d.ballBrick(ball, brick)
			continue
		}
		if _, brick, ok := c.Match(physics.KindPaddle, physics.KindBrick); ok {
			d.paddleBrick(brick)
			continue
		}
		if ball, _, ok := c.Match(physics.KindBall, physics.KindGoal); ok {
			d.ballGoal(ball)
		}
	}
}

func (d *CollisionDispatcher) claim(id physics.EntityID) bool {
	if _, done := d.processed[id]; done {
		return false
	}
	d.processed[id] = struct{}{}
	return true
}

func (d *CollisionDispatcher) ballBrick(_, brickID physics.EntityID) {
	w := d.s.World
	brick, ok := w.Get(brickID)
	if !ok || w.Marked(brickID) || !d.claim(brickID) {
		return
	}

	code := tiles.Code(brick.Tag)
	switch b := tiles.Classify(code); b.Kind {
	case tiles.KindMultiHit:
		if next, ok := tiles.StepDown(code); ok {
			brick.Tag = int(next)
		}
	case tiles.KindPaddleOnly, tiles.KindIndestructible:
		// bounce only
	case tiles.KindExtraLife:
		d.s.Bus.LifeAwarded.Emit(LifeAwarded{Amount: 1})
		w.MarkForRemoval(brickID)
	case tiles.KindHazardTrigger:
		h := d.s.Settings.Hazard
		d.s.Bus.HazardRequest.Emit(HazardRequested{
			Pos:           brick.Pos,
			Delay:         h.SpawnDelay,
			AngleVariance: h.AngleVariance,
			MinSpeed:      h.MinSpeed,
		})
		ev := destroyedFrom(*brick)
		w.Despawn(brickID)
		d.s.Bus.Destroyed.Emit(ev)
	case tiles.KindUnknown:
		d.s.Logger.Debug("unrecognized brick code, destroying", "code", int(code))
		w.MarkForRemoval(brickID)
	default:
		w.MarkForRemoval(brickID)
	}
}

func (d *CollisionDispatcher) paddleBrick(brickID physics.EntityID) {
	w := d.s.World
	brick, ok := w.Get(brickID)
	if !ok || w.Marked(brickID) {
		return
	}
	if tiles.Classify(tiles.Code(brick.Tag)).Kind != tiles.KindPaddleOnly {
		return
	}
	if d.claim(brickID) {
		w.MarkForRemoval(brickID)
	}
}

func (d *CollisionDispatcher) ballGoal(ballID physics.EntityID) {
	if !d.claim(ballID) {
		return
	}
	ball, ok := d.s.World.Get(ballID)
	if !ok {
		return
	}
	d.s.Bus.BallLost.Emit(BallLost{Ball: ballID, Pos: ball.Pos})
}

// Flush removes every brick marked this tick and emits its destruction
// signal. It runs after all same-tick readers of the marked bricks.
func (d *CollisionDispatcher) Flush() {
	for _, b := range d.s.World.FlushRemovals() {
		if b.Kind != physics.KindBrick {
			continue
		}
		d.s.Bus.Destroyed.Emit(destroyedFrom(b))
	}
}

func destroyedFrom(b physics.Body) BrickDestroyed {
	return BrickDestroyed{
		ID:   b.ID,
		Code: tiles.Code(b.Tag),
		Pos:  b.Pos,
		Row:  b.Row,
		Col:  b.Col,
	}
}
