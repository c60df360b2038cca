package gameplay

import (
	"github.com/vovakirdan/brickfall/internal/games/breakout/physics"
	"github.com/vovakirdan/brickfall/internal/games/breakout/tiles"
)

// BrickDestroyed is emitted once per destroyed brick. Code is captured before
// the entity is removed, so readers never need the entity itself.
type BrickDestroyed struct {
	ID       physics.EntityID
	Code     tiles.Code
	Pos      physics.Vec3
	Row, Col int
}

// LifeAwarded asks the lives owner to add lives.
type LifeAwarded struct {
	Amount int
}

// HazardRequested asks the hazard queue to spawn a hazard after Delay.
type HazardRequested struct {
	Pos           physics.Vec3
	Delay         float64
	AngleVariance float64 // degrees
	MinSpeed      float64
}

// BallLost reports a ball entering the goal zone.
type BallLost struct {
	Ball physics.EntityID
	Pos  physics.Vec3
}

// HazardPenalty reports a hazard hitting the paddle.
type HazardPenalty struct {
	Hazard physics.EntityID
}

// Milestone is emitted once per crossed score tier.
type Milestone struct {
	Tier  uint64
	Score uint64
}

// GameOver is emitted once when the last life is lost.
type GameOver struct {
	Score uint64
	Level int
}

// SessionFinished is emitted once when no next level exists.
type SessionFinished struct {
	Score uint64
	Level int
}

// Bounce is a sound cue with no gameplay effect.
type Bounce struct {
	Pos physics.Vec3
}

// PaddleResized reports a new paddle width factor.
type PaddleResized struct {
	Width float64
}

// BallsCleared reports that the lives watcher removed every ball and hazard.
type BallsCleared struct {
	Balls, Hazards int
}

// LevelStarted reports that a level became current.
type LevelStarted struct {
	Number int
}

// Stream is a per-tick signal queue. Every consumer reads the full tick's
// items; the bus clears all streams at the start of the next tick.
type Stream[T any] struct {
	items []T
}

// Emit appends a signal.
func (s *Stream[T]) Emit(v T) {
	s.items = append(s.items, v)
}

// Items returns this tick's signals. Callers must not modify the slice.
func (s *Stream[T]) Items() []T {
	return s.items
}

// Len returns the number of signals this tick.
func (s *Stream[T]) Len() int {
	return len(s.items)
}

func (s *Stream[T]) reset() {
	s.items = s.items[:0]
}

// Bus carries every signal stream of a tick.
type Bus struct {
	Destroyed     Stream[BrickDestroyed]
	LifeAwarded   Stream[LifeAwarded]
	HazardRequest Stream[HazardRequested]
	BallLost      Stream[BallLost]
	HazardPenalty Stream[HazardPenalty]
	Milestone     Stream[Milestone]
	GameOver      Stream[GameOver]
	Finished      Stream[SessionFinished]
	Bounce        Stream[Bounce]
	PaddleResized Stream[PaddleResized]
	BallsCleared  Stream[BallsCleared]
	LevelStarted  Stream[LevelStarted]
}

// Reset drops every signal.
func (b *Bus) Reset() {
	b.Destroyed.reset()
	b.LifeAwarded.reset()
	b.HazardRequest.reset()
	b.BallLost.reset()
	b.HazardPenalty.reset()
	b.Milestone.reset()
	b.GameOver.reset()
	b.Finished.reset()
	b.Bounce.reset()
	b.PaddleResized.reset()
	b.BallsCleared.reset()
	b.LevelStarted.reset()
}
