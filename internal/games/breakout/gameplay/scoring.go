package gameplay

import (
	"math"

	"github.com/vovakirdan/brickfall/internal/games/breakout/tiles"
)

// ScoringEngine awards points for destroyed bricks and reports milestones.
type ScoringEngine struct {
	s *Session
}

// NewScoringEngine creates a scoring engine bound to a session.
func NewScoringEngine(s *Session) *ScoringEngine {
	return &ScoringEngine{s: s}
}

// Apply consumes this tick's destruction signals.
func (e *ScoringEngine) Apply() {
	for _, d := range e.s.Bus.Destroyed.Items() {
		e.Add(tiles.Points(d.Code, e.s.RNG))
	}
}

// Add accumulates points without wrapping and emits one milestone per newly
// crossed tier.
func (e *ScoringEngine) Add(points uint64) {
	score := &e.s.Score
	score.Current = saturatingAdd(score.Current, points)

	step := e.s.Settings.MilestoneStep
	if step == 0 {
		return
	}
	tier := score.Current / step
	for score.LastTier < tier {
		score.LastTier++
		e.s.Bus.Milestone.Emit(Milestone{Tier: score.LastTier, Score: score.Current})
	}
}

// Reset zeroes the score and tier.
func (e *ScoringEngine) Reset() {
	e.s.Score = ScoreState{}
}

func saturatingAdd(a, b uint64) uint64 {
	if a > math.MaxUint64-b {
		return math.MaxUint64
	}
	return a + b
}
