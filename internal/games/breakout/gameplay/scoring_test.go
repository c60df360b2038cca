package gameplay

import (
	"math"
	"testing"

	"github.com/vovakirdan/brickfall/internal/games/breakout/tiles"
)

func TestScoringSaturates(t *testing.T) {
	o := newTestOrchestrator(t, DefaultSettings(), testLevelFiles)
	s := o.Session
	s.Score.Current = math.MaxUint64 - 10
	s.Score.LastTier = s.Score.Current / s.Settings.MilestoneStep

	o.Scoring.Add(100)
	if s.Score.Current != math.MaxUint64 {
		t.Errorf("score = %d, want max", s.Score.Current)
	}
}

func TestMilestonePerCrossedTier(t *testing.T) {
	o := newTestOrchestrator(t, DefaultSettings(), testLevelFiles)
	s := o.Session

	o.Scoring.Add(12000)
	ms := s.Bus.Milestone.Items()
	if len(ms) != 2 || ms[0].Tier != 1 || ms[1].Tier != 2 {
		t.Fatalf("milestones = %+v", ms)
	}

	s.Bus.Reset()
	o.Scoring.Add(2000)
	if s.Bus.Milestone.Len() != 0 {
		t.Errorf("no tier crossed, got %v", s.Bus.Milestone.Items())
	}
	o.Scoring.Add(1000)
	if ms := s.Bus.Milestone.Items(); len(ms) != 1 || ms[0].Tier != 3 {
		t.Errorf("milestones = %+v", ms)
	}
	if s.Score.LastTier != 3 {
		t.Errorf("last tier = %d", s.Score.LastTier)
	}
}

func TestScoringConsumesDestroyedSignals(t *testing.T) {
	o := newTestOrchestrator(t, DefaultSettings(), testLevelFiles)
	s := o.Session
	s.Bus.Destroyed.Emit(BrickDestroyed{Code: tiles.Simple})
	s.Bus.Destroyed.Emit(BrickDestroyed{Code: tiles.MultiHit4})
	s.Bus.Destroyed.Emit(BrickDestroyed{Code: tiles.ExtraLife})
	o.Scoring.Apply()
	if s.Score.Current != 400 {
		t.Errorf("score = %d, want 400", s.Score.Current)
	}
}

func TestQuestionBrickInRange(t *testing.T) {
	o := newTestOrchestrator(t, DefaultSettings(), testLevelFiles)
	s := o.Session
	for range 200 {
		s.Score = ScoreState{}
		s.Bus.Reset()
		s.Bus.Destroyed.Emit(BrickDestroyed{Code: tiles.Question})
		o.Scoring.Apply()
		if s.Score.Current < tiles.QuestionMinPoints || s.Score.Current > tiles.QuestionMaxPoints {
			t.Fatalf("question points = %d", s.Score.Current)
		}
	}
}

func TestRNGRanges(t *testing.T) {
	r := NewRNG(7)
	for range 1000 {
		if v := r.IntRange(25, 300); v < 25 || v > 300 {
			t.Fatalf("IntRange = %d", v)
		}
		if f := r.FloatRange(-2, 15); f < -2 || f >= 15 {
			t.Fatalf("FloatRange = %v", f)
		}
	}
	a, b := NewRNG(3), NewRNG(3)
	for range 10 {
		if a.Next() != b.Next() {
			t.Fatal("same seed diverged")
		}
	}
}
