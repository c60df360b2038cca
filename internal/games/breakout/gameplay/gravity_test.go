package gameplay

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/brickfall/internal/games/breakout/physics"
	"github.com/vovakirdan/brickfall/internal/games/breakout/tiles"
)

func TestGravityBricksSetFixedVectors(t *testing.T) {
	cases := []struct {
		code tiles.Code
		want physics.Vec3
	}{
		{tiles.GravityZero, physics.V(0, 0, 0)},
		{tiles.GravityLow, physics.V(2, 0, 0)},
		{tiles.GravityMedium, physics.V(10, 0, 0)},
		{tiles.GravityHigh, physics.V(20, 0, 0)},
	}
	for _, tc := range cases {
		o := newTestOrchestrator(t, DefaultSettings(), testLevelFiles)
		s := o.Session
		s.Gravity.Current = physics.V(1, 0, 1)
		s.Bus.Destroyed.Emit(BrickDestroyed{Code: tc.code})
		o.Gravity.Apply()
		if s.Gravity.Current != tc.want {
			t.Errorf("code %d: gravity = %v, want %v", tc.code, s.Gravity.Current, tc.want)
		}
	}
}

func TestRandomGravityRange(t *testing.T) {
	o := newTestOrchestrator(t, DefaultSettings(), testLevelFiles)
	s := o.Session
	for range 200 {
		s.Bus.Reset()
		s.Bus.Destroyed.Emit(BrickDestroyed{Code: tiles.GravityRandom})
		o.Gravity.Apply()
		g := s.Gravity.Current
		if g.X < -2 || g.X > 15 || g.Z < -5 || g.Z > 5 || g.Y != 0 {
			t.Fatalf("random gravity out of range: %v", g)
		}
	}
}

func TestInvalidGravityRejected(t *testing.T) {
	st := DefaultSettings()
	st.GravityLimit = 5
	o := newTestOrchestrator(t, st, testLevelFiles)
	s := o.Session
	s.Gravity.Current = physics.V(1, 0, 0)

	s.Bus.Destroyed.Emit(BrickDestroyed{Code: tiles.GravityMedium})
	o.Gravity.Apply()
	if s.Gravity.Current != physics.V(1, 0, 0) {
		t.Errorf("out-of-range gravity accepted: %v", s.Gravity.Current)
	}

	if o.Gravity.Override(physics.V(nan(), 0, 0)) {
		t.Error("non-finite override accepted")
	}
	if s.Gravity.Current != physics.V(1, 0, 0) {
		t.Errorf("gravity changed after rejected override: %v", s.Gravity.Current)
	}
}

func TestLastValidGravityWins(t *testing.T) {
	st := DefaultSettings()
	st.GravityLimit = 15
	o := newTestOrchestrator(t, st, testLevelFiles)
	s := o.Session

	s.Bus.Destroyed.Emit(BrickDestroyed{Code: tiles.GravityMedium})
	s.Bus.Destroyed.Emit(BrickDestroyed{Code: tiles.GravityLow})
	s.Bus.Destroyed.Emit(BrickDestroyed{Code: tiles.GravityHigh}) // rejected
	o.Gravity.Apply()
	if s.Gravity.Current != physics.V(2, 0, 0) {
		t.Errorf("gravity = %v, want (2,0,0)", s.Gravity.Current)
	}
}

func TestBallLostRestoresLevelDefault(t *testing.T) {
	o := newTestOrchestrator(t, DefaultSettings(), testLevelFiles)
	s := o.Session
	s.Gravity = GravityConfiguration{Current: physics.V(20, 0, 0), LevelDefault: physics.V(2, 0, 0)}

	s.Bus.Destroyed.Emit(BrickDestroyed{Code: tiles.GravityMedium})
	s.Bus.BallLost.Emit(BallLost{})
	o.Gravity.Apply()
	if s.Gravity.Current != physics.V(2, 0, 0) {
		t.Errorf("gravity = %v, want level default", s.Gravity.Current)
	}
}

func TestLoadLevelSetsBothVectors(t *testing.T) {
	o := newTestOrchestrator(t, DefaultSettings(), testLevelFiles)
	s := o.Session
	def := s.Levels.Load(2)
	o.Gravity.LoadLevel(def)
	want := physics.V(2, 0, 0)
	if s.Gravity.Current != want || s.Gravity.LevelDefault != want {
		t.Errorf("gravity = %+v", s.Gravity)
	}

	o.Gravity.LoadLevel(s.Levels.Load(1))
	if s.Gravity.Current != physics.Zero || s.Gravity.LevelDefault != physics.Zero {
		t.Errorf("level without override should give zero gravity, got %+v", s.Gravity)
	}
}

func TestMirrorSkipsWithoutConfig(t *testing.T) {
	o := newTestOrchestrator(t, DefaultSettings(), testLevelFiles)
	s := o.Session
	var buf bytes.Buffer
	s.Logger = log.New(&buf)
	s.World.RemoveConfig()
	s.Gravity.Current = physics.V(10, 0, 0)

	o.Gravity.Mirror()
	o.Gravity.Mirror()
	if s.World.Config() != nil {
		t.Fatal("mirror must not create a config")
	}
	if n := strings.Count(buf.String(), "gravity write skipped"); n != 2 {
		t.Errorf("skip warnings = %d, want one per skipped write", n)
	}

	s.World.InstallConfig(physics.Config{})
	o.Gravity.Mirror()
	if got := s.World.Config().Gravity; got != physics.V(10, 0, 0) {
		t.Errorf("engine gravity = %v after retry", got)
	}
}

func TestGravityMirroredDuringTick(t *testing.T) {
	o := startedOrchestrator(t)
	s := o.Session
	s.Gravity.Current = physics.V(2, 0, 0)
	o.Tick(testDT)
	if got := s.World.Config().Gravity; got != physics.V(2, 0, 0) {
		t.Errorf("engine gravity = %v", got)
	}
}
