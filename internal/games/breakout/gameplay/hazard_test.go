package gameplay

import (
	"math"
	"testing"

	"github.com/vovakirdan/brickfall/internal/games/breakout/physics"
)

func TestLaunchVelocityAlternates(t *testing.T) {
	first := LaunchVelocity(0, 20, 3)
	second := LaunchVelocity(1, 20, 3)
	third := LaunchVelocity(2, 20, 3)

	if first.Z <= 0 || second.Z >= 0 || third.Z <= 0 {
		t.Errorf("sides did not alternate: %v %v %v", first, second, third)
	}
	if first.X <= 0 {
		t.Errorf("hazard should head toward the goal: %v", first)
	}
	if math.Abs(first.Len()-3) > 1e-9 {
		t.Errorf("speed = %v, want 3", first.Len())
	}
	if got := math.Atan2(first.Z, first.X) * 180 / math.Pi; math.Abs(got-10) > 1e-9 {
		t.Errorf("angle = %v, want 10", got)
	}
}

func TestLaunchAngleAndSpeedClamps(t *testing.T) {
	cases := []struct {
		variance, speed      float64
		wantAngle, wantSpeed float64
	}{
		{4, 3, 5, 3},
		{100, 3, 20, 3},
		{20, 0, 10, 0.1},
		{20, -5, 10, 0.1},
	}
	for _, tc := range cases {
		v := LaunchVelocity(0, tc.variance, tc.speed)
		angle := math.Atan2(v.Z, v.X) * 180 / math.Pi
		if math.Abs(angle-tc.wantAngle) > 1e-9 {
			t.Errorf("variance %v: angle = %v, want %v", tc.variance, angle, tc.wantAngle)
		}
		if math.Abs(v.Len()-tc.wantSpeed) > 1e-9 {
			t.Errorf("min speed %v: speed = %v, want %v", tc.speed, v.Len(), tc.wantSpeed)
		}
	}
}

func TestHazardSpawnsAfterDelay(t *testing.T) {
	o := newTestOrchestrator(t, DefaultSettings(), testLevelFiles)
	s := o.Session
	s.Bus.HazardRequest.Emit(HazardRequested{Pos: physics.V(4.5, 0, 7.5), Delay: 0.5, AngleVariance: 20, MinSpeed: 3})
	s.Bus.HazardRequest.Emit(HazardRequested{Pos: physics.V(4.5, 0, 9.5), Delay: 0.5, AngleVariance: 20, MinSpeed: 3})
	o.Hazards.Intake()

	o.Hazards.Advance(0.3)
	if n := s.World.Count(physics.KindHazard); n != 0 {
		t.Fatalf("hazards spawned early: %d", n)
	}
	o.Hazards.Advance(0.3)
	hz := s.World.Each(physics.KindHazard)
	if len(hz) != 2 {
		t.Fatalf("hazards = %d, want 2", len(hz))
	}
	if hz[0].Pos != physics.V(4.5, 0, 7.5) {
		t.Errorf("spawn position = %v", hz[0].Pos)
	}
	if hz[0].UseGravity {
		t.Error("hazards ignore gravity")
	}
	if hz[0].Vel.Z <= 0 || hz[1].Vel.Z >= 0 {
		t.Errorf("consecutive spawns should alternate: %v %v", hz[0].Vel, hz[1].Vel)
	}
	if len(s.Hazards.Pending) != 0 {
		t.Errorf("pending = %d", len(s.Hazards.Pending))
	}
}

func TestHazardCorrection(t *testing.T) {
	cases := []struct {
		in, want physics.Vec3
	}{
		{physics.V(0.5, 0, 4), physics.V(3, 0, 1.5)},
		{physics.V(-5, 0, -4), physics.V(-5, 0, -2.5)},
		{physics.V(6, 1, 1), physics.V(6, 0, 1)},
		{physics.V(0, 0, 0), physics.V(3, 0, 0)},
	}
	for _, tc := range cases {
		if got := correctHazard(tc.in, 3); got != tc.want {
			t.Errorf("correctHazard(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func spawnTestHazard(s *Session) physics.EntityID {
	return s.World.Spawn(physics.Body{Kind: physics.KindHazard, Shape: physics.ShapeCircle, Radius: HazardRadius,
		Pos: physics.V(10, 0, 10), Vel: physics.V(3, 0, 0)})
}

func TestHazardContacts(t *testing.T) {
	o := newTestOrchestrator(t, DefaultSettings(), testLevelFiles)
	s := o.Session
	goal := s.World.Each(physics.KindGoal)[0].ID
	wall := s.World.Each(physics.KindWall)[0].ID
	paddle := s.spawnPaddle(physics.V(18.5, 0, 10), 1, false)
	brick := spawnTestBrick(s, 20)

	gone := spawnTestHazard(s)
	h := spawnTestHazard(s)
	o.Hazards.HandleContacts([]physics.Contact{
		{A: goal, B: gone, KindA: physics.KindGoal, KindB: physics.KindHazard},
		{A: h, B: wall, KindA: physics.KindHazard, KindB: physics.KindWall},
		{A: brick, B: h, KindA: physics.KindBrick, KindB: physics.KindHazard},
		{A: paddle, B: h, KindA: physics.KindPaddle, KindB: physics.KindHazard},
	})

	if s.World.Exists(gone) {
		t.Error("hazard in goal should be despawned")
	}
	if s.Bus.Bounce.Len() != 2 {
		t.Errorf("bounces = %d, want 2", s.Bus.Bounce.Len())
	}
	if b, _ := s.World.Get(brick); b.Tag != 20 {
		t.Error("hazard contact changed the brick")
	}
	if p := s.Bus.HazardPenalty.Items(); len(p) != 1 || p[0].Hazard != h {
		t.Errorf("penalties = %+v", p)
	}
	if s.Lives.Remaining != 3 || s.Bus.BallLost.Len() != 0 {
		t.Error("goal contact of a hazard must be silent")
	}
}

func TestPenaltyAndWatcherClearOnce(t *testing.T) {
	o := newTestOrchestrator(t, DefaultSettings(), testLevelFiles)
	s := o.Session
	s.spawnBall(physics.V(10, 0, 10), false)
	s.spawnBall(physics.V(11, 0, 10), false)
	spawnTestHazard(s)
	spawnTestHazard(s)

	s.Bus.HazardPenalty.Emit(HazardPenalty{})
	s.Bus.HazardPenalty.Emit(HazardPenalty{})
	o.Penalty.Observe()
	if s.Lives.Remaining != 1 {
		t.Fatalf("lives = %d, want 1", s.Lives.Remaining)
	}
	if !s.Lives.OnLastLife {
		t.Error("OnLastLife not set")
	}

	o.Watcher.Observe()
	cleared := s.Bus.BallsCleared.Items()
	if len(cleared) != 1 || cleared[0].Balls != 2 || cleared[0].Hazards != 2 {
		t.Fatalf("cleared = %+v", cleared)
	}
	if s.World.Count(physics.KindBall)+s.World.Count(physics.KindHazard) != 0 {
		t.Error("balls or hazards left")
	}

	s.spawnBall(physics.V(10, 0, 10), false)
	o.Watcher.Observe()
	if s.Bus.BallsCleared.Len() != 1 || s.World.Count(physics.KindBall) != 1 {
		t.Error("watcher fired again without a new decrement")
	}
}

func TestPenaltyFloorsAtZero(t *testing.T) {
	st := DefaultSettings()
	st.StartLives = 1
	o := newTestOrchestrator(t, st, testLevelFiles)
	s := o.Session
	for range 3 {
		s.Bus.HazardPenalty.Emit(HazardPenalty{})
	}
	o.Penalty.Observe()
	if s.Lives.Remaining != 0 {
		t.Errorf("lives = %d, want 0", s.Lives.Remaining)
	}
}

func TestHazardPenaltyRecoversWithoutExtraLoss(t *testing.T) {
	o := startedOrchestrator(t)
	s := o.Session
	paddle := s.World.Each(physics.KindPaddle)[0]
	s.World.Spawn(physics.Body{Kind: physics.KindHazard, Shape: physics.ShapeCircle, Radius: HazardRadius,
		Pos: physics.V(paddle.Pos.X-0.7, 0, paddle.Pos.Z), Vel: physics.V(3, 0, 0)})

	o.Tick(testDT)
	if s.Lives.Remaining != 2 {
		t.Fatalf("lives = %d after penalty, want 2", s.Lives.Remaining)
	}
	if s.World.Count(physics.KindHazard) != 0 || s.World.Count(physics.KindBall) != 0 {
		t.Fatal("watcher should clear balls and hazards")
	}
	if !s.Respawn.Busy() {
		t.Fatal("recovery respawn not scheduled")
	}

	for i := 0; i < 40 && s.Respawn.Busy(); i++ {
		o.Tick(testDT)
	}
	if s.Respawn.Busy() {
		t.Fatal("recovery respawn did not finish")
	}
	if s.Lives.Remaining != 2 {
		t.Errorf("recovery cost a life: %d", s.Lives.Remaining)
	}
	if s.World.Count(physics.KindBall) != 1 || s.World.Count(physics.KindPaddle) != 1 {
		t.Errorf("balls = %d paddles = %d after recovery", s.World.Count(physics.KindBall), s.World.Count(physics.KindPaddle))
	}
}
