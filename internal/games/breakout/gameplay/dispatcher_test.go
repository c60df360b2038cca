package gameplay

import (
	"testing"

	"github.com/vovakirdan/brickfall/internal/games/breakout/physics"
	"github.com/vovakirdan/brickfall/internal/games/breakout/tiles"
)

func TestMultiHitBrickHitsToDestroy(t *testing.T) {
	for d := tiles.MultiHit1; d <= tiles.MultiHit4; d++ {
		o := newTestOrchestrator(t, DefaultSettings(), testLevelFiles)
		s := o.Session
		ball := s.spawnBall(physics.V(10, 0, 10), false)
		brick := spawnTestBrick(s, d)

		hits := 0
		for s.World.Exists(brick) && hits < 10 {
			s.Bus.Reset()
			o.Dispatcher.Dispatch([]physics.Contact{ballBrick(ball, brick)})
			o.Dispatcher.Flush()
			hits++
			if s.World.Exists(brick) && s.Bus.Destroyed.Len() != 0 {
				t.Fatalf("code %d: intermediate hit emitted a destruction signal", d)
			}
		}
		if want := int(d-9) + 1; hits != want {
			t.Errorf("code %d destroyed after %d hits, want %d", d, hits, want)
		}
		if s.Bus.Destroyed.Len() != 1 || s.Bus.Destroyed.Items()[0].Code != tiles.Simple {
			t.Errorf("code %d: final signal = %v", d, s.Bus.Destroyed.Items())
		}
	}
}

func TestMultiHitCodeOnlyDecreases(t *testing.T) {
	o := newTestOrchestrator(t, DefaultSettings(), testLevelFiles)
	s := o.Session
	ball := s.spawnBall(physics.V(10, 0, 10), false)
	brick := spawnTestBrick(s, tiles.MultiHit4)

	prev := tiles.MultiHit4
	for range 4 {
		o.Dispatcher.Dispatch([]physics.Contact{ballBrick(ball, brick)})
		b, _ := s.World.Get(brick)
		code := tiles.Code(b.Tag)
		if code != tiles.Simple && code >= prev {
			t.Fatalf("code went from %d to %d", prev, code)
		}
		prev = code
	}
	if prev != tiles.Simple {
		t.Errorf("final code = %d, want %d", prev, tiles.Simple)
	}
}

func TestExtraLifeAwardedOncePerTick(t *testing.T) {
	o := newTestOrchestrator(t, DefaultSettings(), testLevelFiles)
	s := o.Session
	b1 := s.spawnBall(physics.V(10, 0, 10), false)
	b2 := s.spawnBall(physics.V(10, 0, 11), false)
	brick := spawnTestBrick(s, tiles.ExtraLife)
	before := s.Lives.Remaining

	o.Dispatcher.Dispatch([]physics.Contact{ballBrick(b1, brick), ballBrick(b2, brick)})
	o.Dispatcher.Flush()
	o.Scoring.Apply()
	o.Respawn.ApplyAwards()

	if got := s.Lives.Remaining; got != before+1 {
		t.Errorf("lives = %d, want %d", got, before+1)
	}
	if s.Score.Current != 0 {
		t.Errorf("score = %d, want 0", s.Score.Current)
	}
	if s.Bus.Destroyed.Len() != 1 {
		t.Errorf("destroyed signals = %d, want 1", s.Bus.Destroyed.Len())
	}
}

func TestExtraLifeClampedAtMax(t *testing.T) {
	st := DefaultSettings()
	st.StartLives = 9
	o := newTestOrchestrator(t, st, testLevelFiles)
	s := o.Session
	s.Bus.LifeAwarded.Emit(LifeAwarded{Amount: 1})
	o.Respawn.ApplyAwards()
	if s.Lives.Remaining != 9 {
		t.Errorf("lives = %d, want 9", s.Lives.Remaining)
	}
}

func TestHazardTriggerDestroyedImmediately(t *testing.T) {
	o := newTestOrchestrator(t, DefaultSettings(), testLevelFiles)
	s := o.Session
	ball := s.spawnBall(physics.V(10, 0, 10), false)
	brick := spawnTestBrick(s, tiles.HazardTrigger)

	o.Dispatcher.Dispatch([]physics.Contact{ballBrick(ball, brick)})
	if s.World.Exists(brick) {
		t.Fatal("hazard trigger should be gone before flush")
	}
	if s.Bus.Destroyed.Len() != 1 {
		t.Fatalf("destroyed = %d before flush, want 1", s.Bus.Destroyed.Len())
	}
	o.Dispatcher.Flush()
	if s.Bus.Destroyed.Len() != 1 {
		t.Errorf("flush added destruction signals: %v", s.Bus.Destroyed.Items())
	}

	reqs := s.Bus.HazardRequest.Items()
	if len(reqs) != 1 {
		t.Fatalf("hazard requests = %d", len(reqs))
	}
	r := reqs[0]
	if r.Pos != physics.V(5.5, 0, 5.5) || r.Delay != 0.5 || r.AngleVariance != 20 || r.MinSpeed != 3 {
		t.Errorf("request = %+v", r)
	}
}

func TestGenericDestructionIsDeferred(t *testing.T) {
	o := newTestOrchestrator(t, DefaultSettings(), testLevelFiles)
	s := o.Session
	ball := s.spawnBall(physics.V(10, 0, 10), false)
	brick := spawnTestBrick(s, tiles.GravityHigh)

	o.Dispatcher.Dispatch([]physics.Contact{ballBrick(ball, brick)})
	if b, ok := s.World.Get(brick); !ok || b.Tag != int(tiles.GravityHigh) {
		t.Fatal("marked brick should still be readable before flush")
	}
	if s.Bus.Destroyed.Len() != 0 {
		t.Fatal("signal emitted before removal")
	}
	o.Dispatcher.Flush()
	items := s.Bus.Destroyed.Items()
	if len(items) != 1 || items[0].Code != tiles.GravityHigh || items[0].Row != 5 || items[0].Col != 5 {
		t.Errorf("destroyed = %+v", items)
	}
	if s.World.Exists(brick) {
		t.Error("brick still present after flush")
	}
}

func TestUnknownCodeTreatedAsDestructible(t *testing.T) {
	o := newTestOrchestrator(t, DefaultSettings(), testLevelFiles)
	s := o.Session
	ball := s.spawnBall(physics.V(10, 0, 10), false)
	brick := spawnTestBrick(s, tiles.Code(77))

	o.Dispatcher.Dispatch([]physics.Contact{ballBrick(ball, brick)})
	o.Dispatcher.Flush()
	if s.World.Exists(brick) || s.Bus.Destroyed.Len() != 1 {
		t.Error("unknown code brick should be destroyed generically")
	}
}

func TestPaddleOnlyBrick(t *testing.T) {
	o := newTestOrchestrator(t, DefaultSettings(), testLevelFiles)
	s := o.Session
	ball := s.spawnBall(physics.V(10, 0, 10), false)
	paddle := s.spawnPaddle(physics.V(18.5, 0, 10), 1, false)
	brick := spawnTestBrick(s, tiles.PaddleOnly)

	o.Dispatcher.Dispatch([]physics.Contact{ballBrick(ball, brick)})
	o.Dispatcher.Flush()
	if !s.World.Exists(brick) || s.Bus.Destroyed.Len() != 0 {
		t.Fatal("ball contact must not destroy a paddle-only brick")
	}

	o.Dispatcher.Dispatch([]physics.Contact{{A: paddle, B: brick, KindA: physics.KindPaddle, KindB: physics.KindBrick}})
	o.Dispatcher.Flush()
	if s.World.Exists(brick) {
		t.Error("paddle contact should destroy the brick")
	}
	if s.Bus.Destroyed.Len() != 1 {
		t.Errorf("destroyed = %d, want 1", s.Bus.Destroyed.Len())
	}
}

func TestIndestructibleBrickSurvives(t *testing.T) {
	o := newTestOrchestrator(t, DefaultSettings(), testLevelFiles)
	s := o.Session
	ball := s.spawnBall(physics.V(10, 0, 10), false)
	brick := spawnTestBrick(s, tiles.Indestructible)
	for range 3 {
		o.Dispatcher.Dispatch([]physics.Contact{ballBrick(ball, brick)})
		o.Dispatcher.Flush()
	}
	if !s.World.Exists(brick) || s.Bus.Destroyed.Len() != 0 {
		t.Error("indestructible brick was destroyed")
	}
}

func TestGoalContactEmitsBallLost(t *testing.T) {
	o := newTestOrchestrator(t, DefaultSettings(), testLevelFiles)
	s := o.Session
	ball := s.spawnBall(physics.V(20.2, 0, 10), false)
	goal := s.World.Each(physics.KindGoal)[0].ID

	c := physics.Contact{A: goal, B: ball, KindA: physics.KindGoal, KindB: physics.KindBall}
	o.Dispatcher.Dispatch([]physics.Contact{c, c})
	lost := s.Bus.BallLost.Items()
	if len(lost) != 1 || lost[0].Ball != ball {
		t.Errorf("ball lost = %+v", lost)
	}
}

func TestBallDestroysBrickThroughPhysics(t *testing.T) {
	o := newTestOrchestrator(t, DefaultSettings(), testLevelFiles)
	s := o.Session
	brick := spawnTestBrick(s, tiles.Simple)
	s.World.Spawn(physics.Body{Kind: physics.KindBall, Shape: physics.ShapeCircle, Radius: BallRadius,
		Pos: physics.V(6.3, 0, 5.5), Vel: physics.V(-3, 0, 0)})

	o.Tick(testDT)

	items := s.Bus.Destroyed.Items()
	if len(items) != 1 || items[0].ID != brick {
		t.Fatalf("destroyed = %+v", items)
	}
	if s.Score.Current != 100 {
		t.Errorf("score = %d, want 100", s.Score.Current)
	}
}
