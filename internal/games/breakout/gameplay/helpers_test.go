package gameplay

import (
	"math"
	"testing"
	"testing/fstest"

	"github.com/vovakirdan/brickfall/internal/games/breakout/levels"
	"github.com/vovakirdan/brickfall/internal/games/breakout/physics"
	"github.com/vovakirdan/brickfall/internal/games/breakout/tiles"
)

const testDT = 0.05

var testLevelFiles = fstest.MapFS{
	"level1.yaml": {Data: []byte("number: 1\nmatrix:\n  - [20, 20, 90]\n")},
	"level2.yaml": {Data: []byte("number: 2\ngravity: [2, 0, 0]\nmatrix:\n  - [0, 10, 41]\n")},
}

func fastSettings() Settings {
	st := DefaultSettings()
	st.RespawnDelay = 0.1
	st.RespawnGrowth = 0.1
	st.LevelDelay = 0.1
	st.LevelGrowth = 0.1
	return st
}

func newTestOrchestrator(t *testing.T, st Settings, files fstest.MapFS) *Orchestrator {
	t.Helper()
	w := physics.NewWorld()
	w.InstallConfig(physics.Config{})
	s := NewSession(st, w, levels.NewLoader(files, nil), 42, nil)
	return NewOrchestrator(s)
}

func startedOrchestrator(t *testing.T) *Orchestrator {
	t.Helper()
	o := newTestOrchestrator(t, fastSettings(), testLevelFiles)
	o.Start(1)
	return o
}

func spawnTestBrick(s *Session, code tiles.Code) physics.EntityID {
	return s.World.Spawn(physics.Body{
		Kind:   physics.KindBrick,
		Shape:  physics.ShapeBox,
		Static: true,
		Pos:    physics.V(5.5, 0, 5.5),
		HalfX:  BrickHalf,
		HalfZ:  BrickHalf,
		Tag:    int(code),
		Row:    5,
		Col:    5,
	})
}

func ballBrick(ball, brick physics.EntityID) physics.Contact {
	return physics.Contact{A: ball, B: brick, KindA: physics.KindBall, KindB: physics.KindBrick}
}

// sendToGoal places every ball just inside the goal sensor so the next
// Step reports a goal contact.
func sendToGoal(s *Session) {
	for _, b := range s.World.Each(physics.KindBall) {
		b.Frozen = false
		b.Pos = physics.V(FieldLength+0.2, 0, 10)
		b.Vel = physics.V(1, 0, 0)
	}
}

func phaseOf(r *ActiveRespawn) Phase {
	if r == nil {
		return PhaseIdle
	}
	return r.Phase
}

func nan() float64 {
	return math.NaN()
}
