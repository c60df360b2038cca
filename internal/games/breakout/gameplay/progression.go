package gameplay

import (
	"github.com/vovakirdan/brickfall/internal/games/breakout/levels"
	"github.com/vovakirdan/brickfall/internal/games/breakout/physics"
)

// LevelProgressionController owns the current level and the transition to
// the next one.
type LevelProgressionController struct {
	s       *Session
	gravity *GravityPropagator
}

// NewLevelProgressionController creates a controller bound to a session. It
// goes through the gravity propagator for every gravity change.
func NewLevelProgressionController(s *Session, gravity *GravityPropagator) *LevelProgressionController {
	return &LevelProgressionController{s: s, gravity: gravity}
}

// Install makes def the current level: bricks are spawned, spawn points and
// gravity are taken from it.
func (lc *LevelProgressionController) Install(def levels.Definition) {
	s := lc.s
	s.World.DespawnKind(physics.KindBrick)
	s.Level = def
	s.Spawns = def.SpawnPoints()
	s.spawnBricks(def)
	lc.gravity.LoadLevel(def)
	s.Bus.LevelStarted.Emit(LevelStarted{Number: def.Number})
	s.Logger.Info("level started", "level", def.Number, "bricks", def.CompletionCount())
}

// Check starts a transition once no completion-counted bricks remain.
func (lc *LevelProgressionController) Check() {
	s := lc.s
	if s.Advance.Active() || s.Respawn.Busy() || s.Finished || s.GameOver {
		return
	}
	if s.CompletionRemaining() > 0 {
		return
	}

	next := s.Level.Number + 1
	if !s.Levels.Has(next) {
		lc.finish()
		return
	}
	def := s.Levels.Load(next)
	s.World.DespawnKind(physics.KindPaddle)
	s.World.DespawnKind(physics.KindBall)
	s.World.DespawnKind(physics.KindHazard)
	s.Hazards.Pending = nil
	s.Advance = LevelAdvanceState{Phase: PhaseWaiting, Next: &def}
	s.Overlay = Overlay{Visible: true}
	s.Logger.Debug("level cleared", "level", s.Level.Number, "next", next)
}

func (lc *LevelProgressionController) finish() {
	s := lc.s
	s.World.DespawnKind(physics.KindPaddle)
	s.World.DespawnKind(physics.KindBall)
	if s.Finished {
		return
	}
	s.Finished = true
	s.Bus.Finished.Emit(SessionFinished{Score: s.Score.Current, Level: s.Level.Number})
	s.Logger.Info("session finished", "score", s.Score.Current, "level", s.Level.Number)
}

// Advance drives the running transition. A game over drops it and puts the
// current level's gravity back.
func (lc *LevelProgressionController) Advance(dt float64) {
	s := lc.s
	a := &s.Advance
	if !a.Active() {
		return
	}
	if s.GameOver || s.Finished {
		lc.Discard()
		lc.gravity.ResetToDefault()
		s.Overlay = Overlay{}
		return
	}

	switch a.Phase {
	case PhaseWaiting:
		a.Elapsed += dt
		frac := fraction(a.Elapsed, s.Settings.LevelDelay)
		s.Overlay = Overlay{Visible: true, Opacity: frac}
		if frac < 1 {
			return
		}
		sp := a.Next.SpawnPoints()
		a.Paddle = s.spawnPaddle(sp.Paddle, s.Settings.InitialPaddleScale, true)
		a.Ball = s.spawnBall(sp.Ball, true)
		lc.gravity.Override(a.Next.DefaultGravity())
		a.GrowthSpawned = true
		a.Phase = PhaseGrowing
		a.Elapsed = 0
	case PhaseGrowing:
		a.Elapsed += dt
		frac := fraction(a.Elapsed, s.Settings.LevelGrowth)
		lc.restoreGrowth(a.Next.SpawnPoints())
		if p, ok := s.World.Get(a.Paddle); ok {
			p.Scale = growthScale(s.Settings.InitialPaddleScale, frac)
		}
		s.World.SetVelocity(a.Ball, physics.Zero)
		s.Overlay = Overlay{Visible: true, Opacity: 1 - frac}
		if frac < 1 {
			return
		}
		lc.Install(*a.Next)
		a.Next = nil
		a.Phase = PhaseSettling
	case PhaseSettling:
		s.Overlay = Overlay{}
		lc.restoreGrowth(s.Spawns)
		if p, ok := s.World.Get(a.Paddle); ok {
			p.Locked = false
			p.Scale = 1
		}
		s.launchBall(a.Ball)
		s.Advance = LevelAdvanceState{}
	}
}

// restoreGrowth respawns the transition paddle or ball when a life loss
// cleared them mid-transition.
func (lc *LevelProgressionController) restoreGrowth(sp levels.SpawnPoints) {
	s := lc.s
	a := &s.Advance
	if !s.World.Exists(a.Paddle) {
		a.Paddle = s.spawnPaddle(sp.Paddle, s.Settings.InitialPaddleScale, true)
	}
	if !s.World.Exists(a.Ball) {
		a.Ball = s.spawnBall(sp.Ball, true)
	}
}

// Discard drops any running transition.
func (lc *LevelProgressionController) Discard() {
	lc.s.Advance = LevelAdvanceState{}
}
