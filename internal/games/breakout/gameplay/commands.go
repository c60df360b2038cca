package gameplay

import (
	"github.com/vovakirdan/brickfall/internal/games/breakout/physics"
)

// Start begins a fresh run on level n: score and lives reset, every in-flight
// timer is dropped and a ready paddle and ball are spawned.
func (o *Orchestrator) Start(n int) {
	s := o.Session
	o.discardInFlight()
	s.clearLevelEntities()

	o.Scoring.Reset()
	o.Respawn.ResetLives()
	s.GameOver = false
	s.Finished = false
	o.Sizer.Set(1)

	o.Progression.Install(s.Levels.Load(n))
	s.spawnPlayable()
	o.Watcher.Sync()
	o.Gravity.Mirror()
}

// Restart reloads the current level from scratch.
func (o *Orchestrator) Restart() {
	o.Start(o.Session.Level.Number)
	o.Session.Logger.Info("restart", "level", o.Session.Level.Number)
}

// SwitchLevel jumps to the next available level, wrapping around. Score and
// lives are kept. It is ignored while the game is over.
func (o *Orchestrator) SwitchLevel() bool {
	s := o.Session
	if s.GameOver {
		s.Logger.Debug("level switch ignored during game over")
		return false
	}
	next := s.Levels.Next(s.Level.Number)

	o.discardInFlight()
	s.clearLevelEntities()
	s.Finished = false
	o.Sizer.Set(1)

	o.Progression.Install(s.Levels.Load(next))
	s.spawnPlayable()
	o.Watcher.Sync()
	o.Gravity.Mirror()
	s.Logger.Info("level switch", "level", s.Level.Number)
	return true
}

// ToggleCheat flips cheat mode and resets score and lives, clearing a game
// over. Running respawns and transitions are dropped and a fresh paddle and
// ball replace whatever was in play; a cleared level triggers its transition
// again on the next tick.
// A finished run stays finished.
func (o *Orchestrator) ToggleCheat() {
	s := o.Session
	s.Cheat = !s.Cheat

	o.Scoring.Reset()
	o.Respawn.ResetLives()
	s.GameOver = false
	o.discardInFlight()
	o.Gravity.LoadLevel(s.Level)

	s.World.DespawnKind(physics.KindPaddle)
	s.World.DespawnKind(physics.KindBall)
	s.World.DespawnKind(physics.KindHazard)
	if !s.Finished {
		s.spawnPlayable()
	}
	o.Watcher.Sync()
	o.Gravity.Mirror()
	s.Logger.Info("cheat mode", "enabled", s.Cheat)
}

func (o *Orchestrator) discardInFlight() {
	o.Respawn.Discard()
	o.Progression.Discard()
	o.Hazards.Clear()
	o.Session.Overlay = Overlay{}
}
