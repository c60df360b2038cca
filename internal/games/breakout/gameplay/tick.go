package gameplay

// Orchestrator wires the coordinators to one session and runs them in a
// fixed order every tick.
type Orchestrator struct {
	Session     *Session
	Dispatcher  *CollisionDispatcher
	Scoring     *ScoringEngine
	Gravity     *GravityPropagator
	Sizer       *PaddleSizer
	Hazards     *HazardSpawnQueue
	Penalty     *PenaltyObserver
	Watcher     *LivesWatcher
	Respawn     *LivesRespawnCoordinator
	Progression *LevelProgressionController
}

// NewOrchestrator builds every coordinator around s.
func NewOrchestrator(s *Session) *Orchestrator {
	gravity := NewGravityPropagator(s)
	return &Orchestrator{
		Session:     s,
		Dispatcher:  NewCollisionDispatcher(s),
		Scoring:     NewScoringEngine(s),
		Gravity:     gravity,
		Sizer:       NewPaddleSizer(s),
		Hazards:     NewHazardSpawnQueue(s),
		Penalty:     NewPenaltyObserver(s),
		Watcher:     NewLivesWatcher(s),
		Respawn:     NewLivesRespawnCoordinator(s),
		Progression: NewLevelProgressionController(s, gravity),
	}
}

// Tick advances the session by dt seconds. Signals from the previous tick
// are dropped first; after Tick returns the bus holds this tick's signals.
//
// Order matters: collisions are dispatched and marked bricks flushed before
// any consumer reads destruction signals, and the respawn coordinator runs
// after the level controller so its writes win.
func (o *Orchestrator) Tick(dt float64) {
	s := o.Session
	s.Bus.Reset()
	s.Ticks++

	contacts := s.World.Step(dt)
	o.Dispatcher.Dispatch(contacts)
	o.Hazards.HandleContacts(contacts)
	o.Dispatcher.Flush()

	o.Scoring.Apply()
	o.Gravity.Apply()
	o.Sizer.Apply()

	o.Hazards.Intake()
	o.Hazards.Advance(dt)
	o.Hazards.Correct()

	o.Respawn.HandleLoss()
	o.Respawn.ApplyAwards()
	o.Penalty.Observe()
	o.Watcher.Observe()
	o.Respawn.Recover()

	o.Progression.Check()
	o.Progression.Advance(dt)
	o.Respawn.Advance(dt)

	o.Gravity.Mirror()
}
