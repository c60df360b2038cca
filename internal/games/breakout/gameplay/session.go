// Package gameplay runs the brick-breaker rules on top of the physics world:
// collision dispatch, scoring, gravity, hazards, lives and respawn, and level
// progression. All state lives in a Session that every coordinator receives.
package gameplay

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/brickfall/internal/games/breakout/levels"
	"github.com/vovakirdan/brickfall/internal/games/breakout/physics"
)

// HazardSettings configures hazard spawns and motion.
type HazardSettings struct {
	SpawnDelay    float64 // seconds
	AngleVariance float64 // degrees
	MinSpeed      float64
	MinAxialSpeed float64 // lower bound on |vx| applied every tick
}

// Settings holds the tunables of a session.
type Settings struct {
	StartLives    int
	MaxLives      int
	MilestoneStep uint64

	RespawnDelay  float64
	RespawnGrowth float64
	LevelDelay    float64
	LevelGrowth   float64

	BallSpeed          float64
	BallMaxSpeed       float64
	PaddleSpeed        float64
	GravityLimit       float64
	InitialPaddleScale float64

	PaddleWidthMin  float64
	PaddleWidthMax  float64
	PaddleWidthStep float64

	Hazard HazardSettings
}

// DefaultSettings returns the standard rules.
func DefaultSettings() Settings {
	return Settings{
		StartLives:         3,
		MaxLives:           9,
		MilestoneStep:      5000,
		RespawnDelay:       1.0,
		RespawnGrowth:      0.8,
		LevelDelay:         1.5,
		LevelGrowth:        1.0,
		BallSpeed:          9,
		BallMaxSpeed:       25,
		PaddleSpeed:        14,
		GravityLimit:       30,
		InitialPaddleScale: 0.01,
		PaddleWidthMin:     0.5,
		PaddleWidthMax:     2.0,
		PaddleWidthStep:    0.25,
		Hazard: HazardSettings{
			SpawnDelay:    0.5,
			AngleVariance: 20,
			MinSpeed:      3.0,
			MinAxialSpeed: 3.0,
		},
	}
}

// LevelSource provides level definitions by number.
type LevelSource interface {
	Load(n int) levels.Definition
	Has(n int) bool
	Next(n int) int
}

// ScoreState is owned by the scoring engine.
type ScoreState struct {
	Current  uint64
	LastTier uint64
}

// LivesState is owned by the lives coordinator.
type LivesState struct {
	Remaining  int
	OnLastLife bool
}

func (l *LivesState) set(n int) {
	if n < 0 {
		n = 0
	}
	l.Remaining = n
	l.OnLastLife = n == 1
}

// GravityConfiguration is owned by the gravity propagator.
type GravityConfiguration struct {
	Current      physics.Vec3
	LevelDefault physics.Vec3
}

// Phase is the step of a timed choreography.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseWaiting
	PhaseGrowing
	PhaseSettling
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseWaiting:
		return "waiting"
	case PhaseGrowing:
		return "growing"
	case PhaseSettling:
		return "settling"
	default:
		return "unknown"
	}
}

// LostBallRecord is one queued respawn. Recovery records come from the lives
// watcher and do not cost a life.
type LostBallRecord struct {
	Pos      physics.Vec3
	Recovery bool
}

// ActiveRespawn is the respawn currently running.
type ActiveRespawn struct {
	Record  LostBallRecord
	Phase   Phase
	Elapsed float64
	Paddle  physics.EntityID
	Ball    physics.EntityID
}

// RespawnSchedule is owned by the lives coordinator.
type RespawnSchedule struct {
	Queue   []LostBallRecord
	Pending *ActiveRespawn
}

// Busy reports whether a respawn is running or waiting to run.
func (r RespawnSchedule) Busy() bool {
	return r.Pending != nil || len(r.Queue) > 0
}

// LevelAdvanceState is owned by the level progression controller.
type LevelAdvanceState struct {
	Phase         Phase
	Elapsed       float64
	GrowthSpawned bool
	Next          *levels.Definition
	Paddle        physics.EntityID
	Ball          physics.EntityID
}

// Active reports whether a transition is in flight.
func (a LevelAdvanceState) Active() bool {
	return a.Phase != PhaseIdle
}

// PendingHazardSpawn waits for its timer before becoming a hazard.
type PendingHazardSpawn struct {
	Remaining     float64
	Pos           physics.Vec3
	AngleVariance float64
	MinSpeed      float64
}

// HazardQueueState is owned by the hazard queue.
type HazardQueueState struct {
	Pending []PendingHazardSpawn
	Spawned int // drives the alternating launch angle
}

// Overlay is the screen fade shown during respawns and transitions.
type Overlay struct {
	Visible bool
	Opacity float64
}

// Session is the shared context handed to every coordinator.
type Session struct {
	Settings Settings
	World    *physics.World
	Levels   LevelSource
	Bus      *Bus
	RNG      *RNG
	Logger   *log.Logger

	Score   ScoreState
	Lives   LivesState
	Gravity GravityConfiguration
	Respawn RespawnSchedule
	Advance LevelAdvanceState
	Hazards HazardQueueState

	Level       levels.Definition
	Spawns      levels.SpawnPoints
	Overlay     Overlay
	PaddleWidth float64

	GameOver bool
	Finished bool
	Cheat    bool
	Ticks    uint64
}

// NewSession builds a session around a world. The play field boundaries are
// spawned if the world has none. A nil logger discards output.
func NewSession(settings Settings, world *physics.World, src LevelSource, seed int64, logger *log.Logger) *Session {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	s := &Session{
		Settings:    settings,
		World:       world,
		Levels:      src,
		Bus:         &Bus{},
		RNG:         NewRNG(seed),
		Logger:      logger,
		PaddleWidth: 1,
	}
	s.Lives.set(settings.StartLives)
	if world.Count(physics.KindWall) == 0 {
		s.spawnBoundaries()
	}
	return s
}
