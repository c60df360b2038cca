package breakout

import (
	"io"
	"math"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/brickfall/internal/config"
	"github.com/vovakirdan/brickfall/internal/core"
	"github.com/vovakirdan/brickfall/internal/games/breakout/gameplay"
	"github.com/vovakirdan/brickfall/internal/games/breakout/levels"
	"github.com/vovakirdan/brickfall/internal/games/breakout/physics"
	"github.com/vovakirdan/brickfall/internal/registry"
)

// GameID is the registry identifier, also used for score storage.
const GameID = "brickfall"

// Step events surfaced to the platform.
const (
	EventBrick     = "brick"
	EventBounce    = "bounce"
	EventMilestone = "milestone"
	EventLife      = "life"
	EventBallLost  = "ball_lost"
	EventHazard    = "hazard"
	EventPenalty   = "penalty"
	EventResize    = "resize"
	EventLevel     = "level"
	EventGameOver  = "gameover"
	EventFinished  = "finished"
	EventRestart   = "restart"
	EventCheat     = "cheat"
)

// configPath stores the custom config path set via CLI
var configPath string

// difficultyPreset stores the difficulty preset set via CLI
var difficultyPreset config.DifficultyPreset

// envOverrides are applied on top of the loaded config when set.
var envOverrides *config.Env

var logger = log.New(io.Discard)

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset.
func SetDifficultyPreset(preset string) {
	difficultyPreset = config.ParsePreset(preset)
}

// SetEnv installs environment overrides for subsequent resets.
func SetEnv(e config.Env) {
	envOverrides = &e
}

// SetLogger sets the logger handed to new sessions. nil silences output.
func SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard)
	}
	logger = l
}

// Game implements the brick breaker on top of the gameplay orchestrator.
type Game struct {
	runtime    core.RuntimeConfig
	cfg        config.BreakoutConfig
	difficulty *config.DifficultyManager
	baseSpeed  float64

	levels  *levels.Loader
	world   *physics.World
	session *gameplay.Session
	orch    *gameplay.Orchestrator

	startLevel int // overrides the configured start level when > 0
	paused     bool
}

// New creates a new game instance. Reset must be called before Step.
func New() *Game {
	return &Game{}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return GameID
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Brickfall"
}

// Reset loads the configuration and starts a fresh run on the start level.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime
	g.paused = false

	cfg, err := config.LoadBreakout(configPath)
	if err != nil {
		logger.Warn("config load failed, using defaults", "path", configPath, "err", err)
		cfg = config.DefaultBreakoutConfig()
	}
	if difficultyPreset != "" {
		config.ApplyBreakoutPreset(&cfg, difficultyPreset)
	}
	if envOverrides != nil {
		envOverrides.Apply(&cfg)
	}
	g.cfg = cfg
	g.difficulty = config.NewDifficultyManager(cfg.Difficulty)
	g.baseSpeed = cfg.Physics.BallSpeed

	if cfg.Levels.Dir != "" {
		g.levels = levels.DirLoader(cfg.Levels.Dir, logger)
	} else {
		g.levels = levels.EmbeddedLoader(logger)
	}

	g.world = physics.NewWorld()
	if cfg.Physics.Substeps > 0 {
		g.world.Substeps = cfg.Physics.Substeps
	}
	g.world.InstallConfig(physics.Config{})

	g.session = gameplay.NewSession(SettingsFromConfig(cfg), g.world, g.levels, runtime.Seed, logger)
	g.orch = gameplay.NewOrchestrator(g.session)

	start := cfg.Levels.Start
	if g.startLevel > 0 {
		start = g.startLevel
	}
	if start <= 0 {
		start = 1
	}
	g.orch.Start(start)
}

// SetStartLevel selects the level the next Reset starts on. Zero restores
// the configured start level.
func (g *Game) SetStartLevel(n int) {
	g.startLevel = n
}

// SettingsFromConfig converts the YAML config into session settings.
func SettingsFromConfig(cfg config.BreakoutConfig) gameplay.Settings {
	s := gameplay.DefaultSettings()
	s.StartLives = cfg.Gameplay.StartLives
	s.MaxLives = cfg.Gameplay.MaxLives
	if cfg.Gameplay.MilestoneStep > 0 {
		s.MilestoneStep = cfg.Gameplay.MilestoneStep
	}

	s.RespawnDelay = cfg.Timing.RespawnDelay
	s.RespawnGrowth = cfg.Timing.RespawnGrowth
	s.LevelDelay = cfg.Timing.LevelDelay
	s.LevelGrowth = cfg.Timing.LevelGrowth

	s.BallSpeed = cfg.Physics.BallSpeed
	s.BallMaxSpeed = cfg.Physics.MaxBallSpeed
	s.GravityLimit = cfg.Physics.GravityLimit
	s.InitialPaddleScale = cfg.Physics.InitialPaddleScale

	s.PaddleSpeed = cfg.Paddle.Speed
	s.PaddleWidthMin = cfg.Paddle.MinWidth
	s.PaddleWidthMax = cfg.Paddle.MaxWidth
	s.PaddleWidthStep = cfg.Paddle.WidthStep

	s.Hazard = gameplay.HazardSettings{
		SpawnDelay:    cfg.Hazard.SpawnDelay,
		AngleVariance: cfg.Hazard.AngleVariance,
		MinSpeed:      cfg.Hazard.MinSpeed,
		MinAxialSpeed: cfg.Hazard.MinAxialSpeed,
	}
	return s
}

// Step applies operator commands and steering, then advances one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	var events []string

	if in.Has(core.ActionPause) && !g.State().Ended() {
		g.paused = !g.paused
	}
	if in.Has(core.ActionRestart) {
		g.orch.Restart()
		g.paused = false
		events = append(events, EventRestart)
	}
	if in.Has(core.ActionLevelSwitch) && g.orch.SwitchLevel() {
		g.paused = false
	}
	if in.Has(core.ActionCheat) {
		g.orch.ToggleCheat()
		events = append(events, EventCheat)
	}

	if g.paused {
		return core.StepResult{State: g.State(), Events: events}
	}

	dt := g.runtime.TickSeconds()
	var dir float64
	if in.Has(core.ActionLeft) {
		dir--
	}
	if in.Has(core.ActionRight) {
		dir++
	}
	g.session.SteerPaddles(dir, dt)

	g.session.Settings.BallSpeed = g.difficulty.Speed(g.baseSpeed, g.session.Score.Current, g.session.Ticks)
	g.orch.Tick(dt)

	events = append(events, g.collectEvents()...)
	return core.StepResult{State: g.State(), Events: events}
}

// collectEvents translates this tick's signals into presentation cues.
func (g *Game) collectEvents() []string {
	bus := g.session.Bus
	var events []string
	add := func(n int, name string) {
		if n > 0 {
			events = append(events, name)
		}
	}
	add(bus.Destroyed.Len(), EventBrick)
	add(bus.Bounce.Len(), EventBounce)
	add(bus.Milestone.Len(), EventMilestone)
	add(bus.LifeAwarded.Len(), EventLife)
	add(bus.BallLost.Len(), EventBallLost)
	add(bus.HazardRequest.Len(), EventHazard)
	add(bus.HazardPenalty.Len(), EventPenalty)
	add(bus.PaddleResized.Len(), EventResize)
	add(bus.LevelStarted.Len(), EventLevel)
	add(bus.GameOver.Len(), EventGameOver)
	add(bus.Finished.Len(), EventFinished)
	return events
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.session == nil {
		return core.GameState{}
	}
	s := g.session
	score := s.Score.Current
	if score > math.MaxInt32 {
		score = math.MaxInt32
	}
	return core.GameState{
		Score:    int(score), //#nosec G115 -- clamped above
		Lives:    s.Lives.Remaining,
		Level:    s.Level.Number,
		GameOver: s.GameOver,
		Finished: s.Finished,
		Paused:   g.paused,
	}
}

// RunInfo reports the elapsed ticks and whether cheat mode is on.
func (g *Game) RunInfo() (ticks uint64, cheat bool) {
	if g.session == nil {
		return 0, false
	}
	return g.session.Ticks, g.session.Cheat
}

// CurrentLevel returns the level record the session is playing.
func (g *Game) CurrentLevel() levels.Definition {
	return g.session.Level
}

// SpawnPoints returns where the paddle and ball enter the current level.
func (g *Game) SpawnPoints() levels.SpawnPoints {
	return g.session.Spawns
}

// Session exposes the gameplay session for inspection.
func (g *Game) Session() *gameplay.Session {
	return g.session
}

func init() {
	registry.Register(GameID, func() registry.Game {
		return New()
	})
}
