// Package config provides YAML-based game configuration loading, environment
// overrides and difficulty management for brickfall.
package config

// BreakoutConfig contains all configuration for the game.
type BreakoutConfig struct {
	Gameplay   BreakoutGameplay `yaml:"gameplay"`
	Timing     BreakoutTiming   `yaml:"timing"`
	Physics    BreakoutPhysics  `yaml:"physics"`
	Paddle     BreakoutPaddle   `yaml:"paddle"`
	Hazard     BreakoutHazard   `yaml:"hazard"`
	Levels     BreakoutLevels   `yaml:"levels"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// BreakoutGameplay defines lives and scoring.
type BreakoutGameplay struct {
	StartLives    int    `yaml:"start_lives"`
	MaxLives      int    `yaml:"max_lives"`
	MilestoneStep uint64 `yaml:"milestone_step"`
}

// BreakoutTiming defines the respawn and level transition durations in seconds.
type BreakoutTiming struct {
	RespawnDelay  float64 `yaml:"respawn_delay"`
	RespawnGrowth float64 `yaml:"respawn_growth"`
	LevelDelay    float64 `yaml:"level_delay"`
	LevelGrowth   float64 `yaml:"level_growth"`
}

// BreakoutPhysics defines physics parameters, in field cells per second.
type BreakoutPhysics struct {
	BallSpeed          float64 `yaml:"ball_speed"`
	MaxBallSpeed       float64 `yaml:"max_ball_speed"`
	GravityLimit       float64 `yaml:"gravity_limit"`
	InitialPaddleScale float64 `yaml:"initial_paddle_scale"`
	Substeps           int     `yaml:"substeps"`
}

// BreakoutPaddle defines paddle steering and resize limits.
type BreakoutPaddle struct {
	Speed     float64 `yaml:"speed"`
	MinWidth  float64 `yaml:"min_width"`
	MaxWidth  float64 `yaml:"max_width"`
	WidthStep float64 `yaml:"width_step"`
}

// BreakoutHazard defines hazard spawn parameters.
type BreakoutHazard struct {
	SpawnDelay    float64 `yaml:"spawn_delay"`
	AngleVariance float64 `yaml:"angle_variance"` // degrees
	MinSpeed      float64 `yaml:"min_speed"`
	MinAxialSpeed float64 `yaml:"min_axial_speed"`
}

// BreakoutLevels selects where levels come from.
type BreakoutLevels struct {
	Dir   string `yaml:"dir"` // empty means the embedded levels
	Start int    `yaml:"start"`
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over time.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "time", or "none"
	MaxAt int    `yaml:"max_at"` // Score/ticks at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier float64 `yaml:"speed_multiplier"` // Multiplier added to ball speed at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset maps a CLI value to a preset; unknown values yield "".
func ParsePreset(s string) DifficultyPreset {
	switch p := DifficultyPreset(s); p {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p
	default:
		return ""
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}
