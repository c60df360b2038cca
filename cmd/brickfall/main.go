// brickfall is a terminal brick breaker with gravity bricks, hazards and
// per-level gravity, playable locally or over SSH.
//
// Usage:
//
//	brickfall play              - Pick a level and play
//	brickfall play --level 2    - Skip the menu and start on level 2
//	brickfall serve             - Start SSH server for remote play
//	brickfall levels            - List available levels
//	brickfall levels show <n>   - Print a normalized level definition
//	brickfall scores            - Show high scores and recent runs
//
// Global flags:
//
//	--fps <rate>        - Set tick rate (default: 60)
//	--seed <value>      - Set RNG seed for reproducible gameplay
//	--db <path>         - Set database path (default: ~/.brickfall/scores.db)
//	--config <path>     - Load a custom game config YAML
//	--difficulty <name> - Difficulty preset: easy, normal, hard, fixed
//	--log-level <level> - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/brickfall/internal/config"
	"github.com/vovakirdan/brickfall/internal/games/breakout"
	"github.com/vovakirdan/brickfall/internal/platform/logging"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLogLevel   string
)

// Resolved by the root command before any subcommand runs.
var (
	envCfg config.Env
	logger = logging.Discard()
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "brickfall",
	Short: "Brickfall - a brick breaker for your terminal",
	Long: `Brickfall is a terminal brick breaker. Clear every required brick to
advance. Gravity bricks bend the ball's path, hazard bricks release
projectiles that cost a life when they reach your paddle, and some bricks
grant extra lives.

Available commands:
  play     - Pick a level and play
  serve    - Start SSH server for remote play
  levels   - List or inspect levels
  scores   - View high scores and recent runs

Environment:
  BRICKFALL_CONFIG, BRICKFALL_LEVELS_DIR, BRICKFALL_START_LIVES,
  BRICKFALL_MAX_LIVES, BRICKFALL_LOG_LEVEL, BRICKFALL_LOG_FILE, BRICKFALL_DB

Examples:
  brickfall play
  brickfall play --level 3 --difficulty hard
  brickfall serve --ssh :2222
  brickfall scores`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to scores database (default $BRICKFALL_DB or ~/.brickfall/scores.db)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(scoresCmd)
}

// setup reads the environment and hands overrides to the game package.
// Flags win over environment variables.
func setup(_ *cobra.Command, _ []string) error {
	e, err := config.LoadEnv()
	if err != nil {
		return err
	}
	if flagConfig != "" {
		e.Config = flagConfig
	}
	if flagDBPath != "" {
		e.DB = flagDBPath
	}
	if flagLogLevel != "" {
		e.LogLevel = flagLogLevel
	}
	envCfg = e

	logger = logging.New(os.Stderr, e.LogLevel, "brickfall")
	if flagDifficulty != "" && config.ParsePreset(flagDifficulty) == "" {
		logger.Warn("unknown difficulty preset, ignoring", "preset", flagDifficulty)
	}

	breakout.SetConfigPath(e.Config)
	breakout.SetDifficultyPreset(flagDifficulty)
	breakout.SetEnv(e)
	breakout.SetLogger(logger)
	return nil
}

// useLogger swaps the logger used by commands and new game sessions.
func useLogger(l *log.Logger) {
	logger = l
	breakout.SetLogger(l)
}

// loadConfig resolves the game config the same way a game reset does.
func loadConfig() config.BreakoutConfig {
	cfg, err := config.LoadBreakout(envCfg.Config)
	if err != nil {
		logger.Warn("config load failed, using defaults", "path", envCfg.Config, "err", err)
		cfg = config.DefaultBreakoutConfig()
	}
	if preset := config.ParsePreset(flagDifficulty); preset != "" {
		config.ApplyBreakoutPreset(&cfg, preset)
	}
	envCfg.Apply(&cfg)
	return cfg
}
