package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/brickfall/internal/core"
	"github.com/vovakirdan/brickfall/internal/games/breakout"
	"github.com/vovakirdan/brickfall/internal/platform/logging"
	"github.com/vovakirdan/brickfall/internal/platform/tui"
	"github.com/vovakirdan/brickfall/internal/registry"
	"github.com/vovakirdan/brickfall/internal/storage"
)

const defaultLogFile = "~/.brickfall/brickfall.log"

var flagLevel int

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play brickfall",
	Long: `Pick a starting level from the menu and play.

Controls:
  Left/Right, A/D  - Move paddle
  P                - Pause
  R                - Restart the current level from scratch
  N                - Switch to the next level
  C                - Toggle cheat mode (refills lives, revives after game over)
  Esc              - Back to menu
  Q/Ctrl+C         - Quit

Difficulty options:
  easy   - Ball speed starts low and ramps to max
  normal - Ball speed starts at 30% of the ramp
  hard   - Ball speed starts at 70% of the ramp
  fixed  - No ramp, the configured speed is used throughout

Logs go to $BRICKFALL_LOG_FILE or ~/.brickfall/brickfall.log while the
game owns the terminal.

Examples:
  brickfall play
  brickfall play --level 2
  brickfall play --difficulty hard --seed 42
  brickfall play --config ./my-brickfall.yaml`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().IntVar(&flagLevel, "level", 0, "Start on this level and skip the menu")
}

func runPlay(_ *cobra.Command, _ []string) {
	// The TUI owns stderr, so logs go to a file.
	logPath := envCfg.LogFile
	if logPath == "" {
		logPath = defaultLogFile
	}
	fileLogger, closer, logErr := logging.OpenFile(logPath, envCfg.LogLevel, "brickfall")
	if logErr != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", logErr)
		useLogger(logging.Discard())
	} else {
		useLogger(fileLogger)
		defer closeQuietly(closer)
	}

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	// Open score storage
	store, err := storage.Open(envCfg.DB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		// Continue without storage - game still works
		store = nil
	}

	runErr := playLoop(store, cfg)

	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}

// playLoop alternates between the menu, the scoreboard and the game until
// the player quits. --level skips the first menu.
func playLoop(store *storage.Store, cfg core.RuntimeConfig) error {
	level := flagLevel
	for {
		if level <= 0 {
			loader, err := openLevels()
			if err != nil {
				return err
			}
			res, err := tui.RunMenu(store, breakout.GameID, levelInfos(loader), cfg)
			if err != nil {
				return err
			}
			cfg = res.Config
			switch {
			case res.Quit:
				return nil
			case res.WantsScoreboard:
				goBack, err := tui.RunScoreboard(store, breakout.GameID, "Brickfall", cfg.ScreenW, cfg.ScreenH)
				if err != nil {
					return err
				}
				if !goBack {
					return nil
				}
				continue
			}
			level = res.Level
		}

		game, err := registry.Create(breakout.GameID)
		if err != nil {
			return err
		}
		logger.Info("game started", "level", level, "seed", cfg.Seed)
		backToMenu, err := tui.Run(game, store, cfg, level, logger)
		if err != nil || !backToMenu {
			return err
		}
		level = 0
	}
}

func closeQuietly(c io.Closer) {
	//nolint:errcheck // Best-effort close
	c.Close()
}
