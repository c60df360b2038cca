package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/brickfall/internal/games/breakout/levels"
	"github.com/vovakirdan/brickfall/internal/platform/tui"
)

var flagLevelsDir string

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List available levels",
	Long: `Shows every level the game can load, with the number of bricks that
must be destroyed to clear it and its gravity override.

Levels come from --levels-dir, $BRICKFALL_LEVELS_DIR, the levels.dir
config key, or the built-in set, in that order.

Examples:
  brickfall levels
  brickfall levels --levels-dir ./my-levels
  brickfall levels show 2`,
	Args: cobra.NoArgs,
	Run:  runLevels,
}

var levelsShowCmd = &cobra.Command{
	Use:   "show <n>",
	Short: "Print a level as normalized YAML",
	Args:  cobra.ExactArgs(1),
	Run:   runLevelsShow,
}

func init() {
	levelsCmd.PersistentFlags().StringVar(&flagLevelsDir, "levels-dir", "", "Directory containing levelN.yaml files")
	levelsCmd.AddCommand(levelsShowCmd)
}

// openLevels returns the loader a game would use with the current flags,
// environment and config.
func openLevels() (*levels.Loader, error) {
	dir := flagLevelsDir
	if dir == "" {
		dir = loadConfig().Levels.Dir
	}
	if dir == "" {
		return levels.EmbeddedLoader(logger), nil
	}
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("levels directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("levels directory: %s is not a directory", dir)
	}
	return levels.DirLoader(dir, logger), nil
}

// levelInfos summarizes every loadable level for the menu.
func levelInfos(l *levels.Loader) []tui.LevelInfo {
	nums := l.Numbers()
	out := make([]tui.LevelInfo, 0, len(nums))
	for _, n := range nums {
		def, _, err := l.Read(n)
		if err != nil {
			logger.Warn("skipping level", "level", n, "err", err)
			continue
		}
		info := tui.LevelInfo{Number: n, Bricks: def.CompletionCount()}
		if def.Gravity != nil {
			g := *def.Gravity
			info.Gravity = fmt.Sprintf("(%g, %g, %g)", g.X, g.Y, g.Z)
		}
		out = append(out, info)
	}
	return out
}

func runLevels(_ *cobra.Command, _ []string) {
	loader, err := openLevels()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	infos := levelInfos(loader)
	if len(infos) == 0 {
		fmt.Println("No levels available.")
		return
	}

	fmt.Println("Available levels:")
	fmt.Println()
	fmt.Printf("  %-5s  %-6s  %s\n", "Level", "Bricks", "Gravity")
	fmt.Printf("  %-5s  %-6s  %s\n", "-----", "------", "-------")
	for _, info := range infos {
		gravity := info.Gravity
		if gravity == "" {
			gravity = "-"
		}
		fmt.Printf("  %-5d  %-6d  %s\n", info.Number, info.Bricks, gravity)
	}

	fmt.Println()
	fmt.Println("Run 'brickfall play --level <n>' to start on a level.")
}

func runLevelsShow(_ *cobra.Command, args []string) {
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 0 {
		fmt.Fprintf(os.Stderr, "Error: invalid level number %q\n", args[0])
		os.Exit(1)
	}

	loader, err := openLevels()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	def, warnings, err := loader.Read(n)
	if err != nil {
		if errors.Is(err, levels.ErrLevelNotFound) {
			fmt.Fprintf(os.Stderr, "Error: level %d not found\n", n)
		} else {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
	for _, w := range warnings {
		fmt.Fprintf(os.Stderr, "warning: %s\n", w)
	}

	data, err := levels.MarshalYAML(def)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	os.Stdout.Write(data) //nolint:errcheck // Stdout
	fmt.Printf("# %d bricks to clear\n", def.CompletionCount())
}
