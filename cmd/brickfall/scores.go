package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/brickfall/internal/games/breakout"
	"github.com/vovakirdan/brickfall/internal/storage"
)

var (
	flagScoresLimit int
	flagClear       bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show high scores and recent runs",
	Long: `Display the top high scores, the most recent runs and overall stats.

Examples:
  brickfall scores
  brickfall scores --limit 20
  brickfall scores --clear`,
	Args: cobra.NoArgs,
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of rows to show")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete all recorded scores and runs")
}

func runScores(_ *cobra.Command, _ []string) {
	store, err := storage.Open(envCfg.DB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	gameID := breakout.GameID

	if flagClear {
		if err := store.ClearScores(gameID); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing scores: %v\n", err)
			return
		}
		fmt.Println("Scores cleared.")
		return
	}

	scores, err := store.TopScores(gameID, flagScoresLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		return
	}

	fmt.Println("High Scores - Brickfall")
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Println("Play 'brickfall play' to set the first high score!")
		return
	}

	fmt.Printf("  %-4s  %-10s  %s\n", "Rank", "Score", "Date")
	fmt.Printf("  %-4s  %-10s  %s\n", "----", "-----", "----")
	for i, entry := range scores {
		fmt.Printf("  %-4d  %-10d  %s\n", i+1, entry.Score, entry.CreatedAt.Format("2006-01-02 15:04"))
	}

	runs, err := store.RecentRuns(gameID, flagScoresLimit)
	if err == nil && len(runs) > 0 {
		fmt.Println()
		fmt.Println("Recent runs")
		fmt.Println()
		fmt.Printf("  %-10s  %-7s  %-9s  %-5s  %s\n", "Score", "Levels", "Outcome", "Cheat", "Date")
		fmt.Printf("  %-10s  %-7s  %-9s  %-5s  %s\n", "-----", "------", "-------", "-----", "----")
		for _, r := range runs {
			cheat := ""
			if r.Cheat {
				cheat = "yes"
			}
			levelsPlayed := fmt.Sprintf("%d-%d", r.StartLevel, r.Level)
			fmt.Printf("  %-10d  %-7s  %-9s  %-5s  %s\n", r.Score, levelsPlayed, r.Outcome, cheat, r.CreatedAt.Format("2006-01-02 15:04"))
		}
	}

	if stats, err := store.GetGameStats(gameID); err == nil {
		fmt.Println()
		fmt.Printf("Best: %d  Games: %d  Average: %.0f  Best level: %d  Finished runs: %d\n",
			stats.HighScore, stats.GamesCount, stats.AvgScore, stats.BestLevel, stats.RunsFinished)
	}
}
