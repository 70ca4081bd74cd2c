package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-runner/internal/platform/tui"
	"github.com/vovakirdan/tui-runner/internal/registry"
	"github.com/vovakirdan/tui-runner/internal/storage"
)

var (
	flagScoresInteractive bool
	flagScoresLimit       int
	flagScoresClear       bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [scene]",
	Short: "Show the run history",
	Long: `Display the best runs recorded for a scene (default: run).

Examples:
  runner scores
  runner scores --limit 20
  runner scores --interactive
  runner scores --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().BoolVarP(&flagScoresInteractive, "interactive", "i", false, "Browse runs in a table")
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of runs to show")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete the recorded runs")
}

func runScores(_ *cobra.Command, args []string) {
	sceneID := "run"
	if len(args) == 1 {
		sceneID = args[0]
	}
	if !registry.Exists(sceneID) {
		fatalf("unknown scene %q (run 'runner scenes' to list them)", sceneID)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fatalf("opening runs database: %v", err)
	}
	defer store.Close()

	if flagScoresClear {
		if err := store.ClearRuns(sceneID); err != nil {
			fatalf("%v", err)
		}
		fmt.Printf("Cleared runs for %s.\n", sceneID)
		return
	}

	if flagScoresInteractive {
		cfg := runtimeConfig()
		if _, err := tui.RunScoreboard(store, sceneID, cfg.ScreenW, cfg.ScreenH); err != nil {
			fatalf("%v", err)
		}
		return
	}

	runs, err := store.TopRuns(sceneID, flagScoresLimit)
	if err != nil {
		fatalf("retrieving runs: %v", err)
	}

	fmt.Printf("Best runs - %s\n", sceneID)
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Play 'runner play' to set the first high score!")
		return
	}

	fmt.Printf("  %-4s  %-8s  %-9s  %-8s  %s\n", "Rank", "Score", "Distance", "Time", "Date")
	fmt.Printf("  %-4s  %-8s  %-9s  %-8s  %s\n", "----", "-----", "--------", "----", "----")
	for i, r := range runs {
		fmt.Printf("  %-4d  %-8d  %-9s  %-8s  %s\n", i+1, r.Score,
			fmt.Sprintf("%.0fm", r.Distance),
			fmt.Sprintf("%.1fs", r.Duration),
			r.CreatedAt.Format("2006-01-02 15:04"))
	}

	if stats, err := store.Stats(sceneID); err == nil {
		fmt.Println()
		fmt.Printf("Runs: %d  Best: %d  Average: %.0f  Total distance: %.0fm\n",
			stats.Runs, stats.HighScore, stats.AvgScore, stats.TotalDistance)
	}
}
