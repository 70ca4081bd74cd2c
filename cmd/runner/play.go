package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-runner/internal/platform/tui"
	"github.com/vovakirdan/tui-runner/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start a run",
	Long: `Start a run directly, skipping the title scene.

Controls:
  Left/A/H, Right/D/L  - Change lane
  Space/Up/W           - Jump
  P                    - Pause
  R                    - Restart (after game over)
  M/Esc                - Back to the title (paused or game over)
  Ctrl+S               - Save a text screenshot
  Q/Ctrl+C             - Quit

Difficulty options:
  easy   - 5 lives, lower top speed, progression from the lowest level
  normal - Starts at 30% difficulty
  hard   - 2 lives, shorter invincibility, starts at 70% difficulty
  fixed  - No progression

Examples:
  runner play
  runner play --difficulty hard
  runner play --config ./my-runner.yaml --seed 42`,
	Args: cobra.NoArgs,
	Run: func(_ *cobra.Command, _ []string) {
		runScene("run")
	},
}

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start at the title scene",
	Long: `Start at the title scene. Walk into the portal or press Enter to
start a run; after a run, M or Esc returns to the title.

Examples:
  runner menu
  runner menu --fps 30
  runner menu --db ./runs.db`,
	Args: cobra.NoArgs,
	Run: func(_ *cobra.Command, _ []string) {
		runScene("menu")
	},
}

// runScene runs the terminal UI starting at scene.
func runScene(scene string) {
	logger, closer, err := newLogger("")
	if err != nil {
		fatalf("%v", err)
	}
	defer closer.Close()

	cfg, err := loadConfig()
	if err != nil {
		fatalf("%v", err)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open runs database: %v\n", err)
		// Continue without storage - the run still works
		store = nil
	}

	runErr := tui.Run(tui.Options{
		Env:     sceneEnv(cfg, logger),
		Store:   store,
		Runtime: runtimeConfig(),
		Scene:   scene,
	})

	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fatalf("running scene: %v", runErr)
	}
}
