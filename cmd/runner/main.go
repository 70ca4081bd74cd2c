// runner is a three lane endless runner ("Ember Run") for the terminal.
//
// Usage:
//
//	runner play              - Start a run directly
//	runner menu              - Start at the title scene
//	runner scores [scene]    - Show the run history
//	runner serve             - Start SSH server for remote play
//	runner spectate          - Stream an autopilot run over websocket
//	runner sim               - Run headless and print a summary
//	runner config dump       - Print the effective configuration
//	runner scenes            - List registered scenes
//
// Global flags:
//
//	--fps <rate>        - Set tick rate (default: 60)
//	--seed <value>      - Set RNG seed for reproducible runs
//	--db <path>         - Set database path (default: ~/.runner/runs.db)
//	--prefs-app <name>  - Per-user prefs directory name for the best score
//	--log-file <path>   - Write logs to a file ("-" for stderr)
//	--log-level <lvl>   - debug, info, warn or error
//
// Every global flag can also be set from the environment (RUNNER_FPS,
// RUNNER_SEED, RUNNER_DB, RUNNER_PREFS_APP, RUNNER_LOG_FILE,
// RUNNER_LOG_LEVEL, RUNNER_CONFIG); explicit flags win.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import scenes to register them
	_ "github.com/vovakirdan/tui-runner/internal/scenes/menu"
	_ "github.com/vovakirdan/tui-runner/internal/scenes/run"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagPrefsApp   string
	flagLogFile    string
	flagLogLevel   string
	flagConfig     string
	flagDifficulty string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "runner",
	Short: "Ember Run - a three lane endless runner in your terminal",
	Long: `Ember Run is a terminal endless runner: switch between three lanes,
jump over lava and dodge fire walls while the volcano streams past.

Available commands:
  play      - Start a run directly
  menu      - Start at the title scene
  scores    - View the run history
  serve     - Start SSH server for remote play
  spectate  - Stream an autopilot run to websocket viewers
  sim       - Run headless (optionally with the autopilot)
  config    - Inspect the configuration
  scenes    - List registered scenes

Examples:
  runner play
  runner play --difficulty hard
  runner menu --fps 30
  runner serve --ssh :2222
  runner sim --ticks 3600 --autopilot --seed 42`,
	SilenceUsage:      true,
	PersistentPreRunE: applyEnv,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	pf.Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	pf.StringVar(&flagDBPath, "db", "~/.runner/runs.db", "Path to runs database")
	pf.StringVar(&flagPrefsApp, "prefs-app", "tui-runner", "Prefs directory name for the best score")
	pf.StringVar(&flagLogFile, "log-file", "", `Log file ("-" for stderr, empty for the command default)`)
	pf.StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	pf.StringVar(&flagConfig, "config", "", "Path to custom runner config YAML")
	pf.StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(spectateCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(scenesCmd)
}
