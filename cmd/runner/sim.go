package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-runner/internal/core"
	"github.com/vovakirdan/tui-runner/internal/scenes/run"
	"github.com/vovakirdan/tui-runner/internal/storage"
)

var (
	flagSimTicks     int
	flagSimAutopilot bool
	flagSimRestart   bool
	flagSimRecord    bool
	flagSimJSON      bool
	flagSimFrame     bool
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Run headless and print a summary",
	Long: `Simulate a run as fast as possible without a terminal UI.
With the same --seed and inputs, two simulations produce the same run.

Examples:
  runner sim --ticks 3600 --autopilot --seed 42
  runner sim --autopilot --restart --record --ticks 36000
  runner sim --autopilot --json | jq .score`,
	Args: cobra.NoArgs,
	Run:  runSim,
}

func init() {
	simCmd.Flags().IntVar(&flagSimTicks, "ticks", 3600, "Number of ticks to simulate")
	simCmd.Flags().BoolVar(&flagSimAutopilot, "autopilot", false, "Drive the player with the autopilot")
	simCmd.Flags().BoolVar(&flagSimRestart, "restart", false, "Restart after game over instead of stopping")
	simCmd.Flags().BoolVar(&flagSimRecord, "record", false, "Save finished runs to the database")
	simCmd.Flags().BoolVar(&flagSimJSON, "json", false, "Print the final snapshot as JSON")
	simCmd.Flags().BoolVar(&flagSimFrame, "frame", false, "Print the final rendered frame")
}

func runSim(_ *cobra.Command, _ []string) {
	logger, closer, err := newLogger("-")
	if err != nil {
		fatalf("%v", err)
	}
	defer closer.Close()

	cfg, err := loadConfig()
	if err != nil {
		fatalf("%v", err)
	}

	var store *storage.Store
	if flagSimRecord {
		store, err = storage.Open(flagDBPath)
		if err != nil {
			fatalf("opening runs database: %v", err)
		}
		defer store.Close()
	}

	rt := core.DefaultConfig()
	rt.TickRate = flagFPS
	rt.Seed = flagSeed
	if rt.Seed == 0 {
		rt.Seed = time.Now().UnixNano()
	}

	game := run.New(sceneEnv(cfg, logger))
	game.Reset(rt)
	bot := run.Autopilot{Restart: flagSimRestart}

	runs := 0
	wasOver := false
	for i := 0; i < flagSimTicks; i++ {
		in := core.NewInputFrame()
		if flagSimAutopilot {
			in = bot.Input(game)
		}
		st := game.Step(in).State

		if st.GameOver && !wasOver {
			runs++
			logger.Info("run finished", "run", runs, "score", st.Score, "distance", int(st.Distance))
			if store != nil {
				if _, err := store.SaveRun(storage.RunRecord{
					SceneID:  game.ID(),
					Score:    st.Score,
					Distance: st.Distance,
					Duration: st.Elapsed,
					Seed:     rt.Seed,
				}); err != nil {
					logger.Warn("could not save run", "error", err)
				}
			}
			if !flagSimRestart {
				break
			}
		}
		wasOver = st.GameOver
	}

	var screen *core.Screen
	if flagSimFrame || flagSimJSON {
		screen = core.NewScreen(rt.ScreenW, rt.ScreenH)
	}
	snap := game.Snapshot(screen)

	if flagSimJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(snap); err != nil {
			fatalf("%v", err)
		}
		return
	}

	if flagSimFrame {
		fmt.Println(snap.Frame)
	}
	fmt.Printf("seed:      %d\n", rt.Seed)
	fmt.Printf("ticks:     %d\n", snap.Tick)
	fmt.Printf("score:     %d (best %d)\n", snap.Score, snap.Best)
	fmt.Printf("distance:  %.1fm\n", snap.Distance)
	fmt.Printf("lives:     %d\n", snap.Lives)
	fmt.Printf("game over: %v\n", snap.GameOver)
	if flagSimRestart {
		fmt.Printf("runs:      %d\n", runs)
	}
}
