package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-runner/internal/core"
	"github.com/vovakirdan/tui-runner/internal/platform/spectate"
	"github.com/vovakirdan/tui-runner/internal/scenes/run"
)

var (
	flagSpectateAddr  string
	flagSpectateTicks int
	flagSpectateEvery int
)

var spectateCmd = &cobra.Command{
	Use:   "spectate",
	Short: "Stream an autopilot run to websocket viewers",
	Long: `Run the autopilot in real time and broadcast JSON snapshots (including
a rendered text frame) to every client connected to /ws.

Examples:
  runner spectate
  runner spectate --addr :8080 --ticks 7200
  websocat ws://localhost:8080/ws`,
	Args: cobra.NoArgs,
	Run:  runSpectate,
}

func init() {
	spectateCmd.Flags().StringVar(&flagSpectateAddr, "addr", ":8080", "HTTP listen address")
	spectateCmd.Flags().IntVar(&flagSpectateTicks, "ticks", 0, "Stop after this many ticks (0 = until interrupted)")
	spectateCmd.Flags().IntVar(&flagSpectateEvery, "every", 2, "Broadcast one snapshot every N ticks")
}

func runSpectate(_ *cobra.Command, _ []string) {
	logger, closer, err := newLogger("-")
	if err != nil {
		fatalf("%v", err)
	}
	defer closer.Close()

	cfg, err := loadConfig()
	if err != nil {
		fatalf("%v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	hub := spectate.NewHub(logger.WithPrefix("hub"))
	serveErr := make(chan error, 1)
	go func() {
		serveErr <- spectate.Serve(ctx, flagSpectateAddr, hub, logger)
	}()

	rt := core.DefaultConfig()
	rt.TickRate = flagFPS
	rt.Seed = flagSeed
	if rt.Seed == 0 {
		rt.Seed = time.Now().UnixNano()
	}

	runner := &spectate.Runner{
		Game:           run.New(sceneEnv(cfg, logger)),
		Hub:            hub,
		Bot:            run.Autopilot{Restart: true},
		Runtime:        rt,
		BroadcastEvery: flagSpectateEvery,
		Logger:         logger,
	}

	fmt.Printf("Spectate at ws://localhost%s/ws (seed %d)\n", flagSpectateAddr, rt.Seed)
	runErr := runner.Run(ctx, flagSpectateTicks)
	stop()

	if err := <-serveErr; err != nil {
		fatalf("spectator server: %v", err)
	}
	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		fatalf("%v", runErr)
	}
}
