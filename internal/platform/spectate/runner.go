package spectate

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-runner/internal/core"
	"github.com/vovakirdan/tui-runner/internal/logging"
	"github.com/vovakirdan/tui-runner/internal/scenes/run"
)

// Runner drives a run scene with the autopilot on a wall-clock ticker and
// broadcasts its snapshots.
type Runner struct {
	Game    *run.Game
	Hub     *Hub
	Bot     run.Autopilot
	Runtime core.RuntimeConfig

	// BroadcastEvery sends one snapshot every N ticks (0 or 1 = every tick).
	BroadcastEvery int
	Logger         *log.Logger
}

// Run resets the scene and ticks it until ctx is done or maxTicks ticks have
// run (0 = no limit).
func (r *Runner) Run(ctx context.Context, maxTicks int) error {
	logger := logging.OrDiscard(r.Logger)
	rate := r.Runtime.TickRate
	if rate <= 0 {
		rate = 60
	}
	every := r.BroadcastEvery
	if every <= 0 {
		every = 1
	}

	r.Game.Reset(r.Runtime)
	screen := core.NewScreen(r.Runtime.ScreenW, r.Runtime.ScreenH)

	ticker := time.NewTicker(time.Second / time.Duration(rate))
	defer ticker.Stop()

	for ticks := 0; maxTicks <= 0 || ticks < maxTicks; ticks++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}

		r.Game.Step(r.Bot.Input(r.Game))

		if ticks%every == 0 {
			if err := r.Hub.Broadcast(r.Game.Snapshot(screen)); err != nil {
				logger.Error("broadcast failed", "error", err)
			}
		}
	}

	st := r.Game.State()
	logger.Info("spectated run finished", "ticks", maxTicks, "score", st.Score, "lives", st.Lives)
	return nil
}

// Serve exposes the hub on addr at /ws until ctx is done.
func Serve(ctx context.Context, addr string, hub *Hub, logger *log.Logger) error {
	logger = logging.OrDiscard(logger)

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", hub.Handle)
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Write([]byte("ember run spectator: connect a websocket client to /ws\n"))
	})

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("spectator server listening", "address", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	hub.Close()
	return srv.Shutdown(shutdownCtx)
}
