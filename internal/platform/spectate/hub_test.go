package spectate

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/vovakirdan/tui-runner/internal/config"
	"github.com/vovakirdan/tui-runner/internal/core"
	"github.com/vovakirdan/tui-runner/internal/registry"
	"github.com/vovakirdan/tui-runner/internal/scenes/run"
)

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		if resp != nil {
			resp.Body.Close()
		}
		t.Fatalf("failed to open websocket connection: %v", err)
	}
	t.Cleanup(func() {
		conn.Close()
		if resp != nil {
			resp.Body.Close()
		}
	})
	return conn
}

func waitViewers(t *testing.T, hub *Hub, n int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for hub.Viewers() != n {
		if time.Now().After(deadline) {
			t.Fatalf("viewers = %d, want %d", hub.Viewers(), n)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func readSnapshot(t *testing.T, conn *websocket.Conn) run.Snapshot {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, payload, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("failed to read snapshot: %v", err)
	}
	var snap run.Snapshot
	if err := json.Unmarshal(payload, &snap); err != nil {
		t.Fatalf("invalid snapshot payload: %v", err)
	}
	return snap
}

func TestHubSendsLatestOnJoin(t *testing.T) {
	hub := NewHub(nil)
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", hub.Handle)
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	if err := hub.Broadcast(run.Snapshot{Tick: 7, Score: 70}); err != nil {
		t.Fatalf("Broadcast() failed: %v", err)
	}

	conn := dial(t, srv)
	if snap := readSnapshot(t, conn); snap.Tick != 7 || snap.Score != 70 {
		t.Fatalf("initial snapshot = %+v", snap)
	}

	waitViewers(t, hub, 1)
	hub.Broadcast(run.Snapshot{Tick: 8})
	if snap := readSnapshot(t, conn); snap.Tick != 8 {
		t.Fatalf("broadcast snapshot tick = %d, want 8", snap.Tick)
	}
}

func TestHubDropsClosedViewers(t *testing.T) {
	hub := NewHub(nil)
	srv := httptest.NewServer(http.HandlerFunc(hub.Handle))
	t.Cleanup(srv.Close)

	conn := dial(t, srv)
	waitViewers(t, hub, 1)

	conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	conn.Close()
	waitViewers(t, hub, 0)
}

func TestRunnerBroadcastsRun(t *testing.T) {
	hub := NewHub(nil)
	srv := httptest.NewServer(http.HandlerFunc(hub.Handle))
	t.Cleanup(srv.Close)

	game := run.New(registry.Env{Config: config.DefaultRunnerConfig()})
	r := &Runner{
		Game:           game,
		Hub:            hub,
		Runtime:        core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 1000, Seed: 3},
		BroadcastEvery: 5,
	}

	if err := r.Run(context.Background(), 50); err != nil {
		t.Fatalf("Run() failed: %v", err)
	}
	if game.Tick() != 50 {
		t.Fatalf("ticks = %d, want 50", game.Tick())
	}

	conn := dial(t, srv)
	snap := readSnapshot(t, conn)
	if snap.Tick != 46 {
		t.Fatalf("latest snapshot tick = %d, want 46", snap.Tick)
	}
	if snap.Frame == "" {
		t.Fatal("snapshot has no frame")
	}
}

func TestRunnerStopsOnCancel(t *testing.T) {
	game := run.New(registry.Env{Config: config.DefaultRunnerConfig()})
	r := &Runner{Game: game, Hub: NewHub(nil), Runtime: core.DefaultConfig()}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := r.Run(ctx, 0); err != context.Canceled {
		t.Fatalf("Run() = %v, want context.Canceled", err)
	}
}
