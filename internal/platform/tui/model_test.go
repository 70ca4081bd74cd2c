package tui

import (
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-runner/internal/config"
	"github.com/vovakirdan/tui-runner/internal/core"
	"github.com/vovakirdan/tui-runner/internal/registry"
	_ "github.com/vovakirdan/tui-runner/internal/scenes/menu"
	_ "github.com/vovakirdan/tui-runner/internal/scenes/run"
	"github.com/vovakirdan/tui-runner/internal/storage"
)

func newTestModel(t *testing.T, scene string, cfg config.RunnerConfig, store *storage.Store) Model {
	t.Helper()
	m, err := NewModel(Options{
		Env:           registry.Env{Config: cfg},
		Store:         store,
		Scene:         scene,
		Runtime:       core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 11},
		ScreenshotDir: t.TempDir(),
	})
	if err != nil {
		t.Fatalf("NewModel() failed: %v", err)
	}
	m.Init()
	return m
}

func send(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	model, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return model
}

func TestNewModelUnknownScene(t *testing.T) {
	_, err := NewModel(Options{Scene: "nope"})
	if err == nil {
		t.Fatal("expected an error for an unknown scene")
	}
}

func TestMenuConfirmLoadsRun(t *testing.T) {
	m := newTestModel(t, "menu", config.DefaultRunnerConfig(), nil)

	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = send(t, m, TickMsg{})

	if got := m.Scene().ID(); got != "run" {
		t.Fatalf("scene = %q, want run", got)
	}
	if m.View() == "" {
		t.Fatal("empty view")
	}
}

func TestQuitKey(t *testing.T) {
	m := newTestModel(t, "menu", config.DefaultRunnerConfig(), nil)

	next, cmd := m.Update(runeKey('q'))
	if cmd == nil {
		t.Fatal("quit key returned no command")
	}
	if next.(Model).View() != "" {
		t.Fatal("view not cleared after quit")
	}
}

func TestGameOverSavesRunOnceAndBack(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	cfg := config.DefaultRunnerConfig()
	cfg.Health.MaxLives = 1
	cfg.Health.StartInvincibility = 0
	cfg.Obstacles.SpawnChance = 1
	// Every obstacle lands in the player's lane.
	cfg.Obstacles.LanePositions = []float64{0, 0, 0}

	m := newTestModel(t, "run", cfg, store)
	for i := 0; i < 3000 && !m.gameState.GameOver; i++ {
		m = send(t, m, TickMsg{})
	}
	if !m.gameState.GameOver {
		t.Fatal("run never ended")
	}

	// Further ticks must not save the same run again.
	for i := 0; i < 10; i++ {
		m = send(t, m, TickMsg{})
	}

	runs, err := store.TopRuns("run", 10)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("saved %d runs, want 1", len(runs))
	}
	if runs[0].Seed != 11 || runs[0].Distance <= 0 {
		t.Errorf("saved run = %+v", runs[0])
	}

	m = send(t, m, runeKey('m'))
	m = send(t, m, TickMsg{})
	if got := m.Scene().ID(); got != "menu" {
		t.Fatalf("scene = %q after back, want menu", got)
	}
}

func TestScreenshot(t *testing.T) {
	dir := t.TempDir()
	m, err := NewModel(Options{
		Env:           registry.Env{Config: config.DefaultRunnerConfig()},
		Scene:         "menu",
		Runtime:       core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 1},
		ScreenshotDir: dir,
	})
	if err != nil {
		t.Fatalf("NewModel() failed: %v", err)
	}
	m.Init()
	send(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})

	files, _ := filepath.Glob(filepath.Join(dir, "menu_*.txt"))
	if len(files) != 1 {
		t.Fatalf("screenshots = %v", files)
	}
}
