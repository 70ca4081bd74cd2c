package storage

import (
	"fmt"
	"testing"
	"time"

	"github.com/vovakirdan/tui-runner/internal/config"
	"github.com/vovakirdan/tui-runner/internal/score"
)

var _ score.BestStore = (*Prefs)(nil)

func TestMemoryPrefs(t *testing.T) {
	p := MemoryPrefs("run")

	best, err := p.BestScore()
	if err != nil || best != 0 {
		t.Fatalf("BestScore() = %d, %v; want 0, nil", best, err)
	}

	if err := p.SetBestScore(420); err != nil {
		t.Fatalf("SetBestScore() failed: %v", err)
	}
	if best, _ := p.BestScore(); best != 420 {
		t.Errorf("BestScore() = %d, want 420", best)
	}
}

func TestGdataPrefs(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_DATA_HOME", home)
	t.Setenv("XDG_CONFIG_HOME", home)

	app := fmt.Sprintf("runner_test_%d", time.Now().UnixNano())
	p, err := OpenPrefs(app, "run")
	if err != nil {
		t.Skipf("gdata unavailable: %v", err)
	}

	if best, err := p.BestScore(); err != nil || best != 0 {
		t.Fatalf("BestScore() = %d, %v; want 0, nil", best, err)
	}
	if err := p.SetBestScore(1500); err != nil {
		t.Fatalf("SetBestScore() failed: %v", err)
	}

	reopened, err := OpenPrefs(app, "run")
	if err != nil {
		t.Fatalf("OpenPrefs() failed: %v", err)
	}
	if best, _ := reopened.BestScore(); best != 1500 {
		t.Errorf("BestScore() after reopen = %d, want 1500", best)
	}

	other, _ := OpenPrefs(app, "menu")
	if best, _ := other.BestScore(); best != 0 {
		t.Errorf("Best score leaked across scenes: %d", best)
	}
}

func TestPrefsWithScoreManager(t *testing.T) {
	p := MemoryPrefs("run")
	p.SetBestScore(10)

	m := score.NewManager(config.DefaultRunnerConfig().Score, p, nil)
	if m.Best() != 10 {
		t.Fatalf("Best() = %d, want 10", m.Best())
	}
}
