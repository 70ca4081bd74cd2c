package menu

import (
	"errors"
	"strings"
	"testing"

	"github.com/vovakirdan/tui-runner/internal/core"
	"github.com/vovakirdan/tui-runner/internal/registry"
)

type fixedBest struct {
	score int
	err   error
}

func (f fixedBest) BestScore() (int, error) { return f.score, f.err }
func (f fixedBest) SetBestScore(int) error  { return nil }

func newScene(best fixedBest) *Scene {
	s := New(registry.Env{Best: best})
	s.Reset(core.DefaultConfig())
	return s
}

func frame(actions ...core.Action) core.InputFrame {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return in
}

func TestConfirmLoadsRun(t *testing.T) {
	tests := []struct {
		name   string
		action core.Action
	}{
		{"confirm", core.ActionConfirm},
		{"jump", core.ActionJump},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newScene(fixedBest{})
			res := s.Step(frame(tt.action))
			if res.NextScene != RunID {
				t.Fatalf("NextScene = %q, want %q", res.NextScene, RunID)
			}
		})
	}
}

func TestIdleStaysInMenu(t *testing.T) {
	s := newScene(fixedBest{})
	for i := 0; i < 120; i++ {
		if res := s.Step(core.NewInputFrame()); res.NextScene != "" {
			t.Fatalf("idle menu switched to %q", res.NextScene)
		}
	}
}

func TestWalkingIntoPortalLoadsRun(t *testing.T) {
	s := newScene(fixedBest{})
	for i := 0; i < 600; i++ {
		res := s.Step(frame(core.ActionRight))
		if res.NextScene == RunID {
			if s.Avatar() < pathLength-portalWidth {
				t.Fatalf("triggered at %v before the portal", s.Avatar())
			}
			return
		}
	}
	t.Fatal("never reached the portal")
}

func TestAvatarStaysOnPath(t *testing.T) {
	s := newScene(fixedBest{})
	for i := 0; i < 30; i++ {
		s.Step(frame(core.ActionLeft))
	}
	if s.Avatar() != 0 {
		t.Fatalf("avatar = %v, want 0", s.Avatar())
	}
}

func TestBestScoreShown(t *testing.T) {
	s := newScene(fixedBest{score: 1234})
	if got := s.State().BestScore; got != 1234 {
		t.Fatalf("best = %d, want 1234", got)
	}

	screen := core.NewScreen(80, 24)
	s.Render(screen)
	if !strings.Contains(screen.String(), "Best: 1234") {
		t.Fatal("best score not rendered")
	}
}

func TestBestScoreLoadError(t *testing.T) {
	s := newScene(fixedBest{score: 99, err: errors.New("boom")})
	if got := s.State().BestScore; got != 0 {
		t.Fatalf("best = %d, want 0 on load error", got)
	}
}

func TestRegistered(t *testing.T) {
	if !registry.Exists(SceneID) {
		t.Fatalf("scene %q not registered", SceneID)
	}
}
