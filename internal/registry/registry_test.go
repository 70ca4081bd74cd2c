package registry

import (
	"testing"

	"github.com/vovakirdan/tui-runner/internal/core"
)

type stubScene struct{ id string }

func (s *stubScene) ID() string { return s.id }
func (s *stubScene) Title() string { return "Stub" }
func (s *stubScene) Reset(core.RuntimeConfig) {}
func (s *stubScene) Step(core.InputFrame) core.StepResult { return core.StepResult{} }
func (s *stubScene) Render(*core.Screen) {}
func (s *stubScene) State() core.GameState { return core.GameState{} }

func TestRegisterCreateList(t *testing.T) {
	Register("stub-a", "Stub A", func(Env) Scene { return &stubScene{id: "stub-a"} })
	Register("stub-b", "Stub B", func(Env) Scene { return &stubScene{id: "stub-b"} })

	s, err := Create("stub-a", Env{})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if s.ID() != "stub-a" {
		t.Errorf("ID() = %q", s.ID())
	}

	if _, err := Create("missing", Env{}); err == nil {
		t.Error("expected error for unknown scene")
	}
	if !Exists("stub-b") || Exists("missing") {
		t.Error("Exists() mismatch")
	}

	list := List()
	idx := map[string]int{}
	for i, info := range list {
		idx[info.ID] = i
	}
	if idx["stub-a"] >= idx["stub-b"] {
		t.Errorf("List() not sorted: %v", list)
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register("stub-dup", "Dup", func(Env) Scene { return &stubScene{} })
	defer func() {
		if recover() == nil {
			t.Error("expected panic on duplicate registration")
		}
	}()
	Register("stub-dup", "Dup", func(Env) Scene { return &stubScene{} })
}
