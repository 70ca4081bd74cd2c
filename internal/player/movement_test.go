package player

import (
	"math"
	"math/rand"
	"testing"

	"github.com/vovakirdan/tui-runner/internal/config"
	"github.com/vovakirdan/tui-runner/internal/core"
)

const dt = 1.0 / 60.0

func input(actions ...core.Action) core.InputFrame {
	f := core.NewInputFrame()
	for _, a := range actions {
		f.Set(a)
	}
	return f
}

func newPlayer() *Locomotion {
	return NewLocomotion(config.DefaultRunnerConfig().Player)
}

func TestLaneSaturates(t *testing.T) {
	l := newPlayer()
	rng := rand.New(rand.NewSource(11))

	for i := 0; i < 1000; i++ {
		if rng.Intn(2) == 0 {
			l.MoveLeft()
		} else {
			l.MoveRight()
		}
		if l.Lane() < MinLane || l.Lane() > MaxLane {
			t.Fatalf("lane %d out of range after %d commands", l.Lane(), i)
		}
	}

	l.Reset()
	for i := 0; i < 5; i++ {
		l.Step(dt, input(core.ActionLeft))
	}
	if l.Lane() != 0 {
		t.Errorf("Lane() = %d after repeated left, expected 0", l.Lane())
	}
}

func TestLateralEasesWithoutOvershoot(t *testing.T) {
	l := newPlayer()
	l.Step(dt, input(core.ActionRight))

	// 10 units/s at 60 fps moves 1/6 per frame; 3 units take 18 frames.
	x := l.Position().X
	if x <= 0 || x >= 3 {
		t.Fatalf("x = %v after one step, expected partial move", x)
	}
	for i := 0; i < 60; i++ {
		l.Step(dt, input())
		if l.Position().X > 3 {
			t.Fatalf("overshoot: x = %v", l.Position().X)
		}
	}
	if l.Position().X != 3 {
		t.Errorf("x = %v, expected 3", l.Position().X)
	}
}

func TestJumpArcAndLanding(t *testing.T) {
	l := newPlayer()
	groundY := l.Position().Y

	l.Step(dt, input(core.ActionJump))
	if l.State() != Airborne || !l.Jumped() {
		t.Fatalf("State() = %v after jump", l.State())
	}
	if v := l.JumpVelocity(); math.Abs(v-math.Sqrt(180)) > 1e-9 {
		t.Errorf("JumpVelocity() = %v, expected sqrt(180)", v)
	}

	peak := groundY
	landed := false
	for i := 0; i < 120; i++ {
		// Jumping again mid-air must not add height.
		if i < 10 {
			l.Step(dt, input(core.ActionJump))
		} else {
			l.Step(dt, input())
		}
		if l.Position().Y > peak {
			peak = l.Position().Y
		}
		if l.Position().Y < groundY {
			t.Fatalf("sank below ground: y = %v", l.Position().Y)
		}
		if l.Landed() {
			landed = true
			break
		}
	}
	if !landed || l.State() != Grounded {
		t.Fatalf("never landed, state %v", l.State())
	}
	height := peak - groundY
	if height < 2.7 || height > 3.1 {
		t.Errorf("jump height %v, expected about 3", height)
	}
}

func TestNoDoubleJump(t *testing.T) {
	l := newPlayer()
	l.Step(dt, input(core.ActionJump))
	vy := l.VerticalVelocity()

	l.Step(dt, input(core.ActionJump))
	if l.Jumped() {
		t.Error("second jump accepted while airborne")
	}
	if l.VerticalVelocity() >= vy {
		t.Errorf("vertical velocity grew from %v to %v", vy, l.VerticalVelocity())
	}
}

func TestGroundedVelocityClamp(t *testing.T) {
	l := newPlayer()
	for i := 0; i < 30; i++ {
		l.Step(dt, input())
		if l.State() != Grounded {
			t.Fatalf("left the ground without jumping")
		}
		if l.VerticalVelocity() < -2 {
			t.Fatalf("grounded vy = %v below clamp", l.VerticalVelocity())
		}
	}
}

func TestSpeedStepsAndCaps(t *testing.T) {
	l := newPlayer()

	tests := []struct {
		until    float64
		expected float64
	}{
		{4.9, 10},
		{5.1, 10.5},
		{12, 11},
		{200, 25},
	}
	for _, tc := range tests {
		for l.Elapsed() < tc.until {
			l.Step(0.1, input())
		}
		if math.Abs(l.Speed()-tc.expected) > 1e-9 {
			t.Errorf("speed at %.1fs = %v, expected %v", l.Elapsed(), l.Speed(), tc.expected)
		}
	}
}

func TestTravelAdvancesWithSpeed(t *testing.T) {
	l := newPlayer()
	for i := 0; i < 60; i++ {
		l.Step(dt, input())
	}
	if math.Abs(l.Travel()-10) > 1e-6 {
		t.Errorf("Travel() = %v after 1s at 10/s, expected 10", l.Travel())
	}
}

func TestTeleportGuard(t *testing.T) {
	g := NewTeleportGuard(true, 1, nil)

	first := core.Vec3{Y: 0.2}
	if got := g.Apply(first); got != first {
		t.Errorf("first frame rejected: %v", got)
	}
	small := core.Vec3{Y: 0.5}
	if got := g.Apply(small); got != small {
		t.Errorf("small move rejected: %v", got)
	}
	if got := g.Apply(core.Vec3{Z: 5}); got != small {
		t.Errorf("teleport not corrected: %v", got)
	}
	if g.Rejected() != 1 {
		t.Errorf("Rejected() = %d", g.Rejected())
	}

	far := core.Vec3{Z: 5}
	g.Rebase(far)
	if got := g.Apply(far); got != far {
		t.Errorf("rebased offset rejected: %v", got)
	}

	off := NewTeleportGuard(false, 1, nil)
	off.Apply(core.Vec3{})
	if got := off.Apply(far); got != far {
		t.Errorf("disabled guard corrected %v", got)
	}
}
