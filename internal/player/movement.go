// Package player implements the runner's locomotion and damage state
// machines plus the model teleport guard.
package player

import (
	"math"

	"github.com/vovakirdan/tui-runner/internal/config"
	"github.com/vovakirdan/tui-runner/internal/core"
)

// Lane bounds.
const (
	MinLane = 0
	MaxLane = 2
)

// MoveState is the vertical locomotion state.
type MoveState int

const (
	Grounded MoveState = iota
	Airborne
)

func (s MoveState) String() string {
	if s == Airborne {
		return "airborne"
	}
	return "grounded"
}

// Locomotion moves the player forward, between lanes and through jumps.
//
// Ground resolution runs in two places each step and both can land the
// player: first a check on position and vertical velocity before the jump
// command is handled, then a position clamp after integration. The first
// check decides whether a jump is allowed this step; the clamp keeps the
// player from sinking below the ground plane.
type Locomotion struct {
	cfg config.PlayerConfig

	pos      core.Vec3 // X lateral, Y body center, Z travel
	vy       float64
	lane     int
	speed    float64
	elapsed  float64
	state    MoveState
	grounded bool

	landed bool // landed during the last step
	jumped bool // jumped during the last step
}

// NewLocomotion creates a player standing on the ground in the start lane.
func NewLocomotion(cfg config.PlayerConfig) *Locomotion {
	l := &Locomotion{cfg: cfg}
	l.Reset()
	return l
}

// Reset puts the player back at the start of a run.
func (l *Locomotion) Reset() {
	l.lane = core.Clamp(l.cfg.StartLane, MinLane, MaxLane)
	l.pos = core.Vec3{X: l.laneX(l.lane), Y: l.minY(), Z: 0}
	l.vy = 0
	l.speed = l.cfg.BaseSpeed
	l.elapsed = 0
	l.state = Grounded
	l.grounded = true
	l.landed = false
	l.jumped = false
}

// JumpVelocity is the initial upward speed reaching jump_height.
func (l *Locomotion) JumpVelocity() float64 {
	return math.Sqrt(l.cfg.JumpHeight * -2 * l.cfg.Gravity)
}

// MoveLeft shifts the target lane left, saturating at lane 0.
func (l *Locomotion) MoveLeft() {
	if l.lane > MinLane {
		l.lane--
	}
}

// MoveRight shifts the target lane right, saturating at lane 2.
func (l *Locomotion) MoveRight() {
	if l.lane < MaxLane {
		l.lane++
	}
}

// Step advances the player by dt seconds using the frame's commands.
func (l *Locomotion) Step(dt float64, in core.InputFrame) {
	l.landed = false
	l.jumped = false

	l.elapsed += dt
	l.updateSpeed()

	l.checkGrounded()
	l.handleJump(in.Has(core.ActionJump))

	if in.Has(core.ActionLeft) {
		l.MoveLeft()
	}
	if in.Has(core.ActionRight) {
		l.MoveRight()
	}

	l.applyGravity(dt)

	l.pos.X = core.MoveTowards(l.pos.X, l.laneX(l.lane), l.cfg.LaneChangeSpeed*dt)
	l.pos.Z += l.speed * dt
	l.pos.Y += l.vy * dt

	l.clampToGround()
}

// checkGrounded is the position+velocity check run before the jump.
func (l *Locomotion) checkGrounded() {
	bottom := l.pos.Y - l.cfg.Height/2
	l.grounded = bottom <= l.cfg.GroundY+l.cfg.GroundTolerance && l.vy <= 0.1

	if l.grounded && l.state == Airborne && l.vy <= 0 {
		l.land()
	}
}

func (l *Locomotion) handleJump(requested bool) {
	if !requested || !l.grounded || l.state != Grounded {
		return
	}
	l.vy = l.JumpVelocity()
	l.state = Airborne
	l.grounded = false
	l.jumped = true
}

func (l *Locomotion) applyGravity(dt float64) {
	if !l.grounded || l.state == Airborne {
		l.vy += l.cfg.Gravity * dt
		return
	}
	l.vy = math.Max(l.vy, l.cfg.GroundedClamp)
}

// clampToGround is the position clamp run after integration.
func (l *Locomotion) clampToGround() {
	if l.pos.Y >= l.minY() {
		return
	}
	l.pos.Y = l.minY()
	l.vy = 0
	if l.state == Airborne {
		l.land()
	}
}

func (l *Locomotion) land() {
	l.state = Grounded
	l.vy = 0
	l.landed = true
}

// updateSpeed raises forward speed in steps of accel_rate every accel_interval.
func (l *Locomotion) updateSpeed() {
	steps := 0.0
	if l.cfg.AccelInterval > 0 {
		steps = math.Floor(l.elapsed / l.cfg.AccelInterval)
	}
	l.speed = core.ClampF(l.cfg.BaseSpeed+steps*l.cfg.AccelRate, l.cfg.BaseSpeed, l.cfg.MaxSpeed)
}

func (l *Locomotion) laneX(lane int) float64 {
	return float64(lane-1) * l.cfg.LaneDistance
}

func (l *Locomotion) minY() float64 {
	return l.cfg.GroundY + l.cfg.Height/2
}

// Travel returns the position on the travel axis.
func (l *Locomotion) Travel() float64 { return l.pos.Z }

// Position returns the body center.
func (l *Locomotion) Position() core.Vec3 { return l.pos }

// Lane returns the target lane.
func (l *Locomotion) Lane() int { return l.lane }

// Speed returns the current forward speed.
func (l *Locomotion) Speed() float64 { return l.speed }

// Elapsed returns the time the player has been running.
func (l *Locomotion) Elapsed() float64 { return l.elapsed }

// State returns the vertical state.
func (l *Locomotion) State() MoveState { return l.state }

// VerticalVelocity returns the current vertical speed.
func (l *Locomotion) VerticalVelocity() float64 { return l.vy }

// Landed reports whether the last step ended a jump.
func (l *Locomotion) Landed() bool { return l.landed }

// Jumped reports whether the last step started a jump.
func (l *Locomotion) Jumped() bool { return l.jumped }

// Bounds returns the player's collision volume.
func (l *Locomotion) Bounds() core.Box {
	return core.Box{
		Center: l.pos,
		Half:   core.Vec3{X: l.cfg.Width / 2, Y: l.cfg.Height / 2, Z: l.cfg.Depth / 2},
	}
}
