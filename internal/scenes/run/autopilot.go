package run

import (
	"github.com/vovakirdan/tui-runner/internal/core"
	"github.com/vovakirdan/tui-runner/internal/player"
	"github.com/vovakirdan/tui-runner/internal/world"
)

// Autopilot look-ahead, in seconds of travel at the current speed.
const (
	dodgeHorizon = 1.2
	jumpHorizon  = 0.3
)

// Autopilot produces deterministic bot input for headless runs: it changes
// lane away from the nearest blocking obstacle and jumps when no lane is free.
type Autopilot struct {
	// Restart makes the bot restart the run after game over.
	Restart bool
}

// Input returns the actions for the next tick of g.
func (a Autopilot) Input(g *Game) core.InputFrame {
	in := core.NewInputFrame()
	if g.gameOver {
		if a.Restart {
			in.Set(core.ActionRestart)
		}
		return in
	}
	if g.world == nil || g.paused {
		return in
	}

	move := g.move
	z := move.Travel()
	horizon := move.Speed() * dodgeHorizon

	lane := move.Lane()
	threat, ok := nearestInLane(g.world.Obstacles, lane, z, horizon)
	if !ok {
		return in
	}

	for _, candidate := range []int{lane - 1, lane + 1} {
		if candidate < player.MinLane || candidate > player.MaxLane {
			continue
		}
		if _, blocked := nearestInLane(g.world.Obstacles, candidate, z-1, horizon+1); blocked {
			continue
		}
		if candidate < lane {
			in.Set(core.ActionLeft)
		} else {
			in.Set(core.ActionRight)
		}
		return in
	}

	if threat.Pos.Z-z <= move.Speed()*jumpHorizon && move.State() == player.Grounded {
		in.Set(core.ActionJump)
	}
	return in
}

// nearestInLane returns the closest unpassed obstacle in lane within
// [from, from+horizon].
func nearestInLane(o *world.Obstacles, lane int, from, horizon float64) (*world.Obstacle, bool) {
	var best *world.Obstacle
	for _, it := range o.Items() {
		ob := it.Value
		if ob.Lane != lane || ob.Passed {
			continue
		}
		if ob.Pos.Z < from || ob.Pos.Z > from+horizon {
			continue
		}
		if best == nil || ob.Pos.Z < best.Pos.Z {
			best = ob
		}
	}
	return best, best != nil
}
