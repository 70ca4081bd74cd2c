package run

import (
	"github.com/vovakirdan/tui-runner/internal/core"
	"github.com/vovakirdan/tui-runner/internal/world"
)

// EffectKind tells effects apart for rendering.
type EffectKind int

const (
	EffectHit    EffectKind = iota // spawned at the obstacle on contact
	EffectDamage                   // spawned at the player when a life is lost
)

// Effect is a short-lived visual removed by a scheduled task.
type Effect struct {
	ID   int
	Kind EffectKind
	Pos  core.Vec3
}

// collide runs trigger-enter detection between the player and obstacles and
// awards obstacles passed untouched.
func (g *Game) collide() {
	box := g.move.Bounds()
	playerZ := g.move.Travel()

	var destroyed []*world.Obstacle
	for _, it := range g.world.Obstacles.Items() {
		ob := it.Value

		overlap := box.Intersects(ob.Bounds())
		switch {
		case overlap && !ob.Inside:
			ob.Inside = true
			if g.enter(ob) && g.cfg.Obstacles.DestroyOnHit {
				destroyed = append(destroyed, ob)
			}
		case !overlap:
			ob.Inside = false
		}

		if !ob.Passed && ob.Pos.Z+ob.Kind.Depth/2 < playerZ-box.Half.Z {
			ob.Passed = true
			if !ob.Hit {
				g.score.ObstacleAvoided()
			}
		}
	}

	for _, ob := range destroyed {
		g.world.Obstacles.Remove(ob)
	}
}

// enter handles the player entering an obstacle's trigger. Returns whether
// the hit was handled; a player without the damage capability is skipped
// with a warning and nothing changes.
func (g *Game) enter(ob *world.Obstacle) bool {
	g.logger.Debug("obstacle contact", "id", ob.ID, "kind", ob.Kind.Name, "lane", ob.Lane)
	if g.damageErr != nil {
		g.logger.Warn("obstacle hit skipped", "id", ob.ID, "error", g.damageErr)
		return false
	}

	g.damage.TakeDamage()
	ob.Hit = true
	g.spawnEffect(EffectHit, ob.Bounds().Center)
	return true
}

func (g *Game) spawnEffect(kind EffectKind, pos core.Vec3) {
	g.effectID++
	id := g.effectID
	g.effects = append(g.effects, Effect{ID: id, Kind: kind, Pos: pos})

	g.sched.After(g.cfg.Health.HitEffectDuration, func() {
		for i, e := range g.effects {
			if e.ID == id {
				g.effects = append(g.effects[:i], g.effects[i+1:]...)
				return
			}
		}
	})
}

// Effects returns the live visual effects.
func (g *Game) Effects() []Effect {
	return g.effects
}
