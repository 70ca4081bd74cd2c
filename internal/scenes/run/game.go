// Package run implements the playable runner scene. Each tick it composes
// locomotion, camera, animation guard, world streaming, collisions, timed
// effects and scoring, in that order.
package run

import (
	"math"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-runner/internal/camera"
	"github.com/vovakirdan/tui-runner/internal/config"
	"github.com/vovakirdan/tui-runner/internal/core"
	"github.com/vovakirdan/tui-runner/internal/logging"
	"github.com/vovakirdan/tui-runner/internal/player"
	"github.com/vovakirdan/tui-runner/internal/registry"
	"github.com/vovakirdan/tui-runner/internal/sched"
	"github.com/vovakirdan/tui-runner/internal/score"
	"github.com/vovakirdan/tui-runner/internal/stream"
	"github.com/vovakirdan/tui-runner/internal/world"
)

// Scene names.
const (
	SceneID   = "run"
	MenuScene = "menu"
)

// Model bob animation.
const (
	bobHeight = 0.15
	bobRate   = 0.8 // radians per unit travelled
)

// Body is the player object bound to core.RolePlayer. Locomotion owns the
// position; health owns damage and its visual effects.
type Body struct {
	Move   *player.Locomotion
	Health *player.Health
}

// Travel returns the position on the travel axis.
func (b *Body) Travel() float64 { return b.Move.Travel() }

// Position returns the body center.
func (b *Body) Position() core.Vec3 { return b.Move.Position() }

// TakeDamage applies one hit.
func (b *Body) TakeDamage() bool { return b.Health.TakeDamage() }

// Game is the run scene.
type Game struct {
	cfg     config.RunnerConfig
	runtime core.RuntimeConfig
	logger  *log.Logger

	sched      *sched.Scheduler
	move       *player.Locomotion
	health     *player.Health
	body       *Body
	camera     *camera.Follow
	guard      *player.TeleportGuard
	world      *world.World
	score      *score.Manager
	difficulty *config.DifficultyManager
	roles      *core.Roles

	damage    player.Damageable
	damageErr error

	effects  []Effect
	effectID int

	tick        int
	sinceAdjust float64
	animPhase   float64
	modelOffset core.Vec3

	paused   bool
	gameOver bool
	newBest  bool
}

// New creates the run scene. The best score is loaded once here and kept
// across reloads.
func New(env registry.Env) *Game {
	logger := logging.OrDiscard(env.Logger).WithPrefix(SceneID)
	return &Game{
		cfg:    env.Config,
		logger: logger,
		score:  score.NewManager(env.Config.Score, env.Best, logger.WithPrefix("score")),
	}
}

// ID returns the scene name.
func (g *Game) ID() string {
	return SceneID
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Ember Run"
}

// Reset (re)loads the scene: every component is rebuilt from the config and
// the runtime seed, and items of the previous run are released.
func (g *Game) Reset(rt core.RuntimeConfig) {
	if g.world != nil {
		g.world.Clear()
	}
	g.runtime = rt

	g.sched = sched.New()
	g.move = player.NewLocomotion(g.cfg.Player)
	g.health = player.NewHealth(g.cfg.Health, g.sched, g.logger.WithPrefix("health"))
	g.health.OnGameOver(g.onGameOver)
	g.health.OnDamage(g.onDamage)
	g.body = &Body{Move: g.move, Health: g.health}
	g.camera = camera.NewFollow(g.cfg.Camera.Offset)
	g.guard = player.NewTeleportGuard(g.cfg.Animation.FixTeleport, g.cfg.Animation.TeleportThreshold,
		g.logger.WithPrefix("anim"))
	g.difficulty = config.NewDifficultyManager(g.cfg.Difficulty)
	g.score.Restart()

	w, err := world.New(g.cfg, rt.Seed, g.logger)
	if err != nil {
		g.logger.Error("world setup failed", "error", err)
	}
	g.world = w

	g.effects = g.effects[:0]
	g.effectID = 0
	g.tick = 0
	g.sinceAdjust = 0
	g.animPhase = 0
	g.modelOffset = core.Vec3{}
	g.paused = false
	g.gameOver = false
	g.newBest = false

	g.roles = core.NewRoles()
	g.roles.Bind(core.RolePlayer, g.body)
	g.roles.Bind(core.RoleCamera, g.camera)
	if g.world != nil {
		g.roles.Bind(core.RoleGround, g.world.Ground)
		g.roles.Bind(core.RoleObstacles, g.world.Obstacles)
		g.roles.Bind(core.RoleDecor, g.world.Decor)
	}
	g.roles.Bind(core.RoleScore, g.score)
	g.setup()

	g.health.Start()
	g.logger.Debug("scene loaded", "seed", rt.Seed)
}

// setup resolves the role references once and starts the components
// depending on them.
func (g *Game) setup() {
	anchor, err := core.Resolve[stream.Anchor](g.roles, core.RolePlayer)
	if err != nil {
		g.logger.Error("player reference missing", "error", err)
	}
	if g.world != nil {
		if err := g.world.Start(anchor); err != nil {
			g.logger.Warn("world layers disabled", "error", err)
		}
	}

	if target, err := core.Resolve[camera.Target](g.roles, core.RolePlayer); err == nil {
		g.camera.Attach(target)
	}

	g.bindDamage()
	g.guard.Rebase(core.Vec3{})
}

// bindDamage resolves the damage capability of the player object. Without it
// obstacle contacts are skipped with a warning.
func (g *Game) bindDamage() {
	g.damage, g.damageErr = core.Resolve[player.Damageable](g.roles, core.RolePlayer)
}

// Restart reloads the scene with the same runtime config.
func (g *Game) Restart() {
	g.logger.Info("restart")
	g.Reset(g.runtime)
}

// Step advances the scene by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if in.Has(core.ActionBack) && (g.gameOver || g.paused) {
		return core.StepResult{State: g.State(), NextScene: MenuScene}
	}

	if g.gameOver {
		if in.Has(core.ActionRestart) {
			g.Restart()
		}
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	dt := g.runtime.TickSeconds()
	g.tick++

	g.move.Step(dt, in)
	g.camera.Update()
	g.animate()
	if g.world != nil {
		g.world.Update()
		g.collide()
	}
	g.sched.Tick(dt)
	g.score.Update(dt)
	g.adjustDifficulty(dt)

	return core.StepResult{State: g.State()}
}

// animate produces the model-local running bob and passes it through the
// teleport guard.
func (g *Game) animate() {
	if g.move.State() == player.Grounded {
		g.animPhase += g.move.Speed() * g.runtime.TickSeconds() * bobRate
	}
	raw := core.Vec3{Y: bobHeight * math.Sin(g.animPhase)}
	g.modelOffset = g.guard.Apply(raw)
}

func (g *Game) adjustDifficulty(dt float64) {
	if !g.difficulty.Active() || g.world == nil {
		return
	}
	g.sinceAdjust += dt
	every := g.difficulty.Interval()
	if g.sinceAdjust < every {
		return
	}
	g.sinceAdjust -= every
	g.world.Obstacles.AdjustDifficulty(g.difficulty.Multiplier(g.score.Score(), g.move.Elapsed()))
}

func (g *Game) onGameOver() {
	g.gameOver = true
	g.newBest = g.score.GameOver()
	g.logger.Info("run over",
		"score", g.score.Score(),
		"distance", math.Round(g.move.Travel()),
		"new_best", g.newBest,
	)
}

func (g *Game) onDamage(lives int) {
	g.spawnEffect(EffectDamage, g.move.Position())
}

// State returns the current scene state.
func (g *Game) State() core.GameState {
	st := core.GameState{
		Score:     g.score.Score(),
		BestScore: g.score.Best(),
		GameOver:  g.gameOver,
		Paused:    g.paused,
	}
	if g.move != nil {
		st.Distance = g.move.Travel()
		st.Elapsed = g.move.Elapsed()
	}
	if g.health != nil {
		st.Lives = g.health.Lives()
	}
	return st
}

// Player returns the locomotion component.
func (g *Game) Player() *player.Locomotion { return g.move }

// Health returns the health component.
func (g *Game) Health() *player.Health { return g.health }

// World returns the streamed layers.
func (g *Game) World() *world.World { return g.world }

// Score returns the score manager.
func (g *Game) Score() *score.Manager { return g.score }

// Tick returns the number of simulated ticks since the scene loaded.
func (g *Game) Tick() int { return g.tick }

func init() {
	registry.Register(SceneID, "Ember Run", func(env registry.Env) registry.Scene {
		return New(env)
	})
}
