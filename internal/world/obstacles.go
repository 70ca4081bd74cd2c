package world

import (
	"fmt"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-runner/internal/config"
	"github.com/vovakirdan/tui-runner/internal/core"
	"github.com/vovakirdan/tui-runner/internal/logging"
	"github.com/vovakirdan/tui-runner/internal/stream"
)

// LaneCount is the number of lanes obstacles and the player use.
const LaneCount = 3

// Obstacle is one spawned obstacle. Pos is the bottom center.
type Obstacle struct {
	ID     int
	Kind   config.ObstacleKind
	Lane   int
	Pos    core.Vec3
	Hit    bool // Collided with the player at least once
	Inside bool // Currently overlapping the player
	Passed bool // Left behind the player
}

// Bounds returns the obstacle's trigger volume.
func (o *Obstacle) Bounds() core.Box {
	return core.Box{
		Center: core.Vec3{X: o.Pos.X, Y: o.Pos.Y + o.Kind.Height/2, Z: o.Pos.Z},
		Half:   core.Vec3{X: o.Kind.Width / 2, Y: o.Kind.Height / 2, Z: o.Kind.Depth / 2},
	}
}

// Obstacles streams lane obstacles at random spacing ahead of the player.
type Obstacles struct {
	cfg    config.ObstacleConfig
	rng    *rand.Rand
	logger *log.Logger

	spawnChance      float64
	doubleLaneChance float64
	minSpacing       float64
	maxSpacing       float64

	anchor  stream.Anchor
	spawner *stream.Spawner[*Obstacle]
	nextID  int
}

// NewObstacles creates the obstacle streamer with its own RNG stream.
func NewObstacles(cfg config.ObstacleConfig, rng *rand.Rand, logger *log.Logger) (*Obstacles, error) {
	o := &Obstacles{
		cfg:              cfg,
		rng:              rng,
		logger:           logging.OrDiscard(logger),
		spawnChance:      cfg.SpawnChance,
		doubleLaneChance: cfg.DoubleLaneChance,
		minSpacing:       cfg.MinSpacing,
		maxSpacing:       cfg.MaxSpacing,
	}

	win := stream.Window{
		Ahead:  cfg.SpawnDistance,
		Behind: cfg.DestroyDistance,
	}
	sp, err := stream.New("obstacles", win, o.spawnEvent,
		stream.WithLogger[*Obstacle](o.logger),
		stream.WithIntervalFunc[*Obstacle](o.drawSpacing),
	)
	if err != nil {
		return nil, err
	}
	o.spawner = sp
	return o, nil
}

// Start binds the player, checks the templates and makes the initial spawn
// attempts from player + spawn_distance.
func (o *Obstacles) Start(anchor stream.Anchor) error {
	if err := o.spawner.Start(anchor, 0); err != nil {
		return err
	}
	if len(o.cfg.Kinds) == 0 {
		err := fmt.Errorf("world: obstacle templates: %w", core.ErrMissingDependency)
		o.spawner.Disable(err)
		return err
	}
	if len(o.cfg.LanePositions) < LaneCount {
		err := fmt.Errorf("world: lane positions: %w", core.ErrMissingDependency)
		o.spawner.Disable(err)
		return err
	}

	o.anchor = anchor
	o.spawner.SetNext(anchor.Travel() + o.cfg.SpawnDistance)
	o.spawner.Force(o.cfg.InitialCount)
	return nil
}

// Update streams obstacles for the current frame.
func (o *Obstacles) Update() {
	o.spawner.Update()
}

// Enabled reports whether obstacles are still streaming.
func (o *Obstacles) Enabled() bool {
	return o.spawner.Enabled()
}

// Items returns the live obstacles.
func (o *Obstacles) Items() []stream.Item[*Obstacle] {
	return o.spawner.Items()
}

// Spawner exposes the underlying spawner (stats, tests).
func (o *Obstacles) Spawner() *stream.Spawner[*Obstacle] {
	return o.spawner
}

// Remove drops one obstacle before the cleanup sweep reaches it.
func (o *Obstacles) Remove(ob *Obstacle) bool {
	return o.spawner.Remove(func(it stream.Item[*Obstacle]) bool {
		return it.Value == ob
	}) > 0
}

// SpawnChance returns the current spawn probability.
func (o *Obstacles) SpawnChance() float64 { return o.spawnChance }

// DoubleLaneChance returns the current two-lane probability.
func (o *Obstacles) DoubleLaneChance() float64 { return o.doubleLaneChance }

// Spacing returns the current spacing range.
func (o *Obstacles) Spacing() (min, max float64) { return o.minSpacing, o.maxSpacing }

// AdjustDifficulty rescales the spawn parameters from their configured base
// values. A multiplier of 1 keeps the base (within bounds).
func (o *Obstacles) AdjustDifficulty(multiplier float64) {
	if multiplier <= 0 {
		o.logger.Warn("ignoring non-positive difficulty multiplier", "multiplier", multiplier)
		return
	}
	o.spawnChance = core.ClampF(o.cfg.SpawnChance*multiplier, 0.3, 0.7)
	o.doubleLaneChance = core.ClampF(o.cfg.DoubleLaneChance*multiplier, 0.1, 0.3)
	o.minSpacing = core.ClampF(o.cfg.MinSpacing/multiplier, 8, 20)
	o.maxSpacing = core.ClampF(o.cfg.MaxSpacing/multiplier, 12, 30)
	if o.maxSpacing < o.minSpacing {
		o.maxSpacing = o.minSpacing
	}
}

// ClearAll removes every obstacle and restarts the stream at
// player + spawn_distance.
func (o *Obstacles) ClearAll() {
	o.spawner.Clear()
	if o.anchor != nil {
		o.spawner.SetNext(o.anchor.Travel() + o.cfg.SpawnDistance)
	}
}

// PickLanes picks the lanes of one spawn event: two distinct lanes with
// probability doubleChance, otherwise one. Never all three.
func PickLanes(rng *rand.Rand, doubleChance float64) []int {
	if rng.Float64() < doubleChance {
		first := rng.Intn(LaneCount)
		second := (first + 1 + rng.Intn(LaneCount-1)) % LaneCount
		return []int{first, second}
	}
	return []int{rng.Intn(LaneCount)}
}

func (o *Obstacles) drawSpacing() float64 {
	return core.RandRange(o.rng, o.minSpacing, o.maxSpacing)
}

func (o *Obstacles) spawnEvent(pos float64) []stream.Item[*Obstacle] {
	if o.rng.Float64() > o.spawnChance {
		return nil
	}

	lanes := PickLanes(o.rng, o.doubleLaneChance)
	items := make([]stream.Item[*Obstacle], 0, len(lanes))
	for _, lane := range lanes {
		kind := o.cfg.Kinds[o.rng.Intn(len(o.cfg.Kinds))]
		o.nextID++
		items = append(items, stream.Item[*Obstacle]{
			Pos: pos,
			Value: &Obstacle{
				ID:   o.nextID,
				Kind: kind,
				Lane: lane,
				Pos:  core.Vec3{X: o.cfg.LanePositions[lane], Z: pos},
			},
		})
	}

	o.logger.Debug("obstacles spawned", "lanes", lanes, "z", pos)
	return items
}
