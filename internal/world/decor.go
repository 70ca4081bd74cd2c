package world

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-runner/internal/config"
	"github.com/vovakirdan/tui-runner/internal/core"
	"github.com/vovakirdan/tui-runner/internal/logging"
	"github.com/vovakirdan/tui-runner/internal/stream"
)

// DecorKind is the category of a decoration object.
type DecorKind int

const (
	VolcanoRock DecorKind = iota
	FireCrystal
	Torch
	Geyser
	Mountain // background, far from the track
)

func (k DecorKind) String() string {
	switch k {
	case VolcanoRock:
		return "volcano_rock"
	case FireCrystal:
		return "fire_crystal"
	case Torch:
		return "torch"
	case Geyser:
		return "geyser"
	case Mountain:
		return "mountain"
	default:
		return "unknown"
	}
}

// sideMargin is added past the forbidden band when a lateral offset is clamped.
const sideMargin = 2.0

// Background mountain placement ranges.
const (
	mountainMinX = 50.0
	mountainMaxX = 80.0
	mountainMinZ = 5.0
	mountainMaxZ = 25.0
)

// Decor is one decoration object. Pos is the bottom center.
type Decor struct {
	Kind  DecorKind
	Pos   core.Vec3
	Scale core.Vec3
}

// Classify maps a uniform draw in [0,1) to a category using cumulative
// thresholds. Draws past every threshold fall back to VolcanoRock.
func Classify(c config.DecorChances, r float64) DecorKind {
	threshold := c.VolcanoRock
	if r < threshold {
		return VolcanoRock
	}
	threshold += c.FireCrystal
	if r < threshold {
		return FireCrystal
	}
	threshold += c.Torch
	if r < threshold {
		return Torch
	}
	threshold += c.Geyser
	if r < threshold {
		return Geyser
	}
	return VolcanoRock
}

// ClampLateral pushes an offset inside the forbidden center band out to
// minSide+2 on its side (negative offsets left, everything else right).
// Offsets outside the band are returned unchanged.
func ClampLateral(x, minSide float64) float64 {
	if math.Abs(x) >= minSide {
		return x
	}
	if x < 0 {
		return -(minSide + sideMargin)
	}
	return minSide + sideMargin
}

// DecorField streams fire-themed decoration along both sides of the track.
type DecorField struct {
	cfg      config.DecorConfig
	interval float64
	rng      *rand.Rand
	logger   *log.Logger
	spawner  *stream.Spawner[Decor]
	err      error
}

// NewDecorField creates the decor streamer. With sync_with_ground the window
// follows the ground tiles, otherwise its own spawn settings.
func NewDecorField(cfg config.DecorConfig, ground config.GroundConfig, rng *rand.Rand, logger *log.Logger) *DecorField {
	d := &DecorField{
		cfg:    cfg,
		rng:    rng,
		logger: logging.OrDiscard(logger),
	}

	win := stream.Window{
		Interval:     cfg.SpawnInterval,
		Ahead:        cfg.SpawnDistance,
		Behind:       cfg.DespawnDistance,
		CleanupEvery: cfg.CleanupEvery,
	}
	if cfg.SyncWithGround {
		gw := GroundWindow(ground)
		win.Interval, win.Ahead, win.Behind = gw.Interval, gw.Ahead, gw.Behind
		if ground.TileLength <= 0 {
			d.err = fmt.Errorf("world: decor ground sync: %w", core.ErrMissingDependency)
			return d
		}
	}
	d.interval = win.Interval

	d.spawner, d.err = stream.New("decor", win, d.spawnChunk, stream.WithLogger[Decor](d.logger))
	return d
}

// Start binds the player and pre-fills prime_behind chunks behind it and
// prime_ahead chunks ahead.
func (d *DecorField) Start(anchor stream.Anchor) error {
	if d.err != nil {
		d.logger.Error("decor disabled", "error", d.err)
		return d.err
	}
	if err := d.spawner.Start(anchor, 0); err != nil {
		return err
	}

	ref := anchor.Travel()
	first := ref - float64(d.cfg.PrimeBehind)*d.interval
	d.spawner.Prime(first, d.cfg.PrimeBehind+d.cfg.PrimeAhead)
	d.logger.Debug("decor primed", "objects", d.spawner.Len(), "next", d.spawner.Next())
	return nil
}

// Update streams decor for the current frame.
func (d *DecorField) Update() {
	if d.spawner != nil {
		d.spawner.Update()
	}
}

// Enabled reports whether decor is still streaming.
func (d *DecorField) Enabled() bool {
	return d.spawner != nil && d.spawner.Enabled()
}

// Items returns the live decor. Item.Pos is the chunk position; the object's
// own position (with jitter) is in Value.Pos.
func (d *DecorField) Items() []stream.Item[Decor] {
	if d.spawner == nil {
		return nil
	}
	return d.spawner.Items()
}

// Spawner exposes the underlying spawner (stats, tests).
func (d *DecorField) Spawner() *stream.Spawner[Decor] {
	return d.spawner
}

// Clear drops every decor object.
func (d *DecorField) Clear() {
	if d.spawner != nil {
		d.spawner.Clear()
	}
}

// PlaceDecor classifies and builds one side object at (x, z), clamping x out
// of the forbidden center band. It never rejects a placement.
func (d *DecorField) PlaceDecor(x, z float64) Decor {
	if math.Abs(x) < d.cfg.MinSideDistance {
		d.logger.Warn("decor too close to track, repositioning", "x", x)
		x = ClampLateral(x, d.cfg.MinSideDistance)
	}

	kind := Classify(d.cfg.Chances, d.rng.Float64())
	return d.shape(kind, x, z)
}

func (d *DecorField) spawnChunk(pos float64) []stream.Item[Decor] {
	perSide := d.cfg.ObjectsPerSide
	items := make([]stream.Item[Decor], 0, perSide*2+1)
	jitter := d.interval * d.cfg.ZJitter

	for i := 0; i < perSide; i++ {
		x := core.RandRange(d.rng, -d.cfg.MaxSideDistance, -d.cfg.MinSideDistance)
		z := pos + core.RandRange(d.rng, -jitter, jitter)
		items = append(items, stream.Item[Decor]{Pos: pos, Value: d.PlaceDecor(x, z)})
	}
	for i := 0; i < perSide; i++ {
		x := core.RandRange(d.rng, d.cfg.MinSideDistance, d.cfg.MaxSideDistance)
		z := pos + core.RandRange(d.rng, -jitter, jitter)
		items = append(items, stream.Item[Decor]{Pos: pos, Value: d.PlaceDecor(x, z)})
	}

	if d.rng.Float64() < d.cfg.BackgroundChance {
		items = append(items, stream.Item[Decor]{Pos: pos, Value: d.mountain(pos)})
	}
	return items
}

func (d *DecorField) mountain(pos float64) Decor {
	x := core.RandRange(d.rng, mountainMinX, mountainMaxX)
	if d.rng.Float64() < 0.5 {
		x = -x
	}
	return Decor{
		Kind: Mountain,
		Pos: core.Vec3{
			X: x,
			Y: core.RandRange(d.rng, 6, 12),
			Z: pos + core.RandRange(d.rng, mountainMinZ, mountainMaxZ),
		},
		Scale: core.Vec3{
			X: core.RandRange(d.rng, 8, 15),
			Y: core.RandRange(d.rng, 12, 20),
			Z: core.RandRange(d.rng, 8, 12),
		},
	}
}

// shape gives each category its size range.
func (d *DecorField) shape(kind DecorKind, x, z float64) Decor {
	dec := Decor{Kind: kind, Pos: core.Vec3{X: x, Z: z}}
	switch kind {
	case VolcanoRock:
		dec.Pos.Y = core.RandRange(d.rng, 0.3, 1.2)
		dec.Scale = core.Vec3{
			X: core.RandRange(d.rng, 0.8, 2),
			Y: core.RandRange(d.rng, 0.6, 1.5),
			Z: core.RandRange(d.rng, 0.8, 2),
		}
	case FireCrystal:
		dec.Scale = core.Vec3{X: 0.4, Y: 1.5, Z: 0.4}
	case Torch:
		dec.Scale = core.Vec3{X: 0.5, Y: 2.9, Z: 0.5}
	case Geyser:
		dec.Pos.Y = 1.5
		dec.Scale = core.Vec3{X: 0.6, Y: 3, Z: 0.6}
	}
	return dec
}
