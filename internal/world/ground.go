package world

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-runner/internal/config"
	"github.com/vovakirdan/tui-runner/internal/core"
	"github.com/vovakirdan/tui-runner/internal/logging"
	"github.com/vovakirdan/tui-runner/internal/stream"
)

// Tile is one ground segment starting at Z.
type Tile struct {
	Z      float64
	Length float64
	Width  float64
}

// Ground streams fixed-length tiles around the player.
type Ground struct {
	cfg     config.GroundConfig
	logger  *log.Logger
	spawner *stream.Spawner[Tile]
	err     error
}

// NewGround creates the ground streamer. A zero tile length means there is no
// tile template; the streamer then stays disabled and Start reports it.
func NewGround(cfg config.GroundConfig, logger *log.Logger) *Ground {
	g := &Ground{
		cfg:    cfg,
		logger: logging.OrDiscard(logger),
	}
	if cfg.TileLength <= 0 {
		g.err = fmt.Errorf("world: ground tile template: %w", core.ErrMissingDependency)
		return g
	}

	g.spawner, g.err = stream.New("ground", GroundWindow(cfg), g.spawnTile,
		stream.WithLogger[Tile](g.logger))
	return g
}

// GroundWindow returns the streaming window derived from the tile settings.
func GroundWindow(cfg config.GroundConfig) stream.Window {
	return stream.Window{
		Interval: cfg.TileLength,
		Ahead:    float64(cfg.TilesAhead) * cfg.TileLength,
		Behind:   float64(cfg.TilesBehind) * cfg.TileLength,
	}
}

// Start binds the player and lays tiles from tiles_behind back to
// tiles_ahead-1 forward of the player's position.
func (g *Ground) Start(anchor stream.Anchor) error {
	if g.err != nil {
		g.logger.Error("ground disabled", "error", g.err)
		return g.err
	}
	if err := g.spawner.Start(anchor, 0); err != nil {
		return err
	}

	ref := anchor.Travel()
	first := ref - float64(g.cfg.TilesBehind)*g.cfg.TileLength
	g.spawner.Prime(first, g.cfg.TilesBehind+g.cfg.TilesAhead)
	g.logger.Debug("ground primed", "tiles", g.spawner.Len(), "next", g.spawner.Next())
	return nil
}

// Update streams tiles for the current frame.
func (g *Ground) Update() {
	if g.spawner != nil {
		g.spawner.Update()
	}
}

// Enabled reports whether the ground is still streaming.
func (g *Ground) Enabled() bool {
	return g.spawner != nil && g.spawner.Enabled()
}

// Tiles returns the live tiles.
func (g *Ground) Tiles() []stream.Item[Tile] {
	if g.spawner == nil {
		return nil
	}
	return g.spawner.Items()
}

// Spawner exposes the underlying spawner (stats, tests).
func (g *Ground) Spawner() *stream.Spawner[Tile] {
	return g.spawner
}

// Clear drops every tile.
func (g *Ground) Clear() {
	if g.spawner != nil {
		g.spawner.Clear()
	}
}

func (g *Ground) spawnTile(pos float64) []stream.Item[Tile] {
	return []stream.Item[Tile]{{
		Pos:   pos,
		Value: Tile{Z: pos, Length: g.cfg.TileLength, Width: g.cfg.Width},
	}}
}
