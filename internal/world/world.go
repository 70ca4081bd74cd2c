// Package world streams the run's environment around the player: ground
// tiles, lane obstacles and side decoration. Each layer owns a private
// stream.Spawner and its own RNG stream, so layers never share state.
package world

import (
	"errors"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-runner/internal/config"
	"github.com/vovakirdan/tui-runner/internal/core"
	"github.com/vovakirdan/tui-runner/internal/logging"
	"github.com/vovakirdan/tui-runner/internal/stream"
)

// RNG labels of the streamed layers.
const (
	LabelObstacles = "obstacles"
	LabelDecor     = "decor"
)

// World groups the streamed layers and updates them in a fixed order.
type World struct {
	Ground    *Ground
	Obstacles *Obstacles
	Decor     *DecorField
	logger    *log.Logger
}

// New builds every layer for a run seed.
func New(cfg config.RunnerConfig, seed int64, logger *log.Logger) (*World, error) {
	logger = logging.OrDiscard(logger)
	obstacles, err := NewObstacles(cfg.Obstacles, core.NewLabeledRNG(seed, LabelObstacles),
		logger.WithPrefix("obstacles"))
	if err != nil {
		return nil, err
	}

	return &World{
		Ground:    NewGround(cfg.Ground, logger.WithPrefix("ground")),
		Obstacles: obstacles,
		Decor: NewDecorField(cfg.Decor, cfg.Ground, core.NewLabeledRNG(seed, LabelDecor),
			logger.WithPrefix("decor")),
		logger: logger,
	}, nil
}

// Start binds every layer to the player. A layer failing to start stays
// disabled while the others keep running; the joined errors are returned
// for diagnostics.
func (w *World) Start(anchor stream.Anchor) error {
	return errors.Join(
		w.Ground.Start(anchor),
		w.Obstacles.Start(anchor),
		w.Decor.Start(anchor),
	)
}

// Update advances ground, obstacles and decor, in that order.
func (w *World) Update() {
	w.Ground.Update()
	w.Obstacles.Update()
	w.Decor.Update()
}

// Clear releases everything streamed so far.
func (w *World) Clear() {
	w.Ground.Clear()
	w.Obstacles.ClearAll()
	w.Decor.Clear()
}
