package player

import (
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-runner/internal/core"
	"github.com/vovakirdan/tui-runner/internal/logging"
)

// TeleportGuard rejects per-frame jumps of the animated model offset larger
// than a threshold, keeping the last accepted offset instead.
// It guards the model-local offset only; the body position is owned by
// Locomotion and never corrected here.
type TeleportGuard struct {
	enabled   bool
	threshold float64
	last      core.Vec3
	primed    bool
	rejected  int
	logger    *log.Logger
}

// NewTeleportGuard creates a guard. A disabled guard passes offsets through.
func NewTeleportGuard(enabled bool, threshold float64, logger *log.Logger) *TeleportGuard {
	return &TeleportGuard{
		enabled:   enabled,
		threshold: threshold,
		logger:    logging.OrDiscard(logger),
	}
}

// Apply returns the offset to display this frame. The first frame after
// construction or Rebase is always accepted.
func (g *TeleportGuard) Apply(offset core.Vec3) core.Vec3 {
	if !g.enabled {
		return offset
	}
	if !g.primed {
		g.last = offset
		g.primed = true
		return offset
	}
	if offset.Sub(g.last).Len() > g.threshold {
		g.rejected++
		g.logger.Debug("animation teleport corrected", "from", g.last, "to", offset)
		return g.last
	}
	g.last = offset
	return offset
}

// Rebase accepts offset as the new reference.
func (g *TeleportGuard) Rebase(offset core.Vec3) {
	g.last = offset
	g.primed = true
}

// Rejected returns how many frames were corrected.
func (g *TeleportGuard) Rejected() int {
	return g.rejected
}
