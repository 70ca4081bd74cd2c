package player

import (
	"math"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-runner/internal/config"
	"github.com/vovakirdan/tui-runner/internal/logging"
	"github.com/vovakirdan/tui-runner/internal/sched"
)

// HealthState is the damage state.
type HealthState int

const (
	Vulnerable HealthState = iota
	Invincible
	Dead // terminal until Restart
)

func (s HealthState) String() string {
	switch s {
	case Vulnerable:
		return "vulnerable"
	case Invincible:
		return "invincible"
	case Dead:
		return "game_over"
	default:
		return "unknown"
	}
}

// Damageable is the capability obstacles look for on what they hit.
type Damageable interface {
	TakeDamage() bool
}

// Health tracks lives and the timed invincibility, flash and recoil effects.
// Timed effects are one-shot tasks on the scene scheduler.
type Health struct {
	cfg    config.HealthConfig
	sched  *sched.Scheduler
	logger *log.Logger

	lives      int
	invincible bool
	window     uint64 // generation of the current invincibility window
	run        uint64 // generation of the current run, bumped on Start and Disable
	gameOver   bool
	disabled   bool

	flash bool    // red tint currently shown
	scale float64 // model scale, below 1 during recoil

	onGameOver func()
	onDamage   func(lives int)
}

// NewHealth creates a health component driven by s.
func NewHealth(cfg config.HealthConfig, s *sched.Scheduler, logger *log.Logger) *Health {
	return &Health{
		cfg:    cfg,
		sched:  s,
		logger: logging.OrDiscard(logger),
		lives:  cfg.MaxLives,
		scale:  1,
	}
}

// OnGameOver registers the callback fired once when lives reach zero.
func (h *Health) OnGameOver(fn func()) {
	h.onGameOver = fn
}

// OnDamage registers a callback fired after every applied hit.
func (h *Health) OnDamage(fn func(lives int)) {
	h.onDamage = fn
}

// Start resets lives and applies the start-of-run invincibility window.
func (h *Health) Start() {
	h.run++
	h.lives = h.cfg.MaxLives
	h.gameOver = false
	h.disabled = false
	h.flash = false
	h.scale = 1
	h.beginWindow(h.cfg.StartInvincibility, false)
	h.logger.Debug("start invincibility", "seconds", h.cfg.StartInvincibility)
}

// TakeDamage applies one hit. It is ignored while invincible, after game over
// and once disabled. Returns whether a life was lost.
func (h *Health) TakeDamage() bool {
	if h.disabled || h.gameOver || h.invincible {
		return false
	}

	h.lives--
	h.logger.Info("life lost", "lives", h.lives)

	h.recoil()
	h.beginWindow(h.cfg.InvincibilityDuration, true)

	if h.onDamage != nil {
		h.onDamage(h.lives)
	}
	if h.lives <= 0 {
		h.lives = 0
		h.enterGameOver()
	}
	return true
}

// Restart resets lives and effects and starts a fresh start window.
// Effect tasks still pending from the previous run become no-ops.
func (h *Health) Restart() {
	h.Start()
}

// Disable stops the component; pending windows become no-ops.
func (h *Health) Disable() {
	h.disabled = true
	h.run++
	h.window++
	h.invincible = false
	h.flash = false
	h.scale = 1
}

func (h *Health) enterGameOver() {
	if h.gameOver {
		return
	}
	h.gameOver = true
	h.logger.Info("game over")
	if h.onGameOver != nil {
		h.onGameOver()
	}
}

// beginWindow makes the player invincible for duration seconds, optionally
// toggling the red flash every flash_interval. A newer window supersedes the
// end of an older one.
func (h *Health) beginWindow(duration float64, flash bool) {
	h.window++
	gen := h.window
	h.invincible = true

	end := duration
	if flash && h.cfg.FlashInterval > 0 {
		steps := int(math.Ceil(duration/h.cfg.FlashInterval - 1e-9))
		h.flash = true
		for k := 1; k < steps; k++ {
			h.sched.After(float64(k)*h.cfg.FlashInterval, func() {
				if h.window == gen && !h.disabled {
					h.flash = !h.flash
				}
			})
		}
		end = float64(steps) * h.cfg.FlashInterval
	}

	h.sched.After(end, func() {
		if h.window != gen {
			return
		}
		h.invincible = false
		h.flash = false
	})
}

func (h *Health) recoil() {
	if h.cfg.RecoilScale <= 0 {
		return
	}
	run := h.run
	h.scale = h.cfg.RecoilScale
	h.sched.After(h.cfg.RecoilDuration, func() {
		if h.run == run {
			h.scale = 1
		}
	})
}

// Lives returns the remaining lives.
func (h *Health) Lives() int { return h.lives }

// MaxLives returns the configured life count.
func (h *Health) MaxLives() int { return h.cfg.MaxLives }

// IsInvincible reports whether damage is currently ignored.
func (h *Health) IsInvincible() bool { return h.invincible }

// IsGameOver reports whether the run has ended.
func (h *Health) IsGameOver() bool { return h.gameOver }

// Flashing reports whether the damage tint is currently shown.
func (h *Health) Flashing() bool { return h.flash }

// Scale returns the model scale (1 outside the recoil effect).
func (h *Health) Scale() float64 { return h.scale }

// State returns the damage state.
func (h *Health) State() HealthState {
	switch {
	case h.gameOver:
		return Dead
	case h.invincible:
		return Invincible
	default:
		return Vulnerable
	}
}

// Hearts returns one entry per max life, true while that life remains.
func (h *Health) Hearts() []bool {
	hearts := make([]bool, h.cfg.MaxLives)
	for i := range hearts {
		hearts[i] = i < h.lives
	}
	return hearts
}
