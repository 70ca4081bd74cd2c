// Package score tracks the run score: points for time alive plus bonus
// points, with the best score kept in an injected store.
package score

import (
	"math"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-runner/internal/config"
	"github.com/vovakirdan/tui-runner/internal/logging"
)

// BestStore persists the best score.
type BestStore interface {
	BestScore() (int, error)
	SetBestScore(score int) error
}

// Manager computes the score as floor(time_alive * points_per_second) + bonus.
type Manager struct {
	cfg    config.ScoreConfig
	store  BestStore
	logger *log.Logger

	timeAlive float64
	bonus     int
	best      int
	active    bool
	newBest   bool
}

// NewManager creates a score manager and loads the best score from store.
// A nil store keeps the best score in memory only.
func NewManager(cfg config.ScoreConfig, store BestStore, logger *log.Logger) *Manager {
	m := &Manager{
		cfg:    cfg,
		store:  store,
		logger: logging.OrDiscard(logger),
		active: true,
	}
	if store != nil {
		best, err := store.BestScore()
		if err != nil {
			m.logger.Warn("could not load best score", "error", err)
		} else {
			m.best = best
		}
	}
	return m
}

// Update accrues time while the run is active.
func (m *Manager) Update(dt float64) {
	if m.active {
		m.timeAlive += dt
	}
}

// AddBonus adds points while the run is active.
func (m *Manager) AddBonus(points int) {
	if m.active {
		m.bonus += points
	}
}

// ObstacleAvoided awards obstacle_points.
func (m *Manager) ObstacleAvoided() {
	m.AddBonus(m.cfg.ObstaclePoints)
	m.logger.Debug("obstacle avoided", "points", m.cfg.ObstaclePoints)
}

// GameOver freezes the score and persists it when it beats the best.
// Returns whether a new best was set.
func (m *Manager) GameOver() bool {
	if !m.active {
		return m.newBest
	}
	m.active = false

	current := m.Score()
	if current <= m.best {
		return false
	}
	m.best = current
	m.newBest = true
	if m.store != nil {
		if err := m.store.SetBestScore(current); err != nil {
			m.logger.Warn("could not save best score", "error", err)
		}
	}
	m.logger.Info("new best score", "score", current)
	return true
}

// Restart resets the run score; the best score is kept.
func (m *Manager) Restart() {
	m.timeAlive = 0
	m.bonus = 0
	m.active = true
	m.newBest = false
}

// Score returns the current score.
func (m *Manager) Score() int {
	return int(math.Floor(m.timeAlive*m.cfg.PointsPerSecond)) + m.bonus
}

// Best returns the best score.
func (m *Manager) Best() int { return m.best }

// Bonus returns bonus points collected this run.
func (m *Manager) Bonus() int { return m.bonus }

// TimeAlive returns the seconds the current run has lasted.
func (m *Manager) TimeAlive() float64 { return m.timeAlive }

// Active reports whether the run is still scoring.
func (m *Manager) Active() bool { return m.active }

// NewBest reports whether the finished run set a new best.
func (m *Manager) NewBest() bool { return m.newBest }
