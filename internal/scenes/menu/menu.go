// Package menu implements the title scene. The player walks an avatar
// along a path into the portal, or confirms, to start a run.
package menu

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-runner/internal/core"
	"github.com/vovakirdan/tui-runner/internal/logging"
	"github.com/vovakirdan/tui-runner/internal/registry"
	"github.com/vovakirdan/tui-runner/internal/score"
)

// Scene names.
const (
	SceneID = "menu"
	RunID   = "run"
)

// Path layout in cells.
const (
	pathLength  = 40
	portalWidth = 3
)

// Glyphs.
const (
	avatarChar = '@'
	portalChar = '◎'
	pathChar   = '─'
)

var title = []string{
	"╔═╗╔╦╗╔╗ ╔═╗╦═╗  ╦═╗╦ ╦╔╗╔",
	"║╣ ║║║╠╩╗║╣ ╠╦╝  ╠╦╝║ ║║║║",
	"╚═╝╩ ╩╚═╝╚═╝╩╚═  ╩╚═╚═╝╝╚╝",
}

// Scene is the title scene.
type Scene struct {
	best   score.BestStore
	logger *log.Logger

	runtime core.RuntimeConfig
	portal  core.Rect
	avatar  float64
	bestVal int
	frame   int
}

// New creates the menu scene.
func New(env registry.Env) *Scene {
	return &Scene{
		best:   env.Best,
		logger: logging.OrDiscard(env.Logger).WithPrefix(SceneID),
		portal: core.NewRect(pathLength-portalWidth, 0, portalWidth, 1),
	}
}

// ID returns the scene name.
func (s *Scene) ID() string { return SceneID }

// Title returns the display name.
func (s *Scene) Title() string { return "Title" }

// Reset places the avatar at the start of the path and reloads the best score.
func (s *Scene) Reset(rt core.RuntimeConfig) {
	s.runtime = rt
	s.avatar = 0
	s.frame = 0
	s.bestVal = 0
	if s.best != nil {
		best, err := s.best.BestScore()
		if err != nil {
			s.logger.Warn("could not load best score", "error", err)
		} else {
			s.bestVal = best
		}
	}
}

// Step moves the avatar and loads the run when it enters the portal or the
// player confirms.
func (s *Scene) Step(in core.InputFrame) core.StepResult {
	s.frame++

	if in.Has(core.ActionConfirm) || in.Has(core.ActionJump) {
		return s.load("confirm")
	}

	// One cell per press; terminals deliver held keys as repeats.
	if in.Has(core.ActionLeft) {
		s.avatar--
	}
	if in.Has(core.ActionRight) {
		s.avatar++
	}
	s.avatar = core.ClampF(s.avatar, 0, pathLength-1)

	if s.portal.Contains(int(s.avatar), 0) {
		return s.load("portal")
	}
	return core.StepResult{State: s.State()}
}

func (s *Scene) load(trigger string) core.StepResult {
	s.logger.Debug("loading scene", "scene", RunID, "trigger", trigger)
	return core.StepResult{State: s.State(), NextScene: RunID}
}

// Avatar returns the avatar position along the path.
func (s *Scene) Avatar() float64 { return s.avatar }

// State reports the best score; the menu has no run of its own.
func (s *Scene) State() core.GameState {
	return core.GameState{BestScore: s.bestVal}
}

// Render draws the title, the path with the portal and the controls.
func (s *Scene) Render(dst *core.Screen) {
	dst.Clear()
	w, h := dst.Width(), dst.Height()

	top := h/2 - 6
	if top < 0 {
		top = 0
	}
	for i, line := range title {
		dst.DrawTextColored(centerX(w, line), top+i, line, core.ColorOrange)
	}

	sub := "a three lane escape from the volcano"
	dst.DrawTextColored(centerX(w, sub), top+4, sub, core.ColorGray)

	pathX := (w - pathLength) / 2
	pathY := top + 7
	dst.DrawHLine(pathX, pathY+1, pathLength, pathChar, core.ColorBrown)

	portalColor := core.ColorMagenta
	if (s.frame/15)%2 == 1 {
		portalColor = core.ColorCyan
	}
	for x := s.portal.X; x < s.portal.Right(); x++ {
		dst.SetColored(pathX+x, pathY, portalChar, portalColor)
	}
	dst.SetColored(pathX+int(s.avatar), pathY, avatarChar, core.ColorBrightYellow)

	best := fmt.Sprintf("Best: %d", s.bestVal)
	dst.DrawTextColored(centerX(w, best), pathY+3, best, core.ColorBrightWhite)

	hint := "←/→ walk into the portal  •  Enter start  •  Q quit"
	dst.DrawTextColored(centerX(w, hint), pathY+5, hint, core.ColorGray)
}

func centerX(width int, text string) int {
	x := (width - len([]rune(text))) / 2
	if x < 0 {
		return 0
	}
	return x
}

func init() {
	registry.Register(SceneID, "Title", func(env registry.Env) registry.Scene {
		return New(env)
	})
}
