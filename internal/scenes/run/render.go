package run

import (
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/vovakirdan/tui-runner/internal/config"
	"github.com/vovakirdan/tui-runner/internal/core"
	"github.com/vovakirdan/tui-runner/internal/player"
	"github.com/vovakirdan/tui-runner/internal/world"
)

// Visual characters for rendering
const (
	PlayerChar    = '@'
	PlayerAirChar = '◎'
	PlayerHitChar = 'o'
	LegLeftChar   = '╱'
	LegRightChar  = '╲'
	EdgeChar      = '│'
	LaneChar      = '┆'
	SeamChar      = '·'
	ObstacleChar  = '▓'
	HitSparkChar  = '✶'
	DamageChar    = '✖'
	HeartFull     = '♥'
	HeartEmpty    = '♡'
)

// View tuning.
const (
	maxTrackCols = 3.0  // columns per world unit on the track
	viewAhead    = 60.0 // world units shown ahead of the player
	hudRows      = 1
	hintRows     = 1
)

// view projects world positions onto the screen, top-down, travel axis up.
type view struct {
	width, height int
	top, bottom   int
	centerX       int
	playerRow     int
	focusZ        float64
	zScale        float64 // world units per row
	trackHalf     float64
	trackScale    float64 // columns per unit on the track
	sideScale     float64 // columns per unit beyond the track
}

func newView(dst *core.Screen, focusZ float64, cfg config.RunnerConfig) view {
	v := view{
		width:     dst.Width(),
		height:    dst.Height(),
		top:       hudRows,
		bottom:    dst.Height() - hintRows - 1,
		centerX:   dst.Width() / 2,
		focusZ:    focusZ,
		trackHalf: cfg.Ground.Width / 2,
	}
	if v.trackHalf <= 0 {
		v.trackHalf = 5
	}

	v.playerRow = v.bottom - 2
	rows := v.playerRow - v.top
	if rows < 1 {
		rows = 1
	}
	v.zScale = viewAhead / float64(rows)

	half := float64(v.width/2 - 2)
	v.trackScale = math.Min(maxTrackCols, half/(v.trackHalf*2))
	trackCols := v.trackHalf * v.trackScale
	side := cfg.Decor.MaxSideDistance - v.trackHalf
	v.sideScale = 0.1
	if side > 0 && half > trackCols {
		v.sideScale = math.Max(0.1, (half-trackCols)/side)
	}
	return v
}

func (v view) col(x float64) int {
	ax := math.Abs(x)
	var c float64
	if ax <= v.trackHalf {
		c = ax * v.trackScale
	} else {
		c = v.trackHalf*v.trackScale + (ax-v.trackHalf)*v.sideScale
	}
	if x < 0 {
		c = -c
	}
	return core.Clamp(v.centerX+int(math.Round(c)), 0, v.width-1)
}

func (v view) row(z float64) int {
	return v.playerRow - int(math.Round((z-v.focusZ)/v.zScale))
}

func (v view) rowZ(row int) float64 {
	return v.focusZ + float64(v.playerRow-row)*v.zScale
}

func (v view) visible(row int) bool {
	return row >= v.top && row <= v.bottom
}

// Render draws the current scene to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.move == nil {
		return
	}

	focus := g.camera.Position().Sub(g.camera.Offset()).Z
	v := newView(dst, focus, g.cfg)

	if g.world != nil {
		g.drawGround(dst, v)
		g.drawDecor(dst, v)
		g.drawObstacles(dst, v)
	}
	g.drawEffects(dst, v)
	g.drawPlayer(dst, v)
	g.drawHUD(dst)

	if g.paused {
		drawCenteredMessage(dst, "PAUSED", "P to resume  |  M for menu", core.ColorBrightYellow)
	}
	if g.gameOver {
		title := "GAME OVER"
		if g.newBest {
			title = "NEW RECORD!"
		}
		drawCenteredMessage(dst, title,
			fmt.Sprintf("Score: %d  |  R restart  |  M menu", g.score.Score()), core.ColorBrightRed)
	}
}

func (g *Game) drawGround(dst *core.Screen, v view) {
	tiles := g.world.Ground.Tiles()
	left, right := v.col(-v.trackHalf)-1, v.col(v.trackHalf)+1
	laneHalf := g.cfg.Player.LaneDistance / 2

	for row := v.top; row <= v.bottom; row++ {
		z := v.rowZ(row)
		covered, seam := false, false
		for _, t := range tiles {
			tile := t.Value
			if z >= tile.Z && z < tile.Z+tile.Length {
				covered = true
			}
			if tile.Z >= z && tile.Z < z+v.zScale {
				seam = true
			}
		}
		if !covered {
			continue
		}

		dst.SetColored(left, row, EdgeChar, core.ColorBrown)
		dst.SetColored(right, row, EdgeChar, core.ColorBrown)
		if seam {
			dst.DrawHLine(left+1, row, right-left-1, SeamChar, core.ColorDarkRed)
		}
		dst.SetColored(v.col(-laneHalf), row, LaneChar, core.ColorGray)
		dst.SetColored(v.col(laneHalf), row, LaneChar, core.ColorGray)
	}
}

func decorGlyph(k world.DecorKind) (rune, core.Color) {
	switch k {
	case world.FireCrystal:
		return '◆', core.ColorOrange
	case world.Torch:
		return '¡', core.ColorBrightYellow
	case world.Geyser:
		return '║', core.ColorRed
	case world.Mountain:
		return '▲', core.ColorDarkRed
	default:
		return '●', core.ColorBrown
	}
}

func (g *Game) drawDecor(dst *core.Screen, v view) {
	for _, it := range g.world.Decor.Items() {
		d := it.Value
		row := v.row(d.Pos.Z)
		if !v.visible(row) {
			continue
		}
		r, c := decorGlyph(d.Kind)
		dst.SetColored(v.col(d.Pos.X), row, r, c)
	}
}

func (g *Game) drawObstacles(dst *core.Screen, v view) {
	for _, it := range g.world.Obstacles.Items() {
		ob := it.Value
		glyph := ObstacleChar
		if r, _ := utf8.DecodeRuneInString(ob.Kind.Glyph); r != utf8.RuneError {
			glyph = r
		}
		color := core.ColorOrange
		if ob.Hit {
			color = core.ColorGray
		}

		x0, x1 := v.col(ob.Pos.X-ob.Kind.Width/2), v.col(ob.Pos.X+ob.Kind.Width/2)
		r0, r1 := v.row(ob.Pos.Z+ob.Kind.Depth/2), v.row(ob.Pos.Z-ob.Kind.Depth/2)
		for row := r0; row <= r1; row++ {
			if !v.visible(row) {
				continue
			}
			dst.DrawHLine(x0, row, x1-x0+1, glyph, color)
		}
	}
}

func (g *Game) drawEffects(dst *core.Screen, v view) {
	for _, e := range g.effects {
		row := v.row(e.Pos.Z)
		if !v.visible(row) {
			continue
		}
		switch e.Kind {
		case EffectHit:
			dst.SetColored(v.col(e.Pos.X), row, HitSparkChar, core.ColorBrightYellow)
		case EffectDamage:
			dst.SetColored(v.col(e.Pos.X)-1, row, DamageChar, core.ColorBrightRed)
		}
	}
}

func (g *Game) drawPlayer(dst *core.Screen, v view) {
	pos := g.move.Position()
	x, row := v.col(pos.X), v.row(pos.Z)

	glyph := PlayerChar
	switch {
	case g.health.Scale() < 1:
		glyph = PlayerHitChar
	case g.move.State() == player.Airborne:
		glyph = PlayerAirChar
	}
	color := core.ColorBrightWhite
	if g.health.Flashing() {
		color = core.ColorRed
	}
	dst.SetColored(x, row, glyph, color)

	// Legs alternate with the running bob; tucked while airborne.
	if g.move.State() == player.Airborne {
		return
	}
	if g.modelOffset.Y >= 0 {
		dst.SetColored(x, row+1, LegLeftChar, color)
	} else {
		dst.SetColored(x, row+1, LegRightChar, color)
	}
}

func (g *Game) drawHUD(dst *core.Screen) {
	hud := fmt.Sprintf(" Score: %d  Best: %d  Speed: %.1f  Dist: %dm ",
		g.score.Score(), g.score.Best(), g.move.Speed(), int(g.move.Travel()))
	dst.DrawTextColored(1, 0, hud, core.ColorBrightWhite)

	var hearts strings.Builder
	for _, full := range g.health.Hearts() {
		if full {
			hearts.WriteRune(HeartFull)
		} else {
			hearts.WriteRune(HeartEmpty)
		}
	}
	h := hearts.String()
	dst.DrawTextColored(dst.Width()-utf8.RuneCountInString(h)-2, 0, h, core.ColorBrightRed)

	hint := "←/→ lane  space jump  p pause  q quit"
	if g.world != nil {
		var off []string
		if !g.world.Ground.Enabled() {
			off = append(off, "ground")
		}
		if !g.world.Obstacles.Enabled() {
			off = append(off, "obstacles")
		}
		if !g.world.Decor.Enabled() {
			off = append(off, "decor")
		}
		if len(off) > 0 {
			hint += "  [off: " + strings.Join(off, ",") + "]"
		}
	}
	dst.DrawTextColored(1, dst.Height()-1, hint, core.ColorGray)
}

// drawCenteredMessage draws a message box in the center of the screen.
func drawCenteredMessage(dst *core.Screen, title, subtitle string, titleColor core.Color) {
	w := dst.Width()
	h := dst.Height()

	titleLen := utf8.RuneCountInString(title)
	subLen := utf8.RuneCountInString(subtitle)
	boxW := core.Max(titleLen, subLen) + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	dst.DrawRect(core.NewRect(boxX, boxY, boxW, boxH), ' ')
	dst.DrawBox(core.NewRect(boxX, boxY, boxW, boxH))

	dst.DrawTextColored(boxX+(boxW-titleLen)/2, boxY+1, title, titleColor)
	dst.DrawText(boxX+(boxW-subLen)/2, boxY+3, subtitle)
}
