package breakout

import (
	"fmt"
	"math"

	"github.com/vovakirdan/brickfall/internal/core"
	"github.com/vovakirdan/brickfall/internal/games/breakout/levels"
	"github.com/vovakirdan/brickfall/internal/games/breakout/physics"
	"github.com/vovakirdan/brickfall/internal/games/breakout/tiles"
)

// Visual characters for rendering
const (
	PaddleChar = '='
	BallChar   = '●'
	HazardChar = '✶'
	HeartChar  = '♥'
)

// Fade glyphs, lightest first.
var fadeGlyphs = []rune{'░', '▒', '▓'}

// fieldCells is the number of level cells along each field axis.
const fieldCells = levels.Size

// Minimum screen size: one column per cell plus the border and HUD.
const (
	minScreenW = fieldCells + 2
	minScreenH = fieldCells + 3
)

// layout maps the play field onto the screen. Field X runs down the screen
// rows, field Z across the columns.
type layout struct {
	left, top    int // inner top-left corner
	cellW, cellH int
}

func newLayout(w, h int) layout {
	cellW := core.Clamp((w-2)/fieldCells, 1, 3)
	cellH := core.Clamp((h-3)/fieldCells, 1, 2)
	boxW := fieldCells*cellW + 2
	return layout{
		left:  (w-boxW)/2 + 1,
		top:   2,
		cellW: cellW,
		cellH: cellH,
	}
}

func (l layout) box() core.Rect {
	return core.NewRect(l.left-1, l.top-1, fieldCells*l.cellW+2, fieldCells*l.cellH+2)
}

// project converts a field position to a screen cell.
func (l layout) project(p physics.Vec3) (x, y int) {
	x = l.left + core.Clamp(int(p.Z*float64(l.cellW)), 0, fieldCells*l.cellW-1)
	y = l.top + core.Clamp(int(p.X*float64(l.cellH)), 0, fieldCells*l.cellH-1)
	return x, y
}

// Render draws the field, HUD and any status overlay.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if dst.Width() < minScreenW || dst.Height() < minScreenH {
		dst.DrawTextCentered(dst.Height()/2-1, "Window too small")
		dst.DrawTextCentered(dst.Height()/2+1, fmt.Sprintf("Need %dx%d", minScreenW, minScreenH))
		return
	}
	if g.session == nil {
		return
	}

	l := newLayout(dst.Width(), dst.Height())
	dst.DrawBox(l.box())

	g.renderHUD(dst)
	g.renderBricks(dst, l)
	g.renderPaddles(dst, l)
	g.renderBalls(dst, l)
	g.renderFade(dst, l)
	g.renderFooter(dst, l)
	g.renderOverlay(dst)
}

// renderHUD draws score, lives and level on the top row.
func (g *Game) renderHUD(dst *core.Screen) {
	s := g.session
	dst.DrawText(1, 0, fmt.Sprintf("Score: %d", s.Score.Current))

	lives := fmt.Sprintf("%c x%d", HeartChar, s.Lives.Remaining)
	x := (dst.Width() - len([]rune(lives))) / 2
	dst.SetColored(x, 0, HeartChar, core.ColorBrightRed)
	dst.DrawText(x+1, 0, lives[len(string(HeartChar)):])

	levelText := fmt.Sprintf("Level: %d", s.Level.Number)
	dst.DrawText(dst.Width()-len(levelText)-1, 0, levelText)
}

// renderFooter shows gravity and cheat state below the field.
func (g *Game) renderFooter(dst *core.Screen, l layout) {
	y := l.box().Bottom()
	if y >= dst.Height() {
		return
	}
	s := g.session
	text := fmt.Sprintf("g=(%.1f, %.1f)", s.Gravity.Current.X, s.Gravity.Current.Z)
	dst.DrawText(1, y, text)
	if s.Cheat {
		dst.DrawText(len(text)+3, y, "CHEAT")
		for i := range len("CHEAT") {
			dst.SetColored(len(text)+3+i, y, dst.Get(len(text)+3+i, y), core.ColorBrightMagenta)
		}
	}
	if s.Respawn.Busy() {
		q := fmt.Sprintf("respawns queued: %d", len(s.Respawn.Queue))
		dst.DrawText(dst.Width()-len(q)-1, y, q)
	}
}

func (g *Game) renderBricks(dst *core.Screen, l layout) {
	for _, b := range g.world.Each(physics.KindBrick) {
		glyph, color := brickStyle(tiles.Code(b.Tag))
		x, y := l.project(physics.V(float64(b.Row), 0, float64(b.Col)))
		for dy := range l.cellH {
			for dx := range l.cellW {
				dst.SetColored(x+dx, y+dy, glyph, color)
			}
		}
	}
}

// brickStyle picks the glyph and color for a tile code.
func brickStyle(code tiles.Code) (rune, core.Color) {
	switch tiles.Classify(code).Kind {
	case tiles.KindSimple:
		return '█', core.ColorCyan
	case tiles.KindMultiHit:
		switch code {
		case tiles.MultiHit1:
			return '▓', core.ColorGreen
		case tiles.MultiHit2:
			return '▓', core.ColorYellow
		case tiles.MultiHit3:
			return '▓', core.ColorOrange
		default:
			return '▓', core.ColorRed
		}
	case tiles.KindGravity:
		return '▒', core.ColorMagenta
	case tiles.KindPaddleResize:
		if code == tiles.PaddleWiden {
			return '+', core.ColorBrightBlue
		}
		return '-', core.ColorBrightBlue
	case tiles.KindHazardTrigger:
		return '!', core.ColorBrightRed
	case tiles.KindExtraLife:
		return HeartChar, core.ColorBrightGreen
	case tiles.KindQuestion:
		return '?', core.ColorBrightYellow
	case tiles.KindPaddleOnly:
		return '▤', core.ColorBlue
	case tiles.KindIndestructible:
		return '█', core.ColorGray
	default:
		return '#', core.ColorWhite
	}
}

func (g *Game) renderPaddles(dst *core.Screen, l layout) {
	for _, p := range g.world.Each(physics.KindPaddle) {
		_, hz := p.Extents()
		x0, y := l.project(physics.V(p.Pos.X, 0, p.Pos.Z-hz))
		x1, _ := l.project(physics.V(p.Pos.X, 0, p.Pos.Z+hz))
		color := core.ColorBrightWhite
		if p.Locked {
			color = core.ColorGray
		}
		for x := x0; x <= x1; x++ {
			dst.SetColored(x, y, PaddleChar, color)
		}
	}
}

func (g *Game) renderBalls(dst *core.Screen, l layout) {
	for _, b := range g.world.Each(physics.KindBall) {
		x, y := l.project(b.Pos)
		dst.SetColored(x, y, BallChar, core.ColorBrightWhite)
	}
	for _, h := range g.world.Each(physics.KindHazard) {
		x, y := l.project(h.Pos)
		dst.SetColored(x, y, HazardChar, core.ColorBrightRed)
	}
}

// renderFade shades empty field cells while a respawn or transition runs.
func (g *Game) renderFade(dst *core.Screen, l layout) {
	o := g.session.Overlay
	if !o.Visible || o.Opacity < 0.25 {
		return
	}
	idx := int(math.Min((o.Opacity-0.25)/0.25, float64(len(fadeGlyphs)-1)))
	glyph := fadeGlyphs[idx]
	for y := l.top; y < l.top+fieldCells*l.cellH; y++ {
		for x := l.left; x < l.left+fieldCells*l.cellW; x++ {
			if dst.Get(x, y) == ' ' {
				dst.SetColored(x, y, glyph, core.ColorGray)
			}
		}
	}
}

// renderOverlay draws state messages.
func (g *Game) renderOverlay(dst *core.Screen) {
	s := g.session
	switch {
	case s.GameOver:
		g.drawCenteredBox(dst, "GAME OVER", fmt.Sprintf("Score: %d  |  R restart  C cheat", s.Score.Current))
	case s.Finished:
		g.drawCenteredBox(dst, "ALL LEVELS CLEAR", fmt.Sprintf("Final Score: %d  |  R restart", s.Score.Current))
	case g.paused:
		g.drawCenteredBox(dst, "PAUSED", "Press P to resume")
	case s.Advance.Active() && s.Advance.Next != nil:
		dst.DrawTextCentered(dst.Height()/2, fmt.Sprintf(" LEVEL %d ", s.Advance.Next.Number))
	case s.Respawn.Busy():
		dst.DrawTextCentered(dst.Height()/2, " GET READY ")
	}
}

// drawCenteredBox draws a centered message box.
func (g *Game) drawCenteredBox(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	boxW := core.Min(core.Max(len(title), len(subtitle))+4, w)
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	dst.DrawRect(core.NewRect(boxX, boxY, boxW, boxH), ' ')
	dst.DrawBox(core.NewRect(boxX, boxY, boxW, boxH))

	dst.DrawText(boxX+(boxW-len(title))/2, boxY+1, title)
	dst.DrawText(core.Max(boxX+(boxW-len(subtitle))/2, boxX+1), boxY+3, subtitle)
}
