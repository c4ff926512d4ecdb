package catch

import (
	"fmt"
	"math"

	"github.com/vovakirdan/tui-catch/internal/core"
)

// Visual characters for rendering
const (
	CatcherChar = '▀'
	ObjectChar  = '●'
	GroundChar  = '═'
)

// Minimum screen size that still shows a playable field.
const (
	minScreenW = 20
	minScreenH = 8
)

// hudRows is the number of rows above the field.
const hudRows = 1

// layout maps field units to screen cells. The field spans the full width;
// the object falls from the first row under the HUD to the catcher row.
type layout struct {
	w, h       int
	scaleX     float64 // Cells per field unit
	fieldW     float64
	fieldTop   int
	catcherRow int
	groundRow  int
	catchY     float64
	tooSmall   bool
}

func newLayout(w, h int, p Params) layout {
	l := layout{
		w:        w,
		h:        h,
		fieldW:   p.FieldWidth,
		fieldTop: hudRows,
		catchY:   p.CatchY,
		tooSmall: w < minScreenW || h < minScreenH,
	}
	l.scaleX = float64(w) / p.FieldWidth
	l.groundRow = h - 1
	l.catcherRow = h - 2
	return l
}

// col returns the screen column of field coordinate x.
func (l layout) col(x float64) int {
	return int(math.Floor(x * l.scaleX))
}

// cells returns how many columns a field length covers, at least one.
func (l layout) cells(length float64) int {
	return max(1, int(math.Round(length*l.scaleX)))
}

// row returns the screen row of a falling object at field height y.
func (l layout) row(y float64) int {
	span := l.catcherRow - l.fieldTop
	frac := core.ClampF(y/l.catchY, 0, 1)
	return l.fieldTop + int(frac*float64(span))
}

// fieldX converts a tapped screen column to a field coordinate.
func (l layout) fieldX(col int) float64 {
	if l.w <= 0 {
		return 0
	}
	return float64(col) * l.fieldW / float64(l.w)
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.layout.tooSmall {
		dst.DrawTextCentered(dst.Height()/2, "Too small")
		return
	}

	s := g.engine.Snapshot()
	p := g.engine.Params()
	l := g.layout

	dst.DrawHLine(0, l.groundRow, dst.Width(), GroundChar, core.ColorGray)

	// Object
	objRow := l.row(s.ObjectY)
	objCol := l.col(s.ObjectX)
	for dx := 0; dx < l.cells(p.ObjectWidth); dx++ {
		dst.SetColored(objCol+dx, objRow, ObjectChar, core.ColorBrightRed)
	}

	// Catcher; partly or fully off-screen when unclamped
	catcherColor := core.ColorBrightGreen
	if s.Phase == PhaseGameOver {
		catcherColor = core.ColorGray
	}
	dst.DrawHLine(l.col(s.CatcherX), l.catcherRow, l.cells(p.CatcherWidth), CatcherChar, catcherColor)

	// HUD
	dst.DrawText(2, 0, fmt.Sprintf(" Score: %d ", s.Score))
	speedText := fmt.Sprintf(" Spd: %.1f ", s.FallSpeed)
	dst.DrawTextColored(dst.Width()-len(speedText)-2, 0, speedText, core.ColorYellow)
	if g.best > 0 {
		dst.DrawText(16, 0, fmt.Sprintf(" Best: %d ", g.best))
	}
	if g.rounds > 0 {
		dst.DrawText(28, 0, fmt.Sprintf(" Lost: %d ", g.rounds))
	}

	if g.paused {
		g.drawCenteredMessage(dst, "PAUSED", "Press P to resume")
		return
	}

	if s.Phase == PhaseGameOver {
		secs := s.ResetRemaining.Seconds()
		g.drawCenteredMessage(dst, "GAME OVER", fmt.Sprintf("Score: %d  |  next round in %.1fs", s.Score, secs))
	}
}

// drawCenteredMessage draws a message box in the center of the screen.
func (g *Game) drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	boxW := max(len(title), len(subtitle)) + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	dst.DrawRect(core.NewRect(boxX, boxY, boxW, boxH), ' ', core.ColorDefault)
	dst.DrawBox(core.NewRect(boxX, boxY, boxW, boxH))

	titleX := boxX + (boxW-len(title))/2
	dst.DrawTextColored(titleX, boxY+1, title, core.ColorBrightWhite)

	subtitleX := boxX + (boxW-len(subtitle))/2
	dst.DrawText(subtitleX, boxY+3, subtitle)
}
