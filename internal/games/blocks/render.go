package blocks

import (
	"fmt"

	"github.com/vovakirdan/blockfall/internal/core"
	"github.com/vovakirdan/blockfall/internal/engine"
)

const (
	hudGap   = 2
	hudWidth = 14

	blockRune = '█'
	ghostRune = '░'
)

// layout describes where the well is drawn on the screen.
type layout struct {
	well  core.Rect // Including the border
	cellW int       // Screen columns per grid cell
	hudX  int
}

// computeLayout centers the well and the HUD on the screen.
// Cells are two columns wide when the screen allows it so they look square.
// ok is false if the well cannot fit at all.
func computeLayout(screenW, screenH, rows, cols int) (layout, bool) {
	cellW := 2
	if cols*cellW+2+hudGap+hudWidth > screenW {
		cellW = 1
	}
	wellW := cols*cellW + 2
	wellH := rows + 2
	if wellW > screenW || wellH > screenH {
		return layout{}, false
	}

	totalW := wellW + hudGap + hudWidth
	x := max((screenW-totalW)/2, 0)
	y := max((screenH-wellH)/2, 0)
	well := core.NewRect(x, y, wellW, wellH)
	return layout{well: well, cellW: cellW, hudX: well.Right() + hudGap}, true
}

// Render draws the well, the settled cells, the ghost, the live piece and the HUD.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.ctrl == nil {
		g.renderOverlay(dst, core.NewRect(0, 0, dst.Width(), dst.Height()), core.ColorBrightRed,
			"Invalid configuration", errText(g.err))
		return
	}

	snap := g.ctrl.Snapshot()
	lay, ok := computeLayout(dst.Width(), dst.Height(), len(snap.Grid), g.cfg.Grid.Cols)
	if !ok {
		g.renderOverlay(dst, core.NewRect(0, 0, dst.Width(), dst.Height()), core.ColorDefault,
			"Window too small", "Resize to continue")
		return
	}

	dst.DrawBox(lay.well)
	inner := lay.well.Inset(1)

	// Ghost first so the piece and settled cells draw over it
	if drop := snap.GhostRow - snap.Piece.Row; drop > 0 {
		snap.Piece.Cells(func(row, col int, _ engine.Cell) bool {
			if row+drop >= 0 {
				g.drawCell(dst, inner, lay.cellW, row+drop, col, ghostRune, core.ColorGray)
			}
			return true
		})
	}

	for r, row := range snap.Composite() {
		for c, v := range row {
			if v != engine.Empty {
				g.drawCell(dst, inner, lay.cellW, r, c, blockRune, g.palette[v])
			}
		}
	}

	g.renderHUD(dst, lay, snap)

	switch {
	case g.bannerTicks > 0:
		g.renderOverlay(dst, lay.well, core.ColorBrightRed,
			"BOARD RESET", fmt.Sprintf("score %d", g.lastReset.FinalScore))
	case g.paused:
		g.renderOverlay(dst, lay.well, core.ColorBrightYellow, "PAUSED", "P to resume")
	}
}

func (g *Game) drawCell(dst *core.Screen, inner core.Rect, cellW, row, col int, ch rune, color core.Color) {
	for i := 0; i < cellW; i++ {
		dst.SetCell(inner.X+col*cellW+i, inner.Y+row, ch, color)
	}
}

// renderHUD draws the score panel to the right of the well.
func (g *Game) renderHUD(dst *core.Screen, lay layout, snap engine.Snapshot) {
	x, y := lay.hudX, lay.well.Y+1

	dst.DrawTextColor(x, y, "BLOCKFALL", core.ColorBrightWhite)
	stats := []struct {
		label string
		value int
	}{
		{"SCORE", snap.Score},
		{"LINES", snap.Lines},
		{"RESETS", snap.Resets},
	}
	for i, s := range stats {
		row := y + 2 + i*3
		dst.DrawTextColor(x, row, s.label, core.ColorGray)
		dst.DrawText(x, row+1, fmt.Sprintf("%d", s.value))
	}
}

// renderOverlay draws up to two centered lines inside area.
func (g *Game) renderOverlay(dst *core.Screen, area core.Rect, color core.Color, line1, line2 string) {
	_, cy := area.Center()
	for i, line := range []string{line1, line2} {
		if line == "" {
			continue
		}
		text := " " + line + " "
		n := len([]rune(text))
		if n > area.W {
			text = string([]rune(text)[:max(area.W, 0)])
			n = area.W
		}
		x := area.X + (area.W-n)/2
		dst.DrawTextColor(x, cy-1+i, text, color)
	}
}

func errText(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
