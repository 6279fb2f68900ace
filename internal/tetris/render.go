package tetris

import (
	"fmt"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

const hudHeight = 2 // HUD text plus separator line

// Render draws the game to the screen: HUD, playfield border, locked cells,
// the active piece, and the game-over overlay when applicable.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	g.renderHUD(dst)

	// The playfield needs its border plus the HUD to fit.
	requiredW := GridWidth + 2
	requiredH := GridHeight + 2 + hudHeight
	if dst.Width() < requiredW || dst.Height() < requiredH {
		g.renderOverlay(dst, "Window too small", "Resize to continue")
		return
	}

	// Center the playfield horizontally, below the HUD.
	offsetX := (dst.Width() - GridWidth) / 2
	offsetY := hudHeight + 1

	dst.DrawBox(core.NewRect(offsetX-1, offsetY-1, GridWidth+2, GridHeight+2))

	frame := g.Frame()

	blockRune := firstRune(g.theme.Block, '█')
	activeRune := firstRune(g.theme.Active, '█')

	if g.theme.GridDots {
		for y := 0; y < GridHeight; y++ {
			for x := 0; x < GridWidth; x++ {
				dst.SetCell(offsetX+x, offsetY+y, '·', core.ColorGray)
			}
		}
	}

	// Locked cells
	for _, c := range frame.Cells {
		dst.SetCell(offsetX+c.X, offsetY+c.Y, blockRune, c.Color)
	}

	// Active piece. Blocks above the visible grid are simply not drawn.
	for _, b := range frame.Blocks {
		if b.Y >= 0 {
			dst.SetCell(offsetX+b.X, offsetY+b.Y, activeRune, b.Color)
		}
	}

	if frame.GameOver {
		g.renderOverlay(dst, "Game Over", "Press R to restart")
	}
}

// renderHUD draws the top status bar.
func (g *Game) renderHUD(dst *core.Screen) {
	hud := fmt.Sprintf(" Tetris - Score: %d", g.score)
	dst.DrawText(0, 0, hud)
	dst.DrawHLine(0, 1, dst.Width(), '─')
}

// renderOverlay draws a centered overlay message box.
func (g *Game) renderOverlay(dst *core.Screen, line1, line2 string) {
	w := dst.Width()
	h := dst.Height()

	maxLen := len(line1)
	if len(line2) > maxLen {
		maxLen = len(line2)
	}
	boxW := maxLen + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	for y := boxY; y < boxY+boxH && y < h; y++ {
		for x := boxX; x < boxX+boxW && x < w; x++ {
			if x < 0 || y < 0 {
				continue
			}
			isTopOrBottom := y == boxY || y == boxY+boxH-1
			isLeftOrRight := x == boxX || x == boxX+boxW-1
			switch {
			case isTopOrBottom && isLeftOrRight:
				dst.Set(x, y, '+')
			case isTopOrBottom:
				dst.Set(x, y, '-')
			case isLeftOrRight:
				dst.Set(x, y, '|')
			default:
				dst.Set(x, y, ' ')
			}
		}
	}

	dst.DrawTextCentered(boxY+1, line1)
	dst.DrawTextCentered(boxY+3, line2)
}

// firstRune returns the first rune of s, or fallback when s is empty.
func firstRune(s string, fallback rune) rune {
	for _, r := range s {
		return r
	}
	return fallback
}
