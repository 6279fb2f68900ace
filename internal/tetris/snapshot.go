package tetris

import "github.com/vovakirdan/tui-tetris/internal/core"

// GridCell is one occupied cell of the board, as handed to a renderer.
type GridCell struct {
	X, Y  int
	Color core.Color
}

// Frame is the read-only draw data for one display frame: the active
// piece's blocks, every occupied board cell, the score, and the game-over
// flag. Everything is in grid coordinates; pixel or character mapping is
// the renderer's problem.
type Frame struct {
	Blocks   [4]Block
	Cells    []GridCell
	Score    int
	GameOver bool
}

// Frame captures the current draw data.
func (g *Game) Frame() Frame {
	f := Frame{
		Blocks:   g.piece.Blocks,
		Score:    g.score,
		GameOver: g.gameOver,
	}
	for y := 0; y < GridHeight; y++ {
		for x := 0; x < GridWidth; x++ {
			if c := g.board[y][x]; c != core.ColorDefault {
				f.Cells = append(f.Cells, GridCell{X: x, Y: y, Color: c})
			}
		}
	}
	return f
}

// Snapshot captures the complete game state for determinism testing.
type Snapshot struct {
	Tick     uint64
	Score    int
	Shape    Shape
	Blocks   [4]Block
	Board    Board
	GameOver bool
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	return Snapshot{
		Tick:     g.tick,
		Score:    g.score,
		Shape:    g.piece.Shape,
		Blocks:   g.piece.Blocks,
		Board:    g.board,
		GameOver: g.gameOver,
	}
}

// Hash returns a simple hash of the snapshot for determinism testing.
func (snap *Snapshot) Hash() uint64 {
	h := snap.Tick
	h = h*31 + uint64(snap.Score) //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Shape) //#nosec G115 -- hash computation
	if snap.GameOver {
		h = h*31 + 1
	} else {
		h = h * 31
	}

	for _, b := range snap.Blocks {
		h = h*31 + uint64(int64(b.X)+64) //#nosec G115 -- hash computation
		h = h*31 + uint64(int64(b.Y)+64) //#nosec G115 -- hash computation
		h = h*31 + uint64(b.Color)
	}

	for y := 0; y < GridHeight; y++ {
		for x := 0; x < GridWidth; x++ {
			h = h*31 + uint64(snap.Board[y][x])
		}
	}

	return h
}
