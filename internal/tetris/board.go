package tetris

import "github.com/vovakirdan/tui-tetris/internal/core"

// Playfield dimensions in cells. Fixed for the life of the game.
const (
	GridWidth  = 10
	GridHeight = 20
)

// Board is the fixed playfield of locked cells.
// The zero Color marks an empty cell; anything else is a locked block's
// color tag. Indexed [y][x], y growing downward.
type Board [GridHeight][GridWidth]core.Color

// Occupied reports whether the cell at (x, y) holds a locked block.
// Coordinates must be within the grid.
func (b *Board) Occupied(x, y int) bool {
	return b[y][x] != core.ColorDefault
}

// rowFull reports whether every cell in row y is occupied.
func (b *Board) rowFull(y int) bool {
	for x := 0; x < GridWidth; x++ {
		if b[y][x] == core.ColorDefault {
			return false
		}
	}
	return true
}

// ClearLines removes every complete row and compacts the rows above it,
// returning how many rows were cleared.
//
// The scan runs a single pointer from the bottom row upward and only
// decrements it when the current row is incomplete: after a clear, the row
// shifted down into the same index is re-checked, so a stack of consecutive
// complete rows resolves in one pass.
func (b *Board) ClearLines() int {
	cleared := 0
	y := GridHeight - 1
	for y >= 0 {
		if b.rowFull(y) {
			cleared++
			for row := y; row >= 1; row-- {
				b[row] = b[row-1]
			}
			b[0] = [GridWidth]core.Color{}
		} else {
			y--
		}
	}
	return cleared
}

// ScoreForLines returns the score awarded for clearing n rows in a single
// lock event: 1 row 100, 2 rows 300, 3 rows 500, 4 or more 800.
func ScoreForLines(n int) int {
	switch {
	case n <= 0:
		return 0
	case n == 1:
		return 100
	case n == 2:
		return 300
	case n == 3:
		return 500
	default:
		return 800
	}
}
