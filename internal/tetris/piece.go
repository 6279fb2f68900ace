package tetris

import (
	"math/rand"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

// Shape identifies one of the seven tetromino forms.
type Shape int

const (
	ShapeI Shape = iota
	ShapeO
	ShapeL
	ShapeJ
	ShapeT
	ShapeS
	ShapeZ
)

// ShapeCount is the number of tetromino forms.
const ShapeCount = 7

// String returns the conventional one-letter name of the shape.
func (s Shape) String() string {
	switch s {
	case ShapeI:
		return "I"
	case ShapeO:
		return "O"
	case ShapeL:
		return "L"
	case ShapeJ:
		return "J"
	case ShapeT:
		return "T"
	case ShapeS:
		return "S"
	case ShapeZ:
		return "Z"
	default:
		return "?"
	}
}

// Block is a single cell of a piece, in grid coordinates.
// X grows rightward, Y grows downward. Y may be negative while a freshly
// rotated piece pokes above the visible grid.
type Block struct {
	X, Y  int
	Color core.Color
}

// Piece is the falling tetromino: exactly four blocks plus its shape tag.
// The shape tag is immutable for the piece's lifetime; the square skips
// rotation entirely.
type Piece struct {
	Blocks [4]Block
	Shape  Shape
}

// shapeSpecs holds the spawn layout of every shape: four cells near the
// horizontal center of the grid, anchored at rows 0-1, plus the shape's
// fixed color. Block order matters: index 1 is the rotation pivot.
var shapeSpecs = [ShapeCount]struct {
	cells [4][2]int
	color core.Color
}{
	ShapeI: {cells: [4][2]int{{3, 0}, {4, 0}, {5, 0}, {6, 0}}, color: core.ColorCyan},
	ShapeO: {cells: [4][2]int{{4, 0}, {5, 0}, {4, 1}, {5, 1}}, color: core.ColorYellow},
	ShapeL: {cells: [4][2]int{{3, 0}, {3, 1}, {4, 1}, {5, 1}}, color: core.ColorRed},
	ShapeJ: {cells: [4][2]int{{5, 0}, {3, 1}, {4, 1}, {5, 1}}, color: core.ColorGreen},
	ShapeT: {cells: [4][2]int{{4, 0}, {3, 1}, {4, 1}, {5, 1}}, color: core.ColorMagenta},
	ShapeS: {cells: [4][2]int{{4, 0}, {5, 0}, {3, 1}, {4, 1}}, color: core.ColorWhite},
	ShapeZ: {cells: [4][2]int{{3, 0}, {4, 0}, {4, 1}, {5, 1}}, color: core.ColorOrange},
}

// NewPiece creates a piece of the given shape at its spawn position.
func NewPiece(shape Shape) Piece {
	spec := shapeSpecs[shape]
	p := Piece{Shape: shape}
	for i, c := range spec.cells {
		p.Blocks[i] = Block{X: c[0], Y: c[1], Color: spec.color}
	}
	return p
}

// NewRandomPiece creates a piece with a uniformly random shape.
func NewRandomPiece(rng *rand.Rand) Piece {
	return NewPiece(Shape(rng.Intn(ShapeCount)))
}
