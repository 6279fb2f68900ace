// Package tetris implements the falling-block puzzle engine: piece
// movement and rotation, collision rules, line clearing, scoring, and the
// timing-gated input model. It is pure game logic; the platform layer owns
// the terminal, the clock, and the keyboard.
package tetris

import (
	"math/rand"
	"time"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/registry"
)

// Input gate intervals. Moves and rotations share the same threshold;
// the automatic drop runs on its own slower clock.
const (
	moveInterval = 100 * time.Millisecond
	dropInterval = 500 * time.Millisecond
)

// Game is the engine state: the active piece, the board of locked cells,
// the score, the terminal game-over flag, and one last-fired timestamp per
// gated action category.
type Game struct {
	rng          *rand.Rand
	tick         uint64
	tickInterval time.Duration

	piece    Piece
	board    Board
	score    int
	gameOver bool

	// Independent gate clocks. Rotating must not reset the move gate and
	// vice versa; soft drop shares the move gate.
	lastMove   time.Duration
	lastDrop   time.Duration
	lastRotate time.Duration

	theme config.RenderConfig

	// Screen dimensions, for rendering only
	screenW int
	screenH int
}

// Package-level config path, set by the CLI before the game is created.
var configPath string

// SetConfigPath sets the render config file path.
func SetConfigPath(path string) {
	configPath = path
}

// New creates a new Tetris game.
func New() *Game {
	return &Game{}
}

func init() {
	registry.Register("tetris", func() registry.Game {
		return New()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return "tetris"
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Tetris"
}

// Reset initializes/restarts the game. The board starts empty, the score at
// zero, and a fresh random piece spawns at the top of the grid.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.rng = rand.New(rand.NewSource(cfg.Seed))
	g.tick = 0

	tickRate := cfg.TickRate
	if tickRate <= 0 {
		tickRate = 60
	}
	g.tickInterval = time.Second / time.Duration(tickRate)

	g.board = Board{}
	g.score = 0
	g.gameOver = false
	g.lastMove = 0
	g.lastDrop = 0
	g.lastRotate = 0
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH

	tcfg, err := config.LoadTetris(configPath)
	if err != nil {
		tcfg = config.DefaultTetrisConfig()
	}
	g.theme = tcfg.Render

	g.piece = NewRandomPiece(g.rng)
}

// Step advances the simulation by one fixed tick, deriving the monotonic
// game clock from the tick counter.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++

	// Handle restart
	if in.Has(core.ActionRestart) && g.gameOver {
		g.Reset(core.RuntimeConfig{
			Seed:     g.rng.Int63(),
			ScreenW:  g.screenW,
			ScreenH:  g.screenH,
			TickRate: int(time.Second / g.tickInterval),
		})
		return core.StepResult{State: g.State()}
	}

	now := time.Duration(g.tick) * g.tickInterval
	g.Advance(now, in)

	return core.StepResult{State: g.State()}
}

// Advance runs one update cycle at the given monotonic game time. Each
// gated action fires only when its own interval has elapsed since its own
// last firing, and stamps only its own gate clock. Gates stamp on the
// attempt, whether or not the move itself was accepted.
//
// Once the game is over, Advance is a no-op.
func (g *Game) Advance(now time.Duration, in core.InputFrame) {
	if g.gameOver {
		return
	}

	// Horizontal movement
	if now-g.lastMove >= moveInterval {
		if in.Has(core.ActionLeft) {
			g.Move(-1, 0)
			g.lastMove = now
		}
		if in.Has(core.ActionRight) {
			g.Move(1, 0)
			g.lastMove = now
		}
	}

	// Soft drop shares the move gate
	if in.Has(core.ActionDown) && now-g.lastMove >= moveInterval {
		g.Move(0, 1)
		g.lastMove = now
	}

	// Rotation
	if in.Has(core.ActionRotate) && now-g.lastRotate >= moveInterval {
		g.Rotate()
		g.lastRotate = now
	}

	// Automatic drop
	if now-g.lastDrop >= dropInterval {
		g.Move(0, 1)
		g.lastDrop = now
	}
}

// Move translates the active piece by (dx, dy) if every destination cell is
// legal: x within the grid, y above the floor, and no overlap with locked
// cells (checked only for destinations inside the visible grid, so a piece
// may still poke above row 0). All four blocks move or none do.
//
// A rejected downward move means the piece has landed, so it locks instead.
// Rejected horizontal or upward moves are simply discarded.
func (g *Game) Move(dx, dy int) {
	if g.gameOver {
		return
	}

	canMove := true
	for _, b := range g.piece.Blocks {
		nx := b.X + dx
		ny := b.Y + dy

		if nx < 0 || nx >= GridWidth || ny >= GridHeight {
			canMove = false
			break
		}
		if ny >= 0 && g.board.Occupied(nx, ny) {
			canMove = false
			break
		}
	}

	if canMove {
		for i := range g.piece.Blocks {
			g.piece.Blocks[i].X += dx
			g.piece.Blocks[i].Y += dy
		}
		return
	}

	if dy > 0 {
		g.lock()
	}
}

// Rotate turns the active piece 90 degrees clockwise around its second
// block. The square is rotation-invariant and skips rotation entirely. If
// any rotated block would leave the grid or land on a locked cell, the
// whole rotation is rejected and the piece is left unchanged.
func (g *Game) Rotate() {
	if g.gameOver || g.piece.Shape == ShapeO {
		return
	}

	pivot := g.piece.Blocks[1]
	var rotated [4]Block

	for i, b := range g.piece.Blocks {
		dx := b.X - pivot.X
		dy := b.Y - pivot.Y
		nx := pivot.X - dy
		ny := pivot.Y + dx

		if nx < 0 || nx >= GridWidth || ny >= GridHeight {
			return
		}
		if ny >= 0 && g.board.Occupied(nx, ny) {
			return
		}
		rotated[i] = Block{X: nx, Y: ny, Color: b.Color}
	}

	g.piece.Blocks = rotated
}

// lock transfers the active piece's blocks into the board. A block still
// above the visible grid ends the game immediately; locking aborts there
// and no line clear or respawn happens that cycle. Otherwise completed rows
// are cleared, the score updated, and the next piece spawned.
func (g *Game) lock() {
	for _, b := range g.piece.Blocks {
		if b.Y < 0 {
			g.gameOver = true
			return
		}
		g.board[b.Y][b.X] = b.Color
	}

	if n := g.board.ClearLines(); n > 0 {
		g.score += ScoreForLines(n)
	}

	g.piece = NewRandomPiece(g.rng)
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.score,
		GameOver: g.gameOver,
	}
}

// Score returns the cumulative score.
func (g *Game) Score() int {
	return g.score
}

// GameOver reports whether the game has reached its terminal state.
func (g *Game) GameOver() bool {
	return g.gameOver
}
