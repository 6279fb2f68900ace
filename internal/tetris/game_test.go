package tetris

import (
	"math/rand"
	"testing"
	"time"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

func newTestGame(seed int64) *Game {
	g := New()
	g.Reset(core.RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     seed,
	})
	return g
}

// setPiece installs a piece with explicit block positions, reusing the
// shape's catalog color.
func setPiece(g *Game, shape Shape, cells [4][2]int) {
	color := NewPiece(shape).Blocks[0].Color
	p := Piece{Shape: shape}
	for i, c := range cells {
		p.Blocks[i] = Block{X: c[0], Y: c[1], Color: color}
	}
	g.piece = p
}

func blocksEqual(a, b [4]Block) bool {
	return a == b
}

func TestMoveTranslatesAllBlocks(t *testing.T) {
	g := newTestGame(1)
	setPiece(g, ShapeT, [4][2]int{{5, 9}, {4, 10}, {5, 10}, {6, 10}})

	before := g.piece.Blocks
	g.Move(1, 0)

	for i := range before {
		if g.piece.Blocks[i].X != before[i].X+1 || g.piece.Blocks[i].Y != before[i].Y {
			t.Errorf("block %d = (%d, %d), expected (%d, %d)",
				i, g.piece.Blocks[i].X, g.piece.Blocks[i].Y, before[i].X+1, before[i].Y)
		}
	}
}

func TestMoveAtomicityAgainstOccupiedCell(t *testing.T) {
	g := newTestGame(1)
	setPiece(g, ShapeT, [4][2]int{{5, 9}, {4, 10}, {5, 10}, {6, 10}})
	g.board[10][2] = core.ColorRed // blocks the leftmost block's destination

	before := g.piece.Blocks
	g.Move(-1, 0)
	g.Move(-1, 0) // second attempt now collides at (2, 10)

	want := before
	for i := range want {
		want[i].X-- // only the first move should have landed
	}
	if !blocksEqual(g.piece.Blocks, want) {
		t.Errorf("blocked horizontal move must leave all 4 blocks unchanged, got %+v", g.piece.Blocks)
	}
}

func TestMoveBlockedAtWall(t *testing.T) {
	g := newTestGame(1)

	// I spawns at x 3..6; three left moves reach the wall, the fourth is discarded
	setPiece(g, ShapeI, [4][2]int{{3, 0}, {4, 0}, {5, 0}, {6, 0}})
	for i := 0; i < 3; i++ {
		g.Move(-1, 0)
	}
	atWall := g.piece.Blocks
	if atWall[0].X != 0 {
		t.Fatalf("after three left moves, leftmost block at x=%d, expected 0", atWall[0].X)
	}

	g.Move(-1, 0)
	if !blocksEqual(g.piece.Blocks, atWall) {
		t.Error("move into the wall should be discarded with no side effect")
	}
}

func TestLockOnBlockedFall(t *testing.T) {
	g := newTestGame(1)
	setPiece(g, ShapeO, [4][2]int{{4, 10}, {5, 10}, {4, 11}, {5, 11}})
	g.board[12][4] = core.ColorRed // directly below the piece

	pieceColor := g.piece.Blocks[0].Color
	g.Move(0, 1)

	// The piece locks at its pre-move position
	for _, c := range [][2]int{{4, 10}, {5, 10}, {4, 11}, {5, 11}} {
		if g.board[c[1]][c[0]] != pieceColor {
			t.Errorf("cell (%d, %d) should hold the locked color, got %v", c[0], c[1], g.board[c[1]][c[0]])
		}
	}

	// A fresh piece spawns at the top of the grid
	for i, b := range g.piece.Blocks {
		if b.Y > 1 {
			t.Errorf("new piece block %d at y=%d, expected spawn rows 0-1", i, b.Y)
		}
	}
	if g.gameOver {
		t.Error("locking inside the grid should not end the game")
	}
}

func TestLockOnFloor(t *testing.T) {
	g := newTestGame(1)
	setPiece(g, ShapeI, [4][2]int{{3, 19}, {4, 19}, {5, 19}, {6, 19}})

	g.Move(0, 1)

	for x := 3; x <= 6; x++ {
		if g.board[19][x] != core.ColorCyan {
			t.Errorf("cell (%d, 19) should hold the locked I color", x)
		}
	}
}

func TestLockClearsSingleLineAndScores(t *testing.T) {
	g := newTestGame(1)
	for x := 0; x < GridWidth; x++ {
		if x != 4 && x != 5 {
			g.board[19][x] = core.ColorRed
		}
	}
	setPiece(g, ShapeO, [4][2]int{{4, 18}, {5, 18}, {4, 19}, {5, 19}})

	g.Move(0, 1) // blocked by the floor, locks, completes row 19

	if g.Score() != 100 {
		t.Errorf("score = %d, expected 100 for a single cleared line", g.Score())
	}
	// The O's top half shifts down into the bottom row
	if g.board[19][4] != core.ColorYellow || g.board[19][5] != core.ColorYellow {
		t.Error("the locked piece's upper blocks should compact to the bottom row")
	}
	if g.board[19][0] != core.ColorDefault {
		t.Error("the cleared row's old cells should be gone")
	}
}

func TestLockClearsTetrisAndScores(t *testing.T) {
	g := newTestGame(1)
	for y := 16; y < GridHeight; y++ {
		for x := 0; x < GridWidth; x++ {
			if x != 4 {
				g.board[y][x] = core.ColorGreen
			}
		}
	}
	setPiece(g, ShapeI, [4][2]int{{4, 16}, {4, 17}, {4, 18}, {4, 19}})

	g.Move(0, 1) // locks on the floor, completing four rows at once

	if g.score != 800 {
		t.Errorf("score = %d, expected 800 for four lines in one lock", g.score)
	}
	for y := 0; y < GridHeight; y++ {
		for x := 0; x < GridWidth; x++ {
			if g.board[y][x] != core.ColorDefault {
				t.Fatalf("board should be empty after the tetris, found %v at (%d, %d)", g.board[y][x], x, y)
			}
		}
	}
}

func TestSquareRotationIsNoop(t *testing.T) {
	g := newTestGame(1)
	setPiece(g, ShapeO, [4][2]int{{4, 5}, {5, 5}, {4, 6}, {5, 6}})
	// Crowd the surroundings; the square must not care
	g.board[5][3] = core.ColorRed
	g.board[6][6] = core.ColorRed

	before := g.piece.Blocks
	for i := 0; i < 4; i++ {
		g.Rotate()
	}
	if !blocksEqual(g.piece.Blocks, before) {
		t.Error("rotating a square piece must never change its blocks")
	}
}

func TestRotatePivotsAroundSecondBlock(t *testing.T) {
	g := newTestGame(1)
	setPiece(g, ShapeT, [4][2]int{{5, 9}, {4, 10}, {5, 10}, {6, 10}})

	g.Rotate()

	// Pivot (4, 10): (5,9)->(5,11)? No: nx = px - dy, ny = py + dx
	want := [4][2]int{{5, 11}, {4, 10}, {4, 11}, {4, 12}}
	for i, c := range want {
		if g.piece.Blocks[i].X != c[0] || g.piece.Blocks[i].Y != c[1] {
			t.Errorf("rotated block %d = (%d, %d), expected (%d, %d)",
				i, g.piece.Blocks[i].X, g.piece.Blocks[i].Y, c[0], c[1])
		}
	}
}

func TestRotationRejectedAtWall(t *testing.T) {
	g := newTestGame(1)
	// Vertical I hugging the left wall; rotation would need x = -1
	setPiece(g, ShapeI, [4][2]int{{0, 5}, {0, 6}, {0, 7}, {0, 8}})

	before := g.piece.Blocks
	g.Rotate()
	if !blocksEqual(g.piece.Blocks, before) {
		t.Error("rotation crossing the wall must be rejected atomically")
	}
}

func TestRotationRejectedOnOccupiedCell(t *testing.T) {
	g := newTestGame(1)
	setPiece(g, ShapeT, [4][2]int{{5, 9}, {4, 10}, {5, 10}, {6, 10}})
	g.board[11][5] = core.ColorRed // a rotated block would land here

	before := g.piece.Blocks
	g.Rotate()
	if !blocksEqual(g.piece.Blocks, before) {
		t.Error("rotation into an occupied cell must be rejected atomically")
	}
}

func TestGateIndependence(t *testing.T) {
	g := newTestGame(1)
	setPiece(g, ShapeT, [4][2]int{{5, 9}, {4, 10}, {5, 10}, {6, 10}})

	left := core.NewInputFrame()
	left.Set(core.ActionLeft)
	rotate := core.NewInputFrame()
	rotate.Set(core.ActionRotate)
	both := core.NewInputFrame()
	both.Set(core.ActionLeft)
	both.Set(core.ActionRotate)

	// t=100ms: move gate fires
	g.Advance(100*time.Millisecond, left)
	afterMove := g.piece.Blocks
	if afterMove[1].X != 3 {
		t.Fatalf("left move should have fired at t=100ms, pivot at x=%d", afterMove[1].X)
	}

	// t=150ms: rotate gate fires; it has never fired before, and the move
	// firing at t=100ms must not have touched it
	g.Advance(150*time.Millisecond, rotate)
	afterRotate := g.piece.Blocks
	if blocksEqual(afterRotate, afterMove) {
		t.Fatal("rotate should have fired at t=150ms despite the recent move")
	}

	// t=220ms: move gate is open again (last move at 100ms), rotate gate is
	// not (last rotate at 150ms). Exactly the translation should land.
	g.Advance(220*time.Millisecond, both)
	want := afterRotate
	for i := range want {
		want[i].X--
	}
	if !blocksEqual(g.piece.Blocks, want) {
		t.Errorf("at t=220ms only the move should fire, got %+v, expected %+v", g.piece.Blocks, want)
	}
}

func TestSoftDropSharesMoveGate(t *testing.T) {
	g := newTestGame(1)
	setPiece(g, ShapeT, [4][2]int{{5, 9}, {4, 10}, {5, 10}, {6, 10}})

	left := core.NewInputFrame()
	left.Set(core.ActionLeft)
	down := core.NewInputFrame()
	down.Set(core.ActionDown)

	g.Advance(100*time.Millisecond, left)
	pivotY := g.piece.Blocks[1].Y

	// Only 50ms after the horizontal move: the shared gate is still closed
	g.Advance(150*time.Millisecond, down)
	if g.piece.Blocks[1].Y != pivotY {
		t.Error("soft drop should be throttled by the move gate")
	}

	g.Advance(200*time.Millisecond, down)
	if g.piece.Blocks[1].Y != pivotY+1 {
		t.Error("soft drop should fire once its shared gate reopens")
	}
}

func TestAutomaticDropInterval(t *testing.T) {
	g := newTestGame(1)
	setPiece(g, ShapeT, [4][2]int{{5, 9}, {4, 10}, {5, 10}, {6, 10}})
	empty := core.NewInputFrame()

	g.Advance(499*time.Millisecond, empty)
	if g.piece.Blocks[1].Y != 10 {
		t.Error("automatic drop should not fire before 500ms")
	}

	g.Advance(500*time.Millisecond, empty)
	if g.piece.Blocks[1].Y != 11 {
		t.Error("automatic drop should fire at 500ms")
	}

	g.Advance(999*time.Millisecond, empty)
	if g.piece.Blocks[1].Y != 11 {
		t.Error("automatic drop should wait a full interval after its own last firing")
	}

	g.Advance(1000*time.Millisecond, empty)
	if g.piece.Blocks[1].Y != 12 {
		t.Error("automatic drop should fire again at 1000ms")
	}
}

func TestGameOverOnLockAboveGrid(t *testing.T) {
	g := newTestGame(1)
	// Vertical piece poking above the grid, resting on a locked cell
	setPiece(g, ShapeI, [4][2]int{{4, -1}, {4, 0}, {4, 1}, {4, 2}})
	g.board[3][4] = core.ColorRed

	g.Move(0, 1) // blocked below, piece locks with a block at y = -1

	if !g.GameOver() {
		t.Fatal("locking a block above the visible grid must end the game")
	}
	if !g.State().GameOver {
		t.Error("State() should report game over")
	}
}

func TestGameOverIsTerminal(t *testing.T) {
	g := newTestGame(1)
	setPiece(g, ShapeI, [4][2]int{{4, -1}, {4, 0}, {4, 1}, {4, 2}})
	g.board[3][4] = core.ColorRed
	g.Move(0, 1)

	if !g.gameOver {
		t.Fatal("setup should have ended the game")
	}

	frozen := g.Snapshot()
	down := core.NewInputFrame()
	down.Set(core.ActionDown)

	for i := 0; i < 100; i++ {
		g.Step(down)
	}

	after := g.Snapshot()
	if !after.GameOver {
		t.Error("game over flag must never clear")
	}
	if after.Score != frozen.Score {
		t.Errorf("score changed after game over: %d -> %d", frozen.Score, after.Score)
	}
	if after.Board != frozen.Board {
		t.Error("board changed after game over")
	}
	if !blocksEqual(after.Blocks, frozen.Blocks) {
		t.Error("piece changed after game over")
	}
}

func TestRestartAfterGameOver(t *testing.T) {
	g := newTestGame(1)
	g.score = 500
	setPiece(g, ShapeI, [4][2]int{{4, -1}, {4, 0}, {4, 1}, {4, 2}})
	g.board[3][4] = core.ColorRed
	g.Move(0, 1)

	restart := core.NewInputFrame()
	restart.Set(core.ActionRestart)
	g.Step(restart)

	if g.gameOver {
		t.Error("restart should start a fresh game")
	}
	if g.score != 0 {
		t.Errorf("restart should clear the score, got %d", g.score)
	}
	if g.board != (Board{}) {
		t.Error("restart should clear the board")
	}
}

func TestBoundsInvariant(t *testing.T) {
	// Drive a long random playthrough and check that every piece block and
	// every occupied cell stays inside the playfield.
	g := newTestGame(42)
	inputRng := rand.New(rand.NewSource(7))
	actions := []core.Action{core.ActionLeft, core.ActionRight, core.ActionDown, core.ActionRotate}

	for i := 0; i < 3000; i++ {
		in := core.NewInputFrame()
		if inputRng.Intn(3) > 0 {
			in.Set(actions[inputRng.Intn(len(actions))])
		}
		g.Step(in)

		snap := g.Snapshot()
		for _, b := range snap.Blocks {
			if b.X < 0 || b.X >= GridWidth {
				t.Fatalf("tick %d: block x=%d out of bounds", i, b.X)
			}
			if b.Y >= GridHeight {
				t.Fatalf("tick %d: block y=%d below the floor", i, b.Y)
			}
		}
		if snap.GameOver {
			break
		}
	}
}

func TestGameDeterminism(t *testing.T) {
	// Test that given the same seed and inputs, the game produces identical results
	cfg := core.RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     12345,
	}

	inputSequence := make([]core.InputFrame, 600)
	for i := range inputSequence {
		inputSequence[i] = core.NewInputFrame()
		switch {
		case i%90 < 20:
			inputSequence[i].Set(core.ActionLeft)
		case i%90 < 40:
			inputSequence[i].Set(core.ActionRight)
		case i%90 < 50:
			inputSequence[i].Set(core.ActionRotate)
		case i%90 < 70:
			inputSequence[i].Set(core.ActionDown)
		}
	}

	run := func() Snapshot {
		g := New()
		g.Reset(cfg)
		for _, in := range inputSequence {
			result := g.Step(in)
			if result.State.GameOver {
				break
			}
		}
		return g.Snapshot()
	}

	snap1 := run()
	snap2 := run()

	if snap1.Hash() != snap2.Hash() {
		t.Errorf("Determinism failed: hashes differ. Run1=%d, Run2=%d", snap1.Hash(), snap2.Hash())
	}
	if snap1.Score != snap2.Score {
		t.Errorf("Determinism failed: scores differ. Run1=%d, Run2=%d", snap1.Score, snap2.Score)
	}
	if snap1.Tick != snap2.Tick {
		t.Errorf("Determinism failed: tick counts differ. Run1=%d, Run2=%d", snap1.Tick, snap2.Tick)
	}
}

func TestGameReset(t *testing.T) {
	cfg := core.RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     42,
	}

	g := New()
	g.Reset(cfg)

	down := core.NewInputFrame()
	down.Set(core.ActionDown)
	for i := 0; i < 120; i++ {
		g.Step(down)
	}

	g.Reset(cfg)

	if g.score != 0 {
		t.Errorf("Reset should clear score, got %d", g.score)
	}
	if g.tick != 0 {
		t.Errorf("Reset should clear the tick counter, got %d", g.tick)
	}
	if g.gameOver {
		t.Error("Reset should clear the game over flag")
	}
	if g.board != (Board{}) {
		t.Error("Reset should empty the board")
	}
}

func TestFrameSnapshotContents(t *testing.T) {
	g := newTestGame(1)
	g.board[19][0] = core.ColorRed
	g.board[5][9] = core.ColorBlue
	g.score = 300

	f := g.Frame()

	if f.Score != 300 {
		t.Errorf("Frame score = %d, expected 300", f.Score)
	}
	if f.GameOver {
		t.Error("Frame should not report game over")
	}
	if len(f.Cells) != 2 {
		t.Fatalf("Frame should list 2 occupied cells, got %d", len(f.Cells))
	}
	// Cells are emitted in row-major order
	if f.Cells[0] != (GridCell{X: 9, Y: 5, Color: core.ColorBlue}) {
		t.Errorf("unexpected first cell: %+v", f.Cells[0])
	}
	if f.Cells[1] != (GridCell{X: 0, Y: 19, Color: core.ColorRed}) {
		t.Errorf("unexpected second cell: %+v", f.Cells[1])
	}
}
