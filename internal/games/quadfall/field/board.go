package field

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/quadfall/internal/core"
)

// ErrInvalidDimension is returned when a board is created with a
// non-positive width or height.
var ErrInvalidDimension = errors.New("field: invalid board dimension")

// Playfield window around the board centre. A piece left resting with any
// filled cell outside [centre-windowLow, centre+windowHigh] loses the round.
const (
	windowLow  = 12
	windowHigh = 11
)

// Board is the static grid of landed cells.
// It is mutated only by Commit.
type Board struct {
	width  int
	height int
	cells  Grid
}

// NewBoard creates an empty board and seeds its centre cell.
func NewBoard(width, height int) (*Board, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimension, width, height)
	}

	b := &Board{
		width:  width,
		height: height,
		cells:  NewGrid(width, height),
	}
	b.cells[width/2][height/2] = Sentinel
	return b, nil
}

// Width returns the number of columns.
func (b *Board) Width() int {
	return b.width
}

// Height returns the number of rows.
func (b *Board) Height() int {
	return b.height
}

// InBounds reports whether (x, y) is a grid coordinate.
func (b *Board) InBounds(x, y int) bool {
	return x >= 0 && x < b.width && y >= 0 && y < b.height
}

// At returns the static cell at (x, y); off-grid coordinates are Empty.
func (b *Board) At(x, y int) Cell {
	return b.cells.At(x, y)
}

// Cells returns a copy of the static grid.
func (b *Board) Cells() Grid {
	return b.cells.Clone()
}

// Window returns the playfield window used by Piece.OutOfBounds.
func (b *Board) Window() core.Rect {
	return Window(b.width, b.height)
}

// Window returns the playfield window of a width x height board.
func Window(width, height int) core.Rect {
	cx, cy := width/2, height/2
	return core.NewRect(cx-windowLow, cy-windowLow, windowLow+windowHigh+1, windowLow+windowHigh+1)
}

// MergeView returns the static grid with the piece's filled cells overlaid.
// Piece cells that fall off the grid are clipped; empty piece cells never
// erase board cells.
func (b *Board) MergeView(p Piece) Grid {
	view := b.cells.Clone()
	n := p.Size()
	for x := 0; x < n; x++ {
		for y := 0; y < n; y++ {
			c := p.shape[x][y]
			if !c.Filled() {
				continue
			}
			bx, by := p.x+x, p.y+y
			if !b.InBounds(bx, by) {
				continue
			}
			view[bx][by] = c
		}
	}
	return view
}

// Commit makes the piece permanent board state.
func (b *Board) Commit(p Piece) {
	b.cells = b.MergeView(p)
}

// Score returns the number of occupied static cells, not counting the
// seeded centre cell.
func (b *Board) Score() int {
	return b.cells.Count() - 1
}
