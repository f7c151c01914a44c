package field

// RotationLift is how many reverse-fall steps a blocked rotation may try.
const RotationLift = 3

// Axis is the single axis a piece falls along.
// Exactly one of X and Y is 1.
type Axis struct {
	X, Y int
}

var (
	// Vertical pieces fall along y.
	Vertical = Axis{X: 0, Y: 1}
	// Horizontal pieces fall along x.
	Horizontal = Axis{X: 1, Y: 0}
)

// String returns "vertical" or "horizontal".
func (a Axis) String() string {
	if a == Horizontal {
		return "horizontal"
	}
	return "vertical"
}

// Direction is an input direction for Move and Shift.
type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right
)

// String returns the lowercase direction name.
func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return "unknown"
	}
}

// Probe is the outcome of testing a piece position against a board.
type Probe int

const (
	// Clear means nothing blocks the piece.
	Clear Probe = iota
	// Collision means a filled piece cell overlaps a filled board cell.
	Collision
	// OutOfRange means part of the piece matrix lies off the grid.
	// The position is not blocked, but the piece is flagged for loss.
	OutOfRange
)

// String returns the probe name.
func (p Probe) String() string {
	switch p {
	case Clear:
		return "clear"
	case Collision:
		return "collision"
	case OutOfRange:
		return "out-of-range"
	default:
		return "unknown"
	}
}

// Random is the source of spawn draws. *math/rand.Rand satisfies it.
type Random interface {
	Intn(n int) int
}

// Piece is an immutable shape instance on the board.
// Every transform returns a new Piece; the shape matrix is never mutated.
type Piece struct {
	shape    Grid
	name     string
	x, y     int
	axis     Axis
	positive bool
	lost     bool
}

// NewPiece places a template at (x, y) falling along axis.
func NewPiece(t Template, x, y int, axis Axis, positive bool) Piece {
	return Piece{
		shape:    t.cells,
		name:     t.Name,
		x:        x,
		y:        y,
		axis:     axis,
		positive: positive,
	}
}

// Spawn draws a template, then one of the four spawn configurations:
// falling down from the top, up from the bottom, right from the left edge,
// or left from the right edge.
func Spawn(rng Random, cat *Catalog, width, height int) Piece {
	t := cat.Template(rng.Intn(cat.Len()))
	size := t.Size()

	switch rng.Intn(4) {
	case 0:
		return NewPiece(t, width/2, 0, Vertical, true)
	case 1:
		return NewPiece(t, width/2, height-size, Vertical, false)
	case 2:
		return NewPiece(t, 0, height/2, Horizontal, true)
	default:
		return NewPiece(t, width-size, height/2, Horizontal, false)
	}
}

// Name returns the template name the piece was made from.
func (p Piece) Name() string {
	return p.name
}

// Position returns the board coordinate of the shape matrix origin.
func (p Piece) Position() (int, int) {
	return p.x, p.y
}

// Axis returns the fall axis.
func (p Piece) Axis() Axis {
	return p.axis
}

// Positive reports whether the piece falls towards increasing coordinates.
func (p Piece) Positive() bool {
	return p.positive
}

// LossMarker reports whether an accepted transition of this piece probed
// off the grid.
func (p Piece) LossMarker() bool {
	return p.lost
}

// Size returns the side length of the shape matrix.
func (p Piece) Size() int {
	return len(p.shape)
}

// Cell returns the shape cell at local (x, y).
func (p Piece) Cell(x, y int) Cell {
	return p.shape.At(x, y)
}

// Shape returns a copy of the shape matrix.
func (p Piece) Shape() Grid {
	return p.shape.Clone()
}

// Probe tests the piece at its current position.
// Cells are scanned column by column; the first matrix cell (filled or not)
// that lies off the grid ends the scan with OutOfRange, so later overlaps in
// the same call are not seen.
func (p Piece) Probe(b *Board) Probe {
	n := p.Size()
	for x := 0; x < n; x++ {
		for y := 0; y < n; y++ {
			bx, by := p.x+x, p.y+y
			if !b.InBounds(bx, by) {
				return OutOfRange
			}
			if b.At(bx, by).Filled() && p.shape[x][y].Filled() {
				return Collision
			}
		}
	}
	return Clear
}

// Collides reports whether the piece overlaps landed cells.
func (p Piece) Collides(b *Board) bool {
	return p.Probe(b) == Collision
}

// OutOfBounds reports whether any filled cell lies outside the playfield
// window around the board centre.
func (p Piece) OutOfBounds(width, height int) bool {
	window := Window(width, height)
	n := p.Size()
	for x := 0; x < n; x++ {
		for y := 0; y < n; y++ {
			if !p.shape[x][y].Filled() {
				continue
			}
			if !window.Contains(p.x+x, p.y+y) {
				return true
			}
		}
	}
	return false
}

// try probes candidate and returns it if it is not blocked. A candidate
// accepted through an off-grid probe inherits the loss marker.
func (p Piece) try(candidate Piece, b *Board) (Piece, bool) {
	switch candidate.Probe(b) {
	case Collision:
		return p, false
	case OutOfRange:
		candidate.lost = true
	}
	return candidate, true
}

func (p Piece) at(x, y int) Piece {
	p.x, p.y = x, y
	return p
}

// Move pushes the piece one cell along its own fall axis. Up and Down only
// act on vertical pieces, Left and Right only on horizontal ones; anything
// else is a no-op. The move is discarded if it collides.
func (p Piece) Move(d Direction, b *Board) Piece {
	dx, dy := 0, 0
	switch d {
	case Up:
		dy = -p.axis.Y
	case Down:
		dy = p.axis.Y
	case Left:
		dx = -p.axis.X
	case Right:
		dx = p.axis.X
	}
	if dx == 0 && dy == 0 {
		return p
	}
	moved, _ := p.try(p.at(p.x+dx, p.y+dy), b)
	return moved
}

// Shift steers the piece one cell across its fall axis: vertical pieces go
// left or right, horizontal pieces up or down. The shift is discarded if it
// collides.
func (p Piece) Shift(d Direction, b *Board) Piece {
	dx, dy := 0, 0
	switch d {
	case Up:
		dy = -p.axis.X
	case Down:
		dy = p.axis.X
	case Left:
		dx = -p.axis.Y
	case Right:
		dx = p.axis.Y
	}
	if dx == 0 && dy == 0 {
		return p
	}
	shifted, _ := p.try(p.at(p.x+dx, p.y+dy), b)
	return shifted
}

// Fall steps the piece along its velocity, or against it when reverse is
// set. It returns false, with the piece unchanged, when the step is blocked.
func (p Piece) Fall(b *Board, reverse bool) (Piece, bool) {
	v := 1
	if !p.positive {
		v = -v
	}
	if reverse {
		v = -v
	}
	return p.try(p.at(p.x+p.axis.X*v, p.y+p.axis.Y*v), b)
}

// Rotate turns the shape 90 degrees. A blocked rotation is retried after up
// to RotationLift reverse-fall steps; if every step is still blocked the
// piece is returned unchanged.
func (p Piece) Rotate(b *Board) Piece {
	rotated := p
	rotated.shape = rotateGrid(p.shape)

	if next, ok := p.try(rotated, b); ok {
		return next
	}

	candidate := rotated
	for i := 0; i < RotationLift; i++ {
		candidate, _ = candidate.Fall(b, true)
		if next, ok := p.try(candidate, b); ok {
			return next
		}
	}
	return p
}

// rotateGrid returns the square matrix rotated a quarter turn:
// rotated[i][j] = original[n-1-j][i].
func rotateGrid(g Grid) Grid {
	n := len(g)
	r := NewGrid(n, n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			r[i][j] = g[n-1-j][i]
		}
	}
	return r
}
