// Package field holds the pure playfield model of quadfall: cells, shape
// catalogs, the static board and the pieces that move across it.
//
// Grids are addressed column-major, grid[x][y], matching the board
// coordinates used everywhere else.
package field

// Cell is the content of one grid square.
// The value is an identity tag; only occupancy matters to the game logic.
type Cell uint8

const (
	// Empty is the zero cell.
	Empty Cell = 0
	// Sentinel marks the seeded centre cell of a fresh board.
	Sentinel Cell = 255
)

// Filled reports whether the cell is occupied.
func (c Cell) Filled() bool {
	return c != Empty
}

// Grid is a column-major matrix of cells.
type Grid [][]Cell

// NewGrid allocates an empty width x height grid.
func NewGrid(width, height int) Grid {
	g := make(Grid, width)
	for x := range g {
		g[x] = make([]Cell, height)
	}
	return g
}

// Clone returns a deep copy of the grid.
func (g Grid) Clone() Grid {
	c := make(Grid, len(g))
	for x := range g {
		c[x] = make([]Cell, len(g[x]))
		copy(c[x], g[x])
	}
	return c
}

// Width returns the number of columns.
func (g Grid) Width() int {
	return len(g)
}

// Height returns the number of rows.
func (g Grid) Height() int {
	if len(g) == 0 {
		return 0
	}
	return len(g[0])
}

// At returns the cell at (x, y), or Empty when the coordinate is off the grid.
func (g Grid) At(x, y int) Cell {
	if x < 0 || x >= g.Width() || y < 0 || y >= g.Height() {
		return Empty
	}
	return g[x][y]
}

// Count returns the number of filled cells.
func (g Grid) Count() int {
	n := 0
	for x := range g {
		for _, c := range g[x] {
			if c.Filled() {
				n++
			}
		}
	}
	return n
}
