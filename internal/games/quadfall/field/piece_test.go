package field

import (
	"math/rand"
	"reflect"
	"testing"
)

// seq replays fixed draws, reduced modulo n.
type seq struct {
	draws []int
	i     int
}

func (s *seq) Intn(n int) int {
	v := s.draws[s.i%len(s.draws)]
	s.i++
	return v % n
}

func classic(name string) Template {
	for _, t := range Classic().Templates() {
		if t.Name == name {
			return t
		}
	}
	panic("no classic template " + name)
}

func TestRotateFourTimesIsIdentity(t *testing.T) {
	b := newBoard(t, 30, 30)

	for _, tmpl := range Classic().Templates() {
		t.Run(tmpl.Name, func(t *testing.T) {
			p := NewPiece(tmpl, 3, 3, Vertical, true)
			r := p
			for i := 0; i < 4; i++ {
				r = r.Rotate(b)
			}
			if !reflect.DeepEqual(r.Shape(), p.Shape()) {
				t.Errorf("four rotations changed the shape")
			}
			if x, y := r.Position(); x != 3 || y != 3 {
				t.Errorf("four rotations moved the piece to (%d, %d)", x, y)
			}
		})
	}
}

func TestRotateQuarterTurn(t *testing.T) {
	b := newBoard(t, 30, 30)
	p := NewPiece(classic("I"), 3, 3, Vertical, true).Rotate(b)

	// A vertical bar in column 1 becomes a horizontal bar in row 2.
	for x := 0; x < 4; x++ {
		for y := 0; y < 4; y++ {
			want := y == 2
			if p.Cell(x, y).Filled() != want {
				t.Errorf("cell (%d, %d) filled = %v, expected %v", x, y, !want, want)
			}
		}
	}
}

func TestRotateLiftsWhenBlocked(t *testing.T) {
	b := newBoard(t, 10, 10)
	stamp(b, 4, 4)

	p := NewPiece(classic("I"), 2, 2, Vertical, true)
	r := p.Rotate(b)

	if x, y := r.Position(); x != 2 || y != 1 {
		t.Fatalf("lifted rotation at (%d, %d), expected (2, 1)", x, y)
	}
	if r.Cell(0, 2) != TagI || r.Cell(1, 1).Filled() {
		t.Error("lifted piece should carry the rotated shape")
	}
	if r.LossMarker() {
		t.Error("in-grid lift should not set the loss marker")
	}
}

func TestRotateDiscardedWhenLiftBlocked(t *testing.T) {
	b := newBoard(t, 10, 10)
	stamp(b, 4, 4)
	stamp(b, 4, 3)
	stamp(b, 4, 2)

	p := NewPiece(classic("I"), 2, 2, Vertical, true)
	r := p.Rotate(b)

	if !reflect.DeepEqual(r, p) {
		t.Error("fully blocked rotation should leave the piece unchanged")
	}
}

func TestMoveAlongFallAxis(t *testing.T) {
	b := newBoard(t, 30, 30)
	o := classic("O")

	tests := []struct {
		name         string
		axis         Axis
		dir          Direction
		wantX, wantY int
	}{
		{"vertical down", Vertical, Down, 5, 6},
		{"vertical up", Vertical, Up, 5, 4},
		{"vertical left ignored", Vertical, Left, 5, 5},
		{"vertical right ignored", Vertical, Right, 5, 5},
		{"horizontal right", Horizontal, Right, 6, 5},
		{"horizontal left", Horizontal, Left, 4, 5},
		{"horizontal up ignored", Horizontal, Up, 5, 5},
		{"horizontal down ignored", Horizontal, Down, 5, 5},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := NewPiece(o, 5, 5, tc.axis, true).Move(tc.dir, b)
			if x, y := p.Position(); x != tc.wantX || y != tc.wantY {
				t.Errorf("Move(%v) -> (%d, %d), expected (%d, %d)", tc.dir, x, y, tc.wantX, tc.wantY)
			}
		})
	}
}

func TestShiftAcrossFallAxis(t *testing.T) {
	b := newBoard(t, 30, 30)
	o := classic("O")

	tests := []struct {
		name         string
		axis         Axis
		dir          Direction
		wantX, wantY int
	}{
		{"vertical left", Vertical, Left, 4, 5},
		{"vertical right", Vertical, Right, 6, 5},
		{"vertical up ignored", Vertical, Up, 5, 5},
		{"horizontal up", Horizontal, Up, 5, 4},
		{"horizontal down", Horizontal, Down, 5, 6},
		{"horizontal left ignored", Horizontal, Left, 5, 5},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := NewPiece(o, 5, 5, tc.axis, false).Shift(tc.dir, b)
			if x, y := p.Position(); x != tc.wantX || y != tc.wantY {
				t.Errorf("Shift(%v) -> (%d, %d), expected (%d, %d)", tc.dir, x, y, tc.wantX, tc.wantY)
			}
		})
	}
}

func TestMoveDiscardedOnCollision(t *testing.T) {
	b := newBoard(t, 30, 30)
	stamp(b, 5, 7)

	p := NewPiece(classic("O"), 5, 5, Vertical, true)
	if got := p.Move(Down, b); !reflect.DeepEqual(got, p) {
		t.Error("colliding move should be discarded")
	}
	if x, _ := p.Shift(Left, b).Position(); x != 4 {
		t.Errorf("free shift should be applied, x = %d", x)
	}
}

func TestFallBlockedAboveFullRow(t *testing.T) {
	b := newBoard(t, 30, 30)
	for x := 0; x < 30; x++ {
		stamp(b, x, 20)
	}

	p := NewPiece(classic("O"), 10, 18, Vertical, true)
	got, ok := p.Fall(b, false)
	if ok {
		t.Fatal("Fall into a full row should be blocked")
	}
	if !reflect.DeepEqual(got, p) {
		t.Error("blocked Fall should return the piece unchanged")
	}
}

func TestFallDirections(t *testing.T) {
	b := newBoard(t, 30, 30)
	o := classic("O")

	tests := []struct {
		name         string
		axis         Axis
		positive     bool
		reverse      bool
		wantX, wantY int
	}{
		{"down", Vertical, true, false, 5, 6},
		{"up", Vertical, false, false, 5, 4},
		{"right", Horizontal, true, false, 6, 5},
		{"left", Horizontal, false, false, 4, 5},
		{"down reversed", Vertical, true, true, 5, 4},
		{"left reversed", Horizontal, false, true, 6, 5},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p, ok := NewPiece(o, 5, 5, tc.axis, tc.positive).Fall(b, tc.reverse)
			if !ok {
				t.Fatal("Fall on an open board should succeed")
			}
			if x, y := p.Position(); x != tc.wantX || y != tc.wantY {
				t.Errorf("Fall -> (%d, %d), expected (%d, %d)", x, y, tc.wantX, tc.wantY)
			}
		})
	}
}

func TestFallOffGridSetsLossMarker(t *testing.T) {
	b := newBoard(t, 10, 10)

	p := NewPiece(classic("I"), 0, 6, Vertical, true)
	got, ok := p.Fall(b, false)
	if !ok {
		t.Fatal("off-grid fall is accepted, not blocked")
	}
	if _, y := got.Position(); y != 7 {
		t.Errorf("y = %d, expected 7", y)
	}
	if !got.LossMarker() {
		t.Error("off-grid fall should set the loss marker")
	}

	// The marker is sticky across later in-grid transitions
	back, _ := got.Fall(b, true)
	back, _ = back.Fall(b, true)
	if back.Probe(b) != Clear {
		t.Fatal("test expects the piece to be back on the grid")
	}
	if !back.LossMarker() {
		t.Error("loss marker should persist")
	}
}

func TestProbeStopsAtFirstOffGridCell(t *testing.T) {
	b := newBoard(t, 10, 10)
	stamp(b, 1, 1)

	// Column 0 of T's matrix is off the grid and scanned before the
	// overlap at local (2, 1).
	p := NewPiece(classic("T"), -1, 0, Vertical, true)
	if got := p.Probe(b); got != OutOfRange {
		t.Errorf("Probe() = %v, expected %v", got, OutOfRange)
	}

	// Same overlap fully on the grid
	p = NewPiece(classic("T"), 0, 1, Vertical, true)
	if got := p.Probe(b); got != Collision {
		t.Errorf("Probe() = %v, expected %v", got, Collision)
	}

	// Empty off-grid cells still count
	p = NewPiece(classic("O"), 3, 3, Vertical, true)
	if got := p.Probe(b); got != Clear {
		t.Errorf("Probe() = %v, expected %v", got, Clear)
	}
	p = NewPiece(classic("I"), -1, 3, Vertical, true)
	if got := p.Probe(b); got != OutOfRange {
		t.Errorf("Probe() with empty off-grid column = %v, expected %v", got, OutOfRange)
	}
}

func TestOutOfBounds(t *testing.T) {
	o := classic("O")

	tests := []struct {
		name string
		x, y int
		want bool
	}{
		{"centre", 14, 14, false},
		{"right edge inside", 25, 10, false},
		{"right edge outside", 26, 10, true},
		{"left edge inside", 3, 10, false},
		{"left edge outside", 2, 10, true},
		{"top edge inside", 10, 3, false},
		{"top edge outside", 10, 2, true},
		{"bottom edge inside", 10, 25, false},
		{"bottom edge outside", 10, 26, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := NewPiece(o, tc.x, tc.y, Vertical, true)
			if got := p.OutOfBounds(30, 30); got != tc.want {
				t.Errorf("OutOfBounds() = %v, expected %v", got, tc.want)
			}
		})
	}
}

func TestOutOfBoundsIgnoresEmptyCells(t *testing.T) {
	// I has an empty column 0; only column 1 matters.
	p := NewPiece(classic("I"), 2, 10, Vertical, true)
	if p.OutOfBounds(30, 30) {
		t.Error("empty matrix cells outside the window should not count")
	}
}

func TestSpawnConfigurations(t *testing.T) {
	cat := Classic()

	tests := []struct {
		name         string
		draws        []int
		wantName     string
		wantX, wantY int
		wantAxis     Axis
		wantPositive bool
	}{
		{"from top", []int{2, 0}, "O", 15, 0, Vertical, true},
		{"from bottom", []int{1, 1}, "I", 15, 26, Vertical, false},
		{"from left", []int{0, 2}, "T", 0, 15, Horizontal, true},
		{"from right", []int{3, 3}, "L", 27, 15, Horizontal, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := Spawn(&seq{draws: tc.draws}, cat, 30, 30)
			if p.Name() != tc.wantName {
				t.Errorf("Name() = %q, expected %q", p.Name(), tc.wantName)
			}
			if x, y := p.Position(); x != tc.wantX || y != tc.wantY {
				t.Errorf("Position() = (%d, %d), expected (%d, %d)", x, y, tc.wantX, tc.wantY)
			}
			if p.Axis() != tc.wantAxis || p.Positive() != tc.wantPositive {
				t.Errorf("got %v/%v, expected %v/%v", p.Axis(), p.Positive(), tc.wantAxis, tc.wantPositive)
			}
			if p.LossMarker() {
				t.Error("fresh piece should not carry the loss marker")
			}
		})
	}
}

func TestSpawnDeterministicWithSeed(t *testing.T) {
	a := rand.New(rand.NewSource(42))
	b := rand.New(rand.NewSource(42))
	cat := Classic()

	for i := 0; i < 50; i++ {
		pa := Spawn(a, cat, 30, 30)
		pb := Spawn(b, cat, 30, 30)
		if !reflect.DeepEqual(pa, pb) {
			t.Fatalf("spawn %d differs between equal seeds", i)
		}
	}
}

func TestPieceTransformsDoNotShareShape(t *testing.T) {
	b := newBoard(t, 30, 30)
	p := NewPiece(classic("L"), 5, 5, Vertical, true)
	before := p.Shape()

	_ = p.Rotate(b)
	_ = p.Move(Down, b)

	if !reflect.DeepEqual(p.Shape(), before) {
		t.Error("transforms mutated the original piece")
	}
	if !reflect.DeepEqual(classic("L").Cells(), before) {
		t.Error("piece shares its matrix with the catalog template")
	}
}

func TestAxisAndDirectionStrings(t *testing.T) {
	if Vertical.String() != "vertical" || Horizontal.String() != "horizontal" {
		t.Error("unexpected axis names")
	}
	if Left.String() != "left" || Direction(9).String() != "unknown" {
		t.Error("unexpected direction names")
	}
	if OutOfRange.String() != "out-of-range" {
		t.Error("unexpected probe name")
	}
}
