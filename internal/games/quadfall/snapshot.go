package quadfall

import "time"

// Snapshot captures the round state for determinism testing and debugging.
type Snapshot struct {
	Tick     uint64
	State    State
	Score    int
	Grace    int
	Pieces   int
	Shape    string
	PieceX   int
	PieceY   int
	Axis     string
	Positive bool
	Interval time.Duration
}

// Snapshot returns the current round snapshot.
func (r *Round) Snapshot() Snapshot {
	x, y := r.piece.Position()
	return Snapshot{
		Tick:     r.ticks,
		State:    r.state,
		Score:    r.Score(),
		Grace:    r.grace,
		Pieces:   r.landed,
		Shape:    r.piece.Name(),
		PieceX:   x,
		PieceY:   y,
		Axis:     r.piece.Axis().String(),
		Positive: r.piece.Positive(),
		Interval: r.pacer.Interval(),
	}
}
