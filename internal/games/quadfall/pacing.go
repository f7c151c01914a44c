package quadfall

import "time"

// Pacing controls the tick interval of a round. The interval starts at
// Initial and shrinks by Step after every executed tick, never going below
// Floor.
type Pacing struct {
	Initial time.Duration
	Step    time.Duration
	Floor   time.Duration
}

// DefaultPacing returns the classic speed curve: 50ms ticks that tighten
// slowly towards roughly 60 ticks per second.
func DefaultPacing() Pacing {
	return Pacing{
		Initial: 50 * time.Millisecond,
		Step:    10 * time.Microsecond,
		Floor:   16 * time.Millisecond,
	}
}

// normalize fills in unusable values from DefaultPacing.
func (p Pacing) normalize() Pacing {
	def := DefaultPacing()
	if p.Floor <= 0 {
		p.Floor = def.Floor
	}
	if p.Initial <= 0 {
		p.Initial = def.Initial
	}
	if p.Initial < p.Floor {
		p.Initial = p.Floor
	}
	if p.Step < 0 {
		p.Step = 0
	}
	return p
}

// Pacer tracks the current tick interval.
type Pacer struct {
	cfg      Pacing
	interval time.Duration
}

// NewPacer creates a pacer at its initial interval.
func NewPacer(p Pacing) *Pacer {
	p = p.normalize()
	return &Pacer{cfg: p, interval: p.Initial}
}

// Interval returns the delay before the next tick.
func (p *Pacer) Interval() time.Duration {
	return p.interval
}

// Advance shrinks the interval by one step, clamped at the floor.
func (p *Pacer) Advance() {
	p.interval -= p.cfg.Step
	if p.interval < p.cfg.Floor {
		p.interval = p.cfg.Floor
	}
}

// Reset returns to the initial interval.
func (p *Pacer) Reset() {
	p.interval = p.cfg.Initial
}

// Pacing returns the normalized settings.
func (p *Pacer) Pacing() Pacing {
	return p.cfg
}
