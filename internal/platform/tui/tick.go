// Package tui provides the Bubble Tea integration for quadfall.
// It handles the terminal UI loop, input mapping and the tick clock that
// drives a round.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a round tick. Gen identifies the clock run that
// scheduled it; ticks from a stopped run are dropped.
type TickMsg struct {
	Time time.Time
	Gen  int
}

// tickCmd returns a Bubble Tea command that sends one tick after interval.
func tickCmd(interval time.Duration, gen int) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{Time: t, Gen: gen}
	})
}

// clock adapts the Bubble Tea tick loop to the round's Clock interface.
// Start and Stop are called synchronously from inside Update, so the clock
// only records intent; the model turns it into commands.
type clock struct {
	running bool
	pending bool
	gen     int
}

// Start begins a new tick run unless one is already active.
func (c *clock) Start() {
	if c.running {
		return
	}
	c.running = true
	c.pending = true
	c.gen++
}

// Stop ends the active run. Ticks already in flight become stale.
func (c *clock) Stop() {
	c.running = false
	c.pending = false
	c.gen++
}

// accepts reports whether msg belongs to the active run.
func (c *clock) accepts(msg TickMsg) bool {
	return c.running && msg.Gen == c.gen
}

// kick returns the first tick of a freshly started run, or nil.
func (c *clock) kick(interval time.Duration) tea.Cmd {
	if !c.pending {
		return nil
	}
	c.pending = false
	return tickCmd(interval, c.gen)
}

// next schedules the following tick of the active run, or nil.
func (c *clock) next(interval time.Duration) tea.Cmd {
	if !c.running {
		return nil
	}
	c.pending = false
	return tickCmd(interval, c.gen)
}
