package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/quadfall/internal/core"
)

// KeyMap defines the key bindings of a round.
// Arrows steer a piece across its fall axis, WASD push it along the axis.
type KeyMap struct {
	ShiftUp    key.Binding
	ShiftDown  key.Binding
	ShiftLeft  key.Binding
	ShiftRight key.Binding
	MoveUp     key.Binding
	MoveDown   key.Binding
	MoveLeft   key.Binding
	MoveRight  key.Binding
	Rotate     key.Binding
	Drop       key.Binding
	Mute       key.Binding
	Pause      key.Binding
	Restart    key.Binding
	Screenshot key.Binding
	Quit       key.Binding
}

// DefaultKeyMap returns default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		ShiftUp: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("↑", "steer up"),
		),
		ShiftDown: key.NewBinding(
			key.WithKeys("down"),
			key.WithHelp("↓", "steer down"),
		),
		ShiftLeft: key.NewBinding(
			key.WithKeys("left"),
			key.WithHelp("←/→/↑/↓", "steer"),
		),
		ShiftRight: key.NewBinding(
			key.WithKeys("right"),
			key.WithHelp("→", "steer right"),
		),
		MoveUp: key.NewBinding(
			key.WithKeys("w"),
			key.WithHelp("w/a/s/d", "push"),
		),
		MoveDown: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "push down"),
		),
		MoveLeft: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "push left"),
		),
		MoveRight: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "push right"),
		),
		Rotate: key.NewBinding(
			key.WithKeys(" ", "space"),
			key.WithHelp("space", "rotate"),
		),
		Drop: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "drop"),
		),
		Mute: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "mute"),
		),
		Pause: key.NewBinding(
			key.WithKeys("p", "esc", "enter"),
			key.WithHelp("p", "start/pause"),
		),
		Restart: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "restart"),
		),
		Screenshot: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "screenshot"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.ShiftLeft, k.MoveUp, k.Rotate, k.Drop, k.Pause, k.Restart, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.ShiftUp, k.ShiftDown, k.ShiftLeft, k.ShiftRight},
		{k.MoveUp, k.MoveDown, k.MoveLeft, k.MoveRight},
		{k.Rotate, k.Drop, k.Mute},
		{k.Pause, k.Restart, k.Screenshot, k.Quit},
	}
}

// Action translates a key message to a round action.
// Unbound keys map to core.ActionNone.
func (k KeyMap) Action(msg tea.KeyMsg) core.Action {
	bindings := []struct {
		binding key.Binding
		action  core.Action
	}{
		{k.Quit, core.ActionQuit},
		{k.Screenshot, core.ActionScreenshot},
		{k.ShiftUp, core.ActionShiftUp},
		{k.ShiftDown, core.ActionShiftDown},
		{k.ShiftLeft, core.ActionShiftLeft},
		{k.ShiftRight, core.ActionShiftRight},
		{k.MoveUp, core.ActionMoveUp},
		{k.MoveDown, core.ActionMoveDown},
		{k.MoveLeft, core.ActionMoveLeft},
		{k.MoveRight, core.ActionMoveRight},
		{k.Rotate, core.ActionRotate},
		{k.Drop, core.ActionDrop},
		{k.Mute, core.ActionMute},
		{k.Pause, core.ActionPause},
		{k.Restart, core.ActionRestart},
	}
	for _, b := range bindings {
		if key.Matches(msg, b.binding) {
			return b.action
		}
	}
	return core.ActionNone
}
