package core

// Action represents a semantic game action, abstracted from physical key presses.
// The platform maps keys to actions; the round only ever sees actions.
type Action int

const (
	ActionNone       Action = iota
	ActionShiftUp           // Up arrow - steer a horizontal piece up
	ActionShiftDown         // Down arrow - steer a horizontal piece down
	ActionShiftLeft         // Left arrow - steer a vertical piece left
	ActionShiftRight        // Right arrow - steer a vertical piece right
	ActionMoveUp            // W - push along the fall axis
	ActionMoveDown          // S
	ActionMoveLeft          // A
	ActionMoveRight         // D
	ActionRotate            // Space - rotate 90 degrees
	ActionDrop              // F - one immediate fall step
	ActionMute              // M - toggle audio mute
	ActionPause             // P, Escape - pause/unpause
	ActionRestart           // R - start a fresh round
	ActionScreenshot        // Ctrl+S - dump the current frame
	ActionQuit              // Q, Ctrl+C - exit
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionShiftUp:
		return "ShiftUp"
	case ActionShiftDown:
		return "ShiftDown"
	case ActionShiftLeft:
		return "ShiftLeft"
	case ActionShiftRight:
		return "ShiftRight"
	case ActionMoveUp:
		return "MoveUp"
	case ActionMoveDown:
		return "MoveDown"
	case ActionMoveLeft:
		return "MoveLeft"
	case ActionMoveRight:
		return "MoveRight"
	case ActionRotate:
		return "Rotate"
	case ActionDrop:
		return "Drop"
	case ActionMute:
		return "Mute"
	case ActionPause:
		return "Pause"
	case ActionRestart:
		return "Restart"
	case ActionScreenshot:
		return "Screenshot"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}
