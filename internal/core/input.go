package core

// Action represents a semantic viewer action, abstracted from physical key presses.
type Action int

const (
	ActionNone       Action = iota
	ActionStep              // N, Right - grow the maze by one cell
	ActionToggle            // Space, Enter - start/stop autoplay
	ActionReset             // R - new maze
	ActionFaster            // +, Up - raise speed level
	ActionSlower            // -, Down - lower speed level
	ActionScreenshot        // Ctrl+S - save the current view
	ActionHelp              // ? - toggle full help
	ActionQuit              // Q, Ctrl+C - exit
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionStep:
		return "Step"
	case ActionToggle:
		return "Toggle"
	case ActionReset:
		return "Reset"
	case ActionFaster:
		return "Faster"
	case ActionSlower:
		return "Slower"
	case ActionScreenshot:
		return "Screenshot"
	case ActionHelp:
		return "Help"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}
