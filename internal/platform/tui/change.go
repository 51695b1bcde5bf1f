// Package tui provides the Bubble Tea integration for the maze viewer.
// It handles the terminal UI loop, input mapping and run recording.
package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// ChangeMsg is sent when the controller reports a state change.
type ChangeMsg struct{}

// waitForChange returns a command that blocks until the controller signals
// a change or done is closed.
func waitForChange(changes <-chan struct{}, done <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		select {
		case <-changes:
			return ChangeMsg{}
		case <-done:
			return nil
		}
	}
}
