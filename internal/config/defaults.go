package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/maze.yaml
var defaultMazeYAML []byte

// DefaultMazeConfig returns the hardcoded maze configuration.
// It mirrors defaults/maze.yaml and is used when the embedded file cannot be parsed.
func DefaultMazeConfig() MazeConfig {
	return MazeConfig{
		Grid: GridConfig{
			Rows:        15,
			Cols:        25,
			FitTerminal: true,
		},
		Speed: SpeedConfig{
			Level: 90,
		},
		Storage: StorageConfig{
			DBPath: "~/.maze/history.db",
		},
		SSH: SSHConfig{
			Address:     ":23234",
			IdleTimeout: 30 * time.Minute,
			MaxSessions: 32,
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultMazeYAML
}
