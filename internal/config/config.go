// Package config provides YAML-based maze configuration loading and
// speed preset management for the maze viewer.
package config

import "time"

// MazeConfig contains all configuration for the maze viewer.
type MazeConfig struct {
	Grid    GridConfig    `yaml:"grid"`
	Speed   SpeedConfig   `yaml:"speed"`
	Seed    int64         `yaml:"seed"` // 0 = time-based
	Storage StorageConfig `yaml:"storage"`
	SSH     SSHConfig     `yaml:"ssh"`
}

// GridConfig defines the maze dimensions.
type GridConfig struct {
	Rows        int  `yaml:"rows"`
	Cols        int  `yaml:"cols"`
	FitTerminal bool `yaml:"fit_terminal"` // Size the maze to the terminal, ignoring rows/cols
}

// SpeedConfig defines the autoplay speed.
type SpeedConfig struct {
	Level  int         `yaml:"level"`  // 1 (slowest) to 100 (fastest)
	Preset SpeedPreset `yaml:"preset"` // Overrides level when set
}

// StorageConfig defines where run history is kept.
type StorageConfig struct {
	DBPath string `yaml:"db_path"`
}

// SSHConfig defines the SSH server settings.
type SSHConfig struct {
	Address     string        `yaml:"address"`
	HostKeyPath string        `yaml:"host_key_path"` // Empty = ~/.maze/host_key
	IdleTimeout time.Duration `yaml:"idle_timeout"`
	MaxSessions int           `yaml:"max_sessions"` // 0 = unlimited
}

// SpeedPreset represents a named speed level.
type SpeedPreset string

const (
	SpeedSlow   SpeedPreset = "slow"
	SpeedNormal SpeedPreset = "normal"
	SpeedFast   SpeedPreset = "fast"
	SpeedMax    SpeedPreset = "max"
)

// Presets lists the speed presets from slowest to fastest.
var Presets = []SpeedPreset{SpeedSlow, SpeedNormal, SpeedFast, SpeedMax}
