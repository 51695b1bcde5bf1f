package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment variables that override file configuration.
const (
	EnvRows  = "MAZE_ROWS"
	EnvCols  = "MAZE_COLS"
	EnvSpeed = "MAZE_SPEED"
	EnvSeed  = "MAZE_SEED"
	EnvDB    = "MAZE_DB"
)

// ErrInvalidConfig is returned by Validate.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Load loads the maze configuration.
// Search order: customPath -> ~/.maze/configs/maze.yaml -> ./configs/maze.yaml -> embedded default
func Load(customPath string) (MazeConfig, error) {
	cfg := DefaultMazeConfig()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("maze.yaml"); userCfgPath != "" {
		if parsed, ok := tryLoad(userCfgPath); ok {
			return parsed, nil
		}
	}

	// Try local configs directory
	if parsed, ok := tryLoad(filepath.Join("configs", "maze.yaml")); ok {
		return parsed, nil
	}

	// Use embedded default YAML
	embedded := DefaultMazeConfig()
	if err := yaml.Unmarshal(defaultMazeYAML, &embedded); err != nil {
		return DefaultMazeConfig(), nil // Fallback to hardcoded if embed fails
	}
	return embedded, nil
}

// tryLoad reads a config file layered over the defaults.
// Missing or malformed files are skipped.
func tryLoad(path string) (MazeConfig, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return MazeConfig{}, false
	}
	cfg := DefaultMazeConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return MazeConfig{}, false
	}
	return cfg, true
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".maze", "configs", filename)
}

// ApplyEnv loads envFile into the process environment, if it exists,
// and applies the MAZE_* overrides to cfg.
// Variables already set in the environment win over the file.
func ApplyEnv(cfg *MazeConfig, envFile string) error {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("config: cannot load %s: %w", envFile, err)
		}
	}
	return applyOverrides(cfg, os.LookupEnv)
}

// ApplyEnvMap applies MAZE_* overrides from a parsed env map,
// such as the result of godotenv.Read.
func ApplyEnvMap(cfg *MazeConfig, env map[string]string) error {
	return applyOverrides(cfg, func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	})
}

func applyOverrides(cfg *MazeConfig, lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvRows); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config: invalid %s %q: %w", EnvRows, v, err)
		}
		cfg.Grid.Rows = n
		cfg.Grid.FitTerminal = false
	}
	if v, ok := lookup(EnvCols); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config: invalid %s %q: %w", EnvCols, v, err)
		}
		cfg.Grid.Cols = n
		cfg.Grid.FitTerminal = false
	}
	if v, ok := lookup(EnvSpeed); ok && v != "" {
		level, err := ParseSpeed(v)
		if err != nil {
			return fmt.Errorf("config: invalid %s: %w", EnvSpeed, err)
		}
		cfg.Speed.Level = level
		cfg.Speed.Preset = ""
	}
	if v, ok := lookup(EnvSeed); ok && v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("config: invalid %s %q: %w", EnvSeed, v, err)
		}
		cfg.Seed = n
	}
	if v, ok := lookup(EnvDB); ok && v != "" {
		cfg.Storage.DBPath = v
	}
	return nil
}

// Validate checks the configuration for values the viewer cannot run with.
func (c MazeConfig) Validate() error {
	if !c.Grid.FitTerminal && (c.Grid.Rows < 1 || c.Grid.Cols < 1) {
		return fmt.Errorf("%w: grid must be at least 1x1, got %dx%d", ErrInvalidConfig, c.Grid.Rows, c.Grid.Cols)
	}
	if c.Speed.Preset != "" && LevelForPreset(c.Speed.Preset) == 0 {
		return fmt.Errorf("%w: unknown speed preset %q", ErrInvalidConfig, c.Speed.Preset)
	}
	if c.Speed.Preset == "" && (c.Speed.Level < MinSpeed || c.Speed.Level > MaxSpeed) {
		return fmt.Errorf("%w: speed level %d out of range %d-%d", ErrInvalidConfig, c.Speed.Level, MinSpeed, MaxSpeed)
	}
	if c.SSH.IdleTimeout < 0 {
		return fmt.Errorf("%w: negative ssh idle timeout", ErrInvalidConfig)
	}
	if c.SSH.MaxSessions < 0 {
		return fmt.Errorf("%w: negative ssh session limit", ErrInvalidConfig)
	}
	return nil
}
