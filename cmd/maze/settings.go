package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-maze/internal/config"
	"github.com/vovakirdan/tui-maze/internal/core"
	"github.com/vovakirdan/tui-maze/internal/storage"
)

// loadConfig resolves the configuration: file, then environment, then flags.
func loadConfig(cmd *cobra.Command) (config.MazeConfig, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}
	if err := config.ApplySpeedPreset(&cfg, cfg.Speed.Preset); err != nil {
		return cfg, err
	}
	if err := config.ApplyEnv(&cfg, flagEnvFile); err != nil {
		return cfg, err
	}

	flags := cmd.Flags()
	if flags.Changed("rows") {
		cfg.Grid.Rows = flagRows
		cfg.Grid.FitTerminal = false
	}
	if flags.Changed("cols") {
		cfg.Grid.Cols = flagCols
		cfg.Grid.FitTerminal = false
	}
	if flags.Changed("speed") {
		level, err := config.ParseSpeed(flagSpeed)
		if err != nil {
			return cfg, err
		}
		cfg.Speed.Level = level
		cfg.Speed.Preset = ""
	}
	if flags.Changed("seed") {
		cfg.Seed = flagSeed
	}
	if flags.Changed("db") {
		cfg.Storage.DBPath = flagDBPath
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// terminalSize returns the size of stdout, or 80x24 when it is not a terminal.
func terminalSize() (width, height int, ok bool) {
	w, h, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		return 80, 24, false
	}
	return w, h, true
}

// runtimeConfig builds the viewer settings from the resolved configuration.
func runtimeConfig(cfg config.MazeConfig, width, height int) core.RuntimeConfig {
	return core.RuntimeConfig{
		ScreenW: width,
		ScreenH: height,
		Rows:    cfg.Grid.Rows,
		Cols:    cfg.Grid.Cols,
		Speed:   cfg.Speed.EffectiveLevel(),
		Seed:    cfg.Seed,
	}
}

// openStore opens the run history, warning instead of failing.
func openStore(cfg config.MazeConfig) *storage.Store {
	store, err := storage.Open(cfg.Storage.DBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open run history: %v\n", err)
		return nil
	}
	return store
}
