package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-maze/internal/config"
)

var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "List speed presets",
	Long: `Shows the named speed presets and the autoplay interval each one uses.

With --defaults the built-in maze.yaml is printed instead, ready to be
saved as ~/.maze/configs/maze.yaml and edited.`,
	Args: cobra.NoArgs,
	Run:  runPresets,
}

var flagDefaults bool

func init() {
	presetsCmd.Flags().BoolVar(&flagDefaults, "defaults", false, "Print the built-in configuration file")
}

func runPresets(_ *cobra.Command, _ []string) {
	if flagDefaults {
		os.Stdout.Write(config.DefaultYAML()) //nolint:errcheck
		return
	}

	fmt.Println("Speed presets:")
	fmt.Println()

	fmt.Printf("  %-8s  %-5s  %s\n", "Preset", "Level", "Interval")
	fmt.Printf("  %-8s  %-5s  %s\n", "------", "-----", "--------")

	for _, p := range config.Presets {
		level := config.LevelForPreset(p)
		fmt.Printf("  %-8s  %-5d  %s\n", p, level, config.IntervalForSpeed(level))
	}

	fmt.Println()
	fmt.Println("Any level from 1 to 100 works too: 'maze run --speed 75'.")
}
