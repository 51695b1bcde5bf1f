// maze is a terminal maze generator that grows perfect mazes with a
// randomized Prim frontier, one cell at a time.
//
// Usage:
//
//	maze run                 - Watch a maze being generated interactively
//	maze generate            - Generate a maze headlessly and print it
//	maze history             - Browse recorded runs
//	maze serve               - Start SSH server for remote viewing
//	maze presets             - List speed presets
//
// Global flags:
//
//	--rows, --cols <n>   - Maze size (default: fit the terminal)
//	--speed <level>      - Speed 1-100 or slow, normal, fast, max
//	--seed <value>       - RNG seed for reproducible mazes
//	--config <path>      - Custom config YAML
//	--db <path>          - Run history database (default: ~/.maze/history.db)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagConfig  string
	flagEnvFile string
	flagRows    int
	flagCols    int
	flagSpeed   string
	flagSeed    int64
	flagDBPath  string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "maze",
	Short: "TUI Maze - Watch perfect mazes grow in your terminal",
	Long: `TUI Maze grows a perfect maze over a rectangular grid with a randomized
Prim frontier: every step adds the cheapest edge from the maze to an
unvisited cell, until every cell is connected by exactly one path.

Available commands:
  run       - Interactive viewer (step, start/stop, reset, speed)
  generate  - Headless generation, prints the maze as ASCII
  history   - Browse recorded runs
  serve     - Start SSH server for remote viewing
  presets   - List speed presets

Configuration is read from --config, ~/.maze/configs/maze.yaml or
./configs/maze.yaml, then MAZE_ROWS, MAZE_COLS, MAZE_SPEED, MAZE_SEED and
MAZE_DB (also from a .env file), then flags.

Examples:
  maze run
  maze run --rows 20 --cols 40 --speed fast
  maze generate --seed 42 --rows 10 --cols 10
  maze history
  maze serve --ssh :2222`,
	SilenceUsage: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	rootCmd.PersistentFlags().StringVar(&flagEnvFile, "env", ".env", "Path to an optional .env file with MAZE_* overrides")
	rootCmd.PersistentFlags().IntVar(&flagRows, "rows", 0, "Maze rows (default: fit the terminal)")
	rootCmd.PersistentFlags().IntVar(&flagCols, "cols", 0, "Maze columns (default: fit the terminal)")
	rootCmd.PersistentFlags().StringVar(&flagSpeed, "speed", "", "Autoplay speed: 1-100 or slow, normal, fast, max")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to run history database (default ~/.maze/history.db)")

	// Add subcommands
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(presetsCmd)
}
