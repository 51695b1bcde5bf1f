package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-maze/internal/platform/tui"
)

var flagAutoplay bool

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Watch a maze being generated",
	Long: `Open the interactive viewer and grow a maze step by step or on autoplay.

Controls:
  N/Right     - Grow one cell
  Space/Enter - Start/stop autoplay
  R           - New maze
  +/-         - Faster/slower
  Ctrl+S      - Save a screenshot to ~/.maze/screenshots
  ?           - More help
  Q/Ctrl+C    - Quit

Runs are recorded in the history database when they complete, or when
they are abandoned by reset or quit after growing at least one cell.

Examples:
  maze run
  maze run --autoplay --speed max
  maze run --rows 10 --cols 30 --seed 7`,
	Args: cobra.NoArgs,
	Run:  runViewer,
}

func init() {
	runCmd.Flags().BoolVar(&flagAutoplay, "autoplay", false, "Start generating immediately")
}

func runViewer(cmd *cobra.Command, _ []string) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	width, height, _ := terminalSize()

	opts := tui.Options{
		Config:      runtimeConfig(cfg, width, height),
		FitTerminal: cfg.Grid.FitTerminal,
		Autoplay:    flagAutoplay,
		Source:      "tui",
		Logger: log.NewWithOptions(os.Stderr, log.Options{
			Level:  log.WarnLevel,
			Prefix: "maze",
		}),
	}

	// Open run history; the viewer still works without it
	store := openStore(cfg)
	if store != nil {
		opts.Recorder = store
	}

	runErr := tui.Run(opts)

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running viewer: %v\n", runErr)
		os.Exit(1)
	}
}
