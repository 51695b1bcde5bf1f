package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-maze/internal/config"
	"github.com/vovakirdan/tui-maze/internal/maze"
	"github.com/vovakirdan/tui-maze/internal/render"
	"github.com/vovakirdan/tui-maze/internal/runner"
	"github.com/vovakirdan/tui-maze/internal/storage"
)

var (
	flagLive    bool
	flagOut     string
	flagNoSave  bool
	flagVerbose bool
	flagTimeout time.Duration
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a maze and print it as ASCII",
	Long: `Generate a complete maze without the interactive viewer and print it.

By default the maze is grown synchronously. With --live it is grown by the
autoplay timer at the configured speed, exactly as the viewer would, and
progress is logged to stderr.

When the terminal size cannot be used (output is piped) and no --rows or
--cols are given, the configured grid size is used.

Examples:
  maze generate --rows 10 --cols 20
  maze generate --seed 42 --out maze.txt
  maze generate --live --speed normal -v`,
	Args: cobra.NoArgs,
	Run:  runGenerate,
}

func init() {
	generateCmd.Flags().BoolVar(&flagLive, "live", false, "Grow the maze with the autoplay timer")
	generateCmd.Flags().StringVarP(&flagOut, "out", "o", "", "Write the maze to a file instead of stdout")
	generateCmd.Flags().BoolVar(&flagNoSave, "no-save", false, "Do not record the run in history")
	generateCmd.Flags().BoolVarP(&flagVerbose, "verbose", "v", false, "Log controller events")
	generateCmd.Flags().DurationVar(&flagTimeout, "timeout", 0, "Give up after this long (0 = no limit)")
}

func runGenerate(cmd *cobra.Command, _ []string) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "maze",
	})
	if flagVerbose {
		logger.SetLevel(log.DebugLevel)
	}

	rows, cols := cfg.Grid.Rows, cfg.Grid.Cols
	if cfg.Grid.FitTerminal {
		if w, h, ok := terminalSize(); ok {
			rows, cols = render.FitGrid(w, h-1)
		}
	}

	ctrl, err := runner.New(runner.Options{
		Rows:     rows,
		Cols:     cols,
		Seed:     cfg.Seed,
		Interval: config.IntervalForSpeed(cfg.Speed.EffectiveLevel()),
		Logger:   logger,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if flagTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, flagTimeout)
		defer cancel()
	}

	logger.Info("generating", "rows", rows, "cols", cols, "seed", ctrl.Snapshot().Seed, "live", flagLive)
	genErr := generate(ctx, ctrl, flagLive)
	snap := ctrl.Snapshot()

	if !flagNoSave {
		recordRun(logger, cfg, snap)
	}

	if genErr != nil {
		logger.Error("generation interrupted", "visited", snap.Visited, "error", genErr)
		os.Exit(1)
	}

	if err := verifyComplete(snap); err != nil {
		logger.Error("bad maze", "error", err)
		os.Exit(1)
	}

	logger.Info("done", "steps", snap.Steps, "passages", snap.Passages,
		"elapsed", snap.Elapsed(time.Now()).Round(time.Microsecond))

	out := render.ASCII(snap) + "\n"
	if flagOut == "" {
		fmt.Print(out)
		return
	}
	if err := os.WriteFile(flagOut, []byte(out), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	logger.Info("maze written", "path", flagOut)
}

// generate grows the maze to completion. In live mode it uses the autoplay
// timer and waits for exhaustion; otherwise it steps synchronously.
func generate(ctx context.Context, ctrl *runner.Controller, live bool) error {
	if live {
		ctrl.Start()
		if err := ctrl.Wait(ctx); err != nil {
			ctrl.Stop()
			return err
		}
		return nil
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if ctrl.Step().Kind == maze.Exhausted {
			return nil
		}
	}
}

// recordRun saves the run summary, logging instead of failing.
func recordRun(logger *log.Logger, cfg config.MazeConfig, snap runner.Snapshot) {
	store, err := storage.Open(cfg.Storage.DBPath)
	if err != nil {
		logger.Warn("could not open run history", "error", err)
		return
	}
	defer store.Close()

	id, err := store.RecordRun(snap, "cli")
	if err != nil {
		logger.Warn("could not record run", "error", err)
		return
	}
	logger.Debug("run recorded", "id", id)
}

var errIncomplete = errors.New("maze incomplete")

// verifyComplete checks the finished snapshot forms a spanning tree.
func verifyComplete(snap runner.Snapshot) error {
	total := snap.Rows * snap.Cols
	if snap.Visited != total || snap.Passages != total-1 {
		return fmt.Errorf("%w: visited %d/%d, passages %d", errIncomplete, snap.Visited, total, snap.Passages)
	}
	return nil
}
