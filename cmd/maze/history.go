package main

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-maze/internal/platform/tui"
	"github.com/vovakirdan/tui-maze/internal/storage"
)

var (
	flagPlain     bool
	flagLimit     int
	flagBySeed    bool
	flagClearRuns bool
	flagRunID     string
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recorded maze runs",
	Long: `Display recently recorded runs and aggregate statistics.

Only run summaries are recorded (seed, size, steps, completion, time),
never the maze itself. A maze can be regenerated from its seed and size.

In a terminal an interactive table is shown; use --plain or pipe the
output for a text listing.

Examples:
  maze history
  maze history --plain --limit 5
  maze history --seed 42 --by-seed
  maze history --id 0b6f3c1e-...
  maze history --clear`,
	Args: cobra.NoArgs,
	Run:  runHistory,
}

func init() {
	historyCmd.Flags().BoolVar(&flagPlain, "plain", false, "Print a text listing instead of the interactive table")
	historyCmd.Flags().IntVar(&flagLimit, "limit", 20, "Maximum runs to list in plain mode")
	historyCmd.Flags().BoolVar(&flagBySeed, "by-seed", false, "Only list runs generated from --seed")
	historyCmd.Flags().BoolVar(&flagClearRuns, "clear", false, "Delete all recorded runs")
	historyCmd.Flags().StringVar(&flagRunID, "id", "", "Show a single run and how to regenerate it")
}

func runHistory(cmd *cobra.Command, _ []string) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	store, err := storage.Open(cfg.Storage.DBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening run history: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagClearRuns {
		if err := store.ClearRuns(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Run history cleared.")
		return
	}

	if flagRunID != "" {
		run, err := store.RunByID(flagRunID)
		if errors.Is(err, storage.ErrNotFound) {
			fmt.Fprintf(os.Stderr, "Error: no run with id %q\n", flagRunID)
			os.Exit(1)
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error retrieving run: %v\n", err)
			os.Exit(1)
		}
		fmt.Print(formatRun(run))
		return
	}

	width, height, isTerm := terminalSize()
	if isTerm && !flagPlain && !flagBySeed {
		if err := tui.RunHistory(store, width, height); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	var runs []storage.Run
	if flagBySeed {
		runs, err = store.RunsBySeed(cfg.Seed)
	} else {
		runs, err = store.RecentRuns(flagLimit)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving runs: %v\n", err)
		os.Exit(1)
	}

	stats, err := store.Stats()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving stats: %v\n", err)
		os.Exit(1)
	}

	fmt.Print(formatHistory(runs, stats))
}

// formatHistory renders runs as a plain text table.
func formatHistory(runs []storage.Run, stats *storage.Stats) string {
	var sb strings.Builder
	sb.WriteString("Maze History\n\n")

	if len(runs) == 0 {
		sb.WriteString("No runs recorded yet.\n\n")
		sb.WriteString("Run 'maze run' or 'maze generate' to create one!\n")
		return sb.String()
	}

	columns := tui.HistoryColumns()

	// Print header
	for i, col := range columns {
		if i > 0 {
			sb.WriteString("  ")
		}
		fmt.Fprintf(&sb, "%-*s", col.Width, col.Title)
	}
	sb.WriteString("  ID\n")
	for i, col := range columns {
		if i > 0 {
			sb.WriteString("  ")
		}
		sb.WriteString(strings.Repeat("-", col.Width))
	}
	sb.WriteString("  --\n")

	// Print runs
	for _, r := range runs {
		row := tui.HistoryRow(r)
		for i, cell := range row {
			if i > 0 {
				sb.WriteString("  ")
			}
			fmt.Fprintf(&sb, "%-*s", columns[i].Width, cell)
		}
		sb.WriteString("  " + r.ID + "\n")
	}

	sb.WriteString("\n")
	sb.WriteString(tui.StatsLine(stats))
	sb.WriteString("\n")
	return sb.String()
}

// formatRun describes one run and the command that regenerates its maze.
func formatRun(r storage.Run) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Run %s\n\n", r.ID)
	fmt.Fprintf(&sb, "  Created    %s\n", r.CreatedAt.Local().Format(time.DateTime))
	fmt.Fprintf(&sb, "  Size       %dx%d\n", r.Rows, r.Cols)
	fmt.Fprintf(&sb, "  Seed       %d\n", r.Seed)
	fmt.Fprintf(&sb, "  Steps      %d\n", r.Steps)
	fmt.Fprintf(&sb, "  Passages   %d\n", r.Passages)
	fmt.Fprintf(&sb, "  Completed  %t\n", r.Completed)
	fmt.Fprintf(&sb, "  Duration   %s\n", r.Duration.Round(time.Millisecond))
	fmt.Fprintf(&sb, "  Source     %s\n", r.Source)
	fmt.Fprintf(&sb, "\nRegenerate with: maze generate --rows %d --cols %d --seed %d\n", r.Rows, r.Cols, r.Seed)
	return sb.String()
}
