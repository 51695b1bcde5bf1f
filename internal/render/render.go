// Package render draws maze snapshots onto a core.Screen.
// It is UI-library-agnostic: the TUI styles the screen, the CLI prints it.
package render

import (
	"fmt"
	"strings"
	"time"

	"github.com/vovakirdan/tui-maze/internal/core"
	"github.com/vovakirdan/tui-maze/internal/maze"
	"github.com/vovakirdan/tui-maze/internal/runner"
)

// Each maze cell takes CellW columns and CellH rows on screen, counting its
// top and left walls. The right and bottom border add one more column and row.
const (
	CellW = 3
	CellH = 2
)

// Options configures the characters and colors used for drawing.
type Options struct {
	Corner    rune // Wall joint (default '+')
	HWall     rune // Horizontal wall (default '-')
	VWall     rune // Vertical wall (default '|')
	Unvisited rune // Fill for cells not yet in the maze (default '#')
	Visited   rune // Fill for cells and passages in the maze (default ' ')
	Last      rune // Fill for the most recently grown cell (default '@')

	WallColor      core.Color
	UnvisitedColor core.Color
	LastColor      core.Color
}

// DefaultOptions returns plain ASCII options suitable for files and pipes.
func DefaultOptions() Options {
	return Options{
		Corner:    '+',
		HWall:     '-',
		VWall:     '|',
		Unvisited: '#',
		Visited:   ' ',
		Last:      '@',
	}
}

// TerminalOptions returns colored options for the interactive viewer.
func TerminalOptions() Options {
	return Options{
		Corner:         '+',
		HWall:          '-',
		VWall:          '|',
		Unvisited:      '░',
		Visited:        ' ',
		Last:           '█',
		WallColor:      core.ColorWall,
		UnvisitedColor: core.ColorUnvisited,
		LastColor:      core.ColorHead,
	}
}

// Size returns the screen size needed to draw a rows x cols maze.
func Size(rows, cols int) (w, h int) {
	return cols*CellW + 1, rows*CellH + 1
}

// FitGrid returns the largest maze dimensions that fit in a w x h area.
// Both dimensions are at least 1.
func FitGrid(w, h int) (rows, cols int) {
	rows = core.Max(1, (h-1)/CellH)
	cols = core.Max(1, (w-1)/CellW)
	return rows, cols
}

// Draw draws snap with its top-left corner at (x0, y0).
// The last grown cell is highlighted until the maze is complete.
func Draw(dst *core.Screen, snap runner.Snapshot, x0, y0 int, opt Options) {
	highlight := snap.Last.Kind == maze.Grown && !snap.Done()

	for r := 0; r < snap.Rows; r++ {
		for c := 0; c < snap.Cols; c++ {
			cell := snap.Cell(r, c)
			x := x0 + c*CellW
			y := y0 + r*CellH

			fill, color := opt.Unvisited, opt.UnvisitedColor
			if cell.Visited {
				fill, color = opt.Visited, core.ColorDefault
			}
			if highlight && snap.Last.Cell == maze.P(r, c) {
				fill, color = opt.Last, opt.LastColor
			}

			// Top-left joint and top wall
			dst.SetColor(x, y, opt.Corner, opt.WallColor)
			for i := 1; i < CellW; i++ {
				if cell.HasWall(maze.SideTop) {
					dst.SetColor(x+i, y, opt.HWall, opt.WallColor)
				} else {
					dst.Set(x+i, y, opt.Visited)
				}
			}

			// Left wall and interior
			if cell.HasWall(maze.SideLeft) {
				dst.SetColor(x, y+1, opt.VWall, opt.WallColor)
			} else {
				dst.Set(x, y+1, opt.Visited)
			}
			for i := 1; i < CellW; i++ {
				dst.SetColor(x+i, y+1, fill, color)
			}

			// Right border
			if c == snap.Cols-1 {
				dst.SetColor(x+CellW, y, opt.Corner, opt.WallColor)
				if cell.HasWall(maze.SideRight) {
					dst.SetColor(x+CellW, y+1, opt.VWall, opt.WallColor)
				} else {
					dst.Set(x+CellW, y+1, opt.Visited)
				}
			}

			// Bottom border
			if r == snap.Rows-1 {
				dst.SetColor(x, y+CellH, opt.Corner, opt.WallColor)
				for i := 1; i < CellW; i++ {
					if cell.HasWall(maze.SideBottom) {
						dst.SetColor(x+i, y+CellH, opt.HWall, opt.WallColor)
					} else {
						dst.Set(x+i, y+CellH, opt.Visited)
					}
				}
			}
		}
	}

	if snap.Rows > 0 && snap.Cols > 0 {
		dst.SetColor(x0+snap.Cols*CellW, y0+snap.Rows*CellH, opt.Corner, opt.WallColor)
	}
}

// ASCII renders snap as plain text with DefaultOptions.
func ASCII(snap runner.Snapshot) string {
	w, h := Size(snap.Rows, snap.Cols)
	screen := core.NewScreen(w, h)
	Draw(screen, snap, 0, 0, DefaultOptions())
	return screen.String()
}

// Status returns a one-line summary of snap.
func Status(snap runner.Snapshot, now time.Time) string {
	var sb strings.Builder
	total := snap.Rows * snap.Cols
	fmt.Fprintf(&sb, "%-9s %dx%d  visited %d/%d (%3.0f%%)  passages %d  frontier %d",
		snap.Mode, snap.Rows, snap.Cols, snap.Visited, total, snap.Progress()*100,
		snap.Passages, snap.Frontier)
	if elapsed := snap.Elapsed(now); elapsed > 0 {
		fmt.Fprintf(&sb, "  %s", elapsed.Round(time.Millisecond))
	}
	if snap.Seed != 0 {
		fmt.Fprintf(&sb, "  seed %d", snap.Seed)
	}
	return sb.String()
}

// Banner draws lines inside a box centered on dst.
// It draws nothing and returns false when the box does not fit.
func Banner(dst *core.Screen, lines []string, c core.Color) bool {
	inner := 0
	for _, l := range lines {
		inner = core.Max(inner, len([]rune(l)))
	}
	w, h := inner+4, len(lines)+2
	box := core.NewRect((dst.Width()-w)/2, (dst.Height()-h)/2, w, h)

	bounds := core.NewRect(0, 0, dst.Width(), dst.Height())
	if !bounds.Contains(box.X, box.Y) || !bounds.Contains(box.Right()-1, box.Bottom()-1) {
		return false
	}

	for y := box.Y + 1; y < box.Bottom()-1; y++ {
		for x := box.X + 1; x < box.Right()-1; x++ {
			dst.Set(x, y, ' ')
		}
	}
	dst.DrawBox(box, c)
	for i, l := range lines {
		dst.DrawTextCentered(box.Y+1+i, l)
	}
	return true
}
