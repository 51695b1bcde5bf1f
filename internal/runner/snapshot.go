package runner

import (
	"time"

	"github.com/vovakirdan/tui-maze/internal/maze"
)

// Snapshot is an immutable copy of the controller state for renderers.
type Snapshot struct {
	Rows     int
	Cols     int
	Cells    []maze.Cell // Row-major, len Rows*Cols
	Mode     Mode
	Epoch    uint64 // Incremented by every reset
	Seed     int64  // Seed of the current run; 0 when a custom source is used
	Steps    int    // Successful growths in this run
	Visited  int
	Passages int
	Frontier int // Frontier size, stale edges included
	Last     maze.StepResult
	Interval time.Duration

	StartedAt  time.Time // First growth of this run
	FinishedAt time.Time // Exhaustion of this run
}

// Cell returns the cell at (row, col), or a zero Cell when out of bounds.
func (s Snapshot) Cell(row, col int) maze.Cell {
	if row < 0 || row >= s.Rows || col < 0 || col >= s.Cols {
		return maze.Cell{}
	}
	return s.Cells[row*s.Cols+col]
}

// Done reports whether the maze is complete.
func (s Snapshot) Done() bool {
	return s.Mode == Exhausted
}

// Progress returns the fraction of visited cells in [0, 1].
func (s Snapshot) Progress() float64 {
	total := s.Rows * s.Cols
	if total == 0 {
		return 0
	}
	return float64(s.Visited) / float64(total)
}

// Elapsed returns the generation time so far, or the total once finished.
func (s Snapshot) Elapsed(now time.Time) time.Duration {
	if s.StartedAt.IsZero() {
		return 0
	}
	if !s.FinishedAt.IsZero() {
		return s.FinishedAt.Sub(s.StartedAt)
	}
	return now.Sub(s.StartedAt)
}
