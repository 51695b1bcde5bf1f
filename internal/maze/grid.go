package maze

import "fmt"

// Grid is a rectangular maze board.
// Cells are stored in row-major order: index = row*cols + col.
type Grid struct {
	rows     int
	cols     int
	cells    []Cell
	visited  int // Number of visited cells
	removals int // Number of successful RemoveWall calls
}

// Build allocates a rows x cols grid with every cell unvisited and fully walled.
func Build(rows, cols int) (*Grid, error) {
	if rows < 1 || cols < 1 {
		return nil, fmt.Errorf("%w: got %dx%d", ErrInvalidDimensions, rows, cols)
	}

	g := &Grid{
		rows:  rows,
		cols:  cols,
		cells: make([]Cell, rows*cols),
	}
	for i := range g.cells {
		g.cells[i] = closedCell()
	}
	return g, nil
}

// Rows returns the number of rows.
func (g *Grid) Rows() int {
	return g.rows
}

// Cols returns the number of columns.
func (g *Grid) Cols() int {
	return g.cols
}

// Size returns the total number of cells.
func (g *Grid) Size() int {
	return len(g.cells)
}

func (g *Grid) index(p Pos) int {
	return p.Row*g.cols + p.Col
}

// InBounds returns true if the position lies within the grid.
func (g *Grid) InBounds(p Pos) bool {
	return p.Row >= 0 && p.Row < g.rows && p.Col >= 0 && p.Col < g.cols
}

// Cell returns the cell at p. Out-of-bounds positions yield a zero Cell.
func (g *Grid) Cell(p Pos) Cell {
	if !g.InBounds(p) {
		return Cell{}
	}
	return g.cells[g.index(p)]
}

// Visited reports whether the cell at p has been visited.
func (g *Grid) Visited(p Pos) bool {
	return g.Cell(p).Visited
}

// MarkVisited flags the cell at p as part of the maze.
func (g *Grid) MarkVisited(p Pos) {
	if !g.InBounds(p) {
		return
	}
	c := &g.cells[g.index(p)]
	if !c.Visited {
		c.Visited = true
		g.visited++
	}
}

// NeighborsOf returns the in-bounds, unvisited neighbors of p
// in the fixed order top, right, bottom, left.
func (g *Grid) NeighborsOf(p Pos) []Pos {
	result := make([]Pos, 0, len(Sides))
	for _, s := range Sides {
		n := p.Step(s)
		if g.InBounds(n) && !g.cells[g.index(n)].Visited {
			result = append(result, n)
		}
	}
	return result
}

// RemoveWall opens the passage between two adjacent cells, clearing the wall
// on both sides at once.
func (g *Grid) RemoveWall(a, b Pos) error {
	if !g.InBounds(a) || !g.InBounds(b) {
		return fmt.Errorf("%w: %v-%v out of bounds", ErrInvalidEdge, a, b)
	}
	side, ok := a.SideToward(b)
	if !ok {
		return fmt.Errorf("%w: %v-%v", ErrInvalidEdge, a, b)
	}

	g.cells[g.index(a)].Walls[side] = false
	g.cells[g.index(b)].Walls[side.Opposite()] = false
	g.removals++
	return nil
}

// WallFacing reports whether a's wall toward the adjacent cell b is present.
// ok is false when a and b are not adjacent.
func (g *Grid) WallFacing(a, b Pos) (present bool, ok bool) {
	if !g.InBounds(a) || !g.InBounds(b) {
		return false, false
	}
	side, ok := a.SideToward(b)
	if !ok {
		return false, false
	}
	return g.cells[g.index(a)].Walls[side], true
}

// VisitedCount returns the number of visited cells.
func (g *Grid) VisitedCount() int {
	return g.visited
}

// Removals returns how many wall removals have been performed.
func (g *Grid) Removals() int {
	return g.removals
}

// PassageCount counts open walls between adjacent cells.
// Each passage is counted once (right and bottom walls only).
func (g *Grid) PassageCount() int {
	count := 0
	for row := 0; row < g.rows; row++ {
		for col := 0; col < g.cols; col++ {
			c := g.cells[row*g.cols+col]
			if col+1 < g.cols && !c.Walls[SideRight] {
				count++
			}
			if row+1 < g.rows && !c.Walls[SideBottom] {
				count++
			}
		}
	}
	return count
}

// Cells returns a copy of all cells in row-major order.
func (g *Grid) Cells() []Cell {
	cells := make([]Cell, len(g.cells))
	copy(cells, g.cells)
	return cells
}
