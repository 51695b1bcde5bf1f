package maze

import "fmt"

// Pos identifies a cell by row and column.
// Row increases downward, Col increases to the right.
type Pos struct {
	Row int
	Col int
}

// P is a convenience constructor for Pos.
func P(row, col int) Pos {
	return Pos{Row: row, Col: col}
}

// String returns a string representation of the position.
func (p Pos) String() string {
	return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
}

// Step returns the position one cell away on the given side.
func (p Pos) Step(s Side) Pos {
	dr, dc := s.Delta()
	return Pos{Row: p.Row + dr, Col: p.Col + dc}
}

// Manhattan returns the Manhattan distance to another position.
func (p Pos) Manhattan(other Pos) int {
	dr := p.Row - other.Row
	dc := p.Col - other.Col
	if dr < 0 {
		dr = -dr
	}
	if dc < 0 {
		dc = -dc
	}
	return dr + dc
}

// SideToward returns the side of p that faces an adjacent position.
// ok is false when the two positions are not grid-adjacent.
func (p Pos) SideToward(other Pos) (side Side, ok bool) {
	if p.Manhattan(other) != 1 {
		return 0, false
	}
	switch {
	case other.Row < p.Row:
		return SideTop, true
	case other.Col > p.Col:
		return SideRight, true
	case other.Row > p.Row:
		return SideBottom, true
	default:
		return SideLeft, true
	}
}
