// Package maze provides the grid model and the randomized-Prim generator.
// This package is UI-agnostic and deterministic for a given random source.
package maze

// Side names one of the four walls of a cell.
type Side uint8

const (
	SideTop Side = iota
	SideRight
	SideBottom
	SideLeft
)

// Sides lists every side in neighbor order: top, right, bottom, left.
var Sides = [4]Side{SideTop, SideRight, SideBottom, SideLeft}

// String returns the string representation of a side.
func (s Side) String() string {
	switch s {
	case SideTop:
		return "Top"
	case SideRight:
		return "Right"
	case SideBottom:
		return "Bottom"
	case SideLeft:
		return "Left"
	default:
		return "Unknown"
	}
}

// Delta returns the (drow, dcol) offset of the neighbor on this side.
func (s Side) Delta() (dr, dc int) {
	switch s {
	case SideTop:
		return -1, 0
	case SideRight:
		return 0, 1
	case SideBottom:
		return 1, 0
	case SideLeft:
		return 0, -1
	default:
		return 0, 0
	}
}

// Opposite returns the side facing this one from the neighboring cell.
func (s Side) Opposite() Side {
	switch s {
	case SideTop:
		return SideBottom
	case SideRight:
		return SideLeft
	case SideBottom:
		return SideTop
	case SideLeft:
		return SideRight
	default:
		return s
	}
}

// Cell is a single maze cell.
type Cell struct {
	Visited bool
	Walls   [4]bool // Indexed by Side; true means the wall is present
}

// closedCell returns an unvisited cell with all four walls.
func closedCell() Cell {
	return Cell{Walls: [4]bool{true, true, true, true}}
}

// HasWall reports whether the wall on the given side is present.
func (c Cell) HasWall(s Side) bool {
	if int(s) >= len(c.Walls) {
		return false
	}
	return c.Walls[s]
}

// OpenSides returns the number of removed walls.
func (c Cell) OpenSides() int {
	n := 0
	for _, w := range c.Walls {
		if !w {
			n++
		}
	}
	return n
}
