package core

// Color is the role of a screen cell. The terminal front end maps each role
// to an ANSI color; plain text output ignores it.
type Color uint8

const (
	ColorDefault   Color = iota
	ColorWall            // Maze walls and joints
	ColorUnvisited       // Cells not yet reached
	ColorHead            // The cell grown last
	ColorBanner          // Overlay boxes and their text
)
