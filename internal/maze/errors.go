package maze

import "errors"

var (
	// ErrInvalidDimensions is returned when a grid is built with rows or cols < 1.
	ErrInvalidDimensions = errors.New("maze: rows and cols must be at least 1")

	// ErrInvalidEdge reports a wall removal between cells that are not adjacent.
	// The generator never produces one; seeing it means an internal defect.
	ErrInvalidEdge = errors.New("maze: cells are not adjacent")
)
