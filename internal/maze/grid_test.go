package maze_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-maze/internal/maze"
)

func TestBuildInvalidDimensions(t *testing.T) {
	tests := []struct {
		name       string
		rows, cols int
	}{
		{"zero rows", 0, 5},
		{"zero cols", 5, 0},
		{"negative rows", -1, 3},
		{"both zero", 0, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g, err := maze.Build(tc.rows, tc.cols)
			assert.Nil(t, g)
			assert.ErrorIs(t, err, maze.ErrInvalidDimensions)
		})
	}
}

func TestBuildFreshGrid(t *testing.T) {
	g, err := maze.Build(3, 4)
	require.NoError(t, err)

	assert.Equal(t, 3, g.Rows())
	assert.Equal(t, 4, g.Cols())
	assert.Equal(t, 12, g.Size())
	assert.Zero(t, g.VisitedCount())
	assert.Zero(t, g.PassageCount())

	for _, c := range g.Cells() {
		assert.False(t, c.Visited)
		for _, s := range maze.Sides {
			assert.True(t, c.HasWall(s), "wall %v should be present", s)
		}
	}
}

func TestNeighborsOfOrder(t *testing.T) {
	g, err := maze.Build(3, 3)
	require.NoError(t, err)

	// Center has all four, in top/right/bottom/left order
	assert.Equal(t,
		[]maze.Pos{maze.P(0, 1), maze.P(1, 2), maze.P(2, 1), maze.P(1, 0)},
		g.NeighborsOf(maze.P(1, 1)))

	// Corner only has right and bottom
	assert.Equal(t,
		[]maze.Pos{maze.P(0, 1), maze.P(1, 0)},
		g.NeighborsOf(maze.P(0, 0)))

	// Visited neighbors are filtered out
	g.MarkVisited(maze.P(0, 1))
	g.MarkVisited(maze.P(1, 0))
	assert.Equal(t,
		[]maze.Pos{maze.P(1, 2), maze.P(2, 1)},
		g.NeighborsOf(maze.P(1, 1)))
}

func TestMarkVisitedCountsOnce(t *testing.T) {
	g, err := maze.Build(2, 2)
	require.NoError(t, err)

	g.MarkVisited(maze.P(1, 1))
	g.MarkVisited(maze.P(1, 1))
	g.MarkVisited(maze.P(5, 5)) // out of bounds, ignored

	assert.Equal(t, 1, g.VisitedCount())
	assert.True(t, g.Visited(maze.P(1, 1)))
}

func TestRemoveWallSymmetric(t *testing.T) {
	tests := []struct {
		name  string
		a, b  maze.Pos
		sideA maze.Side
		sideB maze.Side
	}{
		{"right", maze.P(1, 1), maze.P(1, 2), maze.SideRight, maze.SideLeft},
		{"left", maze.P(1, 1), maze.P(1, 0), maze.SideLeft, maze.SideRight},
		{"down", maze.P(1, 1), maze.P(2, 1), maze.SideBottom, maze.SideTop},
		{"up", maze.P(1, 1), maze.P(0, 1), maze.SideTop, maze.SideBottom},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g, err := maze.Build(3, 3)
			require.NoError(t, err)

			require.NoError(t, g.RemoveWall(tc.a, tc.b))

			assert.False(t, g.Cell(tc.a).HasWall(tc.sideA))
			assert.False(t, g.Cell(tc.b).HasWall(tc.sideB))
			assert.Equal(t, 1, g.Cell(tc.a).OpenSides())
			assert.Equal(t, 1, g.Cell(tc.b).OpenSides())
			assert.Equal(t, 1, g.Removals())
			assert.Equal(t, 1, g.PassageCount())

			present, ok := g.WallFacing(tc.b, tc.a)
			assert.True(t, ok)
			assert.False(t, present)
		})
	}
}

func TestRemoveWallRejectsNonAdjacent(t *testing.T) {
	tests := []struct {
		name string
		a, b maze.Pos
	}{
		{"same cell", maze.P(1, 1), maze.P(1, 1)},
		{"diagonal", maze.P(0, 0), maze.P(1, 1)},
		{"two apart", maze.P(0, 0), maze.P(0, 2)},
		{"out of bounds", maze.P(0, 0), maze.P(-1, 0)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g, err := maze.Build(3, 3)
			require.NoError(t, err)

			err = g.RemoveWall(tc.a, tc.b)
			assert.ErrorIs(t, err, maze.ErrInvalidEdge)
			assert.Zero(t, g.Removals())
			assert.Zero(t, g.PassageCount())
		})
	}
}

func TestWallFacingNonAdjacent(t *testing.T) {
	g, err := maze.Build(2, 2)
	require.NoError(t, err)

	_, ok := g.WallFacing(maze.P(0, 0), maze.P(1, 1))
	assert.False(t, ok)

	present, ok := g.WallFacing(maze.P(0, 0), maze.P(0, 1))
	assert.True(t, ok)
	assert.True(t, present)
}
