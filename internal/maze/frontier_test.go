package maze_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-maze/internal/maze"
)

func TestFrontierPopMinOrder(t *testing.T) {
	f := maze.NewFrontier()
	assert.True(t, f.IsEmpty())

	for i, w := range []int{50, 10, 99, 1, 30} {
		f.Push(maze.Edge{From: maze.P(0, i), To: maze.P(1, i), Weight: w})
	}
	assert.Equal(t, 5, f.Len())

	var got []int
	for !f.IsEmpty() {
		e, ok := f.PopMin()
		require.True(t, ok)
		got = append(got, e.Weight)
	}
	assert.Equal(t, []int{1, 10, 30, 50, 99}, got)
}

func TestFrontierTieBreakByInsertion(t *testing.T) {
	f := maze.NewFrontier()
	f.Push(maze.Edge{To: maze.P(0, 0), Weight: 7})
	f.Push(maze.Edge{To: maze.P(0, 1), Weight: 3})
	f.Push(maze.Edge{To: maze.P(0, 2), Weight: 7})
	f.Push(maze.Edge{To: maze.P(0, 3), Weight: 3})
	f.Push(maze.Edge{To: maze.P(0, 4), Weight: 7})

	want := []maze.Pos{maze.P(0, 1), maze.P(0, 3), maze.P(0, 0), maze.P(0, 2), maze.P(0, 4)}
	for i, p := range want {
		e, ok := f.PopMin()
		require.True(t, ok)
		assert.Equal(t, p, e.To, "pop %d", i)
	}
}

func TestFrontierAllowsDuplicates(t *testing.T) {
	f := maze.NewFrontier()
	e := maze.Edge{From: maze.P(0, 0), To: maze.P(0, 1), Weight: 5}
	f.Push(e)
	f.Push(e)
	assert.Equal(t, 2, f.Len())
}

func TestFrontierEmptyAndClear(t *testing.T) {
	f := maze.NewFrontier()

	_, ok := f.PopMin()
	assert.False(t, ok)

	f.Push(maze.Edge{Weight: 1})
	f.Push(maze.Edge{Weight: 2})
	f.Clear()

	assert.True(t, f.IsEmpty())
	_, ok = f.PopMin()
	assert.False(t, ok)
}
