package maze

import (
	"fmt"
	"math/rand"
)

// Source supplies the random draws used by the generator.
// *rand.Rand satisfies it.
type Source interface {
	// Intn returns a uniform int in [0, n).
	Intn(n int) int
}

// StepKind classifies the outcome of a generator step.
type StepKind uint8

const (
	// NoStart means there was no cell to grow from (zero-value grid).
	NoStart StepKind = iota
	// Grown means exactly one new cell joined the maze.
	Grown
	// Exhausted means the frontier drained; the maze is complete.
	Exhausted
)

// String returns a human-readable name for the step kind.
func (k StepKind) String() string {
	switch k {
	case NoStart:
		return "NoStart"
	case Grown:
		return "Grown"
	case Exhausted:
		return "Exhausted"
	default:
		return "Unknown"
	}
}

// StepResult is returned by Generator.Step.
type StepResult struct {
	Kind StepKind
	Cell Pos // The cell that joined the maze; valid only when Kind is Grown
}

// Generator grows a maze one cell at a time using randomized Prim selection.
type Generator struct {
	rng Source
}

// NewGenerator creates a generator drawing from the given source.
func NewGenerator(rng Source) *Generator {
	return &Generator{rng: rng}
}

// NewSeededGenerator creates a generator backed by math/rand with a fixed seed.
func NewSeededGenerator(seed int64) *Generator {
	return NewGenerator(rand.New(rand.NewSource(seed)))
}

// Step performs one growth step on grid using frontier.
//
// The first call on a fresh grid picks a random start cell. Later calls pop
// the lightest frontier edge, discarding stale ones, and carve into its target.
// Step panics if the frontier yields a non-adjacent edge, which can only
// happen if grid and frontier were mixed from different mazes.
func (g *Generator) Step(grid *Grid, frontier *Frontier) StepResult {
	if grid == nil || grid.Size() == 0 {
		return StepResult{Kind: NoStart}
	}

	if grid.VisitedCount() == 0 && frontier.IsEmpty() {
		start := P(g.rng.Intn(grid.Rows()), g.rng.Intn(grid.Cols()))
		grid.MarkVisited(start)
		g.enqueueNeighbors(grid, frontier, start)
		return StepResult{Kind: Grown, Cell: start}
	}

	for {
		edge, ok := frontier.PopMin()
		if !ok {
			return StepResult{Kind: Exhausted}
		}
		if grid.Visited(edge.To) {
			continue // stale
		}

		if err := grid.RemoveWall(edge.From, edge.To); err != nil {
			panic(fmt.Errorf("maze: frontier produced a bad edge: %w", err))
		}
		grid.MarkVisited(edge.To)
		g.enqueueNeighbors(grid, frontier, edge.To)
		return StepResult{Kind: Grown, Cell: edge.To}
	}
}

// Run steps until the maze is exhausted and returns the number of growths.
func (g *Generator) Run(grid *Grid, frontier *Frontier) int {
	grown := 0
	for {
		switch g.Step(grid, frontier).Kind {
		case Grown:
			grown++
		default:
			return grown
		}
	}
}

// enqueueNeighbors pushes an edge from p to each unvisited neighbor,
// each with an independent random weight.
func (g *Generator) enqueueNeighbors(grid *Grid, frontier *Frontier, p Pos) {
	for _, n := range grid.NeighborsOf(p) {
		frontier.Push(Edge{
			From:   p,
			To:     n,
			Weight: g.randomWeight(),
		})
	}
}

// randomWeight returns a uniform weight in [MinWeight, MaxWeight].
func (g *Generator) randomWeight() int {
	return g.rng.Intn(MaxWeight-MinWeight+1) + MinWeight
}
