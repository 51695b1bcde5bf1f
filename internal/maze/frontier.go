package maze

import "container/heap"

// MinWeight and MaxWeight bound the random weight of a frontier edge.
const (
	MinWeight = 1
	MaxWeight = 100
)

// Edge is a candidate passage from a visited cell to a neighbor that was
// unvisited when the edge was created.
type Edge struct {
	From   Pos
	To     Pos
	Weight int
	seq    uint64 // Insertion order, breaks weight ties
}

// Frontier holds candidate edges ordered by weight, earliest insertion first
// on ties. Edges whose target has since been visited are left in place and
// must be discarded by the caller when popped.
type Frontier struct {
	edges edgeHeap
	next  uint64
}

// NewFrontier creates an empty frontier.
func NewFrontier() *Frontier {
	return &Frontier{}
}

// Push inserts an edge. Duplicates are allowed.
func (f *Frontier) Push(e Edge) {
	e.seq = f.next
	f.next++
	heap.Push(&f.edges, e)
}

// PopMin removes and returns the lightest edge.
// Returns false when the frontier is empty.
func (f *Frontier) PopMin() (Edge, bool) {
	if len(f.edges) == 0 {
		return Edge{}, false
	}
	return heap.Pop(&f.edges).(Edge), true
}

// IsEmpty reports whether the frontier has no edges.
func (f *Frontier) IsEmpty() bool {
	return len(f.edges) == 0
}

// Len returns the number of edges, stale ones included.
func (f *Frontier) Len() int {
	return len(f.edges)
}

// Clear drops every edge and restarts insertion numbering.
func (f *Frontier) Clear() {
	f.edges = nil
	f.next = 0
}

// edgeHeap implements heap.Interface as a min-heap on (Weight, seq).
type edgeHeap []Edge

func (h edgeHeap) Len() int { return len(h) }

func (h edgeHeap) Less(i, j int) bool {
	if h[i].Weight != h[j].Weight {
		return h[i].Weight < h[j].Weight
	}
	return h[i].seq < h[j].seq
}

func (h edgeHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *edgeHeap) Push(x any) {
	*h = append(*h, x.(Edge))
}

func (h *edgeHeap) Pop() any {
	old := *h
	n := len(old)
	e := old[n-1]
	*h = old[:n-1]
	return e
}
