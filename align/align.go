// Package align computes minimum-cost alignments between a compiled
// alignment graph and a text.
//
// The problem is a shortest-path search over an implicit product graph
// whose nodes are (graph state, text offset) pairs: epsilon edges stay at
// the same offset for free, match edges advance the offset at cost 0 (the
// predicate accepts) or the substitution cost (it rejects), every match
// edge doubles as a same-offset deletion, and every node has an insertion
// edge to the next offset. The search records a predecessor per improved
// node in a flat table; reconstruction backtracks it from
// (accept, len(text)) and yields the edit script, the visited states, and
// the captured group spans.
package align

import (
	"container/heap"
	"math"

	"github.com/coregx/fuzzyre/graph"
)

// step kinds recorded in the predecessor table. Epsilon steps appear on
// the reconstructed path (the capture extractor needs them) but produce no
// edit operation.
const (
	stepNone uint8 = iota
	stepMatch
	stepSubstitute
	stepDelete
	stepInsert
	stepEpsilon
)

// Result is one optimal alignment: the total edit cost, the edit script in
// forward order, and the full (state, offset) path it was reconstructed
// from. Results are not mutated after return.
type Result struct {
	Cost int
	Ops  []Operation
	Path []Visit
}

// Aligner runs alignments of one graph against texts, reusing its
// per-invocation tables. An Aligner is not safe for concurrent use; the
// graph it wraps is.
type Aligner struct {
	graph *graph.Graph
	costs Costs

	// Flat tables indexed by offset*len(states)+state. Reallocated only
	// when a longer text arrives.
	dist      []int32
	predNode  []int32
	predStep  []uint8
	predLabel []rune

	queue pathHeap
}

// NewAligner creates an aligner for the given graph and cost model.
func NewAligner(g *graph.Graph, costs Costs) (*Aligner, error) {
	if err := costs.Validate(); err != nil {
		return nil, err
	}
	return &Aligner{graph: g, costs: costs}, nil
}

// Align computes a minimum-cost alignment of text against the graph.
//
// The returned alignment is deterministic: ties between equal-cost paths
// are resolved by relaxing edges in pattern declaration order and keeping
// the first optimal path found, which prefers matches over substitutions
// and earlier text consumption over later, and lets greedy quantifiers
// absorb as much matching text as they can.
func (a *Aligner) Align(text []rune) (*Result, error) {
	n := len(text)
	states := a.graph.Len()
	if states > 0 && n+1 > math.MaxInt32/states {
		// Node indices are int32; refuse rather than wrap.
		return nil, &SizeError{States: states, TextLen: n}
	}
	size := (n + 1) * states
	a.reset(size)

	const unvisited = int32(-1)

	node := func(s graph.StateID, offset int) int32 {
		return int32(offset*states) + int32(s)
	}

	startNode := node(a.graph.Start(), 0)
	target := node(a.graph.Accept(), n)

	a.dist[startNode] = 0
	var seq uint64
	heap.Push(&a.queue, pathItem{cost: 0, seq: seq, node: startNode})

	relax := func(from int32, to int32, cost int32, step uint8, label rune) {
		if a.dist[to] != unvisited && a.dist[to] <= cost {
			return
		}
		a.dist[to] = cost
		a.predNode[to] = from
		a.predStep[to] = step
		a.predLabel[to] = label
		seq++
		heap.Push(&a.queue, pathItem{cost: cost, seq: seq, node: to})
	}

	for a.queue.Len() > 0 {
		item := heap.Pop(&a.queue).(pathItem)
		u := item.node
		if item.cost != a.dist[u] {
			continue // stale entry, already improved
		}
		if u == target {
			break
		}

		offset := int(u) / states
		sid := graph.StateID(uint32(int(u) % states))
		s := a.graph.State(sid)
		du := a.dist[u]

		for _, to := range s.Epsilons() {
			relax(u, node(to, offset), du, stepEpsilon, 0)
		}

		if offset < n {
			r := text[offset]
			for _, e := range s.Edges() {
				if e.Set.Matches(r) {
					relax(u, node(e.To, offset+1), du, stepMatch, e.Label)
				} else {
					relax(u, node(e.To, offset+1), du+int32(a.costs.Substitute), stepSubstitute, e.Label)
				}
			}
		}

		for _, e := range s.Edges() {
			relax(u, node(e.To, offset), du+int32(a.costs.Delete), stepDelete, e.Label)
		}

		if offset < n {
			relax(u, node(sid, offset+1), du+int32(a.costs.Insert), stepInsert, 0)
		}
	}

	if a.dist[target] == unvisited {
		// Insertion and deletion edges connect every node, so this only
		// happens for a malformed graph.
		return nil, &UnreachableError{States: states, TextLen: n}
	}

	return a.reconstruct(text, states, target), nil
}

// reconstruct backtracks the predecessor table from the target node and
// reverses the walk into a forward Result.
func (a *Aligner) reconstruct(text []rune, states int, target int32) *Result {
	var chain []int32
	for u := target; u != -1; u = a.predNode[u] {
		chain = append(chain, u)
	}
	// Reverse into forward order.
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}

	res := &Result{
		Cost: int(a.dist[target]),
		Path: make([]Visit, 0, len(chain)),
	}
	for _, u := range chain {
		res.Path = append(res.Path, Visit{
			State:  graph.StateID(uint32(int(u) % states)),
			Offset: int(u) / states,
		})
	}

	for i := 1; i < len(chain); i++ {
		u := chain[i]
		fromOffset := res.Path[i-1].Offset
		label := a.predLabel[u]
		switch a.predStep[u] {
		case stepMatch:
			res.Ops = append(res.Ops, Operation{Kind: KindMatch, PatternLabel: label, TextChar: text[fromOffset]})
		case stepSubstitute:
			res.Ops = append(res.Ops, Operation{Kind: KindSubstitute, PatternLabel: label, TextChar: text[fromOffset]})
		case stepDelete:
			res.Ops = append(res.Ops, Operation{Kind: KindDelete, PatternLabel: label})
		case stepInsert:
			res.Ops = append(res.Ops, Operation{Kind: KindInsert, TextChar: text[fromOffset]})
		}
	}
	return res
}

// reset clears the per-invocation tables, growing them if needed.
func (a *Aligner) reset(size int) {
	if cap(a.dist) < size {
		a.dist = make([]int32, size)
		a.predNode = make([]int32, size)
		a.predStep = make([]uint8, size)
		a.predLabel = make([]rune, size)
	}
	a.dist = a.dist[:size]
	a.predNode = a.predNode[:size]
	a.predStep = a.predStep[:size]
	a.predLabel = a.predLabel[:size]
	for i := range a.dist {
		a.dist[i] = -1
		a.predNode[i] = -1
		a.predStep[i] = stepNone
		a.predLabel[i] = 0
	}
	a.queue = a.queue[:0]
}

// pathItem is one pending node in the search frontier. seq is a monotone
// insertion counter: among equal costs the earliest-pushed node pops
// first, which keeps the search fully deterministic.
type pathItem struct {
	cost int32
	seq  uint64
	node int32
}

type pathHeap []pathItem

func (h pathHeap) Len() int { return len(h) }

func (h pathHeap) Less(i, j int) bool {
	if h[i].cost != h[j].cost {
		return h[i].cost < h[j].cost
	}
	return h[i].seq < h[j].seq
}

func (h pathHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *pathHeap) Push(x any) {
	*h = append(*h, x.(pathItem))
}

func (h *pathHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}
