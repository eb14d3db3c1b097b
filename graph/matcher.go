package graph

import (
	"github.com/coregx/fuzzyre/internal/conv"
	"github.com/coregx/fuzzyre/internal/sparse"
)

// Matcher answers whether a text is exactly derivable from the pattern's
// language, i.e. whether a zero-cost alignment exists.
//
// It runs a breadth-first simulation of the graph with sparse state sets,
// one step per text rune. The engine uses it as a fast path: a zero-cost
// alignment needs no DP table and no path reconstruction, because its diff
// is the text itself.
//
// A Matcher is not safe for concurrent use; create one per goroutine.
type Matcher struct {
	graph   *Graph
	current *sparse.Set
	next    *sparse.Set
}

// NewMatcher creates a matcher for the given graph.
func NewMatcher(g *Graph) *Matcher {
	n := conv.IntToUint32(g.Len())
	return &Matcher{
		graph:   g,
		current: sparse.NewSet(n),
		next:    sparse.NewSet(n),
	}
}

// Matches reports whether text is exactly a string of the graph's language.
func (m *Matcher) Matches(text []rune) bool {
	m.current.Clear()
	m.addClosure(m.current, m.graph.Start())

	for _, r := range text {
		m.next.Clear()
		for _, sid := range m.current.Values() {
			for _, e := range m.graph.State(StateID(sid)).Edges() {
				if e.Set.Matches(r) {
					m.addClosure(m.next, e.To)
				}
			}
		}
		m.current, m.next = m.next, m.current
		if m.current.Len() == 0 {
			return false
		}
	}

	return m.current.Contains(uint32(m.graph.Accept()))
}

// addClosure inserts sid and everything reachable from it over epsilon
// edges. The sparse set guards against epsilon cycles from repetition
// back-edges; iteration over the growing dense slice doubles as the
// worklist.
func (m *Matcher) addClosure(set *sparse.Set, sid StateID) {
	set.Insert(uint32(sid))
	for i := 0; i < set.Len(); i++ {
		id := set.Values()[i]
		for _, to := range m.graph.State(StateID(id)).Epsilons() {
			set.Insert(uint32(to))
		}
	}
}
