package graph

import "fmt"

// StateID uniquely identifies an alignment-graph state.
// This is a 32-bit unsigned integer for compact representation.
type StateID uint32

// InvalidState represents an invalid/uninitialized state ID.
const InvalidState StateID = 0xFFFFFFFF

// State is a node in the compiled alignment graph.
//
// A state carries an ordered list of epsilon edges (zero cost, no text
// consumed) and an ordered list of match edges (consume one text character
// when taken). Edge order is structural declaration order in the pattern and
// is load-bearing: the aligner relaxes edges in this order, which is what
// makes tie-breaking between equal-cost alignments deterministic.
//
// States are immutable once the graph is built.
type State struct {
	id       StateID
	epsilons []StateID
	edges    []MatchEdge

	// Capture group boundaries crossing this state. A group index appears
	// in opens on the group's dedicated entry state and in closes on its
	// dedicated exit state.
	opens  []int
	closes []int
}

// ID returns the state's unique identifier.
func (s *State) ID() StateID {
	return s.id
}

// Epsilons returns the state's epsilon edges in declaration order.
func (s *State) Epsilons() []StateID {
	return s.epsilons
}

// Edges returns the state's match edges in declaration order.
func (s *State) Edges() []MatchEdge {
	return s.edges
}

// Opens returns the capture groups entered when crossing this state.
func (s *State) Opens() []int {
	return s.opens
}

// Closes returns the capture groups exited when crossing this state.
func (s *State) Closes() []int {
	return s.closes
}

// String returns a human-readable representation of the state.
func (s *State) String() string {
	return fmt.Sprintf("State(%d, eps: %d, edges: %d)", s.id, len(s.epsilons), len(s.edges))
}

// MatchEdge is a transition consuming exactly one text character.
//
// The edge never decides match-vs-substitute cost itself: the aligner tests
// Set against the concrete text character at alignment time.
type MatchEdge struct {
	// To is the target state.
	To StateID

	// Set is the character-acceptance predicate.
	Set CharSet

	// Label is the character shown when the pattern side of this edge
	// appears in a diff: the literal character when Set accepts exactly
	// one rune, or 0 for classes and wildcards. Renderers map 0 to their
	// class placeholder.
	Label rune
}

// RuneRange is an inclusive range of runes.
type RuneRange struct {
	Lo, Hi rune
}

// CharSet is a character-acceptance predicate: a wildcard accepting any
// rune, or membership in a list of inclusive rune ranges. Negated classes
// are expressed as their complement ranges, the way regexp/syntax
// materializes them.
type CharSet struct {
	any    bool
	ranges []RuneRange
}

// AnySet returns the predicate accepting every rune.
func AnySet() CharSet {
	return CharSet{any: true}
}

// NewCharSet returns a predicate accepting runes inside the given ranges.
func NewCharSet(ranges []RuneRange) CharSet {
	rs := make([]RuneRange, len(ranges))
	copy(rs, ranges)
	return CharSet{ranges: rs}
}

// Matches reports whether the predicate accepts r.
func (c CharSet) Matches(r rune) bool {
	if c.any {
		return true
	}
	for _, rr := range c.ranges {
		if rr.Lo <= r && r <= rr.Hi {
			return true
		}
	}
	return false
}

// IsAny reports whether the predicate accepts every rune.
func (c CharSet) IsAny() bool {
	return c.any
}

// Graph is a compiled alignment graph.
//
// It is the result of compiling a regexp/syntax.Regexp pattern and is
// immutable and safe for concurrent use once built.
type Graph struct {
	states []State

	start  StateID
	accept StateID

	// groupCount is the number of capturing groups tagged in the graph.
	// Group indices are 1-based, matching declaration order in the pattern.
	groupCount int
}

// Start returns the unique start state.
func (g *Graph) Start() StateID {
	return g.start
}

// Accept returns the unique accepting state.
func (g *Graph) Accept() StateID {
	return g.accept
}

// State returns the state with the given ID, or nil if the ID is invalid.
func (g *Graph) State(id StateID) *State {
	if id == InvalidState || int(id) >= len(g.states) {
		return nil
	}
	return &g.states[id]
}

// Len returns the total number of states in the graph.
func (g *Graph) Len() int {
	return len(g.states)
}

// GroupCount returns the number of capturing groups in the pattern.
func (g *Graph) GroupCount() int {
	return g.groupCount
}

// String returns a human-readable representation of the graph.
func (g *Graph) String() string {
	return fmt.Sprintf("Graph{states: %d, start: %d, accept: %d, groups: %d}",
		len(g.states), g.start, g.accept, g.groupCount)
}
