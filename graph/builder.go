package graph

import (
	"github.com/coregx/fuzzyre/internal/conv"
)

// Builder constructs alignment graphs incrementally using a low-level API.
// The Compiler drives it; tests may also use it to build graphs by hand.
type Builder struct {
	states []State
	start  StateID
	accept StateID
}

// NewBuilder creates a new graph builder with default capacity.
func NewBuilder() *Builder {
	return NewBuilderWithCapacity(16)
}

// NewBuilderWithCapacity creates a new graph builder with the given initial
// state capacity.
func NewBuilderWithCapacity(capacity int) *Builder {
	return &Builder{
		states: make([]State, 0, capacity),
		start:  InvalidState,
		accept: InvalidState,
	}
}

// AddState adds an empty state and returns its ID.
func (b *Builder) AddState() StateID {
	id := StateID(conv.IntToUint32(len(b.states)))
	b.states = append(b.states, State{id: id})
	return id
}

// AddEpsilon appends an epsilon edge from one state to another. Append
// order is the declaration order the aligner relies on for tie-breaking.
func (b *Builder) AddEpsilon(from, to StateID) {
	b.states[from].epsilons = append(b.states[from].epsilons, to)
}

// AddMatchEdge appends a match edge with the given predicate and label.
func (b *Builder) AddMatchEdge(from, to StateID, set CharSet, label rune) {
	b.states[from].edges = append(b.states[from].edges, MatchEdge{
		To:    to,
		Set:   set,
		Label: label,
	})
}

// MarkGroupOpen tags a state as the entry boundary of capture group index.
func (b *Builder) MarkGroupOpen(s StateID, index int) {
	b.states[s].opens = append(b.states[s].opens, index)
}

// MarkGroupClose tags a state as the exit boundary of capture group index.
func (b *Builder) MarkGroupClose(s StateID, index int) {
	b.states[s].closes = append(b.states[s].closes, index)
}

// SetStart sets the unique start state.
func (b *Builder) SetStart(start StateID) {
	b.start = start
}

// SetAccept sets the unique accepting state.
func (b *Builder) SetAccept(accept StateID) {
	b.accept = accept
}

// Len returns the current number of states.
func (b *Builder) Len() int {
	return len(b.states)
}

// Validate checks that the graph is well-formed: start and accept are set
// and every edge targets an existing state.
func (b *Builder) Validate() error {
	if b.start == InvalidState {
		return &BuildError{Message: "start state not set", StateID: InvalidState}
	}
	if int(b.start) >= len(b.states) {
		return &BuildError{Message: "start state out of bounds", StateID: b.start}
	}
	if b.accept == InvalidState {
		return &BuildError{Message: "accept state not set", StateID: InvalidState}
	}
	if int(b.accept) >= len(b.states) {
		return &BuildError{Message: "accept state out of bounds", StateID: b.accept}
	}

	for i := range b.states {
		id := StateID(conv.IntToUint32(i))
		for _, to := range b.states[i].epsilons {
			if int(to) >= len(b.states) {
				return &BuildError{Message: "epsilon edge target out of bounds", StateID: id}
			}
		}
		for _, e := range b.states[i].edges {
			if int(e.To) >= len(b.states) {
				return &BuildError{Message: "match edge target out of bounds", StateID: id}
			}
		}
	}

	return nil
}

// Build finalizes and returns the constructed graph.
func (b *Builder) Build(opts ...BuildOption) (*Graph, error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}

	g := &Graph{
		states: b.states,
		start:  b.start,
		accept: b.accept,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// BuildOption is a functional option for configuring the built graph.
type BuildOption func(*Graph)

// WithGroupCount sets the number of capturing groups in the graph.
func WithGroupCount(count int) BuildOption {
	return func(g *Graph) {
		g.groupCount = count
	}
}
