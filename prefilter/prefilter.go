// Package prefilter screens texts before alignment. A pattern's required
// literals must all occur in the text, in order, for a zero-cost
// alignment to exist; a text failing the screen is known to need edits
// without running the exact matcher.
package prefilter

import (
	"regexp/syntax"

	"github.com/coregx/ahocorasick"

	"github.com/coregx/fuzzyre/literal"
)

// Screen checks texts against a pattern's in-order literal requirements.
// A Screen is immutable and safe for concurrent use.
type Screen struct {
	automata []*ahocorasick.Automaton
}

// FromPattern builds a Screen from a parsed pattern, or nil when the
// pattern yields no usable requirement. A nil Screen is valid and passes
// everything.
func FromPattern(re *syntax.Regexp, cfg literal.ExtractorConfig) (*Screen, error) {
	lits := literal.New(cfg).Required(re)
	if len(lits) == 0 {
		return nil, nil
	}

	s := &Screen{automata: make([]*ahocorasick.Automaton, 0, len(lits))}
	for _, lit := range lits {
		builder := ahocorasick.NewBuilder()
		builder.AddPattern(lit)
		auto, err := builder.Build()
		if err != nil {
			return nil, err
		}
		s.automata = append(s.automata, auto)
	}
	return s, nil
}

// Passes reports whether every required literal occurs in text, in
// pattern order and without overlap. A false result proves no exact
// match exists; a true result proves nothing and the caller still runs
// the matcher.
func (s *Screen) Passes(text []byte) bool {
	if s == nil {
		return true
	}
	at := 0
	for _, auto := range s.automata {
		if at > len(text) {
			return false
		}
		m := auto.Find(text, at)
		if m == nil {
			return false
		}
		at = m.End
	}
	return true
}

// Len returns the number of screened literals, zero for a nil Screen.
func (s *Screen) Len() int {
	if s == nil {
		return 0
	}
	return len(s.automata)
}
