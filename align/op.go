package align

import (
	"fmt"

	"github.com/coregx/fuzzyre/graph"
)

// Kind identifies one edit operation in a reconstructed alignment.
type Kind uint8

const (
	// KindMatch consumes one pattern character and one text character that
	// the pattern's predicate accepts. Cost 0.
	KindMatch Kind = iota

	// KindSubstitute consumes one pattern character and one text character
	// the predicate rejects.
	KindSubstitute

	// KindDelete consumes one pattern character with no text counterpart:
	// the pattern would have produced a character the text lacks.
	KindDelete

	// KindInsert consumes one text character the pattern does not account
	// for.
	KindInsert
)

// String returns a human-readable representation of the kind.
func (k Kind) String() string {
	switch k {
	case KindMatch:
		return "Match"
	case KindSubstitute:
		return "Substitute"
	case KindDelete:
		return "Delete"
	case KindInsert:
		return "Insert"
	default:
		return fmt.Sprintf("Unknown(%d)", uint8(k))
	}
}

// Operation is one step of a reconstructed alignment.
type Operation struct {
	Kind Kind

	// PatternLabel is the pattern-side character for Substitute and
	// Delete: the literal character, or 0 when the pattern position is a
	// class or wildcard (renderers show a placeholder).
	PatternLabel rune

	// TextChar is the text-side character for Match, Substitute, and
	// Insert.
	TextChar rune
}

// String returns a human-readable representation of the operation.
func (o Operation) String() string {
	switch o.Kind {
	case KindMatch:
		return fmt.Sprintf("Match(%q)", o.TextChar)
	case KindSubstitute:
		return fmt.Sprintf("Substitute(%q -> %q)", o.PatternLabel, o.TextChar)
	case KindDelete:
		return fmt.Sprintf("Delete(%q)", o.PatternLabel)
	case KindInsert:
		return fmt.Sprintf("Insert(%q)", o.TextChar)
	default:
		return o.Kind.String()
	}
}

// Span is a half-open range [Start, End) of text offsets, in runes.
type Span struct {
	Start int
	End   int
}

// Visit records one node of the optimal path through the implicit
// (state, text-offset) product graph. The capture extractor walks these.
type Visit struct {
	State  graph.StateID
	Offset int
}
