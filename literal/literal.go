// Package literal extracts required literal substrings from regex
// patterns. A required literal is one every exact (zero-cost) match of
// the pattern must contain; the extracted literals appear in pattern
// order, so a text can be screened for them with an in-order substring
// scan before running the full alignment.
package literal

import (
	"regexp/syntax"
)

// ExtractorConfig bounds literal extraction.
type ExtractorConfig struct {
	// MaxLiterals caps how many required literals are reported. Extraction
	// stops once the cap is reached; the result is still a valid (shorter)
	// requirement list.
	MaxLiterals int

	// MinLiteralLen drops literals shorter than this many bytes. Very
	// short literals match almost everywhere and screen nothing.
	MinLiteralLen int

	// MaxLiteralLen truncates longer literals. A prefix of a required
	// literal is still required.
	MaxLiteralLen int
}

// DefaultConfig returns the default extraction limits.
func DefaultConfig() ExtractorConfig {
	return ExtractorConfig{
		MaxLiterals:   16,
		MinLiteralLen: 2,
		MaxLiteralLen: 64,
	}
}

// Extractor walks a parsed regex and collects required literals.
type Extractor struct {
	config ExtractorConfig
}

// New creates an Extractor with the given limits.
func New(config ExtractorConfig) *Extractor {
	return &Extractor{config: config}
}

// Required returns the literals every exact match must contain, in
// pattern order. An empty result means the pattern has no usable
// requirement, not that it matches nothing.
//
// Only constructs that appear unconditionally contribute: concatenation
// walks all parts, capture groups are transparent, and a repetition with
// a minimum of one or more contributes one copy of its body. Alternation,
// optional repetition, and character classes contribute nothing, since no
// single literal is required by every branch.
func (e *Extractor) Required(re *syntax.Regexp) [][]byte {
	var lits [][]byte
	e.collect(re, &lits, 0)
	return lits
}

func (e *Extractor) collect(re *syntax.Regexp, lits *[][]byte, depth int) {
	if depth > 100 || len(*lits) >= e.config.MaxLiterals {
		return
	}

	switch re.Op {
	case syntax.OpLiteral:
		if re.Flags&syntax.FoldCase != 0 {
			// A case-folded literal is really an alternation per rune.
			return
		}
		b := []byte(string(re.Rune))
		if len(b) > e.config.MaxLiteralLen {
			b = b[:e.config.MaxLiteralLen]
		}
		if len(b) >= e.config.MinLiteralLen {
			*lits = append(*lits, b)
		}

	case syntax.OpConcat:
		for _, sub := range re.Sub {
			e.collect(sub, lits, depth+1)
		}

	case syntax.OpCapture:
		if len(re.Sub) > 0 {
			e.collect(re.Sub[0], lits, depth+1)
		}

	case syntax.OpPlus:
		// The body occurs at least once.
		if len(re.Sub) > 0 {
			e.collect(re.Sub[0], lits, depth+1)
		}

	case syntax.OpRepeat:
		if re.Min >= 1 && len(re.Sub) > 0 {
			e.collect(re.Sub[0], lits, depth+1)
		}

		// OpStar, OpQuest, OpAlternate, OpCharClass, OpAnyChar and the
		// rest: nothing is required by every match.
	}
}
