// Package fuzzyre aligns regular expression patterns against text that
// almost matches. Where a conventional engine answers "does this text
// match?", fuzzyre answers "how far is this text from matching, and
// where?": it computes a minimum-cost sequence of edits (substitutions,
// deletions, insertions) turning the text into something the pattern
// accepts, and renders the result as an annotated diff.
//
// Basic usage:
//
//	re, err := fuzzyre.Compile(`bar`)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	res, _ := re.Align("baz")
//	fmt.Println(res.Cost)   // 1
//	fmt.Println(res.Diff()) // ba[-r-]{+z+}
//
// Capture groups report the spans of text they covered in the best
// alignment, even when the text needed edits:
//
//	re := fuzzyre.MustCompile(`v(\d+)`)
//	res, _ := re.Align("v42")
//	fmt.Println(res.Captures[0]) // [{1 3}]
//
// Syntax is the Perl-compatible subset of Go's regexp, minus anchors and
// empty-width assertions; compiling a pattern that uses them returns an
// error satisfying errors.Is(err, graph.ErrUnsupported).
package fuzzyre

import (
	"errors"
	"regexp/syntax"
	"sync"

	"github.com/coregx/fuzzyre/align"
	"github.com/coregx/fuzzyre/diff"
	"github.com/coregx/fuzzyre/graph"
	"github.com/coregx/fuzzyre/literal"
	"github.com/coregx/fuzzyre/prefilter"
)

// Config tunes compilation and alignment.
type Config struct {
	// Costs is the edit-cost model. See align.DefaultCosts.
	Costs align.Costs

	// Compiler bounds pattern compilation.
	Compiler graph.CompilerConfig

	// Literals bounds required-literal extraction for the prefilter.
	Literals literal.ExtractorConfig

	// Markers configures diff rendering.
	Markers diff.Markers

	// EnablePrefilter screens texts for the pattern's required literals
	// before trying the exact matcher. Alignment results are identical
	// either way.
	EnablePrefilter bool
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Costs:           align.DefaultCosts(),
		Compiler:        graph.DefaultCompilerConfig(),
		Literals:        literal.DefaultConfig(),
		Markers:         diff.DefaultMarkers(),
		EnablePrefilter: true,
	}
}

// Regex is a compiled pattern, ready to align texts. It is safe for
// concurrent use.
type Regex struct {
	pattern string
	graph   *graph.Graph
	screen  *prefilter.Screen
	config  Config

	// matchers is used only for patterns without capture groups: an exact
	// match there fully determines the alignment, so the cheaper
	// simulation runs first. With groups present the aligner always runs,
	// since it also produces the capture spans.
	matchers sync.Pool
	aligners sync.Pool
}

// Compile compiles a pattern with the default configuration.
func Compile(pattern string) (*Regex, error) {
	return CompileWithConfig(pattern, DefaultConfig())
}

// MustCompile is like Compile but panics on error. It is intended for
// patterns known valid at program start.
func MustCompile(pattern string) *Regex {
	re, err := Compile(pattern)
	if err != nil {
		panic("fuzzyre: Compile(`" + pattern + "`): " + err.Error())
	}
	return re
}

// CompileWithConfig compiles a pattern with a custom configuration.
func CompileWithConfig(pattern string, config Config) (*Regex, error) {
	if err := config.Costs.Validate(); err != nil {
		return nil, err
	}

	parsed, err := syntax.Parse(pattern, syntax.Perl)
	if err != nil {
		return nil, &graph.CompileError{Pattern: pattern, Err: err}
	}

	compiler := graph.NewCompiler(config.Compiler)
	g, err := compiler.Compile(parsed)
	if err != nil {
		var ce *graph.CompileError
		if errors.As(err, &ce) && ce.Pattern == "" {
			ce.Pattern = pattern
		}
		return nil, err
	}

	var screen *prefilter.Screen
	if config.EnablePrefilter {
		screen, err = prefilter.FromPattern(parsed, config.Literals)
		if err != nil {
			return nil, &graph.CompileError{Pattern: pattern, Err: err}
		}
	}

	re := &Regex{
		pattern: pattern,
		graph:   g,
		screen:  screen,
		config:  config,
	}
	re.matchers.New = func() any { return graph.NewMatcher(g) }
	re.aligners.New = func() any {
		a, err := align.NewAligner(g, config.Costs)
		if err != nil {
			// Costs were validated at compile time.
			panic("fuzzyre: " + err.Error())
		}
		return a
	}
	return re, nil
}

// Pattern returns the source pattern.
func (re *Regex) Pattern() string { return re.pattern }

// GroupCount returns the number of capture groups in the pattern.
func (re *Regex) GroupCount() int { return re.graph.GroupCount() }

// Match reports whether text matches the pattern exactly, with no edits.
func (re *Regex) Match(text string) bool {
	if !re.screen.Passes([]byte(text)) {
		return false
	}
	m := re.matchers.Get().(*graph.Matcher)
	defer re.matchers.Put(m)
	return m.Matches([]rune(text))
}

// Result is the outcome of aligning one text against a pattern.
type Result struct {
	// Cost is the total edit cost; zero means the text matches exactly.
	Cost int

	// Ops is the edit script in text order.
	Ops []align.Operation

	// Captures holds, per capture group (group 1 at index 0), the rune
	// spans of text the group covered. A group entered repeatedly reports
	// every completed span.
	Captures [][]align.Span

	markers diff.Markers
}

// IsExact reports whether the text matched without edits.
func (r *Result) IsExact() bool { return r.Cost == 0 }

// Diff renders the alignment with the configured markers: matched text
// verbatim, missing pattern characters in deletion brackets, surplus text
// characters in insertion brackets.
func (r *Result) Diff() string {
	return diff.Render(r.Ops, r.markers)
}

// Chunks returns the alignment as coalesced same/edit runs, for callers
// that want structure rather than a rendered string.
func (r *Result) Chunks() []diff.Chunk {
	return diff.Chunks(r.Ops, r.markers.ClassPlaceholder)
}

// Align computes a minimum-cost alignment of text against the pattern.
//
// The result is deterministic for a given pattern, text, and cost model.
// Among equal-cost alignments the engine prefers matches over
// substitutions, earlier edits over later ones, and lets greedy
// quantifiers absorb as much matching text as they can.
func (re *Regex) Align(text string) (*Result, error) {
	runes := []rune(text)

	// A pattern without groups can skip the aligner when the text matches
	// exactly: the alignment is then all matches at cost zero.
	if re.graph.GroupCount() == 0 && re.screen.Passes([]byte(text)) {
		m := re.matchers.Get().(*graph.Matcher)
		ok := m.Matches(runes)
		re.matchers.Put(m)
		if ok {
			return re.exactResult(runes), nil
		}
	}

	a := re.aligners.Get().(*align.Aligner)
	res, err := a.Align(runes)
	re.aligners.Put(a)
	if err != nil {
		return nil, err
	}

	return &Result{
		Cost:     res.Cost,
		Ops:      res.Ops,
		Captures: align.ExtractCaptures(re.graph, res.Path),
		markers:  re.config.Markers,
	}, nil
}

// AlignBytes is Align for a byte slice, interpreted as UTF-8.
func (re *Regex) AlignBytes(text []byte) (*Result, error) {
	return re.Align(string(text))
}

func (re *Regex) exactResult(runes []rune) *Result {
	ops := make([]align.Operation, len(runes))
	for i, r := range runes {
		ops[i] = align.Operation{Kind: align.KindMatch, TextChar: r}
	}
	return &Result{
		Cost:     0,
		Ops:      ops,
		Captures: [][]align.Span{},
		markers:  re.config.Markers,
	}
}
