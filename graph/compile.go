package graph

import (
	"fmt"
	"regexp/syntax"
	"unicode"
	"unicode/utf8"
)

// CompilerConfig configures graph compilation behavior.
type CompilerConfig struct {
	// MaxRecursionDepth limits recursion over the pattern AST to prevent
	// stack overflow on deeply nested patterns. Default: 100.
	MaxRecursionDepth int

	// MaxRepeatCount caps the number of unrolled copies a bounded
	// repetition may produce. Unrolling is multiplicative in nested
	// repetitions, so callers aligning untrusted patterns should keep
	// this small. Default: 1000.
	MaxRepeatCount int
}

// DefaultCompilerConfig returns a compiler configuration with defaults
// matching regexp/syntax's own repeat limit.
func DefaultCompilerConfig() CompilerConfig {
	return CompilerConfig{
		MaxRecursionDepth: 100,
		MaxRepeatCount:    1000,
	}
}

// Compiler lowers regexp/syntax.Regexp patterns into alignment graphs.
//
// The compiler is Thompson-style: every AST node becomes a fragment with a
// dedicated entry and exit state, and fragments are stitched together with
// epsilon edges. Repetitions with bounded counts are unrolled; unbounded
// repetitions become explicit epsilon back-edges.
type Compiler struct {
	config  CompilerConfig
	builder *Builder
	depth   int
	groups  int
}

// NewCompiler creates a compiler with the given configuration.
func NewCompiler(config CompilerConfig) *Compiler {
	if config.MaxRecursionDepth == 0 {
		config.MaxRecursionDepth = 100
	}
	if config.MaxRepeatCount == 0 {
		config.MaxRepeatCount = 1000
	}
	return &Compiler{config: config}
}

// NewDefaultCompiler creates a compiler with the default configuration.
func NewDefaultCompiler() *Compiler {
	return NewCompiler(DefaultCompilerConfig())
}

// Compile lowers a parsed pattern into an alignment graph.
//
// Constructs outside the supported grammar (anchors, word boundaries,
// empty-match assertions other than the empty pattern) fail with a
// CompileError wrapping an UnsupportedError; the graph is never a silent
// approximation of the pattern.
func (c *Compiler) Compile(re *syntax.Regexp) (*Graph, error) {
	c.builder = NewBuilder()
	c.depth = 0
	c.groups = 0

	entry, exit, err := c.compile(re)
	if err != nil {
		return nil, &CompileError{Err: err}
	}

	c.builder.SetStart(entry)
	c.builder.SetAccept(exit)

	g, err := c.builder.Build(WithGroupCount(c.groups))
	if err != nil {
		return nil, &CompileError{Err: err}
	}
	return g, nil
}

// Compile lowers a parsed pattern using the default configuration.
func Compile(re *syntax.Regexp) (*Graph, error) {
	return NewDefaultCompiler().Compile(re)
}

// compile recursively lowers one AST node, returning the fragment's entry
// and exit states. The exit state has no outgoing edges of its own unless a
// later stitch adds them.
func (c *Compiler) compile(re *syntax.Regexp) (entry, exit StateID, err error) {
	c.depth++
	if c.depth > c.config.MaxRecursionDepth {
		return InvalidState, InvalidState, ErrTooComplex
	}
	defer func() { c.depth-- }()

	switch re.Op {
	case syntax.OpEmptyMatch:
		return c.compileEmpty()
	case syntax.OpLiteral:
		return c.compileLiteral(re.Rune, re.Flags&syntax.FoldCase != 0)
	case syntax.OpCharClass:
		return c.compileCharClass(re.Rune)
	case syntax.OpAnyChar:
		return c.compileAny(true)
	case syntax.OpAnyCharNotNL:
		return c.compileAny(false)
	case syntax.OpConcat:
		return c.compileConcat(re.Sub)
	case syntax.OpAlternate:
		return c.compileAlternate(re.Sub)
	case syntax.OpStar:
		return c.compileStar(re.Sub[0], re.Flags&syntax.NonGreedy != 0)
	case syntax.OpPlus:
		return c.compilePlus(re.Sub[0], re.Flags&syntax.NonGreedy != 0)
	case syntax.OpQuest:
		return c.compileQuest(re.Sub[0], re.Flags&syntax.NonGreedy != 0)
	case syntax.OpRepeat:
		return c.compileRepeat(re.Sub[0], re.Min, re.Max, re.Flags&syntax.NonGreedy != 0)
	case syntax.OpCapture:
		return c.compileCapture(re)
	default:
		return InvalidState, InvalidState, &UnsupportedError{Construct: re.Op.String()}
	}
}

// compileEmpty produces a fragment matching the empty string.
func (c *Compiler) compileEmpty() (entry, exit StateID, err error) {
	s := c.builder.AddState()
	return s, s, nil
}

func (c *Compiler) compileLiteral(runes []rune, foldCase bool) (entry, exit StateID, err error) {
	if len(runes) == 0 {
		return c.compileEmpty()
	}

	prev := InvalidState
	first := InvalidState
	for _, r := range runes {
		s := c.builder.AddState()
		e := c.builder.AddState()
		c.builder.AddMatchEdge(s, e, literalSet(r, foldCase), r)
		if first == InvalidState {
			first = s
		}
		if prev != InvalidState {
			c.builder.AddEpsilon(prev, s)
		}
		prev = e
	}
	return first, prev, nil
}

// literalSet builds the predicate for a single literal rune, expanding
// case folds when the pattern asked for case-insensitive matching.
func literalSet(r rune, foldCase bool) CharSet {
	if !foldCase {
		return NewCharSet([]RuneRange{{Lo: r, Hi: r}})
	}
	ranges := []RuneRange{{Lo: r, Hi: r}}
	for f := unicode.SimpleFold(r); f != r; f = unicode.SimpleFold(f) {
		ranges = append(ranges, RuneRange{Lo: f, Hi: f})
	}
	return NewCharSet(ranges)
}

func (c *Compiler) compileCharClass(pairs []rune) (entry, exit StateID, err error) {
	if len(pairs) == 0 || len(pairs)%2 != 0 {
		return InvalidState, InvalidState, &UnsupportedError{
			Construct: fmt.Sprintf("malformed character class (%d range bounds)", len(pairs)),
		}
	}

	ranges := make([]RuneRange, 0, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		ranges = append(ranges, RuneRange{Lo: pairs[i], Hi: pairs[i+1]})
	}

	// A class accepting exactly one rune renders as that rune in diffs.
	var label rune
	if len(ranges) == 1 && ranges[0].Lo == ranges[0].Hi {
		label = ranges[0].Lo
	}

	s := c.builder.AddState()
	e := c.builder.AddState()
	c.builder.AddMatchEdge(s, e, NewCharSet(ranges), label)
	return s, e, nil
}

func (c *Compiler) compileAny(includeNewline bool) (entry, exit StateID, err error) {
	s := c.builder.AddState()
	e := c.builder.AddState()
	if includeNewline {
		c.builder.AddMatchEdge(s, e, AnySet(), 0)
	} else {
		ranges := []RuneRange{
			{Lo: 0, Hi: '\n' - 1},
			{Lo: '\n' + 1, Hi: utf8.MaxRune},
		}
		c.builder.AddMatchEdge(s, e, NewCharSet(ranges), 0)
	}
	return s, e, nil
}

func (c *Compiler) compileConcat(subs []*syntax.Regexp) (entry, exit StateID, err error) {
	if len(subs) == 0 {
		return c.compileEmpty()
	}

	entry, exit, err = c.compile(subs[0])
	if err != nil {
		return InvalidState, InvalidState, err
	}
	for _, sub := range subs[1:] {
		nextEntry, nextExit, err := c.compile(sub)
		if err != nil {
			return InvalidState, InvalidState, err
		}
		c.builder.AddEpsilon(exit, nextEntry)
		exit = nextExit
	}
	return entry, exit, nil
}

func (c *Compiler) compileAlternate(subs []*syntax.Regexp) (entry, exit StateID, err error) {
	if len(subs) == 0 {
		return c.compileEmpty()
	}
	if len(subs) == 1 {
		return c.compile(subs[0])
	}

	entry = c.builder.AddState()
	exit = c.builder.AddState()
	for _, sub := range subs {
		subEntry, subExit, err := c.compile(sub)
		if err != nil {
			return InvalidState, InvalidState, err
		}
		// Branch epsilon order is declaration order: earlier branches win
		// cost ties in the aligner.
		c.builder.AddEpsilon(entry, subEntry)
		c.builder.AddEpsilon(subExit, exit)
	}
	return entry, exit, nil
}

// compileStar produces a zero-or-more loop: the entry state chooses between
// one copy of the body and the exit, and the body's exit epsilon-loops back
// to the entry. The back-edge is the one intentional epsilon cycle in the
// graph; the aligner bounds it by visiting each (state, offset) pair once.
func (c *Compiler) compileStar(sub *syntax.Regexp, nonGreedy bool) (entry, exit StateID, err error) {
	bodyEntry, bodyExit, err := c.compile(sub)
	if err != nil {
		return InvalidState, InvalidState, err
	}

	entry = c.builder.AddState()
	exit = c.builder.AddState()
	if nonGreedy {
		c.builder.AddEpsilon(entry, exit)
		c.builder.AddEpsilon(entry, bodyEntry)
	} else {
		c.builder.AddEpsilon(entry, bodyEntry)
		c.builder.AddEpsilon(entry, exit)
	}
	c.builder.AddEpsilon(bodyExit, entry)
	return entry, exit, nil
}

// compilePlus produces one mandatory body copy followed by a zero-or-more
// tail built from a second copy.
func (c *Compiler) compilePlus(sub *syntax.Regexp, nonGreedy bool) (entry, exit StateID, err error) {
	firstEntry, firstExit, err := c.compile(sub)
	if err != nil {
		return InvalidState, InvalidState, err
	}
	starEntry, starExit, err := c.compileStar(sub, nonGreedy)
	if err != nil {
		return InvalidState, InvalidState, err
	}
	c.builder.AddEpsilon(firstExit, starEntry)
	return firstEntry, starExit, nil
}

func (c *Compiler) compileQuest(sub *syntax.Regexp, nonGreedy bool) (entry, exit StateID, err error) {
	bodyEntry, bodyExit, err := c.compile(sub)
	if err != nil {
		return InvalidState, InvalidState, err
	}

	entry = c.builder.AddState()
	exit = c.builder.AddState()
	if nonGreedy {
		c.builder.AddEpsilon(entry, exit)
		c.builder.AddEpsilon(entry, bodyEntry)
	} else {
		c.builder.AddEpsilon(entry, bodyEntry)
		c.builder.AddEpsilon(entry, exit)
	}
	c.builder.AddEpsilon(bodyExit, exit)
	return entry, exit, nil
}

// compileRepeat unrolls a bounded repetition: min mandatory copies followed
// by max-min individually skippable copies. An unbounded maximum becomes a
// zero-or-more tail instead of unrolling.
func (c *Compiler) compileRepeat(sub *syntax.Regexp, min, max int, nonGreedy bool) (entry, exit StateID, err error) {
	if min < 0 || (max != -1 && max < min) {
		return InvalidState, InvalidState, &UnsupportedError{
			Construct: fmt.Sprintf("repetition bounds {%d,%d}", min, max),
		}
	}
	copies := min + 1
	if max != -1 {
		copies = max
	}
	if copies > c.config.MaxRepeatCount {
		return InvalidState, InvalidState, ErrTooComplex
	}

	entry = c.builder.AddState()
	exit = entry
	for i := 0; i < min; i++ {
		subEntry, subExit, err := c.compile(sub)
		if err != nil {
			return InvalidState, InvalidState, err
		}
		c.builder.AddEpsilon(exit, subEntry)
		exit = subExit
	}

	if max == -1 {
		starEntry, starExit, err := c.compileStar(sub, nonGreedy)
		if err != nil {
			return InvalidState, InvalidState, err
		}
		c.builder.AddEpsilon(exit, starEntry)
		return entry, starExit, nil
	}

	for i := 0; i < max-min; i++ {
		questEntry, questExit, err := c.compileQuest(sub, nonGreedy)
		if err != nil {
			return InvalidState, InvalidState, err
		}
		c.builder.AddEpsilon(exit, questEntry)
		exit = questExit
	}
	return entry, exit, nil
}

// compileCapture wraps the sub-fragment in dedicated entry/exit states
// tagged with the group's index. The markers are epsilon-only states, so a
// group behaves exactly like its sub-pattern for alignment purposes.
func (c *Compiler) compileCapture(re *syntax.Regexp) (entry, exit StateID, err error) {
	subEntry, subExit, err := c.compile(re.Sub[0])
	if err != nil {
		return InvalidState, InvalidState, err
	}

	entry = c.builder.AddState()
	exit = c.builder.AddState()
	c.builder.MarkGroupOpen(entry, re.Cap)
	c.builder.MarkGroupClose(exit, re.Cap)
	c.builder.AddEpsilon(entry, subEntry)
	c.builder.AddEpsilon(subExit, exit)

	if re.Cap > c.groups {
		c.groups = re.Cap
	}
	return entry, exit, nil
}
