package graph

import (
	"errors"
	"regexp/syntax"
	"testing"
)

func compileForTest(t *testing.T, pattern string) *Graph {
	t.Helper()
	re, err := syntax.Parse(pattern, syntax.Perl)
	if err != nil {
		t.Fatalf("syntax.Parse(%q) failed: %v", pattern, err)
	}
	g, err := Compile(re)
	if err != nil {
		t.Fatalf("Compile(%q) failed: %v", pattern, err)
	}
	return g
}

func TestCompileBasics(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
	}{
		{"empty", ""},
		{"literal", "abc"},
		{"wildcard", "a.c"},
		{"class", "[a-z0-9]"},
		{"negated class", "[^a]"},
		{"alternation", "ab|cd|ef"},
		{"star", "ab*"},
		{"plus", "ab+"},
		{"quest", "ab?"},
		{"bounded repeat", "a{2,4}"},
		{"exact repeat", "[0-9]{4}"},
		{"open repeat", "a{3,}"},
		{"capture", "(a[0-9]*)"},
		{"nested repetition", "(ab*)*"},
		{"nested groups", "((a)(b))"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := compileForTest(t, tt.pattern)
			if g.Len() == 0 {
				t.Fatal("graph has no states")
			}
			if g.State(g.Start()) == nil {
				t.Error("start state missing")
			}
			if g.State(g.Accept()) == nil {
				t.Error("accept state missing")
			}
		})
	}
}

func TestCompileUnsupported(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
	}{
		{"begin anchor", "^abc"},
		{"end anchor", "abc$"},
		{"word boundary", `\bfoo`},
		{"not word boundary", `foo\B`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			re, err := syntax.Parse(tt.pattern, syntax.Perl)
			if err != nil {
				t.Fatalf("syntax.Parse(%q) failed: %v", tt.pattern, err)
			}
			_, err = Compile(re)
			if err == nil {
				t.Fatalf("Compile(%q) succeeded, want unsupported-construct error", tt.pattern)
			}
			if !errors.Is(err, ErrUnsupported) {
				t.Errorf("Compile(%q) error = %v, want ErrUnsupported", tt.pattern, err)
			}
			var ce *CompileError
			if !errors.As(err, &ce) {
				t.Errorf("Compile(%q) error is not a *CompileError", tt.pattern)
			}
		})
	}
}

func TestCompileRepeatTooComplex(t *testing.T) {
	re, err := syntax.Parse("a{2,900}", syntax.Perl)
	if err != nil {
		t.Fatalf("syntax.Parse failed: %v", err)
	}
	c := NewCompiler(CompilerConfig{MaxRecursionDepth: 100, MaxRepeatCount: 100})
	_, err = c.Compile(re)
	if !errors.Is(err, ErrTooComplex) {
		t.Errorf("Compile(a{2,900}) with MaxRepeatCount=100: error = %v, want ErrTooComplex", err)
	}
}

func TestCompileGroupCount(t *testing.T) {
	tests := []struct {
		pattern string
		want    int
	}{
		{"abc", 0},
		{"(a)", 1},
		{"(a)(b)", 2},
		{"((a)(b))", 3},
		{"(<([0-9]*,)*[0-9]*> )*<([0-9]*,)*[0-9]*>", 3},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			g := compileForTest(t, tt.pattern)
			if g.GroupCount() != tt.want {
				t.Errorf("GroupCount() = %d, want %d", g.GroupCount(), tt.want)
			}
		})
	}
}

func TestCompileGroupMarkers(t *testing.T) {
	g := compileForTest(t, "(a)")

	var opens, closes int
	for i := 0; i < g.Len(); i++ {
		s := g.State(StateID(uint32(i)))
		opens += len(s.Opens())
		closes += len(s.Closes())
	}
	if opens != 1 || closes != 1 {
		t.Errorf("group markers: %d opens, %d closes, want 1 and 1", opens, closes)
	}
}

func TestCharSetMatches(t *testing.T) {
	tests := []struct {
		name string
		set  CharSet
		r    rune
		want bool
	}{
		{"any accepts letter", AnySet(), 'x', true},
		{"any accepts newline", AnySet(), '\n', true},
		{"range hit", NewCharSet([]RuneRange{{'a', 'z'}}), 'm', true},
		{"range miss", NewCharSet([]RuneRange{{'a', 'z'}}), 'M', false},
		{"multi range", NewCharSet([]RuneRange{{'0', '9'}, {'a', 'f'}}), 'c', true},
		{"boundary lo", NewCharSet([]RuneRange{{'a', 'z'}}), 'a', true},
		{"boundary hi", NewCharSet([]RuneRange{{'a', 'z'}}), 'z', true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.set.Matches(tt.r); got != tt.want {
				t.Errorf("Matches(%q) = %v, want %v", tt.r, got, tt.want)
			}
		})
	}
}

func TestBuilderValidate(t *testing.T) {
	b := NewBuilder()
	s := b.AddState()

	if _, err := b.Build(); err == nil {
		t.Error("Build without start/accept should fail")
	}

	b.SetStart(s)
	b.SetAccept(s)
	if _, err := b.Build(); err != nil {
		t.Errorf("Build of single-state graph failed: %v", err)
	}
}
