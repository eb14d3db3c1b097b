package align

import (
	"errors"
	"math"
	"regexp/syntax"
	"testing"

	"github.com/coregx/fuzzyre/graph"
)

func mustGraph(t *testing.T, pattern string) *graph.Graph {
	t.Helper()
	re, err := syntax.Parse(pattern, syntax.Perl)
	if err != nil {
		t.Fatalf("parse %q: %v", pattern, err)
	}
	g, err := graph.Compile(re)
	if err != nil {
		t.Fatalf("compile %q: %v", pattern, err)
	}
	return g
}

func alignText(t *testing.T, pattern, text string) *Result {
	t.Helper()
	g := mustGraph(t, pattern)
	a, err := NewAligner(g, DefaultCosts())
	if err != nil {
		t.Fatalf("NewAligner: %v", err)
	}
	res, err := a.Align([]rune(text))
	if err != nil {
		t.Fatalf("Align(%q, %q): %v", pattern, text, err)
	}
	return res
}

func opSummary(ops []Operation) string {
	var out []byte
	for _, op := range ops {
		switch op.Kind {
		case KindMatch:
			out = append(out, '=')
		case KindSubstitute:
			out = append(out, '!')
		case KindDelete:
			out = append(out, '-')
		case KindInsert:
			out = append(out, '+')
		}
	}
	return string(out)
}

func TestAlignCost(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		text    string
		cost    int
	}{
		{"exact literal", "abc", "abc", 0},
		{"one substitution", "bar", "baz", 1},
		{"one insertion", "a", "aa", 1},
		{"one deletion", "aba", "aa", 1},
		{"empty both", "", "", 0},
		{"empty pattern", "", "ab", 2},
		{"empty text", "ab", "", 2},
		{"class match", "[0-9]+", "42", 0},
		{"class mismatch", "[0-9]", "x", 1},
		{"wildcard", "a.c", "axc", 0},
		{"greedy star absorbs", "Helloo* World", "Helloooooo world", 1},
		{"alternation picks cheaper", "cat|dog", "dig", 1},
		{"repeat range", "a{2,4}", "aaa", 0},
		{"repeat below min", "a{3}", "aa", 1},
		{"optional absent", "colou?r", "color", 0},
		{"optional present", "colou?r", "colour", 0},
		{"nested groups", "(a(b)c)", "abc", 0},
		{"unicode", "héllo", "hallo", 1},
		{"whole mismatch", "abc", "xyz", 3},
		{"mixed edits", "abcde", "zabke", 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := alignText(t, tt.pattern, tt.text)
			if res.Cost != tt.cost {
				t.Errorf("cost = %d, want %d (ops %s)", res.Cost, tt.cost, opSummary(res.Ops))
			}
		})
	}
}

func TestAlignOperations(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		text    string
		ops     string // =match !substitute -delete +insert
	}{
		{"exact", "abc", "abc", "==="},
		{"substitute last", "bar", "baz", "==!"},
		{"insert duplicated", "a", "aa", "=+"},
		{"delete middle", "aba", "aa", "=-="},
		{"insert all", "", "ab", "++"},
		{"delete all", "ab", "", "--"},
		{"star absorbs run", "ab*", "abbb", "===="},
		{"prefer match over substitute", "a|b", "b", "="},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := alignText(t, tt.pattern, tt.text)
			if got := opSummary(res.Ops); got != tt.ops {
				t.Errorf("ops = %s, want %s", got, tt.ops)
			}
		})
	}
}

func TestAlignOperationDetails(t *testing.T) {
	res := alignText(t, "bar", "baz")
	if len(res.Ops) != 3 {
		t.Fatalf("got %d ops, want 3", len(res.Ops))
	}
	sub := res.Ops[2]
	if sub.Kind != KindSubstitute {
		t.Fatalf("last op = %v, want Substitute", sub.Kind)
	}
	if sub.PatternLabel != 'r' || sub.TextChar != 'z' {
		t.Errorf("substitute = %q -> %q, want 'r' -> 'z'", sub.PatternLabel, sub.TextChar)
	}

	res = alignText(t, "[0-9]", "x")
	if len(res.Ops) != 1 || res.Ops[0].Kind != KindSubstitute {
		t.Fatalf("ops = %v, want single substitute", res.Ops)
	}
	if res.Ops[0].PatternLabel != 0 {
		t.Errorf("class substitute label = %q, want 0", res.Ops[0].PatternLabel)
	}
}

// Against a pure literal pattern the aligner is exactly Levenshtein
// distance with unit costs.
func TestAlignLevenshteinEquivalence(t *testing.T) {
	tests := []struct {
		a, b string
		dist int
	}{
		{"kitten", "sitting", 3},
		{"flaw", "lawn", 2},
		{"saturday", "sunday", 3},
		{"gumbo", "gambol", 2},
		{"", "abc", 3},
		{"abc", "", 3},
		{"same", "same", 0},
	}
	for _, tt := range tests {
		t.Run(tt.a+"/"+tt.b, func(t *testing.T) {
			res := alignText(t, regexpQuote(tt.a), tt.b)
			if res.Cost != tt.dist {
				t.Errorf("cost = %d, want %d", res.Cost, tt.dist)
			}
		})
	}
}

func regexpQuote(s string) string {
	var out []rune
	for _, r := range s {
		switch r {
		case '.', '+', '*', '?', '(', ')', '[', ']', '{', '}', '^', '$', '|', '\\':
			out = append(out, '\\')
		}
		out = append(out, r)
	}
	return string(out)
}

func TestAlignDeterministic(t *testing.T) {
	g := mustGraph(t, "(ab|a)(b|c)*")
	a, err := NewAligner(g, DefaultCosts())
	if err != nil {
		t.Fatalf("NewAligner: %v", err)
	}
	first, err := a.Align([]rune("abbc"))
	if err != nil {
		t.Fatalf("Align: %v", err)
	}
	for i := 0; i < 10; i++ {
		res, err := a.Align([]rune("abbc"))
		if err != nil {
			t.Fatalf("Align #%d: %v", i, err)
		}
		if res.Cost != first.Cost || opSummary(res.Ops) != opSummary(first.Ops) {
			t.Fatalf("run %d diverged: cost %d ops %s, want cost %d ops %s",
				i, res.Cost, opSummary(res.Ops), first.Cost, opSummary(first.Ops))
		}
	}
}

func TestAlignerReuseAcrossLengths(t *testing.T) {
	g := mustGraph(t, "abc")
	a, err := NewAligner(g, DefaultCosts())
	if err != nil {
		t.Fatalf("NewAligner: %v", err)
	}
	long, err := a.Align([]rune("abcdefgh"))
	if err != nil {
		t.Fatalf("long: %v", err)
	}
	if long.Cost != 5 {
		t.Errorf("long cost = %d, want 5", long.Cost)
	}
	short, err := a.Align([]rune("ab"))
	if err != nil {
		t.Fatalf("short: %v", err)
	}
	if short.Cost != 1 {
		t.Errorf("short cost = %d, want 1", short.Cost)
	}
}

func TestAlignRejectsOversizedTable(t *testing.T) {
	// Enough states that the int32 table limit is hit with a text small
	// enough to allocate.
	g := mustGraph(t, "a{0,1000}")
	a, err := NewAligner(g, DefaultCosts())
	if err != nil {
		t.Fatalf("NewAligner: %v", err)
	}
	text := make([]rune, math.MaxInt32/g.Len())
	_, err = a.Align(text)
	var se *SizeError
	if !errors.As(err, &se) {
		t.Fatalf("error = %v, want *SizeError", err)
	}
	if se.States != g.Len() || se.TextLen != len(text) {
		t.Errorf("SizeError = %+v, want states %d, text length %d", se, g.Len(), len(text))
	}
}

func TestAlignCustomCosts(t *testing.T) {
	g := mustGraph(t, "bar")
	a, err := NewAligner(g, Costs{Substitute: 2, Delete: 1, Insert: 1})
	if err != nil {
		t.Fatalf("NewAligner: %v", err)
	}
	res, err := a.Align([]rune("baz"))
	if err != nil {
		t.Fatalf("Align: %v", err)
	}
	// With substitution at delete+insert, either decomposition costs 2.
	if res.Cost != 2 {
		t.Errorf("cost = %d, want 2", res.Cost)
	}
}

func TestCostsValidate(t *testing.T) {
	tests := []struct {
		name  string
		costs Costs
		ok    bool
	}{
		{"defaults", DefaultCosts(), true},
		{"zero substitute", Costs{Substitute: 0, Delete: 1, Insert: 1}, false},
		{"negative delete", Costs{Substitute: 1, Delete: -1, Insert: 1}, false},
		{"zero insert", Costs{Substitute: 1, Delete: 1, Insert: 0}, false},
		{"expensive", Costs{Substitute: 5, Delete: 3, Insert: 4}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.costs.Validate()
			if (err == nil) != tt.ok {
				t.Errorf("Validate() = %v, want ok=%v", err, tt.ok)
			}
			if err != nil {
				var ce *CostError
				if !asCostError(err, &ce) {
					t.Errorf("error type = %T, want *CostError", err)
				}
			}
		})
	}
}

func asCostError(err error, target **CostError) bool {
	ce, ok := err.(*CostError)
	if ok {
		*target = ce
	}
	return ok
}
