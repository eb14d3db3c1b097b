package align

import (
	"reflect"
	"testing"
)

func extract(t *testing.T, pattern, text string) [][]Span {
	t.Helper()
	g := mustGraph(t, pattern)
	a, err := NewAligner(g, DefaultCosts())
	if err != nil {
		t.Fatalf("NewAligner: %v", err)
	}
	res, err := a.Align([]rune(text))
	if err != nil {
		t.Fatalf("Align: %v", err)
	}
	return ExtractCaptures(g, res.Path)
}

func TestExtractCaptures(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		text    string
		want    [][]Span
	}{
		{
			"single group",
			"a(b+)c", "abbc",
			[][]Span{{{1, 3}}},
		},
		{
			"nested groups",
			"(a(b)c)", "abc",
			[][]Span{{{0, 3}}, {{1, 2}}},
		},
		{
			"repeated group keeps all spans",
			"(ab)+", "abab",
			[][]Span{{{0, 2}, {2, 4}}},
		},
		{
			"alternation skips unused group",
			"(x)|(y)", "y",
			[][]Span{nil, {{0, 1}}},
		},
		{
			"no groups",
			"abc", "abc",
			[][]Span{},
		},
		{
			"group survives fuzzy edit",
			"v(\\d+)", "v42x",
			[][]Span{{{1, 3}}},
		},
		{
			"numbers in angle brackets",
			"<(\\d+),(\\d+)>", "<12,34>",
			[][]Span{{{1, 3}}, {{4, 6}}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := extract(t, tt.pattern, tt.text)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d groups, want %d", len(got), len(tt.want))
			}
			for i := range tt.want {
				if len(tt.want[i]) == 0 && len(got[i]) == 0 {
					continue
				}
				if !reflect.DeepEqual(got[i], tt.want[i]) {
					t.Errorf("group %d = %v, want %v", i+1, got[i], tt.want[i])
				}
			}
		})
	}
}
