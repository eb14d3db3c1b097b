package align

import "github.com/coregx/fuzzyre/graph"

// ExtractCaptures walks an alignment path and collects the text spans
// covered by each capture group. Groups are numbered from 1, matching
// their opening parenthesis order in the pattern; index 0 of the returned
// slice corresponds to group 1.
//
// A group inside a quantifier can be entered more than once; every
// completed span is kept, in the order the group closed. A group the path
// never entered contributes an empty slice.
func ExtractCaptures(g *graph.Graph, path []Visit) [][]Span {
	spans := make([][]Span, g.GroupCount())
	if len(spans) == 0 {
		return spans
	}

	pending := make(map[int]int)
	for _, v := range path {
		s := g.State(v.State)
		for _, group := range s.Opens() {
			pending[group] = v.Offset
		}
		for _, group := range s.Closes() {
			start, ok := pending[group]
			if !ok {
				continue
			}
			delete(pending, group)
			spans[group-1] = append(spans[group-1], Span{Start: start, End: v.Offset})
		}
	}
	return spans
}
