package align

import "fmt"

// UnreachableError reports that no path from the start state to the accept
// state exists. Insertion and deletion edges make every well-formed graph
// fully connected, so this indicates a graph built outside the compiler.
type UnreachableError struct {
	States  int
	TextLen int
}

func (e *UnreachableError) Error() string {
	return fmt.Sprintf("accept state unreachable (%d states, text length %d)", e.States, e.TextLen)
}

// SizeError reports that the (state, offset) product graph is too large to
// index. The search tables are indexed with int32, so states*(textLen+1)
// must stay below 2^31.
type SizeError struct {
	States  int
	TextLen int
}

func (e *SizeError) Error() string {
	return fmt.Sprintf("alignment too large: %d states over text length %d exceeds table limit", e.States, e.TextLen)
}
