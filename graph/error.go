// Package graph compiles restricted regular-expression patterns into
// alignment graphs.
//
// An alignment graph is a Thompson-style automaton whose states carry two
// ordered edge lists: epsilon edges encoding structural choice points
// (alternation, repetition, grouping) and match edges carrying a
// character-acceptance predicate. The align package searches this graph
// against a concrete text for the minimum-cost edit alignment.
package graph

import (
	"errors"
	"fmt"
)

// Common compilation errors.
var (
	// ErrTooComplex indicates the pattern exceeded a compilation limit.
	ErrTooComplex = errors.New("pattern too complex")

	// ErrUnsupported indicates the pattern uses a construct the alignment
	// graph cannot express.
	ErrUnsupported = errors.New("unsupported pattern construct")
)

// CompileError wraps compilation failures with the offending pattern.
type CompileError struct {
	Pattern string
	Err     error
}

// Error implements the error interface.
func (e *CompileError) Error() string {
	if e.Pattern != "" {
		return fmt.Sprintf("graph compilation failed for pattern %q: %v", e.Pattern, e.Err)
	}
	return fmt.Sprintf("graph compilation failed: %v", e.Err)
}

// Unwrap returns the underlying error.
func (e *CompileError) Unwrap() error {
	return e.Err
}

// UnsupportedError reports the concrete construct that could not be lowered
// into the alignment-graph edge model. It unwraps to ErrUnsupported.
type UnsupportedError struct {
	Construct string
}

// Error implements the error interface.
func (e *UnsupportedError) Error() string {
	return fmt.Sprintf("unsupported pattern construct: %s", e.Construct)
}

// Unwrap returns ErrUnsupported so callers can test with errors.Is.
func (e *UnsupportedError) Unwrap() error {
	return ErrUnsupported
}

// BuildError represents an error during graph construction via the Builder.
type BuildError struct {
	Message string
	StateID StateID
}

// Error implements the error interface.
func (e *BuildError) Error() string {
	if e.StateID != InvalidState {
		return fmt.Sprintf("graph build error at state %d: %s", e.StateID, e.Message)
	}
	return fmt.Sprintf("graph build error: %s", e.Message)
}
