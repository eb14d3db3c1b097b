// Package diff renders alignment edit scripts as annotated text, in the
// style of word-level unified diffs: matched text verbatim, pattern
// characters the text lacks wrapped in deletion markers, and text
// characters the pattern does not account for wrapped in insertion
// markers.
package diff

import (
	"strings"

	"github.com/coregx/fuzzyre/align"
)

// ChunkKind distinguishes matched runs from edited runs.
type ChunkKind uint8

const (
	// ChunkSame is a run of text the pattern matched verbatim.
	ChunkSame ChunkKind = iota

	// ChunkEdit is a run of consecutive edits: pattern characters that
	// were deleted and text characters that were inserted, in source
	// order. A substitution contributes one character to each side.
	ChunkEdit
)

// String returns the kind name.
func (k ChunkKind) String() string {
	switch k {
	case ChunkSame:
		return "same"
	case ChunkEdit:
		return "edit"
	default:
		return "unknown"
	}
}

// Chunk is one coalesced run of an alignment. Same chunks carry Text;
// Edit chunks carry the Deleted pattern characters and Inserted text
// characters, either of which may be empty but not both.
type Chunk struct {
	Kind     ChunkKind `json:"kind"`
	Text     string    `json:"text,omitempty"`
	Deleted  string    `json:"deleted,omitempty"`
	Inserted string    `json:"inserted,omitempty"`
}

// Markers configures the bracket strings used by Render.
type Markers struct {
	DeleteOpen  string
	DeleteClose string
	InsertOpen  string
	InsertClose string

	// ClassPlaceholder stands in for a deleted pattern position with no
	// single literal character, such as a class or wildcard.
	ClassPlaceholder rune
}

// DefaultMarkers returns the standard wdiff-style markers: deletions in
// [- -], insertions in {+ +}, classes shown as '?'.
func DefaultMarkers() Markers {
	return Markers{
		DeleteOpen:       "[-",
		DeleteClose:      "-]",
		InsertOpen:       "{+",
		InsertClose:      "+}",
		ClassPlaceholder: '?',
	}
}

// Chunks coalesces an edit script into alternating Same and Edit runs.
// Adjacent edits merge into a single Edit chunk with all deleted pattern
// characters before all inserted text characters, so a substitution
// followed by an insertion renders as one [-x-]{+yz+} group rather than
// two.
func Chunks(ops []align.Operation, placeholder rune) []Chunk {
	var chunks []Chunk
	var same, deleted, inserted strings.Builder

	flushSame := func() {
		if same.Len() > 0 {
			chunks = append(chunks, Chunk{Kind: ChunkSame, Text: same.String()})
			same.Reset()
		}
	}
	flushEdit := func() {
		if deleted.Len() > 0 || inserted.Len() > 0 {
			chunks = append(chunks, Chunk{
				Kind:     ChunkEdit,
				Deleted:  deleted.String(),
				Inserted: inserted.String(),
			})
			deleted.Reset()
			inserted.Reset()
		}
	}

	for _, op := range ops {
		switch op.Kind {
		case align.KindMatch:
			flushEdit()
			same.WriteRune(op.TextChar)
		case align.KindSubstitute:
			flushSame()
			deleted.WriteRune(patternRune(op.PatternLabel, placeholder))
			inserted.WriteRune(op.TextChar)
		case align.KindDelete:
			flushSame()
			deleted.WriteRune(patternRune(op.PatternLabel, placeholder))
		case align.KindInsert:
			flushSame()
			inserted.WriteRune(op.TextChar)
		}
	}
	flushSame()
	flushEdit()
	return chunks
}

func patternRune(label, placeholder rune) rune {
	if label == 0 {
		return placeholder
	}
	return label
}

// Render formats an edit script with the given markers.
func Render(ops []align.Operation, m Markers) string {
	var b strings.Builder
	for _, c := range Chunks(ops, m.ClassPlaceholder) {
		switch c.Kind {
		case ChunkSame:
			b.WriteString(c.Text)
		case ChunkEdit:
			if c.Deleted != "" {
				b.WriteString(m.DeleteOpen)
				b.WriteString(c.Deleted)
				b.WriteString(m.DeleteClose)
			}
			if c.Inserted != "" {
				b.WriteString(m.InsertOpen)
				b.WriteString(c.Inserted)
				b.WriteString(m.InsertClose)
			}
		}
	}
	return b.String()
}
