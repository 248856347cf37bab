// Package diff interprets unified diff text as a flat stream of
// classified, line-numbered rows suitable for terminal rendering.
package diff

// RowKind classifies a single row of diff output.
type RowKind int

const (
	// KindContext is an unchanged line (' ' prefix), or any line that
	// matched no other marker and passed through untouched.
	KindContext RowKind = iota
	// KindAdded is an added line ('+' prefix).
	KindAdded
	// KindRemoved is a removed line ('-' prefix).
	KindRemoved
	// KindHunk is an '@@ ... @@' hunk header.
	KindHunk
	// KindMeta is file or patch metadata (diff --git, index, ---, +++,
	// new/deleted file mode).
	KindMeta
)

// String returns a short lowercase name for the kind.
func (k RowKind) String() string {
	switch k {
	case KindContext:
		return "context"
	case KindAdded:
		return "added"
	case KindRemoved:
		return "removed"
	case KindHunk:
		return "hunk"
	case KindMeta:
		return "meta"
	default:
		return "unknown"
	}
}

// Row is one logical line of diff output.
//
// Text holds the line content with the leading diff marker stripped;
// for Hunk and Meta rows it is the original line verbatim. OldLine and
// NewLine are nil when the row has no position in that file: Added rows
// carry only NewLine, Removed rows only OldLine, Context rows both, and
// Hunk/Meta rows neither. Both are also nil when no well-formed hunk
// header preceded the row.
type Row struct {
	Kind    RowKind
	Text    string
	OldLine *int
	NewLine *int
}
