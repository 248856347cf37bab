package diff

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWordDiff_AdjacentPair(t *testing.T) {
	rows := Parse("@@ -1,1 +1,1 @@\n-let x = 1;\n+let y = 1;")
	segs := WordDiff(rows)

	require.Contains(t, segs, 1)
	require.Contains(t, segs, 2)
	require.Equal(t, segs[1], segs[2])

	// Reassembling segments must reproduce the original lines.
	require.Equal(t, "let x = 1;", joinSegments(segs[1].Old))
	require.Equal(t, "let y = 1;", joinSegments(segs[1].New))

	// The changed identifier is marked, the rest unchanged.
	var deleted, added string
	for _, s := range segs[1].Old {
		if s.Type == SegmentDeleted {
			deleted += s.Text
		}
	}
	for _, s := range segs[1].New {
		if s.Type == SegmentAdded {
			added += s.Text
		}
	}
	require.Contains(t, deleted, "x")
	require.Contains(t, added, "y")
	require.NotContains(t, deleted, "let")
	require.NotContains(t, added, "let")
}

func TestWordDiff_NoPairForLonelyRows(t *testing.T) {
	rows := Parse("@@ -1,2 +1,1 @@\n-gone\n ctx\n+late add")
	segs := WordDiff(rows)
	require.Empty(t, segs)
}

func TestWordDiff_SkipsOverlongLines(t *testing.T) {
	long := strings.Repeat("x", WordDiffMaxLineLength+1)
	rows := Parse("@@ -1,1 +1,1 @@\n-" + long + "\n+short")
	segs := WordDiff(rows)
	require.Empty(t, segs)
}

func TestWordDiff_EmptySides(t *testing.T) {
	segs := computeWordDiff("", "added")
	require.Empty(t, segs.Old)
	require.Equal(t, []Segment{{Type: SegmentAdded, Text: "added"}}, segs.New)

	segs = computeWordDiff("deleted", "")
	require.Equal(t, []Segment{{Type: SegmentDeleted, Text: "deleted"}}, segs.Old)
	require.Empty(t, segs.New)
}

func TestTokenize(t *testing.T) {
	require.Equal(t, []string{"foo", ".", "bar", "(", ")"}, tokenize("foo.bar()"))
	require.Equal(t, []string{"a", " ", "b"}, tokenize("a b"))
	require.Nil(t, tokenize(""))
}

func joinSegments(segs []Segment) string {
	var sb strings.Builder
	for _, s := range segs {
		sb.WriteString(s.Text)
	}
	return sb.String()
}
