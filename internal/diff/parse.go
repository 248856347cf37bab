package diff

import (
	"regexp"
	"strconv"
	"strings"
)

// hunkHeaderRegex extracts the starting line numbers from a hunk header.
// Counts after the comma are optional and ignored; trailing section
// text after the closing @@ is allowed.
var hunkHeaderRegex = regexp.MustCompile(`^@@ -(\d+)(?:,\d+)? \+(\d+)(?:,\d+)? @@`)

// metaPrefixes are the file/patch metadata markers recognized at
// position 0. Checked after the hunk header and before content lines,
// so "+++ b/f" is metadata rather than an addition.
var metaPrefixes = []string{
	"diff --git",
	"index ",
	"--- ",
	"+++ ",
	"new file mode",
	"deleted file mode",
}

// cursor tracks the next unconsumed line number in each file.
// Both sides are nil until a well-formed hunk header is seen; a
// malformed header resets both to nil rather than guessing.
type cursor struct {
	old *int
	new *int
}

// Parse interprets raw unified diff text as an ordered row sequence.
// It is total: malformed or partial input degrades to rows with nil
// line numbers or context-like passthrough, never an error. Every input
// line produces exactly one row, so len(rows) equals the input line
// count (with \r\n treated as \n and trailing empty lines preserved).
func Parse(text string) []Row {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	lines := strings.Split(text, "\n")

	rows := make([]Row, 0, len(lines))
	var cur cursor
	for _, line := range lines {
		rows = append(rows, classifyLine(line, &cur))
	}
	return rows
}

// classifyLine maps one input line to its row, advancing the cursor
// according to the row kind. Marker checks are position-0 anchored and
// purely textual; the parser trusts the input format and does no
// semantic validation.
func classifyLine(line string, cur *cursor) Row {
	if strings.HasPrefix(line, "@@") {
		if m := hunkHeaderRegex.FindStringSubmatch(line); m != nil {
			// Counts cannot fail Atoi: the pattern admits digits only.
			oldStart, _ := strconv.Atoi(m[1])
			newStart, _ := strconv.Atoi(m[2])
			cur.old = &oldStart
			cur.new = &newStart
		} else {
			cur.old = nil
			cur.new = nil
		}
		return Row{Kind: KindHunk, Text: line}
	}

	for _, prefix := range metaPrefixes {
		if strings.HasPrefix(line, prefix) {
			return Row{Kind: KindMeta, Text: line}
		}
	}

	switch {
	case strings.HasPrefix(line, "+"):
		row := Row{Kind: KindAdded, Text: line[1:], NewLine: cur.new}
		cur.advanceNew()
		return row

	case strings.HasPrefix(line, "-"):
		row := Row{Kind: KindRemoved, Text: line[1:], OldLine: cur.old}
		cur.advanceOld()
		return row

	case strings.HasPrefix(line, " "):
		row := Row{Kind: KindContext, Text: line[1:], OldLine: cur.old, NewLine: cur.new}
		cur.advanceOld()
		cur.advanceNew()
		return row

	default:
		// Blank or unrecognized lines pass through unstripped as
		// context so no input line is ever dropped.
		row := Row{Kind: KindContext, Text: line, OldLine: cur.old, NewLine: cur.new}
		cur.advanceOld()
		cur.advanceNew()
		return row
	}
}

// advanceOld moves the old-file counter past an emitted row. The
// emitted row keeps the pre-increment value.
func (c *cursor) advanceOld() {
	if c.old != nil {
		next := *c.old + 1
		c.old = &next
	}
}

func (c *cursor) advanceNew() {
	if c.new != nil {
		next := *c.new + 1
		c.new = &next
	}
}
