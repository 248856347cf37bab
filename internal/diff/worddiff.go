package diff

import (
	"context"
	"strings"
	"time"
	"unicode"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// Word diff bounds. Lines or files beyond these get plain line-level
// coloring instead.
const (
	// WordDiffMaxLineLength skips word diff for lines longer than this.
	WordDiffMaxLineLength = 500
	// WordDiffMaxPairs caps the number of pairs diffed per call.
	WordDiffMaxPairs = 100
	// WordDiffTimeout bounds total word diff time per call.
	WordDiffTimeout = 50 * time.Millisecond
)

// SegmentType marks a word segment as unchanged, added, or deleted.
type SegmentType int

const (
	SegmentUnchanged SegmentType = iota
	SegmentAdded
	SegmentDeleted
)

// Segment is a run of text with its intraline diff status.
type Segment struct {
	Type SegmentType
	Text string
}

// PairSegments holds the intraline segments for a removed/added pair.
type PairSegments struct {
	Old []Segment // segments of the removed line
	New []Segment // segments of the added line
}

// WordDiff computes intraline segments for adjacent Removed+Added row
// pairs. The result maps row index (both the removed and the added
// index) to the pair's segments. Rows without an adjacent partner get
// no entry and fall back to line-level coloring.
func WordDiff(rows []Row) map[int]PairSegments {
	ctx, cancel := context.WithTimeout(context.Background(), WordDiffTimeout)
	defer cancel()

	result := make(map[int]PairSegments)
	pairs := 0

	for i := 0; i+1 < len(rows) && pairs < WordDiffMaxPairs; i++ {
		if rows[i].Kind != KindRemoved || rows[i+1].Kind != KindAdded {
			continue
		}
		select {
		case <-ctx.Done():
			return result
		default:
		}

		oldText, newText := rows[i].Text, rows[i+1].Text
		if len(oldText) > WordDiffMaxLineLength || len(newText) > WordDiffMaxLineLength {
			i++
			continue
		}

		segs := computeWordDiff(oldText, newText)
		result[i] = segs
		result[i+1] = segs
		pairs++
		i++ // the addition is consumed by this pair
	}

	return result
}

// computeWordDiff diffs two lines at token granularity.
func computeWordDiff(oldLine, newLine string) PairSegments {
	if oldLine == "" && newLine == "" {
		return PairSegments{}
	}
	if oldLine == "" {
		return PairSegments{New: []Segment{{Type: SegmentAdded, Text: newLine}}}
	}
	if newLine == "" {
		return PairSegments{Old: []Segment{{Type: SegmentDeleted, Text: oldLine}}}
	}

	dmp := diffmatchpatch.New()
	oldText := strings.Join(tokenize(oldLine), "\x00")
	newText := strings.Join(tokenize(newLine), "\x00")

	diffs := dmp.DiffMain(oldText, newText, false)
	diffs = dmp.DiffCleanupSemantic(diffs)

	var segs PairSegments
	for _, d := range diffs {
		text := strings.ReplaceAll(d.Text, "\x00", "")
		if text == "" {
			continue
		}
		switch d.Type {
		case diffmatchpatch.DiffEqual:
			segs.Old = append(segs.Old, Segment{Type: SegmentUnchanged, Text: text})
			segs.New = append(segs.New, Segment{Type: SegmentUnchanged, Text: text})
		case diffmatchpatch.DiffDelete:
			segs.Old = append(segs.Old, Segment{Type: SegmentDeleted, Text: text})
		case diffmatchpatch.DiffInsert:
			segs.New = append(segs.New, Segment{Type: SegmentAdded, Text: text})
		}
	}
	return segs
}

// tokenize splits a line into words, punctuation, and whitespace runs
// of one. Example: "foo.bar()" -> ["foo", ".", "bar", "(", ")"].
func tokenize(line string) []string {
	if line == "" {
		return nil
	}

	var tokens []string
	var current strings.Builder

	flush := func() {
		if current.Len() > 0 {
			tokens = append(tokens, current.String())
			current.Reset()
		}
	}

	for _, r := range line {
		switch {
		case unicode.IsSpace(r):
			flush()
			tokens = append(tokens, string(r))
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			flush()
			tokens = append(tokens, string(r))
		default:
			current.WriteRune(r)
		}
	}
	flush()

	return tokens
}
