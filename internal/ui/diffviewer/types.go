// Package diffviewer provides a TUI component for viewing unified diffs.
package diffviewer

import "github.com/zjrosen/patchview/internal/diff"

// ViewMode represents the diff display mode.
type ViewMode int

const (
	// ViewModeUnified shows changes in a single column with +/- markers.
	ViewModeUnified ViewMode = iota
	// ViewModeSideBySide shows old and new versions in parallel columns.
	ViewModeSideBySide
)

// String returns a human-readable name for the view mode.
func (m ViewMode) String() string {
	switch m {
	case ViewModeUnified:
		return "UNIFIED"
	case ViewModeSideBySide:
		return "SIDE-BY-SIDE"
	default:
		return "UNKNOWN"
	}
}

// ParseViewMode maps a config string to a ViewMode, defaulting to unified.
func ParseViewMode(s string) ViewMode {
	if s == "side-by-side" {
		return ViewModeSideBySide
	}
	return ViewModeUnified
}

// alignedPair represents one display row in side-by-side view. It pairs
// corresponding rows from the old and new versions of a file.
//
// Alignment rules:
//   - Removed rows: Left has content, Right is blank
//   - Added rows: Left is blank, Right has content
//   - Context rows: both sides show the same content
//   - Adjacent removed+added runs are paired 1:1 as modifications
//   - Hunk and meta rows span the full width (Left only)
type alignedPair struct {
	Left  *diff.Row
	Right *diff.Row

	// Row indices into the aligned slice, for word diff lookup.
	// -1 when that side is blank.
	LeftIdx  int
	RightIdx int
}

// IsModification reports whether both sides changed (a removed row
// paired with an added row).
func (p alignedPair) IsModification() bool {
	return p.Left != nil && p.Right != nil &&
		p.Left.Kind == diff.KindRemoved && p.Right.Kind == diff.KindAdded
}

// IsFullWidth reports whether the pair renders as a single span across
// both columns (hunk headers and metadata).
func (p alignedPair) IsFullWidth() bool {
	return p.Left != nil && (p.Left.Kind == diff.KindHunk || p.Left.Kind == diff.KindMeta)
}

// alignRows converts a flat row sequence into aligned pairs for
// side-by-side display. Consecutive removed rows are collected and
// paired with the added rows that immediately follow; extras on either
// side get a blank opposite column.
func alignRows(rows []diff.Row) []alignedPair {
	var pairs []alignedPair
	i := 0

	for i < len(rows) {
		switch rows[i].Kind {
		case diff.KindHunk, diff.KindMeta:
			pairs = append(pairs, alignedPair{Left: &rows[i], LeftIdx: i, RightIdx: -1})
			i++

		case diff.KindContext:
			pairs = append(pairs, alignedPair{Left: &rows[i], Right: &rows[i], LeftIdx: i, RightIdx: i})
			i++

		case diff.KindRemoved:
			start := i
			for i < len(rows) && rows[i].Kind == diff.KindRemoved {
				i++
			}
			removed := i - start

			addStart := i
			for i < len(rows) && rows[i].Kind == diff.KindAdded {
				i++
			}
			added := i - addStart

			n := max(removed, added)
			for j := 0; j < n; j++ {
				var pair alignedPair
				pair.LeftIdx, pair.RightIdx = -1, -1
				if j < removed {
					pair.Left = &rows[start+j]
					pair.LeftIdx = start + j
				}
				if j < added {
					pair.Right = &rows[addStart+j]
					pair.RightIdx = addStart + j
				}
				pairs = append(pairs, pair)
			}

		case diff.KindAdded:
			// Additions with no preceding removals get a blank left side.
			pairs = append(pairs, alignedPair{Right: &rows[i], LeftIdx: -1, RightIdx: i})
			i++

		default:
			i++
		}
	}

	return pairs
}
