package diffviewer

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"

	"github.com/zjrosen/patchview/internal/diff"
	"github.com/zjrosen/patchview/internal/ui/styles"
)

// lineNumberWidth is the width reserved for line numbers in the gutter.
const lineNumberWidth = 4

// Line styles (package-level to avoid recreating each render).
var (
	gutterStyle    = lipgloss.NewStyle().Foreground(styles.TextMutedColor)
	additionStyle  = lipgloss.NewStyle().Foreground(styles.DiffAdditionColor)
	deletionStyle  = lipgloss.NewStyle().Foreground(styles.DiffDeletionColor)
	contextStyle   = lipgloss.NewStyle().Foreground(styles.DiffContextColor)
	hunkStyle      = lipgloss.NewStyle().Foreground(styles.DiffHunkColor).Bold(true)
	metaStyle      = lipgloss.NewStyle().Foreground(styles.DiffMetaColor)
	wordAddedStyle = lipgloss.NewStyle().
			Foreground(styles.DiffAdditionColor).
			Background(styles.DiffWordAdditionBgColor)
	wordDeletedStyle = lipgloss.NewStyle().
				Foreground(styles.DiffDeletionColor).
				Background(styles.DiffWordDeletionBgColor)
)

// renderOptions configures diff body rendering.
type renderOptions struct {
	width    int // total width available for the body
	tabWidth int
	wordDiff map[int]diff.PairSegments // row index -> intraline segments
}

// kindStyle returns the base style for a row kind.
func kindStyle(kind diff.RowKind) lipgloss.Style {
	switch kind {
	case diff.KindAdded:
		return additionStyle
	case diff.KindRemoved:
		return deletionStyle
	case diff.KindHunk:
		return hunkStyle
	case diff.KindMeta:
		return metaStyle
	default:
		return contextStyle
	}
}

// kindMarker returns the single-character change marker for unified view.
func kindMarker(kind diff.RowKind) string {
	switch kind {
	case diff.KindAdded:
		return "+"
	case diff.KindRemoved:
		return "-"
	case diff.KindContext:
		return " "
	default:
		return ""
	}
}

// expandTabs replaces tabs with spaces so column math stays honest.
func expandTabs(text string, tabWidth int) string {
	if tabWidth <= 0 {
		tabWidth = 4
	}
	return strings.ReplaceAll(text, "\t", strings.Repeat(" ", tabWidth))
}

// renderRowText renders row text, applying intraline segment styling
// when word diff results exist for the row.
func renderRowText(row diff.Row, idx int, opts renderOptions, maxWidth int) string {
	base := kindStyle(row.Kind)
	text := expandTabs(row.Text, opts.tabWidth)

	segs, ok := opts.wordDiff[idx]
	if !ok || (row.Kind != diff.KindAdded && row.Kind != diff.KindRemoved) {
		return base.Render(ansi.Truncate(text, maxWidth, ""))
	}

	sideSegs := segs.New
	highlight := wordAddedStyle
	if row.Kind == diff.KindRemoved {
		sideSegs = segs.Old
		highlight = wordDeletedStyle
	}
	if len(sideSegs) == 0 {
		return base.Render(ansi.Truncate(text, maxWidth, ""))
	}

	var b strings.Builder
	for _, seg := range sideSegs {
		segText := expandTabs(seg.Text, opts.tabWidth)
		if seg.Type == diff.SegmentUnchanged {
			b.WriteString(base.Render(segText))
		} else {
			b.WriteString(highlight.Render(segText))
		}
	}
	return ansi.Truncate(b.String(), maxWidth, "")
}

// renderUnifiedLines renders rows as single-column unified diff lines.
// Gutter layout: old number, new number, marker, text.
func renderUnifiedLines(rows []diff.Row, opts renderOptions) []string {
	lines := diff.Render(rows)
	out := make([]string, len(lines))

	textWidth := max(opts.width-2*lineNumberWidth-4, 1)

	for i, line := range lines {
		if line.Kind == diff.KindHunk || line.Kind == diff.KindMeta {
			out[i] = kindStyle(line.Kind).Render(ansi.Truncate(expandTabs(line.Text, opts.tabWidth), opts.width, ""))
			continue
		}

		oldNum := runewidth.FillLeft(line.OldGutter, lineNumberWidth)
		newNum := runewidth.FillLeft(line.NewGutter, lineNumberWidth)
		marker := kindStyle(line.Kind).Render(kindMarker(line.Kind))
		text := renderRowText(rows[i], i, opts, textWidth)

		out[i] = fmt.Sprintf("%s %s %s %s", gutterStyle.Render(oldNum), gutterStyle.Render(newNum), marker, text)
	}

	return out
}

// renderSideBySideLines renders rows as parallel old/new columns.
func renderSideBySideLines(rows []diff.Row, opts renderOptions) []string {
	pairs := alignRows(rows)
	out := make([]string, len(pairs))

	// Layout: gutter + space + text per side, separator between sides.
	colWidth := max((opts.width-1)/2, lineNumberWidth+2)
	textWidth := max(colWidth-lineNumberWidth-1, 1)

	for i, pair := range pairs {
		if pair.IsFullWidth() {
			out[i] = kindStyle(pair.Left.Kind).Render(ansi.Truncate(expandTabs(pair.Left.Text, opts.tabWidth), opts.width, ""))
			continue
		}

		left := renderSideCell(pair.Left, pair.LeftIdx, opts, true, textWidth)
		right := renderSideCell(pair.Right, pair.RightIdx, opts, false, textWidth)

		left = padCell(left, colWidth)
		out[i] = left + "│" + right
	}

	return out
}

// renderSideCell renders one half of a side-by-side row. Blank sides
// render as empty cells so the opposite column stays aligned.
func renderSideCell(row *diff.Row, idx int, opts renderOptions, old bool, textWidth int) string {
	if row == nil {
		return gutterStyle.Render(runewidth.FillLeft("", lineNumberWidth))
	}

	num := row.NewLine
	if old {
		num = row.OldLine
	}
	gutter := ""
	if num != nil {
		gutter = fmt.Sprintf("%d", *num)
	}

	text := renderRowText(*row, idx, opts, textWidth)
	return gutterStyle.Render(runewidth.FillLeft(gutter, lineNumberWidth)) + " " + text
}

// padCell pads a styled cell to the column width.
func padCell(cell string, width int) string {
	gap := width - lipgloss.Width(cell)
	if gap > 0 {
		return cell + strings.Repeat(" ", gap)
	}
	return cell
}

// formatStats formats the +N/-N display for a file.
func formatStats(f diff.File) string {
	if f.IsBinary {
		return "bin"
	}
	return additionStyle.Render(fmt.Sprintf("+%d", f.Additions)) +
		" " +
		deletionStyle.Render(fmt.Sprintf("-%d", f.Deletions))
}

// statusIndicator returns the one-character change indicator for a file.
func statusIndicator(f diff.File) (string, lipgloss.Style) {
	switch {
	case f.IsBinary:
		return "B", lipgloss.NewStyle().Foreground(styles.TextMutedColor)
	case f.IsRenamed:
		return "R", lipgloss.NewStyle().Foreground(styles.StatusWarningColor)
	case f.IsNew:
		return "A", lipgloss.NewStyle().Foreground(styles.StatusSuccessColor)
	case f.IsDeleted:
		return "D", lipgloss.NewStyle().Foreground(styles.StatusErrorColor)
	default:
		return "M", lipgloss.NewStyle().Foreground(styles.DiffHunkColor)
	}
}

// renderFileEntry renders one row of the file list pane.
func renderFileEntry(f diff.File, selected, focused bool, width int) string {
	if width < 1 {
		return ""
	}

	indicator, indicatorStyle := statusIndicator(f)
	stats := formatStats(f)
	statsWidth := lipgloss.Width(stats)

	name := f.Name()
	if name == "" {
		name = "(header)"
	}

	nameMaxWidth := max(width-2-statsWidth-1, 1)
	if lipgloss.Width(name) > nameMaxWidth {
		name = ansi.Truncate(name, nameMaxWidth, "…")
	}
	padding := max(nameMaxWidth-lipgloss.Width(name), 0)

	nameStyle := lipgloss.NewStyle().Foreground(styles.TextPrimaryColor)
	if selected && focused {
		bg := styles.SelectionBackgroundColor
		indicatorStyle = indicatorStyle.Background(bg)
		nameStyle = nameStyle.Background(bg).Bold(true)

		spaceStyle := lipgloss.NewStyle().Background(bg)
		var b strings.Builder
		b.WriteString(indicatorStyle.Render(indicator))
		b.WriteString(spaceStyle.Render(" "))
		b.WriteString(nameStyle.Render(name))
		b.WriteString(spaceStyle.Render(strings.Repeat(" ", padding+1)))
		b.WriteString(stats)
		return b.String()
	}

	var b strings.Builder
	b.WriteString(indicatorStyle.Render(indicator))
	b.WriteString(" ")
	b.WriteString(nameStyle.Render(name))
	b.WriteString(strings.Repeat(" ", padding+1))
	b.WriteString(stats)
	return b.String()
}
