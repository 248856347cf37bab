package diff

import "strconv"

// Line is one renderable line: two gutter cells, the row text, and the
// row kind as a style tag. Gutter cells are empty when the row has no
// position in that file.
type Line struct {
	OldGutter string
	NewGutter string
	Text      string
	Kind      RowKind
}

// Render projects a row sequence into renderable lines, one per row,
// preserving order. It is a pure 1:1 projection; coloring and layout
// are applied downstream from Kind.
func Render(rows []Row) []Line {
	lines := make([]Line, len(rows))
	for i, row := range rows {
		lines[i] = Line{
			OldGutter: gutterCell(row.OldLine),
			NewGutter: gutterCell(row.NewLine),
			Text:      row.Text,
			Kind:      row.Kind,
		}
	}
	return lines
}

// gutterCell formats an optional line number, blank when absent.
func gutterCell(n *int) string {
	if n == nil {
		return ""
	}
	return strconv.Itoa(*n)
}
