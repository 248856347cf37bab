package diff

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRender_OneLinePerRow(t *testing.T) {
	rows := Parse("diff --git a/f b/f\n@@ -1,2 +1,2 @@\n-a\n+b\n c")
	lines := Render(rows)
	require.Len(t, lines, len(rows))
	for i, line := range lines {
		require.Equal(t, rows[i].Kind, line.Kind)
		require.Equal(t, rows[i].Text, line.Text)
	}
}

func TestRender_Gutters(t *testing.T) {
	rows := Parse(strings.Join([]string{
		"@@ -10,2 +20,2 @@",
		"-removed",
		"+added",
		" context",
	}, "\n"))
	lines := Render(rows)

	require.Equal(t, "", lines[0].OldGutter)
	require.Equal(t, "", lines[0].NewGutter)

	require.Equal(t, "10", lines[1].OldGutter)
	require.Equal(t, "", lines[1].NewGutter)

	require.Equal(t, "", lines[2].OldGutter)
	require.Equal(t, "20", lines[2].NewGutter)

	require.Equal(t, "11", lines[3].OldGutter)
	require.Equal(t, "21", lines[3].NewGutter)
}

func TestRender_NilNumbersBlankGutters(t *testing.T) {
	lines := Render(Parse("+orphan"))
	require.Len(t, lines, 1)
	require.Equal(t, "", lines[0].OldGutter)
	require.Equal(t, "", lines[0].NewGutter)
	require.Equal(t, KindAdded, lines[0].Kind)
}

func TestRender_EmptyInput(t *testing.T) {
	require.Empty(t, Render(nil))
}
