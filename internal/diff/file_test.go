package diff

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGroupFiles_SingleFile(t *testing.T) {
	rows := Parse(strings.Join([]string{
		"diff --git a/file.go b/file.go",
		"index abc1234..def5678 100644",
		"--- a/file.go",
		"+++ b/file.go",
		"@@ -10,6 +10,7 @@ func example() {",
		" \tcontext line",
		"-\tdeleted line",
		"+\tadded line",
		" \tmore context",
	}, "\n"))

	files := GroupFiles(rows)
	require.Len(t, files, 1)

	f := files[0]
	require.Equal(t, "file.go", f.OldPath)
	require.Equal(t, "file.go", f.NewPath)
	require.Equal(t, 1, f.Additions)
	require.Equal(t, 1, f.Deletions)
	require.False(t, f.IsBinary)
	require.False(t, f.IsRenamed)
	require.Equal(t, 0, f.Start)
	require.Equal(t, len(rows), f.End)
}

func TestGroupFiles_MultipleFiles(t *testing.T) {
	rows := Parse(strings.Join([]string{
		"diff --git a/first.go b/first.go",
		"--- a/first.go",
		"+++ b/first.go",
		"@@ -1,3 +1,4 @@",
		" line one",
		"+added",
		" line two",
		"diff --git a/second.go b/second.go",
		"--- a/second.go",
		"+++ b/second.go",
		"@@ -5,2 +5,1 @@",
		"-removed",
		" kept",
	}, "\n"))

	files := GroupFiles(rows)
	require.Len(t, files, 2)

	require.Equal(t, "first.go", files[0].OldPath)
	require.Equal(t, 1, files[0].Additions)
	require.Equal(t, 0, files[0].Deletions)
	require.Equal(t, 0, files[0].Start)
	require.Equal(t, 7, files[0].End)

	require.Equal(t, "second.go", files[1].OldPath)
	require.Equal(t, 0, files[1].Additions)
	require.Equal(t, 1, files[1].Deletions)
	require.Equal(t, 7, files[1].Start)
	require.Equal(t, len(rows), files[1].End)
}

func TestGroupFiles_Ranges_CoverAllRows(t *testing.T) {
	rows := Parse("junk before\ndiff --git a/a b/a\n@@ -1 +1 @@\n-x\n+y\ndiff --git a/b b/b\n@@ -1 +1 @@\n z")
	files := GroupFiles(rows)
	require.Len(t, files, 3) // synthetic leading file + two real ones

	require.Equal(t, 0, files[0].Start)
	for i := 1; i < len(files); i++ {
		require.Equal(t, files[i-1].End, files[i].Start)
	}
	require.Equal(t, len(rows), files[len(files)-1].End)
}

func TestGroupFiles_BinaryFile(t *testing.T) {
	rows := Parse(strings.Join([]string{
		"diff --git a/image.png b/image.png",
		"index abc1234..def5678 100644",
		"Binary files a/image.png and b/image.png differ",
	}, "\n"))

	files := GroupFiles(rows)
	require.Len(t, files, 1)
	require.True(t, files[0].IsBinary)
}

func TestGroupFiles_RenamedFile(t *testing.T) {
	rows := Parse(strings.Join([]string{
		"diff --git a/old_name.go b/new_name.go",
		"similarity index 95%",
		"rename from old_name.go",
		"rename to new_name.go",
	}, "\n"))

	files := GroupFiles(rows)
	require.Len(t, files, 1)
	require.True(t, files[0].IsRenamed)
	require.Equal(t, 95, files[0].Similarity)
	require.Equal(t, "old_name.go", files[0].OldPath)
	require.Equal(t, "new_name.go", files[0].NewPath)
}

func TestGroupFiles_NewAndDeleted(t *testing.T) {
	rows := Parse(strings.Join([]string{
		"diff --git a/newfile.go b/newfile.go",
		"new file mode 100644",
		"--- /dev/null",
		"+++ b/newfile.go",
		"@@ -0,0 +1,2 @@",
		"+package main",
		"+",
		"diff --git a/removed.go b/removed.go",
		"deleted file mode 100644",
		"--- a/removed.go",
		"+++ /dev/null",
		"@@ -1,1 +0,0 @@",
		"-package main",
	}, "\n"))

	files := GroupFiles(rows)
	require.Len(t, files, 2)

	require.True(t, files[0].IsNew)
	require.Equal(t, "/dev/null", files[0].OldPath)
	require.Equal(t, 2, files[0].Additions)
	require.Equal(t, "newfile.go", files[0].Name())

	require.True(t, files[1].IsDeleted)
	require.Equal(t, "/dev/null", files[1].NewPath)
	require.Equal(t, 1, files[1].Deletions)
	require.Equal(t, "removed.go", files[1].Name())
}

func TestGroupFiles_HunkContentNotMistakenForMetadata(t *testing.T) {
	// Context line content "rename from x" must not mark the file
	// renamed once hunk content has started.
	rows := Parse(strings.Join([]string{
		"diff --git a/doc.txt b/doc.txt",
		"@@ -1,2 +1,2 @@",
		" rename from x",
		"-old",
		"+new",
	}, "\n"))

	files := GroupFiles(rows)
	require.Len(t, files, 1)
	require.False(t, files[0].IsRenamed)
}

func TestGroupFiles_Empty(t *testing.T) {
	require.Nil(t, GroupFiles(nil))
}

func TestGroupFiles_NoHeaders(t *testing.T) {
	rows := Parse("@@ -1,1 +1,1 @@\n-a\n+b")
	files := GroupFiles(rows)
	require.Len(t, files, 1)
	require.Equal(t, "", files[0].OldPath)
	require.Equal(t, 1, files[0].Additions)
	require.Equal(t, 1, files[0].Deletions)
}
