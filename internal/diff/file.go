package diff

import "regexp"

// File metadata patterns. These match against row text, which is
// verbatim for Meta rows and unstripped for passthrough rows, so
// rename/similarity/binary markers (which carry no diff prefix) are
// visible here even though the row parser classifies them as context.
var (
	diffHeaderRegex  = regexp.MustCompile(`^diff --git a/(.+) b/(.+)$`)
	oldFileRegex     = regexp.MustCompile(`^--- a/(.+)$`)
	newFileRegex     = regexp.MustCompile(`^\+\+\+ b/(.+)$`)
	similarityRegex  = regexp.MustCompile(`^similarity index (\d+)%$`)
	renameFromRegex  = regexp.MustCompile(`^rename from (.+)$`)
	renameToRegex    = regexp.MustCompile(`^rename to (.+)$`)
	binaryFilesRegex = regexp.MustCompile(`^Binary files .+ and .+ differ$`)
	newFileModeRegex = regexp.MustCompile(`^new file mode \d+$`)
	delFileModeRegex = regexp.MustCompile(`^deleted file mode \d+$`)
	similarityValue  = regexp.MustCompile(`\d+`)
)

// File summarizes one file's portion of a multi-file diff.
// Start and End delimit the half-open row range [Start, End) the file
// covers in the parsed sequence.
type File struct {
	OldPath    string
	NewPath    string
	Additions  int
	Deletions  int
	IsBinary   bool
	IsRenamed  bool
	IsNew      bool
	IsDeleted  bool
	Similarity int
	Start      int
	End        int
}

// Name returns the path to display for the file: the new path unless
// the file was deleted.
func (f File) Name() string {
	if f.IsDeleted || f.NewPath == "" || f.NewPath == "/dev/null" {
		if f.OldPath != "" {
			return f.OldPath
		}
	}
	return f.NewPath
}

// GroupFiles splits a row stream into per-file summaries for display.
// Rows before the first "diff --git" header belong to a synthetic
// unnamed file so no row is orphaned; a stream with no headers at all
// yields a single file spanning everything (or nil for no rows).
//
// Metadata patterns are only interpreted between the file header and
// the first hunk of each file: once hunk content starts, a context line
// that happens to read "rename from x" is just content.
func GroupFiles(rows []Row) []File {
	if len(rows) == 0 {
		return nil
	}

	var files []File
	var current *File
	inHunk := false

	flush := func(end int) {
		if current != nil {
			current.End = end
			files = append(files, *current)
		}
	}

	for i, row := range rows {
		if row.Kind == KindMeta {
			if m := diffHeaderRegex.FindStringSubmatch(row.Text); m != nil {
				flush(i)
				current = &File{OldPath: m[1], NewPath: m[2], Start: i}
				inHunk = false
				continue
			}
		}

		if current == nil {
			// Content before any file header: keep it under an
			// unnamed file rather than dropping it.
			current = &File{Start: i}
		}

		switch row.Kind {
		case KindHunk:
			inHunk = true
		case KindAdded:
			current.Additions++
		case KindRemoved:
			current.Deletions++
		case KindMeta:
			if inHunk {
				continue
			}
			switch {
			case row.Text == "--- /dev/null":
				current.IsNew = true
				current.OldPath = "/dev/null"
			case row.Text == "+++ /dev/null":
				current.IsDeleted = true
				current.NewPath = "/dev/null"
			case newFileModeRegex.MatchString(row.Text):
				current.IsNew = true
			case delFileModeRegex.MatchString(row.Text):
				current.IsDeleted = true
			default:
				if m := oldFileRegex.FindStringSubmatch(row.Text); m != nil {
					current.OldPath = m[1]
				} else if m := newFileRegex.FindStringSubmatch(row.Text); m != nil {
					current.NewPath = m[1]
				}
			}
		case KindContext:
			if inHunk {
				continue
			}
			switch {
			case similarityRegex.MatchString(row.Text):
				current.IsRenamed = true
				current.Similarity = atoiLoose(similarityValue.FindString(row.Text))
			case binaryFilesRegex.MatchString(row.Text):
				current.IsBinary = true
			default:
				if m := renameFromRegex.FindStringSubmatch(row.Text); m != nil {
					current.OldPath = m[1]
					current.IsRenamed = true
				} else if m := renameToRegex.FindStringSubmatch(row.Text); m != nil {
					current.NewPath = m[1]
					current.IsRenamed = true
				}
			}
		}
	}

	flush(len(rows))
	return files
}

// atoiLoose parses digits, returning 0 on failure. Callers pass text
// already matched by a digits-only pattern.
func atoiLoose(s string) int {
	n := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0
		}
		n = n*10 + int(r-'0')
	}
	return n
}
