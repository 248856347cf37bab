package tracing

// Span names for the diff pipeline.
const (
	SpanParse  = "diff.parse"
	SpanGroup  = "diff.group"
	SpanRender = "diff.render"
)

// Span attribute keys.
const (
	AttrSourcePath = "diff.source_path"
	AttrRowCount   = "diff.row_count"
	AttrFileCount  = "diff.file_count"
	AttrAdditions  = "diff.additions"
	AttrDeletions  = "diff.deletions"
)
