package model

// EditOp is one operation in an edit request: "replace", "insert-before",
// "insert-after", or "delete", applied over a byte Range against the
// TreeRewriter built for a file.
type EditOp string

const (
	OpReplace      EditOp = "replace"
	OpInsertBefore EditOp = "insert-before"
	OpInsertAfter  EditOp = "insert-after"
	OpDelete       EditOp = "delete"
)

// Edit is a single entry in an edit-request file's "edits" array. Range is
// [begin, end) as a two-element array to keep the JSON shape flat; Text is
// ignored for OpDelete.
type Edit struct {
	Op    EditOp `json:"op"`
	Range [2]int `json:"range"`
	Text  string `json:"text,omitempty"`
}

// EditRequest is the top-level shape of a `--edits` JSON file passed to the
// CLI: a flat, declarative list of edits to fold into one rewriter.
type EditRequest struct {
	Edits []Edit `json:"edits"`
}

// Result holds the outcome of processing a single file through the
// rewriter pipeline.
type Result struct {
	File            string    `json:"file"`
	Time            string    `json:"time"`
	SchemaVersion   int       `json:"schema_version"`
	ToolVersion     string    `json:"tool_version"`
	Success         bool      `json:"success"`
	EditCount       int       `json:"edit_count"`
	ChangedBytes    int       `json:"changed_bytes"`
	Error           string    `json:"error,omitempty"`
	ErrorCode       ErrorCode `json:"error_code,omitempty"`
	OriginalSHA1    string    `json:"original_sha1,omitempty"`
	ModifiedSHA1    string    `json:"modified_sha1,omitempty"`
	Diff            string    `json:"diff,omitempty"`
	OriginalContent string    `json:"-"`
	ModifiedContent string    `json:"-"`
}

const (
	CurrentSchemaVersion = 1
	CurrentToolVersion   = "0.1.0"
)
