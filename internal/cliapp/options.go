// Package cliapp wires internal/rewrite into a batch CLI: it reads a
// declarative edit request, builds one TreeRewriter per target file, and
// prints or writes the result according to Options.
package cliapp

import "github.com/oxhq/actiontree/internal/rewrite"

// Options configures one invocation of Run.
type Options struct {
	Files       []string
	EditRequest string // path to a JSON edit-request file, or "-" for stdin
	Modify      bool
	Stage       bool // write to .actiontree/ for later `actiontree commit` instead of the real path
	Interactive bool // prompt y/N/q per file before writing
	ShowDiff    bool
	DiffContext int
	ColorDiff   bool
	JSONOutput  bool
	Verbose     bool
	Workers     int
	Policy      rewrite.Policy
}
