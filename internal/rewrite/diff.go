package rewrite

import (
	"github.com/pmezard/go-difflib/difflib"
)

// UnifiedDiff renders a plain (uncolored) unified diff between orig and
// mod: the text the CLI stores in Result.Diff, prints for --diff, and
// carries in --json output.
func UnifiedDiff(orig, mod, filename string, context int) string {
	if orig == mod {
		return ""
	}
	d := difflib.UnifiedDiff{
		A:        difflib.SplitLines(orig),
		B:        difflib.SplitLines(mod),
		FromFile: filename,
		ToFile:   filename,
		Context:  context,
	}
	text, err := difflib.GetUnifiedDiffString(d)
	if err != nil {
		return "(diff error: " + err.Error() + ")"
	}
	return text
}

// ChangedBytes returns the absolute difference in byte length between orig
// and mod, a cheap proxy for how large a rewrite was.
func ChangedBytes(orig, mod string) int {
	d := len(mod) - len(orig)
	if d < 0 {
		d = -d
	}
	return d
}
