package rewrite

import "strings"

// apply walks source from offset 0 to its end, splicing in each ordered
// replacement. The pairs are monotonic in Range.Begin by
// construction (flatten emits in ascending sibling order and insertions
// bracket their own range); pure insertions (empty range) do not advance
// the cursor past any source bytes.
func apply(source string, pairs []replacement) string {
	var b strings.Builder
	b.Grow(len(source))

	cursor := 0
	for _, p := range pairs {
		b.WriteString(source[cursor:p.Range.Begin])
		b.WriteString(p.Text)
		cursor = p.Range.End
	}
	b.WriteString(source[cursor:])
	return b.String()
}
