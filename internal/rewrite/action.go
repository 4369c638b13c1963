package rewrite

// Action is an immutable node describing one contribution at Range: an
// optional text to splice in before the range, an optional whole-range
// replacement, an optional text to splice in after the range, and an
// ordered list of children strictly contained within Range. "Mutating" an
// Action always produces a new value; unchanged children are shared by
// reference via the slice header, never deep-copied.
type Action struct {
	Range        Range
	InsertBefore string
	Replacement  *string
	InsertAfter  string
	Children     []Action

	enforcer Enforcer
}

func newLeaf(enf Enforcer, r Range) Action {
	return Action{Range: r, enforcer: enf}
}

// isEmpty reports whether the action carries no edit at all: no
// insertions, no replacement, and no children. Such a leaf never needs to
// be combined into a tree.
func (a Action) isEmpty() bool {
	return a.InsertBefore == "" && a.InsertAfter == "" && a.Replacement == nil && len(a.Children) == 0
}

// isInsertion reports whether a contributes text rather than purely
// deleting. A replacement of "" is a pure deletion, not an insertion; any
// non-empty insert_before/insert_after, or a non-empty replacement, makes
// it an insertion. placeInHierarchy uses this distinction to route a
// partial overlap to crossing_insertions (raised by the default policy)
// instead of crossing_deletions (accepted and fused by the default
// policy), and merge and placeInHierarchy use it to pick which discarded
// children trigger swallowed_insertions.
func (a Action) isInsertion() bool {
	return a.InsertBefore != "" || a.InsertAfter != "" || (a.Replacement != nil && *a.Replacement != "")
}

func (a Action) withChildren(children []Action) Action {
	a.Children = children
	return a
}

// indexOfExactRange returns the index of the child whose Range equals r,
// or -1. Siblings are sorted and pairwise disjoint, so at most one can
// match.
func indexOfExactRange(children []Action, r Range) int {
	for i, c := range children {
		if c.Range == r {
			return i
		}
	}
	return -1
}
