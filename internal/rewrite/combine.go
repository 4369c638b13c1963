package rewrite

import "sort"

// combine folds a freshly built leaf action into self, which must satisfy
// self.Range.Contains(action.Range) or self.Range == action.Range. It
// returns the new value for self (or an error from the enforcer, leaving
// the caller free to discard it and keep the prior tree).
func combine(self Action, action Action) (Action, error) {
	if action.isEmpty() {
		return self, nil
	}
	if action.Range == self.Range {
		return merge(self, action)
	}
	return placeInHierarchy(self, action)
}

// merge combines two actions describing the same range: action is the
// newer edit, self is the node already present (the parent being edited,
// or an existing child with the same range as a later call). Per the
// spec, insert_before prepends the new text ahead of the old and
// insert_after appends it behind the old, so on both sides the newer
// text nests outside the older, and a replacement on either side
// always wins over no replacement -- with the newer of two differing
// replacements chosen after consulting the enforcer.
func merge(self, action Action) (Action, error) {
	result := Action{
		Range:        self.Range,
		InsertBefore: action.InsertBefore + self.InsertBefore,
		InsertAfter:  self.InsertAfter + action.InsertAfter,
		enforcer:     self.enforcer,
	}

	switch {
	case action.Replacement != nil && self.Replacement != nil:
		if *action.Replacement != *self.Replacement {
			diag := Diagnostic{
				Kind:        DifferentReplacements,
				Range:       self.Range,
				Replacement: *action.Replacement,
				Other:       *self.Replacement,
			}
			if err := self.enforcer.Enforce(diag); err != nil {
				return Action{}, err
			}
		}
		result.Replacement = action.Replacement
	case action.Replacement != nil:
		result.Replacement = action.Replacement
	case self.Replacement != nil:
		result.Replacement = self.Replacement
	}

	if result.Replacement != nil {
		var swallowed []Range
		for _, c := range self.Children {
			if c.isInsertion() {
				swallowed = append(swallowed, c.Range)
			}
		}
		if len(swallowed) > 0 {
			diag := Diagnostic{Kind: SwallowedInsertions, Range: self.Range, Conflict: swallowed}
			if err := self.enforcer.Enforce(diag); err != nil {
				return Action{}, err
			}
		}
		result.Children = nil
	} else {
		result.Children = self.Children
	}

	return result, nil
}

// placeInHierarchy classifies self.Children against action.Range and folds
// action in according to one of the four conflict cases.
func placeInHierarchy(self, action Action) (Action, error) {
	children := self.Children

	// Tie-break: an existing child with exactly action's range is always
	// action's parent; recursing into it reaches merge. This also covers
	// the empty-range-at-the-same-position corner case called out in the
	// spec, without needing to special-case the binary search indices.
	if idx := indexOfExactRange(children, action.Range); idx >= 0 {
		newChild, err := combine(children[idx], action)
		if err != nil {
			return Action{}, err
		}
		next := append(append([]Action{}, children[:idx]...), newChild)
		next = append(next, children[idx+1:]...)
		return self.withChildren(next), nil
	}

	n := len(children)
	leftIdx := sort.Search(n, func(i int) bool { return children[i].Range.End > action.Range.Begin })
	rightIdx := sort.Search(n, func(i int) bool { return children[i].Range.Begin >= action.Range.End })
	if rightIdx < leftIdx {
		rightIdx = leftIdx
	}
	overlapping := children[leftIdx:rightIdx]

	if len(overlapping) == 0 {
		// Case 1: action is disjoint from every child; insert it as a new
		// sibling at its sorted position.
		next := append(append([]Action{}, children[:leftIdx]...), action)
		next = append(next, children[leftIdx:]...)
		return self.withChildren(next), nil
	}

	var containingIdx = -1
	allContained := true
	var crossingRanges []Range
	crossingIsInsertion := action.isInsertion()
	for i, c := range overlapping {
		switch {
		case c.Range.Contains(action.Range):
			containingIdx = leftIdx + i
		case action.Range.Contains(c.Range):
			// strictly inside action: candidate for wrapping.
		default:
			allContained = false
			crossingRanges = append(crossingRanges, c.Range)
			if c.isInsertion() {
				crossingIsInsertion = true
			}
		}
	}

	switch {
	case containingIdx >= 0 && len(overlapping) == 1:
		// Case 2: exactly one child strictly contains action; recurse.
		newChild, err := combine(children[containingIdx], action)
		if err != nil {
			return Action{}, err
		}
		next := append([]Action{}, children...)
		next[containingIdx] = newChild
		return self.withChildren(next), nil

	case allContained && containingIdx < 0:
		// Case 3: every overlapping child is strictly inside action.
		if action.Replacement != nil {
			// A replacement can't carry children -- flatten always takes
			// the Replacement branch and ignores them -- so the
			// overlapping children are discarded rather than nested, but
			// only after the same swallowed-insertions check merge runs
			// for the equal-range case.
			var swallowed []Range
			for _, c := range overlapping {
				if c.isInsertion() {
					swallowed = append(swallowed, c.Range)
				}
			}
			for _, c := range action.Children {
				if c.isInsertion() {
					swallowed = append(swallowed, c.Range)
				}
			}
			if len(swallowed) > 0 {
				diag := Diagnostic{Kind: SwallowedInsertions, Range: action.Range, Conflict: swallowed}
				if err := self.enforcer.Enforce(diag); err != nil {
					return Action{}, err
				}
			}
			wrapped := action
			wrapped.Children = nil
			wrapped.enforcer = self.enforcer
			next := append(append([]Action{}, children[:leftIdx]...), wrapped)
			next = append(next, children[rightIdx:]...)
			return self.withChildren(next), nil
		}

		// action carries no replacement: wrap the overlapping children
		// under a new node built from action, re-merging whatever
		// children action itself already carried (always empty for a
		// freshly built leaf, but handled generally).
		wrapped := action
		wrapped.Children = append([]Action{}, overlapping...)
		wrapped.enforcer = self.enforcer
		for _, oc := range action.Children {
			var err error
			wrapped, err = combine(wrapped, oc)
			if err != nil {
				return Action{}, err
			}
		}
		next := append(append([]Action{}, children[:leftIdx]...), wrapped)
		next = append(next, children[rightIdx:]...)
		return self.withChildren(next), nil

	default:
		// Case 4: a child's range partially overlaps action's boundary.
		kind := CrossingDeletions
		if crossingIsInsertion {
			kind = CrossingInsertions
		}
		diag := Diagnostic{Kind: kind, Range: action.Range, Conflict: crossingRanges}
		if err := self.enforcer.Enforce(diag); err != nil {
			return Action{}, err
		}
		return fuse(self, action, leftIdx, rightIdx)
	}
}

// fuse replaces action and the overlapping children [leftIdx, rightIdx) of
// self with a single node spanning the join of all their ranges, carrying
// action's own insert_before/replacement/insert_after (the overlapping
// children's contributions are discarded, per the enforcer check already
// performed by the caller). The fused node is then re-combined into self
// with those children removed, since its joined range may in turn need to
// be placed relative to self's remaining children.
func fuse(self, action Action, leftIdx, rightIdx int) (Action, error) {
	joined := action.Range
	for _, c := range self.Children[leftIdx:rightIdx] {
		joined = joined.Join(c.Range)
	}
	fused := Action{
		Range:        joined,
		InsertBefore: action.InsertBefore,
		Replacement:  action.Replacement,
		InsertAfter:  action.InsertAfter,
		enforcer:     self.enforcer,
	}

	remaining := append(append([]Action{}, self.Children[:leftIdx]...), self.Children[rightIdx:]...)
	return combine(self.withChildren(remaining), fused)
}
