package rewrite

import (
	"fmt"
	"io"
)

// Decision is the outcome the enforcer picks for one conflict.
type Decision int

const (
	Accept Decision = iota
	Warn
	Raise
)

func (d Decision) String() string {
	switch d {
	case Accept:
		return "accept"
	case Warn:
		return "warn"
	case Raise:
		return "raise"
	default:
		return "unknown"
	}
}

// ParseDecision parses one of "accept", "warn", "raise".
func ParseDecision(s string) (Decision, error) {
	switch s {
	case "accept":
		return Accept, nil
	case "warn":
		return Warn, nil
	case "raise":
		return Raise, nil
	default:
		return Accept, fmt.Errorf("rewrite: unknown policy decision %q", s)
	}
}

// Policy maps each of the four conflict kinds to a Decision. The defaults
// mirror the spec: only crossing deletions are tolerated silently, because
// fusing two deletions never loses information, while the other three
// discard something (an insertion's text or one of two differing
// replacements).
type Policy struct {
	CrossingDeletions     Decision
	CrossingInsertions    Decision
	DifferentReplacements Decision
	SwallowedInsertions   Decision
}

// DefaultPolicy returns the conservative default: raise on every conflict
// kind except crossing deletions, which merge silently.
func DefaultPolicy() Policy {
	return Policy{
		CrossingDeletions:     Accept,
		CrossingInsertions:    Raise,
		DifferentReplacements: Raise,
		SwallowedInsertions:   Raise,
	}
}

func (p Policy) decisionFor(kind ConflictKind) Decision {
	switch kind {
	case CrossingDeletions:
		return p.CrossingDeletions
	case CrossingInsertions:
		return p.CrossingInsertions
	case DifferentReplacements:
		return p.DifferentReplacements
	case SwallowedInsertions:
		return p.SwallowedInsertions
	default:
		return Raise
	}
}

// Enforcer is consulted on each conflict kind found during combine. It is
// a polymorphic single-method object rather than a closure, so a tree's
// enforcer can be shared across every action of that tree without
// capturing per-call state.
type Enforcer interface {
	Enforce(diag Diagnostic) error
}

// PolicyEnforcer is the default Enforcer: it looks up diag.Kind in a Policy
// and, for Warn, writes a one-line diagnostic to Sink (defaulting to
// io.Discard when nil).
type PolicyEnforcer struct {
	Policy Policy
	Sink   io.Writer
}

// NewPolicyEnforcer builds a PolicyEnforcer. sink may be nil, in which case
// warnings are discarded.
func NewPolicyEnforcer(policy Policy, sink io.Writer) *PolicyEnforcer {
	if sink == nil {
		sink = io.Discard
	}
	return &PolicyEnforcer{Policy: policy, Sink: sink}
}

func (e *PolicyEnforcer) Enforce(diag Diagnostic) error {
	switch e.Policy.decisionFor(diag.Kind) {
	case Accept:
		return nil
	case Warn:
		fmt.Fprintf(e.Sink, "warning: %s at %s\n", diag.Kind, diag.Range)
		return nil
	default: // Raise
		return &ConflictError{Kind: diag.Kind, Range: diag.Range, Detail: diag.detail()}
	}
}

func (d Diagnostic) detail() string {
	switch d.Kind {
	case DifferentReplacements:
		return fmt.Sprintf("replacement %q conflicts with existing %q", d.Replacement, d.Other)
	case SwallowedInsertions:
		return fmt.Sprintf("%d insertion child range(s) discarded", len(d.Conflict))
	default:
		return fmt.Sprintf("%d overlapping range(s)", len(d.Conflict))
	}
}
