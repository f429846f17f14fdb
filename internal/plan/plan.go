// Package plan turns a type's shape plus its already-declared traits into a
// concrete, non-conflicting synthesis plan. Planning is a pure function:
// identical shapes produce bit-identical plans, inputs are never mutated,
// and a manually declared trait is never scheduled for emission.
package plan

import (
	"fmt"

	"traitgen/internal/diag"
	"traitgen/internal/shape"
	"traitgen/internal/traits"
	"traitgen/structcmp"
)

// DecisionKind classifies what the planner decided for one trait.
type DecisionKind uint8

const (
	// NotRequested means the trait was not asked for; nothing happens.
	NotRequested DecisionKind = iota
	// Emit schedules generation with the plan's resolved parameters.
	Emit
	// Suppress withholds generation because the trait already exists.
	// Manual code is authoritative; it is never second-guessed.
	Suppress
	// Refuse withholds generation because a precondition failed; the
	// reason is on the diagnostic identified by Decision.Code.
	Refuse
)

func (k DecisionKind) String() string {
	switch k {
	case Emit:
		return "emit"
	case Suppress:
		return "suppress"
	case Refuse:
		return "refuse"
	default:
		return "not-requested"
	}
}

// Decision is the planner's verdict for one trait.
type Decision struct {
	Kind   DecisionKind
	Reason string    // Suppress: what exists
	Code   diag.Code // Refuse: the diagnostic explaining why
}

// MemberRule pairs a member with its resolved comparison semantics.
type MemberRule struct {
	Name string
	Rule CompareRule
}

// Plan is the complete verdict for one type: a decision per trait plus the
// fully resolved parameters every emitted trait shares. Equality, hashing
// and ordering all read the same Members and Case, which keeps the family
// coherent by construction.
type Plan struct {
	Type   shape.TypeRef
	Digest shape.Digest

	// Case is the single case-sensitivity policy: every synthesized trait
	// that touches a string member routes through it.
	Case structcmp.CaseMode

	// CollapseAbsent carries the wrapper convention into emission.
	CollapseAbsent bool

	Decisions [traits.Count]Decision

	// Members holds one resolved rule per comparable member, in
	// declaration order. Computed members never appear.
	Members []MemberRule
}

// Decision returns the verdict for a trait.
func (p *Plan) Decision(t traits.Trait) Decision {
	if t >= traits.Count {
		return Decision{}
	}
	return p.Decisions[t]
}

// Emitted lists the traits scheduled for emission, in enumeration order.
func (p *Plan) Emitted() []traits.Trait {
	var out []traits.Trait
	for t := traits.Trait(0); t < traits.Count; t++ {
		if p.Decisions[t].Kind == Emit {
			out = append(out, t)
		}
	}
	return out
}

func (p *Plan) String() string {
	return fmt.Sprintf("plan(%s: %d emitted)", p.Type, len(p.Emitted()))
}
