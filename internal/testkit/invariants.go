// Package testkit holds cross-package sanity checks shared by tests.
package testkit

import (
	"fmt"

	"traitgen/internal/plan"
	"traitgen/internal/shape"
	"traitgen/internal/traits"
)

// CheckPlanInvariants runs a minimal set of plan invariants:
//  1. every suppressed trait names what exists; every refusal carries a code
//  2. the ordering family is all-or-nothing: Compare and the operator set
//     share one verdict when both are requested
//  3. member rules cover exactly the shape's comparable members, in order
//  4. the plan's digest matches the shape it claims to plan
func CheckPlanInvariants(p *plan.Plan, s *shape.TypeShape, in *shape.Interner) error {
	if p == nil || s == nil {
		return fmt.Errorf("nil plan or shape")
	}
	if p.Type != s.Ref {
		return fmt.Errorf("plan is for %s, shape is %s", p.Type, s.Ref)
	}
	if p.Digest != s.Digest(in) {
		return fmt.Errorf("plan digest does not match the shape content")
	}

	// 1) decision payload sanity
	for t := traits.Trait(0); t < traits.Count; t++ {
		d := p.Decisions[t]
		switch d.Kind {
		case plan.Suppress:
			if d.Reason == "" {
				return fmt.Errorf("trait %v suppressed without a reason", t)
			}
		case plan.Refuse:
			if d.Code == 0 {
				return fmt.Errorf("trait %v refused without a diagnostic code", t)
			}
		case plan.NotRequested:
			if s.Requested.Has(t) {
				return fmt.Errorf("requested trait %v has no decision", t)
			}
		}
		if d.Kind != plan.NotRequested && !s.Requested.Has(t) {
			return fmt.Errorf("unrequested trait %v got a decision %v", t, d.Kind)
		}
	}

	// 2) ordering family coherence
	fam := traits.OrderingFamily()
	if s.Requested.Has(fam[0]) && s.Requested.Has(fam[1]) {
		a, b := p.Decisions[fam[0]].Kind, p.Decisions[fam[1]].Kind
		aHeld := a == plan.Emit || a == plan.Suppress
		bHeld := b == plan.Emit || b == plan.Suppress
		if aHeld != bHeld {
			return fmt.Errorf("ordering family split: %v=%v, %v=%v", fam[0], a, fam[1], b)
		}
	}

	// 3) member rules mirror the comparable members (unless the whole type
	// was refused, in which case no partial plan may exist)
	members := s.ComparableMembers()
	allRefused := len(s.Requested.List()) > 0
	for _, t := range s.Requested.List() {
		if p.Decisions[t].Kind != plan.Refuse {
			allRefused = false
			break
		}
	}
	if allRefused && len(p.Members) > 0 {
		return fmt.Errorf("whole-type refusal must not resolve member rules")
	}
	if !allRefused {
		if len(p.Members) != len(members) {
			return fmt.Errorf("member rules = %d, comparable members = %d", len(p.Members), len(members))
		}
		for i, mr := range p.Members {
			if mr.Name != members[i].Name {
				return fmt.Errorf("member rule %d is %q, want %q", i, mr.Name, members[i].Name)
			}
			if mr.Rule.Kind == plan.RuleInvalid {
				return fmt.Errorf("member %q has no resolved rule", mr.Name)
			}
		}
	}
	return nil
}
