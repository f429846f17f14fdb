package plan

import (
	"fmt"

	"traitgen/internal/diag"
	"traitgen/internal/shape"
	"traitgen/internal/traits"
)

// Build plans synthesis for one merged type shape. existing is the
// Existing-Trait Detector's output; findings go to r as warnings and never
// abort the run. Build never mutates its inputs.
func Build(s *shape.TypeShape, in *shape.Interner, existing traits.Set, r diag.Reporter) *Plan {
	p := &Plan{
		Type:           s.Ref,
		Digest:         s.Digest(in),
		Case:           s.Case,
		CollapseAbsent: s.CollapseAbsent,
	}

	// Type-level preconditions first: failing any refuses the whole type
	// with a single diagnostic. No partial generation is attempted.
	if code, msg, remedy := typeRefusal(s); code != diag.UnknownCode {
		r.Report(diag.NewWarning(code, s.Ref.String(), msg).WithRemedy(remedy))
		for _, t := range s.Requested.List() {
			p.Decisions[t] = Decision{Kind: Refuse, Code: code}
		}
		return p
	}

	// Resolve per-member semantics once; every emitted trait shares them.
	members := s.ComparableMembers()
	p.Members = make([]MemberRule, 0, len(members))
	for _, m := range members {
		p.Members = append(p.Members, MemberRule{
			Name: m.Name,
			Rule: deriveRule(in, m.Class, s),
		})
	}

	// Family-level precondition: the ordering family is all-or-nothing.
	// One member that does not order withholds the comparison AND all four
	// ordering operators together, never a subset.
	orderRefused := diag.UnknownCode
	if s.Requested.Has(traits.Compare) || s.Requested.Has(traits.OrderOps) {
		if bad, ok := firstUnorderable(s, in, members); ok {
			orderRefused = diag.PlanOrderingUnsupported
			r.Report(diag.NewWarning(orderRefused, s.Ref.String(),
				fmt.Sprintf("member %q (%s) has no total order", bad.Name, in.CanonicalString(bad.Class))).
				WithMember(bad.Name).
				WithRemedy("declare the member's type ordered, or drop the ordering traits from the request"))
		}
	}

	// Deserialization that bypasses construction is only legal when a
	// construction path exists. Whether it exists is decided here; how the
	// bypass works is the emitter's concern.
	unmarshalRefused := diag.UnknownCode
	if s.Requested.Has(traits.Unmarshal) && !existing.Has(traits.Unmarshal) && !constructible(s, existing) {
		unmarshalRefused = diag.PlanDeserializeNoCtor
		r.Report(diag.NewWarning(unmarshalRefused, s.Ref.String(),
			"no value constructor or conversion to build the type from").
			WithRemedy("declare a value constructor, or request the ctor trait alongside unmarshal"))
	}

	for _, t := range s.Requested.List() {
		switch {
		case existing.Has(t):
			// Non-destructive: whatever is declared by hand wins.
			p.Decisions[t] = Decision{Kind: Suppress, Reason: "declared by hand"}
		case (t == traits.Compare || t == traits.OrderOps) && orderRefused != diag.UnknownCode:
			p.Decisions[t] = Decision{Kind: Refuse, Code: orderRefused}
		case t == traits.Unmarshal && unmarshalRefused != diag.UnknownCode:
			p.Decisions[t] = Decision{Kind: Refuse, Code: unmarshalRefused}
		default:
			p.Decisions[t] = Decision{Kind: Emit}
		}
	}

	return p
}

// typeRefusal checks the type-level preconditions. The first failing check
// names the refusal; order is fixed so diagnostics are deterministic.
func typeRefusal(s *shape.TypeShape) (diag.Code, string, string) {
	switch {
	case s.Abstract:
		return diag.PlanTypeAbstract,
			"the type is abstract; synthesized members would have no concrete receiver",
			"request synthesis on the concrete types instead"
	case s.OpenGeneric:
		return diag.PlanTypeOpenGeneric,
			"the type has unbound type parameters",
			"request synthesis on closed instantiations"
	case s.NonRetargetable:
		return diag.PlanTypeNotRetargetable,
			"the declaration is nested where generated code cannot be re-declared",
			"move the declaration to a retargetable scope"
	}
	return diag.UnknownCode, "", ""
}

// firstUnorderable returns the first comparable member whose classification
// is not transitively self-comparable (one optional unwrap allowed).
func firstUnorderable(s *shape.TypeShape, in *shape.Interner, members []shape.Member) (shape.Member, bool) {
	for _, m := range members {
		if !in.SelfOrderable(m.Class) {
			return m, true
		}
	}
	return shape.Member{}, false
}

// constructible reports whether a construction path will exist once this
// plan is realized: a declared ctor or conversion, or a ctor scheduled in
// the same plan.
func constructible(s *shape.TypeShape, existing traits.Set) bool {
	if existing.Has(traits.Ctor) || existing.Has(traits.ConvFrom) || existing.Has(traits.ConvFromPtr) {
		return true
	}
	return s.Requested.Has(traits.Ctor)
}
