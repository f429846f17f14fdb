package plan

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"traitgen/internal/detect"
	"traitgen/internal/diag"
	"traitgen/internal/shape"
	"traitgen/internal/traits"
	"traitgen/structcmp"
)

func aggShape(in *shape.Interner) *shape.TypeShape {
	b := in.Builtins()
	return &shape.TypeShape{
		Ref: shape.TypeRef{Namespace: "billing", Name: "Invoice"},
		Tag: shape.AggregateLike,
		Members: []shape.Member{
			{Name: "id", Class: b.String},
			{Name: "total", Class: b.Int},
			{Name: "lines", Class: in.Intern(shape.MakeSequence(b.String))},
		},
		Requested: traits.Of(traits.EqualTyped, traits.EqualAny, traits.Hash, traits.EqOps, traits.Display),
	}
}

func build(s *shape.TypeShape, in *shape.Interner) (*Plan, *diag.Bag) {
	bag := diag.NewBag(32)
	p := Build(s, in, detect.Detect(s), diag.BagReporter{Bag: bag})
	return p, bag
}

func TestPlanIsIdempotent(t *testing.T) {
	in := shape.NewInterner()
	a, _ := build(aggShape(in), in)
	b, _ := build(aggShape(in), in)
	if diff := cmp.Diff(a, b); diff != "" {
		t.Fatalf("identical shapes must plan identically (-first +second):\n%s", diff)
	}
}

func TestManualDeclarationAlwaysWins(t *testing.T) {
	in := shape.NewInterner()
	s := aggShape(in)
	s.Declared = []shape.DeclSig{
		{Name: "Hash", Results: []shape.SigShape{shape.SigUint64}},
	}
	p, _ := build(s, in)
	if d := p.Decision(traits.Hash); d.Kind != Suppress {
		t.Fatalf("existing hash must suppress, got %v", d.Kind)
	}
	if d := p.Decision(traits.EqualTyped); d.Kind != Emit {
		t.Fatalf("undeclared equality must still emit, got %v", d.Kind)
	}
}

func TestOrderingFamilyIsAllOrNothing(t *testing.T) {
	in := shape.NewInterner()
	s := aggShape(in)
	s.Requested = s.Requested.With(traits.Compare, traits.OrderOps)

	// "lines" is a sequence: not self-comparable, so the whole family goes.
	p, bag := build(s, in)
	if p.Decision(traits.Compare).Kind != Refuse || p.Decision(traits.OrderOps).Kind != Refuse {
		t.Fatalf("one unorderable member must withhold the whole family")
	}
	if p.Decision(traits.EqualTyped).Kind != Emit {
		t.Fatalf("equality family must be unaffected")
	}
	if bag.Len() != 1 || bag.Items()[0].Code != diag.PlanOrderingUnsupported {
		t.Fatalf("expected exactly one ordering diagnostic, got %d", bag.Len())
	}
	if bag.Items()[0].Member != "lines" {
		t.Fatalf("diagnostic must reference the offending member, got %q", bag.Items()[0].Member)
	}

	// Drop the sequence member: the family comes back as one unit.
	s.Members = s.Members[:2]
	p2, _ := build(s, in)
	if p2.Decision(traits.Compare).Kind != Emit || p2.Decision(traits.OrderOps).Kind != Emit {
		t.Fatalf("orderable members must emit the whole family")
	}
}

func TestOrderingUnwrapsExactlyOneOptionalLevel(t *testing.T) {
	in := shape.NewInterner()
	b := in.Builtins()
	s := &shape.TypeShape{
		Ref:       shape.TypeRef{Name: "Rank"},
		Members:   []shape.Member{{Name: "v", Class: in.Intern(shape.MakeOptional(b.Int))}},
		Requested: traits.Of(traits.Compare, traits.OrderOps),
	}
	p, _ := build(s, in)
	if p.Decision(traits.Compare).Kind != Emit {
		t.Fatalf("option<int> must order")
	}

	s.Members[0].Class = in.Intern(shape.MakeOptional(in.Intern(shape.MakeOptional(b.Int))))
	p2, _ := build(s, in)
	if p2.Decision(traits.Compare).Kind != Refuse {
		t.Fatalf("option<option<int>> must not order")
	}
}

func TestTypeLevelRefusalIsTotal(t *testing.T) {
	in := shape.NewInterner()
	s := aggShape(in)
	s.Abstract = true
	p, bag := build(s, in)
	for _, tr := range s.Requested.List() {
		if d := p.Decision(tr); d.Kind != Refuse || d.Code != diag.PlanTypeAbstract {
			t.Fatalf("trait %v must be refused with the type-level code, got %+v", tr, d)
		}
	}
	if bag.Len() != 1 {
		t.Fatalf("whole-type refusal must produce exactly one diagnostic, got %d", bag.Len())
	}
	if len(p.Members) != 0 {
		t.Fatalf("no partial plan: member rules must not be resolved")
	}
}

func TestComputedMembersAreExcluded(t *testing.T) {
	in := shape.NewInterner()
	s := aggShape(in)
	s.Members = append(s.Members, shape.Member{
		Name: "display", Class: in.Builtins().String, Storage: shape.StorageComputed,
	})
	p, _ := build(s, in)
	for _, mr := range p.Members {
		if mr.Name == "display" {
			t.Fatalf("computed members must not participate in comparison")
		}
	}
}

func TestUnmarshalNeedsConstructionPath(t *testing.T) {
	in := shape.NewInterner()
	s := aggShape(in)
	s.Requested = s.Requested.With(traits.Marshal, traits.Unmarshal)

	p, bag := build(s, in)
	if p.Decision(traits.Unmarshal).Kind != Refuse {
		t.Fatalf("no construction path: unmarshal must be refused")
	}
	if p.Decision(traits.Marshal).Kind != Emit {
		t.Fatalf("marshal is unaffected by the deserialize precondition")
	}
	if bag.Items()[0].Code != diag.PlanDeserializeNoCtor {
		t.Fatalf("expected the deserialize diagnostic")
	}

	// Requesting the ctor in the same plan legalizes the bypass.
	s.Requested = s.Requested.With(traits.Ctor)
	p2, _ := build(s, in)
	if p2.Decision(traits.Unmarshal).Kind != Emit {
		t.Fatalf("a ctor scheduled in the same plan is a construction path")
	}
}

func TestSingleCasePolicyFlowsEverywhere(t *testing.T) {
	in := shape.NewInterner()
	exact := aggShape(in)
	folded := aggShape(in)
	folded.Case = structcmp.CaseFold

	pe, _ := build(exact, in)
	pf, _ := build(folded, in)

	if pe.Digest == pf.Digest {
		t.Fatalf("case mode is part of the shape's identity")
	}
	if pe.Case != structcmp.CaseExact || pf.Case != structcmp.CaseFold {
		t.Fatalf("plan must carry the resolved case mode")
	}
	// Every string rule in the folded plan reflects the one policy; none
	// is configured per member.
	for i, mr := range pf.Members {
		check := mr.Rule
		if check.Kind == RuleString && check.Case != structcmp.CaseFold {
			t.Fatalf("member %d string rule ignored the type policy", i)
		}
		if check.Kind == RuleSeq && check.Elem.Kind == RuleString && check.Elem.Case != structcmp.CaseFold {
			t.Fatalf("nested string rule ignored the type policy")
		}
	}
}

func TestWrapperCollapseConvention(t *testing.T) {
	in := shape.NewInterner()
	optStr := in.Intern(shape.MakeOptional(in.Builtins().String))
	wrapper := &shape.TypeShape{
		Ref:            shape.TypeRef{Name: "Label"},
		Tag:            shape.WrapperLike,
		CollapseAbsent: true,
		Members:        []shape.Member{{Name: "value", Class: optStr}},
		Requested:      traits.Of(traits.EqualTyped),
	}
	p, _ := build(wrapper, in)
	if !p.Members[0].Rule.Collapse {
		t.Fatalf("wrapper convention must collapse absent into empty")
	}

	agg := &shape.TypeShape{
		Ref:            shape.TypeRef{Name: "Row"},
		Tag:            shape.AggregateLike,
		CollapseAbsent: true,
		Members:        []shape.Member{{Name: "value", Class: optStr}},
		Requested:      traits.Of(traits.EqualTyped),
	}
	p2, _ := build(agg, in)
	if p2.Members[0].Rule.Collapse {
		t.Fatalf("the collapse convention belongs to wrapper types only")
	}
}

func TestRuleDerivationFollowsPrecedence(t *testing.T) {
	in := shape.NewInterner()
	b := in.Builtins()
	custom := in.Intern(shape.MakeSelfEqual("Money"))
	grouping := in.Intern(shape.MakeGrouping(b.String, custom, false))
	s := &shape.TypeShape{
		Ref:       shape.TypeRef{Name: "Ledger"},
		Members:   []shape.Member{{Name: "byAccount", Class: grouping}},
		Requested: traits.Of(traits.EqualTyped),
	}
	p, _ := build(s, in)
	r := p.Members[0].Rule
	if r.Kind != RuleGrouping || r.Ordered {
		t.Fatalf("grouping rule broken: %+v", r)
	}
	if r.Key.Kind != RuleString || r.Elem.Kind != RuleCustom || r.Elem.TypeName != "Money" {
		t.Fatalf("nested rules broken: %+v", r)
	}
}
