package plan

import (
	"fmt"

	"traitgen/internal/shape"
	"traitgen/structcmp"
)

// RuleKind selects which structcmp family a value routes through. The
// enumeration mirrors the engine's precedence: declared equality first,
// then the container families, then the opaque fallback.
type RuleKind uint8

const (
	RuleInvalid RuleKind = iota
	// RuleCustom defers entirely to the type's own declared equality.
	RuleCustom
	RuleMemSlice
	RuleMap
	RuleGrouping
	RuleSeq
	RuleSet
	RuleOption
	RuleString
	RulePrimitive
	// RuleOpaque is the total fallback: the value's standard equality.
	RuleOpaque
)

func (k RuleKind) String() string {
	switch k {
	case RuleCustom:
		return "custom"
	case RuleMemSlice:
		return "memslice"
	case RuleMap:
		return "map"
	case RuleGrouping:
		return "grouping"
	case RuleSeq:
		return "seq"
	case RuleSet:
		return "set"
	case RuleOption:
		return "option"
	case RuleString:
		return "string"
	case RulePrimitive:
		return "primitive"
	case RuleOpaque:
		return "opaque"
	default:
		return fmt.Sprintf("RuleKind(%d)", k)
	}
}

// CompareRule is the resolved, recursive comparison semantics for one
// classification. The emitter renders it into calls against structcmp;
// the planner and the engine agree on meaning by construction.
type CompareRule struct {
	Kind RuleKind

	// Case applies to RuleString nodes. Always the owning type's single
	// policy, never per-member.
	Case structcmp.CaseMode `msgpack:",omitempty"`

	// Ordered applies to RuleGrouping: positional vs multiset per-key runs.
	Ordered bool `msgpack:",omitempty"`

	// Collapse applies to RuleOption over a string in wrapper types that
	// document the absent-means-empty convention. Containers never set it.
	Collapse bool `msgpack:",omitempty"`

	// TypeName names the nominal type for RuleCustom and RuleOpaque.
	TypeName string `msgpack:",omitempty"`

	Key  *CompareRule `msgpack:",omitempty"`
	Elem *CompareRule `msgpack:",omitempty"`
}

// deriveRule resolves a classification into its comparison rule. Precedence
// per the engine: declared custom equality wins over every structural rule;
// containers recurse; anything else falls back to opaque, so derivation is
// total.
func deriveRule(in *shape.Interner, id shape.ClassID, owner *shape.TypeShape) CompareRule {
	c := in.MustLookup(id)
	switch c.Kind {
	case shape.KindSelfEqual, shape.KindSelfOrdered:
		return CompareRule{Kind: RuleCustom, TypeName: c.Name}
	case shape.KindMemSlice:
		elem := deriveRule(in, c.Elem, owner)
		return CompareRule{Kind: RuleMemSlice, Elem: &elem}
	case shape.KindMap:
		key := deriveRule(in, c.Key, owner)
		val := deriveRule(in, c.Elem, owner)
		return CompareRule{Kind: RuleMap, Key: &key, Elem: &val}
	case shape.KindGrouping:
		key := deriveRule(in, c.Key, owner)
		val := deriveRule(in, c.Elem, owner)
		return CompareRule{Kind: RuleGrouping, Key: &key, Elem: &val, Ordered: c.Ordered}
	case shape.KindSequence:
		elem := deriveRule(in, c.Elem, owner)
		return CompareRule{Kind: RuleSeq, Elem: &elem}
	case shape.KindSet:
		elem := deriveRule(in, c.Elem, owner)
		return CompareRule{Kind: RuleSet, Elem: &elem}
	case shape.KindOptional:
		elem := deriveRule(in, c.Elem, owner)
		r := CompareRule{Kind: RuleOption, Elem: &elem}
		// The absent-collapses-to-empty convention belongs to single-value
		// wrapper types only.
		if owner.CollapseAbsent && wrapperLike(owner.Tag) && elem.Kind == RuleString {
			r.Collapse = true
		}
		return r
	case shape.KindString:
		return CompareRule{Kind: RuleString, Case: owner.Case}
	case shape.KindPrimitive:
		return CompareRule{Kind: RulePrimitive, TypeName: c.Name}
	default:
		return CompareRule{Kind: RuleOpaque, TypeName: c.Name}
	}
}

func wrapperLike(t shape.Tag) bool {
	return t == shape.WrapperLike || t == shape.IdentityLike
}
