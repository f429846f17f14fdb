package shape

import (
	"traitgen/internal/traits"
	"traitgen/structcmp"
)

// TypeKind separates value-semantics from reference-semantics containers.
type TypeKind uint8

const (
	ValueType TypeKind = iota
	ReferenceType
)

func (k TypeKind) String() string {
	if k == ReferenceType {
		return "reference"
	}
	return "value"
}

// Tag is the coarse classification computed once by the shape provider.
// The planner dispatches on this data; it never introspects anything at
// runtime.
type Tag uint8

const (
	Unclassified Tag = iota
	// WrapperLike represents exactly one underlying value.
	WrapperLike
	// AggregateLike composes several members structurally.
	AggregateLike
	// IdentityLike is a WrapperLike used to reference another entity.
	IdentityLike
)

func (t Tag) String() string {
	switch t {
	case WrapperLike:
		return "wrapper"
	case AggregateLike:
		return "aggregate"
	case IdentityLike:
		return "identity"
	default:
		return "unclassified"
	}
}

// StorageKind describes how a member is backed.
type StorageKind uint8

const (
	// StorageField is an explicit field.
	StorageField StorageKind = iota
	// StorageAccessor is an accessor with backing storage.
	StorageAccessor
	// StorageComputed has no backing storage and is excluded from
	// structural comparison.
	StorageComputed
)

func (s StorageKind) String() string {
	switch s {
	case StorageAccessor:
		return "accessor"
	case StorageComputed:
		return "computed"
	default:
		return "field"
	}
}

// Member describes one declared member of a type.
type Member struct {
	Name    string
	Class   ClassID
	Storage StorageKind
}

// TypeRef names a type by namespace and name.
type TypeRef struct {
	Namespace string
	Name      string
}

func (r TypeRef) String() string {
	if r.Namespace == "" {
		return r.Name
	}
	return r.Namespace + "." + r.Name
}

// TypeShape is the immutable snapshot of one type as the provider saw it:
// identity, member list, declared signatures, and the traits requested for
// synthesis. The planner never mutates a shape.
type TypeShape struct {
	Ref  TypeRef
	Kind TypeKind
	Tag  Tag

	// Members in declaration order. Order is part of the shape's identity:
	// sequences of members feed ordered hashes and generated comparisons.
	Members []Member

	// Requested traits for synthesis.
	Requested traits.Set

	// Declared signatures across all fragments, merged.
	Declared []DeclSig

	// Case is the single case-sensitivity policy for every string member.
	Case structcmp.CaseMode

	// Abstract and OpenGeneric types cannot be planned at all.
	Abstract    bool
	OpenGeneric bool
	// NonRetargetable marks declarations nested where the generator cannot
	// re-declare into them consistently.
	NonRetargetable bool
	// CollapseAbsent applies the wrapper convention of treating an absent
	// underlying value as empty. Containers never collapse.
	CollapseAbsent bool
}

// ComparableMembers returns the members that participate in structural
// comparison: everything except computed ones, in declaration order.
func (s *TypeShape) ComparableMembers() []Member {
	out := make([]Member, 0, len(s.Members))
	for _, m := range s.Members {
		if m.Storage != StorageComputed {
			out = append(out, m)
		}
	}
	return out
}
