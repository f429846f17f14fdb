package shape

import "fmt"

// ClassID uniquely identifies a classification inside the interner.
type ClassID uint32

// NoClassID marks the absence of a classification.
const NoClassID ClassID = 0

// Kind enumerates the closed set of structural classifications.
type Kind uint8

const (
	KindInvalid Kind = iota
	// KindPrimitive covers scalar value types (int, uint, float, bool, ...).
	KindPrimitive
	// KindString is textual content, subject to the per-type case mode.
	KindString
	// KindOptional is a maybe-absent wrapper around Elem.
	KindOptional
	// KindSequence is an ordered run of Elem (lists, arrays, nested lists).
	KindSequence
	// KindSet is an unordered collection compared by two-way containment.
	KindSet
	// KindMap is a key-to-single-value association.
	KindMap
	// KindGrouping is a key-to-many-values association; Ordered fixes
	// whether per-key runs compare positionally or as multisets.
	KindGrouping
	// KindMemSlice is a contiguous fixed-size run compared by content.
	KindMemSlice
	// KindSelfEqual is a named type that declares its own equality.
	KindSelfEqual
	// KindSelfOrdered is a named type that declares its own total order
	// (and therefore its own equality).
	KindSelfOrdered
	// KindOpaque is a named type with no declared structural behavior;
	// comparison falls back to the type's standard equality.
	KindOpaque
)

func (k Kind) String() string {
	switch k {
	case KindInvalid:
		return "invalid"
	case KindPrimitive:
		return "primitive"
	case KindString:
		return "string"
	case KindOptional:
		return "option"
	case KindSequence:
		return "seq"
	case KindSet:
		return "set"
	case KindMap:
		return "map"
	case KindGrouping:
		return "grouping"
	case KindMemSlice:
		return "memslice"
	case KindSelfEqual:
		return "equatable"
	case KindSelfOrdered:
		return "ordered"
	case KindOpaque:
		return "opaque"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// Class is a compact descriptor for any supported classification.
// Compositions nest through Elem/Key: Optional<Set<String>> is three
// interned descriptors chained by ID.
type Class struct {
	Kind    Kind
	Elem    ClassID // optional/sequence/set/memslice element; map/grouping value
	Key     ClassID // map/grouping key
	Ordered bool    // grouping: positional per-key comparison
	Name    string  // primitive subtag or nominal name for self/opaque kinds
}

// Descriptor helpers ---------------------------------------------------------

// MakePrimitive describes a scalar by its subtag ("int", "bool", ...).
func MakePrimitive(name string) Class {
	return Class{Kind: KindPrimitive, Name: name}
}

// MakeOptional describes a maybe-absent wrapper around elem.
func MakeOptional(elem ClassID) Class {
	return Class{Kind: KindOptional, Elem: elem}
}

// MakeSequence describes an ordered run of elem.
func MakeSequence(elem ClassID) Class {
	return Class{Kind: KindSequence, Elem: elem}
}

// MakeSet describes a set of elem.
func MakeSet(elem ClassID) Class {
	return Class{Kind: KindSet, Elem: elem}
}

// MakeMap describes a key-to-value association.
func MakeMap(key, value ClassID) Class {
	return Class{Kind: KindMap, Key: key, Elem: value}
}

// MakeGrouping describes a key-to-many association. Ordered selects
// positional per-key comparison once for the whole classification.
func MakeGrouping(key, value ClassID, ordered bool) Class {
	return Class{Kind: KindGrouping, Key: key, Elem: value, Ordered: ordered}
}

// MakeMemSlice describes a contiguous run of elem compared by content.
func MakeMemSlice(elem ClassID) Class {
	return Class{Kind: KindMemSlice, Elem: elem}
}

// MakeSelfEqual describes a named type with declared equality.
func MakeSelfEqual(name string) Class {
	return Class{Kind: KindSelfEqual, Name: name}
}

// MakeSelfOrdered describes a named type with a declared total order.
func MakeSelfOrdered(name string) Class {
	return Class{Kind: KindSelfOrdered, Name: name}
}

// MakeOpaque describes a named type with no declared structural behavior.
func MakeOpaque(name string) Class {
	return Class{Kind: KindOpaque, Name: name}
}
