package shape

import (
	"fmt"
	"strings"
)

// Builtins stores ClassIDs for common leaf classifications.
type Builtins struct {
	Invalid ClassID
	String  ClassID
	Int     ClassID
	Uint    ClassID
	Float   ClassID
	Bool    ClassID
}

// Interner provides stable ClassIDs by deduplicating structural descriptors.
// Equal descriptors always intern to the same ID, so ID equality is
// classification equality.
type Interner struct {
	classes  []Class
	index    map[Class]ClassID
	builtins Builtins
}

// NewInterner constructs an interner seeded with built-in leaves.
func NewInterner() *Interner {
	in := &Interner{
		index: make(map[Class]ClassID, 32),
	}
	in.builtins.Invalid = in.internRaw(Class{Kind: KindInvalid})
	in.builtins.String = in.Intern(Class{Kind: KindString})
	in.builtins.Int = in.Intern(MakePrimitive("int"))
	in.builtins.Uint = in.Intern(MakePrimitive("uint"))
	in.builtins.Float = in.Intern(MakePrimitive("float"))
	in.builtins.Bool = in.Intern(MakePrimitive("bool"))
	return in
}

// Builtins returns ClassIDs for the seeded leaves.
func (in *Interner) Builtins() Builtins {
	return in.builtins
}

// Intern ensures the descriptor has a stable ClassID. Composite descriptors
// must reference interned children; a composite with a missing child is a
// provider contract violation and panics as an unreachable state.
func (in *Interner) Intern(c Class) ClassID {
	if c.Kind == KindInvalid {
		return NoClassID
	}
	switch c.Kind {
	case KindOptional, KindSequence, KindSet, KindMemSlice:
		if c.Elem == NoClassID {
			panic(fmt.Sprintf("shape: %s classification without element", c.Kind))
		}
	case KindMap, KindGrouping:
		if c.Key == NoClassID || c.Elem == NoClassID {
			panic(fmt.Sprintf("shape: %s classification without key/value", c.Kind))
		}
	case KindSelfEqual, KindSelfOrdered, KindOpaque:
		if c.Name == "" {
			panic(fmt.Sprintf("shape: %s classification without name", c.Kind))
		}
	}
	return in.internRaw(c)
}

func (in *Interner) internRaw(c Class) ClassID {
	if id, ok := in.index[c]; ok {
		return id
	}
	in.classes = append(in.classes, c)
	id := ClassID(len(in.classes) - 1)
	in.index[c] = id
	return id
}

// Lookup resolves an ID back to its descriptor.
func (in *Interner) Lookup(id ClassID) (Class, bool) {
	if int(id) >= len(in.classes) {
		return Class{}, false
	}
	c := in.classes[id]
	if c.Kind == KindInvalid && id != in.builtins.Invalid {
		return Class{}, false
	}
	return c, true
}

// MustLookup resolves an ID that is known to be valid. An unknown ID means
// the upstream provider handed us a foreign or stale ID: unreachable state.
func (in *Interner) MustLookup(id ClassID) Class {
	c, ok := in.Lookup(id)
	if !ok {
		panic(fmt.Sprintf("shape: unknown ClassID %d", id))
	}
	return c
}

// CanonicalString renders a classification in its canonical textual form,
// e.g. "option<set<string>>". The form is stable and feeds content digests.
func (in *Interner) CanonicalString(id ClassID) string {
	if id == NoClassID {
		return "invalid"
	}
	c := in.MustLookup(id)
	switch c.Kind {
	case KindPrimitive:
		return c.Name
	case KindString:
		return "string"
	case KindOptional, KindSequence, KindSet, KindMemSlice:
		return c.Kind.String() + "<" + in.CanonicalString(c.Elem) + ">"
	case KindMap:
		return "map<" + in.CanonicalString(c.Key) + ", " + in.CanonicalString(c.Elem) + ">"
	case KindGrouping:
		var b strings.Builder
		b.WriteString("grouping<")
		b.WriteString(in.CanonicalString(c.Key))
		b.WriteString(", ")
		b.WriteString(in.CanonicalString(c.Elem))
		if c.Ordered {
			b.WriteString(", ordered")
		}
		b.WriteString(">")
		return b.String()
	case KindSelfEqual, KindSelfOrdered, KindOpaque:
		return c.Kind.String() + "<" + c.Name + ">"
	default:
		return c.Kind.String()
	}
}

// SelfOrderable reports whether a classification is transitively
// self-comparable, unwrapping exactly one level of optionality: Option<T>
// orders when T orders, but Option<Option<T>> never does. Containers never
// order.
func (in *Interner) SelfOrderable(id ClassID) bool {
	return in.selfOrderable(id, false)
}

func (in *Interner) selfOrderable(id ClassID, unwrapped bool) bool {
	if id == NoClassID {
		return false
	}
	c := in.MustLookup(id)
	switch c.Kind {
	case KindPrimitive, KindString, KindSelfOrdered:
		return true
	case KindOptional:
		if unwrapped {
			return false
		}
		return in.selfOrderable(c.Elem, true)
	default:
		return false
	}
}
