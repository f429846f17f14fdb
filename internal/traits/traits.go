package traits

import "fmt"

// Trait identifies one synthesizable behavior. The enumeration is closed:
// detection, planning and emission all index fixed-size tables by it.
type Trait uint8

const (
	// Accessor is the wrapper value accessor (Value() Underlying).
	Accessor Trait = iota
	// Ctor is the value constructor (New(Underlying) Self).
	Ctor
	// Display is the string conversion (String() string).
	Display
	// Hash is the hash computation (Hash() uint64).
	Hash
	// EqualAny is the generic, object-typed equality test (Equal(any) bool).
	EqualAny
	// EqualTyped is the strongly-typed equality test (Equals(Self) bool).
	EqualTyped
	// Compare is the ordering comparison (Compare(Self) int).
	Compare
	// EqOps is the equal/not-equal operator pair, planned as one unit.
	EqOps
	// OrderOps covers all four ordering operators, planned as one unit.
	OrderOps
	// ConvTo converts the type to its underlying value.
	ConvTo
	// ConvFrom builds the type from its underlying value.
	ConvFrom
	// ConvToPtr is the nullable variant of ConvTo.
	ConvToPtr
	// ConvFromPtr is the nullable variant of ConvFrom.
	ConvFromPtr
	// Marshal is the serialize entry point.
	Marshal
	// Unmarshal is the deserialize entry point.
	Unmarshal
	// Format is the formatted string conversion.
	Format
	// Parse is the string parse entry point.
	Parse

	// Count is the number of traits; keep it last.
	Count
)

func (t Trait) String() string {
	switch t {
	case Accessor:
		return "accessor"
	case Ctor:
		return "ctor"
	case Display:
		return "string"
	case Hash:
		return "hash"
	case EqualAny:
		return "equal-any"
	case EqualTyped:
		return "equal"
	case Compare:
		return "compare"
	case EqOps:
		return "eq-ops"
	case OrderOps:
		return "order-ops"
	case ConvTo:
		return "conv-to"
	case ConvFrom:
		return "conv-from"
	case ConvToPtr:
		return "conv-to-ptr"
	case ConvFromPtr:
		return "conv-from-ptr"
	case Marshal:
		return "marshal"
	case Unmarshal:
		return "unmarshal"
	case Format:
		return "format"
	case Parse:
		return "parse"
	default:
		return fmt.Sprintf("Trait(%d)", t)
	}
}

// FromString maps the stable string form back to a Trait.
func FromString(name string) (Trait, bool) {
	for t := Trait(0); t < Count; t++ {
		if t.String() == name {
			return t, true
		}
	}
	return 0, false
}

// EqualityFamily lists the traits that must be planned together whenever
// equality is emitted: they share one member subset and one per-member
// comparison semantics, never planned independently.
func EqualityFamily() []Trait {
	return []Trait{EqualTyped, EqualAny, Hash, EqOps}
}

// OrderingFamily lists the ordering traits, withheld or emitted as a whole.
func OrderingFamily() []Trait {
	return []Trait{Compare, OrderOps}
}
