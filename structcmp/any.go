package structcmp

import "reflect"

// Equaler is implemented by types that declare their own equality. Declared
// equality always wins over the structural rules: the engine defers to it
// entirely and never second-guesses the implementation.
type Equaler interface {
	Equal(other any) bool
}

// Hasher is implemented by types that declare their own hash, paired with
// Equaler: equal values must produce equal hashes.
type Hasher interface {
	Hash() uint64
}

// Ordered is implemented by types that declare a total order over
// themselves.
type Ordered interface {
	Compare(other any) int
}

// EqualAny is the opaque fallback: it works for every value, so no shape can
// surface as "unsupported". Nil handling is explicit (nil==nil, nil!=non-nil);
// an Equaler on the left wins; otherwise the value's own == applies when the
// dynamic type supports it, and reflect.DeepEqual covers the rest.
func EqualAny(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if eq, ok := a.(Equaler); ok {
		return eq.Equal(b)
	}
	if reflect.TypeOf(a) != reflect.TypeOf(b) {
		return false
	}
	if reflect.TypeOf(a).Comparable() {
		return a == b
	}
	return reflect.DeepEqual(a, b)
}

// HashAny hashes an opaque value consistently with EqualAny. Nil hashes to
// the fixed AbsentHash sentinel; a Hasher hashes itself; everything else
// hashes through its printed representation, which is stable for the
// comparable kinds EqualAny resolves with ==.
func HashAny(a any) uint64 {
	if a == nil {
		return AbsentHash
	}
	if h, ok := a.(Hasher); ok {
		return h.Hash()
	}
	switch v := a.(type) {
	case string:
		return HashString(v, CaseExact)
	case bool:
		if v {
			return HashUint64(1)
		}
		return HashUint64(0)
	case int:
		return HashUint64(uint64(v))
	case int8:
		return HashUint64(uint64(v))
	case int16:
		return HashUint64(uint64(v))
	case int32:
		return HashUint64(uint64(v))
	case int64:
		return HashUint64(uint64(v))
	case uint:
		return HashUint64(uint64(v))
	case uint8:
		return HashUint64(uint64(v))
	case uint16:
		return HashUint64(uint64(v))
	case uint32:
		return HashUint64(uint64(v))
	case uint64:
		return HashUint64(v)
	case uintptr:
		return HashUint64(uint64(v))
	case float32:
		return HashUint64(uint64(floatBits(float64(v))))
	case float64:
		return HashUint64(floatBits(v))
	}
	return hashFallback(a)
}
