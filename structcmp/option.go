package structcmp

// EqualOption compares two optional values represented as pointers.
// Absent equals absent; absent never equals present; two present values
// recurse through eq.
func EqualOption[T any](a, b *T, eq func(T, T) bool) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return eq(*a, *b)
}

// HashOption hashes an optional value. Absent contributes the fixed
// AbsentHash sentinel; present recurses into the element hash.
func HashOption[T any](a *T, hash func(T) uint64) uint64 {
	if a == nil {
		return AbsentHash
	}
	return hash(*a)
}

// CompareOption orders two optional values: absent sorts before present,
// two present values recurse through cmp. Exactly one level of optionality
// is unwrapped; nesting optionals does not preserve orderability.
func CompareOption[T any](a, b *T, cmp func(T, T) int) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	default:
		return cmp(*a, *b)
	}
}
