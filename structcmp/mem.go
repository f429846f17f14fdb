package structcmp

// EqualMem compares two memory slices (contiguous runs of comparable
// elements) by content. Nil is distinct from empty: "no slice" never equals
// an empty slice. Callers that want the collapsed convention normalize
// before calling.
func EqualMem[T comparable](a, b []T) bool {
	if (a == nil) != (b == nil) {
		return false
	}
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// HashMem hashes a memory slice elementwise, in order, consistent with
// EqualMem. Nil hashes to AbsentHash.
func HashMem[T comparable](a []T, hash func(T) uint64) uint64 {
	if a == nil {
		return AbsentHash
	}
	h := HashSeed
	for i := range a {
		h = HashCombine(h, hash(a[i]))
	}
	return h
}
