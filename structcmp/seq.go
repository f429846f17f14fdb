package structcmp

// EqualSeq compares two sequences: equal length and pairwise equal elements,
// in order, recursing through eq. A nil sequence is distinct from an empty
// one; "no list" and "list of nothing" carry different information.
func EqualSeq[T any](a, b []T, eq func(T, T) bool) bool {
	if (a == nil) != (b == nil) {
		return false
	}
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !eq(a[i], b[i]) {
			return false
		}
	}
	return true
}

// HashSeq folds element hashes in order: permuting a sequence changes its
// hash. A nil sequence hashes to AbsentHash.
func HashSeq[T any](a []T, hash func(T) uint64) uint64 {
	if a == nil {
		return AbsentHash
	}
	h := HashSeed
	for i := range a {
		h = HashCombine(h, hash(a[i]))
	}
	return h
}

// CompareSeq orders two sequences lexicographically, recursing through cmp,
// with length as the tie-break. Absent sorts before present.
func CompareSeq[T any](a, b []T, cmp func(T, T) int) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	}
	n := min(len(a), len(b))
	for i := 0; i < n; i++ {
		if c := cmp(a[i], b[i]); c != 0 {
			return c
		}
	}
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	default:
		return 0
	}
}
