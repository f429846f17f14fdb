package structcmp

// Grouping maps a key to the ordered run of values filed under it.
type Grouping[K comparable, V any] map[K][]V

// EqualGrouping compares two groupings like maps, except each key holds many
// values. Whether per-key runs compare positionally or as multisets is a
// property of the grouping's shape, chosen once via ordered — never per
// instance. Nil is distinct from empty.
func EqualGrouping[K comparable, V any](a, b Grouping[K, V], eqVal func(V, V) bool, ordered bool) bool {
	if (a == nil) != (b == nil) {
		return false
	}
	if len(a) != len(b) {
		return false
	}
	for k, av := range a {
		bv, ok := b[k]
		if !ok {
			return false
		}
		if ordered {
			if !EqualSeq(av, bv, eqVal) {
				return false
			}
		} else if !multisetEqual(av, bv, eqVal) {
			return false
		}
	}
	return true
}

// HashGrouping hashes a grouping order-independently across keys. Per-key
// runs hash in order when ordered, commutatively otherwise, matching
// EqualGrouping. Nil hashes to AbsentHash.
func HashGrouping[K comparable, V any](a Grouping[K, V], hashKey func(K) uint64, hashVal func(V) uint64, ordered bool) uint64 {
	if a == nil {
		return AbsentHash
	}
	var sum uint64
	for k, vs := range a {
		var run uint64
		if ordered {
			run = HashSeq(vs, hashVal)
		} else {
			run = HashSeed
			var vsum uint64
			for i := range vs {
				vsum += hashVal(vs[i])
			}
			run = HashCombine(run, vsum)
		}
		sum += HashCombine(HashCombine(HashSeed, hashKey(k)), run)
	}
	return HashCombine(HashSeed, sum)
}

// multisetEqual reports whether b is a permutation of a under eq.
// Quadratic with a matched-slot mask; grouping runs are expected to be short.
func multisetEqual[V any](a, b []V, eq func(V, V) bool) bool {
	if len(a) != len(b) {
		return false
	}
	used := make([]bool, len(b))
outer:
	for i := range a {
		for j := range b {
			if !used[j] && eq(a[i], b[j]) {
				used[j] = true
				continue outer
			}
		}
		return false
	}
	return true
}
