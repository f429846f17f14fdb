package structcmp

// EqualMap compares two maps: same key set, and per key the values on both
// sides are equal through eqVal. Iteration order never matters. A nil map is
// distinct from an empty one, and a map only ever equals another map.
func EqualMap[K comparable, V any](a, b map[K]V, eqVal func(V, V) bool) bool {
	if (a == nil) != (b == nil) {
		return false
	}
	if len(a) != len(b) {
		return false
	}
	for k, av := range a {
		bv, ok := b[k]
		if !ok || !eqVal(av, bv) {
			return false
		}
	}
	return true
}

// HashMap hashes a map order-independently: each entry's (key, value) hash
// pair is folded into a single entry hash, and entry hashes are combined
// commutatively so that iteration order cannot leak into the result.
// Nil hashes to AbsentHash.
func HashMap[K comparable, V any](a map[K]V, hashKey func(K) uint64, hashVal func(V) uint64) uint64 {
	if a == nil {
		return AbsentHash
	}
	var sum uint64
	for k, v := range a {
		entry := HashCombine(HashCombine(HashSeed, hashKey(k)), hashVal(v))
		sum += entry
	}
	return HashCombine(HashSeed, sum)
}
