package structcmp

// 64-bit FNV-1a parameters. Every fold in this package starts from HashSeed
// so that equal structures hash equally regardless of which entry point
// produced the value.
const (
	// HashSeed is the initial accumulator for ordered folds.
	HashSeed  uint64 = 14695981039346656037
	hashPrime uint64 = 1099511628211

	// AbsentHash is the fixed sentinel contributed by an absent value:
	// a nil optional, a nil container, or a nil opaque reference. It is an
	// arbitrary odd constant; the only requirement is that it is stable.
	AbsentHash uint64 = 0x9e3779b97f4a7c15
)

// HashCombine folds x into an ordered accumulator. Order-sensitive: callers
// that need order-independence must fold commutatively (see HashMap).
func HashCombine(h, x uint64) uint64 {
	h ^= x
	h *= hashPrime
	return h
}

// HashUint64 hashes a raw 64-bit value byte by byte.
func HashUint64(v uint64) uint64 {
	h := HashSeed
	for i := 0; i < 8; i++ {
		h ^= v & 0xff
		h *= hashPrime
		v >>= 8
	}
	return h
}

// HashBytes hashes a byte string with FNV-1a. A nil slice yields AbsentHash;
// an empty one yields the seed.
func HashBytes(b []byte) uint64 {
	if b == nil {
		return AbsentHash
	}
	h := HashSeed
	for _, c := range b {
		h ^= uint64(c)
		h *= hashPrime
	}
	return h
}
