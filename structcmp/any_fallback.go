package structcmp

import (
	"fmt"
	"math"
)

// floatBits canonicalizes float hashing: +0 and -0 compare equal under ==,
// so they must hash equally too.
func floatBits(f float64) uint64 {
	if f == 0 {
		return 0
	}
	return math.Float64bits(f)
}

// hashFallback covers opaque values outside the fast-path kinds. The %#v
// form includes the dynamic type, so values of different types rarely
// collide; equal comparable values always print identically.
func hashFallback(a any) uint64 {
	return HashBytes([]byte(fmt.Sprintf("%T:%#v", a, a)))
}
