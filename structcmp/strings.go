package structcmp

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
)

// CaseMode selects how string content is compared and hashed. A type declares
// exactly one mode; equality, hashing and ordering of its string members all
// read it, so flipping the mode changes all three together.
type CaseMode uint8

const (
	// CaseExact compares strings byte for byte.
	CaseExact CaseMode = iota
	// CaseFold compares strings under Unicode case folding.
	CaseFold
)

func (m CaseMode) String() string {
	switch m {
	case CaseExact:
		return "exact"
	case CaseFold:
		return "fold"
	default:
		return fmt.Sprintf("CaseMode(%d)", m)
	}
}

// foldString maps a string to its canonical caseless form.
// cases.Caser carries internal state, so a fresh one is built per call.
func foldString(s string) string {
	return cases.Fold().String(s)
}

// EqualStrings reports string equality under the given mode.
func EqualStrings(a, b string, mode CaseMode) bool {
	if mode == CaseFold {
		return foldString(a) == foldString(b)
	}
	return a == b
}

// HashString hashes a string consistently with EqualStrings: two strings that
// compare equal under the mode hash identically.
func HashString(s string, mode CaseMode) uint64 {
	if mode == CaseFold {
		s = foldString(s)
	}
	h := HashSeed
	for i := 0; i < len(s); i++ {
		h ^= uint64(s[i])
		h *= hashPrime
	}
	return h
}

// CompareStrings orders two strings under the given mode, returning
// -1, 0 or +1.
func CompareStrings(a, b string, mode CaseMode) int {
	if mode == CaseFold {
		a, b = foldString(a), foldString(b)
	}
	return strings.Compare(a, b)
}
