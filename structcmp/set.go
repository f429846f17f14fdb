package structcmp

import "iter"

// Set is the minimal surface a set must expose to be structurally compared.
// Contains applies the set's OWN membership policy; EqualSet deliberately
// does not assume both sides share one.
type Set[T any] interface {
	Len() int
	Contains(T) bool
	All() iter.Seq[T]
}

// EqualSet compares two sets by two-way containment: every element of a must
// be in b and every element of b must be in a, each direction judged by the
// target set's own Contains. Two sets with different membership policies can
// therefore be judged equal when both passes succeed. That relaxation is
// intentional and load-bearing; do not tighten it to a single-policy check.
// A nil set equals only another nil set.
//
// No length comparison: under mixed policies both passes can succeed while
// element counts differ, and that still counts as equal.
func EqualSet[T any](a, b Set[T]) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	for v := range a.All() {
		if !b.Contains(v) {
			return false
		}
	}
	for v := range b.All() {
		if !a.Contains(v) {
			return false
		}
	}
	return true
}

// HashSet hashes a set order-independently by summing element hashes.
// Nil hashes to AbsentHash; an empty set hashes to the folded seed.
func HashSet[T any](a Set[T], hash func(T) uint64) uint64 {
	if a == nil {
		return AbsentHash
	}
	var sum uint64
	for v := range a.All() {
		sum += hash(v)
	}
	return HashCombine(HashSeed, sum)
}

// HashedSet is the stock map-backed Set with exact-match membership.
type HashedSet[T comparable] map[T]struct{}

// NewHashedSet builds a HashedSet from the given elements.
func NewHashedSet[T comparable](items ...T) HashedSet[T] {
	s := make(HashedSet[T], len(items))
	for _, it := range items {
		s[it] = struct{}{}
	}
	return s
}

func (s HashedSet[T]) Len() int { return len(s) }

func (s HashedSet[T]) Contains(v T) bool {
	_, ok := s[v]
	return ok
}

func (s HashedSet[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for v := range s {
			if !yield(v) {
				return
			}
		}
	}
}

// Add inserts an element.
func (s HashedSet[T]) Add(v T) { s[v] = struct{}{} }

// FuncSet wraps an element list with a caller-supplied membership predicate,
// for sets whose policy is not exact match (case-folded string sets and the
// like).
type FuncSet[T any] struct {
	Items  []T
	Member func(items []T, v T) bool
}

func (s *FuncSet[T]) Len() int { return len(s.Items) }

func (s *FuncSet[T]) Contains(v T) bool { return s.Member(s.Items, v) }

func (s *FuncSet[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, v := range s.Items {
			if !yield(v) {
				return
			}
		}
	}
}
