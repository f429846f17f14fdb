package traits

import "strings"

// Set is a fixed-size trait membership table indexed by Trait. The explicit
// array keeps positional magic out of callers: Set[Hash] reads as intended
// and the zero value is the empty set.
type Set [Count]bool

// Has reports membership.
func (s Set) Has(t Trait) bool {
	return t < Count && s[t]
}

// Add marks a trait present.
func (s *Set) Add(t Trait) {
	if t < Count {
		s[t] = true
	}
}

// With returns a copy with the given traits added.
func (s Set) With(ts ...Trait) Set {
	for _, t := range ts {
		if t < Count {
			s[t] = true
		}
	}
	return s
}

// Union merges two sets.
func (s Set) Union(other Set) Set {
	for t := Trait(0); t < Count; t++ {
		if other[t] {
			s[t] = true
		}
	}
	return s
}

// Len counts present traits.
func (s Set) Len() int {
	n := 0
	for t := Trait(0); t < Count; t++ {
		if s[t] {
			n++
		}
	}
	return n
}

// List returns present traits in enumeration order.
func (s Set) List() []Trait {
	out := make([]Trait, 0, s.Len())
	for t := Trait(0); t < Count; t++ {
		if s[t] {
			out = append(out, t)
		}
	}
	return out
}

// Of builds a set from the given traits.
func Of(ts ...Trait) Set {
	var s Set
	return s.With(ts...)
}

// All returns the set of every trait.
func All() Set {
	var s Set
	for t := Trait(0); t < Count; t++ {
		s[t] = true
	}
	return s
}

func (s Set) String() string {
	names := make([]string, 0, s.Len())
	for _, t := range s.List() {
		names = append(names, t.String())
	}
	return "{" + strings.Join(names, ", ") + "}"
}
