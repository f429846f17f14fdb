package shape

import (
	"sync"

	"traitgen/internal/traits"
)

// Fragment is one declaration fragment of a type whose declaration is split
// across several source fragments. Fragments only ever ADD members,
// signatures and requested traits; type-level metadata lives on the base
// shape.
type Fragment struct {
	Members   []Member
	Declared  []DeclSig
	Requested traits.Set
}

// Merger merges fragments into a single TypeShape exactly once per merged
// shape, memoized by a structural digest. Detection must always run over the
// merged member list, never per fragment, so duplicate or racing merges for
// the same key are allowed to compute redundantly but only the first publish
// wins.
type Merger struct {
	in    *Interner
	cache sync.Map // Digest -> *TypeShape
}

// NewMerger constructs a merger over the given interner.
func NewMerger(in *Interner) *Merger {
	return &Merger{in: in}
}

// Merge combines the base declaration with its fragments: members and
// declared signatures append in fragment order (signatures dedup by exact
// match), requested traits union. The returned shape is shared and must be
// treated as immutable.
func (m *Merger) Merge(base TypeShape, frags ...Fragment) *TypeShape {
	merged := base
	merged.Members = append([]Member(nil), base.Members...)
	merged.Declared = append([]DeclSig(nil), base.Declared...)
	for _, f := range frags {
		merged.Members = append(merged.Members, f.Members...)
		for _, d := range f.Declared {
			if !containsSig(merged.Declared, d) {
				merged.Declared = append(merged.Declared, d)
			}
		}
		merged.Requested = merged.Requested.Union(f.Requested)
	}

	key := merged.Digest(m.in)
	if got, ok := m.cache.Load(key); ok {
		return got.(*TypeShape)
	}
	published, _ := m.cache.LoadOrStore(key, &merged)
	return published.(*TypeShape)
}

func containsSig(sigs []DeclSig, d DeclSig) bool {
	for _, s := range sigs {
		if s.Matches(d) {
			return true
		}
	}
	return false
}
