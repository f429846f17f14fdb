// Package detect computes which synthesizable traits a type already
// declares. Matching is by signature only: name, arity, and coarse
// parameter/result shapes. Bodies are never inspected; a hand-written
// behavior is authoritative no matter what it does.
package detect

import (
	"traitgen/internal/shape"
	"traitgen/internal/traits"
)

// requirement is one way a trait can exist: every listed signature must be
// declared. Operator families list the whole pair/quad so a partial set of
// operators never counts as the trait.
type requirement []shape.DeclSig

// sigTable holds the accepted requirements per trait. Alternatives are
// tried in order; any fully-satisfied requirement marks the trait existing.
var sigTable = [traits.Count][]requirement{
	traits.Accessor: {
		{sig("Value", nil, res(shape.SigUnderlying))},
	},
	traits.Ctor: {
		{sig("New", params(shape.SigUnderlying), res(shape.SigSelf))},
	},
	traits.Display: {
		{sig("String", nil, res(shape.SigString))},
	},
	traits.Hash: {
		{sig("Hash", nil, res(shape.SigUint64))},
	},
	traits.EqualAny: {
		{sig("Equal", params(shape.SigAny), res(shape.SigBool))},
	},
	traits.EqualTyped: {
		{sig("Equals", params(shape.SigSelf), res(shape.SigBool))},
	},
	traits.Compare: {
		{sig("Compare", params(shape.SigSelf), res(shape.SigInt))},
	},
	traits.EqOps: {
		{
			sig("Eq", params(shape.SigSelf, shape.SigSelf), res(shape.SigBool)),
			sig("Ne", params(shape.SigSelf, shape.SigSelf), res(shape.SigBool)),
		},
	},
	traits.OrderOps: {
		{
			sig("Less", params(shape.SigSelf, shape.SigSelf), res(shape.SigBool)),
			sig("LessEq", params(shape.SigSelf, shape.SigSelf), res(shape.SigBool)),
			sig("Greater", params(shape.SigSelf, shape.SigSelf), res(shape.SigBool)),
			sig("GreaterEq", params(shape.SigSelf, shape.SigSelf), res(shape.SigBool)),
		},
	},
	traits.ConvTo: {
		{sig("ToUnderlying", nil, res(shape.SigUnderlying))},
	},
	traits.ConvFrom: {
		{sig("FromUnderlying", params(shape.SigUnderlying), res(shape.SigSelf))},
	},
	traits.ConvToPtr: {
		{sig("ToUnderlyingPtr", nil, res(shape.SigUnderlyingPtr))},
	},
	traits.ConvFromPtr: {
		{sig("FromUnderlyingPtr", params(shape.SigUnderlyingPtr), res(shape.SigSelf))},
	},
	traits.Marshal: {
		{sig("Marshal", nil, res(shape.SigBytes, shape.SigError))},
		{sig("MarshalBinary", nil, res(shape.SigBytes, shape.SigError))},
	},
	traits.Unmarshal: {
		{sig("Unmarshal", params(shape.SigBytes), res(shape.SigError))},
		{sig("UnmarshalBinary", params(shape.SigBytes), res(shape.SigError))},
	},
	traits.Format: {
		{sig("Format", params(shape.SigString), res(shape.SigString))},
	},
	traits.Parse: {
		{sig("Parse", params(shape.SigString), res(shape.SigSelf, shape.SigError))},
	},
}

func sig(name string, params, results []shape.SigShape) shape.DeclSig {
	return shape.DeclSig{Name: name, Params: params, Results: results}
}

func params(ss ...shape.SigShape) []shape.SigShape { return ss }
func res(ss ...shape.SigShape) []shape.SigShape    { return ss }

// Detect returns the traits the shape already declares. Pure and total:
// identical shapes always produce identical sets. The shape must already be
// the merged view of all declaration fragments (see shape.Merger); running
// detection per fragment would miss cross-fragment operator pairs.
func Detect(s *shape.TypeShape) traits.Set {
	var out traits.Set
	for t := traits.Trait(0); t < traits.Count; t++ {
		for _, req := range sigTable[t] {
			if satisfied(s.Declared, req) {
				out.Add(t)
				break
			}
		}
	}
	return out
}

func satisfied(declared []shape.DeclSig, req requirement) bool {
	for _, want := range req {
		found := false
		for _, have := range declared {
			if have.Matches(want) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
