package shape

import (
	"fmt"
	"strings"
)

// SigShape is the coarse parameter/result shape used for signature matching.
// Detection matches traits purely by name + arity + these shapes; bodies are
// never inspected.
type SigShape uint8

const (
	SigSelf SigShape = iota
	SigSelfPtr
	SigUnderlying
	SigUnderlyingPtr
	SigAny
	SigString
	SigInt
	SigBool
	SigUint64
	SigBytes
	SigError
)

func (s SigShape) String() string {
	switch s {
	case SigSelf:
		return "self"
	case SigSelfPtr:
		return "*self"
	case SigUnderlying:
		return "underlying"
	case SigUnderlyingPtr:
		return "*underlying"
	case SigAny:
		return "any"
	case SigString:
		return "string"
	case SigInt:
		return "int"
	case SigBool:
		return "bool"
	case SigUint64:
		return "uint64"
	case SigBytes:
		return "bytes"
	case SigError:
		return "error"
	default:
		return fmt.Sprintf("SigShape(%d)", s)
	}
}

// SigShapeFromString parses the stable textual form.
func SigShapeFromString(s string) (SigShape, bool) {
	for c := SigSelf; c <= SigError; c++ {
		if c.String() == s {
			return c, true
		}
	}
	return 0, false
}

// DeclSig is one already-declared member signature, as reported by the
// provider. Matching a DeclSig means the behavior exists; its correctness is
// the declarer's responsibility.
type DeclSig struct {
	Name    string
	Params  []SigShape
	Results []SigShape
}

func (d DeclSig) String() string {
	ps := make([]string, len(d.Params))
	for i, p := range d.Params {
		ps[i] = p.String()
	}
	rs := make([]string, len(d.Results))
	for i, r := range d.Results {
		rs[i] = r.String()
	}
	out := d.Name + "(" + strings.Join(ps, ", ") + ")"
	switch len(rs) {
	case 0:
	case 1:
		out += " " + rs[0]
	default:
		out += " (" + strings.Join(rs, ", ") + ")"
	}
	return out
}

// Matches reports exact signature equality: same name, same arity, same
// parameter and result shapes.
func (d DeclSig) Matches(other DeclSig) bool {
	if d.Name != other.Name || len(d.Params) != len(other.Params) || len(d.Results) != len(other.Results) {
		return false
	}
	for i := range d.Params {
		if d.Params[i] != other.Params[i] {
			return false
		}
	}
	for i := range d.Results {
		if d.Results[i] != other.Results[i] {
			return false
		}
	}
	return true
}
