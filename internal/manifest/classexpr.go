package manifest

import (
	"fmt"
	"strings"

	"traitgen/internal/shape"
)

// ParseClassExpr parses a classification expression into an interned
// ClassID. The grammar is deliberately tiny:
//
//	expr     := leaf | generic
//	generic  := name '<' expr {',' expr} [',' 'ordered'] '>'
//	leaf     := 'string' | 'int' | 'uint' | 'float' | 'bool' | 'byte' | name
//
// where generic names are option, seq, set, map, grouping, memslice, and
// the nominal forms equatable<N>, ordered<N>, opaque<N>. A bare unknown
// name is an opaque classification: the engine's fallback keeps every
// shape comparable, so unknown never means unsupported.
func ParseClassExpr(in *shape.Interner, expr string) (shape.ClassID, error) {
	p := &classParser{in: in, src: expr}
	id, err := p.parse()
	if err != nil {
		return shape.NoClassID, err
	}
	p.skipSpace()
	if p.pos != len(p.src) {
		return shape.NoClassID, fmt.Errorf("trailing input at offset %d in %q", p.pos, expr)
	}
	return id, nil
}

type classParser struct {
	in  *shape.Interner
	src string
	pos int
}

func (p *classParser) parse() (shape.ClassID, error) {
	name, err := p.ident()
	if err != nil {
		return shape.NoClassID, err
	}
	if !p.eat('<') {
		return p.leaf(name)
	}

	switch name {
	case "option", "seq", "set", "memslice":
		elem, err := p.parse()
		if err != nil {
			return shape.NoClassID, err
		}
		if err := p.expect('>'); err != nil {
			return shape.NoClassID, err
		}
		switch name {
		case "option":
			return p.in.Intern(shape.MakeOptional(elem)), nil
		case "seq":
			return p.in.Intern(shape.MakeSequence(elem)), nil
		case "set":
			return p.in.Intern(shape.MakeSet(elem)), nil
		default:
			return p.in.Intern(shape.MakeMemSlice(elem)), nil
		}

	case "map":
		key, value, _, err := p.pair(false)
		if err != nil {
			return shape.NoClassID, err
		}
		return p.in.Intern(shape.MakeMap(key, value)), nil

	case "grouping":
		key, value, ordered, err := p.pair(true)
		if err != nil {
			return shape.NoClassID, err
		}
		return p.in.Intern(shape.MakeGrouping(key, value, ordered)), nil

	case "equatable", "ordered", "opaque":
		nominal, err := p.ident()
		if err != nil {
			return shape.NoClassID, err
		}
		if err := p.expect('>'); err != nil {
			return shape.NoClassID, err
		}
		switch name {
		case "equatable":
			return p.in.Intern(shape.MakeSelfEqual(nominal)), nil
		case "ordered":
			return p.in.Intern(shape.MakeSelfOrdered(nominal)), nil
		default:
			return p.in.Intern(shape.MakeOpaque(nominal)), nil
		}

	default:
		return shape.NoClassID, fmt.Errorf("%q does not take type arguments", name)
	}
}

// pair parses "key, value" and, when allowOrdered, an optional trailing
// ", ordered" before the closing bracket.
func (p *classParser) pair(allowOrdered bool) (key, value shape.ClassID, ordered bool, err error) {
	if key, err = p.parse(); err != nil {
		return
	}
	if err = p.expect(','); err != nil {
		return
	}
	if value, err = p.parse(); err != nil {
		return
	}
	if allowOrdered && p.eat(',') {
		var flag string
		if flag, err = p.ident(); err != nil {
			return
		}
		if flag != "ordered" {
			err = fmt.Errorf("expected 'ordered', got %q", flag)
			return
		}
		ordered = true
	}
	err = p.expect('>')
	return
}

func (p *classParser) leaf(name string) (shape.ClassID, error) {
	b := p.in.Builtins()
	switch name {
	case "string":
		return b.String, nil
	case "int":
		return b.Int, nil
	case "uint":
		return b.Uint, nil
	case "float":
		return b.Float, nil
	case "bool":
		return b.Bool, nil
	case "byte":
		return p.in.Intern(shape.MakePrimitive("byte")), nil
	case "option", "seq", "set", "map", "grouping", "memslice", "equatable", "ordered", "opaque":
		return shape.NoClassID, fmt.Errorf("%q requires type arguments", name)
	default:
		return p.in.Intern(shape.MakeOpaque(name)), nil
	}
}

func (p *classParser) skipSpace() {
	for p.pos < len(p.src) && (p.src[p.pos] == ' ' || p.src[p.pos] == '\t') {
		p.pos++
	}
}

func (p *classParser) eat(ch byte) bool {
	p.skipSpace()
	if p.pos < len(p.src) && p.src[p.pos] == ch {
		p.pos++
		return true
	}
	return false
}

func (p *classParser) expect(ch byte) error {
	if !p.eat(ch) {
		return fmt.Errorf("expected %q at offset %d in %q", string(ch), p.pos, p.src)
	}
	return nil
}

func (p *classParser) ident() (string, error) {
	p.skipSpace()
	start := p.pos
	for p.pos < len(p.src) && isIdentChar(p.src[p.pos]) {
		p.pos++
	}
	if p.pos == start {
		return "", fmt.Errorf("expected identifier at offset %d in %q", p.pos, p.src)
	}
	return strings.ToValidUTF8(p.src[start:p.pos], ""), nil
}

func isIdentChar(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c == '_' || c == '.'
}
