// Package manifest loads type shapes from a traits.toml file. It is the
// file-backed Type Shape Provider the CLI runs against; the planner itself
// only ever sees the resulting shape.TypeShape values and works the same
// against any other provider.
package manifest

import (
	"fmt"

	"github.com/BurntSushi/toml"

	"traitgen/internal/diag"
	"traitgen/internal/shape"
	"traitgen/internal/traits"
	"traitgen/structcmp"
)

// DefaultName is the conventional manifest file name.
const DefaultName = "traits.toml"

// File mirrors the TOML document.
type File struct {
	Package PackageDecl `toml:"package"`
	Types   []TypeDecl  `toml:"type"`
}

// PackageDecl is the manifest's own identity.
type PackageDecl struct {
	Name string `toml:"name"`
}

// TypeDecl declares one type shape.
type TypeDecl struct {
	Name           string       `toml:"name"`
	Namespace      string       `toml:"namespace"`
	Kind           string       `toml:"kind"`  // value|reference
	Class          string       `toml:"class"` // wrapper|aggregate|identity|unclassified
	Case           string       `toml:"case"`  // exact|fold
	CollapseAbsent bool         `toml:"collapse_absent"`
	Abstract       bool         `toml:"abstract"`
	OpenGeneric    bool         `toml:"open_generic"`
	Nested         bool         `toml:"nested"`
	Request        []string     `toml:"request"`
	Members        []MemberDecl `toml:"member"`
	Declared       []SigDecl    `toml:"declared"`
}

// MemberDecl declares one member.
type MemberDecl struct {
	Name    string `toml:"name"`
	Type    string `toml:"type"`
	Storage string `toml:"storage"` // field|accessor|computed
}

// SigDecl declares one already-written signature.
type SigDecl struct {
	Name    string   `toml:"name"`
	Params  []string `toml:"params"`
	Results []string `toml:"results"`
}

// Load parses the manifest file. File-level failures (missing file, TOML
// syntax) are hard errors; everything below that surfaces as diagnostics
// during conversion.
func Load(path string) (*File, error) {
	var f File
	if _, err := toml.DecodeFile(path, &f); err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	return &f, nil
}

// Shapes converts the manifest into type shapes. Malformed declarations are
// reported through r and skipped (a bad field); the rest of the manifest is
// still converted, so one broken declaration never kills a run.
//
// A type may be declared across several [[type]] tables: the first table is
// the base declaration, every later table for the same name is a fragment
// contributing members, signatures and requested traits. Fragments merge
// before anything downstream sees the shape; detection never runs per
// fragment. Type-level metadata (kind, class, case, flags) belongs to the
// base; a fragment that re-declares it differently is reported and ignored.
func Shapes(f *File, in *shape.Interner, r diag.Reporter) []*shape.TypeShape {
	order := make([]shape.TypeRef, 0, len(f.Types))
	grouped := make(map[shape.TypeRef][]*TypeDecl, len(f.Types))
	for i := range f.Types {
		decl := &f.Types[i]
		ref := shape.TypeRef{Namespace: decl.Namespace, Name: decl.Name}
		if _, ok := grouped[ref]; !ok {
			order = append(order, ref)
		}
		grouped[ref] = append(grouped[ref], decl)
	}

	merger := shape.NewMerger(in)
	out := make([]*shape.TypeShape, 0, len(order))
	for _, ref := range order {
		group := grouped[ref]
		base := convertType(group[0], ref, in, r)
		frags := make([]shape.Fragment, 0, len(group)-1)
		for _, d := range group[1:] {
			reportFragmentConflicts(group[0], d, ref, r)
			frags = append(frags, convertFragment(d, ref, in, r))
		}
		s := merger.Merge(*base, frags...)
		if len(s.Members) == 0 {
			r.Report(diag.NewWarning(diag.ShapeNoMembers, ref.String(),
				"type declares no members; only trivial traits can be synthesized"))
		}
		out = append(out, s)
	}
	return out
}

// reportFragmentConflicts flags a fragment that re-declares type-level
// metadata with a different value than the base. The base wins either way.
func reportFragmentConflicts(base, frag *TypeDecl, ref shape.TypeRef, r diag.Reporter) {
	conflict := (frag.Kind != "" && frag.Kind != base.Kind) ||
		(frag.Class != "" && frag.Class != base.Class) ||
		(frag.Case != "" && frag.Case != base.Case) ||
		(frag.CollapseAbsent && !base.CollapseAbsent) ||
		(frag.Abstract && !base.Abstract) ||
		(frag.OpenGeneric && !base.OpenGeneric) ||
		(frag.Nested && !base.Nested)
	if conflict {
		r.Report(diag.NewWarning(diag.ShapeFragmentConflict, ref.String(),
			"fragment re-declares type-level metadata; the first declaration's values are used").
			WithRemedy("set kind, class, case and flags on the first declaration only"))
	}
}

func convertType(decl *TypeDecl, ref shape.TypeRef, in *shape.Interner, r diag.Reporter) *shape.TypeShape {
	s := &shape.TypeShape{
		Ref:             ref,
		CollapseAbsent:  decl.CollapseAbsent,
		Abstract:        decl.Abstract,
		OpenGeneric:     decl.OpenGeneric,
		NonRetargetable: decl.Nested,
	}

	switch decl.Kind {
	case "", "value":
		s.Kind = shape.ValueType
	case "reference":
		s.Kind = shape.ReferenceType
	default:
		r.Report(diag.NewWarning(diag.ShapeUnknownTag, ref.String(),
			fmt.Sprintf("unknown kind %q, assuming value semantics", decl.Kind)))
	}

	switch decl.Class {
	case "", "unclassified":
		s.Tag = shape.Unclassified
	case "wrapper":
		s.Tag = shape.WrapperLike
	case "aggregate":
		s.Tag = shape.AggregateLike
	case "identity":
		s.Tag = shape.IdentityLike
	default:
		r.Report(diag.NewWarning(diag.ShapeUnknownTag, ref.String(),
			fmt.Sprintf("unknown class %q, treating as unclassified", decl.Class)))
	}

	switch decl.Case {
	case "", "exact":
		s.Case = structcmp.CaseExact
	case "fold":
		s.Case = structcmp.CaseFold
	default:
		r.Report(diag.NewWarning(diag.ShapeUnknownCaseMode, ref.String(),
			fmt.Sprintf("unknown case mode %q, using exact", decl.Case)).
			WithRemedy(`use "exact" or "fold"`))
	}

	s.Members = convertMembers(decl.Members, ref, in, r)
	s.Requested = convertRequested(decl.Request, ref, r)
	s.Declared = convertDeclared(decl.Declared, ref, r)
	return s
}

// convertFragment converts a later [[type]] table for an already-declared
// type. Only the additive parts participate; type-level metadata is checked
// separately.
func convertFragment(decl *TypeDecl, ref shape.TypeRef, in *shape.Interner, r diag.Reporter) shape.Fragment {
	return shape.Fragment{
		Members:   convertMembers(decl.Members, ref, in, r),
		Declared:  convertDeclared(decl.Declared, ref, r),
		Requested: convertRequested(decl.Request, ref, r),
	}
}

func convertMembers(decls []MemberDecl, ref shape.TypeRef, in *shape.Interner, r diag.Reporter) []shape.Member {
	var out []shape.Member
	for _, m := range decls {
		id, err := ParseClassExpr(in, m.Type)
		if err != nil {
			r.Report(diag.NewWarning(diag.ShapeBadClassExpr, ref.String(), err.Error()).
				WithMember(m.Name))
			continue
		}
		storage := shape.StorageField
		switch m.Storage {
		case "", "field":
		case "accessor":
			storage = shape.StorageAccessor
		case "computed":
			storage = shape.StorageComputed
		default:
			r.Report(diag.NewWarning(diag.ShapeUnknownStorage, ref.String(),
				fmt.Sprintf("unknown storage %q, assuming field", m.Storage)).
				WithMember(m.Name))
		}
		out = append(out, shape.Member{Name: m.Name, Class: id, Storage: storage})
	}
	return out
}

func convertRequested(names []string, ref shape.TypeRef, r diag.Reporter) traits.Set {
	var out traits.Set
	for _, name := range names {
		t, ok := traits.FromString(name)
		if !ok {
			r.Report(diag.NewWarning(diag.ShapeUnknownTrait, ref.String(),
				fmt.Sprintf("unknown trait %q in request", name)))
			continue
		}
		out.Add(t)
	}
	return out
}

func convertDeclared(decls []SigDecl, ref shape.TypeRef, r diag.Reporter) []shape.DeclSig {
	var out []shape.DeclSig
	for _, sd := range decls {
		sig, ok := convertSig(sd, ref, r)
		if ok {
			out = append(out, sig)
		}
	}
	return out
}

func convertSig(sd SigDecl, ref shape.TypeRef, r diag.Reporter) (shape.DeclSig, bool) {
	out := shape.DeclSig{Name: sd.Name}
	for _, p := range sd.Params {
		c, ok := shape.SigShapeFromString(p)
		if !ok {
			r.Report(diag.NewWarning(diag.ShapeUnknownSigShape, ref.String(),
				fmt.Sprintf("unknown signature shape %q in %s", p, sd.Name)))
			return shape.DeclSig{}, false
		}
		out.Params = append(out.Params, c)
	}
	for _, rs := range sd.Results {
		c, ok := shape.SigShapeFromString(rs)
		if !ok {
			r.Report(diag.NewWarning(diag.ShapeUnknownSigShape, ref.String(),
				fmt.Sprintf("unknown signature shape %q in %s", rs, sd.Name)))
			return shape.DeclSig{}, false
		}
		out.Results = append(out.Results, c)
	}
	return out, true
}
