package manifest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"traitgen/internal/diag"
	"traitgen/internal/shape"
	"traitgen/internal/traits"
	"traitgen/structcmp"
)

func writeManifest(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), DefaultName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadStarterManifest(t *testing.T) {
	path := writeManifest(t, Starter)
	f, err := Load(path)
	require.NoError(t, err)
	require.Len(t, f.Types, 2)

	in := shape.NewInterner()
	bag := diag.NewBag(16)
	shapes := Shapes(f, in, diag.BagReporter{Bag: bag})
	require.Len(t, shapes, 2)
	assert.False(t, bag.HasWarnings(), "starter manifest must convert cleanly: %v", bag.Items())

	tag := shapes[0]
	assert.Equal(t, shape.WrapperLike, tag.Tag)
	assert.Equal(t, structcmp.CaseFold, tag.Case)
	assert.True(t, tag.CollapseAbsent)
	assert.True(t, tag.Requested.Has(traits.Hash))
	assert.Equal(t, "option<string>", in.CanonicalString(tag.Members[0].Class))

	inv := shapes[1]
	assert.Len(t, inv.Declared, 1)
	assert.Equal(t, "String", inv.Declared[0].Name)
}

func TestLoadMissingFileIsHardError(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}

func TestBadPiecesBecomeDiagnosticsNotFailures(t *testing.T) {
	path := writeManifest(t, `
[[type]]
name = "T"
request = ["equal", "no-such-trait"]

[[type.member]]
name = "a"
type = "map<string"

[[type.member]]
name = "b"
type = "int"
storage = "weird"
`)
	f, err := Load(path)
	require.NoError(t, err)

	in := shape.NewInterner()
	bag := diag.NewBag(16)
	shapes := Shapes(f, in, diag.BagReporter{Bag: bag})

	require.Len(t, shapes, 1, "the type survives its broken pieces")
	s := shapes[0]
	assert.Len(t, s.Members, 1, "the malformed member is dropped, the odd storage one survives")
	assert.Equal(t, "b", s.Members[0].Name)
	assert.True(t, s.Requested.Has(traits.EqualTyped))

	codes := map[diag.Code]bool{}
	for _, d := range bag.Items() {
		codes[d.Code] = true
		assert.Equal(t, diag.SevWarning, d.Severity)
	}
	assert.True(t, codes[diag.ShapeBadClassExpr])
	assert.True(t, codes[diag.ShapeUnknownTrait])
	assert.True(t, codes[diag.ShapeUnknownStorage])
}

func TestRepeatedDeclarationsMergeAsFragments(t *testing.T) {
	path := writeManifest(t, `
[[type]]
name = "T"
case = "fold"
request = ["equal"]
[[type.member]]
name = "a"
type = "int"
[[type.declared]]
name = "String"
results = ["string"]

[[type]]
name = "T"
request = ["hash"]
[[type.member]]
name = "b"
type = "string"
[[type.declared]]
name = "String"
results = ["string"]
`)
	f, err := Load(path)
	require.NoError(t, err)

	in := shape.NewInterner()
	bag := diag.NewBag(16)
	shapes := Shapes(f, in, diag.BagReporter{Bag: bag})
	require.Len(t, shapes, 1, "both declarations are one type")
	assert.False(t, bag.HasWarnings(), "additive fragments are not conflicts: %v", bag.Items())

	s := shapes[0]
	require.Len(t, s.Members, 2, "fragment members append after the base's")
	assert.Equal(t, "a", s.Members[0].Name)
	assert.Equal(t, "b", s.Members[1].Name)
	assert.True(t, s.Requested.Has(traits.EqualTyped))
	assert.True(t, s.Requested.Has(traits.Hash), "requested traits union across fragments")
	assert.Len(t, s.Declared, 1, "identical declared signatures merge to one")
	assert.Equal(t, structcmp.CaseFold, s.Case, "type-level metadata comes from the base")
}

func TestFragmentMetadataConflictIsReported(t *testing.T) {
	path := writeManifest(t, `
[[type]]
name = "T"
case = "fold"
[[type.member]]
name = "a"
type = "int"

[[type]]
name = "T"
case = "exact"
[[type.member]]
name = "b"
type = "int"
`)
	f, err := Load(path)
	require.NoError(t, err)

	in := shape.NewInterner()
	bag := diag.NewBag(16)
	shapes := Shapes(f, in, diag.BagReporter{Bag: bag})
	require.Len(t, shapes, 1)
	assert.Equal(t, structcmp.CaseFold, shapes[0].Case, "the base declaration wins")
	assert.Len(t, shapes[0].Members, 2, "the fragment's members still merge")
	require.Equal(t, 1, bag.Len())
	assert.Equal(t, diag.ShapeFragmentConflict, bag.Items()[0].Code)
}

func TestParseClassExpr(t *testing.T) {
	in := shape.NewInterner()
	cases := []struct {
		expr string
		want string
	}{
		{"string", "string"},
		{"option<set<string>>", "option<set<string>>"},
		{"map<string, int>", "map<string, int>"},
		{"grouping<string, int, ordered>", "grouping<string, int, ordered>"},
		{"grouping<string, int>", "grouping<string, int>"},
		{"memslice<byte>", "memslice<byte>"},
		{"equatable<Money>", "equatable<Money>"},
		{"ordered<Version>", "ordered<Version>"},
		{"SomeUnknown", "opaque<SomeUnknown>"},
		{"seq<seq<int>>", "seq<seq<int>>"},
	}
	for _, tc := range cases {
		id, err := ParseClassExpr(in, tc.expr)
		require.NoError(t, err, "expr %q", tc.expr)
		assert.Equal(t, tc.want, in.CanonicalString(id), "expr %q", tc.expr)
	}
}

func TestParseClassExprErrors(t *testing.T) {
	in := shape.NewInterner()
	for _, expr := range []string{
		"map<string>",
		"option<>",
		"set",
		"map<string, int> trailing",
		"grouping<string, int, sorted>",
		"",
	} {
		_, err := ParseClassExpr(in, expr)
		assert.Error(t, err, "expr %q must not parse", expr)
	}
}
