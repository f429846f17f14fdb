package shape

import "testing"

func TestInternerBuiltins(t *testing.T) {
	in := NewInterner()
	b := in.Builtins()
	if b.String == NoClassID || b.Int == NoClassID {
		t.Fatalf("builtins not initialized")
	}
	c, _ := in.Lookup(b.String)
	if c.Kind != KindString {
		t.Fatalf("expected string kind, got %v", c.Kind)
	}
}

func TestInternerDeduplicatesDescriptors(t *testing.T) {
	in := NewInterner()
	elem := in.Builtins().String
	set1 := in.Intern(MakeSet(elem))
	set2 := in.Intern(MakeSet(elem))
	if set1 != set2 {
		t.Fatalf("set classifications should be deduplicated")
	}
	opt1 := in.Intern(MakeOptional(set1))
	opt2 := in.Intern(MakeOptional(set2))
	if opt1 != opt2 {
		t.Fatalf("nested classifications should be deduplicated")
	}
}

func TestGroupingOrderAffectsIdentity(t *testing.T) {
	in := NewInterner()
	b := in.Builtins()
	pos := in.Intern(MakeGrouping(b.String, b.Int, true))
	bag := in.Intern(MakeGrouping(b.String, b.Int, false))
	if pos == bag {
		t.Fatalf("ordered and multiset groupings must differ")
	}
}

func TestCanonicalString(t *testing.T) {
	in := NewInterner()
	b := in.Builtins()
	id := in.Intern(MakeOptional(in.Intern(MakeSet(b.String))))
	if got := in.CanonicalString(id); got != "option<set<string>>" {
		t.Fatalf("canonical form mismatch: %q", got)
	}
	m := in.Intern(MakeMap(b.String, b.Int))
	if got := in.CanonicalString(m); got != "map<string, int>" {
		t.Fatalf("canonical form mismatch: %q", got)
	}
}

func TestSelfOrderableUnwrapsOneOptionalLevel(t *testing.T) {
	in := NewInterner()
	b := in.Builtins()
	opt := in.Intern(MakeOptional(b.Int))
	optOpt := in.Intern(MakeOptional(opt))
	if !in.SelfOrderable(b.Int) || !in.SelfOrderable(b.String) || !in.SelfOrderable(opt) {
		t.Fatalf("int, string and option<int> must order")
	}
	if in.SelfOrderable(optOpt) {
		t.Fatalf("option<option<int>> must not order")
	}
	if in.SelfOrderable(in.Intern(MakeSequence(b.Int))) {
		t.Fatalf("containers must not order")
	}
	if !in.SelfOrderable(in.Intern(MakeSelfOrdered("Version"))) {
		t.Fatalf("declared total orders must order")
	}
	if in.SelfOrderable(in.Intern(MakeSelfEqual("Money"))) {
		t.Fatalf("declared equality alone must not order")
	}
}

func TestInternerPanicsOnContractViolation(t *testing.T) {
	in := NewInterner()
	defer func() {
		if recover() == nil {
			t.Fatalf("map without key must panic: provider contract violation")
		}
	}()
	in.Intern(Class{Kind: KindMap, Elem: in.Builtins().Int})
}
