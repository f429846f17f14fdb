package diag

import "testing"

func TestBagLimit(t *testing.T) {
	b := NewBag(2)
	if !b.Add(NewWarning(PlanOrderingUnsupported, "a.T", "m")) {
		t.Fatalf("first add must succeed")
	}
	b.Add(NewWarning(PlanOrderingUnsupported, "a.U", "m"))
	if b.Add(NewWarning(PlanOrderingUnsupported, "a.V", "m")) {
		t.Fatalf("add past the limit must be dropped")
	}
	if b.Len() != 2 {
		t.Fatalf("expected 2 items, got %d", b.Len())
	}
}

func TestBagSortIsDeterministic(t *testing.T) {
	b := NewBag(10)
	b.Add(NewWarning(PlanDeserializeNoCtor, "b.T", "later"))
	b.Add(NewError(PlanTypeAbstract, "a.T", "earlier"))
	b.Add(NewWarning(PlanOrderingUnsupported, "a.T", "earlier").WithMember("x"))
	b.Sort()

	items := b.Items()
	if items[0].Type != "a.T" || items[0].Member != "" {
		t.Fatalf("sort broken: %+v", items)
	}
	if items[1].Member != "x" || items[2].Type != "b.T" {
		t.Fatalf("sort broken: %+v", items)
	}
}

func TestBagDedup(t *testing.T) {
	b := NewBag(10)
	d := NewWarning(PlanOrderingUnsupported, "a.T", "m").WithMember("x")
	b.Add(d)
	b.Add(d)
	b.Dedup()
	if b.Len() != 1 {
		t.Fatalf("duplicates must collapse, got %d", b.Len())
	}
}

func TestSeverityQueries(t *testing.T) {
	b := NewBag(10)
	b.Add(NewWarning(PlanOrderingUnsupported, "a.T", "m"))
	if b.HasErrors() {
		t.Fatalf("warnings are not errors")
	}
	if !b.HasWarnings() {
		t.Fatalf("expected a warning")
	}
}

func TestCodeID(t *testing.T) {
	if got := PlanOrderingUnsupported.ID(); got != "PLAN3010" {
		t.Fatalf("unexpected ID: %q", got)
	}
	if got := ShapeBadClassExpr.ID(); got != "SHAPE1001" {
		t.Fatalf("unexpected ID: %q", got)
	}
}
