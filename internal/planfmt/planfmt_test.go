package planfmt

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"traitgen/internal/diag"
	"traitgen/internal/driver"
	"traitgen/internal/plan"
	"traitgen/internal/shape"
	"traitgen/internal/traits"
	"traitgen/structcmp"
)

func sampleResult() driver.Result {
	s := &shape.TypeShape{
		Ref: shape.TypeRef{Namespace: "billing", Name: "Invoice"},
		Tag: shape.AggregateLike,
	}
	p := &plan.Plan{
		Type: s.Ref,
		Case: structcmp.CaseFold,
	}
	p.Digest[0] = 0xab
	p.Decisions[traits.EqualTyped] = plan.Decision{Kind: plan.Emit}
	p.Decisions[traits.Hash] = plan.Decision{Kind: plan.Suppress, Reason: "declared by hand"}
	p.Decisions[traits.Compare] = plan.Decision{Kind: plan.Refuse, Code: diag.PlanOrderingUnsupported}
	p.Members = []plan.MemberRule{
		{Name: "id", Rule: plan.CompareRule{Kind: plan.RuleString, Case: structcmp.CaseFold}},
		{Name: "lines", Rule: plan.CompareRule{
			Kind: plan.RuleSeq,
			Elem: &plan.CompareRule{Kind: plan.RuleCustom, TypeName: "Line"},
		}},
	}
	return driver.Result{Shape: s, Plan: p}
}

func TestRuleString(t *testing.T) {
	cases := []struct {
		rule plan.CompareRule
		want string
	}{
		{plan.CompareRule{Kind: plan.RuleString, Case: structcmp.CaseFold}, "string[fold]"},
		{plan.CompareRule{Kind: plan.RulePrimitive, TypeName: "int"}, "int"},
		{plan.CompareRule{
			Kind:     plan.RuleOption,
			Collapse: true,
			Elem:     &plan.CompareRule{Kind: plan.RuleString},
		}, "option[collapse]<string>"},
		{plan.CompareRule{
			Kind:    plan.RuleGrouping,
			Ordered: false,
			Key:     &plan.CompareRule{Kind: plan.RuleString},
			Elem:    &plan.CompareRule{Kind: plan.RuleCustom, TypeName: "Money"},
		}, "grouping[multiset]<string, custom<Money>>"},
		{plan.CompareRule{
			Kind: plan.RuleMap,
			Key:  &plan.CompareRule{Kind: plan.RulePrimitive, TypeName: "int"},
			Elem: &plan.CompareRule{Kind: plan.RuleSet, Elem: &plan.CompareRule{Kind: plan.RulePrimitive, TypeName: "uint"}},
		}, "map<int, set<uint>>"},
	}
	for _, tc := range cases {
		rule := tc.rule
		if got := RuleString(&rule); got != tc.want {
			t.Errorf("RuleString = %q, want %q", got, tc.want)
		}
	}
	if got := RuleString(nil); got != "" {
		t.Errorf("RuleString(nil) = %q, want empty", got)
	}
}

func TestPrettyPlain(t *testing.T) {
	bag := diag.NewBag(16)
	bag.Add(diag.NewWarning(diag.PlanOrderingUnsupported, "billing.Invoice", "member is not orderable").
		WithMember("lines").
		WithRemedy("drop ordering from the request"))

	var buf bytes.Buffer
	Pretty(&buf, []driver.Result{sampleResult()}, bag, PrettyOpts{ShowMembers: true, ShowRemedy: true})
	out := buf.String()

	for _, want := range []string{
		"billing.Invoice",
		"case=fold",
		"emit",
		"suppress",
		"declared by hand",
		"refuse",
		"PLAN3010",
		"string[fold]",
		"seq<custom<Line>>",
		"billing.Invoice.lines",
		"remedy:",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("pretty output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "\x1b[") {
		t.Errorf("color disabled but output has escape codes:\n%s", out)
	}
}

func TestPrettyCacheMarker(t *testing.T) {
	r := sampleResult()
	r.CacheHit = true
	var buf bytes.Buffer
	Pretty(&buf, []driver.Result{r}, nil, PrettyOpts{})
	if !strings.Contains(buf.String(), "[cached]") {
		t.Errorf("expected cache marker in output:\n%s", buf.String())
	}
}

func TestJSONRoundTrip(t *testing.T) {
	bag := diag.NewBag(16)
	bag.Add(diag.NewWarning(diag.PlanOrderingUnsupported, "billing.Invoice", "member is not orderable"))

	var buf bytes.Buffer
	if err := JSON(&buf, []driver.Result{sampleResult()}, bag, JSONOpts{}); err != nil {
		t.Fatalf("JSON: %v", err)
	}

	var out Output
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(out.Plans) != 1 {
		t.Fatalf("plans = %d, want 1", len(out.Plans))
	}
	p := out.Plans[0]
	if p.Type != "billing.Invoice" {
		t.Errorf("type = %q", p.Type)
	}
	if p.Case != "fold" {
		t.Errorf("case = %q", p.Case)
	}
	if len(p.Decisions) != 3 {
		t.Fatalf("decisions = %d, want 3", len(p.Decisions))
	}
	var refusal *DecisionJSON
	for i := range p.Decisions {
		if p.Decisions[i].Decision == "refuse" {
			refusal = &p.Decisions[i]
		}
	}
	if refusal == nil || refusal.Code != "PLAN3010" {
		t.Errorf("refusal code missing: %+v", p.Decisions)
	}
	if out.Count != 1 || len(out.Diagnostics) != 1 {
		t.Errorf("diagnostics = %d (count %d), want 1", len(out.Diagnostics), out.Count)
	}
	if out.Diagnostics[0].Code != "PLAN3010" {
		t.Errorf("diagnostic code = %q", out.Diagnostics[0].Code)
	}
}

func TestJSONDeterministic(t *testing.T) {
	bag := diag.NewBag(16)
	results := []driver.Result{sampleResult()}

	var a, b bytes.Buffer
	if err := JSON(&a, results, bag, JSONOpts{}); err != nil {
		t.Fatal(err)
	}
	if err := JSON(&b, results, bag, JSONOpts{}); err != nil {
		t.Fatal(err)
	}
	if a.String() != b.String() {
		t.Error("identical inputs produced different JSON documents")
	}
}

func TestJSONMaxTruncatesDiagnostics(t *testing.T) {
	bag := diag.NewBag(16)
	for i := 0; i < 5; i++ {
		bag.Add(diag.NewWarning(diag.PlanOrderingUnsupported, "billing.Invoice", "member is not orderable"))
	}
	out := BuildOutput(nil, bag, JSONOpts{Max: 2})
	if len(out.Diagnostics) != 2 || out.Count != 2 {
		t.Errorf("diagnostics = %d (count %d), want 2", len(out.Diagnostics), out.Count)
	}
}
